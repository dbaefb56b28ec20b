package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"beautyshop/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// GORMProductRepository is a GORM implementation of ProductRepository.
type GORMProductRepository struct {
	db *gorm.DB
}

// NewGORMProductRepository creates a new instance of GORMProductRepository.
func NewGORMProductRepository(db *gorm.DB) *GORMProductRepository {
	return &GORMProductRepository{
		db: db,
	}
}

// ownerScope restricts a query to the products matching filter.
func ownerScope(filter ProductFilter) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		db = db.Where("owner_id = ?", filter.OwnerID)
		if filter.Category != "" {
			db = db.Where("category = ?", filter.Category)
		}
		if filter.Gender != "" {
			db = db.Where("gender = ?", filter.Gender)
		}
		if filter.Name != "" {
			pattern := "%" + likeEscaper.Replace(strings.ToLower(filter.Name)) + "%"
			db = db.Where(`LOWER(name) LIKE ? ESCAPE '\'`, pattern)
		}
		return db
	}
}

// List counts the matching products and fetches the requested page.
func (r *GORMProductRepository) List(ctx context.Context, filter ProductFilter) ([]models.Product, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&models.Product{}).Scopes(ownerScope(filter)).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count products: %w", err)
	}

	query := r.db.WithContext(ctx).Scopes(ownerScope(filter))
	if filter.SortField != "" {
		query = query.Order(clause.OrderByColumn{
			Column: clause.Column{Name: filter.SortField},
			Desc:   filter.SortOrder == SortDesc,
		})
	}
	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}

	products := make([]models.Product, 0)
	if err := query.Find(&products).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list products: %w", err)
	}
	return products, total, nil
}

// GetByID retrieves the owner's product by its ID.
func (r *GORMProductRepository) GetByID(ctx context.Context, ownerID, id string) (*models.Product, error) {
	var product models.Product
	if err := r.db.WithContext(ctx).First(&product, "id = ? AND owner_id = ?", id, ownerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("product %s: %w", id, ErrProductNotFound)
		}
		return nil, fmt.Errorf("failed to get product by ID %s: %w", id, err)
	}
	return &product, nil
}

// Create creates a new product in the database.
func (r *GORMProductRepository) Create(ctx context.Context, product *models.Product) error {
	if product.ID == "" {
		product.ID = uuid.New().String()
	}
	if err := r.db.WithContext(ctx).Create(product).Error; err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}
	return nil
}

// Update overwrites the mutable fields of the owner's product.
func (r *GORMProductRepository) Update(ctx context.Context, product *models.Product) error {
	res := r.db.WithContext(ctx).
		Model(&models.Product{}).
		Where("id = ? AND owner_id = ?", product.ID, product.OwnerID).
		Updates(map[string]interface{}{
			"name":        product.Name,
			"picture":     product.Picture,
			"description": product.Description,
			"gender":      product.Gender,
			"category":    product.Category,
			"price":       product.Price,
			"updated_at":  product.UpdatedAt,
		})
	if res.Error != nil {
		return fmt.Errorf("failed to update product: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("product %s: %w", product.ID, ErrProductNotFound)
	}
	return nil
}

// Delete deletes the owner's product by its ID.
func (r *GORMProductRepository) Delete(ctx context.Context, ownerID, id string) error {
	res := r.db.WithContext(ctx).Where("id = ? AND owner_id = ?", id, ownerID).Delete(&models.Product{})
	if res.Error != nil {
		return fmt.Errorf("failed to delete product: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("product %s: %w", id, ErrProductNotFound)
	}
	return nil
}
