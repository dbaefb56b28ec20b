package repositories

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"beautyshop/internal/models"

	"github.com/google/uuid"
)

// MemoryProductRepository is an in-memory implementation of ProductRepository.
// Unsorted lists come back in insertion order.
type MemoryProductRepository struct {
	products map[string]models.Product
	order    []string
	mu       sync.RWMutex
}

// NewMemoryProductRepository creates a new instance of MemoryProductRepository.
func NewMemoryProductRepository() *MemoryProductRepository {
	return &MemoryProductRepository{
		products: make(map[string]models.Product),
	}
}

// List returns one page of the owner's matching products.
func (r *MemoryProductRepository) List(ctx context.Context, filter ProductFilter) ([]models.Product, int64, error) {
	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	name := strings.ToLower(filter.Name)
	matched := make([]models.Product, 0)
	for _, id := range r.order {
		p := r.products[id]
		if p.OwnerID != filter.OwnerID {
			continue
		}
		if filter.Category != "" && p.Category != filter.Category {
			continue
		}
		if filter.Gender != "" && p.Gender != filter.Gender {
			continue
		}
		if name != "" && !strings.Contains(strings.ToLower(p.Name), name) {
			continue
		}
		matched = append(matched, p)
	}

	if filter.SortField != "" {
		less := productLess(filter.SortField)
		sort.SliceStable(matched, func(i, j int) bool {
			if filter.SortOrder == SortDesc {
				return less(matched[j], matched[i])
			}
			return less(matched[i], matched[j])
		})
	}

	total := int64(len(matched))
	start := min(max(filter.Offset, 0), len(matched))
	end := len(matched)
	if filter.Limit > 0 {
		end = min(start+filter.Limit, len(matched))
	}
	return matched[start:end], total, nil
}

func productLess(field string) func(a, b models.Product) bool {
	switch field {
	case "price":
		return func(a, b models.Product) bool { return a.Price < b.Price }
	case "category":
		return func(a, b models.Product) bool { return a.Category < b.Category }
	case "gender":
		return func(a, b models.Product) bool { return a.Gender < b.Gender }
	case "created_at":
		return func(a, b models.Product) bool { return a.CreatedAt.Before(b.CreatedAt) }
	case "updated_at":
		return func(a, b models.Product) bool { return a.UpdatedAt.Before(b.UpdatedAt) }
	default:
		return func(a, b models.Product) bool { return a.Name < b.Name }
	}
}

// GetByID returns the owner's product with the given ID.
func (r *MemoryProductRepository) GetByID(ctx context.Context, ownerID, id string) (*models.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	product, ok := r.products[id]
	if !ok || product.OwnerID != ownerID {
		return nil, fmt.Errorf("product %s: %w", id, ErrProductNotFound)
	}
	return &product, nil
}

// Create adds a new product.
func (r *MemoryProductRepository) Create(ctx context.Context, product *models.Product) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if product.ID == "" {
		product.ID = uuid.New().String()
	}
	if _, exists := r.products[product.ID]; !exists {
		r.order = append(r.order, product.ID)
	}
	r.products[product.ID] = *product
	return nil
}

// Update overwrites the mutable fields of an existing product.
func (r *MemoryProductRepository) Update(ctx context.Context, product *models.Product) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.products[product.ID]
	if !ok || existing.OwnerID != product.OwnerID {
		return fmt.Errorf("product %s: %w", product.ID, ErrProductNotFound)
	}
	existing.Name = product.Name
	existing.Picture = product.Picture
	existing.Description = product.Description
	existing.Gender = product.Gender
	existing.Category = product.Category
	existing.Price = product.Price
	existing.UpdatedAt = product.UpdatedAt
	r.products[product.ID] = existing
	*product = existing
	return nil
}

// Delete removes the owner's product with the given ID.
func (r *MemoryProductRepository) Delete(ctx context.Context, ownerID, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	product, ok := r.products[id]
	if !ok || product.OwnerID != ownerID {
		return fmt.Errorf("product %s: %w", id, ErrProductNotFound)
	}
	delete(r.products, id)
	for i, existing := range r.order {
		if existing == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}
