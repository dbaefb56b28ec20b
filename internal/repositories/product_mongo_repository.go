package repositories

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"beautyshop/internal/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const productCollectionName = "products"

// MongoProductRepository is a MongoDB implementation of ProductRepository.
type MongoProductRepository struct {
	collection *mongo.Collection
}

// NewMongoProductRepository creates a MongoProductRepository on db.
func NewMongoProductRepository(db *mongo.Database) *MongoProductRepository {
	return &MongoProductRepository{collection: db.Collection(productCollectionName)}
}

// EnsureIndexes creates the indexes list queries rely on.
func (r *MongoProductRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "owner_id", Value: 1}, {Key: "category", Value: 1}}},
		{Keys: bson.D{{Key: "owner_id", Value: 1}, {Key: "gender", Value: 1}}},
	})
	if err != nil {
		return fmt.Errorf("failed to create product indexes: %w", err)
	}
	return nil
}

// mongoFilter translates filter into a query document.
func mongoFilter(filter ProductFilter) bson.M {
	query := bson.M{"owner_id": filter.OwnerID}
	if filter.Category != "" {
		query["category"] = filter.Category
	}
	if filter.Gender != "" {
		query["gender"] = filter.Gender
	}
	if filter.Name != "" {
		query["name"] = primitive.Regex{Pattern: regexp.QuoteMeta(filter.Name), Options: "i"}
	}
	return query
}

// mongoFindOptions translates the sort and page of filter into find options.
func mongoFindOptions(filter ProductFilter) *options.FindOptions {
	findOptions := options.Find()
	if filter.SortField != "" {
		direction := 1
		if filter.SortOrder == SortDesc {
			direction = -1
		}
		findOptions.SetSort(bson.D{{Key: filter.SortField, Value: direction}})
	}
	if filter.Offset > 0 {
		findOptions.SetSkip(int64(filter.Offset))
	}
	if filter.Limit > 0 {
		findOptions.SetLimit(int64(filter.Limit))
	}
	return findOptions
}

// List counts the matching products and fetches the requested page.
func (r *MongoProductRepository) List(ctx context.Context, filter ProductFilter) ([]models.Product, int64, error) {
	query := mongoFilter(filter)

	total, err := r.collection.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count products: %w", err)
	}

	cursor, err := r.collection.Find(ctx, query, mongoFindOptions(filter))
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list products: %w", err)
	}
	defer cursor.Close(ctx)

	products := make([]models.Product, 0)
	if err := cursor.All(ctx, &products); err != nil {
		return nil, 0, fmt.Errorf("failed to decode products: %w", err)
	}
	return products, total, nil
}

// GetByID retrieves the owner's product by its ID.
func (r *MongoProductRepository) GetByID(ctx context.Context, ownerID, id string) (*models.Product, error) {
	var product models.Product
	err := r.collection.FindOne(ctx, bson.M{"_id": id, "owner_id": ownerID}).Decode(&product)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("product %s: %w", id, ErrProductNotFound)
		}
		return nil, fmt.Errorf("failed to find product: %w", err)
	}
	return &product, nil
}

// Create inserts a new product document.
func (r *MongoProductRepository) Create(ctx context.Context, product *models.Product) error {
	if product.ID == "" {
		product.ID = uuid.New().String()
	}
	if _, err := r.collection.InsertOne(ctx, product); err != nil {
		return fmt.Errorf("failed to insert product: %w", err)
	}
	return nil
}

// Update overwrites the mutable fields of the owner's product.
func (r *MongoProductRepository) Update(ctx context.Context, product *models.Product) error {
	filter := bson.M{"_id": product.ID, "owner_id": product.OwnerID}
	update := bson.M{
		"$set": bson.M{
			"name":        product.Name,
			"picture":     product.Picture,
			"description": product.Description,
			"gender":      product.Gender,
			"category":    product.Category,
			"price":       product.Price,
			"updated_at":  product.UpdatedAt,
		},
	}

	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to update product: %w", err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("product %s: %w", product.ID, ErrProductNotFound)
	}
	return nil
}

// Delete removes the owner's product.
func (r *MongoProductRepository) Delete(ctx context.Context, ownerID, id string) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id, "owner_id": ownerID})
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("product %s: %w", id, ErrProductNotFound)
	}
	return nil
}
