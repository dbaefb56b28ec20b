package repositories

import (
	"context"
	"errors"

	"beautyshop/internal/models"
)

// ErrProductNotFound is returned when no product matches the id and owner.
var ErrProductNotFound = errors.New("product not found")

// SortOrder is the direction of a list sort.
type SortOrder int

const (
	// SortAsc sorts ascending.
	SortAsc SortOrder = iota
	// SortDesc sorts descending.
	SortDesc
)

// sortableFields maps the sort names clients may use to stored field names.
var sortableFields = map[string]string{
	"name":       "name",
	"price":      "price",
	"category":   "category",
	"gender":     "gender",
	"created_at": "created_at",
	"updated_at": "updated_at",
}

// SortField resolves a client sort name to a stored field name.
func SortField(name string) (string, bool) {
	field, ok := sortableFields[name]
	return field, ok
}

// ProductFilter describes one page of an owner's products. Empty optional fields
// do not constrain the result. An empty SortField leaves the order to the store.
type ProductFilter struct {
	OwnerID   string
	Category  string
	Gender    string
	Name      string
	SortField string
	SortOrder SortOrder
	Offset    int
	Limit     int
}

// ProductRepository defines the interface for product data access. Every method
// is scoped to a single owner.
type ProductRepository interface {
	// List returns the requested page and the total number of matching products.
	List(ctx context.Context, filter ProductFilter) ([]models.Product, int64, error)
	GetByID(ctx context.Context, ownerID, id string) (*models.Product, error)
	Create(ctx context.Context, product *models.Product) error
	// Update overwrites the mutable fields of the product matching product.ID and
	// product.OwnerID.
	Update(ctx context.Context, product *models.Product) error
	Delete(ctx context.Context, ownerID, id string) error
}
