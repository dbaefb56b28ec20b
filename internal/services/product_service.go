package services

import (
	"context"
	"fmt"
	"log"

	"beautyshop/internal/models"
	"beautyshop/internal/repositories"
	"beautyshop/pkg/clock"
)

// EventPublisher delivers product events to the event bus.
type EventPublisher interface {
	PublishProductEvent(event models.ProductEvent) error
}

// ListQuery carries the raw list parameters of a request.
type ListQuery struct {
	Page     int
	PageSize int
	Category string
	Gender   string
	Name     string
	Sort     string
	Order    string
}

// ProductPage is the page envelope returned by List.
type ProductPage struct {
	Data       []models.Product `json:"data"`
	Page       int              `json:"page"`
	TotalPages int              `json:"totalPages"`
	TotalItems int64            `json:"totalItems"`
}

// ProductService handles business logic related to products. Every operation is
// scoped to the calling owner.
type ProductService struct {
	repo        repositories.ProductRepository
	publisher   EventPublisher
	clock       clock.Clock
	maxPageSize int
}

// NewProductService creates a new ProductService. publisher may be nil, in which
// case no events are sent.
func NewProductService(repo repositories.ProductRepository, publisher EventPublisher, clk clock.Clock, maxPageSize int) *ProductService {
	if clk == nil {
		clk = clock.NewRealClock()
	}
	if maxPageSize <= 0 {
		maxPageSize = DefaultMaxPageSize
	}
	return &ProductService{
		repo:        repo,
		publisher:   publisher,
		clock:       clk,
		maxPageSize: maxPageSize,
	}
}

// BuildFilter turns a list request into a repository filter for ownerID and
// returns the normalised pagination it used.
func (s *ProductService) BuildFilter(ownerID string, q ListQuery) (repositories.ProductFilter, Pagination) {
	page := NewPagination(q.Page, q.PageSize, s.maxPageSize)
	filter := repositories.ProductFilter{
		OwnerID:  ownerID,
		Category: q.Category,
		Gender:   q.Gender,
		Name:     q.Name,
		Offset:   page.Offset(),
		Limit:    page.PageSize,
	}
	if field, ok := repositories.SortField(q.Sort); ok {
		filter.SortField = field
		filter.SortOrder = repositories.SortAsc
		if q.Order == "desc" {
			filter.SortOrder = repositories.SortDesc
		}
	}
	return filter, page
}

// List returns one page of the owner's products.
func (s *ProductService) List(ctx context.Context, ownerID string, q ListQuery) (*ProductPage, error) {
	filter, page := s.BuildFilter(ownerID, q)

	products, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list products for owner %s: %w", ownerID, err)
	}
	if products == nil {
		products = []models.Product{}
	}

	return &ProductPage{
		Data:       products,
		Page:       page.Page,
		TotalPages: page.TotalPages(total),
		TotalItems: total,
	}, nil
}

// GetProductByID retrieves one of the owner's products.
func (s *ProductService) GetProductByID(ctx context.Context, ownerID, id string) (*models.Product, error) {
	return s.repo.GetByID(ctx, ownerID, id)
}

// CreateProduct stores a new product owned by ownerID.
func (s *ProductService) CreateProduct(ctx context.Context, ownerID string, in models.ProductInput) (*models.Product, error) {
	price, err := in.PriceValue()
	if err != nil {
		return nil, fmt.Errorf("invalid price %q: %w", in.Price, err)
	}

	now := s.clock.Now()
	product := &models.Product{
		OwnerID:     ownerID,
		Name:        in.Name,
		Picture:     in.Picture,
		Description: in.Description,
		Gender:      in.Gender,
		Category:    in.Category,
		Price:       price,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.repo.Create(ctx, product); err != nil {
		return nil, err
	}

	s.publish(models.EventProductCreated, product)
	return product, nil
}

// UpdateProduct overwrites the fields of one of the owner's products.
func (s *ProductService) UpdateProduct(ctx context.Context, ownerID, id string, in models.ProductInput) (*models.Product, error) {
	price, err := in.PriceValue()
	if err != nil {
		return nil, fmt.Errorf("invalid price %q: %w", in.Price, err)
	}

	product := &models.Product{
		ID:          id,
		OwnerID:     ownerID,
		Name:        in.Name,
		Picture:     in.Picture,
		Description: in.Description,
		Gender:      in.Gender,
		Category:    in.Category,
		Price:       price,
		UpdatedAt:   s.clock.Now(),
	}
	if err := s.repo.Update(ctx, product); err != nil {
		return nil, err
	}

	s.publish(models.EventProductUpdated, product)
	return product, nil
}

// DeleteProduct removes one of the owner's products.
func (s *ProductService) DeleteProduct(ctx context.Context, ownerID, id string) error {
	if err := s.repo.Delete(ctx, ownerID, id); err != nil {
		return err
	}

	s.publish(models.EventProductDeleted, &models.Product{ID: id, OwnerID: ownerID})
	return nil
}

// publish sends an event without failing the caller.
func (s *ProductService) publish(eventType string, product *models.Product) {
	if s.publisher == nil {
		return
	}
	event := models.ProductEvent{
		Type:       eventType,
		ProductID:  product.ID,
		OwnerID:    product.OwnerID,
		OccurredAt: s.clock.Now(),
	}
	if err := s.publisher.PublishProductEvent(event); err != nil {
		log.Printf("Warning: failed to publish %s for product %s: %v", eventType, product.ID, err)
	}
}
