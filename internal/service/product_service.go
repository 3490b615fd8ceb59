package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/product-store/internal/domain"
	"github.com/spec-kit/product-store/internal/events"
	"github.com/spec-kit/product-store/internal/repository"
	apperrors "github.com/spec-kit/product-store/pkg/util/errorutil"
)

// ProductCache caches catalog reads. Implementations must treat failures
// as misses.
type ProductCache interface {
	Get(ctx context.Context, id string) (*domain.Product, bool)
	Set(ctx context.Context, product *domain.Product)
	Invalidate(ctx context.Context, id string)
}

// ProductService coordinates catalog workflows.
type ProductService struct {
	products   repository.ProductRepository
	cache      ProductCache
	dispatcher events.Dispatcher
}

// ProductDependencies bundles collaborators for the product service.
type ProductDependencies struct {
	ProductRepo repository.ProductRepository
	Cache       ProductCache
	Dispatcher  events.Dispatcher
}

// ProductCreateInput describes product creation payload.
type ProductCreateInput struct {
	Name        string
	Description string
	Price       float64
	Categories  []string
	Tags        []string
}

// ProductUpdateInput describes the mutable catalog fields.
type ProductUpdateInput struct {
	Name        *string
	Description *string
	Price       *float64
	Categories  []string
	Tags        []string
}

// ProductListFilter describes catalog listing filters.
type ProductListFilter struct {
	Name      *string
	Status    *domain.ProductStatus
	Category  *string
	Tag       *string
	CreatedBy *string
	Limit     int
	Page      int
}

// NewProductService constructs the service.
func NewProductService(deps ProductDependencies) *ProductService {
	return &ProductService{
		products:   deps.ProductRepo,
		cache:      deps.Cache,
		dispatcher: deps.Dispatcher,
	}
}

// CreateProduct creates a catalog entry, rejecting duplicate names.
func (s *ProductService) CreateProduct(ctx context.Context, createdBy string, input ProductCreateInput) (*domain.Product, error) {
	if _, err := s.products.GetByName(ctx, input.Name); err == nil {
		return nil, apperrors.NewBadRequest("product already exists")
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	product := &domain.Product{
		Name:        input.Name,
		Description: input.Description,
		Price:       input.Price,
		Categories:  input.Categories,
		Tags:        input.Tags,
		Status:      domain.ProductStatusUnpublished,
		CreatedBy:   createdBy,
	}
	if err := s.products.Create(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// GetProduct fetches a catalog entry, serving hot reads from cache.
func (s *ProductService) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	if s.cache != nil {
		if product, ok := s.cache.Get(ctx, id); ok {
			return product, nil
		}
	}

	product, err := s.products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		s.cache.Set(ctx, product)
	}
	return product, nil
}

// ListProducts returns a filtered catalog page.
func (s *ProductService) ListProducts(ctx context.Context, filter ProductListFilter) ([]domain.Product, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = 10
	}
	page := filter.Page
	if page <= 0 {
		page = 1
	}

	return s.products.ListWithFilter(ctx, repository.ProductFilter{
		Name:      filter.Name,
		Status:    filter.Status,
		Category:  filter.Category,
		Tag:       filter.Tag,
		CreatedBy: filter.CreatedBy,
		Limit:     limit,
		Offset:    (page - 1) * limit,
	})
}

// UpdateProduct applies a partial update.
func (s *ProductService) UpdateProduct(ctx context.Context, id string, input ProductUpdateInput) (*domain.Product, error) {
	product, err := s.products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		product.Name = *input.Name
	}
	if input.Description != nil {
		product.Description = *input.Description
	}
	if input.Price != nil {
		product.Price = *input.Price
	}
	if input.Categories != nil {
		product.Categories = input.Categories
	}
	if input.Tags != nil {
		product.Tags = input.Tags
	}

	if err := s.products.Update(ctx, product); err != nil {
		return nil, err
	}
	if s.cache != nil {
		s.cache.Invalidate(ctx, id)
	}
	return product, nil
}

// PublishProduct flips a catalog entry to the published state.
func (s *ProductService) PublishProduct(ctx context.Context, id string) (*domain.Product, error) {
	product, err := s.products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	product.Status = domain.ProductStatusPublished
	if err := s.products.Update(ctx, product); err != nil {
		return nil, err
	}
	if s.cache != nil {
		s.cache.Invalidate(ctx, id)
	}
	return product, nil
}

// DeleteProduct hard-deletes a catalog entry and announces the deletion.
// The inventory cascade runs asynchronously; the caller's response does
// not wait for it.
func (s *ProductService) DeleteProduct(ctx context.Context, id string) error {
	if err := s.products.Delete(ctx, id); err != nil {
		return err
	}
	if s.cache != nil {
		s.cache.Invalidate(ctx, id)
	}

	s.publishEvent(events.Event{
		Type:    events.EventProductDeleted,
		Payload: events.ProductDeletedPayload{ProductID: id},
	})
	return nil
}

func (s *ProductService) publishEvent(event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.EmittedAt.IsZero() {
		event.EmittedAt = time.Now()
	}
	// Detached from the request context: the cascade outlives the response.
	s.dispatcher.Publish(context.Background(), event)
}
