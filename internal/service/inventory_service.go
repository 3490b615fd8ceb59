package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/product-store/internal/domain"
	"github.com/spec-kit/product-store/internal/repository"
	apperrors "github.com/spec-kit/product-store/pkg/util/errorutil"
)

// InventoryService coordinates stock workflows.
type InventoryService struct {
	inventories repository.InventoryRepository
	products    repository.ProductRepository
}

// NewInventoryService constructs the service.
func NewInventoryService(inventories repository.InventoryRepository, products repository.ProductRepository) *InventoryService {
	return &InventoryService{inventories: inventories, products: products}
}

// InventoryCreateInput describes stock record creation payload.
type InventoryCreateInput struct {
	ProductID string
	Quantity  int
	Location  string
}

// InventoryUpdateInput describes the mutable stock fields.
type InventoryUpdateInput struct {
	Quantity *int
	Location *string
}

// CreateInventory creates the single stock record for a product.
func (s *InventoryService) CreateInventory(ctx context.Context, input InventoryCreateInput) (*domain.Inventory, error) {
	if _, err := s.products.GetByID(ctx, input.ProductID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("product", map[string]any{"product_id": input.ProductID})
		}
		return nil, err
	}
	if _, err := s.inventories.GetByProductID(ctx, input.ProductID); err == nil {
		return nil, apperrors.NewConflict("inventory already exists for product", map[string]any{"product_id": input.ProductID})
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	inventory := &domain.Inventory{
		ProductID: input.ProductID,
		Quantity:  input.Quantity,
		Location:  input.Location,
	}
	if err := s.inventories.Create(ctx, inventory); err != nil {
		return nil, err
	}
	return inventory, nil
}

// GetInventory fetches a stock record by id.
func (s *InventoryService) GetInventory(ctx context.Context, id string) (*domain.Inventory, error) {
	return s.inventories.GetByID(ctx, id)
}

// GetInventoryByProduct fetches the stock record owned by a product.
func (s *InventoryService) GetInventoryByProduct(ctx context.Context, productID string) (*domain.Inventory, error) {
	return s.inventories.GetByProductID(ctx, productID)
}

// ListInventories returns one page of stock records.
func (s *InventoryService) ListInventories(ctx context.Context, limit, page int) ([]domain.Inventory, error) {
	if limit <= 0 {
		limit = 10
	}
	if page <= 0 {
		page = 1
	}
	return s.inventories.List(ctx, limit, (page-1)*limit)
}

// UpdateInventory applies a partial update.
func (s *InventoryService) UpdateInventory(ctx context.Context, id string, input InventoryUpdateInput) (*domain.Inventory, error) {
	inventory, err := s.inventories.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Quantity != nil {
		if *input.Quantity < 0 {
			return nil, apperrors.NewValidationError("quantity cannot be negative", nil)
		}
		inventory.Quantity = *input.Quantity
	}
	if input.Location != nil {
		inventory.Location = *input.Location
	}

	if err := s.inventories.Update(ctx, inventory); err != nil {
		return nil, err
	}
	return inventory, nil
}

// AddQuantity increases stock for a product.
func (s *InventoryService) AddQuantity(ctx context.Context, productID string, quantity int) (*domain.Inventory, error) {
	inventory, err := s.inventories.GetByProductID(ctx, productID)
	if err != nil {
		return nil, err
	}
	inventory.Quantity += quantity
	if err := s.inventories.Update(ctx, inventory); err != nil {
		return nil, err
	}
	return inventory, nil
}

// RemoveQuantity decreases stock for a product, guarding against
// overselling.
func (s *InventoryService) RemoveQuantity(ctx context.Context, productID string, quantity int) (*domain.Inventory, error) {
	inventory, err := s.inventories.GetByProductID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if inventory.Quantity < quantity {
		return nil, apperrors.NewBadRequest("insufficient stock unit")
	}
	inventory.Quantity -= quantity
	if err := s.inventories.Update(ctx, inventory); err != nil {
		return nil, err
	}
	return inventory, nil
}

// DeleteInventory removes a stock record.
func (s *InventoryService) DeleteInventory(ctx context.Context, id string) error {
	return s.inventories.DeleteByID(ctx, id)
}
