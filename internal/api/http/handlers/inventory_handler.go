package handlers

import (
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/product-store/internal/api/dto"
	"github.com/spec-kit/product-store/internal/domain"
	"github.com/spec-kit/product-store/internal/service"
	apperrors "github.com/spec-kit/product-store/pkg/util/errorutil"
)

// InventoryHandler manages stock endpoints.
type InventoryHandler struct {
	service *service.InventoryService
}

// NewInventoryHandler constructs handler.
func NewInventoryHandler(inventoryService *service.InventoryService) *InventoryHandler {
	return &InventoryHandler{service: inventoryService}
}

// CreateInventory POST /inventories.
func (h *InventoryHandler) CreateInventory(c *fiber.Ctx) error {
	var req dto.CreateInventoryRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.ProductID == "" || req.Location == "" || req.Quantity < 0 {
		return apperrors.NewValidationError("product_id, location, non-negative quantity required", nil)
	}

	inventory, err := h.service.CreateInventory(c.Context(), service.InventoryCreateInput{
		ProductID: req.ProductID,
		Quantity:  req.Quantity,
		Location:  req.Location,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": inventorySummary(inventory)})
}

// GetInventory GET /inventories/:id.
func (h *InventoryHandler) GetInventory(c *fiber.Ctx) error {
	inventory, err := h.service.GetInventory(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": inventorySummary(inventory)})
}

// GetInventoryByProduct GET /products/:id/inventory.
func (h *InventoryHandler) GetInventoryByProduct(c *fiber.Ctx) error {
	inventory, err := h.service.GetInventoryByProduct(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": inventorySummary(inventory)})
}

// ListInventories GET /inventories.
func (h *InventoryHandler) ListInventories(c *fiber.Ctx) error {
	limit, _ := strconv.Atoi(c.Query("limit"))
	page, _ := strconv.Atoi(c.Query("page"))

	inventories, err := h.service.ListInventories(c.Context(), limit, page)
	if err != nil {
		return err
	}
	items := make([]dto.InventorySummary, 0, len(inventories))
	for i := range inventories {
		items = append(items, inventorySummary(&inventories[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// UpdateInventory PATCH /inventories/:id.
func (h *InventoryHandler) UpdateInventory(c *fiber.Ctx) error {
	var req dto.UpdateInventoryRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	inventory, err := h.service.UpdateInventory(c.Context(), c.Params("id"), service.InventoryUpdateInput{
		Quantity: req.Quantity,
		Location: req.Location,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": inventorySummary(inventory)})
}

// AddQuantity POST /products/:id/inventory/add.
func (h *InventoryHandler) AddQuantity(c *fiber.Ctx) error {
	var req dto.AdjustQuantityRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Quantity <= 0 {
		return apperrors.NewValidationError("quantity must be positive", nil)
	}

	inventory, err := h.service.AddQuantity(c.Context(), c.Params("id"), req.Quantity)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": inventorySummary(inventory)})
}

// RemoveQuantity POST /products/:id/inventory/remove.
func (h *InventoryHandler) RemoveQuantity(c *fiber.Ctx) error {
	var req dto.AdjustQuantityRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Quantity <= 0 {
		return apperrors.NewValidationError("quantity must be positive", nil)
	}

	inventory, err := h.service.RemoveQuantity(c.Context(), c.Params("id"), req.Quantity)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": inventorySummary(inventory)})
}

func inventorySummary(inventory *domain.Inventory) dto.InventorySummary {
	return dto.InventorySummary{
		ID:        inventory.ID,
		ProductID: inventory.ProductID,
		Quantity:  inventory.Quantity,
		Location:  inventory.Location,
		CreatedAt: inventory.CreatedAt,
		UpdatedAt: inventory.UpdatedAt,
	}
}
