package handlers

import (
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/product-store/internal/api/dto"
	"github.com/spec-kit/product-store/internal/auth"
	"github.com/spec-kit/product-store/internal/domain"
	"github.com/spec-kit/product-store/internal/service"
	apperrors "github.com/spec-kit/product-store/pkg/util/errorutil"
)

// ProductsHandler manages catalog endpoints.
type ProductsHandler struct {
	service *service.ProductService
}

// NewProductsHandler constructs handler.
func NewProductsHandler(productService *service.ProductService) *ProductsHandler {
	return &ProductsHandler{service: productService}
}

// CreateProduct POST /products.
func (h *ProductsHandler) CreateProduct(c *fiber.Ctx) error {
	claims, ok := auth.ClaimsFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.CreateProductRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Name == "" || req.Price < 0 || len(req.Categories) == 0 {
		return apperrors.NewValidationError("name, non-negative price, categories required", nil)
	}

	product, err := h.service.CreateProduct(c.Context(), claims.SubjectID, service.ProductCreateInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Categories:  req.Categories,
		Tags:        req.Tags,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": productSummary(product)})
}

// GetProduct GET /products/:id.
func (h *ProductsHandler) GetProduct(c *fiber.Ctx) error {
	product, err := h.service.GetProduct(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": productSummary(product)})
}

// ListProducts GET /products.
func (h *ProductsHandler) ListProducts(c *fiber.Ctx) error {
	filter := parseProductQuery(c)
	products, err := h.service.ListProducts(c.Context(), filter)
	if err != nil {
		return err
	}
	items := make([]dto.ProductSummary, 0, len(products))
	for i := range products {
		items = append(items, productSummary(&products[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// UpdateProduct PATCH /products/:id.
func (h *ProductsHandler) UpdateProduct(c *fiber.Ctx) error {
	var req dto.UpdateProductRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	product, err := h.service.UpdateProduct(c.Context(), c.Params("id"), service.ProductUpdateInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Categories:  req.Categories,
		Tags:        req.Tags,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": productSummary(product)})
}

// PublishProduct POST /products/:id/publish.
func (h *ProductsHandler) PublishProduct(c *fiber.Ctx) error {
	product, err := h.service.PublishProduct(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": productSummary(product)})
}

// DeleteProduct DELETE /products/:id. The inventory cleanup happens
// asynchronously after this response.
func (h *ProductsHandler) DeleteProduct(c *fiber.Ctx) error {
	if err := h.service.DeleteProduct(c.Context(), c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"status": "deleted"}})
}

func parseProductQuery(c *fiber.Ctx) service.ProductListFilter {
	filter := service.ProductListFilter{}
	if name := c.Query("name"); name != "" {
		filter.Name = &name
	}
	if status := c.Query("status"); status != "" {
		s := domain.ProductStatus(status)
		filter.Status = &s
	}
	if category := c.Query("category"); category != "" {
		filter.Category = &category
	}
	if tag := c.Query("tag"); tag != "" {
		filter.Tag = &tag
	}
	if createdBy := c.Query("created_by"); createdBy != "" {
		filter.CreatedBy = &createdBy
	}
	if limit, err := strconv.Atoi(c.Query("limit")); err == nil {
		filter.Limit = limit
	}
	if page, err := strconv.Atoi(c.Query("page")); err == nil {
		filter.Page = page
	}
	return filter
}

func productSummary(product *domain.Product) dto.ProductSummary {
	return dto.ProductSummary{
		ID:          product.ID,
		Name:        product.Name,
		Description: product.Description,
		Price:       product.Price,
		Categories:  product.Categories,
		Tags:        product.Tags,
		Status:      string(product.Status),
		CreatedBy:   product.CreatedBy,
		CreatedAt:   product.CreatedAt,
		UpdatedAt:   product.UpdatedAt,
	}
}
