package dto

import "time"

// CreateProductRequest payload for new catalog entries.
type CreateProductRequest struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Price       float64  `json:"price"`
	Categories  []string `json:"categories"`
	Tags        []string `json:"tags"`
}

// UpdateProductRequest payload for partial catalog updates.
type UpdateProductRequest struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
	Categories  []string `json:"categories"`
	Tags        []string `json:"tags"`
}

// ProductSummary response shape for catalog entries.
type ProductSummary struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	Categories  []string  `json:"categories"`
	Tags        []string  `json:"tags"`
	Status      string    `json:"status"`
	CreatedBy   string    `json:"created_by"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
