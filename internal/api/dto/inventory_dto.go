package dto

import "time"

// CreateInventoryRequest payload for opening a stock record.
type CreateInventoryRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
	Location  string `json:"location"`
}

// UpdateInventoryRequest payload for partial stock updates.
type UpdateInventoryRequest struct {
	Quantity *int    `json:"quantity"`
	Location *string `json:"location"`
}

// AdjustQuantityRequest payload for stock add/remove operations.
type AdjustQuantityRequest struct {
	Quantity int `json:"quantity"`
}

// InventorySummary response shape for stock records.
type InventorySummary struct {
	ID        string    `json:"id"`
	ProductID string    `json:"product_id"`
	Quantity  int       `json:"quantity"`
	Location  string    `json:"location"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
