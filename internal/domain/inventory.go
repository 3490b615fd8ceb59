package domain

import "time"

// Inventory tracks stock for exactly one product. Its lifecycle never
// outlives the owning product, though cleanup after a product delete is
// asynchronous.
type Inventory struct {
	ID        string
	ProductID string
	Quantity  int
	Location  string
	CreatedAt time.Time
	UpdatedAt time.Time
}
