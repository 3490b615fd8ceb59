package events

import "time"

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventProductDeleted EventType = "product_deleted"
)

// Event represents a domain event emitted by services. Delivery is
// in-process and fire-and-forget: publishers get no receipt beyond
// "listener attached or not".
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	EmittedAt time.Time   `json:"emitted_at"`
	Payload   interface{} `json:"payload"`
}

// ProductDeletedPayload is the documented contract for EventProductDeleted.
type ProductDeletedPayload struct {
	ProductID string `json:"product_id"`
}
