package domain

import "time"

// ProductStatus enumerates catalog visibility states.
type ProductStatus string

const (
	ProductStatusUnpublished ProductStatus = "UNPUBLISHED"
	ProductStatusPublished   ProductStatus = "PUBLISHED"
)

// Product is the aggregate for catalog entries.
type Product struct {
	ID          string
	Name        string
	Description string
	Price       float64
	Categories  []string
	Tags        []string
	Status      ProductStatus
	CreatedBy   string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
