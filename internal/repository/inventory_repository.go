package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/product-store/internal/domain"
)

// InventoryRepository encapsulates stock persistence.
type InventoryRepository interface {
	Create(ctx context.Context, inventory *domain.Inventory) error
	Update(ctx context.Context, inventory *domain.Inventory) error
	DeleteByID(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*domain.Inventory, error)
	GetByProductID(ctx context.Context, productID string) (*domain.Inventory, error)
	List(ctx context.Context, limit, offset int) ([]domain.Inventory, error)
}

type inventoryRepository struct {
	pool *pgxpool.Pool
}

// NewInventoryRepository instantiates repository.
func NewInventoryRepository(pool *pgxpool.Pool) InventoryRepository {
	return &inventoryRepository{pool: pool}
}

func (r *inventoryRepository) Create(ctx context.Context, inventory *domain.Inventory) error {
	const query = `
        INSERT INTO inventories (product_id, quantity, location)
        VALUES ($1,$2,$3)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		inventory.ProductID,
		inventory.Quantity,
		inventory.Location,
	).Scan(&inventory.ID, &inventory.CreatedAt, &inventory.UpdatedAt)
}

func (r *inventoryRepository) Update(ctx context.Context, inventory *domain.Inventory) error {
	const query = `
        UPDATE inventories SET quantity=$1, location=$2, updated_at=NOW()
        WHERE id=$3`
	cmd, err := r.pool.Exec(ctx, query,
		inventory.Quantity,
		inventory.Location,
		inventory.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *inventoryRepository) DeleteByID(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM inventories WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *inventoryRepository) GetByID(ctx context.Context, id string) (*domain.Inventory, error) {
	const query = `
        SELECT id, product_id, quantity, location, created_at, updated_at
        FROM inventories WHERE id=$1`
	return r.fetchSingle(ctx, query, id)
}

func (r *inventoryRepository) GetByProductID(ctx context.Context, productID string) (*domain.Inventory, error) {
	const query = `
        SELECT id, product_id, quantity, location, created_at, updated_at
        FROM inventories WHERE product_id=$1`
	return r.fetchSingle(ctx, query, productID)
}

func (r *inventoryRepository) fetchSingle(ctx context.Context, query string, arg any) (*domain.Inventory, error) {
	var inventory domain.Inventory
	if err := r.pool.QueryRow(ctx, query, arg).Scan(
		&inventory.ID,
		&inventory.ProductID,
		&inventory.Quantity,
		&inventory.Location,
		&inventory.CreatedAt,
		&inventory.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &inventory, nil
}

func (r *inventoryRepository) List(ctx context.Context, limit, offset int) ([]domain.Inventory, error) {
	if limit <= 0 {
		limit = 10
	}
	if offset < 0 {
		offset = 0
	}
	const query = `
        SELECT id, product_id, quantity, location, created_at, updated_at
        FROM inventories ORDER BY updated_at DESC LIMIT $1 OFFSET $2`

	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Inventory
	for rows.Next() {
		var inventory domain.Inventory
		if err := rows.Scan(
			&inventory.ID,
			&inventory.ProductID,
			&inventory.Quantity,
			&inventory.Location,
			&inventory.CreatedAt,
			&inventory.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, inventory)
	}
	return result, rows.Err()
}
