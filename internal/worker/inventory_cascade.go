package worker

import (
	"context"
	"errors"
	"time"

	"github.com/avast/retry-go/v5"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/product-store/internal/config"
	"github.com/spec-kit/product-store/internal/domain"
	"github.com/spec-kit/product-store/internal/events"
	"github.com/spec-kit/product-store/internal/observability"
)

// Cascade outcome labels recorded in metrics.
const (
	CascadeOutcomeSuccess   = "success"
	CascadeOutcomeNotFound  = "not_found"
	CascadeOutcomeAbandoned = "abandoned"
)

// InventoryRemover is the slice of the inventory service the cascade needs.
type InventoryRemover interface {
	GetInventoryByProduct(ctx context.Context, productID string) (*domain.Inventory, error)
	DeleteInventory(ctx context.Context, id string) error
}

// InventoryCascade drives inventory cleanup after a product hard-delete.
// It converges eventually: transient lookup/delete failures are retried
// with a fixed delay up to the attempt budget, then the record is
// abandoned with a log line but no error to any caller.
type InventoryCascade struct {
	inventories InventoryRemover
	dispatcher  events.Dispatcher
	logger      *zap.Logger
	metrics     *observability.Metrics
	maxAttempts uint
	delay       time.Duration
}

// NewInventoryCascade builds the worker.
func NewInventoryCascade(inventories InventoryRemover, dispatcher events.Dispatcher, logger *zap.Logger, metrics *observability.Metrics, cfg config.CascadeConfig) *InventoryCascade {
	attempts := cfg.MaxAttempts
	if attempts <= 0 {
		attempts = 3
	}
	return &InventoryCascade{
		inventories: inventories,
		dispatcher:  dispatcher,
		logger:      logger,
		metrics:     metrics,
		maxAttempts: uint(attempts),
		delay:       cfg.RetryDelay(),
	}
}

// Register subscribes the cascade to product deletions. Called once
// during startup wiring.
func (w *InventoryCascade) Register() {
	if w.dispatcher == nil {
		return
	}
	w.dispatcher.Subscribe(events.EventProductDeleted, w.HandleProductDeleted)
}

// HandleProductDeleted removes the inventory record owned by the deleted
// product. A missing record means the cascade already converged (or the
// product never had stock) and is not retried; only transient failures
// consume the retry budget.
func (w *InventoryCascade) HandleProductDeleted(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.ProductDeletedPayload)
	if !ok {
		w.logger.Warn("unexpected payload for product_deleted", zap.Any("payload", event.Payload))
		return nil
	}

	outcome := CascadeOutcomeSuccess
	r := retry.New(
		retry.Context(ctx),
		retry.Attempts(w.maxAttempts),
		retry.DelayType(func(n uint, err error, config retry.DelayContext) time.Duration {
			return w.delay
		}),
	)

	err := r.Do(func() error {
		inventory, err := w.inventories.GetInventoryByProduct(ctx, payload.ProductID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				outcome = CascadeOutcomeNotFound
				return nil
			}
			return err
		}
		if err := w.inventories.DeleteInventory(ctx, inventory.ID); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				outcome = CascadeOutcomeNotFound
				return nil
			}
			return err
		}
		return nil
	})

	if err != nil {
		outcome = CascadeOutcomeAbandoned
		w.logger.Warn("inventory cascade abandoned",
			zap.String("product_id", payload.ProductID),
			zap.Uint("attempts", w.maxAttempts),
			zap.Error(err),
		)
	}

	w.metrics.RecordCascade(outcome)
	if outcome != CascadeOutcomeAbandoned {
		w.logger.Debug("inventory cascade finished",
			zap.String("product_id", payload.ProductID),
			zap.String("outcome", outcome),
		)
	}
	return err
}
