package inventory

import (
	"context"

	"github.com/gestock/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// StockRepository defines the persistence interface for stock records
type StockRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Stock, error)
	FindByProductID(ctx context.Context, productID uuid.UUID) (*Stock, error)
	FindAll(ctx context.Context, filter shared.Filter) (shared.Paginated[Stock], error)
	// FindBelowThreshold returns stocks whose quantity is at or under their
	// alert threshold.
	FindBelowThreshold(ctx context.Context) ([]Stock, error)
	// FindOutOfStock returns stocks with zero quantity.
	FindOutOfStock(ctx context.Context) ([]Stock, error)
	Save(ctx context.Context, stock *Stock) error
	// SaveWithLock persists the stock only if the stored version still
	// matches expectedVersion, otherwise it returns a concurrency conflict.
	SaveWithLock(ctx context.Context, stock *Stock, expectedVersion int) error
}

// StockMovementRepository persists the append-only movement ledger
type StockMovementRepository interface {
	Append(ctx context.Context, movement *StockMovement) error
	FindByProduct(ctx context.Context, productID uuid.UUID, filter shared.Filter) (shared.Paginated[StockMovement], error)
	FindByReference(ctx context.Context, reference string) ([]StockMovement, error)
	FindAll(ctx context.Context, filter shared.Filter) (shared.Paginated[StockMovement], error)
}
