package ordering

import (
	"context"

	"github.com/gestock/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// OrderRepository defines the persistence interface for orders.
// Find operations load the order together with its lines.
type OrderRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Order, error)
	FindByNumber(ctx context.Context, number string) (*Order, error)
	FindAll(ctx context.Context, filter shared.Filter) (shared.Paginated[Order], error)
	Save(ctx context.Context, order *Order) error
	// SaveWithLock persists the order only if the stored version still
	// matches expectedVersion, otherwise it returns a concurrency conflict.
	SaveWithLock(ctx context.Context, order *Order, expectedVersion int) error
	ExistsByNumber(ctx context.Context, number string) (bool, error)
	CountByStatus(ctx context.Context) (map[OrderStatus]int64, error)
}

// OrderHistoryRepository persists the append-only audit trail
type OrderHistoryRepository interface {
	Append(ctx context.Context, entry *OrderHistoryEntry) error
	FindByOrder(ctx context.Context, orderID uuid.UUID) ([]OrderHistoryEntry, error)
}
