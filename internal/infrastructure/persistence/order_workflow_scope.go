package persistence

import (
	"context"

	appordering "github.com/gestock/backend/internal/application/ordering"
	"github.com/gestock/backend/internal/domain/inventory"
	"github.com/gestock/backend/internal/domain/ordering"
	"gorm.io/gorm"
)

// GormOrderWorkflowScope implements the ordering WorkflowScope. Order state,
// audit trail and inventory effects of a transition commit or roll back as
// one transaction.
type GormOrderWorkflowScope struct {
	db *gorm.DB
}

// NewGormOrderWorkflowScope creates a new GormOrderWorkflowScope
func NewGormOrderWorkflowScope(db *gorm.DB) *GormOrderWorkflowScope {
	return &GormOrderWorkflowScope{db: db}
}

// Execute runs fn within a database transaction. An error from fn rolls the
// transaction back.
func (s *GormOrderWorkflowScope) Execute(ctx context.Context, fn func(repos appordering.WorkflowRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&txWorkflowRepositories{
			orderRepo:    NewGormOrderRepository(tx),
			historyRepo:  NewGormOrderHistoryRepository(tx),
			stockRepo:    NewGormStockRepository(tx),
			movementRepo: NewGormStockMovementRepository(tx),
		})
	})
}

type txWorkflowRepositories struct {
	orderRepo    ordering.OrderRepository
	historyRepo  ordering.OrderHistoryRepository
	stockRepo    inventory.StockRepository
	movementRepo inventory.StockMovementRepository
}

func (r *txWorkflowRepositories) OrderRepo() ordering.OrderRepository {
	return r.orderRepo
}

func (r *txWorkflowRepositories) HistoryRepo() ordering.OrderHistoryRepository {
	return r.historyRepo
}

func (r *txWorkflowRepositories) StockRepo() inventory.StockRepository {
	return r.stockRepo
}

func (r *txWorkflowRepositories) MovementRepo() inventory.StockMovementRepository {
	return r.movementRepo
}

var _ appordering.WorkflowScope = (*GormOrderWorkflowScope)(nil)
var _ appordering.WorkflowRepositories = (*txWorkflowRepositories)(nil)
