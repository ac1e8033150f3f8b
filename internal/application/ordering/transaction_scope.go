package ordering

import (
	"context"

	"github.com/gestock/backend/internal/domain/inventory"
	"github.com/gestock/backend/internal/domain/ordering"
)

// WorkflowScope provides transactional access to every repository the order
// workflow touches. Confirm and cancel mutate the order, the stock and two
// append-only logs in one unit; the scope guarantees they commit or roll
// back together.
type WorkflowScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	Execute(ctx context.Context, fn func(repos WorkflowRepositories) error) error
}

// WorkflowRepositories provides access to the workflow's repositories within
// one transaction. All repositories share the same underlying database
// transaction.
type WorkflowRepositories interface {
	// OrderRepo returns the order repository scoped to the current transaction
	OrderRepo() ordering.OrderRepository
	// HistoryRepo returns the audit trail repository scoped to the current transaction
	HistoryRepo() ordering.OrderHistoryRepository
	// StockRepo returns the stock repository scoped to the current transaction
	StockRepo() inventory.StockRepository
	// MovementRepo returns the movement repository scoped to the current transaction
	MovementRepo() inventory.StockMovementRepository
}

// NoOpWorkflowScope is a workflow scope without real transactions, for tests
type NoOpWorkflowScope struct {
	orderRepo    ordering.OrderRepository
	historyRepo  ordering.OrderHistoryRepository
	stockRepo    inventory.StockRepository
	movementRepo inventory.StockMovementRepository
}

// NewNoOpWorkflowScope creates a NoOpWorkflowScope with the given repositories.
func NewNoOpWorkflowScope(
	orderRepo ordering.OrderRepository,
	historyRepo ordering.OrderHistoryRepository,
	stockRepo inventory.StockRepository,
	movementRepo inventory.StockMovementRepository,
) *NoOpWorkflowScope {
	return &NoOpWorkflowScope{
		orderRepo:    orderRepo,
		historyRepo:  historyRepo,
		stockRepo:    stockRepo,
		movementRepo: movementRepo,
	}
}

// Execute runs the function without a real transaction.
func (s *NoOpWorkflowScope) Execute(_ context.Context, fn func(repos WorkflowRepositories) error) error {
	return fn(s)
}

// OrderRepo returns the order repository.
func (s *NoOpWorkflowScope) OrderRepo() ordering.OrderRepository {
	return s.orderRepo
}

// HistoryRepo returns the audit trail repository.
func (s *NoOpWorkflowScope) HistoryRepo() ordering.OrderHistoryRepository {
	return s.historyRepo
}

// StockRepo returns the stock repository.
func (s *NoOpWorkflowScope) StockRepo() inventory.StockRepository {
	return s.stockRepo
}

// MovementRepo returns the movement repository.
func (s *NoOpWorkflowScope) MovementRepo() inventory.StockMovementRepository {
	return s.movementRepo
}

var _ WorkflowScope = (*NoOpWorkflowScope)(nil)
var _ WorkflowRepositories = (*NoOpWorkflowScope)(nil)
