package inventory

import (
	"context"

	"github.com/gestock/backend/internal/domain/inventory"
)

// TransactionScope provides transactional access to the inventory
// repositories. When a function is executed within a transaction scope, all
// repository operations are part of the same database transaction and commit
// or roll back atomically, which is what keeps every quantity change paired
// with its movement record.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides access to the inventory repositories
// within one transaction. Both repositories share the same underlying
// database transaction.
type TransactionalRepositories interface {
	// StockRepo returns the stock repository scoped to the current transaction
	StockRepo() inventory.StockRepository
	// MovementRepo returns the movement repository scoped to the current transaction
	MovementRepo() inventory.StockMovementRepository
}

// NoOpTransactionScope is a transaction scope that doesn't actually use
// transactions. Useful for testing.
type NoOpTransactionScope struct {
	stockRepo    inventory.StockRepository
	movementRepo inventory.StockMovementRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope with the given repositories.
func NewNoOpTransactionScope(stockRepo inventory.StockRepository, movementRepo inventory.StockMovementRepository) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		stockRepo:    stockRepo,
		movementRepo: movementRepo,
	}
}

// Execute runs the function without a real transaction.
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// StockRepo returns the stock repository.
func (s *NoOpTransactionScope) StockRepo() inventory.StockRepository {
	return s.stockRepo
}

// MovementRepo returns the movement repository.
func (s *NoOpTransactionScope) MovementRepo() inventory.StockMovementRepository {
	return s.movementRepo
}

var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
