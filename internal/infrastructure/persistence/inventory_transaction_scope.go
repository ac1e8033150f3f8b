package persistence

import (
	"context"

	appinventory "github.com/gestock/backend/internal/application/inventory"
	"github.com/gestock/backend/internal/domain/inventory"
	"gorm.io/gorm"
)

// GormInventoryTransactionScope implements the inventory TransactionScope by
// wrapping the callback in one database transaction and handing out
// repositories bound to it.
type GormInventoryTransactionScope struct {
	db *gorm.DB
}

// NewGormInventoryTransactionScope creates a new GormInventoryTransactionScope
func NewGormInventoryTransactionScope(db *gorm.DB) *GormInventoryTransactionScope {
	return &GormInventoryTransactionScope{db: db}
}

// Execute runs fn within a database transaction. An error from fn rolls the
// transaction back.
func (s *GormInventoryTransactionScope) Execute(ctx context.Context, fn func(repos appinventory.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&txInventoryRepositories{
			stockRepo:    NewGormStockRepository(tx),
			movementRepo: NewGormStockMovementRepository(tx),
		})
	})
}

type txInventoryRepositories struct {
	stockRepo    inventory.StockRepository
	movementRepo inventory.StockMovementRepository
}

func (r *txInventoryRepositories) StockRepo() inventory.StockRepository {
	return r.stockRepo
}

func (r *txInventoryRepositories) MovementRepo() inventory.StockMovementRepository {
	return r.movementRepo
}

var _ appinventory.TransactionScope = (*GormInventoryTransactionScope)(nil)
var _ appinventory.TransactionalRepositories = (*txInventoryRepositories)(nil)
