package inventory

import (
	"context"
	"errors"

	"github.com/gestock/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// LineItem is a product-quantity pair handed to the order-level ledger
// operations. It deliberately mirrors an order line without depending on
// the ordering context.
type LineItem struct {
	ProductID uuid.UUID
	Quantity  int64
}

// Ledger is the domain service in front of stock and movement persistence.
// It guarantees that every quantity change is paired with exactly one
// immutable movement record. Construct it with transaction-scoped
// repositories so a failure rolls back both writes.
type Ledger struct {
	stocks    StockRepository
	movements StockMovementRepository
}

// NewLedger creates a ledger over the given repositories
func NewLedger(stocks StockRepository, movements StockMovementRepository) *Ledger {
	return &Ledger{stocks: stocks, movements: movements}
}

// Ensure returns the stock record for a product, creating an empty one on
// first reference
func (l *Ledger) Ensure(ctx context.Context, productID uuid.UUID) (*Stock, error) {
	stock, err := l.stocks.FindByProductID(ctx, productID)
	if err == nil {
		return stock, nil
	}

	var domainErr *shared.DomainError
	if !errors.As(err, &domainErr) || domainErr.Code != "NOT_FOUND" {
		return nil, err
	}

	stock = NewStock(productID)
	if err := l.stocks.Save(ctx, stock); err != nil {
		return nil, err
	}
	return stock, nil
}

// Move applies one movement to a product's stock and appends the matching
// ledger entry. On any failure the stock is left unchanged and no movement
// is written.
func (l *Ledger) Move(ctx context.Context, productID uuid.UUID, movementType MovementType, quantity int64, opts ...MovementOption) (*Stock, *StockMovement, error) {
	if !movementType.IsValid() {
		return nil, nil, shared.NewValidationError("Unknown movement type: " + movementType.String())
	}

	stock, err := l.Ensure(ctx, productID)
	if err != nil {
		return nil, nil, err
	}

	expectedVersion := stock.Version
	before, after, err := stock.Apply(movementType, quantity)
	if err != nil {
		return nil, nil, err
	}

	if err := l.stocks.SaveWithLock(ctx, stock, expectedVersion); err != nil {
		return nil, nil, err
	}

	movement := NewStockMovement(stock, movementType, quantity, before, after, opts...)
	if err := l.movements.Append(ctx, movement); err != nil {
		return nil, nil, err
	}

	return stock, movement, nil
}

// DeductForOrder performs one sale movement per line, referenced by the
// order number. All-or-nothing: the caller must run it inside the same
// transaction as the order's status change so any failure rolls back every
// movement already applied.
func (l *Ledger) DeductForOrder(ctx context.Context, orderNumber string, items []LineItem, actorID *uuid.UUID) ([]*StockMovement, error) {
	return l.moveForOrder(ctx, MovementTypeSale, orderNumber, items, actorID)
}

// RestoreForOrder performs one return movement per line when an order is
// cancelled after its stock was deducted. Returns have no upper bound so
// this only fails on storage or concurrency errors.
func (l *Ledger) RestoreForOrder(ctx context.Context, orderNumber string, items []LineItem, actorID *uuid.UUID) ([]*StockMovement, error) {
	return l.moveForOrder(ctx, MovementTypeReturn, orderNumber, items, actorID)
}

func (l *Ledger) moveForOrder(ctx context.Context, movementType MovementType, orderNumber string, items []LineItem, actorID *uuid.UUID) ([]*StockMovement, error) {
	movements := make([]*StockMovement, 0, len(items))
	opts := []MovementOption{WithReference(orderNumber)}
	if actorID != nil {
		opts = append(opts, WithActor(*actorID))
	}

	for _, item := range items {
		_, movement, err := l.Move(ctx, item.ProductID, movementType, item.Quantity, opts...)
		if err != nil {
			return nil, err
		}
		movements = append(movements, movement)
	}
	return movements, nil
}
