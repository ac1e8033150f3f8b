package inventory

import (
	"context"

	"github.com/gestock/backend/internal/domain/inventory"
	"github.com/gestock/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// StockService exposes the inventory ledger to the interface layer. Every
// mutation runs inside a transaction scope so the quantity update and the
// movement insert land atomically.
type StockService struct {
	scope     TransactionScope
	stocks    inventory.StockRepository
	movements inventory.StockMovementRepository
	events    shared.EventPublisher
	logger    *zap.Logger
}

// NewStockService creates a new stock service. The plain repositories are
// used for reads; mutations go through the transaction scope.
func NewStockService(
	scope TransactionScope,
	stocks inventory.StockRepository,
	movements inventory.StockMovementRepository,
	events shared.EventPublisher,
	logger *zap.Logger,
) *StockService {
	return &StockService{
		scope:     scope,
		stocks:    stocks,
		movements: movements,
		events:    events,
		logger:    logger,
	}
}

// Ensure returns the stock for a product, creating an empty record on first
// reference
func (s *StockService) Ensure(ctx context.Context, productID uuid.UUID) (*StockResponse, error) {
	var response StockResponse
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		ledger := inventory.NewLedger(repos.StockRepo(), repos.MovementRepo())
		stock, err := ledger.Ensure(ctx, productID)
		if err != nil {
			return err
		}
		response = NewStockResponse(stock)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &response, nil
}

// Move applies one ledger movement, attributed to the acting user
func (s *StockService) Move(ctx context.Context, req MoveStockRequest, actorID *uuid.UUID) (*MoveStockResult, error) {
	var result MoveStockResult
	var pendingEvents []shared.DomainEvent

	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		ledger := inventory.NewLedger(repos.StockRepo(), repos.MovementRepo())

		opts := make([]inventory.MovementOption, 0, 3)
		if req.Reference != "" {
			opts = append(opts, inventory.WithReference(req.Reference))
		}
		if req.Notes != "" {
			opts = append(opts, inventory.WithNotes(req.Notes))
		}
		if actorID != nil {
			opts = append(opts, inventory.WithActor(*actorID))
		}

		stock, movement, err := ledger.Move(ctx, req.ProductID, req.Type, req.Quantity, opts...)
		if err != nil {
			return err
		}

		result = MoveStockResult{
			Stock:    NewStockResponse(stock),
			Movement: NewMovementResponse(movement),
		}
		pendingEvents = stock.GetDomainEvents()
		stock.ClearDomainEvents()
		return nil
	})
	if err != nil {
		return nil, err
	}

	if len(pendingEvents) > 0 && s.events != nil {
		if err := s.events.Publish(ctx, pendingEvents...); err != nil {
			s.logger.Error("failed to publish stock events",
				zap.String("product_id", req.ProductID.String()),
				zap.Error(err),
			)
		}
	}

	s.logger.Info("stock movement recorded",
		zap.String("product_id", req.ProductID.String()),
		zap.String("type", req.Type.String()),
		zap.Int64("quantity", req.Quantity),
		zap.Int64("quantity_after", result.Movement.QuantityAfter),
	)

	return &result, nil
}

// SetAlertThreshold updates a product's low-stock alert level
func (s *StockService) SetAlertThreshold(ctx context.Context, productID uuid.UUID, threshold int64) (*StockResponse, error) {
	var response StockResponse
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		ledger := inventory.NewLedger(repos.StockRepo(), repos.MovementRepo())
		stock, err := ledger.Ensure(ctx, productID)
		if err != nil {
			return err
		}
		expectedVersion := stock.Version
		if err := stock.SetAlertThreshold(threshold); err != nil {
			return err
		}
		if err := repos.StockRepo().SaveWithLock(ctx, stock, expectedVersion); err != nil {
			return err
		}
		response = NewStockResponse(stock)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &response, nil
}

// GetByProduct returns the stock record for a product
func (s *StockService) GetByProduct(ctx context.Context, productID uuid.UUID) (*StockResponse, error) {
	stock, err := s.stocks.FindByProductID(ctx, productID)
	if err != nil {
		return nil, err
	}
	response := NewStockResponse(stock)
	return &response, nil
}

// List returns stock records matching the filter
func (s *StockService) List(ctx context.Context, filter shared.Filter) (*shared.Paginated[StockResponse], error) {
	page, err := s.stocks.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]StockResponse, 0, len(page.Items))
	for i := range page.Items {
		items = append(items, NewStockResponse(&page.Items[i]))
	}
	result := shared.NewPaginated(items, page.Total, page.Page, page.PageSize)
	return &result, nil
}

// LowStock returns products at or under their alert threshold
func (s *StockService) LowStock(ctx context.Context) ([]StockResponse, error) {
	stocks, err := s.stocks.FindBelowThreshold(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]StockResponse, 0, len(stocks))
	for i := range stocks {
		items = append(items, NewStockResponse(&stocks[i]))
	}
	return items, nil
}

// OutOfStock returns products with zero quantity
func (s *StockService) OutOfStock(ctx context.Context) ([]StockResponse, error) {
	stocks, err := s.stocks.FindOutOfStock(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]StockResponse, 0, len(stocks))
	for i := range stocks {
		items = append(items, NewStockResponse(&stocks[i]))
	}
	return items, nil
}

// Movements returns a product's ledger history, newest first
func (s *StockService) Movements(ctx context.Context, productID uuid.UUID, filter shared.Filter) (*shared.Paginated[MovementResponse], error) {
	page, err := s.movements.FindByProduct(ctx, productID, filter)
	if err != nil {
		return nil, err
	}
	items := make([]MovementResponse, 0, len(page.Items))
	for i := range page.Items {
		items = append(items, NewMovementResponse(&page.Items[i]))
	}
	result := shared.NewPaginated(items, page.Total, page.Page, page.PageSize)
	return &result, nil
}

// MovementsByReference returns every movement correlated to a reference,
// typically an order number
func (s *StockService) MovementsByReference(ctx context.Context, reference string) ([]MovementResponse, error) {
	movements, err := s.movements.FindByReference(ctx, reference)
	if err != nil {
		return nil, err
	}
	items := make([]MovementResponse, 0, len(movements))
	for i := range movements {
		items = append(items, NewMovementResponse(&movements[i]))
	}
	return items, nil
}
