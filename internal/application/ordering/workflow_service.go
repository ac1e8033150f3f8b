package ordering

import (
	"context"
	"time"

	"github.com/gestock/backend/internal/domain/catalog"
	"github.com/gestock/backend/internal/domain/identity"
	"github.com/gestock/backend/internal/domain/inventory"
	"github.com/gestock/backend/internal/domain/ordering"
	"github.com/gestock/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// WorkflowService orchestrates order mutations together with their inventory
// and audit effects. Every operation that touches both the order and the
// ledger runs in one transaction: a ledger failure aborts the order mutation
// and vice versa, so no partial state is ever observable.
//
// The acting user is an explicit parameter on every call; the service keeps
// no ambient request state.
type WorkflowService struct {
	scope    WorkflowScope
	orders   ordering.OrderRepository
	history  ordering.OrderHistoryRepository
	products catalog.ProductRepository
	users    identity.UserRepository
	events   shared.EventPublisher
	logger   *zap.Logger
	now      func() time.Time
}

// NewWorkflowService creates a new order workflow service
func NewWorkflowService(
	scope WorkflowScope,
	orders ordering.OrderRepository,
	history ordering.OrderHistoryRepository,
	products catalog.ProductRepository,
	users identity.UserRepository,
	events shared.EventPublisher,
	logger *zap.Logger,
) *WorkflowService {
	return &WorkflowService{
		scope:    scope,
		orders:   orders,
		history:  history,
		products: products,
		users:    users,
		events:   events,
		logger:   logger,
		now:      time.Now,
	}
}

// Create builds a draft order with at least one line. Lines are priced from
// the current product price; inventory is not touched until confirmation.
func (s *WorkflowService) Create(ctx context.Context, req CreateOrderRequest, actorID uuid.UUID) (*OrderResponse, error) {
	if len(req.Lines) == 0 {
		return nil, shared.ErrEmptyOrder
	}

	var response OrderResponse
	err := s.scope.Execute(ctx, func(repos WorkflowRepositories) error {
		number, err := generateOrderNumber(ctx, repos.OrderRepo(), s.now)
		if err != nil {
			return err
		}

		order, err := ordering.NewOrder(number, req.CustomerName, &actorID)
		if err != nil {
			return err
		}
		if err := order.SetCustomerContact(req.CustomerPhone, req.CustomerEmail, req.DeliveryAddr); err != nil {
			return err
		}
		if req.Notes != "" {
			if err := order.SetNotes(req.Notes); err != nil {
				return err
			}
		}

		for _, line := range req.Lines {
			product, err := s.orderableProduct(ctx, line.ProductID)
			if err != nil {
				return err
			}
			if _, err := order.AddLine(product.ID, product.Name, product.Price, line.Quantity); err != nil {
				return err
			}
		}

		if !req.DiscountAmount.IsZero() {
			if err := order.SetDiscount(req.DiscountAmount); err != nil {
				return err
			}
		}
		if !req.DeliveryFee.IsZero() {
			if err := order.SetDeliveryFee(req.DeliveryFee); err != nil {
				return err
			}
		}

		if err := repos.OrderRepo().Save(ctx, order); err != nil {
			return err
		}
		if err := repos.HistoryRepo().Append(ctx, ordering.NewHistoryEntry(order.ID, ordering.HistoryEventCreated, &actorID, "")); err != nil {
			return err
		}

		order.ClearDomainEvents()
		response = NewOrderResponse(order)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("order created",
		zap.String("number", response.Number),
		zap.String("actor_id", actorID.String()),
		zap.Int("lines", len(response.Lines)),
	)
	return &response, nil
}

// Update edits the mutable fields of a draft order
func (s *WorkflowService) Update(ctx context.Context, orderID uuid.UUID, req UpdateOrderRequest, actorID uuid.UUID) (*OrderResponse, error) {
	return s.mutate(ctx, orderID, func(order *ordering.Order, repos WorkflowRepositories) error {
		if req.CustomerName != nil {
			if err := order.SetCustomerName(*req.CustomerName); err != nil {
				return err
			}
		}
		if req.CustomerPhone != nil || req.CustomerEmail != nil || req.DeliveryAddr != nil {
			phone, email, addr := order.CustomerPhone, order.CustomerEmail, order.DeliveryAddr
			if req.CustomerPhone != nil {
				phone = *req.CustomerPhone
			}
			if req.CustomerEmail != nil {
				email = *req.CustomerEmail
			}
			if req.DeliveryAddr != nil {
				addr = *req.DeliveryAddr
			}
			if err := order.SetCustomerContact(phone, email, addr); err != nil {
				return err
			}
		}
		if req.DiscountAmount != nil {
			if err := order.SetDiscount(*req.DiscountAmount); err != nil {
				return err
			}
		}
		if req.DeliveryFee != nil {
			if err := order.SetDeliveryFee(*req.DeliveryFee); err != nil {
				return err
			}
		}
		if req.Notes != nil {
			if err := order.SetNotes(*req.Notes); err != nil {
				return err
			}
		}
		return nil
	})
}

// AddLine adds a product to a draft order, merging with an existing line for
// the same product
func (s *WorkflowService) AddLine(ctx context.Context, orderID uuid.UUID, req AddLineRequest, actorID uuid.UUID) (*OrderResponse, error) {
	return s.mutate(ctx, orderID, func(order *ordering.Order, repos WorkflowRepositories) error {
		product, err := s.orderableProduct(ctx, req.ProductID)
		if err != nil {
			return err
		}
		line, err := order.AddLine(product.ID, product.Name, product.Price, req.Quantity)
		if err != nil {
			return err
		}
		return repos.HistoryRepo().Append(ctx,
			ordering.NewHistoryEntry(order.ID, ordering.HistoryEventItemAdded, &actorID, line.ProductName))
	})
}

// UpdateLineQuantity changes the quantity of a draft order line
func (s *WorkflowService) UpdateLineQuantity(ctx context.Context, orderID, lineID uuid.UUID, req UpdateLineRequest, actorID uuid.UUID) (*OrderResponse, error) {
	return s.mutate(ctx, orderID, func(order *ordering.Order, repos WorkflowRepositories) error {
		line, err := order.UpdateLineQuantity(lineID, req.Quantity)
		if err != nil {
			return err
		}
		return repos.HistoryRepo().Append(ctx,
			ordering.NewHistoryEntry(order.ID, ordering.HistoryEventItemUpdated, &actorID, line.ProductName))
	})
}

// RemoveLine deletes a line from a draft order
func (s *WorkflowService) RemoveLine(ctx context.Context, orderID, lineID uuid.UUID, actorID uuid.UUID) (*OrderResponse, error) {
	return s.mutate(ctx, orderID, func(order *ordering.Order, repos WorkflowRepositories) error {
		removed, err := order.RemoveLine(lineID)
		if err != nil {
			return err
		}
		return repos.HistoryRepo().Append(ctx,
			ordering.NewHistoryEntry(order.ID, ordering.HistoryEventItemRemoved, &actorID, removed.ProductName))
	})
}

// Confirm deducts stock for every line and transitions the order to
// confirmed, atomically. If any line's stock is insufficient nothing is
// persisted: the order stays draft and no movement is recorded.
func (s *WorkflowService) Confirm(ctx context.Context, orderID uuid.UUID, actorID uuid.UUID) (*OrderResponse, error) {
	response, err := s.mutate(ctx, orderID, func(order *ordering.Order, repos WorkflowRepositories) error {
		if order.Status != ordering.OrderStatusDraft {
			return shared.NewInvalidTransitionError(order.Status.String(), ordering.OrderStatusConfirmed.String())
		}
		if len(order.Lines) == 0 {
			return shared.ErrEmptyOrder
		}

		ledger := inventory.NewLedger(repos.StockRepo(), repos.MovementRepo())
		if _, err := ledger.DeductForOrder(ctx, order.Number, lineItems(order), &actorID); err != nil {
			return err
		}
		if err := order.Confirm(); err != nil {
			return err
		}
		return repos.HistoryRepo().Append(ctx,
			ordering.NewHistoryEntry(order.ID, ordering.HistoryEventConfirmed, &actorID, ""))
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("order confirmed",
		zap.String("number", response.Number),
		zap.String("actor_id", actorID.String()),
	)
	return response, nil
}

// Pay records payment details and transitions the order to paid
func (s *WorkflowService) Pay(ctx context.Context, orderID uuid.UUID, req PayRequest, actorID uuid.UUID) (*OrderResponse, error) {
	return s.mutate(ctx, orderID, func(order *ordering.Order, repos WorkflowRepositories) error {
		if err := order.Pay(req.PaymentType, req.AmountPaid, req.SenderPhone, req.TransactionRef); err != nil {
			return err
		}
		return repos.HistoryRepo().Append(ctx,
			ordering.NewHistoryEntry(order.ID, ordering.HistoryEventPaid, &actorID, req.PaymentType.String()))
	})
}

// AdvanceStatus moves the order one step forward through fulfillment
// (in_preparation, in_delivery, delivered)
func (s *WorkflowService) AdvanceStatus(ctx context.Context, orderID uuid.UUID, target ordering.OrderStatus, actorID uuid.UUID) (*OrderResponse, error) {
	return s.mutate(ctx, orderID, func(order *ordering.Order, repos WorkflowRepositories) error {
		if err := order.AdvanceTo(target); err != nil {
			return err
		}
		event, ok := ordering.HistoryEventForStatus(target)
		if !ok {
			return shared.NewValidationError("No history event for status " + target.String())
		}
		return repos.HistoryRepo().Append(ctx,
			ordering.NewHistoryEntry(order.ID, event, &actorID, ""))
	})
}

// Cancel cancels the order with a mandatory reason. When the current status
// holds deducted stock the ledger restores it, in the same transaction.
func (s *WorkflowService) Cancel(ctx context.Context, orderID uuid.UUID, reason string, actorID uuid.UUID) (*OrderResponse, error) {
	response, err := s.mutate(ctx, orderID, func(order *ordering.Order, repos WorkflowRepositories) error {
		if reason == "" {
			return shared.NewMissingFieldError("cancellation_reason")
		}
		if order.Status.HoldsStock() {
			ledger := inventory.NewLedger(repos.StockRepo(), repos.MovementRepo())
			if _, err := ledger.RestoreForOrder(ctx, order.Number, lineItems(order), &actorID); err != nil {
				return err
			}
		}
		if err := order.Cancel(reason); err != nil {
			return err
		}
		return repos.HistoryRepo().Append(ctx,
			ordering.NewHistoryEntry(order.ID, ordering.HistoryEventCancelled, &actorID, reason))
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("order cancelled",
		zap.String("number", response.Number),
		zap.String("actor_id", actorID.String()),
		zap.String("reason", reason),
	)
	return response, nil
}

// AssignCourier attaches an active courier-role user to the order
func (s *WorkflowService) AssignCourier(ctx context.Context, orderID uuid.UUID, courierID uuid.UUID, actorID uuid.UUID) (*OrderResponse, error) {
	return s.mutate(ctx, orderID, func(order *ordering.Order, repos WorkflowRepositories) error {
		courier, err := s.users.FindActiveCourier(ctx, courierID)
		if err != nil {
			return shared.ErrCourierNotFound
		}
		if err := order.AssignCourier(courier.ID); err != nil {
			return err
		}
		return repos.HistoryRepo().Append(ctx,
			ordering.NewHistoryEntry(order.ID, ordering.HistoryEventCourierAssigned, &actorID, courier.Name))
	})
}

// SetLineVerification toggles the checklist flag on one line. No history
// entry is written: these are local, frequent toggles.
func (s *WorkflowService) SetLineVerification(ctx context.Context, orderID, lineID uuid.UUID, status ordering.VerificationStatus, actorID uuid.UUID) (*OrderResponse, error) {
	return s.mutate(ctx, orderID, func(order *ordering.Order, repos WorkflowRepositories) error {
		return order.SetLineVerification(lineID, status)
	})
}

// SetAllLinesVerification applies one checklist flag to every line
func (s *WorkflowService) SetAllLinesVerification(ctx context.Context, orderID uuid.UUID, status ordering.VerificationStatus, actorID uuid.UUID) (*OrderResponse, error) {
	return s.mutate(ctx, orderID, func(order *ordering.Order, repos WorkflowRepositories) error {
		return order.SetAllLinesVerification(status)
	})
}

// Delete soft-deletes a draft or cancelled order
func (s *WorkflowService) Delete(ctx context.Context, orderID uuid.UUID, actorID uuid.UUID) error {
	_, err := s.mutate(ctx, orderID, func(order *ordering.Order, repos WorkflowRepositories) error {
		return order.SoftDelete()
	})
	return err
}

// Get returns one order with its lines
func (s *WorkflowService) Get(ctx context.Context, orderID uuid.UUID) (*OrderResponse, error) {
	order, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	response := NewOrderResponse(order)
	return &response, nil
}

// GetByNumber returns one order looked up by its human-readable number
func (s *WorkflowService) GetByNumber(ctx context.Context, number string) (*OrderResponse, error) {
	order, err := s.orders.FindByNumber(ctx, number)
	if err != nil {
		return nil, err
	}
	response := NewOrderResponse(order)
	return &response, nil
}

// List returns order summaries matching the filter
func (s *WorkflowService) List(ctx context.Context, filter shared.Filter) (*shared.Paginated[OrderSummaryResponse], error) {
	page, err := s.orders.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]OrderSummaryResponse, 0, len(page.Items))
	for i := range page.Items {
		items = append(items, NewOrderSummaryResponse(&page.Items[i]))
	}
	result := shared.NewPaginated(items, page.Total, page.Page, page.PageSize)
	return &result, nil
}

// History returns the order's audit trail in append order
func (s *WorkflowService) History(ctx context.Context, orderID uuid.UUID) ([]HistoryEntryResponse, error) {
	if _, err := s.orders.FindByID(ctx, orderID); err != nil {
		return nil, err
	}
	entries, err := s.history.FindByOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	items := make([]HistoryEntryResponse, 0, len(entries))
	for i := range entries {
		items = append(items, NewHistoryEntryResponse(&entries[i]))
	}
	return items, nil
}

// CountByStatus returns how many orders sit in each status
func (s *WorkflowService) CountByStatus(ctx context.Context) (map[ordering.OrderStatus]int64, error) {
	return s.orders.CountByStatus(ctx)
}

// mutate loads the order inside the workflow scope, applies fn and persists
// with an optimistic version check. Any error rolls back everything fn did.
func (s *WorkflowService) mutate(ctx context.Context, orderID uuid.UUID, fn func(order *ordering.Order, repos WorkflowRepositories) error) (*OrderResponse, error) {
	var response OrderResponse
	var pendingEvents []shared.DomainEvent

	err := s.scope.Execute(ctx, func(repos WorkflowRepositories) error {
		order, err := repos.OrderRepo().FindByID(ctx, orderID)
		if err != nil {
			return err
		}

		expectedVersion := order.Version
		if err := fn(order, repos); err != nil {
			return err
		}

		if err := repos.OrderRepo().SaveWithLock(ctx, order, expectedVersion); err != nil {
			return err
		}

		pendingEvents = order.GetDomainEvents()
		order.ClearDomainEvents()
		response = NewOrderResponse(order)
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Events are published only after the transaction committed
	if len(pendingEvents) > 0 && s.events != nil {
		if err := s.events.Publish(ctx, pendingEvents...); err != nil {
			s.logger.Error("failed to publish order events",
				zap.String("order_id", orderID.String()),
				zap.Error(err),
			)
		}
	}

	return &response, nil
}

// orderableProduct loads a product and rejects inactive or deleted ones
func (s *WorkflowService) orderableProduct(ctx context.Context, productID uuid.UUID) (*catalog.Product, error) {
	product, err := s.products.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if !product.IsOrderable() {
		return nil, shared.NewValidationError("Product is not available for ordering: " + product.Name)
	}
	return product, nil
}

func lineItems(order *ordering.Order) []inventory.LineItem {
	items := make([]inventory.LineItem, 0, len(order.Lines))
	for i := range order.Lines {
		items = append(items, inventory.LineItem{
			ProductID: order.Lines[i].ProductID,
			Quantity:  order.Lines[i].Quantity,
		})
	}
	return items
}
