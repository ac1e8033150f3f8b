package ordering

import (
	"github.com/gestock/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Event types for the ordering context
const (
	EventTypeOrderCreated   = "ordering.order.created"
	EventTypeOrderConfirmed = "ordering.order.confirmed"
	EventTypeOrderDelivered = "ordering.order.delivered"
	EventTypeOrderCancelled = "ordering.order.cancelled"
)

// OrderCreatedEvent is raised when a draft order is created
type OrderCreatedEvent struct {
	shared.BaseDomainEvent
	Number string `json:"number"`
}

// NewOrderCreatedEvent creates a new order created event
func NewOrderCreatedEvent(order *Order) *OrderCreatedEvent {
	return &OrderCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderCreated, "Order", order.ID),
		Number:          order.Number,
	}
}

// OrderConfirmedEvent is raised when an order is confirmed and its stock
// deducted
type OrderConfirmedEvent struct {
	shared.BaseDomainEvent
	Number      string          `json:"number"`
	TotalAmount decimal.Decimal `json:"total_amount"`
}

// NewOrderConfirmedEvent creates a new order confirmed event
func NewOrderConfirmedEvent(order *Order) *OrderConfirmedEvent {
	return &OrderConfirmedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderConfirmed, "Order", order.ID),
		Number:          order.Number,
		TotalAmount:     order.TotalAmount,
	}
}

// OrderDeliveredEvent is raised when an order reaches its terminal
// delivered status
type OrderDeliveredEvent struct {
	shared.BaseDomainEvent
	Number string `json:"number"`
}

// NewOrderDeliveredEvent creates a new order delivered event
func NewOrderDeliveredEvent(order *Order) *OrderDeliveredEvent {
	return &OrderDeliveredEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderDelivered, "Order", order.ID),
		Number:          order.Number,
	}
}

// OrderCancelledEvent is raised when an order is cancelled
type OrderCancelledEvent struct {
	shared.BaseDomainEvent
	Number string `json:"number"`
	Reason string `json:"reason"`
}

// NewOrderCancelledEvent creates a new order cancelled event
func NewOrderCancelledEvent(order *Order, reason string) *OrderCancelledEvent {
	return &OrderCancelledEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderCancelled, "Order", order.ID),
		Number:          order.Number,
		Reason:          reason,
	}
}
