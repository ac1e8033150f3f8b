package ordering

import (
	"github.com/gestock/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// HistoryEvent classifies an entry in an order's audit trail
type HistoryEvent string

const (
	HistoryEventCreated         HistoryEvent = "CREATED"
	HistoryEventItemAdded       HistoryEvent = "ITEM_ADDED"
	HistoryEventItemUpdated     HistoryEvent = "ITEM_UPDATED"
	HistoryEventItemRemoved     HistoryEvent = "ITEM_REMOVED"
	HistoryEventConfirmed       HistoryEvent = "CONFIRMED"
	HistoryEventPaid            HistoryEvent = "PAID"
	HistoryEventInPreparation   HistoryEvent = "IN_PREPARATION"
	HistoryEventInDelivery      HistoryEvent = "IN_DELIVERY"
	HistoryEventDelivered       HistoryEvent = "DELIVERED"
	HistoryEventCancelled       HistoryEvent = "CANCELLED"
	HistoryEventCourierAssigned HistoryEvent = "COURIER_ASSIGNED"
)

// historyEventForStatus maps a fulfillment step to its audit event
var historyEventForStatus = map[OrderStatus]HistoryEvent{
	OrderStatusConfirmed:     HistoryEventConfirmed,
	OrderStatusPaid:          HistoryEventPaid,
	OrderStatusInPreparation: HistoryEventInPreparation,
	OrderStatusInDelivery:    HistoryEventInDelivery,
	OrderStatusDelivered:     HistoryEventDelivered,
	OrderStatusCancelled:     HistoryEventCancelled,
}

// HistoryEventForStatus returns the audit event matching a status transition
func HistoryEventForStatus(status OrderStatus) (HistoryEvent, bool) {
	event, ok := historyEventForStatus[status]
	return event, ok
}

// OrderHistoryEntry is one immutable line in an order's audit trail.
// Entries are only ever appended, never edited or removed, so the full
// event timeline can be reconstructed independently of the order's current
// field values.
type OrderHistoryEntry struct {
	shared.BaseEntity
	OrderID uuid.UUID    `gorm:"type:uuid;not null;index"`
	Event   HistoryEvent `gorm:"type:varchar(30);not null"`
	ActorID *uuid.UUID   `gorm:"type:uuid"`
	Note    string       `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (OrderHistoryEntry) TableName() string {
	return "order_history"
}

// NewHistoryEntry records an event on an order's audit trail
func NewHistoryEntry(orderID uuid.UUID, event HistoryEvent, actorID *uuid.UUID, note string) *OrderHistoryEntry {
	return &OrderHistoryEntry{
		BaseEntity: shared.NewBaseEntity(),
		OrderID:    orderID,
		Event:      event,
		ActorID:    actorID,
		Note:       note,
	}
}
