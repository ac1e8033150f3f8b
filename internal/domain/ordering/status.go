package ordering

// OrderStatus represents the status of an order in the fulfillment workflow
type OrderStatus string

const (
	OrderStatusDraft         OrderStatus = "draft"
	OrderStatusConfirmed     OrderStatus = "confirmed"
	OrderStatusPaid          OrderStatus = "paid"
	OrderStatusInPreparation OrderStatus = "in_preparation"
	OrderStatusInDelivery    OrderStatus = "in_delivery"
	OrderStatusDelivered     OrderStatus = "delivered"
	OrderStatusCancelled     OrderStatus = "cancelled"
)

// orderTransitions is the static adjacency table of legal status changes.
// delivered and cancelled are terminal.
var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusDraft:         {OrderStatusConfirmed, OrderStatusCancelled},
	OrderStatusConfirmed:     {OrderStatusPaid, OrderStatusCancelled},
	OrderStatusPaid:          {OrderStatusInPreparation, OrderStatusCancelled},
	OrderStatusInPreparation: {OrderStatusInDelivery, OrderStatusCancelled},
	OrderStatusInDelivery:    {OrderStatusDelivered, OrderStatusCancelled},
	OrderStatusDelivered:     {},
	OrderStatusCancelled:     {},
}

// AllOrderStatuses lists every status, in workflow order
var AllOrderStatuses = []OrderStatus{
	OrderStatusDraft,
	OrderStatusConfirmed,
	OrderStatusPaid,
	OrderStatusInPreparation,
	OrderStatusInDelivery,
	OrderStatusDelivered,
	OrderStatusCancelled,
}

// IsValid checks if the status is a known value
func (s OrderStatus) IsValid() bool {
	_, ok := orderTransitions[s]
	return ok
}

// String returns the string representation of the status
func (s OrderStatus) String() string {
	return string(s)
}

// CanTransitionTo checks if a transition to the target status is legal
func (s OrderStatus) CanTransitionTo(target OrderStatus) bool {
	for _, next := range orderTransitions[s] {
		if next == target {
			return true
		}
	}
	return false
}

// IsTerminal returns true when no further transitions are possible
func (s OrderStatus) IsTerminal() bool {
	return len(orderTransitions[s]) == 0 && s.IsValid()
}

// HoldsStock returns true for statuses reached after inventory was deducted
// and before the order left the fulfillment pipeline. Cancelling from one of
// these statuses must restore stock.
func (s OrderStatus) HoldsStock() bool {
	switch s {
	case OrderStatusConfirmed, OrderStatusPaid, OrderStatusInPreparation, OrderStatusInDelivery:
		return true
	}
	return false
}

// PaymentType represents how an order was paid
type PaymentType string

const (
	PaymentTypeCash        PaymentType = "cash"
	PaymentTypeMobileMoney PaymentType = "mobile_money"
)

// IsValid checks if the payment type is a known value
func (t PaymentType) IsValid() bool {
	return t == PaymentTypeCash || t == PaymentTypeMobileMoney
}

// String returns the string representation of the payment type
func (t PaymentType) String() string {
	return string(t)
}

// VerificationStatus is the operational checklist flag on an order line,
// independent of the order status machine
type VerificationStatus string

const (
	VerificationStatusToVerify VerificationStatus = "to_verify"
	VerificationStatusOK       VerificationStatus = "ok"
)

// IsValid checks if the verification status is a known value
func (v VerificationStatus) IsValid() bool {
	return v == VerificationStatusToVerify || v == VerificationStatusOK
}
