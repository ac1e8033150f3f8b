package ordering

import (
	"time"

	"github.com/gestock/backend/internal/domain/ordering"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateLineRequest is one product-quantity pair on a new order
type CreateLineRequest struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
	Quantity  int64     `json:"quantity" binding:"required,min=1"`
}

// CreateOrderRequest creates a draft order with at least one line
type CreateOrderRequest struct {
	CustomerName   string              `json:"customer_name" binding:"required"`
	CustomerPhone  string              `json:"customer_phone"`
	CustomerEmail  string              `json:"customer_email" binding:"omitempty,email"`
	DeliveryAddr   string              `json:"delivery_address"`
	DiscountAmount decimal.Decimal     `json:"discount_amount"`
	DeliveryFee    decimal.Decimal     `json:"delivery_fee"`
	Notes          string              `json:"notes"`
	Lines          []CreateLineRequest `json:"lines" binding:"required,min=1,dive"`
}

// UpdateOrderRequest edits the mutable fields of a draft order.
// Nil pointers leave the field unchanged.
type UpdateOrderRequest struct {
	CustomerName   *string          `json:"customer_name"`
	CustomerPhone  *string          `json:"customer_phone"`
	CustomerEmail  *string          `json:"customer_email"`
	DeliveryAddr   *string          `json:"delivery_address"`
	DiscountAmount *decimal.Decimal `json:"discount_amount"`
	DeliveryFee    *decimal.Decimal `json:"delivery_fee"`
	Notes          *string          `json:"notes"`
}

// AddLineRequest adds a product to a draft order
type AddLineRequest struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
	Quantity  int64     `json:"quantity" binding:"required,min=1"`
}

// UpdateLineRequest changes the quantity of an existing line
type UpdateLineRequest struct {
	Quantity int64 `json:"quantity" binding:"required,min=1"`
}

// PayRequest records payment on a confirmed order
type PayRequest struct {
	PaymentType    ordering.PaymentType `json:"payment_type" binding:"required"`
	AmountPaid     decimal.Decimal      `json:"amount_paid" binding:"required"`
	SenderPhone    string               `json:"sender_phone"`
	TransactionRef string               `json:"transaction_ref"`
}

// AdvanceStatusRequest moves an order one step through fulfillment
type AdvanceStatusRequest struct {
	Status ordering.OrderStatus `json:"status" binding:"required"`
}

// CancelRequest cancels an order with a mandatory reason
type CancelRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// AssignCourierRequest attaches a courier to an order
type AssignCourierRequest struct {
	CourierID uuid.UUID `json:"courier_id" binding:"required"`
}

// SetVerificationRequest toggles a line's operational checklist flag
type SetVerificationRequest struct {
	Status ordering.VerificationStatus `json:"status" binding:"required"`
}

// LineResponse is the API view of an order line
type LineResponse struct {
	ID                 uuid.UUID                   `json:"id"`
	ProductID          uuid.UUID                   `json:"product_id"`
	ProductName        string                      `json:"product_name"`
	Quantity           int64                       `json:"quantity"`
	UnitPrice          decimal.Decimal             `json:"unit_price"`
	LineTotal          decimal.Decimal             `json:"line_total"`
	VerificationStatus ordering.VerificationStatus `json:"verification_status"`
}

// OrderResponse is the API view of an order
type OrderResponse struct {
	ID                 uuid.UUID             `json:"id"`
	Number             string                `json:"number"`
	Status             ordering.OrderStatus  `json:"status"`
	CustomerName       string                `json:"customer_name"`
	CustomerPhone      string                `json:"customer_phone,omitempty"`
	CustomerEmail      string                `json:"customer_email,omitempty"`
	DeliveryAddr       string                `json:"delivery_address,omitempty"`
	DiscountAmount     decimal.Decimal       `json:"discount_amount"`
	DeliveryFee        decimal.Decimal       `json:"delivery_fee"`
	TotalAmount        decimal.Decimal       `json:"total_amount"`
	Notes              string                `json:"notes,omitempty"`
	CancellationReason string                `json:"cancellation_reason,omitempty"`
	PaymentType        *ordering.PaymentType `json:"payment_type,omitempty"`
	AmountPaid         *decimal.Decimal      `json:"amount_paid,omitempty"`
	SenderPhone        string                `json:"sender_phone,omitempty"`
	TransactionRef     string                `json:"transaction_ref,omitempty"`
	CourierID          *uuid.UUID            `json:"courier_id,omitempty"`
	CreatorID          *uuid.UUID            `json:"creator_id,omitempty"`
	Lines              []LineResponse        `json:"lines"`
	CreatedAt          time.Time             `json:"created_at"`
	ConfirmedAt        *time.Time            `json:"confirmed_at,omitempty"`
	PaidAt             *time.Time            `json:"paid_at,omitempty"`
	PreparedAt         *time.Time            `json:"prepared_at,omitempty"`
	ShippedAt          *time.Time            `json:"shipped_at,omitempty"`
	DeliveredAt        *time.Time            `json:"delivered_at,omitempty"`
	CancelledAt        *time.Time            `json:"cancelled_at,omitempty"`
}

// OrderSummaryResponse is the reduced listing view of an order
type OrderSummaryResponse struct {
	ID           uuid.UUID            `json:"id"`
	Number       string               `json:"number"`
	Status       ordering.OrderStatus `json:"status"`
	CustomerName string               `json:"customer_name"`
	TotalAmount  decimal.Decimal      `json:"total_amount"`
	LineCount    int                  `json:"line_count"`
	CreatedAt    time.Time            `json:"created_at"`
}

// HistoryEntryResponse is the API view of one audit trail entry
type HistoryEntryResponse struct {
	ID        uuid.UUID             `json:"id"`
	Event     ordering.HistoryEvent `json:"event"`
	ActorID   *uuid.UUID            `json:"actor_id,omitempty"`
	Note      string                `json:"note,omitempty"`
	CreatedAt time.Time             `json:"created_at"`
}

// NewOrderResponse converts an order aggregate to its API view
func NewOrderResponse(order *ordering.Order) OrderResponse {
	lines := make([]LineResponse, 0, len(order.Lines))
	for i := range order.Lines {
		line := &order.Lines[i]
		lines = append(lines, LineResponse{
			ID:                 line.ID,
			ProductID:          line.ProductID,
			ProductName:        line.ProductName,
			Quantity:           line.Quantity,
			UnitPrice:          line.UnitPrice,
			LineTotal:          line.LineTotal,
			VerificationStatus: line.VerificationStatus,
		})
	}

	return OrderResponse{
		ID:                 order.ID,
		Number:             order.Number,
		Status:             order.Status,
		CustomerName:       order.CustomerName,
		CustomerPhone:      order.CustomerPhone,
		CustomerEmail:      order.CustomerEmail,
		DeliveryAddr:       order.DeliveryAddr,
		DiscountAmount:     order.DiscountAmount,
		DeliveryFee:        order.DeliveryFee,
		TotalAmount:        order.TotalAmount,
		Notes:              order.Notes,
		CancellationReason: order.CancellationReason,
		PaymentType:        order.PaymentType,
		AmountPaid:         order.AmountPaid,
		SenderPhone:        order.SenderPhone,
		TransactionRef:     order.TransactionRef,
		CourierID:          order.CourierID,
		CreatorID:          order.CreatorID,
		Lines:              lines,
		CreatedAt:          order.CreatedAt,
		ConfirmedAt:        order.ConfirmedAt,
		PaidAt:             order.PaidAt,
		PreparedAt:         order.PreparedAt,
		ShippedAt:          order.ShippedAt,
		DeliveredAt:        order.DeliveredAt,
		CancelledAt:        order.CancelledAt,
	}
}

// NewOrderSummaryResponse converts an order to its listing view
func NewOrderSummaryResponse(order *ordering.Order) OrderSummaryResponse {
	return OrderSummaryResponse{
		ID:           order.ID,
		Number:       order.Number,
		Status:       order.Status,
		CustomerName: order.CustomerName,
		TotalAmount:  order.TotalAmount,
		LineCount:    len(order.Lines),
		CreatedAt:    order.CreatedAt,
	}
}

// NewHistoryEntryResponse converts an audit entry to its API view
func NewHistoryEntryResponse(entry *ordering.OrderHistoryEntry) HistoryEntryResponse {
	return HistoryEntryResponse{
		ID:        entry.ID,
		Event:     entry.Event,
		ActorID:   entry.ActorID,
		Note:      entry.Note,
		CreatedAt: entry.CreatedAt,
	}
}
