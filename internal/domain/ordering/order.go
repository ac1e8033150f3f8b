package ordering

import (
	"time"

	"github.com/gestock/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Order is the aggregate root of the ordering context. It owns its lines and
// the status machine; inventory effects of transitions are orchestrated by
// the workflow service, never by the aggregate itself.
type Order struct {
	shared.BaseAggregateRoot
	Number         string      `gorm:"type:varchar(30);not null;uniqueIndex"`
	Status         OrderStatus `gorm:"type:varchar(20);not null;default:'draft';index"`
	CustomerName   string      `gorm:"type:varchar(120);not null"`
	CustomerPhone  string      `gorm:"type:varchar(30)"`
	CustomerEmail  string      `gorm:"type:varchar(120)"`
	DeliveryAddr   string      `gorm:"type:text"`
	DiscountAmount decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	DeliveryFee    decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	TotalAmount    decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	Notes          string          `gorm:"type:text"`

	ConfirmedAt *time.Time
	PaidAt      *time.Time
	PreparedAt  *time.Time
	ShippedAt   *time.Time
	DeliveredAt *time.Time
	CancelledAt *time.Time

	CancellationReason string `gorm:"type:text"`

	PaymentType    *PaymentType     `gorm:"type:varchar(20)"`
	AmountPaid     *decimal.Decimal `gorm:"type:decimal(18,2)"`
	SenderPhone    string           `gorm:"type:varchar(30)"`
	TransactionRef string           `gorm:"type:varchar(100)"`

	CourierID *uuid.UUID `gorm:"type:uuid;index"`
	CreatorID *uuid.UUID `gorm:"type:uuid;index"`

	IsDeleted bool `gorm:"not null;default:false;index"`
	DeletedAt *time.Time

	Lines []OrderLine `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (Order) TableName() string {
	return "orders"
}

// NewOrder creates a new draft order with no lines
func NewOrder(number, customerName string, creatorID *uuid.UUID) (*Order, error) {
	if number == "" {
		return nil, shared.NewValidationError("Order number cannot be empty")
	}
	if customerName == "" {
		return nil, shared.NewValidationError("Customer name cannot be empty")
	}

	order := &Order{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Number:            number,
		Status:            OrderStatusDraft,
		CustomerName:      customerName,
		DiscountAmount:    decimal.Zero,
		DeliveryFee:       decimal.Zero,
		TotalAmount:       decimal.Zero,
		CreatorID:         creatorID,
		Lines:             make([]OrderLine, 0),
	}

	order.AddDomainEvent(NewOrderCreatedEvent(order))

	return order, nil
}

// SetCustomerContact updates the customer contact fields, draft only
func (o *Order) SetCustomerContact(phone, email, address string) error {
	if err := o.ensureEditable(); err != nil {
		return err
	}
	o.CustomerPhone = phone
	o.CustomerEmail = email
	o.DeliveryAddr = address
	o.touch()
	return nil
}

// SetCustomerName updates the customer name, draft only
func (o *Order) SetCustomerName(name string) error {
	if err := o.ensureEditable(); err != nil {
		return err
	}
	if name == "" {
		return shared.NewValidationError("Customer name cannot be empty")
	}
	o.CustomerName = name
	o.touch()
	return nil
}

// SetNotes updates the free-form notes, draft only
func (o *Order) SetNotes(notes string) error {
	if err := o.ensureEditable(); err != nil {
		return err
	}
	o.Notes = notes
	o.touch()
	return nil
}

// SetDiscount updates the discount amount and recomputes the total, draft only
func (o *Order) SetDiscount(amount decimal.Decimal) error {
	if err := o.ensureEditable(); err != nil {
		return err
	}
	if amount.IsNegative() {
		return shared.NewValidationError("Discount cannot be negative")
	}
	o.DiscountAmount = amount
	o.recalculateTotal()
	o.touch()
	return nil
}

// SetDeliveryFee updates the delivery fee and recomputes the total, draft only
func (o *Order) SetDeliveryFee(fee decimal.Decimal) error {
	if err := o.ensureEditable(); err != nil {
		return err
	}
	if fee.IsNegative() {
		return shared.NewValidationError("Delivery fee cannot be negative")
	}
	o.DeliveryFee = fee
	o.recalculateTotal()
	o.touch()
	return nil
}

// AddLine adds a product to the order. A line for the same product already
// on the order has its quantity incremented instead of a duplicate being
// created. Draft only.
func (o *Order) AddLine(productID uuid.UUID, productName string, unitPrice decimal.Decimal, quantity int64) (*OrderLine, error) {
	if err := o.ensureEditable(); err != nil {
		return nil, err
	}
	if quantity < 1 {
		return nil, shared.NewValidationError("Quantity must be at least 1")
	}
	if unitPrice.IsNegative() {
		return nil, shared.NewValidationError("Unit price cannot be negative")
	}

	for i := range o.Lines {
		if o.Lines[i].ProductID == productID {
			o.Lines[i].setQuantity(o.Lines[i].Quantity + quantity)
			o.recalculateTotal()
			o.touch()
			return &o.Lines[i], nil
		}
	}

	line := newOrderLine(o.ID, productID, productName, unitPrice, quantity)
	o.Lines = append(o.Lines, *line)
	o.recalculateTotal()
	o.touch()
	return &o.Lines[len(o.Lines)-1], nil
}

// UpdateLineQuantity changes the quantity of an existing line, draft only
func (o *Order) UpdateLineQuantity(lineID uuid.UUID, quantity int64) (*OrderLine, error) {
	if err := o.ensureEditable(); err != nil {
		return nil, err
	}
	if quantity < 1 {
		return nil, shared.NewValidationError("Quantity must be at least 1")
	}

	line := o.findLine(lineID)
	if line == nil {
		return nil, shared.ErrNotFound
	}
	line.setQuantity(quantity)
	o.recalculateTotal()
	o.touch()
	return line, nil
}

// RemoveLine deletes a line from the order, draft only
func (o *Order) RemoveLine(lineID uuid.UUID) (*OrderLine, error) {
	if err := o.ensureEditable(); err != nil {
		return nil, err
	}

	for i := range o.Lines {
		if o.Lines[i].ID == lineID {
			removed := o.Lines[i]
			o.Lines = append(o.Lines[:i], o.Lines[i+1:]...)
			o.recalculateTotal()
			o.touch()
			return &removed, nil
		}
	}
	return nil, shared.ErrNotFound
}

// Confirm transitions the order from draft to confirmed. Stock deduction is
// the workflow service's responsibility and must happen in the same
// transaction.
func (o *Order) Confirm() error {
	if !o.Status.CanTransitionTo(OrderStatusConfirmed) {
		return shared.NewInvalidTransitionError(o.Status.String(), OrderStatusConfirmed.String())
	}
	if len(o.Lines) == 0 {
		return shared.ErrEmptyOrder
	}

	now := time.Now()
	o.Status = OrderStatusConfirmed
	o.ConfirmedAt = &now
	o.touch()

	o.AddDomainEvent(NewOrderConfirmedEvent(o))

	return nil
}

// Pay records payment details and transitions the order to paid. Mobile
// money payments must carry the sender phone and transaction reference.
func (o *Order) Pay(paymentType PaymentType, amount decimal.Decimal, senderPhone, transactionRef string) error {
	if !o.Status.CanTransitionTo(OrderStatusPaid) {
		return shared.NewInvalidTransitionError(o.Status.String(), OrderStatusPaid.String())
	}
	if !paymentType.IsValid() {
		return shared.NewValidationError("Unknown payment type: " + paymentType.String())
	}
	if amount.IsNegative() || amount.IsZero() {
		return shared.NewValidationError("Paid amount must be positive")
	}
	if paymentType == PaymentTypeMobileMoney {
		if senderPhone == "" {
			return shared.NewMissingFieldError("sender_phone")
		}
		if transactionRef == "" {
			return shared.NewMissingFieldError("transaction_ref")
		}
	}

	now := time.Now()
	o.Status = OrderStatusPaid
	o.PaidAt = &now
	o.PaymentType = &paymentType
	o.AmountPaid = &amount
	o.SenderPhone = senderPhone
	o.TransactionRef = transactionRef
	o.touch()

	return nil
}

// AdvanceTo performs a forward transition to in_preparation, in_delivery or
// delivered, stamping the matching timestamp
func (o *Order) AdvanceTo(target OrderStatus) error {
	switch target {
	case OrderStatusInPreparation, OrderStatusInDelivery, OrderStatusDelivered:
	default:
		return shared.NewValidationError("Status " + target.String() + " is not a fulfillment step")
	}
	if !o.Status.CanTransitionTo(target) {
		return shared.NewInvalidTransitionError(o.Status.String(), target.String())
	}

	now := time.Now()
	o.Status = target
	switch target {
	case OrderStatusInPreparation:
		o.PreparedAt = &now
	case OrderStatusInDelivery:
		o.ShippedAt = &now
	case OrderStatusDelivered:
		o.DeliveredAt = &now
		o.AddDomainEvent(NewOrderDeliveredEvent(o))
	}
	o.touch()

	return nil
}

// Cancel transitions the order to cancelled with a mandatory reason. The
// caller must restore stock beforehand when the current status holds it.
func (o *Order) Cancel(reason string) error {
	if reason == "" {
		return shared.NewMissingFieldError("cancellation_reason")
	}
	if !o.Status.CanTransitionTo(OrderStatusCancelled) {
		return shared.NewInvalidTransitionError(o.Status.String(), OrderStatusCancelled.String())
	}

	now := time.Now()
	o.Status = OrderStatusCancelled
	o.CancelledAt = &now
	o.CancellationReason = reason
	o.touch()

	o.AddDomainEvent(NewOrderCancelledEvent(o, reason))

	return nil
}

// AssignCourier attaches an active courier to the order. Validation of the
// courier itself is done by the workflow service.
func (o *Order) AssignCourier(courierID uuid.UUID) error {
	if o.Status == OrderStatusDelivered || o.Status == OrderStatusCancelled {
		return shared.NewInvalidTransitionError(o.Status.String(), o.Status.String())
	}
	o.CourierID = &courierID
	o.touch()
	return nil
}

// SetLineVerification toggles the operational checklist flag on one line.
// Unlike other line mutations this is allowed at any order status.
func (o *Order) SetLineVerification(lineID uuid.UUID, status VerificationStatus) error {
	if !status.IsValid() {
		return shared.NewValidationError("Unknown verification status")
	}
	line := o.findLine(lineID)
	if line == nil {
		return shared.ErrNotFound
	}
	line.VerificationStatus = status
	line.UpdatedAt = time.Now()
	return nil
}

// SetAllLinesVerification applies one verification status to every line
func (o *Order) SetAllLinesVerification(status VerificationStatus) error {
	if !status.IsValid() {
		return shared.NewValidationError("Unknown verification status")
	}
	now := time.Now()
	for i := range o.Lines {
		o.Lines[i].VerificationStatus = status
		o.Lines[i].UpdatedAt = now
	}
	return nil
}

// AllLinesVerified returns true when every line has been checked off
func (o *Order) AllLinesVerified() bool {
	for i := range o.Lines {
		if o.Lines[i].VerificationStatus != VerificationStatusOK {
			return false
		}
	}
	return len(o.Lines) > 0
}

// SoftDelete hides the order. Only draft and cancelled orders may be deleted.
func (o *Order) SoftDelete() error {
	if o.Status != OrderStatusDraft && o.Status != OrderStatusCancelled {
		return shared.NewDomainError("NOT_EDITABLE", "Only draft or cancelled orders can be deleted")
	}
	if o.IsDeleted {
		return nil
	}
	now := time.Now()
	o.IsDeleted = true
	o.DeletedAt = &now
	o.touch()
	return nil
}

// IsEditable returns true while line and field edits are allowed
func (o *Order) IsEditable() bool {
	return o.Status == OrderStatusDraft
}

func (o *Order) ensureEditable() error {
	if !o.IsEditable() {
		return shared.ErrNotEditable
	}
	return nil
}

func (o *Order) findLine(lineID uuid.UUID) *OrderLine {
	for i := range o.Lines {
		if o.Lines[i].ID == lineID {
			return &o.Lines[i]
		}
	}
	return nil
}

// recalculateTotal derives the total from the lines, fee and discount
func (o *Order) recalculateTotal() {
	subtotal := decimal.Zero
	for i := range o.Lines {
		subtotal = subtotal.Add(o.Lines[i].LineTotal)
	}
	o.TotalAmount = subtotal.Add(o.DeliveryFee).Sub(o.DiscountAmount)
}

// Subtotal returns the sum of line totals before fee and discount
func (o *Order) Subtotal() decimal.Decimal {
	subtotal := decimal.Zero
	for i := range o.Lines {
		subtotal = subtotal.Add(o.Lines[i].LineTotal)
	}
	return subtotal
}

func (o *Order) touch() {
	o.UpdatedAt = time.Now()
	o.IncrementVersion()
}
