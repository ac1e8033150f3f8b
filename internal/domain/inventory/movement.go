package inventory

import (
	"github.com/gestock/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// MovementType classifies a stock movement
type MovementType string

const (
	MovementTypeIn         MovementType = "in"         // Manual replenishment
	MovementTypeOut        MovementType = "out"        // Manual removal
	MovementTypeAdjustment MovementType = "adjustment" // Set to an absolute level (count correction)
	MovementTypeSale       MovementType = "sale"       // Deducted when an order is confirmed
	MovementTypeReturn     MovementType = "return"     // Restored when an order is cancelled
)

// IsValid checks if the movement type is a known value
func (t MovementType) IsValid() bool {
	switch t {
	case MovementTypeIn, MovementTypeOut, MovementTypeAdjustment, MovementTypeSale, MovementTypeReturn:
		return true
	}
	return false
}

// String returns the string representation of the movement type
func (t MovementType) String() string {
	return string(t)
}

// IsInbound returns true for types that increase the quantity
func (t MovementType) IsInbound() bool {
	return t == MovementTypeIn || t == MovementTypeReturn
}

// IsOutbound returns true for types that decrease the quantity
func (t MovementType) IsOutbound() bool {
	return t == MovementTypeOut || t == MovementTypeSale
}

// StockMovement is an immutable ledger entry. Once written it is never
// updated or deleted; the current quantity can always be rebuilt by
// replaying the before/after chain.
type StockMovement struct {
	shared.BaseEntity
	StockID        uuid.UUID    `gorm:"type:uuid;not null;index"`
	ProductID      uuid.UUID    `gorm:"type:uuid;not null;index"`
	Type           MovementType `gorm:"type:varchar(20);not null;index"`
	Quantity       int64        `gorm:"not null"`
	QuantityBefore int64        `gorm:"not null"`
	QuantityAfter  int64        `gorm:"not null"`
	Reference      string       `gorm:"type:varchar(100);index"`
	Notes          string       `gorm:"type:text"`
	ActorID        *uuid.UUID   `gorm:"type:uuid"`
}

// TableName returns the table name for GORM
func (StockMovement) TableName() string {
	return "stock_movements"
}

// MovementOption configures optional movement fields
type MovementOption func(*StockMovement)

// WithReference attaches an external reference, such as an order number
func WithReference(reference string) MovementOption {
	return func(m *StockMovement) {
		m.Reference = reference
	}
}

// WithNotes attaches free-form notes
func WithNotes(notes string) MovementOption {
	return func(m *StockMovement) {
		m.Notes = notes
	}
}

// WithActor records who triggered the movement
func WithActor(actorID uuid.UUID) MovementOption {
	return func(m *StockMovement) {
		m.ActorID = &actorID
	}
}

// NewStockMovement records a quantity change for a stock.
// Quantity is the value as requested by the caller: the delta for in/out/
// sale/return moves, the absolute target for an adjustment.
func NewStockMovement(stock *Stock, movementType MovementType, quantity, before, after int64, opts ...MovementOption) *StockMovement {
	movement := &StockMovement{
		BaseEntity:     shared.NewBaseEntity(),
		StockID:        stock.ID,
		ProductID:      stock.ProductID,
		Type:           movementType,
		Quantity:       quantity,
		QuantityBefore: before,
		QuantityAfter:  after,
	}
	for _, opt := range opts {
		opt(movement)
	}
	return movement
}
