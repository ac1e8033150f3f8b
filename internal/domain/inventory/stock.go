package inventory

import (
	"time"

	"github.com/gestock/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// DefaultAlertThreshold is applied when a stock record is created without an
// explicit threshold.
const DefaultAlertThreshold int64 = 10

// Stock tracks the on-hand quantity for a single product.
// It is the aggregate root of the inventory ledger; every quantity change
// goes through Apply so a movement record can be written alongside it.
type Stock struct {
	shared.BaseAggregateRoot
	ProductID      uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	Quantity       int64     `gorm:"not null;default:0"`
	AlertThreshold int64     `gorm:"not null;default:10"`
}

// TableName returns the table name for GORM
func (Stock) TableName() string {
	return "stocks"
}

// NewStock creates an empty stock record for a product
func NewStock(productID uuid.UUID) *Stock {
	return &Stock{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		ProductID:         productID,
		Quantity:          0,
		AlertThreshold:    DefaultAlertThreshold,
	}
}

// Apply mutates the quantity according to the movement type and returns the
// quantity before and after the change. For inbound types the quantity grows,
// for outbound types it shrinks and must not go below zero, and for an
// adjustment the given quantity is the absolute target level.
func (s *Stock) Apply(movementType MovementType, quantity int64) (before int64, after int64, err error) {
	before = s.Quantity

	switch movementType {
	case MovementTypeIn, MovementTypeReturn:
		if quantity <= 0 {
			return before, before, shared.NewValidationError("Quantity must be positive")
		}
		after = before + quantity
	case MovementTypeOut, MovementTypeSale:
		if quantity <= 0 {
			return before, before, shared.NewValidationError("Quantity must be positive")
		}
		if quantity > before {
			return before, before, shared.NewInsufficientStockError(s.ProductID.String(), before, quantity)
		}
		after = before - quantity
	case MovementTypeAdjustment:
		if quantity < 0 {
			return before, before, shared.NewValidationError("Adjusted quantity cannot be negative")
		}
		after = quantity
	default:
		return before, before, shared.NewValidationError("Unknown movement type: " + movementType.String())
	}

	s.Quantity = after
	s.UpdatedAt = time.Now()
	s.IncrementVersion()

	if after <= s.AlertThreshold {
		s.AddDomainEvent(NewStockBelowThresholdEvent(s))
	}

	return before, after, nil
}

// SetAlertThreshold updates the low-stock alert threshold
func (s *Stock) SetAlertThreshold(threshold int64) error {
	if threshold < 0 {
		return shared.NewValidationError("Alert threshold cannot be negative")
	}
	s.AlertThreshold = threshold
	s.UpdatedAt = time.Now()
	s.IncrementVersion()
	return nil
}

// IsBelowThreshold returns true when the quantity is at or under the alert level
func (s *Stock) IsBelowThreshold() bool {
	return s.Quantity <= s.AlertThreshold
}

// IsOutOfStock returns true when nothing is on hand
func (s *Stock) IsOutOfStock() bool {
	return s.Quantity == 0
}
