package catalog

import (
	"github.com/gestock/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PriceChange is an append-only record of a product price update.
// Records are never modified after creation.
type PriceChange struct {
	shared.BaseEntity
	ProductID uuid.UUID       `gorm:"type:uuid;not null;index"`
	OldPrice  decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	NewPrice  decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	ChangedBy *uuid.UUID      `gorm:"type:uuid"`
}

// TableName returns the table name for GORM
func (PriceChange) TableName() string {
	return "price_changes"
}

// NewPriceChange records a price update for a product
func NewPriceChange(productID uuid.UUID, oldPrice, newPrice decimal.Decimal, changedBy *uuid.UUID) *PriceChange {
	return &PriceChange{
		BaseEntity: shared.NewBaseEntity(),
		ProductID:  productID,
		OldPrice:   oldPrice,
		NewPrice:   newPrice,
		ChangedBy:  changedBy,
	}
}
