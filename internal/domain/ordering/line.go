package ordering

import (
	"time"

	"github.com/gestock/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderLine is one product-quantity pairing within an order. The unit price
// is copied from the product at the time the line is created and never
// follows later catalog changes.
type OrderLine struct {
	shared.BaseEntity
	OrderID            uuid.UUID          `gorm:"type:uuid;not null;index"`
	ProductID          uuid.UUID          `gorm:"type:uuid;not null;index"`
	ProductName        string             `gorm:"type:varchar(200);not null"`
	Quantity           int64              `gorm:"not null"`
	UnitPrice          decimal.Decimal    `gorm:"type:decimal(18,2);not null"`
	LineTotal          decimal.Decimal    `gorm:"type:decimal(18,2);not null"`
	VerificationStatus VerificationStatus `gorm:"type:varchar(20);not null;default:'to_verify'"`
}

// TableName returns the table name for GORM
func (OrderLine) TableName() string {
	return "order_lines"
}

func newOrderLine(orderID, productID uuid.UUID, productName string, unitPrice decimal.Decimal, quantity int64) *OrderLine {
	line := &OrderLine{
		BaseEntity:         shared.NewBaseEntity(),
		OrderID:            orderID,
		ProductID:          productID,
		ProductName:        productName,
		Quantity:           quantity,
		UnitPrice:          unitPrice,
		VerificationStatus: VerificationStatusToVerify,
	}
	line.recalculate()
	return line
}

func (l *OrderLine) setQuantity(quantity int64) {
	l.Quantity = quantity
	l.recalculate()
	l.UpdatedAt = time.Now()
}

func (l *OrderLine) recalculate() {
	l.LineTotal = l.UnitPrice.Mul(decimal.NewFromInt(l.Quantity))
}
