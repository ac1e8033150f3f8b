package inventory

import (
	"github.com/gestock/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Event types for the inventory context
const (
	EventTypeStockBelowThreshold = "inventory.stock.below_threshold"
)

// StockBelowThresholdEvent is raised when a movement leaves the quantity at
// or under the alert threshold
type StockBelowThresholdEvent struct {
	shared.BaseDomainEvent
	ProductID      uuid.UUID `json:"product_id"`
	Quantity       int64     `json:"quantity"`
	AlertThreshold int64     `json:"alert_threshold"`
}

// NewStockBelowThresholdEvent creates a new low-stock event
func NewStockBelowThresholdEvent(stock *Stock) *StockBelowThresholdEvent {
	return &StockBelowThresholdEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeStockBelowThreshold, "Stock", stock.ID),
		ProductID:       stock.ProductID,
		Quantity:        stock.Quantity,
		AlertThreshold:  stock.AlertThreshold,
	}
}
