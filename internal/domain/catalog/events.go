package catalog

import (
	"github.com/gestock/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Event types for the catalog context
const (
	EventTypeProductCreated      = "catalog.product.created"
	EventTypeProductPriceChanged = "catalog.product.price_changed"
)

// ProductCreatedEvent is raised when a new product is created
type ProductCreatedEvent struct {
	shared.BaseDomainEvent
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}

// NewProductCreatedEvent creates a new product created event
func NewProductCreatedEvent(product *Product) *ProductCreatedEvent {
	return &ProductCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeProductCreated, "Product", product.ID),
		Name:            product.Name,
		Price:           product.Price,
	}
}

// ProductPriceChangedEvent is raised when a product price is updated
type ProductPriceChangedEvent struct {
	shared.BaseDomainEvent
	OldPrice decimal.Decimal `json:"old_price"`
	NewPrice decimal.Decimal `json:"new_price"`
}

// NewProductPriceChangedEvent creates a new price changed event
func NewProductPriceChangedEvent(product *Product, oldPrice, newPrice decimal.Decimal) *ProductPriceChangedEvent {
	return &ProductPriceChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeProductPriceChanged, "Product", product.ID),
		OldPrice:        oldPrice,
		NewPrice:        newPrice,
	}
}
