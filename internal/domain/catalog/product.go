package catalog

import (
	"time"

	"github.com/gestock/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product represents a sellable item in the catalog
// It is the aggregate root for product-related operations
type Product struct {
	shared.BaseAggregateRoot
	Name        string          `gorm:"type:varchar(200);not null"`
	Description string          `gorm:"type:text"`
	Price       decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	CategoryID  *uuid.UUID      `gorm:"type:uuid;index"`
	IsActive    bool            `gorm:"not null;default:true"`
	IsDeleted   bool            `gorm:"not null;default:false;index"`
	DeletedAt   *time.Time
	CreatedBy   *uuid.UUID `gorm:"type:uuid"`
	UpdatedBy   *uuid.UUID `gorm:"type:uuid"`
}

// TableName returns the table name for GORM
func (Product) TableName() string {
	return "products"
}

// NewProduct creates a new active product
func NewProduct(name, description string, price decimal.Decimal, createdBy *uuid.UUID) (*Product, error) {
	if err := validateProductName(name); err != nil {
		return nil, err
	}
	if price.IsNegative() {
		return nil, shared.NewValidationError("Price cannot be negative")
	}

	product := &Product{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Description:       description,
		Price:             price,
		IsActive:          true,
		CreatedBy:         createdBy,
	}

	product.AddDomainEvent(NewProductCreatedEvent(product))

	return product, nil
}

// Update updates the product's basic information
func (p *Product) Update(name, description string, updatedBy *uuid.UUID) error {
	if err := validateProductName(name); err != nil {
		return err
	}

	p.Name = name
	p.Description = description
	p.UpdatedBy = updatedBy
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// ChangePrice updates the price and reports the old value so callers can
// record the change in the price history
func (p *Product) ChangePrice(newPrice decimal.Decimal, updatedBy *uuid.UUID) (decimal.Decimal, error) {
	if newPrice.IsNegative() {
		return decimal.Zero, shared.NewValidationError("Price cannot be negative")
	}

	oldPrice := p.Price
	p.Price = newPrice
	p.UpdatedBy = updatedBy
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	p.AddDomainEvent(NewProductPriceChangedEvent(p, oldPrice, newPrice))

	return oldPrice, nil
}

// SetCategory sets the product category
func (p *Product) SetCategory(categoryID *uuid.UUID) {
	p.CategoryID = categoryID
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
}

// Activate makes the product orderable again
func (p *Product) Activate() {
	p.IsActive = true
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
}

// Deactivate removes the product from sale without deleting it
func (p *Product) Deactivate() {
	p.IsActive = false
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
}

// SoftDelete marks the product as deleted while keeping the row for
// historical order lines that still reference it
func (p *Product) SoftDelete() {
	if p.IsDeleted {
		return
	}
	now := time.Now()
	p.IsDeleted = true
	p.DeletedAt = &now
	p.UpdatedAt = now
	p.IncrementVersion()
}

// IsOrderable returns true if the product can be added to an order
func (p *Product) IsOrderable() bool {
	return p.IsActive && !p.IsDeleted
}

func validateProductName(name string) error {
	if name == "" {
		return shared.NewValidationError("Product name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewValidationError("Product name cannot exceed 200 characters")
	}
	return nil
}
