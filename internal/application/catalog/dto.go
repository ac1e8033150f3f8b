package catalog

import (
	"time"

	"github.com/gestock/backend/internal/domain/catalog"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateProductRequest creates a new catalog product
type CreateProductRequest struct {
	Name        string          `json:"name" binding:"required"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	CategoryID  *uuid.UUID      `json:"category_id"`
}

// UpdateProductRequest edits a product. Nil pointers leave fields unchanged.
type UpdateProductRequest struct {
	Name        *string          `json:"name"`
	Description *string          `json:"description"`
	Price       *decimal.Decimal `json:"price"`
	CategoryID  *uuid.UUID       `json:"category_id"`
	IsActive    *bool            `json:"is_active"`
}

// CreateCategoryRequest creates a new category
type CreateCategoryRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

// ProductResponse is the API view of a product
type ProductResponse struct {
	ID          uuid.UUID       `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Price       decimal.Decimal `json:"price"`
	CategoryID  *uuid.UUID      `json:"category_id,omitempty"`
	IsActive    bool            `json:"is_active"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// NewProductResponse converts a product to its API view
func NewProductResponse(product *catalog.Product) ProductResponse {
	return ProductResponse{
		ID:          product.ID,
		Name:        product.Name,
		Description: product.Description,
		Price:       product.Price,
		CategoryID:  product.CategoryID,
		IsActive:    product.IsActive,
		CreatedAt:   product.CreatedAt,
		UpdatedAt:   product.UpdatedAt,
	}
}

// PriceChangeResponse is the API view of one price history entry
type PriceChangeResponse struct {
	ID        uuid.UUID       `json:"id"`
	ProductID uuid.UUID       `json:"product_id"`
	OldPrice  decimal.Decimal `json:"old_price"`
	NewPrice  decimal.Decimal `json:"new_price"`
	ChangedBy *uuid.UUID      `json:"changed_by,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
}

// NewPriceChangeResponse converts a price change to its API view
func NewPriceChangeResponse(change *catalog.PriceChange) PriceChangeResponse {
	return PriceChangeResponse{
		ID:        change.ID,
		ProductID: change.ProductID,
		OldPrice:  change.OldPrice,
		NewPrice:  change.NewPrice,
		ChangedBy: change.ChangedBy,
		CreatedAt: change.CreatedAt,
	}
}

// CategoryResponse is the API view of a category
type CategoryResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
}

// NewCategoryResponse converts a category to its API view
func NewCategoryResponse(category *catalog.Category) CategoryResponse {
	return CategoryResponse{
		ID:          category.ID,
		Name:        category.Name,
		Description: category.Description,
	}
}
