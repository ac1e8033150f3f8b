package inventory

import (
	"time"

	"github.com/gestock/backend/internal/domain/inventory"
	"github.com/google/uuid"
)

// MoveStockRequest asks for one ledger movement on a product
type MoveStockRequest struct {
	ProductID uuid.UUID              `json:"product_id" binding:"required"`
	Type      inventory.MovementType `json:"type" binding:"required"`
	Quantity  int64                  `json:"quantity" binding:"required"`
	Reference string                 `json:"reference"`
	Notes     string                 `json:"notes"`
}

// SetThresholdRequest updates a product's low-stock alert level
type SetThresholdRequest struct {
	AlertThreshold int64 `json:"alert_threshold" binding:"min=0"`
}

// StockResponse is the API view of a stock record
type StockResponse struct {
	ID             uuid.UUID `json:"id"`
	ProductID      uuid.UUID `json:"product_id"`
	Quantity       int64     `json:"quantity"`
	AlertThreshold int64     `json:"alert_threshold"`
	BelowThreshold bool      `json:"below_threshold"`
	OutOfStock     bool      `json:"out_of_stock"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// NewStockResponse converts a stock aggregate to its API view
func NewStockResponse(stock *inventory.Stock) StockResponse {
	return StockResponse{
		ID:             stock.ID,
		ProductID:      stock.ProductID,
		Quantity:       stock.Quantity,
		AlertThreshold: stock.AlertThreshold,
		BelowThreshold: stock.IsBelowThreshold(),
		OutOfStock:     stock.IsOutOfStock(),
		UpdatedAt:      stock.UpdatedAt,
	}
}

// MovementResponse is the API view of a ledger entry
type MovementResponse struct {
	ID             uuid.UUID              `json:"id"`
	ProductID      uuid.UUID              `json:"product_id"`
	Type           inventory.MovementType `json:"type"`
	Quantity       int64                  `json:"quantity"`
	QuantityBefore int64                  `json:"quantity_before"`
	QuantityAfter  int64                  `json:"quantity_after"`
	Reference      string                 `json:"reference,omitempty"`
	Notes          string                 `json:"notes,omitempty"`
	ActorID        *uuid.UUID             `json:"actor_id,omitempty"`
	CreatedAt      time.Time              `json:"created_at"`
}

// NewMovementResponse converts a movement record to its API view
func NewMovementResponse(movement *inventory.StockMovement) MovementResponse {
	return MovementResponse{
		ID:             movement.ID,
		ProductID:      movement.ProductID,
		Type:           movement.Type,
		Quantity:       movement.Quantity,
		QuantityBefore: movement.QuantityBefore,
		QuantityAfter:  movement.QuantityAfter,
		Reference:      movement.Reference,
		Notes:          movement.Notes,
		ActorID:        movement.ActorID,
		CreatedAt:      movement.CreatedAt,
	}
}

// MoveStockResult carries both sides of a completed ledger operation
type MoveStockResult struct {
	Stock    StockResponse    `json:"stock"`
	Movement MovementResponse `json:"movement"`
}
