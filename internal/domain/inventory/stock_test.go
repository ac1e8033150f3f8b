package inventory

import (
	"testing"

	"github.com/gestock/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStock(t *testing.T, quantity int64) *Stock {
	t.Helper()
	stock := NewStock(uuid.New())
	if quantity > 0 {
		_, _, err := stock.Apply(MovementTypeIn, quantity)
		require.NoError(t, err)
	}
	stock.ClearDomainEvents()
	return stock
}

func TestStock_Apply(t *testing.T) {
	tests := []struct {
		name         string
		initial      int64
		movementType MovementType
		quantity     int64
		wantAfter    int64
		wantErr      bool
		errCode      string
	}{
		{"inbound adds", 10, MovementTypeIn, 5, 15, false, ""},
		{"return adds", 10, MovementTypeReturn, 3, 13, false, ""},
		{"outbound removes", 10, MovementTypeOut, 4, 6, false, ""},
		{"sale removes", 10, MovementTypeSale, 10, 0, false, ""},
		{"sale over available", 10, MovementTypeSale, 11, 10, true, "INSUFFICIENT_STOCK"},
		{"out over available", 2, MovementTypeOut, 3, 2, true, "INSUFFICIENT_STOCK"},
		{"adjustment sets absolute level", 10, MovementTypeAdjustment, 42, 42, false, ""},
		{"adjustment to zero", 10, MovementTypeAdjustment, 0, 0, false, ""},
		{"adjustment negative", 10, MovementTypeAdjustment, -1, 10, true, "VALIDATION_ERROR"},
		{"inbound zero quantity", 10, MovementTypeIn, 0, 10, true, "VALIDATION_ERROR"},
		{"outbound negative quantity", 10, MovementTypeOut, -5, 10, true, "VALIDATION_ERROR"},
		{"unknown type", 10, MovementType("transfer"), 1, 10, true, "VALIDATION_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stock := newTestStock(t, tt.initial)
			versionBefore := stock.Version

			before, after, err := stock.Apply(tt.movementType, tt.quantity)

			if tt.wantErr {
				require.Error(t, err)
				var domainErr *shared.DomainError
				require.ErrorAs(t, err, &domainErr)
				assert.Equal(t, tt.errCode, domainErr.Code)
				assert.Equal(t, tt.initial, stock.Quantity, "failed apply must not mutate quantity")
				assert.Equal(t, versionBefore, stock.Version, "failed apply must not bump version")
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.initial, before)
			assert.Equal(t, tt.wantAfter, after)
			assert.Equal(t, tt.wantAfter, stock.Quantity)
			assert.Equal(t, versionBefore+1, stock.Version)
		})
	}
}

func TestStock_Apply_InsufficientStockDetails(t *testing.T) {
	stock := newTestStock(t, 3)

	_, _, err := stock.Apply(MovementTypeSale, 5)
	require.Error(t, err)

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INSUFFICIENT_STOCK", domainErr.Code)
	assert.Equal(t, stock.ProductID.String(), domainErr.Details["product_id"])
	assert.Equal(t, int64(3), domainErr.Details["available"])
	assert.Equal(t, int64(5), domainErr.Details["requested"])
}

func TestStock_ThresholdEvent(t *testing.T) {
	stock := newTestStock(t, 50)
	require.NoError(t, stock.SetAlertThreshold(10))
	stock.ClearDomainEvents()

	// Still above threshold, no event
	_, _, err := stock.Apply(MovementTypeSale, 30)
	require.NoError(t, err)
	assert.Empty(t, stock.GetDomainEvents())

	// Drops to the threshold exactly
	_, _, err = stock.Apply(MovementTypeSale, 10)
	require.NoError(t, err)
	events := stock.GetDomainEvents()
	require.Len(t, events, 1)
	assert.Equal(t, EventTypeStockBelowThreshold, events[0].EventType())

	alert, ok := events[0].(*StockBelowThresholdEvent)
	require.True(t, ok)
	assert.Equal(t, int64(10), alert.Quantity)
	assert.Equal(t, stock.ProductID, alert.ProductID)
}

func TestStock_Defaults(t *testing.T) {
	stock := NewStock(uuid.New())
	assert.Equal(t, int64(0), stock.Quantity)
	assert.Equal(t, DefaultAlertThreshold, stock.AlertThreshold)
	assert.True(t, stock.IsOutOfStock())
	assert.True(t, stock.IsBelowThreshold())
}

func TestNewStockMovement(t *testing.T) {
	stock := newTestStock(t, 10)
	actor := uuid.New()

	before, after, err := stock.Apply(MovementTypeSale, 4)
	require.NoError(t, err)

	movement := NewStockMovement(stock, MovementTypeSale, 4, before, after,
		WithReference("CMD-20260828120000-123"),
		WithNotes("order confirmation"),
		WithActor(actor),
	)

	assert.Equal(t, stock.ID, movement.StockID)
	assert.Equal(t, stock.ProductID, movement.ProductID)
	assert.Equal(t, MovementTypeSale, movement.Type)
	assert.Equal(t, int64(4), movement.Quantity)
	assert.Equal(t, int64(10), movement.QuantityBefore)
	assert.Equal(t, int64(6), movement.QuantityAfter)
	assert.Equal(t, "CMD-20260828120000-123", movement.Reference)
	require.NotNil(t, movement.ActorID)
	assert.Equal(t, actor, *movement.ActorID)
}

func TestMovementType(t *testing.T) {
	assert.True(t, MovementTypeIn.IsInbound())
	assert.True(t, MovementTypeReturn.IsInbound())
	assert.True(t, MovementTypeOut.IsOutbound())
	assert.True(t, MovementTypeSale.IsOutbound())
	assert.False(t, MovementTypeAdjustment.IsInbound())
	assert.False(t, MovementTypeAdjustment.IsOutbound())
	assert.False(t, MovementType("transfer").IsValid())
}
