package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/gestock/backend/internal/domain/catalog"
	"github.com/gestock/backend/internal/domain/inventory"
	"github.com/gestock/backend/internal/domain/ordering"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// seedSales creates one confirmed order, one draft and one cancelled order.
// Only the confirmed one counts toward revenue.
func seedSales(t *testing.T, db *gorm.DB) (fabric, soap *catalog.Product) {
	t.Helper()
	ctx := context.Background()
	productRepo := NewGormProductRepository(db)
	categoryRepo := NewGormCategoryRepository(db)
	orderRepo := NewGormOrderRepository(db)

	textiles, err := catalog.NewCategory("Textiles", "")
	require.NoError(t, err)
	require.NoError(t, categoryRepo.Save(ctx, textiles))

	fabric = createProduct(t, db, "Bazin Riche", "40.00")
	fabric.SetCategory(&textiles.ID)
	require.NoError(t, productRepo.Save(ctx, fabric))
	soap = createProduct(t, db, "Black Soap", "5.00")

	confirmed, err := ordering.NewOrder("CMD-20260828090000-001", "Aminata Sow", nil)
	require.NoError(t, err)
	_, err = confirmed.AddLine(fabric.ID, fabric.Name, fabric.Price, 2)
	require.NoError(t, err)
	_, err = confirmed.AddLine(soap.ID, soap.Name, soap.Price, 1)
	require.NoError(t, err)
	require.NoError(t, confirmed.Confirm())
	require.NoError(t, orderRepo.Save(ctx, confirmed))

	draft, err := ordering.NewOrder("CMD-20260828090000-002", "Draft Customer", nil)
	require.NoError(t, err)
	_, err = draft.AddLine(fabric.ID, fabric.Name, fabric.Price, 5)
	require.NoError(t, err)
	require.NoError(t, orderRepo.Save(ctx, draft))

	cancelled, err := ordering.NewOrder("CMD-20260828090000-003", "Cancelled Customer", nil)
	require.NoError(t, err)
	_, err = cancelled.AddLine(soap.ID, soap.Name, soap.Price, 10)
	require.NoError(t, err)
	require.NoError(t, cancelled.Confirm())
	require.NoError(t, cancelled.Cancel("customer unreachable"))
	require.NoError(t, orderRepo.Save(ctx, cancelled))

	return fabric, soap
}

func reportRange() (time.Time, time.Time) {
	now := time.Now().UTC()
	return now.Add(-time.Hour), now.Add(time.Hour)
}

func TestReportRepository_SalesSummary(t *testing.T) {
	db := setupTestDB(t)
	seedSales(t, db)
	repo := NewGormReportRepository(db)
	start, end := reportRange()

	summary, err := repo.SalesSummary(context.Background(), start, end)
	require.NoError(t, err)
	assert.True(t, summary.Revenue.Equal(decimal.RequireFromString("85.00")), "got %s", summary.Revenue)
	assert.Equal(t, int64(1), summary.OrderCount)
	assert.True(t, summary.AverageOrderValue.Equal(decimal.RequireFromString("85.00")))

	t.Run("empty range yields zeroes", func(t *testing.T) {
		past := start.Add(-48 * time.Hour)
		summary, err := repo.SalesSummary(context.Background(), past, past.Add(time.Hour))
		require.NoError(t, err)
		assert.True(t, summary.Revenue.IsZero())
		assert.Equal(t, int64(0), summary.OrderCount)
		assert.True(t, summary.AverageOrderValue.IsZero())
	})
}

func TestReportRepository_SalesByDay(t *testing.T) {
	db := setupTestDB(t)
	seedSales(t, db)
	repo := NewGormReportRepository(db)
	start, end := reportRange()

	sales, err := repo.SalesByDay(context.Background(), start, end)
	require.NoError(t, err)
	require.NotEmpty(t, sales)

	var revenue decimal.Decimal
	var count int64
	for _, day := range sales {
		revenue = revenue.Add(day.Revenue)
		count += day.OrderCount
	}
	assert.True(t, revenue.Equal(decimal.RequireFromString("85.00")))
	assert.Equal(t, int64(1), count)
}

func TestReportRepository_TopProducts(t *testing.T) {
	db := setupTestDB(t)
	fabric, soap := seedSales(t, db)
	repo := NewGormReportRepository(db)
	start, end := reportRange()

	top, err := repo.TopProducts(context.Background(), start, end, 10)
	require.NoError(t, err)
	require.Len(t, top, 2)

	assert.Equal(t, fabric.ID, top[0].ProductID)
	assert.Equal(t, int64(2), top[0].Quantity)
	assert.True(t, top[0].Revenue.Equal(decimal.RequireFromString("80.00")))

	assert.Equal(t, soap.ID, top[1].ProductID)
	assert.Equal(t, int64(1), top[1].Quantity)

	t.Run("limit caps the ranking", func(t *testing.T) {
		top, err := repo.TopProducts(context.Background(), start, end, 1)
		require.NoError(t, err)
		require.Len(t, top, 1)
		assert.Equal(t, fabric.ID, top[0].ProductID)
	})
}

func TestReportRepository_TopCategories(t *testing.T) {
	db := setupTestDB(t)
	seedSales(t, db)
	repo := NewGormReportRepository(db)
	start, end := reportRange()

	top, err := repo.TopCategories(context.Background(), start, end, 10)
	require.NoError(t, err)
	require.Len(t, top, 1, "uncategorized products must not rank")
	assert.Equal(t, "Textiles", top[0].CategoryName)
	assert.Equal(t, int64(2), top[0].Quantity)
	assert.True(t, top[0].Revenue.Equal(decimal.RequireFromString("80.00")))
}

func TestReportRepository_CountByStatus(t *testing.T) {
	db := setupTestDB(t)
	seedSales(t, db)
	repo := NewGormReportRepository(db)
	start, end := reportRange()

	counts, err := repo.CountByStatus(context.Background(), start, end)
	require.NoError(t, err)
	assert.Equal(t, int64(1), counts[ordering.OrderStatusDraft])
	assert.Equal(t, int64(1), counts[ordering.OrderStatusConfirmed])
	assert.Equal(t, int64(1), counts[ordering.OrderStatusCancelled])
}

func TestReportRepository_StockAlerts(t *testing.T) {
	db := setupTestDB(t)
	fabric, soap := seedSales(t, db)
	repo := NewGormReportRepository(db)
	stockRepo := NewGormStockRepository(db)
	ctx := context.Background()

	lowStock := inventory.NewStock(fabric.ID)
	_, _, err := lowStock.Apply(inventory.MovementTypeIn, 3)
	require.NoError(t, err)
	require.NoError(t, stockRepo.Save(ctx, lowStock))

	healthyStock := inventory.NewStock(soap.ID)
	_, _, err = healthyStock.Apply(inventory.MovementTypeIn, 100)
	require.NoError(t, err)
	require.NoError(t, stockRepo.Save(ctx, healthyStock))

	emptyProduct := createProduct(t, db, "Sold Out Incense", "2.00")
	emptyStock := inventory.NewStock(emptyProduct.ID)
	require.NoError(t, stockRepo.Save(ctx, emptyStock))

	alerts, err := repo.StockAlerts(ctx)
	require.NoError(t, err)
	require.Len(t, alerts, 2)

	assert.Equal(t, emptyProduct.ID, alerts[0].ProductID)
	assert.True(t, alerts[0].OutOfStock)
	assert.Equal(t, fabric.ID, alerts[1].ProductID)
	assert.False(t, alerts[1].OutOfStock)
	assert.Equal(t, "Bazin Riche", alerts[1].ProductName)
}
