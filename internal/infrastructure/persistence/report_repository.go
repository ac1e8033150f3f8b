package persistence

import (
	"context"
	"time"

	"github.com/gestock/backend/internal/domain/ordering"
	"github.com/gestock/backend/internal/domain/report"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormReportRepository implements the read-only report aggregation queries.
// Revenue is recognized on orders that reached confirmation and were not
// cancelled, attributed to the confirmation time.
type GormReportRepository struct {
	db *gorm.DB
}

// NewGormReportRepository creates a new GormReportRepository
func NewGormReportRepository(db *gorm.DB) *GormReportRepository {
	return &GormReportRepository{db: db}
}

// recognizedOrders scopes a query to orders counting toward revenue inside
// the half-open range [start, end)
func (r *GormReportRepository) recognizedOrders(ctx context.Context, start, end time.Time) *gorm.DB {
	return r.db.WithContext(ctx).
		Model(&ordering.Order{}).
		Where("status NOT IN ?", []ordering.OrderStatus{ordering.OrderStatusDraft, ordering.OrderStatusCancelled}).
		Where("is_deleted = ?", false).
		Where("confirmed_at >= ? AND confirmed_at < ?", start, end)
}

// SalesSummary aggregates revenue and order count over the range
func (r *GormReportRepository) SalesSummary(ctx context.Context, start, end time.Time) (*report.SalesSummary, error) {
	var row struct {
		Revenue    decimal.Decimal
		OrderCount int64
	}
	if err := r.recognizedOrders(ctx, start, end).
		Select("COALESCE(SUM(total_amount), 0) AS revenue, COUNT(*) AS order_count").
		Scan(&row).Error; err != nil {
		return nil, err
	}

	summary := &report.SalesSummary{
		PeriodStart:       start,
		PeriodEnd:         end,
		Revenue:           row.Revenue,
		OrderCount:        row.OrderCount,
		AverageOrderValue: decimal.Zero,
	}
	if row.OrderCount > 0 {
		summary.AverageOrderValue = row.Revenue.DivRound(decimal.NewFromInt(row.OrderCount), 2)
	}
	return summary, nil
}

// SalesByDay aggregates revenue per confirmation day over the range
func (r *GormReportRepository) SalesByDay(ctx context.Context, start, end time.Time) ([]report.DailySales, error) {
	var rows []struct {
		Day        string
		Revenue    decimal.Decimal
		OrderCount int64
	}
	if err := r.recognizedOrders(ctx, start, end).
		Select("DATE(confirmed_at) AS day, COALESCE(SUM(total_amount), 0) AS revenue, COUNT(*) AS order_count").
		Group("DATE(confirmed_at)").
		Order("day ASC").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	sales := make([]report.DailySales, 0, len(rows))
	for _, row := range rows {
		date, err := time.Parse("2006-01-02", row.Day)
		if err != nil {
			return nil, err
		}
		sales = append(sales, report.DailySales{
			Date:       date,
			Revenue:    row.Revenue,
			OrderCount: row.OrderCount,
		})
	}
	return sales, nil
}

// TopProducts ranks products by quantity sold over the range
func (r *GormReportRepository) TopProducts(ctx context.Context, start, end time.Time, limit int) ([]report.TopProduct, error) {
	var rows []struct {
		ProductID   uuid.UUID
		ProductName string
		Quantity    int64
		Revenue     decimal.Decimal
	}
	if err := r.db.WithContext(ctx).
		Table("order_lines").
		Select("order_lines.product_id, order_lines.product_name, SUM(order_lines.quantity) AS quantity, COALESCE(SUM(order_lines.line_total), 0) AS revenue").
		Joins("JOIN orders ON orders.id = order_lines.order_id").
		Where("orders.status NOT IN ?", []ordering.OrderStatus{ordering.OrderStatusDraft, ordering.OrderStatusCancelled}).
		Where("orders.is_deleted = ?", false).
		Where("orders.confirmed_at >= ? AND orders.confirmed_at < ?", start, end).
		Group("order_lines.product_id, order_lines.product_name").
		Order("quantity DESC").
		Limit(limit).
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	top := make([]report.TopProduct, 0, len(rows))
	for _, row := range rows {
		top = append(top, report.TopProduct{
			ProductID:   row.ProductID,
			ProductName: row.ProductName,
			Quantity:    row.Quantity,
			Revenue:     row.Revenue,
		})
	}
	return top, nil
}

// TopCategories ranks categories by quantity sold over the range. Lines of
// uncategorized products are left out.
func (r *GormReportRepository) TopCategories(ctx context.Context, start, end time.Time, limit int) ([]report.TopCategory, error) {
	var rows []struct {
		CategoryID   uuid.UUID
		CategoryName string
		Quantity     int64
		Revenue      decimal.Decimal
	}
	if err := r.db.WithContext(ctx).
		Table("order_lines").
		Select("categories.id AS category_id, categories.name AS category_name, SUM(order_lines.quantity) AS quantity, COALESCE(SUM(order_lines.line_total), 0) AS revenue").
		Joins("JOIN orders ON orders.id = order_lines.order_id").
		Joins("JOIN products ON products.id = order_lines.product_id").
		Joins("JOIN categories ON categories.id = products.category_id").
		Where("orders.status NOT IN ?", []ordering.OrderStatus{ordering.OrderStatusDraft, ordering.OrderStatusCancelled}).
		Where("orders.is_deleted = ?", false).
		Where("orders.confirmed_at >= ? AND orders.confirmed_at < ?", start, end).
		Group("categories.id, categories.name").
		Order("quantity DESC").
		Limit(limit).
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	top := make([]report.TopCategory, 0, len(rows))
	for _, row := range rows {
		top = append(top, report.TopCategory{
			CategoryID:   row.CategoryID,
			CategoryName: row.CategoryName,
			Quantity:     row.Quantity,
			Revenue:      row.Revenue,
		})
	}
	return top, nil
}

// CountByStatus counts live orders created in the range, per status
func (r *GormReportRepository) CountByStatus(ctx context.Context, start, end time.Time) (map[ordering.OrderStatus]int64, error) {
	var rows []struct {
		Status ordering.OrderStatus
		Count  int64
	}
	if err := r.db.WithContext(ctx).
		Model(&ordering.Order{}).
		Select("status, COUNT(*) AS count").
		Where("is_deleted = ?", false).
		Where("created_at >= ? AND created_at < ?", start, end).
		Group("status").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	counts := make(map[ordering.OrderStatus]int64, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return counts, nil
}

// StockAlerts lists live products at or under their alert threshold, lowest
// quantity first
func (r *GormReportRepository) StockAlerts(ctx context.Context) ([]report.StockAlert, error) {
	var rows []struct {
		ProductID      uuid.UUID
		ProductName    string
		Quantity       int64
		AlertThreshold int64
	}
	if err := r.db.WithContext(ctx).
		Table("stocks").
		Select("stocks.product_id, products.name AS product_name, stocks.quantity, stocks.alert_threshold").
		Joins("JOIN products ON products.id = stocks.product_id").
		Where("stocks.quantity <= stocks.alert_threshold").
		Where("products.is_deleted = ?", false).
		Order("stocks.quantity ASC").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	alerts := make([]report.StockAlert, 0, len(rows))
	for _, row := range rows {
		alerts = append(alerts, report.StockAlert{
			ProductID:      row.ProductID,
			ProductName:    row.ProductName,
			Quantity:       row.Quantity,
			AlertThreshold: row.AlertThreshold,
			OutOfStock:     row.Quantity == 0,
		})
	}
	return alerts, nil
}

// Ensure GormReportRepository implements report.Repository
var _ report.Repository = (*GormReportRepository)(nil)
