package report

import (
	"context"
	"time"

	"github.com/gestock/backend/internal/domain/ordering"
)

// Repository is the read-only aggregation interface backing the dashboard.
// Implementations query committed order and stock state and never write.
type Repository interface {
	SalesSummary(ctx context.Context, start, end time.Time) (*SalesSummary, error)
	SalesByDay(ctx context.Context, start, end time.Time) ([]DailySales, error)
	TopProducts(ctx context.Context, start, end time.Time, limit int) ([]TopProduct, error)
	TopCategories(ctx context.Context, start, end time.Time, limit int) ([]TopCategory, error)
	CountByStatus(ctx context.Context, start, end time.Time) (map[ordering.OrderStatus]int64, error)
	StockAlerts(ctx context.Context) ([]StockAlert, error)
}
