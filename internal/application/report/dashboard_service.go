package report

import (
	"context"
	"fmt"
	"time"

	"github.com/gestock/backend/internal/domain/report"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const (
	topLimit          = 5
	dashboardCacheTTL = 2 * time.Minute
)

// DashboardCache is the read-through cache in front of the dashboard
// aggregation queries. A failing cache is never an error: callers fall
// through to the database.
type DashboardCache interface {
	Get(ctx context.Context, key string) (*report.Dashboard, bool)
	Set(ctx context.Context, key string, dashboard *report.Dashboard, ttl time.Duration)
}

// DashboardService computes the KPI view over committed order and stock
// state. It is strictly read-only.
type DashboardService struct {
	repo   report.Repository
	cache  DashboardCache
	logger *zap.Logger
}

// NewDashboardService creates a new dashboard service. cache may be nil.
func NewDashboardService(repo report.Repository, cache DashboardCache, logger *zap.Logger) *DashboardService {
	return &DashboardService{
		repo:   repo,
		cache:  cache,
		logger: logger,
	}
}

// Dashboard aggregates the full KPI view for [start, end], comparing each
// headline metric against the same-length preceding period.
func (s *DashboardService) Dashboard(ctx context.Context, start, end time.Time) (*report.Dashboard, error) {
	key := cacheKey(start, end)
	if s.cache != nil {
		if cached, ok := s.cache.Get(ctx, key); ok {
			return cached, nil
		}
	}

	current, err := s.repo.SalesSummary(ctx, start, end)
	if err != nil {
		return nil, err
	}

	// Preceding range of the same length, ending where the current one starts
	prevStart := start.Add(-end.Sub(start))
	previous, err := s.repo.SalesSummary(ctx, prevStart, start)
	if err != nil {
		return nil, err
	}

	statusCounts, err := s.repo.CountByStatus(ctx, start, end)
	if err != nil {
		return nil, err
	}
	salesByDay, err := s.repo.SalesByDay(ctx, start, end)
	if err != nil {
		return nil, err
	}
	topProducts, err := s.repo.TopProducts(ctx, start, end, topLimit)
	if err != nil {
		return nil, err
	}
	topCategories, err := s.repo.TopCategories(ctx, start, end, topLimit)
	if err != nil {
		return nil, err
	}
	stockAlerts, err := s.repo.StockAlerts(ctx)
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(statusCounts))
	for status, count := range statusCounts {
		counts[status.String()] = count
	}

	dashboard := &report.Dashboard{
		Revenue:       Compare(current.Revenue, previous.Revenue),
		OrderCount:    Compare(decimal.NewFromInt(current.OrderCount), decimal.NewFromInt(previous.OrderCount)),
		AverageOrder:  Compare(current.AverageOrderValue, previous.AverageOrderValue),
		StatusCounts:  counts,
		SalesByDay:    salesByDay,
		TopProducts:   topProducts,
		TopCategories: topCategories,
		StockAlerts:   stockAlerts,
	}

	if s.cache != nil {
		s.cache.Set(ctx, key, dashboard, dashboardCacheTTL)
	}
	return dashboard, nil
}

// SalesSummary returns the revenue aggregate for a range
func (s *DashboardService) SalesSummary(ctx context.Context, start, end time.Time) (*report.SalesSummary, error) {
	return s.repo.SalesSummary(ctx, start, end)
}

// SalesByDay returns per-day revenue for a range
func (s *DashboardService) SalesByDay(ctx context.Context, start, end time.Time) ([]report.DailySales, error) {
	return s.repo.SalesByDay(ctx, start, end)
}

// TopProducts returns the best sellers by quantity and revenue
func (s *DashboardService) TopProducts(ctx context.Context, start, end time.Time, limit int) ([]report.TopProduct, error) {
	if limit <= 0 {
		limit = topLimit
	}
	return s.repo.TopProducts(ctx, start, end, limit)
}

// StockAlerts returns the products at or under their alert threshold
func (s *DashboardService) StockAlerts(ctx context.Context) ([]report.StockAlert, error) {
	return s.repo.StockAlerts(ctx)
}

// Compare builds a period-over-period comparison. A zero baseline reports a
// 0% change rather than dividing by zero.
func Compare(current, previous decimal.Decimal) report.PeriodComparison {
	change := decimal.Zero
	if !previous.IsZero() {
		change = current.Sub(previous).Div(previous).Mul(decimal.NewFromInt(100)).Round(2)
	}
	return report.PeriodComparison{
		Current:       current,
		Previous:      previous,
		ChangePercent: change,
	}
}

func cacheKey(start, end time.Time) string {
	return fmt.Sprintf("dashboard:%s:%s", start.Format("20060102"), end.Format("20060102"))
}
