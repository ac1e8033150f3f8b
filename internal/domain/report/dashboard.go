package report

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SalesSummary is a read model aggregating recognized orders over a range.
// Recognized means confirmed or later, excluding drafts and cancellations.
type SalesSummary struct {
	PeriodStart       time.Time       `json:"period_start"`
	PeriodEnd         time.Time       `json:"period_end"`
	Revenue           decimal.Decimal `json:"revenue"`
	OrderCount        int64           `json:"order_count"`
	AverageOrderValue decimal.Decimal `json:"average_order_value"`
}

// PeriodComparison holds a metric against its previous same-length period
type PeriodComparison struct {
	Current       decimal.Decimal `json:"current"`
	Previous      decimal.Decimal `json:"previous"`
	ChangePercent decimal.Decimal `json:"change_percent"`
}

// DailySales is the revenue and order count of one day
type DailySales struct {
	Date       time.Time       `json:"date"`
	Revenue    decimal.Decimal `json:"revenue"`
	OrderCount int64           `json:"order_count"`
}

// TopProduct ranks a product by quantity sold and revenue
type TopProduct struct {
	ProductID   uuid.UUID       `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int64           `json:"quantity"`
	Revenue     decimal.Decimal `json:"revenue"`
}

// TopCategory ranks a category by quantity sold and revenue
type TopCategory struct {
	CategoryID   uuid.UUID       `json:"category_id"`
	CategoryName string          `json:"category_name"`
	Quantity     int64           `json:"quantity"`
	Revenue      decimal.Decimal `json:"revenue"`
}

// StockAlert flags a product at or below its alert threshold
type StockAlert struct {
	ProductID      uuid.UUID `json:"product_id"`
	ProductName    string    `json:"product_name"`
	Quantity       int64     `json:"quantity"`
	AlertThreshold int64     `json:"alert_threshold"`
	OutOfStock     bool      `json:"out_of_stock"`
}

// Dashboard is the full KPI view served to the frontend
type Dashboard struct {
	Revenue       PeriodComparison `json:"revenue"`
	OrderCount    PeriodComparison `json:"order_count"`
	AverageOrder  PeriodComparison `json:"average_order"`
	StatusCounts  map[string]int64 `json:"status_counts"`
	SalesByDay    []DailySales     `json:"sales_by_day"`
	TopProducts   []TopProduct     `json:"top_products"`
	TopCategories []TopCategory    `json:"top_categories"`
	StockAlerts   []StockAlert     `json:"stock_alerts"`
}
