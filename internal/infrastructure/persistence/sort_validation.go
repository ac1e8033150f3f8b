package persistence

import (
	"strings"
)

// ValidateSortOrder validates and normalizes the sort order to ASC or DESC.
// Returns "DESC" as the default if the input is invalid or empty.
func ValidateSortOrder(orderDir string) string {
	normalized := strings.ToUpper(strings.TrimSpace(orderDir))
	if normalized == "ASC" {
		return "ASC"
	}
	return "DESC"
}

// ValidateSortField validates the sort field against a whitelist of allowed fields.
// Returns the defaultField if the input is invalid, empty, or not in the whitelist.
func ValidateSortField(sortField string, allowedFields map[string]bool, defaultField string) string {
	trimmed := strings.TrimSpace(sortField)
	if trimmed == "" {
		return defaultField
	}
	if allowedFields[trimmed] {
		return trimmed
	}
	return defaultField
}

// ProductSortFields contains allowed sort fields for products
var ProductSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"name":       true,
	"price":      true,
	"is_active":  true,
}

// UserSortFields contains allowed sort fields for users
var UserSortFields = map[string]bool{
	"id":            true,
	"created_at":    true,
	"updated_at":    true,
	"name":          true,
	"email":         true,
	"role":          true,
	"last_login_at": true,
}

// StockSortFields contains allowed sort fields for stock records
var StockSortFields = map[string]bool{
	"id":              true,
	"created_at":      true,
	"updated_at":      true,
	"product_id":      true,
	"quantity":        true,
	"alert_threshold": true,
}

// MovementSortFields contains allowed sort fields for stock movements
var MovementSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"product_id": true,
	"type":       true,
	"quantity":   true,
	"reference":  true,
}

// OrderSortFields contains allowed sort fields for orders
var OrderSortFields = map[string]bool{
	"id":            true,
	"created_at":    true,
	"updated_at":    true,
	"number":        true,
	"status":        true,
	"customer_name": true,
	"total_amount":  true,
	"confirmed_at":  true,
	"delivered_at":  true,
}
