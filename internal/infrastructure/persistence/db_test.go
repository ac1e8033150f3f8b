package persistence

import (
	"testing"

	"github.com/gestock/backend/internal/domain/catalog"
	"github.com/gestock/backend/internal/domain/identity"
	"github.com/gestock/backend/internal/domain/inventory"
	"github.com/gestock/backend/internal/domain/ordering"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB opens an in-memory SQLite database with the full schema
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&identity.User{},
		&catalog.Category{},
		&catalog.Product{},
		&catalog.PriceChange{},
		&inventory.Stock{},
		&inventory.StockMovement{},
		&ordering.Order{},
		&ordering.OrderLine{},
		&ordering.OrderHistoryEntry{},
	)
	require.NoError(t, err)

	return db
}
