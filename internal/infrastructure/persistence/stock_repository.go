package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/gestock/backend/internal/domain/inventory"
	"github.com/gestock/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormStockRepository implements StockRepository using GORM
type GormStockRepository struct {
	db *gorm.DB
}

// NewGormStockRepository creates a new GormStockRepository
func NewGormStockRepository(db *gorm.DB) *GormStockRepository {
	return &GormStockRepository{db: db}
}

// FindByID finds a stock record by its ID
func (r *GormStockRepository) FindByID(ctx context.Context, id uuid.UUID) (*inventory.Stock, error) {
	var stock inventory.Stock
	if err := r.db.WithContext(ctx).First(&stock, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &stock, nil
}

// FindByProductID finds the stock record of a product
func (r *GormStockRepository) FindByProductID(ctx context.Context, productID uuid.UUID) (*inventory.Stock, error) {
	var stock inventory.Stock
	if err := r.db.WithContext(ctx).First(&stock, "product_id = ?", productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &stock, nil
}

// FindAll finds all stock records matching the filter
func (r *GormStockRepository) FindAll(ctx context.Context, filter shared.Filter) (shared.Paginated[inventory.Stock], error) {
	base := r.db.WithContext(ctx).Model(&inventory.Stock{})

	for key, value := range filter.Filters {
		switch key {
		case "product_id":
			base = base.Where("product_id = ?", value)
		case "below_threshold":
			if below, ok := value.(bool); ok && below {
				base = base.Where("quantity <= alert_threshold")
			}
		}
	}

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return shared.Paginated[inventory.Stock]{}, err
	}

	var stocks []inventory.Stock
	orderBy := ValidateSortField(filter.OrderBy, StockSortFields, "created_at")
	orderDir := ValidateSortOrder(filter.OrderDir)
	if err := applyPagination(base, filter).Order(orderBy + " " + orderDir).Find(&stocks).Error; err != nil {
		return shared.Paginated[inventory.Stock]{}, err
	}

	return shared.NewPaginated(stocks, total, filter.Page, filter.PageSize), nil
}

// FindBelowThreshold returns stocks whose quantity is at or under their alert
// threshold, lowest quantity first
func (r *GormStockRepository) FindBelowThreshold(ctx context.Context) ([]inventory.Stock, error) {
	var stocks []inventory.Stock
	if err := r.db.WithContext(ctx).
		Where("quantity <= alert_threshold").
		Order("quantity ASC").
		Find(&stocks).Error; err != nil {
		return nil, err
	}
	return stocks, nil
}

// FindOutOfStock returns stocks with zero quantity
func (r *GormStockRepository) FindOutOfStock(ctx context.Context) ([]inventory.Stock, error) {
	var stocks []inventory.Stock
	if err := r.db.WithContext(ctx).
		Where("quantity = 0").
		Order("updated_at DESC").
		Find(&stocks).Error; err != nil {
		return nil, err
	}
	return stocks, nil
}

// Save creates or updates a stock record without a version check
func (r *GormStockRepository) Save(ctx context.Context, stock *inventory.Stock) error {
	return r.db.WithContext(ctx).Save(stock).Error
}

// SaveWithLock persists the stock only if the stored version still matches
// expectedVersion. A zero row count means another writer got there first.
func (r *GormStockRepository) SaveWithLock(ctx context.Context, stock *inventory.Stock, expectedVersion int) error {
	result := r.db.WithContext(ctx).
		Model(&inventory.Stock{}).
		Where("id = ? AND version = ?", stock.ID, expectedVersion).
		Updates(map[string]interface{}{
			"quantity":        stock.Quantity,
			"alert_threshold": stock.AlertThreshold,
			"version":         stock.Version,
			"updated_at":      time.Now().UTC(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrConcurrencyConflict
	}
	return nil
}

// Ensure GormStockRepository implements StockRepository
var _ inventory.StockRepository = (*GormStockRepository)(nil)
