package persistence

import (
	"context"

	"github.com/gestock/backend/internal/domain/catalog"
	"github.com/gestock/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormPriceChangeRepository implements PriceChangeRepository using GORM.
// The table is append-only; rows are never updated or deleted.
type GormPriceChangeRepository struct {
	db *gorm.DB
}

// NewGormPriceChangeRepository creates a new GormPriceChangeRepository
func NewGormPriceChangeRepository(db *gorm.DB) *GormPriceChangeRepository {
	return &GormPriceChangeRepository{db: db}
}

// Append writes a price change record
func (r *GormPriceChangeRepository) Append(ctx context.Context, change *catalog.PriceChange) error {
	return r.db.WithContext(ctx).Create(change).Error
}

// FindByProduct returns a product's price history, newest first
func (r *GormPriceChangeRepository) FindByProduct(ctx context.Context, productID uuid.UUID, filter shared.Filter) (shared.Paginated[catalog.PriceChange], error) {
	base := r.db.WithContext(ctx).Model(&catalog.PriceChange{}).Where("product_id = ?", productID)

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return shared.Paginated[catalog.PriceChange]{}, err
	}

	var changes []catalog.PriceChange
	if err := applyPagination(base, filter).Order("created_at DESC").Find(&changes).Error; err != nil {
		return shared.Paginated[catalog.PriceChange]{}, err
	}

	return shared.NewPaginated(changes, total, filter.Page, filter.PageSize), nil
}

// Ensure GormPriceChangeRepository implements PriceChangeRepository
var _ catalog.PriceChangeRepository = (*GormPriceChangeRepository)(nil)
