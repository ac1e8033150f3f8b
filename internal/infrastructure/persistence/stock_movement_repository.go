package persistence

import (
	"context"

	"github.com/gestock/backend/internal/domain/inventory"
	"github.com/gestock/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormStockMovementRepository implements StockMovementRepository using GORM.
// Movements form an append-only ledger; rows are never updated or deleted.
type GormStockMovementRepository struct {
	db *gorm.DB
}

// NewGormStockMovementRepository creates a new GormStockMovementRepository
func NewGormStockMovementRepository(db *gorm.DB) *GormStockMovementRepository {
	return &GormStockMovementRepository{db: db}
}

// Append writes a movement record
func (r *GormStockMovementRepository) Append(ctx context.Context, movement *inventory.StockMovement) error {
	return r.db.WithContext(ctx).Create(movement).Error
}

// FindByProduct returns a product's movement history, newest first by default
func (r *GormStockMovementRepository) FindByProduct(ctx context.Context, productID uuid.UUID, filter shared.Filter) (shared.Paginated[inventory.StockMovement], error) {
	base := r.db.WithContext(ctx).
		Model(&inventory.StockMovement{}).
		Where("product_id = ?", productID)
	base = r.applyConditions(base, filter)
	return r.paginate(base, filter)
}

// FindByReference returns every movement sharing a reference, oldest first,
// so a whole order's stock effect reads in the sequence it happened
func (r *GormStockMovementRepository) FindByReference(ctx context.Context, reference string) ([]inventory.StockMovement, error) {
	var movements []inventory.StockMovement
	if err := r.db.WithContext(ctx).
		Where("reference = ?", reference).
		Order("created_at ASC").
		Find(&movements).Error; err != nil {
		return nil, err
	}
	return movements, nil
}

// FindAll finds all movements matching the filter
func (r *GormStockMovementRepository) FindAll(ctx context.Context, filter shared.Filter) (shared.Paginated[inventory.StockMovement], error) {
	base := r.db.WithContext(ctx).Model(&inventory.StockMovement{})
	base = r.applyConditions(base, filter)
	return r.paginate(base, filter)
}

func (r *GormStockMovementRepository) applyConditions(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("reference LIKE ?", pattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "type":
			query = query.Where("type = ?", value)
		case "stock_id":
			query = query.Where("stock_id = ?", value)
		case "actor_id":
			query = query.Where("actor_id = ?", value)
		case "since":
			query = query.Where("created_at >= ?", value)
		case "until":
			query = query.Where("created_at < ?", value)
		}
	}

	return query
}

func (r *GormStockMovementRepository) paginate(base *gorm.DB, filter shared.Filter) (shared.Paginated[inventory.StockMovement], error) {
	var total int64
	if err := base.Count(&total).Error; err != nil {
		return shared.Paginated[inventory.StockMovement]{}, err
	}

	var movements []inventory.StockMovement
	orderBy := ValidateSortField(filter.OrderBy, MovementSortFields, "created_at")
	orderDir := ValidateSortOrder(filter.OrderDir)
	if err := applyPagination(base, filter).Order(orderBy + " " + orderDir).Find(&movements).Error; err != nil {
		return shared.Paginated[inventory.StockMovement]{}, err
	}

	return shared.NewPaginated(movements, total, filter.Page, filter.PageSize), nil
}

// Ensure GormStockMovementRepository implements StockMovementRepository
var _ inventory.StockMovementRepository = (*GormStockMovementRepository)(nil)
