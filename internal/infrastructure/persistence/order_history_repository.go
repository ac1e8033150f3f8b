package persistence

import (
	"context"

	"github.com/gestock/backend/internal/domain/ordering"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormOrderHistoryRepository implements OrderHistoryRepository using GORM.
// History is an append-only audit trail; rows are never updated or deleted.
type GormOrderHistoryRepository struct {
	db *gorm.DB
}

// NewGormOrderHistoryRepository creates a new GormOrderHistoryRepository
func NewGormOrderHistoryRepository(db *gorm.DB) *GormOrderHistoryRepository {
	return &GormOrderHistoryRepository{db: db}
}

// Append writes a history entry
func (r *GormOrderHistoryRepository) Append(ctx context.Context, entry *ordering.OrderHistoryEntry) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

// FindByOrder returns an order's history, oldest first, so the trail reads
// in the sequence it happened
func (r *GormOrderHistoryRepository) FindByOrder(ctx context.Context, orderID uuid.UUID) ([]ordering.OrderHistoryEntry, error) {
	var entries []ordering.OrderHistoryEntry
	if err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("created_at ASC").
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// Ensure GormOrderHistoryRepository implements OrderHistoryRepository
var _ ordering.OrderHistoryRepository = (*GormOrderHistoryRepository)(nil)
