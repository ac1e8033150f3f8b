package persistence

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/gestock/backend/internal/domain/ordering"
	"github.com/gestock/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormOrderRepository implements OrderRepository using GORM.
// Orders are loaded and saved together with their lines.
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GormOrderRepository
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// FindByID finds an order with its lines. Soft-deleted orders are not returned.
func (r *GormOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*ordering.Order, error) {
	var order ordering.Order
	if err := r.db.WithContext(ctx).
		Preload("Lines").
		Where("id = ? AND is_deleted = ?", id, false).
		First(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &order, nil
}

// FindByNumber finds an order by its business number
func (r *GormOrderRepository) FindByNumber(ctx context.Context, number string) (*ordering.Order, error) {
	var order ordering.Order
	if err := r.db.WithContext(ctx).
		Preload("Lines").
		Where("number = ? AND is_deleted = ?", number, false).
		First(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &order, nil
}

// FindAll finds all orders matching the filter, with lines preloaded
func (r *GormOrderRepository) FindAll(ctx context.Context, filter shared.Filter) (shared.Paginated[ordering.Order], error) {
	base := r.db.WithContext(ctx).Model(&ordering.Order{}).Where("is_deleted = ?", false)
	base = r.applyConditions(base, filter)

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return shared.Paginated[ordering.Order]{}, err
	}

	var orders []ordering.Order
	orderBy := ValidateSortField(filter.OrderBy, OrderSortFields, "created_at")
	orderDir := ValidateSortOrder(filter.OrderDir)
	if err := applyPagination(base, filter).
		Preload("Lines").
		Order(orderBy + " " + orderDir).
		Find(&orders).Error; err != nil {
		return shared.Paginated[ordering.Order]{}, err
	}

	return shared.NewPaginated(orders, total, filter.Page, filter.PageSize), nil
}

// Save creates or updates an order and its lines without a version check
func (r *GormOrderRepository) Save(ctx context.Context, order *ordering.Order) error {
	return r.db.WithContext(ctx).
		Session(&gorm.Session{FullSaveAssociations: true}).
		Save(order).Error
}

// SaveWithLock persists the order only if the stored version still matches
// expectedVersion. The version check guards the orders row; lines are then
// reconciled against the aggregate within the same call.
func (r *GormOrderRepository) SaveWithLock(ctx context.Context, order *ordering.Order, expectedVersion int) error {
	result := r.db.WithContext(ctx).
		Model(&ordering.Order{}).
		Where("id = ? AND version = ?", order.ID, expectedVersion).
		Updates(map[string]interface{}{
			"status":              order.Status,
			"customer_name":       order.CustomerName,
			"customer_phone":      order.CustomerPhone,
			"customer_email":      order.CustomerEmail,
			"delivery_addr":       order.DeliveryAddr,
			"discount_amount":     order.DiscountAmount,
			"delivery_fee":        order.DeliveryFee,
			"total_amount":        order.TotalAmount,
			"notes":               order.Notes,
			"confirmed_at":        order.ConfirmedAt,
			"paid_at":             order.PaidAt,
			"prepared_at":         order.PreparedAt,
			"shipped_at":          order.ShippedAt,
			"delivered_at":        order.DeliveredAt,
			"cancelled_at":        order.CancelledAt,
			"cancellation_reason": order.CancellationReason,
			"payment_type":        order.PaymentType,
			"amount_paid":         order.AmountPaid,
			"sender_phone":        order.SenderPhone,
			"transaction_ref":     order.TransactionRef,
			"courier_id":          order.CourierID,
			"is_deleted":          order.IsDeleted,
			"deleted_at":          order.DeletedAt,
			"version":             order.Version,
			"updated_at":          time.Now().UTC(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrConcurrencyConflict
	}
	return r.saveLines(ctx, order)
}

// saveLines upserts the aggregate's lines and removes rows the aggregate no
// longer carries
func (r *GormOrderRepository) saveLines(ctx context.Context, order *ordering.Order) error {
	keep := make([]uuid.UUID, 0, len(order.Lines))
	for i := range order.Lines {
		line := &order.Lines[i]
		line.OrderID = order.ID
		if err := r.db.WithContext(ctx).Save(line).Error; err != nil {
			return err
		}
		keep = append(keep, line.ID)
	}

	query := r.db.WithContext(ctx).Where("order_id = ?", order.ID)
	if len(keep) > 0 {
		query = query.Where("id NOT IN ?", keep)
	}
	return query.Delete(&ordering.OrderLine{}).Error
}

// ExistsByNumber checks if an order with the given number exists, deleted
// ones included since numbers are never reused
func (r *GormOrderRepository) ExistsByNumber(ctx context.Context, number string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&ordering.Order{}).
		Where("number = ?", number).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// CountByStatus returns the number of live orders per status
func (r *GormOrderRepository) CountByStatus(ctx context.Context) (map[ordering.OrderStatus]int64, error) {
	var rows []struct {
		Status ordering.OrderStatus
		Count  int64
	}
	if err := r.db.WithContext(ctx).
		Model(&ordering.Order{}).
		Select("status, COUNT(*) AS count").
		Where("is_deleted = ?", false).
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

func (r *GormOrderRepository) applyConditions(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		pattern := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where("LOWER(number) LIKE ? OR LOWER(customer_name) LIKE ?", pattern, pattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		case "courier_id":
			query = query.Where("courier_id = ?", value)
		case "creator_id":
			query = query.Where("creator_id = ?", value)
		case "since":
			query = query.Where("created_at >= ?", value)
		case "until":
			query = query.Where("created_at < ?", value)
		}
	}

	return query
}

// Ensure GormOrderRepository implements OrderRepository
var _ ordering.OrderRepository = (*GormOrderRepository)(nil)
