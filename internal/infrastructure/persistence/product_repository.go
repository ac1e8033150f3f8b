package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/gestock/backend/internal/domain/catalog"
	"github.com/gestock/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormProductRepository implements ProductRepository using GORM
type GormProductRepository struct {
	db *gorm.DB
}

// NewGormProductRepository creates a new GormProductRepository
func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

// FindByID finds a product by its ID. Soft-deleted products are not returned.
func (r *GormProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	var product catalog.Product
	if err := r.db.WithContext(ctx).
		Where("id = ? AND is_deleted = ?", id, false).
		First(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &product, nil
}

// FindAll finds all products matching the filter
func (r *GormProductRepository) FindAll(ctx context.Context, filter shared.Filter) (shared.Paginated[catalog.Product], error) {
	base := r.db.WithContext(ctx).Model(&catalog.Product{}).Where("is_deleted = ?", false)
	base = r.applyConditions(base, filter)

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return shared.Paginated[catalog.Product]{}, err
	}

	var products []catalog.Product
	query := applyPagination(base, filter)
	orderBy := ValidateSortField(filter.OrderBy, ProductSortFields, "name")
	orderDir := ValidateSortOrder(filter.OrderDir)
	if err := query.Order(orderBy + " " + orderDir).Find(&products).Error; err != nil {
		return shared.Paginated[catalog.Product]{}, err
	}

	return shared.NewPaginated(products, total, filter.Page, filter.PageSize), nil
}

// Save creates or updates a product
func (r *GormProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	return r.db.WithContext(ctx).Save(product).Error
}

// ExistsByName checks if a non-deleted product with the given name exists
func (r *GormProductRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&catalog.Product{}).
		Where("LOWER(name) = ? AND is_deleted = ?", strings.ToLower(name), false).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *GormProductRepository) applyConditions(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		pattern := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where("LOWER(name) LIKE ?", pattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "is_active":
			query = query.Where("is_active = ?", value)
		case "category_id":
			if value == nil {
				query = query.Where("category_id IS NULL")
			} else {
				query = query.Where("category_id = ?", value)
			}
		case "min_price":
			query = query.Where("price >= ?", value)
		case "max_price":
			query = query.Where("price <= ?", value)
		}
	}

	return query
}

// applyPagination applies page and page size to a query
func applyPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}
	return query
}

// Ensure GormProductRepository implements ProductRepository
var _ catalog.ProductRepository = (*GormProductRepository)(nil)
