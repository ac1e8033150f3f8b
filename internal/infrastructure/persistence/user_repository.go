package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/gestock/backend/internal/domain/identity"
	"github.com/gestock/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormUserRepository implements UserRepository using GORM
type GormUserRepository struct {
	db *gorm.DB
}

// NewGormUserRepository creates a new GormUserRepository
func NewGormUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

// FindByID finds a user by its ID. Soft-deleted users are not returned.
func (r *GormUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.User, error) {
	var user identity.User
	if err := r.db.WithContext(ctx).
		Where("id = ? AND is_deleted = ?", id, false).
		First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// FindByEmail finds a user by email. Emails are stored lowercase.
func (r *GormUserRepository) FindByEmail(ctx context.Context, email string) (*identity.User, error) {
	var user identity.User
	if err := r.db.WithContext(ctx).
		Where("email = ? AND is_deleted = ?", strings.ToLower(email), false).
		First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// FindAll finds all users matching the filter
func (r *GormUserRepository) FindAll(ctx context.Context, filter shared.Filter) (shared.Paginated[identity.User], error) {
	base := r.db.WithContext(ctx).Model(&identity.User{}).Where("is_deleted = ?", false)

	if filter.Search != "" {
		pattern := "%" + strings.ToLower(filter.Search) + "%"
		base = base.Where("LOWER(name) LIKE ? OR LOWER(email) LIKE ?", pattern, pattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "role":
			base = base.Where("role = ?", value)
		case "is_active":
			base = base.Where("is_active = ?", value)
		}
	}

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return shared.Paginated[identity.User]{}, err
	}

	var users []identity.User
	orderBy := ValidateSortField(filter.OrderBy, UserSortFields, "name")
	orderDir := ValidateSortOrder(filter.OrderDir)
	if err := applyPagination(base, filter).Order(orderBy + " " + orderDir).Find(&users).Error; err != nil {
		return shared.Paginated[identity.User]{}, err
	}

	return shared.NewPaginated(users, total, filter.Page, filter.PageSize), nil
}

// Save creates or updates a user
func (r *GormUserRepository) Save(ctx context.Context, user *identity.User) error {
	return r.db.WithContext(ctx).Save(user).Error
}

// FindActiveCourier returns the user only if it exists, is active and carries
// the courier role
func (r *GormUserRepository) FindActiveCourier(ctx context.Context, id uuid.UUID) (*identity.User, error) {
	var user identity.User
	if err := r.db.WithContext(ctx).
		Where("id = ? AND role = ? AND is_active = ? AND is_deleted = ?", id, identity.RoleCourier, true, false).
		First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// Ensure GormUserRepository implements UserRepository
var _ identity.UserRepository = (*GormUserRepository)(nil)
