package identity

import (
	"context"

	"github.com/gestock/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// UserRepository defines the persistence interface for users
type UserRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindAll(ctx context.Context, filter shared.Filter) (shared.Paginated[User], error)
	Save(ctx context.Context, user *User) error
	// FindActiveCourier returns the user only if it exists, is active and
	// carries the courier role.
	FindActiveCourier(ctx context.Context, id uuid.UUID) (*User, error)
}
