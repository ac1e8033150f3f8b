package identity

import (
	"context"
	"strings"

	"github.com/gestock/backend/internal/domain/identity"
	"github.com/gestock/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// UserService manages user accounts
type UserService struct {
	users  identity.UserRepository
	logger *zap.Logger
}

// NewUserService creates a new user service
func NewUserService(users identity.UserRepository, logger *zap.Logger) *UserService {
	return &UserService{users: users, logger: logger}
}

// Create registers a new user
func (s *UserService) Create(ctx context.Context, req CreateUserRequest) (*UserResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if existing, err := s.users.FindByEmail(ctx, email); err == nil && existing != nil {
		return nil, shared.ErrAlreadyExists
	}

	user, err := identity.NewUser(req.Name, email, req.Password, identity.Role(req.Role))
	if err != nil {
		return nil, err
	}

	if err := s.users.Save(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("user created",
		zap.String("user_id", user.ID.String()),
		zap.String("role", user.Role.String()),
	)

	response := NewUserResponse(user)
	return &response, nil
}

// Update edits a user account
func (s *UserService) Update(ctx context.Context, userID uuid.UUID, req UpdateUserRequest) (*UserResponse, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if *req.Name == "" {
			return nil, shared.NewValidationError("Name cannot be empty")
		}
		user.Name = *req.Name
		user.IncrementVersion()
	}
	if req.Password != nil {
		if err := user.ChangePassword(*req.Password); err != nil {
			return nil, err
		}
	}
	if req.IsActive != nil {
		if *req.IsActive {
			user.Activate()
		} else {
			user.Deactivate()
		}
	}

	if err := s.users.Save(ctx, user); err != nil {
		return nil, err
	}

	response := NewUserResponse(user)
	return &response, nil
}

// Get returns one user
func (s *UserService) Get(ctx context.Context, userID uuid.UUID) (*UserResponse, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	response := NewUserResponse(user)
	return &response, nil
}

// List returns users matching the filter
func (s *UserService) List(ctx context.Context, filter shared.Filter) (*shared.Paginated[UserResponse], error) {
	page, err := s.users.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]UserResponse, 0, len(page.Items))
	for i := range page.Items {
		items = append(items, NewUserResponse(&page.Items[i]))
	}
	result := shared.NewPaginated(items, page.Total, page.Page, page.PageSize)
	return &result, nil
}

// Couriers returns the active couriers available for delivery assignment
func (s *UserService) Couriers(ctx context.Context) ([]UserResponse, error) {
	filter := shared.DefaultFilter()
	filter.PageSize = 100
	filter.Filters = map[string]interface{}{
		"role":      identity.RoleCourier.String(),
		"is_active": true,
	}
	page, err := s.users.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]UserResponse, 0, len(page.Items))
	for i := range page.Items {
		items = append(items, NewUserResponse(&page.Items[i]))
	}
	return items, nil
}

// Delete soft-deletes a user account
func (s *UserService) Delete(ctx context.Context, userID uuid.UUID) error {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	user.SoftDelete()
	return s.users.Save(ctx, user)
}
