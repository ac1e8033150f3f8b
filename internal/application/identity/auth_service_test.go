package identity

import (
	"context"
	"testing"
	"time"

	"github.com/gestock/backend/internal/domain/identity"
	"github.com/gestock/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// MockUserRepository is a mock implementation of identity.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*identity.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) FindAll(ctx context.Context, filter shared.Filter) (shared.Paginated[identity.User], error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(shared.Paginated[identity.User]), args.Error(1)
}

func (m *MockUserRepository) Save(ctx context.Context, user *identity.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindActiveCourier(ctx context.Context, id uuid.UUID) (*identity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

// staticTokenIssuer issues a fixed token for tests
type staticTokenIssuer struct {
	token string
	err   error
}

func (i *staticTokenIssuer) Issue(user *identity.User) (string, time.Time, error) {
	if i.err != nil {
		return "", time.Time{}, i.err
	}
	return i.token, time.Now().Add(24 * time.Hour), nil
}

func testUser(t *testing.T, role identity.Role) *identity.User {
	t.Helper()
	user, err := identity.NewUser("Awa Diallo", "awa@example.com", "s3cret-pass", role)
	require.NoError(t, err)
	return user
}

func TestAuthService_Login(t *testing.T) {
	users := new(MockUserRepository)
	service := NewAuthService(users, &staticTokenIssuer{token: "signed-token"}, zap.NewNop())

	user := testUser(t, identity.RoleAdmin)
	users.On("FindByEmail", mock.Anything, "awa@example.com").Return(user, nil)
	users.On("Save", mock.Anything, user).Return(nil)

	resp, err := service.Login(context.Background(), LoginRequest{
		Email:    "awa@example.com",
		Password: "s3cret-pass",
	})

	require.NoError(t, err)
	assert.Equal(t, "signed-token", resp.Token)
	assert.Equal(t, "admin", resp.User.Role)
	assert.NotNil(t, user.LastLoginAt)
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	users := new(MockUserRepository)
	service := NewAuthService(users, &staticTokenIssuer{token: "signed-token"}, zap.NewNop())

	user := testUser(t, identity.RoleAdmin)
	users.On("FindByEmail", mock.Anything, "awa@example.com").Return(user, nil)

	_, err := service.Login(context.Background(), LoginRequest{
		Email:    "awa@example.com",
		Password: "wrong-pass",
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, shared.ErrUnauthorized)
	users.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestAuthService_Login_UnknownEmail(t *testing.T) {
	users := new(MockUserRepository)
	service := NewAuthService(users, &staticTokenIssuer{token: "signed-token"}, zap.NewNop())

	users.On("FindByEmail", mock.Anything, "ghost@example.com").Return(nil, shared.ErrNotFound)

	_, err := service.Login(context.Background(), LoginRequest{
		Email:    "ghost@example.com",
		Password: "whatever1",
	})

	// Unknown email and bad password are indistinguishable to the caller
	require.Error(t, err)
	assert.ErrorIs(t, err, shared.ErrUnauthorized)
}

func TestAuthService_Login_DeactivatedUser(t *testing.T) {
	users := new(MockUserRepository)
	service := NewAuthService(users, &staticTokenIssuer{token: "signed-token"}, zap.NewNop())

	user := testUser(t, identity.RoleCourier)
	user.Deactivate()
	users.On("FindByEmail", mock.Anything, "awa@example.com").Return(user, nil)

	_, err := service.Login(context.Background(), LoginRequest{
		Email:    "awa@example.com",
		Password: "s3cret-pass",
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, shared.ErrUnauthorized)
}

func TestUserService_Create(t *testing.T) {
	users := new(MockUserRepository)
	service := NewUserService(users, zap.NewNop())

	users.On("FindByEmail", mock.Anything, "moussa@example.com").Return(nil, shared.ErrNotFound)
	users.On("Save", mock.Anything, mock.AnythingOfType("*identity.User")).Return(nil)

	resp, err := service.Create(context.Background(), CreateUserRequest{
		Name:     "Moussa Traoré",
		Email:    "Moussa@Example.com",
		Password: "s3cret-pass",
		Role:     "courier",
	})

	require.NoError(t, err)
	assert.Equal(t, "moussa@example.com", resp.Email)
	assert.Equal(t, "courier", resp.Role)
}

func TestUserService_Create_DuplicateEmail(t *testing.T) {
	users := new(MockUserRepository)
	service := NewUserService(users, zap.NewNop())

	existing := testUser(t, identity.RoleAdmin)
	users.On("FindByEmail", mock.Anything, "awa@example.com").Return(existing, nil)

	_, err := service.Create(context.Background(), CreateUserRequest{
		Name:     "Someone Else",
		Email:    "awa@example.com",
		Password: "s3cret-pass",
		Role:     "admin",
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, shared.ErrAlreadyExists)
	users.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestUserService_Create_UnknownRole(t *testing.T) {
	users := new(MockUserRepository)
	service := NewUserService(users, zap.NewNop())

	users.On("FindByEmail", mock.Anything, "moussa@example.com").Return(nil, shared.ErrNotFound)

	_, err := service.Create(context.Background(), CreateUserRequest{
		Name:     "Moussa Traoré",
		Email:    "moussa@example.com",
		Password: "s3cret-pass",
		Role:     "superuser",
	})

	require.Error(t, err)
}

func TestUserService_Delete_BlocksLogin(t *testing.T) {
	users := new(MockUserRepository)
	service := NewUserService(users, zap.NewNop())

	user := testUser(t, identity.RoleController)
	users.On("FindByID", mock.Anything, user.ID).Return(user, nil)
	users.On("Save", mock.Anything, user).Return(nil)

	require.NoError(t, service.Delete(context.Background(), user.ID))
	assert.False(t, user.CanLogin())
}
