package identity

import (
	"context"
	"strings"
	"time"

	"github.com/gestock/backend/internal/domain/identity"
	"github.com/gestock/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// TokenIssuer signs access tokens for authenticated users
type TokenIssuer interface {
	Issue(user *identity.User) (token string, expiresAt time.Time, err error)
}

// AuthService authenticates users. Failed logins always return the same
// unauthorized error so callers cannot probe which emails exist.
type AuthService struct {
	users  identity.UserRepository
	tokens TokenIssuer
	logger *zap.Logger
}

// NewAuthService creates a new authentication service
func NewAuthService(users identity.UserRepository, tokens TokenIssuer, logger *zap.Logger) *AuthService {
	return &AuthService{
		users:  users,
		tokens: tokens,
		logger: logger,
	}
}

// Login verifies credentials and issues a signed token
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		s.logger.Warn("login failed", zap.String("email", email), zap.String("reason", "unknown email"))
		return nil, shared.ErrUnauthorized
	}

	if !user.CanLogin() {
		s.logger.Warn("login failed", zap.String("email", email), zap.String("reason", "account disabled"))
		return nil, shared.ErrUnauthorized
	}

	if !user.CheckPassword(req.Password) {
		s.logger.Warn("login failed", zap.String("email", email), zap.String("reason", "bad password"))
		return nil, shared.ErrUnauthorized
	}

	token, expiresAt, err := s.tokens.Issue(user)
	if err != nil {
		return nil, err
	}

	user.RecordLogin()
	if err := s.users.Save(ctx, user); err != nil {
		// The login itself succeeded, losing the timestamp is acceptable
		s.logger.Warn("failed to record login time", zap.Error(err))
	}

	s.logger.Info("user logged in",
		zap.String("user_id", user.ID.String()),
		zap.String("role", user.Role.String()),
	)

	return &LoginResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		User:      NewUserResponse(user),
	}, nil
}
