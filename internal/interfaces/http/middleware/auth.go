package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gestock/backend/internal/domain/identity"
	"github.com/gestock/backend/internal/infrastructure/auth"
	"github.com/gestock/backend/internal/infrastructure/logger"
	"github.com/gestock/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Auth context keys
const (
	ClaimsKey     = "auth_claims"
	UserIDKey     = "auth_user_id"
	AuthHeaderKey = "Authorization"
	BearerPrefix  = "Bearer "
)

// Authenticate validates the bearer token on every request and stores the
// claims in the gin context. Requests without a valid token get a 401.
func Authenticate(tokens *auth.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader(AuthHeaderKey)
		if header == "" {
			abortUnauthorized(c, "Missing authorization header")
			return
		}
		if !strings.HasPrefix(header, BearerPrefix) {
			abortUnauthorized(c, "Invalid authorization header format")
			return
		}

		tokenString := strings.TrimPrefix(header, BearerPrefix)
		claims, err := tokens.Validate(tokenString)
		if err != nil {
			if errors.Is(err, auth.ErrExpiredToken) {
				abortUnauthorized(c, "Token has expired")
				return
			}
			abortUnauthorized(c, "Invalid token")
			return
		}

		c.Set(ClaimsKey, claims)
		c.Set(UserIDKey, claims.UserID)

		// Propagate the acting user into the request context for log
		// correlation downstream
		ctx, _ := logger.WithUserID(c.Request.Context(), logger.GetGinLogger(c), claims.UserID)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// RequireRoles allows the request through only when the authenticated user
// carries one of the given roles
func RequireRoles(roles ...identity.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := GetClaims(c)
		if claims == nil {
			abortUnauthorized(c, "Authentication required")
			return
		}
		if !claims.HasRole(roles...) {
			c.AbortWithStatusJSON(http.StatusForbidden,
				dto.NewErrorResponse("FORBIDDEN", "Insufficient role for this operation", GetRequestID(c)))
			return
		}
		c.Next()
	}
}

// GetClaims returns the validated claims, or nil outside an authenticated
// request
func GetClaims(c *gin.Context) *auth.Claims {
	if value, exists := c.Get(ClaimsKey); exists {
		if claims, ok := value.(*auth.Claims); ok {
			return claims
		}
	}
	return nil
}

// GetUserID returns the authenticated user's ID
func GetUserID(c *gin.Context) (uuid.UUID, error) {
	claims := GetClaims(c)
	if claims == nil {
		return uuid.Nil, errors.New("no authenticated user in context")
	}
	return claims.GetUserUUID()
}

func abortUnauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized,
		dto.NewErrorResponse("UNAUTHORIZED", message, GetRequestID(c)))
}
