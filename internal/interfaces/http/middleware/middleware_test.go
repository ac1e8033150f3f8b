package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gestock/backend/internal/domain/identity"
	"github.com/gestock/backend/internal/infrastructure/auth"
	"github.com/gestock/backend/internal/infrastructure/config"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTokenManager(expiration time.Duration) *auth.JWTManager {
	return auth.NewJWTManager(config.JWTConfig{
		Secret:     "test-secret-test-secret-test-secret",
		Expiration: expiration,
		Issuer:     "gestock-test",
	})
}

func newTestUser(t *testing.T, role identity.Role) *identity.User {
	t.Helper()
	user, err := identity.NewUser("Test User", "test@example.com", "password123", role)
	require.NoError(t, err)
	return user
}

func TestRequestID(t *testing.T) {
	router := gin.New()
	router.Use(RequestID())
	router.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, GetRequestID(c))
	})

	t.Run("generates an ID when none supplied", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest("GET", "/", nil))

		assert.NotEmpty(t, w.Body.String())
		assert.Equal(t, w.Body.String(), w.Header().Get(RequestIDHeader))
	})

	t.Run("honors the inbound header", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/", nil)
		req.Header.Set(RequestIDHeader, "client-supplied-id")
		router.ServeHTTP(w, req)

		assert.Equal(t, "client-supplied-id", w.Body.String())
		assert.Equal(t, "client-supplied-id", w.Header().Get(RequestIDHeader))
	})
}

func TestAuthenticate(t *testing.T) {
	tokens := newTokenManager(time.Hour)
	user := newTestUser(t, identity.RoleAdmin)

	router := gin.New()
	router.Use(Authenticate(tokens))
	router.GET("/", func(c *gin.Context) {
		id, err := GetUserID(c)
		require.NoError(t, err)
		c.String(http.StatusOK, id.String())
	})

	t.Run("missing header", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest("GET", "/", nil))
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("malformed header", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/", nil)
		req.Header.Set(AuthHeaderKey, "Basic abc123")
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("garbage token", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/", nil)
		req.Header.Set(AuthHeaderKey, "Bearer not.a.token")
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("expired token", func(t *testing.T) {
		expired := newTokenManager(-time.Minute)
		token, _, err := expired.Issue(user)
		require.NoError(t, err)

		w := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/", nil)
		req.Header.Set(AuthHeaderKey, BearerPrefix+token)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "expired")
	})

	t.Run("valid token passes and exposes the user", func(t *testing.T) {
		token, _, err := tokens.Issue(user)
		require.NoError(t, err)

		w := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/", nil)
		req.Header.Set(AuthHeaderKey, BearerPrefix+token)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, user.ID.String(), w.Body.String())
	})
}

func TestRequireRoles(t *testing.T) {
	tokens := newTokenManager(time.Hour)

	router := gin.New()
	router.Use(Authenticate(tokens))
	router.GET("/admin", RequireRoles(identity.RoleAdmin), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	t.Run("allows a matching role", func(t *testing.T) {
		token, _, err := tokens.Issue(newTestUser(t, identity.RoleAdmin))
		require.NoError(t, err)

		w := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/admin", nil)
		req.Header.Set(AuthHeaderKey, BearerPrefix+token)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("rejects other roles", func(t *testing.T) {
		token, _, err := tokens.Issue(newTestUser(t, identity.RoleCourier))
		require.NoError(t, err)

		w := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/admin", nil)
		req.Header.Set(AuthHeaderKey, BearerPrefix+token)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}

func TestCORS(t *testing.T) {
	cfg := CORSConfig{
		AllowOrigins: []string{"https://app.example.com"},
		AllowMethods: []string{"GET", "POST"},
		AllowHeaders: []string{"Content-Type", "Authorization"},
	}

	router := gin.New()
	router.Use(CORS(cfg))
	router.GET("/", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	t.Run("whitelisted origin gets CORS headers", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/", nil)
		req.Header.Set("Origin", "https://app.example.com")
		router.ServeHTTP(w, req)

		assert.Equal(t, "https://app.example.com", w.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("unknown origin gets none", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/", nil)
		req.Header.Set("Origin", "https://evil.example.com")
		router.ServeHTTP(w, req)

		assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("preflight gets 204", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodOptions, "/", nil)
		req.Header.Set("Origin", "https://app.example.com")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNoContent, w.Code)
	})
}
