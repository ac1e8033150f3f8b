package handler

import (
	appidentity "github.com/gestock/backend/internal/application/identity"
	"github.com/gin-gonic/gin"
)

// AuthHandler serves login and the current-user endpoint
type AuthHandler struct {
	BaseHandler
	auth  *appidentity.AuthService
	users *appidentity.UserService
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(auth *appidentity.AuthService, users *appidentity.UserService) *AuthHandler {
	return &AuthHandler{auth: auth, users: users}
}

// Login authenticates by email and password and returns a bearer token
// POST /api/v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req appidentity.LoginRequest
	if !h.bindJSON(c, &req) {
		return
	}

	response, err := h.auth.Login(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, response)
}

// Me returns the authenticated user's profile
// GET /api/v1/auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	userID, ok := h.actorID(c)
	if !ok {
		return
	}

	user, err := h.users.Get(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, user)
}

// Register wires the auth routes. Login stays outside the authenticated
// group.
func (h *AuthHandler) Register(public, authed *gin.RouterGroup) {
	public.POST("/auth/login", h.Login)
	authed.GET("/auth/me", h.Me)
}
