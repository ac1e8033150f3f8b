package handler

import (
	appidentity "github.com/gestock/backend/internal/application/identity"
	"github.com/gestock/backend/internal/domain/identity"
	"github.com/gestock/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
)

// UserHandler serves user administration. All routes require the admin role
// except the courier listing, which order dispatchers also need.
type UserHandler struct {
	BaseHandler
	users *appidentity.UserService
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(users *appidentity.UserService) *UserHandler {
	return &UserHandler{users: users}
}

// Create creates a user
// POST /api/v1/users
func (h *UserHandler) Create(c *gin.Context) {
	var req appidentity.CreateUserRequest
	if !h.bindJSON(c, &req) {
		return
	}

	user, err := h.users.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, user)
}

// Get returns one user
// GET /api/v1/users/:id
func (h *UserHandler) Get(c *gin.Context) {
	id, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	user, err := h.users.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, user)
}

// List returns users matching the query
// GET /api/v1/users
func (h *UserHandler) List(c *gin.Context) {
	req, ok := h.bindListRequest(c)
	if !ok {
		return
	}
	filter := req.ToFilter()
	if role := c.Query("role"); role != "" {
		filter.Filters["role"] = role
	}
	if active := c.Query("is_active"); active != "" {
		filter.Filters["is_active"] = active == "true"
	}

	page, err := h.users.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	Paginated(c, *page)
}

// Update edits a user
// PUT /api/v1/users/:id
func (h *UserHandler) Update(c *gin.Context) {
	id, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}
	var req appidentity.UpdateUserRequest
	if !h.bindJSON(c, &req) {
		return
	}

	user, err := h.users.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, user)
}

// Delete soft-deletes a user
// DELETE /api/v1/users/:id
func (h *UserHandler) Delete(c *gin.Context) {
	id, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.users.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// Couriers lists the active courier-role users available for assignment
// GET /api/v1/users/couriers
func (h *UserHandler) Couriers(c *gin.Context) {
	couriers, err := h.users.Couriers(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, couriers)
}

// Register wires the user routes
func (h *UserHandler) Register(authed *gin.RouterGroup) {
	authed.GET("/users/couriers", h.Couriers)

	admin := authed.Group("", middleware.RequireRoles(identity.RoleAdmin))
	admin.POST("/users", h.Create)
	admin.GET("/users", h.List)
	admin.GET("/users/:id", h.Get)
	admin.PUT("/users/:id", h.Update)
	admin.DELETE("/users/:id", h.Delete)
}
