package handler

import (
	appcatalog "github.com/gestock/backend/internal/application/catalog"
	"github.com/gestock/backend/internal/domain/identity"
	"github.com/gestock/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
)

// CategoryHandler serves product categories
type CategoryHandler struct {
	BaseHandler
	products *appcatalog.ProductService
}

// NewCategoryHandler creates a new CategoryHandler
func NewCategoryHandler(products *appcatalog.ProductService) *CategoryHandler {
	return &CategoryHandler{products: products}
}

// Create creates a category
// POST /api/v1/categories
func (h *CategoryHandler) Create(c *gin.Context) {
	var req appcatalog.CreateCategoryRequest
	if !h.bindJSON(c, &req) {
		return
	}

	category, err := h.products.CreateCategory(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, category)
}

// List returns every category
// GET /api/v1/categories
func (h *CategoryHandler) List(c *gin.Context) {
	categories, err := h.products.ListCategories(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, categories)
}

// Register wires the category routes
func (h *CategoryHandler) Register(authed *gin.RouterGroup) {
	authed.GET("/categories", h.List)
	authed.POST("/categories", middleware.RequireRoles(identity.RoleAdmin, identity.RoleController), h.Create)
}
