package handler

import (
	appcatalog "github.com/gestock/backend/internal/application/catalog"
	"github.com/gestock/backend/internal/domain/identity"
	"github.com/gestock/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ProductHandler serves the product catalog
type ProductHandler struct {
	BaseHandler
	products *appcatalog.ProductService
}

// NewProductHandler creates a new ProductHandler
func NewProductHandler(products *appcatalog.ProductService) *ProductHandler {
	return &ProductHandler{products: products}
}

// Create creates a product
// POST /api/v1/products
func (h *ProductHandler) Create(c *gin.Context) {
	actorID, ok := h.actorID(c)
	if !ok {
		return
	}
	var req appcatalog.CreateProductRequest
	if !h.bindJSON(c, &req) {
		return
	}

	product, err := h.products.Create(c.Request.Context(), req, actorID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, product)
}

// Get returns one product
// GET /api/v1/products/:id
func (h *ProductHandler) Get(c *gin.Context) {
	id, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	product, err := h.products.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, product)
}

// List returns products matching the query
// GET /api/v1/products
func (h *ProductHandler) List(c *gin.Context) {
	req, ok := h.bindListRequest(c)
	if !ok {
		return
	}
	filter := req.ToFilter()
	if categoryID := c.Query("category_id"); categoryID != "" {
		id, err := uuid.Parse(categoryID)
		if err != nil {
			h.BadRequest(c, "Invalid category_id parameter")
			return
		}
		filter.Filters["category_id"] = id
	}
	if active := c.Query("is_active"); active != "" {
		filter.Filters["is_active"] = active == "true"
	}

	page, err := h.products.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	Paginated(c, *page)
}

// Update edits a product. A price change is recorded in the price history.
// PUT /api/v1/products/:id
func (h *ProductHandler) Update(c *gin.Context) {
	actorID, ok := h.actorID(c)
	if !ok {
		return
	}
	id, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}
	var req appcatalog.UpdateProductRequest
	if !h.bindJSON(c, &req) {
		return
	}

	product, err := h.products.Update(c.Request.Context(), id, req, actorID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, product)
}

// Delete soft-deletes a product
// DELETE /api/v1/products/:id
func (h *ProductHandler) Delete(c *gin.Context) {
	actorID, ok := h.actorID(c)
	if !ok {
		return
	}
	id, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.products.Delete(c.Request.Context(), id, actorID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// PriceHistory returns a product's recorded price changes, newest first
// GET /api/v1/products/:id/price-history
func (h *ProductHandler) PriceHistory(c *gin.Context) {
	id, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}
	req, ok := h.bindListRequest(c)
	if !ok {
		return
	}

	page, err := h.products.PriceHistory(c.Request.Context(), id, req.ToFilter())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	Paginated(c, *page)
}

// Register wires the product routes. Reads are open to any authenticated
// user; writes need the admin or controller role.
func (h *ProductHandler) Register(authed *gin.RouterGroup) {
	authed.GET("/products", h.List)
	authed.GET("/products/:id", h.Get)
	authed.GET("/products/:id/price-history", h.PriceHistory)

	writes := authed.Group("", middleware.RequireRoles(identity.RoleAdmin, identity.RoleController))
	writes.POST("/products", h.Create)
	writes.PUT("/products/:id", h.Update)
	writes.DELETE("/products/:id", h.Delete)
}
