package handler

import (
	appinventory "github.com/gestock/backend/internal/application/inventory"
	"github.com/gestock/backend/internal/domain/identity"
	"github.com/gestock/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// StockHandler serves the inventory ledger
type StockHandler struct {
	BaseHandler
	stocks *appinventory.StockService
}

// NewStockHandler creates a new StockHandler
func NewStockHandler(stocks *appinventory.StockService) *StockHandler {
	return &StockHandler{stocks: stocks}
}

// List returns stock records matching the query
// GET /api/v1/stocks
func (h *StockHandler) List(c *gin.Context) {
	req, ok := h.bindListRequest(c)
	if !ok {
		return
	}
	filter := req.ToFilter()
	if productID := c.Query("product_id"); productID != "" {
		id, err := uuid.Parse(productID)
		if err != nil {
			h.BadRequest(c, "Invalid product_id parameter")
			return
		}
		filter.Filters["product_id"] = id
	}
	if below := c.Query("below_threshold"); below != "" {
		filter.Filters["below_threshold"] = below == "true"
	}

	page, err := h.stocks.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	Paginated(c, *page)
}

// GetByProduct returns the stock record for a product
// GET /api/v1/stocks/product/:productId
func (h *StockHandler) GetByProduct(c *gin.Context) {
	productID, ok := h.parseUUIDParam(c, "productId")
	if !ok {
		return
	}

	stock, err := h.stocks.GetByProduct(c.Request.Context(), productID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, stock)
}

// Ensure creates an empty stock record for a product if none exists yet
// POST /api/v1/stocks/product/:productId
func (h *StockHandler) Ensure(c *gin.Context) {
	productID, ok := h.parseUUIDParam(c, "productId")
	if !ok {
		return
	}

	stock, err := h.stocks.Ensure(c.Request.Context(), productID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, stock)
}

// Move applies one ledger movement to a product's stock
// POST /api/v1/stocks/movements
func (h *StockHandler) Move(c *gin.Context) {
	actorID, ok := h.actorID(c)
	if !ok {
		return
	}
	var req appinventory.MoveStockRequest
	if !h.bindJSON(c, &req) {
		return
	}

	result, err := h.stocks.Move(c.Request.Context(), req, &actorID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, result)
}

// SetAlertThreshold updates a product's low-stock alert level
// PUT /api/v1/stocks/product/:productId/threshold
func (h *StockHandler) SetAlertThreshold(c *gin.Context) {
	productID, ok := h.parseUUIDParam(c, "productId")
	if !ok {
		return
	}
	var req appinventory.SetThresholdRequest
	if !h.bindJSON(c, &req) {
		return
	}

	stock, err := h.stocks.SetAlertThreshold(c.Request.Context(), productID, req.AlertThreshold)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, stock)
}

// LowStock returns products at or under their alert threshold
// GET /api/v1/stocks/alerts
func (h *StockHandler) LowStock(c *gin.Context) {
	stocks, err := h.stocks.LowStock(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, stocks)
}

// OutOfStock returns products with zero quantity
// GET /api/v1/stocks/out-of-stock
func (h *StockHandler) OutOfStock(c *gin.Context) {
	stocks, err := h.stocks.OutOfStock(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, stocks)
}

// Movements returns a product's ledger history, newest first
// GET /api/v1/stocks/product/:productId/movements
func (h *StockHandler) Movements(c *gin.Context) {
	productID, ok := h.parseUUIDParam(c, "productId")
	if !ok {
		return
	}
	req, ok := h.bindListRequest(c)
	if !ok {
		return
	}

	page, err := h.stocks.Movements(c.Request.Context(), productID, req.ToFilter())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	Paginated(c, *page)
}

// MovementsByReference returns every movement correlated to a reference
// GET /api/v1/stocks/movements/reference/:reference
func (h *StockHandler) MovementsByReference(c *gin.Context) {
	reference := c.Param("reference")
	if reference == "" {
		h.BadRequest(c, "Missing reference parameter")
		return
	}

	movements, err := h.stocks.MovementsByReference(c.Request.Context(), reference)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, movements)
}

// Register wires the stock routes. Reads are open to any authenticated user;
// ledger mutations need the admin or controller role.
func (h *StockHandler) Register(authed *gin.RouterGroup) {
	authed.GET("/stocks", h.List)
	authed.GET("/stocks/alerts", h.LowStock)
	authed.GET("/stocks/out-of-stock", h.OutOfStock)
	authed.GET("/stocks/product/:productId", h.GetByProduct)
	authed.GET("/stocks/product/:productId/movements", h.Movements)
	authed.GET("/stocks/movements/reference/:reference", h.MovementsByReference)

	writes := authed.Group("", middleware.RequireRoles(identity.RoleAdmin, identity.RoleController))
	writes.POST("/stocks/product/:productId", h.Ensure)
	writes.POST("/stocks/movements", h.Move)
	writes.PUT("/stocks/product/:productId/threshold", h.SetAlertThreshold)
}
