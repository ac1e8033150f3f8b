package handler

import (
	appordering "github.com/gestock/backend/internal/application/ordering"
	"github.com/gestock/backend/internal/domain/identity"
	"github.com/gestock/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// OrderHandler serves the order workflow
type OrderHandler struct {
	BaseHandler
	orders *appordering.WorkflowService
}

// NewOrderHandler creates a new OrderHandler
func NewOrderHandler(orders *appordering.WorkflowService) *OrderHandler {
	return &OrderHandler{orders: orders}
}

// Create creates a draft order
// POST /api/v1/orders
func (h *OrderHandler) Create(c *gin.Context) {
	actorID, ok := h.actorID(c)
	if !ok {
		return
	}
	var req appordering.CreateOrderRequest
	if !h.bindJSON(c, &req) {
		return
	}

	order, err := h.orders.Create(c.Request.Context(), req, actorID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, order)
}

// Get returns one order with its lines
// GET /api/v1/orders/:id
func (h *OrderHandler) Get(c *gin.Context) {
	id, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	order, err := h.orders.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, order)
}

// GetByNumber looks an order up by its business number
// GET /api/v1/orders/number/:number
func (h *OrderHandler) GetByNumber(c *gin.Context) {
	number := c.Param("number")
	if number == "" {
		h.BadRequest(c, "Missing number parameter")
		return
	}

	order, err := h.orders.GetByNumber(c.Request.Context(), number)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, order)
}

// List returns order summaries matching the query
// GET /api/v1/orders
func (h *OrderHandler) List(c *gin.Context) {
	req, ok := h.bindListRequest(c)
	if !ok {
		return
	}
	filter := req.ToFilter()
	if status := c.Query("status"); status != "" {
		filter.Filters["status"] = status
	}
	if courierID := c.Query("courier_id"); courierID != "" {
		id, err := uuid.Parse(courierID)
		if err != nil {
			h.BadRequest(c, "Invalid courier_id parameter")
			return
		}
		filter.Filters["courier_id"] = id
	}

	page, err := h.orders.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	Paginated(c, *page)
}

// CountByStatus returns the number of live orders in each status
// GET /api/v1/orders/counts
func (h *OrderHandler) CountByStatus(c *gin.Context) {
	counts, err := h.orders.CountByStatus(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, counts)
}

// History returns an order's audit trail, oldest first
// GET /api/v1/orders/:id/history
func (h *OrderHandler) History(c *gin.Context) {
	id, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	entries, err := h.orders.History(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, entries)
}

// Update edits a draft order's customer and pricing fields
// PUT /api/v1/orders/:id
func (h *OrderHandler) Update(c *gin.Context) {
	actorID, ok := h.actorID(c)
	if !ok {
		return
	}
	id, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}
	var req appordering.UpdateOrderRequest
	if !h.bindJSON(c, &req) {
		return
	}

	order, err := h.orders.Update(c.Request.Context(), id, req, actorID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, order)
}

// AddLine adds a product to a draft order
// POST /api/v1/orders/:id/lines
func (h *OrderHandler) AddLine(c *gin.Context) {
	actorID, ok := h.actorID(c)
	if !ok {
		return
	}
	id, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}
	var req appordering.AddLineRequest
	if !h.bindJSON(c, &req) {
		return
	}

	order, err := h.orders.AddLine(c.Request.Context(), id, req, actorID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, order)
}

// UpdateLineQuantity changes the quantity of an existing line
// PUT /api/v1/orders/:id/lines/:lineId
func (h *OrderHandler) UpdateLineQuantity(c *gin.Context) {
	actorID, ok := h.actorID(c)
	if !ok {
		return
	}
	id, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}
	lineID, ok := h.parseUUIDParam(c, "lineId")
	if !ok {
		return
	}
	var req appordering.UpdateLineRequest
	if !h.bindJSON(c, &req) {
		return
	}

	order, err := h.orders.UpdateLineQuantity(c.Request.Context(), id, lineID, req, actorID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, order)
}

// RemoveLine removes a line from a draft order
// DELETE /api/v1/orders/:id/lines/:lineId
func (h *OrderHandler) RemoveLine(c *gin.Context) {
	actorID, ok := h.actorID(c)
	if !ok {
		return
	}
	id, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}
	lineID, ok := h.parseUUIDParam(c, "lineId")
	if !ok {
		return
	}

	order, err := h.orders.RemoveLine(c.Request.Context(), id, lineID, actorID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, order)
}

// Confirm confirms a draft order and deducts stock
// POST /api/v1/orders/:id/confirm
func (h *OrderHandler) Confirm(c *gin.Context) {
	actorID, ok := h.actorID(c)
	if !ok {
		return
	}
	id, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	order, err := h.orders.Confirm(c.Request.Context(), id, actorID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, order)
}

// Pay records payment on a confirmed order
// POST /api/v1/orders/:id/pay
func (h *OrderHandler) Pay(c *gin.Context) {
	actorID, ok := h.actorID(c)
	if !ok {
		return
	}
	id, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}
	var req appordering.PayRequest
	if !h.bindJSON(c, &req) {
		return
	}

	order, err := h.orders.Pay(c.Request.Context(), id, req, actorID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, order)
}

// AdvanceStatus moves an order one step through fulfillment
// POST /api/v1/orders/:id/status
func (h *OrderHandler) AdvanceStatus(c *gin.Context) {
	actorID, ok := h.actorID(c)
	if !ok {
		return
	}
	id, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}
	var req appordering.AdvanceStatusRequest
	if !h.bindJSON(c, &req) {
		return
	}

	order, err := h.orders.AdvanceStatus(c.Request.Context(), id, req.Status, actorID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, order)
}

// Cancel cancels an order, restocking if it held inventory
// POST /api/v1/orders/:id/cancel
func (h *OrderHandler) Cancel(c *gin.Context) {
	actorID, ok := h.actorID(c)
	if !ok {
		return
	}
	id, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}
	var req appordering.CancelRequest
	if !h.bindJSON(c, &req) {
		return
	}

	order, err := h.orders.Cancel(c.Request.Context(), id, req.Reason, actorID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, order)
}

// AssignCourier attaches an active courier to an order
// POST /api/v1/orders/:id/courier
func (h *OrderHandler) AssignCourier(c *gin.Context) {
	actorID, ok := h.actorID(c)
	if !ok {
		return
	}
	id, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}
	var req appordering.AssignCourierRequest
	if !h.bindJSON(c, &req) {
		return
	}

	order, err := h.orders.AssignCourier(c.Request.Context(), id, req.CourierID, actorID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, order)
}

// SetLineVerification toggles one line's checklist flag
// PUT /api/v1/orders/:id/lines/:lineId/verification
func (h *OrderHandler) SetLineVerification(c *gin.Context) {
	actorID, ok := h.actorID(c)
	if !ok {
		return
	}
	id, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}
	lineID, ok := h.parseUUIDParam(c, "lineId")
	if !ok {
		return
	}
	var req appordering.SetVerificationRequest
	if !h.bindJSON(c, &req) {
		return
	}

	order, err := h.orders.SetLineVerification(c.Request.Context(), id, lineID, req.Status, actorID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, order)
}

// SetAllLinesVerification toggles every line's checklist flag at once
// PUT /api/v1/orders/:id/verification
func (h *OrderHandler) SetAllLinesVerification(c *gin.Context) {
	actorID, ok := h.actorID(c)
	if !ok {
		return
	}
	id, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}
	var req appordering.SetVerificationRequest
	if !h.bindJSON(c, &req) {
		return
	}

	order, err := h.orders.SetAllLinesVerification(c.Request.Context(), id, req.Status, actorID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, order)
}

// Delete soft-deletes a draft or cancelled order
// DELETE /api/v1/orders/:id
func (h *OrderHandler) Delete(c *gin.Context) {
	actorID, ok := h.actorID(c)
	if !ok {
		return
	}
	id, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.orders.Delete(c.Request.Context(), id, actorID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// Register wires the order routes. Couriers can read and advance their
// deliveries; everything else needs the admin or controller role.
func (h *OrderHandler) Register(authed *gin.RouterGroup) {
	authed.GET("/orders", h.List)
	authed.GET("/orders/counts", h.CountByStatus)
	authed.GET("/orders/number/:number", h.GetByNumber)
	authed.GET("/orders/:id", h.Get)
	authed.GET("/orders/:id/history", h.History)
	authed.POST("/orders/:id/status", h.AdvanceStatus)
	authed.PUT("/orders/:id/lines/:lineId/verification", h.SetLineVerification)
	authed.PUT("/orders/:id/verification", h.SetAllLinesVerification)

	writes := authed.Group("", middleware.RequireRoles(identity.RoleAdmin, identity.RoleController))
	writes.POST("/orders", h.Create)
	writes.PUT("/orders/:id", h.Update)
	writes.DELETE("/orders/:id", h.Delete)
	writes.POST("/orders/:id/lines", h.AddLine)
	writes.PUT("/orders/:id/lines/:lineId", h.UpdateLineQuantity)
	writes.DELETE("/orders/:id/lines/:lineId", h.RemoveLine)
	writes.POST("/orders/:id/confirm", h.Confirm)
	writes.POST("/orders/:id/pay", h.Pay)
	writes.POST("/orders/:id/cancel", h.Cancel)
	writes.POST("/orders/:id/courier", h.AssignCourier)
}
