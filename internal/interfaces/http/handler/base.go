package handler

import (
	"errors"
	"net/http"

	"github.com/gestock/backend/internal/domain/shared"
	"github.com/gestock/backend/internal/interfaces/http/dto"
	"github.com/gestock/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// BaseHandler provides common response utilities shared by all handlers
type BaseHandler struct{}

// Success sends a 200 response with the standard envelope
func (h *BaseHandler) Success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, dto.NewSuccessResponse(data))
}

// Paginated sends a 200 response with pagination metadata
func Paginated[T any](c *gin.Context, page shared.Paginated[T]) {
	c.JSON(http.StatusOK, dto.NewPaginatedResponse(page))
}

// Created sends a 201 response
func (h *BaseHandler) Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, dto.NewSuccessResponse(data))
}

// NoContent sends a 204 response
func (h *BaseHandler) NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// BadRequest sends a 400 response
func (h *BaseHandler) BadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest,
		dto.NewErrorResponse(dto.ErrCodeBadRequest, message, middleware.GetRequestID(c)))
}

// HandleError converts an error to the matching HTTP response. Domain errors
// carry their own code; anything else becomes an opaque 500 so internals
// never leak to clients.
func (h *BaseHandler) HandleError(c *gin.Context, err error) {
	if err == nil {
		return
	}

	requestID := middleware.GetRequestID(c)

	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		status := dto.GetHTTPStatus(domainErr.Code)
		if len(domainErr.Details) > 0 {
			c.JSON(status, dto.NewErrorResponseWithDetails(domainErr.Code, domainErr.Message, requestID, domainErr.Details))
			return
		}
		c.JSON(status, dto.NewErrorResponse(domainErr.Code, domainErr.Message, requestID))
		return
	}

	c.JSON(http.StatusInternalServerError,
		dto.NewErrorResponse(dto.ErrCodeInternal, "An unexpected error occurred", requestID))
}

// parseUUIDParam reads a UUID path parameter, responding with 400 on failure.
// The bool reports whether parsing succeeded.
func (h *BaseHandler) parseUUIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		h.BadRequest(c, "Invalid "+name+" parameter")
		return uuid.Nil, false
	}
	return id, true
}

// bindJSON binds the request body, responding with 400 on failure
func (h *BaseHandler) bindJSON(c *gin.Context, target any) bool {
	if err := c.ShouldBindJSON(target); err != nil {
		h.BadRequest(c, err.Error())
		return false
	}
	return true
}

// bindListRequest binds the common list query parameters
func (h *BaseHandler) bindListRequest(c *gin.Context) (dto.ListRequest, bool) {
	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return req, false
	}
	return req, true
}

// actorID returns the authenticated user's ID, responding with 401 when the
// request carries no identity
func (h *BaseHandler) actorID(c *gin.Context) (uuid.UUID, bool) {
	id, err := middleware.GetUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized,
			dto.NewErrorResponse("UNAUTHORIZED", "Authentication required", middleware.GetRequestID(c)))
		return uuid.Nil, false
	}
	return id, true
}
