package dto

import (
	"github.com/gestock/backend/internal/domain/shared"
)

// Response is the standard API envelope
type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *ErrorInfo  `json:"error,omitempty"`
	Meta    *Meta       `json:"meta,omitempty"`
}

// ErrorInfo carries the error code and message, plus the request ID so a
// client report can be correlated with the server logs
type ErrorInfo struct {
	Code      string                 `json:"code"`
	Message   string                 `json:"message"`
	Details   map[string]interface{} `json:"details,omitempty"`
	RequestID string                 `json:"request_id,omitempty"`
}

// Meta carries pagination metadata
type Meta struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	TotalPages int   `json:"total_pages"`
}

// NewSuccessResponse creates a success response
func NewSuccessResponse(data interface{}) Response {
	return Response{
		Success: true,
		Data:    data,
	}
}

// NewPaginatedResponse creates a success response with pagination meta
func NewPaginatedResponse[T any](page shared.Paginated[T]) Response {
	return Response{
		Success: true,
		Data:    page.Items,
		Meta: &Meta{
			Total:      page.Total,
			Page:       page.Page,
			PageSize:   page.PageSize,
			TotalPages: page.TotalPages,
		},
	}
}

// NewErrorResponse creates an error response
func NewErrorResponse(code, message, requestID string) Response {
	return Response{
		Success: false,
		Error: &ErrorInfo{
			Code:      code,
			Message:   message,
			RequestID: requestID,
		},
	}
}

// NewErrorResponseWithDetails creates an error response carrying structured
// details, such as the available quantity on a stock shortage
func NewErrorResponseWithDetails(code, message, requestID string, details map[string]interface{}) Response {
	return Response{
		Success: false,
		Error: &ErrorInfo{
			Code:      code,
			Message:   message,
			Details:   details,
			RequestID: requestID,
		},
	}
}

// ListRequest carries the common list query parameters
type ListRequest struct {
	Page     int    `form:"page"`
	PageSize int    `form:"page_size" binding:"omitempty,max=100"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
	Search   string `form:"search"`
}

// ToFilter converts the request to a domain filter, filling in defaults
func (r ListRequest) ToFilter() shared.Filter {
	filter := shared.DefaultFilter()
	if r.Page > 0 {
		filter.Page = r.Page
	}
	if r.PageSize > 0 {
		filter.PageSize = r.PageSize
	}
	if r.OrderBy != "" {
		filter.OrderBy = r.OrderBy
	}
	if r.OrderDir != "" {
		filter.OrderDir = r.OrderDir
	}
	filter.Search = r.Search
	return filter
}
