package dto

import "net/http"

// Domain error codes surfaced over the API. The codes come straight from the
// domain layer; this table only decides the HTTP status they map to.
const (
	ErrCodeInternal   = "INTERNAL_ERROR"
	ErrCodeBadRequest = "BAD_REQUEST"
)

// errorCodeHTTPStatus maps domain error codes to HTTP status codes
var errorCodeHTTPStatus = map[string]int{
	"VALIDATION_ERROR":       http.StatusBadRequest,
	"BAD_REQUEST":            http.StatusBadRequest,
	"MISSING_REQUIRED_FIELD": http.StatusBadRequest,

	"UNAUTHORIZED": http.StatusUnauthorized,
	"FORBIDDEN":    http.StatusForbidden,

	"NOT_FOUND":         http.StatusNotFound,
	"COURIER_NOT_FOUND": http.StatusNotFound,

	"ALREADY_EXISTS":       http.StatusConflict,
	"CONCURRENCY_CONFLICT": http.StatusConflict,

	"INVALID_TRANSITION": http.StatusUnprocessableEntity,
	"NOT_EDITABLE":       http.StatusUnprocessableEntity,
	"EMPTY_ORDER":        http.StatusUnprocessableEntity,
	"INSUFFICIENT_STOCK": http.StatusUnprocessableEntity,

	"INTERNAL_ERROR": http.StatusInternalServerError,
}

// GetHTTPStatus returns the HTTP status code for a domain error code.
// Unknown codes are treated as internal errors.
func GetHTTPStatus(code string) int {
	if status, ok := errorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}
