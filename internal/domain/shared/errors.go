package shared

// DomainError represents a domain-level error
type DomainError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// NewDomainErrorWithDetails creates a new domain error carrying structured details
func NewDomainErrorWithDetails(code, message string, details map[string]interface{}) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Details: details,
	}
}

// Common domain errors
var (
	ErrNotFound            = NewDomainError("NOT_FOUND", "Resource not found")
	ErrAlreadyExists       = NewDomainError("ALREADY_EXISTS", "Resource already exists")
	ErrConcurrencyConflict = NewDomainError("CONCURRENCY_CONFLICT", "Resource was modified by another process")
	ErrUnauthorized        = NewDomainError("UNAUTHORIZED", "Not authorized to perform this action")
	ErrForbidden           = NewDomainError("FORBIDDEN", "Access to this resource is forbidden")
	ErrNotEditable         = NewDomainError("NOT_EDITABLE", "Order can only be modified while in draft")
	ErrEmptyOrder          = NewDomainError("EMPTY_ORDER", "Order has no lines")
	ErrCourierNotFound     = NewDomainError("COURIER_NOT_FOUND", "Courier does not exist or is not active")
)

// NewValidationError reports invalid input with a specific message
func NewValidationError(message string) *DomainError {
	return NewDomainError("VALIDATION_ERROR", message)
}

// NewInvalidTransitionError reports a status change the workflow does not allow
func NewInvalidTransitionError(from, to string) *DomainError {
	return NewDomainErrorWithDetails("INVALID_TRANSITION", "Cannot transition from "+from+" to "+to, map[string]interface{}{
		"from": from,
		"to":   to,
	})
}

// NewInsufficientStockError reports a stock shortage, carrying the available
// and requested quantities so callers can present both
func NewInsufficientStockError(productID string, available, requested int64) *DomainError {
	return NewDomainErrorWithDetails("INSUFFICIENT_STOCK", "Insufficient stock available", map[string]interface{}{
		"product_id": productID,
		"available":  available,
		"requested":  requested,
	})
}

// NewMissingFieldError reports a field required by the current operation,
// such as payment details on a mobile money payment
func NewMissingFieldError(field string) *DomainError {
	return NewDomainErrorWithDetails("MISSING_REQUIRED_FIELD", "Required field is missing: "+field, map[string]interface{}{
		"field": field,
	})
}
