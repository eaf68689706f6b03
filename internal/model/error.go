package model

// ErrorResponse represents a standardised error response.
type ErrorResponse struct {
	Error   string            `json:"error"`
	Message string            `json:"message,omitempty"`
	Fields  map[string]string `json:"fields,omitempty"`
}

// Standard error codes for API responses
const (
	ErrCodeInvalidJSON        = "INVALID_JSON"
	ErrCodeInvalidCoupon      = "INVALID_COUPON"
	ErrCodeProductNotFound    = "PRODUCT_NOT_FOUND"
	ErrCodeValidationFailed   = "VALIDATION_FAILED"
	ErrCodeCheckoutNotFound   = "CHECKOUT_NOT_FOUND"
	ErrCodeCheckoutProcessing = "CHECKOUT_PROCESSING"
	ErrCodeCatalogUnavailable = "CATALOG_UNAVAILABLE"
	ErrCodeInvalidRating      = "INVALID_RATING"
	ErrCodeInternalError      = "INTERNAL_ERROR"
)

// Domain errors for business logic
type DomainError struct {
	Code    string
	Message string
}

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

// Common domain errors
var (
	ErrInvalidCoupon      = NewDomainError(ErrCodeInvalidCoupon, "Invalid coupon code")
	ErrFixFormErrors      = NewDomainError(ErrCodeValidationFailed, "Please fix form errors")
	ErrCheckoutIncomplete = NewDomainError(ErrCodeValidationFailed, "Complete all checkout steps before placing the order")
	ErrProductNotFound    = NewDomainError(ErrCodeProductNotFound, "Product not found")
	ErrCheckoutNotFound   = NewDomainError(ErrCodeCheckoutNotFound, "No checkout session in progress")
	ErrCheckoutProcessing = NewDomainError(ErrCodeCheckoutProcessing, "Order is being processed")
	ErrCatalogUnavailable = NewDomainError(ErrCodeCatalogUnavailable, "Failed to load products")
	ErrInvalidRating      = NewDomainError(ErrCodeInvalidRating, "Rating must be between 1 and 5")
)
