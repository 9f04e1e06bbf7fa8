package errors

// ErrorResponse represents a standardized error response
type ErrorResponse struct {
	Error   string `json:"error"`             // error code (e.g., "unauthorized", "not_found")
	Message string `json:"message"`           // user-friendly message
	Details string `json:"details,omitempty"` // optional details (sanitized in production)
	Field   string `json:"field,omitempty"`   // offending request field for validation errors
}

type ErrorInfo struct {
	category  string
	sanitized string
}

// standard error codes
const (
	CodeUnauthorized       = "unauthorized"
	CodeForbidden          = "forbidden"
	CodeNotFound           = "not_found"
	CodeValidationError    = "validation_error"
	CodeServerError        = "server_error"
	CodeBadRequest         = "bad_request"
	CodeTooManyRequests    = "too_many_requests"
	CodeServiceUnavailable = "service_unavailable"
	CodeInsertionNotFound  = "insertion_not_found"
	CodeAdvertiserNotFound = "advertiser_not_found"
)

// error categories for classification
const (
	CategoryDatabase    = "database"
	CategoryNetwork     = "network"
	CategoryValidation  = "validation"
	CategoryAuth        = "auth"
	CategoryNotFound    = "not_found"
	CategoryTimeout     = "timeout"
	CategoryUnavailable = "unavailable"
	CategoryUnknown     = "unknown"
)
