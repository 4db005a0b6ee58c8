package dto

import "net/http"

// Error code constants organized by category
// Format: ERR_<CATEGORY>_<DESCRIPTION>

// General error codes
const (
	// ErrCodeUnknown is used when the error type is unknown
	ErrCodeUnknown = "ERR_UNKNOWN"
	// ErrCodeInternal is used for internal server errors
	ErrCodeInternal = "ERR_INTERNAL"
)

// Validation error codes
const (
	// ErrCodeValidation is the base code for validation errors
	ErrCodeValidation = "ERR_VALIDATION"
	// ErrCodeValidationRequired is used when a required field is missing
	ErrCodeValidationRequired = "ERR_VALIDATION_REQUIRED"
	// ErrCodeValidationFormat is used when a field has invalid format
	ErrCodeValidationFormat = "ERR_VALIDATION_FORMAT"
	// ErrCodeValidationRange is used when a value is out of range
	ErrCodeValidationRange = "ERR_VALIDATION_RANGE"
)

// Resource error codes
const (
	// ErrCodeNotFound is used when a resource is not found
	ErrCodeNotFound = "ERR_NOT_FOUND"
	// ErrCodeAlreadyExists is used when trying to create a duplicate resource
	ErrCodeAlreadyExists = "ERR_ALREADY_EXISTS"
	// ErrCodeConflict is used for general resource conflicts
	ErrCodeConflict = "ERR_CONFLICT"
	// ErrCodeConcurrencyConflict is used when optimistic locking fails
	ErrCodeConcurrencyConflict = "ERR_CONCURRENCY_CONFLICT"
)

// Business rule error codes
const (
	// ErrCodeInvalidState is used when an operation is invalid for current state
	ErrCodeInvalidState = "ERR_INVALID_STATE"
	// ErrCodeBusinessRule is used for generic business rule violations
	ErrCodeBusinessRule = "ERR_BUSINESS_RULE"
	// ErrCodeImmutable is used when mutating a record that cannot change after creation
	ErrCodeImmutable = "ERR_IMMUTABLE"
	// ErrCodeMaxDepth is used when a tree operation would exceed the depth limit
	ErrCodeMaxDepth = "ERR_MAX_DEPTH"
	// ErrCodePartialCopy is used when a duplication created the target but not all of its children
	ErrCodePartialCopy = "ERR_PARTIAL_COPY"
)

// Input error codes
const (
	// ErrCodeBadRequest is used for malformed requests
	ErrCodeBadRequest = "ERR_BAD_REQUEST"
	// ErrCodeInvalidInput is used for invalid input data
	ErrCodeInvalidInput = "ERR_INVALID_INPUT"
	// ErrCodeInvalidJSON is used when JSON parsing fails
	ErrCodeInvalidJSON = "ERR_INVALID_JSON"
)

// Media error codes
const (
	// ErrCodeFileTooLarge is used when an upload exceeds the configured size cap
	ErrCodeFileTooLarge = "ERR_FILE_TOO_LARGE"
	// ErrCodeUnsupportedMedia is used when the uploaded content type is not accepted
	ErrCodeUnsupportedMedia = "ERR_UNSUPPORTED_MEDIA_TYPE"
	// ErrCodeUpstreamFailed is used when a proxied upstream call fails
	ErrCodeUpstreamFailed = "ERR_UPSTREAM_FAILED"
	// ErrCodeRateLimited is used when a client exceeds its request budget
	ErrCodeRateLimited = "ERR_RATE_LIMITED"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	// General errors
	ErrCodeUnknown:  http.StatusInternalServerError,
	ErrCodeInternal: http.StatusInternalServerError,

	// Validation errors -> 400 Bad Request
	ErrCodeValidation:         http.StatusBadRequest,
	ErrCodeValidationRequired: http.StatusBadRequest,
	ErrCodeValidationFormat:   http.StatusBadRequest,
	ErrCodeValidationRange:    http.StatusBadRequest,

	// Resource errors
	ErrCodeNotFound:            http.StatusNotFound,
	ErrCodeAlreadyExists:       http.StatusConflict,
	ErrCodeConflict:            http.StatusConflict,
	ErrCodeConcurrencyConflict: http.StatusConflict,

	// Business rule errors -> 422 Unprocessable Entity
	ErrCodeInvalidState: http.StatusUnprocessableEntity,
	ErrCodeBusinessRule: http.StatusUnprocessableEntity,
	ErrCodeImmutable:    http.StatusConflict,
	ErrCodeMaxDepth:     http.StatusUnprocessableEntity,
	ErrCodePartialCopy:  http.StatusInternalServerError,

	// Input errors -> 400 Bad Request
	ErrCodeBadRequest:   http.StatusBadRequest,
	ErrCodeInvalidInput: http.StatusBadRequest,
	ErrCodeInvalidJSON:  http.StatusBadRequest,

	// Media errors
	ErrCodeFileTooLarge:     http.StatusRequestEntityTooLarge,
	ErrCodeUnsupportedMedia: http.StatusUnsupportedMediaType,
	ErrCodeUpstreamFailed:   http.StatusBadGateway,
	ErrCodeRateLimited:      http.StatusTooManyRequests,
}

// GetHTTPStatus returns the HTTP status code for an error code
// Returns 500 Internal Server Error if the error code is not found
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// LegacyErrorCodeMapping maps domain error codes to the standardized codes
// used on the wire
var LegacyErrorCodeMapping = map[string]string{
	"NOT_FOUND":            ErrCodeNotFound,
	"ALREADY_EXISTS":       ErrCodeAlreadyExists,
	"INVALID_INPUT":        ErrCodeInvalidInput,
	"INVALID_STATE":        ErrCodeInvalidState,
	"CONCURRENCY_CONFLICT": ErrCodeConcurrencyConflict,
	"VALIDATION_ERROR":     ErrCodeValidation,
	"BAD_REQUEST":          ErrCodeBadRequest,
	"INTERNAL_ERROR":       ErrCodeInternal,

	// Catalog
	"INVALID_NAME":          ErrCodeInvalidInput,
	"INVALID_PARENT":        ErrCodeInvalidInput,
	"INVALID_COLOR":         ErrCodeInvalidInput,
	"INVALID_PRICE":         ErrCodeInvalidInput,
	"INVALID_TARGET":        ErrCodeInvalidInput,
	"INVALID_SUB_ATTRIBUTE": ErrCodeInvalidInput,
	"INVALID_STEP":          ErrCodeInvalidInput,
	"INVALID_DISPLAY_TYPE":  ErrCodeInvalidInput,
	"INVALID_DEPENDENCY":    ErrCodeInvalidInput,
	"INVALID_CODE":          ErrCodeInvalidInput,
	"INVALID_ORDER":         ErrCodeInvalidInput,
	"INVALID_CATEGORY":      ErrCodeInvalidInput,
	"DUPLICATE_OPTION_NAME": ErrCodeAlreadyExists,
	"DUPLICATE_ITEM_NAME":   ErrCodeAlreadyExists,
	"MAX_DEPTH_EXCEEDED":    ErrCodeMaxDepth,
	"DUPLICATE_PARTIAL":     ErrCodePartialCopy,
	"IMMUTABLE":             ErrCodeImmutable,

	// Media
	"MISSING_FILE":           ErrCodeValidationRequired,
	"MISSING_IMAGE":          ErrCodeValidationRequired,
	"FILE_TOO_LARGE":         ErrCodeFileTooLarge,
	"UNSUPPORTED_MEDIA_TYPE": ErrCodeUnsupportedMedia,
	"AI_UPSTREAM_FAILED":     ErrCodeUpstreamFailed,
}

// NormalizeErrorCode converts a domain error code to the standardized format
// If the code is already in the new format or unknown, returns it as-is
func NormalizeErrorCode(code string) string {
	if newCode, ok := LegacyErrorCodeMapping[code]; ok {
		return newCode
	}
	return code
}
