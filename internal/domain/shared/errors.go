package shared

// DomainError is the error type domain and application code returns.
// Code is the stable identifier the HTTP layer translates into a wire
// error code; Message is safe to surface to the admin UI.
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError builds an error for rules that do not fit the sentinels
// below, such as duplicate option names, category nesting depth or upload
// limits. The handler layer maps the code to a status via the wire tables.
func NewDomainError(code, message string) *DomainError {
	return &DomainError{Code: code, Message: message}
}

// Sentinel errors shared across the catalog, design and media contexts.
var (
	ErrNotFound            = NewDomainError("NOT_FOUND", "Resource not found")
	ErrAlreadyExists       = NewDomainError("ALREADY_EXISTS", "Resource already exists")
	ErrInvalidInput        = NewDomainError("INVALID_INPUT", "Invalid input provided")
	ErrConcurrencyConflict = NewDomainError("CONCURRENCY_CONFLICT", "Resource was modified by another process")
	ErrInvalidState        = NewDomainError("INVALID_STATE", "Operation not allowed in current state")
	ErrImmutable           = NewDomainError("IMMUTABLE", "Resource cannot be modified after creation")
)
