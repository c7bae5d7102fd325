package dto

// BaseError is the root error envelope.
// Code is a machine-oriented snake_case code, Message a short
// human-readable description, Details an optional extra string and
// Fields the per-field breakdown for validation errors.
type BaseError struct {
	Code    string       `json:"code"`
	Message string       `json:"message"`
	Details string       `json:"details,omitempty"`
	Fields  []FieldError `json:"fields,omitempty"`
}

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Tag     string `json:"tag,omitempty"`
}

// Semantic wrappers share the BaseError JSON shape; they exist so swagger can
// document different @Failure codes distinctly.

// ValidationErrorResponse 400, Code: "validation_error"
type ValidationErrorResponse BaseError

// InvalidStateErrorResponse 400, Code: "invalid_state"
type InvalidStateErrorResponse BaseError

// UnauthorizedErrorResponse 401, Code: "unauthorized"
type UnauthorizedErrorResponse BaseError

// ForbiddenErrorResponse 403, Code: "forbidden"
type ForbiddenErrorResponse BaseError

// NotFoundErrorResponse 404, Code: "not_found"
type NotFoundErrorResponse BaseError

// ConflictErrorResponse 409, Code: "conflict"
type ConflictErrorResponse BaseError

// RateLimitedErrorResponse 429, Code: "rate_limited"
type RateLimitedErrorResponse BaseError

// InternalErrorResponse 500, Code: "internal_error"
type InternalErrorResponse BaseError

func NewValidationError(msg string, fields []FieldError) ValidationErrorResponse {
	return ValidationErrorResponse(BaseError{Code: "validation_error", Message: msg, Fields: fields})
}
func NewInvalidStateError(msg string) InvalidStateErrorResponse {
	return InvalidStateErrorResponse(BaseError{Code: "invalid_state", Message: msg})
}
func NewUnauthorizedError(msg string) UnauthorizedErrorResponse {
	return UnauthorizedErrorResponse(BaseError{Code: "unauthorized", Message: msg})
}
func NewForbiddenError(msg string) ForbiddenErrorResponse {
	return ForbiddenErrorResponse(BaseError{Code: "forbidden", Message: msg})
}
func NewNotFoundError(msg string) NotFoundErrorResponse {
	return NotFoundErrorResponse(BaseError{Code: "not_found", Message: msg})
}
func NewConflictError(msg string) ConflictErrorResponse {
	return ConflictErrorResponse(BaseError{Code: "conflict", Message: msg})
}
func NewRateLimitedError(msg string) RateLimitedErrorResponse {
	return RateLimitedErrorResponse(BaseError{Code: "rate_limited", Message: msg})
}
func NewInternalError(details string) InternalErrorResponse {
	return InternalErrorResponse(BaseError{Code: "internal_error", Message: "internal server error", Details: details})
}
