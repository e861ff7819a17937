package dto

import "net/http"

// Error codes shared between the API surface and the domain layer. Domain
// errors carry these codes directly; the HTTP layer only decides the status.
const (
	ErrCodeInternal     = "INTERNAL_ERROR"
	ErrCodeBadRequest   = "BAD_REQUEST"
	ErrCodeUnauthorized = "UNAUTHORIZED"
	ErrCodeForbidden    = "FORBIDDEN"
	ErrCodeNotFound     = "NOT_FOUND"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes.
//
// The three billing-specific rejections have deliberate statuses: a locked
// month and an exhausted correction are state the caller cannot change by
// fixing the request (403), while a version mismatch is a retryable
// conflict (409).
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeInternal:     http.StatusInternalServerError,
	ErrCodeBadRequest:   http.StatusBadRequest,
	ErrCodeUnauthorized: http.StatusUnauthorized,
	ErrCodeForbidden:    http.StatusForbidden,
	ErrCodeNotFound:     http.StatusNotFound,

	"ALREADY_EXISTS":       http.StatusConflict,
	"CONCURRENCY_CONFLICT": http.StatusConflict,

	"MONTH_LOCKED":      http.StatusForbidden,
	"ALREADY_CORRECTED": http.StatusForbidden,
	"NOT_CORRECTABLE":   http.StatusForbidden,

	"INVALID_INPUT":          http.StatusBadRequest,
	"INVALID_AMOUNT":         http.StatusUnprocessableEntity,
	"INVALID_DATE":           http.StatusUnprocessableEntity,
	"INVALID_NOTE":           http.StatusUnprocessableEntity,
	"INVALID_MONTH":          http.StatusUnprocessableEntity,
	"INVALID_SCOPE":          http.StatusUnprocessableEntity,
	"INVALID_MEMBER":         http.StatusUnprocessableEntity,
	"INVALID_PRODUCT":        http.StatusUnprocessableEntity,
	"INVALID_QUANTITY":       http.StatusUnprocessableEntity,
	"INVALID_PAYMENT_METHOD": http.StatusUnprocessableEntity,
	"INVALID_STATE":          http.StatusUnprocessableEntity,
}

// GetHTTPStatus returns the HTTP status code for an error code.
// Returns 500 Internal Server Error if the error code is not mapped.
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}
