package dto

import "net/http"

// Common error codes
const (
	ErrCodeBadRequest       = "BAD_REQUEST"
	ErrCodeValidationFailed = "VALIDATION_FAILED"
	ErrCodeUnauthenticated  = "UNAUTHENTICATED"
	ErrCodeForbidden        = "FORBIDDEN"
	ErrCodeNotFound         = "NOT_FOUND"
	ErrCodeConflict         = "CONFLICT"
	ErrCodeInternal         = "INTERNAL_ERROR"
)

// errorCodeHTTPStatus maps error codes produced by the domain and
// application layers to HTTP status codes
var errorCodeHTTPStatus = map[string]int{
	ErrCodeBadRequest:        http.StatusBadRequest,
	ErrCodeValidationFailed:  http.StatusBadRequest,
	"INVALID_INPUT":          http.StatusBadRequest,
	"INVALID_EMAIL":          http.StatusBadRequest,
	"INVALID_NAME":           http.StatusBadRequest,
	"INVALID_PASSWORD":       http.StatusBadRequest,
	"INVALID_STOCK":          http.StatusBadRequest,
	"INVALID_PRICE":          http.StatusBadRequest,
	"INVALID_ADDRESS":        http.StatusBadRequest,
	"INVALID_STORE_NAME":     http.StatusBadRequest,
	"INVALID_STOCK_CHANGE":   http.StatusBadRequest,
	"EMPTY_CART":             http.StatusBadRequest,
	"INVALID_STATUS":         http.StatusBadRequest,
	"INVALID_USER":           http.StatusBadRequest,
	"INVALID_AMOUNT":         http.StatusBadRequest,
	"INVALID_ITEM":           http.StatusBadRequest,
	"MISSING_ADDRESS":        http.StatusBadRequest,
	"MISSING_PAYMENT_METHOD": http.StatusBadRequest,
	"MISSING_TARGET":         http.StatusBadRequest,
	"INVALID_ROLE":           http.StatusBadRequest,
	"INVALID_CAPABILITY":     http.StatusBadRequest,
	"SELF_REVOCATION":        http.StatusBadRequest,

	ErrCodeUnauthenticated: http.StatusUnauthorized,
	"UNAUTHORIZED":         http.StatusUnauthorized,
	"INVALID_CREDENTIALS":  http.StatusUnauthorized,

	ErrCodeForbidden: http.StatusForbidden,

	ErrCodeNotFound: http.StatusNotFound,

	ErrCodeConflict:  http.StatusConflict,
	"ALREADY_EXISTS": http.StatusConflict,

	"INVALID_STATE":         http.StatusUnprocessableEntity,
	"ORDER_NOT_CANCELLABLE": http.StatusUnprocessableEntity,

	"SERVICE_UNAVAILABLE": http.StatusServiceUnavailable,

	ErrCodeInternal: http.StatusInternalServerError,
}

// GetHTTPStatus returns the HTTP status for an error code, defaulting to 500
func GetHTTPStatus(code string) int {
	if status, ok := errorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}
