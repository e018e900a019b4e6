package dto

import (
	"net/http"
	"strings"
)

// General error codes
const (
	ErrCodeUnknown  = "ERR_UNKNOWN"
	ErrCodeInternal = "ERR_INTERNAL"
)

// Validation error codes
const (
	ErrCodeValidation = "ERR_VALIDATION"
)

// Authentication error codes
const (
	ErrCodeUnauthorized = "ERR_UNAUTHORIZED"
	ErrCodeForbidden    = "ERR_FORBIDDEN"
	ErrCodeTokenExpired = "ERR_TOKEN_EXPIRED"
	ErrCodeTokenInvalid = "ERR_TOKEN_INVALID"
)

// Resource error codes
const (
	ErrCodeNotFound      = "ERR_NOT_FOUND"
	ErrCodeAlreadyExists = "ERR_ALREADY_EXISTS"
	ErrCodeConflict      = "ERR_CONFLICT"
)

// Input error codes
const (
	ErrCodeBadRequest = "ERR_BAD_REQUEST"
)

// Rate limiting error codes
const (
	ErrCodeRateLimited = "ERR_RATE_LIMITED"
)

// domainCodeHTTPStatus maps domain error codes to HTTP status codes.
// Codes not listed here fall through to the suffix rules in
// GetHTTPStatus.
var domainCodeHTTPStatus = map[string]int{
	// auth
	"INVALID_CREDENTIALS": http.StatusUnauthorized,
	"INVALID_API_KEY":     http.StatusUnauthorized,
	"UNAUTHORIZED":        http.StatusUnauthorized,
	"ACCOUNT_LOCKED":      http.StatusLocked,
	"ACCOUNT_DISABLED":    http.StatusForbidden,
	"FORBIDDEN":           http.StatusForbidden,
	"NOT_STAFF":           http.StatusForbidden,

	// conflicts
	"EMAIL_TAKEN":           http.StatusConflict,
	"CONCURRENCY_CONFLICT":  http.StatusConflict,
	"BRAND_IN_USE":          http.StatusConflict,
	"BRAND_HAS_CHILDREN":    http.StatusConflict,
	"CATEGORY_IN_USE":       http.StatusConflict,
	"CATEGORY_HAS_CHILDREN": http.StatusConflict,
	"ROLE_IN_USE":           http.StatusConflict,
	"SYSTEM_ROLE":           http.StatusConflict,

	// business rules -> 422
	"EMPTY_CART":          http.StatusUnprocessableEntity,
	"PRODUCT_UNAVAILABLE": http.StatusUnprocessableEntity,
	"CUSTOMER_INACTIVE":   http.StatusUnprocessableEntity,
	"QUANTITY_LIMIT":      http.StatusUnprocessableEntity,
	"INVALID_STATE":       http.StatusUnprocessableEntity,
	"INSUFFICIENT_CREDIT": http.StatusUnprocessableEntity,
	"MAX_DEPTH_EXCEEDED":  http.StatusUnprocessableEntity,

	// infrastructure failures
	"INTERNAL_ERROR":      http.StatusInternalServerError,
	"DB_ERROR":            http.StatusInternalServerError,
	"PASSWORD_HASH_ERROR": http.StatusInternalServerError,
	"INVALID_CONFIG":      http.StatusInternalServerError,
}

// envelopeCodeHTTPStatus maps the standardized ERR_* codes to statuses
var envelopeCodeHTTPStatus = map[string]int{
	ErrCodeUnknown:       http.StatusInternalServerError,
	ErrCodeInternal:      http.StatusInternalServerError,
	ErrCodeValidation:    http.StatusBadRequest,
	ErrCodeUnauthorized:  http.StatusUnauthorized,
	ErrCodeForbidden:     http.StatusForbidden,
	ErrCodeTokenExpired:  http.StatusUnauthorized,
	ErrCodeTokenInvalid:  http.StatusUnauthorized,
	ErrCodeNotFound:      http.StatusNotFound,
	ErrCodeAlreadyExists: http.StatusConflict,
	ErrCodeConflict:      http.StatusConflict,
	ErrCodeBadRequest:    http.StatusBadRequest,
	ErrCodeRateLimited:   http.StatusTooManyRequests,
}

// GetHTTPStatus returns the HTTP status code for a domain or envelope
// error code. Unlisted codes are classified by shape: *_NOT_FOUND is
// 404, ALREADY_* and DUPLICATE_* are 409, everything else is treated
// as a rejected request.
func GetHTTPStatus(code string) int {
	if status, ok := envelopeCodeHTTPStatus[code]; ok {
		return status
	}
	if status, ok := domainCodeHTTPStatus[code]; ok {
		return status
	}

	switch {
	case code == "NOT_FOUND" || strings.HasSuffix(code, "_NOT_FOUND"):
		return http.StatusNotFound
	case strings.HasPrefix(code, "ALREADY_") || strings.HasPrefix(code, "DUPLICATE_") || code == "ALREADY_EXISTS":
		return http.StatusConflict
	default:
		return http.StatusBadRequest
	}
}
