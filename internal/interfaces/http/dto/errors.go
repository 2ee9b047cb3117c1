package dto

import "net/http"

// Error codes shared between the domain layer and the wire format. The
// public portal contract pins the statuses: store/order absence and a
// missing integration are both 404, a contact mismatch is 401, a
// non-returnable order is 400, and an unreachable platform is 500.
const (
	ErrCodeInternal = "INTERNAL_ERROR"
	ErrCodeUnknown  = "UNKNOWN_ERROR"

	ErrCodeBadRequest   = "BAD_REQUEST"
	ErrCodeInvalidInput = "INVALID_INPUT"
	ErrCodeInvalidJSON  = "INVALID_JSON"

	ErrCodeUnauthorized = "UNAUTHORIZED"
	ErrCodeForbidden    = "FORBIDDEN"
	ErrCodeTokenExpired = "TOKEN_EXPIRED"
	ErrCodeTokenInvalid = "INVALID_TOKEN"

	ErrCodeNotFound      = "NOT_FOUND"
	ErrCodeAlreadyExists = "ALREADY_EXISTS"
	ErrCodeInvalidState  = "INVALID_STATE"

	ErrCodeIntegrationMissing = "INTEGRATION_MISSING"
	ErrCodeIdentityMismatch   = "IDENTITY_MISMATCH"
	ErrCodeNotReturnable      = "NOT_RETURNABLE"
	ErrCodeUpstreamFailure    = "UPSTREAM_FAILURE"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeInternal: http.StatusInternalServerError,
	ErrCodeUnknown:  http.StatusInternalServerError,

	ErrCodeBadRequest:   http.StatusBadRequest,
	ErrCodeInvalidInput: http.StatusBadRequest,
	ErrCodeInvalidJSON:  http.StatusBadRequest,

	ErrCodeUnauthorized: http.StatusUnauthorized,
	ErrCodeForbidden:    http.StatusForbidden,
	ErrCodeTokenExpired: http.StatusUnauthorized,
	ErrCodeTokenInvalid: http.StatusUnauthorized,

	ErrCodeNotFound:      http.StatusNotFound,
	ErrCodeAlreadyExists: http.StatusConflict,
	ErrCodeInvalidState:  http.StatusUnprocessableEntity,

	ErrCodeIntegrationMissing: http.StatusNotFound,
	ErrCodeIdentityMismatch:   http.StatusUnauthorized,
	ErrCodeNotReturnable:      http.StatusBadRequest,
	ErrCodeUpstreamFailure:    http.StatusInternalServerError,
}

// GetHTTPStatus returns the HTTP status for an error code, defaulting to
// 500 for codes missing from the table
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}
