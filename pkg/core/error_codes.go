package core

import "errors"

// ErrorCode represents a stable, machine-readable error identifier.
type ErrorCode string

// Error code constants.
const (
	// ErrCodeNetwork indicates a network connectivity failure.
	ErrCodeNetwork ErrorCode = "NETWORK_ERROR"
	// ErrCodeTimeout indicates the request exceeded its deadline.
	ErrCodeTimeout ErrorCode = "TIMEOUT"
	// ErrCodeHTTP indicates Liquid answered with a non-2xx status.
	ErrCodeHTTP ErrorCode = "HTTP_ERROR"
	// ErrCodeInvalidParameter indicates an argument outside its allow-list.
	ErrCodeInvalidParameter ErrorCode = "INVALID_PARAMETER"
	// ErrCodeDecode indicates the response body is not valid JSON.
	ErrCodeDecode ErrorCode = "DECODE_ERROR"

	// Configuration errors
	ErrCodeInvalidConfig ErrorCode = "INVALID_CONFIG"

	// Client state errors
	ErrCodeClientClosed ErrorCode = "CLIENT_CLOSED"

	// Circuit breaker errors
	ErrCodeCircuitBreaker ErrorCode = "CIRCUIT_BREAKER_OPEN"

	// Authentication errors
	ErrCodeNoCredentials ErrorCode = "NO_CREDENTIALS"
	ErrCodeNoAPIKey      ErrorCode = "NO_API_KEY"
	ErrCodeSign          ErrorCode = "SIGN_ERROR"
)

// IsErrorCode checks if the error matches the specified error code.
func IsErrorCode(err error, code ErrorCode) bool {
	var exErr *ExchangeError
	if errors.As(err, &exErr) {
		return ErrorCode(exErr.Code) == code
	}
	return false
}
