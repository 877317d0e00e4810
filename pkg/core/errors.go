package core

import (
	"errors"
	"fmt"
	"net/http"
	"time"
)

// ErrorType represents the category of a client error.
type ErrorType int

// Error type constants categorize errors for proper handling.
const (
	// ErrorTypeUnknown indicates an unclassified error.
	ErrorTypeUnknown ErrorType = iota
	// ErrorTypeNetwork indicates a network connectivity issue.
	ErrorTypeNetwork
	// ErrorTypeTimeout indicates the request exceeded its deadline.
	ErrorTypeTimeout
	// ErrorTypeRateLimit indicates rate limit was exceeded.
	ErrorTypeRateLimit
	// ErrorTypeAuthentication indicates invalid or expired credentials.
	ErrorTypeAuthentication
	// ErrorTypeBadRequest indicates the exchange rejected the request parameters.
	ErrorTypeBadRequest
	// ErrorTypeNotFound indicates the requested resource does not exist.
	ErrorTypeNotFound
	// ErrorTypeServerError indicates a server-side error.
	ErrorTypeServerError
	// ErrorTypeValidation indicates arguments were rejected before any request was sent.
	ErrorTypeValidation
	// ErrorTypeDecode indicates a successful response carried a body that is not JSON.
	ErrorTypeDecode
)

// String returns the string representation of the error type.
func (t ErrorType) String() string {
	return [...]string{
		"UNKNOWN",
		"NETWORK",
		"TIMEOUT",
		"RATE_LIMIT",
		"AUTHENTICATION",
		"BAD_REQUEST",
		"NOT_FOUND",
		"SERVER_ERROR",
		"VALIDATION",
		"DECODE",
	}[t]
}

// Sentinel errors for common error conditions.
var (
	// ErrClientClosed is returned when attempting to use a closed client.
	ErrClientClosed = errors.New("client is closed")
	// ErrCircuitBreakerOpen is returned when circuit breaker is open.
	ErrCircuitBreakerOpen = errors.New("circuit breaker is open")
	// ErrNoCredentials is returned when a signed endpoint is called without credentials.
	ErrNoCredentials = errors.New("no credentials configured")
	// ErrNoAPIKey is returned when every key in the key ring is disabled.
	ErrNoAPIKey = errors.New("no available API key")
)

// ExchangeError represents a structured error raised by the client or returned by Liquid.
type ExchangeError struct {
	// Type categorizes the error for programmatic handling.
	Type ErrorType `json:"type"`
	// StatusCode is the HTTP status code from the response, zero when no response was received.
	StatusCode int `json:"status_code"`
	// Code is a stable machine-readable identifier, see ErrorCode.
	Code string `json:"code"`
	// Message is the human-readable error description.
	Message string `json:"message"`
	// Body is the raw response body, unparsed.
	Body string `json:"body,omitempty"`
	// Exchange identifies which exchange returned this error.
	Exchange string `json:"exchange"`
	// Timestamp is when the error occurred.
	Timestamp time.Time `json:"timestamp"`

	cause error
}

// Error returns a formatted string with exchange name, error type, status code, and message.
func (e *ExchangeError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("[%s] %s (%d/%s): %s",
			e.Exchange, e.Type, e.StatusCode, e.Code, e.Message)
	}
	return fmt.Sprintf("[%s] %s (%d): %s",
		e.Exchange, e.Type, e.StatusCode, e.Message)
}

// Unwrap returns the underlying cause, if any.
func (e *ExchangeError) Unwrap() error {
	return e.cause
}

// WithCode sets the error code and returns the error for chaining.
func (e *ExchangeError) WithCode(code ErrorCode) *ExchangeError {
	e.Code = string(code)
	return e
}

// WithCause attaches an underlying error and returns the error for chaining.
func (e *ExchangeError) WithCause(err error) *ExchangeError {
	e.cause = err
	return e
}

// NewExchangeError creates a new ExchangeError with the specified details.
// The timestamp is automatically set to the current time.
func NewExchangeError(errorType ErrorType, statusCode int, message string) *ExchangeError {
	return &ExchangeError{
		Type:       errorType,
		StatusCode: statusCode,
		Message:    message,
		Exchange:   ExchangeName,
		Timestamp:  time.Now(),
	}
}

// NewHTTPError builds the error for a non-2xx response, keeping status and body intact.
// When message is empty the status text is used.
func NewHTTPError(statusCode int, body []byte, message string) *ExchangeError {
	if message == "" {
		message = http.StatusText(statusCode)
	}
	e := NewExchangeError(errorTypeForStatus(statusCode), statusCode, message)
	e.Body = string(body)
	return e.WithCode(ErrCodeHTTP)
}

// NewValidationError wraps an argument check failure.
func NewValidationError(err error) *ExchangeError {
	return NewExchangeError(ErrorTypeValidation, 0, err.Error()).
		WithCode(ErrCodeInvalidParameter).
		WithCause(err)
}

// NewDecodeError wraps a JSON decoding failure of a successful response.
func NewDecodeError(statusCode int, body []byte, err error) *ExchangeError {
	e := NewExchangeError(ErrorTypeDecode, statusCode, err.Error())
	e.Body = string(body)
	return e.WithCode(ErrCodeDecode).WithCause(err)
}

func errorTypeForStatus(status int) ErrorType {
	switch {
	case status == http.StatusUnauthorized, status == http.StatusForbidden:
		return ErrorTypeAuthentication
	case status == http.StatusNotFound:
		return ErrorTypeNotFound
	case status == http.StatusTooManyRequests:
		return ErrorTypeRateLimit
	case status >= 500:
		return ErrorTypeServerError
	case status >= 400:
		return ErrorTypeBadRequest
	default:
		return ErrorTypeUnknown
	}
}

func asExchangeError(err error) (*ExchangeError, bool) {
	var e *ExchangeError
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// IsHTTPError returns true if the error came from a non-2xx response.
func IsHTTPError(err error) bool {
	e, ok := asExchangeError(err)
	return ok && e.Code == string(ErrCodeHTTP)
}

// IsValidationError returns true if arguments were rejected before sending.
func IsValidationError(err error) bool {
	e, ok := asExchangeError(err)
	return ok && e.Type == ErrorTypeValidation
}

// IsDecodeError returns true if a successful response could not be decoded.
func IsDecodeError(err error) bool {
	e, ok := asExchangeError(err)
	return ok && e.Type == ErrorTypeDecode
}

// IsNetworkError returns true if the error is a network connectivity issue.
func IsNetworkError(err error) bool {
	e, ok := asExchangeError(err)
	return ok && e.Type == ErrorTypeNetwork
}

// IsTimeoutError returns true if the error is a timeout.
func IsTimeoutError(err error) bool {
	e, ok := asExchangeError(err)
	return ok && e.Type == ErrorTypeTimeout
}

// IsRateLimitError returns true if the error is a rate limit violation.
// Rate limit errors should be retried after a delay.
func IsRateLimitError(err error) bool {
	e, ok := asExchangeError(err)
	return ok && e.Type == ErrorTypeRateLimit
}

// IsAuthenticationError returns true if the error is an authentication failure.
// Authentication errors require credential validation and are not retryable.
func IsAuthenticationError(err error) bool {
	e, ok := asExchangeError(err)
	return ok && e.Type == ErrorTypeAuthentication
}

// HTTPStatus returns the response status carried by err, or zero.
func HTTPStatus(err error) int {
	if e, ok := asExchangeError(err); ok {
		return e.StatusCode
	}
	return 0
}
