package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
)

// AppError is the unified error type returned by the client packages.
type AppError struct {
	// Code is a machine-readable error code.
	Code ErrorCode `json:"code"`
	// Message is a human-readable error message.
	Message string `json:"message"`
	// Retryable indicates if the operation can be retried by the caller.
	Retryable bool `json:"retryable"`
	// StatusCode is the HTTP status that produced the error, 0 when none was received.
	StatusCode int `json:"status_code,omitempty"`
	// Details contains additional context for the error.
	Details map[string]any `json:"details,omitempty"`
	// Cause is the underlying error that caused this error.
	Cause error `json:"-"`
}

// Error returns the string representation of the error.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause of the error.
func (e *AppError) Unwrap() error { return e.Cause }

// Kind returns the taxonomy bucket of the error code.
func (e *AppError) Kind() Kind { return e.Code.Kind() }

// WithCause sets the underlying cause of the error and returns the receiver.
func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

// WithDetails merges the provided details into the error and returns the receiver.
func (e *AppError) WithDetails(details map[string]any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	for k, v := range details {
		e.Details[k] = v
	}
	return e
}

// WithDetail sets a single detail key-value pair and returns the receiver.
func (e *AppError) WithDetail(key string, value any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// New creates a new AppError with automatic retryable detection.
func New(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:      code,
		Message:   message,
		Retryable: IsRetryableCode(code),
	}
}

// --- Configuration ---

// MissingMethod reports a descriptor built without a method.
func MissingMethod() *AppError {
	return New(ErrCodeMissingMethod, "request method is required")
}

// MissingURI reports a descriptor built without a URI.
func MissingURI() *AppError {
	return New(ErrCodeMissingURI, "request uri is required")
}

// InvalidURI reports a URI that could not be parsed or is not absolute.
func InvalidURI(raw string, cause error) *AppError {
	return New(ErrCodeInvalidURI, fmt.Sprintf("invalid request uri %q", raw)).
		WithDetail("uri", raw).
		WithCause(cause)
}

// InvalidConfig reports a configuration that failed validation.
func InvalidConfig(message string) *AppError {
	return New(ErrCodeInvalidConfig, message)
}

// --- Transport ---

// ConnectionFailed wraps a connection-level transport failure.
func ConnectionFailed(cause error) *AppError {
	return New(ErrCodeConnectionFailed, "connection failed").WithCause(cause)
}

// Timeout wraps a transport failure caused by an elapsed deadline.
func Timeout(cause error) *AppError {
	return New(ErrCodeTimeout, "request timed out").WithCause(cause)
}

// Canceled wraps a transport failure caused by caller cancellation.
func Canceled(cause error) *AppError {
	return New(ErrCodeCanceled, "request canceled").WithCause(cause)
}

// CircuitOpen wraps a call rejected by an open circuit breaker.
func CircuitOpen(cause error) *AppError {
	return New(ErrCodeCircuitOpen, "circuit breaker is open").WithCause(cause)
}

// RateLimited wraps a call rejected or throttled by a rate limiter.
func RateLimited(cause error) *AppError {
	return New(ErrCodeRateLimited, "rate limit exceeded").WithCause(cause)
}

// TooManyInFlight wraps a call rejected by an in-flight request limit.
func TooManyInFlight(cause error) *AppError {
	return New(ErrCodeTooManyInFlight, "too many requests in flight").WithCause(cause)
}

// FromStatus classifies an HTTP status into a transport error.
// Returns nil for 1xx, 2xx and 3xx statuses.
func FromStatus(statusCode int, body []byte) *AppError {
	var code ErrorCode
	switch {
	case statusCode < http.StatusBadRequest:
		return nil
	case statusCode == http.StatusUnauthorized || statusCode == http.StatusForbidden:
		code = ErrCodeUnauthorized
	case statusCode == http.StatusNotFound:
		code = ErrCodeNotFound
	case statusCode == http.StatusTooManyRequests:
		code = ErrCodeRateLimited
	case statusCode < http.StatusInternalServerError:
		code = ErrCodeBadRequest
	default:
		code = ErrCodeServerError
	}
	e := New(code, fmt.Sprintf("HTTP %d", statusCode))
	e.StatusCode = statusCode
	if len(body) > 0 {
		e.WithDetail("body", string(body))
	}
	return e
}

// --- Deserialization ---

// ShapeMismatch reports a body whose shape differs from the requested one.
func ShapeMismatch(want, got string) *AppError {
	return New(ErrCodeShapeMismatch, fmt.Sprintf("expected %s body, got %s", want, got)).
		WithDetails(map[string]any{"want": want, "got": got})
}

// MalformedBody wraps a parser failure.
func MalformedBody(cause error) *AppError {
	return New(ErrCodeMalformedBody, "body could not be decoded").WithCause(cause)
}

// SerializationFailed wraps a failure to serialize a request body.
func SerializationFailed(cause error) *AppError {
	return New(ErrCodeSerializationFailed, "body could not be encoded").WithCause(cause)
}

// --- State ---

// NotDispatched reports interpretation of a response that no send produced.
func NotDispatched() *AppError {
	return New(ErrCodeNotDispatched, "response has not been dispatched")
}

// NotCompleted reports interpretation of a response whose send is still in flight.
func NotCompleted() *AppError {
	return New(ErrCodeNotCompleted, "response has not completed")
}

// RequestFailed reports interpretation of a response whose send failed.
func RequestFailed(cause error) *AppError {
	return New(ErrCodeRequestFailed, "response is from a failed request").WithCause(cause)
}

// --- Inspection ---

// IsAppError checks if an error is an AppError.
func IsAppError(err error) bool {
	var appErr *AppError
	return stderrors.As(err, &appErr)
}

// AsAppError converts an error to an AppError if possible.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// KindOf returns the kind of the outermost AppError in the chain.
func KindOf(err error) Kind {
	if appErr, ok := AsAppError(err); ok {
		return appErr.Kind()
	}
	return KindUnknown
}

// IsConfiguration reports whether err is a configuration error.
func IsConfiguration(err error) bool { return KindOf(err) == KindConfiguration }

// IsTransport reports whether err is a transport error.
func IsTransport(err error) bool { return KindOf(err) == KindTransport }

// IsDeserialization reports whether err is a deserialization error.
func IsDeserialization(err error) bool { return KindOf(err) == KindDeserialization }

// IsState reports whether err is a state error.
func IsState(err error) bool { return KindOf(err) == KindState }

// HasCode reports whether any AppError in the chain carries code.
func HasCode(err error, code ErrorCode) bool {
	for err != nil {
		var appErr *AppError
		if !stderrors.As(err, &appErr) {
			return false
		}
		if appErr.Code == code {
			return true
		}
		err = appErr.Cause
	}
	return false
}

// IsRetryable checks if the outermost AppError in the chain is retryable.
func IsRetryable(err error) bool {
	appErr, ok := AsAppError(err)
	return ok && appErr.Retryable
}
