package errors

// ErrorCode represents a machine-readable error code.
type ErrorCode string

// Configuration errors (surface synchronously)
const (
	// ErrCodeMissingMethod indicates a descriptor was built without a method.
	ErrCodeMissingMethod ErrorCode = "MISSING_METHOD"
	// ErrCodeMissingURI indicates a descriptor was built without a URI.
	ErrCodeMissingURI ErrorCode = "MISSING_URI"
	// ErrCodeInvalidURI indicates the URI could not be parsed or is not absolute.
	ErrCodeInvalidURI ErrorCode = "INVALID_URI"
	// ErrCodeInvalidConfig indicates a client or transport config failed validation.
	ErrCodeInvalidConfig ErrorCode = "INVALID_CONFIG"
)

// Transport errors (retryable ones are marked below)
const (
	// ErrCodeConnectionFailed indicates the connection could not be established or was lost.
	ErrCodeConnectionFailed ErrorCode = "CONNECTION_FAILED"
	// ErrCodeTimeout indicates the request deadline elapsed.
	ErrCodeTimeout ErrorCode = "TIMEOUT"
	// ErrCodeCanceled indicates the caller cancelled the request context.
	ErrCodeCanceled ErrorCode = "CANCELED"
	// ErrCodeCircuitOpen indicates the transport's circuit breaker rejected the call.
	ErrCodeCircuitOpen ErrorCode = "CIRCUIT_OPEN"
	// ErrCodeRateLimited indicates the request was throttled (locally or by a 429).
	ErrCodeRateLimited ErrorCode = "RATE_LIMITED"
	// ErrCodeTooManyInFlight indicates the transport's in-flight limit rejected the call.
	ErrCodeTooManyInFlight ErrorCode = "TOO_MANY_IN_FLIGHT"
	// ErrCodeUnauthorized indicates a 401 or 403 response under strict status handling.
	ErrCodeUnauthorized ErrorCode = "UNAUTHORIZED"
	// ErrCodeNotFound indicates a 404 response under strict status handling.
	ErrCodeNotFound ErrorCode = "NOT_FOUND"
	// ErrCodeBadRequest indicates any other 4xx response under strict status handling.
	ErrCodeBadRequest ErrorCode = "BAD_REQUEST"
	// ErrCodeServerError indicates a 5xx response under strict status handling.
	ErrCodeServerError ErrorCode = "SERVER_ERROR"
)

// Deserialization errors
const (
	// ErrCodeShapeMismatch indicates the body is a list where an object was requested, or vice versa.
	ErrCodeShapeMismatch ErrorCode = "SHAPE_MISMATCH"
	// ErrCodeMalformedBody indicates the parser rejected the body.
	ErrCodeMalformedBody ErrorCode = "MALFORMED_BODY"
	// ErrCodeSerializationFailed indicates a request body could not be serialized.
	ErrCodeSerializationFailed ErrorCode = "SERIALIZATION_FAILED"
)

// State errors
const (
	// ErrCodeNotDispatched indicates a response that was never produced by a send.
	ErrCodeNotDispatched ErrorCode = "NOT_DISPATCHED"
	// ErrCodeNotCompleted indicates a response whose send is still in flight.
	ErrCodeNotCompleted ErrorCode = "NOT_COMPLETED"
	// ErrCodeRequestFailed indicates a response whose send failed.
	ErrCodeRequestFailed ErrorCode = "REQUEST_FAILED"
)

var codeKinds = map[ErrorCode]Kind{
	ErrCodeMissingMethod:       KindConfiguration,
	ErrCodeMissingURI:          KindConfiguration,
	ErrCodeInvalidURI:          KindConfiguration,
	ErrCodeInvalidConfig:       KindConfiguration,
	ErrCodeConnectionFailed:    KindTransport,
	ErrCodeTimeout:             KindTransport,
	ErrCodeCanceled:            KindTransport,
	ErrCodeCircuitOpen:         KindTransport,
	ErrCodeRateLimited:         KindTransport,
	ErrCodeTooManyInFlight:     KindTransport,
	ErrCodeUnauthorized:        KindTransport,
	ErrCodeNotFound:            KindTransport,
	ErrCodeBadRequest:          KindTransport,
	ErrCodeServerError:         KindTransport,
	ErrCodeShapeMismatch:       KindDeserialization,
	ErrCodeMalformedBody:       KindDeserialization,
	ErrCodeSerializationFailed: KindDeserialization,
	ErrCodeNotDispatched:       KindState,
	ErrCodeNotCompleted:        KindState,
	ErrCodeRequestFailed:       KindState,
}

var retryableCodes = map[ErrorCode]bool{
	ErrCodeConnectionFailed: true,
	ErrCodeTimeout:          true,
	ErrCodeCircuitOpen:      true,
	ErrCodeRateLimited:      true,
	ErrCodeTooManyInFlight:  true,
	ErrCodeServerError:      true,
	ErrCodeCanceled:         false,
}

// Kind returns the taxonomy bucket the code belongs to.
func (c ErrorCode) Kind() Kind {
	if k, ok := codeKinds[c]; ok {
		return k
	}
	return KindUnknown
}

// IsRetryableCode returns true if the error code indicates a retryable error.
func IsRetryableCode(code ErrorCode) bool {
	return retryableCodes[code]
}

// Kind groups error codes into the four failure families.
type Kind int

const (
	// KindUnknown is returned for codes outside the taxonomy.
	KindUnknown Kind = iota
	// KindConfiguration covers incomplete descriptors and invalid configs.
	KindConfiguration
	// KindTransport covers network, timeout and protocol failures.
	KindTransport
	// KindDeserialization covers bodies that do not match the requested shape.
	KindDeserialization
	// KindState covers interpretation of responses without a body.
	KindState
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindConfiguration:
		return "configuration"
	case KindTransport:
		return "transport"
	case KindDeserialization:
		return "deserialization"
	case KindState:
		return "state"
	default:
		return "unknown"
	}
}
