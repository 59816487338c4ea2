package sylph

import (
	"context"

	"github.com/kbukum/sylph/errors"
	"github.com/kbukum/sylph/future"
	"github.com/kbukum/sylph/parser"
	"github.com/kbukum/sylph/request"
)

// State is the lifecycle position of a response.
type State int

const (
	// StateBuilt is a response no send produced.
	StateBuilt State = iota
	// StateDispatched is a response whose exchange is in flight.
	StateDispatched
	// StateCompleted is a response with a status and body.
	StateCompleted
	// StateFailed is a response whose exchange failed.
	StateFailed
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateDispatched:
		return "dispatched"
	case StateCompleted:
		return "completed"
	case StateFailed:
		return "failed"
	default:
		return "built"
	}
}

// Response wraps a raw exchange result and interprets its body as T on
// demand. The zero value is a Built response. A Response never changes after
// its exchange completes, so it may be shared and interpreted repeatedly.
type Response[T any] struct {
	raw    *future.Future[*RawResponse]
	parser parser.Parser
}

// NewResponse wraps an already completed raw response. It is the entry
// point for interpreting canned bodies without a transport.
func NewResponse[T any](raw *RawResponse, p parser.Parser) *Response[T] {
	if p == nil {
		p = parser.Default()
	}
	return &Response[T]{raw: future.Resolved(raw), parser: p}
}

// State returns the current lifecycle state.
func (r *Response[T]) State() State {
	if r == nil || r.raw == nil {
		return StateBuilt
	}
	_, err, ok := r.raw.Poll()
	switch {
	case !ok:
		return StateDispatched
	case err != nil:
		return StateFailed
	default:
		return StateCompleted
	}
}

// Done is closed when the exchange completes. It is nil for Built responses.
func (r *Response[T]) Done() <-chan struct{} {
	if r == nil || r.raw == nil {
		return nil
	}
	return r.raw.Done()
}

// Await waits for the exchange and returns its transport error, if any.
// ctx bounds the wait only.
func (r *Response[T]) Await(ctx context.Context) error {
	if r == nil || r.raw == nil {
		return errors.NotDispatched()
	}
	_, err := r.raw.Await(ctx)
	return err
}

// Err returns the transport error of a Failed response, nil otherwise.
func (r *Response[T]) Err() error {
	if r == nil || r.raw == nil {
		return nil
	}
	_, err, _ := r.raw.Poll()
	return err
}

// completed returns the raw response, or the state error explaining why
// there is none.
func (r *Response[T]) completed() (*RawResponse, error) {
	if r == nil || r.raw == nil {
		return nil, errors.NotDispatched()
	}
	raw, err, ok := r.raw.Poll()
	switch {
	case !ok:
		return nil, errors.NotCompleted()
	case err != nil:
		return nil, errors.RequestFailed(err)
	case raw == nil:
		return &RawResponse{}, nil
	}
	return raw, nil
}

// Raw returns the raw response of a Completed response, nil otherwise.
func (r *Response[T]) Raw() *RawResponse {
	raw, err := r.completed()
	if err != nil {
		return nil
	}
	return raw
}

// StatusCode returns the HTTP status, 0 unless Completed.
func (r *Response[T]) StatusCode() int {
	if raw := r.Raw(); raw != nil {
		return raw.StatusCode
	}
	return 0
}

// IsSuccess reports a Completed response with a 2xx status.
func (r *Response[T]) IsSuccess() bool {
	raw := r.Raw()
	return raw != nil && raw.IsSuccess()
}

// Headers returns the response headers. Lookups through Get are
// case-insensitive.
func (r *Response[T]) Headers() request.Headers {
	if raw := r.Raw(); raw != nil {
		return request.NewHeaders(raw.Headers)
	}
	return request.Headers{}
}

// Header returns one response header, matching the name case-insensitively.
func (r *Response[T]) Header(name string) string {
	if raw := r.Raw(); raw != nil {
		return raw.Header(name)
	}
	return ""
}

// Body returns the raw body bytes of a Completed response.
func (r *Response[T]) Body() []byte {
	if raw := r.Raw(); raw != nil {
		return raw.Body
	}
	return nil
}

// AsObject decodes the body as exactly one T. A list body fails with a
// shape mismatch; an empty body yields the zero T. Responses that are not
// Completed fail with a state error.
func (r *Response[T]) AsObject() (T, error) {
	raw, err := r.completed()
	if err != nil {
		var zero T
		return zero, err
	}
	return parser.Decode[T](r.parser, raw.Body)
}

// AsList decodes the body as a list of T. A non-list body fails with a
// shape mismatch; an empty body yields an empty list. Responses that are not
// Completed fail with a state error.
func (r *Response[T]) AsList() ([]T, error) {
	raw, err := r.completed()
	if err != nil {
		return nil, err
	}
	return parser.DecodeList[T](r.parser, raw.Body)
}
