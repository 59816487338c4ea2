package errors

import (
	"context"
	stderrors "errors"
	"fmt"
	"net/http"
	"strings"
	"testing"
)

func TestAppError_New_Success(t *testing.T) {
	err := New(ErrCodeNotFound, "not found")
	if err.Code != ErrCodeNotFound {
		t.Errorf("expected code %s, got %s", ErrCodeNotFound, err.Code)
	}
	if err.Message != "not found" {
		t.Errorf("expected message 'not found', got %q", err.Message)
	}
	if err.Retryable {
		t.Error("NOT_FOUND should not be retryable")
	}
}

func TestAppError_New_Retryable(t *testing.T) {
	err := New(ErrCodeTimeout, "timed out")
	if !err.Retryable {
		t.Error("TIMEOUT should be retryable")
	}
}

func TestAppError_Error(t *testing.T) {
	e := MissingMethod()
	if got, want := e.Error(), "MISSING_METHOD: request method is required"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}

	wrapped := ConnectionFailed(fmt.Errorf("dial tcp: refused"))
	if !strings.Contains(wrapped.Error(), "cause: dial tcp: refused") {
		t.Errorf("expected cause in message, got %q", wrapped.Error())
	}
}

func TestAppError_Unwrap(t *testing.T) {
	inner := context.DeadlineExceeded
	e := Timeout(inner)
	if !stderrors.Is(e, context.DeadlineExceeded) {
		t.Error("expected errors.Is to find the cause")
	}
}

func TestErrorCode_Kind(t *testing.T) {
	tests := []struct {
		code ErrorCode
		want Kind
	}{
		{ErrCodeMissingMethod, KindConfiguration},
		{ErrCodeMissingURI, KindConfiguration},
		{ErrCodeInvalidURI, KindConfiguration},
		{ErrCodeInvalidConfig, KindConfiguration},
		{ErrCodeConnectionFailed, KindTransport},
		{ErrCodeTimeout, KindTransport},
		{ErrCodeServerError, KindTransport},
		{ErrCodeShapeMismatch, KindDeserialization},
		{ErrCodeMalformedBody, KindDeserialization},
		{ErrCodeNotDispatched, KindState},
		{ErrCodeNotCompleted, KindState},
		{ErrCodeRequestFailed, KindState},
		{ErrorCode("SOMETHING_ELSE"), KindUnknown},
	}
	for _, tt := range tests {
		if got := tt.code.Kind(); got != tt.want {
			t.Errorf("%s.Kind() = %s, want %s", tt.code, got, tt.want)
		}
	}
}

func TestKind_String(t *testing.T) {
	tests := []struct {
		kind Kind
		want string
	}{
		{KindConfiguration, "configuration"},
		{KindTransport, "transport"},
		{KindDeserialization, "deserialization"},
		{KindState, "state"},
		{Kind(42), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("Kind(%d).String() = %q, want %q", tt.kind, got, tt.want)
		}
	}
}

func TestFromStatus(t *testing.T) {
	tests := []struct {
		status  int
		wantNil bool
		code    ErrorCode
		retry   bool
	}{
		{http.StatusOK, true, "", false},
		{http.StatusNoContent, true, "", false},
		{http.StatusFound, true, "", false},
		{http.StatusUnauthorized, false, ErrCodeUnauthorized, false},
		{http.StatusForbidden, false, ErrCodeUnauthorized, false},
		{http.StatusNotFound, false, ErrCodeNotFound, false},
		{http.StatusTooManyRequests, false, ErrCodeRateLimited, true},
		{http.StatusUnprocessableEntity, false, ErrCodeBadRequest, false},
		{http.StatusBadGateway, false, ErrCodeServerError, true},
	}
	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			e := FromStatus(tt.status, []byte("oops"))
			if tt.wantNil {
				if e != nil {
					t.Fatalf("expected nil, got %v", e)
				}
				return
			}
			if e == nil {
				t.Fatal("expected error")
			}
			if e.Code != tt.code {
				t.Errorf("expected %s, got %s", tt.code, e.Code)
			}
			if e.Retryable != tt.retry {
				t.Errorf("expected retryable=%v, got %v", tt.retry, e.Retryable)
			}
			if e.StatusCode != tt.status {
				t.Errorf("expected status %d, got %d", tt.status, e.StatusCode)
			}
			if e.Details["body"] != "oops" {
				t.Errorf("expected body detail, got %v", e.Details["body"])
			}
			if !IsTransport(e) {
				t.Error("status errors must be transport errors")
			}
		})
	}
}

func TestKindHelpers(t *testing.T) {
	if !IsConfiguration(MissingURI()) {
		t.Error("MissingURI should be a configuration error")
	}
	if !IsTransport(fmt.Errorf("send: %w", Timeout(context.DeadlineExceeded))) {
		t.Error("wrapped Timeout should be a transport error")
	}
	if !IsDeserialization(ShapeMismatch("object", "list")) {
		t.Error("ShapeMismatch should be a deserialization error")
	}
	if !IsState(RequestFailed(Timeout(nil))) {
		t.Error("RequestFailed should be a state error")
	}
	if IsState(stderrors.New("plain")) {
		t.Error("plain errors have no kind")
	}
}

func TestHasCode_WalksCauses(t *testing.T) {
	err := RequestFailed(Timeout(context.DeadlineExceeded))
	if !HasCode(err, ErrCodeRequestFailed) {
		t.Error("expected outer code")
	}
	if !HasCode(err, ErrCodeTimeout) {
		t.Error("expected inner code")
	}
	if HasCode(err, ErrCodeNotFound) {
		t.Error("did not expect NOT_FOUND")
	}
}

func TestAppError_WithDetails(t *testing.T) {
	e := InvalidConfig("bad").WithDetails(map[string]any{"a": 1}).WithDetail("b", 2)
	if e.Details["a"] != 1 || e.Details["b"] != 2 {
		t.Errorf("unexpected details: %v", e.Details)
	}
}

func TestAsAppError(t *testing.T) {
	wrapped := fmt.Errorf("ctx: %w", NotDispatched())
	appErr, ok := AsAppError(wrapped)
	if !ok {
		t.Fatal("expected AppError")
	}
	if appErr.Code != ErrCodeNotDispatched {
		t.Errorf("expected NOT_DISPATCHED, got %s", appErr.Code)
	}
	if _, ok := AsAppError(stderrors.New("plain")); ok {
		t.Error("plain error should not convert")
	}
	if !IsRetryable(ConnectionFailed(nil)) {
		t.Error("connection failures are retryable")
	}
}
