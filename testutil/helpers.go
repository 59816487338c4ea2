package testutil

import (
	"context"
	"testing"
	"time"
)

// THelper binds test components to the lifetime of a testing.TB.
type THelper struct {
	t   testing.TB
	ctx context.Context
}

// T returns a helper for t.
//
//	func TestTodos(t *testing.T) {
//	    srv := todoserver.New()
//	    testutil.T(t).Setup(srv)
//	    // srv is stopped when the test ends
//	}
func T(t testing.TB) *THelper {
	return &THelper{t: t, ctx: context.Background()}
}

// WithContext uses ctx for lifecycle calls.
func (h *THelper) WithContext(ctx context.Context) *THelper {
	h.ctx = ctx
	return h
}

// WithTimeout bounds lifecycle calls by d. The context is released when the
// test ends.
func (h *THelper) WithTimeout(d time.Duration) *THelper {
	ctx, cancel := context.WithTimeout(h.ctx, d)
	h.t.Cleanup(cancel)
	h.ctx = ctx
	return h
}

// Setup starts components in order and stops them in reverse order when the
// test ends. A start failure fails the test immediately.
func (h *THelper) Setup(components ...TestComponent) {
	h.t.Helper()
	for _, c := range components {
		if err := c.Start(h.ctx); err != nil {
			h.t.Fatalf("start %s: %v", c.Name(), err)
		}
		h.t.Cleanup(func() {
			// ctx may have expired by cleanup time.
			if err := c.Stop(context.WithoutCancel(h.ctx)); err != nil {
				h.t.Errorf("stop %s: %v", c.Name(), err)
			}
		})
	}
}

// Reset returns components to their initial state between subtests.
func (h *THelper) Reset(components ...TestComponent) {
	h.t.Helper()
	for _, c := range components {
		if err := c.Reset(h.ctx); err != nil {
			h.t.Fatalf("reset %s: %v", c.Name(), err)
		}
	}
}
