package testutil

import "context"

// TestComponent is a fixture with a start/stop lifecycle that can be reset
// between test cases.
type TestComponent interface {
	// Name identifies the component in failure messages.
	Name() string

	// Start brings the component up.
	Start(ctx context.Context) error

	// Stop releases everything Start acquired.
	Stop(ctx context.Context) error

	// Reset restores the component to its initial state.
	Reset(ctx context.Context) error
}
