package resilience

import (
	"context"
	stderrors "errors"
	"sync/atomic"
	"time"

	"golang.org/x/sync/semaphore"

	"github.com/kbukum/sylph/errors"
)

// ErrBulkheadFull is the cause carried by the TOO_MANY_IN_FLIGHT transport error.
var ErrBulkheadFull = stderrors.New("bulkhead is full")

// BulkheadConfig bounds the number of requests a transport has in flight.
type BulkheadConfig struct {
	// Name identifies this bulkhead in callbacks.
	Name string `yaml:"name" mapstructure:"name"`
	// MaxConcurrent is the maximum number of concurrent calls.
	MaxConcurrent int `yaml:"max_concurrent" mapstructure:"max_concurrent" validate:"gte=0"`
	// MaxWait is how long to wait for a slot. 0 means fail immediately.
	MaxWait time.Duration `yaml:"max_wait" mapstructure:"max_wait" validate:"gte=0"`
	// OnReject is called when a request is rejected.
	OnReject func(name string) `yaml:"-" mapstructure:"-"`
}

// Bulkhead caps concurrent calls with a weighted semaphore.
type Bulkhead struct {
	config BulkheadConfig
	slots  *semaphore.Weighted
	inUse  atomic.Int64
}

// NewBulkhead creates a bulkhead. MaxConcurrent defaults to 10.
func NewBulkhead(config BulkheadConfig) *Bulkhead {
	if config.MaxConcurrent <= 0 {
		config.MaxConcurrent = 10
	}
	return &Bulkhead{
		config: config,
		slots:  semaphore.NewWeighted(int64(config.MaxConcurrent)),
	}
}

// Execute runs fn in a slot. When no slot frees up within MaxWait it returns
// a TOO_MANY_IN_FLIGHT transport error; when ctx ends first it returns ctx.Err().
func (b *Bulkhead) Execute(ctx context.Context, fn func() error) error {
	if err := b.enter(ctx); err != nil {
		if b.config.OnReject != nil {
			b.config.OnReject(b.config.Name)
		}
		return err
	}
	defer b.leave()
	return fn()
}

// ExecuteWithResult is Execute for functions that produce a value.
func ExecuteWithResult[T any](ctx context.Context, b *Bulkhead, fn func() (T, error)) (T, error) {
	var result T
	err := b.Execute(ctx, func() error {
		var err error
		result, err = fn()
		return err
	})
	return result, err
}

func (b *Bulkhead) enter(ctx context.Context) error {
	if !b.slots.TryAcquire(1) {
		if err := b.wait(ctx); err != nil {
			return err
		}
	}
	b.inUse.Add(1)
	return nil
}

func (b *Bulkhead) wait(ctx context.Context) error {
	full := errors.TooManyInFlight(ErrBulkheadFull).WithDetail("bulkhead", b.config.Name)
	if b.config.MaxWait <= 0 {
		return full
	}
	waitCtx, cancel := context.WithTimeout(ctx, b.config.MaxWait)
	defer cancel()
	if err := b.slots.Acquire(waitCtx, 1); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return full
	}
	return nil
}

func (b *Bulkhead) leave() {
	b.inUse.Add(-1)
	b.slots.Release(1)
}

// InUse returns the number of slots currently in use.
func (b *Bulkhead) InUse() int {
	return int(b.inUse.Load())
}

// Available returns the number of free slots.
func (b *Bulkhead) Available() int {
	return b.config.MaxConcurrent - b.InUse()
}
