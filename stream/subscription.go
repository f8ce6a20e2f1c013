package stream

import (
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
)

// Subscription represents an active subscription to a Stream or Value.
// Cancelling is idempotent and permanent.
type Subscription struct {
	id        string
	cancelled atomic.Bool

	mu       sync.Mutex
	onCancel []func()
}

// NewSubscription creates a standalone subscription for sources that manage
// their own delivery. The caller checks IsActive before delivering and uses
// OnCancel for teardown.
func NewSubscription() *Subscription {
	return &Subscription{id: uuid.NewString()}
}

// ID returns the unique subscription identifier.
func (s *Subscription) ID() string {
	return s.id
}

// IsActive returns true if the subscription can still receive values.
func (s *Subscription) IsActive() bool {
	return !s.cancelled.Load()
}

// OnCancel registers fn to run when the subscription is cancelled.
// If the subscription is already cancelled, fn runs immediately.
// Teardown such as deregistering a router hook belongs here.
func (s *Subscription) OnCancel(fn func()) {
	if fn == nil {
		return
	}
	s.mu.Lock()
	if !s.cancelled.Load() {
		s.onCancel = append(s.onCancel, fn)
		s.mu.Unlock()
		return
	}
	s.mu.Unlock()
	fn()
}

// Cancel permanently cancels the subscription and runs any registered
// teardown functions, most recently added first.
func (s *Subscription) Cancel() {
	if s.cancelled.Swap(true) {
		return
	}
	s.mu.Lock()
	fns := s.onCancel
	s.onCancel = nil
	s.mu.Unlock()

	for i := len(fns) - 1; i >= 0; i-- {
		fns[i]()
	}
}

// SubscribeConfig contains configuration for a subscription.
type SubscribeConfig[T any] struct {
	// Filter is an optional predicate. When set, values are only delivered
	// if Filter returns true.
	Filter func(T) bool

	// Once auto-cancels the subscription after the first delivered value.
	Once bool

	// Replay controls whether Value subscriptions receive the cached value
	// on subscription. It has no effect on plain streams.
	Replay bool
}

// SubscribeOption configures a subscription.
type SubscribeOption[T any] func(*SubscribeConfig[T])

// WithFilter sets a delivery predicate.
func WithFilter[T any](f func(T) bool) SubscribeOption[T] {
	return func(c *SubscribeConfig[T]) {
		c.Filter = f
	}
}

// WithOnce auto-cancels the subscription after the first delivered value.
func WithOnce[T any]() SubscribeOption[T] {
	return func(c *SubscribeConfig[T]) {
		c.Once = true
	}
}

// WithoutReplay suppresses the initial cached value on Value subscriptions.
func WithoutReplay[T any]() SubscribeOption[T] {
	return func(c *SubscribeConfig[T]) {
		c.Replay = false
	}
}
