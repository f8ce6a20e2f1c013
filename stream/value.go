package stream

import "sync"

// Value is a last-value cache with broadcast: Set stores the value and
// delivers it to subscribers, and new subscribers immediately receive the
// cached value (replay-latest semantics). Use it for "what is the current
// X" questions that a plain event stream cannot answer for late joiners.
type Value[T any] struct {
	mu      sync.RWMutex
	current T
	has     bool

	stream *Stream[T]
}

// NewValue creates an unseeded Value. Subscribers receive nothing until the
// first Set.
func NewValue[T any]() *Value[T] {
	return &Value[T]{stream: New[T]()}
}

// NewValueOf creates a Value seeded with an initial value.
func NewValueOf[T any](v T) *Value[T] {
	val := NewValue[T]()
	val.current = v
	val.has = true
	return val
}

// Get returns the cached value and whether one has been set.
func (v *Value[T]) Get() (T, bool) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.current, v.has
}

// Set caches the value and broadcasts it to subscribers.
func (v *Value[T]) Set(val T) {
	v.mu.Lock()
	v.current = val
	v.has = true
	v.mu.Unlock()

	v.stream.Emit(val)
}

// Subscribe registers a handler. Unless WithoutReplay is given, the cached
// value (when one exists and passes the filter) is delivered synchronously
// before Subscribe returns; subsequent Sets follow in order.
func (v *Value[T]) Subscribe(fn Handler[T], opts ...SubscribeOption[T]) (*Subscription, error) {
	if fn == nil {
		return nil, ErrNilHandler
	}

	config := SubscribeConfig[T]{Replay: true}
	for _, opt := range opts {
		opt(&config)
	}

	v.mu.RLock()
	current, has := v.current, v.has
	v.mu.RUnlock()

	sub, err := v.stream.Subscribe(fn, opts...)
	if err != nil {
		return nil, err
	}

	if config.Replay && has {
		if config.Filter == nil || config.Filter(current) {
			if config.Once {
				sub.Cancel()
			}
			fn(current)
		}
	}
	return sub, nil
}

// Close cancels every subscription and rejects future ones.
// The cached value remains readable through Get.
func (v *Value[T]) Close() {
	v.stream.Close()
}

// Len returns the number of active subscriptions.
func (v *Value[T]) Len() int {
	return v.stream.Len()
}
