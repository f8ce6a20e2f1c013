package stream

import (
	"sync"

	"github.com/google/uuid"
)

// Handler receives values from a stream.
type Handler[T any] func(T)

// Stream is a synchronous multicast event stream.
// The zero value is not usable; use New.
type Stream[T any] struct {
	mu     sync.RWMutex
	subs   []*entry[T]
	byID   map[string]*entry[T]
	closed bool
}

// entry pairs a subscription with its handler and config.
type entry[T any] struct {
	sub     *Subscription
	handler Handler[T]
	config  SubscribeConfig[T]
}

// New creates an empty stream.
func New[T any]() *Stream[T] {
	return &Stream[T]{
		byID: make(map[string]*entry[T]),
	}
}

// Subscribe registers a handler for future values.
// The handler runs synchronously on the emitter's call stack, in
// subscription order relative to other handlers.
func (s *Stream[T]) Subscribe(fn Handler[T], opts ...SubscribeOption[T]) (*Subscription, error) {
	if fn == nil {
		return nil, ErrNilHandler
	}

	config := SubscribeConfig[T]{Replay: true}
	for _, opt := range opts {
		opt(&config)
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil, ErrClosed
	}

	e := &entry[T]{
		sub:     &Subscription{id: uuid.NewString()},
		handler: fn,
		config:  config,
	}
	s.subs = append(s.subs, e)
	s.byID[e.sub.id] = e
	s.mu.Unlock()

	e.sub.OnCancel(func() { s.remove(e.sub.id) })
	return e.sub, nil
}

// Emit delivers a value to every active subscriber, in subscription order.
// Delivery is synchronous; handlers may subscribe or cancel re-entrantly,
// which takes effect from the next emission.
func (s *Stream[T]) Emit(v T) {
	s.mu.RLock()
	if s.closed {
		s.mu.RUnlock()
		return
	}
	// Snapshot so handlers can mutate the subscriber list re-entrantly.
	snapshot := make([]*entry[T], len(s.subs))
	copy(snapshot, s.subs)
	s.mu.RUnlock()

	for _, e := range snapshot {
		e.deliver(v)
	}
}

// deliver runs the entry's handler if the subscription and filter allow it.
func (e *entry[T]) deliver(v T) {
	if !e.sub.IsActive() {
		return
	}
	if e.config.Filter != nil && !e.config.Filter(v) {
		return
	}
	if e.config.Once {
		e.sub.Cancel()
	}
	e.handler(v)
}

// Close cancels every subscription and rejects future ones.
func (s *Stream[T]) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	subs := s.subs
	s.subs = nil
	s.byID = make(map[string]*entry[T])
	s.mu.Unlock()

	for _, e := range subs {
		e.sub.Cancel()
	}
}

// Len returns the number of active subscriptions.
func (s *Stream[T]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := 0
	for _, e := range s.subs {
		if e.sub.IsActive() {
			n++
		}
	}
	return n
}

// remove drops a subscription by ID.
func (s *Stream[T]) remove(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byID[id]; !ok {
		return
	}
	delete(s.byID, id)
	for i, e := range s.subs {
		if e.sub.id == id {
			s.subs = append(s.subs[:i], s.subs[i+1:]...)
			break
		}
	}
}
