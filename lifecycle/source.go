package lifecycle

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/mveldt/routewire/route"
	"github.com/mveldt/routewire/stream"
)

// Sentinel errors for event sources.
var (
	// ErrNilRouter is returned when a source is created without a router.
	ErrNilRouter = errors.New("router cannot be nil")
)

// Source turns a router's imperative lifecycle callbacks into an ordered
// stream of Events.
//
// The source is cold and unicast: nothing is registered with the router
// until Subscribe, and every subscription registers its own uniquely named
// hook. Emissions happen synchronously on the router's call stack, one Event
// per notification, unbuffered and untransformed beyond tagging.
type Source struct {
	router    Router
	autostart bool
}

// NewSource creates a source over the given router. When autostart is true,
// each subscription asks a not-yet-started router to start.
func NewSource(r Router, autostart bool) *Source {
	return &Source{router: r, autostart: autostart}
}

// Subscribe registers a hook with the router and forwards every lifecycle
// notification to fn as an Event. The returned subscription's Cancel
// deregisters the hook, stopping delivery.
//
// If hook registration fails, or autostart is requested and the router fails
// to start, the subscription fails immediately and is not retried.
func (s *Source) Subscribe(fn func(Event)) (*stream.Subscription, error) {
	if s.router == nil {
		return nil, ErrNilRouter
	}
	if fn == nil {
		return nil, stream.ErrNilHandler
	}

	sub := stream.NewSubscription()
	emit := func(ev Event) {
		if sub.IsActive() {
			fn(ev)
		}
	}

	deregister, err := s.router.RegisterHook(Hook{
		Name: "routewire-" + uuid.NewString(),
		OnStart: func() {
			emit(Event{Kind: KindStart})
		},
		OnStop: func() {
			emit(Event{Kind: KindStop})
		},
		OnTransitionStart: func(to, from *route.State) {
			emit(Event{Kind: KindTransitionStart, To: to, From: from})
		},
		OnTransitionSuccess: func(to, from *route.State) {
			emit(Event{Kind: KindTransitionSuccess, To: to, From: from})
		},
		OnTransitionError: func(to, from *route.State, err error) {
			emit(Event{Kind: KindTransitionError, To: to, From: from, Err: err})
		},
		OnTransitionCancel: func(to, from *route.State) {
			emit(Event{Kind: KindTransitionCancel, To: to, From: from})
		},
	})
	if err != nil {
		return nil, fmt.Errorf("register hook: %w", err)
	}
	sub.OnCancel(deregister)

	if s.autostart && !s.router.Started() {
		if err := s.router.Start(); err != nil {
			sub.Cancel()
			return nil, fmt.Errorf("autostart: %w", err)
		}
	}

	return sub, nil
}
