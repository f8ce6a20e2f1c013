package lifecycle

import "github.com/mveldt/routewire/route"

// Hook is the callback object the bridge registers with a router. All
// callbacks are optional; the router invokes whichever are set,
// synchronously, on its own call stack.
//
// Name must be unique among the hooks registered with a router. Routers may
// reject duplicates, which surfaces as a registration error.
type Hook struct {
	// Name identifies the hook registration.
	Name string

	// OnStart is invoked when the router starts.
	OnStart func()

	// OnStop is invoked when the router stops.
	OnStop func()

	// OnTransitionStart is invoked when a transition attempt begins.
	OnTransitionStart func(to, from *route.State)

	// OnTransitionSuccess is invoked when a transition attempt commits.
	OnTransitionSuccess func(to, from *route.State)

	// OnTransitionError is invoked when a transition attempt fails.
	OnTransitionError func(to, from *route.State, err error)

	// OnTransitionCancel is invoked when a transition attempt is cancelled.
	OnTransitionCancel func(to, from *route.State)
}

// Router is the minimal router view an event source needs: lifecycle state
// and hook registration. RegisterHook returns the deregistration function
// that must be invoked to stop delivery; cancelling a source subscription
// calls it.
type Router interface {
	// Started reports whether the router is running.
	Started() bool

	// Start starts the router.
	Start() error

	// RegisterHook registers a hook and returns its deregistration function.
	RegisterHook(h Hook) (func(), error)
}
