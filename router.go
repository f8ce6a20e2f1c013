package routewire

import (
	"github.com/mveldt/routewire/lifecycle"
	"github.com/mveldt/routewire/route"
)

// Router is the full collaborator contract the bridge consumes. The bridge
// never constructs, owns, or reimplements a router; it holds a non-owning
// reference for its lifetime and translates between the router's callback
// model and the driver's streams.
//
// Query methods are read-only and forwarded verbatim by the driver. Command
// methods are reached exclusively through the command sink; their effects
// come back as lifecycle notifications. Hook registration is inherited from
// lifecycle.Router.
type Router interface {
	lifecycle.Router

	// State returns the current route state, or nil before the first
	// successful transition.
	State() *route.State

	// BuildURL builds a full URL for a route.
	BuildURL(name route.Name, params route.Params) (string, error)

	// BuildPath builds a path for a route.
	BuildPath(name route.Name, params route.Params) (string, error)

	// MatchURL matches a full URL against the route table.
	MatchURL(rawURL string) (*route.State, error)

	// MatchPath matches a path against the route table.
	MatchPath(path string) (*route.State, error)

	// AreStatesDescendants reports whether child is inside parent's subtree.
	AreStatesDescendants(parent, child *route.State) bool

	// IsActive reports whether the named route is currently active.
	IsActive(name route.Name, params route.Params) bool

	// Stop stops the router.
	Stop()

	// Cancel cancels the in-flight transition, if any.
	Cancel()

	// Navigate begins a transition to the named route.
	Navigate(name route.Name, params route.Params) error

	// CanActivate toggles the activation guard for a route node.
	CanActivate(name route.Name, allowed bool)

	// CanDeactivate toggles the deactivation guard for a route node.
	CanDeactivate(name route.Name, allowed bool)
}
