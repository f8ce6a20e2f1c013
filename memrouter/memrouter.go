// Package memrouter provides a small in-memory hierarchical router that
// satisfies the full routewire.Router contract.
//
// It exists as a collaborator for tests and demos: a route table, segment
// path matching, activation and deactivation guards, and synchronous
// lifecycle notifications. It is not safe for concurrent use; like the
// bridge it assumes a single logical writer.
package memrouter

import (
	"errors"
	"fmt"

	"github.com/mveldt/routewire/lifecycle"
	"github.com/mveldt/routewire/route"
)

// Sentinel errors reported by the router.
var (
	// ErrNotStarted is returned when navigating a stopped router.
	ErrNotStarted = errors.New("router is not started")

	// ErrAlreadyStarted is returned when starting a running router.
	ErrAlreadyStarted = errors.New("router is already started")

	// ErrRouteNotFound is returned for names or paths outside the table.
	ErrRouteNotFound = errors.New("route not found")

	// ErrSameState is returned when navigating to the current state.
	ErrSameState = errors.New("already in the requested state")

	// ErrDuplicateHook is returned when a hook name is already registered.
	ErrDuplicateHook = errors.New("duplicate hook name")

	// ErrNoPendingTransition is returned by Resolve without a held attempt.
	ErrNoPendingTransition = errors.New("no pending transition")
)

// GuardError reports a transition rejected by an activation or deactivation
// guard.
type GuardError struct {
	// Node is the route node whose guard rejected the transition.
	Node route.Name

	// Phase is "activate" or "deactivate".
	Phase string
}

// Error implements the error interface.
func (e *GuardError) Error() string {
	return fmt.Sprintf("cannot %s %s", e.Phase, e.Node)
}

// Route declares one entry of the route table: a node name and its full
// path template. Path segments starting with ':' capture parameters.
type Route struct {
	Name route.Name
	Path string
}

// attempt is one in-flight transition.
type attempt struct {
	to   *route.State
	from *route.State
}

// hookEntry pairs a registered hook with its name for ordered delivery.
type hookEntry struct {
	name string
	hook lifecycle.Hook
}

// Router is the in-memory router. Create it with New.
type Router struct {
	routes map[route.Name]Route
	order  []route.Name

	hooks   []hookEntry
	started bool
	state   *route.State

	denyActivate   map[route.Name]bool
	denyDeactivate map[route.Name]bool

	pending *attempt
	hold    bool

	baseURL       string
	defaultRoute  route.Name
	defaultParams route.Params
}

// RouterOption configures a Router.
type RouterOption func(*Router)

// WithBaseURL sets the prefix BuildURL puts before paths.
func WithBaseURL(base string) RouterOption {
	return func(r *Router) {
		r.baseURL = base
	}
}

// WithDefaultRoute makes Start transition to the named route.
func WithDefaultRoute(name route.Name, params route.Params) RouterOption {
	return func(r *Router) {
		r.defaultRoute = name
		r.defaultParams = params
	}
}

// New creates a router over the given route table.
func New(routes []Route, opts ...RouterOption) *Router {
	r := &Router{
		routes:         make(map[route.Name]Route, len(routes)),
		denyActivate:   make(map[route.Name]bool),
		denyDeactivate: make(map[route.Name]bool),
	}
	for _, rt := range routes {
		r.AddRoute(rt)
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// AddRoute adds or replaces one route table entry.
func (r *Router) AddRoute(rt Route) {
	if _, exists := r.routes[rt.Name]; !exists {
		r.order = append(r.order, rt.Name)
	}
	r.routes[rt.Name] = rt
}

// RegisterHook registers a lifecycle hook. Names must be unique; the
// returned function deregisters the hook.
func (r *Router) RegisterHook(h lifecycle.Hook) (func(), error) {
	if h.Name == "" {
		return nil, fmt.Errorf("%w: empty name", ErrDuplicateHook)
	}
	for _, e := range r.hooks {
		if e.name == h.Name {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateHook, h.Name)
		}
	}
	r.hooks = append(r.hooks, hookEntry{name: h.Name, hook: h})
	name := h.Name
	return func() {
		for i, e := range r.hooks {
			if e.name == name {
				r.hooks = append(r.hooks[:i], r.hooks[i+1:]...)
				return
			}
		}
	}, nil
}

// Started reports whether the router is running.
func (r *Router) Started() bool {
	return r.started
}

// Start starts the router, notifies hooks, and transitions to the default
// route when one is configured.
func (r *Router) Start() error {
	if r.started {
		return ErrAlreadyStarted
	}
	r.started = true
	for _, e := range r.hooks {
		if e.hook.OnStart != nil {
			e.hook.OnStart()
		}
	}
	if r.defaultRoute != "" {
		return r.Navigate(r.defaultRoute, r.defaultParams)
	}
	return nil
}

// Stop stops the router and notifies hooks. A held transition is cancelled
// first.
func (r *Router) Stop() {
	if !r.started {
		return
	}
	r.Cancel()
	r.started = false
	for _, e := range r.hooks {
		if e.hook.OnStop != nil {
			e.hook.OnStop()
		}
	}
}

// Hold makes subsequent transitions stay pending after their start
// notification until Resolve or Cancel. Tests use it to observe the
// in-flight window.
func (r *Router) Hold(v bool) {
	r.hold = v
}

// Navigate begins a transition to the named route. With no hold in place
// the attempt resolves synchronously: hooks see start followed by exactly
// one of success, error, or cancel.
func (r *Router) Navigate(name route.Name, params route.Params) error {
	if !r.started {
		return ErrNotStarted
	}
	rt, ok := r.routes[name]
	if !ok {
		return fmt.Errorf("%w: %s", ErrRouteNotFound, name)
	}

	path, err := buildPath(rt.Path, params)
	if err != nil {
		return err
	}
	to := &route.State{Name: name, Params: params.Clone(), Path: path}
	if r.state.Equal(to) {
		return ErrSameState
	}

	// A new navigation supersedes an in-flight one.
	r.Cancel()

	att := &attempt{to: to, from: r.state}
	r.pending = att
	for _, e := range r.hooks {
		if e.hook.OnTransitionStart != nil {
			e.hook.OnTransitionStart(att.to, att.from)
		}
	}
	if r.hold {
		return nil
	}
	return r.Resolve()
}

// Resolve completes the pending transition: guards run, and hooks see
// either success or error.
func (r *Router) Resolve() error {
	att := r.pending
	if att == nil {
		return ErrNoPendingTransition
	}
	r.pending = nil

	if gerr := r.checkGuards(att.to, att.from); gerr != nil {
		for _, e := range r.hooks {
			if e.hook.OnTransitionError != nil {
				e.hook.OnTransitionError(att.to, att.from, gerr)
			}
		}
		return nil
	}

	r.state = att.to
	for _, e := range r.hooks {
		if e.hook.OnTransitionSuccess != nil {
			e.hook.OnTransitionSuccess(att.to, att.from)
		}
	}
	return nil
}

// Cancel cancels the pending transition, if any, and notifies hooks.
func (r *Router) Cancel() {
	att := r.pending
	if att == nil {
		return
	}
	r.pending = nil
	for _, e := range r.hooks {
		if e.hook.OnTransitionCancel != nil {
			e.hook.OnTransitionCancel(att.to, att.from)
		}
	}
}

// CanActivate toggles the activation guard for a route node.
func (r *Router) CanActivate(name route.Name, allowed bool) {
	if allowed {
		delete(r.denyActivate, name)
	} else {
		r.denyActivate[name] = true
	}
}

// CanDeactivate toggles the deactivation guard for a route node.
func (r *Router) CanDeactivate(name route.Name, allowed bool) {
	if allowed {
		delete(r.denyDeactivate, name)
	} else {
		r.denyDeactivate[name] = true
	}
}

// checkGuards validates a transition against the deny sets. Deactivation
// guards apply to nodes being left; activation guards to nodes being
// entered. Nodes common to both states are neither left nor entered.
func (r *Router) checkGuards(to, from *route.State) error {
	common := route.Intersect(to, from)

	if from != nil {
		for _, node := range from.Name.Ancestry() {
			if r.denyDeactivate[node] && !isRetained(node, common) {
				return &GuardError{Node: node, Phase: "deactivate"}
			}
		}
	}
	if to != nil {
		for _, node := range to.Name.Ancestry() {
			if r.denyActivate[node] && !isRetained(node, common) {
				return &GuardError{Node: node, Phase: "activate"}
			}
		}
	}
	return nil
}

// isRetained reports whether a node stays mounted across a transition with
// the given intersection: true when the node is the intersection itself or
// one of its ancestors.
func isRetained(node route.Name, common route.Intersection) bool {
	if common.IsTopLevel() {
		return false
	}
	return node == common.Node || node.IsAncestorOf(common.Node)
}

// State returns the current route state, or nil before the first successful
// transition.
func (r *Router) State() *route.State {
	return r.state
}

// BuildPath builds a path for a route from the table.
func (r *Router) BuildPath(name route.Name, params route.Params) (string, error) {
	rt, ok := r.routes[name]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrRouteNotFound, name)
	}
	return buildPath(rt.Path, params)
}

// BuildURL builds a full URL for a route: the base URL followed by its path.
func (r *Router) BuildURL(name route.Name, params route.Params) (string, error) {
	path, err := r.BuildPath(name, params)
	if err != nil {
		return "", err
	}
	return r.baseURL + path, nil
}

// MatchPath matches a path against the route table, in registration order.
func (r *Router) MatchPath(path string) (*route.State, error) {
	for _, name := range r.order {
		rt := r.routes[name]
		if params, ok := matchPath(rt.Path, path); ok {
			return &route.State{Name: name, Params: params, Path: path}, nil
		}
	}
	return nil, fmt.Errorf("%w: path %q", ErrRouteNotFound, path)
}

// MatchURL strips the base URL and matches the remaining path.
func (r *Router) MatchURL(rawURL string) (*route.State, error) {
	path, err := stripBase(r.baseURL, rawURL)
	if err != nil {
		return nil, err
	}
	return r.MatchPath(path)
}

// AreStatesDescendants reports whether child is strictly inside parent's
// subtree.
func (r *Router) AreStatesDescendants(parent, child *route.State) bool {
	if parent == nil || child == nil {
		return false
	}
	return parent.Name.IsAncestorOf(child.Name)
}

// IsActive reports whether the named route is the current route or an
// ancestor of it, with every given param matching the current state.
func (r *Router) IsActive(name route.Name, params route.Params) bool {
	if r.state == nil {
		return false
	}
	if !r.state.Name.HasPrefix(name) {
		return false
	}
	for k, v := range params {
		if r.state.Params[k] != v {
			return false
		}
	}
	return true
}
