package routewire

import (
	"context"
	"sync/atomic"

	"github.com/mveldt/routewire/diag"
	"github.com/mveldt/routewire/lifecycle"
	"github.com/mveldt/routewire/route"
	"github.com/mveldt/routewire/sink"
	"github.com/mveldt/routewire/stream"
)

// Diagnostic event types emitted by the driver.
const (
	// EventDriverOpened marks a driver registering with its router.
	EventDriverOpened diag.EventType = "driver.opened"

	// EventDriverClosed marks a driver deregistering from its router.
	EventDriverClosed diag.EventType = "driver.closed"
)

// NodeTransition pairs a successful transition's destination with the
// intersection computed against the state it replaced.
type NodeTransition struct {
	// Intersection is the deepest node common to the old and new states.
	Intersection route.Intersection

	// Route is the destination state.
	Route *route.State
}

// Driver is the live bundle a bridge exposes: the demultiplexed lifecycle
// streams, the derived current-route values, the route-node factory, the
// command intake, and the read-only router passthroughs.
//
// All stream emissions happen synchronously on the router's call stack; the
// driver owns no goroutine. Close deregisters the bridge's hook and tears
// every stream down.
type Driver struct {
	router    Router
	intersect route.IntersectFunc
	observer  diag.Observer

	starts             *stream.Stream[struct{}]
	stops              *stream.Stream[struct{}]
	transitionStarts   *stream.Stream[lifecycle.Transition]
	transitionOK       *stream.Stream[lifecycle.Transition]
	transitionCancels  *stream.Stream[lifecycle.Transition]
	transitionFailures *stream.Stream[lifecycle.TransitionError]

	transitionRoute *stream.Value[*route.State]
	lastError       *stream.Value[error]
	routeValue      *stream.Value[*route.State]
	nodes           *stream.Stream[NodeTransition]

	commandSink *sink.Sink
	sourceSub   *stream.Subscription
	commandSub  *stream.Subscription
	closed      atomic.Bool
}

// newDriver wires the full bundle and registers with the router.
func newDriver(r Router, c config, commands *stream.Stream[any]) (*Driver, error) {
	d := &Driver{
		router:    r,
		intersect: c.intersect,
		observer:  c.observer,

		starts:             stream.New[struct{}](),
		stops:              stream.New[struct{}](),
		transitionStarts:   stream.New[lifecycle.Transition](),
		transitionOK:       stream.New[lifecycle.Transition](),
		transitionCancels:  stream.New[lifecycle.Transition](),
		transitionFailures: stream.New[lifecycle.TransitionError](),

		transitionRoute: stream.NewValueOf[*route.State](nil),
		lastError:       stream.NewValueOf[error](nil),
		routeValue:      stream.NewValue[*route.State](),
		nodes:           stream.New[NodeTransition](),
	}

	sinkOpts := []sink.Option{sink.WithObserver(c.observer)}
	if c.commandTrace {
		sinkOpts = append(sinkOpts, sink.WithCommandTrace())
	}
	commandSink, err := sink.New(r, sinkOpts...)
	if err != nil {
		return nil, err
	}
	d.commandSink = commandSink

	src := lifecycle.NewSource(r, c.autostart)
	sourceSub, err := src.Subscribe(d.demux)
	if err != nil {
		return nil, err
	}
	d.sourceSub = sourceSub

	// Seed route$ with the router's position unless a transition that ran
	// during registration (autostart) already did.
	if _, has := d.routeValue.Get(); !has {
		d.routeValue.Set(r.State())
	}

	if commands != nil {
		commandSub, err := commandSink.Attach(commands)
		if err != nil {
			d.Close()
			return nil, err
		}
		d.commandSub = commandSub
	}

	d.observer.OnEvent(context.Background(), diag.New(EventDriverOpened, diag.LevelInfo, "driver", map[string]any{
		"autostart": c.autostart,
	}))
	return d, nil
}

// demux fans one unified lifecycle event out to the named streams and
// updates the stateful values. Runs on the router's call stack.
func (d *Driver) demux(ev lifecycle.Event) {
	switch ev.Kind {
	case lifecycle.KindStart:
		d.starts.Emit(struct{}{})

	case lifecycle.KindStop:
		d.stops.Emit(struct{}{})

	case lifecycle.KindTransitionStart:
		d.transitionRoute.Set(ev.To)
		d.transitionStarts.Emit(lifecycle.Transition{To: ev.To, From: ev.From})

	case lifecycle.KindTransitionSuccess:
		d.transitionOK.Emit(lifecycle.Transition{To: ev.To, From: ev.From})
		if ev.To != nil {
			d.routeValue.Set(ev.To)
			d.nodes.Emit(NodeTransition{
				Intersection: d.intersect(ev.To, ev.From),
				Route:        ev.To,
			})
		}

	case lifecycle.KindTransitionError:
		d.lastError.Set(ev.Err)
		d.transitionFailures.Emit(lifecycle.TransitionError{To: ev.To, From: ev.From, Err: ev.Err})

	case lifecycle.KindTransitionCancel:
		d.transitionCancels.Emit(lifecycle.Transition{To: ev.To, From: ev.From})
	}
}

// Starts is the pass-through stream of router starts.
func (d *Driver) Starts() *stream.Stream[struct{}] {
	return d.starts
}

// Stops is the pass-through stream of router stops.
func (d *Driver) Stops() *stream.Stream[struct{}] {
	return d.stops
}

// TransitionStarts is the pass-through stream of transition attempts.
func (d *Driver) TransitionStarts() *stream.Stream[lifecycle.Transition] {
	return d.transitionStarts
}

// TransitionSuccesses is the pass-through stream of committed transitions.
func (d *Driver) TransitionSuccesses() *stream.Stream[lifecycle.Transition] {
	return d.transitionOK
}

// TransitionErrors is the pass-through stream of failed transitions.
func (d *Driver) TransitionErrors() *stream.Stream[lifecycle.TransitionError] {
	return d.transitionFailures
}

// TransitionCancels is the pass-through stream of cancelled transitions.
func (d *Driver) TransitionCancels() *stream.Stream[lifecycle.Transition] {
	return d.transitionCancels
}

// TransitionRoute is the stateful "what is in flight" value: nil until the
// first transition attempt, then the destination of the latest attempt.
// Late subscribers immediately receive the current reading.
func (d *Driver) TransitionRoute() *stream.Value[*route.State] {
	return d.transitionRoute
}

// LastError is the stateful "latest failure" value: nil until the first
// transition error, then the most recent error payload. A later successful
// transition does not clear it; consumers wanting a cleared reading must
// reset on success themselves.
func (d *Driver) LastError() *stream.Value[error] {
	return d.lastError
}

// Route is the stateful current-route value: seeded with the router's state
// when the driver opened, then updated by each successful transition, in
// order.
func (d *Driver) Route() *stream.Value[*route.State] {
	return d.routeValue
}

// NodeTransitions is the stream of successful transitions annotated with
// their computed intersection.
func (d *Driver) NodeTransitions() *stream.Stream[NodeTransition] {
	return d.nodes
}

// RouteNode returns a value that tracks the current route but only emits
// when a transition affects the subtree rooted at node: the computed
// intersection equals node, is an ancestor of node, or is top-level (no
// common ancestor, so everything changed). It is seeded with the router's
// current state and never emits a nil state.
func (d *Driver) RouteNode(node route.Name) (*stream.Value[*route.State], error) {
	if d.closed.Load() {
		return nil, ErrDriverClosed
	}
	if !node.IsValid() {
		return nil, ErrInvalidNode
	}

	val := stream.NewValue[*route.State]()
	if st := d.router.State(); st != nil {
		val.Set(st)
	}

	_, err := d.nodes.Subscribe(func(nt NodeTransition) {
		if nt.Route == nil {
			return
		}
		if nt.Intersection.Affects(node) {
			val.Set(nt.Route)
		}
	})
	if err != nil {
		return nil, err
	}
	return val, nil
}

// Do submits one raw command value to the sink, as if it had arrived on the
// attached command stream.
func (d *Driver) Do(raw any) {
	d.commandSink.Do(raw)
}

// CommandErrors is the diagnostic side stream for dropped commands.
func (d *Driver) CommandErrors() *stream.Stream[error] {
	return d.commandSink.Errors()
}

// Close deregisters the bridge's hook, detaches the command stream, and
// closes every derived stream. Idempotent.
func (d *Driver) Close() {
	if d.closed.Swap(true) {
		return
	}

	if d.commandSub != nil {
		d.commandSub.Cancel()
	}
	d.sourceSub.Cancel()
	d.commandSink.Close()

	d.starts.Close()
	d.stops.Close()
	d.transitionStarts.Close()
	d.transitionOK.Close()
	d.transitionCancels.Close()
	d.transitionFailures.Close()
	d.transitionRoute.Close()
	d.lastError.Close()
	d.routeValue.Close()
	d.nodes.Close()

	d.observer.OnEvent(context.Background(), diag.New(EventDriverClosed, diag.LevelInfo, "driver", nil))
}

// State forwards to the router's getState query.
func (d *Driver) State() *route.State {
	return d.router.State()
}

// BuildURL forwards to the router's buildUrl query.
func (d *Driver) BuildURL(name route.Name, params route.Params) (string, error) {
	return d.router.BuildURL(name, params)
}

// BuildPath forwards to the router's buildPath query.
func (d *Driver) BuildPath(name route.Name, params route.Params) (string, error) {
	return d.router.BuildPath(name, params)
}

// MatchURL forwards to the router's matchUrl query.
func (d *Driver) MatchURL(rawURL string) (*route.State, error) {
	return d.router.MatchURL(rawURL)
}

// MatchPath forwards to the router's matchPath query.
func (d *Driver) MatchPath(path string) (*route.State, error) {
	return d.router.MatchPath(path)
}

// AreStatesDescendants forwards to the router's areStatesDescendants query.
func (d *Driver) AreStatesDescendants(parent, child *route.State) bool {
	return d.router.AreStatesDescendants(parent, child)
}

// IsActive forwards to the router's isActive query.
func (d *Driver) IsActive(name route.Name, params route.Params) bool {
	return d.router.IsActive(name, params)
}
