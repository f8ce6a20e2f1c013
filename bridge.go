package routewire

import (
	"errors"

	"github.com/mveldt/routewire/diag"
	"github.com/mveldt/routewire/route"
	"github.com/mveldt/routewire/stream"
)

// Sentinel errors for the bridge.
var (
	// ErrNilRouter is returned when a bridge is created without a router.
	ErrNilRouter = errors.New("router cannot be nil")

	// ErrDriverClosed is returned when deriving streams from a closed driver.
	ErrDriverClosed = errors.New("driver is closed")

	// ErrInvalidNode is returned when RouteNode is given an invalid name.
	ErrInvalidNode = errors.New("invalid route node name")
)

// config holds bridge configuration assembled from options.
type config struct {
	autostart    bool
	intersect    route.IntersectFunc
	observer     diag.Observer
	commandTrace bool
}

// Option configures a Bridge.
type Option func(*config)

// WithoutAutostart leaves a stopped router stopped when the driver opens.
// By default the bridge asks an unstarted router to start.
func WithoutAutostart() Option {
	return func(c *config) {
		c.autostart = false
	}
}

// WithIntersect supplies the intersection function used to compare the old
// and new states of each successful transition. The bridge treats it as a
// black box. The default is route.Intersect.
func WithIntersect(fn route.IntersectFunc) Option {
	return func(c *config) {
		if fn != nil {
			c.intersect = fn
		}
	}
}

// WithObserver routes the bridge's diagnostic events to the given observer.
// The default observer discards everything.
func WithObserver(obs diag.Observer) Option {
	return func(c *config) {
		if obs != nil {
			c.observer = obs
		}
	}
}

// WithCommandTrace emits a diagnostic event for every inbound command before
// validation. Off by default.
func WithCommandTrace() Option {
	return func(c *config) {
		c.commandTrace = true
	}
}

// Bridge connects a router to reactive consumers. It is inert until Drive
// is called; construction performs no registration and no I/O.
type Bridge struct {
	router Router
	config config
}

// New creates a bridge over the given router.
func New(r Router, opts ...Option) (*Bridge, error) {
	if r == nil {
		return nil, ErrNilRouter
	}
	c := config{
		autostart: true,
		intersect: route.Intersect,
		observer:  diag.NoOp{},
	}
	for _, opt := range opts {
		opt(&c)
	}
	return &Bridge{router: r, config: c}, nil
}

// Drive opens a driver: it registers a lifecycle hook with the router,
// starts the router if autostart applies, and attaches the command sink to
// commands. A nil commands stream is allowed; commands can then be submitted
// through Driver.Do.
//
// The returned driver must be closed to deregister the hook.
func (b *Bridge) Drive(commands *stream.Stream[any]) (*Driver, error) {
	return newDriver(b.router, b.config, commands)
}
