// Package sink validates navigation commands and dispatches them into a
// router.
//
// Commands arrive as loosely shaped values (bare strings, sequences, JSON
// frames) and pass through three stages: normalization into a Command,
// validation against the closed verb vocabulary, and typed dispatch onto the
// Commander. Failures never interrupt processing: the command is dropped, a
// CommandError goes to the Errors side stream, and a diag event is emitted.
// Dispatch is fire and forget; a command's effects come back later as
// ordinary lifecycle events from the router itself.
package sink

import (
	"context"
	"fmt"

	"github.com/mveldt/routewire/diag"
	"github.com/mveldt/routewire/route"
	"github.com/mveldt/routewire/stream"
)

// Diagnostic event types emitted by the sink.
const (
	// EventCommandReceived traces every inbound command before validation.
	// Only emitted when the trace option is enabled.
	EventCommandReceived diag.EventType = "sink.command.received"

	// EventCommandDispatched marks a command handed to the router.
	EventCommandDispatched diag.EventType = "sink.command.dispatched"

	// EventCommandRejected marks a command dropped by normalization or
	// validation.
	EventCommandRejected diag.EventType = "sink.command.rejected"

	// EventRouterCallFailed marks a router method that returned an error.
	// The router still reports the failure through its own lifecycle hooks;
	// this is diagnostics only.
	EventRouterCallFailed diag.EventType = "sink.router.call.failed"
)

// Commander is the router view the sink dispatches into.
type Commander interface {
	// Start starts the router.
	Start() error

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

// Sink consumes raw command values and drives a Commander.
type Sink struct {
	router Commander
	errs   *stream.Stream[error]
	obs    diag.Observer
	trace  bool
}

// Option configures a Sink.
type Option func(*Sink)

// WithObserver routes diagnostic events to the given observer.
func WithObserver(obs diag.Observer) Option {
	return func(s *Sink) {
		if obs != nil {
			s.obs = obs
		}
	}
}

// WithCommandTrace emits a diagnostic event for every inbound command before
// validation. Off by default.
func WithCommandTrace() Option {
	return func(s *Sink) {
		s.trace = true
	}
}

// New creates a sink over the given commander.
func New(r Commander, opts ...Option) (*Sink, error) {
	if r == nil {
		return nil, ErrNilCommander
	}
	s := &Sink{
		router: r,
		errs:   stream.New[error](),
		obs:    diag.NoOp{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Errors returns the diagnostic side stream. Dropped commands surface here
// as *CommandError values; lifecycle streams are never polluted with them.
func (s *Sink) Errors() *stream.Stream[error] {
	return s.errs
}

// Do normalizes, validates, and dispatches one raw command value.
// A failure drops the command and reports it; it never halts the sink.
func (s *Sink) Do(raw any) {
	if s.trace {
		s.obs.OnEvent(context.Background(), diag.New(EventCommandReceived, diag.LevelDebug, "sink", map[string]any{
			"raw": fmt.Sprintf("%v", raw),
		}))
	}

	cmd, err := Normalize(raw)
	if err != nil {
		s.reject(raw, err)
		return
	}
	if err := s.Dispatch(cmd); err != nil {
		s.reject(raw, err)
	}
}

// Dispatch validates a Command and invokes the corresponding router method
// with its arguments, positionally. Unlike Do, the validation error is
// returned as well as reported.
func (s *Sink) Dispatch(cmd Command) error {
	if !cmd.Verb.IsValid() {
		return fmt.Errorf("%w: %q", ErrUnknownVerb, cmd.Verb)
	}

	switch cmd.Verb {
	case VerbCancel:
		if len(cmd.Args) != 0 {
			return s.arityError(cmd, 0)
		}
		s.router.Cancel()

	case VerbStart:
		if len(cmd.Args) != 0 {
			return s.arityError(cmd, 0)
		}
		if err := s.router.Start(); err != nil {
			s.callFailed(cmd, err)
		}

	case VerbStop:
		if len(cmd.Args) != 0 {
			return s.arityError(cmd, 0)
		}
		s.router.Stop()

	case VerbNavigate:
		if len(cmd.Args) < 1 || len(cmd.Args) > 2 {
			return fmt.Errorf("%w: navigate takes a route name and optional params, got %d args", ErrBadArguments, len(cmd.Args))
		}
		name, err := nameArg(cmd.Args[0])
		if err != nil {
			return err
		}
		var params route.Params
		if len(cmd.Args) == 2 {
			if params, err = paramsArg(cmd.Args[1]); err != nil {
				return err
			}
		}
		if err := s.router.Navigate(name, params); err != nil {
			s.callFailed(cmd, err)
		}

	case VerbCanActivate, VerbCanDeactivate:
		if len(cmd.Args) != 2 {
			return fmt.Errorf("%w: %s takes a route name and a bool, got %d args", ErrBadArguments, cmd.Verb, len(cmd.Args))
		}
		name, err := nameArg(cmd.Args[0])
		if err != nil {
			return err
		}
		allowed, err := boolArg(cmd.Args[1])
		if err != nil {
			return err
		}
		if cmd.Verb == VerbCanActivate {
			s.router.CanActivate(name, allowed)
		} else {
			s.router.CanDeactivate(name, allowed)
		}
	}

	s.obs.OnEvent(context.Background(), diag.New(EventCommandDispatched, diag.LevelDebug, "sink", map[string]any{
		"verb": cmd.Verb.String(),
		"args": len(cmd.Args),
	}))
	return nil
}

// Attach subscribes the sink to a stream of raw command values.
// Cancelling the returned subscription detaches it.
func (s *Sink) Attach(commands *stream.Stream[any]) (*stream.Subscription, error) {
	return commands.Subscribe(func(raw any) { s.Do(raw) })
}

// Close closes the error side stream.
func (s *Sink) Close() {
	s.errs.Close()
}

// reject reports a dropped command on both side channels.
func (s *Sink) reject(raw any, err error) {
	s.obs.OnEvent(context.Background(), diag.New(EventCommandRejected, diag.LevelWarn, "sink", map[string]any{
		"raw":    fmt.Sprintf("%v", raw),
		"reason": err.Error(),
	}))
	s.errs.Emit(&CommandError{Raw: raw, Err: err})
}

// arityError builds the error for verbs that take no arguments.
func (s *Sink) arityError(cmd Command, want int) error {
	return fmt.Errorf("%w: %s takes %d args, got %d", ErrBadArguments, cmd.Verb, want, len(cmd.Args))
}

// callFailed reports a router method error. This is not a command error:
// the router owns the failure and reports it through its lifecycle hooks.
func (s *Sink) callFailed(cmd Command, err error) {
	s.obs.OnEvent(context.Background(), diag.New(EventRouterCallFailed, diag.LevelWarn, "sink", map[string]any{
		"verb":  cmd.Verb.String(),
		"error": err.Error(),
	}))
}
