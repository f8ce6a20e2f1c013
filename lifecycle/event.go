package lifecycle

import "github.com/mveldt/routewire/route"

// Kind identifies a router lifecycle notification.
type Kind int

const (
	// KindStart is emitted when the router starts.
	KindStart Kind = iota

	// KindStop is emitted when the router stops.
	KindStop

	// KindTransitionStart is emitted when a transition attempt begins.
	KindTransitionStart

	// KindTransitionSuccess is emitted when a transition attempt commits.
	KindTransitionSuccess

	// KindTransitionError is emitted when a transition attempt fails.
	KindTransitionError

	// KindTransitionCancel is emitted when a transition attempt is cancelled.
	KindTransitionCancel
)

// String returns a human-readable kind name.
func (k Kind) String() string {
	switch k {
	case KindStart:
		return "start"
	case KindStop:
		return "stop"
	case KindTransitionStart:
		return "transition.start"
	case KindTransitionSuccess:
		return "transition.success"
	case KindTransitionError:
		return "transition.error"
	case KindTransitionCancel:
		return "transition.cancel"
	default:
		return "unknown"
	}
}

// IsTransition returns true for the four transition kinds.
func (k Kind) IsTransition() bool {
	switch k {
	case KindTransitionStart, KindTransitionSuccess, KindTransitionError, KindTransitionCancel:
		return true
	default:
		return false
	}
}

// Event is one router lifecycle notification in unified form.
//
// To and From are set only for transition kinds and may individually be nil
// (a router's first transition has no From). Err is set only for
// KindTransitionError. Events are consumed exactly once by the demultiplexer
// and never retained beyond the driver's last-value caches.
type Event struct {
	Kind Kind
	To   *route.State
	From *route.State
	Err  error
}

// Transition is the projection of a transition event onto its states.
type Transition struct {
	To   *route.State
	From *route.State
}

// TransitionError is the projection of a failed transition: its states plus
// the router-reported error. The error shape is whatever the router chose
// to report; the bridge never interprets it.
type TransitionError struct {
	To   *route.State
	From *route.State
	Err  error
}
