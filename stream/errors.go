package stream

import "errors"

// Sentinel errors for streams and subscriptions.
var (
	// ErrClosed is returned when subscribing to a closed stream.
	ErrClosed = errors.New("stream is closed")

	// ErrNilHandler is returned when a nil handler is provided.
	ErrNilHandler = errors.New("handler cannot be nil")
)
