package sink

import (
	"errors"
	"fmt"
)

// Sentinel errors for command processing.
var (
	// ErrMalformed is returned when a raw command is not a string, a
	// non-empty sequence, or a Command.
	ErrMalformed = errors.New("malformed command")

	// ErrUnknownVerb is returned when a command name is outside the
	// vocabulary.
	ErrUnknownVerb = errors.New("unknown command verb")

	// ErrBadArguments is returned when a command's arguments do not match
	// its verb.
	ErrBadArguments = errors.New("bad command arguments")

	// ErrNilCommander is returned when a sink is created without a router.
	ErrNilCommander = errors.New("commander cannot be nil")
)

// CommandError reports a dropped command on the diagnostic side channel.
// It carries the raw input so consumers can log or inspect it.
type CommandError struct {
	// Raw is the command value as received.
	Raw any

	// Err is the normalization or validation failure.
	Err error
}

// Error implements the error interface.
func (e *CommandError) Error() string {
	return fmt.Sprintf("command dropped: %v", e.Err)
}

// Unwrap returns the underlying error.
func (e *CommandError) Unwrap() error {
	return e.Err
}
