package sink

import (
	"fmt"

	"github.com/mveldt/routewire/route"
)

// Verb is a command name from the sink's closed vocabulary. Anything outside
// the six constants below fails validation.
type Verb string

// The command vocabulary.
const (
	VerbCancel        Verb = "cancel"
	VerbStart         Verb = "start"
	VerbStop          Verb = "stop"
	VerbNavigate      Verb = "navigate"
	VerbCanActivate   Verb = "canActivate"
	VerbCanDeactivate Verb = "canDeactivate"
)

// IsValid returns true if the verb is part of the vocabulary.
func (v Verb) IsValid() bool {
	switch v {
	case VerbCancel, VerbStart, VerbStop, VerbNavigate, VerbCanActivate, VerbCanDeactivate:
		return true
	default:
		return false
	}
}

// String returns the verb as a string.
func (v Verb) String() string {
	return string(v)
}

// Command is one navigation instruction: a verb plus its positional
// arguments, in order.
type Command struct {
	Verb Verb
	Args []any
}

// Normalize converts a raw command value into a Command.
//
// Accepted shapes: a bare string (zero-argument command), a non-empty
// sequence whose head is the command name ([]any or []string), or a Command
// value. Anything else is a normalization failure. Normalization does not
// validate the verb; see Verb.IsValid.
func Normalize(raw any) (Command, error) {
	switch v := raw.(type) {
	case Command:
		return v, nil
	case *Command:
		if v == nil {
			return Command{}, fmt.Errorf("%w: nil command", ErrMalformed)
		}
		return *v, nil
	case Verb:
		return Command{Verb: v}, nil
	case string:
		return Command{Verb: Verb(v)}, nil
	case []any:
		if len(v) == 0 {
			return Command{}, fmt.Errorf("%w: empty sequence", ErrMalformed)
		}
		head, ok := v[0].(string)
		if !ok {
			return Command{}, fmt.Errorf("%w: sequence head is %T, not a string", ErrMalformed, v[0])
		}
		return Command{Verb: Verb(head), Args: v[1:]}, nil
	case []string:
		if len(v) == 0 {
			return Command{}, fmt.Errorf("%w: empty sequence", ErrMalformed)
		}
		args := make([]any, 0, len(v)-1)
		for _, a := range v[1:] {
			args = append(args, a)
		}
		return Command{Verb: Verb(v[0]), Args: args}, nil
	default:
		return Command{}, fmt.Errorf("%w: %T is not a string or sequence", ErrMalformed, raw)
	}
}

// nameArg coerces a positional argument into a route name.
func nameArg(v any) (route.Name, error) {
	switch n := v.(type) {
	case route.Name:
		return n, nil
	case string:
		return route.Name(n), nil
	default:
		return "", fmt.Errorf("%w: route name is %T, not a string", ErrBadArguments, v)
	}
}

// paramsArg coerces a positional argument into route params.
func paramsArg(v any) (route.Params, error) {
	switch p := v.(type) {
	case route.Params:
		return p, nil
	case map[string]string:
		return route.Params(p), nil
	case map[string]any:
		out := make(route.Params, len(p))
		for k, pv := range p {
			s, ok := pv.(string)
			if !ok {
				s = fmt.Sprint(pv)
			}
			out[k] = s
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%w: params are %T, not a map", ErrBadArguments, v)
	}
}

// boolArg coerces a positional argument into a bool.
func boolArg(v any) (bool, error) {
	b, ok := v.(bool)
	if !ok {
		return false, fmt.Errorf("%w: expected a bool, got %T", ErrBadArguments, v)
	}
	return b, nil
}
