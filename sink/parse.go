package sink

import (
	"fmt"

	"github.com/tidwall/gjson"
)

// ParseJSON decodes a JSON command frame into a Command.
//
// Two frame shapes are accepted, mirroring Normalize: a JSON string
// ("start") for a zero-argument command, or a non-empty JSON array
// (["navigate", "users.detail", {"id": "42"}]) whose head is the command
// name. Objects in argument position decode to map[string]any, so they
// coerce to route params during dispatch.
func ParseJSON(data []byte) (Command, error) {
	if !gjson.ValidBytes(data) {
		return Command{}, fmt.Errorf("%w: invalid JSON", ErrMalformed)
	}

	parsed := gjson.ParseBytes(data)
	switch {
	case parsed.Type == gjson.String:
		return Command{Verb: Verb(parsed.String())}, nil
	case parsed.IsArray():
		elems := parsed.Array()
		if len(elems) == 0 {
			return Command{}, fmt.Errorf("%w: empty sequence", ErrMalformed)
		}
		if elems[0].Type != gjson.String {
			return Command{}, fmt.Errorf("%w: sequence head is %s, not a string", ErrMalformed, elems[0].Type)
		}
		args := make([]any, 0, len(elems)-1)
		for _, e := range elems[1:] {
			args = append(args, e.Value())
		}
		return Command{Verb: Verb(elems[0].String()), Args: args}, nil
	default:
		return Command{}, fmt.Errorf("%w: JSON %s is not a string or sequence", ErrMalformed, parsed.Type)
	}
}
