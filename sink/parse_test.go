package sink

import (
	"errors"
	"testing"

	"github.com/mveldt/routewire/route"
)

func TestParseJSON(t *testing.T) {
	tests := []struct {
		desc     string
		data     string
		expected Command
	}{
		{
			desc:     "bare string frame",
			data:     `"start"`,
			expected: Command{Verb: VerbStart},
		},
		{
			desc:     "single element array",
			data:     `["cancel"]`,
			expected: Command{Verb: VerbCancel},
		},
		{
			desc:     "navigate with name",
			data:     `["navigate", "users.detail"]`,
			expected: Command{Verb: VerbNavigate, Args: []any{"users.detail"}},
		},
		{
			desc:     "canActivate with bool",
			data:     `["canActivate", "admin", false]`,
			expected: Command{Verb: VerbCanActivate, Args: []any{"admin", false}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			got, err := ParseJSON([]byte(tt.data))
			if err != nil {
				t.Fatalf("ParseJSON failed: %v", err)
			}
			if got.Verb != tt.expected.Verb {
				t.Errorf("Verb = %v, want %v", got.Verb, tt.expected.Verb)
			}
			if len(got.Args) != len(tt.expected.Args) {
				t.Fatalf("Args = %v, want %v", got.Args, tt.expected.Args)
			}
			for i := range got.Args {
				if got.Args[i] != tt.expected.Args[i] {
					t.Errorf("Args[%d] = %v, want %v", i, got.Args[i], tt.expected.Args[i])
				}
			}
		})
	}
}

func TestParseJSON_ObjectParams(t *testing.T) {
	cmd, err := ParseJSON([]byte(`["navigate", "users.detail", {"id": "42"}]`))
	if err != nil {
		t.Fatalf("ParseJSON failed: %v", err)
	}
	if len(cmd.Args) != 2 {
		t.Fatalf("Args = %v, want 2 entries", cmd.Args)
	}

	// Argument objects decode to map[string]any and coerce to params.
	params, err := paramsArg(cmd.Args[1])
	if err != nil {
		t.Fatalf("paramsArg failed: %v", err)
	}
	if !params.Equal(route.Params{"id": "42"}) {
		t.Errorf("params = %v, want {id: 42}", params)
	}
}

func TestParseJSON_Invalid(t *testing.T) {
	tests := []struct {
		desc string
		data string
	}{
		{"empty array", `[]`},
		{"non-string head", `[42, "home"]`},
		{"object frame", `{"cmd": "start"}`},
		{"number frame", `42`},
		{"null frame", `null`},
		{"garbage", `{{`},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			if _, err := ParseJSON([]byte(tt.data)); !errors.Is(err, ErrMalformed) {
				t.Errorf("ParseJSON(%q) error = %v, want ErrMalformed", tt.data, err)
			}
		})
	}
}
