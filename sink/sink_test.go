package sink

import (
	"context"
	"errors"
	"testing"

	"github.com/mveldt/routewire/diag"
	"github.com/mveldt/routewire/route"
	"github.com/mveldt/routewire/stream"
)

// call records one router method invocation.
type call struct {
	method  string
	name    route.Name
	params  route.Params
	allowed bool
}

// fakeCommander records every dispatched call.
type fakeCommander struct {
	calls    []call
	startErr error
	navErr   error
}

func (c *fakeCommander) Start() error {
	c.calls = append(c.calls, call{method: "start"})
	return c.startErr
}

func (c *fakeCommander) Stop() {
	c.calls = append(c.calls, call{method: "stop"})
}

func (c *fakeCommander) Cancel() {
	c.calls = append(c.calls, call{method: "cancel"})
}

func (c *fakeCommander) Navigate(name route.Name, params route.Params) error {
	c.calls = append(c.calls, call{method: "navigate", name: name, params: params})
	return c.navErr
}

func (c *fakeCommander) CanActivate(name route.Name, allowed bool) {
	c.calls = append(c.calls, call{method: "canActivate", name: name, allowed: allowed})
}

func (c *fakeCommander) CanDeactivate(name route.Name, allowed bool) {
	c.calls = append(c.calls, call{method: "canDeactivate", name: name, allowed: allowed})
}

// recordingObserver collects diagnostic events.
type recordingObserver struct {
	events []diag.Event
}

func (o *recordingObserver) OnEvent(_ context.Context, ev diag.Event) {
	o.events = append(o.events, ev)
}

func (o *recordingObserver) count(t diag.EventType) int {
	n := 0
	for _, ev := range o.events {
		if ev.Type == t {
			n++
		}
	}
	return n
}

func newTestSink(t *testing.T, r Commander, opts ...Option) (*Sink, *[]error) {
	t.Helper()
	s, err := New(r, opts...)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	var errs []error
	if _, err := s.Errors().Subscribe(func(e error) { errs = append(errs, e) }); err != nil {
		t.Fatalf("Errors().Subscribe failed: %v", err)
	}
	return s, &errs
}

func TestSink_ValidCommands(t *testing.T) {
	tests := []struct {
		desc     string
		raw      any
		expected call
	}{
		{
			desc:     "bare string",
			raw:      "cancel",
			expected: call{method: "cancel"},
		},
		{
			desc:     "start sequence",
			raw:      []any{"start"},
			expected: call{method: "start"},
		},
		{
			desc:     "stop string slice",
			raw:      []string{"stop"},
			expected: call{method: "stop"},
		},
		{
			desc:     "navigate with name",
			raw:      []any{"navigate", "users.detail"},
			expected: call{method: "navigate", name: "users.detail"},
		},
		{
			desc:     "navigate with params",
			raw:      []any{"navigate", "users.detail", map[string]string{"id": "42"}},
			expected: call{method: "navigate", name: "users.detail", params: route.Params{"id": "42"}},
		},
		{
			desc:     "canActivate",
			raw:      []any{"canActivate", "admin", false},
			expected: call{method: "canActivate", name: "admin", allowed: false},
		},
		{
			desc:     "canDeactivate",
			raw:      []any{"canDeactivate", "editor", true},
			expected: call{method: "canDeactivate", name: "editor", allowed: true},
		},
		{
			desc:     "command value",
			raw:      Command{Verb: VerbCancel},
			expected: call{method: "cancel"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			r := &fakeCommander{}
			s, errs := newTestSink(t, r)

			s.Do(tt.raw)

			if len(*errs) != 0 {
				t.Fatalf("diagnostic errors emitted: %v", *errs)
			}
			if len(r.calls) != 1 {
				t.Fatalf("router received %d calls, want 1", len(r.calls))
			}
			got := r.calls[0]
			if got.method != tt.expected.method || got.name != tt.expected.name || got.allowed != tt.expected.allowed {
				t.Errorf("call = %+v, want %+v", got, tt.expected)
			}
			if !got.params.Equal(tt.expected.params) {
				t.Errorf("params = %v, want %v", got.params, tt.expected.params)
			}
		})
	}
}

func TestSink_InvalidCommands(t *testing.T) {
	tests := []struct {
		desc     string
		raw      any
		sentinel error
	}{
		{"unknown verb", "jump", ErrUnknownVerb},
		{"unknown verb in sequence", []any{"teleport", "home"}, ErrUnknownVerb},
		{"empty sequence", []any{}, ErrMalformed},
		{"empty string slice", []string{}, ErrMalformed},
		{"non-string head", []any{42, "home"}, ErrMalformed},
		{"number", 42, ErrMalformed},
		{"nil", nil, ErrMalformed},
		{"map", map[string]string{"cmd": "start"}, ErrMalformed},
		{"cancel with args", []any{"cancel", "extra"}, ErrBadArguments},
		{"navigate without name", []any{"navigate"}, ErrBadArguments},
		{"navigate with non-string name", []any{"navigate", 42}, ErrBadArguments},
		{"navigate with bad params", []any{"navigate", "home", "not-a-map"}, ErrBadArguments},
		{"canActivate missing bool", []any{"canActivate", "admin"}, ErrBadArguments},
		{"canActivate non-bool", []any{"canActivate", "admin", "yes"}, ErrBadArguments},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			r := &fakeCommander{}
			s, errs := newTestSink(t, r)

			s.Do(tt.raw)

			if len(r.calls) != 0 {
				t.Errorf("router received calls for invalid command: %+v", r.calls)
			}
			if len(*errs) != 1 {
				t.Fatalf("side channel received %d errors, want 1", len(*errs))
			}
			var cmdErr *CommandError
			if !errors.As((*errs)[0], &cmdErr) {
				t.Fatalf("side channel error is %T, want *CommandError", (*errs)[0])
			}
			if !errors.Is(cmdErr, tt.sentinel) {
				t.Errorf("error = %v, want %v", cmdErr, tt.sentinel)
			}
		})
	}
}

func TestSink_BadCommandDoesNotHaltProcessing(t *testing.T) {
	r := &fakeCommander{}
	s, errs := newTestSink(t, r)

	s.Do("jump")
	s.Do([]any{"navigate", "home"})
	s.Do(13)
	s.Do("cancel")

	if len(*errs) != 2 {
		t.Errorf("side channel received %d errors, want 2", len(*errs))
	}
	if len(r.calls) != 2 {
		t.Fatalf("router received %d calls, want 2", len(r.calls))
	}
	if r.calls[0].method != "navigate" || r.calls[1].method != "cancel" {
		t.Errorf("calls = %+v, want navigate then cancel", r.calls)
	}
}

func TestSink_AttachConsumesStream(t *testing.T) {
	r := &fakeCommander{}
	s, _ := newTestSink(t, r)

	commands := stream.New[any]()
	sub, err := s.Attach(commands)
	if err != nil {
		t.Fatalf("Attach failed: %v", err)
	}

	commands.Emit("start")
	commands.Emit([]any{"navigate", "home"})

	if len(r.calls) != 2 {
		t.Fatalf("router received %d calls, want 2", len(r.calls))
	}

	sub.Cancel()
	commands.Emit("stop")
	if len(r.calls) != 2 {
		t.Error("detached sink still received commands")
	}
}

func TestSink_RouterErrorIsNotACommandError(t *testing.T) {
	r := &fakeCommander{navErr: errors.New("route not found")}
	obs := &recordingObserver{}
	s, errs := newTestSink(t, r, WithObserver(obs))

	s.Do([]any{"navigate", "nowhere"})

	// The command was valid: it dispatched, and the router's failure stays
	// out of the command side channel.
	if len(*errs) != 0 {
		t.Errorf("side channel received %v, want nothing", *errs)
	}
	if obs.count(EventRouterCallFailed) != 1 {
		t.Errorf("router.call.failed events = %d, want 1", obs.count(EventRouterCallFailed))
	}
}

func TestSink_CommandTrace(t *testing.T) {
	r := &fakeCommander{}

	obs := &recordingObserver{}
	s, err := New(r, WithObserver(obs))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	s.Do("start")
	if obs.count(EventCommandReceived) != 0 {
		t.Error("command trace emitted without WithCommandTrace")
	}

	obs = &recordingObserver{}
	s, err = New(r, WithObserver(obs), WithCommandTrace())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	s.Do("start")
	if obs.count(EventCommandReceived) != 1 {
		t.Errorf("command.received events = %d, want 1", obs.count(EventCommandReceived))
	}
}

func TestSink_NilCommander(t *testing.T) {
	if _, err := New(nil); !errors.Is(err, ErrNilCommander) {
		t.Errorf("New(nil) error = %v, want ErrNilCommander", err)
	}
}

func TestVerb_IsValid(t *testing.T) {
	valid := []Verb{VerbCancel, VerbStart, VerbStop, VerbNavigate, VerbCanActivate, VerbCanDeactivate}
	for _, v := range valid {
		if !v.IsValid() {
			t.Errorf("Verb(%q).IsValid() = false, want true", v)
		}
	}
	for _, v := range []Verb{"", "jump", "Navigate", "CANCEL"} {
		if v.IsValid() {
			t.Errorf("Verb(%q).IsValid() = true, want false", v)
		}
	}
}
