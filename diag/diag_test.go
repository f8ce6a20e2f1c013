package diag

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

type recording struct {
	events []Event
}

func (r *recording) OnEvent(_ context.Context, event Event) {
	r.events = append(r.events, event)
}

func TestNew(t *testing.T) {
	ev := New("sink.command.rejected", LevelWarn, "sink", map[string]any{"verb": "jump"})
	if ev.Type != "sink.command.rejected" {
		t.Errorf("Type = %v", ev.Type)
	}
	if ev.Timestamp.IsZero() {
		t.Error("Timestamp not stamped")
	}
	if ev.Data["verb"] != "jump" {
		t.Errorf("Data = %v", ev.Data)
	}
}

func TestMulti(t *testing.T) {
	a, b := &recording{}, &recording{}
	m := Multi{a, nil, b}

	m.OnEvent(context.Background(), New("x", LevelInfo, "test", nil))

	if len(a.events) != 1 || len(b.events) != 1 {
		t.Errorf("deliveries = (%d, %d), want (1, 1)", len(a.events), len(b.events))
	}
}

func TestSlog(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	o := NewSlog(logger)
	o.OnEvent(context.Background(), New("sink.command.dispatched", LevelDebug, "sink", map[string]any{"verb": "navigate"}))

	out := buf.String()
	if !strings.Contains(out, "sink.command.dispatched") {
		t.Errorf("log output missing event type: %q", out)
	}
	if !strings.Contains(out, "verb=navigate") {
		t.Errorf("log output missing data attr: %q", out)
	}
	if !strings.Contains(out, "source=sink") {
		t.Errorf("log output missing source attr: %q", out)
	}
}

func TestLevel_SlogLevel(t *testing.T) {
	tests := []struct {
		level    Level
		expected slog.Level
	}{
		{LevelDebug, slog.LevelDebug},
		{LevelInfo, slog.LevelInfo},
		{LevelWarn, slog.LevelWarn},
		{LevelError, slog.LevelError},
	}
	for _, tt := range tests {
		t.Run(tt.level.String(), func(t *testing.T) {
			if got := tt.level.SlogLevel(); got != tt.expected {
				t.Errorf("SlogLevel() = %v, want %v", got, tt.expected)
			}
		})
	}
}
