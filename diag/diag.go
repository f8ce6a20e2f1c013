// Package diag provides the bridge's diagnostic side channel.
//
// Bridge components never log directly. They emit diag Events to an
// Observer, and the embedding application decides what to do with them:
// discard (NoOp, the default), fan out (Multi), or log (Slog). Command
// failures, hook registrations, and the optional inbound-command trace all
// travel this channel, never the lifecycle streams.
package diag

import (
	"context"
	"log/slog"
	"time"
)

// EventType identifies the kind of diagnostic event. Each package defines
// its own constants using this type (e.g. "sink.command.rejected").
type EventType string

// Level is the severity of a diagnostic event, mapped onto slog levels.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

// String returns a human-readable level name.
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "debug"
	case LevelInfo:
		return "info"
	case LevelWarn:
		return "warn"
	default:
		return "error"
	}
}

// SlogLevel maps the level to the corresponding slog.Level.
func (l Level) SlogLevel() slog.Level {
	switch l {
	case LevelDebug:
		return slog.LevelDebug
	case LevelInfo:
		return slog.LevelInfo
	case LevelWarn:
		return slog.LevelWarn
	default:
		return slog.LevelError
	}
}

// Event is a single diagnostic notification.
type Event struct {
	Type      EventType
	Level     Level
	Timestamp time.Time
	Source    string
	Data      map[string]any
}

// New creates an event stamped with the current time.
func New(t EventType, level Level, source string, data map[string]any) Event {
	return Event{
		Type:      t,
		Level:     level,
		Timestamp: time.Now(),
		Source:    source,
		Data:      data,
	}
}

// Observer receives diagnostic events.
type Observer interface {
	OnEvent(ctx context.Context, event Event)
}

// NoOp discards all events.
type NoOp struct{}

// OnEvent implements Observer by doing nothing.
func (NoOp) OnEvent(ctx context.Context, event Event) {}

// Multi fans events out to several observers in order.
type Multi []Observer

// OnEvent implements Observer by forwarding to every member.
func (m Multi) OnEvent(ctx context.Context, event Event) {
	for _, o := range m {
		if o != nil {
			o.OnEvent(ctx, event)
		}
	}
}

// Slog emits events to a slog.Logger: the event type becomes the message,
// the source and data keys become attributes.
type Slog struct {
	logger *slog.Logger
}

// NewSlog creates a Slog observer over the given logger.
// A nil logger uses slog.Default.
func NewSlog(logger *slog.Logger) *Slog {
	if logger == nil {
		logger = slog.Default()
	}
	return &Slog{logger: logger}
}

// OnEvent implements Observer.
func (o *Slog) OnEvent(ctx context.Context, event Event) {
	attrs := make([]slog.Attr, 0, len(event.Data)+1)
	attrs = append(attrs, slog.String("source", event.Source))
	for k, v := range event.Data {
		attrs = append(attrs, slog.Any(k, v))
	}
	o.logger.LogAttrs(ctx, event.Level.SlogLevel(), string(event.Type), attrs...)
}
