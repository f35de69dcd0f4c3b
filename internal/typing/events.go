package typing

import "time"

// EventKind identifies a session event.
type EventKind int

// Event kinds, in the order a session can emit them.
const (
	EventStart EventKind = iota
	EventChar
	EventTypo
	EventCancelled
	EventComplete
	EventError
)

func (k EventKind) String() string {
	switch k {
	case EventStart:
		return "start"
	case EventChar:
		return "char"
	case EventTypo:
		return "typo"
	case EventCancelled:
		return "cancelled"
	case EventComplete:
		return "complete"
	case EventError:
		return "error"
	default:
		return "unknown"
	}
}

// Event describes something that happened during a session.
type Event struct {
	Kind       EventKind
	At         time.Time
	Rune       rune
	Substitute rune
	Outcome    TypoOutcome
	Err        error
	Result     Result
}

// Sink receives session events. Observe must not block for long; it runs on
// the session goroutine between keystrokes.
type Sink interface {
	Observe(ev Event)
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(ev Event)

// Observe implements Sink.
func (f SinkFunc) Observe(ev Event) {
	f(ev)
}

// NopSink discards events.
var NopSink Sink = nopSink{}

type nopSink struct{}

func (nopSink) Observe(Event) {}

// Sinks fans events out to every non-nil sink in order. A sink that panics
// is skipped for that event; the others still observe it.
func Sinks(sinks ...Sink) Sink {
	kept := make([]Sink, 0, len(sinks))
	for _, s := range sinks {
		if s != nil {
			kept = append(kept, s)
		}
	}
	if len(kept) == 0 {
		return NopSink
	}
	return SinkFunc(func(ev Event) {
		for _, s := range kept {
			observe(s, ev)
		}
	})
}

func observe(s Sink, ev Event) {
	defer func() {
		_ = recover()
	}()
	s.Observe(ev)
}
