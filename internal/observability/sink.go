package observability

import (
	"go.uber.org/zap"

	"github.com/bioooz/typoer/internal/typing"
)

// LogSink writes typing events to a zap logger.
type LogSink struct {
	log *zap.Logger
}

// NewLogSink returns a sink logging through log. A nil logger discards events.
func NewLogSink(log *zap.Logger) *LogSink {
	if log == nil {
		log = zap.NewNop()
	}
	return &LogSink{log: log.Named("session")}
}

// Observe implements typing.Sink.
func (s *LogSink) Observe(ev typing.Event) {
	switch ev.Kind {
	case typing.EventStart:
		s.log.Info("session started")
	case typing.EventChar:
		if ce := s.log.Check(zap.DebugLevel, "char"); ce != nil {
			ce.Write(zap.String("rune", string(ev.Rune)), zap.Stringer("outcome", ev.Outcome))
		}
	case typing.EventTypo:
		if ce := s.log.Check(zap.DebugLevel, "typo"); ce != nil {
			ce.Write(
				zap.String("rune", string(ev.Rune)),
				zap.String("substitute", string(ev.Substitute)),
				zap.Stringer("outcome", ev.Outcome),
			)
		}
	case typing.EventCancelled:
		s.log.Info("session cancelled", resultFields(ev.Result)...)
	case typing.EventComplete:
		s.log.Info("session completed", resultFields(ev.Result)...)
	case typing.EventError:
		s.log.Error("session failed", append(resultFields(ev.Result), zap.Error(ev.Err))...)
	}
}

func resultFields(res typing.Result) []zap.Field {
	return []zap.Field{
		zap.Int("chars", res.Stats.Chars),
		zap.Int("typos", res.Stats.Typos),
		zap.Int("corrected", res.Stats.Corrected),
		zap.Int("uncorrected", res.Stats.Uncorrected),
		zap.Int("lines", res.Stats.Lines),
		zap.Duration("duration", res.Duration()),
	}
}

var _ typing.Sink = (*LogSink)(nil)
