package logr

import (
	"context"
	"log/slog"
	"time"

	"github.com/go-logr/logr"
)

var _ logr.LogSink = (*logSink)(nil)

// logSink adapts a slog handler to the logr.LogSink interface.
type logSink struct {
	handler slog.Handler
}

func newLogSink(h slog.Handler) *logSink {
	return &logSink{handler: h}
}

func (s *logSink) Init(info logr.RuntimeInfo) {}

func (s *logSink) Enabled(level int) bool {
	return s.handler.Enabled(context.Background(), toSlogLevel(level))
}

func (s *logSink) Info(level int, msg string, keysAndValues ...any) {
	r := slog.NewRecord(time.Now(), toSlogLevel(level), msg, 0)
	r.Add(keysAndValues...)
	_ = s.handler.Handle(context.Background(), r)
}

func (s *logSink) Error(err error, msg string, keysAndValues ...any) {
	r := slog.NewRecord(time.Now(), slog.LevelError, msg, 0)
	if err != nil {
		r.Add("error", err)
	}
	r.Add(keysAndValues...)
	_ = s.handler.Handle(context.Background(), r)
}

func (s *logSink) WithValues(keysAndValues ...any) logr.LogSink {
	attrs := make([]slog.Attr, 0, len(keysAndValues)/2)
	for i := 0; i+1 < len(keysAndValues); i += 2 {
		key, ok := keysAndValues[i].(string)
		if !ok {
			continue
		}
		attrs = append(attrs, slog.Any(key, keysAndValues[i+1]))
	}
	return &logSink{handler: s.handler.WithAttrs(attrs)}
}

func (s *logSink) WithName(name string) logr.LogSink {
	return &logSink{handler: s.handler.WithGroup(name)}
}
