package sketch

import (
	"context"
	"log/slog"
	"sync/atomic"

	"github.com/gogpu/gg"
)

// nopHandler is a slog.Handler that silently discards all log records.
// Enabled returns false so callers skip message formatting entirely.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

func newNopLogger() *slog.Logger { return slog.New(nopHandler{}) }

// loggerPtr stores the package logger. Accessed atomically so that
// SetLogger can race with logging from loader goroutines.
var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(newNopLogger())
}

// SetLogger configures the logger used by sketches that were not given
// their own with WithLogger. The logger is also handed to gg so engine
// diagnostics end up in the same place.
//
// By default nothing is logged. Pass nil to restore silence.
//
// Log levels used by sketch:
//   - [slog.LevelDebug]: per-frame diagnostics, repeated bind failures
//   - [slog.LevelInfo]: lifecycle transitions, shader hot reload
//   - [slog.LevelWarn]: refused registrations, rejected second instance
//   - [slog.LevelError]: asset load failures, shader compile failures
//
// Example:
//
//	sketch.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = newNopLogger()
	}
	loggerPtr.Store(l)
	gg.SetLogger(l)
}

// Logger returns the package logger.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}

// logger returns the sketch's own logger or the package logger.
func (s *Sketch) logger() *slog.Logger {
	if s != nil && s.opts.logger != nil {
		return s.opts.logger
	}
	return Logger()
}

// Logger returns the logger the sketch reports to.
func (s *Sketch) Logger() *slog.Logger { return s.logger() }
