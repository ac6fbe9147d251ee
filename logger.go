package viewblur

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// nopHandler is a slog.Handler that silently discards all log records.
// The Enabled method returns false so the caller skips message formatting
// entirely, making disabled logging effectively zero-cost.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

// newNopLogger creates a logger that silently discards all output.
func newNopLogger() *slog.Logger { return slog.New(nopHandler{}) }

// loggerPtr stores the active logger. Accessed atomically so that
// SetLogger can be called concurrently with logging from any goroutine.
var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(newNopLogger())
}

// SetLogger configures the logger for viewblur and its sub-packages.
// By default, viewblur produces no log output. Call SetLogger to enable logging.
// Pass nil to restore the default silent behavior.
//
// Log levels used by viewblur:
//   - [slog.LevelDebug]: kernel sizes, buffer dimensions, overlay swaps
//   - [slog.LevelWarn]: degraded results (unsupported format, stale overlays)
//   - [slog.LevelError]: aborted requests (allocation failures)
//
// Example:
//
//	viewblur.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = newNopLogger()
	}
	loggerPtr.Store(l)
}

// Logger returns the current logger used by viewblur.
// Sub-packages (surface/, overlay/) call this to share the same configuration.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}
