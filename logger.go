package ggclip

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// nopHandler discards every record.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

func newNopLogger() *slog.Logger { return slog.New(nopHandler{}) }

// loggerPtr holds the package logger; arenas without WithLogger read it
// on every log call.
var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(newNopLogger())
}

// SetLogger sets the package logger. Arenas and graphics states created
// with WithLogger keep their own logger instead. Pass nil to silence
// logging again, which is the default.
//
// Records are emitted at two levels:
//   - [slog.LevelDebug]: an arena growing its clip or path pool by a slab,
//     a clip operation degrading to all-clipped when the arena is
//     exhausted, and gstate falling back from a clip polygon to a coverage
//     mask when compositing
//   - [slog.LevelWarn]: a clip that could not be rendered into a coverage
//     surface by Arena.Surface or Arena.Image
//
//	ggclip.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = newNopLogger()
	}
	loggerPtr.Store(l)
}

// Logger returns the package logger set by SetLogger.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}
