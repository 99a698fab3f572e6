// Package logx provides the diagnostics sink used by the prepare core,
// backed by hclog.
package logx

import (
	"io"
	"time"

	"github.com/hashicorp/go-hclog"
)

// Logger adapts an hclog.Logger to the prepare.Diagnostics contract.
type Logger struct {
	l hclog.Logger
}

// New creates a Logger writing to w at the given level. Unknown level
// strings fall back to info.
func New(name, level string, w io.Writer) *Logger {
	lvl := hclog.LevelFromString(level)
	if lvl == hclog.NoLevel {
		lvl = hclog.Info
	}
	return &Logger{
		l: hclog.New(&hclog.LoggerOptions{
			Name:   name,
			Level:  lvl,
			Output: w,
		}),
	}
}

// Wrap adapts an existing hclog.Logger.
func Wrap(l hclog.Logger) *Logger {
	return &Logger{l: l}
}

// Emit logs a message with hclog-style key/value pairs.
func (l *Logger) Emit(msg string, kv ...any) {
	l.l.Info(msg, kv...)
}

// Group opens a named diagnostic group and returns its closer. The
// closer logs the elapsed time at debug level; callers defer it so the
// group is closed on every exit path.
func (l *Logger) Group(label string) func() {
	l.l.Info(label)
	start := time.Now()
	return func() {
		l.l.Debug("group finished", "group", label, "elapsed", time.Since(start).Round(time.Millisecond))
	}
}
