package engine

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync/atomic"
)

// logLevel controls the level of the default engine logger.
// Default is LevelInfo, which suppresses Debug messages.
// SetVerbose(true) sets it to LevelDebug.
var logLevel = new(slog.LevelVar)

// loggerPtr stores the active logger. The backend packages read it through
// Logger so they share one configuration.
var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(newDefaultLogger())
}

func newDefaultLogger() *slog.Logger {
	return newTextLogger(os.Stderr)
}

// newTextLogger tags every record with the file:line of its call site.
func newTextLogger(w io.Writer) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level:     logLevel,
		AddSource: true,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key != slog.SourceKey || len(groups) > 0 {
				return a
			}
			if src, ok := a.Value.Any().(*slog.Source); ok && src != nil {
				a.Value = slog.StringValue(fmt.Sprintf("%s:%d", filepath.Base(src.File), src.Line))
			}
			return a
		},
	}))
}

// SetVerbose enables or disables debug logging on the default logger.
// Call this from main() after loading the configuration.
func SetVerbose(v bool) {
	if v {
		logLevel.Set(slog.LevelDebug)
	} else {
		logLevel.Set(slog.LevelInfo)
	}
}

// Verbose reports whether debug logging is enabled on the default logger.
func Verbose() bool {
	return logLevel.Level() <= slog.LevelDebug
}

// SetLogger replaces the logger used by the engine and its backends.
// Pass nil to restore the default stderr logger.
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = newDefaultLogger()
	}
	loggerPtr.Store(l)
}

// Logger returns the current engine logger.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}
