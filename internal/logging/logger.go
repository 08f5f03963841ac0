// Package logging is the bridge's structured-logging facade: the same
// Debug/Info/Warn/Error/Fatal-plus-conditional-helpers surface the
// teacher's framework/debug package exposed, backed by
// github.com/charmbracelet/log instead of a hand-rolled io.Writer
// formatter. Kept as a thin facade (rather than calling charmbracelet/log
// directly everywhere) so the bridge core can silence or redirect
// logging in one place — in particular, the real-time audio thread must
// never log at all, enforced by callers simply never holding a Logger
// reference on that path.
package logging

import (
	"fmt"
	"io"
	"os"
	"sync/atomic"

	charmlog "github.com/charmbracelet/log"
)

// Level mirrors the teacher's LogLevel enum, mapped onto
// charmbracelet/log's levels plus an Off sentinel the underlying
// library doesn't have a direct equivalent for.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
	LevelFatal
	LevelOff
)

func (l Level) charm() charmlog.Level {
	switch l {
	case LevelDebug:
		return charmlog.DebugLevel
	case LevelWarn:
		return charmlog.WarnLevel
	case LevelError:
		return charmlog.ErrorLevel
	case LevelFatal:
		return charmlog.FatalLevel
	default:
		return charmlog.InfoLevel
	}
}

// Logger wraps a charmbracelet/log.Logger with an independent enabled
// flag, so callers can silence logging entirely (e.g. in freewheeling
// export mode) without tearing down the logger.
type Logger struct {
	inner   *charmlog.Logger
	enabled atomic.Bool
}

// New creates a logger writing to w with the given prefix.
func New(w io.Writer, prefix string) *Logger {
	inner := charmlog.NewWithOptions(w, charmlog.Options{
		Prefix:          prefix,
		ReportTimestamp: true,
		ReportCaller:    true,
	})
	l := &Logger{inner: inner}
	l.enabled.Store(true)
	return l
}

var defaultLogger = New(os.Stderr, "lv2vst")

// Default returns the process-wide logger used by the package-level
// helpers below.
func Default() *Logger { return defaultLogger }

func (l *Logger) SetOutput(w io.Writer)   { l.inner.SetOutput(w) }
func (l *Logger) SetLevel(level Level)    { l.inner.SetLevel(level.charm()) }
func (l *Logger) SetPrefix(prefix string) { l.inner.SetPrefix(prefix) }
func (l *Logger) SetEnabled(enabled bool) { l.enabled.Store(enabled) }
func (l *Logger) IsEnabled() bool         { return l.enabled.Load() }

func (l *Logger) Debug(format string, args ...any) {
	if l.enabled.Load() {
		l.inner.Debugf(format, args...)
	}
}

func (l *Logger) Info(format string, args ...any) {
	if l.enabled.Load() {
		l.inner.Infof(format, args...)
	}
}

func (l *Logger) Warn(format string, args ...any) {
	if l.enabled.Load() {
		l.inner.Warnf(format, args...)
	}
}

func (l *Logger) Error(format string, args ...any) {
	if l.enabled.Load() {
		l.inner.Errorf(format, args...)
	}
}

// Fatal logs at error severity and panics; the bridge never calls
// os.Exit from inside a hosted plugin binary.
func (l *Logger) Fatal(format string, args ...any) {
	l.inner.Errorf(format, args...)
	panic(fmt.Sprintf(format, args...))
}

// Debug logs at debug level on the default logger.
func Debug(format string, args ...any) { defaultLogger.Debug(format, args...) }

// Info logs at info level on the default logger.
func Info(format string, args ...any) { defaultLogger.Info(format, args...) }

// Warn logs at warn level on the default logger.
func Warn(format string, args ...any) { defaultLogger.Warn(format, args...) }

// Error logs at error level on the default logger.
func Error(format string, args ...any) { defaultLogger.Error(format, args...) }

// Fatal logs at error level on the default logger and panics.
func Fatal(format string, args ...any) { defaultLogger.Fatal(format, args...) }

// DebugIf logs at debug level only when condition holds.
func DebugIf(condition bool, format string, args ...any) {
	if condition {
		defaultLogger.Debug(format, args...)
	}
}

// WarnIf logs at warn level only when condition holds.
func WarnIf(condition bool, format string, args ...any) {
	if condition {
		defaultLogger.Warn(format, args...)
	}
}

// ErrorIf logs at error level only when condition holds.
func ErrorIf(condition bool, format string, args ...any) {
	if condition {
		defaultLogger.Error(format, args...)
	}
}
