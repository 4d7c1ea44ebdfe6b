// Package console provides the process-wide logger used by the generator.
package console

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Logger is the shared logger. Debug output is only written when DebugLevel > 0.
var Logger = New(os.Stderr)

// ConsoleLogger wraps a zerolog.Logger with printf-style helpers.
type ConsoleLogger struct {
	zl         zerolog.Logger
	DebugLevel int
}

// New creates a ConsoleLogger writing human readable lines to w.
func New(w io.Writer) *ConsoleLogger {
	output := zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: time.TimeOnly,
		NoColor:    true,
	}
	return &ConsoleLogger{
		zl: zerolog.New(output).With().Timestamp().Logger(),
	}
}

// SetOutput redirects the logger to w.
func (l *ConsoleLogger) SetOutput(w io.Writer) {
	l.zl = l.zl.Output(zerolog.ConsoleWriter{Out: w, TimeFormat: time.TimeOnly, NoColor: true})
}

// SetQuiet disables all output when quiet is true.
func (l *ConsoleLogger) SetQuiet(quiet bool) {
	if quiet {
		l.zl = l.zl.Level(zerolog.Disabled)
		return
	}
	l.zl = l.zl.Level(zerolog.TraceLevel)
}

// Debug logs when DebugLevel is enabled.
func (l *ConsoleLogger) Debug(format string, args ...interface{}) {
	if l.DebugLevel <= 0 {
		return
	}
	l.zl.Debug().Msgf(format, args...)
}

// Info logs an informational message.
func (l *ConsoleLogger) Info(format string, args ...interface{}) {
	l.zl.Info().Msgf(format, args...)
}

// Warn logs a warning.
func (l *ConsoleLogger) Warn(format string, args ...interface{}) {
	l.zl.Warn().Msgf(format, args...)
}

// Error logs an error.
func (l *ConsoleLogger) Error(format string, args ...interface{}) {
	l.zl.Error().Msgf(format, args...)
}

// Printf satisfies the Debugger interfaces used across the internal packages.
func (l *ConsoleLogger) Printf(format string, args ...interface{}) {
	l.Debug(format, args...)
}
