// Package logger provides structured operator logging for the server.
// Player-facing narration does not go through here.
package logger

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// Logger wraps a logrus entry so every line carries the component field.
type Logger struct {
	entry *logrus.Entry
}

// NewLogger creates a logger writing text lines to stdout.
func NewLogger() *Logger {
	return New(os.Stdout, false)
}

// New creates a logger writing to w. Debug lines are kept only when debug
// is set.
func New(w io.Writer, debug bool) *Logger {
	base := logrus.New()
	base.SetOutput(w)
	base.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if debug {
		base.SetLevel(logrus.DebugLevel)
	}
	return &Logger{entry: logrus.NewEntry(base).WithField("component", "hollowheart")}
}

// Discard returns a logger that writes nowhere. Tests use it.
func Discard() *Logger {
	return New(io.Discard, false)
}

// With returns a child logger carrying an extra field.
func (l *Logger) With(key string, value any) *Logger {
	return &Logger{entry: l.entry.WithField(key, value)}
}

// Debug logs diagnostic messages.
func (l *Logger) Debug(msg string) {
	l.entry.Debug(msg)
}

// Info logs informational messages.
func (l *Logger) Info(msg string) {
	l.entry.Info(msg)
}

// Warn logs warning messages.
func (l *Logger) Warn(msg string) {
	l.entry.Warn(msg)
}

// Error logs error messages.
func (l *Logger) Error(msg string) {
	l.entry.Error(msg)
}

// Event logs a simulation event with its type and actor as fields.
func (l *Logger) Event(eventType string, actorID string, details string) {
	l.entry.WithFields(logrus.Fields{
		"event": eventType,
		"actor": actorID,
	}).Info(details)
}
