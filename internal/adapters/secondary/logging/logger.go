// Package logging adapts charmbracelet/log to the application's Logger port.
//
// Loggers travel through context.Context so commands and services share the
// level chosen by --verbose and the logging config.
package logging

import (
	"context"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/fredcamaral/ezprez/internal/domain/entities"
	"github.com/fredcamaral/ezprez/internal/domain/ports"
)

var successMark = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true).Render("✓")

// Logger implements ports.Logger on top of a charmbracelet logger
type Logger struct {
	l *log.Logger
}

// New creates a logger writing to w at level, with "HH:MM:SS.ms" timestamps
func New(w io.Writer, level entities.LogLevel) *Logger {
	return &Logger{
		l: log.NewWithOptions(w, log.Options{
			ReportTimestamp: true,
			TimeFormat:      "15:04:05.00",
			Level:           toLevel(level),
		}),
	}
}

// Wrap adapts an existing charmbracelet logger
func Wrap(l *log.Logger) *Logger {
	return &Logger{l: l}
}

// toLevel maps a config level onto charmbracelet levels, defaulting to info
func toLevel(level entities.LogLevel) log.Level {
	parsed, err := log.ParseLevel(strings.ToLower(string(level)))
	if err != nil {
		return log.InfoLevel
	}
	return parsed
}

// Base returns the underlying charmbracelet logger
func (l *Logger) Base() *log.Logger {
	return l.l
}

// SetLevel changes the minimum level that is written
func (l *Logger) SetLevel(level entities.LogLevel) {
	l.l.SetLevel(toLevel(level))
}

func (l *Logger) Debug(msg string, args ...interface{}) { l.l.Debugf(msg, args...) }
func (l *Logger) Info(msg string, args ...interface{})  { l.l.Infof(msg, args...) }
func (l *Logger) Warn(msg string, args ...interface{})  { l.l.Warnf(msg, args...) }
func (l *Logger) Error(msg string, args ...interface{}) { l.l.Errorf(msg, args...) }

// Success logs a completed step at info level with a check mark
func (l *Logger) Success(msg string, args ...interface{}) {
	l.l.Infof(successMark+" "+msg, args...)
}

type ctxKey int

const loggerKey ctxKey = 0

// WithLogger returns a context carrying l
func WithLogger(ctx context.Context, l ports.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// FromContext returns the logger attached to ctx, or one writing to the
// charmbracelet default logger
func FromContext(ctx context.Context) ports.Logger {
	if l, ok := ctx.Value(loggerKey).(ports.Logger); ok {
		return l
	}
	return Wrap(log.Default())
}

// Ensure Logger implements ports.Logger
var _ ports.Logger = (*Logger)(nil)
