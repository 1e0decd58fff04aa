package logging

import (
	"bytes"
	"context"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fredcamaral/ezprez/internal/domain/entities"
	"github.com/fredcamaral/ezprez/internal/domain/ports"
)

func TestLoggerLevels(t *testing.T) {
	tests := []struct {
		name    string
		level   entities.LogLevel
		logFunc func(*Logger)
		wantLog bool
	}{
		{name: "info at info level", level: entities.LogLevelInfo, logFunc: func(l *Logger) { l.Info("test") }, wantLog: true},
		{name: "debug at info level", level: entities.LogLevelInfo, logFunc: func(l *Logger) { l.Debug("test") }, wantLog: false},
		{name: "debug at debug level", level: entities.LogLevelDebug, logFunc: func(l *Logger) { l.Debug("test") }, wantLog: true},
		{name: "warn at error level", level: entities.LogLevelError, logFunc: func(l *Logger) { l.Warn("test") }, wantLog: false},
		{name: "success at warn level", level: entities.LogLevelWarn, logFunc: func(l *Logger) { l.Success("test") }, wantLog: false},
		{name: "unknown level falls back to info", level: "loud", logFunc: func(l *Logger) { l.Info("test") }, wantLog: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.logFunc(New(&buf, tt.level))
			assert.Equal(t, tt.wantLog, buf.Len() > 0)
		})
	}
}

func TestLoggerFormatsArguments(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, entities.LogLevelInfo)

	logger.Success("exported %d slides to %s", 3, "/tmp/talk")
	assert.Contains(t, buf.String(), "exported 3 slides to /tmp/talk")

	buf.Reset()
	logger.SetLevel(entities.LogLevelDebug)
	logger.Debug("now visible")
	assert.Contains(t, buf.String(), "now visible")
	assert.Equal(t, log.DebugLevel, logger.Base().GetLevel())
}

func TestContextLogger(t *testing.T) {
	t.Run("returns attached logger", func(t *testing.T) {
		want := New(&bytes.Buffer{}, entities.LogLevelInfo)
		ctx := WithLogger(context.Background(), want)
		assert.Same(t, want, FromContext(ctx))
	})

	t.Run("accepts any ports.Logger", func(t *testing.T) {
		ctx := WithLogger(context.Background(), ports.NopLogger{})
		assert.Equal(t, ports.NopLogger{}, FromContext(ctx))
	})

	t.Run("falls back to default", func(t *testing.T) {
		got := FromContext(context.Background())
		require.NotNil(t, got)
		l, ok := got.(*Logger)
		require.True(t, ok)
		assert.Same(t, log.Default(), l.Base())
	})
}
