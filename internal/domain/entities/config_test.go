package entities

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfig_Validate(t *testing.T) {
	t.Run("valid config", func(t *testing.T) {
		config := &Config{
			Export: ExportConfig{OutputDir: "out"},
			Template: TemplateConfig{
				ArchiveURL:      "https://github.com/webslides/WebSlides/archive/refs/heads/master.zip",
				InstallDir:      "/opt/ezprez/webslides",
				DownloadTimeout: 30,
			},
			Server: ServerConfig{
				Host:            "localhost",
				Port:            3000,
				ReadTimeout:     30,
				WriteTimeout:    30,
				ShutdownTimeout: 5,
			},
			Watcher: WatcherConfig{IntervalMs: 200, DebounceMs: 500},
			Logging: LoggingConfig{Level: "info"},
		}

		require.NoError(t, config.Validate())
	})

	t.Run("zero config is valid", func(t *testing.T) {
		assert.NoError(t, (&Config{}).Validate())
	})

	tests := []struct {
		name    string
		config  Config
		wantErr string
	}{
		{
			name:    "invalid server port",
			config:  Config{Server: ServerConfig{Port: -1}},
			wantErr: "server config",
		},
		{
			name:    "relative install dir",
			config:  Config{Template: TemplateConfig{InstallDir: "webslides"}},
			wantErr: "template config",
		},
		{
			name:    "archive url scheme",
			config:  Config{Template: TemplateConfig{ArchiveURL: "ftp://example.com/x.zip"}},
			wantErr: "archive URL must start with",
		},
		{
			name:    "watcher interval too small",
			config:  Config{Watcher: WatcherConfig{IntervalMs: 10}},
			wantErr: "watcher config",
		},
		{
			name:    "unknown log level",
			config:  Config{Logging: LoggingConfig{Level: "loud"}},
			wantErr: "invalid log level",
		},
		{
			name:    "negative download timeout",
			config:  Config{Template: TemplateConfig{DownloadTimeout: -1}},
			wantErr: "download timeout",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestConfig_Defaults(t *testing.T) {
	var c Config

	assert.Equal(t, ".", c.Export.GetOutputDir())
	assert.Equal(t, 60*time.Second, c.Template.GetDownloadTimeout())
	assert.Equal(t, 30*time.Second, c.Server.GetReadTimeout())
	assert.Equal(t, 30*time.Second, c.Server.GetWriteTimeout())
	assert.Equal(t, 5*time.Second, c.Server.GetShutdownTimeout())
	assert.Equal(t, 200*time.Millisecond, c.Watcher.GetInterval())
	assert.Equal(t, 500*time.Millisecond, c.Watcher.GetDebounce())
	assert.Equal(t, LogLevelInfo, c.Logging.GetLevel())
	assert.Len(t, c.Server.GetCORSOrigins(), 4)
}

func TestLoggingConfig_VerboseForcesDebug(t *testing.T) {
	l := LoggingConfig{Level: "error", Verbose: true}
	assert.Equal(t, LogLevelDebug, l.GetLevel())
}

func TestServerConfig_Address(t *testing.T) {
	assert.Equal(t, "localhost:3000", ServerConfig{Host: "localhost", Port: 3000}.Address())
	assert.Equal(t, "[::1]:8080", ServerConfig{Host: "::1", Port: 8080}.Address())
}

func TestServerConfig_CORSOrigins(t *testing.T) {
	tests := []struct {
		name    string
		origins []string
		wantErr string
	}{
		{name: "valid origins", origins: []string{"http://localhost:3000", "https://example.com"}},
		{name: "wildcard", origins: []string{"*"}},
		{name: "no protocol", origins: []string{"example.com"}, wantErr: "invalid CORS origin format"},
		{name: "empty string", origins: []string{""}, wantErr: "CORS origin cannot be empty"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := ServerConfig{Host: "localhost", Port: 8080, CORSOrigins: tt.origins}
			err := config.Validate()
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.origins, config.GetCORSOrigins())
		})
	}
}

func TestExportError(t *testing.T) {
	cause := assert.AnError
	err := &ExportError{
		Type:    ErrorTypeTemplate,
		Message: "failed to install template",
		Details: "/opt/webslides",
		Cause:   cause,
	}

	assert.Equal(t, "template error: failed to install template - /opt/webslides: "+cause.Error(), err.Error())
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, ErrorTypeTemplate, ErrorTypeOf(err))
	assert.Equal(t, ExportErrorType(""), ErrorTypeOf(cause))
}

func TestConfig_Overrides(t *testing.T) {
	var built Config
	assert.True(t, built.Overrides("export.force"), "configs built in code override everything")

	var loaded Config
	loaded.MarkSet("browser.auto_open")
	assert.True(t, loaded.Overrides("browser.auto_open"))
	assert.False(t, loaded.Overrides("export.force"))
}
