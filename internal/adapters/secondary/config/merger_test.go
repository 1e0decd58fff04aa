package config

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fredcamaral/ezprez/internal/domain/entities"
)

func TestConfigMerger_Merge(t *testing.T) {
	merger := NewConfigMerger()

	t.Run("no configs returns defaults", func(t *testing.T) {
		result := merger.Merge()
		assert.Equal(t, "localhost", result.Server.Host)
		assert.Equal(t, 3000, result.Server.Port)
		assert.Equal(t, entities.DefaultTemplateArchiveURL, result.Template.ArchiveURL)
		assert.True(t, result.Browser.AutoOpen)
	})

	t.Run("later configs take precedence", func(t *testing.T) {
		base := GetDefaultConfig()
		override := &entities.Config{
			Server: entities.ServerConfig{Host: "0.0.0.0"},
			Export: entities.ExportConfig{OutputDir: "dist"},
		}
		override.MarkSet("server.host", "export.output_dir")

		result := merger.Merge(base, override)
		assert.Equal(t, "0.0.0.0", result.Server.Host)
		assert.Equal(t, 3000, result.Server.Port, "zero values never override")
		assert.Equal(t, "dist", result.Export.OutputDir)
		assert.True(t, result.Browser.AutoOpen, "absent booleans keep the lower layer")
	})

	t.Run("booleans defined in a file override", func(t *testing.T) {
		override := &entities.Config{}
		override.MarkSet("browser.auto_open", "template.allow_escalation")
		override.Template.AllowEscalation = true

		result := merger.Merge(GetDefaultConfig(), override)
		assert.False(t, result.Browser.AutoOpen)
		assert.True(t, result.Template.AllowEscalation)
	})

	t.Run("nil configs are skipped", func(t *testing.T) {
		result := merger.Merge(GetDefaultConfig(), nil)
		assert.Equal(t, 3000, result.Server.Port)
	})

	t.Run("result does not alias inputs", func(t *testing.T) {
		base := GetDefaultConfig()
		result := merger.Merge(base)
		result.Server.CORSOrigins[0] = "http://changed"
		assert.Equal(t, "http://localhost:3000", base.Server.CORSOrigins[0])
	})
}

func TestConfigMerger_ApplyFlags(t *testing.T) {
	merger := NewConfigMerger()
	base := GetDefaultConfig()

	result := merger.ApplyFlags(base, map[string]interface{}{
		FlagOut:             "build",
		FlagForce:           true,
		FlagHost:            "0.0.0.0",
		FlagPort:            9000,
		FlagNoBrowser:       true,
		FlagVerbose:         true,
		FlagTemplateDir:     "/srv/webslides",
		FlagAllowEscalation: true,
		FlagSanitize:        true,
	})

	assert.Equal(t, "build", result.Export.OutputDir)
	assert.True(t, result.Export.Force)
	assert.Equal(t, "0.0.0.0:9000", result.Server.Address())
	assert.False(t, result.Browser.AutoOpen)
	assert.Equal(t, entities.LogLevelDebug, result.Logging.GetLevel())
	assert.Equal(t, "/srv/webslides", result.Template.InstallDir)
	assert.True(t, result.Template.AllowEscalation)
	assert.True(t, result.Render.SanitizeMarkdown)

	assert.Equal(t, 3000, base.Server.Port, "input is not modified")

	t.Run("empty and mistyped flags are ignored", func(t *testing.T) {
		result := merger.ApplyFlags(base, map[string]interface{}{
			FlagOut:  "",
			FlagPort: "9000",
		})
		assert.Equal(t, ".", result.Export.OutputDir)
		assert.Equal(t, 3000, result.Server.Port)
	})
}

func TestConfigMerger_ApplyEnvVars(t *testing.T) {
	merger := NewConfigMerger()

	t.Run("overrides from environment", func(t *testing.T) {
		t.Setenv(EnvHost, "0.0.0.0")
		t.Setenv(EnvPort, "4000")
		t.Setenv(EnvOutputDir, "slides")
		t.Setenv(EnvTemplateURL, "https://mirror.example.com/webslides.zip")
		t.Setenv(EnvAllowEscalation, "true")
		t.Setenv(EnvNoBrowser, "1")
		t.Setenv(EnvWatchInterval, "300")
		t.Setenv(EnvWatchDebounce, "0")
		t.Setenv(EnvLogLevel, "warn")
		t.Setenv(EnvCORSOrigins, "https://a.example.com, https://b.example.com")

		result := merger.ApplyEnvVars(GetDefaultConfig())
		assert.Equal(t, "0.0.0.0", result.Server.Host)
		assert.Equal(t, 4000, result.Server.Port)
		assert.Equal(t, "slides", result.Export.OutputDir)
		assert.Equal(t, "https://mirror.example.com/webslides.zip", result.Template.ArchiveURL)
		assert.True(t, result.Template.AllowEscalation)
		assert.False(t, result.Browser.AutoOpen)
		assert.Equal(t, 300, result.Watcher.IntervalMs)
		assert.Equal(t, 0, result.Watcher.DebounceMs)
		assert.Equal(t, "warn", result.Logging.Level)
		assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, result.Server.CORSOrigins)
	})

	t.Run("invalid values are ignored", func(t *testing.T) {
		t.Setenv(EnvPort, "not-a-port")
		t.Setenv(EnvNoBrowser, "maybe")

		result := merger.ApplyEnvVars(GetDefaultConfig())
		assert.Equal(t, 3000, result.Server.Port)
		assert.True(t, result.Browser.AutoOpen)
	})
}
