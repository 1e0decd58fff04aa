package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/fredcamaral/ezprez/internal/adapters/secondary/assets"
	"github.com/fredcamaral/ezprez/internal/domain/entities"
)

// Environment variables read on top of the file layers
const (
	EnvHost             = "EZPREZ_HOST"
	EnvPort             = "EZPREZ_PORT"
	EnvOutputDir        = "EZPREZ_OUTPUT_DIR"
	EnvTemplateURL      = "EZPREZ_TEMPLATE_URL"
	EnvTemplateDir      = "EZPREZ_TEMPLATE_DIR"
	EnvAllowEscalation  = "EZPREZ_ALLOW_ESCALATION"
	EnvNoBrowser        = "EZPREZ_NO_BROWSER"
	EnvWatchInterval    = "EZPREZ_WATCH_INTERVAL"
	EnvWatchDebounce    = "EZPREZ_WATCH_DEBOUNCE"
	EnvLogLevel         = "EZPREZ_LOG_LEVEL"
	EnvSanitizeMarkdown = "EZPREZ_SANITIZE_MARKDOWN"
	EnvCORSOrigins      = "EZPREZ_CORS_ORIGINS"
)

// GetDefaultConfig returns the built-in configuration
func GetDefaultConfig() *entities.Config {
	return &entities.Config{
		Export: entities.ExportConfig{
			OutputDir: ".",
		},
		Template: entities.TemplateConfig{
			ArchiveURL:      entities.DefaultTemplateArchiveURL,
			InstallDir:      assets.DefaultInstallDir(),
			DownloadDir:     assets.DefaultDownloadDir(),
			DownloadTimeout: 60,
		},
		Server: entities.ServerConfig{
			Host:            "localhost",
			Port:            3000,
			ReadTimeout:     30,
			WriteTimeout:    30,
			ShutdownTimeout: 5,
			CORSOrigins: []string{
				"http://localhost:3000",
				"http://127.0.0.1:3000",
				"http://localhost:8080",
				"http://127.0.0.1:8080",
			},
		},
		Browser: entities.BrowserConfig{
			AutoOpen: true,
		},
		Watcher: entities.WatcherConfig{
			IntervalMs: 200,
			DebounceMs: 500,
		},
		Logging: entities.LoggingConfig{
			Level: string(entities.LogLevelInfo),
		},
	}
}

// getEnvOrDefault returns environment variable value or default
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvIntOrDefault returns environment variable as int or default
func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvBoolOrDefault returns environment variable as bool or default
func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

// getEnvSliceOrDefault returns a comma separated environment variable or default
func getEnvSliceOrDefault(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		parts := strings.Split(value, ",")
		result := make([]string, 0, len(parts))
		for _, part := range parts {
			if trimmed := strings.TrimSpace(part); trimmed != "" {
				result = append(result, trimmed)
			}
		}
		if len(result) > 0 {
			return result
		}
	}
	return defaultValue
}
