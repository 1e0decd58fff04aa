package entities

import (
	"errors"
	"fmt"
	"net"
	"path/filepath"
	"strings"
	"time"
)

// Config represents the complete application configuration
type Config struct {
	Export   ExportConfig   `toml:"export"`
	Template TemplateConfig `toml:"template"`
	Render   RenderConfig   `toml:"render"`
	Server   ServerConfig   `toml:"server"`
	Browser  BrowserConfig  `toml:"browser"`
	Watcher  WatcherConfig  `toml:"watcher"`
	Logging  LoggingConfig  `toml:"logging"`

	// setKeys holds the dotted keys present in the file this config was
	// loaded from; nil for configs built in code
	setKeys map[string]bool
}

// MarkSet records that key ("section.field") was present in the source file
func (c *Config) MarkSet(keys ...string) {
	if c.setKeys == nil {
		c.setKeys = make(map[string]bool, len(keys))
	}
	for _, key := range keys {
		c.setKeys[key] = true
	}
}

// Overrides reports whether c should override key when merged over another
// config. Configs not loaded from a file override every key.
func (c *Config) Overrides(key string) bool {
	if c.setKeys == nil {
		return true
	}
	return c.setKeys[key]
}

// Validate validates the entire configuration
func (c *Config) Validate() error {
	if err := c.Export.Validate(); err != nil {
		return fmt.Errorf("export config: %w", err)
	}

	if err := c.Template.Validate(); err != nil {
		return fmt.Errorf("template config: %w", err)
	}

	if err := c.Server.Validate(); err != nil {
		return fmt.Errorf("server config: %w", err)
	}

	if err := c.Watcher.Validate(); err != nil {
		return fmt.Errorf("watcher config: %w", err)
	}

	if err := c.Logging.Validate(); err != nil {
		return fmt.Errorf("logging config: %w", err)
	}

	return nil
}

// ExportConfig controls where presentations are written
type ExportConfig struct {
	OutputDir string `toml:"output_dir"`
	Force     bool   `toml:"force"`
}

// Validate validates export configuration
func (e ExportConfig) Validate() error {
	if strings.ContainsRune(e.OutputDir, 0) {
		return errors.New("output directory contains a NUL byte")
	}
	return nil
}

// GetOutputDir returns the output directory, defaulting to the working directory
func (e ExportConfig) GetOutputDir() string {
	if e.OutputDir == "" {
		return "."
	}
	return e.OutputDir
}

// DefaultTemplateArchiveURL is the WebSlides source archive
const DefaultTemplateArchiveURL = "https://github.com/webslides/WebSlides/archive/refs/heads/master.zip"

// TemplateConfig describes where the WebSlides template tree comes from
type TemplateConfig struct {
	ArchiveURL      string `toml:"archive_url"`
	InstallDir      string `toml:"install_dir"`
	DownloadDir     string `toml:"download_dir"`
	AllowEscalation bool   `toml:"allow_escalation"`
	DownloadTimeout int    `toml:"download_timeout"`
}

// Validate validates template configuration
func (t TemplateConfig) Validate() error {
	if t.ArchiveURL != "" {
		if !strings.HasPrefix(t.ArchiveURL, "http://") && !strings.HasPrefix(t.ArchiveURL, "https://") {
			return fmt.Errorf("archive URL must start with http:// or https://: %s", t.ArchiveURL)
		}
	}

	if t.InstallDir != "" && !filepath.IsAbs(t.InstallDir) {
		return errors.New("template install directory must be absolute")
	}

	if t.DownloadDir != "" && !filepath.IsAbs(t.DownloadDir) {
		return errors.New("template download directory must be absolute")
	}

	if t.DownloadTimeout < 0 {
		return errors.New("download timeout must be non-negative")
	}

	return nil
}

// GetDownloadTimeout returns the download timeout as a duration
func (t TemplateConfig) GetDownloadTimeout() time.Duration {
	if t.DownloadTimeout <= 0 {
		return 60 * time.Second
	}
	return time.Duration(t.DownloadTimeout) * time.Second
}

// RenderConfig controls content rendering
type RenderConfig struct {
	SanitizeMarkdown bool `toml:"sanitize_markdown"`
}

// ServerConfig contains preview server configuration
type ServerConfig struct {
	Host            string   `toml:"host"`
	Port            int      `toml:"port"`
	ReadTimeout     int      `toml:"read_timeout"`
	WriteTimeout    int      `toml:"write_timeout"`
	ShutdownTimeout int      `toml:"shutdown_timeout"`
	CORSOrigins     []string `toml:"cors_origins"`
}

// Validate validates server configuration
func (s ServerConfig) Validate() error {
	if s.Port < 0 || s.Port > 65535 {
		return errors.New("port must be between 0 and 65535")
	}

	if s.Host != "" && s.Host != "localhost" {
		if ip := net.ParseIP(s.Host); ip == nil && strings.ContainsAny(s.Host, " !/") {
			return fmt.Errorf("invalid host: %s", s.Host)
		}
	}

	if s.ReadTimeout < 0 {
		return errors.New("read timeout must be non-negative")
	}

	if s.WriteTimeout < 0 {
		return errors.New("write timeout must be non-negative")
	}

	if s.ShutdownTimeout < 0 {
		return errors.New("shutdown timeout must be non-negative")
	}

	for _, origin := range s.CORSOrigins {
		if origin == "" {
			return errors.New("CORS origin cannot be empty")
		}
		if origin == "*" {
			continue
		}
		if !strings.HasPrefix(origin, "http://") && !strings.HasPrefix(origin, "https://") {
			return fmt.Errorf("invalid CORS origin format: %s (must start with http:// or https://)", origin)
		}
	}

	return nil
}

// Address returns host:port
func (s ServerConfig) Address() string {
	return net.JoinHostPort(s.Host, fmt.Sprint(s.Port))
}

// GetReadTimeout returns the read timeout as a duration
func (s ServerConfig) GetReadTimeout() time.Duration {
	if s.ReadTimeout <= 0 {
		return 30 * time.Second
	}
	return time.Duration(s.ReadTimeout) * time.Second
}

// GetWriteTimeout returns the write timeout as a duration
func (s ServerConfig) GetWriteTimeout() time.Duration {
	if s.WriteTimeout <= 0 {
		return 30 * time.Second
	}
	return time.Duration(s.WriteTimeout) * time.Second
}

// GetShutdownTimeout returns the shutdown timeout as a duration
func (s ServerConfig) GetShutdownTimeout() time.Duration {
	if s.ShutdownTimeout <= 0 {
		return 5 * time.Second
	}
	return time.Duration(s.ShutdownTimeout) * time.Second
}

// GetCORSOrigins returns CORS origins with localhost defaults if empty
func (s ServerConfig) GetCORSOrigins() []string {
	if len(s.CORSOrigins) == 0 {
		return []string{
			"http://localhost:3000",
			"http://127.0.0.1:3000",
			"http://localhost:8080",
			"http://127.0.0.1:8080",
		}
	}
	return s.CORSOrigins
}

// BrowserConfig contains browser launch configuration
type BrowserConfig struct {
	AutoOpen bool `toml:"auto_open"`
}

// WatcherConfig contains deck file watcher configuration
type WatcherConfig struct {
	IntervalMs int `toml:"interval_ms"`
	DebounceMs int `toml:"debounce_ms"`
}

// Validate validates watcher configuration
func (w WatcherConfig) Validate() error {
	if w.IntervalMs != 0 && w.IntervalMs < 50 {
		return errors.New("watcher interval must be at least 50ms")
	}

	if w.DebounceMs < 0 {
		return errors.New("debounce time must be non-negative")
	}

	return nil
}

// GetInterval returns the watcher interval as a duration
func (w WatcherConfig) GetInterval() time.Duration {
	if w.IntervalMs <= 0 {
		return 200 * time.Millisecond
	}
	return time.Duration(w.IntervalMs) * time.Millisecond
}

// GetDebounce returns the debounce time as a duration
func (w WatcherConfig) GetDebounce() time.Duration {
	if w.DebounceMs <= 0 {
		return 500 * time.Millisecond
	}
	return time.Duration(w.DebounceMs) * time.Millisecond
}

// LogLevel represents logging level
type LogLevel string

const (
	LogLevelDebug LogLevel = "debug"
	LogLevelInfo  LogLevel = "info"
	LogLevelWarn  LogLevel = "warn"
	LogLevelError LogLevel = "error"
)

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level   string `toml:"level"`   // debug, info, warn, error
	Verbose bool   `toml:"verbose"` // forces debug level
}

// Validate validates logging configuration
func (l LoggingConfig) Validate() error {
	switch LogLevel(l.Level) {
	case LogLevelDebug, LogLevelInfo, LogLevelWarn, LogLevelError:
	case "":
		// Empty is okay, will use default
	default:
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", l.Level)
	}
	return nil
}

// GetLevel returns the log level with default
func (l LoggingConfig) GetLevel() LogLevel {
	if l.Verbose {
		return LogLevelDebug
	}
	if l.Level == "" {
		return LogLevelInfo
	}
	return LogLevel(l.Level)
}
