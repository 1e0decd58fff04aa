package config

import (
	"github.com/fredcamaral/ezprez/internal/domain/entities"
	"github.com/fredcamaral/ezprez/internal/domain/ports"
)

// Flag keys understood by ApplyFlags
const (
	FlagOut             = "out"
	FlagForce           = "force"
	FlagHost            = "host"
	FlagPort            = "port"
	FlagNoBrowser       = "no-browser"
	FlagVerbose         = "verbose"
	FlagLogLevel        = "log-level"
	FlagTemplateDir     = "template-dir"
	FlagAllowEscalation = "allow-escalation"
	FlagSanitize        = "sanitize"
)

// ConfigMerger implements the ConfigMerger interface
type ConfigMerger struct{}

// NewConfigMerger creates a new configuration merger
func NewConfigMerger() *ConfigMerger {
	return &ConfigMerger{}
}

// Merge merges multiple configurations with later configs taking precedence.
// With no arguments it returns the defaults.
func (m *ConfigMerger) Merge(configs ...*entities.Config) *entities.Config {
	if len(configs) == 0 {
		return GetDefaultConfig()
	}

	result := deepCopy(configs[0])
	if result == nil {
		result = GetDefaultConfig()
	}

	for i := 1; i < len(configs); i++ {
		if configs[i] != nil {
			m.mergeInto(result, configs[i])
		}
	}

	return result
}

// ApplyFlags applies CLI flag overrides keyed by flag name. Callers pass only
// the flags the user actually set.
func (m *ConfigMerger) ApplyFlags(config *entities.Config, flags map[string]interface{}) *entities.Config {
	result := deepCopy(config)

	if out, ok := flags[FlagOut].(string); ok && out != "" {
		result.Export.OutputDir = out
	}

	if force, ok := flags[FlagForce].(bool); ok {
		result.Export.Force = force
	}

	if port, ok := flags[FlagPort].(int); ok && port > 0 {
		result.Server.Port = port
	}

	if host, ok := flags[FlagHost].(string); ok && host != "" {
		result.Server.Host = host
	}

	if noBrowser, ok := flags[FlagNoBrowser].(bool); ok {
		result.Browser.AutoOpen = !noBrowser
	}

	if verbose, ok := flags[FlagVerbose].(bool); ok {
		result.Logging.Verbose = verbose
	}

	if level, ok := flags[FlagLogLevel].(string); ok && level != "" {
		result.Logging.Level = level
	}

	if dir, ok := flags[FlagTemplateDir].(string); ok && dir != "" {
		result.Template.InstallDir = dir
	}

	if allow, ok := flags[FlagAllowEscalation].(bool); ok {
		result.Template.AllowEscalation = allow
	}

	if sanitize, ok := flags[FlagSanitize].(bool); ok {
		result.Render.SanitizeMarkdown = sanitize
	}

	return result
}

// ApplyEnvVars applies EZPREZ_* environment overrides to a configuration
func (m *ConfigMerger) ApplyEnvVars(config *entities.Config) *entities.Config {
	result := deepCopy(config)

	result.Server.Host = getEnvOrDefault(EnvHost, result.Server.Host)
	if port := getEnvIntOrDefault(EnvPort, 0); port > 0 {
		result.Server.Port = port
	}
	result.Server.CORSOrigins = getEnvSliceOrDefault(EnvCORSOrigins, result.Server.CORSOrigins)

	result.Export.OutputDir = getEnvOrDefault(EnvOutputDir, result.Export.OutputDir)

	result.Template.ArchiveURL = getEnvOrDefault(EnvTemplateURL, result.Template.ArchiveURL)
	result.Template.InstallDir = getEnvOrDefault(EnvTemplateDir, result.Template.InstallDir)
	result.Template.AllowEscalation = getEnvBoolOrDefault(EnvAllowEscalation, result.Template.AllowEscalation)

	result.Browser.AutoOpen = !getEnvBoolOrDefault(EnvNoBrowser, !result.Browser.AutoOpen)

	if interval := getEnvIntOrDefault(EnvWatchInterval, 0); interval > 0 {
		result.Watcher.IntervalMs = interval
	}
	if debounce := getEnvIntOrDefault(EnvWatchDebounce, -1); debounce >= 0 {
		result.Watcher.DebounceMs = debounce
	}

	result.Logging.Level = getEnvOrDefault(EnvLogLevel, result.Logging.Level)
	result.Render.SanitizeMarkdown = getEnvBoolOrDefault(EnvSanitizeMarkdown, result.Render.SanitizeMarkdown)

	return result
}

// mergeInto merges source configuration into target configuration. Zero
// values never override; booleans override only when source defines them.
func (m *ConfigMerger) mergeInto(target, source *entities.Config) {
	// Export config
	if source.Export.OutputDir != "" {
		target.Export.OutputDir = source.Export.OutputDir
	}
	if source.Overrides("export.force") {
		target.Export.Force = source.Export.Force
	}

	// Template config
	if source.Template.ArchiveURL != "" {
		target.Template.ArchiveURL = source.Template.ArchiveURL
	}
	if source.Template.InstallDir != "" {
		target.Template.InstallDir = source.Template.InstallDir
	}
	if source.Template.DownloadDir != "" {
		target.Template.DownloadDir = source.Template.DownloadDir
	}
	if source.Template.DownloadTimeout != 0 {
		target.Template.DownloadTimeout = source.Template.DownloadTimeout
	}
	if source.Overrides("template.allow_escalation") {
		target.Template.AllowEscalation = source.Template.AllowEscalation
	}

	// Render config
	if source.Overrides("render.sanitize_markdown") {
		target.Render.SanitizeMarkdown = source.Render.SanitizeMarkdown
	}

	// Server config
	if source.Server.Port != 0 {
		target.Server.Port = source.Server.Port
	}
	if source.Server.Host != "" {
		target.Server.Host = source.Server.Host
	}
	if source.Server.ReadTimeout != 0 {
		target.Server.ReadTimeout = source.Server.ReadTimeout
	}
	if source.Server.WriteTimeout != 0 {
		target.Server.WriteTimeout = source.Server.WriteTimeout
	}
	if source.Server.ShutdownTimeout != 0 {
		target.Server.ShutdownTimeout = source.Server.ShutdownTimeout
	}
	if len(source.Server.CORSOrigins) > 0 {
		target.Server.CORSOrigins = append([]string(nil), source.Server.CORSOrigins...)
	}

	// Browser config
	if source.Overrides("browser.auto_open") {
		target.Browser.AutoOpen = source.Browser.AutoOpen
	}

	// Watcher config
	if source.Watcher.IntervalMs != 0 {
		target.Watcher.IntervalMs = source.Watcher.IntervalMs
	}
	if source.Watcher.DebounceMs != 0 {
		target.Watcher.DebounceMs = source.Watcher.DebounceMs
	}

	// Logging config
	if source.Logging.Level != "" {
		target.Logging.Level = source.Logging.Level
	}
	if source.Overrides("logging.verbose") {
		target.Logging.Verbose = source.Logging.Verbose
	}
}

// deepCopy creates a deep copy of a configuration. The copy is not tied to
// any file, so it overrides every key when merged.
func deepCopy(src *entities.Config) *entities.Config {
	if src == nil {
		return nil
	}

	dst := &entities.Config{
		Export:   src.Export,
		Template: src.Template,
		Render:   src.Render,
		Server:   src.Server,
		Browser:  src.Browser,
		Watcher:  src.Watcher,
		Logging:  src.Logging,
	}

	if src.Server.CORSOrigins != nil {
		dst.Server.CORSOrigins = make([]string, len(src.Server.CORSOrigins))
		copy(dst.Server.CORSOrigins, src.Server.CORSOrigins)
	}

	return dst
}

// Ensure ConfigMerger implements ports.ConfigMerger
var _ ports.ConfigMerger = (*ConfigMerger)(nil)
