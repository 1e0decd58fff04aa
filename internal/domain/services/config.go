package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/fredcamaral/ezprez/internal/domain/entities"
	"github.com/fredcamaral/ezprez/internal/domain/ports"
)

// FlagConfigFile is the flag key naming an explicit config file. When set it
// replaces the deck-local ezprez.toml layer.
const FlagConfigFile = "config"

// ConfigService resolves the effective configuration:
// defaults < global file < local file < environment < flags
type ConfigService struct {
	loader ports.ConfigLoader
	merger ports.ConfigMerger
}

// NewConfigService creates a new configuration service
func NewConfigService(loader ports.ConfigLoader, merger ports.ConfigMerger) *ConfigService {
	return &ConfigService{
		loader: loader,
		merger: merger,
	}
}

// LoadConfig loads the configuration for a deck living in workingDir
func (s *ConfigService) LoadConfig(ctx context.Context, workingDir string, flags map[string]interface{}) (*entities.Config, error) {
	defaultConfig := s.GetDefaultConfig()

	globalConfig, err := s.loader.LoadGlobal(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading global config: %w", err)
	}

	var localConfig *entities.Config
	if path, ok := flags[FlagConfigFile].(string); ok && path != "" {
		localConfig, err = s.loader.LoadFile(ctx, path)
		if err != nil {
			return nil, fmt.Errorf("loading config file %s: %w", path, err)
		}
	} else {
		localConfig, err = s.loader.LoadLocal(ctx, workingDir)
		if err != nil {
			return nil, fmt.Errorf("loading local config: %w", err)
		}
	}

	configs := []*entities.Config{defaultConfig}
	if globalConfig != nil {
		configs = append(configs, globalConfig)
	}
	if localConfig != nil {
		configs = append(configs, localConfig)
	}

	merged := s.merger.Merge(configs...)
	merged = s.merger.ApplyEnvVars(merged)
	merged = s.merger.ApplyFlags(merged, flags)

	if err := s.ValidateConfig(merged); err != nil {
		return nil, fmt.Errorf("final config validation: %w", err)
	}

	return merged, nil
}

// GetDefaultConfig returns the default configuration
func (s *ConfigService) GetDefaultConfig() *entities.Config {
	// Merge with no arguments returns defaults
	return s.merger.Merge()
}

// ValidateConfig validates a configuration
func (s *ConfigService) ValidateConfig(config *entities.Config) error {
	if config == nil {
		return errors.New("config cannot be nil")
	}
	return config.Validate()
}

// CreateGlobalConfig writes the global configuration file with defaults
func (s *ConfigService) CreateGlobalConfig(ctx context.Context) error {
	return s.loader.CreateDefaults(ctx, s.loader.GetGlobalPath())
}

// Ensure ConfigService implements ports.ConfigService
var _ ports.ConfigService = (*ConfigService)(nil)
