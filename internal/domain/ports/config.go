package ports

import (
	"context"

	"github.com/fredcamaral/ezprez/internal/domain/entities"
)

// ConfigLoader loads the global and deck-local configuration files
type ConfigLoader interface {
	// LoadGlobal loads the global configuration file, creating it with
	// defaults when missing
	LoadGlobal(ctx context.Context) (*entities.Config, error)

	// LoadLocal loads ezprez.toml from dir; a missing file yields nil, nil
	LoadLocal(ctx context.Context, dir string) (*entities.Config, error)

	// LoadFile loads an explicitly named configuration file
	LoadFile(ctx context.Context, path string) (*entities.Config, error)

	// CreateDefaults writes a default configuration file at path
	CreateDefaults(ctx context.Context, path string) error

	GetGlobalPath() string
	GetLocalPath(dir string) string
}

// ConfigMerger merges configuration layers
type ConfigMerger interface {
	// Merge merges configs with later configs taking precedence. With no
	// arguments it returns the defaults.
	Merge(configs ...*entities.Config) *entities.Config

	// ApplyFlags applies CLI flag overrides keyed by flag name
	ApplyFlags(config *entities.Config, flags map[string]interface{}) *entities.Config

	// ApplyEnvVars applies EZPREZ_* environment variable overrides
	ApplyEnvVars(config *entities.Config) *entities.Config
}

// ConfigService resolves the effective configuration for a command
type ConfigService interface {
	LoadConfig(ctx context.Context, workingDir string, flags map[string]interface{}) (*entities.Config, error)
	GetDefaultConfig() *entities.Config
	ValidateConfig(config *entities.Config) error
	CreateGlobalConfig(ctx context.Context) error
}
