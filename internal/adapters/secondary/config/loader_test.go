package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTOMLLoader_LoadGlobal(t *testing.T) {
	ctx := context.Background()

	t.Run("creates config on first run", func(t *testing.T) {
		globalPath := filepath.Join(t.TempDir(), "ezprez", "config.toml")
		loader := NewTOMLLoaderAt(globalPath)

		config, err := loader.LoadGlobal(ctx)
		require.NoError(t, err)
		require.NotNil(t, config)

		_, err = os.Stat(globalPath)
		assert.NoError(t, err)

		assert.Equal(t, "localhost", config.Server.Host)
		assert.Equal(t, 3000, config.Server.Port)
		assert.True(t, config.Browser.AutoOpen)
		assert.Equal(t, 200, config.Watcher.IntervalMs)
		assert.Equal(t, "info", config.Logging.Level)
		assert.True(t, config.Overrides("browser.auto_open"), "written defaults define every key")
	})

	t.Run("loads existing config", func(t *testing.T) {
		globalPath := filepath.Join(t.TempDir(), "config.toml")
		content := `
[server]
host = "0.0.0.0"
port = 8080

[browser]
auto_open = false

[template]
allow_escalation = true
`
		require.NoError(t, os.WriteFile(globalPath, []byte(content), 0o644))

		config, err := NewTOMLLoaderAt(globalPath).LoadGlobal(ctx)
		require.NoError(t, err)

		assert.Equal(t, "0.0.0.0", config.Server.Host)
		assert.Equal(t, 8080, config.Server.Port)
		assert.False(t, config.Browser.AutoOpen)
		assert.True(t, config.Template.AllowEscalation)

		assert.True(t, config.Overrides("browser.auto_open"))
		assert.False(t, config.Overrides("export.force"))
	})

	t.Run("invalid TOML", func(t *testing.T) {
		globalPath := filepath.Join(t.TempDir(), "config.toml")
		require.NoError(t, os.WriteFile(globalPath, []byte("[server\nport = "), 0o644))

		_, err := NewTOMLLoaderAt(globalPath).LoadGlobal(ctx)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "parsing TOML")
	})

	t.Run("invalid values", func(t *testing.T) {
		globalPath := filepath.Join(t.TempDir(), "config.toml")
		require.NoError(t, os.WriteFile(globalPath, []byte("[server]\nport = 99999\n"), 0o644))

		_, err := NewTOMLLoaderAt(globalPath).LoadGlobal(ctx)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid config")
	})

	t.Run("unknown key", func(t *testing.T) {
		globalPath := filepath.Join(t.TempDir(), "config.toml")
		require.NoError(t, os.WriteFile(globalPath, []byte("[theme]\nname = \"dark\"\n"), 0o644))

		_, err := NewTOMLLoaderAt(globalPath).LoadGlobal(ctx)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown config key")
	})
}

func TestTOMLLoader_LoadLocal(t *testing.T) {
	ctx := context.Background()
	loader := NewTOMLLoaderAt(filepath.Join(t.TempDir(), "config.toml"))

	t.Run("missing local config", func(t *testing.T) {
		config, err := loader.LoadLocal(ctx, t.TempDir())
		assert.NoError(t, err)
		assert.Nil(t, config)
	})

	t.Run("loads ezprez.toml", func(t *testing.T) {
		dir := t.TempDir()
		content := "[export]\noutput_dir = \"dist\"\nforce = true\n"
		require.NoError(t, os.WriteFile(filepath.Join(dir, LocalConfigName), []byte(content), 0o644))

		config, err := loader.LoadLocal(ctx, dir)
		require.NoError(t, err)
		require.NotNil(t, config)
		assert.Equal(t, "dist", config.Export.OutputDir)
		assert.True(t, config.Export.Force)
	})
}

func TestTOMLLoader_LoadFile(t *testing.T) {
	ctx := context.Background()
	loader := NewTOMLLoaderAt(filepath.Join(t.TempDir(), "config.toml"))

	t.Run("explicit file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "talk.toml")
		require.NoError(t, os.WriteFile(path, []byte("[logging]\nlevel = \"debug\"\n"), 0o644))

		config, err := loader.LoadFile(ctx, path)
		require.NoError(t, err)
		assert.Equal(t, "debug", config.Logging.Level)
	})

	t.Run("missing file is an error", func(t *testing.T) {
		_, err := loader.LoadFile(ctx, filepath.Join(t.TempDir(), "nope.toml"))
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("empty file still counts as loaded", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "empty.toml")
		require.NoError(t, os.WriteFile(path, nil, 0o644))

		config, err := loader.LoadFile(ctx, path)
		require.NoError(t, err)
		assert.False(t, config.Overrides("browser.auto_open"))
	})
}

func TestTOMLLoader_Paths(t *testing.T) {
	loader := NewTOMLLoader()

	assert.Equal(t, "config.toml", filepath.Base(loader.GetGlobalPath()))
	assert.Equal(t, "ezprez", filepath.Base(filepath.Dir(loader.GetGlobalPath())))
	assert.Equal(t, filepath.Join("/decks", "ezprez.toml"), loader.GetLocalPath("/decks"))
}

func TestTOMLLoader_CreateDefaultsRoundTrips(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	loader := NewTOMLLoaderAt(path)

	require.NoError(t, loader.CreateDefaults(context.Background(), path))

	config, err := loader.LoadFile(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, GetDefaultConfig().Template.ArchiveURL, config.Template.ArchiveURL)
	assert.Equal(t, GetDefaultConfig().Server.CORSOrigins, config.Server.CORSOrigins)
}
