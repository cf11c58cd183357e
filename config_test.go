package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	t.Parallel()

	t.Run("missing file gives defaults", func(t *testing.T) {
		t.Parallel()
		cfg, err := loadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
		require.NoError(t, err)
		assert.Equal(t, defaultConfig(), cfg)
	})

	t.Run("empty path gives defaults", func(t *testing.T) {
		t.Parallel()
		cfg, err := loadConfig("")
		require.NoError(t, err)
		assert.True(t, cfg.Confirmations)
		assert.Equal(t, DefaultCellWidth, cfg.CellWidth)
	})

	t.Run("values from yaml", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		path := filepath.Join(dir, "config.yaml")
		content := `save_directory: ` + dir + `
confirmations: false
log_level: debug
cell_width: 0
cell_height: 20
export_scale: 2
labels:
  slot.events: Domain Event
`
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))

		cfg, err := loadConfig(path)
		require.NoError(t, err)
		assert.Equal(t, dir, cfg.SaveDirectory)
		assert.False(t, cfg.Confirmations)
		assert.Equal(t, "debug", cfg.LogLevel)
		assert.Equal(t, DefaultCellWidth, cfg.CellWidth)
		assert.Equal(t, 20, cfg.CellHeight)
		assert.Equal(t, 2.0, cfg.ExportScale)
		assert.Equal(t, "Domain Event", cfg.Labels["slot.events"])
	})

	t.Run("malformed yaml is an error", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte("cell_width: [oops"), 0644))

		cfg, err := loadConfig(path)
		require.Error(t, err)
		assert.Equal(t, defaultConfig(), cfg)
	})
}

func TestMergeLabels(t *testing.T) {
	t.Parallel()

	labels := mergeLabels(map[string]string{"slot.events": "Fact", "custom": "x"})
	assert.Equal(t, "Fact", labels.Get("slot.events"))
	assert.Equal(t, "x", labels.Get("custom"))
	assert.Equal(t, "Command", labels.Get("slot.commands"))
	assert.Equal(t, "unknown.key", labels.Get("unknown.key"))
	assert.Equal(t, "Event", defaultLabels.Get("slot.events"))
}

func TestGetSavePath(t *testing.T) {
	t.Parallel()

	cfg := defaultConfig()
	assert.Equal(t, "board.json", cfg.GetSavePath("board.json"))

	cfg.SaveDirectory = filepath.Join(t.TempDir(), "boards")
	assert.Equal(t, filepath.Join(cfg.SaveDirectory, "board.json"), cfg.GetSavePath("board.json"))
	assert.DirExists(t, cfg.SaveDirectory)

	abs := filepath.Join(t.TempDir(), "elsewhere.json")
	assert.Equal(t, abs, cfg.GetSavePath(abs))
}

func TestNewLoggerWithoutFile(t *testing.T) {
	t.Parallel()

	log, closer, err := newLogger(defaultConfig())
	require.NoError(t, err)
	require.NotNil(t, closer)
	log.Info().Msg("discarded")
	assert.NoError(t, closer.Close())
}

func TestNewLoggerWritesFile(t *testing.T) {
	t.Parallel()

	cfg := defaultConfig()
	cfg.LogFile = filepath.Join(t.TempDir(), "logs", "stormboard.log")
	cfg.LogLevel = "debug"

	log, closer, err := newLogger(cfg)
	require.NoError(t, err)
	log.Debug().Str("file", "board.json").Msg("opened")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(cfg.LogFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"message":"opened"`)
	assert.Contains(t, string(data), `"app":"stormboard"`)
}
