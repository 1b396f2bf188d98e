package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestLoad(t *testing.T) {
	t.Run("Missing keys take their defaults", func(t *testing.T) {
		// Given: a config that only sets the log level
		path := writeConfig(t, "log-level: debug\n")

		// When: it is loaded
		conf, err := Load(path)

		// Then: everything else has its default
		require.NoError(t, err)
		assert.Equal(t, "debug", conf.LogLevel)
		assert.Equal(t, FrontendTerminal, conf.Frontend)
		assert.Equal(t, "9090", conf.HTTPPort)
		assert.Equal(t, "ai", conf.Game.Mode)
		assert.Equal(t, 1, conf.Game.AILevel)
		assert.False(t, conf.Game.ParallelSearch)
		assert.Equal(t, StorageFile, conf.Save.Storage)
		assert.Equal(t, "savegame", conf.Save.Slot)
		assert.Equal(t, 6379, conf.Redis.Port)
	})

	t.Run("Nested keys are read", func(t *testing.T) {
		path := writeConfig(t, `
frontend: server
game:
  mode: pvp
  ai-level: 2
  parallel-search: true
  seed: 42
save:
  storage: redis
  slot: slot2
redis:
  host: cache
  port: 6380
`)

		conf, err := Load(path)

		require.NoError(t, err)
		assert.Equal(t, FrontendServer, conf.Frontend)
		assert.Equal(t, "pvp", conf.Game.Mode)
		assert.Equal(t, 2, conf.Game.AILevel)
		assert.True(t, conf.Game.ParallelSearch)
		assert.Equal(t, int64(42), conf.Game.Seed)
		assert.Equal(t, StorageRedis, conf.Save.Storage)
		assert.Equal(t, "slot2", conf.Save.Slot)
		assert.Equal(t, "cache", conf.Redis.Host)
		assert.Equal(t, 6380, conf.Redis.Port)
	})

	t.Run("Environment overrides the file", func(t *testing.T) {
		t.Setenv("GAME_AI_LEVEL", "0")
		path := writeConfig(t, "game:\n  ai-level: 1\n")

		conf, err := Load(path)

		require.NoError(t, err)
		assert.Equal(t, 0, conf.Game.AILevel)
	})

	t.Run("Invalid values are rejected", func(t *testing.T) {
		for _, content := range []string{
			"frontend: pygame\n",
			"save:\n  storage: sqlite\n",
			"game:\n  mode: online\n",
			"game:\n  ai-level: -1\n",
		} {
			_, err := Load(writeConfig(t, content))
			require.Error(t, err, content)
		}
	})

	t.Run("MustLoad panics on a missing file", func(t *testing.T) {
		assert.Panics(t, func() {
			MustLoad(filepath.Join(t.TempDir(), "nope.yml"))
		})
	})
}
