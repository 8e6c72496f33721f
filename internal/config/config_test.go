package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	return path
}

func TestMustLoad(t *testing.T) {
	t.Run("Defaults fill missing keys", func(t *testing.T) {
		// Given: a config with only the lobby backend set
		path := writeConfig(t, "lobby:\n  backend: redis\n")

		// When: it is loaded
		conf := MustLoad(path)

		// Then: every other key takes its default
		assert.Equal(t, "info", conf.LogLevel)
		assert.Equal(t, "9090", conf.HTTPPort)
		assert.Equal(t, "3001", conf.SocketPort)
		assert.Equal(t, LobbyBackendRedis, conf.Lobby.Backend)
		assert.Equal(t, 10*time.Minute, conf.Lobby.TTL)
		assert.Equal(t, "localhost:6379", conf.Redis.GetRedisAddr())
		assert.Equal(t, Room{MaxPlayers: 4, TeamsEnabled: true, Private: true}, conf.Room)
		assert.Equal(t, Rules{}, conf.Rules)
	})

	t.Run("Values from file", func(t *testing.T) {
		path := writeConfig(t, `
log-level: debug
allowed-origins: ["example.com", "localhost:5173"]
room:
  max-players: 6
  private: false
rules:
  enforce-pieu-blocking: true
`)

		conf := MustLoad(path)

		assert.Equal(t, "debug", conf.LogLevel)
		assert.Equal(t, []string{"example.com", "localhost:5173"}, conf.AllowedOrigins)
		assert.Equal(t, 6, conf.Room.MaxPlayers)
		assert.False(t, conf.Room.Private)
		assert.True(t, conf.Rules.EnforcePieuBlocking)
	})

	t.Run("Unknown lobby backend panics", func(t *testing.T) {
		path := writeConfig(t, "lobby:\n  backend: etcd\n")

		assert.Panics(t, func() { MustLoad(path) })
	})

	t.Run("Room size out of range panics", func(t *testing.T) {
		path := writeConfig(t, "room:\n  max-players: 9\n")

		assert.Panics(t, func() { MustLoad(path) })
	})

	t.Run("Missing file panics", func(t *testing.T) {
		assert.Panics(t, func() { MustLoad(filepath.Join(t.TempDir(), "nope.yml")) })
	})
}
