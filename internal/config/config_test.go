package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, 3000, cfg.Server.Port)
	assert.Equal(t, 1024, cfg.Server.MaxConnections)
	assert.Empty(t, cfg.Server.AllowedOrigins)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.Equal(t, 120, cfg.Game.RoomTimeout)
	assert.Equal(t, 300, cfg.Game.ShutdownTimeout)
	assert.Equal(t, 20, cfg.Security.MessageMaxPerSecond)
}

func TestDurationHelpers(t *testing.T) {
	cfg := Default()
	assert.Equal(t, 120*time.Minute, cfg.Game.RoomTimeoutDuration())
	assert.Equal(t, 300*time.Second, cfg.Game.ShutdownTimeoutDuration())
}

func TestLoad(t *testing.T) {
	content := `
server:
  host: "127.0.0.1"
  port: 8080
  allowed_origins:
    - "https://trix.example.com"
redis:
  addr: "redis:6379"
  db: 2
game:
  room_timeout: 30
security:
  message_max_per_second: 5
`
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1", cfg.Server.Host)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, []string{"https://trix.example.com"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, "redis:6379", cfg.Redis.Addr)
	assert.Equal(t, 2, cfg.Redis.DB)
	assert.Equal(t, 30, cfg.Game.RoomTimeout)
	assert.Equal(t, 5, cfg.Security.MessageMaxPerSecond)

	// 未设置的字段回落到默认值
	assert.Equal(t, 1024, cfg.Server.MaxConnections)
	assert.Equal(t, 300, cfg.Game.ShutdownTimeout)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server: [not a map"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}
