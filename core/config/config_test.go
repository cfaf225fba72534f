package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"valortracker/core/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := config.LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, 10, cfg.Sync.PageSize)
	assert.Equal(t, 3, cfg.Sync.HitThreshold)
	assert.Equal(t, 20, cfg.Sync.InteractiveCap)
	assert.Equal(t, 10*time.Second, cfg.Henrik.Timeout())
	assert.Equal(t, time.Minute, cfg.Sync.CacheTTL)
	assert.False(t, cfg.Sync.ScheduleEnabled)
	assert.Equal(t, "https://valorant-api.com/v1", cfg.Agents.BaseURL)
	assert.Equal(t, "*", cfg.Server.CORSOrigins)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("SYNC_PAGE_SIZE", "5")
	t.Setenv("SYNC_HIT_THRESHOLD", "2")
	t.Setenv("SYNC_CACHE_TTL", "15s")
	t.Setenv("HENRIK_API_KEY", "HDEV-test")

	cfg, err := config.LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, 5, cfg.Sync.PageSize)
	assert.Equal(t, 2, cfg.Sync.HitThreshold)
	assert.Equal(t, 15*time.Second, cfg.Sync.CacheTTL)
	assert.Equal(t, "HDEV-test", cfg.Henrik.APIKey)
}

func TestLoadConfig_DotEnv(t *testing.T) {
	dir := t.TempDir()
	err := os.WriteFile(filepath.Join(dir, ".env"), []byte("SYNC_BACKGROUND_CAP=40\n"), 0o600)
	require.NoError(t, err)
	t.Cleanup(func() { os.Unsetenv("SYNC_BACKGROUND_CAP") })

	cfg, err := config.LoadConfig(dir)
	require.NoError(t, err)
	assert.Equal(t, 40, cfg.Sync.BackgroundCap)
}

func TestLoadConfig_Invalid(t *testing.T) {
	t.Setenv("SYNC_PAGE_SIZE", "0")
	t.Setenv("DATABASE_DRIVER", "oracle")

	_, err := config.LoadConfig(t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sync.page_size")
	assert.Contains(t, err.Error(), "oracle")
}

func TestValidate_Caps(t *testing.T) {
	cfg, err := config.LoadConfig(t.TempDir())
	require.NoError(t, err)

	cfg.Sync.BackgroundCap = cfg.Sync.InteractiveCap - 1
	assert.Error(t, cfg.Validate())

	cfg.Sync.BackgroundCap = cfg.Sync.InteractiveCap
	assert.NoError(t, cfg.Validate())

	cfg.Sync.ScheduleEnabled = true
	cfg.Sync.ScheduleInterval = 0
	assert.Error(t, cfg.Validate())
}
