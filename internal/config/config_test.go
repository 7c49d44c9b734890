package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campushq/schoolapi/internal/config"
)

func withTempConfigDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	return dir
}

func TestLoad_DefaultsWhenNoFile(t *testing.T) {
	withTempConfigDir(t)
	t.Setenv("SCHOOLCTL_BASE_URL", "")
	t.Setenv("SCHOOLCTL_CACHE_TTL_SECONDS", "")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, config.Default().BaseURL, cfg.BaseURL)
	assert.Equal(t, 300, cfg.CacheTTLSeconds)
}

func TestLoad_EnvOverrides(t *testing.T) {
	withTempConfigDir(t)
	t.Setenv("SCHOOLCTL_BASE_URL", "https://school.example.com/api/")
	t.Setenv("SCHOOLCTL_CACHE_TTL_SECONDS", "60")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, "https://school.example.com/api/", cfg.BaseURL)
	assert.Equal(t, 60, cfg.CacheTTLSeconds)
}

func TestLoad_IgnoresInvalidTTLEnv(t *testing.T) {
	withTempConfigDir(t)
	t.Setenv("SCHOOLCTL_BASE_URL", "")
	t.Setenv("SCHOOLCTL_CACHE_TTL_SECONDS", "not-a-number")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, 300, cfg.CacheTTLSeconds)
}

func TestCacheTTL(t *testing.T) {
	cfg := config.Default()
	assert.Equal(t, 5*time.Minute, cfg.CacheTTL())

	cfg.CacheTTLSeconds = 60
	assert.Equal(t, time.Minute, cfg.CacheTTL())

	cfg.CacheTTLSeconds = 0
	assert.Equal(t, 5*time.Minute, cfg.CacheTTL(), "non-positive values fall back to the default")
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	dir := withTempConfigDir(t)
	t.Setenv("SCHOOLCTL_BASE_URL", "")
	t.Setenv("SCHOOLCTL_CACHE_TTL_SECONDS", "")

	cfg := config.Default()
	cfg.BaseURL = "https://school.example.com/api/"
	cfg.AccessToken = "access"
	cfg.RefreshToken = "refresh"
	require.NoError(t, config.Save(cfg))

	// tokens are credentials, the file must be user-only
	info, err := os.Stat(filepath.Join(dir, "schoolctl", "config.json"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	loaded, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, cfg.BaseURL, loaded.BaseURL)
	assert.Equal(t, "access", loaded.AccessToken)
	assert.Equal(t, "refresh", loaded.RefreshToken)
}

func TestClearTokens(t *testing.T) {
	withTempConfigDir(t)
	t.Setenv("SCHOOLCTL_BASE_URL", "")
	t.Setenv("SCHOOLCTL_CACHE_TTL_SECONDS", "")

	cfg := config.Default()
	cfg.AccessToken = "access"
	cfg.RefreshToken = "refresh"
	require.NoError(t, config.Save(cfg))

	require.NoError(t, config.ClearTokens(cfg))

	loaded, err := config.Load()
	require.NoError(t, err)
	assert.Empty(t, loaded.AccessToken)
	assert.Empty(t, loaded.RefreshToken)
}
