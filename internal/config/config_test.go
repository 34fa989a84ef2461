package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setCredentials(t *testing.T) {
	t.Helper()
	t.Setenv("FACEBOOK_EMAIL", "scorer@example.com")
	t.Setenv("FACEBOOK_PASSWORD", "hunter2")
}

func TestLoadFrom_Defaults(t *testing.T) {
	setCredentials(t)

	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "7070", cfg.Port)
	assert.Equal(t, "cookies", cfg.CookiesPath)
	assert.Equal(t, ".cache", cfg.CachePath)
	assert.True(t, cfg.Headless)
	assert.Equal(t, 30*time.Second, cfg.NavigationTimeout)
	assert.Equal(t, 6*time.Hour, cfg.CacheTTL)
	assert.InDelta(t, 0.30, cfg.Weights.Followers, 0.001)
	assert.Equal(t, "scorer@example.com", cfg.FacebookEmail)
}

func TestLoadFrom_MissingCredentials(t *testing.T) {
	t.Setenv("FACEBOOK_EMAIL", "")
	t.Setenv("FACEBOOK_PASSWORD", "")

	_, err := LoadFrom(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "FACEBOOK_EMAIL")

	t.Setenv("FACEBOOK_EMAIL", "scorer@example.com")
	_, err = LoadFrom(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "FACEBOOK_PASSWORD")
}

func TestLoadFrom_YAMLFile(t *testing.T) {
	setCredentials(t)

	yaml := `
port: "9000"
cookies_path: "/data/cookies"
navigation_timeout: "45s"
cache_ttl: "1h"
weights:
  verification: 0.2
  followers: 0.2
  engagement: 0.2
  completeness: 0.2
  activity: 0.2
rate_limit_rps: 2
rate_limit_burst: 4
`
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0644))

	cfg, err := LoadFrom(path)
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, "/data/cookies", cfg.CookiesPath)
	assert.Equal(t, 45*time.Second, cfg.NavigationTimeout)
	assert.Equal(t, time.Hour, cfg.CacheTTL)
	assert.InDelta(t, 0.2, cfg.Weights.Verification, 0.001)
	assert.Equal(t, 2.0, cfg.RateLimitRPS)
	assert.Equal(t, 4, cfg.RateLimitBurst)
}

func TestLoadFrom_EnvOverridesYAML(t *testing.T) {
	setCredentials(t)
	t.Setenv("PORT", "8088")
	t.Setenv("COOKIES_PATH", "/mnt/cookies")
	t.Setenv("HEADLESS", "false")

	yaml := "port: \"9000\"\ncookies_path: \"/data/cookies\"\n"
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0644))

	cfg, err := LoadFrom(path)
	require.NoError(t, err)

	assert.Equal(t, "8088", cfg.Port)
	assert.Equal(t, "/mnt/cookies", cfg.CookiesPath)
	assert.False(t, cfg.Headless)
}

func TestLoadFrom_InvalidTelegramChatID(t *testing.T) {
	setCredentials(t)
	t.Setenv("TELEGRAM_CHAT_ID", "not-a-number")

	_, err := LoadFrom(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "TELEGRAM_CHAT_ID")
}
