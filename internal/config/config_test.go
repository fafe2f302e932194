package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"
	"webguard/internal/config"

	"github.com/stretchr/testify/require"
)

func TestLoad_defaults(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)

	require.Equal(t, ":8080", cfg.HTTP.Addr)
	require.Equal(t, int64(10<<20), cfg.HTTP.MaxBodyBytes)
	require.Equal(t, 10, cfg.Quota.DailyLimit)
	require.Equal(t, 10*time.Second, cfg.Reputation.Timeout)
	require.Equal(t, []string{"chrome-extension://*", "moz-extension://*", "http://localhost:*"}, cfg.CORS.AllowedOrigins)
	require.False(t, cfg.Classifier.WholeWords)
	require.Empty(t, cfg.Classifier.AllowKeywords)
	require.Equal(t, 4, cfg.Inspector.BatchConcurrency)
}

func TestLoad_fileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(`
environment: production
quota:
  dailyLimit: 25
classifier:
  wholeWords: true
  blockKeywords: [gaming, prank]
redis:
  addr: redis:6379
`), 0o600))

	t.Setenv("REPUTATION_API_KEY", "secret")
	t.Setenv("REDIS_ADDR", "cache:6380")

	cfg, err := config.Load(path)
	require.NoError(t, err)

	require.Equal(t, "production", cfg.Environment)
	require.Equal(t, 25, cfg.Quota.DailyLimit)
	require.True(t, cfg.Classifier.WholeWords)
	require.Equal(t, []string{"gaming", "prank"}, cfg.Classifier.BlockKeywords)
	require.Equal(t, "secret", cfg.Reputation.APIKey)
	require.Equal(t, "cache:6380", cfg.Redis.Addr)
}

func TestLoad_missingFile(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "missing.yml"))
	require.Error(t, err)
}
