package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"PORT", "LOG_LEVEL", "LEADERBOARD_BACKEND", "DB_PATH", "LEADERBOARD_SIZE",
		"LEADERBOARD_KEY", "SYMBOLS_FILE", "TOKEN_TTL", "SESSION_TTL", "MISMATCH_DELAY", "WIN_DELAY"} {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "5175", cfg.Port)
	assert.Equal(t, BackendSQLite, cfg.Backend)
	assert.Equal(t, "memoryHighScores", cfg.LeaderboardKey)
	assert.Equal(t, 5, cfg.LeaderboardLen)
	assert.Equal(t, 24*time.Hour, cfg.TokenTTL)
	assert.Equal(t, 2*time.Hour, cfg.SessionTTL)
	assert.Equal(t, time.Second, cfg.MismatchDelay)
	assert.Equal(t, 500*time.Millisecond, cfg.WinDelay)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("LEADERBOARD_BACKEND", "redis")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("MISMATCH_DELAY", "750ms")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, BackendRedis, cfg.Backend)
	assert.Equal(t, 3, cfg.RedisDB)
	assert.Equal(t, 750*time.Millisecond, cfg.MismatchDelay)
}

func TestLoadRejectsBadValues(t *testing.T) {
	t.Setenv("LEADERBOARD_BACKEND", "postgres")
	_, err := Load()
	assert.Error(t, err)

	t.Setenv("LEADERBOARD_BACKEND", "memory")
	t.Setenv("LEADERBOARD_SIZE", "0")
	_, err = Load()
	assert.Error(t, err)

	t.Setenv("LEADERBOARD_SIZE", "five")
	_, err = Load()
	assert.Error(t, err)
}
