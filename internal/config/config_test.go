package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfig(t *testing.T) {
	t.Run("Default Values", func(t *testing.T) {
		cfg, err := LoadConfig()
		assert.NoError(t, err)
		assert.Equal(t, "local", cfg.AppEnv)
		assert.Equal(t, "3000", cfg.Port)
		assert.Equal(t, "sqlite:///tmp/test.db", cfg.DatabaseURL)
		assert.Equal(t, "https://swapi.dev/api", cfg.SWAPIBaseURL)
		assert.Equal(t, 1, cfg.SWAPIMaxPages)
		assert.Equal(t, 2*time.Minute, cfg.SeedLockTTL)
		assert.Equal(t, 30*time.Second, cfg.SeedLockWait)
		assert.Zero(t, cfg.RateLimitRPS)
	})

	t.Run("Environment Variables", func(t *testing.T) {
		t.Setenv("PORT", "9999")
		t.Setenv("SWAPI_MAX_PAGES", "4")
		t.Setenv("SEED_LOCK_WAIT", "5s")

		cfg, err := LoadConfig()
		assert.NoError(t, err)
		assert.Equal(t, "9999", cfg.Port)
		assert.Equal(t, 4, cfg.SWAPIMaxPages)
		assert.Equal(t, 5*time.Second, cfg.SeedLockWait)
	})
}

func TestIsPostgres(t *testing.T) {
	assert.True(t, Config{DatabaseURL: "postgres://u:p@localhost/db"}.IsPostgres())
	assert.True(t, Config{DatabaseURL: "postgresql://u:p@localhost/db"}.IsPostgres())
	assert.False(t, Config{DatabaseURL: "sqlite:///tmp/test.db"}.IsPostgres())
	assert.False(t, Config{DatabaseURL: "pg"}.IsPostgres())
}
