package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestLoad_SQLiteDefaults(t *testing.T) {
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("DB_DSN", "file::memory:")
	t.Setenv("JWT_SECRET", "s3cr3t")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "sqlite", cfg.DB.Driver)
	assert.Equal(t, "8000", cfg.Port)
	assert.Equal(t, "HS256", cfg.JWT.Algorithm)
	assert.Equal(t, 30*time.Minute, cfg.AccessTTL())
	assert.Equal(t, bcrypt.DefaultCost, cfg.BcryptCost)
	assert.Equal(t, 5*time.Second, cfg.RequestTimeout)
	assert.False(t, cfg.EventsEnabled)
}

func TestLoad_LegacyAliases(t *testing.T) {
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("DB_DSN", "file::memory:")
	t.Setenv("SECRET_KEY", "legacy")
	t.Setenv("ALGORITHM", "hs512")
	t.Setenv("ACCESS_TOKEN_EXPIRE_MINUTES", "15")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "legacy", cfg.JWT.Secret)
	assert.Equal(t, "HS512", cfg.JWT.Algorithm)
	assert.Equal(t, 15, cfg.JWT.AccessTTLMin)
}

func TestLoad_ReportsAllMissing(t *testing.T) {
	t.Setenv("DB_DRIVER", "mysql")
	t.Setenv("JWT_SECRET", "")
	t.Setenv("DB_DSN", "")
	t.Setenv("DB_USER", "")
	t.Setenv("DB_HOST", "")
	t.Setenv("DB_NAME", "")

	_, err := Load()
	require.Error(t, err)
	for _, key := range []string{"JWT_SECRET", "DB_USER", "DB_HOST", "DB_NAME"} {
		assert.Contains(t, err.Error(), key)
	}
}

func TestLoad_InvalidValues(t *testing.T) {
	t.Setenv("DB_DRIVER", "oracle")
	t.Setenv("JWT_SECRET", "x")
	t.Setenv("ACCESS_TOKEN_TTL_MIN", "ten")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported DB_DRIVER")
	assert.Contains(t, err.Error(), "invalid int for ACCESS_TOKEN_TTL_MIN")
}

func TestLoad_BcryptCostOutOfRangeFallsBack(t *testing.T) {
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("DB_DSN", "file::memory:")
	t.Setenv("JWT_SECRET", "x")
	t.Setenv("BCRYPT_COST", "99")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, bcrypt.DefaultCost, cfg.BcryptCost)
}

func TestLoad_YAMLFileThenEnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yml")
	content := []byte(`
env: staging
port: "9090"
db:
  driver: sqlite
  dsn: "file:from-yaml?mode=memory"
jwt:
  secret: from-yaml
  access_ttl_min: 5
`)
	require.NoError(t, os.WriteFile(path, content, 0o600))

	t.Setenv("CONFIG_FILE", path)
	t.Setenv("APP_PORT", "7070")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "staging", cfg.Env)
	assert.Equal(t, "7070", cfg.Port)
	assert.Equal(t, "file:from-yaml?mode=memory", cfg.DB.DSN)
	assert.Equal(t, "from-yaml", cfg.JWT.Secret)
	assert.Equal(t, 5, cfg.JWT.AccessTTLMin)
	assert.Equal(t, "HS256", cfg.JWT.Algorithm)
}

func TestLoad_MissingYAMLFile(t *testing.T) {
	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "nope.yml"))

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to open config file")
}

func TestLoadRateLimitConfig_Clamps(t *testing.T) {
	t.Setenv("RATE_LIMIT_CAPACITY", "5")
	t.Setenv("RATE_LIMIT_AUTH_CAPACITY", "50")
	t.Setenv("RATE_LIMIT_REFILL_INTERVAL", "2s")
	t.Setenv("RATE_LIMIT_TTL", "1s")

	cfg := LoadRateLimitConfig()
	assert.Equal(t, 5, cfg.Capacity)
	assert.Equal(t, 5, cfg.AuthCapacity)
	assert.Equal(t, 10*time.Second, cfg.TTL)

	auth := cfg.WithCapacity(2, "auth")
	assert.Equal(t, 2, auth.Capacity)
	assert.Equal(t, "rl:auth", auth.Prefix)
	assert.Equal(t, "rl", cfg.Prefix)
}

func TestLoadCacheConfig_Defaults(t *testing.T) {
	t.Setenv("CACHE_METHODS", "get, head")

	cfg := LoadCacheConfig()
	assert.False(t, cfg.Enabled)
	assert.True(t, cfg.Methods["GET"])
	assert.True(t, cfg.Methods["HEAD"])
	assert.Equal(t, "user_route_query", cfg.KeyStrategy)
}
