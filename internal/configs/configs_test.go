package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"task-management.com/task-management/internal/cache"
	model "task-management.com/task-management/internal/models"
)

var configKeys = []string{
	"APP_HOST", "APP_PORT", "DATABASE_DSN", "RATE_LIMIT_PER_MINUTE",
	"SHUTDOWN_TIMEOUT_SECONDS", "CACHE_DRIVER", "CACHE_TTL_SECONDS",
	"CACHE_SWEEP_INTERVAL_SECONDS", "REDIS_HOST", "REDIS_PORT",
	"REDIS_KEY_PREFIX", "LOG_LEVEL", "LOG_FORMAT",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range configKeys {
		t.Setenv(key, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:8080", cfg.AppURL)
	assert.Equal(t, "tasks.db", cfg.DatabaseDSN)
	assert.Equal(t, 60, cfg.RateLimit)
	assert.Equal(t, 20, cfg.ShutdownTimeoutSeconds)
	assert.Equal(t, CacheDriverMemory, cfg.CacheDriver)
	assert.Equal(t, 300, cfg.CacheTTLSeconds)
	assert.Equal(t, "127.0.0.1:6379", cfg.RedisAddr)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
app_port = 9090
cache_driver = "redis"
cache_ttl_seconds = 120
log_level = "debug"
`), 0o600))

	t.Setenv("CACHE_TTL_SECONDS", "30")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:9090", cfg.AppURL)
	assert.Equal(t, CacheDriverRedis, cfg.CacheDriver)
	assert.Equal(t, 30, cfg.CacheTTLSeconds)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr string
	}{
		{name: "non-integer", env: map[string]string{"RATE_LIMIT_PER_MINUTE": "many"}, wantErr: "invalid integer value for RATE_LIMIT_PER_MINUTE"},
		{name: "zero rate limit", env: map[string]string{"RATE_LIMIT_PER_MINUTE": "0"}, wantErr: "RATE_LIMIT_PER_MINUTE must be greater than 0"},
		{name: "zero ttl", env: map[string]string{"CACHE_TTL_SECONDS": "0"}, wantErr: "CACHE_TTL_SECONDS must be greater than 0"},
		{name: "unknown driver", env: map[string]string{"CACHE_DRIVER": "memcached"}, wantErr: "CACHE_DRIVER must be"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := Load("")
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	clearEnv(t)

	_, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read config file")
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, Config{LogLevel: "warn", LogFormat: "json"})

	logger.Info("hidden")
	logger.Warn("shown", "task_id", 1)

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, `"msg":"shown"`)
	assert.Contains(t, out, `"task_id":1`)
}

func TestParseLogLevel(t *testing.T) {
	assert.Equal(t, log.DebugLevel, ParseLogLevel("debug"))
	assert.Equal(t, log.WarnLevel, ParseLogLevel("warning"))
	assert.Equal(t, log.ErrorLevel, ParseLogLevel("error"))
	assert.Equal(t, log.InfoLevel, ParseLogLevel("verbose"))
}

func TestNewDatabaseClient_Migrates(t *testing.T) {
	db, err := NewDatabaseClient(fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString()))
	require.NoError(t, err)

	assert.True(t, db.Migrator().HasTable(&model.Task{}))
}

func TestNewCache_Memory(t *testing.T) {
	c, closeCache, err := NewCache(Config{CacheDriver: CacheDriverMemory}, log.New(&bytes.Buffer{}))
	require.NoError(t, err)
	defer closeCache()

	_, ok := c.(*cache.Memory)
	assert.True(t, ok)
}
