package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
)

const (
	CacheDriverMemory = "memory"
	CacheDriverRedis  = "redis"
)

type Config struct {
	AppURL                    string
	DatabaseDSN               string
	RateLimit                 int
	ShutdownTimeoutSeconds    int
	CacheDriver               string
	CacheTTLSeconds           int
	CacheSweepIntervalSeconds int
	RedisAddr                 string
	RedisKeyPrefix            string
	LogLevel                  string
	LogFormat                 string
}

// source resolves a key from the environment first, then from the optional
// TOML file, then from the default.
type source struct {
	file map[string]any
}

// Load builds the configuration. path may name a TOML file whose keys are the
// lower-cased environment variable names; environment variables win over it.
func Load(path string) (Config, error) {
	src := source{file: map[string]any{}}
	if path != "" {
		if _, err := toml.DecodeFile(path, &src.file); err != nil {
			return Config{}, fmt.Errorf("read config file %s: %w", path, err)
		}
	}

	var errs []error
	appHost := src.getEnv("APP_HOST", "127.0.0.1")
	appPort := src.getEnv("APP_PORT", "8080")
	redisHost := src.getEnv("REDIS_HOST", "127.0.0.1")
	redisPort := src.getEnv("REDIS_PORT", "6379")

	cfg := Config{
		AppURL:                    fmt.Sprintf("%s:%s", appHost, appPort),
		DatabaseDSN:               src.getEnv("DATABASE_DSN", "tasks.db"),
		RateLimit:                 src.getEnvAsInt("RATE_LIMIT_PER_MINUTE", 60, &errs),
		ShutdownTimeoutSeconds:    src.getEnvAsInt("SHUTDOWN_TIMEOUT_SECONDS", 20, &errs),
		CacheDriver:               strings.ToLower(src.getEnv("CACHE_DRIVER", CacheDriverMemory)),
		CacheTTLSeconds:           src.getEnvAsInt("CACHE_TTL_SECONDS", 300, &errs),
		CacheSweepIntervalSeconds: src.getEnvAsInt("CACHE_SWEEP_INTERVAL_SECONDS", 60, &errs),
		RedisAddr:                 fmt.Sprintf("%s:%s", redisHost, redisPort),
		RedisKeyPrefix:            src.getEnv("REDIS_KEY_PREFIX", "task-management:"),
		LogLevel:                  strings.ToLower(src.getEnv("LOG_LEVEL", "info")),
		LogFormat:                 strings.ToLower(src.getEnv("LOG_FORMAT", "text")),
	}

	errs = append(errs, validate(cfg)...)
	if len(errs) > 0 {
		return Config{}, errors.Join(errs...)
	}
	return cfg, nil
}

func validate(cfg Config) []error {
	var errs []error
	if cfg.DatabaseDSN == "" {
		errs = append(errs, errors.New("DATABASE_DSN must not be empty"))
	}
	if cfg.RateLimit <= 0 {
		errs = append(errs, errors.New("RATE_LIMIT_PER_MINUTE must be greater than 0"))
	}
	if cfg.ShutdownTimeoutSeconds <= 0 {
		errs = append(errs, errors.New("SHUTDOWN_TIMEOUT_SECONDS must be greater than 0"))
	}
	if cfg.CacheTTLSeconds <= 0 {
		errs = append(errs, errors.New("CACHE_TTL_SECONDS must be greater than 0"))
	}
	if cfg.CacheSweepIntervalSeconds < 0 {
		errs = append(errs, errors.New("CACHE_SWEEP_INTERVAL_SECONDS must not be negative"))
	}
	if cfg.CacheDriver != CacheDriverMemory && cfg.CacheDriver != CacheDriverRedis {
		errs = append(errs, fmt.Errorf("CACHE_DRIVER must be %q or %q", CacheDriverMemory, CacheDriverRedis))
	}
	return errs
}

func (s source) getEnv(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	if v, ok := s.file[strings.ToLower(key)]; ok {
		return fmt.Sprint(v)
	}
	return defaultVal
}

func (s source) getEnvAsInt(key string, defaultVal int, errs *[]error) int {
	v := s.getEnv(key, "")
	if v == "" {
		return defaultVal
	}

	i, err := strconv.Atoi(v)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("invalid integer value for %s", key))
		return defaultVal
	}
	return i
}
