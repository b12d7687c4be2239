package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	App        AppConfig
	Database   DatabaseConfig
	JWT        JWTConfig
	Dictionary DictionaryConfig
}

type AppConfig struct {
	AppName     string
	Environment string
	HTTPPort    string
}

type DatabaseConfig struct {
	DBHost     string
	DBPort     string
	DBName     string
	DBUser     string
	DBPassword string
	DBSSLMode  string

	ConnectTimeout      time.Duration
	PoolMaxConns        int32
	PoolMinConns        int32
	PoolMaxConnLifetime time.Duration
	PoolMaxConnIdleTime time.Duration

	MigrationsDir string
}

type JWTConfig struct {
	AccessSecret     string
	RefreshSecret    string
	AccessExpiresIn  time.Duration
	RefreshExpiresIn time.Duration
}

type DictionaryConfig struct {
	// Path to a skills JSON file. Empty means the embedded default dictionary.
	Path string
}

var errMissingRequiredEnv = errors.New("missing required environment variables")

// Load reads configuration from the process environment. App identity and JWT
// secrets are required; everything else has a usable default so development
// setups can start from a minimal .env.
func Load() (Config, error) {
	var e envReader

	cfg := Config{
		App:        loadApp(&e),
		Database:   loadDatabase(&e),
		JWT:        loadJWT(&e),
		Dictionary: DictionaryConfig{Path: e.optional("SKILL_DICTIONARY_PATH")},
	}

	if len(e.missing) > 0 {
		return Config{}, fmt.Errorf("%w: %s", errMissingRequiredEnv, strings.Join(e.missing, ", "))
	}
	return cfg, nil
}

func loadApp(e *envReader) AppConfig {
	return AppConfig{
		AppName:     e.require("APP_NAME"),
		Environment: e.require("APP_ENV"),
		HTTPPort:    e.require("HTTP_PORT"),
	}
}

func loadDatabase(e *envReader) DatabaseConfig {
	return DatabaseConfig{
		DBHost:     e.optional("DB_HOST"),
		DBPort:     e.optional("DB_PORT"),
		DBName:     e.optional("DB_NAME"),
		DBUser:     e.optional("DB_USER"),
		DBPassword: e.optional("DB_PASSWORD"),
		DBSSLMode:  e.optional("DB_SSL_MODE"),

		ConnectTimeout:      e.duration("DB_CONNECT_TIMEOUT", 5*time.Second),
		PoolMaxConns:        e.int32("DB_POOL_MAX_CONNS", 0),
		PoolMinConns:        e.int32("DB_POOL_MIN_CONNS", 0),
		PoolMaxConnLifetime: e.duration("DB_POOL_MAX_CONN_LIFETIME", 0),
		PoolMaxConnIdleTime: e.duration("DB_POOL_MAX_CONN_IDLE_TIME", 0),

		MigrationsDir: e.optional("DB_MIGRATIONS_DIR"),
	}
}

func loadJWT(e *envReader) JWTConfig {
	return JWTConfig{
		AccessSecret:     e.require("JWT_ACCESS_SECRET"),
		RefreshSecret:    e.require("JWT_REFRESH_SECRET"),
		AccessExpiresIn:  e.duration("JWT_ACCESS_EXPIRES_IN", 15*time.Minute),
		RefreshExpiresIn: e.duration("JWT_REFRESH_EXPIRES_IN", 7*24*time.Hour),
	}
}

// envReader accumulates the names of required variables that were absent so
// Load can report them all in one error instead of failing one at a time.
type envReader struct {
	missing []string
}

func (e *envReader) require(key string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		e.missing = append(e.missing, key)
	}
	return v
}

func (e *envReader) optional(key string) string {
	return strings.TrimSpace(os.Getenv(key))
}

func (e *envReader) duration(key string, def time.Duration) time.Duration {
	raw := e.optional(key)
	if raw == "" {
		return def
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d < 0 {
		return def
	}
	return d
}

func (e *envReader) int32(key string, def int32) int32 {
	raw := e.optional(key)
	if raw == "" {
		return def
	}
	v, err := strconv.ParseInt(raw, 10, 32)
	if err != nil || v < 0 {
		return def
	}
	return int32(v)
}
