package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

const (
	StoreDriverMongo  = "mongo"
	StoreDriverMemory = "memory"

	LockDriverNone  = "none"
	LockDriverRedis = "redis"
)

// Config holds the whole application configuration, populated from
// environment variables.
type Config struct {
	App   AppConfig
	Store StoreConfig
	Redis RedisConfig
	Lock  LockConfig
}

type AppConfig struct {
	Name            string
	Environment     string // development, staging, production
	Host            string
	Port            string
	LogLevel        string
	ShutdownTimeout time.Duration
}

// Addr is the address the HTTP listener binds to.
func (a AppConfig) Addr() string {
	return fmt.Sprintf("%s:%s", a.Host, a.Port)
}

type StoreConfig struct {
	Driver string // mongo, memory
}

type RedisConfig struct {
	Host     string
	Password string
	DB       int
}

type LockConfig struct {
	Driver string // none, redis
	TTL    time.Duration
}

// Load reads the configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{
		App: AppConfig{
			Name:            getEnv("APP_NAME", "Blog API"),
			Environment:     getEnv("APP_ENV", "development"),
			Host:            getEnv("APP_HOST", ""),
			Port:            getEnv("APP_PORT", getEnv("PORT", "8080")),
			LogLevel:        getEnv("LOG_LEVEL", "info"),
			ShutdownTimeout: getEnvDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
		},
		Store: StoreConfig{
			Driver: getEnv("STORE_DRIVER", StoreDriverMongo),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		Lock: LockConfig{
			Driver: getEnv("LOCK_DRIVER", LockDriverNone),
			TTL:    getEnvDuration("LOCK_TTL", 5*time.Second),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if c.App.Port == "" {
		return fmt.Errorf("APP_PORT must not be empty")
	}

	switch c.Store.Driver {
	case StoreDriverMongo, StoreDriverMemory:
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q", c.Store.Driver)
	}

	switch c.Lock.Driver {
	case LockDriverNone, LockDriverRedis:
	default:
		return fmt.Errorf("unknown LOCK_DRIVER %q", c.Lock.Driver)
	}

	if c.App.Environment == "production" && c.Store.Driver == StoreDriverMemory {
		return fmt.Errorf("STORE_DRIVER=memory is not allowed in production")
	}

	return nil
}

// Helper functions
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
