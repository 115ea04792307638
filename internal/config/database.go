package config

import (
	"fmt"
	"strconv"
	"time"

	"blog-backend/internal/infrastructure/database"
)

// LoadMongoConfig reads the MongoDB settings from environment variables.
// Unlike Load it fails on malformed numbers and durations instead of falling
// back to defaults.
func LoadMongoConfig() (*database.MongoConfig, error) {
	maxPool, err := strconv.ParseUint(getEnv("MONGO_MAX_POOL_SIZE", "25"), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid MONGO_MAX_POOL_SIZE: %w", err)
	}

	minPool, err := strconv.ParseUint(getEnv("MONGO_MIN_POOL_SIZE", "0"), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid MONGO_MIN_POOL_SIZE: %w", err)
	}

	maxRetries, err := strconv.Atoi(getEnv("MONGO_MAX_RETRIES", "5"))
	if err != nil {
		return nil, fmt.Errorf("invalid MONGO_MAX_RETRIES: %w", err)
	}

	retryDelay, err := time.ParseDuration(getEnv("MONGO_RETRY_DELAY", "1s"))
	if err != nil {
		return nil, fmt.Errorf("invalid MONGO_RETRY_DELAY: %w", err)
	}

	connectTimeout, err := time.ParseDuration(getEnv("MONGO_CONNECT_TIMEOUT", "10s"))
	if err != nil {
		return nil, fmt.Errorf("invalid MONGO_CONNECT_TIMEOUT: %w", err)
	}

	return &database.MongoConfig{
		URI:            getEnv("MONGO_URI", getEnv("DATABASE_URL", "mongodb://localhost:27017")),
		Database:       getEnv("MONGO_DATABASE", "blog"),
		MaxPoolSize:    maxPool,
		MinPoolSize:    minPool,
		MaxRetries:     maxRetries,
		RetryDelay:     retryDelay,
		ConnectTimeout: connectTimeout,
	}, nil
}
