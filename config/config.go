// Package config provides application configuration management.
// It loads configuration from environment variables with sensible defaults.
package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	JWT      JWTConfig
	Auth     AuthConfig
	Import   ImportConfig
	Jobs     JobsConfig
	LogLevel string
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Host         string
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	Environment  string
}

// DatabaseConfig holds storage configuration.
// Driver is either "sqlite" (URL is a file path) or "postgres" (URL is a DSN).
type DatabaseConfig struct {
	Driver          string
	URL             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// RedisConfig holds Redis configuration.
type RedisConfig struct {
	Enabled  bool
	URL      string
	Password string
	DB       int
}

// JWTConfig holds JWT token configuration.
type JWTConfig struct {
	Secret            string
	AccessTokenExpiry time.Duration
}

// AuthConfig holds password hashing and login throttling settings.
type AuthConfig struct {
	BcryptCost    int
	LoginAttempts int
	LoginWindow   time.Duration
}

// ImportConfig holds bulk import limits and rule overrides.
type ImportConfig struct {
	MaxBulkItems   int
	MaxUploadBytes int64
	MaxBulkBytes   int64
	ChunkSize      int
	RulesFile      string
}

// JobsConfig holds scheduled job configuration.
type JobsConfig struct {
	Enabled          bool
	Timezone         string
	RateLimitCleanup string
	LowStockSweep    string
}

// Load loads configuration from environment variables.
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Host:         getEnv("SERVER_HOST", "0.0.0.0"),
			Port:         getEnvAsInt("SERVER_PORT", 5000),
			ReadTimeout:  getEnvAsDuration("SERVER_READ_TIMEOUT", 30*time.Second),
			WriteTimeout: getEnvAsDuration("SERVER_WRITE_TIMEOUT", 60*time.Second),
			Environment:  getEnv("ENV", "development"),
		},
		Database: DatabaseConfig{
			Driver:          getEnv("DATABASE_DRIVER", "sqlite"),
			URL:             getEnv("DATABASE_URL", "data/bizledger.db"),
			MaxOpenConns:    getEnvAsInt("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns:    getEnvAsInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: getEnvAsDuration("DB_CONN_MAX_LIFETIME", 5*time.Minute),
		},
		Redis: RedisConfig{
			Enabled:  getEnvAsBool("REDIS_ENABLED", false),
			URL:      getEnv("REDIS_URL", "redis://localhost:6379/0"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},
		JWT: JWTConfig{
			Secret:            getEnv("JWT_SECRET", "change-me-in-production"),
			AccessTokenExpiry: getEnvAsDuration("JWT_EXPIRY", time.Hour),
		},
		Auth: AuthConfig{
			BcryptCost:    getEnvAsInt("BCRYPT_COST", 12),
			LoginAttempts: getEnvAsInt("LOGIN_RATE_LIMIT", 5),
			LoginWindow:   getEnvAsDuration("LOGIN_RATE_WINDOW", time.Minute),
		},
		Import: ImportConfig{
			MaxBulkItems:   getEnvAsInt("IMPORT_MAX_ITEMS", 5000),
			MaxUploadBytes: int64(getEnvAsInt("IMPORT_MAX_UPLOAD_BYTES", 50<<20)),
			MaxBulkBytes:   int64(getEnvAsInt("IMPORT_MAX_BULK_BYTES", 10<<20)),
			ChunkSize:      getEnvAsInt("IMPORT_CHUNK_SIZE", 500),
			RulesFile:      getEnv("IMPORT_RULES_FILE", ""),
		},
		Jobs: JobsConfig{
			Enabled:          getEnvAsBool("JOBS_ENABLED", true),
			Timezone:         getEnv("JOBS_TIMEZONE", "UTC"),
			RateLimitCleanup: getEnv("JOBS_RATE_LIMIT_CLEANUP", "@every 1m"),
			LowStockSweep:    getEnv("JOBS_LOW_STOCK_SWEEP", "0 7 * * *"),
		},
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}
}

// Helper functions for environment variable parsing

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
