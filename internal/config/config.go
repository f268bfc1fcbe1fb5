package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kapu/movie-picker-go/internal/constants"
)

const (
	SettingsBackendFile  = "file"
	SettingsBackendRedis = "redis"
)

type Config struct {
	OMDb     OMDbConfig
	Settings SettingsConfig
	Redis    RedisConfig
	Logging  LoggingConfig
}

type OMDbConfig struct {
	BaseURL           string
	Timeout           time.Duration
	RequestsPerSecond int
	APIKey            string
}

type SettingsConfig struct {
	Backend string
	File    string
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
	Key      string
}

type LoggingConfig struct {
	Level string
	File  string
}

// Load reads configuration from the environment. envFiles are passed to
// godotenv; with none given a .env in the working directory is tried.
func Load(envFiles ...string) (*Config, error) {
	if len(envFiles) > 0 {
		if err := godotenv.Load(envFiles...); err != nil {
			return nil, fmt.Errorf("failed to load env file: %w", err)
		}
	} else {
		_ = godotenv.Load()
	}

	cfg := &Config{
		OMDb: OMDbConfig{
			BaseURL:           getEnv("OMDB_BASE_URL", constants.APIConfig.OMDbBaseURL),
			Timeout:           getEnvSeconds("OMDB_TIMEOUT_SECONDS", constants.APIConfig.OMDbTimeout),
			RequestsPerSecond: getEnvInt("OMDB_REQUESTS_PER_SECOND", constants.APIConfig.RequestsPerSecond),
			APIKey:            strings.TrimSpace(getEnv("OMDB_API_KEY", "")),
		},
		Settings: SettingsConfig{
			Backend: strings.ToLower(getEnv("SETTINGS_BACKEND", SettingsBackendFile)),
			File:    getEnv("SETTINGS_FILE", "config.json"),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnvInt("REDIS_PORT", 6379),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
			Key:      getEnv("REDIS_SETTINGS_KEY", "moviepicker:settings"),
		},
		Logging: LoggingConfig{
			Level: getEnv("LOG_LEVEL", "info"),
			File:  getEnv("LOG_FILE", ""),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.OMDb.BaseURL == "" {
		return fmt.Errorf("OMDB_BASE_URL is required")
	}
	if c.OMDb.Timeout <= 0 {
		return fmt.Errorf("OMDB_TIMEOUT_SECONDS must be positive")
	}
	if c.OMDb.RequestsPerSecond < 0 {
		return fmt.Errorf("OMDB_REQUESTS_PER_SECOND must not be negative")
	}
	switch c.Settings.Backend {
	case SettingsBackendFile:
		if c.Settings.File == "" {
			return fmt.Errorf("SETTINGS_FILE is required for the file backend")
		}
	case SettingsBackendRedis:
		if c.Redis.Key == "" {
			return fmt.Errorf("REDIS_SETTINGS_KEY is required for the redis backend")
		}
	default:
		return fmt.Errorf("unknown SETTINGS_BACKEND %q", c.Settings.Backend)
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvSeconds(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return time.Duration(intVal) * time.Second
		}
	}
	return defaultValue
}
