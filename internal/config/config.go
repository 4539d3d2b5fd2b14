package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Server    ServerConfig
	FIRMS     FIRMSConfig
	Monitor   MonitorConfig
	Assistant AssistantConfig
	DB        DatabaseConfig
	Logging   LoggingConfig
}

type ServerConfig struct {
	Host string
	Port int
}

// FIRMSConfig scopes the hotspot feed: the NASA FIRMS area CSV API keyed
// by MAP_KEY, one detection product, and a bounding radius in degrees.
type FIRMSConfig struct {
	BaseURL       string
	APIKey        string
	Product       string
	RadiusDegrees int
}

type MonitorConfig struct {
	Enabled     bool
	Interval    time.Duration
	WorkerCount int
	BufferSize  int
}

type AssistantConfig struct {
	APIKey    string // empty disables the assistant endpoint
	Model     string
	MaxTokens int64
}

type DatabaseConfig struct {
	Path string
}

type LoggingConfig struct {
	Level string
}

func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Host: getEnv("SERVER_HOST", "localhost"),
			Port: getEnvInt("SERVER_PORT", 8080),
		},
		FIRMS: FIRMSConfig{
			BaseURL:       getEnv("FIRMS_BASE_URL", "https://firms.modaps.eosdis.nasa.gov/api/area/csv"),
			APIKey:        getEnv("FIRMS_MAP_KEY", ""),
			Product:       getEnv("FIRMS_PRODUCT", "VIIRS_SNPP_NRT"),
			RadiusDegrees: getEnvInt("FIRMS_RADIUS_DEGREES", 1),
		},
		Monitor: MonitorConfig{
			Enabled:     getEnvBool("MONITOR_ENABLED", true),
			Interval:    getEnvDuration("MONITOR_POLL_INTERVAL", 10*time.Minute),
			WorkerCount: getEnvInt("MONITOR_WORKER_COUNT", 2),
			BufferSize:  getEnvInt("MONITOR_BUFFER_SIZE", 20),
		},
		Assistant: AssistantConfig{
			APIKey:    getEnv("ANTHROPIC_API_KEY", ""),
			Model:     getEnv("ASSISTANT_MODEL", "claude-haiku-4-5-20251001"),
			MaxTokens: int64(getEnvInt("ASSISTANT_MAX_TOKENS", 1024)),
		},
		DB: DatabaseConfig{
			Path: getEnv("DB_PATH", "./data/wildfire-watch.db"),
		},
		Logging: LoggingConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[c.Logging.Level] {
		return fmt.Errorf("invalid log level: %s", c.Logging.Level)
	}

	if c.FIRMS.APIKey == "" {
		return fmt.Errorf("FIRMS_MAP_KEY is required")
	}
	if c.FIRMS.RadiusDegrees < 1 || c.FIRMS.RadiusDegrees > 10 {
		return fmt.Errorf("invalid FIRMS radius: %d degrees", c.FIRMS.RadiusDegrees)
	}

	if c.Monitor.Enabled && c.Monitor.Interval < time.Minute {
		return fmt.Errorf("monitor poll interval must be at least 1 minute")
	}

	return nil
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if val := os.Getenv(key); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
	}
	return fallback
}
