package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all gateway settings
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Upstream UpstreamConfig `yaml:"upstream"`
	Journal  JournalConfig  `yaml:"journal"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port                string `yaml:"port"`
	ReadTimeoutSeconds  int    `yaml:"read_timeout_seconds"`
	WriteTimeoutSeconds int    `yaml:"write_timeout_seconds"`
	AllowOrigins        string `yaml:"allow_origins"`
}

// UpstreamConfig holds external provider settings
type UpstreamConfig struct {
	ForecastBaseURL  string `yaml:"forecast_base_url"`
	GeocodingBaseURL string `yaml:"geocoding_base_url"`
	TimeoutSeconds   int    `yaml:"timeout_seconds"`
}

// JournalConfig holds the optional lookup journal settings
type JournalConfig struct {
	DatabaseURL string `yaml:"database_url"`
}

// LoggingConfig holds logging settings
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// Default returns the built-in configuration; the gateway runs with it
// unchanged when no file and no environment overrides are present
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:                "8080",
			ReadTimeoutSeconds:  10,
			WriteTimeoutSeconds: 10,
			AllowOrigins:        "*",
		},
		Upstream: UpstreamConfig{
			ForecastBaseURL:  "https://api.open-meteo.com",
			GeocodingBaseURL: "https://geocoding-api.open-meteo.com",
			TimeoutSeconds:   10,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load builds the configuration from defaults, an optional YAML file, and
// environment overrides, in that order
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("config: failed to read %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("config: failed to parse %s: %w", path, err)
		}
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// applyEnv overrides file values with environment variables
func (c *Config) applyEnv() {
	c.Server.Port = getEnv("PORT", c.Server.Port)
	c.Server.AllowOrigins = getEnv("ALLOW_ORIGINS", c.Server.AllowOrigins)
	c.Upstream.ForecastBaseURL = getEnv("FORECAST_BASE_URL", c.Upstream.ForecastBaseURL)
	c.Upstream.GeocodingBaseURL = getEnv("GEOCODING_BASE_URL", c.Upstream.GeocodingBaseURL)
	c.Journal.DatabaseURL = getEnv("DATABASE_URL", c.Journal.DatabaseURL)
	c.Logging.Level = getEnv("LOG_LEVEL", c.Logging.Level)

	if v := os.Getenv("UPSTREAM_TIMEOUT_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Upstream.TimeoutSeconds = n
		}
	}
}

// Validate rejects configurations the server cannot run with
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("config: server port must not be empty")
	}
	if _, err := strconv.Atoi(c.Server.Port); err != nil {
		return fmt.Errorf("config: server port %q is not numeric", c.Server.Port)
	}
	if c.Server.ReadTimeoutSeconds <= 0 || c.Server.WriteTimeoutSeconds <= 0 {
		return fmt.Errorf("config: server timeouts must be positive")
	}
	if err := validateBaseURL("forecast_base_url", c.Upstream.ForecastBaseURL); err != nil {
		return err
	}
	if err := validateBaseURL("geocoding_base_url", c.Upstream.GeocodingBaseURL); err != nil {
		return err
	}
	if c.Upstream.TimeoutSeconds <= 0 {
		return fmt.Errorf("config: upstream timeout must be positive")
	}
	return nil
}

// validateBaseURL checks that a provider base URL is absolute
func validateBaseURL(name, raw string) error {
	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("config: %s %q is not a valid base URL", name, raw)
	}
	return nil
}

// ReadTimeout returns the server read timeout as a duration
func (c ServerConfig) ReadTimeout() time.Duration {
	return time.Duration(c.ReadTimeoutSeconds) * time.Second
}

// WriteTimeout returns the server write timeout as a duration
func (c ServerConfig) WriteTimeout() time.Duration {
	return time.Duration(c.WriteTimeoutSeconds) * time.Second
}

// Timeout returns the upstream request timeout as a duration
func (c UpstreamConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// getEnv reads an environment variable with a fallback default
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
