// Package common provides shared utilities for Abacus
package common

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// Config holds all configuration for Abacus
type Config struct {
	Environment string         `toml:"environment"`
	Server      ServerConfig   `toml:"server"`
	Clients     ClientsConfig  `toml:"clients"`
	Currency    CurrencyConfig `toml:"currency"`
	Tools       ToolsConfig    `toml:"tools"`
	Logging     LoggingConfig  `toml:"logging"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host string `toml:"host"`
	Port int    `toml:"port"`
	// AllowedOrigins for CORS; empty allows any origin.
	AllowedOrigins []string `toml:"allowed_origins"`
}

// Address returns host:port for net/http.
func (s ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// ClientsConfig holds API client configurations
type ClientsConfig struct {
	ExchangeRate ExchangeRateConfig `toml:"exchange_rate"`
}

// ExchangeRateConfig holds exchange-rate API configuration
type ExchangeRateConfig struct {
	BaseURL   string `toml:"base_url"`
	APIKey    string `toml:"api_key"`
	RateLimit int    `toml:"rate_limit"`
	Timeout   string `toml:"timeout"`
	// Offline skips the network and always uses the built-in table.
	Offline bool `toml:"offline"`
}

// GetTimeout parses and returns the timeout duration
func (c *ExchangeRateConfig) GetTimeout() time.Duration {
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 10 * time.Second
	}
	return d
}

// CurrencyConfig controls the rate cache.
type CurrencyConfig struct {
	CacheTTL string `toml:"cache_ttl"`
	// Base is the quote currency fetched when none is requested.
	Base string `toml:"base"`
}

// GetCacheTTL parses and returns the cache lifetime
func (c *CurrencyConfig) GetCacheTTL() time.Duration {
	d, err := time.ParseDuration(c.CacheTTL)
	if err != nil || d <= 0 {
		return time.Hour
	}
	return d
}

// ToolsConfig limits the binary upload tools.
type ToolsConfig struct {
	MaxUploadMB int `toml:"max_upload_mb"`
}

// MaxUploadBytes returns the upload limit in bytes.
func (c ToolsConfig) MaxUploadBytes() int64 {
	if c.MaxUploadMB <= 0 {
		return 20 << 20
	}
	return int64(c.MaxUploadMB) << 20
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level    string   `toml:"level"`
	Format   string   `toml:"format"`
	Outputs  []string `toml:"outputs"`
	FilePath string   `toml:"file_path"`
}

// NewDefaultConfig returns a Config with sensible defaults
func NewDefaultConfig() *Config {
	return &Config{
		Environment: "development",
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 8080,
		},
		Clients: ClientsConfig{
			ExchangeRate: ExchangeRateConfig{
				BaseURL:   "https://open.er-api.com/v6",
				RateLimit: 2,
				Timeout:   "10s",
			},
		},
		Currency: CurrencyConfig{
			CacheTTL: "1h",
			Base:     "USD",
		},
		Tools: ToolsConfig{
			MaxUploadMB: 20,
		},
		Logging: LoggingConfig{
			Level:    "info",
			Format:   "console",
			Outputs:  []string{"console"},
			FilePath: "./logs/abacus.log",
		},
	}
}

// LoadConfig loads configuration from files with environment overrides
func LoadConfig(paths ...string) (*Config, error) {
	config := NewDefaultConfig()

	// Later files override earlier ones
	for _, path := range paths {
		if path == "" {
			continue
		}

		if _, err := os.Stat(path); os.IsNotExist(err) {
			continue
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}

		if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	applyEnvOverrides(config)
	config.Currency.Base = strings.ToUpper(strings.TrimSpace(config.Currency.Base))
	if config.Currency.Base == "" {
		config.Currency.Base = "USD"
	}

	return config, nil
}

// ConfigPaths returns the candidate config files in load order: the file
// next to the binary, then config/abacus.toml, then $ABACUS_CONFIG.
func ConfigPaths() []string {
	var paths []string
	if exe, err := os.Executable(); err == nil {
		paths = append(paths, filepath.Join(filepath.Dir(exe), "abacus.toml"))
	}
	paths = append(paths, filepath.Join("config", "abacus.toml"))
	if p := os.Getenv("ABACUS_CONFIG"); p != "" {
		paths = append(paths, p)
	}
	return paths
}

// applyEnvOverrides applies environment variable overrides to config
func applyEnvOverrides(config *Config) {
	if env := os.Getenv("ABACUS_ENV"); env != "" {
		config.Environment = env
	}

	if host := os.Getenv("ABACUS_HOST"); host != "" {
		config.Server.Host = host
	}

	if port := os.Getenv("ABACUS_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Server.Port = p
		}
	}

	if level := os.Getenv("ABACUS_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}

	if format := os.Getenv("ABACUS_LOG_FORMAT"); format != "" {
		config.Logging.Format = format
	}

	if v := os.Getenv("ABACUS_EXCHANGE_RATE_URL"); v != "" {
		config.Clients.ExchangeRate.BaseURL = v
	}
	if v := os.Getenv("ABACUS_EXCHANGE_RATE_API_KEY"); v != "" {
		config.Clients.ExchangeRate.APIKey = v
	}
	if v := os.Getenv("ABACUS_OFFLINE"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			config.Clients.ExchangeRate.Offline = b
		}
	}
	if v := os.Getenv("ABACUS_CURRENCY_BASE"); v != "" {
		config.Currency.Base = v
	}
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	env := strings.ToLower(strings.TrimSpace(c.Environment))
	return env == "production" || env == "prod"
}

// Public is the subset of configuration safe to expose over the API.
type Public struct {
	Environment     string `json:"environment"`
	Version         string `json:"version"`
	CurrencyBase    string `json:"currency_base"`
	CurrencyOffline bool   `json:"currency_offline"`
	CacheTTL        string `json:"cache_ttl"`
	MaxUploadMB     int    `json:"max_upload_mb"`
}

// Public returns the non-secret view of the configuration.
func (c *Config) Public() Public {
	return Public{
		Environment:     c.Environment,
		Version:         GetVersion(),
		CurrencyBase:    c.Currency.Base,
		CurrencyOffline: c.Clients.ExchangeRate.Offline,
		CacheTTL:        c.Currency.GetCacheTTL().String(),
		MaxUploadMB:     int(c.Tools.MaxUploadBytes() >> 20),
	}
}
