// Package config provides configuration management for the harvester.
// Values come from an optional YAML file, .env files and environment variables,
// in increasing order of precedence. Command-line flags are layered on top by cmd.
package config

import (
	"net/url"
	"time"

	"github.com/vuthanhdatt/baomoi/internal/logger"
)

// Default configuration values.
const (
	DefaultConfigPath     = "config.yml"
	DefaultBaseURL        = "https://baomoi.com"
	DefaultPostCount      = 200
	DefaultOutputRoot     = "result"
	DefaultMaxPages       = 500
	DefaultMaxEmptyPages  = 3
	DefaultRateRequests   = 10
	DefaultRatePer        = time.Second
	DefaultRequestTimeout = 30 * time.Second
	DefaultMaxBodyBytes   = 10 * 1024 * 1024
	DefaultAppName        = "baomoi"
	DefaultAppVersion     = "1.0.0"
)

// Config represents the application configuration.
type Config struct {
	App       AppConfig       `yaml:"app"`
	Logger    logger.Config   `yaml:"logger"`
	Site      SiteConfig      `yaml:"site"`
	Harvest   HarvestConfig   `yaml:"harvest"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
	HTTP      HTTPConfig      `yaml:"http"`
}

// AppConfig holds application metadata.
type AppConfig struct {
	Name        string `env:"APP_NAME"  yaml:"name"`
	Version     string `env:"APP_VERSION" yaml:"version"`
	Environment string `env:"APP_ENV"   yaml:"environment"`
	Debug       bool   `env:"APP_DEBUG" yaml:"debug"`
}

// SiteConfig describes the upstream site.
type SiteConfig struct {
	// BaseURL is the site origin. Post URLs are BaseURL + relative path.
	BaseURL string `env:"HARVEST_BASE_URL" yaml:"base_url"`
}

// HarvestConfig controls URL discovery and output.
type HarvestConfig struct {
	// PostCount is the number of posts to collect. Zero collects nothing.
	PostCount int `env:"HARVEST_POST_COUNT" yaml:"post_count"`
	// Category is a category slug; empty selects the homepage feed.
	Category string `env:"HARVEST_CATEGORY" yaml:"category"`
	// OutputRoot is the directory under which per-category directories are created.
	OutputRoot string `env:"HARVEST_OUTPUT_ROOT" yaml:"output_root"`
	// MaxPages bounds pagination.
	MaxPages int `env:"HARVEST_MAX_PAGES" yaml:"max_pages"`
	// MaxEmptyPages ends pagination after this many consecutive pages without new URLs.
	MaxEmptyPages int `env:"HARVEST_MAX_EMPTY_PAGES" yaml:"max_empty_pages"`
	// RespectRobotsTxt gates article fetches on robots.txt.
	RespectRobotsTxt bool `env:"HARVEST_RESPECT_ROBOTS_TXT" yaml:"respect_robots_txt"`
}

// RateLimitConfig configures the token bucket shared by article fetches.
type RateLimitConfig struct {
	// Requests is the number of admissions granted per window.
	Requests int `env:"HARVEST_RATE_REQUESTS" yaml:"requests"`
	// Per is the window length.
	Per time.Duration `env:"HARVEST_RATE_PER" yaml:"per"`
}

// HTTPConfig configures the shared HTTP client.
type HTTPConfig struct {
	RequestTimeout time.Duration `env:"HARVEST_REQUEST_TIMEOUT" yaml:"request_timeout"`
	MaxBodyBytes   int64         `env:"HARVEST_MAX_BODY_BYTES"  yaml:"max_body_bytes"`
}

// Load loads configuration from path. An empty path uses defaults and the environment only.
func Load(path string) (*Config, error) {
	cfg, err := loadFile[Config](path, setDefaults)
	if err != nil {
		return nil, err
	}

	applyDevelopmentLogging(cfg)

	return cfg, nil
}

// Default returns a configuration populated with defaults only.
func Default() *Config {
	cfg := &Config{}
	setDefaults(cfg)
	return cfg
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	u, err := url.Parse(c.Site.BaseURL)
	if c.Site.BaseURL == "" || err != nil || u.Scheme == "" || u.Host == "" {
		return &ValidationError{Field: "site.base_url", Value: c.Site.BaseURL, Reason: "must be an absolute URL"}
	}
	if c.Harvest.PostCount < 0 {
		return &ValidationError{Field: "harvest.post_count", Value: c.Harvest.PostCount, Reason: "must be non-negative"}
	}
	if c.Harvest.OutputRoot == "" {
		return &ValidationError{Field: "harvest.output_root", Value: c.Harvest.OutputRoot, Reason: "is required"}
	}
	if c.Harvest.MaxPages < 1 {
		return &ValidationError{Field: "harvest.max_pages", Value: c.Harvest.MaxPages, Reason: "must be positive"}
	}
	if c.Harvest.MaxEmptyPages < 1 {
		return &ValidationError{Field: "harvest.max_empty_pages", Value: c.Harvest.MaxEmptyPages, Reason: "must be positive"}
	}
	if c.RateLimit.Requests < 1 {
		return &ValidationError{Field: "rate_limit.requests", Value: c.RateLimit.Requests, Reason: "must be positive"}
	}
	if c.RateLimit.Per <= 0 {
		return &ValidationError{Field: "rate_limit.per", Value: c.RateLimit.Per, Reason: "must be positive"}
	}
	if c.HTTP.RequestTimeout < 0 {
		return &ValidationError{Field: "http.request_timeout", Value: c.HTTP.RequestTimeout, Reason: "must be non-negative"}
	}
	switch c.Logger.Level {
	case "debug", "info", "warn", "warning", "error":
	default:
		return &ValidationError{Field: "logger.level", Value: c.Logger.Level, Reason: "must be one of: debug, info, warn, error"}
	}
	return nil
}

// setDefaults fills zero-valued fields. Load runs it before reading the file and
// environment, so an explicit zero there is kept.
func setDefaults(cfg *Config) {
	if cfg.App.Name == "" {
		cfg.App.Name = DefaultAppName
	}
	if cfg.App.Version == "" {
		cfg.App.Version = DefaultAppVersion
	}
	if cfg.App.Environment == "" {
		cfg.App.Environment = "production"
	}
	cfg.Logger.SetDefaults()
	if cfg.Site.BaseURL == "" {
		cfg.Site.BaseURL = DefaultBaseURL
	}
	if cfg.Harvest.PostCount == 0 {
		cfg.Harvest.PostCount = DefaultPostCount
	}
	if cfg.Harvest.OutputRoot == "" {
		cfg.Harvest.OutputRoot = DefaultOutputRoot
	}
	if cfg.Harvest.MaxPages == 0 {
		cfg.Harvest.MaxPages = DefaultMaxPages
	}
	if cfg.Harvest.MaxEmptyPages == 0 {
		cfg.Harvest.MaxEmptyPages = DefaultMaxEmptyPages
	}
	if cfg.RateLimit.Requests == 0 {
		cfg.RateLimit.Requests = DefaultRateRequests
	}
	if cfg.RateLimit.Per == 0 {
		cfg.RateLimit.Per = DefaultRatePer
	}
	if cfg.HTTP.RequestTimeout == 0 {
		cfg.HTTP.RequestTimeout = DefaultRequestTimeout
	}
	if cfg.HTTP.MaxBodyBytes == 0 {
		cfg.HTTP.MaxBodyBytes = DefaultMaxBodyBytes
	}
}

// applyDevelopmentLogging separates debug level (APP_DEBUG) from development
// formatting (APP_ENV=development).
func applyDevelopmentLogging(cfg *Config) {
	if cfg.App.Debug {
		cfg.Logger.Level = "debug"
	}
	if cfg.App.Environment == "development" {
		cfg.Logger.Development = true
		cfg.Logger.Format = logger.FormatConsole
	}
}
