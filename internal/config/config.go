// Package config provides configuration loading and validation for the service and CLI.
package config

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Defaults
const (
	DefaultPort               = 5000
	DefaultAITimeoutSeconds   = 60
	DefaultRateLimitPerMinute = 30
	DefaultS3Region           = "us-east-1"
)

// Config represents the service configuration. Values come from an optional JSON file,
// then environment variables, then CLI flags (applied by the caller).
type Config struct {
	// Server
	Port               int `json:"port,omitempty"`
	RateLimitPerMinute int `json:"rate_limit_per_minute,omitempty"` // per client, 0 uses the default

	// AI producer
	GeminiAPIKey     string `json:"gemini_api_key,omitempty"`
	Model            string `json:"model,omitempty"`
	AITimeoutSeconds int    `json:"ai_timeout_seconds,omitempty"`

	// Engine
	CatalogPath string `json:"catalog_path,omitempty"` // replaces the embedded skill catalog
	UseBrowser  bool   `json:"use_browser,omitempty"`  // render JS-only profile pages with chromedp

	// AllowProfileURLs lets API callers submit profile_url. Off by default because the server
	// fetches the URL on the caller's behalf.
	AllowProfileURLs bool `json:"allow_profile_urls,omitempty"`

	// Storage
	DatabaseURL string `json:"database_url,omitempty"` // postgres://... or sqlite://path

	// Queue worker
	AMQPURL     string `json:"amqp_url,omitempty"`
	S3Bucket    string `json:"s3_bucket,omitempty"`
	S3Endpoint  string `json:"s3_endpoint,omitempty"`
	S3Region    string `json:"s3_region,omitempty"`
	S3AccessKey string `json:"s3_access_key,omitempty"`
	S3SecretKey string `json:"s3_secret_key,omitempty"`
}

// Environment variables read by ApplyEnv
const (
	EnvPort        = "PORT"
	EnvGeminiKey   = "GEMINI_API_KEY"
	EnvModel       = "GEMINI_MODEL"
	EnvDatabaseURL = "DATABASE_URL"
	EnvAMQPURL     = "AMQP_URL"
	EnvS3Bucket    = "S3_BUCKET"
	EnvS3Endpoint  = "S3_ENDPOINT"
	EnvS3Region    = "S3_REGION"
	EnvS3AccessKey = "S3_ACCESS_KEY"
	EnvS3SecretKey = "S3_SECRET_KEY"

	EnvAllowProfileURLs = "ALLOW_PROFILE_URLS"
)

// Defaults returns the built-in configuration
func Defaults() Config {
	return Config{
		Port:               DefaultPort,
		RateLimitPerMinute: DefaultRateLimitPerMinute,
		AITimeoutSeconds:   DefaultAITimeoutSeconds,
		S3Region:           DefaultS3Region,
	}
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// Load reads the optional config file, applies environment overrides and fills defaults.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if path != "" {
		loaded, err := LoadConfig(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return nil, err
	}

	merged := cfg.MergeWithDefaults(Defaults())
	return &merged, nil
}

// ApplyEnv overrides fields with any environment variables that are set.
// lookup is usually os.LookupEnv.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	strs := []struct {
		key string
		dst *string
	}{
		{EnvGeminiKey, &c.GeminiAPIKey},
		{EnvModel, &c.Model},
		{EnvDatabaseURL, &c.DatabaseURL},
		{EnvAMQPURL, &c.AMQPURL},
		{EnvS3Bucket, &c.S3Bucket},
		{EnvS3Endpoint, &c.S3Endpoint},
		{EnvS3Region, &c.S3Region},
		{EnvS3AccessKey, &c.S3AccessKey},
		{EnvS3SecretKey, &c.S3SecretKey},
	}
	for _, s := range strs {
		if v, ok := lookup(s.key); ok && strings.TrimSpace(v) != "" {
			*s.dst = strings.TrimSpace(v)
		}
	}

	if v, ok := lookup(EnvPort); ok && v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", EnvPort, err)
		}
		c.Port = port
	}

	if v, ok := lookup(EnvAllowProfileURLs); ok && v != "" {
		allow, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", EnvAllowProfileURLs, err)
		}
		c.AllowProfileURLs = allow
	}

	return nil
}

// Validate checks that the configuration has valid values.
// Note: This doesn't check for required fields since each command needs different ones.
func (c *Config) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be between 0 and 65535")
	}
	if c.RateLimitPerMinute < 0 {
		return fmt.Errorf("config error: 'rate_limit_per_minute' must be non-negative")
	}
	if c.AITimeoutSeconds < 0 {
		return fmt.Errorf("config error: 'ai_timeout_seconds' must be non-negative")
	}

	if c.DatabaseURL != "" {
		if _, _, err := ParseDatabaseURL(c.DatabaseURL); err != nil {
			return fmt.Errorf("config error: %w", err)
		}
	}

	if c.CatalogPath != "" {
		if _, err := os.Stat(c.CatalogPath); os.IsNotExist(err) {
			return fmt.Errorf("config error: catalog file not found: %s", c.CatalogPath)
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
// This is used to apply config file values as defaults for CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	mergeString(&result.GeminiAPIKey, defaults.GeminiAPIKey)
	mergeString(&result.Model, defaults.Model)
	mergeString(&result.CatalogPath, defaults.CatalogPath)
	mergeString(&result.DatabaseURL, defaults.DatabaseURL)
	mergeString(&result.AMQPURL, defaults.AMQPURL)
	mergeString(&result.S3Bucket, defaults.S3Bucket)
	mergeString(&result.S3Endpoint, defaults.S3Endpoint)
	mergeString(&result.S3Region, defaults.S3Region)
	mergeString(&result.S3AccessKey, defaults.S3AccessKey)
	mergeString(&result.S3SecretKey, defaults.S3SecretKey)

	// Int fields: use default if zero
	if result.Port == 0 {
		result.Port = defaults.Port
	}
	if result.RateLimitPerMinute == 0 {
		result.RateLimitPerMinute = defaults.RateLimitPerMinute
	}
	if result.AITimeoutSeconds == 0 {
		result.AITimeoutSeconds = defaults.AITimeoutSeconds
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}

func mergeString(dst *string, def string) {
	if *dst == "" {
		*dst = def
	}
}

// AITimeout returns the AI call timeout as a duration
func (c *Config) AITimeout() time.Duration {
	if c.AITimeoutSeconds <= 0 {
		return DefaultAITimeoutSeconds * time.Second
	}
	return time.Duration(c.AITimeoutSeconds) * time.Second
}

// AIConfigured reports whether a Gemini key is available
func (c *Config) AIConfigured() bool {
	return c.GeminiAPIKey != ""
}

// Database drivers accepted in database_url
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// ParseDatabaseURL splits a database URL into its driver and data source.
// postgres:// and postgresql:// URLs are passed through whole; sqlite://path yields the path.
func ParseDatabaseURL(raw string) (driver, dsn string, err error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", "", fmt.Errorf("invalid database_url: %w", err)
	}

	switch u.Scheme {
	case "postgres", "postgresql":
		return DriverPostgres, raw, nil
	case "sqlite", "sqlite3":
		path := strings.TrimPrefix(raw, u.Scheme+"://")
		if path == "" {
			return "", "", fmt.Errorf("invalid database_url: sqlite path is empty")
		}
		return DriverSQLite, path, nil
	default:
		return "", "", fmt.Errorf("unsupported database scheme %q", u.Scheme)
	}
}
