// Package config manages application configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"captionapi/captions"
)

// Config holds all application configuration for the caption service.
type Config struct {
	// Addr is the listen address for the HTTP server
	Addr string `yaml:"addr"`

	// MaxVideoDuration is the longest accepted video, in seconds (0 = unlimited)
	MaxVideoDuration int `yaml:"max_video_duration_seconds"`
	// RequestTimeout bounds each outbound platform request, in seconds
	RequestTimeout int `yaml:"request_timeout_seconds"`
	// DefaultLanguage is the caption language to extract
	DefaultLanguage string `yaml:"default_language"`
	// FormatPreference orders caption formats for track selection
	FormatPreference []string `yaml:"format_preference"`

	// YouTubeAPIKey enables Data API metadata lookups when set
	YouTubeAPIKey string `yaml:"youtube_api_key"`

	// AllowedOrigins lists CORS origins ("*" allows any)
	AllowedOrigins []string `yaml:"allowed_origins"`

	// RequestsPerSecond limits outbound requests per platform host
	RequestsPerSecond float64 `yaml:"requests_per_second"`

	// MaxRetries is the maximum number of retries for failed requests
	MaxRetries int `yaml:"max_retries"`
	// InitialBackoff is the initial backoff duration for retries
	InitialBackoff time.Duration `yaml:"initial_backoff"`
	// MaxBackoff is the maximum backoff duration for retries
	MaxBackoff time.Duration `yaml:"max_backoff"`

	// LogLevel is one of debug, info, warn, error
	LogLevel string `yaml:"log_level"`
	// LogFormat is "text" or "json"
	LogFormat string `yaml:"log_format"`
}

// DefaultConfig returns configuration with safe defaults.
func DefaultConfig() *Config {
	return &Config{
		Addr:              ":8000",
		MaxVideoDuration:  7200,
		RequestTimeout:    15,
		DefaultLanguage:   "en",
		AllowedOrigins:    []string{"*"},
		RequestsPerSecond: 2.5,
		MaxRetries:        2,
		InitialBackoff:    500 * time.Millisecond,
		MaxBackoff:        10 * time.Second,
		LogLevel:          "info",
		LogFormat:         "text",
	}
}

// Load loads configuration from environment variables, config file, and
// applies defaults. Priority: env vars > config file > defaults.
func Load() (*Config, error) {
	cfg := DefaultConfig()

	if err := cfg.loadFromFile(); err != nil {
		// Config file is optional
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("load config file: %w", err)
		}
	}

	cfg.loadFromEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// loadFromFile attempts to load config from captionapi.yaml in the current
// directory or the user config directory.
func (c *Config) loadFromFile() error {
	paths := []string{
		"captionapi.yaml",
		filepath.Join(os.Getenv("HOME"), ".config", "captionapi", "captionapi.yaml"),
	}

	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return err
		}

		if err := yaml.Unmarshal(data, c); err != nil {
			return fmt.Errorf("parse %s: %w", path, err)
		}
		return nil
	}

	return os.ErrNotExist
}

// loadFromEnv overrides config with environment variables.
func (c *Config) loadFromEnv() {
	if v := os.Getenv("CAPTIONAPI_ADDR"); v != "" {
		c.Addr = v
	}
	if v := os.Getenv("CAPTIONAPI_MAX_VIDEO_DURATION"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.MaxVideoDuration = n
		}
	}
	if v := os.Getenv("CAPTIONAPI_REQUEST_TIMEOUT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.RequestTimeout = n
		}
	}
	if v := os.Getenv("CAPTIONAPI_DEFAULT_LANGUAGE"); v != "" {
		c.DefaultLanguage = v
	}
	if v := os.Getenv("CAPTIONAPI_FORMAT_PREFERENCE"); v != "" {
		c.FormatPreference = splitList(v)
	}
	if v := os.Getenv("CAPTIONAPI_YOUTUBE_API_KEY"); v != "" {
		c.YouTubeAPIKey = v
	}
	if v := os.Getenv("CAPTIONAPI_ALLOWED_ORIGINS"); v != "" {
		c.AllowedOrigins = splitList(v)
	}
	if v := os.Getenv("CAPTIONAPI_REQUESTS_PER_SECOND"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			c.RequestsPerSecond = f
		}
	}
	if v := os.Getenv("CAPTIONAPI_MAX_RETRIES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.MaxRetries = n
		}
	}
	if v := os.Getenv("CAPTIONAPI_INITIAL_BACKOFF"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			c.InitialBackoff = d
		}
	}
	if v := os.Getenv("CAPTIONAPI_MAX_BACKOFF"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			c.MaxBackoff = d
		}
	}
	if v := os.Getenv("CAPTIONAPI_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv("CAPTIONAPI_LOG_FORMAT"); v != "" {
		c.LogFormat = v
	}
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// Validate checks that configuration values are valid and consistent.
func (c *Config) Validate() error {
	if c.Addr == "" {
		return fmt.Errorf("addr must be set")
	}
	if c.MaxVideoDuration < 0 {
		return fmt.Errorf("max_video_duration_seconds must be non-negative")
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("request_timeout_seconds must be positive")
	}
	if c.DefaultLanguage == "" {
		return fmt.Errorf("default_language must be set")
	}
	for _, f := range c.FormatPreference {
		if _, err := captions.ParseFormatKind(f); err != nil {
			return fmt.Errorf("format_preference: %w", err)
		}
	}
	if c.RequestsPerSecond <= 0 {
		return fmt.Errorf("requests_per_second must be positive")
	}
	if c.MaxRetries < 0 {
		return fmt.Errorf("max_retries must be non-negative")
	}
	if c.InitialBackoff <= 0 {
		return fmt.Errorf("initial_backoff must be positive")
	}
	if c.MaxBackoff < c.InitialBackoff {
		return fmt.Errorf("max_backoff must be >= initial_backoff")
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log_level must be one of debug, info, warn, error")
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("log_format must be text or json")
	}
	return nil
}

// Formats converts the configured format preference into parsed kinds.
// Validate has already rejected unknown names.
func (c *Config) Formats() []captions.FormatKind {
	out := make([]captions.FormatKind, 0, len(c.FormatPreference))
	for _, f := range c.FormatPreference {
		kind, err := captions.ParseFormatKind(f)
		if err != nil {
			continue
		}
		out = append(out, kind)
	}
	return out
}
