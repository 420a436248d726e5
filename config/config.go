// Package config manages application configuration.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	// Load a local .env file, if present, before env overrides are read.
	_ "github.com/joho/godotenv/autoload"
)

// Config holds all application configuration for course download and export
// operations.
type Config struct {
	// YtdlpPath is the path to the yt-dlp executable (default: "yt-dlp")
	YtdlpPath string `json:"ytdlp_path"`
	// CookieBrowser is the browser profile yt-dlp sources cookies from
	CookieBrowser string `json:"cookie_browser"`

	// RequestTimeout bounds metadata API requests
	RequestTimeout time.Duration `json:"request_timeout"`
	// ResolveTimeout bounds a single media URL resolution
	ResolveTimeout time.Duration `json:"resolve_timeout"`

	// Threads is the parallel fragment count forwarded to the download tool
	Threads int `json:"threads"`
	// Quality is the format-preference sort expression forwarded to the tool
	Quality string `json:"quality"`
}

// DefaultConfig returns configuration with safe defaults.
func DefaultConfig() *Config {
	return &Config{
		YtdlpPath:      "yt-dlp",
		CookieBrowser:  "chrome",
		RequestTimeout: 30 * time.Second,
		ResolveTimeout: 60 * time.Second,
		Threads:        8,
		Quality:        "res:1080,codec:h264",
	}
}

// Load loads configuration from environment variables, config file, and
// applies defaults. Priority: env vars > config file > defaults.
func Load() (*Config, error) {
	cfg := DefaultConfig()

	// Try to load from config file
	if err := cfg.loadFromFile(); err != nil {
		// Config file is optional
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("load config file: %w", err)
		}
	}

	// Override with environment variables
	cfg.loadFromEnv()

	// Validate
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// loadFromFile attempts to load config from dlaidl.json in the current
// directory or home directory.
func (c *Config) loadFromFile() error {
	paths := []string{
		"dlaidl.json",
		filepath.Join(os.Getenv("HOME"), ".config", "dlaidl", "dlaidl.json"),
	}

	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return err
		}

		if err := json.Unmarshal(data, c); err != nil {
			return fmt.Errorf("parse %s: %w", path, err)
		}
		return nil
	}

	return os.ErrNotExist
}

// loadFromEnv overrides config with environment variables.
func (c *Config) loadFromEnv() {
	if v := os.Getenv("DLAIDL_YTDLP_PATH"); v != "" {
		c.YtdlpPath = v
	}
	if v := os.Getenv("DLAIDL_COOKIE_BROWSER"); v != "" {
		c.CookieBrowser = v
	}
	if v := os.Getenv("DLAIDL_REQUEST_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			c.RequestTimeout = d
		}
	}
	if v := os.Getenv("DLAIDL_RESOLVE_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			c.ResolveTimeout = d
		}
	}
	if v := os.Getenv("DLAIDL_THREADS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Threads = n
		}
	}
	if v := os.Getenv("DLAIDL_QUALITY"); v != "" {
		c.Quality = v
	}
}

// Validate checks that configuration values are valid and consistent.
// It returns an error if any configuration value is invalid.
func (c *Config) Validate() error {
	if c.YtdlpPath == "" {
		return fmt.Errorf("ytdlp_path must not be empty")
	}
	if c.CookieBrowser == "" {
		return fmt.Errorf("cookie_browser must not be empty")
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("request_timeout must be positive")
	}
	if c.ResolveTimeout <= 0 {
		return fmt.Errorf("resolve_timeout must be positive")
	}
	if c.Threads <= 0 {
		return fmt.Errorf("threads must be positive")
	}
	if c.Quality == "" {
		return fmt.Errorf("quality must not be empty")
	}
	return nil
}
