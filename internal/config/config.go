// Package config loads and validates the bot's YAML configuration.
package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

var envVarPattern = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)\}`)

// Config is the root configuration.
type Config struct {
	LogLevel string       `yaml:"log_level"`
	Server   ServerConfig `yaml:"server"`
	Line     LineConfig   `yaml:"line"`
	Quote    QuoteConfig  `yaml:"quote"`
}

// ServerConfig holds the webhook HTTP server settings.
type ServerConfig struct {
	Listen      string `yaml:"listen"`
	Path        string `yaml:"path"`
	MaxBodySize int64  `yaml:"max_body_size,omitempty"`
}

// LineConfig holds the platform credentials. Both values are secrets;
// reference them via ${ENV} in the config file rather than inlining.
type LineConfig struct {
	ChannelSecret string `yaml:"channel_secret"`
	ChannelToken  string `yaml:"channel_token"`
	ReplyEndpoint string `yaml:"reply_endpoint,omitempty"`
}

// QuoteConfig holds the market-data provider settings.
type QuoteConfig struct {
	BaseURL string `yaml:"base_url,omitempty"`
}

// Defaults returns a config with default values applied.
func Defaults() *Config {
	return &Config{
		LogLevel: "INFO",
		Server: ServerConfig{
			Listen:      ":8080",
			Path:        "/callback",
			MaxBodySize: 1048576,
		},
	}
}

// Load reads and parses configuration from a file.
func Load(configPath string) (*Config, error) {
	// Resolve to absolute path for consistent error messages
	absPath, err := filepath.Abs(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve config path %q: %w", configPath, err)
	}

	data, err := os.ReadFile(absPath)
	if err != nil {
		return nil, fmt.Errorf("config file not found: %s\n"+
			"Hint: Check the path or run with --config flag", absPath)
	}

	// Apply environment variable interpolation
	interpolated := interpolateEnv(string(data))

	cfg := Defaults()
	if err := yaml.Unmarshal([]byte(interpolated), cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	cfg = applyDefaults(cfg)

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// interpolateEnv replaces ${VAR} references with environment values.
// Unset variables interpolate to empty strings; validation catches the
// required ones.
func interpolateEnv(input string) string {
	return envVarPattern.ReplaceAllStringFunc(input, func(match string) string {
		varName := envVarPattern.FindStringSubmatch(match)[1]
		return os.Getenv(varName)
	})
}

// applyDefaults fills zero values that yaml may have overwritten with
// explicit empties.
func applyDefaults(cfg *Config) *Config {
	d := Defaults()
	if cfg.LogLevel == "" {
		cfg.LogLevel = d.LogLevel
	}
	if cfg.Server.Listen == "" {
		cfg.Server.Listen = d.Server.Listen
	}
	if cfg.Server.Path == "" {
		cfg.Server.Path = d.Server.Path
	}
	if cfg.Server.MaxBodySize == 0 {
		cfg.Server.MaxBodySize = d.Server.MaxBodySize
	}
	return cfg
}

// validate checks required fields and obvious misconfiguration.
func validate(cfg *Config) error {
	if cfg.Line.ChannelSecret == "" {
		return fmt.Errorf("line.channel_secret is required\n" +
			"Hint: set LINE_CHANNEL_SECRET and reference it as ${LINE_CHANNEL_SECRET}")
	}
	if cfg.Line.ChannelToken == "" {
		return fmt.Errorf("line.channel_token is required\n" +
			"Hint: set LINE_CHANNEL_ACCESS_TOKEN and reference it as ${LINE_CHANNEL_ACCESS_TOKEN}")
	}
	if !strings.HasPrefix(cfg.Server.Path, "/") {
		return fmt.Errorf("server.path must start with '/', got %q", cfg.Server.Path)
	}
	if cfg.Server.MaxBodySize < 0 {
		return fmt.Errorf("server.max_body_size must be positive, got %d", cfg.Server.MaxBodySize)
	}
	for field, value := range map[string]string{
		"line.reply_endpoint": cfg.Line.ReplyEndpoint,
		"quote.base_url":      cfg.Quote.BaseURL,
	} {
		if value == "" {
			continue
		}
		u, err := url.Parse(value)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("%s must be an absolute URL, got %q", field, value)
		}
	}
	return nil
}
