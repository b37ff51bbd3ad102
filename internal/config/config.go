// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for gpterm.
//
// Configuration lives at ~/.gpterm/config.toml, with sensible defaults
// and environment variable overrides. A missing file falls back to
// defaults; a file that exists but fails to parse or validate is a
// hard error, surfaced before the session starts.
package config

import (
	"bytes"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/jeranaias/gpterm-tui/internal/util"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete gpterm configuration.
type Config struct {
	Provider   ProviderConfig   `toml:"provider"`
	UI         UIConfig         `toml:"ui"`
	Transcript TranscriptConfig `toml:"transcript"`
	Log        LogConfig        `toml:"log"`
}

// ProviderConfig selects and parameterizes the completion backend.
type ProviderConfig struct {
	// Mode selects the request variant: "chat" (multi-turn, sends the
	// whole conversation) or "text" (single-turn, sends only the
	// latest query).
	Mode string `toml:"mode"`

	// BaseURL of the OpenAI-compatible backend.
	BaseURL string `toml:"base_url"`

	// APIKey sent as a Bearer token. Usually set via OPENAI_API_KEY
	// rather than the file.
	APIKey string `toml:"api_key"`

	// Model identifier. Defaults depend on Mode.
	Model string `toml:"model"`

	// Temperature and MaxTokens apply to "text" mode requests.
	Temperature float64 `toml:"temperature"`
	MaxTokens   int     `toml:"max_tokens"`

	// TimeoutSecs bounds a completion round trip.
	TimeoutSecs int `toml:"timeout_secs"`

	// RequestsPerMinute paces requests; 0 disables pacing.
	RequestsPerMinute int `toml:"requests_per_minute"`
}

// UIConfig contains display configuration.
type UIConfig struct {
	// Username labels the operator's turns. Defaults to $USER.
	Username string `toml:"username"`
}

// TranscriptConfig controls transcript persistence.
type TranscriptConfig struct {
	// Path of the transcript to load at startup. Empty starts an
	// empty conversation. A set path that cannot be loaded is a hard
	// startup error.
	Path string `toml:"path"`

	// Watch reloads the conversation when the transcript file is
	// modified externally.
	Watch bool `toml:"watch"`
}

// LogConfig controls the technical log file.
type LogConfig struct {
	// File path; empty means ~/.gpterm/gpterm.log.
	File string `toml:"file"`

	// Level is one of "debug", "info", "warn", "error".
	Level string `toml:"level"`

	// Rotation limits.
	MaxSizeMB  int `toml:"max_size_mb"`
	MaxBackups int `toml:"max_backups"`
}

// =============================================================================
// DEFAULTS
// =============================================================================

// defaultModels maps provider mode to its default model.
var defaultModels = map[string]string{
	"chat": "gpt-3.5-turbo",
	"text": "text-davinci-003",
}

// Default returns the built-in default configuration.
func Default() *Config {
	username := os.Getenv("USER")
	if username == "" {
		username = "you"
	}
	return &Config{
		Provider: ProviderConfig{
			Mode:        "chat",
			BaseURL:     "https://api.openai.com",
			Model:       "",
			Temperature: 0.0,
			MaxTokens:   1000,
			TimeoutSecs: 60,
		},
		UI: UIConfig{
			Username: username,
		},
		Log: LogConfig{
			Level:      "info",
			MaxSizeMB:  10,
			MaxBackups: 3,
		},
	}
}

// =============================================================================
// PATHS
// =============================================================================

// ConfigDir returns the gpterm configuration directory.
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".gpterm"), nil
}

// ConfigPath returns the path to the config file.
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// EnsureConfigDir ensures the config directory exists.
func EnsureConfigDir() error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}
	return os.MkdirAll(dir, 0755)
}

// ensureSecurePermissions checks and fixes permissions on the config
// file. It may hold an API key, so anything wider than 0600 is
// tightened.
func ensureSecurePermissions(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if mode := info.Mode().Perm(); mode != 0600 {
		if err := os.Chmod(path, 0600); err != nil {
			return fmt.Errorf("failed to fix insecure permissions (was %o): %w", mode, err)
		}
	}
	return nil
}

// =============================================================================
// LOAD / SAVE
// =============================================================================

// Load reads the config file, applies environment overrides, and
// validates. A missing file yields defaults; a present but broken file
// is an error.
func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return nil, err
	}
	return LoadFromPath(path)
}

// LoadFromPath loads configuration from an explicit path.
func LoadFromPath(path string) (*Config, error) {
	cfg := Default()

	if _, statErr := os.Stat(path); statErr == nil {
		if err := ensureSecurePermissions(path); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not ensure secure permissions on %s: %v\n", path, err)
		}
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("failed to decode %s: %w", path, err)
		}
	}

	cfg.ApplyEnvOverrides()
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// Save writes the config to the default path with owner-only
// permissions.
func Save(cfg *Config) error {
	if err := EnsureConfigDir(); err != nil {
		return err
	}
	path, err := ConfigPath()
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return util.AtomicWriteFile(path, buf.Bytes(), 0600)
}

// =============================================================================
// ENV OVERRIDES, DEFAULTS, VALIDATION
// =============================================================================

// ApplyEnvOverrides applies environment variables on top of file
// values. GPTERM_API_KEY wins over OPENAI_API_KEY.
func (c *Config) ApplyEnvOverrides() {
	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		c.Provider.APIKey = key
	}
	if key := os.Getenv("GPTERM_API_KEY"); key != "" {
		c.Provider.APIKey = key
	}
	if mode := os.Getenv("GPTERM_MODE"); mode != "" {
		c.Provider.Mode = mode
	}
	if model := os.Getenv("GPTERM_MODEL"); model != "" {
		c.Provider.Model = model
	}
	if baseURL := os.Getenv("GPTERM_BASE_URL"); baseURL != "" {
		c.Provider.BaseURL = baseURL
	}
	if transcript := os.Getenv("GPTERM_TRANSCRIPT"); transcript != "" {
		c.Transcript.Path = transcript
	}
}

// SetDefaults fills anything still empty after file and env layers.
func (c *Config) SetDefaults() {
	if c.Provider.Model == "" {
		c.Provider.Model = defaultModels[c.Provider.Mode]
	}
	if c.Provider.TimeoutSecs <= 0 {
		c.Provider.TimeoutSecs = 60
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.File == "" {
		if dir, err := ConfigDir(); err == nil {
			c.Log.File = filepath.Join(dir, "gpterm.log")
		}
	}
}

// Validate checks the configuration for contradictions.
func (c *Config) Validate() error {
	var errs []string

	if c.Provider.Mode != "chat" && c.Provider.Mode != "text" {
		errs = append(errs, fmt.Sprintf("provider.mode must be \"chat\" or \"text\", got %q", c.Provider.Mode))
	}
	if c.Provider.Temperature < 0 || c.Provider.Temperature > 2 {
		errs = append(errs, fmt.Sprintf("provider.temperature must be in [0, 2], got %g", c.Provider.Temperature))
	}
	if c.Provider.MaxTokens <= 0 {
		errs = append(errs, fmt.Sprintf("provider.max_tokens must be positive, got %d", c.Provider.MaxTokens))
	}
	if u, err := url.Parse(c.Provider.BaseURL); err != nil || u.Scheme == "" || u.Host == "" {
		errs = append(errs, fmt.Sprintf("provider.base_url is not a valid URL: %q", c.Provider.BaseURL))
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Sprintf("log.level must be one of debug/info/warn/error, got %q", c.Log.Level))
	}

	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}
