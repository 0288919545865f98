// Package config loads the application configuration: a YAML file at
// ~/.capex/config.yaml (or CAPEX_CONFIG) with CAPEX_* environment overrides
// on top.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config holds all application settings.
type Config struct {
	// StoreURL is the list store site root,
	// e.g. "https://intranet.example.com/sites/capex".
	StoreURL string `yaml:"store_url"`

	// AuthTokenFile points at a file whose trimmed contents are sent as a
	// bearer token. Empty means unauthenticated (on-premise setups).
	AuthTokenFile string `yaml:"auth_token_file"`

	// TimeoutMs bounds each store request (default 15000).
	TimeoutMs int `yaml:"timeout_ms"`

	// LogCalls enables the store call log on stderr.
	LogCalls bool `yaml:"log_calls"`
}

// Default returns a Config with sensible defaults.
func Default() Config {
	return Config{
		TimeoutMs: 15000,
	}
}

// Load reads the YAML file when present and applies environment overrides.
// A missing file is not an error; a missing store URL is caught later when
// a command actually needs the store.
func Load() (Config, error) {
	cfg := Default()

	path := os.Getenv("CAPEX_CONFIG")
	if path == "" {
		home, err := os.UserHomeDir()
		if err == nil {
			path = filepath.Join(home, ".capex", "config.yaml")
		}
	}

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
			// fall through to env overrides
		case err != nil:
			return cfg, fmt.Errorf("reading config %s: %w", path, err)
		default:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return cfg, fmt.Errorf("parsing config %s: %w", path, err)
			}
		}
	}

	applyEnv(&cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("CAPEX_STORE_URL"); v != "" {
		cfg.StoreURL = v
	}
	if v := os.Getenv("CAPEX_AUTH_TOKEN_FILE"); v != "" {
		cfg.AuthTokenFile = v
	}
	if v := os.Getenv("CAPEX_TIMEOUT_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.TimeoutMs = n
		}
	}
	if v := os.Getenv("CAPEX_LOG_CALLS"); v != "" {
		cfg.LogCalls, _ = strconv.ParseBool(v)
	}
}

// AuthToken reads and trims the token file, or returns "" when none is
// configured.
func (c Config) AuthToken() (string, error) {
	if c.AuthTokenFile == "" {
		return "", nil
	}
	data, err := os.ReadFile(c.AuthTokenFile)
	if err != nil {
		return "", fmt.Errorf("reading auth token: %w", err)
	}
	token := string(data)
	for len(token) > 0 && (token[len(token)-1] == '\n' || token[len(token)-1] == '\r') {
		token = token[:len(token)-1]
	}
	return token, nil
}
