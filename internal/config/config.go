package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// DefaultAPIBaseURL is used when neither config nor environment provides one.
const DefaultAPIBaseURL = "http://localhost:8000/api"

// Config represents the global ~/.tutordesk/config.toml.
type Config struct {
	DefaultAccount string `toml:"default_account"`
	APIBaseURL     string `toml:"api_base_url"`
}

// Load reads config from the given path. Returns zero config and error if
// the file is missing.
func Load(path string) (*Config, error) {
	var cfg Config
	_, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Save writes config to the given path, creating parent dirs as needed.
func Save(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return err
	}
	encErr := toml.NewEncoder(f).Encode(cfg)
	if closeErr := f.Close(); closeErr != nil && encErr == nil {
		return closeErr
	}
	return encErr
}

// BaseURL resolves the API base URL with precedence: TUTORDESK_API_URL
// environment variable, then the config value, then the default.
func (c *Config) BaseURL() string {
	if v := os.Getenv("TUTORDESK_API_URL"); v != "" {
		return v
	}
	if c != nil && c.APIBaseURL != "" {
		return c.APIBaseURL
	}
	return DefaultAPIBaseURL
}
