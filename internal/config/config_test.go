package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestSaveAndLoad(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "config.toml")

	cfg := &Config{DefaultAccount: "work", APIBaseURL: "https://api.example.com/api"}
	if err := Save(path, cfg); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if loaded.DefaultAccount != "work" {
		t.Errorf("DefaultAccount = %q, want %q", loaded.DefaultAccount, "work")
	}
	if loaded.APIBaseURL != "https://api.example.com/api" {
		t.Errorf("APIBaseURL = %q, want %q", loaded.APIBaseURL, "https://api.example.com/api")
	}
}

func TestLoadMissing(t *testing.T) {
	_, err := Load("/nonexistent/config.toml")
	if err == nil {
		t.Error("Load() expected error for missing file")
	}
}

func TestSavePermissions(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "config.toml")

	if err := Save(path, &Config{DefaultAccount: "main"}); err != nil {
		t.Fatal(err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	perm := info.Mode().Perm()
	if perm != 0600 {
		t.Errorf("file permission = %o, want 0600", perm)
	}
}

func TestBaseURLPrecedence(t *testing.T) {
	cfg := &Config{APIBaseURL: "https://cfg.example.com/api"}
	if got := cfg.BaseURL(); got != "https://cfg.example.com/api" {
		t.Errorf("BaseURL() = %q, want config value", got)
	}

	t.Setenv("TUTORDESK_API_URL", "https://env.example.com/api")
	if got := cfg.BaseURL(); got != "https://env.example.com/api" {
		t.Errorf("BaseURL() = %q, want env override", got)
	}
}

func TestBaseURLDefault(t *testing.T) {
	var cfg *Config
	if got := cfg.BaseURL(); got != DefaultAPIBaseURL {
		t.Errorf("BaseURL() = %q, want default", got)
	}
}
