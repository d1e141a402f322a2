package account

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDir(t *testing.T) {
	home, _ := os.UserHomeDir()
	got := Dir("main")
	want := filepath.Join(home, ".tutordesk", "accounts", "main")
	if got != want {
		t.Errorf("Dir(main) = %q, want %q", got, want)
	}
}

func TestTokenPath(t *testing.T) {
	got := TokenPath("test")
	if !strings.HasSuffix(got, filepath.Join("accounts", "test", "token")) {
		t.Errorf("TokenPath(test) = %q, want suffix accounts/test/token", got)
	}
}

func TestCacheDBPath(t *testing.T) {
	got := CacheDBPath("test")
	if !strings.HasSuffix(got, filepath.Join("accounts", "test", "cache.db")) {
		t.Errorf("CacheDBPath(test) = %q, want suffix accounts/test/cache.db", got)
	}
}

func TestLockPath(t *testing.T) {
	got := LockPath("test")
	if !strings.HasSuffix(got, filepath.Join("accounts", "test", "LOCK")) {
		t.Errorf("LockPath(test) = %q, want suffix accounts/test/LOCK", got)
	}
}
