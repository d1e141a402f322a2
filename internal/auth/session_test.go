package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"tutordesk/internal/api"
)

func testSession(t *testing.T) *Session {
	t.Helper()
	return &Session{path: filepath.Join(t.TempDir(), "token")}
}

func TestLoginPersistsToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"token":"tok-1","user":{"id":5,"email":"a@b.c","role":"student"}}`))
	}))
	defer srv.Close()

	s := testSession(t)
	c := api.New(srv.URL, s, nil)

	user, err := s.Login(context.Background(), c, "a@b.c", "pw")
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if user.ID != 5 {
		t.Errorf("user.ID = %d, want 5", user.ID)
	}
	if s.Token() != "tok-1" {
		t.Errorf("Token() = %q, want tok-1", s.Token())
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		t.Fatalf("token file not written: %v", err)
	}
	if string(data) != "tok-1\n" {
		t.Errorf("token file = %q, want tok-1\\n", data)
	}

	info, _ := os.Stat(s.path)
	if perm := info.Mode().Perm(); perm != 0600 {
		t.Errorf("token file permission = %o, want 0600", perm)
	}
}

func TestLoginFailureLeavesSessionEmpty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"message":"bad credentials"}`))
	}))
	defer srv.Close()

	s := testSession(t)
	c := api.New(srv.URL, s, nil)

	if _, err := s.Login(context.Background(), c, "a@b.c", "wrong"); err == nil {
		t.Fatal("Login() should fail")
	}
	if s.Authenticated() {
		t.Error("session should not be authenticated after failed login")
	}
}

func TestLogoutClearsTokenEvenOnServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	s := testSession(t)
	if err := s.persist("tok-2"); err != nil {
		t.Fatal(err)
	}
	s.token = "tok-2"

	c := api.New(srv.URL, s, nil)
	if err := s.Logout(context.Background(), c); err == nil {
		t.Error("Logout() should surface the server error")
	}
	if s.Authenticated() {
		t.Error("token should be cleared locally regardless of server error")
	}
	if _, err := os.Stat(s.path); !os.IsNotExist(err) {
		t.Error("token file should be removed")
	}
}

func TestLoadPicksUpPersistedToken(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "token")
	if err := os.WriteFile(path, []byte("tok-3\n"), 0600); err != nil {
		t.Fatal(err)
	}

	s := loadFrom(path)
	if s.Token() != "tok-3" {
		t.Errorf("Token() = %q, want tok-3", s.Token())
	}
	if !s.Authenticated() {
		t.Error("session with persisted token should be authenticated")
	}
}

func TestLoadMissingTokenFile(t *testing.T) {
	s := loadFrom(filepath.Join(t.TempDir(), "token"))
	if s.Authenticated() {
		t.Error("session without token file should not be authenticated")
	}
}
