package auth

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"tutordesk/internal/account"
	"tutordesk/internal/api"
	"tutordesk/internal/model"
)

// Session owns the token lifecycle for one account: set on login, cleared on
// logout, persisted under the account directory so the CLI and the TUI share
// it. It implements api.TokenSource; everything else only reads the token.
type Session struct {
	mu    sync.RWMutex
	path  string
	token string
	user  *model.User
}

// Load creates a session for the account, picking up a previously persisted
// token if one exists.
func Load(accountName string) *Session {
	return loadFrom(account.TokenPath(accountName))
}

func loadFrom(path string) *Session {
	s := &Session{path: path}
	if data, err := os.ReadFile(path); err == nil {
		s.token = strings.TrimSpace(string(data))
	}
	return s
}

// Token returns the current token, or empty if not logged in.
func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// Authenticated reports whether a token is held.
func (s *Session) Authenticated() bool {
	return s.Token() != ""
}

// User returns the profile cached at login, or nil.
func (s *Session) User() *model.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

// Login exchanges credentials for a token and persists it.
func (s *Session) Login(ctx context.Context, c *api.Client, email, password string) (*model.User, error) {
	resp, err := c.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.token = resp.Token
	u := resp.User
	s.user = &u
	s.mu.Unlock()

	if err := s.persist(resp.Token); err != nil {
		return nil, fmt.Errorf("persist token: %w", err)
	}
	return &u, nil
}

// Register creates an account and persists the token the server minted
// for it, leaving the session logged in as the new user.
func (s *Session) Register(ctx context.Context, c *api.Client, req api.RegisterRequest) (*model.User, error) {
	resp, err := c.Register(ctx, req)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.token = resp.Token
	u := resp.User
	s.user = &u
	s.mu.Unlock()

	if err := s.persist(resp.Token); err != nil {
		return nil, fmt.Errorf("persist token: %w", err)
	}
	return &u, nil
}

// Logout invalidates the token server-side and clears local state. The local
// token is cleared even if the server call fails; a stale server session is
// preferable to a client that cannot log out.
func (s *Session) Logout(ctx context.Context, c *api.Client) error {
	apiErr := c.Logout(ctx)

	s.mu.Lock()
	s.token = ""
	s.user = nil
	s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove token file: %w", err)
	}
	return apiErr
}

func (s *Session) persist(token string) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return err
	}
	return os.WriteFile(s.path, []byte(token+"\n"), 0600)
}
