package api

import (
	"context"
	"net/http"

	"tutordesk/internal/model"
)

// RegisterRequest is the payload for account creation.
type RegisterRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"first_name"`
	Role      string `json:"role"`
}

// LoginResponse carries the opaque token the server minted for the session.
type LoginResponse struct {
	Token string     `json:"token"`
	User  model.User `json:"user"`
}

// Register creates a new marketplace account.
func (c *Client) Register(ctx context.Context, req RegisterRequest) (*LoginResponse, error) {
	var resp LoginResponse
	if err := c.do(ctx, http.MethodPost, "/register/", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Login exchanges credentials for a token.
func (c *Client) Login(ctx context.Context, email, password string) (*LoginResponse, error) {
	body := map[string]string{"email": email, "password": password}
	var resp LoginResponse
	if err := c.do(ctx, http.MethodPost, "/login/", body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Logout invalidates the current token server-side.
func (c *Client) Logout(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/logout/", nil, nil)
}

// GetUser returns the authenticated user's profile.
func (c *Client) GetUser(ctx context.Context) (*model.User, error) {
	var u model.User
	if err := c.do(ctx, http.MethodGet, "/user/", nil, &u); err != nil {
		return nil, err
	}
	return &u, nil
}
