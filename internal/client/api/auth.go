package api

import (
	"context"
	"net/http"

	"github.com/echowave/echowave/internal/client/kv"
	"github.com/echowave/echowave/internal/client/models"
)

// Credentials is a username/password pair.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// RegisterRequest creates an account. Registration does not authenticate;
// callers log in separately with the same credentials.
type RegisterRequest struct {
	Username    string `json:"username"`
	Email       string `json:"email,omitempty"`
	Password    string `json:"password"`
	DisplayName string `json:"display_name,omitempty"`
}

type loginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// Register creates a new account on the backend.
func (c *Client) Register(ctx context.Context, req RegisterRequest) error {
	return c.doJSON(ctx, http.MethodPost, "/api/auth/register", req, nil)
}

// Login exchanges credentials for a bearer token. On success the token is
// persisted before Login returns, so a process restart keeps the session.
func (c *Client) Login(ctx context.Context, creds Credentials) error {
	var resp loginResponse
	if err := c.doJSON(ctx, http.MethodPost, "/api/auth/login", creds, &resp); err != nil {
		return err
	}
	c.setToken(ctx, resp.AccessToken)
	return nil
}

// Logout clears the in-memory and persisted token. The in-memory token is
// always cleared, even when the persisted copy cannot be removed; the client
// is unauthenticated once Logout returns regardless of the error.
func (c *Client) Logout(ctx context.Context) error {
	c.mu.Lock()
	c.token = ""
	c.mu.Unlock()

	if err := c.store.Delete(ctx, kv.KeyAuthToken); err != nil {
		c.log.Warn(ctx, "failed to remove persisted auth token", "error", err)
		return err
	}
	return nil
}

// CurrentUser fetches the profile for the current token. Without a valid
// token the backend answers 401 and the returned error matches
// common.ErrUnauthorized.
func (c *Client) CurrentUser(ctx context.Context) (*models.User, error) {
	var user models.User
	if err := c.do(ctx, http.MethodGet, "/api/auth/me", nil, "", &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// ListUsers returns all user profiles visible to the caller.
func (c *Client) ListUsers(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := c.do(ctx, http.MethodGet, "/api/auth/users", nil, "", &users); err != nil {
		return nil, err
	}
	return users, nil
}
