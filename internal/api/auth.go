package api

import (
	"context"
	"net/http"

	"palchi-cli/internal/model"
)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// Login exchanges credentials for a bearer token and installs it on the
// client. Persisting the token is the caller's job.
func (c *Client) Login(ctx context.Context, username, password string) (string, error) {
	var tok tokenResponse
	err := c.call(ctx, http.MethodPost, "/auth/login", callOpts{
		body:   loginRequest{Username: username, Password: password},
		out:    &tok,
		noAuth: true,
	})
	if err != nil {
		return "", err
	}
	c.SetToken(tok.AccessToken)
	return tok.AccessToken, nil
}

// RegisterRequest creates a new account. The backend does not auto-login the
// new user.
type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (c *Client) Register(ctx context.Context, req RegisterRequest) (model.User, error) {
	var u model.User
	err := c.call(ctx, http.MethodPost, "/auth/register", callOpts{body: req, out: &u, noAuth: true})
	return u, err
}

// Me fetches the profile of the session's user.
func (c *Client) Me(ctx context.Context) (model.User, error) {
	var u model.User
	err := c.call(ctx, http.MethodGet, "/auth/me", callOpts{out: &u})
	return u, err
}

// ProfileUpdate carries the editable profile fields. Password is only sent
// when the user typed a new one.
type ProfileUpdate struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password,omitempty"`
}

func (c *Client) UpdateMe(ctx context.Context, upd ProfileUpdate) (model.User, error) {
	var u model.User
	err := c.call(ctx, http.MethodPut, "/auth/me", callOpts{body: upd, out: &u})
	return u, err
}
