package bankapi

import (
	"context"
	"errors"
	"net/http"
	"net/url"

	"github.com/tidwall/gjson"
)

// ErrNoAccessToken is returned when a login response has no access_token.
var ErrNoAccessToken = errors.New("login response has no access_token")

// SignUp registers a new client.
func (c *Client) SignUp(ctx context.Context, req SignUpRequest) (*SignUpResult, error) {
	cl, err := jsonCall(http.MethodPost, "/users/", "", req)
	if err != nil {
		return nil, err
	}
	var out SignUpResult
	if err := c.doJSON(ctx, cl, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Login exchanges credentials for a bearer token. Credentials travel as query
// parameters, matching the backend's contract.
func (c *Client) Login(ctx context.Context, clientIdentifier, password string) (*Session, error) {
	body, err := c.do(ctx, call{
		method: http.MethodPost,
		path:   "/auth/login",
		query: url.Values{
			"client_identifier": {clientIdentifier},
			"password":          {password},
		},
		contentType: "application/json",
	})
	if err != nil {
		return nil, err
	}

	token := gjson.GetBytes(body, "access_token").String()
	if token == "" {
		return nil, ErrNoAccessToken
	}
	// The backend has shipped both a top-level cin and one nested under user.
	cin := gjson.GetBytes(body, "cin")
	if !cin.Exists() {
		cin = gjson.GetBytes(body, "user.cin")
	}
	return &Session{AccessToken: token, CIN: cin.String()}, nil
}

// Logout revokes token on the backend.
func (c *Client) Logout(ctx context.Context, token string) error {
	_, err := c.do(ctx, call{method: http.MethodPost, path: "/auth/logout", token: token})
	return err
}

// RequestPasswordReset asks the backend to email a reset link.
func (c *Client) RequestPasswordReset(ctx context.Context, email string) error {
	cl, err := jsonCall(http.MethodPost, "/password-recovery/", "", map[string]string{"email": email})
	if err != nil {
		return err
	}
	return c.doJSON(ctx, cl, nil)
}

// ResetPassword sets a new password using the one-time token from the reset link.
func (c *Client) ResetPassword(ctx context.Context, resetToken, newPassword string) error {
	_, err := c.do(ctx, call{
		method: http.MethodPost,
		path:   "/reset-password",
		query: url.Values{
			"token":        {resetToken},
			"new_password": {newPassword},
		},
	})
	return err
}
