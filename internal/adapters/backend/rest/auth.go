package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"rescue-revolution/internal/ports/backend"
)

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Message string       `json:"message"`
	User    backend.User `json:"user"`
}

func (c *Client) Register(ctx context.Context, username, email, password string) error {
	err := c.http.DoJSON(ctx, http.MethodPost, "/api/auth/register", nil, registerRequest{
		Username: username,
		Email:    email,
		Password: password,
	}, nil)
	if err != nil {
		return mapErr(err)
	}
	return nil
}

// Login captura el Set-Cookie del backend como Credentials; sin esa cookie
// los requests mutantes posteriores serían rechazados.
func (c *Client) Login(ctx context.Context, username, password string) (backend.User, backend.Credentials, error) {
	b, err := json.Marshal(loginRequest{Username: username, Password: password})
	if err != nil {
		return backend.User{}, "", fmt.Errorf("rest: marshal login: %w", err)
	}

	res, err := c.http.Do(ctx, http.MethodPost, "/api/auth/login", nil, "application/json", bytes.NewReader(b))
	if err != nil {
		return backend.User{}, "", mapErr(err)
	}

	var out loginResponse
	if err := json.Unmarshal(res.Body, &out); err != nil {
		return backend.User{}, "", fmt.Errorf("rest: login response: %w", err)
	}

	creds := credentialsFromHeader(res.Header)
	return out.User, creds, nil
}

func (c *Client) CurrentUser(ctx context.Context, creds backend.Credentials) (backend.User, error) {
	var out backend.User
	if err := c.http.DoJSON(ctx, http.MethodGet, "/api/auth/user", credHeaders(creds), nil, &out); err != nil {
		return backend.User{}, mapErr(err)
	}
	return out, nil
}

func (c *Client) Logout(ctx context.Context, creds backend.Credentials) error {
	err := c.http.DoJSON(ctx, http.MethodPost, "/api/auth/logout", credHeaders(creds), nil, nil)
	if err != nil {
		return mapErr(err)
	}
	return nil
}
