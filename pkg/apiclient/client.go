// Package apiclient is a small Go client for the Knoxville Technologies API.
// It holds the session the same way the web client does: one opaque token,
// attached optimistically to every request, discarded the moment the server
// says no.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// ErrSessionExpired is returned when the server rejects the stored token.
// The token has already been cleared; the caller should log in again.
var ErrSessionExpired = errors.New("session expired")

// User mirrors the API's user payload.
type User struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// Client talks to the API and keeps the session token in a TokenStore.
type Client struct {
	baseURL string
	http    *http.Client
	store   TokenStore
}

func New(baseURL string, store TokenStore) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 30 * time.Second},
		store:   store,
	}
}

// Login authenticates and persists the returned token.
func (c *Client) Login(ctx context.Context, email, password string) (*User, error) {
	body, err := json.Marshal(map[string]string{"email": email, "password": password})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/auth/login", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("login failed: %s", resp.Status)
	}

	var payload struct {
		Token string `json:"token"`
		User  User   `json:"user"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode login response: %w", err)
	}
	if payload.Token == "" {
		return nil, errors.New("login response missing token")
	}

	if err := c.store.Set(payload.Token); err != nil {
		return nil, fmt.Errorf("persist token: %w", err)
	}
	return &payload.User, nil
}

// Verify checks the stored token against the server, mirroring what the web
// client does on every protected page load. A missing token short-circuits
// without a network call; a server-side rejection clears the store.
func (c *Client) Verify(ctx context.Context) (*User, error) {
	resp, err := c.doAuthed(ctx, http.MethodGet, "/api/auth/verify", nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var payload struct {
		User User `json:"user"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode verify response: %w", err)
	}
	return &payload.User, nil
}

// Logout discards the local session. The token itself stays valid until
// natural expiry; the server keeps no revocation list.
func (c *Client) Logout() error {
	return c.store.Clear()
}

// doAuthed attaches the stored token and runs the request. 401 and 403 both
// clear the store and surface as ErrSessionExpired.
func (c *Client) doAuthed(ctx context.Context, method, path string, body []byte) (*http.Response, error) {
	token, err := c.store.Get()
	if err != nil {
		if errors.Is(err, ErrNoToken) {
			return nil, ErrSessionExpired
		}
		return nil, err
	}

	var reader *bytes.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	} else {
		reader = bytes.NewReader(nil)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		resp.Body.Close()
		if err := c.store.Clear(); err != nil {
			return nil, fmt.Errorf("clear rejected token: %w", err)
		}
		return nil, ErrSessionExpired
	}
	if resp.StatusCode >= 400 {
		resp.Body.Close()
		return nil, fmt.Errorf("request failed: %s", resp.Status)
	}
	return resp, nil
}
