package jquants

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

// DefaultBaseURL is the production endpoint of the J-Quants API.
const DefaultBaseURL = "https://api.jquants.com/v1"

// Client talks to the J-Quants REST API.
//
// The credential exchange always goes to the network; data endpoints go
// through a disk cache with daily expiry, so a rerun on the same day does
// not consume the API quota again.
type Client struct {
	baseURL string
	auth    *http.Client // token endpoints, never cached
	data    *http.Client // data endpoints, cached with daily expiry
}

// NewClient returns a client for the API at baseURL, or for the production
// API if baseURL is empty.
func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		auth:    new(http.Client),
		data:    newDailyCachingClient(),
	}
}

// Authenticate exchanges the account credentials for a short-lived ID token
// in two steps: credentials buy a refresh token, the refresh token buys the
// ID token. Neither token is persisted.
//
// A rejected login returns an error wrapping ErrAuthentication; a refresh
// token rejected as expired returns one wrapping ErrTokenExpired. There are
// no retries, the first failure surfaces to the caller.
func (c *Client) Authenticate(email, password string) (string, error) {
	refresh, err := c.refreshToken(email, password)
	if err != nil {
		return "", err
	}
	return c.idToken(refresh)
}

// refreshToken submits the credentials to the auth_user endpoint.
func (c *Client) refreshToken(email, password string) (string, error) {
	addr := c.baseURL + "/token/auth_user"
	body := map[string]string{"mailaddress": email, "password": password}

	status, payload, err := wpost(c.auth, addr, body)
	if err != nil {
		return "", fmt.Errorf("%w: requesting refresh token: %v", ErrAuthentication, err)
	}
	if status != http.StatusOK {
		return "", fmt.Errorf("%w: refresh token request returned %d: %s", ErrAuthentication, status, apiMessage(payload))
	}

	var result struct {
		RefreshToken string `json:"refreshToken"`
	}
	if err := json.Unmarshal(payload, &result); err != nil {
		return "", fmt.Errorf("%w: decoding refresh token response: %v", ErrAuthentication, err)
	}
	if result.RefreshToken == "" {
		return "", fmt.Errorf("%w: response carries no refreshToken", ErrAuthentication)
	}
	return result.RefreshToken, nil
}

// idToken trades the refresh token for an ID token on the auth_refresh
// endpoint.
func (c *Client) idToken(refresh string) (string, error) {
	addr := c.baseURL + "/token/auth_refresh?refreshtoken=" + url.QueryEscape(refresh)

	status, payload, err := wpost(c.auth, addr, nil)
	if err != nil {
		return "", fmt.Errorf("%w: requesting ID token: %v", ErrAuthentication, err)
	}
	if status != http.StatusOK {
		msg := apiMessage(payload)
		if strings.Contains(strings.ToLower(msg), "expired") {
			return "", fmt.Errorf("%w: %s", ErrTokenExpired, msg)
		}
		return "", fmt.Errorf("%w: ID token request returned %d: %s", ErrAuthentication, status, msg)
	}

	var result struct {
		IDToken string `json:"idToken"`
	}
	if err := json.Unmarshal(payload, &result); err != nil {
		return "", fmt.Errorf("%w: decoding ID token response: %v", ErrAuthentication, err)
	}
	if result.IDToken == "" {
		return "", fmt.Errorf("%w: response carries no idToken", ErrAuthentication)
	}
	return result.IDToken, nil
}

// bearer builds the authorization header for data endpoints. The token is
// treated as read-only, the client never caches or rewrites it.
func bearer(token string) http.Header {
	header := make(http.Header)
	header.Set("Authorization", "Bearer "+token)
	return header
}
