package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// TokenStore provides the current bearer token and supports invalidation when
// the backend reports the token as expired or invalid.
type TokenStore interface {
	Token() string
	Clear()
}

// Client is the typed HTTP client for the MovieHub backend API
type Client struct {
	httpClient *http.Client
	baseURL    string
	tokens     TokenStore
	onExpired  func()
}

// NewClient creates a new API client. The timeout applies uniformly to every
// request; tokens may be nil for a client that never authenticates.
func NewClient(baseURL string, timeout time.Duration, tokens TokenStore) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURL: strings.TrimRight(baseURL, "/"),
		tokens:  tokens,
	}
}

// OnSessionExpired registers a callback invoked after an expired or invalid
// token has been cleared from the token store.
func (c *Client) OnSessionExpired(fn func()) {
	c.onExpired = fn
}

// apiError is the error body shape the backend uses
type apiError struct {
	Message string `json:"message"`
}

// do performs one request against the backend: it shapes the request, injects
// the bearer token when one is held, and normalizes every failure into a Fault.
// out may be nil for responses whose body is not needed.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reqBody)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.tokens != nil {
		if token := c.tokens.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &Fault{Kind: FaultConnectivity, Err: err}
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			log.Printf("Failed to close response body: %v", err)
		}
	}()

	if resp.StatusCode >= 400 {
		return c.faultFromResponse(method, path, resp)
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response from %s %s: %w", method, path, err)
	}
	return nil
}

func (c *Client) faultFromResponse(method, path string, resp *http.Response) *Fault {
	raw, err := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
	if err != nil {
		log.Printf("Failed to read error body from %s %s: %v", method, path, err)
	}

	var parsed apiError
	message := ""
	if json.Unmarshal(raw, &parsed) == nil && parsed.Message != "" {
		message = parsed.Message
	} else if len(raw) > 0 {
		message = strings.TrimSpace(string(raw))
	}

	kind := classifyStatus(resp.StatusCode)
	if kind == FaultAuth && tokenLooksInvalid(message) {
		// The session is no longer usable; drop it so subsequent requests go
		// out unauthenticated, then let the presentation layer react.
		log.Printf("Token expired or invalid, clearing session")
		if c.tokens != nil {
			c.tokens.Clear()
		}
		if c.onExpired != nil {
			c.onExpired()
		}
	}

	return &Fault{Kind: kind, StatusCode: resp.StatusCode, Message: message}
}

// tokenLooksInvalid reports whether a 401/403 message indicates the session
// token itself is bad, as opposed to a plain permission error.
func tokenLooksInvalid(message string) bool {
	m := strings.ToLower(message)
	return strings.Contains(m, "expired") || strings.Contains(m, "invalid token")
}
