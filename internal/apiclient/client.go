// Package apiclient wraps the remote asset management REST API. One Client
// is configured per process; request-scoped copies carry the session's
// bearer token (WithToken) and a hook invoked whenever the API answers 401.
package apiclient

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/Avina-dox/DasavenaTI/internal/models"
)

// Response bodies larger than this are cut off; the API serves paginated
// JSON, nothing near this size.
const maxResponseBytes = 16 << 20

type Client struct {
	baseURL    string
	httpClient *http.Client

	token          string
	onUnauthorized func()
}

func New(baseURL string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// BaseURL returns the configured API root.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// WithToken returns a copy of the client that sends the given bearer token
// with every request. An empty token means unauthenticated.
func (c *Client) WithToken(token string) *Client {
	clone := *c
	clone.token = token
	return &clone
}

// WithUnauthorizedHook returns a copy of the client that calls fn whenever
// the API responds 401, before the error is returned to the caller. The web
// layer uses it to destroy the local session.
func (c *Client) WithUnauthorizedHook(fn func()) *Client {
	clone := *c
	clone.onUnauthorized = fn
	return &clone
}

// do performs one API call. out, when non-nil, receives the decoded JSON
// body. Non-2xx statuses become *APIError with the server's message string.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body io.Reader, contentType string, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return fmt.Errorf("building %s %s request: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return fmt.Errorf("reading %s %s response: %w", method, path, err)
	}

	if resp.StatusCode == http.StatusUnauthorized && c.onUnauthorized != nil {
		c.onUnauthorized()
	}
	if resp.StatusCode >= 400 {
		return &APIError{StatusCode: resp.StatusCode, Message: errorMessage(data, resp.StatusCode)}
	}

	if out != nil && len(data) > 0 {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("decoding %s %s response: %w", method, path, err)
		}
	}
	return nil
}

func (c *Client) getJSON(ctx context.Context, path string, query url.Values, out any) error {
	return c.do(ctx, http.MethodGet, path, query, nil, "", out)
}

func (c *Client) postJSON(ctx context.Context, path string, in, out any) error {
	payload, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("encoding %s request: %w", path, err)
	}
	return c.do(ctx, http.MethodPost, path, nil, strings.NewReader(string(payload)), "application/json", out)
}

// Login exchanges credentials for a bearer token at the remote auth endpoint.
func (c *Client) Login(ctx context.Context, email, password string) (*models.LoginResponse, error) {
	var resp models.LoginResponse
	if err := c.postJSON(ctx, "/login", models.LoginRequest{Email: email, Password: password}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Me fetches the profile of the token's owner. A 401 here means the token
// is stale and the local session must be dropped.
func (c *Client) Me(ctx context.Context) (*models.User, error) {
	var user models.User
	if err := c.getJSON(ctx, "/me", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Ping probes the remote API's health endpoint.
func (c *Client) Ping(ctx context.Context) error {
	return c.getJSON(ctx, "/ping", nil, nil)
}
