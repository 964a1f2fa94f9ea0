package gitlab

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/alimgiray/mrscope/internal/apperr"
	"golang.org/x/oauth2"
)

const (
	// MaxPageSize is the largest per_page value GitLab accepts
	MaxPageSize = 100

	AuthModePrivateToken = "private_token"
	AuthModeOAuth        = "oauth"

	maxErrorBody = 512
)

// HTTPClient interface for HTTP operations (allows mocking in tests).
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// ClientConfig holds the settings for a GitLab client.
type ClientConfig struct {
	BaseURL  string // e.g. https://gitlab.com/api/v4
	Token    string
	AuthMode string
	Timeout  time.Duration
}

// Client performs authenticated GET requests against the GitLab REST API.
// It never retries; callers abort on the first error.
type Client struct {
	baseURL    string
	token      string
	authMode   string
	httpClient HTTPClient
}

// Response is a raw API response
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// NewClient creates a new GitLab client. When httpClient is nil a client with
// the configured timeout is built; in oauth mode it sends the token as a
// Bearer credential.
func NewClient(cfg ClientConfig, httpClient HTTPClient) *Client {
	authMode := cfg.AuthMode
	if authMode == "" {
		authMode = AuthModePrivateToken
	}

	if httpClient == nil {
		httpClient = newHTTPClient(cfg.Token, authMode, cfg.Timeout)
	}

	return &Client{
		baseURL:    cfg.BaseURL,
		token:      cfg.Token,
		authMode:   authMode,
		httpClient: httpClient,
	}
}

func newHTTPClient(token, authMode string, timeout time.Duration) *http.Client {
	if authMode != AuthModeOAuth || token == "" {
		return &http.Client{Timeout: timeout}
	}

	ctx := context.WithValue(context.Background(), oauth2.HTTPClient, &http.Client{Timeout: timeout})
	ts := oauth2.StaticTokenSource(
		&oauth2.Token{AccessToken: token},
	)
	tc := oauth2.NewClient(ctx, ts)
	tc.Timeout = timeout
	return tc
}

// Get performs a GET request on path (relative to the API base URL).
func (c *Client) Get(ctx context.Context, path string, query url.Values) (*Response, error) {
	if c.token == "" {
		return nil, fmt.Errorf("%w: GITLAB_TOKEN is not set", apperr.ErrConfiguration)
	}

	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	if c.authMode == AuthModePrivateToken {
		req.Header.Set("PRIVATE-TOKEN", c.token)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, fmt.Errorf("%w: GET %s: %w", apperr.ErrTransient, path, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return nil, fmt.Errorf("%w: GET %s returned 401", apperr.ErrUnauthorized, path)
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("%w: GET %s returned 404", apperr.ErrNotFound, path)
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, fmt.Errorf("%w: GET %s returned status %d: %s", apperr.ErrTransient, path, resp.StatusCode, string(body))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, fmt.Errorf("%w: reading GET %s: %w", apperr.ErrTransient, path, err)
	}

	return &Response{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       body,
	}, nil
}

// getJSON performs a GET and decodes the body into result.
func (c *Client) getJSON(ctx context.Context, path string, query url.Values, result interface{}) (*Response, error) {
	resp, err := c.Get(ctx, path, query)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(resp.Body, result); err != nil {
		return nil, fmt.Errorf("%w: failed to decode GET %s: %w", apperr.ErrTransient, path, err)
	}

	return resp, nil
}

// headerInt parses an integer pagination header. ok is false when the header
// is absent or malformed.
func headerInt(h http.Header, key string) (int, bool) {
	value := h.Get(key)
	if value == "" {
		return 0, false
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, false
	}
	return n, true
}
