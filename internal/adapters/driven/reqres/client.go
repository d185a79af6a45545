package reqres

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/oauth2"

	"github.com/custodia-labs/userdir-cli/internal/core/domain"
	"github.com/custodia-labs/userdir-cli/internal/core/ports/driven"
	"github.com/custodia-labs/userdir-cli/internal/logger"
)

// Ensure Client implements the interface.
var _ driven.DirectoryClient = (*Client)(nil)

// Default configuration values.
const (
	DefaultBaseURL = "https://reqres.in/api"
	DefaultTimeout = 30 * time.Second

	// APIKeyHeader carries the service API key.
	APIKeyHeader = "x-api-key"
)

// Fallback messages used when the service gives no error text.
const (
	msgLoginFailed   = "Login failed. Please try again."
	msgFetchFailed   = "Failed to load users"
	msgUpdateFailed  = "Failed to update user"
	msgDeleteFailed  = "Failed to delete user"
	msgBadResponse   = "Unexpected response from the directory service"
	maxErrorBodySize = 64 << 10
)

// Config holds configuration for the directory client.
type Config struct {
	// BaseURL is the API base URL (default: https://reqres.in/api).
	BaseURL string

	// APIKey is sent in the x-api-key header when non-empty.
	APIKey string

	// Timeout is the request timeout (default: 30s).
	Timeout time.Duration

	// RequestsPerSecond throttles outgoing requests. Zero disables throttling.
	RequestsPerSecond float64

	// TokenSource supplies the bearer token for authenticated calls. Optional.
	TokenSource oauth2.TokenSource

	// HTTPClient overrides the underlying client. Optional.
	HTTPClient *http.Client
}

// Client is the HTTP directory client.
type Client struct {
	http    *http.Client
	baseURL string
	apiKey  string
	tokens  oauth2.TokenSource
	limiter *RateLimiter
}

// NewClient creates a new directory client.
func NewClient(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}
	if _, err := url.ParseRequestURI(cfg.BaseURL); err != nil {
		return nil, fmt.Errorf("reqres: invalid base URL %q: %w", cfg.BaseURL, err)
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}

	return &Client{
		http:    httpClient,
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		tokens:  cfg.TokenSource,
		limiter: NewRateLimiter(cfg.RequestsPerSecond),
	}, nil
}

// Wire formats.

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string `json:"token"`
}

type listResponse struct {
	Page       int            `json:"page"`
	PerPage    int            `json:"per_page"`
	Total      int            `json:"total"`
	TotalPages int            `json:"total_pages"`
	Data       []domain.Entry `json:"data"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// Authenticate exchanges credentials for a session token.
func (c *Client) Authenticate(ctx context.Context, email, password string) (string, error) {
	var resp loginResponse
	err := c.do(ctx, http.MethodPost, "/login", loginRequest{Email: email, Password: password}, &resp, false)
	if err != nil {
		return "", c.opError(domain.ErrAuth, "login", msgLoginFailed, err)
	}
	if resp.Token == "" {
		return "", domain.NewOpError(domain.ErrAuth, "login", msgBadResponse, nil)
	}
	return resp.Token, nil
}

// ListPage fetches one page of entries.
func (c *Client) ListPage(ctx context.Context, page int) (domain.Page, error) {
	op := fmt.Sprintf("list page %d", page)
	var resp listResponse
	path := "/users?page=" + strconv.Itoa(page)
	if err := c.do(ctx, http.MethodGet, path, nil, &resp, true); err != nil {
		return domain.Page{}, c.opError(domain.ErrFetch, op, msgFetchFailed, err)
	}

	number := resp.Page
	if number == 0 {
		number = page
	}
	entries := resp.Data
	if entries == nil {
		entries = []domain.Entry{}
	}
	return domain.Page{Number: number, Entries: entries, TotalPages: resp.TotalPages}, nil
}

// UpdateEntry sends patch and returns the fields the service echoed.
func (c *Client) UpdateEntry(ctx context.Context, id int, patch domain.EntryPatch) (domain.EntryPatch, error) {
	op := fmt.Sprintf("update %d", id)
	var echo domain.EntryPatch
	if err := c.do(ctx, http.MethodPut, "/users/"+strconv.Itoa(id), patch, &echo, true); err != nil {
		return domain.EntryPatch{}, c.opError(domain.ErrWrite, op, msgUpdateFailed, err)
	}
	return echo, nil
}

// DeleteEntry deletes one entry.
func (c *Client) DeleteEntry(ctx context.Context, id int) error {
	op := fmt.Sprintf("delete %d", id)
	if err := c.do(ctx, http.MethodDelete, "/users/"+strconv.Itoa(id), nil, nil, true); err != nil {
		return c.opError(domain.ErrWrite, op, msgDeleteFailed, err)
	}
	return nil
}

// do sends one request. body and out may be nil. A 2xx response with an
// empty body leaves out untouched.
func (c *Client) do(ctx context.Context, method, path string, body, out any, authenticated bool) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	reqURL := c.baseURL + path
	req, err := http.NewRequestWithContext(ctx, method, reqURL, reader)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.apiKey != "" {
		req.Header.Set(APIKeyHeader, c.apiKey)
	}
	if authenticated && c.tokens != nil {
		tok, err := c.tokens.Token()
		if err != nil {
			return fmt.Errorf("reading session token: %w", err)
		}
		if tok.AccessToken != "" {
			tok.SetAuthHeader(req)
		}
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		logger.Debug("%s %s failed after %s: %v", method, path, time.Since(start), err)
		return err
	}
	defer resp.Body.Close()
	logger.Debug("%s %s -> %d (%s)", method, path, resp.StatusCode, time.Since(start))

	if rlErr := c.limiter.Observe(resp); rlErr != nil {
		return rlErr
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodySize))
		return &APIError{
			StatusCode: resp.StatusCode,
			Message:    errorMessage(data, resp.StatusCode),
			URL:        reqURL,
		}
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}

// errorMessage extracts {"error": "..."} from a response body.
func errorMessage(body []byte, status int) string {
	var e errorResponse
	if err := json.Unmarshal(body, &e); err == nil && e.Error != "" {
		return e.Error
	}
	return http.StatusText(status)
}

// opError wraps a request failure. The service's own error text becomes
// the user message when present.
func (c *Client) opError(kind error, op, fallback string, err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return domain.NewOpError(kind, op, fallback, err)
	}
	msg := fallback
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" && apiErr.Message != http.StatusText(apiErr.StatusCode) {
		msg = apiErr.Message
	}
	if IsRateLimited(err) {
		msg = "Too many requests. Please wait and try again."
	}
	return domain.NewOpError(kind, op, msg, err)
}
