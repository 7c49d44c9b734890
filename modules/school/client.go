package school

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"sync/atomic"

	"golang.org/x/oauth2"

	"github.com/campushq/schoolapi/common"
	"github.com/campushq/schoolapi/common/model"
)

// SchoolClient defines lower-level HTTP operations against the school
// backend: GET/POST/PUT/PATCH/DELETE with bearer attachment and a single
// transparent token refresh on 401/403.
type SchoolClient interface {
	GetJSON(ctx context.Context, endpoint string, entity interface{}, token *oauth2.Token, params map[string]string) error
	GetBytes(ctx context.Context, endpoint string, token *oauth2.Token, params map[string]string) ([]byte, error)
	PostJSON(ctx context.Context, endpoint string, token *oauth2.Token, body io.Reader, expectedStatusCodes ...int) ([]byte, error)
	PutJSON(ctx context.Context, endpoint string, token *oauth2.Token, body io.Reader, expectedStatusCodes ...int) ([]byte, error)
	PatchJSON(ctx context.Context, endpoint string, token *oauth2.Token, body io.Reader, expectedStatusCodes ...int) ([]byte, error)
	DeleteJSON(ctx context.Context, endpoint string, token *oauth2.Token, body io.Reader, expectedStatusCodes ...int) ([]byte, error)
	DoRequest(ctx context.Context, method, urlStr string, token *oauth2.Token, body io.Reader, expectedStatus ...int) ([]byte, error)
	Stats() RequestStats
}

// RequestStats is a snapshot of the client's request counters.
type RequestStats struct {
	Total    int64
	Success  int64
	NotFound int64
	Failed   int64
}

type schoolClient struct {
	baseURL    string
	httpClient common.HttpClient
	authClient common.AuthClient
	logger     *slog.Logger

	totalCalls    int64
	notFoundCount int64
	successCount  int64
	failCount     int64
}

// Option configures a SchoolClient.
type Option func(*schoolClient)

// WithLogger installs a structured logger for request-level diagnostics.
// Without it the client is silent.
func WithLogger(logger *slog.Logger) Option {
	return func(c *schoolClient) {
		c.logger = logger
	}
}

// NewSchoolClient creates a client for the school backend. authClient may be
// nil, in which case 401 responses are surfaced directly instead of
// triggering a refresh.
func NewSchoolClient(baseURL string, httpClient common.HttpClient, authClient common.AuthClient, opts ...Option) SchoolClient {
	c := &schoolClient{
		baseURL:    baseURL,
		httpClient: httpClient,
		authClient: authClient,
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// GetJSON retrieves JSON from an endpoint and unmarshals into entity.
func (c *schoolClient) GetJSON(ctx context.Context, endpoint string, entity interface{}, token *oauth2.Token, params map[string]string) error {
	data, err := c.GetBytes(ctx, endpoint, token, params)
	if err != nil {
		return err
	}
	return model.JSONUnmarshal(data, entity)
}

// GetBytes retrieves raw bytes from an endpoint, retrying transient failures.
func (c *schoolClient) GetBytes(ctx context.Context, endpoint string, token *oauth2.Token, params map[string]string) ([]byte, error) {
	urlStr, err := c.buildURL(endpoint, params)
	if err != nil {
		return nil, err
	}

	operation := func() ([]byte, error) {
		return c.DoRequest(ctx, http.MethodGet, urlStr, token, nil)
	}
	return c.httpClient.RetryWithExponentialBackoff(operation)
}

// PostJSON sends a POST with optional expected status codes (default 201).
func (c *schoolClient) PostJSON(ctx context.Context, endpoint string, token *oauth2.Token, body io.Reader, expectedStatusCodes ...int) ([]byte, error) {
	if len(expectedStatusCodes) == 0 {
		expectedStatusCodes = []int{http.StatusCreated}
	}
	return c.writeRequest(ctx, http.MethodPost, endpoint, token, body, expectedStatusCodes)
}

// PutJSON sends a PUT with optional expected status codes (default 200).
func (c *schoolClient) PutJSON(ctx context.Context, endpoint string, token *oauth2.Token, body io.Reader, expectedStatusCodes ...int) ([]byte, error) {
	return c.writeRequest(ctx, http.MethodPut, endpoint, token, body, expectedStatusCodes)
}

// PatchJSON sends a PATCH with optional expected status codes (default 200).
func (c *schoolClient) PatchJSON(ctx context.Context, endpoint string, token *oauth2.Token, body io.Reader, expectedStatusCodes ...int) ([]byte, error) {
	return c.writeRequest(ctx, http.MethodPatch, endpoint, token, body, expectedStatusCodes)
}

// DeleteJSON sends a DELETE with optional expected status codes (default 204).
func (c *schoolClient) DeleteJSON(ctx context.Context, endpoint string, token *oauth2.Token, body io.Reader, expectedStatusCodes ...int) ([]byte, error) {
	if len(expectedStatusCodes) == 0 {
		expectedStatusCodes = []int{http.StatusNoContent}
	}
	return c.writeRequest(ctx, http.MethodDelete, endpoint, token, body, expectedStatusCodes)
}

func (c *schoolClient) writeRequest(ctx context.Context, method, endpoint string, token *oauth2.Token, body io.Reader, expectedStatusCodes []int) ([]byte, error) {
	urlStr, err := c.buildURL(endpoint, nil)
	if err != nil {
		return nil, err
	}
	return c.DoRequest(ctx, method, urlStr, token, body, expectedStatusCodes...)
}

// DoRequest is the core method that actually performs the HTTP request.
func (c *schoolClient) DoRequest(ctx context.Context, method, urlStr string, token *oauth2.Token, body io.Reader, expectedStatus ...int) ([]byte, error) {
	if len(expectedStatus) == 0 {
		expectedStatus = []int{http.StatusOK}
	}

	// read the entire body so we can retry after a token refresh
	var bodyBytes []byte
	if body != nil {
		b, err := io.ReadAll(body)
		if err != nil {
			return nil, fmt.Errorf("failed to read request body: %w", err)
		}
		bodyBytes = b
	}

	data, status, err := c.executeRequest(ctx, method, urlStr, token, bytes.NewReader(bodyBytes))
	if err != nil {
		return nil, err
	}

	// if unauthorized/forbidden and we have refresh capability, refresh once and retry
	if (status == http.StatusUnauthorized || status == http.StatusForbidden) && canRefresh(token, c.authClient) {
		c.logger.Debug("access token rejected, refreshing", "method", method, "status", status)
		newToken, refreshErr := c.authClient.RefreshToken(token.RefreshToken)
		if refreshErr != nil || newToken == nil {
			atomic.AddInt64(&c.failCount, 1)
			return nil, fmt.Errorf("token refresh failed: %w", refreshErr)
		}
		token = newToken
		data, status, err = c.executeRequest(ctx, method, urlStr, token, bytes.NewReader(bodyBytes))
		if err != nil {
			return nil, err
		}
	}

	atomic.AddInt64(&c.totalCalls, 1)
	switch {
	case status == http.StatusNotFound:
		atomic.AddInt64(&c.notFoundCount, 1)
	case status >= 200 && status < 300:
		atomic.AddInt64(&c.successCount, 1)
	default:
		atomic.AddInt64(&c.failCount, 1)
	}

	if !statusMatches(status, expectedStatus) {
		c.logger.Debug("unexpected response status", "method", method, "status", status)
		return nil, &common.HTTPError{
			StatusCode: status,
			Body:       data,
		}
	}
	return data, nil
}

// executeRequest does the low-level HTTP exchange.
func (c *schoolClient) executeRequest(ctx context.Context, method, urlStr string, token *oauth2.Token, body io.Reader) ([]byte, int, error) {
	req, err := http.NewRequestWithContext(ctx, method, urlStr, body)
	if err != nil {
		return nil, 0, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	if token != nil && token.AccessToken != "" {
		req.Header.Set("Authorization", "Bearer "+token.AccessToken)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	data, readErr := io.ReadAll(resp.Body)
	if readErr != nil {
		return nil, resp.StatusCode, fmt.Errorf("failed to read response body: %v", readErr)
	}
	return data, resp.StatusCode, nil
}

// Stats returns a snapshot of the request counters.
func (c *schoolClient) Stats() RequestStats {
	return RequestStats{
		Total:    atomic.LoadInt64(&c.totalCalls),
		Success:  atomic.LoadInt64(&c.successCount),
		NotFound: atomic.LoadInt64(&c.notFoundCount),
		Failed:   atomic.LoadInt64(&c.failCount),
	}
}

// buildURL merges baseURL + endpoint + params
func (c *schoolClient) buildURL(endpoint string, params map[string]string) (string, error) {
	base, err := url.Parse(c.baseURL)
	if err != nil {
		return "", fmt.Errorf("invalid base URL: %w", err)
	}
	path, err := url.Parse(endpoint)
	if err != nil {
		return "", fmt.Errorf("invalid endpoint: %w", err)
	}

	fullURL := base.ResolveReference(path)
	q := fullURL.Query()
	for k, v := range params {
		q.Set(k, v)
	}
	fullURL.RawQuery = q.Encode()
	return fullURL.String(), nil
}

func statusMatches(statusCode int, expected []int) bool {
	for _, s := range expected {
		if statusCode == s {
			return true
		}
	}
	return false
}

func canRefresh(token *oauth2.Token, auth common.AuthClient) bool {
	return token != nil && token.RefreshToken != "" && auth != nil
}
