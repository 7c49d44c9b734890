package common

import (
	"errors"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"time"
)

// HttpClient is an interface for HTTP operations with optional retry logic.
// This allows mocking or custom transport layers in testing.
type HttpClient interface {
	Do(req *http.Request) (*http.Response, error)
	Get(url string) (*http.Response, error)
	Post(url, contentType string, body io.Reader) (*http.Response, error)
	CloseIdleConnections()
	RetryWithExponentialBackoff(operation func() ([]byte, error)) ([]byte, error)
	SetSleepForTest(sleep func(d time.Duration))
}

// HTTPError is a custom error that captures unexpected status codes and response bodies.
type HTTPError struct {
	StatusCode int
	Body       []byte
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("unexpected status code: %d, body: %s", e.StatusCode, string(e.Body))
}

// userAgentRoundTripper adds a User-Agent header to every outgoing request.
type userAgentRoundTripper struct {
	Wrapped   http.RoundTripper
	UserAgent string
}

func (rt *userAgentRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	// clone request to avoid mutating the original
	clone := req.Clone(req.Context())
	clone.Header.Set("User-Agent", rt.UserAgent)
	return rt.Wrapped.RoundTrip(clone)
}

// httpClient wraps a standard *http.Client with retry logic.
type httpClient struct {
	client    *http.Client
	rng       *rand.Rand
	sleepFunc func(d time.Duration)
}

// NewHTTPClient returns an HttpClient with a default 10s timeout and a custom User-Agent.
func NewHTTPClient(userAgent string, base *http.Client) HttpClient {
	if base.Transport == nil {
		base.Transport = http.DefaultTransport
	}
	base.Transport = &userAgentRoundTripper{
		Wrapped:   base.Transport,
		UserAgent: userAgent,
	}
	base.Timeout = 10 * time.Second

	return &httpClient{
		client:    base,
		rng:       rand.New(rand.NewSource(time.Now().UnixNano())),
		sleepFunc: time.Sleep,
	}
}

func (h *httpClient) Do(req *http.Request) (*http.Response, error) {
	return h.client.Do(req)
}

func (h *httpClient) Get(url string) (*http.Response, error) {
	return h.client.Get(url)
}

func (h *httpClient) Post(url, contentType string, body io.Reader) (*http.Response, error) {
	return h.client.Post(url, contentType, body)
}

func (h *httpClient) CloseIdleConnections() {
	h.client.CloseIdleConnections()
}

// Exponential backoff constants
const (
	maxRetries = 5
	baseDelay  = 1 * time.Second
	maxDelay   = 32 * time.Second
)

// RetryWithExponentialBackoff attempts the given operation() multiple times
// when it fails with a retryable HTTPError (throttling or 5xx).
func (h *httpClient) RetryWithExponentialBackoff(operation func() ([]byte, error)) ([]byte, error) {
	var result []byte
	var err error
	delay := baseDelay

	for i := 0; i < maxRetries; i++ {
		if result, err = operation(); err == nil {
			return result, nil
		}

		var httpErr *HTTPError
		if errors.As(err, &httpErr) && isRetryableStatus(httpErr.StatusCode) {
			if i == maxRetries-1 {
				break
			}
			// apply jitter
			jitter := time.Duration(h.rng.Int63n(int64(delay)))
			h.sleepFunc(delay + jitter)

			delay *= 2
			if delay > maxDelay {
				delay = maxDelay
			}
			continue
		}
		// Not retryable, break
		break
	}
	return nil, err
}

func isRetryableStatus(status int) bool {
	switch status {
	case http.StatusTooManyRequests,
		http.StatusInternalServerError,
		http.StatusBadGateway,
		http.StatusServiceUnavailable,
		http.StatusGatewayTimeout:
		return true
	}
	return false
}

func (h *httpClient) SetSleepForTest(sleep func(d time.Duration)) {
	h.sleepFunc = sleep
}
