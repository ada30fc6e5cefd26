package appfilter

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"regexp"
	"time"
)

// Error variables for HTTP client errors
var (
	// ErrMaxRetriesExceeded is returned when all retry attempts have failed
	ErrMaxRetriesExceeded = errors.New("max retries exceeded")
	// ErrRequestTimeout is returned when a request times out
	ErrRequestTimeout = errors.New("request timeout")
)

// userAgent identifies iconkit to upstream hosts.
const userAgent = "iconkit/1.0"

// envVarPattern matches ${VAR_NAME} syntax in header values, so auth
// tokens can live in the environment instead of the sources file.
var envVarPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

// RetryConfig holds configuration for retry behavior.
type RetryConfig struct {
	// MaxRetries is the maximum number of retry attempts (default: 3)
	MaxRetries int
	// BaseDelay is the initial delay before the first retry (default: 1s)
	BaseDelay time.Duration
	// MaxDelay is the maximum delay between retries (default: 4s)
	MaxDelay time.Duration
	// Timeout is the timeout for each individual request (default: 30s)
	Timeout time.Duration
}

// DefaultRetryConfig returns the default retry configuration: exponential
// backoff with delays of 1s, 2s, 4s.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxRetries: 3,
		BaseDelay:  1 * time.Second,
		MaxDelay:   4 * time.Second,
		Timeout:    30 * time.Second,
	}
}

// RetryableHTTPClient wraps an HTTP client with exponential-backoff retry
// on network errors, 5xx responses, and rate limiting.
type RetryableHTTPClient struct {
	client *http.Client
	config RetryConfig
	// delayFunc allows overriding the delay function for testing
	delayFunc func(time.Duration)
}

// NewRetryableHTTPClient creates a client with the default retry configuration.
func NewRetryableHTTPClient() *RetryableHTTPClient {
	return NewRetryableHTTPClientWithConfig(DefaultRetryConfig())
}

// NewRetryableHTTPClientWithConfig creates a client with a custom retry configuration.
func NewRetryableHTTPClientWithConfig(config RetryConfig) *RetryableHTTPClient {
	return &RetryableHTTPClient{
		client: &http.Client{
			Timeout: config.Timeout,
		},
		config:    config,
		delayFunc: time.Sleep,
	}
}

// SetHTTPClient sets a custom underlying HTTP client (useful for testing).
func (c *RetryableHTTPClient) SetHTTPClient(client *http.Client) {
	c.client = client
}

// SetDelayFunc sets a custom delay function (useful for testing).
func (c *RetryableHTTPClient) SetDelayFunc(fn func(time.Duration)) {
	c.delayFunc = fn
}

// Config returns the current retry configuration.
func (c *RetryableHTTPClient) Config() RetryConfig {
	return c.config
}

// Do executes a request with retry. It retries on network errors, 5xx
// responses, and 429, with exponential backoff between attempts.
func (c *RetryableHTTPClient) Do(ctx context.Context, req *http.Request) (*http.Response, error) {
	var lastErr error
	var lastResp *http.Response

	for attempt := 0; attempt <= c.config.MaxRetries; attempt++ {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		if attempt > 0 {
			c.delayFunc(c.calculateDelay(attempt))
		}

		resp, err := c.client.Do(req.Clone(ctx))
		if err != nil {
			lastErr = err
			if isTimeoutError(err) {
				lastErr = fmt.Errorf("%w: %v", ErrRequestTimeout, err)
			}
			continue
		}

		if c.shouldRetry(resp.StatusCode) {
			io.Copy(io.Discard, resp.Body)
			resp.Body.Close()
			lastErr = fmt.Errorf("server error: status %d", resp.StatusCode)
			lastResp = resp
			continue
		}

		return resp, nil
	}

	if lastErr != nil {
		return lastResp, fmt.Errorf("%w: %v", ErrMaxRetriesExceeded, lastErr)
	}
	return lastResp, ErrMaxRetriesExceeded
}

// Get performs a GET request with retry.
func (c *RetryableHTTPClient) Get(ctx context.Context, url string) (*http.Response, error) {
	return c.GetWithHeaders(ctx, url, nil)
}

// GetWithHeaders performs a GET request with custom headers and retry.
// Header values are processed for ${VAR_NAME} environment substitution.
func (c *RetryableHTTPClient) GetWithHeaders(ctx context.Context, url string, headers map[string]string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	req.Header.Set("User-Agent", userAgent)
	for key, value := range headers {
		req.Header.Set(key, SubstituteEnvVars(value))
	}

	return c.Do(ctx, req)
}

// calculateDelay returns the backoff delay for a retry attempt:
// baseDelay * 2^(attempt-1), capped at MaxDelay.
func (c *RetryableHTTPClient) calculateDelay(attempt int) time.Duration {
	if attempt <= 0 {
		return 0
	}

	delay := c.config.BaseDelay * time.Duration(1<<(attempt-1))
	if delay > c.config.MaxDelay {
		delay = c.config.MaxDelay
	}
	return delay
}

// shouldRetry reports whether a status code warrants a retry.
func (c *RetryableHTTPClient) shouldRetry(statusCode int) bool {
	if statusCode >= 500 && statusCode < 600 {
		return true
	}
	return statusCode == http.StatusTooManyRequests
}

// isTimeoutError checks if an error is a timeout error.
func isTimeoutError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	type timeoutError interface {
		Timeout() bool
	}
	if te, ok := err.(timeoutError); ok {
		return te.Timeout()
	}
	return false
}

// SubstituteEnvVars replaces ${VAR_NAME} patterns with the corresponding
// environment variable values. Unset variables become empty strings.
func SubstituteEnvVars(value string) string {
	return envVarPattern.ReplaceAllStringFunc(value, func(match string) string {
		return os.Getenv(match[2 : len(match)-1])
	})
}
