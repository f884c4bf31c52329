package http

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/piresc/darsyar/internal/pkg/circuitbreaker"
	"github.com/piresc/darsyar/internal/pkg/logger"
	nrpkg "github.com/piresc/darsyar/internal/pkg/newrelic"
	"github.com/piresc/darsyar/internal/pkg/retry"
)

const maxResponseBody = 1 << 20

// Config holds outbound client settings
type Config struct {
	Name    string // breaker name, usually the provider
	Timeout time.Duration
	Retry   retry.Config
}

// Response is a fully read HTTP response
type Response struct {
	StatusCode int
	Body       []byte
}

// HTTPError is returned for non-2xx responses
type HTTPError struct {
	StatusCode int
	Body       string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("unexpected status %d: %s", e.StatusCode, e.Body)
}

// Client wraps http.Client with retry, circuit breaker and external segments.
// 5xx and transport errors are retried; 4xx are not.
type Client struct {
	httpClient *http.Client
	retrier    *retry.Retrier
	breaker    *circuitbreaker.CircuitBreaker
	logger     *logger.ZapLogger
}

// NewClient creates a new outbound HTTP client
func NewClient(cfg Config, log *logger.ZapLogger) *Client {
	if cfg.Timeout == 0 {
		cfg.Timeout = 10 * time.Second
	}

	cbConfig := circuitbreaker.DefaultConfig(cfg.Name)
	cbConfig.IsFailure = func(err error) bool {
		return err != nil && !retry.IsPermanent(err)
	}

	return &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		retrier:    retry.New(cfg.Retry, log),
		breaker:    circuitbreaker.New(cbConfig, log),
		logger:     log,
	}
}

// Do sends the request built by newRequest. It is called once per attempt
// so request bodies are never reused.
func (c *Client) Do(ctx context.Context, newRequest func(ctx context.Context) (*http.Request, error)) (*Response, error) {
	var out *Response

	err := c.breaker.Execute(ctx, func(ctx context.Context) error {
		return c.retrier.Execute(ctx, func(ctx context.Context) error {
			req, err := newRequest(ctx)
			if err != nil {
				return retry.Permanent(err)
			}

			resp, err := nrpkg.InstrumentHTTPRequest(ctx, req, func() (*http.Response, error) {
				return c.httpClient.Do(req)
			})
			if err != nil {
				return err
			}
			defer resp.Body.Close()

			body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))
			if err != nil {
				return fmt.Errorf("failed to read response: %w", err)
			}

			switch {
			case resp.StatusCode >= 500:
				return &HTTPError{StatusCode: resp.StatusCode, Body: string(body)}
			case resp.StatusCode >= 300:
				return retry.Permanent(&HTTPError{StatusCode: resp.StatusCode, Body: string(body)})
			}

			out = &Response{StatusCode: resp.StatusCode, Body: body}
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	return out, nil
}

// PostForm posts url-encoded form values
func (c *Client) PostForm(ctx context.Context, endpoint string, form url.Values) (*Response, error) {
	encoded := form.Encode()
	return c.Do(ctx, func(ctx context.Context) (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(encoded))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		req.Header.Set("Accept", "application/json")
		return req, nil
	})
}

// BreakerState reports the circuit breaker state
func (c *Client) BreakerState() circuitbreaker.State {
	return c.breaker.State()
}
