package coreapi

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/pitabwire/util"
)

const defaultTimeout = 30 * time.Second

// Client performs the HTTP exchanges with the gateway. It is immutable once
// built and safe for concurrent use.
type Client struct {
	httpClient    *http.Client
	timeout       time.Duration
	maxRetries    int
	retryInterval time.Duration
}

type Option func(*Client)

// WithHTTPClient replaces the underlying http client, timeout included.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		if httpClient != nil {
			c.httpClient = httpClient
		}
	}
}

// WithTimeout bounds every exchange. It applies to a copy of the http client,
// so the order of options does not matter.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.timeout = timeout
		}
	}
}

// WithRetries retries transport failures up to n more times, starting at interval
// and backing off exponentially. Received responses are never retried.
func WithRetries(n int, interval time.Duration) Option {
	return func(c *Client) {
		if n < 0 {
			n = 0
		}
		c.maxRetries = n
		c.retryInterval = interval
	}
}

// NewClient creates a client with a 30 second timeout and no retries.
func NewClient(opts ...Option) *Client {
	c := &Client{
		httpClient:    &http.Client{Timeout: defaultTimeout},
		retryInterval: 500 * time.Millisecond,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.timeout > 0 {
		httpClient := *c.httpClient
		httpClient.Timeout = c.timeout
		c.httpClient = &httpClient
	}
	return c
}

type response struct {
	statusCode int
	body       []byte
}

// do sends the request built by newRequest, rebuilding it for every attempt.
// Only failures to get a complete response are retried.
func (c *Client) do(ctx context.Context, newRequest func() (*http.Request, error)) (*response, error) {
	var resp *response
	attempt := 0

	operation := func() error {
		attempt++

		req, err := newRequest()
		if err != nil {
			return backoff.Permanent(err)
		}

		httpResp, err := c.httpClient.Do(req)
		if err != nil {
			return err
		}
		defer httpResp.Body.Close()

		body, err := io.ReadAll(httpResp.Body)
		if err != nil {
			return fmt.Errorf("read body: %w", err)
		}

		resp = &response{statusCode: httpResp.StatusCode, body: body}
		return nil
	}

	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = c.retryInterval
	policy.MaxElapsedTime = 0

	notify := func(err error, wait time.Duration) {
		util.Log(ctx).WithError(err).
			WithField("attempt", attempt).
			WithField("wait", wait).
			Warn("gateway request failed, retrying")
	}

	err := backoff.RetryNotify(
		operation,
		backoff.WithContext(backoff.WithMaxRetries(policy, uint64(c.maxRetries)), ctx),
		notify,
	)
	if err != nil {
		return nil, err
	}
	return resp, nil
}

func (c *Client) get(ctx context.Context, url string, headers map[string]string) (*response, error) {
	return c.do(ctx, func() (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, err
		}
		setHeaders(req, headers)
		return req, nil
	})
}

func (c *Client) post(ctx context.Context, url string, payload []byte, headers map[string]string) (*response, error) {
	return c.do(ctx, func() (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
		if err != nil {
			return nil, err
		}
		setHeaders(req, headers)
		return req, nil
	})
}

func setHeaders(req *http.Request, headers map[string]string) {
	for k, v := range headers {
		if v == "" {
			continue
		}
		req.Header.Set(k, v)
	}
}

