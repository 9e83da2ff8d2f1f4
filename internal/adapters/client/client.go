// Package client fetches runner datasets from a trailboard server.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/okian/trailboard/internal/domain/types"
	"github.com/okian/trailboard/pkg/logger"
)

const (
	defaultTimeout = 10 * time.Second
	// maxErrorBody bounds how much of a failed response is read.
	maxErrorBody = 4 << 10
)

// Client is an HTTP client for the runners API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     logger.Logger
}

// Option applies a configuration option to the Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.httpClient.Timeout = d
		}
	}
}

// WithLogger sets the logger for request tracing.
func WithLogger(l logger.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// New returns a client for the server at baseURL, e.g. "http://localhost:9080".
func New(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid base url %q", baseURL)
	}
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = logger.Named("client")
	}
	return c, nil
}

// Runners fetches the dataset of distance d. An empty d fetches the
// default dataset.
func (c *Client) Runners(ctx context.Context, d types.Distance) (types.Dataset, error) {
	if d == "" {
		return c.Default(ctx)
	}
	return c.fetch(ctx, "/api/runners/"+url.PathEscape(string(d)))
}

// Default fetches the default dataset.
func (c *Client) Default(ctx context.Context) (types.Dataset, error) {
	return c.fetch(ctx, "/api/runners")
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	// Error is the message field of older servers.
	Error string `json:"error"`
}

func (c *Client) fetch(ctx context.Context, path string) (types.Dataset, error) {
	start := time.Now()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoad, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: GET %s: %w", ErrLoad, path, err)
	}
	defer resp.Body.Close()

	c.logger.Debug(ctx, "dataset response",
		logger.String("path", path),
		logger.Int("status", resp.StatusCode),
		logger.Duration("elapsed", time.Since(start)),
	)

	switch {
	case resp.StatusCode == http.StatusOK:
	case resp.StatusCode == http.StatusBadRequest:
		return nil, decodeValidation(resp)
	default:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, fmt.Errorf("%w: GET %s: status %d: %s", ErrLoad, path, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var ds types.Dataset
	if err := json.NewDecoder(resp.Body).Decode(&ds); err != nil {
		return nil, fmt.Errorf("%w: decode %s: %w", ErrLoad, path, err)
	}
	if ds == nil {
		ds = types.Dataset{}
	}
	return ds, nil
}

func decodeValidation(resp *http.Response) error {
	verr := &ValidationError{Status: resp.StatusCode}
	var body errorBody
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxErrorBody)).Decode(&body); err == nil {
		verr.Code = body.Code
		verr.Message = body.Message
		if verr.Message == "" {
			verr.Message = body.Error
		}
	}
	if verr.Message == "" {
		verr.Message = http.StatusText(resp.StatusCode)
	}
	return verr
}
