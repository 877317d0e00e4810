package http

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"resty.dev/v3"
)

// ErrClosed is returned by Get after Close.
var ErrClosed = errors.New("http client is closed")

// DefaultUserAgent is sent when Config.UserAgent is empty.
const DefaultUserAgent = "lyquid-go"

// Client is a GET-only transport in front of one REST host.
type Client struct {
	client     *resty.Client
	logger     zerolog.Logger
	authHeader string
	mu         sync.RWMutex
	closed     bool
}

type Config struct {
	BaseURL      string            `validate:"required,url"`
	Timeout      time.Duration     `validate:"min=1ms"`
	MaxRetries   int               `validate:"min=0"`
	RetryWaitMin time.Duration     `validate:"min=0"`
	RetryWaitMax time.Duration     `validate:"min=0"`
	Headers      map[string]string `validate:"omitempty"`
	UserAgent    string            `validate:"omitempty"`

	// AuthHeader names the header carrying request signatures. Its value is
	// never logged; only whether it was set.
	AuthHeader string         `validate:"omitempty"`
	Logger     zerolog.Logger `validate:"-"`
}

type RequestOption func(*resty.Request)

func NewClient(config *Config) (*Client, error) {
	if err := validator.New().Struct(config); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	client := resty.New()
	client.SetBaseURL(config.BaseURL)
	client.SetTimeout(config.Timeout)
	client.SetRetryCount(config.MaxRetries)
	client.SetRetryWaitTime(config.RetryWaitMin)
	client.SetRetryMaxWaitTime(config.RetryWaitMax)
	client.AddContentTypeDecoder("application/json", func(r io.Reader, v any) error {
		data, err := io.ReadAll(r)
		if err != nil {
			return err
		}
		return sonic.Unmarshal(data, v)
	})

	userAgent := config.UserAgent
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	client.SetHeader("User-Agent", userAgent)
	for k, v := range config.Headers {
		client.SetHeader(k, v)
	}

	logger := config.Logger
	authHeader := config.AuthHeader

	client.AddRequestMiddleware(func(_ *resty.Client, req *resty.Request) error {
		ev := logger.Debug().
			Str("method", req.Method).
			Str("url", req.URL)
		if authHeader != "" {
			ev = ev.Bool("signed", req.Header.Get(authHeader) != "")
		}
		ev.Msg("http request")
		return nil
	})

	client.AddResponseMiddleware(func(_ *resty.Client, resp *resty.Response) error {
		logger.Debug().
			Str("method", resp.Request.Method).
			Str("url", resp.Request.URL).
			Int("status", resp.StatusCode()).
			Int("size", len(resp.Bytes())).
			Msg("http response")
		return nil
	})

	return &Client{
		client:     client,
		logger:     logger,
		authHeader: authHeader,
	}, nil
}

func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil
	}
	c.closed = true
	return c.client.Close()
}

// Get issues a GET for uri, a path relative to the base URL that may carry
// an already encoded query string.
func (c *Client) Get(ctx context.Context, uri string, opts ...RequestOption) (*resty.Response, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.closed {
		return nil, ErrClosed
	}

	req := c.client.R().SetContext(ctx)
	for _, opt := range opts {
		opt(req)
	}
	start := time.Now()
	resp, err := req.Get(uri)
	if err != nil {
		c.logger.Error().Err(err).
			Str("uri", uri).
			Dur("elapsed", time.Since(start)).
			Msg("http request failed")
		return nil, err
	}
	if resp.StatusCode() >= 500 {
		c.logger.Warn().
			Str("uri", uri).
			Int("status", resp.StatusCode()).
			Dur("elapsed", time.Since(start)).
			Msg("http server error")
	}
	return resp, nil
}

func WithHeader(key, value string) RequestOption {
	return func(r *resty.Request) {
		r.SetHeader(key, value)
	}
}

func WithHeaders(headers map[string]string) RequestOption {
	return func(r *resty.Request) {
		r.SetHeaders(headers)
	}
}
