package liquid

import (
	"context"
	"errors"
	"fmt"
	"net"
	"sync/atomic"

	"github.com/rs/zerolog"

	"lyquid/internal/circuitbreaker"
	httpClient "lyquid/internal/http"
	"lyquid/internal/keyring"
	"lyquid/internal/ratelimit"
	"lyquid/pkg/core"
)

// Client issues GET requests against the Liquid REST API. A Client is safe
// for concurrent use; its configuration is fixed at construction.
type Client struct {
	config         core.Config
	keyRing        *keyring.KeyRing
	httpClient     *httpClient.Client
	rateLimiter    *ratelimit.RateLimiter
	circuitBreaker *circuitbreaker.Breaker
	logger         zerolog.Logger
	protocol       *Protocol
	nonce          func() int64
	closed         atomic.Bool
}

// Option is a functional option for configuring the Client.
type Option func(*Options)

// Options holds configuration options for the Client.
type Options struct {
	KeyRing   *keyring.KeyRing
	Logger    zerolog.Logger
	NonceFunc func() int64
}

// WithKeyRing returns an option that signs private calls with keys from kr
// instead of Config.Credentials.
func WithKeyRing(kr *keyring.KeyRing) Option {
	return func(o *Options) {
		o.KeyRing = kr
	}
}

// WithLogger returns an option that sets the logger for the client.
func WithLogger(l zerolog.Logger) Option {
	return func(o *Options) {
		o.Logger = l
	}
}

// WithNonceFunc replaces the per-request nonce generator. Returning a
// constant reproduces clients that reuse one nonce for their lifetime.
func WithNonceFunc(fn func() int64) Option {
	return func(o *Options) {
		o.NonceFunc = fn
	}
}

// New creates a Client with the given configuration and options.
func New(config *core.Config, opts ...Option) (*Client, error) {
	if config == nil {
		return nil, fmt.Errorf("config is required")
	}
	if err := config.Validate(); err != nil {
		return nil, core.NewExchangeError(core.ErrorTypeUnknown, 0, err.Error()).
			WithCode(core.ErrCodeInvalidConfig).
			WithCause(err)
	}

	options := &Options{
		Logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(options)
	}

	logger := options.Logger.With().Str("exchange", core.ExchangeName).Logger()
	if config.LogLevel != "" {
		if level, err := zerolog.ParseLevel(config.LogLevel); err == nil {
			logger = logger.Level(level)
		}
	}

	protocol := NewProtocol()

	hc, err := httpClient.NewClient(&httpClient.Config{
		BaseURL:      config.BaseURL,
		Timeout:      config.Timeout,
		MaxRetries:   config.MaxRetries,
		RetryWaitMin: config.RetryWaitMin,
		RetryWaitMax: config.RetryWaitMax,
		Headers:      protocol.Headers(),
		AuthHeader:   HeaderAuth,
		Logger:       logger,
	})
	if err != nil {
		return nil, fmt.Errorf("create http client: %w", err)
	}

	var rl *ratelimit.RateLimiter
	if config.RateLimitRequests > 0 {
		rl = ratelimit.New(config.RateLimitRequests, config.RateLimitPeriod)
	}

	var cb *circuitbreaker.Breaker
	if config.CircuitBreakerEnabled {
		cb = circuitbreaker.New(circuitbreaker.Config{
			FailThreshold:    config.CircuitBreakerFailThreshold,
			SuccessThreshold: config.CircuitBreakerSuccessThreshold,
			Timeout:          config.CircuitBreakerTimeout,
			OnStateChange: func(from, to circuitbreaker.State) {
				logger.Warn().
					Str("from", from.String()).
					Str("to", to.String()).
					Msg("circuit breaker state change")
			},
		})
	}

	nonce := options.NonceFunc
	if nonce == nil {
		nonce = newNonceSource().Next
	}

	cfg := *config
	if config.Credentials != nil {
		creds := *config.Credentials
		cfg.Credentials = &creds
	}

	return &Client{
		config:         cfg,
		keyRing:        options.KeyRing,
		httpClient:     hc,
		rateLimiter:    rl,
		circuitBreaker: cb,
		logger:         logger,
		protocol:       protocol,
		nonce:          nonce,
	}, nil
}

// Name returns the exchange identifier "liquid".
func (c *Client) Name() string {
	return c.protocol.Name()
}

// Close releases the underlying HTTP client. Calls made afterwards fail
// with core.ErrClientClosed.
func (c *Client) Close() error {
	if c.closed.Swap(true) {
		return nil
	}
	return c.httpClient.Close()
}

func newRequest(op core.Operation, path string) *core.Request {
	return core.NewRequest(op, path).SetRequireAuth(op.Signed())
}

// fetch runs req and decodes the body into a T.
func fetch[T any](ctx context.Context, c *Client, req *core.Request) (T, error) {
	var out T
	if err := c.do(ctx, req, &out); err != nil {
		var zero T
		return zero, err
	}
	return out, nil
}

func (c *Client) do(ctx context.Context, req *core.Request, out any) error {
	if c.closed.Load() {
		return closedError()
	}

	uri := req.URI()
	log := c.logger.With().
		Str("op", req.Op.String()).
		Str("path", uri).
		Bool("signed", req.RequireAuth).
		Logger()

	var (
		creds core.Credentials
		err   error
	)
	if req.RequireAuth {
		creds, err = c.credentials()
		if err != nil {
			return err
		}
	}

	if err := c.wait(ctx, creds.TokenID); err != nil {
		return fmt.Errorf("rate limit: %w", err)
	}

	if c.circuitBreaker != nil && !c.circuitBreaker.Allow() {
		return core.NewExchangeError(core.ErrorTypeUnknown, 0, core.ErrCircuitBreakerOpen.Error()).
			WithCode(core.ErrCodeCircuitBreaker).
			WithCause(core.ErrCircuitBreakerOpen)
	}

	var token string
	if req.RequireAuth {
		token, err = c.protocol.Sign(uri, creds, c.nonce())
		if err != nil {
			return core.NewExchangeError(core.ErrorTypeAuthentication, 0, err.Error()).
				WithCode(core.ErrCodeSign).
				WithCause(err)
		}
	}

	headers := make(map[string]string, len(req.Headers)+1)
	for k, v := range req.Headers {
		headers[k] = v
	}
	headers[HeaderAuth] = token

	resp, err := c.httpClient.Get(ctx, uri, httpClient.WithHeaders(headers))
	if c.circuitBreaker != nil {
		c.circuitBreaker.Record(err == nil && resp.StatusCode() < 500)
	}
	if err != nil {
		err = transportError(err)
		log.Error().Err(err).Msg("liquid request failed")
		c.reportKeyError(creds.TokenID, err)
		return err
	}

	if err := c.protocol.ParseResponse(resp, out); err != nil {
		log.Debug().Err(err).Int("status", resp.StatusCode()).Msg("liquid request rejected")
		c.reportKeyError(creds.TokenID, err)
		return err
	}

	return nil
}

// credentials picks the key ring's current key when one is configured,
// otherwise the configured credentials.
func (c *Client) credentials() (core.Credentials, error) {
	if c.keyRing != nil {
		creds, err := c.keyRing.Credentials()
		if err != nil {
			return core.Credentials{}, core.NewExchangeError(core.ErrorTypeAuthentication, 0, err.Error()).
				WithCode(core.ErrCodeNoAPIKey).
				WithCause(err)
		}
		c.keyRing.MarkUsed(creds.TokenID)
		return creds, nil
	}

	if c.config.Credentials == nil {
		return core.Credentials{}, core.NewExchangeError(core.ErrorTypeAuthentication, 0, core.ErrNoCredentials.Error()).
			WithCode(core.ErrCodeNoCredentials).
			WithCause(core.ErrNoCredentials)
	}
	return *c.config.Credentials, nil
}

func (c *Client) wait(ctx context.Context, tokenID string) error {
	if c.rateLimiter == nil {
		return nil
	}
	if tokenID != "" {
		return c.rateLimiter.WaitToken(ctx, tokenID)
	}
	return c.rateLimiter.Wait(ctx)
}

func (c *Client) reportKeyError(tokenID string, err error) {
	if c.keyRing != nil && tokenID != "" {
		c.keyRing.OnError(tokenID, err)
	}
}

func closedError() error {
	return core.NewExchangeError(core.ErrorTypeUnknown, 0, core.ErrClientClosed.Error()).
		WithCode(core.ErrCodeClientClosed).
		WithCause(core.ErrClientClosed)
}

func transportError(err error) error {
	if errors.Is(err, httpClient.ErrClosed) {
		return closedError()
	}

	errType, code := core.ErrorTypeNetwork, core.ErrCodeNetwork
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		errType, code = core.ErrorTypeTimeout, core.ErrCodeTimeout
	}
	return core.NewExchangeError(errType, 0, err.Error()).WithCode(code).WithCause(err)
}
