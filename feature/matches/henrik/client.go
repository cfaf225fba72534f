package henrik

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"valortracker/core/metrics"
	"valortracker/feature/matches/models"

	"github.com/sony/gobreaker/v2"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const maxBodyBytes = 8 << 20

// Client talks to the HenrikDev API. It holds only configuration and
// concurrency-safe collaborators, so one instance serves concurrent syncs.
type Client struct {
	cfg     Config
	http    *http.Client
	limiter *rate.Limiter
	breaker *gobreaker.CircuitBreaker[[]byte]
	logger  *zap.Logger
}

// Option customises a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// NewClient creates a client from configuration.
func NewClient(cfg Config, logger *zap.Logger, opts ...Option) *Client {
	c := &Client{
		cfg:    cfg,
		http:   &http.Client{},
		logger: logger,
	}
	if cfg.RequestsPerMinute > 0 {
		burst := cfg.Burst
		if burst <= 0 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(float64(cfg.RequestsPerMinute)/60.0), burst)
	}

	failures := uint32(cfg.BreakerFailures)
	if failures == 0 {
		failures = 5
	}
	c.breaker = gobreaker.NewCircuitBreaker[[]byte](gobreaker.Settings{
		Name:        "henrik-api",
		MaxRequests: 1,
		Timeout:     cfg.BreakerTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= failures
		},
		// Only transient failures count against the breaker.
		IsSuccessful: func(err error) bool {
			return err == nil || !models.IsRetryable(err)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("Circuit breaker state changed",
				zap.String("breaker", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
		},
	})

	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FetchPage returns one page of the player's match history. An exhausted
// history yields an empty slice. Records that cannot be decoded are returned
// with only Raw set so the caller can skip them individually.
func (c *Client) FetchPage(ctx context.Context, req PageRequest) ([]RawMatch, error) {
	endpoint := fmt.Sprintf("%s/v3/by-puuid/matches/%s/%s",
		strings.TrimRight(c.cfg.BaseURL, "/"),
		url.PathEscape(req.Region),
		url.PathEscape(req.PlayerID),
	)
	q := url.Values{}
	if c.cfg.Mode != "" {
		q.Set("mode", c.cfg.Mode)
	}
	q.Set("size", strconv.Itoa(req.Size))
	q.Set("start", strconv.Itoa(req.Offset))

	data, err := c.get(ctx, endpoint+"?"+q.Encode())
	if err != nil {
		return nil, err
	}
	if isEmpty(data) {
		return nil, nil
	}

	var records []json.RawMessage
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, c.fail(&models.RemoteFetchError{Kind: models.KindBadResponse, Err: fmt.Errorf("decode match list: %w", err)})
	}

	out := make([]RawMatch, 0, len(records))
	for _, rec := range records {
		var m RawMatch
		if err := json.Unmarshal(rec, &m); err != nil {
			c.logger.Debug("Undecodable match record", zap.Error(err))
			m = RawMatch{}
		}
		m.Raw = rec
		out = append(out, m)
	}
	return out, nil
}

// Account resolves a display name and tag to the remote account.
func (c *Client) Account(ctx context.Context, name, tag string) (*Account, error) {
	endpoint := fmt.Sprintf("%s/v1/account/%s/%s",
		strings.TrimRight(c.cfg.BaseURL, "/"),
		url.PathEscape(name),
		url.PathEscape(tag),
	)

	data, err := c.get(ctx, endpoint)
	if err != nil {
		return nil, err
	}

	var acc Account
	if err := json.Unmarshal(data, &acc); err != nil || acc.PUUID == "" {
		if err == nil {
			err = errors.New("account without puuid")
		}
		return nil, c.fail(&models.RemoteFetchError{Kind: models.KindBadResponse, Err: err})
	}
	return &acc, nil
}

// get performs one GET under the per-request timeout and returns the
// envelope's data field.
func (c *Client) get(ctx context.Context, endpoint string) (json.RawMessage, error) {
	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout())
	defer cancel()

	start := time.Now()
	body, err := c.breaker.Execute(func() ([]byte, error) {
		return c.do(ctx, endpoint)
	})
	metrics.RemoteRequestDuration.Observe(time.Since(start).Seconds())

	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			err = &models.RemoteFetchError{Kind: models.KindUnavailable, Err: err}
		}
		return nil, c.fail(err)
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, c.fail(&models.RemoteFetchError{Kind: models.KindBadResponse, Err: fmt.Errorf("decode envelope: %w", err)})
	}
	return env.Data, nil
}

func (c *Client) do(ctx context.Context, endpoint string) ([]byte, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, transportError(ctx, err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.cfg.APIKey != "" {
		req.Header.Set("Authorization", c.cfg.APIKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, transportError(ctx, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, transportError(ctx, err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, statusError(resp, body)
	}
	return body, nil
}

func (c *Client) fail(err error) error {
	var rfe *models.RemoteFetchError
	if errors.As(err, &rfe) {
		metrics.RemoteErrorsTotal.WithLabelValues(string(rfe.Kind)).Inc()
	}
	return err
}

func statusError(resp *http.Response, body []byte) error {
	msg := strings.TrimSpace(string(body))
	if len(msg) > 256 {
		msg = msg[:256]
	}
	e := &models.RemoteFetchError{Status: resp.StatusCode, Err: errors.New(msg)}

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		e.Kind = models.KindAuth
	case resp.StatusCode == http.StatusNotFound:
		e.Kind = models.KindNotFound
	case resp.StatusCode == http.StatusTooManyRequests:
		e.Kind = models.KindRateLimit
		if secs, err := strconv.Atoi(resp.Header.Get("Retry-After")); err == nil && secs > 0 {
			e.RetryAfter = time.Duration(secs) * time.Second
		}
	case resp.StatusCode >= 500:
		e.Kind = models.KindUnavailable
	default:
		e.Kind = models.KindBadResponse
	}
	return e
}

func transportError(ctx context.Context, err error) error {
	if errors.Is(err, context.Canceled) && !errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return err
	}
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return &models.RemoteFetchError{Kind: models.KindTimeout, Err: err}
	}
	// rate.Limiter reports a wait that cannot finish before the deadline this way.
	if ctx.Err() != nil || strings.Contains(err.Error(), "would exceed context deadline") {
		return &models.RemoteFetchError{Kind: models.KindTimeout, Err: err}
	}
	return &models.RemoteFetchError{Kind: models.KindUnavailable, Err: err}
}

func isEmpty(data json.RawMessage) bool {
	s := strings.TrimSpace(string(data))
	return s == "" || s == "null" || s == "[]"
}
