package authgw

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	applog "github.com/janisto/trail-profiles/internal/platform/logging"
	"github.com/janisto/trail-profiles/internal/platform/metrics"
)

const (
	defaultURL     = "https://web.socem.plymouth.ac.uk/COMP2001/auth/api/users"
	defaultTimeout = 10 * time.Second
	userAgent      = "trail-profiles"
	verifiedMarker = "Verified"
	maxBodyBytes   = 64 << 10
)

// Client implements Gateway over HTTP.
//
// The verifier answers 200 with the two-element array ["Verified", true] for
// good credentials. ["Verified", "True"] is accepted as a compatibility
// variant; anything else is a rejection.
type Client struct {
	httpClient *http.Client
	url        string
	timeout    time.Duration
}

// Option configures a Client.
type Option func(*Client)

// WithURL points the client at a different verifier (useful for testing).
func WithURL(url string) Option {
	return func(c *Client) {
		c.url = url
	}
}

// WithTimeout bounds each credential check.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
	}
}

// NewClient creates a verifier client.
func NewClient(httpClient *http.Client, opts ...Option) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	c := &Client{
		httpClient: httpClient,
		url:        defaultURL,
		timeout:    defaultTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Authenticate posts the pair to the verifier. Non-200 responses and
// unexpected markers yield ErrRejected; transport failures and undecodable
// bodies yield ErrUnavailable.
func (c *Client) Authenticate(ctx context.Context, email, password string) error {
	start := time.Now()
	err := c.authenticate(ctx, email, password)

	outcome := metrics.AuthVerified
	switch {
	case err == nil:
	case errors.Is(err, ErrRejected):
		outcome = metrics.AuthRejected
		applog.LogWarn(ctx, "credentials rejected by auth service", zap.String("email", email), zap.Error(err))
	default:
		outcome = metrics.AuthUnavailable
		applog.LogError(ctx, "auth service unavailable", err, zap.String("url", c.url))
	}
	metrics.AuthRequestsTotal.WithLabelValues(outcome).Inc()
	metrics.AuthRequestDuration.WithLabelValues(outcome).Observe(time.Since(start).Seconds())
	return err
}

func (c *Client) authenticate(ctx context.Context, email, password string) error {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	payload, err := json.Marshal(credentials{Email: email, Password: password})
	if err != nil {
		return fmt.Errorf("%w: encoding request: %v", ErrUnavailable, err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("%w: creating request: %v", ErrUnavailable, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodyBytes))
		return fmt.Errorf("%w: status %d", ErrRejected, resp.StatusCode)
	}

	var body any
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodyBytes)).Decode(&body); err != nil {
		return fmt.Errorf("%w: decoding response: %w", ErrUnavailable, err)
	}
	if !isVerified(body) {
		return fmt.Errorf("%w: unexpected marker", ErrRejected)
	}
	return nil
}

func isVerified(body any) bool {
	marker, ok := body.([]any)
	if !ok || len(marker) != 2 {
		return false
	}
	if s, ok := marker[0].(string); !ok || s != verifiedMarker {
		return false
	}
	switch v := marker[1].(type) {
	case bool:
		return v
	case string:
		return strings.EqualFold(v, "true")
	default:
		return false
	}
}

// Compile-time interface check
var _ Gateway = (*Client)(nil)
