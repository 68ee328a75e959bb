// Package translator talks to the remote completion endpoint. It owns the
// per-attempt deadline, the classification of every failure into an
// ErrorKind, and the single retry for connectivity failures.
package translator

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

const (
	DefaultEndpoint   = "https://toolkit.rork.com/text/llm/"
	DefaultTimeout    = 30 * time.Second
	DefaultRetryDelay = 3 * time.Second

	// maxLoggedBody bounds request/response bodies written to the log.
	maxLoggedBody = 200
	// maxResponseBody bounds how much of a response body is read.
	maxResponseBody = 1 << 20
)

// Host selects the wording of network error messages.
type Host int

const (
	HostNative Host = iota
	// HostBrowser is used when the end user reaches the service through a web page.
	HostBrowser
)

// ParseHost accepts "native" or "browser".
func ParseHost(s string) (Host, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "native":
		return HostNative, nil
	case "browser", "web":
		return HostBrowser, nil
	}
	return HostNative, fmt.Errorf("unknown host mode %q", s)
}

func (h Host) String() string {
	if h == HostBrowser {
		return "browser"
	}
	return "native"
}

// Message is one entry of the chat exchange sent to the endpoint.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type completionRequest struct {
	Messages []Message `json:"messages"`
}

// Client sends translation requests to a fixed completion endpoint.
// It is safe for concurrent use; every call has its own attempt state.
type Client struct {
	endpoint   string
	client     *http.Client
	timeout    time.Duration
	retryDelay time.Duration
	host       Host
	logger     *zap.Logger
	sleep      func(ctx context.Context, d time.Duration) error
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client. Its own Timeout should
// be zero or larger than the attempt deadline.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.client = hc
		}
	}
}

// WithTimeout sets the per-attempt deadline.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithRetryDelay sets the fixed pause before the second attempt.
func WithRetryDelay(d time.Duration) Option {
	return func(c *Client) {
		if d >= 0 {
			c.retryDelay = d
		}
	}
}

func WithHost(h Host) Option {
	return func(c *Client) { c.host = h }
}

func WithLogger(l *zap.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithSleep replaces the function used to wait before the retry.
func WithSleep(fn func(ctx context.Context, d time.Duration) error) Option {
	return func(c *Client) {
		if fn != nil {
			c.sleep = fn
		}
	}
}

// NewClient creates a client for endpoint (DefaultEndpoint when empty).
func NewClient(endpoint string, opts ...Option) *Client {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	c := &Client{
		endpoint:   endpoint,
		client:     &http.Client{},
		timeout:    DefaultTimeout,
		retryDelay: DefaultRetryDelay,
		host:       HostNative,
		logger:     zap.NewNop(),
		sleep:      sleepContext,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.logger = c.logger.With(zap.String("component", "translator"))
	return c
}

func (c *Client) Endpoint() string {
	return c.endpoint
}

// step is a state of the attempt sequence:
// first → (delay) → second → done. There is never a third attempt.
type step int

const (
	stepFirst step = iota
	stepDelay
	stepSecond
)

// Complete sends the system prompt and user text as a two-message exchange
// and returns the raw completion. A connectivity failure on the first attempt
// is retried once after the retry delay; any other failure is returned as is.
// When the second attempt fails too, a server error is surfaced unchanged and
// everything else becomes a generic connection failure.
func (c *Client) Complete(ctx context.Context, systemPrompt, userText string) (string, error) {
	body, err := json.Marshal(completionRequest{
		Messages: []Message{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: strings.TrimSpace(userText)},
		},
	})
	if err != nil {
		return "", unexpected(fmt.Errorf("failed to marshal request: %w", err))
	}

	var firstErr error
	st := stepFirst
	for {
		switch st {
		case stepFirst:
			completion, err := c.attempt(ctx, 1, body)
			if err == nil {
				return completion, nil
			}
			if !IsRetryable(err) {
				return "", err
			}
			firstErr = err
			st = stepDelay

		case stepDelay:
			c.logger.Info("first attempt failed, retrying",
				zap.Error(firstErr),
				zap.Duration("delay", c.retryDelay))
			if err := c.sleep(ctx, c.retryDelay); err != nil {
				return "", fmt.Errorf("translation cancelled before retry: %w", err)
			}
			st = stepSecond

		case stepSecond:
			completion, err := c.attempt(ctx, 2, body)
			if err == nil {
				return completion, nil
			}
			c.logger.Warn("second attempt failed", zap.Error(err))
			if kind, ok := KindOf(err); ok && kind == KindServerError {
				return "", err
			}
			if ctx.Err() != nil {
				return "", err
			}
			return "", connectionFailed(err)
		}
	}
}

// attempt performs one bounded HTTP exchange.
func (c *Client) attempt(parent context.Context, n int, body []byte) (string, error) {
	ctx, cancel := context.WithTimeout(parent, c.timeout)
	defer cancel()

	log := c.logger.With(zap.Int("attempt", n))
	log.Debug("translation attempt",
		zap.String("endpoint", c.endpoint),
		zap.String("body", truncate(string(body), maxLoggedBody)))

	completion, err := c.do(ctx, body)
	if err == nil {
		log.Debug("translation attempt succeeded")
		return completion, nil
	}

	// The caller gave up; this is not ours to classify.
	if parent.Err() != nil {
		return "", fmt.Errorf("translation cancelled: %w", parent.Err())
	}

	var te *Error
	if !errors.As(err, &te) {
		te = c.classifyTransport(ctx, err)
	}
	te.Attempt = n

	log.Warn("translation attempt failed",
		zap.String("kind", string(te.Kind)),
		zap.Int("status", te.StatusCode),
		zap.String("detail", truncate(te.Detail, maxLoggedBody)),
		zap.NamedError("cause", te.Cause))
	return "", te
}

func (c *Client) do(ctx context.Context, body []byte) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", unexpected(fmt.Errorf("failed to create request: %w", err))
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	c.logger.Debug("translation response", zap.Int("status", resp.StatusCode))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", classifyStatus(resp.StatusCode, c.readErrorDetail(resp))
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))
	if err != nil {
		return "", err
	}
	return parseCompletion(raw)
}

// readErrorDetail extracts diagnostic text from an error response. Failures
// to read it are logged and yield an empty detail.
func (c *Client) readErrorDetail(resp *http.Response) string {
	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))
	if err != nil {
		c.logger.Warn("could not read error response", zap.Error(err))
		return ""
	}

	if !strings.Contains(resp.Header.Get("Content-Type"), "application/json") {
		return string(raw)
	}

	var payload map[string]any
	if err := json.Unmarshal(raw, &payload); err != nil {
		c.logger.Warn("could not decode error response", zap.Error(err))
		return ""
	}
	for _, key := range []string{"error", "message"} {
		if s, ok := payload[key].(string); ok && s != "" {
			return s
		}
	}
	return string(raw)
}

func parseCompletion(raw []byte) (string, error) {
	var payload any
	if err := json.Unmarshal(raw, &payload); err != nil {
		return "", malformed(msgInvalidJSON, err)
	}

	obj, ok := payload.(map[string]any)
	if !ok || obj == nil {
		return "", malformed(msgInvalidFormat, nil)
	}

	// Only a missing or empty completion is rejected; whitespace is left
	// for the normalizer.
	completion, _ := obj["completion"].(string)
	if completion == "" {
		return "", malformed(msgNoCompletion, nil)
	}
	return completion, nil
}

// classifyTransport maps an error raised before a response was available.
func (c *Client) classifyTransport(ctx context.Context, err error) *Error {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) || errors.Is(err, context.DeadlineExceeded) {
		return deadlineExceeded(err)
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return deadlineExceeded(err)
	}

	return networkError(c.host, err)
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}
