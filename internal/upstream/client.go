package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Client talks to the external booking API: HTTPS, JSON bodies, bearer token
// on every call once a token is present in the calling context. Standard
// operations get a 10s timeout, admin operations 15s. Nothing is retried.
type Client struct {
	baseURL        string
	http           *http.Client
	adminHTTP      *http.Client
	logger         *zap.Logger
	onUnauthorized func(ctx context.Context)
	onResult       func(outcome string)
}

type Option func(*Client)

// WithUnauthorizedHook registers the single central reaction to a 401 from
// any call: the hook fires once per failed request, before the error is
// returned to the caller.
func WithUnauthorizedHook(fn func(ctx context.Context)) Option {
	return func(c *Client) {
		c.onUnauthorized = fn
	}
}

// WithResultHook reports every call's outcome ("ok", "rejected" or
// "network") for metering.
func WithResultHook(fn func(outcome string)) Option {
	return func(c *Client) {
		c.onResult = fn
	}
}

func NewClient(baseURL string, timeout, adminTimeout time.Duration, logger *zap.Logger, opts ...Option) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	c := &Client{
		baseURL:   strings.TrimRight(baseURL, "/"),
		http:      &http.Client{Timeout: timeout},
		adminHTTP: &http.Client{Timeout: adminTimeout},
		logger:    logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type tokenKey struct{}

// WithToken attaches a bearer token to the context for subsequent calls.
func WithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenKey{}, token)
}

func tokenFrom(ctx context.Context) string {
	token, _ := ctx.Value(tokenKey{}).(string)
	return token
}

// APIError is a server-side rejection with a decoded message.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("request failed with status %d", e.Status)
}

// ErrUnavailable marks transport failures and timeouts, distinguished from
// server-side rejection in the user-facing message.
var ErrUnavailable = errors.New("unable to connect to server, please check your connection")

func IsUnavailable(err error) bool {
	return errors.Is(err, ErrUnavailable)
}

func statusIs(err error, status int) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == status
}

func IsUnauthorized(err error) bool { return statusIs(err, http.StatusUnauthorized) }
func IsForbidden(err error) bool    { return statusIs(err, http.StatusForbidden) }
func IsNotFound(err error) bool     { return statusIs(err, http.StatusNotFound) }

// Message returns the short user-facing text for err, preferring the
// server-supplied message over the generic fallback.
func Message(err error, fallback string) string {
	if IsUnavailable(err) {
		return ErrUnavailable.Error()
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}

// envelope is the response shape the API uses everywhere: a success flag plus
// either a payload keyed by resource name or a message.
type envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func (c *Client) do(ctx context.Context, client *http.Client, method, path string, query url.Values, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token := tokenFrom(ctx); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := client.Do(req)
	if err != nil {
		c.report("network")
		c.logger.Warn("upstream unreachable", zap.String("method", method), zap.String("path", path), zap.Error(err))
		return fmt.Errorf("%s %s: %w", method, path, ErrUnavailable)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		c.report("network")
		return fmt.Errorf("%s %s: %w", method, path, ErrUnavailable)
	}

	if resp.StatusCode == http.StatusUnauthorized && c.onUnauthorized != nil {
		c.onUnauthorized(ctx)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.report("rejected")
		var env envelope
		_ = json.Unmarshal(data, &env)
		c.logger.Info("upstream rejected request",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", resp.StatusCode),
			zap.String("message", env.Message))
		return &APIError{Status: resp.StatusCode, Message: env.Message}
	}

	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	if !env.Success {
		c.report("rejected")
		return &APIError{Status: resp.StatusCode, Message: env.Message}
	}

	if out != nil {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("decode response payload: %w", err)
		}
	}
	c.report("ok")
	return nil
}

func (c *Client) report(outcome string) {
	if c.onResult != nil {
		c.onResult(outcome)
	}
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	return c.do(ctx, c.http, http.MethodGet, path, query, nil, out)
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, c.http, http.MethodPost, path, nil, body, out)
}

func (c *Client) put(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, c.http, http.MethodPut, path, nil, body, out)
}

func (c *Client) adminGet(ctx context.Context, path string, query url.Values, out any) error {
	return c.do(ctx, c.adminHTTP, http.MethodGet, path, query, nil, out)
}

func (c *Client) adminPost(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, c.adminHTTP, http.MethodPost, path, nil, body, out)
}

func (c *Client) adminPut(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, c.adminHTTP, http.MethodPut, path, nil, body, out)
}

func (c *Client) adminDelete(ctx context.Context, path string) error {
	return c.do(ctx, c.adminHTTP, http.MethodDelete, path, nil, nil, nil)
}

// Health probes the API's health endpoint for connectivity.
func (c *Client) Health(ctx context.Context) error {
	return c.get(ctx, "/health", nil, nil)
}
