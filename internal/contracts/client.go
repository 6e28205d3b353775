package contracts

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Service defines the contract API operations the UI and CLI depend on.
// It is implemented by *Client and can be faked in tests.
type Service interface {
	List(ctx context.Context) ([]Contract, error)
	Get(ctx context.Context, id int64) (*Contract, error)
	Create(ctx context.Context, payload Payload) (*Contract, error)
	Update(ctx context.Context, id int64, payload Payload) (*Contract, error)
}

// Ensure Client implements Service at compile time.
var _ Service = (*Client)(nil)

// Client talks to the contract registry REST API.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	userAgent string
	log       *zap.Logger
}

const (
	DefaultAPIURL         = "http://localhost/api/v1/contracts/"
	defaultUserAgent      = "contractdesk/0.1"
	DefaultRequestTimeout = 10 * time.Second
)

// Option customises a Client.
type Option func(*Client)

// WithTimeout overrides the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.http.Timeout = d
		}
	}
}

// WithLogger attaches a request logger.
func WithLogger(l *zap.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.log = l
		}
	}
}

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		if h != nil {
			c.http = h
		}
	}
}

// NewClient builds a Client rooted at the contracts collection URL, e.g.
// http://localhost/api/v1/contracts/.
func NewClient(apiURL string, opts ...Option) (*Client, error) {
	base, err := parseBaseURL(apiURL)
	if err != nil {
		return nil, err
	}
	c := &Client{
		baseURL:   base,
		http:      &http.Client{Timeout: DefaultRequestTimeout},
		userAgent: defaultUserAgent,
		log:       zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// BaseURL returns the collection URL requests are resolved against.
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

// List fetches every contract.
func (c *Client) List(ctx context.Context) ([]Contract, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	var payload []Contract
	if err := c.do(ctx, http.MethodGet, "", nil, &payload); err != nil {
		return nil, err
	}
	return payload, nil
}

// Get fetches a single contract by id.
func (c *Client) Get(ctx context.Context, id int64) (*Contract, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	if id <= 0 {
		return nil, fmt.Errorf("contract id required")
	}
	var payload Contract
	if err := c.do(ctx, http.MethodGet, strconv.FormatInt(id, 10), nil, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// Create posts a new contract and returns the stored record.
func (c *Client) Create(ctx context.Context, payload Payload) (*Contract, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	var saved Contract
	if err := c.do(ctx, http.MethodPost, "", payload, &saved); err != nil {
		return nil, err
	}
	return &saved, nil
}

// Update patches the populated fields of an existing contract.
func (c *Client) Update(ctx context.Context, id int64, payload Payload) (*Contract, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	if id <= 0 {
		return nil, fmt.Errorf("contract id required")
	}
	var saved Contract
	if err := c.do(ctx, http.MethodPatch, strconv.FormatInt(id, 10), payload, &saved); err != nil {
		return nil, err
	}
	return &saved, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, dest any) error {
	reqURL := c.baseURL.ResolveReference(&url.URL{Path: path})

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL.String(), reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("X-Request-ID", requestID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn("request failed",
			zap.String("method", method),
			zap.String("url", reqURL.String()),
			zap.String("request_id", requestID),
			zap.Error(err))
		return fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	c.log.Debug("request completed",
		zap.String("method", method),
		zap.String("url", reqURL.String()),
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(start)),
		zap.String("request_id", requestID))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return newAPIError(method, reqURL.Path, resp)
	}
	if dest == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// APIError is returned for non-2xx responses.
type APIError struct {
	Method string
	Path   string
	Status int
	Detail string
}

func (e *APIError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("api %s %s returned status %d: %s", e.Method, e.Path, e.Status, e.Detail)
	}
	return fmt.Sprintf("api %s %s returned status %d", e.Method, e.Path, e.Status)
}

func newAPIError(method, path string, resp *http.Response) *APIError {
	apiErr := &APIError{Method: method, Path: path, Status: resp.StatusCode}
	raw, err := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err != nil || len(raw) == 0 {
		return apiErr
	}
	var body struct {
		Detail json.RawMessage `json:"detail"`
	}
	if json.Unmarshal(raw, &body) != nil || len(body.Detail) == 0 {
		return apiErr
	}
	apiErr.Detail = detailText(body.Detail)
	return apiErr
}

// detailText flattens FastAPI's detail, which is a string for HTTP errors and
// a list of {loc, msg} objects for validation errors.
func detailText(raw json.RawMessage) string {
	var s string
	if json.Unmarshal(raw, &s) == nil {
		return strings.TrimSpace(s)
	}
	var items []struct {
		Msg string `json:"msg"`
		Loc []any  `json:"loc"`
	}
	if json.Unmarshal(raw, &items) == nil {
		msgs := make([]string, 0, len(items))
		for _, item := range items {
			if item.Msg == "" {
				continue
			}
			if n := len(item.Loc); n > 0 {
				msgs = append(msgs, fmt.Sprintf("%v: %s", item.Loc[n-1], item.Msg))
				continue
			}
			msgs = append(msgs, item.Msg)
		}
		return strings.Join(msgs, "; ")
	}
	return ""
}

// Message returns the server-provided detail carried by err, or fallback.
func Message(err error, fallback string) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Detail != "" {
		return apiErr.Detail
	}
	return fallback
}

func parseBaseURL(apiURL string) (*url.URL, error) {
	trimmed := strings.TrimSpace(apiURL)
	if trimmed == "" {
		trimmed = DefaultAPIURL
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse api url %q: %w", apiURL, err)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("parse api url %q: missing host", apiURL)
	}
	if !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
