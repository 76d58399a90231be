// Package client is a Go client for the call tracker HTTP API.
//
// GET requests are retried on network errors and 5xx responses; writes are
// sent once. Errors returned by the server surface as *APIError, transport
// failures as *NetworkError.
//
// Request and response bodies use the aliases in types.go, so programs outside
// this module can build import rows and read calls without importing the
// server's internal packages.
package client

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
	"sync"
	"time"

	"github.com/sethvargo/go-retry"
	"github.com/straye-as/calltracker-api/internal/domain"
)

const (
	// DefaultAttempts is how many times a GET is tried before giving up
	DefaultAttempts = 3
	// DefaultRetryDelay is the fixed pause between GET attempts
	DefaultRetryDelay = 500 * time.Millisecond
	// DefaultTimeout bounds a single HTTP exchange
	DefaultTimeout = 15 * time.Second
)

// APIError is an error response from the server
type APIError struct {
	StatusCode int
	Type       string
	Message    string
	Fields     map[string]string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api error: %d %s", e.StatusCode, http.StatusText(e.StatusCode))
	}
	return fmt.Sprintf("api error: %d %s", e.StatusCode, e.Message)
}

// NetworkError wraps a failure to reach the server or read its response
type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error during %s: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// Timeout reports whether the failure was a timeout
func (e *NetworkError) Timeout() bool {
	if errors.Is(e.Err, context.DeadlineExceeded) {
		return true
	}
	var t interface{ Timeout() bool }
	return errors.As(e.Err, &t) && t.Timeout()
}

// IsNotFound reports whether err is a 404 from the server
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}

// Client talks to the call tracker API with a bearer token
type Client struct {
	baseURL    string
	httpClient *http.Client
	attempts   uint64
	retryDelay time.Duration

	mu    sync.RWMutex
	token string
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithToken sets the bearer token sent with every request
func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

// WithRetry sets the GET attempt count and the fixed delay between attempts
func WithRetry(attempts uint64, delay time.Duration) Option {
	return func(c *Client) {
		if attempts == 0 {
			attempts = 1
		}
		c.attempts = attempts
		c.retryDelay = delay
	}
}

// New creates a client for the server at baseURL (for example http://localhost:5000)
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: DefaultTimeout},
		attempts:   DefaultAttempts,
		retryDelay: DefaultRetryDelay,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Token returns the current bearer token
func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// SetToken replaces the bearer token
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

// Register creates an account and keeps the returned token
func (c *Client) Register(ctx context.Context, name, email, password string) (*AuthResponse, error) {
	var resp AuthResponse
	err := c.send(ctx, http.MethodPost, "/api/users", domain.RegisterUserRequest{
		Name:     name,
		Email:    email,
		Password: password,
	}, &resp)
	if err != nil {
		return nil, err
	}
	c.SetToken(resp.Token)
	return &resp, nil
}

// Login exchanges credentials for a token and keeps it
func (c *Client) Login(ctx context.Context, email, password string) (*AuthResponse, error) {
	var resp AuthResponse
	err := c.send(ctx, http.MethodPost, "/api/users/login", domain.LoginRequest{
		Email:    email,
		Password: password,
	}, &resp)
	if err != nil {
		return nil, err
	}
	c.SetToken(resp.Token)
	return &resp, nil
}

// Me returns the authenticated user
func (c *Client) Me(ctx context.Context) (*User, error) {
	var user User
	if err := c.get(ctx, "/api/users/me", &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Today returns today's calls for the authenticated user
func (c *Client) Today(ctx context.Context) ([]ScheduledCall, error) {
	return c.TodayOn(ctx, "")
}

// TodayOn returns the calls due on date (YYYY-MM-DD); an empty date means today
func (c *Client) TodayOn(ctx context.Context, date string) ([]ScheduledCall, error) {
	path := "/api/calls/today"
	if date != "" {
		path += "?" + url.Values{"date": {date}}.Encode()
	}
	var calls []ScheduledCall
	if err := c.get(ctx, path, &calls); err != nil {
		return nil, err
	}
	return calls, nil
}

// Upcoming returns the next active calls; limit <= 0 uses the server default
func (c *Client) Upcoming(ctx context.Context, limit int) ([]ScheduledCall, error) {
	path := "/api/calls/upcoming"
	if limit > 0 {
		path += "?limit=" + strconv.Itoa(limit)
	}
	var calls []ScheduledCall
	if err := c.get(ctx, path, &calls); err != nil {
		return nil, err
	}
	return calls, nil
}

// Calendar returns the calendar view for a month
func (c *Client) Calendar(ctx context.Context, year int, month time.Month) (*Calendar, error) {
	q := url.Values{
		"year":  {strconv.Itoa(year)},
		"month": {strconv.Itoa(int(month))},
	}
	var cal Calendar
	if err := c.get(ctx, "/api/calls/calendar?"+q.Encode(), &cal); err != nil {
		return nil, err
	}
	return &cal, nil
}

// get performs a GET with retries on network errors and 5xx responses
func (c *Client) get(ctx context.Context, path string, out interface{}) error {
	delay := c.retryDelay
	if delay <= 0 {
		delay = time.Millisecond
	}
	backoff := retry.WithMaxRetries(c.attempts-1, retry.NewConstant(delay))
	return retry.Do(ctx, backoff, func(ctx context.Context) error {
		err := c.send(ctx, http.MethodGet, path, nil, out)
		if retryable(ctx, err) {
			return retry.RetryableError(err)
		}
		return err
	})
}

func retryable(ctx context.Context, err error) bool {
	if err == nil || ctx.Err() != nil {
		return false
	}
	var netErr *NetworkError
	if errors.As(err, &netErr) {
		return true
	}
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode >= http.StatusInternalServerError
}

// send performs one request, decoding a 2xx body into out
func (c *Client) send(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &NetworkError{Op: method + " " + path, Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return &NetworkError{Op: "read " + path, Err: err}
	}

	if resp.StatusCode >= http.StatusBadRequest {
		return decodeAPIError(resp.StatusCode, data)
	}
	if out == nil || len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to decode response from %s: %w", path, err)
	}
	return nil
}

func decodeAPIError(status int, data []byte) error {
	apiErr := &APIError{StatusCode: status}
	var body domain.APIError
	if err := json.Unmarshal(data, &body); err == nil {
		apiErr.Type = body.Type
		apiErr.Message = body.Message
		apiErr.Fields = body.Errors
	} else {
		apiErr.Message = strings.TrimSpace(string(data))
	}
	return apiErr
}
