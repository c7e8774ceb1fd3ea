// Package client implements the HTTP client used to talk to a Crestline
// JSON/form REST backend. It handles method dispatch, body encoding,
// bearer-token and extra-header injection, and response decoding with a
// closed error taxonomy (transport, request, decode).
//
// The client performs no retries, rate limiting or token refresh; those
// are caller concerns.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const defaultTimeout = 30 * time.Second

// Client talks to a single backend identified by its base URL.
// It is immutable after construction and safe for concurrent use; every
// request derives its headers fresh.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
	logger  *slog.Logger
}

// Option configures a Client at construction time.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client. Timeouts and
// cancellation beyond the request context are delegated to it.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithTimeout sets the underlying http.Client timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.http.Timeout = d }
}

// WithLogger enables debug-level request logging.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// New creates a Client for the given base URL. The URL is not validated;
// a malformed base URL surfaces as a transport error on first use.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: defaultTimeout},
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// WithToken returns a copy of the client that sends
// "Authorization: Bearer <token>" on every request. The receiver is
// unchanged, so an unauthenticated client can be kept alongside.
func (c *Client) WithToken(token string) *Client {
	cp := *c
	cp.token = token
	return &cp
}

// BaseURL returns the base URL the client was constructed with.
func (c *Client) BaseURL() string { return c.baseURL }

// Header is a single name/value pair attached to a request. Extra
// headers are applied in order after Authorization and Content-Type;
// duplicates are allowed and never replace earlier values.
type Header struct {
	Name  string
	Value string
}

// FormField is a single key/value pair of a form-urlencoded body.
// Fields are encoded in the order given.
type FormField struct {
	Key   string
	Value string
}

// GetJSON issues a GET and decodes the JSON response into out.
func (c *Client) GetJSON(ctx context.Context, path string, extra []Header, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, "", extra, out)
}

// PostJSON issues a POST with a JSON-serialized body and decodes the
// JSON response into out.
func (c *Client) PostJSON(ctx context.Context, path string, body any, extra []Header, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}
	return c.do(ctx, http.MethodPost, path, bytes.NewReader(payload), "application/json", extra, out)
}

// PutJSON issues a PUT with a JSON-serialized body and decodes the
// JSON response into out.
func (c *Client) PutJSON(ctx context.Context, path string, body any, extra []Header, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}
	return c.do(ctx, http.MethodPut, path, bytes.NewReader(payload), "application/json", extra, out)
}

// DeleteJSON issues a DELETE with no request body and decodes the JSON
// response into out.
func (c *Client) DeleteJSON(ctx context.Context, path string, extra []Header, out any) error {
	return c.do(ctx, http.MethodDelete, path, nil, "", extra, out)
}

// PostForm issues a POST with a form-urlencoded body and decodes the
// JSON response into out.
func (c *Client) PostForm(ctx context.Context, path string, fields []FormField, extra []Header, out any) error {
	body := strings.NewReader(encodeForm(fields))
	return c.do(ctx, http.MethodPost, path, body, "application/x-www-form-urlencoded", extra, out)
}

// PutForm issues a PUT with a form-urlencoded body and decodes the JSON
// response into out.
func (c *Client) PutForm(ctx context.Context, path string, fields []FormField, extra []Header, out any) error {
	body := strings.NewReader(encodeForm(fields))
	return c.do(ctx, http.MethodPut, path, body, "application/x-www-form-urlencoded", extra, out)
}

func (c *Client) do(ctx context.Context, method, path string, body io.Reader, contentType string, extra []Header, out any) error {
	reqURL := joinURL(c.baseURL, path)

	req, err := http.NewRequestWithContext(ctx, method, reqURL, body)
	if err != nil {
		return &Error{Kind: KindTransport, Err: err}
	}

	// Authorization first, then Content-Type, then caller headers.
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")

	requestID := RequestIDFrom(ctx)
	if requestID == "" {
		requestID = newRequestID()
	}
	req.Header.Set("X-Request-ID", requestID)

	// Add, not Set: caller headers may repeat and never clobber the
	// Authorization header above.
	for _, h := range extra {
		req.Header.Add(h.Name, h.Value)
	}

	c.logger.Debug("api request",
		slog.String("method", method),
		slog.String("url", reqURL),
		slog.String("request_id", requestID),
	)

	resp, err := c.http.Do(req)
	if err != nil {
		return &Error{Kind: KindTransport, Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return &Error{Kind: KindTransport, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &Error{Kind: KindRequest, Status: resp.StatusCode, Body: raw}
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return &Error{Kind: KindDecode, Err: err}
	}
	return nil
}

// joinURL joins the base URL and request path with exactly one slash,
// whatever combination of trailing/leading slashes they carry.
func joinURL(base, path string) string {
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(path, "/")
}

// encodeForm encodes fields in the order given. url.Values sorts keys on
// Encode, which would break field ordering.
func encodeForm(fields []FormField) string {
	var b strings.Builder
	for i, f := range fields {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(f.Key))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(f.Value))
	}
	return b.String()
}
