// Package apiclient is the console's single gateway to the internship REST
// API. Every call attaches the current bearer token, decodes JSON bodies
// regardless of status and never retries.
package apiclient

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

	appErrors "github.com/noah-isme/internship-admin/pkg/errors"
	"github.com/noah-isme/internship-admin/pkg/middleware/requestid"
)

// TokenSource yields the bearer token for outgoing requests. An empty token
// means the request goes out unauthenticated.
type TokenSource interface {
	Token() string
}

// Observer receives one observation per upstream call.
type Observer interface {
	ObserveUpstream(method, route string, status int, duration time.Duration)
}

// Config configures the client.
type Config struct {
	BaseURL string
	Timeout time.Duration
}

// Client issues authenticated requests against a fixed base URL.
type Client struct {
	baseURL  string
	http     *http.Client
	tokens   TokenSource
	observer Observer
	logger   *zap.Logger
}

// Option customises a Client.
type Option func(*Client)

// WithHTTPClient swaps the underlying transport, mainly for tests.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithObserver attaches a metrics observer.
func WithObserver(o Observer) Option {
	return func(c *Client) { c.observer = o }
}

// WithLogger attaches a logger.
func WithLogger(l *zap.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// New constructs a Client. A zero timeout leaves the transport's own limit in charge.
func New(cfg Config, tokens TokenSource, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		http:    &http.Client{Timeout: cfg.Timeout},
		tokens:  tokens,
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Response is a decoded JSON reply.
type Response struct {
	Status int
	Body   json.RawMessage
}

// Decode unmarshals the body into out.
func (r *Response) Decode(out interface{}) error {
	if r == nil || len(r.Body) == 0 {
		return fmt.Errorf("empty response body")
	}
	return json.Unmarshal(r.Body, out)
}

// Message returns the server-supplied `message` field, if any.
func (r *Response) Message() string {
	if r == nil {
		return ""
	}
	_, msg := serverText(r.Body)
	return msg
}

// Blob is a binary attachment fetched from the API.
type Blob struct {
	Data        []byte
	ContentType string
	// Filename is the hint from Content-Disposition; empty when absent.
	Filename string
}

// Do sends an authenticated JSON request.
func (c *Client) Do(ctx context.Context, method, path string, body interface{}) (*Response, error) {
	return c.doJSON(ctx, method, path, body, true)
}

// Public sends a JSON request without a bearer token (login, signup).
func (c *Client) Public(ctx context.Context, method, path string, body interface{}) (*Response, error) {
	return c.doJSON(ctx, method, path, body, false)
}

func (c *Client) doJSON(ctx context.Context, method, path string, body interface{}, auth bool) (*Response, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid request payload")
		}
		reader = bytes.NewReader(payload)
	}

	req, err := c.newRequest(ctx, method, path, reader, auth)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.send(req, path)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close() //nolint:errcheck

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrUpstreamUnavailable.Code, appErrors.ErrUpstreamUnavailable.Status, appErrors.ErrUpstreamUnavailable.Message)
	}

	out := &Response{Status: resp.StatusCode, Body: json.RawMessage(bytes.TrimSpace(raw))}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return out, failure(resp.StatusCode, out.Body)
	}
	return out, nil
}

// Fetch retrieves a protected binary resource.
func (c *Client) Fetch(ctx context.Context, path string) (*Blob, error) {
	req, err := c.newRequest(ctx, http.MethodGet, path, nil, true)
	if err != nil {
		return nil, err
	}

	resp, err := c.send(req, path)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, appErrors.Clone(appErrors.ErrFileUnavailable, "not found")
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrFileUnavailable.Code, appErrors.ErrFileUnavailable.Status, "not found")
	}

	return &Blob{
		Data:        data,
		ContentType: resp.Header.Get("Content-Type"),
		Filename:    FilenameFromDisposition(resp.Header.Get("Content-Disposition"), ""),
	}, nil
}

func (c *Client) newRequest(ctx context.Context, method, path string, body io.Reader, auth bool) (*http.Request, error) {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to build upstream request")
	}
	if auth && c.tokens != nil {
		if token := c.tokens.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}
	if reqID := requestid.FromContext(ctx); reqID != "" {
		req.Header.Set(requestid.HeaderKey, reqID)
	}
	return req, nil
}

func (c *Client) send(req *http.Request, route string) (*http.Response, error) {
	start := time.Now()
	resp, err := c.http.Do(req)
	duration := time.Since(start)

	status := 0
	if resp != nil {
		status = resp.StatusCode
	}
	if c.observer != nil {
		c.observer.ObserveUpstream(req.Method, routeLabel(route), status, duration)
	}

	if err != nil {
		c.logger.Warn("upstream_request_failed",
			zap.String("method", req.Method),
			zap.String("path", route),
			zap.Duration("duration", duration),
			zap.Error(err),
		)
		if errors.Is(err, context.Canceled) {
			return nil, appErrors.Wrap(err, appErrors.ErrUpstreamUnavailable.Code, appErrors.ErrUpstreamUnavailable.Status, "request cancelled")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrUpstreamUnavailable.Code, appErrors.ErrUpstreamUnavailable.Status, appErrors.ErrUpstreamUnavailable.Message)
	}

	c.logger.Debug("upstream_request",
		zap.String("method", req.Method),
		zap.String("path", route),
		zap.Int("status", status),
		zap.Duration("duration", duration),
	)
	return resp, nil
}

// failure converts a non-2xx JSON reply into a console error, preferring the
// server's `error` field, then `message`.
func failure(status int, body json.RawMessage) error {
	errText, msg := serverText(body)
	switch {
	case errText != "":
		return appErrors.Upstream(status, errText)
	case msg != "":
		return appErrors.Upstream(status, msg)
	default:
		return appErrors.Upstream(status, "")
	}
}

func serverText(body json.RawMessage) (errText, message string) {
	if len(body) == 0 || body[0] != '{' {
		return "", ""
	}
	var payload struct {
		Error   interface{} `json:"error"`
		Message interface{} `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return "", ""
	}
	return textOf(payload.Error), textOf(payload.Message)
}

func textOf(v interface{}) string {
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case map[string]interface{}:
		if m, ok := t["message"].(string); ok {
			return strings.TrimSpace(m)
		}
	}
	return ""
}

// FilenameFromDisposition extracts the filename hint of a
// Content-Disposition header, stripping quotes. fallback is returned when the
// header carries no filename.
func FilenameFromDisposition(header, fallback string) string {
	idx := strings.Index(header, "filename=")
	if idx < 0 {
		return fallback
	}
	name := header[idx+len("filename="):]
	if semi := strings.Index(name, ";"); semi >= 0 {
		name = name[:semi]
	}
	name = strings.NewReplacer(`"`, "", `'`, "").Replace(name)
	name = strings.TrimSpace(name)
	if name == "" {
		return fallback
	}
	return name
}

// routeLabel collapses numeric path segments so metrics stay low-cardinality.
func routeLabel(path string) string {
	if i := strings.IndexByte(path, '?'); i >= 0 {
		path = path[:i]
	}
	parts := strings.Split(path, "/")
	for i, part := range parts {
		if part == "" {
			continue
		}
		numeric := true
		for _, r := range part {
			if r < '0' || r > '9' {
				numeric = false
				break
			}
		}
		if numeric {
			parts[i] = ":id"
		}
	}
	return strings.Join(parts, "/")
}
