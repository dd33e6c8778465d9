// Package bankapi is the typed client for the EasyDinar banking API. Every method takes
// the caller's context so in-flight calls are abandoned when the page request ends.
package bankapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rabie-karouia/EasyDinar/internal/metrics"
)

const maxResponseBytes = 1 << 20

// Client calls the banking API.
type Client struct {
	baseURL string
	timeout time.Duration
	http    *http.Client
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// New creates a client for the API rooted at baseURL. timeout bounds every call on top
// of the caller's context; zero disables it.
func New(baseURL string, timeout time.Duration, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		timeout: timeout,
		http:    &http.Client{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// call describes one outbound request.
type call struct {
	method      string
	path        string
	query       url.Values
	body        io.Reader
	contentType string
	token       string
}

func jsonCall(method, path, token string, payload any) (call, error) {
	buf, err := json.Marshal(payload)
	if err != nil {
		return call{}, fmt.Errorf("encode %s payload: %w", path, err)
	}
	return call{
		method:      method,
		path:        path,
		body:        bytes.NewReader(buf),
		contentType: "application/json",
		token:       token,
	}, nil
}

func formCall(path, token string, form url.Values) call {
	return call{
		method:      http.MethodPost,
		path:        path,
		body:        strings.NewReader(form.Encode()),
		contentType: "application/x-www-form-urlencoded",
		token:       token,
	}
}

// do executes the call and returns the body of a 2xx response.
func (c *Client) do(ctx context.Context, cl call) ([]byte, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	target := c.baseURL + cl.path
	if len(cl.query) > 0 {
		target += "?" + cl.query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, cl.method, target, cl.body)
	if err != nil {
		return nil, fmt.Errorf("build %s %s: %w", cl.method, cl.path, err)
	}
	if cl.contentType != "" {
		req.Header.Set("Content-Type", cl.contentType)
	}
	req.Header.Set("Accept", "application/json")
	if cl.token != "" {
		req.Header.Set("Authorization", "Bearer "+cl.token)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		metrics.ObserveBackendCall(cl.path, 0, time.Since(start))
		return nil, fmt.Errorf("%w: %s %s: %v", ErrTransport, cl.method, cl.path, err)
	}
	defer resp.Body.Close()
	metrics.ObserveBackendCall(cl.path, resp.StatusCode, time.Since(start))

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: read %s response: %v", ErrTransport, cl.path, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, newAPIError(resp.StatusCode, body)
	}
	return body, nil
}

// doJSON executes the call and decodes a 2xx body into out (which may be nil).
func (c *Client) doJSON(ctx context.Context, cl call, out any) error {
	body, err := c.do(ctx, cl)
	if err != nil {
		return err
	}
	if out == nil || len(bytes.TrimSpace(body)) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode %s response: %w", cl.path, err)
	}
	return nil
}
