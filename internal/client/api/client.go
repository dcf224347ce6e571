package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/reddot/reddot-client/internal/logging"
)

// HTTPClient is the JSON/HTTP implementation of every API interface used by
// the client. It is safe for concurrent use.
type HTTPClient struct {
	baseURL string
	http    *http.Client
	log     logging.Logger

	mu    sync.RWMutex
	token TokenSource
}

type Option func(*HTTPClient)

// WithHTTPClient replaces the underlying http.Client. Its transport is
// wrapped, not replaced.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *HTTPClient) { c.http = hc }
}

func WithLogger(l logging.Logger) Option {
	return func(c *HTTPClient) { c.log = l }
}

func WithTimeout(d time.Duration) Option {
	return func(c *HTTPClient) { c.http.Timeout = d }
}

func NewHTTPClient(baseURL string, opts ...Option) *HTTPClient {
	c := &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 10 * time.Second},
		log:     logging.Nop(),
	}
	for _, o := range opts {
		o(c)
	}

	hc := *c.http
	hc.Transport = &authTransport{base: c.http.Transport, token: c.currentToken}
	c.http = &hc

	return c
}

// SetTokenSource installs the function consulted for the bearer token on
// every request.
func (c *HTTPClient) SetTokenSource(ts TokenSource) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = ts
}

func (c *HTTPClient) currentToken() string {
	c.mu.RLock()
	ts := c.token
	c.mu.RUnlock()
	if ts == nil {
		return ""
	}
	return ts()
}

// do sends body (if non-nil) as JSON and decodes a 2xx answer into out (if
// non-nil).
func (c *HTTPClient) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s %s: %w", method, path, err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build %s %s: %w", method, path, err)
	}

	reqID := uuid.NewString()
	req.Header.Set(requestIDHeader, reqID)
	req.Header.Set("Accept", "application/json, text/plain")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	logCtx := context.WithValue(ctx, logging.RequestIDKey{}, reqID)

	started := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn(logCtx, "request failed", "method", method, "path", path, "error", err)
		return fmt.Errorf("%s %s: %w: %v", method, path, ErrUnavailable, err)
	}
	defer resp.Body.Close()

	c.log.Debug(logCtx, "request done", "method", method, "path", path,
		"status", resp.StatusCode, "elapsed", time.Since(started))

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%s %s: read body: %w: %v", method, path, ErrUnavailable, err)
	}

	if err := mapStatus(method, path, resp.StatusCode, data); err != nil {
		return err
	}

	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}

	if s, ok := out.(*string); ok {
		*s = decodeText(data)
		return nil
	}

	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}

func mapStatus(method, path string, code int, body []byte) error {
	if code >= 200 && code < 300 {
		return nil
	}

	msg := serverMessage(body)

	switch code {
	case http.StatusUnauthorized, http.StatusForbidden:
		if msg != "" {
			return fmt.Errorf("%s %s: %w: %s", method, path, ErrUnauthorized, msg)
		}
		return fmt.Errorf("%s %s: %w", method, path, ErrUnauthorized)
	case http.StatusNotFound:
		return fmt.Errorf("%s %s: %w", method, path, ErrNotFound)
	}

	return &StatusError{Method: method, Path: path, Code: code, Message: msg}
}

// serverMessage extracts a human message from an error body: the "message"
// or "error" member of a JSON object, or the raw text.
func serverMessage(body []byte) string {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return ""
	}

	var text string
	if err := json.Unmarshal(trimmed, &text); err == nil {
		return text
	}

	var obj struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(trimmed, &obj); err == nil {
		if obj.Message != "" {
			return obj.Message
		}
		return obj.Error
	}

	var js json.RawMessage
	if json.Unmarshal(trimmed, &js) == nil {
		return ""
	}
	return string(trimmed)
}

// decodeText accepts both text/plain and JSON-string bodies.
func decodeText(body []byte) string {
	var s string
	if err := json.Unmarshal(body, &s); err == nil {
		return s
	}
	return strings.TrimSpace(string(body))
}

// IsUnavailable reports whether err is a transport failure.
func IsUnavailable(err error) bool {
	return errors.Is(err, ErrUnavailable)
}
