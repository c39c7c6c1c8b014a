// Package backendapi talks to the remote EASI backend: contact messages,
// newsletter sign-ups and the resource catalogue.
package backendapi

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
	"unicode/utf8"

	"easi-website/internal/domain"
	"easi-website/pkg/logger"
)

const (
	contactPath    = "/contact"
	newsletterPath = "/contact/newsletter"
	resourcesPath  = "/resources"

	// bodyLimit caps how much of an answer we read; bodies are never shown to users.
	bodyLimit = 1 << 20
	// errorBodyRunes is how much of a failed answer goes into the error text.
	errorBodyRunes = 50
)

type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient returns a client for baseURL. A zero timeout keeps the
// transport default.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// NewClientWithHTTP is used by tests to inject an httptest client.
func NewClientWithHTTP(baseURL string, hc *http.Client) *Client {
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), http: hc}
}

// UnexpectedStatusError is a non-2xx answer from the backend.
type UnexpectedStatusError struct {
	Method string
	Path   string
	Code   int
	Body   string
}

func (e *UnexpectedStatusError) Error() string {
	body := e.Body
	if utf8.RuneCountInString(body) > errorBodyRunes {
		body = string([]rune(body)[:errorBodyRunes])
	}
	return fmt.Sprintf("backend %s %s: unexpected status %d: %s", e.Method, e.Path, e.Code, body)
}

func (e *UnexpectedStatusError) Unwrap() error {
	return domain.ErrUpstream
}

// TransportError wraps DNS, connection and timeout failures.
type TransportError struct {
	Method string
	Path   string
	Err    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("backend %s %s: %v", e.Method, e.Path, e.Err)
}

func (e *TransportError) Unwrap() []error {
	return []error{domain.ErrUpstream, e.Err}
}

// doJSON sends one request and returns the status and body of a 2xx answer.
// It logs the request and response the same way for every endpoint.
func (c *Client) doJSON(ctx context.Context, method, path string, payload interface{}) (int, []byte, error) {
	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return 0, nil, fmt.Errorf("encode %s payload: %w", path, err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return 0, nil, fmt.Errorf("build %s %s request: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	logger.Log.Debug("Backend request", "method", method, "host", req.URL.Host, "path", path)

	start := time.Now()
	resp, err := c.http.Do(req)
	duration := time.Since(start)
	if err != nil {
		logger.Log.Error("Backend request failed", "method", method, "path", path, "error", err)
		return 0, nil, &TransportError{Method: method, Path: path, Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, bodyLimit))
	if err != nil {
		return 0, nil, &TransportError{Method: method, Path: path, Err: err}
	}

	logger.Log.Debug("Backend response",
		"method", method,
		"path", path,
		"code", resp.StatusCode,
		"content_type", resp.Header.Get("Content-Type"),
		"duration", duration.String(),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return resp.StatusCode, nil, &UnexpectedStatusError{Method: method, Path: path, Code: resp.StatusCode, Body: string(respBody)}
	}
	return resp.StatusCode, respBody, nil
}

// serverResponse keeps the raw body and lifts a top-level "message" if there is one.
func serverResponse(code int, body []byte) *domain.ServerResponse {
	out := &domain.ServerResponse{StatusCode: code, Body: body}
	var envelope struct {
		Message string `json:"message"`
	}
	if json.Unmarshal(body, &envelope) == nil {
		out.Message = envelope.Message
	}
	return out
}

// ResourceURL is the backend detail page of a resource.
func (c *Client) ResourceURL(id domain.ResourceID) string {
	return c.baseURL + resourcesPath + "/" + url.PathEscape(string(id))
}

// DownloadURL is the backend download link of a resource.
func (c *Client) DownloadURL(id domain.ResourceID) string {
	return c.ResourceURL(id) + "/download"
}
