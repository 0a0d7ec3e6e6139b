// Package api is the typed client for the YTT backend.
//
// Every endpoint group (Translation, YouTube, History, Settings) goes through a
// single transport primitive, Client.do, which issues exactly one request and
// maps any non-2xx status to an *APIError. There are no retries, no caching and
// no timeouts here: the context passed by the caller and the *http.Client handed
// to New are the only knobs, and both belong to the embedding application.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Client talks to one backend. It is safe for concurrent use.
type Client struct {
	baseURL    string // e.g. http://localhost:8001/api
	originURL  string // baseURL without the API suffix, for /health
	httpClient *http.Client
	logger     *zap.SugaredLogger

	Translation *TranslationAPI
	YouTube     *YouTubeAPI
	History     *HistoryAPI
	Settings    *SettingsAPI
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
// Timeouts, proxies and transports are configured here by the caller.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithLogger attaches a logger for request-level debug output.
func WithLogger(logger *zap.SugaredLogger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// New creates a client for the API rooted at baseURL.
// The base address is resolved once by the caller (see config.Config.APIBase)
// and never re-evaluated per call.
func New(baseURL string, opts ...Option) *Client {
	base := strings.TrimRight(baseURL, "/")
	c := &Client{
		baseURL:    base,
		originURL:  originOf(base),
		httpClient: &http.Client{},
		logger:     zap.NewNop().Sugar(),
	}
	for _, opt := range opts {
		opt(c)
	}

	c.Translation = &TranslationAPI{c: c}
	c.YouTube = &YouTubeAPI{c: c}
	c.History = &HistoryAPI{c: c}
	c.Settings = &SettingsAPI{c: c}
	return c
}

// BaseURL returns the resolved API base address.
func (c *Client) BaseURL() string { return c.baseURL }

// originOf strips the API suffix from the base address.
// "http://host:8001/api" -> "http://host:8001"; "/api" -> "".
func originOf(base string) string {
	if trimmed, ok := strings.CutSuffix(base, "/api"); ok {
		return trimmed
	}
	u, err := url.Parse(base)
	if err != nil || u.Host == "" {
		return ""
	}
	return u.Scheme + "://" + u.Host
}

// request is the options bundle for a single call.
type request struct {
	method string
	header http.Header
	body   io.Reader
}

// do issues one request against baseURL+path and decodes the JSON response into out.
// out may be nil, in which case the body is still required to be valid JSON.
func (c *Client) do(ctx context.Context, path string, r request, out any) error {
	body, err := c.send(ctx, path, r)
	if err != nil {
		return err
	}
	return decodeJSON(body, out)
}

// send issues one request and returns the raw body of a 2xx response.
func (c *Client) send(ctx context.Context, path string, r request) ([]byte, error) {
	method := r.method
	if method == "" {
		method = http.MethodGet
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, r.body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	for key, values := range r.header {
		for _, v := range values {
			req.Header.Add(key, v)
		}
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Debugw("api request failed", "method", method, "path", path, "error", err)
		return nil, fmt.Errorf("%w: %s %s: %w", ErrNetwork, method, path, err)
	}
	defer resp.Body.Close() // Go Pattern: ALWAYS close response bodies!

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s %s: %w", ErrNetwork, method, path, err)
	}

	c.logger.Debugw("api request",
		"method", method,
		"path", path,
		"status", resp.StatusCode,
		"took", time.Since(start).String(),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, newAPIError(resp.StatusCode, body)
	}
	return body, nil
}

func decodeJSON(body []byte, out any) error {
	if out == nil {
		var raw json.RawMessage
		out = &raw
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidResponse, err)
	}
	return nil
}

// --- body encodings ---

// jsonBody encodes v as an application/json request.
func jsonBody(method string, v any) (request, error) {
	payload, err := json.Marshal(v)
	if err != nil {
		return request{}, fmt.Errorf("failed to marshal request: %w", err)
	}
	return request{
		method: method,
		header: http.Header{"Content-Type": []string{"application/json"}},
		body:   bytes.NewReader(payload),
	}, nil
}

// formField is one multipart part. A field with a file set becomes a file part.
type formField struct {
	name  string
	value string
	file  *fileField
}

type fileField struct {
	filename string
	content  io.Reader
}

// formBody encodes fields as multipart/form-data.
//
// Go Pattern: multipart.Writer handles boundary generation and MIME encoding,
// similar to FormData in JS. Only the fields passed in are written, so callers
// omit absent optional values simply by not appending them.
func formBody(method string, fields []formField) (request, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	for _, f := range fields {
		if f.file != nil {
			part, err := writer.CreateFormFile(f.name, f.file.filename)
			if err != nil {
				return request{}, fmt.Errorf("failed to create form file: %w", err)
			}
			if f.file.content != nil {
				if _, err := io.Copy(part, f.file.content); err != nil {
					return request{}, fmt.Errorf("failed to copy file data: %w", err)
				}
			}
			continue
		}
		if err := writer.WriteField(f.name, f.value); err != nil {
			return request{}, fmt.Errorf("failed to write %s field: %w", f.name, err)
		}
	}

	if err := writer.Close(); err != nil {
		return request{}, fmt.Errorf("failed to close multipart writer: %w", err)
	}

	return request{
		method: method,
		header: http.Header{"Content-Type": []string{writer.FormDataContentType()}},
		body:   &buf,
	}, nil
}
