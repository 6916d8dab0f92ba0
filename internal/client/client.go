// Copyright 2025 Meshline Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package client

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

	"github.com/meshline/meshctl/pkg/errors"
	"github.com/meshline/meshctl/pkg/httpclient"
)

// DefaultBaseURL is the production fabric API endpoint.
const DefaultBaseURL = "https://api.meshline.io"

// Response is the decoded outcome of a fabric API call.
type Response struct {
	// StatusCode is the HTTP status code.
	StatusCode int

	// Data is the decoded JSON payload (nil for empty bodies).
	Data interface{}

	// OK reports whether the status code was 2xx.
	OK bool
}

// Client talks to the fabric API. A nil *Client on a session means the
// caller is unauthenticated; handlers must check before use.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// Options configures a fabric API client.
type Options struct {
	// BaseURL is the fabric API endpoint. Default: DefaultBaseURL.
	BaseURL string

	// Token is the bearer token attached to every request.
	Token string

	// Timeout overrides the per-request timeout. Default: 30s.
	Timeout time.Duration

	// HTTPClient overrides the underlying client (used by tests).
	HTTPClient *http.Client
}

// New creates a fabric API client.
func New(opts Options) (*Client, error) {
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	if _, err := url.Parse(opts.BaseURL); err != nil {
		return nil, &errors.ConfigError{Key: "api.base_url", Reason: "not a valid URL", Cause: err}
	}

	hc := opts.HTTPClient
	if hc == nil {
		cfg := httpclient.DefaultConfig()
		if opts.Timeout > 0 {
			cfg.Timeout = opts.Timeout
		}
		var err error
		hc, err = httpclient.New(cfg)
		if err != nil {
			return nil, err
		}
	}

	return &Client{
		baseURL:    strings.TrimRight(opts.BaseURL, "/"),
		token:      opts.Token,
		httpClient: hc,
	}, nil
}

// BaseURL returns the configured fabric endpoint.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// AuthFingerprint returns a short stable identifier for the client's
// credential context. Completion caches key on this so a credential
// change never serves stale entries.
func (c *Client) AuthFingerprint() string {
	if c == nil || c.token == "" {
		return "anonymous"
	}
	if len(c.token) <= 8 {
		return "token"
	}
	return c.token[len(c.token)-8:]
}

// Get issues a GET request against the given fabric path.
func (c *Client) Get(ctx context.Context, path string) (*Response, error) {
	return c.do(ctx, http.MethodGet, path, nil)
}

// Post issues a POST request with a JSON body.
func (c *Client) Post(ctx context.Context, path string, body interface{}) (*Response, error) {
	return c.do(ctx, http.MethodPost, path, body)
}

// Put issues a PUT request with a JSON body.
func (c *Client) Put(ctx context.Context, path string, body interface{}) (*Response, error) {
	return c.do(ctx, http.MethodPut, path, body)
}

// Patch issues a PATCH request with a JSON body.
func (c *Client) Patch(ctx context.Context, path string, body interface{}) (*Response, error) {
	return c.do(ctx, http.MethodPatch, path, body)
}

// Delete issues a DELETE request against the given fabric path.
func (c *Client) Delete(ctx context.Context, path string) (*Response, error) {
	return c.do(ctx, http.MethodDelete, path, nil)
}

func (c *Client) do(ctx context.Context, method, path string, body interface{}) (*Response, error) {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encoding request body: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	fullURL := c.baseURL + "/" + strings.TrimLeft(path, "/")
	req, err := http.NewRequestWithContext(ctx, method, fullURL, reader)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &errors.TransportError{
			Path:    path,
			Message: "request failed",
			Cause:   err,
		}
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, &errors.TransportError{
			StatusCode: resp.StatusCode,
			Path:       path,
			Message:    "reading response body",
			Cause:      err,
		}
	}

	var data interface{}
	if len(payload) > 0 {
		// Non-JSON bodies are surfaced raw rather than failing the call.
		if err := json.Unmarshal(payload, &data); err != nil {
			data = string(payload)
		}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &errors.TransportError{
			StatusCode: resp.StatusCode,
			Path:       path,
			Message:    errorMessage(data, resp.StatusCode),
			RequestID:  resp.Header.Get("X-Request-Id"),
		}
	}

	return &Response{
		StatusCode: resp.StatusCode,
		Data:       data,
		OK:         true,
	}, nil
}

// maxResponseBytes bounds response decoding (10MB).
const maxResponseBytes = 10 * 1024 * 1024

// errorMessage pulls a human-readable message out of a fabric error
// payload, falling back to the HTTP status text.
func errorMessage(data interface{}, statusCode int) string {
	if obj, ok := data.(map[string]interface{}); ok {
		for _, key := range []string{"message", "error", "detail"} {
			if msg, ok := obj[key].(string); ok && msg != "" {
				return msg
			}
		}
	}
	return http.StatusText(statusCode)
}
