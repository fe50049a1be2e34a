// Package api wraps outbound HTTP calls with credential injection and the
// global 401 policy. Every Resource Client operation goes through here.
package api

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/SE-Project-GatorBlog/Gator-Blog/internal/models"
	"github.com/SE-Project-GatorBlog/Gator-Blog/internal/observability"
	"github.com/SE-Project-GatorBlog/Gator-Blog/internal/session"
)

// Client issues authenticated requests against the API. When a request comes
// back 401 the session is cleared and OnUnauthorized fires, regardless of
// which caller issued the request.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
	Session    *session.Store

	// OnUnauthorized is invoked once per received 401 response, after the
	// session has been cleared. Typically it navigates to the login route.
	OnUnauthorized func()

	logger *observability.HTTPLogger
}

// NewClient creates a request client over the given session store.
func NewClient(baseURL string, store *session.Store) *Client {
	return &Client{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		HTTPClient: &http.Client{Timeout: 30 * time.Second},
		Session:    store,
		logger:     observability.NewHTTPLogger(),
	}
}

// Do issues a request. path is joined to BaseURL unless it is already
// absolute. A JSON content type is always set; the raw stored token is sent
// verbatim in the Authorization header when present. GET requests never
// carry a body.
func (c *Client) Do(ctx context.Context, method, path string, body []byte, header http.Header) (*http.Response, error) {
	url := path
	if !strings.HasPrefix(path, "http://") && !strings.HasPrefix(path, "https://") {
		url = c.BaseURL + path
	}

	// GET must not carry a body.
	if method == http.MethodGet {
		body = nil
	}

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return nil, models.NewTransportError(err)
	}

	req.Header.Set("Content-Type", "application/json")
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	if token := c.Session.Token(); token != "" {
		req.Header.Set("Authorization", token)
	}

	correlationID := observability.ExtractCorrelationID(ctx)
	if correlationID == "" {
		correlationID = observability.GenerateCorrelationID()
		ctx = observability.WithCorrelationID(ctx, correlationID)
	}
	req.Header.Set("X-Request-ID", correlationID)

	c.logger.LogRequest(ctx, method, url)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		// Transport failures never touch the session; only a received 401
		// does.
		c.logger.LogError(ctx, method, url, err)
		return nil, models.NewTransportError(err)
	}

	c.logger.LogResponse(ctx, method, url, resp.StatusCode)

	if resp.StatusCode == http.StatusUnauthorized {
		c.handleUnauthorized()
	}

	return resp, nil
}

// handleUnauthorized clears the session and notifies the navigation hook.
// Clearing is idempotent; the hook fires for every 401 received.
func (c *Client) handleUnauthorized() {
	if _, err := c.Session.Clear(); err != nil {
		observability.GlobalLogger.Warn("failed to clear session after 401")
	}
	if c.OnUnauthorized != nil {
		c.OnUnauthorized()
	}
}

// Get issues a GET request.
func (c *Client) Get(ctx context.Context, path string) (*http.Response, error) {
	return c.Do(ctx, http.MethodGet, path, nil, nil)
}

// Post issues a POST request with a JSON body.
func (c *Client) Post(ctx context.Context, path string, body []byte) (*http.Response, error) {
	return c.Do(ctx, http.MethodPost, path, body, nil)
}

// Put issues a PUT request with a JSON body.
func (c *Client) Put(ctx context.Context, path string, body []byte) (*http.Response, error) {
	return c.Do(ctx, http.MethodPut, path, body, nil)
}

// Delete issues a DELETE request.
func (c *Client) Delete(ctx context.Context, path string) (*http.Response, error) {
	return c.Do(ctx, http.MethodDelete, path, nil, nil)
}
