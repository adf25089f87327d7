package fabric

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

	"fabric-mcp/pkg/logging"
	fstrings "fabric-mcp/pkg/strings"

	"github.com/google/uuid"
	"golang.org/x/oauth2"
)

// CorrelationHeader carries a per-request id the provider echoes in its logs.
const CorrelationHeader = "X-Correlation-ID"

// TokenProvider supplies bearer credentials to the Client.
type TokenProvider interface {
	BearerToken(ctx context.Context) (*oauth2.Token, error)
	Invalidate()
}

// Client dispatches authenticated JSON requests to the Fabric API.
// It never retries: one failed call surfaces immediately.
type Client struct {
	baseURL    string
	tokens     TokenProvider
	httpClient *http.Client
}

// ClientOption configures the Client.
type ClientOption func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithTimeout sets the per-request timeout on the client's HTTP client.
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		if timeout > 0 {
			hc := *c.httpClient
			hc.Timeout = timeout
			c.httpClient = &hc
		}
	}
}

// NewClient creates a Client for the API rooted at baseURL.
func NewClient(baseURL string, tokens TokenProvider, opts ...ClientOption) *Client {
	c := &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		tokens:     tokens,
		httpClient: &http.Client{Timeout: DefaultHTTPTimeout},
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Do sends method to path (relative to the API root) with an optional query
// and JSON body, and returns the raw JSON response. A 2xx response without a
// body yields an empty object.
func (c *Client) Do(ctx context.Context, method, path string, query url.Values, body any) (json.RawMessage, error) {
	token, err := c.tokens.BearerToken(ctx)
	if err != nil {
		return nil, err
	}

	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body for %s %s: %w", method, path, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request %s %s: %w", method, path, err)
	}

	correlationID := uuid.NewString()
	token.SetAuthHeader(req)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set(CorrelationHeader, correlationID)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		logging.Debug("Dispatcher", "%s %s failed after %s (correlation %s): %v",
			method, path, time.Since(start), correlationID, err)
		return nil, &TransportError{Method: method, Path: path, Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Method: method, Path: path, Err: fmt.Errorf("reading response: %w", err)}
	}

	logging.Debug("Dispatcher", "%s %s -> %d in %s (correlation %s)",
		method, path, resp.StatusCode, time.Since(start), correlationID)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		if resp.StatusCode == http.StatusUnauthorized {
			// Next call starts with a fresh token; this one still fails.
			c.tokens.Invalidate()
		}
		return nil, &HTTPError{
			Method:     method,
			Path:       path,
			StatusCode: resp.StatusCode,
			Body:       string(respBody),
		}
	}

	if len(bytes.TrimSpace(respBody)) == 0 {
		return json.RawMessage("{}"), nil
	}
	if !json.Valid(respBody) {
		return nil, fmt.Errorf("%s %s returned a non-JSON body: %s", method, path, fstrings.Truncate(string(respBody), 200))
	}

	return json.RawMessage(respBody), nil
}
