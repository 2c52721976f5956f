package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/smartclinic/clinic-client/pkg/logging"
)

const defaultTimeout = 20 * time.Second

// Client is the shared request pipeline for the clinic service. Every call
// goes through do, which attaches the bearer token when one is set and
// reports 401/403 responses to the registered unauthorized callback at most
// once per token value.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *logging.Logger

	mu               sync.Mutex
	token            string
	lastHandledToken string
	onUnauthorized   func()
}

// New creates a client for the given base URL, e.g. "http://host:8080/api".
func New(baseURL string, timeout time.Duration, logger *logging.Logger) *Client {
	if logger == nil {
		logger = logging.Default()
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

// SetToken replaces the active bearer token. Setting a token, including the
// empty one, re-arms the unauthorized callback so a freshly issued token can
// trigger it again if it too proves invalid. Last writer wins; the new value
// is visible to every subsequent request.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = token
	c.lastHandledToken = ""
}

// Token returns the currently active bearer token, or "".
func (c *Client) Token() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.token
}

// OnUnauthorized registers the single handler invoked when an authenticated
// request comes back 401 or 403. A later registration replaces the earlier.
func (c *Client) OnUnauthorized(fn func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onUnauthorized = fn
}

// notifyUnauthorized fires the callback unless the current token has already
// been handled. The callback runs outside the lock; it is expected to clear
// the session, which re-enters SetToken.
func (c *Client) notifyUnauthorized() {
	c.mu.Lock()
	cb := c.onUnauthorized
	if c.token == "" || cb == nil || c.lastHandledToken == c.token {
		c.mu.Unlock()
		return
	}
	c.lastHandledToken = c.token
	c.mu.Unlock()
	cb()
}

// do performs one request and decodes a JSON response into out when out is
// non-nil. Service failures come back as *Error carrying the envelope
// message, or fallback when the envelope has none.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any, fallback string) error {
	raw, err := c.doRaw(ctx, method, path, query, body, fallback)
	if err != nil {
		return err
	}
	if out == nil || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return &Error{Message: fallback, cause: fmt.Errorf("api: decode response: %w", err)}
	}
	return nil
}

// doRaw performs one request and returns the raw response body.
func (c *Client) doRaw(ctx context.Context, method, path string, query url.Values, body any, fallback string) ([]byte, error) {
	var reqBody io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, &Error{Message: fallback, cause: fmt.Errorf("api: marshal request: %w", err)}
		}
		reqBody = bytes.NewReader(encoded)
	}

	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reqBody)
	if err != nil {
		return nil, &Error{Message: fallback, cause: fmt.Errorf("api: create request: %w", err)}
	}

	requestID := uuid.NewString()
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-Id", requestID)
	if token := c.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("request failed", "method", method, "path", path, "request_id", requestID, "error", err)
		return nil, &Error{Message: fallback, cause: fmt.Errorf("api: http request: %w", err)}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &Error{Message: fallback, cause: fmt.Errorf("api: read response: %w", err)}
	}

	if resp.StatusCode >= http.StatusBadRequest {
		if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
			c.notifyUnauthorized()
		}
		msg := envelopeMessage(respBody)
		if msg == "" {
			msg = fallback
		}
		c.logger.Debug("service error", "method", method, "path", path, "request_id", requestID, "status", resp.StatusCode)
		return nil, &Error{Status: resp.StatusCode, Message: msg}
	}

	return respBody, nil
}

// envelopeMessage extracts the {"message": "..."} error envelope, if present.
func envelopeMessage(body []byte) string {
	var env struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &env); err != nil {
		return ""
	}
	return strings.TrimSpace(env.Message)
}

// decodeList normalizes the three list shapes the service emits: a bare
// array, or an object wrapping the array under "content" (pageable) or
// "data". Anything else decodes to an empty list.
func decodeList[T any](raw []byte) []T {
	if len(raw) == 0 {
		return []T{}
	}
	var direct []T
	if err := json.Unmarshal(raw, &direct); err == nil && direct != nil {
		return direct
	}
	var wrapped struct {
		Content []T `json:"content"`
		Data    []T `json:"data"`
	}
	if err := json.Unmarshal(raw, &wrapped); err == nil {
		if wrapped.Content != nil {
			return wrapped.Content
		}
		if wrapped.Data != nil {
			return wrapped.Data
		}
	}
	return []T{}
}
