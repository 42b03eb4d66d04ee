package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"golang.org/x/oauth2"
)

// RequestTimeout is the timeout for API calls.
const RequestTimeout = 10 * time.Second

// Client is the remote store client. It wraps HTTP/JSON round trips,
// attaches the bearer credential when one is set, and surfaces failures
// as the typed errors in this package. It holds no session or task state.
type Client struct {
	baseURL string

	mu    sync.RWMutex
	httpc *http.Client
}

// New creates a client for the given base URL (e.g. http://localhost:5000/api).
func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpc:   plainClient(),
	}
}

// SetToken installs the bearer credential. Subsequent requests carry it
// in the Authorization header via the oauth2 transport.
func (c *Client) SetToken(token string) {
	src := oauth2.StaticTokenSource(&oauth2.Token{
		AccessToken: token,
		TokenType:   "Bearer",
	})
	httpc := oauth2.NewClient(context.Background(), src)
	httpc.Timeout = RequestTimeout

	c.mu.Lock()
	c.httpc = httpc
	c.mu.Unlock()
}

// ClearToken removes the credential. Subsequent requests are anonymous.
func (c *Client) ClearToken() {
	c.mu.Lock()
	c.httpc = plainClient()
	c.mu.Unlock()
}

// Do performs an HTTP round trip. body (if non-nil) is serialized to JSON;
// on a 2xx response the payload is decoded into out (if non-nil).
// Failures are returned as *TransportError, *ServerError or *DecodeError.
func (c *Client) Do(ctx context.Context, method, path string, body, out any) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return &TransportError{Err: err}
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return &TransportError{Err: err}
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	c.mu.RLock()
	httpc := c.httpc
	c.mu.RUnlock()

	resp, err := httpc.Do(req)
	if err != nil {
		return &TransportError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &ServerError{
			StatusCode: resp.StatusCode,
			Message:    serverMessage(resp.Body),
		}
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		io.Copy(io.Discard, resp.Body)
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &DecodeError{Err: err}
	}
	return nil
}

// serverMessage extracts the server-provided error message from a non-2xx
// body, trying the common {"message": ...} and {"error": ...} shapes.
func serverMessage(r io.Reader) string {
	data, err := io.ReadAll(io.LimitReader(r, 4096))
	if err != nil {
		return ""
	}
	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return ""
	}
	if payload.Message != "" {
		return payload.Message
	}
	return payload.Error
}

func plainClient() *http.Client {
	return &http.Client{Timeout: RequestTimeout}
}
