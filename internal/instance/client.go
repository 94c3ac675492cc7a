// pattern: Imperative Shell
package instance

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"framedock/internal/geom"
)

// Client is a thin HTTP client for a running framedock instance.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a Client targeting the given base URL.
func NewClient(baseURL string) *Client {
	return NewClientWithTimeout(baseURL, 10*time.Second)
}

// NewClientWithTimeout creates a Client with a custom timeout.
func NewClientWithTimeout(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// StatusError is a non-2xx reply from the instance.
type StatusError struct {
	Status  int
	Message string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("framedock returned status %d: %s", e.Status, e.Message)
}

// Layouts fetches the whole layout set as JSON.
func (c *Client) Layouts() ([]byte, error) {
	return c.do(http.MethodGet, "/api/layouts", nil)
}

// Active fetches the active layout as JSON.
func (c *Client) Active() ([]byte, error) {
	return c.do(http.MethodGet, "/api/layouts/active", nil)
}

// Select makes layout index active.
func (c *Client) Select(index int) ([]byte, error) {
	return c.do(http.MethodPost, "/api/layouts/select", map[string]int{"index": index})
}

// Drag drags one edge of a frame of the active layout and returns the
// drag result JSON.
func (c *Client) Drag(frameID string, edge geom.Edge, delta float64) ([]byte, error) {
	return c.do(http.MethodPost, "/api/layouts/active/drag", map[string]any{
		"frame_id": frameID,
		"edge":     edge.String(),
		"delta":    delta,
	})
}

// Assign sets the content kind of a frame of the active layout.
func (c *Client) Assign(frameID string, frameType int) ([]byte, error) {
	return c.do(http.MethodPut, "/api/layouts/active/frames/"+url.PathEscape(frameID)+"/type",
		map[string]int{"frame_type": frameType})
}

// Preview fetches a PNG of the active layout. A zero width or height
// leaves the choice to the instance.
func (c *Client) Preview(width, height int) ([]byte, error) {
	q := url.Values{}
	if width > 0 {
		q.Set("width", strconv.Itoa(width))
	}
	if height > 0 {
		q.Set("height", strconv.Itoa(height))
	}
	path := "/api/layouts/active/preview.png"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}
	return c.do(http.MethodGet, path, nil)
}

// do sends a request with an optional JSON body and returns the response
// body of a 2xx reply.
func (c *Client) do(method, path string, body any) ([]byte, error) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to framedock: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &StatusError{Status: resp.StatusCode, Message: extractErrorMessage(respBody)}
	}
	return respBody, nil
}

// extractErrorMessage attempts to extract the error message from a JSON response body.
// If the body is not valid JSON or doesn't have an "error" field, returns the raw body string.
func extractErrorMessage(body []byte) string {
	var errResp struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(body, &errResp); err == nil && errResp.Error != "" {
		return errResp.Error
	}
	return string(body)
}
