package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"
)

const (
	defaultTimeout        = 60 * time.Second
	defaultConnectTimeout = 5 * time.Second
	defaultTLSTimeout     = 5 * time.Second
)

// Client issues requests against the tracker server. One Client is shared by
// all gateways; it holds no per-request state.
type Client struct {
	baseURL    string
	version    string
	httpClient *http.Client
}

// NewClient builds a client for the server at baseURL using the given
// versioned path prefix. A zero timeout falls back to the default.
func NewClient(baseURL, version string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	dialer := &net.Dialer{
		Timeout: defaultConnectTimeout,
	}
	transport := &http.Transport{
		DialContext:         dialer.DialContext,
		TLSHandshakeTimeout: defaultTLSTimeout,
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		version: version,
		httpClient: &http.Client{
			Transport: transport,
			Timeout:   timeout,
		},
	}
}

func (c *Client) url(path string) string {
	return fmt.Sprintf("%s/api/%s%s", c.baseURL, c.version, path)
}

// request performs one round trip and decodes a 200 response body into T.
// Any non-200 status, transport failure, or decode failure comes back as an
// error; callers translate it into an error Result naming the operation.
// An empty 200 body yields the zero T.
func request[T any](ctx context.Context, c *Client, method, path string, body any) (T, error) {
	var zero T

	var reqBody io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return zero, err
		}
		reqBody = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.url(path), reqBody)
	if err != nil {
		return zero, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return zero, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return zero, err
	}

	if resp.StatusCode != http.StatusOK {
		return zero, fmt.Errorf("%s", resp.Status)
	}

	if len(respBody) == 0 {
		return zero, nil
	}

	var decoded T
	if err := json.Unmarshal(respBody, &decoded); err != nil {
		return zero, err
	}
	return decoded, nil
}
