// Package polaris is a thin client for the Polaris management REST API.
// Every call is a single synchronous request/response cycle; the only state
// a Client carries is the endpoint and the HTTP client. Tokens are passed
// per call.
package polaris

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/kameshsampath/polaris-spark-devbox/pkg/logging"
)

const (
	managementBasePath = "/api/management/v1"
	tokenPath          = "/api/catalog/v1/oauth/tokens"

	defaultTimeout = 30 * time.Second
)

// Client issues calls against one Polaris server.
type Client struct {
	host       string
	port       string
	httpClient *http.Client
}

// New builds a client for the Polaris server reachable at host:port.
func New(host, port string) *Client {
	return &Client{
		host:       host,
		port:       port,
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
}

// APIError carries a non-2xx response: the status code and the server's
// JSON error body.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("polaris API returned status %d: %s", e.StatusCode, e.Body)
}

func (c *Client) managementURL(format string, args ...interface{}) string {
	return fmt.Sprintf("http://%s:%s%s", c.host, c.port, managementBasePath) + fmt.Sprintf(format, args...)
}

func (c *Client) tokenURL() string {
	return fmt.Sprintf("http://%s:%s%s", c.host, c.port, tokenPath)
}

// doJSON sends payload as a JSON body with the shared header contract and
// returns the response status and body. expect is the status treated as
// success; any other status yields an *APIError.
func (c *Client) doJSON(ctx context.Context, method, url, token string, payload interface{}, expect int) ([]byte, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshaling request body: %w", err)
	}
	logging.Debug("polaris", "%s %s %s", method, url, data)

	req, err := http.NewRequestWithContext(ctx, method, url, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling %s %s: %w", method, url, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}
	if resp.StatusCode != expect {
		return nil, &APIError{StatusCode: resp.StatusCode, Body: string(body)}
	}
	return body, nil
}
