// internal/common/httpclient/client.go
package httpclient

import (
	"net/http"
	"time"
)

// defaultTimeout guards callers that pass a zero or negative timeout.
const defaultTimeout = 60 * time.Second

// Client is a thin wrapper around http.Client tuned for repeated calls
// to a small set of upstream API hosts.
type Client struct {
	httpClient *http.Client
}

func NewClient(timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        10,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}
}

func (c *Client) Do(req *http.Request) (*http.Response, error) {
	return c.httpClient.Do(req)
}

// Timeout reports the effective request timeout.
func (c *Client) Timeout() time.Duration {
	return c.httpClient.Timeout
}
