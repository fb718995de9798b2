package remote

import (
	"net/http"
	"strings"
)

// Connection is either Unconfigured or Configured. It is resolved once at
// startup from the endpoint and key; missing configuration is an operating
// mode, not an error.
type Connection interface {
	connection()
}

type Unconfigured struct{}

type Configured struct {
	Client *Client
}

func (Unconfigured) connection() {}
func (Configured) connection()   {}

func Resolve(baseURL, apiKey, accessToken string, httpClient *http.Client) Connection {
	if strings.TrimSpace(baseURL) == "" || strings.TrimSpace(apiKey) == "" {
		return Unconfigured{}
	}
	return Configured{Client: &Client{
		BaseURL:     strings.TrimSpace(baseURL),
		APIKey:      strings.TrimSpace(apiKey),
		AccessToken: strings.TrimSpace(accessToken),
		HTTPClient:  httpClient,
	}}
}

// ClientOf returns the client behind conn, or ErrUnconfigured.
func ClientOf(conn Connection) (*Client, error) {
	if c, ok := conn.(Configured); ok && c.Client != nil {
		return c.Client, nil
	}
	return nil, ErrUnconfigured
}
