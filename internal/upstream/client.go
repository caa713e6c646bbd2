package upstream

import (
	"context"
	"encoding/json"
	"net/url"
	"time"
)

// Client is the typed client for the church management API server.
// Every call takes the caller's bearer token; the client itself holds none.
type Client struct {
	transport *Transport
}

// NewClient initializes the API client
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{transport: NewTransport(baseURL, "", timeout)}
}

func (c *Client) as(token string) *Transport {
	return c.transport.WithToken(token)
}

// Get fetches an arbitrary resource path and returns the JSON body untouched.
func (c *Client) Get(ctx context.Context, token, path string, query url.Values) (json.RawMessage, error) {
	data, err := c.as(token).Get(ctx, path, query)
	if err != nil {
		return nil, err
	}
	return json.RawMessage(data), nil
}

// Post sends body to an arbitrary resource path and returns the JSON body untouched.
func (c *Client) Post(ctx context.Context, token, path string, body any) (json.RawMessage, error) {
	data, err := c.as(token).Post(ctx, path, body)
	if err != nil {
		return nil, err
	}
	return json.RawMessage(data), nil
}
