package http

import "context"

// Backend performs (or simulates) one HTTP exchange.
type Backend interface {
	Send(ctx context.Context, req *Request) (*Response, error)
}

// Client dispatches requests through an injected Backend.
type Client struct {
	backend Backend
}

func NewClient(backend Backend) *Client {
	return &Client{backend: backend}
}

// Send validates the method and hands the request to the backend.
func (c *Client) Send(ctx context.Context, req *Request) (*Response, error) {
	if !req.Method.Valid() {
		_, err := ParseMethod(string(req.Method))
		return nil, err
	}
	return c.backend.Send(ctx, req)
}
