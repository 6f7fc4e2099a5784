package http

import (
	"context"
	"sync"
)

// MockBackend is a Backend that never touches the network. It records every
// request it receives and replies with the programmed response or error.
type MockBackend struct {
	mu       sync.Mutex
	response *Response
	err      error
	last     *Request
	calls    int
}

// NewMockBackend returns a backend that answers every request with resp.
func NewMockBackend(resp *Response) *MockBackend {
	return &MockBackend{response: resp}
}

// NewFailingBackend returns a backend that fails every request with err.
func NewFailingBackend(err error) *MockBackend {
	return &MockBackend{err: err}
}

func (m *MockBackend) Send(ctx context.Context, req *Request) (*Response, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls++
	m.last = req
	if err := ctx.Err(); err != nil {
		return nil, &Error{Kind: KindNetwork, Err: err}
	}
	if m.err != nil {
		return nil, m.err
	}
	if m.response == nil {
		return &Response{StatusCode: 200, Status: "200 OK"}, nil
	}
	resp := *m.response
	resp.Headers = m.response.Headers.Clone()
	return &resp, nil
}

// SetResponse replaces the programmed response and clears any error.
func (m *MockBackend) SetResponse(resp *Response) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.response = resp
	m.err = nil
}

// SetError makes subsequent sends fail with err.
func (m *MockBackend) SetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

// LastRequest returns the most recent request, or nil.
func (m *MockBackend) LastRequest() *Request {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.last
}

// Calls returns how many times Send was invoked.
func (m *MockBackend) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

var _ Backend = (*MockBackend)(nil)
