package http

import (
	"context"
	"io"
	nethttp "net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRestyBackend_Get(t *testing.T) {
	server := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		assert.Equal(t, "GET", r.Method)
		assert.Equal(t, "/test", r.URL.Path)
		assert.Equal(t, "Bearer123", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(nethttp.StatusOK)
		_, _ = w.Write([]byte(`{"message": "hello"}`))
	}))
	defer server.Close()

	client := NewClient(NewRestyBackend())
	resp, err := client.Send(context.Background(), &Request{
		Method:  MethodGet,
		URL:     server.URL + "/test",
		Headers: NewHeader(Pair{Key: "Authorization", Value: "Bearer123"}),
	})

	require.NoError(t, err)
	assert.Equal(t, uint16(200), resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header("Content-Type"))
	assert.True(t, resp.IsJSON())
	assert.Contains(t, resp.BodyString(), "hello")
}

func TestRestyBackend_PostBody(t *testing.T) {
	server := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		assert.Equal(t, "POST", r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		body, _ := io.ReadAll(r.Body)
		assert.Equal(t, `{"name":"joe","age":30}`, string(body))
		w.WriteHeader(nethttp.StatusCreated)
		_, _ = w.Write([]byte(`{"id": 123}`))
	}))
	defer server.Close()

	req, err := NewRequestBuilder(MethodPost, server.URL).
		SetBody(JSONBody(Object{{Key: "name", Value: "joe"}, {Key: "age", Value: int64(30)}})).
		Build()
	require.NoError(t, err)

	resp, err := NewClient(NewRestyBackend()).Send(context.Background(), req)

	require.NoError(t, err)
	assert.Equal(t, uint16(201), resp.StatusCode)
	assert.Contains(t, resp.BodyString(), "123")
}

func TestRestyBackend_AllMethods(t *testing.T) {
	server := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		w.Header().Set("X-Method", r.Method)
		w.WriteHeader(nethttp.StatusNoContent)
	}))
	defer server.Close()

	backend := NewRestyBackend()
	for _, m := range Methods {
		t.Run(string(m), func(t *testing.T) {
			resp, err := backend.Send(context.Background(), &Request{Method: m, URL: server.URL})
			require.NoError(t, err)
			assert.Equal(t, uint16(204), resp.StatusCode)
			assert.Equal(t, string(m), resp.Header("X-Method"))
		})
	}
}

func TestRestyBackend_UserAgent(t *testing.T) {
	var got []string
	server := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		got = append(got, r.Header.Get("User-Agent"))
	}))
	defer server.Close()

	backend := NewRestyBackend(WithUserAgent("wave/test"))
	_, err := backend.Send(context.Background(), &Request{Method: MethodGet, URL: server.URL})
	require.NoError(t, err)
	_, err = backend.Send(context.Background(), &Request{
		Method:  MethodGet,
		URL:     server.URL,
		Headers: NewHeader(Pair{Key: "User-Agent", Value: "custom"}),
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"wave/test", "custom"}, got)
}

func TestRestyBackend_NetworkError(t *testing.T) {
	server := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {}))
	url := server.URL
	server.Close()

	_, err := NewRestyBackend().Send(context.Background(), &Request{Method: MethodGet, URL: url})

	require.Error(t, err)
	assert.True(t, IsNetwork(err))
}

func TestRestyBackend_RejectsExtensionVerb(t *testing.T) {
	_, err := NewRestyBackend().Send(context.Background(), &Request{Method: Method("PURGE"), URL: "http://example.com"})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnsupportedMethod)
}

func TestClient_RejectsExtensionVerb(t *testing.T) {
	mock := NewMockBackend(nil)
	_, err := NewClient(mock).Send(context.Background(), &Request{Method: Method("TRACE"), URL: "http://example.com"})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnsupportedMethod)
	assert.Equal(t, 0, mock.Calls())
}

func TestCollectHeaders(t *testing.T) {
	src := nethttp.Header{
		"X-Binary":     {"ok\xffvalue"},
		"Content-Type": {"text/plain"},
		"Set-Cookie":   {"a=1", "b=2"},
	}

	h := collectHeaders(src)

	assert.Equal(t, "ok�value", h.Get("X-Binary"))
	assert.Equal(t, "a=1, b=2", h.Get("set-cookie"))
	keys := []string{}
	for _, p := range h.Pairs() {
		keys = append(keys, p.Key)
	}
	assert.Equal(t, []string{"Content-Type", "Set-Cookie", "X-Binary"}, keys)
}

func TestMockBackend(t *testing.T) {
	mock := NewMockBackend(&Response{StatusCode: 200, Body: "pong"})
	client := NewClient(mock)
	ping := &Request{Method: MethodGet, URL: "https://example.com/ping"}

	resp, err := client.Send(context.Background(), ping)

	require.NoError(t, err)
	assert.Equal(t, uint16(200), resp.StatusCode)
	assert.Equal(t, "pong", resp.Body)
	require.NotNil(t, mock.LastRequest())
	assert.Equal(t, "https://example.com/ping", mock.LastRequest().URL)
	assert.False(t, mock.LastRequest().HasBody())
	assert.Equal(t, 1, mock.Calls())

	mock.SetError(&Error{Kind: KindNetwork, Err: io.ErrUnexpectedEOF})
	_, err = client.Send(context.Background(), ping)
	assert.True(t, IsNetwork(err))
	assert.Equal(t, 2, mock.Calls())
}

func TestParseMethod(t *testing.T) {
	tests := []struct {
		input   string
		want    Method
		wantErr bool
	}{
		{"GET", MethodGet, false},
		{"get", MethodGet, false},
		{" Post ", MethodPost, false},
		{"patch", MethodPatch, false},
		{"OPTIONS", MethodOptions, false},
		{"head", MethodHead, false},
		{"TRACE", "", true},
		{"CONNECT", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseMethod(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrUnsupportedMethod)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResponse_StatusClasses(t *testing.T) {
	tests := []struct {
		statusCode  uint16
		success     bool
		redirect    bool
		clientError bool
		serverError bool
	}{
		{200, true, false, false, false},
		{204, true, false, false, false},
		{301, false, true, false, false},
		{404, false, false, true, false},
		{500, false, false, false, true},
	}

	for _, tt := range tests {
		resp := &Response{StatusCode: tt.statusCode}
		assert.Equal(t, tt.success, resp.IsSuccess(), "StatusCode: %d", tt.statusCode)
		assert.Equal(t, tt.redirect, resp.IsRedirect(), "StatusCode: %d", tt.statusCode)
		assert.Equal(t, tt.clientError, resp.IsClientError(), "StatusCode: %d", tt.statusCode)
		assert.Equal(t, tt.serverError, resp.IsServerError(), "StatusCode: %d", tt.statusCode)
		assert.Equal(t, tt.clientError || tt.serverError, resp.IsError(), "StatusCode: %d", tt.statusCode)
	}
}

func TestResponse_IsJSON(t *testing.T) {
	tests := []struct {
		contentType string
		expected    bool
	}{
		{"application/json", true},
		{"application/json; charset=utf-8", true},
		{"text/json", true},
		{"text/html", false},
		{"", false},
	}

	for _, tt := range tests {
		resp := &Response{Headers: NewHeader(Pair{Key: "content-type", Value: tt.contentType})}
		assert.Equal(t, tt.expected, resp.IsJSON(), "Content-Type: %s", tt.contentType)
	}
}

func TestResponse_JSON(t *testing.T) {
	resp := &Response{Body: `{"id": 7}`}
	var out struct {
		ID int `json:"id"`
	}
	require.NoError(t, resp.JSON(&out))
	assert.Equal(t, 7, out.ID)

	bad := &Response{Body: `not json`}
	err := bad.JSON(&out)
	var httpErr *Error
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, KindParse, httpErr.Kind)
}
