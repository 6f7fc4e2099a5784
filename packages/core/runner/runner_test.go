package runner

import (
	"bytes"
	"context"
	"errors"
	"io"
	nethttp "net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abdul-hamid-achik/wave/packages/collection"
	"github.com/abdul-hamid-achik/wave/packages/core/env"
	"github.com/abdul-hamid-achik/wave/packages/core/logging"
	"github.com/abdul-hamid-achik/wave/packages/http"
	"github.com/abdul-hamid-achik/wave/packages/override"
)

func writeCollection(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
}

func TestNewRunner(t *testing.T) {
	t.Run("with nil config", func(t *testing.T) {
		r := NewRunner(http.NewMockBackend(nil), collection.NewStore(t.TempDir()), nil)
		assert.NotNil(t, r)
		assert.NotNil(t, r.client)
		assert.NotNil(t, r.logger)
		assert.Equal(t, os.Stderr, r.config.SpinnerOut)
	})

	t.Run("with custom config", func(t *testing.T) {
		var out bytes.Buffer
		r := NewRunner(http.NewMockBackend(nil), nil, &Config{Spinner: true, SpinnerOut: &out})
		assert.True(t, r.config.Spinner)
		assert.Equal(t, &out, r.config.SpinnerOut)
	})
}

func TestRunCollection_EndToEnd(t *testing.T) {
	dir := t.TempDir()
	writeCollection(t, dir, "site.yaml", `variables:
  h: example.com
requests:
  - name: ping
    method: GET
    url: https://${h}/ping
`)
	mock := http.NewMockBackend(&http.Response{StatusCode: 200, Status: "200 OK"})
	r := NewRunner(mock, collection.NewStore(dir), nil)

	result, err := r.RunCollection(context.Background(), "site", "ping", nil)

	require.NoError(t, err)
	sent := mock.LastRequest()
	require.NotNil(t, sent)
	assert.Equal(t, "https://example.com/ping", sent.URL)
	assert.Equal(t, http.MethodGet, sent.Method)
	assert.False(t, sent.HasBody())
	assert.Equal(t, uint16(200), result.Response.StatusCode)
	assert.Same(t, sent, result.Request)
}

func TestRunCollection_Errors(t *testing.T) {
	dir := t.TempDir()
	writeCollection(t, dir, "api.yaml", `requests:
  - name: secret
    method: GET
    url: https://api.example.com
    headers:
      Authorization: Bearer ${env:WAVE_RUNNER_UNSET_TOKEN}
`)
	mock := http.NewMockBackend(nil)
	r := NewRunner(mock, collection.NewStore(dir), nil)

	t.Run("missing collection", func(t *testing.T) {
		_, err := r.RunCollection(context.Background(), "nope", "x", nil)
		assert.ErrorIs(t, err, collection.ErrNotFound)
	})

	t.Run("missing request", func(t *testing.T) {
		_, err := r.RunCollection(context.Background(), "api", "x", nil)
		var notFound *collection.RequestNotFoundError
		assert.ErrorAs(t, err, &notFound)
	})

	t.Run("missing environment variable", func(t *testing.T) {
		_, err := r.RunCollection(context.Background(), "api", "secret", nil)
		var missing *env.MissingVariableError
		require.ErrorAs(t, err, &missing)
		assert.Equal(t, env.SourceEnvironment, missing.Kind)
	})

	t.Run("bad override token", func(t *testing.T) {
		_, err := r.RunCollection(context.Background(), "api", "secret", []string{"oops"})
		var paramErr *override.InvalidParamError
		assert.ErrorAs(t, err, &paramErr)
	})

	assert.Equal(t, 0, mock.Calls())
}

func TestBuildCollection_MergesOverrides(t *testing.T) {
	coll, err := collection.Parse([]byte(`variables:
  base: https://api.example.com
requests:
  - name: create
    method: POST
    url: ${base}/users
    headers:
      Accept: application/json
    body:
      json:
        name: Alice
        role: user
`))
	require.NoError(t, err)

	req, err := BuildCollection(coll, "create", []string{"Authorization:Bearer123", "role=admin", "age=30"})

	require.NoError(t, err)
	assert.Equal(t, "https://api.example.com/users", req.URL)
	assert.Equal(t, []http.Pair{
		{Key: "Accept", Value: "application/json"},
		{Key: "Authorization", Value: "Bearer123"},
		{Key: "Content-Type", Value: "application/json"},
	}, req.Headers.Pairs())
	assert.Equal(t, `{"name":"Alice","role":"admin","age":30}`, req.BodyString())
}

func TestBuildCollection_FormTemplate(t *testing.T) {
	coll, err := collection.Parse([]byte(`requests:
  - name: login
    method: POST
    url: https://api.example.com/login
    headers:
      content-type: application/x-www-form-urlencoded; charset=utf-8
    body:
      form:
        user: alice
        note: hello world
`))
	require.NoError(t, err)

	req, err := BuildCollection(coll, "login", nil)

	require.NoError(t, err)
	assert.Equal(t, "user=alice&note=hello%20world", req.BodyString())
	assert.Equal(t, "application/x-www-form-urlencoded; charset=utf-8", req.Headers.Get("Content-Type"))
	assert.Equal(t, 1, req.Headers.Len())
}

func TestRunCollection_BodylessMethodsDropBody(t *testing.T) {
	dir := t.TempDir()
	writeCollection(t, dir, "api.yaml", `requests:
  - name: remove
    method: DELETE
    url: https://api.example.com/users/1
    body:
      json:
        reason: cleanup
  - name: preflight
    method: OPTIONS
    url: https://api.example.com/users
`)
	var logs bytes.Buffer
	mock := http.NewMockBackend(nil)
	r := NewRunner(mock, collection.NewStore(dir), &Config{Logger: logging.New(&logs, logging.LevelWarn)})

	result, err := r.RunCollection(context.Background(), "api", "remove", []string{"force=true"})
	require.NoError(t, err)
	assert.False(t, result.Request.HasBody())
	assert.False(t, result.Request.Headers.Has("Content-Type"))
	assert.Contains(t, logs.String(), "ignoring body")

	result, err = r.RunCollection(context.Background(), "api", "preflight", []string{"a=1"})
	require.NoError(t, err)
	assert.Equal(t, http.MethodOptions, result.Request.Method)
	assert.False(t, result.Request.HasBody())
	assert.Equal(t, 2, mock.Calls())
}

func TestBuildAdHoc(t *testing.T) {
	tests := []struct {
		name        string
		method      http.Method
		url         string
		tokens      []string
		wantURL     string
		wantBody    string
		wantNoBody  bool
		wantType    string
		wantHeaders int
	}{
		{
			name:        "json post",
			method:      http.MethodPost,
			url:         "https://api.example.com/users",
			tokens:      []string{"Authorization:Bearer123", "name=joe", "age=30"},
			wantURL:     "https://api.example.com/users",
			wantBody:    `{"name":"joe","age":30}`,
			wantType:    http.ContentTypeJSON,
			wantHeaders: 2,
		},
		{
			name:        "form put",
			method:      http.MethodPut,
			url:         "api.example.com/users/1",
			tokens:      []string{"--form", "name=Jane Doe"},
			wantURL:     "http://api.example.com/users/1",
			wantBody:    "name=Jane%20Doe",
			wantType:    http.ContentTypeForm,
			wantHeaders: 1,
		},
		{
			name:        "get ignores body fields",
			method:      http.MethodGet,
			url:         "localhost:8080/health",
			tokens:      []string{"X-Debug:1", "verbose=true"},
			wantURL:     "http://localhost:8080/health",
			wantNoBody:  true,
			wantHeaders: 1,
		},
		{
			name:        "post without fields has no body",
			method:      http.MethodPost,
			url:         "http://127.0.0.1/x",
			wantURL:     "http://127.0.0.1/x",
			wantNoBody:  true,
			wantHeaders: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := BuildAdHoc(tt.method, tt.url, tt.tokens)
			require.NoError(t, err)
			assert.Equal(t, tt.wantURL, req.URL)
			assert.Equal(t, tt.wantHeaders, req.Headers.Len())
			if tt.wantNoBody {
				assert.False(t, req.HasBody())
				return
			}
			assert.Equal(t, tt.wantBody, req.BodyString())
			assert.Equal(t, tt.wantType, req.Headers.Get("Content-Type"))
		})
	}
}

func TestBuildAdHoc_Errors(t *testing.T) {
	_, err := BuildAdHoc(http.MethodPost, "https://api.example.com", []string{"name=joe", "--form"})
	var paramErr *override.InvalidParamError
	assert.ErrorAs(t, err, &paramErr)

	_, err = BuildAdHoc(http.MethodGet, "", nil)
	var urlErr *InvalidURLError
	assert.ErrorAs(t, err, &urlErr)

	_, err = BuildAdHoc(http.Method("TRACE"), "https://api.example.com", nil)
	assert.ErrorIs(t, err, http.ErrUnsupportedMethod)
}

func TestNormalizeURL(t *testing.T) {
	tests := []struct {
		input   string
		want    string
		wantErr bool
	}{
		{"https://api.example.com/users", "https://api.example.com/users", false},
		{"example.com", "http://example.com", false},
		{" localhost:3000/a ", "http://localhost:3000/a", false},
		{"10.0.0.1:8080", "http://10.0.0.1:8080", false},
		{"http://[::1]:8080/", "http://[::1]:8080/", false},
		{"", "", true},
		{"ftp://example.com", "", true},
		{"notahost", "", true},
		{"http://", "", true},
		{"example.com/cb?next=http://other", "http://example.com/cb?next=http://other", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := NormalizeURL(tt.input)
			if tt.wantErr {
				var urlErr *InvalidURLError
				require.ErrorAs(t, err, &urlErr)
				assert.NotEmpty(t, urlErr.Hint())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRunAdHoc_DefaultHeaders(t *testing.T) {
	mock := http.NewMockBackend(nil)
	r := NewRunner(mock, nil, &Config{Headers: map[string]string{
		"x-team":        "platform",
		"authorization": "default",
	}})

	result, err := r.RunAdHoc(context.Background(), http.MethodGet, "https://example.com", []string{"Authorization:mine"})

	require.NoError(t, err)
	assert.Equal(t, []http.Pair{
		{Key: "Authorization", Value: "mine"},
		{Key: "x-team", Value: "platform"},
	}, mock.LastRequest().Headers.Pairs())
	assert.Equal(t, uint16(200), result.Response.StatusCode)
}

func TestRunAdHoc_WarnsOnIgnoredBody(t *testing.T) {
	var logs bytes.Buffer
	r := NewRunner(http.NewMockBackend(nil), nil, &Config{Logger: logging.New(&logs, logging.LevelDebug)})

	_, err := r.RunAdHoc(context.Background(), http.MethodDelete, "https://example.com/x", []string{"a=1"})

	require.NoError(t, err)
	assert.Contains(t, logs.String(), "ignoring body fields")
	assert.Contains(t, logs.String(), "received response")
}

func TestExecute_NetworkError(t *testing.T) {
	netErr := &http.Error{Kind: http.KindNetwork, Err: errors.New("connection refused")}
	r := NewRunner(http.NewFailingBackend(netErr), nil, nil)

	resp, err := r.Execute(context.Background(), &http.Request{Method: http.MethodGet, URL: "http://x.test"})

	assert.Nil(t, resp)
	assert.True(t, http.IsNetwork(err))
}

func TestRunAdHoc_RestyBackend(t *testing.T) {
	server := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		body, _ := io.ReadAll(r.Body)
		assert.Equal(t, "PATCH", r.Method)
		assert.Equal(t, `{"active":false}`, string(body))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer server.Close()

	r := NewRunner(http.NewRestyBackend(), nil, nil)
	result, err := r.RunAdHoc(context.Background(), http.MethodPatch, server.URL+"/users/1", []string{"active=false"})

	require.NoError(t, err)
	assert.Equal(t, uint16(200), result.Response.StatusCode)
	assert.JSONEq(t, `{"ok":true}`, result.Response.Body)
}
