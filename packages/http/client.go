package http

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	nethttp "net/http"
	"slices"
	"strings"

	"github.com/go-resty/resty/v2"
)

// DefaultUserAgent is sent when the request does not carry its own.
const DefaultUserAgent = "wave"

// RestyBackend sends requests over the network with a resty client.
// Timeouts and retries are left at the transport defaults.
type RestyBackend struct {
	client    *resty.Client
	userAgent string
	transport nethttp.RoundTripper
	logger    *slog.Logger
	debug     bool
}

type BackendOption func(*RestyBackend)

func NewRestyBackend(opts ...BackendOption) *RestyBackend {
	b := &RestyBackend{
		userAgent: DefaultUserAgent,
	}
	for _, opt := range opts {
		opt(b)
	}

	c := resty.New()
	c.SetAllowGetMethodPayload(true)
	if b.transport != nil {
		c.SetTransport(b.transport)
	}
	if b.logger != nil {
		c.SetLogger(restyLogger{b.logger})
	}
	c.SetDebug(b.debug)
	b.client = c

	return b
}

// WithTransport replaces the underlying round tripper.
func WithTransport(rt nethttp.RoundTripper) BackendOption {
	return func(b *RestyBackend) {
		b.transport = rt
	}
}

func WithUserAgent(ua string) BackendOption {
	return func(b *RestyBackend) {
		b.userAgent = ua
	}
}

// WithLogger routes resty's own warnings and debug output to logger.
func WithLogger(logger *slog.Logger) BackendOption {
	return func(b *RestyBackend) {
		b.logger = logger
	}
}

// WithDebug enables resty's request/response dump.
func WithDebug(debug bool) BackendOption {
	return func(b *RestyBackend) {
		b.debug = debug
	}
}

func (b *RestyBackend) Send(ctx context.Context, req *Request) (*Response, error) {
	r := b.client.R().SetContext(ctx)
	if b.userAgent != "" && !req.Headers.Has("User-Agent") {
		r.SetHeader("User-Agent", b.userAgent)
	}
	for _, h := range req.Headers.Pairs() {
		r.SetHeader(h.Key, h.Value)
	}
	if req.Body != nil {
		r.SetBody(*req.Body)
	}

	resp, err := execByMethod(r, req.Method, req.URL)
	if err != nil {
		var httpErr *Error
		if errors.As(err, &httpErr) {
			return nil, httpErr
		}
		return nil, &Error{Kind: KindNetwork, Err: err}
	}

	return &Response{
		StatusCode: uint16(resp.StatusCode()),
		Status:     resp.Status(),
		Headers:    collectHeaders(resp.Header()),
		Body:       strings.ToValidUTF8(string(resp.Body()), "�"),
		Duration:   resp.Time(),
	}, nil
}

func execByMethod(r *resty.Request, method Method, url string) (*resty.Response, error) {
	switch method {
	case MethodGet:
		return r.Get(url)
	case MethodPost:
		return r.Post(url)
	case MethodPut:
		return r.Put(url)
	case MethodPatch:
		return r.Patch(url)
	case MethodDelete:
		return r.Delete(url)
	case MethodHead:
		return r.Head(url)
	case MethodOptions:
		return r.Options(url)
	default:
		return nil, &Error{Kind: KindUnsupportedMethod, Err: fmt.Errorf("%w: %q", ErrUnsupportedMethod, string(method))}
	}
}

// collectHeaders flattens response headers in sorted order. Values that are
// not valid UTF-8 are degraded to a replacement character.
func collectHeaders(src nethttp.Header) Header {
	keys := make([]string, 0, len(src))
	for k := range src {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	var h Header
	for _, k := range keys {
		h.Set(k, strings.ToValidUTF8(strings.Join(src[k], ", "), "�"))
	}
	return h
}

type restyLogger struct {
	logger *slog.Logger
}

func (l restyLogger) Errorf(format string, v ...any) {
	l.logger.Error(strings.TrimSpace(fmt.Sprintf(format, v...)), "component", "resty")
}

func (l restyLogger) Warnf(format string, v ...any) {
	l.logger.Warn(strings.TrimSpace(fmt.Sprintf(format, v...)), "component", "resty")
}

func (l restyLogger) Debugf(format string, v ...any) {
	l.logger.Debug(strings.TrimSpace(fmt.Sprintf(format, v...)), "component", "resty")
}

var _ Backend = (*RestyBackend)(nil)
