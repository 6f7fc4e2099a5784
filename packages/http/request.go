package http

// Request is a dispatch-ready HTTP request. It is built once by
// RequestBuilder and treated as immutable afterwards.
type Request struct {
	Method  Method
	URL     string
	Headers Header
	Body    *string
}

// BodyString returns the body or "" when the request has none.
func (r *Request) BodyString() string {
	if r.Body == nil {
		return ""
	}
	return *r.Body
}

// HasBody reports whether a body will be sent.
func (r *Request) HasBody() bool {
	return r.Body != nil
}

// RequestBuilder assembles a Request from headers and an optional body spec.
type RequestBuilder struct {
	method  Method
	url     string
	headers Header
	spec    *BodySpec
}

func NewRequestBuilder(method Method, url string) *RequestBuilder {
	return &RequestBuilder{method: method, url: url}
}

func (b *RequestBuilder) SetHeaders(pairs []Pair) *RequestBuilder {
	for _, p := range pairs {
		b.headers.Set(p.Key, p.Value)
	}
	return b
}

// SetBody attaches a structured body; it is encoded at Build time.
func (b *RequestBuilder) SetBody(spec *BodySpec) *RequestBuilder {
	b.spec = spec
	return b
}

// Build encodes the body and fills in Content-Type unless the caller set one.
func (b *RequestBuilder) Build() (*Request, error) {
	if !b.method.Valid() {
		_, err := ParseMethod(string(b.method))
		return nil, err
	}

	req := &Request{
		Method:  b.method,
		URL:     b.url,
		Headers: b.headers.Clone(),
	}

	if b.spec != nil {
		wire, contentType, err := EncodeBody(b.spec)
		if err != nil {
			return nil, err
		}
		req.Headers.SetDefault("Content-Type", contentType)
		req.Body = &wire
	}

	return req, nil
}
