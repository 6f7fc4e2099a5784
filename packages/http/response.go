package http

import (
	"encoding/json"
	"strings"
	"time"
)

type Response struct {
	StatusCode uint16
	Status     string
	Headers    Header
	Body       string
	Duration   time.Duration
}

func (r *Response) BodyString() string {
	return r.Body
}

// JSON decodes the body into v.
func (r *Response) JSON(v any) error {
	if err := json.Unmarshal([]byte(r.Body), v); err != nil {
		return &Error{Kind: KindParse, Err: err}
	}
	return nil
}

func (r *Response) Header(key string) string {
	return r.Headers.Get(key)
}

func (r *Response) ContentType() string {
	return r.Header("Content-Type")
}

func (r *Response) IsJSON() bool {
	ct := r.ContentType()
	return strings.Contains(ct, "application/json") || strings.Contains(ct, "text/json")
}

func (r *Response) IsSuccess() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

func (r *Response) IsRedirect() bool {
	return r.StatusCode >= 300 && r.StatusCode < 400
}

func (r *Response) IsClientError() bool {
	return r.StatusCode >= 400 && r.StatusCode < 500
}

func (r *Response) IsServerError() bool {
	return r.StatusCode >= 500 && r.StatusCode < 600
}

func (r *Response) IsError() bool {
	return r.StatusCode >= 400
}

func (r *Response) DurationMs() int64 {
	return r.Duration.Milliseconds()
}
