package http

import (
	"fmt"
	"strings"
)

// Method is one of the HTTP verbs wave knows how to send.
type Method string

const (
	MethodGet     Method = "GET"
	MethodPost    Method = "POST"
	MethodPut     Method = "PUT"
	MethodPatch   Method = "PATCH"
	MethodDelete  Method = "DELETE"
	MethodHead    Method = "HEAD"
	MethodOptions Method = "OPTIONS"
)

// Methods lists every supported method in display order.
var Methods = []Method{
	MethodGet,
	MethodPost,
	MethodPut,
	MethodPatch,
	MethodDelete,
	MethodHead,
	MethodOptions,
}

// ParseMethod parses a method name case-insensitively. Extension verbs are
// rejected with ErrUnsupportedMethod.
func ParseMethod(s string) (Method, error) {
	m := Method(strings.ToUpper(strings.TrimSpace(s)))
	if m.Valid() {
		return m, nil
	}
	return "", &Error{Kind: KindUnsupportedMethod, Err: fmt.Errorf("%w: %q", ErrUnsupportedMethod, s)}
}

// Valid reports whether m is in the supported set.
func (m Method) Valid() bool {
	for _, known := range Methods {
		if m == known {
			return true
		}
	}
	return false
}

// AcceptsBody reports whether requests with this method carry a body.
func (m Method) AcceptsBody() bool {
	return m == MethodPost || m == MethodPut || m == MethodPatch
}

func (m Method) String() string {
	return string(m)
}
