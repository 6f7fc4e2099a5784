package http

import (
	"errors"
	"fmt"
)

// ErrUnsupportedMethod is returned for verbs outside the Method set.
var ErrUnsupportedMethod = errors.New("unsupported HTTP method")

// ErrorKind classifies an Error.
type ErrorKind int

const (
	KindNetwork ErrorKind = iota
	KindParse
	KindUnsupportedMethod
)

func (k ErrorKind) String() string {
	switch k {
	case KindNetwork:
		return "network error"
	case KindParse:
		return "parse error"
	case KindUnsupportedMethod:
		return "unsupported method"
	default:
		return "http error"
	}
}

// Error is the failure type returned by backends and the body codec.
type Error struct {
	Kind ErrorKind
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %v", e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// IsNetwork reports whether err is a transport failure.
func IsNetwork(err error) bool {
	var httpErr *Error
	return errors.As(err, &httpErr) && httpErr.Kind == KindNetwork
}
