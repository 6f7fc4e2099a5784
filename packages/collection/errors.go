package collection

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNotFound      = errors.New("collection not found")
	ErrNoDirectory   = errors.New("collection directory does not exist")
	ErrMalformed     = errors.New("malformed collection")
	ErrSchema        = errors.New("collection does not match schema")
	ErrInvalidBody   = errors.New("body must declare exactly one of json or form")
	ErrInvalidMethod = errors.New("unknown HTTP method")
)

// Error describes a collection that could not be loaded.
type Error struct {
	Op         string
	Collection string
	Err        error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s collection %q: %v", e.Op, e.Collection, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// RequestNotFoundError is returned when a collection has no request with the
// given name.
type RequestNotFoundError struct {
	Collection string
	Name       string
	Available  []string
}

func (e *RequestNotFoundError) Error() string {
	msg := fmt.Sprintf("request %q not found in collection %q", e.Name, e.Collection)
	if len(e.Available) > 0 {
		msg += " (available: " + strings.Join(e.Available, ", ") + ")"
	}
	return msg
}
