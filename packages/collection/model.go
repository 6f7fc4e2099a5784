package collection

import (
	"github.com/abdul-hamid-achik/wave/packages/http"
)

// Collection is a parsed collection file.
type Collection struct {
	Name      string
	Path      string
	Variables map[string]string
	Requests  []RequestTemplate
}

// RequestTemplate is a stored request whose strings may contain placeholders.
type RequestTemplate struct {
	Name    string
	Method  http.Method
	URL     string
	Headers []http.Pair
	Body    *http.BodySpec
}

// ResolvedRequest is a template with every placeholder substituted. It never
// shares memory with the template it came from.
type ResolvedRequest struct {
	Name    string
	Method  http.Method
	URL     string
	Headers []http.Pair
	Body    *http.BodySpec
}

// Find returns the first request named name.
func (c *Collection) Find(name string) (*RequestTemplate, error) {
	for i := range c.Requests {
		if c.Requests[i].Name == name {
			return &c.Requests[i], nil
		}
	}
	return nil, &RequestNotFoundError{
		Collection: c.Name,
		Name:       name,
		Available:  c.RequestNames(),
	}
}

// RequestNames lists request names in file order. Duplicates are kept.
func (c *Collection) RequestNames() []string {
	names := make([]string, 0, len(c.Requests))
	for _, r := range c.Requests {
		names = append(names, r.Name)
	}
	return names
}
