package collection

import (
	"fmt"

	"github.com/abdul-hamid-achik/wave/packages/core/env"
	"github.com/abdul-hamid-achik/wave/packages/http"
)

// ResolveRequest substitutes placeholders in the URL, then each header
// value, then the body. Only string leaves of a JSON body are resolved;
// numbers, booleans and nulls keep their type. The first missing variable
// aborts resolution.
func ResolveRequest(tmpl *RequestTemplate, vars map[string]string) (*ResolvedRequest, error) {
	r := env.NewResolver(vars)

	url, err := r.Resolve(tmpl.URL)
	if err != nil {
		return nil, fmt.Errorf("url: %w", err)
	}

	var headers []http.Pair
	if tmpl.Headers != nil {
		headers = make([]http.Pair, 0, len(tmpl.Headers))
	}
	for _, h := range tmpl.Headers {
		value, err := r.Resolve(h.Value)
		if err != nil {
			return nil, fmt.Errorf("header %s: %w", h.Key, err)
		}
		headers = append(headers, http.Pair{Key: h.Key, Value: value})
	}

	body, err := resolveBody(tmpl.Body, r)
	if err != nil {
		return nil, fmt.Errorf("body: %w", err)
	}

	return &ResolvedRequest{
		Name:    tmpl.Name,
		Method:  tmpl.Method,
		URL:     url,
		Headers: headers,
		Body:    body,
	}, nil
}

func resolveBody(spec *http.BodySpec, r *env.Resolver) (*http.BodySpec, error) {
	if spec == nil {
		return nil, nil
	}

	switch spec.Kind {
	case http.BodyForm:
		pairs := make([]http.Pair, 0, len(spec.Form))
		for _, p := range spec.Form {
			value, err := r.Resolve(p.Value)
			if err != nil {
				return nil, err
			}
			pairs = append(pairs, http.Pair{Key: p.Key, Value: value})
		}
		return http.FormBody(pairs), nil
	default:
		obj, err := resolveValue(spec.JSON, r)
		if err != nil {
			return nil, err
		}
		return http.JSONBody(obj.(http.Object)), nil
	}
}

func resolveValue(v any, r *env.Resolver) (any, error) {
	switch val := v.(type) {
	case string:
		return r.Resolve(val)
	case http.Object:
		out := make(http.Object, 0, len(val))
		for _, f := range val {
			resolved, err := resolveValue(f.Value, r)
			if err != nil {
				return nil, err
			}
			out = append(out, http.Field{Key: f.Key, Value: resolved})
		}
		return out, nil
	case []any:
		out := make([]any, 0, len(val))
		for _, item := range val {
			resolved, err := resolveValue(item, r)
			if err != nil {
				return nil, err
			}
			out = append(out, resolved)
		}
		return out, nil
	default:
		return val, nil
	}
}

// Problem is a placeholder in a request template that cannot be resolved
// with the collection's variables and the current environment.
type Problem struct {
	Request     string
	Field       string
	Placeholder env.Placeholder
}

func (p Problem) String() string {
	return fmt.Sprintf("%s: %s references undefined %s", p.Request, p.Field, p.Placeholder)
}

// Check reports every unresolvable placeholder across all requests.
func (c *Collection) Check() []Problem {
	r := env.NewResolver(c.Variables)
	var problems []Problem

	add := func(req, field, s string) {
		for _, ph := range r.Missing(s) {
			problems = append(problems, Problem{Request: req, Field: field, Placeholder: ph})
		}
	}

	for _, tmpl := range c.Requests {
		add(tmpl.Name, "url", tmpl.URL)
		for _, h := range tmpl.Headers {
			add(tmpl.Name, "header "+h.Key, h.Value)
		}
		if tmpl.Body == nil {
			continue
		}
		if tmpl.Body.Kind == http.BodyForm {
			for _, p := range tmpl.Body.Form {
				add(tmpl.Name, "form "+p.Key, p.Value)
			}
			continue
		}
		walkStrings(tmpl.Body.JSON, "json", func(path, s string) {
			add(tmpl.Name, path, s)
		})
	}

	return problems
}

func walkStrings(v any, path string, fn func(path, s string)) {
	switch val := v.(type) {
	case string:
		fn(path, val)
	case http.Object:
		for _, f := range val {
			walkStrings(f.Value, path+"."+f.Key, fn)
		}
	case []any:
		for i, item := range val {
			walkStrings(item, fmt.Sprintf("%s[%d]", path, i), fn)
		}
	}
}
