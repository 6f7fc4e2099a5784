package runner

import (
	"github.com/abdul-hamid-achik/wave/packages/collection"
	"github.com/abdul-hamid-achik/wave/packages/http"
	"github.com/abdul-hamid-achik/wave/packages/override"
)

// BuildAdHoc builds a request from a method, a URL and override tokens.
// Body fields are only used for methods that carry a body.
func BuildAdHoc(method http.Method, rawURL string, tokens []string) (*http.Request, error) {
	p, err := override.Parse(tokens)
	if err != nil {
		return nil, err
	}
	return buildAdHoc(method, rawURL, p)
}

func buildAdHoc(method http.Method, rawURL string, p override.Params) (*http.Request, error) {
	if _, err := http.ParseMethod(string(method)); err != nil {
		return nil, err
	}
	u, err := NormalizeURL(rawURL)
	if err != nil {
		return nil, err
	}

	b := http.NewRequestBuilder(method, u).SetHeaders(p.Headers)
	if method.AcceptsBody() {
		if body := override.AdHocBody(p); body != nil {
			b.SetBody(body)
		}
	}
	return b.Build()
}

// BuildCollection finds requestName in coll, resolves its placeholders,
// merges the override tokens and encodes the result. Template headers come
// first, followed by CLI-only headers. As with ad-hoc requests, only POST,
// PUT and PATCH carry the merged body.
func BuildCollection(coll *collection.Collection, requestName string, tokens []string) (*http.Request, error) {
	req, _, err := buildCollection(coll, requestName, tokens)
	return req, err
}

// buildCollection also reports whether a merged body was dropped because
// the method does not carry one.
func buildCollection(coll *collection.Collection, requestName string, tokens []string) (*http.Request, bool, error) {
	p, err := override.Parse(tokens)
	if err != nil {
		return nil, false, err
	}

	tmpl, err := coll.Find(requestName)
	if err != nil {
		return nil, false, err
	}

	resolved, err := collection.ResolveRequest(tmpl, coll.Variables)
	if err != nil {
		return nil, false, err
	}

	headers, body, err := override.Merge(resolved, p)
	if err != nil {
		return nil, false, err
	}

	b := http.NewRequestBuilder(resolved.Method, resolved.URL).SetHeaders(headers)
	dropped := false
	switch {
	case body == nil:
	case resolved.Method.AcceptsBody():
		b.SetBody(body)
	default:
		dropped = true
	}

	req, err := b.Build()
	if err != nil {
		return nil, false, err
	}
	return req, dropped, nil
}
