package override

import (
	"strings"

	"github.com/abdul-hamid-achik/wave/packages/http"
)

// FormFlag switches body encoding from JSON to form.
const FormFlag = "--form"

// Params are the overrides parsed from CLI tokens.
type Params struct {
	Headers []http.Pair
	Body    []http.Pair
	Form    bool
}

// Empty reports whether no override was given.
func (p Params) Empty() bool {
	return len(p.Headers) == 0 && len(p.Body) == 0 && !p.Form
}

// Parse classifies tokens as headers or body fields. Each token is split
// at whichever of ':' or '=' appears first, so "url=http://x" is a body
// field and "X-Expr:a=b" is a header.
func Parse(tokens []string) (Params, error) {
	var p Params
	seenParam := false

	for _, token := range tokens {
		if token == FormFlag {
			if seenParam {
				return Params{}, &InvalidParamError{Token: token, Reason: reasonFormPosition}
			}
			p.Form = true
			continue
		}
		seenParam = true

		idx := strings.IndexAny(token, ":=")
		if idx < 0 {
			return Params{}, &InvalidParamError{Token: token, Reason: reasonNoSeparator}
		}

		key := strings.TrimSpace(token[:idx])
		value := strings.TrimSpace(token[idx+1:])
		if key == "" {
			return Params{}, &InvalidParamError{Token: token, Reason: reasonEmptyKey}
		}

		if token[idx] == ':' {
			if strings.ContainsAny(key, " \t") {
				return Params{}, &InvalidParamError{Token: token, Reason: reasonHeaderSpace}
			}
			p.Headers = MergeHeaders(p.Headers, []http.Pair{{Key: key, Value: value}})
			continue
		}
		p.Body = MergePairs(p.Body, []http.Pair{{Key: key, Value: value}})
	}

	return p, nil
}
