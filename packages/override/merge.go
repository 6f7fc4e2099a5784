package override

import (
	"math"
	"strconv"
	"strings"

	"github.com/abdul-hamid-achik/wave/packages/collection"
	"github.com/abdul-hamid-achik/wave/packages/http"
)

// MergePairs overlays cli onto base. A key in both keeps its base position
// with the CLI value; CLI-only keys are appended in order. Keys compare
// exactly. Neither input is modified.
func MergePairs(base, cli []http.Pair) []http.Pair {
	return mergePairs(base, cli, func(a, b string) bool { return a == b })
}

// MergeHeaders is MergePairs with case-insensitive keys. The template's
// spelling of a key is kept.
func MergeHeaders(base, cli []http.Pair) []http.Pair {
	return mergePairs(base, cli, strings.EqualFold)
}

func mergePairs(base, cli []http.Pair, same func(a, b string) bool) []http.Pair {
	out := make([]http.Pair, len(base), len(base)+len(cli))
	copy(out, base)

next:
	for _, c := range cli {
		for i := range out {
			if same(out[i].Key, c.Key) {
				out[i].Value = c.Value
				continue next
			}
		}
		out = append(out, c)
	}
	return out
}

// InferValue types a CLI string: base-10 integer, then float, then the exact
// literals true and false, otherwise the string itself.
func InferValue(s string) any {
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil && !math.IsInf(f, 0) && !math.IsNaN(f) && isDecimal(s) {
		return f
	}
	switch s {
	case "true":
		return true
	case "false":
		return false
	}
	return s
}

// isDecimal rejects forms ParseFloat accepts that are not plain decimal
// numbers, such as hex floats and underscores.
func isDecimal(s string) bool {
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
		case r == '.', r == '-', r == '+', r == 'e', r == 'E':
		default:
			return false
		}
	}
	return true
}

// MergeJSON overlays CLI fields onto a JSON object with type inference.
// The base object is not modified.
func MergeJSON(base http.Object, cli []http.Pair) http.Object {
	out := base.Clone()
	if out == nil {
		out = http.Object{}
	}
	for _, c := range cli {
		out = out.Set(c.Key, InferValue(c.Value))
	}
	return out
}

// MergeForm overlays CLI fields onto form pairs. Values stay strings.
func MergeForm(base, cli []http.Pair) []http.Pair {
	return MergePairs(base, cli)
}

// Merge combines a resolved collection request with CLI overrides.
//
// A form template body merges as form. A JSON template body merges as JSON
// and rejects --form. Without a template body, CLI fields become a JSON
// body, or a form body when --form is set. The result body is nil when
// there is nothing to send.
func Merge(req *collection.ResolvedRequest, p Params) ([]http.Pair, *http.BodySpec, error) {
	headers := MergeHeaders(req.Headers, p.Headers)

	switch {
	case req.Body != nil && req.Body.Kind == http.BodyForm:
		return headers, http.FormBody(MergeForm(req.Body.Form, p.Body)), nil
	case req.Body != nil:
		if p.Form {
			return nil, nil, &InvalidParamError{Token: FormFlag, Reason: reasonFormJSON}
		}
		return headers, http.JSONBody(MergeJSON(req.Body.JSON, p.Body)), nil
	case len(p.Body) == 0:
		return headers, nil, nil
	case p.Form:
		return headers, http.FormBody(MergeForm(nil, p.Body)), nil
	default:
		return headers, http.JSONBody(MergeJSON(nil, p.Body)), nil
	}
}

// AdHocBody builds the body for a request with no template.
func AdHocBody(p Params) *http.BodySpec {
	if len(p.Body) == 0 {
		return nil
	}
	if p.Form {
		return http.FormBody(MergeForm(nil, p.Body))
	}
	return http.JSONBody(MergeJSON(nil, p.Body))
}
