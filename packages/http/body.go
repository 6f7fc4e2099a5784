package http

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
)

const (
	ContentTypeJSON = "application/json"
	ContentTypeForm = "application/x-www-form-urlencoded"
)

// BodyKind tags which variant a BodySpec holds.
type BodyKind int

const (
	BodyJSON BodyKind = iota
	BodyForm
)

func (k BodyKind) String() string {
	switch k {
	case BodyJSON:
		return "json"
	case BodyForm:
		return "form"
	default:
		return "unknown"
	}
}

// Field is a single member of an ordered JSON object.
type Field struct {
	Key   string
	Value any
}

// Object is a JSON object that keeps its keys in declaration order.
// Values may be nil, bool, int64, float64, string, []any or Object.
type Object []Field

// Get returns the value stored under key.
func (o Object) Get(key string) (any, bool) {
	for _, f := range o {
		if f.Key == key {
			return f.Value, true
		}
	}
	return nil, false
}

// Set replaces key in place or appends it.
func (o Object) Set(key string, value any) Object {
	for i := range o {
		if o[i].Key == key {
			o[i].Value = value
			return o
		}
	}
	return append(o, Field{Key: key, Value: value})
}

// Clone deep-copies the object, including nested objects and arrays.
func (o Object) Clone() Object {
	if o == nil {
		return nil
	}
	out := make(Object, len(o))
	for i, f := range o {
		out[i] = Field{Key: f.Key, Value: cloneValue(f.Value)}
	}
	return out
}

func cloneValue(v any) any {
	switch val := v.(type) {
	case Object:
		return val.Clone()
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = cloneValue(item)
		}
		return out
	default:
		return val
	}
}

// MarshalJSON writes the object with keys in order and without HTML escaping.
func (o Object) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range o {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := marshalValue(f.Key)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		val, err := marshalValue(f.Value)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", f.Key, err)
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func marshalValue(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// BodySpec is either a JSON object or a set of form fields, never both.
type BodySpec struct {
	Kind BodyKind
	JSON Object
	Form []Pair
}

// JSONBody returns a JSON body spec.
func JSONBody(obj Object) *BodySpec {
	if obj == nil {
		obj = Object{}
	}
	return &BodySpec{Kind: BodyJSON, JSON: obj}
}

// FormBody returns a form body spec.
func FormBody(pairs []Pair) *BodySpec {
	return &BodySpec{Kind: BodyForm, Form: pairs}
}

// Clone deep-copies the spec.
func (b *BodySpec) Clone() *BodySpec {
	if b == nil {
		return nil
	}
	out := &BodySpec{Kind: b.Kind, JSON: b.JSON.Clone()}
	if b.Form != nil {
		out.Form = make([]Pair, len(b.Form))
		copy(out.Form, b.Form)
	}
	return out
}

// ContentType is the media type implied by the body kind.
func (b *BodySpec) ContentType() string {
	if b.Kind == BodyForm {
		return ContentTypeForm
	}
	return ContentTypeJSON
}

// EncodeBody serializes a body spec into its wire form and implied content type.
func EncodeBody(b *BodySpec) (string, string, error) {
	switch b.Kind {
	case BodyJSON:
		obj := b.JSON
		if obj == nil {
			obj = Object{}
		}
		data, err := obj.MarshalJSON()
		if err != nil {
			return "", "", &Error{Kind: KindParse, Err: fmt.Errorf("encoding json body: %w", err)}
		}
		return string(data), ContentTypeJSON, nil
	case BodyForm:
		return EncodeForm(b.Form), ContentTypeForm, nil
	default:
		return "", "", &Error{Kind: KindParse, Err: fmt.Errorf("unknown body kind %d", b.Kind)}
	}
}

// EncodeForm joins pairs as key=value with '&'. Keys and values are
// percent-encoded and a space becomes %20, never '+'.
func EncodeForm(pairs []Pair) string {
	parts := make([]string, 0, len(pairs))
	for _, p := range pairs {
		parts = append(parts, escapeFormComponent(p.Key)+"="+escapeFormComponent(p.Value))
	}
	return strings.Join(parts, "&")
}

func escapeFormComponent(s string) string {
	// QueryEscape already escapes a literal '+' as %2B, so any '+' left is a space.
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
