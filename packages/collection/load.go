package collection

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/abdul-hamid-achik/wave/packages/http"
)

// Extensions are tried in this order when looking up a collection file.
var Extensions = []string{".yaml", ".yml"}

// reserved names are files in the collection directory that are not
// collections.
var reserved = map[string]bool{"config": true}

// Store reads collections from a single directory. Nothing is cached; every
// Load reads the file again.
type Store struct {
	dir string
}

func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

func (s *Store) Dir() string {
	return s.dir
}

// Load reads <dir>/<name>.yaml, falling back to <dir>/<name>.yml when the
// first is missing or fails to read or parse. The first successful parse
// wins. When every candidate fails, the error of the first file that exists
// is returned.
func (s *Store) Load(name string) (*Collection, error) {
	if _, err := os.Stat(s.dir); errors.Is(err, fs.ErrNotExist) {
		return nil, &Error{
			Op:         "load",
			Collection: name,
			Err:        fmt.Errorf("%w: %w: %s", ErrNotFound, ErrNoDirectory, s.dir),
		}
	}

	var firstErr error
	for _, ext := range Extensions {
		path := filepath.Join(s.dir, name+ext)
		data, err := os.ReadFile(path)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			if firstErr == nil {
				firstErr = &Error{Op: "read", Collection: name, Err: err}
			}
			continue
		}

		c, err := Parse(data)
		if err != nil {
			if firstErr == nil {
				firstErr = &Error{Op: "parse", Collection: name, Err: fmt.Errorf("%s: %w", filepath.Base(path), err)}
			}
			continue
		}
		c.Name = name
		c.Path = path
		return c, nil
	}

	if firstErr != nil {
		return nil, firstErr
	}
	return nil, &Error{
		Op:         "load",
		Collection: name,
		Err:        fmt.Errorf("%w: no %s.yaml or %s.yml in %s", ErrNotFound, name, name, s.dir),
	}
}

// List returns the names of all collections in the directory, sorted.
func (s *Store) List() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading collection directory: %w", err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ext := filepath.Ext(e.Name())
		if !slices.Contains(Extensions, ext) {
			continue
		}
		name := strings.TrimSuffix(e.Name(), ext)
		if reserved[name] || slices.Contains(names, name) {
			continue
		}
		names = append(names, name)
	}
	slices.Sort(names)
	return names, nil
}

// Load is shorthand for NewStore(dir).Load(name).
func Load(dir, name string) (*Collection, error) {
	return NewStore(dir).Load(name)
}

// Parse decodes a collection document.
func Parse(data []byte) (*Collection, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	doc, err := nodeValue(&root)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if doc == nil {
		doc = http.Object{}
	}

	raw, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if err := validateSchema(raw); err != nil {
		return nil, err
	}

	return build(doc.(http.Object), &root)
}

// build turns the validated document into a Collection. String-typed
// positions (variables, header and form values) take the scalar text from
// the YAML nodes so that 01234, 1.10 or 0x1F are kept as written.
func build(doc http.Object, root *yaml.Node) (*Collection, error) {
	c := &Collection{Variables: map[string]string{}}

	for _, p := range mappingText(lookupNode(root, "variables")) {
		c.Variables[p.Key] = p.Value
	}

	var items []*yaml.Node
	if n := lookupNode(root, "requests"); n != nil && n.Kind == yaml.SequenceNode {
		items = n.Content
	}
	if v, ok := doc.Get("requests"); ok && v != nil {
		for i, item := range v.([]any) {
			tmpl, err := buildRequest(item.(http.Object), items[i])
			if err != nil {
				return nil, fmt.Errorf("request %d: %w", i+1, err)
			}
			c.Requests = append(c.Requests, *tmpl)
		}
	}

	return c, nil
}

func buildRequest(obj http.Object, node *yaml.Node) (*RequestTemplate, error) {
	name, _ := obj.Get("name")
	rawMethod, _ := obj.Get("method")
	url, _ := obj.Get("url")

	tmpl := &RequestTemplate{
		Name: name.(string),
		URL:  url.(string),
	}

	method, err := http.ParseMethod(rawMethod.(string))
	if err != nil {
		return nil, fmt.Errorf("%q: %w %q", tmpl.Name, ErrInvalidMethod, rawMethod)
	}
	tmpl.Method = method

	tmpl.Headers = mappingText(lookupNode(node, "headers"))

	if b, ok := obj.Get("body"); ok {
		body, err := buildBody(b, lookupNode(node, "body"))
		if err != nil {
			return nil, fmt.Errorf("%q: %w", tmpl.Name, err)
		}
		tmpl.Body = body
	}

	return tmpl, nil
}

func buildBody(v any, node *yaml.Node) (*http.BodySpec, error) {
	obj, _ := v.(http.Object)
	jsonBody, hasJSON := obj.Get("json")
	_, hasForm := obj.Get("form")

	switch {
	case hasJSON && hasForm:
		return nil, fmt.Errorf("%w: both json and form are set", ErrInvalidBody)
	case hasJSON:
		return http.JSONBody(jsonBody.(http.Object)), nil
	case hasForm:
		pairs := mappingText(lookupNode(node, "form"))
		if pairs == nil {
			pairs = []http.Pair{}
		}
		return http.FormBody(pairs), nil
	default:
		return nil, fmt.Errorf("%w: neither json nor form is set", ErrInvalidBody)
	}
}

// nodeValue converts a YAML node into nil, bool, int64, float64, string,
// []any or an ordered http.Object.
func nodeValue(n *yaml.Node) (any, error) {
	switch n.Kind {
	case 0:
		return nil, nil
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return nil, nil
		}
		return nodeValue(n.Content[0])
	case yaml.AliasNode:
		return nodeValue(n.Alias)
	case yaml.MappingNode:
		obj := http.Object{}
		for i := 0; i+1 < len(n.Content); i += 2 {
			key := n.Content[i]
			if key.Kind != yaml.ScalarNode {
				return nil, fmt.Errorf("line %d: mapping keys must be scalars", key.Line)
			}
			val, err := nodeValue(n.Content[i+1])
			if err != nil {
				return nil, err
			}
			obj = obj.Set(key.Value, val)
		}
		return obj, nil
	case yaml.SequenceNode:
		out := make([]any, 0, len(n.Content))
		for _, item := range n.Content {
			val, err := nodeValue(item)
			if err != nil {
				return nil, err
			}
			out = append(out, val)
		}
		return out, nil
	case yaml.ScalarNode:
		return scalarValue(n)
	default:
		return nil, fmt.Errorf("line %d: unsupported YAML node", n.Line)
	}
}

func scalarValue(n *yaml.Node) (any, error) {
	switch n.ShortTag() {
	case "!!null":
		return nil, nil
	case "!!bool":
		var b bool
		if err := n.Decode(&b); err != nil {
			return nil, err
		}
		return b, nil
	case "!!int":
		var i int64
		if err := n.Decode(&i); err == nil {
			return i, nil
		}
		var u uint64
		if err := n.Decode(&u); err == nil {
			return u, nil
		}
		var f float64
		if err := n.Decode(&f); err != nil {
			return nil, err
		}
		return f, nil
	case "!!float":
		var f float64
		if err := n.Decode(&f); err != nil {
			return nil, err
		}
		return f, nil
	default:
		return n.Value, nil
	}
}

func resolveAlias(n *yaml.Node) *yaml.Node {
	for n != nil && (n.Kind == yaml.AliasNode || n.Kind == yaml.DocumentNode) {
		if n.Kind == yaml.AliasNode {
			n = n.Alias
			continue
		}
		if len(n.Content) == 0 {
			return nil
		}
		n = n.Content[0]
	}
	return n
}

// lookupNode returns the value node for key in mapping n, or nil.
func lookupNode(n *yaml.Node, key string) *yaml.Node {
	n = resolveAlias(n)
	if n == nil || n.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(n.Content); i += 2 {
		if n.Content[i].Value == key {
			return resolveAlias(n.Content[i+1])
		}
	}
	return nil
}

// mappingText lists a mapping of scalars as pairs of their literal text, in
// document order. Null values become "".
func mappingText(n *yaml.Node) []http.Pair {
	n = resolveAlias(n)
	if n == nil || n.Kind != yaml.MappingNode {
		return nil
	}
	pairs := make([]http.Pair, 0, len(n.Content)/2)
	for i := 0; i+1 < len(n.Content); i += 2 {
		v := resolveAlias(n.Content[i+1])
		value := ""
		if v != nil && v.ShortTag() != "!!null" {
			value = v.Value
		}
		pairs = append(pairs, http.Pair{Key: n.Content[i].Value, Value: value})
	}
	return pairs
}
