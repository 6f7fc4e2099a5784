package env

import (
	"fmt"
	"os"
	"strings"
)

const envPrefix = "env:"

// Source identifies which scope a placeholder was looked up in.
type Source int

const (
	SourceFile Source = iota
	SourceEnvironment
)

func (s Source) String() string {
	if s == SourceEnvironment {
		return "environment"
	}
	return "file"
}

// MissingVariableError is returned when a placeholder names a variable that
// is not defined in its scope.
type MissingVariableError struct {
	Kind Source
	Name string
}

func (e *MissingVariableError) Error() string {
	if e.Kind == SourceEnvironment {
		return fmt.Sprintf("environment variable %q is not set", e.Name)
	}
	return fmt.Sprintf("variable %q is not defined", e.Name)
}

// Resolve substitutes every ${name} and ${env:NAME} placeholder in input.
// File variables come from fileVars, env: placeholders from the process
// environment. Resolved values are not scanned again. On the first missing
// variable the whole call fails and no partial string is returned.
//
// An unterminated "${" takes the rest of the string as the variable name.
func Resolve(input string, fileVars map[string]string) (string, error) {
	if !strings.Contains(input, "${") {
		return input, nil
	}

	var b strings.Builder
	b.Grow(len(input))

	rest := input
	for {
		start := strings.Index(rest, "${")
		if start < 0 {
			b.WriteString(rest)
			break
		}
		b.WriteString(rest[:start])
		rest = rest[start+2:]

		name := rest
		end := strings.IndexByte(rest, '}')
		if end >= 0 {
			name = rest[:end]
			rest = rest[end+1:]
		} else {
			rest = ""
		}

		value, err := lookup(name, fileVars)
		if err != nil {
			return "", err
		}
		b.WriteString(value)
	}

	return b.String(), nil
}

func lookup(name string, fileVars map[string]string) (string, error) {
	if envName, ok := strings.CutPrefix(name, envPrefix); ok {
		value, found := os.LookupEnv(envName)
		if !found {
			return "", &MissingVariableError{Kind: SourceEnvironment, Name: envName}
		}
		return value, nil
	}
	value, found := fileVars[name]
	if !found {
		return "", &MissingVariableError{Kind: SourceFile, Name: name}
	}
	return value, nil
}

// Placeholder is one ${...} occurrence found in a string.
type Placeholder struct {
	Name   string
	Source Source
}

func (p Placeholder) String() string {
	if p.Source == SourceEnvironment {
		return "${" + envPrefix + p.Name + "}"
	}
	return "${" + p.Name + "}"
}

// Placeholders lists the placeholders in s in order of appearance.
func Placeholders(s string) []Placeholder {
	var out []Placeholder
	rest := s
	for {
		start := strings.Index(rest, "${")
		if start < 0 {
			return out
		}
		rest = rest[start+2:]
		name := rest
		if end := strings.IndexByte(rest, '}'); end >= 0 {
			name = rest[:end]
			rest = rest[end+1:]
		} else {
			rest = ""
		}
		if envName, ok := strings.CutPrefix(name, envPrefix); ok {
			out = append(out, Placeholder{Name: envName, Source: SourceEnvironment})
		} else {
			out = append(out, Placeholder{Name: name, Source: SourceFile})
		}
	}
}

func HasPlaceholders(s string) bool {
	return strings.Contains(s, "${")
}

// Resolver binds a file-variable scope so callers can resolve many strings
// against the same collection.
type Resolver struct {
	variables map[string]string
}

func NewResolver(variables map[string]string) *Resolver {
	vars := make(map[string]string, len(variables))
	for k, v := range variables {
		vars[k] = v
	}
	return &Resolver{variables: vars}
}

func (r *Resolver) Resolve(input string) (string, error) {
	return Resolve(input, r.variables)
}

// Missing returns every placeholder in s that would fail to resolve.
func (r *Resolver) Missing(s string) []Placeholder {
	var out []Placeholder
	for _, p := range Placeholders(s) {
		if _, err := lookup(p.lookupName(), r.variables); err != nil {
			out = append(out, p)
		}
	}
	return out
}

func (p Placeholder) lookupName() string {
	if p.Source == SourceEnvironment {
		return envPrefix + p.Name
	}
	return p.Name
}
