// Package collection loads named request collections from YAML files and
// resolves their templates into placeholder-free requests.
//
// A collection lives at <dir>/<name>.yaml (or .yml) and holds a variables
// map plus an ordered list of request templates. Each template may declare a
// JSON or a form body, never both.
package collection
