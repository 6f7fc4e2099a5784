// Package output renders HTTP responses.
//
// Supported formats:
//   - Console: colored status line, headers and pretty-printed body
//   - JSON: one machine-readable object with the request and response
package output
