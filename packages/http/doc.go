// Package http defines wave's transport-agnostic request and response values
// and the Backend seam that dispatches them.
//
// It provides:
//   - Method, Header and Request/RequestBuilder types
//   - The body codec for JSON and urlencoded form bodies
//   - RestyBackend, the production backend built on go-resty
//   - MockBackend, a deterministic backend for tests
package http
