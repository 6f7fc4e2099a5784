// Package env resolves ${name} and ${env:NAME} placeholders.
//
// Two scopes exist: file variables declared by a collection, and the process
// environment. A missing variable in either scope is an error, never an
// empty substitution. The package also loads optional .env files so their
// values become visible to ${env:NAME}.
package env
