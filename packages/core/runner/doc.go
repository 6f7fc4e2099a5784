// Package runner turns CLI input into a dispatch-ready request and sends it.
//
// Ad-hoc requests are built from a method, a URL and override tokens.
// Collection requests are looked up by name, resolved against the
// collection's variables, merged with the override tokens and encoded.
// Execute sends a single request through the configured backend while a
// spinner runs.
package runner
