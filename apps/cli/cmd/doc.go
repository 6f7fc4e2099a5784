// Package cmd implements the wave CLI commands using Cobra.
//
// Available commands:
//   - get, post, put, patch, delete: Send a request to a URL
//   - collection (c): Send a named request from a YAML collection
//   - list: Show collections and the requests they define
//   - validate: Check collections without sending anything
//   - init: Create a .wave directory with example files
//   - version: Show wave version information
//
// Request parameters use key:value for headers and key=value for body
// fields. Settings come from flags, WAVE_* environment variables and
// <dir>/config.yaml, in that order of precedence.
package cmd
