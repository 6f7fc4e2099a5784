// Package progress shows a spinner on the terminal while a request is in
// flight. The spinner only runs when the output is a terminal.
package progress
