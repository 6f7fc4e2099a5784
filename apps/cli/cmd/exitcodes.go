package cmd

import (
	"errors"
	"strings"

	"github.com/abdul-hamid-achik/wave/packages/collection"
	"github.com/abdul-hamid-achik/wave/packages/core/runner"
	"github.com/abdul-hamid-achik/wave/packages/http"
	"github.com/abdul-hamid-achik/wave/packages/override"
)

// Exit codes for wave CLI
const (
	// ExitSuccess indicates the request completed, whatever its status code
	ExitSuccess = 0

	// ExitFailure indicates any error without a more specific code
	ExitFailure = 1

	// ExitParseError indicates a collection file could not be loaded or validated
	ExitParseError = 2

	// ExitConfigError indicates a configuration error
	ExitConfigError = 3

	// ExitNetworkError indicates a network/connection error
	ExitNetworkError = 4

	// ExitUsageError indicates invalid CLI usage, parameters or URL
	ExitUsageError = 64
)

type usageError struct{ err error }

func (e *usageError) Error() string { return e.err.Error() }
func (e *usageError) Unwrap() error { return e.err }

type configError struct{ err error }

func (e *configError) Error() string { return e.err.Error() }
func (e *configError) Unwrap() error { return e.err }

// errValidation is returned by validate when any collection has problems.
var errValidation = errors.New("validation failed")

func exitCode(err error) int {
	var (
		usage *usageError
		param *override.InvalidParamError
		url   *runner.InvalidURLError
		cfg   *configError
		coll  *collection.Error
	)
	switch {
	case err == nil:
		return ExitSuccess
	case errors.As(err, &usage), errors.As(err, &param), errors.As(err, &url),
		strings.HasPrefix(err.Error(), "unknown command"):
		return ExitUsageError
	case errors.As(err, &cfg):
		return ExitConfigError
	case http.IsNetwork(err):
		return ExitNetworkError
	case errors.Is(err, errValidation), errors.As(err, &coll):
		return ExitParseError
	default:
		return ExitFailure
	}
}
