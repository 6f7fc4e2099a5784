package cmd

import (
	"errors"

	"github.com/abdul-hamid-achik/wave/packages/collection"
	"github.com/abdul-hamid-achik/wave/packages/core/env"
	"github.com/abdul-hamid-achik/wave/packages/http"
)

type hinter interface {
	Hint() string
}

// Hint returns a suggestion for fixing err, or "" when there is none.
func Hint(err error) string {
	var (
		h        hinter
		missing  *env.MissingVariableError
		notFound *collection.RequestNotFoundError
	)
	switch {
	case errors.As(err, &h):
		return h.Hint()
	case errors.As(err, &notFound):
		return "Check the collection YAML file to see all available requests"
	case errors.Is(err, collection.ErrNoDirectory):
		return "No .wave directory found for collections. Run 'wave init' to create one"
	case errors.Is(err, collection.ErrNotFound):
		return "Make sure the file exists in the .wave directory"
	case errors.Is(err, collection.ErrInvalidBody):
		return "A request body must set exactly one of json or form, not both and not neither"
	case errors.Is(err, collection.ErrMalformed), errors.Is(err, collection.ErrSchema):
		return "Run 'wave validate <collection>' for details"
	case errors.As(err, &missing):
		if missing.Kind == env.SourceEnvironment {
			return "Export " + missing.Name + " or add it to the file given with --env-file"
		}
		return "Add " + missing.Name + " under variables in the collection file"
	case http.IsNetwork(err):
		return "Check the URL and your network connection"
	case errors.Is(err, errValidation):
		return ""
	default:
		var usage *usageError
		if errors.As(err, &usage) {
			return "Run 'wave --help' for usage"
		}
		return ""
	}
}
