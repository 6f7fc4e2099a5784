package override

import "fmt"

// InvalidParamError is returned for a CLI token that cannot be used.
type InvalidParamError struct {
	Token  string
	Reason string
}

func (e *InvalidParamError) Error() string {
	if e.Token == "" {
		return "invalid parameter: " + e.Reason
	}
	return fmt.Sprintf("invalid parameter %q: %s", e.Token, e.Reason)
}

// Hint suggests a correctly formed token.
func (e *InvalidParamError) Hint() string {
	switch e.Reason {
	case reasonEmptyKey, reasonNoSeparator:
		return "Headers use key:value and body fields use key=value. Example: Authorization:Bearer123 name=john age=30"
	case reasonHeaderSpace:
		return "Header names cannot contain spaces. Example: Content-Type:application/json"
	case reasonFormPosition:
		return "Put --form before any parameters. Example: wave post https://api.example.com/login --form user=john"
	case reasonFormJSON:
		return "This request declares a JSON body; drop --form or change the collection body to form"
	default:
		return ""
	}
}

const (
	reasonEmptyKey     = "key is empty"
	reasonNoSeparator  = "expected key:value (header) or key=value (body field)"
	reasonHeaderSpace  = "header name contains a space"
	reasonFormPosition = "--form must come before header and body parameters"
	reasonFormJSON     = "--form cannot be used with a JSON request body"
)
