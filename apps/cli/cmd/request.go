package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abdul-hamid-achik/wave/packages/core/config"
	"github.com/abdul-hamid-achik/wave/packages/core/runner"
	"github.com/abdul-hamid-achik/wave/packages/http"
	"github.com/abdul-hamid-achik/wave/packages/output"
	"github.com/abdul-hamid-achik/wave/packages/override"
)

var (
	verboseFlag bool
	formFlag    bool
	queryFlag   string
	outputFlag  string
)

var requestExamples = map[http.Method]string{
	http.MethodGet:    "  wave get example.com\n  wave get api.example.com/users Authorization:Bearer123",
	http.MethodPost:   "  wave post api.example.com/users name=john age=30 active=true\n  wave post --form api.example.com/login user=john pass=secret",
	http.MethodPut:    "  wave put api.example.com/users/1 name=jane",
	http.MethodPatch:  "  wave patch api.example.com/users/1 active=false",
	http.MethodDelete: "  wave delete api.example.com/users/1 Authorization:Bearer123",
}

func newRequestCmd(method http.Method) *cobra.Command {
	c := &cobra.Command{
		Use:   strings.ToLower(method.String()) + " <url> [params...]",
		Short: fmt.Sprintf("Send a %s request", method),
		Long: fmt.Sprintf(`Send a %s request to url.

Parameters are key:value for headers and key=value for body fields.
Body values that look like numbers or booleans are sent as JSON numbers
and booleans.`, method),
		Example: requestExamples[method],
		Args:    usageArgs(cobra.MinimumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			tokens := args[1:]
			if formFlag {
				tokens = append([]string{override.FormFlag}, tokens...)
			}
			result, err := sess.runner.RunAdHoc(cmd.Context(), method, args[0], tokens)
			if err != nil {
				return err
			}
			return printResult(cmd, result)
		},
	}

	// Everything after the URL is a request parameter.
	c.Flags().SetInterspersed(false)
	addOutputFlags(c)
	if method.AcceptsBody() {
		c.Flags().BoolVar(&formFlag, "form", false, "Send body fields as application/x-www-form-urlencoded")
	}
	return c
}

func addOutputFlags(c *cobra.Command) {
	c.Flags().BoolVarP(&verboseFlag, "verbose", "v", false, "Show all response headers")
	c.Flags().StringVarP(&queryFlag, "query", "q", "", "Print only the part of a JSON body matching a gjson path")
	c.Flags().StringVarP(&outputFlag, "output", "o", config.OutputConsole, "Output format: console or json")
}

func printResult(cmd *cobra.Command, result *runner.Result) error {
	if sess.cfg.Output == config.OutputJSON {
		f := output.NewJSONFormatter(output.JSONWithWriter(cmd.OutOrStdout()))
		return f.Format(result.Request, result.Response)
	}

	p := output.NewPrinter(
		output.WithWriter(cmd.OutOrStdout()),
		output.WithVerbose(sess.cfg.Verbose),
		output.WithNoColor(sess.cfg.NoColor),
		output.WithQuery(queryFlag),
	)
	return p.Print(result.Response)
}

// usageArgs marks argument count errors as usage errors.
func usageArgs(fn cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := fn(cmd, args); err != nil {
			return &usageError{err: err}
		}
		return nil
	}
}
