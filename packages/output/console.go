package output

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"

	"github.com/abdul-hamid-achik/wave/packages/http"
)

// Printer writes a response to the terminal: a status line colored by
// class, the headers when they matter, and the body.
type Printer struct {
	writer  io.Writer
	verbose bool
	noColor bool
	query   string
}

type PrinterOption func(*Printer)

func NewPrinter(opts ...PrinterOption) *Printer {
	p := &Printer{
		writer: os.Stdout,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func WithWriter(w io.Writer) PrinterOption {
	return func(p *Printer) {
		p.writer = w
	}
}

// WithVerbose prints every response header, not only on errors.
func WithVerbose(v bool) PrinterOption {
	return func(p *Printer) {
		p.verbose = v
	}
}

func WithNoColor(nc bool) PrinterOption {
	return func(p *Printer) {
		p.noColor = nc
	}
}

// WithQuery prints only the part of a JSON body matched by a gjson path.
func WithQuery(path string) PrinterOption {
	return func(p *Printer) {
		p.query = path
	}
}

func (p *Printer) colorEnabled() bool {
	return !p.noColor && !color.NoColor
}

func statusColor(code uint16) *color.Color {
	switch {
	case code >= 200 && code < 300:
		return color.New(color.FgGreen, color.Bold)
	case code >= 300 && code < 400:
		return color.New(color.FgYellow, color.Bold)
	case code >= 400:
		return color.New(color.FgRed, color.Bold)
	default:
		return color.New(color.Bold)
	}
}

// Print writes resp. It fails only when a query is set and cannot be
// applied.
func (p *Printer) Print(resp *http.Response) error {
	c := statusColor(resp.StatusCode)
	if !p.colorEnabled() {
		c.DisableColor()
	}
	fmt.Fprintf(p.writer, "%s\n", c.Sprintf("Status: %d", resp.StatusCode))

	isJSON := looksLikeJSON(resp)
	cyan := color.New(color.FgCyan)
	if !p.colorEnabled() {
		cyan.DisableColor()
	}

	switch {
	case p.verbose || resp.IsError():
		for _, h := range resp.Headers.Pairs() {
			fmt.Fprintf(p.writer, "%s %s\n", cyan.Sprint(h.Key+":"), h.Value)
		}
	case !isJSON && resp.ContentType() != "":
		fmt.Fprintf(p.writer, "%s %s\n", cyan.Sprint("Content-Type:"), resp.ContentType())
	}

	if resp.Body == "" {
		return nil
	}
	fmt.Fprintln(p.writer)

	body := resp.Body
	if p.query != "" {
		if !isJSON {
			return fmt.Errorf("cannot query a non-JSON response body")
		}
		result := gjson.Get(body, p.query)
		if !result.Exists() {
			return fmt.Errorf("query %q matched nothing", p.query)
		}
		body = result.Raw
		if result.Type == gjson.String {
			fmt.Fprintln(p.writer, result.Str)
			return nil
		}
	}

	if isJSON {
		p.writeJSON(body)
		return nil
	}

	fmt.Fprint(p.writer, body)
	if !strings.HasSuffix(body, "\n") {
		fmt.Fprintln(p.writer)
	}
	return nil
}

func (p *Printer) writeJSON(body string) {
	out := pretty.Pretty([]byte(body))
	if p.colorEnabled() {
		out = pretty.Color(out, nil)
	}
	_, _ = p.writer.Write(out)
}

// looksLikeJSON trusts the body over the Content-Type header, so servers
// that send JSON as text/plain still get pretty output.
func looksLikeJSON(resp *http.Response) bool {
	body := strings.TrimSpace(resp.Body)
	if body == "" {
		return resp.IsJSON()
	}
	return gjson.Valid(body)
}

// PrintError writes an error and an optional suggestion.
func (p *Printer) PrintError(w io.Writer, err error, hint string) {
	red := color.New(color.FgRed)
	if !p.colorEnabled() {
		red.DisableColor()
	}
	fmt.Fprintf(w, "%s %v\n", red.Add(color.Bold).Sprint("Error:"), err)
	if hint != "" {
		yellow := color.New(color.FgYellow)
		if !p.colorEnabled() {
			yellow.DisableColor()
		}
		fmt.Fprintf(w, "%s %s\n", yellow.Sprint("Suggestion:"), hint)
	}
}
