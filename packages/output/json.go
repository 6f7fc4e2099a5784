package output

import (
	"encoding/json"
	"io"
	"os"

	"github.com/abdul-hamid-achik/wave/packages/http"
)

// JSONOutput is the document written by JSONFormatter.
type JSONOutput struct {
	Request  *JSONRequest  `json:"request,omitempty"`
	Response *JSONResponse `json:"response,omitempty"`
	Error    string        `json:"error,omitempty"`
}

type JSONRequest struct {
	Method  string            `json:"method"`
	URL     string            `json:"url"`
	Headers map[string]string `json:"headers,omitempty"`
	Body    string            `json:"body,omitempty"`
}

type JSONResponse struct {
	StatusCode int               `json:"statusCode"`
	Status     string            `json:"status"`
	Headers    map[string]string `json:"headers,omitempty"`
	Duration   float64           `json:"duration"`
	// Body is embedded as JSON when the response body is valid JSON,
	// otherwise as a string.
	Body any `json:"body,omitempty"`
}

// JSONFormatter writes a request/response exchange as one JSON object.
type JSONFormatter struct {
	writer io.Writer
}

type JSONOption func(*JSONFormatter)

func NewJSONFormatter(opts ...JSONOption) *JSONFormatter {
	f := &JSONFormatter{
		writer: os.Stdout,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

func JSONWithWriter(w io.Writer) JSONOption {
	return func(f *JSONFormatter) {
		f.writer = w
	}
}

func headerMap(h http.Header) map[string]string {
	if h.Len() == 0 {
		return nil
	}
	out := make(map[string]string, h.Len())
	for _, p := range h.Pairs() {
		out[p.Key] = p.Value
	}
	return out
}

// Format writes the exchange. Either argument may be nil.
func (f *JSONFormatter) Format(req *http.Request, resp *http.Response) error {
	var doc JSONOutput

	if req != nil {
		doc.Request = &JSONRequest{
			Method:  req.Method.String(),
			URL:     req.URL,
			Headers: headerMap(req.Headers),
			Body:    req.BodyString(),
		}
	}

	if resp != nil {
		doc.Response = &JSONResponse{
			StatusCode: int(resp.StatusCode),
			Status:     resp.Status,
			Headers:    headerMap(resp.Headers),
			Duration:   float64(resp.Duration.Milliseconds()),
		}
		if resp.Body != "" {
			if json.Valid([]byte(resp.Body)) {
				doc.Response.Body = json.RawMessage(resp.Body)
			} else {
				doc.Response.Body = resp.Body
			}
		}
	}

	return f.encode(doc)
}

// FormatError writes an error document.
func (f *JSONFormatter) FormatError(err error) error {
	return f.encode(JSONOutput{Error: err.Error()})
}

func (f *JSONFormatter) encode(doc JSONOutput) error {
	encoder := json.NewEncoder(f.writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(doc)
}
