package runner

import (
	"context"
	"io"
	"log/slog"
	"os"
	"slices"
	"time"

	"github.com/abdul-hamid-achik/wave/packages/collection"
	"github.com/abdul-hamid-achik/wave/packages/core/logging"
	"github.com/abdul-hamid-achik/wave/packages/http"
	"github.com/abdul-hamid-achik/wave/packages/override"
	"github.com/abdul-hamid-achik/wave/packages/progress"
)

type Config struct {
	// Spinner enables the progress spinner. It is still only drawn when
	// SpinnerOut is a terminal.
	Spinner    bool
	SpinnerOut io.Writer
	// Headers are added to every request that does not already set them.
	Headers map[string]string
	Logger  *slog.Logger
}

type Runner struct {
	client *http.Client
	store  *collection.Store
	config *Config
	logger *slog.Logger
}

func NewRunner(backend http.Backend, store *collection.Store, cfg *Config) *Runner {
	if cfg == nil {
		cfg = &Config{}
	}
	if cfg.SpinnerOut == nil {
		cfg.SpinnerOut = os.Stderr
	}
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Discard()
	}

	return &Runner{
		client: http.NewClient(backend),
		store:  store,
		config: cfg,
		logger: logger,
	}
}

// Result is one completed exchange.
type Result struct {
	Request  *http.Request
	Response *http.Response
	Duration time.Duration
}

// RunAdHoc builds and sends a request given directly on the command line.
func (r *Runner) RunAdHoc(ctx context.Context, method http.Method, rawURL string, tokens []string) (*Result, error) {
	p, err := override.Parse(tokens)
	if err != nil {
		return nil, err
	}
	if len(p.Body) > 0 && !method.AcceptsBody() {
		r.logger.Warn("ignoring body fields", "method", method.String(), "fields", len(p.Body))
	}

	req, err := buildAdHoc(method, rawURL, p)
	if err != nil {
		return nil, err
	}
	return r.run(ctx, req)
}

// RunCollection loads a collection from the store and sends one of its
// requests.
func (r *Runner) RunCollection(ctx context.Context, collectionName, requestName string, tokens []string) (*Result, error) {
	coll, err := r.store.Load(collectionName)
	if err != nil {
		return nil, err
	}
	r.logger.Debug("loaded collection", "collection", coll.Name, "path", coll.Path, "requests", len(coll.Requests))

	req, dropped, err := buildCollection(coll, requestName, tokens)
	if err != nil {
		return nil, err
	}
	if dropped {
		r.logger.Warn("ignoring body", "method", req.Method.String(), "request", requestName)
	}
	return r.run(ctx, req)
}

func (r *Runner) run(ctx context.Context, req *http.Request) (*Result, error) {
	req = r.withDefaultHeaders(req)

	start := time.Now()
	resp, err := r.Execute(ctx, req)
	if err != nil {
		return nil, err
	}
	return &Result{Request: req, Response: resp, Duration: time.Since(start)}, nil
}

// withDefaultHeaders returns a copy of req with configured headers added
// where the request does not set them.
func (r *Runner) withDefaultHeaders(req *http.Request) *http.Request {
	if len(r.config.Headers) == 0 {
		return req
	}
	keys := make([]string, 0, len(r.config.Headers))
	for k := range r.config.Headers {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	out := *req
	out.Headers = req.Headers.Clone()
	for _, k := range keys {
		out.Headers.SetDefault(k, r.config.Headers[k])
	}
	return &out
}

// Execute sends req through the backend with the spinner running. The
// spinner is stopped before Execute returns on every path.
func (r *Runner) Execute(ctx context.Context, req *http.Request) (*http.Response, error) {
	log := logging.WithRequest(r.logger, req.Method.String(), req.URL)
	log.Debug("sending request", "headers", req.Headers.Len(), "body_bytes", len(req.BodyString()))

	var resp *http.Response
	err := progress.Run(ctx, r.config.SpinnerOut, req.Method.String()+" "+req.URL, func() error {
		var err error
		resp, err = r.client.Send(ctx, req)
		return err
	}, progress.WithEnabled(r.config.Spinner))
	if err != nil {
		log.Debug("request failed", "error", err)
		return nil, err
	}

	log.Debug("received response", "status", resp.StatusCode, "duration", resp.Duration)
	return resp, nil
}
