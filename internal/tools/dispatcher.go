package tools

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"leantime-mcp/internal/domain"
)

// Request is one unit of work submitted to the dispatcher.
type Request struct {
	Name  string                 `json:"name" yaml:"name"`
	Input map[string]interface{} `json:"input" yaml:"input"`
}

// Result is the outcome of one batch envelope: Output on success, Err otherwise.
type Result struct {
	Tool   string
	Output map[string]interface{}
	Err    error
}

// MarshalJSON renders {tool, output} or {tool, error}.
func (r Result) MarshalJSON() ([]byte, error) {
	if r.Err != nil {
		return json.Marshal(struct {
			Tool  string `json:"tool"`
			Error string `json:"error"`
		}{r.Tool, r.Err.Error()})
	}
	output := r.Output
	if output == nil {
		output = map[string]interface{}{}
	}
	return json.Marshal(struct {
		Tool   string                 `json:"tool"`
		Output map[string]interface{} `json:"output"`
	}{r.Tool, output})
}

// Observer is notified around every tool run. The returned function is called
// once with the run's error (nil on success).
type Observer interface {
	StartTool(ctx context.Context, name string) (context.Context, func(err error))
}

type noopObserver struct{}

func (noopObserver) StartTool(ctx context.Context, _ string) (context.Context, func(error)) {
	return ctx, func(error) {}
}

// Dispatcher resolves tool names and runs them against request-scoped sessions.
type Dispatcher struct {
	registry    *Registry
	open        SessionOpener
	observer    Observer
	concurrency int
	logger      *slog.Logger
}

// DispatcherOption configures a Dispatcher.
type DispatcherOption func(*Dispatcher)

// WithObserver attaches telemetry to every tool run.
func WithObserver(observer Observer) DispatcherOption {
	return func(d *Dispatcher) {
		if observer != nil {
			d.observer = observer
		}
	}
}

// WithBatchConcurrency bounds how many batch envelopes run at once.
// Values below 1 mean sequential execution.
func WithBatchConcurrency(n int) DispatcherOption {
	return func(d *Dispatcher) {
		if n < 1 {
			n = 1
		}
		d.concurrency = n
	}
}

// NewDispatcher creates a dispatcher over an immutable registry.
func NewDispatcher(registry *Registry, open SessionOpener, logger *slog.Logger, opts ...DispatcherOption) *Dispatcher {
	if logger == nil {
		logger = slog.Default()
	}
	d := &Dispatcher{
		registry:    registry,
		open:        open,
		observer:    noopObserver{},
		concurrency: 1,
		logger:      logger,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Registry returns the registry the dispatcher resolves names against.
func (d *Dispatcher) Registry() *Registry {
	return d.registry
}

// Dispatch runs a single tool. Unknown names fail with *domain.NotFoundError
// before any backend session is opened.
func (d *Dispatcher) Dispatch(ctx context.Context, name string, input map[string]interface{}) (map[string]interface{}, error) {
	construct, ok := d.registry.Lookup(name)
	if !ok {
		return nil, d.notFound(ctx, name)
	}

	session, err := d.open()
	if err != nil {
		return nil, err
	}
	defer d.closeSession(session)

	return d.run(ctx, name, construct, session, input)
}

// DispatchBatch runs every request against one shared session. Each envelope is
// isolated: a failure, including an unknown tool name, is recorded in that
// envelope's slot and never stops its siblings. Results keep request order.
func (d *Dispatcher) DispatchBatch(ctx context.Context, requests []Request) ([]Result, error) {
	results := make([]Result, len(requests))
	if len(requests) == 0 {
		return results, nil
	}

	session, err := d.open()
	if err != nil {
		return nil, err
	}
	defer d.closeSession(session)

	var g errgroup.Group
	g.SetLimit(d.concurrency)

	for i, req := range requests {
		g.Go(func() error {
			results[i] = d.runEnvelope(ctx, session, req)
			return nil
		})
	}
	_ = g.Wait() // envelopes never return errors

	return results, nil
}

func (d *Dispatcher) runEnvelope(ctx context.Context, backend Backend, req Request) Result {
	construct, ok := d.registry.Lookup(req.Name)
	if !ok {
		return Result{Tool: req.Name, Err: d.notFound(ctx, req.Name)}
	}

	output, err := d.run(ctx, req.Name, construct, backend, req.Input)
	if err != nil {
		return Result{Tool: req.Name, Err: err}
	}
	return Result{Tool: req.Name, Output: output}
}

func (d *Dispatcher) run(ctx context.Context, name string, construct Constructor, backend Backend, input map[string]interface{}) (output map[string]interface{}, err error) {
	ctx, finish := d.observer.StartTool(ctx, name)
	defer func() { finish(err) }()

	output, err = construct(backend).Run(ctx, input)
	if err != nil {
		d.logFailure(name, err)
	}
	return output, err
}

// notFound reports an unregistered name to the observer so lookups that never
// reach a tool are still counted.
func (d *Dispatcher) notFound(ctx context.Context, name string) error {
	err := domain.NewToolNotFoundError(name)
	_, finish := d.observer.StartTool(ctx, name)
	finish(err)
	d.logger.Debug("unknown tool requested", "tool", name)
	return err
}

func (d *Dispatcher) logFailure(name string, err error) {
	var validationErr *domain.ValidationError
	switch {
	case errors.As(err, &validationErr) && validationErr.Stage == domain.StageOutput:
		d.logger.Error("tool produced invalid output",
			"tool", name,
			"fields", fieldList(validationErr.Fields),
			"error", err,
		)
	case errors.As(err, &validationErr):
		d.logger.Debug("tool input rejected",
			"tool", name,
			"fields", fieldList(validationErr.Fields),
		)
	default:
		d.logger.Warn("tool execution failed",
			"tool", name,
			"error", err,
		)
	}
}

func (d *Dispatcher) closeSession(session Session) {
	if err := session.Close(); err != nil {
		d.logger.Warn("failed to close backend session", "error", err)
	}
}
