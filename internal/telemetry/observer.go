package telemetry

import (
	"context"
	"errors"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"leantime-mcp/internal/domain"
)

// Instrumentation scope for tracer and meter.
const ScopeName = "leantime-mcp/tools"

// ToolObserver records one span, one counter increment and one latency sample
// per tool run. It satisfies tools.Observer.
type ToolObserver struct {
	tracer      trace.Tracer
	invocations metric.Int64Counter
	latency     metric.Float64Histogram
}

// NewToolObserver creates a tool observer bound to the provided meter/tracer.
func NewToolObserver(meter metric.Meter, tracer trace.Tracer) (*ToolObserver, error) {
	invocations, err := meter.Int64Counter(
		"leantime_mcp.tool.invocations",
		metric.WithDescription("Number of tool invocations"),
	)
	if err != nil {
		return nil, err
	}
	latency, err := meter.Float64Histogram(
		"leantime_mcp.tool.latency",
		metric.WithDescription("Tool latency in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}

	return &ToolObserver{
		tracer:      tracer,
		invocations: invocations,
		latency:     latency,
	}, nil
}

// StartTool opens a "tool.run" span. The returned func ends it and records
// the outcome.
func (o *ToolObserver) StartTool(ctx context.Context, name string) (context.Context, func(error)) {
	start := time.Now()
	ctx, span := o.tracer.Start(ctx, "tool.run",
		trace.WithAttributes(attribute.String("tool_name", name)),
	)

	return ctx, func(err error) {
		attrs := []attribute.KeyValue{
			attribute.String("tool_name", name),
			attribute.Bool("success", err == nil),
		}
		if err != nil {
			attrs = append(attrs, attribute.String("error_kind", errorKind(err)))
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		} else {
			span.SetStatus(codes.Ok, "")
		}
		span.SetAttributes(attrs...)
		span.End()

		options := metric.WithAttributes(attrs...)
		o.invocations.Add(ctx, 1, options)
		o.latency.Record(ctx, time.Since(start).Seconds(), options)
	}
}

// errorKind buckets errors into low-cardinality labels.
func errorKind(err error) string {
	switch {
	case errors.Is(err, domain.ErrValidation):
		return "validation"
	case errors.Is(err, domain.ErrNotFound):
		return "not_found"
	case errors.Is(err, domain.ErrRemoteAPI):
		return "remote_api"
	case errors.Is(err, domain.ErrClientNotInitialized):
		return "client_not_initialized"
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	default:
		return "internal"
	}
}
