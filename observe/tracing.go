// Package observe decorates pipeline executors with OpenTelemetry tracing
// and metrics. Both decorators satisfy pipeline.Executor themselves, so
// they stack over either composition strategy.
package observe

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/veldt/tap/pipeline"
)

// tracerName is the instrumentation scope name for tap tracing.
const tracerName = "github.com/veldt/tap"

// TracedExecutor wraps an executor so every Execute call runs inside an
// OpenTelemetry span.
type TracedExecutor struct {
	inner  pipeline.Executor
	tracer trace.Tracer
}

// Compile-time interface check.
var _ pipeline.Executor = (*TracedExecutor)(nil)

// Traced wraps the executor using the global OTel TracerProvider. If no
// provider is configured, the noop tracer is used and the wrapper becomes
// a pass-through with zero overhead.
func Traced(inner pipeline.Executor) *TracedExecutor {
	return TracedWithTracer(inner, otel.Tracer(tracerName))
}

// TracedWithTracer wraps the executor using the provided tracer.
// This variant allows injecting a specific TracerProvider for testing.
func TracedWithTracer(inner pipeline.Executor, tracer trace.Tracer) *TracedExecutor {
	return &TracedExecutor{inner: inner, tracer: tracer}
}

// Execute runs the wrapped executor inside a span. On core failure the
// span status is set to Error; hook diagnostics are recorded as a count
// attribute since they do not fail the call.
func (t *TracedExecutor) Execute(ctx context.Context, op pipeline.Op, payload []byte) (*pipeline.Result, error) {
	ctx, span := t.tracer.Start(ctx, "tap.execute",
		trace.WithAttributes(
			attribute.Int("tap.payload_size", len(payload)),
		),
		trace.WithSpanKind(trace.SpanKindInternal),
	)
	defer span.End()

	res, err := t.inner.Execute(ctx, op, payload)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return res, err
	}

	span.SetAttributes(attribute.Int("tap.hook_failures", len(res.Diagnostics)))
	span.SetStatus(codes.Ok, "")
	return res, nil
}
