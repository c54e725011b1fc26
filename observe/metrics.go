package observe

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/veldt/tap/pipeline"
)

// meterName is the instrumentation scope name for tap metrics.
const meterName = "github.com/veldt/tap"

// MeteredExecutor wraps an executor and records per-call execution metrics.
type MeteredExecutor struct {
	inner        pipeline.Executor
	duration     metric.Float64Histogram
	executions   metric.Int64Counter
	hookFailures metric.Int64Counter
}

// Compile-time interface check.
var _ pipeline.Executor = (*MeteredExecutor)(nil)

// Metered wraps the executor using the global OTel MeterProvider. If no
// MeterProvider is configured, noop instruments are used and the wrapper
// becomes a pass-through.
//
// Instruments:
//   - tap.execute.duration (Float64Histogram): execution time in seconds,
//     with attribute: status ("ok" or "error")
//   - tap.execute.total (Int64Counter): total executions,
//     with attribute: status ("ok" or "error")
//   - tap.hook.failures (Int64Counter): total collected hook failures
func Metered(inner pipeline.Executor) *MeteredExecutor {
	return MeteredWithMeter(inner, otel.Meter(meterName))
}

// MeteredWithMeter wraps the executor using the provided meter.
// This variant allows injecting a specific MeterProvider for testing.
func MeteredWithMeter(inner pipeline.Executor, meter metric.Meter) *MeteredExecutor {
	// Create instruments once at construction time. OTel instruments are
	// safe for concurrent use; on error the API returns noop instruments
	// so the wrapper degrades gracefully.
	duration, dErr := meter.Float64Histogram(
		"tap.execute.duration",
		metric.WithDescription("Duration of pipeline execution in seconds"),
		metric.WithUnit("s"),
	)
	_ = dErr // noop fallback guaranteed by OTel API contract

	executions, eErr := meter.Int64Counter(
		"tap.execute.total",
		metric.WithDescription("Total number of pipeline executions"),
		metric.WithUnit("{execution}"),
	)
	_ = eErr // noop fallback guaranteed by OTel API contract

	hookFailures, hErr := meter.Int64Counter(
		"tap.hook.failures",
		metric.WithDescription("Total number of collected hook failures"),
		metric.WithUnit("{failure}"),
	)
	_ = hErr // noop fallback guaranteed by OTel API contract

	return &MeteredExecutor{
		inner:        inner,
		duration:     duration,
		executions:   executions,
		hookFailures: hookFailures,
	}
}

// Execute runs the wrapped executor and records duration, execution count,
// and hook failure count.
func (m *MeteredExecutor) Execute(ctx context.Context, op pipeline.Op, payload []byte) (*pipeline.Result, error) {
	start := time.Now()
	res, err := m.inner.Execute(ctx, op, payload)
	elapsed := time.Since(start).Seconds()

	status := "ok"
	if err != nil {
		status = "error"
	}

	attrs := metric.WithAttributes(attribute.String("status", status))
	m.duration.Record(ctx, elapsed, attrs)
	m.executions.Add(ctx, 1, attrs)

	if res != nil && len(res.Diagnostics) > 0 {
		m.hookFailures.Add(ctx, int64(len(res.Diagnostics)))
	}

	return res, err
}
