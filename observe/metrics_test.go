package observe_test

import (
	"context"
	"errors"
	"testing"

	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	"github.com/veldt/tap/observe"
	"github.com/veldt/tap/pipeline"
)

func setupTestMeter() (*sdkmetric.ManualReader, *sdkmetric.MeterProvider) {
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	return reader, mp
}

func collectMetrics(t *testing.T, reader *sdkmetric.ManualReader) metricdata.ResourceMetrics {
	t.Helper()
	var rm metricdata.ResourceMetrics
	if err := reader.Collect(context.Background(), &rm); err != nil {
		t.Fatalf("failed to collect metrics: %v", err)
	}
	return rm
}

func findMetric(rm metricdata.ResourceMetrics, name string) *metricdata.Metrics {
	for _, sm := range rm.ScopeMetrics {
		for i := range sm.Metrics {
			if sm.Metrics[i].Name == name {
				return &sm.Metrics[i]
			}
		}
	}
	return nil
}

func TestMetered_RecordsDuration(t *testing.T) {
	reader, mp := setupTestMeter()
	ex := observe.MeteredWithMeter(okExecutor(0), mp.Meter("test"))

	_, _ = ex.Execute(context.Background(), passOp, []byte("x"))

	rm := collectMetrics(t, reader)
	m := findMetric(rm, "tap.execute.duration")
	if m == nil {
		t.Fatal("tap.execute.duration metric not found")
	}

	hist, ok := m.Data.(metricdata.Histogram[float64])
	if !ok {
		t.Fatal("expected Histogram[float64] data type")
	}
	if len(hist.DataPoints) == 0 {
		t.Fatal("no data points recorded for duration")
	}
	if hist.DataPoints[0].Count != 1 {
		t.Errorf("expected count=1, got %d", hist.DataPoints[0].Count)
	}
}

func TestMetered_RecordsExecutions_Success(t *testing.T) {
	reader, mp := setupTestMeter()
	ex := observe.MeteredWithMeter(okExecutor(0), mp.Meter("test"))

	_, _ = ex.Execute(context.Background(), passOp, []byte("x"))

	rm := collectMetrics(t, reader)
	m := findMetric(rm, "tap.execute.total")
	if m == nil {
		t.Fatal("tap.execute.total metric not found")
	}

	sum, ok := m.Data.(metricdata.Sum[int64])
	if !ok {
		t.Fatal("expected Sum[int64] data type")
	}
	if len(sum.DataPoints) == 0 {
		t.Fatal("no data points recorded")
	}
	if sum.DataPoints[0].Value != 1 {
		t.Errorf("expected value=1, got %d", sum.DataPoints[0].Value)
	}

	// Verify status=ok attribute.
	found := false
	for _, attr := range sum.DataPoints[0].Attributes.ToSlice() {
		if string(attr.Key) == "status" && attr.Value.AsString() == "ok" {
			found = true
			break
		}
	}
	if !found {
		t.Error("expected status=ok attribute on executions counter")
	}
}

func TestMetered_RecordsExecutions_Error(t *testing.T) {
	reader, mp := setupTestMeter()
	inner := execFunc(func(ctx context.Context, op pipeline.Op, payload []byte) (*pipeline.Result, error) {
		return &pipeline.Result{State: pipeline.StateCoreFailed}, errors.New("boom")
	})
	ex := observe.MeteredWithMeter(inner, mp.Meter("test"))

	_, _ = ex.Execute(context.Background(), passOp, []byte("x"))

	rm := collectMetrics(t, reader)
	m := findMetric(rm, "tap.execute.total")
	if m == nil {
		t.Fatal("tap.execute.total metric not found")
	}

	sum, ok := m.Data.(metricdata.Sum[int64])
	if !ok {
		t.Fatal("expected Sum[int64] data type")
	}
	if len(sum.DataPoints) == 0 {
		t.Fatal("no data points recorded")
	}

	// Verify status=error attribute.
	found := false
	for _, attr := range sum.DataPoints[0].Attributes.ToSlice() {
		if string(attr.Key) == "status" && attr.Value.AsString() == "error" {
			found = true
			break
		}
	}
	if !found {
		t.Error("expected status=error attribute on executions counter")
	}
}

func TestMetered_RecordsHookFailures(t *testing.T) {
	reader, mp := setupTestMeter()
	ex := observe.MeteredWithMeter(okExecutor(3), mp.Meter("test"))

	_, _ = ex.Execute(context.Background(), passOp, []byte("x"))

	rm := collectMetrics(t, reader)
	m := findMetric(rm, "tap.hook.failures")
	if m == nil {
		t.Fatal("tap.hook.failures metric not found")
	}

	sum, ok := m.Data.(metricdata.Sum[int64])
	if !ok {
		t.Fatal("expected Sum[int64] data type")
	}
	if len(sum.DataPoints) == 0 {
		t.Fatal("no data points recorded")
	}
	if sum.DataPoints[0].Value != 3 {
		t.Errorf("expected value=3, got %d", sum.DataPoints[0].Value)
	}
}

func TestMetered_NoHookFailures_NoCounter(t *testing.T) {
	reader, mp := setupTestMeter()
	ex := observe.MeteredWithMeter(okExecutor(0), mp.Meter("test"))

	_, _ = ex.Execute(context.Background(), passOp, []byte("x"))

	rm := collectMetrics(t, reader)
	m := findMetric(rm, "tap.hook.failures")
	if m == nil {
		// Nothing recorded on the instrument yet, so the reader may omit it.
		return
	}
	sum, ok := m.Data.(metricdata.Sum[int64])
	if !ok {
		t.Fatal("expected Sum[int64] data type")
	}
	for _, dp := range sum.DataPoints {
		if dp.Value != 0 {
			t.Errorf("expected no hook failures recorded, got %d", dp.Value)
		}
	}
}

func TestMetered_DefaultNoopSafe(t *testing.T) {
	// Calling Metered() without a global provider should not panic.
	ex := observe.Metered(okExecutor(0))

	res, err := ex.Execute(context.Background(), passOp, []byte("x"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res == nil || res.State != pipeline.StateCompleted {
		t.Fatalf("expected completed result, got %+v", res)
	}
}
