package metrics_test

import (
	"context"
	"escaperoom/pkg/metrics"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

func newRecorder(t *testing.T) (*metrics.Recorder, *sdkmetric.ManualReader) {
	t.Helper()

	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	t.Cleanup(func() { _ = mp.Shutdown(context.Background()) })

	r, err := metrics.NewRecorder(mp.Meter("test"))
	require.NoError(t, err)

	return r, reader
}

func collect(t *testing.T, reader *sdkmetric.ManualReader) map[string]metricdata.Metrics {
	t.Helper()

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))

	out := map[string]metricdata.Metrics{}
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			out[m.Name] = m
		}
	}

	return out
}

func TestRecorder_LevelChecked(t *testing.T) {
	r, reader := newRecorder(t)
	ctx := context.Background()

	r.LevelChecked(ctx, 1, true)
	r.LevelChecked(ctx, 2, false)
	r.LevelChecked(ctx, 2, false)

	got := collect(t, reader)
	sum, ok := got["escaperoom.level.checks"].Data.(metricdata.Sum[int64])
	require.True(t, ok, "expected int64 sum")

	counts := map[attribute.Distinct]int64{}
	for _, dp := range sum.DataPoints {
		counts[dp.Attributes.Equivalent()] = dp.Value
	}
	failedTwo := attribute.NewSet(attribute.Int("level", 2), attribute.Bool("passed", false))
	passedOne := attribute.NewSet(attribute.Int("level", 1), attribute.Bool("passed", true))
	require.Equal(t, int64(2), counts[failedTwo.Equivalent()])
	require.Equal(t, int64(1), counts[passedOne.Equivalent()])
}

func TestRecorder_ProbeFinished(t *testing.T) {
	r, reader := newRecorder(t)

	r.ProbeFinished(context.Background(), "api", "timeout", 2*time.Second)

	got := collect(t, reader)
	hist, ok := got["escaperoom.probe.duration"].Data.(metricdata.Histogram[float64])
	require.True(t, ok, "expected float64 histogram")
	require.Len(t, hist.DataPoints, 1)
	require.Equal(t, uint64(1), hist.DataPoints[0].Count)
	require.InDelta(t, 2.0, hist.DataPoints[0].Sum, 1e-9)
	require.Equal(t, metrics.DefaultBuckets, hist.DataPoints[0].Bounds)
}

func TestRecorder_NilIsSafe(t *testing.T) {
	var r *metrics.Recorder
	require.NotPanics(t, func() {
		r.LevelChecked(context.Background(), 1, true)
		r.ProbeFinished(context.Background(), "game", "success", time.Millisecond)
	})
	require.NotPanics(t, func() {
		metrics.NewNoop().LevelChecked(context.Background(), 3, false)
	})
}
