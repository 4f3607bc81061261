// Package metrics holds the OpenTelemetry instruments recorded while
// evaluating the escape room.
package metrics

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
)

// DefaultBuckets provides a common set of histogram buckets in seconds that can
// be reused across the application for latency metrics.
var DefaultBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10} //nolint: gochecknoglobals

// Recorder records level outcomes and probe latencies. A nil *Recorder is valid
// and records nothing.
type Recorder struct {
	levelChecks   metric.Int64Counter
	probeDuration metric.Float64Histogram
}

// NewRecorder creates the instruments on meter.
func NewRecorder(meter metric.Meter) (*Recorder, error) {
	levelChecks, err := meter.Int64Counter("escaperoom.level.checks",
		metric.WithDescription("Number of evaluated levels by outcome"))
	if err != nil {
		return nil, fmt.Errorf("could not create level checks counter: %w", err)
	}

	probeDuration, err := meter.Float64Histogram("escaperoom.probe.duration",
		metric.WithDescription("Duration of downstream service probes"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(DefaultBuckets...))
	if err != nil {
		return nil, fmt.Errorf("could not create probe duration histogram: %w", err)
	}

	return &Recorder{
		levelChecks:   levelChecks,
		probeDuration: probeDuration,
	}, nil
}

// NewNoop returns a Recorder backed by a no-op meter.
func NewNoop() *Recorder {
	r, _ := NewRecorder(noop.NewMeterProvider().Meter("escaperoom"))

	return r
}

// LevelChecked records one evaluation of level.
func (r *Recorder) LevelChecked(ctx context.Context, level int, passed bool) {
	if r == nil {
		return
	}
	r.levelChecks.Add(ctx, 1, metric.WithAttributes(
		attribute.Int("level", level),
		attribute.Bool("passed", passed),
	))
}

// ProbeFinished records the duration of a probe against target.
func (r *Recorder) ProbeFinished(ctx context.Context, target, outcome string, d time.Duration) {
	if r == nil {
		return
	}
	r.probeDuration.Record(ctx, d.Seconds(), metric.WithAttributes(
		attribute.String("target", target),
		attribute.String("outcome", outcome),
	))
}
