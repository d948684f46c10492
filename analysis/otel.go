package analysis

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// otelMetrics holds the OpenTelemetry metric instruments for the analyser.
// These are created once during construction and reused for all runs.
type otelMetrics struct {
	// durationHistogram records analysis run duration in milliseconds
	durationHistogram metric.Float64Histogram

	// clusterHistogram records the number of clusters found per run
	clusterHistogram metric.Int64Histogram

	// runCounter increments for each analysis run performed
	runCounter metric.Int64Counter
}

// initOTelMetrics creates and initializes all OpenTelemetry metric
// instruments. This is called once when New is invoked with a meter.
func (a *Analyser) initOTelMetrics() (*otelMetrics, error) {
	if a.meter == nil {
		return nil, nil
	}

	metrics := &otelMetrics{}
	var err error

	metrics.durationHistogram, err = a.meter.Float64Histogram(
		"analysis.duration",
		metric.WithDescription("Analysis run duration in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, fmt.Errorf("create duration histogram: %w", err)
	}

	metrics.clusterHistogram, err = a.meter.Int64Histogram(
		"analysis.clusters",
		metric.WithDescription("Number of signal clusters found per analysis run"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return nil, fmt.Errorf("create cluster histogram: %w", err)
	}

	metrics.runCounter, err = a.meter.Int64Counter(
		"analysis.runs",
		metric.WithDescription("Number of analysis runs performed"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return nil, fmt.Errorf("create run counter: %w", err)
	}

	return metrics, nil
}

// recordOTelRun creates an OpenTelemetry span and records metrics for a
// completed analysis run. If OTel is not configured (nil tracer/meter),
// this method returns silently.
func (a *Analyser) recordOTelRun(ctx context.Context, n *Node, products *Products) {
	if a.tracer == nil && a.meter == nil {
		return
	}

	if a.tracer != nil {
		_, span := a.tracer.Start(ctx, "analysis.run")
		span.SetAttributes(
			attribute.String("run.id", products.RunID),
			attribute.String("node.name", n.Name()),
			attribute.Int("node.signals", len(n.Keys())),
			attribute.Int("node.samples", n.Size()),
			attribute.Int("analysis.clusters", products.Clustering.NumClusters()),
			attribute.Float64("analysis.duration_ms", float64(products.Duration.Milliseconds())),
		)
		span.End()
	}

	if a.metrics != nil {
		opts := metric.WithAttributes(
			attribute.String("node.name", n.Name()),
		)
		a.metrics.durationHistogram.Record(ctx,
			float64(products.Duration.Milliseconds()), opts)
		a.metrics.clusterHistogram.Record(ctx,
			int64(products.Clustering.NumClusters()), opts)
		a.metrics.runCounter.Add(ctx, 1, opts)
	}
}
