package analysis

import (
	"context"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	"github.com/geosiss/borehole/geoerr"
)

func TestNewDefaults(t *testing.T) {
	a, err := New()
	require.NoError(t, err)

	assert.Equal(t, 0.4, a.threshold)
	assert.Equal(t, EmbeddingMDS, a.embedding)
	assert.Equal(t, 0.6, a.maxClusterDistance)
	assert.NotNil(t, a.logger)
	assert.Nil(t, a.metrics)
}

func TestNewInvalidEmbedding(t *testing.T) {
	_, err := New(WithEmbedding(Embedding("isomap")))
	require.Error(t, err)
	assert.True(t, geoerr.IsKind(err, geoerr.KindConversion))
}

func TestNewNilLoggerFallsBack(t *testing.T) {
	a, err := New(WithLogger(nil))
	require.NoError(t, err)
	assert.NotNil(t, a.logger)
}

func TestAnalyserRun(t *testing.T) {
	a, err := New(
		WithLogger(slog.Default()),
		WithCorrelationThreshold(0.5),
		WithMaxClusterDistance(0.1),
	)
	require.NoError(t, err)

	node := testNode(t, 64)
	products, err := a.Run(context.Background(), node)
	require.NoError(t, err)

	_, err = uuid.Parse(products.RunID)
	assert.NoError(t, err, "run id should be a UUID")
	assert.Positive(t, products.Duration)

	require.NotNil(t, products.Correlation)
	require.NotNil(t, products.Connections)

	// The connection matrix is the masked correlation matrix.
	r, err := products.Connections.ByKey("gamma", "noise")
	require.NoError(t, err)
	assert.Zero(t, r)
	r, err = products.Correlation.ByKey("gamma", "noise")
	require.NoError(t, err)
	assert.NotZero(t, r)

	require.NotNil(t, products.Clustering)
	assert.Equal(t, 2, products.Clustering.NumClusters())

	rows, cols := products.Embedding.Dims()
	assert.Equal(t, len(node.Keys()), rows)
	assert.Equal(t, 2, cols)
}

func TestAnalyserRunEigensignals(t *testing.T) {
	a, err := New(WithMaxClusterDistance(0.1))
	require.NoError(t, err)

	node := testNode(t, 64)
	products, err := a.Run(context.Background(), node)
	require.NoError(t, err)

	require.Len(t, products.Eigensignals, products.Clustering.NumClusters())
	for label, signal := range products.Eigensignals {
		assert.Len(t, signal, node.Size(), "cluster %d", label)
	}

	// The singleton noise cluster's eigensignal is its standardized signal.
	noiseLabel, err := products.Clustering.ByKey("noise")
	require.NoError(t, err)
	noise, err := node.Signal("noise")
	require.NoError(t, err)
	assert.Equal(t, Standardize(noise), products.Eigensignals[noiseLabel])
}

func TestAnalyserRunNilNode(t *testing.T) {
	a, err := New()
	require.NoError(t, err)

	_, err = a.Run(context.Background(), nil)
	require.Error(t, err)
	assert.True(t, geoerr.IsKind(err, geoerr.KindValidation))
}

func TestAnalyserRunRecordsMetrics(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	t.Cleanup(func() { _ = provider.Shutdown(context.Background()) })

	a, err := New(
		WithMeter(provider.Meter("analysis-test")),
		WithMaxClusterDistance(0.1),
	)
	require.NoError(t, err)
	require.NotNil(t, a.metrics)

	_, err = a.Run(context.Background(), testNode(t, 64))
	require.NoError(t, err)

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))
	require.Len(t, rm.ScopeMetrics, 1)

	byName := make(map[string]metricdata.Metrics)
	for _, m := range rm.ScopeMetrics[0].Metrics {
		byName[m.Name] = m
	}

	runs, ok := byName["analysis.runs"]
	require.True(t, ok, "run counter should be recorded")
	sum, ok := runs.Data.(metricdata.Sum[int64])
	require.True(t, ok)
	require.Len(t, sum.DataPoints, 1)
	assert.Equal(t, int64(1), sum.DataPoints[0].Value)

	clusters, ok := byName["analysis.clusters"]
	require.True(t, ok, "cluster histogram should be recorded")
	hist, ok := clusters.Data.(metricdata.Histogram[int64])
	require.True(t, ok)
	require.Len(t, hist.DataPoints, 1)
	assert.Equal(t, int64(2), hist.DataPoints[0].Sum)

	_, ok = byName["analysis.duration"]
	assert.True(t, ok, "duration histogram should be recorded")
}
