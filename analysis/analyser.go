package analysis

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/geosiss/borehole/geoerr"
)

// Analyser runs the standard exploratory pipeline over a node: correlation
// structure, clustering, 2-D embedding and per-cluster eigensignals.
//
// An Analyser is cheap to construct and safe to reuse across nodes.
type Analyser struct {
	logger             *slog.Logger
	tracer             trace.Tracer
	meter              metric.Meter
	metrics            *otelMetrics
	threshold          float64
	embedding          Embedding
	maxClusterDistance float64
}

// Option configures an Analyser.
type Option func(*Analyser)

// WithLogger sets the analyser's logger. A nil logger falls back to
// slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(a *Analyser) {
		a.logger = logger
	}
}

// WithTracer enables OpenTelemetry spans around analysis runs.
func WithTracer(tracer trace.Tracer) Option {
	return func(a *Analyser) {
		a.tracer = tracer
	}
}

// WithMeter enables OpenTelemetry metrics for analysis runs.
func WithMeter(meter metric.Meter) Option {
	return func(a *Analyser) {
		a.meter = meter
	}
}

// WithCorrelationThreshold masks correlation magnitudes below the threshold
// when building connection structure. Defaults to 0.4.
func WithCorrelationThreshold(threshold float64) Option {
	return func(a *Analyser) {
		a.threshold = threshold
	}
}

// WithEmbedding selects the 2-D embedding method. Defaults to MDS.
func WithEmbedding(method Embedding) Option {
	return func(a *Analyser) {
		a.embedding = method
	}
}

// WithMaxClusterDistance sets the clustering distance cut. Defaults to 0.6.
func WithMaxClusterDistance(d float64) Option {
	return func(a *Analyser) {
		a.maxClusterDistance = d
	}
}

// New creates an analyser with the given options.
func New(opts ...Option) (*Analyser, error) {
	a := &Analyser{
		logger:             slog.Default(),
		threshold:          0.4,
		embedding:          EmbeddingMDS,
		maxClusterDistance: 0.6,
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.logger == nil {
		a.logger = slog.Default()
	}
	if !a.embedding.IsValid() {
		return nil, geoerr.NewConversionError("analysis.New",
			fmt.Errorf("%w: unknown embedding method %q",
				geoerr.ErrUnsupportedConversion, string(a.embedding)))
	}

	metrics, err := a.initOTelMetrics()
	if err != nil {
		return nil, geoerr.NewInternalError("analysis.New", err)
	}
	a.metrics = metrics
	return a, nil
}

// Products is the output of one analysis run.
type Products struct {
	// RunID uniquely identifies the run for logs and traces.
	RunID string

	// Correlation is the full Pearson correlation matrix of the node's
	// signals.
	Correlation *CorrelationMatrix

	// Connections is the correlation matrix with magnitudes below the
	// analyser's threshold masked to zero.
	Connections *CorrelationMatrix

	// Clustering groups correlated signals.
	Clustering *Clustering

	// Embedding lays the signals out in two dimensions, one row per key.
	Embedding *mat.Dense

	// Eigensignals holds one representative depth series per cluster,
	// indexed by cluster label: the first principal component of the
	// cluster's standardized signals.
	Eigensignals map[int][]float64

	// Duration is the wall-clock cost of the run.
	Duration time.Duration
}

// Run executes the exploratory pipeline over a node.
func (a *Analyser) Run(ctx context.Context, n *Node) (*Products, error) {
	const op = "Analyser.Run"

	if n == nil {
		return nil, geoerr.NewValidationError(op, fmt.Errorf("node must not be nil"))
	}

	runID := uuid.New().String()
	start := time.Now()

	corr, err := Correlation(n)
	if err != nil {
		return nil, err
	}
	connections := corr.Mask(a.threshold)

	clustering, err := Cluster(connections, ClusterOptions{MaxDistance: a.maxClusterDistance})
	if err != nil {
		return nil, err
	}

	coords, err := Embed(ctx, n, a.embedding)
	if err != nil {
		return nil, err
	}

	eigensignals, err := eigensignals(n, clustering)
	if err != nil {
		return nil, err
	}

	products := &Products{
		RunID:        runID,
		Correlation:  corr,
		Connections:  connections,
		Clustering:   clustering,
		Embedding:    coords,
		Eigensignals: eigensignals,
		Duration:     time.Since(start),
	}

	a.logger.Debug("analysis run complete",
		"run_id", runID,
		"node", n.Name(),
		"signals", len(n.Keys()),
		"clusters", clustering.NumClusters(),
		"duration", products.Duration)
	a.recordOTelRun(ctx, n, products)

	return products, nil
}

// eigensignals extracts one representative series per cluster: the first
// principal component score of the cluster's standardized signals. A
// single-signal cluster's eigensignal is its standardized signal.
func eigensignals(n *Node, clustering *Clustering) (map[int][]float64, error) {
	const op = "Analyser.Run"

	out := make(map[int][]float64, clustering.NumClusters())
	for label, group := range clustering.Groups() {
		if len(group) == 1 {
			signal, err := n.Signal(group[0])
			if err != nil {
				return nil, err
			}
			out[label] = Standardize(signal)
			continue
		}

		cols := mat.NewDense(n.Size(), len(group), nil)
		for j, key := range group {
			signal, err := n.Signal(key)
			if err != nil {
				return nil, err
			}
			for i, v := range Standardize(signal) {
				cols.Set(i, j, v)
			}
		}

		var pc stat.PC
		if !pc.PrincipalComponents(cols, nil) {
			return nil, geoerr.NewInternalError(op,
				fmt.Errorf("principal component decomposition failed for cluster %d", label))
		}
		var vectors mat.Dense
		pc.VectorsTo(&vectors)

		score := make([]float64, n.Size())
		for i := 0; i < n.Size(); i++ {
			var sum float64
			for j := range group {
				sum += cols.At(i, j) * vectors.At(j, 0)
			}
			score[i] = sum
		}
		out[label] = score
	}
	return out, nil
}
