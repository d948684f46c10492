package analysis

import (
	"context"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/geosiss/borehole/geoerr"
)

// Embedding selects how a node's signals are laid out in two dimensions for
// connection graphs.
type Embedding string

const (
	// EmbeddingMDS uses classical (Torgerson) multidimensional scaling of
	// the correlation-distance matrix. This is the default: the zero
	// value of Embedding embeds as MDS. The dense eigendecomposition is
	// deterministic, so layouts are reproducible run to run.
	EmbeddingMDS Embedding = "mds"

	// EmbeddingPCA projects each signal, viewed as a point in sample
	// space, onto the first two principal components.
	EmbeddingPCA Embedding = "pca"
)

// IsValid returns true if the embedding method is recognized.
func (e Embedding) IsValid() bool {
	switch e {
	case EmbeddingMDS, EmbeddingPCA:
		return true
	default:
		return false
	}
}

// String returns the string representation of the embedding method.
func (e Embedding) String() string {
	return string(e)
}

// ParseEmbedding parses a string into an Embedding value.
// Returns an error if the string is not a valid embedding method.
func ParseEmbedding(s string) (Embedding, error) {
	e := Embedding(s)
	if !e.IsValid() {
		return "", geoerr.NewConversionError("ParseEmbedding",
			fmt.Errorf("%w: unknown embedding method %q", geoerr.ErrUnsupportedConversion, s))
	}
	return e, nil
}

// AllEmbeddings returns all valid embedding methods.
func AllEmbeddings() []Embedding {
	return []Embedding{EmbeddingMDS, EmbeddingPCA}
}

// Embed lays the node's signals out in two dimensions, one row of the
// result per key. The zero Embedding embeds as MDS; an unrecognized method
// fails with a geoerr.KindConversion error naming the method string. The
// node must hold at least two signals.
func Embed(ctx context.Context, n *Node, method Embedding) (*mat.Dense, error) {
	const op = "Embed"

	if n == nil {
		return nil, geoerr.NewValidationError(op, fmt.Errorf("node must not be nil"))
	}
	if len(n.keys) < 2 {
		return nil, geoerr.NewValidationError(op,
			fmt.Errorf("embedding needs at least two signals, node has %d", len(n.keys)))
	}
	if err := ctx.Err(); err != nil {
		return nil, geoerr.NewInternalError(op, err)
	}

	switch method {
	case EmbeddingMDS, "":
		corr, err := Correlation(n)
		if err != nil {
			return nil, err
		}
		return embedMDS(corr)
	case EmbeddingPCA:
		return embedPCA(n)
	default:
		return nil, geoerr.NewConversionError(op,
			fmt.Errorf("%w: unknown embedding method %q",
				geoerr.ErrUnsupportedConversion, string(method)))
	}
}

// embedMDS runs classical multidimensional scaling over correlation
// distance: double-centre the squared distance matrix and read coordinates
// off the two leading eigenpairs.
func embedMDS(corr *CorrelationMatrix) (*mat.Dense, error) {
	const op = "Embed"

	k := corr.Dim()
	b := mat.NewSymDense(k, nil)
	rowMean := make([]float64, k)
	var grandMean float64
	sq := func(i, j int) float64 {
		d := corr.Distance(i, j)
		return d * d
	}
	for i := 0; i < k; i++ {
		for j := 0; j < k; j++ {
			rowMean[i] += sq(i, j)
		}
		rowMean[i] /= float64(k)
		grandMean += rowMean[i]
	}
	grandMean /= float64(k)
	for i := 0; i < k; i++ {
		for j := i; j < k; j++ {
			b.SetSym(i, j, -0.5*(sq(i, j)-rowMean[i]-rowMean[j]+grandMean))
		}
	}

	var eig mat.EigenSym
	if !eig.Factorize(b, true) {
		return nil, geoerr.NewInternalError(op,
			fmt.Errorf("eigendecomposition of the centred distance matrix failed"))
	}
	values := eig.Values(nil)
	var vectors mat.Dense
	eig.VectorsTo(&vectors)

	// Eigenvalues come back ascending; the two leading components sit at
	// the end. Non-positive eigenvalues contribute a zero axis.
	coords := mat.NewDense(k, 2, nil)
	for axis := 0; axis < 2; axis++ {
		idx := k - 1 - axis
		if idx < 0 || values[idx] <= 0 {
			continue
		}
		scale := math.Sqrt(values[idx])
		for i := 0; i < k; i++ {
			coords.Set(i, axis, vectors.At(i, idx)*scale)
		}
	}
	return coords, nil
}

// embedPCA projects each signal, as a point in sample space, onto the first
// two principal components of the signal cloud.
func embedPCA(n *Node) (*mat.Dense, error) {
	const op = "Embed"

	// One row per signal: the transpose of the node's working matrix.
	k := len(n.keys)
	samples := n.Size()
	points := mat.NewDense(k, samples, nil)
	for j := 0; j < k; j++ {
		for i := 0; i < samples; i++ {
			points.Set(j, i, n.data.At(i, j))
		}
	}

	var pc stat.PC
	if !pc.PrincipalComponents(points, nil) {
		return nil, geoerr.NewInternalError(op,
			fmt.Errorf("principal component decomposition failed"))
	}
	var vectors mat.Dense
	pc.VectorsTo(&vectors)

	// Centre the points, then project onto the two leading components.
	means := make([]float64, samples)
	for i := 0; i < samples; i++ {
		means[i] = stat.Mean(mat.Col(nil, i, points), nil)
	}
	centred := mat.NewDense(k, samples, nil)
	for j := 0; j < k; j++ {
		for i := 0; i < samples; i++ {
			centred.Set(j, i, points.At(j, i)-means[i])
		}
	}

	_, ncomp := vectors.Dims()
	axes := 2
	if ncomp < axes {
		axes = ncomp
	}
	coords := mat.NewDense(k, 2, nil)
	var projected mat.Dense
	projected.Mul(centred, vectors.Slice(0, samples, 0, axes))
	for j := 0; j < k; j++ {
		for axis := 0; axis < axes; axis++ {
			coords.Set(j, axis, projected.At(j, axis))
		}
	}
	return coords, nil
}
