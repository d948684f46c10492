package analysis

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/geosiss/borehole/geoerr"
)

// CorrelationMatrix holds pairwise Pearson correlations between a node's
// signals, keyed by property name.
type CorrelationMatrix struct {
	keys []string
	m    *mat.SymDense
}

// Correlation computes the Pearson correlation matrix of a node's signals.
// The node must hold at least two depth samples.
func Correlation(n *Node) (*CorrelationMatrix, error) {
	const op = "Correlation"

	if n == nil {
		return nil, geoerr.NewValidationError(op, fmt.Errorf("node must not be nil"))
	}
	if n.Size() < 2 {
		return nil, geoerr.NewValidationError(op,
			fmt.Errorf("correlation needs at least two samples, node has %d", n.Size()))
	}

	m := mat.NewSymDense(len(n.keys), nil)
	stat.CorrelationMatrix(m, n.data, nil)
	return &CorrelationMatrix{keys: append([]string(nil), n.keys...), m: m}, nil
}

// Keys returns the property names in matrix order.
func (c *CorrelationMatrix) Keys() []string { return c.keys }

// Dim returns the matrix order.
func (c *CorrelationMatrix) Dim() int { return len(c.keys) }

// At returns the correlation between the signals at positions i and j.
func (c *CorrelationMatrix) At(i, j int) float64 { return c.m.At(i, j) }

// ByKey returns the correlation between two named signals.
func (c *CorrelationMatrix) ByKey(a, b string) (float64, error) {
	ai, bi := c.index(a), c.index(b)
	if ai < 0 {
		return 0, geoerr.NewNotFoundError("CorrelationMatrix.ByKey",
			fmt.Errorf("%w: %s", geoerr.ErrPropertyNotFound, a))
	}
	if bi < 0 {
		return 0, geoerr.NewNotFoundError("CorrelationMatrix.ByKey",
			fmt.Errorf("%w: %s", geoerr.ErrPropertyNotFound, b))
	}
	return c.m.At(ai, bi), nil
}

// Matrix returns the underlying symmetric matrix. Callers must treat it as
// read-only.
func (c *CorrelationMatrix) Matrix() *mat.SymDense { return c.m }

// Mask returns a new matrix with every off-diagonal entry whose magnitude
// falls below the threshold zeroed. The diagonal is kept, so the result
// remains usable as a connection structure with self-edges.
func (c *CorrelationMatrix) Mask(threshold float64) *CorrelationMatrix {
	k := len(c.keys)
	masked := mat.NewSymDense(k, nil)
	for i := 0; i < k; i++ {
		masked.SetSym(i, i, c.m.At(i, i))
		for j := i + 1; j < k; j++ {
			if r := c.m.At(i, j); math.Abs(r) >= threshold {
				masked.SetSym(i, j, r)
			}
		}
	}
	return &CorrelationMatrix{keys: append([]string(nil), c.keys...), m: masked}
}

func (c *CorrelationMatrix) index(key string) int {
	for i, k := range c.keys {
		if k == key {
			return i
		}
	}
	return -1
}

// Distance returns the correlation distance 1-|r| between positions i and j.
func (c *CorrelationMatrix) Distance(i, j int) float64 {
	return 1 - math.Abs(c.m.At(i, j))
}
