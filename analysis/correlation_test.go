package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/geosiss/borehole/geoerr"
)

func testNode(t *testing.T, samples int, keys ...string) *Node {
	t.Helper()
	node, err := NewNode(testDomain(t, samples), keys...)
	require.NoError(t, err)
	return node
}

func TestCorrelation(t *testing.T) {
	corr, err := Correlation(testNode(t, 64))
	require.NoError(t, err)

	// gamma and density are a perfect linear pair, porosity the negation.
	r, err := corr.ByKey("gamma", "density")
	require.NoError(t, err)
	assert.InDelta(t, 1.0, r, 1e-9)

	r, err = corr.ByKey("gamma", "porosity")
	require.NoError(t, err)
	assert.InDelta(t, -1.0, r, 1e-9)
}

func TestCorrelationDiagonalAndSymmetry(t *testing.T) {
	corr, err := Correlation(testNode(t, 64))
	require.NoError(t, err)

	for i := 0; i < corr.Dim(); i++ {
		assert.InDelta(t, 1.0, corr.At(i, i), 1e-9)
		for j := 0; j < corr.Dim(); j++ {
			assert.Equal(t, corr.At(i, j), corr.At(j, i))
		}
	}
}

func TestCorrelationTooFewSamples(t *testing.T) {
	_, err := Correlation(testNode(t, 1))
	require.Error(t, err)
	assert.True(t, geoerr.IsKind(err, geoerr.KindValidation))
}

func TestCorrelationByKeyUnknown(t *testing.T) {
	corr, err := Correlation(testNode(t, 64))
	require.NoError(t, err)

	_, err = corr.ByKey("gamma", "missing")
	assert.ErrorIs(t, err, geoerr.ErrPropertyNotFound)
	_, err = corr.ByKey("missing", "gamma")
	assert.ErrorIs(t, err, geoerr.ErrPropertyNotFound)
}

func TestCorrelationMask(t *testing.T) {
	corr, err := Correlation(testNode(t, 64))
	require.NoError(t, err)

	masked := corr.Mask(0.9)

	// Strong pairs survive the mask.
	r, err := masked.ByKey("gamma", "density")
	require.NoError(t, err)
	assert.InDelta(t, 1.0, r, 1e-9)

	// Weak pairs are zeroed, the diagonal is kept.
	r, err = masked.ByKey("gamma", "noise")
	require.NoError(t, err)
	assert.Zero(t, r)
	for i := 0; i < masked.Dim(); i++ {
		assert.InDelta(t, 1.0, masked.At(i, i), 1e-9)
	}

	// The source matrix is untouched.
	r, err = corr.ByKey("gamma", "noise")
	require.NoError(t, err)
	assert.NotZero(t, r)
}

func TestCorrelationDistance(t *testing.T) {
	corr, err := Correlation(testNode(t, 64))
	require.NoError(t, err)

	// Distance is 1-|r|: zero for the perfect pairs, including the
	// anti-correlated one.
	gi, di, pi := 0, 1, 2
	assert.InDelta(t, 0.0, corr.Distance(gi, di), 1e-9)
	assert.InDelta(t, 0.0, corr.Distance(gi, pi), 1e-9)
	assert.InDelta(t, 0.0, corr.Distance(gi, gi), 1e-9)
}
