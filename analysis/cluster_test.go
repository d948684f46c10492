package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCluster(t *testing.T) {
	corr, err := Correlation(testNode(t, 64))
	require.NoError(t, err)

	clustering, err := Cluster(corr, ClusterOptions{MaxDistance: 0.1})
	require.NoError(t, err)

	// gamma, density and porosity are one tight cluster; noise stands
	// alone.
	assert.Equal(t, 2, clustering.NumClusters())

	g, err := clustering.ByKey("gamma")
	require.NoError(t, err)
	d, err := clustering.ByKey("density")
	require.NoError(t, err)
	p, err := clustering.ByKey("porosity")
	require.NoError(t, err)
	n, err := clustering.ByKey("noise")
	require.NoError(t, err)

	assert.Equal(t, g, d)
	assert.Equal(t, g, p)
	assert.NotEqual(t, g, n)
}

func TestClusterGroups(t *testing.T) {
	corr, err := Correlation(testNode(t, 64))
	require.NoError(t, err)

	clustering, err := Cluster(corr, ClusterOptions{MaxDistance: 0.1})
	require.NoError(t, err)

	groups := clustering.Groups()
	require.Len(t, groups, 2)
	assert.ElementsMatch(t, []string{"gamma", "density", "porosity"}, groups[0])
	assert.ElementsMatch(t, []string{"noise"}, groups[1])

	vector := clustering.AsVector()
	assert.Equal(t, []int{0, 0, 0, 1}, vector)
}

func TestClusterEverythingTogether(t *testing.T) {
	corr, err := Correlation(testNode(t, 64))
	require.NoError(t, err)

	// A cut of 1.0 admits every pair.
	clustering, err := Cluster(corr, ClusterOptions{MaxDistance: 1.0})
	require.NoError(t, err)
	assert.Equal(t, 1, clustering.NumClusters())
}

func TestClusterOptionsValidate(t *testing.T) {
	var opts ClusterOptions
	require.NoError(t, opts.Validate())
	assert.Equal(t, 0.6, opts.MaxDistance)

	bad := ClusterOptions{MaxDistance: 1.5}
	assert.Error(t, bad.Validate())
	bad = ClusterOptions{MaxDistance: -0.2}
	assert.Error(t, bad.Validate())
}

func TestClusterByKeyUnknown(t *testing.T) {
	corr, err := Correlation(testNode(t, 64))
	require.NoError(t, err)
	clustering, err := Cluster(corr, ClusterOptions{})
	require.NoError(t, err)

	_, err = clustering.ByKey("missing")
	assert.Error(t, err)
}
