package analysis

import (
	"fmt"

	"github.com/geosiss/borehole/geoerr"
)

// ClusterOptions configures correlation clustering.
type ClusterOptions struct {
	// MaxDistance is the single-linkage cut: two signals land in the same
	// cluster when they are connected by a chain of pairs whose
	// correlation distance 1-|r| stays at or below this value.
	// Defaults to 0.6.
	MaxDistance float64
}

// Validate applies defaults and rejects out-of-range values.
func (o *ClusterOptions) Validate() error {
	if o.MaxDistance == 0 {
		o.MaxDistance = 0.6
	}
	if o.MaxDistance < 0 || o.MaxDistance > 1 {
		return geoerr.NewValidationError("ClusterOptions.Validate",
			fmt.Errorf("max distance must be in [0, 1], got %g", o.MaxDistance))
	}
	return nil
}

// Clustering assigns each of a node's signals to a cluster. Cluster labels
// are dense, starting at 0, numbered in first-appearance order over the
// matrix's key order.
type Clustering struct {
	keys   []string
	labels []int
	count  int
}

// Cluster groups correlated signals by single-linkage agglomeration over
// correlation distance. With a fixed distance cut, single linkage reduces
// to connected components of the thresholded correlation graph, which is
// what this computes.
func Cluster(c *CorrelationMatrix, opts ClusterOptions) (*Clustering, error) {
	const op = "Cluster"

	if c == nil {
		return nil, geoerr.NewValidationError(op, fmt.Errorf("correlation matrix must not be nil"))
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	k := c.Dim()
	parent := make([]int, k)
	for i := range parent {
		parent[i] = i
	}
	var find func(int) int
	find = func(i int) int {
		if parent[i] != i {
			parent[i] = find(parent[i])
		}
		return parent[i]
	}

	for i := 0; i < k; i++ {
		for j := i + 1; j < k; j++ {
			if c.Distance(i, j) <= opts.MaxDistance {
				parent[find(i)] = find(j)
			}
		}
	}

	labels := make([]int, k)
	next := 0
	seen := make(map[int]int, k)
	for i := 0; i < k; i++ {
		root := find(i)
		label, ok := seen[root]
		if !ok {
			label = next
			seen[root] = label
			next++
		}
		labels[i] = label
	}

	return &Clustering{
		keys:   append([]string(nil), c.keys...),
		labels: labels,
		count:  next,
	}, nil
}

// NumClusters returns the number of clusters.
func (c *Clustering) NumClusters() int { return c.count }

// Keys returns the property names in label order.
func (c *Clustering) Keys() []string { return c.keys }

// AsVector returns the cluster label of each signal, in key order.
func (c *Clustering) AsVector() []int {
	return append([]int(nil), c.labels...)
}

// ByKey returns the cluster label of a named signal.
func (c *Clustering) ByKey(key string) (int, error) {
	for i, k := range c.keys {
		if k == key {
			return c.labels[i], nil
		}
	}
	return 0, geoerr.NewNotFoundError("Clustering.ByKey",
		fmt.Errorf("%w: %s", geoerr.ErrPropertyNotFound, key))
}

// Groups returns the signal names of each cluster, indexed by label.
func (c *Clustering) Groups() [][]string {
	groups := make([][]string, c.count)
	for i, label := range c.labels {
		groups[label] = append(groups[label], c.keys[i])
	}
	return groups
}
