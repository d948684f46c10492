package plot

import (
	"fmt"
	"strings"

	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"github.com/geosiss/borehole/analysis"
	"github.com/geosiss/borehole/geoerr"
)

// Eigensignals draws one panel per cluster: the cluster's representative
// eigensignal against depth, titled with the cluster's member signals.
func Eigensignals(n *analysis.Node, products *analysis.Products, opts ...Option) (*Grid, error) {
	const op = "Eigensignals"

	if n == nil {
		return nil, geoerr.NewValidationError(op, fmt.Errorf("node must not be nil"))
	}
	if products == nil || products.Clustering == nil || len(products.Eigensignals) == 0 {
		return nil, geoerr.NewValidationError(op,
			fmt.Errorf("products must carry clustering and eigensignals"))
	}

	groups := products.Clustering.Groups()
	opts = append([]Option{
		WithColumns(1),
		WithCellSize(6*vg.Inch, 2*vg.Inch),
	}, opts...)
	grid, err := NewGrid(len(groups), opts...)
	if err != nil {
		return nil, err
	}

	depths := n.Depths()
	for cluster, group := range groups {
		signal, ok := products.Eigensignals[cluster]
		if !ok {
			return nil, geoerr.NewInternalError(op,
				fmt.Errorf("no eigensignal for cluster %d", cluster))
		}
		if len(signal) != len(depths) {
			return nil, geoerr.NewValidationError(op,
				fmt.Errorf("eigensignal for cluster %d has %d samples, node has %d",
					cluster, len(signal), len(depths)))
		}

		p, err := grid.Plot(cluster)
		if err != nil {
			return nil, err
		}
		line, err := plotter.NewLine(orientedXYs(depths, signal, Horizontal))
		if err != nil {
			return nil, geoerr.NewInternalError(op, err)
		}
		line.Color = plotutil.Color(cluster)
		p.Add(line)
		p.Title.Text = fmt.Sprintf("Cluster %d: %s", cluster, strings.Join(group, ", "))
		p.X.Label.Text = "Depth (m)"
	}
	return grid, nil
}
