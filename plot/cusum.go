package plot

import (
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"

	"github.com/geosiss/borehole/analysis"
	"github.com/geosiss/borehole/geoerr"
)

// CUSUMChart draws the normalized cumulative-sum curve of each key's signal
// against depth, one line per key with a legend. Shared extrema across
// curves point at hole-wide regime changes. With no keys given, every
// signal in the node is drawn.
func CUSUMChart(n *analysis.Node, keys ...string) (*plot.Plot, error) {
	const op = "CUSUMChart"

	if n == nil {
		return nil, geoerr.NewValidationError(op, fmt.Errorf("node must not be nil"))
	}
	if len(keys) == 0 {
		keys = n.Keys()
	}

	p := plot.New()
	p.Title.Text = fmt.Sprintf("CUSUM: %s", n.Name())
	p.X.Label.Text = "Depth (m)"
	p.Y.Label.Text = "Normalized CUSUM"
	p.Legend.Top = true

	depths := n.Depths()
	for i, key := range keys {
		signal, err := n.Signal(key)
		if err != nil {
			return nil, err
		}
		line, err := plotter.NewLine(orientedXYs(depths, analysis.CUSUM(signal), Horizontal))
		if err != nil {
			return nil, geoerr.NewInternalError(op, err)
		}
		line.Color = plotutil.Color(i)
		p.Add(line)
		p.Legend.Add(n.Label(key), line)
	}
	return p, nil
}
