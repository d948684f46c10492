package plot

import (
	"fmt"
	"image/color"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/geosiss/borehole/analysis"
	"github.com/geosiss/borehole/geoerr"
)

var edgeColor = color.NRGBA{R: 0x60, G: 0x60, B: 0x60, A: 0x90}

// ConnectionGraph draws an analysis run's connection structure: signals at
// their embedded 2-D positions, coloured by cluster, joined by edges whose
// width grows with the magnitude of the surviving correlation, each point
// carrying a floating name label nudged away from its nearest neighbour.
func ConnectionGraph(products *analysis.Products, opts ...Option) (*plot.Plot, error) {
	const op = "ConnectionGraph"

	if products == nil || products.Connections == nil || products.Embedding == nil ||
		products.Clustering == nil {
		return nil, geoerr.NewValidationError(op,
			fmt.Errorf("products must carry connections, clustering and an embedding"))
	}

	conn := products.Connections
	keys := conn.Keys()
	rows, cols := products.Embedding.Dims()
	if rows != len(keys) || cols != 2 {
		return nil, geoerr.NewValidationError(op,
			fmt.Errorf("embedding is %dx%d, want %dx2", rows, cols, len(keys))).
			WithContext(map[string]any{"keys": len(keys)})
	}

	p := plot.New()
	p.Title.Text = "Signal connections"
	p.HideAxes()

	// Edges first so the glyphs draw on top.
	for i := 0; i < len(keys); i++ {
		for j := i + 1; j < len(keys); j++ {
			r := conn.At(i, j)
			if r == 0 {
				continue
			}
			edge, err := plotter.NewLine(plotter.XYs{
				{X: products.Embedding.At(i, 0), Y: products.Embedding.At(i, 1)},
				{X: products.Embedding.At(j, 0), Y: products.Embedding.At(j, 1)},
			})
			if err != nil {
				return nil, geoerr.NewInternalError(op, err)
			}
			edge.Color = edgeColor
			edge.Width = vg.Points(0.5 + 2.5*math.Abs(r))
			p.Add(edge)
		}
	}

	// One scatter per cluster so each gets its own colour and legend entry.
	labels := products.Clustering.AsVector()
	for cluster := 0; cluster < products.Clustering.NumClusters(); cluster++ {
		var pts plotter.XYs
		for i, label := range labels {
			if label == cluster {
				pts = append(pts, plotter.XY{
					X: products.Embedding.At(i, 0),
					Y: products.Embedding.At(i, 1),
				})
			}
		}
		scatter, err := plotter.NewScatter(pts)
		if err != nil {
			return nil, geoerr.NewInternalError(op, err)
		}
		scatter.GlyphStyle = draw.GlyphStyle{
			Color:  plotutil.Color(cluster),
			Radius: vg.Points(5),
			Shape:  draw.CircleGlyph{},
		}
		p.Add(scatter)
		p.Legend.Add(fmt.Sprintf("cluster %d", cluster), scatter)
	}

	names, err := plotter.NewLabels(floatLabels(products.Embedding, keys))
	if err != nil {
		return nil, geoerr.NewInternalError(op, err)
	}
	p.Add(names)

	return p, nil
}

// floatLabels places each key's label at its embedded position, nudged
// directly away from the nearest neighbouring point so labels of close
// points spread apart instead of stacking.
func floatLabels(coords interface{ At(i, j int) float64 }, keys []string) plotter.XYLabels {
	out := plotter.XYLabels{
		XYs:    make(plotter.XYs, len(keys)),
		Labels: append([]string(nil), keys...),
	}

	// Offset scale relative to the embedding's extent.
	var span float64
	for i := range keys {
		for j := range keys {
			dx := coords.At(i, 0) - coords.At(j, 0)
			dy := coords.At(i, 1) - coords.At(j, 1)
			span = math.Max(span, math.Hypot(dx, dy))
		}
	}
	offset := span * 0.04

	for i := range keys {
		x, y := coords.At(i, 0), coords.At(i, 1)
		ox, oy := offset, offset

		nearest, best := -1, math.Inf(1)
		for j := range keys {
			if j == i {
				continue
			}
			d := math.Hypot(coords.At(j, 0)-x, coords.At(j, 1)-y)
			if d < best {
				nearest, best = j, d
			}
		}
		if nearest >= 0 && best > 0 {
			ox = (x - coords.At(nearest, 0)) / best * offset
			oy = (y - coords.At(nearest, 1)) / best * offset
		}
		out.XYs[i] = plotter.XY{X: x + ox, Y: y + oy}
	}
	return out
}
