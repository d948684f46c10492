package plot

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette/moreland"
	"gonum.org/v1/plot/plotter"

	"github.com/geosiss/borehole/domain"
	"github.com/geosiss/borehole/geoerr"
)

// Variable draws a transform domain's coefficients as an image: depth along
// X, analysis scale or spatial frequency along Y. Wavelet coefficients use
// a diverging palette symmetric about zero; spectral power uses a
// sequential one.
func Variable(dom domain.Domain, opts ...Option) (*plot.Plot, error) {
	const op = "Variable"

	s := newSettings(opts...)

	var (
		grid   matrixGrid
		title  string
		yLabel string
		hm     *plotter.HeatMap
	)
	switch d := dom.(type) {
	case *domain.WaveletDomain:
		grid = matrixGrid{x: d.Depths(), y: d.Scales(), z: d.Coefficients()}
		title = fmt.Sprintf("Wavelet coefficients: %s", d.Source())
		yLabel = "Scale (m)"

		limit := matAbsMax(d.Coefficients())
		if limit == 0 {
			limit = 1
		}
		cm := moreland.SmoothBlueRed()
		cm.SetMin(-limit)
		cm.SetMax(limit)
		hm = plotter.NewHeatMap(grid, cm.Palette(s.divisions))
		hm.Min = -limit
		hm.Max = limit

	case *domain.SpectralDomain:
		grid = matrixGrid{x: d.Depths(), y: d.Frequencies(), z: d.Power()}
		title = fmt.Sprintf("Spectral power: %s", d.Source())
		yLabel = "Frequency (cycles/m)"

		limit := matAbsMax(d.Power())
		if limit == 0 {
			limit = 1
		}
		cm := moreland.Kindlmann()
		cm.SetMin(0)
		cm.SetMax(limit)
		hm = plotter.NewHeatMap(grid, cm.Palette(s.divisions))
		hm.Min = 0
		hm.Max = limit

	case nil:
		return nil, geoerr.NewValidationError(op, fmt.Errorf("domain must not be nil"))
	default:
		return nil, geoerr.NewValidationError(op,
			fmt.Errorf("domain %s is %s; coefficient images need a wavelet or spectral domain",
				dom.Name(), dom.Kind()))
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "Depth (m)"
	p.Y.Label.Text = yLabel
	p.Add(hm)
	return p, nil
}

// matrixGrid adapts a row-per-Y, column-per-X matrix to plotter.GridXYZ.
type matrixGrid struct {
	x, y []float64
	z    *mat.Dense
}

func (g matrixGrid) Dims() (int, int)       { return len(g.x), len(g.y) }
func (g matrixGrid) Z(col, row int) float64 { return g.z.At(row, col) }
func (g matrixGrid) X(col int) float64      { return g.x[col] }
func (g matrixGrid) Y(row int) float64      { return g.y[row] }

func matAbsMax(m *mat.Dense) float64 {
	rows, cols := m.Dims()
	var max float64
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			if v := math.Abs(m.At(i, j)); v > max {
				max = v
			}
		}
	}
	return max
}
