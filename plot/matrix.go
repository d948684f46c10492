package plot

import (
	"fmt"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette/moreland"
	"gonum.org/v1/plot/plotter"

	"github.com/geosiss/borehole/analysis"
	"github.com/geosiss/borehole/geoerr"
)

// ConnectionMatrix draws a correlation matrix as a heat map over a
// blue-white-red diverging palette pinned to [-1, 1], with the signal names
// as axis ticks. Masked matrices render their zeroed entries white, which
// makes the connection structure read at a glance.
func ConnectionMatrix(c *analysis.CorrelationMatrix, opts ...Option) (*plot.Plot, error) {
	const op = "ConnectionMatrix"

	if c == nil {
		return nil, geoerr.NewValidationError(op, fmt.Errorf("correlation matrix must not be nil"))
	}
	s := newSettings(opts...)

	cm := moreland.SmoothBlueRed()
	cm.SetMin(-1)
	cm.SetMax(1)
	hm := plotter.NewHeatMap(corrGrid{c}, cm.Palette(s.divisions))
	hm.Min = -1
	hm.Max = 1

	p := plot.New()
	p.Title.Text = "Signal correlations"
	p.Add(hm)

	ticks := make([]plot.Tick, c.Dim())
	for i, key := range c.Keys() {
		ticks[i] = plot.Tick{Value: float64(i), Label: key}
	}
	p.X.Tick.Marker = plot.ConstantTicks(ticks)
	p.Y.Tick.Marker = plot.ConstantTicks(ticks)
	p.X.Tick.Label.Rotation = -math.Pi / 2
	p.X.Tick.Label.XAlign = -0.5

	return p, nil
}

// corrGrid adapts a CorrelationMatrix to plotter.GridXYZ.
type corrGrid struct {
	c *analysis.CorrelationMatrix
}

func (g corrGrid) Dims() (int, int)   { return g.c.Dim(), g.c.Dim() }
func (g corrGrid) Z(col, row int) float64 { return g.c.At(row, col) }
func (g corrGrid) X(col int) float64  { return float64(col) }
func (g corrGrid) Y(row int) float64  { return float64(row) }
