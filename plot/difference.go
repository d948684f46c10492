package plot

import (
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/geosiss/borehole/analysis"
	"github.com/geosiss/borehole/geoerr"
)

// Difference draws an observed signal against its expected values: the
// observed curve solid, the expected curve dashed, a translucent fill
// between them, and one residual tick per sample connecting the pair.
//
// A single expected value is broadcast across the domain; otherwise the
// expected series must match the domain length.
func Difference(p *plot.Plot, dom analysis.DepthDomain, observed string, expected []float64, orient Orientation) error {
	const op = "Difference"

	if p == nil {
		return geoerr.NewValidationError(op, fmt.Errorf("plot must not be nil"))
	}
	if dom == nil {
		return geoerr.NewValidationError(op, fmt.Errorf("domain must not be nil"))
	}
	if !orient.IsValid() {
		return geoerr.NewConversionError(op,
			fmt.Errorf("%w: unknown plot orientation %q",
				geoerr.ErrUnsupportedConversion, string(orient)))
	}
	prp, ok := dom.Property(observed)
	if !ok {
		return geoerr.NewNotFoundError(op,
			fmt.Errorf("%w: %s", geoerr.ErrPropertyNotFound, observed))
	}
	if !prp.IsNumeric() {
		return geoerr.NewValidationError(op,
			fmt.Errorf("property %q is categorical; difference plots need numeric values", observed))
	}

	depths := dom.Depths()
	switch len(expected) {
	case dom.Size():
	case 1:
		v := expected[0]
		expected = make([]float64, dom.Size())
		for i := range expected {
			expected[i] = v
		}
	default:
		return geoerr.NewValidationError(op,
			fmt.Errorf("expected series has %d values, domain has %d samples",
				len(expected), dom.Size())).
			WithContext(map[string]any{"expected": len(expected), "samples": dom.Size()})
	}

	// Fill between the curves: observed path forward, expected path back.
	fill := make(plotter.XYs, 0, 2*len(depths))
	fill = append(fill, orientedXYs(depths, prp.Values, orient)...)
	back := orientedXYs(depths, expected, orient)
	for i := len(back) - 1; i >= 0; i-- {
		fill = append(fill, back[i])
	}
	if poly, err := plotter.NewPolygon(fill); err == nil {
		poly.Color = residualFill
		poly.LineStyle.Width = 0
		p.Add(poly)
	}

	p.Add(&residualTicks{
		depths:   depths,
		observed: prp.Values,
		expected: expected,
		orient:   orient,
		style: draw.LineStyle{
			Color: residualColor,
			Width: vg.Points(0.5),
		},
	})

	obsLine, err := plotter.NewLine(orientedXYs(depths, prp.Values, orient))
	if err != nil {
		return geoerr.NewInternalError(op, err)
	}
	obsLine.Color = signalColor
	p.Add(obsLine)

	expLine, err := plotter.NewLine(orientedXYs(depths, expected, orient))
	if err != nil {
		return geoerr.NewInternalError(op, err)
	}
	expLine.Color = expectedColor
	expLine.Dashes = []vg.Length{vg.Points(4), vg.Points(2)}
	p.Add(expLine)

	p.Legend.Add(prp.Label(), obsLine)
	p.Legend.Add("expected", expLine)
	applyOrientation(p, prp.Label(), orient)
	return nil
}

// residualTicks draws one line segment per sample between the observed and
// expected values.
type residualTicks struct {
	depths   []float64
	observed []float64
	expected []float64
	orient   Orientation
	style    draw.LineStyle
}

func (t *residualTicks) Plot(c draw.Canvas, plt *plot.Plot) {
	trX, trY := plt.Transforms(&c)
	for i := range t.depths {
		var x1, y1, x2, y2 vg.Length
		if t.orient == Vertical {
			y1 = trY(t.depths[i])
			y2 = y1
			x1 = trX(t.observed[i])
			x2 = trX(t.expected[i])
		} else {
			x1 = trX(t.depths[i])
			x2 = x1
			y1 = trY(t.observed[i])
			y2 = trY(t.expected[i])
		}
		c.StrokeLine2(t.style, x1, y1, x2, y2)
	}
}
