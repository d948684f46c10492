package plot

import (
	"fmt"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/geosiss/borehole/analysis"
	"github.com/geosiss/borehole/geoerr"
)

var (
	signalColor   = color.NRGBA{R: 0x20, G: 0x20, B: 0x20, A: 0xff}
	positiveFill  = color.NRGBA{R: 0x33, G: 0x66, B: 0xcc, A: 0x60}
	negativeFill  = color.NRGBA{R: 0xcc, G: 0x33, B: 0x33, A: 0x60}
	expectedColor = color.NRGBA{R: 0xcc, G: 0x33, B: 0x33, A: 0xff}
	residualColor = color.NRGBA{R: 0x80, G: 0x80, B: 0x80, A: 0xff}
	residualFill  = color.NRGBA{R: 0x80, G: 0x80, B: 0x80, A: 0x30}
)

// Signal draws one of a domain's numeric signals into p: the signal is
// detrended, drawn as a line, and its positive anomalies against the trend
// are filled blue, negative anomalies red.
//
// Horizontal orientation puts depth on X; vertical puts depth on Y
// increasing downwards, the conventional well-log layout.
func Signal(p *plot.Plot, dom analysis.DepthDomain, prop string, orient Orientation) error {
	const op = "Signal"

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
	prp, ok := dom.Property(prop)
	if !ok {
		return geoerr.NewNotFoundError(op,
			fmt.Errorf("%w: %s", geoerr.ErrPropertyNotFound, prop))
	}
	if !prp.IsNumeric() {
		return geoerr.NewValidationError(op,
			fmt.Errorf("property %q is categorical; signal plots need numeric values", prop))
	}

	depths := dom.Depths()
	detrended := analysis.Detrend(prp.Values)

	for _, fill := range anomalyFills(depths, detrended, orient) {
		p.Add(fill)
	}

	line, err := plotter.NewLine(orientedXYs(depths, detrended, orient))
	if err != nil {
		return geoerr.NewInternalError(op, err)
	}
	line.Color = signalColor
	p.Add(line)

	applyOrientation(p, prp.Label(), orient)
	return nil
}

// orientedXYs pairs depths with values in axis order for the orientation.
func orientedXYs(depths, values []float64, orient Orientation) plotter.XYs {
	xys := make(plotter.XYs, len(depths))
	for i := range depths {
		if orient == Vertical {
			xys[i].X, xys[i].Y = values[i], depths[i]
		} else {
			xys[i].X, xys[i].Y = depths[i], values[i]
		}
	}
	return xys
}

// applyOrientation labels the axes and, for vertical plots, inverts the
// depth axis so depth increases down the page.
func applyOrientation(p *plot.Plot, label string, orient Orientation) {
	if orient == Vertical {
		p.X.Label.Text = label
		p.Y.Label.Text = "Depth (m)"
		p.Y.Scale = plot.InvertedScale{Normalizer: plot.LinearScale{}}
	} else {
		p.X.Label.Text = "Depth (m)"
		p.Y.Label.Text = label
	}
}

// anomalyFills builds one translucent polygon per contiguous run of
// same-signed values, closed against the zero baseline.
func anomalyFills(depths, values []float64, orient Orientation) []*plotter.Polygon {
	var polys []*plotter.Polygon

	flush := func(start, end int, positive bool) {
		if start < 0 || start >= end {
			return
		}
		pts := make(plotter.XYs, 0, end-start+2)
		pts = append(pts, baselinePoint(depths[start], orient))
		for i := start; i < end; i++ {
			if orient == Vertical {
				pts = append(pts, plotter.XY{X: values[i], Y: depths[i]})
			} else {
				pts = append(pts, plotter.XY{X: depths[i], Y: values[i]})
			}
		}
		pts = append(pts, baselinePoint(depths[end-1], orient))

		poly, err := plotter.NewPolygon(pts)
		if err != nil {
			return
		}
		if positive {
			poly.Color = positiveFill
		} else {
			poly.Color = negativeFill
		}
		poly.LineStyle.Width = 0
		polys = append(polys, poly)
	}

	start, positive := -1, false
	for i, v := range values {
		switch {
		case v > 0 && (start < 0 || !positive):
			flush(start, i, positive)
			start, positive = i, true
		case v < 0 && (start < 0 || positive):
			flush(start, i, positive)
			start, positive = i, false
		case v == 0 && start >= 0:
			flush(start, i, positive)
			start = -1
		}
	}
	if start >= 0 {
		flush(start, len(values), positive)
	}
	return polys
}

func baselinePoint(depth float64, orient Orientation) plotter.XY {
	if orient == Vertical {
		return plotter.XY{X: 0, Y: depth}
	}
	return plotter.XY{X: depth, Y: 0}
}

// BoreholeSignals lays a domain's signals out as vertical well-log columns
// sharing one depth axis, one column per key. With no keys given, every
// numeric property is drawn in insertion order.
func BoreholeSignals(dom analysis.DepthDomain, keys []string, opts ...Option) (*Grid, error) {
	const op = "BoreholeSignals"

	if dom == nil {
		return nil, geoerr.NewValidationError(op, fmt.Errorf("domain must not be nil"))
	}
	if len(keys) == 0 {
		for _, prp := range dom.Properties() {
			if prp.IsNumeric() {
				keys = append(keys, prp.Name)
			}
		}
	}
	if len(keys) == 0 {
		return nil, geoerr.NewValidationError(op,
			fmt.Errorf("domain %s has no numeric properties", dom.Name()))
	}

	// One row of columns, tall cells.
	opts = append([]Option{
		WithColumns(len(keys)),
		WithCellSize(2*vg.Inch, 6*vg.Inch),
	}, opts...)
	grid, err := NewGrid(len(keys), opts...)
	if err != nil {
		return nil, err
	}

	depths := dom.Depths()
	for i, key := range keys {
		p, err := grid.Plot(i)
		if err != nil {
			return nil, err
		}
		if err := Signal(p, dom, key, Vertical); err != nil {
			return nil, err
		}
		if prp, ok := dom.Property(key); ok {
			p.Title.Text = prp.Label()
		}
		// Pin every column to the full hole so the depth axes line up.
		if len(depths) > 0 {
			p.Y.Min = depths[0]
			p.Y.Max = depths[len(depths)-1]
		}
	}
	return grid, nil
}
