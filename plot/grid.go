package plot

import (
	"fmt"
	"os"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/geosiss/borehole/geoerr"
)

// Grid is a figure grid: a fixed number of plot cells laid out row-major
// over a configurable number of columns. Cells start empty and are filled
// through Plot.
type Grid struct {
	plots    []*plot.Plot
	settings *settings
}

// NewGrid creates a grid with room for nplots figures.
func NewGrid(nplots int, opts ...Option) (*Grid, error) {
	if nplots < 1 {
		return nil, geoerr.NewValidationError("NewGrid",
			fmt.Errorf("grid needs at least one cell, got %d", nplots))
	}
	g := &Grid{
		plots:    make([]*plot.Plot, nplots),
		settings: newSettings(opts...),
	}
	for i := range g.plots {
		g.plots[i] = plot.New()
	}
	return g, nil
}

// Len returns the number of cells.
func (g *Grid) Len() int { return len(g.plots) }

// Cols returns the number of grid columns.
func (g *Grid) Cols() int {
	if len(g.plots) < g.settings.cols {
		return len(g.plots)
	}
	return g.settings.cols
}

// Rows returns the number of grid rows.
func (g *Grid) Rows() int {
	cols := g.Cols()
	return (len(g.plots) + cols - 1) / cols
}

// Plot returns the i-th cell's plot for the caller to draw into.
func (g *Grid) Plot(i int) (*plot.Plot, error) {
	if i < 0 || i >= len(g.plots) {
		return nil, geoerr.NewValidationError("Grid.Plot",
			fmt.Errorf("cell %d out of range, grid has %d cells", i, len(g.plots)))
	}
	return g.plots[i], nil
}

// SavePNG renders the grid into a single PNG at the configured cell size
// and DPI.
func (g *Grid) SavePNG(path string) error {
	const op = "Grid.SavePNG"

	rows, cols := g.Rows(), g.Cols()
	width := g.settings.cellWidth * vg.Length(cols)
	height := g.settings.cellHeight * vg.Length(rows)

	img := vgimg.NewWith(
		vgimg.UseWH(width, height),
		vgimg.UseDPI(g.settings.dpi),
	)
	tiles := draw.Tiles{
		Rows: rows,
		Cols: cols,
		PadX: vg.Millimeter * 2,
		PadY: vg.Millimeter * 2,
	}

	cells := make([][]*plot.Plot, rows)
	for r := range cells {
		cells[r] = make([]*plot.Plot, cols)
		for c := range cells[r] {
			if i := r*cols + c; i < len(g.plots) {
				cells[r][c] = g.plots[i]
			}
		}
	}

	canvases := plot.Align(cells, tiles, draw.New(img))
	for r := range cells {
		for c := range cells[r] {
			if cells[r][c] != nil {
				cells[r][c].Draw(canvases[r][c])
			}
		}
	}

	if err := writePNG(img, path); err != nil {
		return geoerr.NewInternalError(op, err)
	}
	bounds := img.Image().Bounds()
	g.settings.logger.Debug("figure grid written",
		"path", path,
		"cells", len(g.plots),
		"rows", rows,
		"cols", cols,
		"width_px", bounds.Dx(),
		"height_px", bounds.Dy())
	return nil
}

// SavePNG renders a single plot into a PNG at the configured cell size and
// DPI.
func SavePNG(p *plot.Plot, path string, opts ...Option) error {
	const op = "SavePNG"

	if p == nil {
		return geoerr.NewValidationError(op, fmt.Errorf("plot must not be nil"))
	}
	s := newSettings(opts...)

	img := vgimg.NewWith(
		vgimg.UseWH(s.cellWidth, s.cellHeight),
		vgimg.UseDPI(s.dpi),
	)
	p.Draw(draw.New(img))

	if err := writePNG(img, path); err != nil {
		return geoerr.NewInternalError(op, err)
	}
	bounds := img.Image().Bounds()
	s.logger.Debug("figure written",
		"path", path,
		"width_px", bounds.Dx(),
		"height_px", bounds.Dy())
	return nil
}

func writePNG(img *vgimg.Canvas, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	png := vgimg.PngCanvas{Canvas: img}
	if _, err := png.WriteTo(f); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}
