package plot

import (
	"log/slog"

	"gonum.org/v1/plot/vg"
)

// settings carries the shared rendering knobs. Defaults match the toolkit
// configuration defaults so figures look the same whether or not a config
// file is in play.
type settings struct {
	cols       int
	cellWidth  vg.Length
	cellHeight vg.Length
	dpi        int
	divisions  int
	logger     *slog.Logger
}

func newSettings(opts ...Option) *settings {
	s := &settings{
		cols:       3,
		cellWidth:  3 * vg.Inch,
		cellHeight: 3 * vg.Inch,
		dpi:        96,
		divisions:  11,
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	return s
}

// Option configures figure rendering.
type Option func(*settings)

// WithColumns sets the number of grid columns. Defaults to 3.
func WithColumns(n int) Option {
	return func(s *settings) {
		if n > 0 {
			s.cols = n
		}
	}
}

// WithCellSize sets the size of each figure cell. Defaults to 3x3 inches.
func WithCellSize(width, height vg.Length) Option {
	return func(s *settings) {
		if width > 0 {
			s.cellWidth = width
		}
		if height > 0 {
			s.cellHeight = height
		}
	}
}

// WithDPI sets the raster resolution. Defaults to 96.
func WithDPI(dpi int) Option {
	return func(s *settings) {
		if dpi > 0 {
			s.dpi = dpi
		}
	}
}

// WithPaletteDivisions sets the number of colour bands in heat map
// palettes. Defaults to 11.
func WithPaletteDivisions(n int) Option {
	return func(s *settings) {
		if n > 1 {
			s.divisions = n
		}
	}
}

// WithLogger sets the logger used to report written figures. A nil logger
// falls back to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *settings) {
		s.logger = logger
	}
}
