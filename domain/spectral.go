package domain

import (
	"fmt"
	"slices"

	"github.com/geosiss/borehole/geoerr"
	"gonum.org/v1/gonum/mat"
)

// SpectralDomain holds windowed power spectral densities for a single source
// property, one row per spatial frequency, aligned to the centre depths of
// the analysis windows.
//
// Each frequency row is exposed as a synthetic depth-aligned property named
// "<source>@<frequency>cpm" (cycles per metre), so a SpectralDomain plugs
// into the same plotting and analysis surfaces as a measured domain.
type SpectralDomain struct {
	name        string
	source      string
	depths      []float64
	frequencies []float64
	power       *mat.Dense
	props       propertySet
}

// NewSpectralDomain constructs a spectral domain from windowed spectrum
// output. Window centre depths and frequencies must be strictly increasing,
// and the power matrix must be len(frequencies) rows by len(depths) columns.
func NewSpectralDomain(name, source string, depths, frequencies []float64, power *mat.Dense) (*SpectralDomain, error) {
	const op = "NewSpectralDomain"

	if name == "" {
		return nil, geoerr.NewValidationError(op, fmt.Errorf("domain name is required"))
	}
	if source == "" {
		return nil, geoerr.NewValidationError(op, fmt.Errorf("source property name is required"))
	}
	if i := checkStrictlyIncreasing(depths); i >= 0 {
		return nil, geoerr.NewValidationError(op,
			fmt.Errorf("window depths must be strictly increasing")).
			WithContext(map[string]any{"index": i})
	}
	if i := checkStrictlyIncreasing(frequencies); i >= 0 {
		return nil, geoerr.NewValidationError(op,
			fmt.Errorf("frequencies must be strictly increasing")).
			WithContext(map[string]any{"index": i})
	}
	if power == nil {
		return nil, geoerr.NewValidationError(op, fmt.Errorf("power matrix is required"))
	}
	rows, cols := power.Dims()
	if rows != len(frequencies) || cols != len(depths) {
		return nil, geoerr.NewValidationError(op,
			fmt.Errorf("power matrix must be frequencies x windows")).
			WithContext(map[string]any{
				"rows":        rows,
				"cols":        cols,
				"frequencies": len(frequencies),
				"windows":     len(depths),
			})
	}

	d := &SpectralDomain{
		name:        name,
		source:      source,
		depths:      slices.Clone(depths),
		frequencies: slices.Clone(frequencies),
		power:       power,
	}
	for i, freq := range frequencies {
		p := &Property{
			Name:   fmt.Sprintf("%s@%gcpm", source, freq),
			Values: mat.Row(nil, i, power),
			Long:   fmt.Sprintf("%s power at %g cycles/m", source, freq),
		}
		if err := d.props.add(op, len(depths), p); err != nil {
			return nil, err
		}
	}
	return d, nil
}

// Name returns the domain identifier.
func (d *SpectralDomain) Name() string { return d.name }

// Kind returns KindSpectral.
func (d *SpectralDomain) Kind() Kind { return KindSpectral }

// Size returns the number of analysis windows.
func (d *SpectralDomain) Size() int { return len(d.depths) }

// Source returns the name of the property the spectra were computed from.
func (d *SpectralDomain) Source() string { return d.source }

// Depths returns the window centre depths. The returned slice is the
// domain's backing array; callers must treat it as read-only.
func (d *SpectralDomain) Depths() []float64 { return d.depths }

// Frequencies returns the spatial frequencies in cycles per metre. The
// returned slice is the domain's backing array; callers must treat it as
// read-only.
func (d *SpectralDomain) Frequencies() []float64 { return d.frequencies }

// Power returns the power spectral density matrix, one row per frequency.
func (d *SpectralDomain) Power() *mat.Dense { return d.power }

// Properties returns the per-frequency power rows as properties.
func (d *SpectralDomain) Properties() []*Property { return d.props.list() }

// PropertyNames returns the synthetic per-frequency property names.
func (d *SpectralDomain) PropertyNames() []string { return d.props.names() }

// Property returns the named property, or false if not attached.
func (d *SpectralDomain) Property(name string) (*Property, bool) { return d.props.get(name) }

// AddProperty attaches an additional window-aligned property.
func (d *SpectralDomain) AddProperty(p *Property) error {
	return d.props.add("SpectralDomain.AddProperty", d.Size(), p)
}

// String returns a short description of the domain.
func (d *SpectralDomain) String() string {
	return fmt.Sprintf("SpectralDomain %s: %d frequencies over %d windows from %s",
		d.name, len(d.frequencies), len(d.depths), d.source)
}
