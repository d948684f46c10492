package domain

import (
	"fmt"
	"slices"

	"github.com/geosiss/borehole/geoerr"
	"gonum.org/v1/gonum/mat"
)

// WaveletDomain holds continuous wavelet transform coefficients for a single
// source property, one coefficient row per analysis scale, aligned to the
// depths of the transformed signal.
//
// Each scale row is exposed as a synthetic depth-aligned property named
// "<source>@<scale>m", so a WaveletDomain plugs into the same plotting and
// analysis surfaces as a measured domain.
type WaveletDomain struct {
	name   string
	source string
	depths []float64
	scales []float64
	coefs  *mat.Dense
	props  propertySet
}

// NewWaveletDomain constructs a wavelet domain from transform output.
// Depths and scales must be strictly increasing, scales must be positive,
// and the coefficient matrix must be len(scales) rows by len(depths)
// columns.
func NewWaveletDomain(name, source string, depths, scales []float64, coefs *mat.Dense) (*WaveletDomain, error) {
	const op = "NewWaveletDomain"

	if name == "" {
		return nil, geoerr.NewValidationError(op, fmt.Errorf("domain name is required"))
	}
	if source == "" {
		return nil, geoerr.NewValidationError(op, fmt.Errorf("source property name is required"))
	}
	if i := checkStrictlyIncreasing(depths); i >= 0 {
		return nil, geoerr.NewValidationError(op,
			fmt.Errorf("depths must be strictly increasing")).
			WithContext(map[string]any{"index": i})
	}
	if i := checkStrictlyIncreasing(scales); i >= 0 {
		return nil, geoerr.NewValidationError(op,
			fmt.Errorf("scales must be strictly increasing")).
			WithContext(map[string]any{"index": i})
	}
	if len(scales) > 0 && scales[0] <= 0 {
		return nil, geoerr.NewValidationError(op, fmt.Errorf("scales must be positive"))
	}
	if coefs == nil {
		return nil, geoerr.NewValidationError(op, fmt.Errorf("coefficient matrix is required"))
	}
	rows, cols := coefs.Dims()
	if rows != len(scales) || cols != len(depths) {
		return nil, geoerr.NewValidationError(op,
			fmt.Errorf("coefficient matrix must be scales x depths")).
			WithContext(map[string]any{
				"rows":   rows,
				"cols":   cols,
				"scales": len(scales),
				"depths": len(depths),
			})
	}

	d := &WaveletDomain{
		name:   name,
		source: source,
		depths: slices.Clone(depths),
		scales: slices.Clone(scales),
		coefs:  coefs,
	}
	for i, scale := range scales {
		p := &Property{
			Name:   fmt.Sprintf("%s@%gm", source, scale),
			Values: mat.Row(nil, i, coefs),
			Long:   fmt.Sprintf("%s at %g m scale", source, scale),
		}
		if err := d.props.add(op, len(depths), p); err != nil {
			return nil, err
		}
	}
	return d, nil
}

// Name returns the domain identifier.
func (d *WaveletDomain) Name() string { return d.name }

// Kind returns KindWavelet.
func (d *WaveletDomain) Kind() Kind { return KindWavelet }

// Size returns the number of depth samples the coefficients are aligned to.
func (d *WaveletDomain) Size() int { return len(d.depths) }

// Source returns the name of the property the transform was computed from.
func (d *WaveletDomain) Source() string { return d.source }

// Depths returns the source sample depths. The returned slice is the
// domain's backing array; callers must treat it as read-only.
func (d *WaveletDomain) Depths() []float64 { return d.depths }

// Scales returns the analysis scales in metres. The returned slice is the
// domain's backing array; callers must treat it as read-only.
func (d *WaveletDomain) Scales() []float64 { return d.scales }

// Coefficients returns the transform coefficient matrix, one row per scale.
func (d *WaveletDomain) Coefficients() *mat.Dense { return d.coefs }

// Properties returns the per-scale coefficient rows as properties.
func (d *WaveletDomain) Properties() []*Property { return d.props.list() }

// PropertyNames returns the synthetic per-scale property names.
func (d *WaveletDomain) PropertyNames() []string { return d.props.names() }

// Property returns the named property, or false if not attached.
func (d *WaveletDomain) Property(name string) (*Property, bool) { return d.props.get(name) }

// AddProperty attaches an additional depth-aligned property.
func (d *WaveletDomain) AddProperty(p *Property) error {
	return d.props.add("WaveletDomain.AddProperty", d.Size(), p)
}

// String returns a short description of the domain.
func (d *WaveletDomain) String() string {
	return fmt.Sprintf("WaveletDomain %s: %d scales over %d depths from %s",
		d.name, len(d.scales), len(d.depths), d.source)
}
