package domain

import (
	"fmt"
	"slices"
	"sort"

	"github.com/geosiss/borehole/geoerr"
	"gonum.org/v1/gonum/interp"
	"gonum.org/v1/gonum/stat"
)

// gapFactor is the order-of-magnitude multiplier applied to the median
// sample spacing when detecting gaps in a sampling domain.
const gapFactor = 10.0

// SamplingDomain holds data defined at discrete point depths.
//
// A SamplingDomain is a sequence of down-hole point samples with one value
// per depth for each attached property. It is the interpolation target of an
// IntervalDomain and the working representation for signal analysis.
type SamplingDomain struct {
	name   string
	depths []float64
	props  propertySet

	// SplitAtGaps results, computed once. Domains are immutable after
	// loading, so the cache cannot go stale.
	gaps  []Gap
	spans []Span
	split bool
}

// NewSamplingDomain constructs a validated sampling domain from sample
// depths in metres from collar. Depths must be strictly increasing; the
// first violation is reported as a geoerr.KindValidation error carrying the
// offending index. A zero-length domain is valid.
//
// The depth array is copied; the caller keeps ownership of its slice.
func NewSamplingDomain(name string, depths []float64) (*SamplingDomain, error) {
	const op = "NewSamplingDomain"

	if name == "" {
		return nil, geoerr.NewValidationError(op, fmt.Errorf("domain name is required"))
	}
	if i := checkStrictlyIncreasing(depths); i >= 0 {
		return nil, geoerr.NewValidationError(op,
			fmt.Errorf("depths must be strictly increasing")).
			WithContext(map[string]any{
				"index":    i,
				"depth":    depths[i],
				"previous": depths[i-1],
			})
	}

	return &SamplingDomain{
		name:   name,
		depths: slices.Clone(depths),
	}, nil
}

// Name returns the domain identifier.
func (d *SamplingDomain) Name() string { return d.name }

// Kind returns KindSampling.
func (d *SamplingDomain) Kind() Kind { return KindSampling }

// Size returns the number of point samples.
func (d *SamplingDomain) Size() int { return len(d.depths) }

// Depths returns the sample depths. The returned slice is the domain's
// backing array; callers must treat it as read-only.
func (d *SamplingDomain) Depths() []float64 { return d.depths }

// Extent returns the overall depth coverage of the domain, from the first
// to the last sample. The zero Span is returned for an empty domain.
func (d *SamplingDomain) Extent() Span {
	if len(d.depths) == 0 {
		return Span{}
	}
	return Span{Top: d.depths[0], Bottom: d.depths[len(d.depths)-1]}
}

// Properties returns the attached properties in insertion order.
func (d *SamplingDomain) Properties() []*Property { return d.props.list() }

// PropertyNames returns the attached property names in insertion order.
func (d *SamplingDomain) PropertyNames() []string { return d.props.names() }

// Property returns the named property, or false if not attached.
func (d *SamplingDomain) Property(name string) (*Property, bool) { return d.props.get(name) }

// AddProperty attaches a property with one value per sample.
func (d *SamplingDomain) AddProperty(p *Property) error {
	return d.props.add("SamplingDomain.AddProperty", d.Size(), p)
}

// String returns a short description of the domain.
func (d *SamplingDomain) String() string {
	return fmt.Sprintf("SamplingDomain %s: %d depth samples, %d properties",
		d.name, len(d.depths), len(d.props.order))
}

// Interval returns the samples between the given depths as a new
// SamplingDomain. Both bounds are inclusive; an empty result is a valid
// zero-length domain, not an error.
//
// The derived domain is named "<name>: subdomain <from> to <to>" unless
// overridden with WithName.
func (d *SamplingDomain) Interval(from, to float64, opts ...DeriveOption) (*SamplingDomain, error) {
	o := applyDeriveOptions(fmt.Sprintf("%s: subdomain %g to %g", d.name, from, to), opts)

	indices := make([]int, 0, len(d.depths))
	for i, depth := range d.depths {
		if depth >= from && depth <= to {
			indices = append(indices, i)
		}
	}
	return d.subsetByIndices(o.name, indices)
}

// subsetByIndices builds a derived domain from the samples at the given
// indices, carrying every property across with the same mask.
func (d *SamplingDomain) subsetByIndices(name string, indices []int) (*SamplingDomain, error) {
	subDepths := make([]float64, len(indices))
	for i, idx := range indices {
		subDepths[i] = d.depths[idx]
	}

	sub, err := NewSamplingDomain(name, subDepths)
	if err != nil {
		return nil, err
	}
	for _, p := range d.props.list() {
		if err := sub.AddProperty(p.subset(indices)); err != nil {
			return nil, err
		}
	}
	return sub, nil
}

// SplitAtGaps decomposes the domain into maximal runs of regularly sampled
// depths and the gaps separating them.
//
// A gap is a spacing between consecutive samples an order of magnitude above
// the median sample spacing of the domain (spacing > 10 x median). The
// decomposition is computed once and cached on the domain. A domain with a
// single sample yields one degenerate span and no gaps.
func (d *SamplingDomain) SplitAtGaps() ([]Span, []Gap) {
	if d.split {
		return d.spans, d.gaps
	}
	d.split = true

	n := len(d.depths)
	if n == 0 {
		return nil, nil
	}
	if n == 1 {
		d.spans = []Span{{Top: d.depths[0], Bottom: d.depths[0]}}
		return d.spans, nil
	}

	spacings := make([]float64, n-1)
	for i := range spacings {
		spacings[i] = d.depths[i+1] - d.depths[i]
	}
	sorted := slices.Clone(spacings)
	sort.Float64s(sorted)
	threshold := gapFactor * stat.Quantile(0.5, stat.Empirical, sorted, nil)

	spanTop := d.depths[0]
	for i := 0; i < n-1; i++ {
		if spacings[i] > threshold {
			d.gaps = append(d.gaps, Gap{Top: d.depths[i], Bottom: d.depths[i+1]})
			d.spans = append(d.spans, Span{Top: spanTop, Bottom: d.depths[i]})
			spanTop = d.depths[i+1]
		}
	}
	d.spans = append(d.spans, Span{Top: spanTop, Bottom: d.depths[n-1]})

	return d.spans, d.gaps
}

// Resample produces a new SamplingDomain on the given depth grid.
//
// Numeric properties are carried across by piecewise linear interpolation;
// categorical properties are assigned the label of the nearest source
// sample. Target depths must be strictly increasing and lie within the
// source domain's extent; resampling never extrapolates. The source must
// hold at least two samples.
//
// The derived domain is named "<name>: resampled to <n> depths" unless
// overridden with WithName.
func (d *SamplingDomain) Resample(depths []float64, opts ...DeriveOption) (*SamplingDomain, error) {
	const op = "SamplingDomain.Resample"

	if len(d.depths) < 2 {
		return nil, geoerr.NewValidationError(op,
			fmt.Errorf("resampling requires at least two source samples")).
			WithContext(map[string]any{"domain_size": len(d.depths)})
	}

	o := applyDeriveOptions(fmt.Sprintf("%s: resampled to %d depths", d.name, len(depths)), opts)

	resampled, err := NewSamplingDomain(o.name, depths)
	if err != nil {
		return nil, err
	}
	extent := d.Extent()
	for i, depth := range resampled.depths {
		if depth < extent.Top || depth > extent.Bottom {
			return nil, geoerr.NewValidationError(op,
				fmt.Errorf("target depth outside domain extent")).
				WithContext(map[string]any{
					"index":  i,
					"depth":  depth,
					"top":    extent.Top,
					"bottom": extent.Bottom,
				})
		}
	}

	for _, p := range d.props.list() {
		rp := &Property{Name: p.Name, Unit: p.Unit, Long: p.Long}
		if p.IsNumeric() {
			var pl interp.PiecewiseLinear
			if err := pl.Fit(d.depths, p.Values); err != nil {
				return nil, geoerr.NewInternalError(op, err)
			}
			rp.Values = make([]float64, len(resampled.depths))
			for i, depth := range resampled.depths {
				rp.Values[i] = pl.Predict(depth)
			}
		} else {
			rp.Categories = make([]string, len(resampled.depths))
			for i, depth := range resampled.depths {
				rp.Categories[i] = p.Categories[d.nearestIndex(depth)]
			}
		}
		if err := resampled.AddProperty(rp); err != nil {
			return nil, err
		}
	}
	return resampled, nil
}

// ResampleOnto resamples the domain onto another sampling domain's depths.
func (d *SamplingDomain) ResampleOnto(target *SamplingDomain, opts ...DeriveOption) (*SamplingDomain, error) {
	if target == nil {
		return nil, geoerr.NewValidationError("SamplingDomain.ResampleOnto",
			fmt.Errorf("resample target must not be nil"))
	}
	return d.Resample(target.depths, opts...)
}

// nearestIndex returns the index of the sample closest in depth. Ties
// resolve to the shallower sample.
func (d *SamplingDomain) nearestIndex(depth float64) int {
	i := sort.SearchFloat64s(d.depths, depth)
	if i == 0 {
		return 0
	}
	if i == len(d.depths) {
		return len(d.depths) - 1
	}
	if depth-d.depths[i-1] <= d.depths[i]-depth {
		return i - 1
	}
	return i
}
