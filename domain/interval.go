package domain

import (
	"fmt"
	"slices"
	"sort"

	"github.com/geosiss/borehole/geoerr"
)

// DepthMethod selects how interval boundaries collapse to point depths when
// converting an IntervalDomain to a SamplingDomain.
type DepthMethod string

const (
	// DepthMethodMidpoint uses the midpoint of each interval. This is the
	// default: the zero value of DepthMethod converts as midpoint.
	DepthMethodMidpoint DepthMethod = "midpoint"

	// DepthMethodFrom uses each interval's start depth.
	DepthMethodFrom DepthMethod = "from"

	// DepthMethodTo uses each interval's end depth.
	DepthMethodTo DepthMethod = "to"
)

// IsValid returns true if the depth method is recognized.
func (m DepthMethod) IsValid() bool {
	switch m {
	case DepthMethodMidpoint, DepthMethodFrom, DepthMethodTo:
		return true
	default:
		return false
	}
}

// String returns the string representation of the depth method.
func (m DepthMethod) String() string {
	return string(m)
}

// ParseDepthMethod parses a string into a DepthMethod value.
// Returns an error if the string is not a valid depth method.
func ParseDepthMethod(s string) (DepthMethod, error) {
	method := DepthMethod(s)
	if !method.IsValid() {
		return "", fmt.Errorf("invalid depth conversion method: %s", s)
	}
	return method, nil
}

// AllDepthMethods returns all valid depth methods.
func AllDepthMethods() []DepthMethod {
	return []DepthMethod{
		DepthMethodMidpoint,
		DepthMethodFrom,
		DepthMethodTo,
	}
}

// IntervalDomain holds data defined over depth intervals.
//
// An IntervalDomain is a sequence of borehole segments each having a single
// value for each property; this value is taken to be the same across the
// entire length of the interval. Intervals must be in depth order and must
// not overlap, but there may be gaps between intervals. An interval covers
// the half-open depth range [from, to).
type IntervalDomain struct {
	name       string
	fromDepths []float64
	toDepths   []float64
	props      propertySet

	// SplitAtGaps results, computed once. Domains are immutable after
	// loading, so the cache cannot go stale.
	gaps  []Gap
	spans []Span
	split bool
}

// NewIntervalDomain constructs a validated interval domain from parallel
// start and end depth arrays, in metres from collar.
//
// The invariants are checked in order and the first violation is reported
// as a geoerr.KindValidation error carrying the offending index:
// equal array lengths, strictly increasing from depths, strictly increasing
// to depths, positive interval length, and no overlap between consecutive
// intervals. Validation is a linear pass over successive differences; the
// inputs are required to already be depth sorted. A zero-length domain is
// valid.
//
// The depth arrays are copied; the caller keeps ownership of its slices.
func NewIntervalDomain(name string, fromDepths, toDepths []float64) (*IntervalDomain, error) {
	const op = "NewIntervalDomain"

	if name == "" {
		return nil, geoerr.NewValidationError(op, fmt.Errorf("domain name is required"))
	}
	if len(fromDepths) != len(toDepths) {
		return nil, geoerr.NewValidationError(op,
			fmt.Errorf("from and to depths must be the same length")).
			WithContext(map[string]any{
				"from_len": len(fromDepths),
				"to_len":   len(toDepths),
			})
	}
	if i := checkStrictlyIncreasing(fromDepths); i >= 0 {
		return nil, geoerr.NewValidationError(op,
			fmt.Errorf("from depths must be strictly increasing")).
			WithContext(map[string]any{
				"index":    i,
				"depth":    fromDepths[i],
				"previous": fromDepths[i-1],
			})
	}
	if i := checkStrictlyIncreasing(toDepths); i >= 0 {
		return nil, geoerr.NewValidationError(op,
			fmt.Errorf("to depths must be strictly increasing")).
			WithContext(map[string]any{
				"index":    i,
				"depth":    toDepths[i],
				"previous": toDepths[i-1],
			})
	}
	for i := range fromDepths {
		if toDepths[i] <= fromDepths[i] {
			return nil, geoerr.NewValidationError(op,
				fmt.Errorf("intervals must have positive length")).
				WithContext(map[string]any{
					"index":      i,
					"from_depth": fromDepths[i],
					"to_depth":   toDepths[i],
				})
		}
	}
	for i := 0; i+1 < len(fromDepths); i++ {
		if toDepths[i] > fromDepths[i+1] {
			return nil, geoerr.NewValidationError(op,
				fmt.Errorf("intervals must not overlap")).
				WithContext(map[string]any{
					"index":     i,
					"to_depth":  toDepths[i],
					"next_from": fromDepths[i+1],
				})
		}
	}

	return &IntervalDomain{
		name:       name,
		fromDepths: slices.Clone(fromDepths),
		toDepths:   slices.Clone(toDepths),
	}, nil
}

// Name returns the domain identifier.
func (d *IntervalDomain) Name() string { return d.name }

// Kind returns KindInterval.
func (d *IntervalDomain) Kind() Kind { return KindInterval }

// Size returns the number of intervals.
func (d *IntervalDomain) Size() int { return len(d.fromDepths) }

// FromDepths returns the interval start depths. The returned slice is the
// domain's backing array; callers must treat it as read-only.
func (d *IntervalDomain) FromDepths() []float64 { return d.fromDepths }

// ToDepths returns the interval end depths. The returned slice is the
// domain's backing array; callers must treat it as read-only.
func (d *IntervalDomain) ToDepths() []float64 { return d.toDepths }

// Midpoints returns a fresh array of interval midpoint depths.
func (d *IntervalDomain) Midpoints() []float64 {
	mids := make([]float64, len(d.fromDepths))
	for i := range d.fromDepths {
		mids[i] = (d.fromDepths[i] + d.toDepths[i]) / 2
	}
	return mids
}

// Extent returns the overall depth coverage of the domain, from the first
// interval start to the last interval end. The zero Span is returned for an
// empty domain.
func (d *IntervalDomain) Extent() Span {
	if len(d.fromDepths) == 0 {
		return Span{}
	}
	return Span{Top: d.fromDepths[0], Bottom: d.toDepths[len(d.toDepths)-1]}
}

// Properties returns the attached properties in insertion order.
func (d *IntervalDomain) Properties() []*Property { return d.props.list() }

// PropertyNames returns the attached property names in insertion order.
func (d *IntervalDomain) PropertyNames() []string { return d.props.names() }

// Property returns the named property, or false if not attached.
func (d *IntervalDomain) Property(name string) (*Property, bool) { return d.props.get(name) }

// AddProperty attaches a property with one value per interval.
func (d *IntervalDomain) AddProperty(p *Property) error {
	return d.props.add("IntervalDomain.AddProperty", d.Size(), p)
}

// String returns a short description of the domain.
func (d *IntervalDomain) String() string {
	return fmt.Sprintf("IntervalDomain %s: %d depth intervals, %d properties",
		d.name, len(d.fromDepths), len(d.props.order))
}

// Interval returns the data between the given depths as a new IntervalDomain.
//
// Only intervals completely contained by the [from, to] range are returned;
// an interval with partial overlap is excluded, never clipped. All attached
// properties are subset with the same index mask, preserving per-interval
// alignment. An empty result is a valid zero-length domain, not an error.
//
// The derived domain is named "<name>: subdomain <from> to <to>" unless
// overridden with WithName.
func (d *IntervalDomain) Interval(from, to float64, opts ...DeriveOption) (*IntervalDomain, error) {
	o := applyDeriveOptions(fmt.Sprintf("%s: subdomain %g to %g", d.name, from, to), opts)

	indices := make([]int, 0, len(d.fromDepths))
	for i := range d.fromDepths {
		if d.fromDepths[i] >= from && d.toDepths[i] <= to {
			indices = append(indices, i)
		}
	}
	return d.subsetByIndices(o.name, indices)
}

// subsetByIndices builds a derived domain from the intervals at the given
// indices, carrying every property across with the same mask.
func (d *IntervalDomain) subsetByIndices(name string, indices []int) (*IntervalDomain, error) {
	subFrom := make([]float64, len(indices))
	subTo := make([]float64, len(indices))
	for i, idx := range indices {
		subFrom[i] = d.fromDepths[idx]
		subTo[i] = d.toDepths[idx]
	}

	sub, err := NewIntervalDomain(name, subFrom, subTo)
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

// SplitAtGaps decomposes the domain into maximal runs of contiguous
// intervals and the gaps separating them.
//
// A gap exists between interval i and i+1 whenever to[i] != from[i+1]; any
// nonzero boundary discontinuity counts, regardless of size. The first span
// starts at the very first from depth and the last ends at the very last to
// depth, so a domain of N intervals yields at most N-1 gaps and at most N
// spans. The decomposition is computed in a single linear pass on first call
// and cached on the domain.
func (d *IntervalDomain) SplitAtGaps() ([]Span, []Gap) {
	if d.split {
		return d.spans, d.gaps
	}
	d.split = true

	n := len(d.fromDepths)
	if n == 0 {
		return nil, nil
	}

	spanTop := d.fromDepths[0]
	for i := 0; i < n-1; i++ {
		if d.toDepths[i] != d.fromDepths[i+1] {
			d.gaps = append(d.gaps, Gap{Top: d.toDepths[i], Bottom: d.fromDepths[i+1]})
			d.spans = append(d.spans, Span{Top: spanTop, Bottom: d.toDepths[i]})
			spanTop = d.fromDepths[i+1]
		}
	}
	d.spans = append(d.spans, Span{Top: spanTop, Bottom: d.toDepths[n-1]})

	return d.spans, d.gaps
}

// ToSampling converts the domain to a SamplingDomain of the same length,
// with one point depth per interval computed by the given method.
//
// The zero DepthMethod converts as midpoint. An unrecognized method fails
// with a geoerr.KindConversion error naming the method string. All
// properties are carried over shared by reference, not copied, since the
// association between index and value is preserved one-to-one. The produced
// depths are monotonic by construction under every supported method, so the
// result is built without re-validation.
//
// The derived domain keeps the source name unless overridden with WithName.
func (d *IntervalDomain) ToSampling(method DepthMethod, opts ...DeriveOption) (*SamplingDomain, error) {
	const op = "IntervalDomain.ToSampling"

	o := applyDeriveOptions(d.name, opts)

	var depths []float64
	switch method {
	case DepthMethodMidpoint, "":
		depths = d.Midpoints()
	case DepthMethodFrom:
		depths = slices.Clone(d.fromDepths)
	case DepthMethodTo:
		depths = slices.Clone(d.toDepths)
	default:
		return nil, geoerr.NewConversionError(op,
			fmt.Errorf("%w: unknown depth conversion method %q",
				geoerr.ErrUnsupportedConversion, string(method)))
	}

	sd := &SamplingDomain{name: o.name, depths: depths}
	for _, p := range d.props.list() {
		if err := sd.props.add(op, len(depths), p); err != nil {
			return nil, err
		}
	}
	return sd, nil
}

// Merge combines two interval domains into a new one whose intervals have
// boundaries drawn from the union of both sources' boundaries, restricted to
// the depth range covered by both.
//
// Each merged interval lies inside exactly one interval of each source, so
// every property of both domains carries across by coverage lookup. Merged
// intervals falling inside a gap of either source are dropped. Property
// names must be disjoint between the two domains.
//
// The derived domain is named "<name> merged with <other>" unless overridden
// with WithName.
func (d *IntervalDomain) Merge(other *IntervalDomain, opts ...DeriveOption) (*IntervalDomain, error) {
	const op = "IntervalDomain.Merge"

	if other == nil {
		return nil, geoerr.NewValidationError(op, fmt.Errorf("merge target must not be nil"))
	}
	for _, name := range other.props.order {
		if _, exists := d.props.byName[name]; exists {
			return nil, geoerr.NewValidationError(op,
				fmt.Errorf("property %q attached to both domains", name))
		}
	}

	o := applyDeriveOptions(fmt.Sprintf("%s merged with %s", d.name, other.name), opts)

	if d.Size() == 0 || other.Size() == 0 {
		return NewIntervalDomain(o.name, nil, nil)
	}

	lo := d.fromDepths[0]
	if b := other.fromDepths[0]; b > lo {
		lo = b
	}
	hi := d.toDepths[len(d.toDepths)-1]
	if b := other.toDepths[len(other.toDepths)-1]; b < hi {
		hi = b
	}
	if hi <= lo {
		return NewIntervalDomain(o.name, nil, nil)
	}

	// Union of boundaries inside the common coverage window.
	boundaries := make([]float64, 0, 2*(d.Size()+other.Size()))
	for _, src := range [][]float64{d.fromDepths, d.toDepths, other.fromDepths, other.toDepths} {
		for _, b := range src {
			if b >= lo && b <= hi {
				boundaries = append(boundaries, b)
			}
		}
	}
	boundaries = append(boundaries, lo, hi)
	sort.Float64s(boundaries)
	boundaries = slices.Compact(boundaries)

	mergedFrom := make([]float64, 0, len(boundaries))
	mergedTo := make([]float64, 0, len(boundaries))
	dIdx := make([]int, 0, len(boundaries))
	otherIdx := make([]int, 0, len(boundaries))
	for i := 0; i+1 < len(boundaries); i++ {
		mid := (boundaries[i] + boundaries[i+1]) / 2
		di := d.indexAt(mid)
		oi := other.indexAt(mid)
		if di < 0 || oi < 0 {
			continue
		}
		mergedFrom = append(mergedFrom, boundaries[i])
		mergedTo = append(mergedTo, boundaries[i+1])
		dIdx = append(dIdx, di)
		otherIdx = append(otherIdx, oi)
	}

	merged, err := NewIntervalDomain(o.name, mergedFrom, mergedTo)
	if err != nil {
		return nil, err
	}
	for _, p := range d.props.list() {
		if err := merged.AddProperty(p.subset(dIdx)); err != nil {
			return nil, err
		}
	}
	for _, p := range other.props.list() {
		if err := merged.AddProperty(p.subset(otherIdx)); err != nil {
			return nil, err
		}
	}
	return merged, nil
}

// indexAt returns the index of the interval containing depth, treating each
// interval as the half-open range [from, to), or -1 when no interval covers
// the depth.
func (d *IntervalDomain) indexAt(depth float64) int {
	i := sort.SearchFloat64s(d.fromDepths, depth)
	if i < len(d.fromDepths) && d.fromDepths[i] == depth {
		return i
	}
	if i == 0 {
		return -1
	}
	if depth < d.toDepths[i-1] {
		return i - 1
	}
	return -1
}
