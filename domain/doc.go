// Package domain provides the depth-indexed data model at the core of the
// borehole toolkit.
//
// A domain is an ordered container of down-hole depths with named property
// arrays aligned one-to-one with its index. Domains and properties are
// constructed once from raw arrays (typically produced by the importer
// package) and treated as immutable value objects for the duration of an
// analysis; every derived domain is a new object, never an in-place edit of
// its source.
//
// # Core Types
//
// IntervalDomain holds a sequence of non-overlapping, depth-ordered
// intervals, each with one value per property:
//   - construction validates ordering, positive length and non-overlap
//   - Interval extracts the fully contained sub-intervals of a depth range
//   - SplitAtGaps decomposes the domain into contiguous spans and gaps
//   - ToSampling collapses intervals to point depths (midpoint, from, to)
//   - Merge combines two domains on the union of their boundaries
//
// SamplingDomain holds discrete point samples:
//   - construction validates strictly increasing depths
//   - Resample interpolates properties onto a new depth grid
//   - SplitAtGaps applies the order-of-magnitude median-spacing heuristic
//
// WaveletDomain and SpectralDomain hold transform coefficients produced by
// the analysis package, aligned to the depths of their source domain.
//
// # Selection
//
// Both concrete domains support expression-based row selection through
// Select, which evaluates a CEL boolean expression against the property
// values of each interval or sample.
//
// # Validation Errors
//
// Constructors report the first violated invariant through a
// geoerr.KindValidation error carrying the offending index and depths:
//
//	_, err := domain.NewIntervalDomain("gamma", []float64{0, 2, 1}, []float64{1, 3, 4})
//	var gerr *geoerr.Error
//	if errors.As(err, &gerr) {
//		fmt.Println(gerr.Kind, gerr.Context["index"])
//	}
package domain
