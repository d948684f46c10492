package domain

import (
	"fmt"

	"github.com/geosiss/borehole/geoerr"
)

// Domain is the read interface shared by every depth-indexed dataset in the
// toolkit. Implementations are immutable after loading: AddProperty is only
// legal while a domain is being populated, before any analysis or derivation
// runs against it.
type Domain interface {
	// Name returns the domain identifier.
	Name() string

	// Kind returns the concrete representation of the domain.
	Kind() Kind

	// Size returns the number of depth indices in the domain.
	Size() int

	// Properties returns the attached properties in insertion order.
	Properties() []*Property

	// Property returns the named property, or false if not attached.
	Property(name string) (*Property, bool)

	// AddProperty attaches a property to the domain. The property length
	// must equal the domain size and the name must not already be taken.
	AddProperty(p *Property) error
}

// Span records the depth extent of a maximal run of contiguous data.
type Span struct {
	// Top is the shallowest depth of the span in metres from collar.
	Top float64 `json:"top"`

	// Bottom is the deepest depth of the span in metres from collar.
	Bottom float64 `json:"bottom"`
}

// Thickness returns the down-hole extent of the span.
func (s Span) Thickness() float64 {
	return s.Bottom - s.Top
}

// String returns the span as a depth range.
func (s Span) String() string {
	return fmt.Sprintf("%g-%g m", s.Top, s.Bottom)
}

// Gap records a depth range not covered by any data, bounded by the end of
// one contiguous run and the start of the next. Gaps are derived, transient
// records produced by gap detection; they are not first-class domain state.
type Gap struct {
	// Top is the end depth of the run above the gap.
	Top float64 `json:"top"`

	// Bottom is the start depth of the run below the gap.
	Bottom float64 `json:"bottom"`
}

// Thickness returns the down-hole extent of the gap.
func (g Gap) Thickness() float64 {
	return g.Bottom - g.Top
}

// String returns the gap as a depth range.
func (g Gap) String() string {
	return fmt.Sprintf("%g-%g m", g.Top, g.Bottom)
}

// DeriveOption adjusts how a derived domain is constructed.
type DeriveOption func(*deriveOptions)

type deriveOptions struct {
	name string
}

// WithName overrides the generated name of a derived domain.
func WithName(name string) DeriveOption {
	return func(o *deriveOptions) {
		o.name = name
	}
}

func applyDeriveOptions(defaultName string, opts []DeriveOption) deriveOptions {
	o := deriveOptions{name: defaultName}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// propertySet implements the property bookkeeping shared by the concrete
// domain types. Insertion order is preserved for deterministic iteration.
type propertySet struct {
	byName map[string]*Property
	order  []string
}

// add validates and attaches a property. op names the calling operation for
// error reporting; size is the owning domain's index count.
func (ps *propertySet) add(op string, size int, p *Property) error {
	if p == nil {
		return geoerr.NewValidationError(op, fmt.Errorf("property must not be nil"))
	}
	if err := p.Validate(); err != nil {
		return geoerr.NewValidationError(op, err)
	}
	if p.Len() != size {
		return geoerr.NewValidationError(op,
			fmt.Errorf("property %q has %d values, domain has %d indices", p.Name, p.Len(), size)).
			WithContext(map[string]any{
				"property":    p.Name,
				"values":      p.Len(),
				"domain_size": size,
			})
	}
	if _, exists := ps.byName[p.Name]; exists {
		return geoerr.NewValidationError(op,
			fmt.Errorf("property %q already attached", p.Name))
	}
	if ps.byName == nil {
		ps.byName = make(map[string]*Property)
	}
	ps.byName[p.Name] = p
	ps.order = append(ps.order, p.Name)
	return nil
}

func (ps *propertySet) get(name string) (*Property, bool) {
	p, ok := ps.byName[name]
	return p, ok
}

func (ps *propertySet) list() []*Property {
	props := make([]*Property, 0, len(ps.order))
	for _, name := range ps.order {
		props = append(props, ps.byName[name])
	}
	return props
}

func (ps *propertySet) names() []string {
	names := make([]string, len(ps.order))
	copy(names, ps.order)
	return names
}

// checkStrictlyIncreasing returns the index of the first element that is not
// strictly greater than its predecessor, or -1 when the sequence is strictly
// increasing. Empty and single-element sequences pass trivially.
func checkStrictlyIncreasing(vals []float64) int {
	for i := 1; i < len(vals); i++ {
		if vals[i] <= vals[i-1] {
			return i
		}
	}
	return -1
}
