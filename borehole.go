package borehole

import (
	"fmt"
	"log/slog"

	"github.com/geosiss/borehole/domain"
	"github.com/geosiss/borehole/geoerr"
	"github.com/geosiss/borehole/metadata"
)

// OriginPosition is the collar location of a borehole.
type OriginPosition struct {
	// Latitude in decimal degrees, positive north.
	Latitude float64

	// Longitude in decimal degrees, positive east.
	Longitude float64

	// Elevation of the collar above the datum, in metres.
	Elevation float64

	// SRS names the spatial reference system of the coordinates
	// (e.g. "EPSG:4326"). Empty when unknown.
	SRS string
}

// Feature is a point of interest down the hole: a fossil pick, a marker
// horizon, a casing shoe. Features carry an optional metadata record
// describing their provenance.
type Feature struct {
	// Name identifies the feature.
	Name string

	// Depth is the feature's position down the hole, in metres.
	Depth float64

	// Metadata is the feature's provenance record, when known.
	Metadata *metadata.Metadata
}

// Borehole is a named container of depth-indexed domains plus point
// features and a collar position. Domains are added once during loading
// and read thereafter; a Borehole is not safe for concurrent mutation.
type Borehole struct {
	name     string
	origin   *OriginPosition
	logger   *slog.Logger
	domains  []domain.Domain
	byName   map[string]domain.Domain
	features []Feature
}

// New creates an empty borehole.
func New(name string, opts ...Option) *Borehole {
	b := &Borehole{
		name:   name,
		logger: slog.Default(),
		byName: make(map[string]domain.Domain),
	}
	for _, opt := range opts {
		opt(b)
	}
	if b.logger == nil {
		b.logger = slog.Default()
	}
	return b
}

// Name returns the borehole's name.
func (b *Borehole) Name() string { return b.name }

// Origin returns the collar position, or nil when unknown.
func (b *Borehole) Origin() *OriginPosition { return b.origin }

// AddDomain attaches a domain to the borehole. Domain names must be unique
// within a borehole.
func (b *Borehole) AddDomain(d domain.Domain) error {
	const op = "Borehole.AddDomain"

	if d == nil {
		return geoerr.NewValidationError(op, fmt.Errorf("domain must not be nil"))
	}
	if _, exists := b.byName[d.Name()]; exists {
		return geoerr.NewValidationError(op,
			fmt.Errorf("borehole %s already has a domain named %q", b.name, d.Name())).
			WithContext(map[string]any{"borehole": b.name, "domain": d.Name()})
	}

	b.domains = append(b.domains, d)
	b.byName[d.Name()] = d
	b.logger.Debug("domain added",
		"borehole", b.name,
		"domain", d.Name(),
		"kind", string(d.Kind()),
		"size", d.Size())
	return nil
}

// Domain returns the named domain.
func (b *Borehole) Domain(name string) (domain.Domain, error) {
	if d, ok := b.byName[name]; ok {
		return d, nil
	}
	return nil, geoerr.NewNotFoundError("Borehole.Domain",
		fmt.Errorf("%w: %s", geoerr.ErrDomainNotFound, name))
}

// IntervalDomain returns the named domain as an IntervalDomain.
func (b *Borehole) IntervalDomain(name string) (*domain.IntervalDomain, error) {
	const op = "Borehole.IntervalDomain"

	d, err := b.Domain(name)
	if err != nil {
		return nil, err
	}
	id, ok := d.(*domain.IntervalDomain)
	if !ok {
		return nil, geoerr.NewValidationError(op,
			fmt.Errorf("domain %q is %s, not interval", name, d.Kind()))
	}
	return id, nil
}

// SamplingDomain returns the named domain as a SamplingDomain.
func (b *Borehole) SamplingDomain(name string) (*domain.SamplingDomain, error) {
	const op = "Borehole.SamplingDomain"

	d, err := b.Domain(name)
	if err != nil {
		return nil, err
	}
	sd, ok := d.(*domain.SamplingDomain)
	if !ok {
		return nil, geoerr.NewValidationError(op,
			fmt.Errorf("domain %q is %s, not sampling", name, d.Kind()))
	}
	return sd, nil
}

// Domains returns every attached domain in insertion order.
func (b *Borehole) Domains() []domain.Domain {
	return append([]domain.Domain(nil), b.domains...)
}

// DomainNames returns the attached domain names in insertion order.
func (b *Borehole) DomainNames() []string {
	names := make([]string, len(b.domains))
	for i, d := range b.domains {
		names[i] = d.Name()
	}
	return names
}

// AddFeature records a point feature down the hole.
func (b *Borehole) AddFeature(name string, depth float64, opts ...FeatureOption) {
	f := Feature{Name: name, Depth: depth}
	for _, opt := range opts {
		opt(&f)
	}
	b.features = append(b.features, f)
}

// Features returns the recorded features in insertion order.
func (b *Borehole) Features() []Feature {
	return append([]Feature(nil), b.features...)
}

// Interval extracts the sub-borehole between two depths: every interval
// and sampling domain is cut to [from, to] by its own interval operation,
// and features inside the range are carried across. Transform domains
// (wavelet, spectral) are derived products and are not carried.
//
// The result is a new borehole named "<name>: interval <from> to <to>";
// the source is never mutated.
func (b *Borehole) Interval(from, to float64) (*Borehole, error) {
	const op = "Borehole.Interval"

	if to <= from {
		return nil, geoerr.NewValidationError(op,
			fmt.Errorf("interval is empty: from %g to %g", from, to))
	}

	out := New(fmt.Sprintf("%s: interval %g to %g", b.name, from, to),
		WithLogger(b.logger))
	if b.origin != nil {
		origin := *b.origin
		out.origin = &origin
	}

	for _, d := range b.domains {
		var (
			sub domain.Domain
			err error
		)
		switch src := d.(type) {
		case *domain.IntervalDomain:
			sub, err = src.Interval(from, to, domain.WithName(src.Name()))
		case *domain.SamplingDomain:
			sub, err = src.Interval(from, to, domain.WithName(src.Name()))
		default:
			continue
		}
		if err != nil {
			return nil, err
		}
		if err := out.AddDomain(sub); err != nil {
			return nil, err
		}
	}

	for _, f := range b.features {
		if f.Depth >= from && f.Depth <= to {
			out.features = append(out.features, f)
		}
	}
	return out, nil
}

// String returns a short description of the borehole.
func (b *Borehole) String() string {
	return fmt.Sprintf("borehole %s: %d domains, %d features",
		b.name, len(b.domains), len(b.features))
}
