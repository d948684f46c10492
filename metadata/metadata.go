package metadata

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/geosiss/borehole/geoerr"
)

// Metadata is a typed geoscience metadata record backed by a queryable
// document tree. Records are value objects: once constructed they are only
// read, and the registries in this package dedup them by Ident.
type Metadata struct {
	// Ident uniquely identifies the record. Records constructed without an
	// identifier get a fresh UUID.
	Ident string `json:"ident"`

	// Type names the record's feature or vocabulary type
	// (e.g. "gsml:MappedFeature", "borehole").
	Type string `json:"type"`

	// Attrs carries arbitrary scalar attributes extracted from the source
	// document (age ranges, observation methods, accuracy figures).
	Attrs map[string]any `json:"attrs,omitempty"`

	tree TreeQuerier
}

// RecordOption adjusts a record under construction.
type RecordOption func(*Metadata)

// WithAttr attaches a scalar attribute to the record.
func WithAttr(key string, value any) RecordOption {
	return func(m *Metadata) {
		if m.Attrs == nil {
			m.Attrs = make(map[string]any)
		}
		m.Attrs[key] = value
	}
}

// New creates a metadata record of the given type over a document tree.
// An empty ident falls back to a fresh UUID. The tree may be nil for
// records reconstructed from a shared registry, in which case XPath
// queries fail with a geoerr.KindQuery error.
func New(ident, mdType string, tree TreeQuerier, opts ...RecordOption) *Metadata {
	if ident == "" {
		ident = uuid.New().String()
	}
	m := &Metadata{
		Ident: ident,
		Type:  mdType,
		tree:  tree,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Tree returns the record's backing document tree, or nil when the record
// was reconstructed without one.
func (m *Metadata) Tree() TreeQuerier { return m.tree }

// XPath evaluates an XPath expression against the record's backing tree.
func (m *Metadata) XPath(expr string) ([]Node, error) {
	if m.tree == nil {
		return nil, geoerr.NewQueryError("Metadata.XPath",
			fmt.Errorf("record %s has no backing document tree", m.Ident))
	}
	return m.tree.Query(expr)
}

// Attr returns the named attribute, or false when not set.
func (m *Metadata) Attr(key string) (any, bool) {
	v, ok := m.Attrs[key]
	return v, ok
}

// String returns a short description of the record.
func (m *Metadata) String() string {
	return fmt.Sprintf("metadata record %s of type %s", m.Ident, m.Type)
}
