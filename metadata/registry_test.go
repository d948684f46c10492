package metadata

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/geosiss/borehole/geoerr"
)

func TestNewMetadataIdentFallback(t *testing.T) {
	m := New("", "gsml:MappedFeature", nil)
	_, err := uuid.Parse(m.Ident)
	assert.NoError(t, err, "empty ident should fall back to a UUID")

	m = New("mf.1", "gsml:MappedFeature", nil)
	assert.Equal(t, "mf.1", m.Ident)
}

func TestMetadataXPath(t *testing.T) {
	tree := parseTestTree(t)
	m := New("mf.1", "gsml:MappedFeature", tree)

	nodes, err := m.XPath("//gsml:shape")
	require.NoError(t, err)
	assert.Len(t, nodes, 1)
}

func TestMetadataXPathWithoutTree(t *testing.T) {
	m := New("mf.1", "gsml:MappedFeature", nil)

	_, err := m.XPath("//gsml:shape")
	require.Error(t, err)
	assert.True(t, geoerr.IsKind(err, geoerr.KindQuery))
}

func TestMetadataAttrs(t *testing.T) {
	m := New("mf.1", "gsml:MappedFeature", nil,
		WithAttr("projection", "EPSG:4326"),
		WithAttr("accuracy_m", 100.0))

	v, ok := m.Attr("projection")
	require.True(t, ok)
	assert.Equal(t, "EPSG:4326", v)

	_, ok = m.Attr("missing")
	assert.False(t, ok)

	assert.True(t, strings.HasPrefix(m.String(), "metadata record mf.1"))
}

func TestMemoryRegistryDedup(t *testing.T) {
	ctx := context.Background()
	reg := NewMemoryRegistry()
	defer reg.Close()

	first := New("mf.1", "gsml:MappedFeature", nil, WithAttr("projection", "EPSG:4326"))
	canonical, err := reg.Register(ctx, first)
	require.NoError(t, err)
	assert.Same(t, first, canonical)

	// Registering the same ident again returns the canonical first record.
	duplicate := New("mf.1", "gsml:MappedFeature", nil)
	canonical, err = reg.Register(ctx, duplicate)
	require.NoError(t, err)
	assert.Same(t, first, canonical)

	n, err := reg.Len(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestMemoryRegistryLookup(t *testing.T) {
	ctx := context.Background()
	reg := NewMemoryRegistry()
	defer reg.Close()

	_, err := reg.Register(ctx, New("mf.1", "gsml:MappedFeature", nil))
	require.NoError(t, err)

	m, err := reg.Lookup(ctx, "mf.1")
	require.NoError(t, err)
	assert.Equal(t, "mf.1", m.Ident)

	_, err = reg.Lookup(ctx, "missing")
	require.Error(t, err)
	assert.ErrorIs(t, err, geoerr.ErrRecordNotFound)
}

func TestMemoryRegistryList(t *testing.T) {
	ctx := context.Background()
	reg := NewMemoryRegistry()
	defer reg.Close()

	for _, rec := range []*Metadata{
		New("mf.1", "gsml:MappedFeature", nil),
		New("mf.2", "gsml:MappedFeature", nil),
		New("bh.1", "borehole", nil),
	} {
		_, err := reg.Register(ctx, rec)
		require.NoError(t, err)
	}

	features, err := reg.List(ctx, "gsml:MappedFeature")
	require.NoError(t, err)
	assert.Len(t, features, 2)

	all, err := reg.List(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestMemoryRegistryDeregister(t *testing.T) {
	ctx := context.Background()
	reg := NewMemoryRegistry()
	defer reg.Close()

	_, err := reg.Register(ctx, New("mf.1", "gsml:MappedFeature", nil))
	require.NoError(t, err)

	require.NoError(t, reg.Deregister(ctx, "mf.1"))
	_, err = reg.Lookup(ctx, "mf.1")
	assert.ErrorIs(t, err, geoerr.ErrRecordNotFound)

	// Deregistering an absent ident is a no-op.
	require.NoError(t, reg.Deregister(ctx, "mf.1"))
}

func TestRecordRoundTrip(t *testing.T) {
	m := New("mf.1", "gsml:MappedFeature", nil, WithAttr("projection", "EPSG:4326"))

	data, err := encodeRecord(m)
	require.NoError(t, err)

	back, err := decodeRecord(data)
	require.NoError(t, err)
	assert.Equal(t, "mf.1", back.Ident)
	assert.Equal(t, "gsml:MappedFeature", back.Type)
	assert.Equal(t, "EPSG:4326", back.Attrs["projection"])
	assert.Nil(t, back.Tree(), "trees do not cross process boundaries")
}
