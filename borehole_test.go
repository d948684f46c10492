package borehole

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/geosiss/borehole/domain"
	"github.com/geosiss/borehole/geoerr"
	"github.com/geosiss/borehole/metadata"
)

func testSamplingDomain(t *testing.T, name string) *domain.SamplingDomain {
	t.Helper()

	depths := []float64{0, 0.5, 1, 1.5, 2, 2.5, 3}
	gamma := []float64{45, 48, 52, 49, 47, 50, 53}
	dom, err := domain.NewSamplingDomain(name, depths)
	require.NoError(t, err)
	require.NoError(t, dom.AddProperty(domain.NewProperty("gamma", gamma)))
	return dom
}

func testIntervalDomain(t *testing.T, name string) *domain.IntervalDomain {
	t.Helper()

	from := []float64{0, 1, 2}
	to := []float64{1, 2, 3}
	dom, err := domain.NewIntervalDomain(name, from, to)
	require.NoError(t, err)
	require.NoError(t, dom.AddProperty(domain.NewCategoricalProperty(
		"lithology", []string{"shale", "sandstone", "shale"})))
	return dom
}

func TestNew(t *testing.T) {
	b := New("swdcd-1")
	assert.Equal(t, "swdcd-1", b.Name())
	assert.Nil(t, b.Origin())
	assert.Empty(t, b.DomainNames())
}

func TestNewWithOrigin(t *testing.T) {
	b := New("swdcd-1", WithOrigin(OriginPosition{
		Latitude:  -35.0,
		Longitude: 138.5,
		Elevation: 48.2,
		SRS:       "EPSG:4326",
	}))

	origin := b.Origin()
	require.NotNil(t, origin)
	assert.Equal(t, -35.0, origin.Latitude)
	assert.Equal(t, "EPSG:4326", origin.SRS)
}

func TestAddDomain(t *testing.T) {
	b := New("swdcd-1")

	require.NoError(t, b.AddDomain(testSamplingDomain(t, "gamma log")))
	require.NoError(t, b.AddDomain(testIntervalDomain(t, "lithology log")))
	assert.Equal(t, []string{"gamma log", "lithology log"}, b.DomainNames())
	assert.Len(t, b.Domains(), 2)
}

func TestAddDomainDuplicateName(t *testing.T) {
	b := New("swdcd-1")
	require.NoError(t, b.AddDomain(testSamplingDomain(t, "gamma log")))

	err := b.AddDomain(testSamplingDomain(t, "gamma log"))
	require.Error(t, err)
	assert.True(t, geoerr.IsKind(err, geoerr.KindValidation))
}

func TestAddDomainNil(t *testing.T) {
	b := New("swdcd-1")
	err := b.AddDomain(nil)
	require.Error(t, err)
	assert.True(t, geoerr.IsKind(err, geoerr.KindValidation))
}

func TestDomainAccessors(t *testing.T) {
	b := New("swdcd-1")
	require.NoError(t, b.AddDomain(testSamplingDomain(t, "gamma log")))
	require.NoError(t, b.AddDomain(testIntervalDomain(t, "lithology log")))

	d, err := b.Domain("gamma log")
	require.NoError(t, err)
	assert.Equal(t, domain.KindSampling, d.Kind())

	sd, err := b.SamplingDomain("gamma log")
	require.NoError(t, err)
	assert.Equal(t, 7, sd.Size())

	id, err := b.IntervalDomain("lithology log")
	require.NoError(t, err)
	assert.Equal(t, 3, id.Size())

	_, err = b.Domain("missing")
	assert.ErrorIs(t, err, geoerr.ErrDomainNotFound)

	_, err = b.IntervalDomain("gamma log")
	require.Error(t, err)
	assert.True(t, geoerr.IsKind(err, geoerr.KindValidation))

	_, err = b.SamplingDomain("lithology log")
	require.Error(t, err)
	assert.True(t, geoerr.IsKind(err, geoerr.KindValidation))
}

func TestAddFeature(t *testing.T) {
	b := New("swdcd-1")
	md := metadata.New("feature-1", "marker", nil)

	b.AddFeature("ash marker", 1.2, WithFeatureMetadata(md))
	b.AddFeature("casing shoe", 0.3)

	features := b.Features()
	require.Len(t, features, 2)
	assert.Equal(t, "ash marker", features[0].Name)
	assert.Same(t, md, features[0].Metadata)
	assert.Nil(t, features[1].Metadata)
}

func TestInterval(t *testing.T) {
	b := New("swdcd-1")
	require.NoError(t, b.AddDomain(testSamplingDomain(t, "gamma log")))
	require.NoError(t, b.AddDomain(testIntervalDomain(t, "lithology log")))
	b.AddFeature("ash marker", 1.2)
	b.AddFeature("deep marker", 2.8)

	sub, err := b.Interval(1, 2)
	require.NoError(t, err)
	assert.Equal(t, "swdcd-1: interval 1 to 2", sub.Name())
	assert.Equal(t, []string{"gamma log", "lithology log"}, sub.DomainNames())

	sd, err := sub.SamplingDomain("gamma log")
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 1.5, 2}, sd.Depths())

	id, err := sub.IntervalDomain("lithology log")
	require.NoError(t, err)
	assert.Equal(t, 1, id.Size())

	features := sub.Features()
	require.Len(t, features, 1)
	assert.Equal(t, "ash marker", features[0].Name)

	// The source borehole is untouched.
	assert.Len(t, b.Features(), 2)
	src, err := b.SamplingDomain("gamma log")
	require.NoError(t, err)
	assert.Equal(t, 7, src.Size())
}

func TestIntervalEmptyRange(t *testing.T) {
	b := New("swdcd-1")
	_, err := b.Interval(2, 1)
	require.Error(t, err)
	assert.True(t, geoerr.IsKind(err, geoerr.KindValidation))
}

func TestString(t *testing.T) {
	b := New("swdcd-1")
	require.NoError(t, b.AddDomain(testSamplingDomain(t, "gamma log")))
	b.AddFeature("ash marker", 1.2)
	assert.Equal(t, "borehole swdcd-1: 1 domains, 1 features", b.String())
}
