package analysis

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/geosiss/borehole/domain"
	"github.com/geosiss/borehole/geoerr"
)

func uniformDomain(t *testing.T, samples int, dx float64) *domain.SamplingDomain {
	t.Helper()

	depths := make([]float64, samples)
	gamma := make([]float64, samples)
	for i := range depths {
		depths[i] = float64(i) * dx
		// A narrow bump mid-hole for the transform to lock onto.
		u := (depths[i] - depths[samples/2]) / 2.0
		gamma[i] = math.Exp(-u * u)
	}
	dom, err := domain.NewSamplingDomain("uniform well", depths)
	require.NoError(t, err)
	require.NoError(t, dom.AddProperty(domain.NewProperty("gamma", gamma)))
	return dom
}

func TestWaveletTransform(t *testing.T) {
	dom := uniformDomain(t, 128, 0.5)
	scales := []float64{1, 2, 4, 8}

	wd, err := WaveletTransform(context.Background(), dom, "gamma", scales)
	require.NoError(t, err)

	assert.Equal(t, domain.KindWavelet, wd.Kind())
	assert.Equal(t, "gamma", wd.Source())
	assert.Equal(t, scales, wd.Scales())
	assert.Equal(t, dom.Depths(), wd.Depths())

	rows, cols := wd.Coefficients().Dims()
	assert.Equal(t, len(scales), rows)
	assert.Equal(t, dom.Size(), cols)
}

func TestWaveletTransformLocatesAnomaly(t *testing.T) {
	dom := uniformDomain(t, 128, 0.5)

	wd, err := WaveletTransform(context.Background(), dom, "gamma", []float64{2})
	require.NoError(t, err)

	// The strongest response of a matched-scale Ricker sits at the bump.
	row := wd.Coefficients().RawRowView(0)
	maxIdx := 0
	for i, v := range row {
		if v > row[maxIdx] {
			maxIdx = i
		}
	}
	assert.InDelta(t, 64, float64(maxIdx), 3)
}

func TestWaveletTransformErrors(t *testing.T) {
	dom := uniformDomain(t, 64, 0.5)

	_, err := WaveletTransform(context.Background(), dom, "missing", []float64{1})
	assert.ErrorIs(t, err, geoerr.ErrPropertyNotFound)

	_, err = WaveletTransform(context.Background(), dom, "gamma", nil)
	assert.True(t, geoerr.IsKind(err, geoerr.KindValidation))
}

func TestWaveletTransformNonUniform(t *testing.T) {
	depths := []float64{0, 1, 2, 4, 8, 16}
	values := []float64{1, 2, 3, 4, 5, 6}
	dom, err := domain.NewSamplingDomain("ragged well", depths)
	require.NoError(t, err)
	require.NoError(t, dom.AddProperty(domain.NewProperty("gamma", values)))

	_, err = WaveletTransform(context.Background(), dom, "gamma", []float64{1})
	require.Error(t, err)
	assert.True(t, geoerr.IsKind(err, geoerr.KindValidation))
}

func TestSpectrogram(t *testing.T) {
	samples, dx := 256, 0.25
	depths := make([]float64, samples)
	values := make([]float64, samples)
	wavelength := 4.0
	for i := range depths {
		depths[i] = float64(i) * dx
		values[i] = math.Sin(2 * math.Pi * depths[i] / wavelength)
	}
	dom, err := domain.NewSamplingDomain("cyclic well", depths)
	require.NoError(t, err)
	require.NoError(t, dom.AddProperty(domain.NewProperty("gamma", values)))

	window := 64
	sd, err := Spectrogram(context.Background(), dom, "gamma", window)
	require.NoError(t, err)

	assert.Equal(t, domain.KindSpectral, sd.Kind())
	rows, cols := sd.Power().Dims()
	assert.Equal(t, window/2+1, rows)
	assert.Equal(t, (samples-window)/(window/2)+1, cols)

	// Power concentrates at the driving spatial frequency.
	wantFreq := 1 / wavelength
	peak := 0
	for k := 1; k < rows; k++ {
		if sd.Power().At(k, 0) > sd.Power().At(peak, 0) {
			peak = k
		}
	}
	assert.InDelta(t, wantFreq, sd.Frequencies()[peak], 1/(float64(window)*dx))
}

func TestSpectrogramErrors(t *testing.T) {
	dom := uniformDomain(t, 64, 0.5)

	_, err := Spectrogram(context.Background(), dom, "gamma", 2)
	assert.True(t, geoerr.IsKind(err, geoerr.KindValidation))

	_, err = Spectrogram(context.Background(), dom, "gamma", 128)
	assert.True(t, geoerr.IsKind(err, geoerr.KindValidation))

	_, err = Spectrogram(context.Background(), dom, "missing", 16)
	assert.ErrorIs(t, err, geoerr.ErrPropertyNotFound)
}
