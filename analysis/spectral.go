package analysis

import (
	"context"
	"fmt"
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/dsp/fourier"
	"gonum.org/v1/gonum/mat"

	"github.com/geosiss/borehole/domain"
	"github.com/geosiss/borehole/geoerr"
)

// Spectrogram computes windowed power spectral densities of one of a
// sampling domain's signals: a Hann-windowed periodogram per analysis
// window, windows advancing by half their length.
//
// The window length is in samples and must be at least four and no longer
// than the signal. The domain must be uniformly sampled. Rows of the result
// are spatial frequencies in cycles per metre; columns are window centre
// depths.
//
// The result is a SpectralDomain named "<domain> spectra (<prop>)".
func Spectrogram(ctx context.Context, dom *domain.SamplingDomain, prop string, window int) (*domain.SpectralDomain, error) {
	const op = "Spectrogram"

	signal, err := numericSignal(op, dom, prop)
	if err != nil {
		return nil, err
	}
	if window < 4 {
		return nil, geoerr.NewValidationError(op,
			fmt.Errorf("window must be at least 4 samples, got %d", window))
	}
	if window > len(signal) {
		return nil, geoerr.NewValidationError(op,
			fmt.Errorf("window of %d samples exceeds signal length %d", window, len(signal))).
			WithContext(map[string]any{"window": window, "samples": len(signal)})
	}
	dx, err := uniformSpacing(op, dom.Depths())
	if err != nil {
		return nil, err
	}

	depths := dom.Depths()
	step := window / 2
	nwindows := (len(signal)-window)/step + 1
	nfreq := window/2 + 1

	// Hann taper, computed once per call.
	taper := make([]float64, window)
	var taperPower float64
	for i := range taper {
		taper[i] = 0.5 * (1 - math.Cos(2*math.Pi*float64(i)/float64(window-1)))
		taperPower += taper[i] * taper[i]
	}

	fft := fourier.NewFFT(window)
	power := mat.NewDense(nfreq, nwindows, nil)
	centres := make([]float64, nwindows)
	segment := make([]float64, window)

	for w := 0; w < nwindows; w++ {
		if err := ctx.Err(); err != nil {
			return nil, geoerr.NewInternalError(op, err)
		}

		start := w * step
		copy(segment, signal[start:start+window])
		segment = Demean(segment)
		for i := range segment {
			segment[i] *= taper[i]
		}

		coefs := fft.Coefficients(nil, segment)
		for k, c := range coefs {
			p := cmplx.Abs(c) * cmplx.Abs(c) / (taperPower / float64(window))
			// One-sided spectrum: interior bins carry both halves.
			if k != 0 && k != len(coefs)-1 {
				p *= 2
			}
			power.Set(k, w, p/float64(window))
		}
		centres[w] = (depths[start] + depths[start+window-1]) / 2
	}

	frequencies := make([]float64, nfreq)
	for k := range frequencies {
		frequencies[k] = float64(k) / (float64(window) * dx)
	}

	name := fmt.Sprintf("%s spectra (%s)", dom.Name(), prop)
	return domain.NewSpectralDomain(name, prop, centres, frequencies, power)
}
