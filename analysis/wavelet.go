package analysis

import (
	"context"
	"fmt"
	"math"

	"gonum.org/v1/gonum/dsp/fourier"
	"gonum.org/v1/gonum/mat"

	"github.com/geosiss/borehole/domain"
	"github.com/geosiss/borehole/geoerr"
)

// uniformSpacingTol is the relative tolerance for treating sample spacing
// as uniform; transforms assume an even depth grid.
const uniformSpacingTol = 1e-6

// uniformSpacing returns the sample spacing of a depth axis, or an error
// when the axis is too short or unevenly sampled.
func uniformSpacing(op string, depths []float64) (float64, error) {
	if len(depths) < 2 {
		return 0, geoerr.NewValidationError(op,
			fmt.Errorf("transform needs at least two samples, domain has %d", len(depths)))
	}
	dx := depths[1] - depths[0]
	for i := 2; i < len(depths); i++ {
		step := depths[i] - depths[i-1]
		if math.Abs(step-dx) > uniformSpacingTol*math.Abs(dx) {
			return 0, geoerr.NewValidationError(op,
				fmt.Errorf("transform needs uniformly sampled depths")).
				WithContext(map[string]any{
					"index":    i,
					"spacing":  step,
					"expected": dx,
				})
		}
	}
	return dx, nil
}

// numericSignal fetches a named numeric property from a sampling domain.
func numericSignal(op string, dom *domain.SamplingDomain, prop string) ([]float64, error) {
	if dom == nil {
		return nil, geoerr.NewValidationError(op, fmt.Errorf("domain must not be nil"))
	}
	p, ok := dom.Property(prop)
	if !ok {
		return nil, geoerr.NewNotFoundError(op,
			fmt.Errorf("%w: %s", geoerr.ErrPropertyNotFound, prop))
	}
	if !p.IsNumeric() {
		return nil, geoerr.NewValidationError(op,
			fmt.Errorf("property %q is categorical; transforms need numeric signals", prop))
	}
	return p.Values, nil
}

// ricker evaluates the Ricker (Mexican hat) wavelet at offset t for scale a.
func ricker(t, a float64) float64 {
	norm := 2 / (math.Sqrt(3*a) * math.Pow(math.Pi, 0.25))
	u := t / a
	return norm * (1 - u*u) * math.Exp(-u*u/2)
}

// WaveletTransform computes the continuous wavelet transform of one of a
// sampling domain's signals with a Ricker wavelet, one coefficient row per
// analysis scale.
//
// Scales are in metres and must be strictly increasing and positive. The
// domain must be uniformly sampled; each scale row is an FFT-accelerated
// convolution of the demeaned signal against the wavelet, zero-padded to
// keep the convolution linear rather than circular.
//
// The result is a WaveletDomain named "<domain> wavelets (<prop>)".
func WaveletTransform(ctx context.Context, dom *domain.SamplingDomain, prop string, scales []float64) (*domain.WaveletDomain, error) {
	const op = "WaveletTransform"

	signal, err := numericSignal(op, dom, prop)
	if err != nil {
		return nil, err
	}
	if len(scales) == 0 {
		return nil, geoerr.NewValidationError(op,
			fmt.Errorf("at least one analysis scale is required"))
	}
	dx, err := uniformSpacing(op, dom.Depths())
	if err != nil {
		return nil, err
	}

	n := len(signal)
	m := 2 * n
	fft := fourier.NewFFT(m)

	padded := make([]float64, m)
	copy(padded, Demean(signal))
	signalCoefs := fft.Coefficients(nil, padded)

	coefs := mat.NewDense(len(scales), n, nil)
	kernel := make([]float64, m)
	product := make([]complex128, len(signalCoefs))
	row := make([]float64, m)

	for s, scale := range scales {
		if err := ctx.Err(); err != nil {
			return nil, geoerr.NewInternalError(op, err)
		}

		// The kernel is laid out circularly around index zero so the
		// convolution output stays aligned with the input samples.
		for i := range kernel {
			offset := i
			if i > m/2 {
				offset = i - m
			}
			kernel[i] = ricker(float64(offset)*dx, scale)
		}
		kernelCoefs := fft.Coefficients(nil, kernel)

		for i := range product {
			product[i] = signalCoefs[i] * kernelCoefs[i]
		}
		fft.Sequence(row, product)

		// The transform pair is unnormalized: Sequence(Coefficients(x))
		// scales by m. The dx factor makes the convolution an integral.
		for i := 0; i < n; i++ {
			coefs.Set(s, i, row[i]*dx/float64(m))
		}
	}

	name := fmt.Sprintf("%s wavelets (%s)", dom.Name(), prop)
	return domain.NewWaveletDomain(name, prop, dom.Depths(), scales, coefs)
}
