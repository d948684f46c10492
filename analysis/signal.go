package analysis

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Demean returns the signal with its mean removed.
func Demean(signal []float64) []float64 {
	mean := stat.Mean(signal, nil)
	out := make([]float64, len(signal))
	for i, v := range signal {
		out[i] = v - mean
	}
	return out
}

// Standardize returns the signal shifted to zero mean and scaled to unit
// standard deviation. A constant signal standardizes to all zeros.
func Standardize(signal []float64) []float64 {
	mean, std := stat.MeanStdDev(signal, nil)
	out := make([]float64, len(signal))
	if std == 0 {
		return out
	}
	for i, v := range signal {
		out[i] = (v - mean) / std
	}
	return out
}

// Detrend returns the signal with its least-squares linear trend removed.
func Detrend(signal []float64) []float64 {
	n := len(signal)
	out := make([]float64, n)
	if n < 2 {
		return out
	}
	xs := make([]float64, n)
	floats.Span(xs, 0, float64(n-1))
	alpha, beta := stat.LinearRegression(xs, signal, nil, false)
	for i, v := range signal {
		out[i] = v - (alpha + beta*xs[i])
	}
	return out
}

// CUSUM returns the cumulative sum of the standardized signal, renormalised
// to the [0, 1] range. Sustained departures from the signal's mean show up
// as monotonic ramps, which makes the chart a quick visual test for regime
// changes down hole. A constant signal yields all zeros.
func CUSUM(signal []float64) []float64 {
	z := Standardize(signal)
	out := make([]float64, len(z))
	var sum float64
	for i, v := range z {
		sum += v
		out[i] = sum
	}
	if len(out) == 0 {
		return out
	}
	lo, hi := floats.Min(out), floats.Max(out)
	if hi == lo {
		for i := range out {
			out[i] = 0
		}
		return out
	}
	for i := range out {
		out[i] = (out[i] - lo) / (hi - lo)
	}
	return out
}
