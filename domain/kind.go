package domain

import "fmt"

// Kind identifies the concrete representation of a domain.
type Kind string

const (
	// KindInterval marks domains whose data is defined over depth intervals.
	KindInterval Kind = "interval"

	// KindSampling marks domains whose data is defined at discrete depths.
	KindSampling Kind = "sampling"

	// KindWavelet marks domains holding continuous wavelet transform
	// coefficients derived from a sampled signal.
	KindWavelet Kind = "wavelet"

	// KindSpectral marks domains holding windowed power spectral densities
	// derived from a sampled signal.
	KindSpectral Kind = "spectral"
)

// IsValid returns true if the kind is a recognized domain kind.
func (k Kind) IsValid() bool {
	switch k {
	case KindInterval, KindSampling, KindWavelet, KindSpectral:
		return true
	default:
		return false
	}
}

// String returns the string representation of the kind.
func (k Kind) String() string {
	return string(k)
}

// DisplayName returns a human-readable display name for the kind.
func (k Kind) DisplayName() string {
	switch k {
	case KindInterval:
		return "Interval"
	case KindSampling:
		return "Sampling"
	case KindWavelet:
		return "Wavelet"
	case KindSpectral:
		return "Spectral"
	default:
		return string(k)
	}
}

// ParseKind parses a string into a Kind value.
// Returns an error if the string is not a valid domain kind.
func ParseKind(s string) (Kind, error) {
	kind := Kind(s)
	if !kind.IsValid() {
		return "", fmt.Errorf("invalid domain kind: %s", s)
	}
	return kind, nil
}

// AllKinds returns all valid domain kinds.
func AllKinds() []Kind {
	return []Kind{
		KindInterval,
		KindSampling,
		KindWavelet,
		KindSpectral,
	}
}
