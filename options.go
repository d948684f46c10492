package borehole

import (
	"log/slog"

	"github.com/geosiss/borehole/metadata"
)

// Option configures a Borehole.
type Option func(*Borehole)

// WithLogger sets the borehole's logger. A nil logger falls back to
// slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(b *Borehole) {
		b.logger = logger
	}
}

// WithOrigin sets the collar position.
func WithOrigin(origin OriginPosition) Option {
	return func(b *Borehole) {
		b.origin = &origin
	}
}

// FeatureOption configures a Feature.
type FeatureOption func(*Feature)

// WithFeatureMetadata attaches a provenance record to the feature.
func WithFeatureMetadata(md *metadata.Metadata) FeatureOption {
	return func(f *Feature) {
		f.Metadata = md
	}
}
