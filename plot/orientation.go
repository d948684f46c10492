package plot

import (
	"fmt"
	"strings"

	"github.com/geosiss/borehole/geoerr"
)

// Orientation selects the direction of a signal plot's depth axis.
type Orientation string

const (
	// Horizontal puts depth on the X axis, values on Y.
	Horizontal Orientation = "horizontal"

	// Vertical puts depth on the Y axis increasing downwards, values on X.
	// This is the conventional well-log layout.
	Vertical Orientation = "vertical"
)

// IsValid reports whether the orientation is a known value.
func (o Orientation) IsValid() bool {
	switch o {
	case Horizontal, Vertical:
		return true
	}
	return false
}

// String returns the orientation as a string.
func (o Orientation) String() string {
	return string(o)
}

// ParseOrientation converts a string into an Orientation. Matching is
// case-insensitive; an unknown string returns a conversion error naming it.
func ParseOrientation(s string) (Orientation, error) {
	o := Orientation(strings.ToLower(strings.TrimSpace(s)))
	if !o.IsValid() {
		return "", geoerr.NewConversionError("ParseOrientation",
			fmt.Errorf("%w: unknown plot orientation %q",
				geoerr.ErrUnsupportedConversion, s))
	}
	return o, nil
}

// AllOrientations returns every valid orientation.
func AllOrientations() []Orientation {
	return []Orientation{Horizontal, Vertical}
}
