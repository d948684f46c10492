package domain

import "fmt"

// Property is a named array of values aligned one-to-one with its owning
// domain's index. A property carries either numeric Values or categorical
// Categories, never both.
type Property struct {
	// Name identifies the property within its domain (e.g. "gamma", "density").
	Name string `json:"name"`

	// Values holds one numeric value per domain index.
	Values []float64 `json:"values,omitempty"`

	// Categories holds one categorical label per domain index, used for
	// non-numeric columns such as lithology codes.
	Categories []string `json:"categories,omitempty"`

	// Unit is the unit of measure for numeric values (e.g. "API", "g/cm3").
	Unit string `json:"unit,omitempty"`

	// Long is a human-readable label used by plots and reports in place of
	// Name when set.
	Long string `json:"long,omitempty"`
}

// NewProperty creates a numeric property.
func NewProperty(name string, values []float64) *Property {
	return &Property{
		Name:   name,
		Values: values,
	}
}

// NewCategoricalProperty creates a categorical property.
func NewCategoricalProperty(name string, categories []string) *Property {
	return &Property{
		Name:       name,
		Categories: categories,
	}
}

// Len returns the number of values the property carries.
func (p *Property) Len() int {
	if p.IsNumeric() {
		return len(p.Values)
	}
	return len(p.Categories)
}

// IsNumeric returns true if the property carries numeric values.
// Zero-length properties with neither payload report as numeric.
func (p *Property) IsNumeric() bool {
	return p.Categories == nil
}

// Label returns the display label for the property: Long when set,
// otherwise Name.
func (p *Property) Label() string {
	if p.Long != "" {
		return p.Long
	}
	return p.Name
}

// Validate checks that the property is well formed: a non-empty name and at
// most one payload kind.
func (p *Property) Validate() error {
	if p.Name == "" {
		return fmt.Errorf("property name is required")
	}
	if p.Values != nil && p.Categories != nil {
		return fmt.Errorf("property %q carries both numeric and categorical values", p.Name)
	}
	return nil
}

// String returns a short description of the property.
func (p *Property) String() string {
	dtype := "numeric"
	if !p.IsNumeric() {
		dtype = "categorical"
	}
	return fmt.Sprintf("property %s (%s, %d values)", p.Name, dtype, p.Len())
}

// subset returns a new property holding the values at the given indices.
// Name, unit and label are carried over; the payload arrays are fresh copies.
func (p *Property) subset(indices []int) *Property {
	sub := &Property{
		Name: p.Name,
		Unit: p.Unit,
		Long: p.Long,
	}
	if p.IsNumeric() {
		sub.Values = make([]float64, len(indices))
		for i, idx := range indices {
			sub.Values[i] = p.Values[idx]
		}
	} else {
		sub.Categories = make([]string, len(indices))
		for i, idx := range indices {
			sub.Categories[i] = p.Categories[idx]
		}
	}
	return sub
}
