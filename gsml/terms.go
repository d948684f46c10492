package gsml

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/geosiss/borehole/geoerr"
	"github.com/geosiss/borehole/metadata"
)

// TermValue is a controlled-vocabulary term.
type TermValue struct {
	// Value is the term itself.
	Value string `json:"value"`

	// CodeSpace identifies the vocabulary the term is drawn from, when the
	// source document states one.
	CodeSpace string `json:"code_space,omitempty"`
}

// String returns the term text.
func (t TermValue) String() string { return t.Value }

// TermRange is a pair of controlled-vocabulary terms bounding a range, such
// as a geologic age span.
type TermRange struct {
	Lower TermValue `json:"lower"`
	Upper TermValue `json:"upper"`
}

// String returns the range as "lower - upper".
func (t TermRange) String() string {
	return t.Lower.Value + " - " + t.Upper.Value
}

// NumericValue is a measured quantity with its unit of measure.
type NumericValue struct {
	Value float64 `json:"value"`
	UOM   string  `json:"uom,omitempty"`
}

// String returns the quantity with its unit.
func (v NumericValue) String() string {
	return fmt.Sprintf("%g %s", v.Value, v.UOM)
}

// GeologicEvent is a preferred-age record: the geologic event a mapped
// feature is attributed to, with its age span and descriptive terms.
type GeologicEvent struct {
	// Name is the event's display name, when stated.
	Name string `json:"name,omitempty"`

	// Age bounds the event in geologic time.
	Age *TermRange `json:"age,omitempty"`

	// Process names the geologic process (e.g. "deposition").
	Process *TermValue `json:"process,omitempty"`

	// Environment names the formation environment.
	Environment *TermValue `json:"environment,omitempty"`
}

// decodeValue unmarshals gsml:value to its trimmed text content.
func decodeValue(n metadata.Node) (any, error) {
	return strings.TrimSpace(n.Text()), nil
}

// decodeTermValue unmarshals gsml:CGI_TermValue. The term lives in a
// gsml:value child carrying an optional codeSpace attribute.
func decodeTermValue(n metadata.Node) (any, error) {
	const op = "gsml.decodeTermValue"

	values, err := n.Query("./gsml:value")
	if err != nil {
		return nil, err
	}
	if len(values) == 0 {
		return nil, geoerr.NewValidationError(op,
			fmt.Errorf("CGI_TermValue carries no gsml:value child"))
	}
	codeSpace, _ := values[0].Attr("codeSpace")
	return &TermValue{
		Value:     strings.TrimSpace(values[0].Text()),
		CodeSpace: codeSpace,
	}, nil
}

// decodeTermRange unmarshals gsml:CGI_TermRange from its lower and upper
// CGI_TermValue children.
func decodeTermRange(n metadata.Node) (any, error) {
	const op = "gsml.decodeTermRange"

	bounds := make(map[string]*TermValue, 2)
	for _, side := range []string{"lower", "upper"} {
		nodes, err := n.Query("./gsml:" + side + "/gsml:CGI_TermValue")
		if err != nil {
			return nil, err
		}
		if len(nodes) == 0 {
			return nil, geoerr.NewValidationError(op,
				fmt.Errorf("CGI_TermRange carries no %s bound", side))
		}
		decoded, err := decodeTermValue(nodes[0])
		if err != nil {
			return nil, err
		}
		bounds[side] = decoded.(*TermValue)
	}
	return &TermRange{Lower: *bounds["lower"], Upper: *bounds["upper"]}, nil
}

// decodeNumericValue unmarshals gsml:CGI_NumericValue from its
// principalValue child and uom attribute.
func decodeNumericValue(n metadata.Node) (any, error) {
	const op = "gsml.decodeNumericValue"

	values, err := n.Query("./gsml:principalValue")
	if err != nil {
		return nil, err
	}
	if len(values) == 0 {
		return nil, geoerr.NewValidationError(op,
			fmt.Errorf("CGI_NumericValue carries no principalValue child"))
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(values[0].Text()), 64)
	if err != nil {
		return nil, geoerr.NewValidationError(op,
			fmt.Errorf("bad principalValue: %w", err))
	}
	uom, _ := values[0].Attr("uom")
	return &NumericValue{Value: v, UOM: uom}, nil
}

// decodePreferredAge unmarshals gsml:preferredAge into a GeologicEvent.
func decodePreferredAge(n metadata.Node) (any, error) {
	const op = "gsml.decodePreferredAge"

	events, err := n.Query("./gsml:GeologicEvent")
	if err != nil {
		return nil, err
	}
	if len(events) == 0 {
		return nil, geoerr.NewValidationError(op,
			fmt.Errorf("preferredAge carries no GeologicEvent child"))
	}
	event := events[0]

	out := &GeologicEvent{}
	if names, err := event.Query("./gml:name"); err == nil && len(names) > 0 {
		out.Name = strings.TrimSpace(names[0].Text())
	}
	ages, err := event.Query("./gsml:eventAge/gsml:CGI_TermRange")
	if err != nil {
		return nil, err
	}
	if len(ages) > 0 {
		decoded, err := decodeTermRange(ages[0])
		if err != nil {
			return nil, err
		}
		out.Age = decoded.(*TermRange)
	}
	for _, part := range []struct {
		path string
		dst  **TermValue
	}{
		{"./gsml:eventProcess/gsml:CGI_TermValue", &out.Process},
		{"./gsml:eventEnvironment/gsml:CGI_TermValue", &out.Environment},
	} {
		nodes, err := event.Query(part.path)
		if err != nil {
			return nil, err
		}
		if len(nodes) > 0 {
			decoded, err := decodeTermValue(nodes[0])
			if err != nil {
				return nil, err
			}
			*part.dst = decoded.(*TermValue)
		}
	}
	return out, nil
}

// decodeObservationMethod unmarshals gsml:observationMethod through its
// CGI_TermValue child.
func decodeObservationMethod(n metadata.Node) (any, error) {
	const op = "gsml.decodeObservationMethod"

	terms, err := n.Query("./gsml:CGI_TermValue")
	if err != nil {
		return nil, err
	}
	if len(terms) == 0 {
		return nil, geoerr.NewValidationError(op,
			fmt.Errorf("observationMethod carries no CGI_TermValue child"))
	}
	return decodeTermValue(terms[0])
}

// decodePositionalAccuracy unmarshals gsml:positionalAccuracy by delegating
// to the handler for its child, which is a CGI_NumericValue in most
// documents and a CGI_TermValue in qualitative ones.
func (r *Registry) decodePositionalAccuracy(n metadata.Node) (any, error) {
	const op = "gsml.decodePositionalAccuracy"

	children := n.Children()
	if len(children) == 0 {
		return nil, geoerr.NewValidationError(op,
			fmt.Errorf("positionalAccuracy carries no value child"))
	}
	return r.Decode(children[0])
}

// decodeSamplingFrame unmarshals gsml:samplingFrame to the frame's xlink
// reference.
func decodeSamplingFrame(n metadata.Node) (any, error) {
	const op = "gsml.decodeSamplingFrame"

	href, ok := n.Attr("xlink:href")
	if !ok {
		return nil, geoerr.NewValidationError(op,
			fmt.Errorf("samplingFrame carries no xlink:href"))
	}
	return href, nil
}
