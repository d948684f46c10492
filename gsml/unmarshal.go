package gsml

import (
	"fmt"

	"github.com/geosiss/borehole/geoerr"
	"github.com/geosiss/borehole/metadata"
)

// Unmarshaller converts one kind of XML element into its typed value.
type Unmarshaller interface {
	// Tag returns the qualified element name this handler decodes
	// (e.g. "gsml:CGI_TermValue").
	Tag() string

	// Unmarshal converts the element into its typed value.
	Unmarshal(n metadata.Node) (any, error)
}

// UnmarshalFunc adapts a function to the Unmarshaller interface.
type UnmarshalFunc struct {
	Name string
	Fn   func(n metadata.Node) (any, error)
}

// Tag returns the qualified element name this handler decodes.
func (u UnmarshalFunc) Tag() string { return u.Name }

// Unmarshal converts the element into its typed value.
func (u UnmarshalFunc) Unmarshal(n metadata.Node) (any, error) { return u.Fn(n) }

// Registry maps qualified element names to unmarshallers. Handlers are
// resolved at decode time; decoding an element with no handler is a
// geoerr.KindUnknownElement error.
type Registry struct {
	handlers map[string]Unmarshaller
}

// NewRegistry creates a dispatch registry preloaded with the GML geometry
// handlers and the GeoSciML 2.0 vocabulary handlers.
func NewRegistry() *Registry {
	r := &Registry{handlers: make(map[string]Unmarshaller)}
	r.registerDefaults()
	return r
}

// Register adds a handler to the table, replacing any handler already
// registered for the same tag.
func (r *Registry) Register(u Unmarshaller) error {
	if u == nil || u.Tag() == "" {
		return geoerr.NewValidationError("Registry.Register",
			fmt.Errorf("unmarshaller must carry a tag"))
	}
	r.handlers[u.Tag()] = u
	return nil
}

// register wires a decode function under a tag.
func (r *Registry) register(tag string, fn func(n metadata.Node) (any, error)) {
	r.handlers[tag] = UnmarshalFunc{Name: tag, Fn: fn}
}

// Tags returns the qualified names with registered handlers.
func (r *Registry) Tags() []string {
	tags := make([]string, 0, len(r.handlers))
	for tag := range r.handlers {
		tags = append(tags, tag)
	}
	return tags
}

// Handles reports whether a handler is registered for the qualified name.
func (r *Registry) Handles(tag string) bool {
	_, ok := r.handlers[tag]
	return ok
}

// Decode unmarshals an element through the handler registered for its
// qualified name. An element with no handler fails with a
// geoerr.KindUnknownElement error naming the tag.
func (r *Registry) Decode(n metadata.Node) (any, error) {
	const op = "Registry.Decode"

	if n == nil {
		return nil, geoerr.NewValidationError(op, fmt.Errorf("element must not be nil"))
	}
	tag := n.QName()
	handler, ok := r.handlers[tag]
	if !ok {
		return nil, geoerr.NewUnknownElementError(op,
			fmt.Errorf("%w: %s", geoerr.ErrUnknownElement, tag)).
			WithContext(map[string]any{"tag": tag})
	}
	return handler.Unmarshal(n)
}

// registerDefaults loads the stock GML and GeoSciML handlers.
func (r *Registry) registerDefaults() {
	r.register("gml:Point", decodePoint)
	r.register("gml:LineString", decodeLineString)
	r.register("gml:Polygon", decodePolygon)

	r.register("gsml:shape", r.decodeShape)
	r.register("gsml:value", decodeValue)
	r.register("gsml:CGI_TermValue", decodeTermValue)
	r.register("gsml:CGI_TermRange", decodeTermRange)
	r.register("gsml:CGI_NumericValue", decodeNumericValue)
	r.register("gsml:preferredAge", decodePreferredAge)
	r.register("gsml:observationMethod", decodeObservationMethod)
	r.register("gsml:positionalAccuracy", r.decodePositionalAccuracy)
	r.register("gsml:samplingFrame", decodeSamplingFrame)
	r.register("gsml:MappedFeature", r.decodeMappedFeature)
}
