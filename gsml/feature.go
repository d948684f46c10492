package gsml

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/geosiss/borehole/geoerr"
	"github.com/geosiss/borehole/metadata"
)

// MappedFeature is a GeoSciML mapped feature: a geologic unit's expression
// on a map sheet, with its observed geometry and provenance terms.
type MappedFeature struct {
	// Ident is the feature's gml:id, or a fresh UUID when the document
	// omits one.
	Ident string `json:"ident"`

	// Shape is the feature's observed geometry.
	Shape *Shape `json:"shape,omitempty"`

	// Projection names the geometry's spatial reference system.
	Projection string `json:"projection,omitempty"`

	// ObservationMethod records how the feature was observed.
	ObservationMethod *TermValue `json:"observation_method,omitempty"`

	// PositionalAccuracy bounds the geometry's positional error.
	PositionalAccuracy *NumericValue `json:"positional_accuracy,omitempty"`

	// SamplingFrame references the frame the feature was mapped against
	// (e.g. bedrock surface).
	SamplingFrame string `json:"sampling_frame,omitempty"`

	// Metadata is the feature's registry record, backed by the element it
	// was decoded from.
	Metadata *metadata.Metadata `json:"-"`
}

// String returns a short description of the feature.
func (f *MappedFeature) String() string {
	if f.Shape == nil {
		return fmt.Sprintf("mapped feature %s (no shape)", f.Ident)
	}
	return fmt.Sprintf("mapped feature %s: %s", f.Ident, f.Shape)
}

// decodeMappedFeature unmarshals gsml:MappedFeature into a typed feature
// with a metadata record backed by the source element.
func (r *Registry) decodeMappedFeature(n metadata.Node) (any, error) {
	ident, _ := n.Attr("gml:id")

	feature := &MappedFeature{}
	attrs := []metadata.RecordOption{}

	for _, child := range n.Children() {
		tag := child.QName()
		if !r.Handles(tag) {
			// MappedFeature carries specification references and other
			// members this vocabulary does not model; only decode the
			// parts with handlers.
			continue
		}
		decoded, err := r.Decode(child)
		if err != nil {
			return nil, err
		}
		switch tag {
		case "gsml:shape":
			feature.Shape = decoded.(*Shape)
			feature.Projection = feature.Shape.SRS
			attrs = append(attrs, metadata.WithAttr("projection", feature.Projection))
		case "gsml:observationMethod":
			feature.ObservationMethod = decoded.(*TermValue)
			attrs = append(attrs, metadata.WithAttr("observation_method", feature.ObservationMethod.Value))
		case "gsml:positionalAccuracy":
			if nv, ok := decoded.(*NumericValue); ok {
				feature.PositionalAccuracy = nv
				attrs = append(attrs, metadata.WithAttr("positional_accuracy", nv.Value))
			}
		case "gsml:samplingFrame":
			feature.SamplingFrame = decoded.(string)
			attrs = append(attrs, metadata.WithAttr("sampling_frame", feature.SamplingFrame))
		}
	}

	feature.Metadata = metadata.New(ident, "gsml:MappedFeature", nodeTree{n}, attrs...)
	feature.Ident = feature.Metadata.Ident
	return feature, nil
}

// nodeTree adapts a decoded element to the TreeQuerier capability so its
// metadata record can answer XPath queries scoped to the element.
type nodeTree struct {
	n metadata.Node
}

func (t nodeTree) Query(expr string) ([]metadata.Node, error) {
	return t.n.Query(expr)
}

// DecodeOption adjusts document decoding.
type DecodeOption func(*decodeOptions)

type decodeOptions struct {
	allowUnknown bool
	logger       *slog.Logger
	namespaces   *metadata.Namespaces
}

// AllowUnknown makes DecodeDocument skip and log feature members with no
// registered handler instead of failing on the first one.
func AllowUnknown() DecodeOption {
	return func(o *decodeOptions) {
		o.allowUnknown = true
	}
}

// WithLogger sets the logger used for skipped members and decode progress.
func WithLogger(logger *slog.Logger) DecodeOption {
	return func(o *decodeOptions) {
		o.logger = logger
	}
}

// WithNamespaces overrides the namespace table the document is parsed with.
func WithNamespaces(ns *metadata.Namespaces) DecodeOption {
	return func(o *decodeOptions) {
		o.namespaces = ns
	}
}

// DecodeDocument walks a WFS feature collection and unmarshals every feature
// member through the registry's dispatch table.
//
// Each decoded mapped feature's metadata record is registered through reg,
// so features repeated across documents dedup to their canonical record; a
// nil reg skips registration. A member element with no registered handler
// fails with a geoerr.KindUnknownElement error unless AllowUnknown is set,
// in which case it is logged and skipped.
func (r *Registry) DecodeDocument(ctx context.Context, reader io.Reader, reg metadata.Registry, opts ...DecodeOption) ([]*MappedFeature, error) {
	const op = "Registry.DecodeDocument"

	o := decodeOptions{logger: slog.Default()}
	for _, opt := range opts {
		opt(&o)
	}

	tree, err := metadata.ParseTree(reader, o.namespaces)
	if err != nil {
		return nil, err
	}

	members, err := tree.Query("//gml:featureMember/*")
	if err != nil {
		return nil, err
	}

	features := make([]*MappedFeature, 0, len(members))
	for _, member := range members {
		if err := ctx.Err(); err != nil {
			return nil, geoerr.NewInternalError(op, err)
		}

		decoded, err := r.Decode(member)
		if err != nil {
			if o.allowUnknown && geoerr.IsKind(err, geoerr.KindUnknownElement) {
				o.logger.Warn("skipping feature member with no unmarshaller",
					"tag", member.QName())
				continue
			}
			return nil, err
		}

		feature, ok := decoded.(*MappedFeature)
		if !ok {
			o.logger.Debug("decoded non-feature member",
				"tag", member.QName())
			continue
		}
		if reg != nil {
			canonical, err := reg.Register(ctx, feature.Metadata)
			if err != nil {
				return nil, err
			}
			feature.Metadata = canonical
			feature.Ident = canonical.Ident
		}
		features = append(features, feature)
	}

	o.logger.Debug("decoded feature collection",
		"members", len(members),
		"features", len(features))
	return features, nil
}
