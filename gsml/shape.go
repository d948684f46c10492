package gsml

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/geosiss/borehole/geoerr"
	"github.com/geosiss/borehole/metadata"
)

// ShapeKind names a decoded GML geometry type.
type ShapeKind string

const (
	// ShapePoint is a single coordinate position.
	ShapePoint ShapeKind = "point"

	// ShapeLineString is an ordered coordinate path.
	ShapeLineString ShapeKind = "linestring"

	// ShapePolygon is the exterior ring of a surface.
	ShapePolygon ShapeKind = "polygon"
)

// Coord is one coordinate position. Axis order follows the source document's
// spatial reference system.
type Coord struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Shape is a decoded GML geometry.
type Shape struct {
	// Kind is the geometry type.
	Kind ShapeKind `json:"kind"`

	// SRS names the spatial reference system from the element's srsName
	// attribute (e.g. "EPSG:4326"), or "" when unstated.
	SRS string `json:"srs,omitempty"`

	// Coords holds the geometry's positions: one for a point, the path for
	// a line string, the exterior ring for a polygon.
	Coords []Coord `json:"coords"`
}

// String returns a short description of the shape.
func (s *Shape) String() string {
	return fmt.Sprintf("%s with %d positions (%s)", s.Kind, len(s.Coords), s.SRS)
}

// parseCoords splits whitespace-separated ordinates into coordinate pairs.
func parseCoords(op, text string) ([]Coord, error) {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return nil, geoerr.NewValidationError(op,
			fmt.Errorf("geometry carries no coordinates"))
	}
	if len(fields)%2 != 0 {
		return nil, geoerr.NewValidationError(op,
			fmt.Errorf("odd ordinate count %d in coordinate list", len(fields)))
	}

	coords := make([]Coord, len(fields)/2)
	for i := range coords {
		x, err := strconv.ParseFloat(fields[2*i], 64)
		if err != nil {
			return nil, geoerr.NewValidationError(op,
				fmt.Errorf("bad ordinate %q: %w", fields[2*i], err))
		}
		y, err := strconv.ParseFloat(fields[2*i+1], 64)
		if err != nil {
			return nil, geoerr.NewValidationError(op,
				fmt.Errorf("bad ordinate %q: %w", fields[2*i+1], err))
		}
		coords[i] = Coord{X: x, Y: y}
	}
	return coords, nil
}

// srsName reads the geometry's spatial reference system attribute.
func srsName(n metadata.Node) string {
	srs, _ := n.Attr("srsName")
	return srs
}

// positionText finds the coordinate payload of a geometry element, accepting
// both the GML 3 pos/posList forms and the legacy coordinates form.
func positionText(op string, n metadata.Node, names ...string) (string, error) {
	for _, name := range names {
		nodes, err := n.Query(".//" + name)
		if err != nil {
			return "", err
		}
		if len(nodes) > 0 {
			return nodes[0].Text(), nil
		}
	}
	return "", geoerr.NewValidationError(op,
		fmt.Errorf("geometry %s carries no position element", n.QName()))
}

// decodePoint unmarshals gml:Point into a point Shape.
func decodePoint(n metadata.Node) (any, error) {
	const op = "gsml.decodePoint"

	text, err := positionText(op, n, "gml:pos", "gml:coordinates")
	if err != nil {
		return nil, err
	}
	// Legacy coordinates elements separate ordinates with commas.
	coords, err := parseCoords(op, strings.ReplaceAll(text, ",", " "))
	if err != nil {
		return nil, err
	}
	if len(coords) != 1 {
		return nil, geoerr.NewValidationError(op,
			fmt.Errorf("point carries %d positions, want 1", len(coords)))
	}
	return &Shape{Kind: ShapePoint, SRS: srsName(n), Coords: coords}, nil
}

// decodeLineString unmarshals gml:LineString into a path Shape.
func decodeLineString(n metadata.Node) (any, error) {
	const op = "gsml.decodeLineString"

	text, err := positionText(op, n, "gml:posList", "gml:coordinates")
	if err != nil {
		return nil, err
	}
	coords, err := parseCoords(op, strings.ReplaceAll(text, ",", " "))
	if err != nil {
		return nil, err
	}
	if len(coords) < 2 {
		return nil, geoerr.NewValidationError(op,
			fmt.Errorf("line string carries %d positions, want at least 2", len(coords)))
	}
	return &Shape{Kind: ShapeLineString, SRS: srsName(n), Coords: coords}, nil
}

// decodePolygon unmarshals gml:Polygon into an exterior-ring Shape. Interior
// rings are not modelled.
func decodePolygon(n metadata.Node) (any, error) {
	const op = "gsml.decodePolygon"

	rings, err := n.Query(".//gml:exterior//gml:posList")
	if err != nil {
		return nil, err
	}
	if len(rings) == 0 {
		rings, err = n.Query(".//gml:outerBoundaryIs//gml:coordinates")
		if err != nil {
			return nil, err
		}
	}
	if len(rings) == 0 {
		return nil, geoerr.NewValidationError(op,
			fmt.Errorf("polygon carries no exterior ring"))
	}
	coords, err := parseCoords(op, strings.ReplaceAll(rings[0].Text(), ",", " "))
	if err != nil {
		return nil, err
	}
	if len(coords) < 3 {
		return nil, geoerr.NewValidationError(op,
			fmt.Errorf("polygon ring carries %d positions, want at least 3", len(coords)))
	}
	return &Shape{Kind: ShapePolygon, SRS: srsName(n), Coords: coords}, nil
}

// decodeShape unmarshals gsml:shape by delegating to the handler for its
// geometry child.
func (r *Registry) decodeShape(n metadata.Node) (any, error) {
	const op = "gsml.decodeShape"

	children := n.Children()
	if len(children) == 0 {
		return nil, geoerr.NewValidationError(op,
			fmt.Errorf("shape element carries no geometry child"))
	}
	decoded, err := r.Decode(children[0])
	if err != nil {
		return nil, err
	}
	shape, ok := decoded.(*Shape)
	if !ok {
		return nil, geoerr.NewValidationError(op,
			fmt.Errorf("shape child %s decoded to %T, want geometry", children[0].QName(), decoded))
	}
	return shape, nil
}
