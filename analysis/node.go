package analysis

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/geosiss/borehole/domain"
	"github.com/geosiss/borehole/geoerr"
)

// DepthDomain is the slice of the domain model analysis works against:
// any domain whose indices are point depths. SamplingDomain, WaveletDomain
// and SpectralDomain all qualify; an IntervalDomain is converted first with
// ToSampling.
type DepthDomain interface {
	domain.Domain

	// Depths returns the domain's sample depths.
	Depths() []float64
}

// Node is a dense analysis working set: the numeric properties of one
// domain, column-packed into a matrix with one row per depth sample.
type Node struct {
	name   string
	keys   []string
	labels map[string]string
	depths []float64
	data   *mat.Dense
}

// NewNode builds a working set from a domain's numeric properties. With no
// keys given, every numeric property is included in insertion order; with
// keys, exactly those properties are included in the given order. A missing
// key is a geoerr.KindNotFound error and a categorical key is a
// geoerr.KindValidation error. The domain must hold at least one sample and
// one numeric property.
//
// Property values are copied into the node's matrix; later analysis never
// writes back to the domain.
func NewNode(dom DepthDomain, keys ...string) (*Node, error) {
	const op = "NewNode"

	if dom == nil {
		return nil, geoerr.NewValidationError(op, fmt.Errorf("domain must not be nil"))
	}
	if dom.Size() == 0 {
		return nil, geoerr.NewValidationError(op,
			fmt.Errorf("domain %s holds no samples", dom.Name()))
	}

	var props []*domain.Property
	if len(keys) == 0 {
		for _, p := range dom.Properties() {
			if p.IsNumeric() {
				props = append(props, p)
			}
		}
	} else {
		for _, key := range keys {
			p, ok := dom.Property(key)
			if !ok {
				return nil, geoerr.NewNotFoundError(op,
					fmt.Errorf("%w: %s", geoerr.ErrPropertyNotFound, key))
			}
			if !p.IsNumeric() {
				return nil, geoerr.NewValidationError(op,
					fmt.Errorf("property %q is categorical; analysis needs numeric signals", key))
			}
			props = append(props, p)
		}
	}
	if len(props) == 0 {
		return nil, geoerr.NewValidationError(op,
			fmt.Errorf("domain %s has no numeric properties", dom.Name()))
	}

	n := dom.Size()
	data := mat.NewDense(n, len(props), nil)
	node := &Node{
		name:   dom.Name(),
		keys:   make([]string, len(props)),
		labels: make(map[string]string, len(props)),
		depths: dom.Depths(),
		data:   data,
	}
	for j, p := range props {
		node.keys[j] = p.Name
		node.labels[p.Name] = p.Label()
		for i, v := range p.Values {
			data.Set(i, j, v)
		}
	}
	return node, nil
}

// Name returns the source domain's name.
func (n *Node) Name() string { return n.name }

// Keys returns the property names in column order.
func (n *Node) Keys() []string { return n.keys }

// Label returns the display label for a key.
func (n *Node) Label(key string) string {
	if label, ok := n.labels[key]; ok {
		return label
	}
	return key
}

// Depths returns the depth axis shared by every signal.
func (n *Node) Depths() []float64 { return n.depths }

// Size returns the number of depth samples.
func (n *Node) Size() int { return len(n.depths) }

// Data returns the working matrix, one row per depth sample and one column
// per key. The matrix is the node's backing store; callers must treat it as
// read-only.
func (n *Node) Data() *mat.Dense { return n.data }

// Signal returns a fresh copy of the named key's column.
func (n *Node) Signal(key string) ([]float64, error) {
	for j, k := range n.keys {
		if k == key {
			return mat.Col(nil, j, n.data), nil
		}
	}
	return nil, geoerr.NewNotFoundError("Node.Signal",
		fmt.Errorf("%w: %s", geoerr.ErrPropertyNotFound, key))
}

// String returns a short description of the node.
func (n *Node) String() string {
	return fmt.Sprintf("analysis node %s: %d signals over %d depths",
		n.name, len(n.keys), len(n.depths))
}
