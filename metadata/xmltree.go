package metadata

import (
	"fmt"
	"io"

	"github.com/antchfx/xmlquery"
	"github.com/antchfx/xpath"

	"github.com/geosiss/borehole/geoerr"
)

// Tree adapts a parsed xmlquery document to the TreeQuerier capability.
// XPath prefixes in queries resolve through the tree's namespace table.
type Tree struct {
	root *xmlquery.Node
	ns   *Namespaces
}

// ParseTree parses an XML document into a Tree. A nil namespace table is
// replaced with DefaultNamespaces.
func ParseTree(r io.Reader, ns *Namespaces) (*Tree, error) {
	const op = "ParseTree"

	doc, err := xmlquery.Parse(r)
	if err != nil {
		return nil, geoerr.NewValidationError(op, fmt.Errorf("parse xml: %w", err))
	}
	if ns == nil {
		ns = DefaultNamespaces()
	}
	return &Tree{root: doc, ns: ns}, nil
}

// NewTree wraps an already parsed xmlquery node.
func NewTree(root *xmlquery.Node, ns *Namespaces) *Tree {
	if ns == nil {
		ns = DefaultNamespaces()
	}
	return &Tree{root: root, ns: ns}
}

// Namespaces returns the namespace table queries resolve against.
func (t *Tree) Namespaces() *Namespaces { return t.ns }

// Root returns the document root as a Node, or nil for an empty document.
func (t *Tree) Root() Node {
	for child := t.root.FirstChild; child != nil; child = child.NextSibling {
		if child.Type == xmlquery.ElementNode {
			return &xmlNode{n: child, ns: t.ns}
		}
	}
	return nil
}

// Query evaluates a namespace-aware XPath expression against the document.
func (t *Tree) Query(expr string) ([]Node, error) {
	return queryNodes(t.root, expr, t.ns)
}

// queryNodes compiles expr with the namespace bindings and evaluates it
// relative to n. Compilation failures are geoerr.KindQuery errors.
func queryNodes(n *xmlquery.Node, expr string, ns *Namespaces) ([]Node, error) {
	const op = "Tree.Query"

	compiled, err := xpath.CompileWithNS(expr, ns.Prefixes())
	if err != nil {
		return nil, geoerr.NewQueryError(op, err).
			WithContext(map[string]any{"expression": expr})
	}

	matches := xmlquery.QuerySelectorAll(n, compiled)
	nodes := make([]Node, 0, len(matches))
	for _, m := range matches {
		nodes = append(nodes, &xmlNode{n: m, ns: ns})
	}
	return nodes, nil
}

// xmlNode implements Node over an xmlquery element.
type xmlNode struct {
	n  *xmlquery.Node
	ns *Namespaces
}

func (x *xmlNode) Tag() string       { return x.n.Data }
func (x *xmlNode) Namespace() string { return x.n.NamespaceURI }

func (x *xmlNode) QName() string {
	return x.ns.QualifyTag(x.n.NamespaceURI, x.n.Data)
}

func (x *xmlNode) Attr(name string) (string, bool) {
	// Attribute names may arrive prefixed; compare against both the raw
	// prefixed form and the resolved namespace.
	wantURI := ""
	wantLocal := name
	if expanded, err := x.ns.Expand(name); err == nil && expanded != name {
		uri, local, _ := splitClark(expanded)
		wantURI, wantLocal = uri, local
	}
	for _, attr := range x.n.Attr {
		if attr.Name.Local != wantLocal {
			continue
		}
		if wantURI == "" || attr.NamespaceURI == wantURI {
			return attr.Value, true
		}
	}
	return "", false
}

func (x *xmlNode) Text() string { return x.n.InnerText() }

func (x *xmlNode) Children() []Node {
	var children []Node
	for child := x.n.FirstChild; child != nil; child = child.NextSibling {
		if child.Type == xmlquery.ElementNode {
			children = append(children, &xmlNode{n: child, ns: x.ns})
		}
	}
	return children
}

func (x *xmlNode) Query(expr string) ([]Node, error) {
	return queryNodes(x.n, expr, x.ns)
}

// splitClark splits a Clark-notation name "{uri}local" into its parts.
func splitClark(name string) (uri, local string, ok bool) {
	if len(name) == 0 || name[0] != '{' {
		return "", name, false
	}
	for i := 1; i < len(name); i++ {
		if name[i] == '}' {
			return name[1:i], name[i+1:], true
		}
	}
	return "", name, false
}
