package metadata

// TreeQuerier is the capability a Metadata record needs from its backing
// document: evaluating an XPath expression to a sequence of nodes. It
// decouples records from any specific XML library; Tree is the xmlquery
// implementation shipped with this package.
type TreeQuerier interface {
	// Query evaluates an XPath expression against the tree and returns the
	// matching nodes in document order. Prefixes in the expression resolve
	// through the tree's namespace table.
	Query(expr string) ([]Node, error)
}

// Node is a read-only view of one element in a metadata tree.
type Node interface {
	// Tag returns the element's local name, without namespace prefix.
	Tag() string

	// Namespace returns the element's namespace URI, or "" when the
	// element is unqualified.
	Namespace() string

	// QName returns the element name qualified with the registered prefix
	// for its namespace (e.g. "gsml:MappedFeature"), falling back to the
	// local name when the namespace has no registered prefix.
	QName() string

	// Attr returns the named attribute value. The name may carry a
	// registered namespace prefix (e.g. "xlink:href").
	Attr(name string) (string, bool)

	// Text returns the concatenated text content of the element.
	Text() string

	// Children returns the element's child elements in document order.
	Children() []Node

	// Query evaluates an XPath expression relative to this node.
	Query(expr string) ([]Node, error)
}
