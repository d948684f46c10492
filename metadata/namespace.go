package metadata

import (
	"fmt"
	"strings"
	"sync"

	"github.com/geosiss/borehole/geoerr"
)

// Namespaces maps XML namespace prefixes to URIs and back. The zero value is
// empty; DefaultNamespaces returns a table preloaded with the OGC and
// GeoSciML vocabularies the unmarshalling layer works with.
//
// Thread-safety: all methods are safe for concurrent use.
type Namespaces struct {
	mu       sync.RWMutex
	byPrefix map[string]string
	byURI    map[string]string
}

// NewNamespaces creates an empty namespace table.
func NewNamespaces() *Namespaces {
	return &Namespaces{
		byPrefix: make(map[string]string),
		byURI:    make(map[string]string),
	}
}

// DefaultNamespaces returns a table preloaded with the namespaces used by
// GeoSciML 2.0 WFS responses.
func DefaultNamespaces() *Namespaces {
	ns := NewNamespaces()
	for prefix, uri := range map[string]string{
		"gml":   "http://www.opengis.net/gml",
		"gsml":  "urn:cgi:xmlns:CGI:GeoSciML:2.0",
		"wfs":   "http://www.opengis.net/wfs",
		"ogc":   "http://www.opengis.net/ogc",
		"om":    "http://www.opengis.net/om/1.0",
		"sa":    "http://www.opengis.net/sampling/1.0",
		"xlink": "http://www.w3.org/1999/xlink",
		"xsi":   "http://www.w3.org/2001/XMLSchema-instance",
	} {
		ns.Register(prefix, uri)
	}
	return ns
}

// Register adds a prefix/URI pair, replacing any previous binding for the
// prefix. The most recently registered prefix wins for Shorten lookups.
func (ns *Namespaces) Register(prefix, uri string) {
	ns.mu.Lock()
	defer ns.mu.Unlock()
	ns.byPrefix[prefix] = uri
	ns.byURI[uri] = prefix
}

// URI returns the namespace URI registered for a prefix.
func (ns *Namespaces) URI(prefix string) (string, bool) {
	ns.mu.RLock()
	defer ns.mu.RUnlock()
	uri, ok := ns.byPrefix[prefix]
	return uri, ok
}

// Prefix returns the prefix registered for a namespace URI.
func (ns *Namespaces) Prefix(uri string) (string, bool) {
	ns.mu.RLock()
	defer ns.mu.RUnlock()
	prefix, ok := ns.byURI[uri]
	return prefix, ok
}

// Prefixes returns a copy of the prefix to URI table, in the form the XPath
// compiler consumes.
func (ns *Namespaces) Prefixes() map[string]string {
	ns.mu.RLock()
	defer ns.mu.RUnlock()
	table := make(map[string]string, len(ns.byPrefix))
	for prefix, uri := range ns.byPrefix {
		table[prefix] = uri
	}
	return table
}

// Expand converts a prefixed name like "gsml:MappedFeature" to Clark
// notation "{urn:cgi:xmlns:CGI:GeoSciML:2.0}MappedFeature". A name without
// a prefix is returned unchanged. An unregistered prefix is a
// geoerr.KindNotFound error.
func (ns *Namespaces) Expand(qname string) (string, error) {
	prefix, local, found := strings.Cut(qname, ":")
	if !found {
		return qname, nil
	}
	uri, ok := ns.URI(prefix)
	if !ok {
		return "", geoerr.NewNotFoundError("Namespaces.Expand",
			fmt.Errorf("namespace prefix %q is not registered", prefix))
	}
	return "{" + uri + "}" + local, nil
}

// Shorten converts a Clark-notation name like "{http://www.opengis.net/gml}Point"
// to its prefixed form "gml:Point". A name without a namespace is returned
// unchanged. An unregistered URI is a geoerr.KindNotFound error.
func (ns *Namespaces) Shorten(expanded string) (string, error) {
	if !strings.HasPrefix(expanded, "{") {
		return expanded, nil
	}
	uri, local, found := strings.Cut(expanded[1:], "}")
	if !found {
		return "", geoerr.NewValidationError("Namespaces.Shorten",
			fmt.Errorf("malformed expanded name %q", expanded))
	}
	prefix, ok := ns.Prefix(uri)
	if !ok {
		return "", geoerr.NewNotFoundError("Namespaces.Shorten",
			fmt.Errorf("namespace URI %q is not registered", uri))
	}
	return prefix + ":" + local, nil
}

// QualifyTag returns the prefixed name for an element given its namespace
// URI and local name, falling back to the bare local name when the URI has
// no registered prefix.
func (ns *Namespaces) QualifyTag(uri, local string) string {
	if uri == "" {
		return local
	}
	prefix, ok := ns.Prefix(uri)
	if !ok {
		return local
	}
	return prefix + ":" + local
}
