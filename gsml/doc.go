// Package gsml unmarshals GeoSciML 2.0 and GML elements into typed feature
// and vocabulary objects.
//
// Unmarshalling is driven by a dispatch Registry mapping qualified element
// names ("gsml:MappedFeature", "gml:Point") to handlers. Lookup happens at
// decode time, so vocabularies can extend the table before walking a
// document; an element with no registered handler fails with a
// geoerr.KindUnknownElement error rather than silently doing nothing.
//
// DecodeDocument walks a WFS feature collection, unmarshals every feature
// member and registers the resulting metadata records through a supplied
// metadata.Registry, deduplicating features by identifier.
package gsml
