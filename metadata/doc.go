// Package metadata provides XML-backed geoscience metadata records and
// registries for deduplicating them by identity.
//
// A Metadata record pairs an identifier with a reference into a parsed XML
// tree. Records never depend on a concrete XML library: they hold a
// TreeQuerier capability, and the Tree adapter in this package implements it
// over github.com/antchfx/xmlquery with namespace-aware XPath.
//
// Registries make the process-wide identity map of the original toolkit an
// explicitly passed object with a scoped lifetime. Three implementations are
// provided: MemoryRegistry for single-process analysis runs, RedisRegistry
// and EtcdRegistry for sharing records between processes. All three apply
// the same dedup rule: registering an identifier that is already present
// returns the canonical first record instead of overwriting it.
package metadata
