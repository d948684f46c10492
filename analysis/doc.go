// Package analysis provides exploratory numerical analysis over borehole
// domains: correlation structure between logged properties, clustering and
// 2-D embedding of related signals, CUSUM change detection, and wavelet and
// spectral transforms.
//
// Analysis works on a Node, a dense working set built from one domain's
// numeric properties. The Analyser runs the standard exploratory pipeline
// (correlation, clustering, embedding, eigensignals) in one pass and can be
// instrumented with OpenTelemetry tracing and metrics.
//
// All computation is synchronous, single-pass and in-memory; the numerical
// heavy lifting is delegated to gonum.
package analysis
