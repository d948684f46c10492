// Package importer loads borehole domains from common raw formats: CSV
// tables of interval or point samples, and LAS 2.0 well-log files.
//
// Columns that parse as numbers become numeric properties; anything else
// becomes a categorical property. Malformed input fails the whole load with
// a validation error carrying the offending row, never a partial domain.
package importer
