// Package borehole is a toolkit for borehole data analysis and geoscience
// metadata handling.
//
// A Borehole is a named container of depth-indexed domains (see the domain
// package) plus point features and a collar position. Raw data arrives
// through the importer package (CSV tables, LAS well logs) or the gsml
// package (GeoSciML/GML documents); exploratory numerics live in the
// analysis package and rendering in the plot package. Metadata records and
// their deduplicating registries live in the metadata package, with
// in-memory, Redis and etcd backends selected through the config package
// and OpenRegistry.
//
// Example:
//
//	b := borehole.New("swdcd-1",
//	    borehole.WithOrigin(borehole.OriginPosition{Latitude: -35.0, Longitude: 138.5}),
//	)
//	dom, err := importer.LAS(logFile)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := b.AddDomain(dom); err != nil {
//	    log.Fatal(err)
//	}
package borehole
