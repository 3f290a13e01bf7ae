// Package graphflow builds and manipulates property graphs held as
// partitioned collections.
//
// Raw records keyed by external identifiers are resolved into a graph whose
// elements carry compact 12-byte identifiers (package id). Every edge
// endpoint refers to an existing vertex, and every element records the
// graphs it belongs to.
//
// # Quick Start
//
// From an edge list blob:
//
//	ctx := context.Background()
//	p := graphflow.New(graphflow.WithParallelism(8))
//	g, report, _ := p.ReadEdgeList(ctx, blobstore.NewLocalStore("./data"), "edges.tsv")
//	degrees, _ := p.Degrees(ctx, g, operator.Outgoing)
//
// From import records:
//
//	g, report, _ := graphflow.Build(ctx, p, vertices, edges)
//
// Edge lists can also be read from S3 (blobstore/s3) or MinIO
// (blobstore/minio).
//
// # Packages
//
//   - id: identifiers, the generator and the identifier set
//   - model: property values, elements, logical graphs and collections
//   - dataflow: partitioned collections with map, join, group, reduce and zip
//   - construct: identity resolution and graph construction
//   - operator: graph combination and degree statistics
//   - edgelist: the edge list reader and graph source
//   - wire: framed element batches with optional compression
//
// # Observability
//
// Pass a Logger with WithLogger and a MetricsCollector with
// WithMetricsCollector. Both default to no-ops.
package graphflow
