package graphflow

import (
	"context"
	"time"

	"github.com/hupe1980/graphflow/blobstore"
	"github.com/hupe1980/graphflow/construct"
	"github.com/hupe1980/graphflow/dataflow"
	"github.com/hupe1980/graphflow/edgelist"
	"github.com/hupe1980/graphflow/id"
	"github.com/hupe1980/graphflow/model"
	"github.com/hupe1980/graphflow/operator"
)

// Graph types returned by a Pipeline.
type (
	LogicalGraph    = model.LogicalGraph
	GraphCollection = model.GraphCollection
)

// Pipeline runs graph construction and operators on one execution
// environment with shared options, logging and metrics.
//
// A Pipeline is safe for concurrent use.
type Pipeline struct {
	env  *dataflow.Env
	opts options
}

// New creates a pipeline.
func New(optFns ...Option) *Pipeline {
	o := applyOptions(optFns)
	env := dataflow.NewEnv(
		dataflow.WithParallelism(o.parallelism),
		dataflow.WithController(o.controller),
		dataflow.WithLogger(o.logger.Logger),
	)
	o.logger = o.logger.WithParallelism(env.Parallelism())
	return &Pipeline{env: env, opts: o}
}

// Env returns the execution environment of the pipeline.
func (p *Pipeline) Env() *dataflow.Env {
	return p.env
}

// Build resolves import records into a logical graph with pipeline p.
// All records belong to one combined graph regardless of their graph keys.
func Build[K comparable](ctx context.Context, p *Pipeline, vertices []model.ImportVertex[K], edges []model.ImportEdge[K]) (*model.LogicalGraph, *construct.Report, error) {
	start := time.Now()
	g, report, err := construct.BuildLogicalGraph(ctx, p.env,
		dataflow.FromSlice(p.env, vertices),
		dataflow.FromSlice(p.env, edges),
		p.opts.buildOptions()...,
	)
	p.recordBuild(ctx, report, time.Since(start), err)
	if err != nil {
		return nil, nil, translateError(err)
	}
	return g, report, nil
}

// BuildCollection resolves import records into a graph collection with one
// graph per graph key.
func BuildCollection[K comparable](ctx context.Context, p *Pipeline, vertices []model.ImportVertex[K], edges []model.ImportEdge[K]) (*model.GraphCollection, *construct.Report, error) {
	start := time.Now()
	coll, report, err := construct.Build(ctx, p.env,
		dataflow.FromSlice(p.env, vertices),
		dataflow.FromSlice(p.env, edges),
		p.opts.buildOptions()...,
	)
	p.recordBuild(ctx, report, time.Since(start), err)
	if err != nil {
		return nil, nil, translateError(err)
	}
	return coll, report, nil
}

// ReadEdgeList reads the edge list blob name from store and builds one
// logical graph from it.
func (p *Pipeline) ReadEdgeList(ctx context.Context, store blobstore.BlobStore, name string) (*model.LogicalGraph, *edgelist.Report, error) {
	start := time.Now()
	g, report, err := p.source(store, name).LogicalGraph(ctx)
	p.recordEdgeList(ctx, name, report, time.Since(start), err)
	if err != nil {
		return nil, nil, translateError(err)
	}
	return g, report, nil
}

// ReadEdgeListCollection reads the edge list blob name from store into a
// graph collection.
func (p *Pipeline) ReadEdgeListCollection(ctx context.Context, store blobstore.BlobStore, name string) (*model.GraphCollection, *edgelist.Report, error) {
	start := time.Now()
	coll, report, err := p.source(store, name).GraphCollection(ctx)
	p.recordEdgeList(ctx, name, report, time.Since(start), err)
	if err != nil {
		return nil, nil, translateError(err)
	}
	return coll, report, nil
}

// Combine merges graphs into one new logical graph.
func (p *Pipeline) Combine(ctx context.Context, graphs ...*model.LogicalGraph) (*model.LogicalGraph, error) {
	start := time.Now()
	g, err := operator.Combine(ctx, graphs, p.opts.operatorOptions()...)
	p.opts.metricsCollector.RecordOperator("combine", time.Since(start), err)
	p.opts.logger.WithOperator("combine").LogCombine(ctx, len(graphs), err)
	if err != nil {
		return nil, translateError(err)
	}
	return g, nil
}

// Degrees counts the edges of every vertex of g in direction dir.
// Vertices without edges report zero.
func (p *Pipeline) Degrees(ctx context.Context, g *model.LogicalGraph, dir operator.Direction) (map[id.ID]int64, error) {
	start := time.Now()
	degrees, err := operator.VertexDegrees(ctx, g, dir)
	p.opts.metricsCollector.RecordOperator("degrees", time.Since(start), err)
	if err != nil {
		p.opts.logger.WithOperator("degrees").LogDegrees(ctx, dir, 0, err)
		return nil, translateError(err)
	}

	out := make(map[id.ID]int64, degrees.Count())
	for _, d := range degrees.Collect() {
		out[d.Value] = d.Count
	}
	p.opts.logger.WithOperator("degrees").LogDegrees(ctx, dir, len(out), nil)
	return out, nil
}

// DegreeDistribution counts how many vertices of g have each degree in
// direction dir.
func (p *Pipeline) DegreeDistribution(ctx context.Context, g *model.LogicalGraph, dir operator.Direction) (map[int64]int64, error) {
	start := time.Now()
	log := p.opts.logger.WithOperator("degree_distribution")
	degrees, err := operator.VertexDegrees(ctx, g, dir)
	var dist *dataflow.Collection[operator.WithCount[int64]]
	if err == nil {
		dist, err = operator.DegreeDistribution(ctx, degrees)
	}
	p.opts.metricsCollector.RecordOperator("degree_distribution", time.Since(start), err)
	if err != nil {
		log.LogDegreeDistribution(ctx, dir, 0, err)
		return nil, translateError(err)
	}

	out := make(map[int64]int64, dist.Count())
	for _, d := range dist.Collect() {
		out[d.Value] = d.Count
	}
	log.LogDegreeDistribution(ctx, dir, len(out), nil)
	return out, nil
}

func (p *Pipeline) source(store blobstore.BlobStore, name string) *edgelist.Source {
	return edgelist.NewSource(store, name,
		edgelist.WithEnv(p.env),
		edgelist.WithConfig(p.opts.edgeList),
		edgelist.WithBuildOptions(p.opts.buildOptions()...),
	)
}

func (p *Pipeline) recordBuild(ctx context.Context, report *construct.Report, d time.Duration, err error) {
	if err != nil {
		p.opts.metricsCollector.RecordBuild(0, 0, 0, d, err)
		p.opts.logger.LogBuild(ctx, nil, err)
		return
	}
	p.recordBuildWith(ctx, p.opts.logger, report, d)
}

func (p *Pipeline) recordEdgeList(ctx context.Context, name string, report *edgelist.Report, d time.Duration, err error) {
	l := p.opts.logger.WithSource(name)
	if err != nil {
		p.opts.metricsCollector.RecordRead(0, 0, d, err)
		l.LogBuild(ctx, nil, err)
		return
	}
	p.opts.metricsCollector.RecordRead(report.Read.Records, int(report.Read.Skipped.GetCardinality()), d, nil)
	l.LogMalformed(ctx, report.Read)
	p.recordBuildWith(ctx, l, report.Build, d)
}

func (p *Pipeline) recordBuildWith(ctx context.Context, l *Logger, report *construct.Report, d time.Duration) {
	p.opts.metricsCollector.RecordBuild(report.Vertices, report.Edges, int(report.DroppedEdges.GetCardinality()), d, nil)
	l.LogBuild(ctx, report, nil)
}
