package edgelist

import (
	"context"
	"fmt"

	"github.com/hupe1980/graphflow/blobstore"
	"github.com/hupe1980/graphflow/construct"
	"github.com/hupe1980/graphflow/dataflow"
	"github.com/hupe1980/graphflow/model"
)

// Report summarizes reading and building a graph from an edge list.
type Report struct {
	Read  *ReadReport
	Build *construct.Report
}

// Source builds graphs from an edge list blob.
type Source struct {
	store     blobstore.BlobStore
	name      string
	cfg       Config
	env       *dataflow.Env
	buildOpts []construct.Option
}

// SourceOption configures a Source.
type SourceOption func(*Source)

// WithConfig sets the read configuration.
func WithConfig(cfg Config) SourceOption {
	return func(s *Source) {
		s.cfg = cfg
	}
}

// WithEnv sets the execution environment. Default: dataflow.NewEnv().
func WithEnv(env *dataflow.Env) SourceOption {
	return func(s *Source) {
		s.env = env
	}
}

// WithBuildOptions passes options to the graph constructor.
func WithBuildOptions(optFns ...construct.Option) SourceOption {
	return func(s *Source) {
		s.buildOpts = append(s.buildOpts, optFns...)
	}
}

// NewSource creates a source reading blob name from store.
func NewSource(store blobstore.BlobStore, name string, optFns ...SourceOption) *Source {
	s := &Source{store: store, name: name}
	for _, fn := range optFns {
		if fn != nil {
			fn(s)
		}
	}
	if s.env == nil {
		s.env = dataflow.NewEnv()
	}
	s.cfg = s.cfg.withDefaults()
	return s
}

// GraphCollection reads the edge list and builds a graph collection with a
// single default graph.
func (s *Source) GraphCollection(ctx context.Context) (*model.GraphCollection, *Report, error) {
	vertices, edges, readReport, err := s.importRecords(ctx)
	if err != nil {
		return nil, nil, err
	}
	coll, buildReport, err := construct.Build(ctx, s.env, vertices, edges, s.buildOpts...)
	if err != nil {
		return nil, nil, err
	}
	return coll, &Report{Read: readReport, Build: buildReport}, nil
}

// LogicalGraph reads the edge list and combines the result into one
// logical graph.
func (s *Source) LogicalGraph(ctx context.Context) (*model.LogicalGraph, *Report, error) {
	vertices, edges, readReport, err := s.importRecords(ctx)
	if err != nil {
		return nil, nil, err
	}
	g, buildReport, err := construct.BuildLogicalGraph(ctx, s.env, vertices, edges, s.buildOpts...)
	if err != nil {
		return nil, nil, err
	}
	return g, &Report{Read: readReport, Build: buildReport}, nil
}

type vertexValue struct {
	id    int64
	value string
}

func (s *Source) importRecords(ctx context.Context) (
	*dataflow.Collection[model.ImportVertex[int64]],
	*dataflow.Collection[model.ImportEdge[int64]],
	*ReadReport,
	error,
) {
	blob, err := s.store.Open(ctx, s.name)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("edgelist: open %s: %w", s.name, err)
	}
	r := blobstore.NewReader(ctx, blob)
	defer r.Close()

	lines, report, err := Read(ctx, r, s.cfg)
	if err != nil {
		return nil, nil, nil, err
	}
	records := dataflow.FromSlice(s.env, lines)

	// Vertices: both endpoints of every line, first value per ID wins.
	values, err := dataflow.FlatMap(ctx, records, func(l Line, emit func(vertexValue)) error {
		emit(vertexValue{id: l.SourceID, value: l.SourceValue})
		emit(vertexValue{id: l.TargetID, value: l.TargetValue})
		return nil
	})
	if err != nil {
		return nil, nil, nil, err
	}
	distinct, err := dataflow.DistinctBy(ctx, values, func(v vertexValue) int64 { return v.id }, dataflow.KeepFirst)
	if err != nil {
		return nil, nil, nil, err
	}
	vertices, err := dataflow.Map(ctx, distinct, func(v vertexValue) (model.ImportVertex[int64], error) {
		return model.ImportVertex[int64]{
			ExternalID: v.id,
			Label:      s.cfg.VertexLabel,
			Properties: model.Properties{s.cfg.PropertyKey: model.String(v.value)},
		}, nil
	})
	if err != nil {
		return nil, nil, nil, err
	}

	// Edges: one per line, keyed by a unique sequence number.
	numbered, err := dataflow.ZipWithUniqueID(ctx, records)
	if err != nil {
		return nil, nil, nil, err
	}
	edges, err := dataflow.Map(ctx, numbered, func(ix dataflow.Indexed[Line]) (model.ImportEdge[int64], error) {
		return model.ImportEdge[int64]{
			Seq:      ix.ID,
			SourceID: ix.Value.SourceID,
			TargetID: ix.Value.TargetID,
			Label:    s.cfg.EdgeLabel,
		}, nil
	})
	if err != nil {
		return nil, nil, nil, err
	}
	return vertices, edges, report, nil
}
