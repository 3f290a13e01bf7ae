package graphflow

import (
	"github.com/hupe1980/graphflow/construct"
	"github.com/hupe1980/graphflow/edgelist"
	"github.com/hupe1980/graphflow/id"
	"github.com/hupe1980/graphflow/operator"
	"github.com/hupe1980/graphflow/resource"
)

type options struct {
	parallelism      int
	controller       *resource.Controller
	generator        *id.Generator
	metricsCollector MetricsCollector
	logger           *Logger
	edgeList         edgelist.Config
	duplicates       construct.DuplicatePolicy
	dangling         construct.DanglingPolicy
	combination      operator.DuplicatePolicy
	graphLabel       string
}

// Option configures a Pipeline.
type Option func(*options)

// WithParallelism sets the number of partitions. Values below 1 select
// runtime.GOMAXPROCS(0).
func WithParallelism(n int) Option {
	return func(o *options) {
		o.parallelism = n
	}
}

// WithController shares a resource controller between partition tasks and
// edge list reads. The controller limits concurrent workers and read
// throughput across every pipeline that uses it.
//
// Example:
//
//	ctrl := resource.NewController(resource.Config{
//	    MaxWorkers:         4,
//	    IOLimitBytesPerSec: 64 << 20,
//	})
//	p := graphflow.New(graphflow.WithController(ctrl))
func WithController(c *resource.Controller) Option {
	return func(o *options) {
		o.controller = c
	}
}

// WithGenerator sets the identifier generator. Default: id.Default().
func WithGenerator(g *id.Generator) Option {
	return func(o *options) {
		o.generator = g
	}
}

// WithMetricsCollector configures a metrics collector for monitoring operations.
// Pass nil to disable metrics collection.
//
// Example with BasicMetricsCollector:
//
//	metrics := &graphflow.BasicMetricsCollector{}
//	p := graphflow.New(graphflow.WithMetricsCollector(metrics))
//	// ... run pipelines
//	stats := metrics.GetStats()
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metricsCollector = mc
	}
}

// WithLogger configures structured logging. Pass nil to disable logging.
func WithLogger(l *Logger) Option {
	return func(o *options) {
		if l == nil {
			l = NoopLogger()
		}
		o.logger = l
	}
}

// WithEdgeListConfig sets the edge list reader configuration. Its Controller
// and Logger fields are filled from the pipeline when unset.
func WithEdgeListConfig(cfg edgelist.Config) Option {
	return func(o *options) {
		o.edgeList = cfg
	}
}

// WithDuplicatePolicy selects which record wins when external vertex IDs
// repeat. Default: construct.KeepFirst.
func WithDuplicatePolicy(p construct.DuplicatePolicy) Option {
	return func(o *options) {
		o.duplicates = p
	}
}

// WithDanglingPolicy selects how edges with a missing endpoint are handled.
// Default: construct.FailFast.
func WithDanglingPolicy(p construct.DanglingPolicy) Option {
	return func(o *options) {
		o.dangling = p
	}
}

// WithCombinePolicy selects how Combine treats elements present in several
// graphs. Default: operator.MergeMembership.
func WithCombinePolicy(p operator.DuplicatePolicy) Option {
	return func(o *options) {
		o.combination = p
	}
}

// WithGraphLabel sets the label of the graph heads created by a pipeline.
// Default: construct.DefaultGraphLabel.
func WithGraphLabel(label string) Option {
	return func(o *options) {
		o.graphLabel = label
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		metricsCollector: NoopMetricsCollector{},
		logger:           NoopLogger(),
		graphLabel:       construct.DefaultGraphLabel,
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	if o.generator == nil {
		o.generator = id.Default()
	}
	if o.edgeList.Controller == nil {
		o.edgeList.Controller = o.controller
	}
	if o.edgeList.Logger == nil {
		o.edgeList.Logger = o.logger.Logger
	}
	return o
}

func (o options) buildOptions() []construct.Option {
	return []construct.Option{
		construct.WithGenerator(o.generator),
		construct.WithDuplicatePolicy(o.duplicates),
		construct.WithDanglingPolicy(o.dangling),
		construct.WithGraphLabel(o.graphLabel),
		construct.WithLogger(o.logger.Logger),
	}
}

func (o options) operatorOptions() []operator.Option {
	return []operator.Option{
		operator.WithGenerator(o.generator),
		operator.WithDuplicatePolicy(o.combination),
		operator.WithCombinedLabel(o.graphLabel),
		operator.WithLogger(o.logger.Logger),
	}
}
