package construct

import (
	"io"
	"log/slog"

	"github.com/hupe1980/graphflow/id"
)

const (
	// DefaultGraphLabel labels the head of the default graph.
	DefaultGraphLabel = "graph"

	// GraphKeyProperty holds the graph key on heads created for named graphs.
	GraphKeyProperty = "key"
)

// DuplicatePolicy selects the record kept when several import vertices share
// an external ID.
type DuplicatePolicy int

const (
	// KeepFirst keeps the first record in collection order.
	KeepFirst DuplicatePolicy = iota
	// KeepLast keeps the last record in collection order.
	KeepLast
)

// DanglingPolicy selects how edges with unresolved endpoints are handled.
type DanglingPolicy int

const (
	// FailFast fails the build with a DanglingEdgeError.
	FailFast DanglingPolicy = iota
	// DropEdge skips the edge and records its Seq in Report.DroppedEdges.
	DropEdge
)

type options struct {
	generator  *id.Generator
	duplicates DuplicatePolicy
	dangling   DanglingPolicy
	graphLabel string
	logger     *slog.Logger
}

// Option configures Build.
type Option func(*options)

// WithGenerator sets the generator used to mint element and head IDs.
func WithGenerator(g *id.Generator) Option {
	return func(o *options) {
		o.generator = g
	}
}

// WithDuplicatePolicy sets the duplicate vertex policy.
func WithDuplicatePolicy(p DuplicatePolicy) Option {
	return func(o *options) {
		o.duplicates = p
	}
}

// WithDanglingPolicy sets the dangling edge policy.
func WithDanglingPolicy(p DanglingPolicy) Option {
	return func(o *options) {
		o.dangling = p
	}
}

// WithGraphLabel sets the label of the default graph head and of the head
// created by BuildLogicalGraph.
func WithGraphLabel(label string) Option {
	return func(o *options) {
		o.graphLabel = label
	}
}

// WithLogger sets the logger. Pass nil to disable logging.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		generator:  id.Default(),
		duplicates: KeepFirst,
		dangling:   FailFast,
		graphLabel: DefaultGraphLabel,
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	if o.logger == nil {
		o.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return o
}
