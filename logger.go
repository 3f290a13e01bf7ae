package graphflow

import (
	"context"
	"log/slog"
	"os"

	"github.com/hupe1980/graphflow/construct"
	"github.com/hupe1980/graphflow/edgelist"
	"github.com/hupe1980/graphflow/operator"
)

// Logger wraps slog.Logger with graphflow-specific context.
// This provides structured logging with consistent field names.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a new Logger with the given handler.
// If handler is nil, uses default text handler to stderr.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewJSONLogger creates a Logger that outputs JSON-formatted logs.
// level sets the minimum log level (e.g., slog.LevelDebug, slog.LevelInfo).
func NewJSONLogger(level slog.Level) *Logger {
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NoopLogger creates a Logger that discards all log output.
func NoopLogger() *Logger {
	return &Logger{
		Logger: slog.New(slog.DiscardHandler),
	}
}

// WithSource adds the input name to the logger.
func (l *Logger) WithSource(name string) *Logger {
	return &Logger{
		Logger: l.Logger.With("source", name),
	}
}

// WithParallelism adds the partition count to the logger.
func (l *Logger) WithParallelism(n int) *Logger {
	return &Logger{
		Logger: l.Logger.With("parallelism", n),
	}
}

// WithOperator adds an operator name to the logger.
func (l *Logger) WithOperator(name string) *Logger {
	return &Logger{
		Logger: l.Logger.With("operator", name),
	}
}

// LogBuild logs a graph construction.
func (l *Logger) LogBuild(ctx context.Context, report *construct.Report, err error) {
	if err != nil {
		l.ErrorContext(ctx, "build failed",
			"error", err,
		)
		return
	}
	l.InfoContext(ctx, "build completed",
		"vertices", report.Vertices,
		"edges", report.Edges,
		"graphs", report.Graphs,
		"duplicate_vertices", report.DuplicateVertices,
		"conflicting_vertices", report.ConflictingVertices,
	)
	if report.DroppedEdges != nil && !report.DroppedEdges.IsEmpty() {
		l.LogDroppedEdges(ctx, report.DroppedEdges.GetCardinality())
	}
}

// LogDroppedEdges logs edges removed because an endpoint was missing.
func (l *Logger) LogDroppedEdges(ctx context.Context, dropped uint64) {
	l.WarnContext(ctx, "dropped dangling edges",
		"dropped", dropped,
	)
}

// LogMalformed logs lines skipped by the edge list reader.
func (l *Logger) LogMalformed(ctx context.Context, report *edgelist.ReadReport) {
	if report == nil || report.Skipped.IsEmpty() {
		return
	}
	l.WarnContext(ctx, "skipped malformed lines",
		"lines", report.Lines,
		"records", report.Records,
		"skipped", report.Skipped.GetCardinality(),
		"first", report.Skipped.Minimum(),
	)
}

// LogCombine logs a graph combination.
func (l *Logger) LogCombine(ctx context.Context, graphs int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "combine failed",
			"graphs", graphs,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "combine completed",
			"graphs", graphs,
		)
	}
}

// LogDegrees logs a degree computation.
func (l *Logger) LogDegrees(ctx context.Context, dir operator.Direction, vertices int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "degrees failed",
			"direction", dir.String(),
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "degrees completed",
			"direction", dir.String(),
			"vertices", vertices,
		)
	}
}

// LogDegreeDistribution logs a degree distribution computation.
func (l *Logger) LogDegreeDistribution(ctx context.Context, dir operator.Direction, degrees int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "degree distribution failed",
			"direction", dir.String(),
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "degree distribution completed",
			"direction", dir.String(),
			"degrees", degrees,
		)
	}
}
