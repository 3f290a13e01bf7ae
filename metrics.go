package graphflow

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like Prometheus.
//
// Example Prometheus integration:
//
//	type PrometheusCollector struct {
//	    builds   prometheus.Counter
//	    vertices prometheus.Counter
//	}
//
//	func (p *PrometheusCollector) RecordBuild(vertices, edges, dropped int, d time.Duration, err error) {
//	    p.builds.Inc()
//	    p.vertices.Add(float64(vertices))
//	}
type MetricsCollector interface {
	// RecordRead is called after an edge list has been read.
	// skipped counts malformed lines that were skipped.
	RecordRead(records, skipped int, duration time.Duration, err error)

	// RecordBuild is called after each graph construction.
	// dropped counts edges removed because an endpoint was missing.
	RecordBuild(vertices, edges, dropped int, duration time.Duration, err error)

	// RecordOperator is called after each operator run, for example
	// "combine" or "degrees".
	RecordOperator(name string, duration time.Duration, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordRead(int, int, time.Duration, error)       {}
func (NoopMetricsCollector) RecordBuild(int, int, int, time.Duration, error) {}
func (NoopMetricsCollector) RecordOperator(string, time.Duration, error)     {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	ReadCount          atomic.Int64
	ReadErrors         atomic.Int64
	ReadRecords        atomic.Int64
	ReadSkipped        atomic.Int64
	BuildCount         atomic.Int64
	BuildErrors        atomic.Int64
	BuildVertices      atomic.Int64
	BuildEdges         atomic.Int64
	BuildDropped       atomic.Int64
	BuildTotalNanos    atomic.Int64
	OperatorCount      atomic.Int64
	OperatorErrors     atomic.Int64
	OperatorTotalNanos atomic.Int64
}

// RecordRead implements MetricsCollector.
func (b *BasicMetricsCollector) RecordRead(records, skipped int, _ time.Duration, err error) {
	b.ReadCount.Add(1)
	if err != nil {
		b.ReadErrors.Add(1)
		return
	}
	b.ReadRecords.Add(int64(records))
	b.ReadSkipped.Add(int64(skipped))
}

// RecordBuild implements MetricsCollector.
func (b *BasicMetricsCollector) RecordBuild(vertices, edges, dropped int, duration time.Duration, err error) {
	b.BuildCount.Add(1)
	b.BuildTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.BuildErrors.Add(1)
		return
	}
	b.BuildVertices.Add(int64(vertices))
	b.BuildEdges.Add(int64(edges))
	b.BuildDropped.Add(int64(dropped))
}

// RecordOperator implements MetricsCollector.
func (b *BasicMetricsCollector) RecordOperator(_ string, duration time.Duration, err error) {
	b.OperatorCount.Add(1)
	b.OperatorTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.OperatorErrors.Add(1)
	}
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		ReadCount:        b.ReadCount.Load(),
		ReadErrors:       b.ReadErrors.Load(),
		ReadRecords:      b.ReadRecords.Load(),
		ReadSkipped:      b.ReadSkipped.Load(),
		BuildCount:       b.BuildCount.Load(),
		BuildErrors:      b.BuildErrors.Load(),
		BuildVertices:    b.BuildVertices.Load(),
		BuildEdges:       b.BuildEdges.Load(),
		BuildDropped:     b.BuildDropped.Load(),
		BuildAvgNanos:    avg(b.BuildTotalNanos.Load(), b.BuildCount.Load()),
		OperatorCount:    b.OperatorCount.Load(),
		OperatorErrors:   b.OperatorErrors.Load(),
		OperatorAvgNanos: avg(b.OperatorTotalNanos.Load(), b.OperatorCount.Load()),
	}
}

func avg(total, count int64) int64 {
	if count == 0 {
		return 0
	}
	return total / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	ReadCount        int64
	ReadErrors       int64
	ReadRecords      int64
	ReadSkipped      int64
	BuildCount       int64
	BuildErrors      int64
	BuildVertices    int64
	BuildEdges       int64
	BuildDropped     int64
	BuildAvgNanos    int64
	OperatorCount    int64
	OperatorErrors   int64
	OperatorAvgNanos int64
}
