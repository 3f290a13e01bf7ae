package benchmark_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/hupe1980/graphflow"
	"github.com/hupe1980/graphflow/model"
	"github.com/hupe1980/graphflow/testutil"
	"github.com/hupe1980/graphflow/wire"
)

func benchEdges(b *testing.B) []model.Edge {
	b.Helper()
	rng := testutil.NewRNG(4)
	vertices, edges := testutil.ImportRecords(2_000, rng.Pairs(2_000, 20_000), "link")
	g, _, err := graphflow.Build(context.Background(), graphflow.New(), vertices, edges)
	if err != nil {
		b.Fatal(err)
	}
	return g.Edges.Collect()
}

func BenchmarkWire(b *testing.B) {
	edges := benchEdges(b)
	for _, c := range []wire.Compression{wire.CompressionNone, wire.CompressionLZ4, wire.CompressionZSTD} {
		var buf bytes.Buffer
		if err := wire.EncodeEdges(&buf, edges, wire.WithCompression(c)); err != nil {
			b.Fatal(err)
		}
		frame := buf.Bytes()

		b.Run("encode/"+c.String(), func(b *testing.B) {
			b.ReportAllocs()
			var out bytes.Buffer
			for i := 0; i < b.N; i++ {
				out.Reset()
				if err := wire.EncodeEdges(&out, edges, wire.WithCompression(c)); err != nil {
					b.Fatal(err)
				}
			}
			b.ReportMetric(float64(len(frame)), "frame_bytes")
		})

		b.Run("decode/"+c.String(), func(b *testing.B) {
			b.ReportAllocs()
			b.SetBytes(int64(len(frame)))
			for i := 0; i < b.N; i++ {
				if _, err := wire.DecodeEdges(bytes.NewReader(frame)); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}
