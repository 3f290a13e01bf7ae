package benchmark_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/hupe1980/graphflow"
	"github.com/hupe1980/graphflow/blobstore"
	"github.com/hupe1980/graphflow/operator"
	"github.com/hupe1980/graphflow/testutil"
)

var sizes = []struct {
	vertices int
	edges    int
}{
	{1_000, 10_000},
	{10_000, 100_000},
}

func BenchmarkBuild(b *testing.B) {
	for _, sz := range sizes {
		for _, par := range []int{1, 4} {
			b.Run(fmt.Sprintf("v=%d/e=%d/p=%d", sz.vertices, sz.edges, par), func(b *testing.B) {
				b.ReportAllocs()
				ctx := context.Background()
				rng := testutil.NewRNG(1)
				vertices, edges := testutil.ImportRecords(sz.vertices, rng.Pairs(sz.vertices, sz.edges), "node")
				p := graphflow.New(graphflow.WithParallelism(par))

				b.ResetTimer()
				for i := 0; i < b.N; i++ {
					if _, _, err := graphflow.Build(ctx, p, vertices, edges); err != nil {
						b.Fatal(err)
					}
				}
			})
		}
	}
}

func BenchmarkReadEdgeList(b *testing.B) {
	for _, sz := range sizes {
		b.Run(fmt.Sprintf("e=%d", sz.edges), func(b *testing.B) {
			b.ReportAllocs()
			ctx := context.Background()
			store := blobstore.NewLocalStore(b.TempDir())
			text := testutil.EdgeListText(testutil.NewRNG(1).Pairs(sz.vertices, sz.edges))
			if err := store.Put(ctx, "edges.tsv", []byte(text)); err != nil {
				b.Fatal(err)
			}
			p := graphflow.New()

			b.SetBytes(int64(len(text)))
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				if _, _, err := p.ReadEdgeList(ctx, store, "edges.tsv"); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func BenchmarkDegrees(b *testing.B) {
	ctx := context.Background()
	for _, skew := range []float64{0, 0.9} {
		b.Run(fmt.Sprintf("hub_share=%.1f", skew), func(b *testing.B) {
			b.ReportAllocs()
			rng := testutil.NewRNG(2)
			pairs := rng.SkewedPairs(10_000, 100_000, 10, skew)
			vertices, edges := testutil.ImportRecords(10_000, pairs, "")
			p := graphflow.New(graphflow.WithParallelism(4))
			g, _, err := graphflow.Build(ctx, p, vertices, edges)
			if err != nil {
				b.Fatal(err)
			}

			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				if _, err := operator.OutgoingVertexDegrees(ctx, g); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func BenchmarkCombine(b *testing.B) {
	b.ReportAllocs()
	ctx := context.Background()
	p := graphflow.New(graphflow.WithParallelism(4))
	rng := testutil.NewRNG(3)

	graphs := make([]*graphflow.LogicalGraph, 4)
	for i := range graphs {
		vertices, edges := testutil.ImportRecords(5_000, rng.Pairs(5_000, 20_000), "")
		g, _, err := graphflow.Build(ctx, p, vertices, edges)
		if err != nil {
			b.Fatal(err)
		}
		graphs[i] = g
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := p.Combine(ctx, graphs...); err != nil {
			b.Fatal(err)
		}
	}
}
