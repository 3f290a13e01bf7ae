package testutil

import (
	"math/rand"
	"strconv"
	"strings"
	"sync"

	"github.com/hupe1980/graphflow/model"
)

// Pair is a directed edge between two external vertex ids.
type Pair struct {
	Source int64
	Target int64
}

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Seed(r.seed)
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// Uint64 returns a pseudo-random uint64.
func (r *RNG) Uint64() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Uint64()
}

// Pairs generates numEdges random edges over vertex ids [0, numVertices).
// Self-loops and parallel edges may occur.
func (r *RNG) Pairs(numVertices, numEdges int) []Pair {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]Pair, numEdges)
	for i := range out {
		out[i] = Pair{
			Source: int64(r.rand.Intn(numVertices)),
			Target: int64(r.rand.Intn(numVertices)),
		}
	}
	return out
}

// SkewedPairs generates edges whose sources are drawn from a small set of
// hubs with probability hubShare. It exercises uneven partitions.
func (r *RNG) SkewedPairs(numVertices, numEdges, hubs int, hubShare float64) []Pair {
	r.mu.Lock()
	defer r.mu.Unlock()

	hubs = max(1, min(hubs, numVertices))
	out := make([]Pair, numEdges)
	for i := range out {
		src := r.rand.Intn(numVertices)
		if r.rand.Float64() < hubShare {
			src = r.rand.Intn(hubs)
		}
		out[i] = Pair{Source: int64(src), Target: int64(r.rand.Intn(numVertices))}
	}
	return out
}

// VertexValue is the value EdgeListText writes for an external id.
func VertexValue(id int64) string {
	return "v" + strconv.FormatInt(id, 10)
}

// EdgeListText renders pairs as a tab separated edge list.
func EdgeListText(pairs []Pair) string {
	var sb strings.Builder
	for _, p := range pairs {
		sb.WriteString(strconv.FormatInt(p.Source, 10))
		sb.WriteByte('\t')
		sb.WriteString(VertexValue(p.Source))
		sb.WriteByte('\t')
		sb.WriteString(strconv.FormatInt(p.Target, 10))
		sb.WriteByte('\t')
		sb.WriteString(VertexValue(p.Target))
		sb.WriteByte('\n')
	}
	return sb.String()
}

// ImportRecords converts pairs into import records. Every id in
// [0, numVertices) gets a vertex, so isolated vertices are included.
func ImportRecords(numVertices int, pairs []Pair, label string) ([]model.ImportVertex[int64], []model.ImportEdge[int64]) {
	vertices := make([]model.ImportVertex[int64], numVertices)
	for i := range vertices {
		vertices[i] = model.ImportVertex[int64]{
			ExternalID: int64(i),
			Label:      label,
			Properties: model.Properties{"value": model.String(VertexValue(int64(i)))},
		}
	}
	edges := make([]model.ImportEdge[int64], len(pairs))
	for i, p := range pairs {
		edges[i] = model.ImportEdge[int64]{
			Seq:      uint64(i),
			SourceID: p.Source,
			TargetID: p.Target,
			Label:    label,
		}
	}
	return vertices, edges
}

// OutDegrees counts outgoing edges per vertex id in [0, numVertices).
func OutDegrees(numVertices int, pairs []Pair) map[int64]int64 {
	out := make(map[int64]int64, numVertices)
	for i := range numVertices {
		out[int64(i)] = 0
	}
	for _, p := range pairs {
		out[p.Source]++
	}
	return out
}

// InDegrees counts incoming edges per vertex id in [0, numVertices).
func InDegrees(numVertices int, pairs []Pair) map[int64]int64 {
	in := make(map[int64]int64, numVertices)
	for i := range numVertices {
		in[int64(i)] = 0
	}
	for _, p := range pairs {
		in[p.Target]++
	}
	return in
}
