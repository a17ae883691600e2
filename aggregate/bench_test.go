package aggregate

import (
	"math/rand/v2"
	"testing"

	"github.com/gographml/messagepassing/features"
	"github.com/gographml/messagepassing/graphs"
)

func benchmarkAggregate(b *testing.B, parallelism int) {
	const (
		numNodes = 10_000
		numEdges = 100_000
		dim      = 64
	)
	rng := rand.New(rand.NewPCG(1, 0))
	edges := make([]graphs.Edge, numEdges)
	for ii := range edges {
		edges[ii] = graphs.Edge{
			Source:     int32(rng.IntN(numNodes)),
			Target:     int32(rng.IntN(numNodes)),
			FeatureRow: graphs.NoFeature,
		}
	}
	g, err := graphs.FromEdges(numNodes, edges)
	if err != nil {
		b.Fatal(err)
	}
	nodes := features.Zeros(numNodes, dim)
	for node := int32(0); node < numNodes; node++ {
		row := nodes.Row(node)
		for jj := range row {
			row[jj] = rng.Float32()
		}
	}

	b.ResetTimer()
	for range b.N {
		_, err := New(g, nodes).WithParallelism(parallelism).Done()
		if err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkAggregateSerial(b *testing.B)   { benchmarkAggregate(b, 1) }
func BenchmarkAggregateParallel(b *testing.B) { benchmarkAggregate(b, -1) }
