// aggdemo runs a small worked example of neighbor aggregation and then
// times serial against parallel aggregation on a random graph.
//
// Example:
//
//	go run ./cmd/aggdemo -nodes 100000 -edges 1000000 -dim 64 -reduce mean
package main

import (
	"flag"
	"fmt"
	"math/rand/v2"
	"time"

	humanize "github.com/dustin/go-humanize"
	"github.com/gomlx/exceptions"
	"github.com/janpfeifer/must"
	"k8s.io/klog/v2"

	"github.com/gographml/messagepassing/aggregate"
	"github.com/gographml/messagepassing/features"
	"github.com/gographml/messagepassing/graphs"
)

var (
	flagNodes       = flag.Int("nodes", 100_000, "Number of nodes of the random graph.")
	flagEdges       = flag.Int("edges", 1_000_000, "Number of random edges.")
	flagDim         = flag.Int("dim", 64, "Dimension of the node feature vectors.")
	flagReduce      = flag.String("reduce", aggregate.ReduceMean, "Reduce function for the random graph run.")
	flagParallelism = flag.Int("parallelism", -1, "Parallelism for the timed run: -1 means GOMAXPROCS.")
	flagSeed        = flag.Uint64("seed", 42, "Seed for the random graph.")
)

func main() {
	klog.InitFlags(nil)
	flag.Parse()
	err := exceptions.TryCatch[error](func() {
		workedExample()
		timedRun()
	})
	if err != nil {
		klog.Fatalf("Failed with error: %+v", err)
	}
}

// workedExample aggregates the 3-node graph {1->0, 2->0}: the mean of the
// incoming sources lands on node 0, nodes without incoming edges get zeros.
func workedExample() {
	g := must.M1(graphs.NewBuilder(3).
		AddEdge(1, 0).
		AddEdge(2, 0).
		Build())
	nodes := must.M1(features.FromSlices([][]float32{
		{1, 0},
		{2, 0},
		{4, 0},
	}))
	output := must.M1(aggregate.Aggregate(g, nodes, nil, aggregate.CopySource, aggregate.Mean))
	fmt.Printf("Worked example (%s):\n", g)
	for node := int32(0); node < int32(g.NumNodes()); node++ {
		fmt.Printf("\tnode %d: %v -> %v\n", node, nodes.Row(node), output.Row(node))
	}
}

func timedRun() {
	rng := rand.New(rand.NewPCG(*flagSeed, 0))
	edges := make([]graphs.Edge, *flagEdges)
	for ii := range edges {
		edges[ii] = graphs.Edge{
			Source:     int32(rng.IntN(*flagNodes)),
			Target:     int32(rng.IntN(*flagNodes)),
			FeatureRow: graphs.NoFeature,
		}
	}
	g := must.M1(graphs.FromEdges(*flagNodes, edges))
	nodes := features.Zeros(*flagNodes, *flagDim)
	for node := int32(0); node < int32(*flagNodes); node++ {
		row := nodes.Row(node)
		for jj := range row {
			row[jj] = rng.Float32()
		}
	}
	reduceFn := must.M1(aggregate.ReduceByName(*flagReduce))

	fmt.Printf("\nTimed run: %s, %s, reduce=%q\n", g, nodes, *flagReduce)
	start := time.Now()
	serial := must.M1(aggregate.New(g, nodes).WithReduce(reduceFn).Done())
	serialElapsed := time.Since(start)
	fmt.Printf("\tserial:              %s (%s edges/s)\n", serialElapsed,
		humanize.Comma(int64(float64(g.NumEdges())/serialElapsed.Seconds())))

	start = time.Now()
	parallel := must.M1(aggregate.New(g, nodes).
		WithReduce(reduceFn).
		WithParallelism(*flagParallelism).
		Done())
	parallelElapsed := time.Since(start)
	fmt.Printf("\tparallelism=%d:\t%s (%s edges/s)\n", *flagParallelism, parallelElapsed,
		humanize.Comma(int64(float64(g.NumEdges())/parallelElapsed.Seconds())))

	// Spot check: both runs computed the same table.
	for _, node := range []int32{0, int32(*flagNodes) / 2, int32(*flagNodes) - 1} {
		a, b := serial.Row(node), parallel.Row(node)
		for jj := range a {
			if a[jj] != b[jj] {
				klog.Fatalf("serial and parallel runs disagree at node %d", node)
			}
		}
	}
}
