package aggregate_test

import (
	"fmt"

	"github.com/janpfeifer/must"

	"github.com/gographml/messagepassing/aggregate"
	"github.com/gographml/messagepassing/features"
	"github.com/gographml/messagepassing/graphs"
)

// ExampleAggregate averages the features of each node's incoming neighbors:
// node 0 receives from nodes 1 and 2, nodes 1 and 2 receive nothing.
func ExampleAggregate() {
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
	for node := int32(0); node < 3; node++ {
		fmt.Println(output.Row(node))
	}
	// Output:
	// [3 0]
	// [0 0]
	// [0 0]
}

// ExampleConfig_Done scales each incoming neighbor by a per-edge weight
// before summing.
func ExampleConfig_Done() {
	g := must.M1(graphs.NewBuilder(2).
		AddEdgeWithFeature(1, 0, 0).
		Build())
	nodes := must.M1(features.FromSlices([][]float32{{1, 1}, {2, 3}}))
	weights := must.M1(features.FromSlices([][]float32{{10}}))
	output := must.M1(aggregate.New(g, nodes).
		WithEdgeFeatures(weights).
		WithMessage(aggregate.WeightedSource).
		WithReduce(aggregate.Sum).
		Done())
	fmt.Println(output.Row(0))
	// Output:
	// [20 30]
}
