package graphs

import (
	. "github.com/gomlx/exceptions"
)

// Builder accumulates edges and builds a Graph.
//
// Adding edges to a Builder never fails: endpoint validation happens in
// Build, which reports the first invalid edge. Using a Builder after Build
// is a programming error and panics.
type Builder struct {
	numNodes int
	edges    []Edge
	done     bool
}

// NewBuilder creates a Builder for a graph with numNodes nodes.
// It panics if numNodes is not positive.
func NewBuilder(numNodes int) *Builder {
	if numNodes <= 0 {
		Panicf("NewBuilder: numNodes=%d invalid, it must be > 0", numNodes)
	}
	return &Builder{numNodes: numNodes}
}

// AddEdge adds one directed edge carrying no edge feature.
// It returns the Builder to allow chaining.
func (b *Builder) AddEdge(source, target int32) *Builder {
	return b.AddEdgeWithFeature(source, target, NoFeature)
}

// AddEdgeWithFeature adds one directed edge carrying the given row of the
// edge-feature table. It returns the Builder to allow chaining.
func (b *Builder) AddEdgeWithFeature(source, target, featureRow int32) *Builder {
	if b.done {
		Panicf("Builder already built a Graph and can no longer be modified")
	}
	b.edges = append(b.edges, Edge{Source: source, Target: target, FeatureRow: featureRow})
	return b
}

// NumEdges added so far.
func (b *Builder) NumEdges() int { return len(b.edges) }

// Build validates the accumulated edges and returns the Graph.
// The Builder can no longer be used afterward.
func (b *Builder) Build() (*Graph, error) {
	if b.done {
		Panicf("Builder already built a Graph and can no longer be modified")
	}
	b.done = true
	return FromEdges(b.numNodes, b.edges)
}
