// Package graphs defines the directed Graph type consumed by the aggregation
// kernel in package aggregate.
//
// A Graph is a fixed set of nodes, identified by indices 0 to NumNodes()-1,
// and a multiset of directed edges. Edges are stored in CSR form grouped by
// their *destination* node, which is the layout the message-passing pass
// consumes: all edges arriving at one node are contiguous.
//
// Build a Graph either in one shot with FromEdges, or incrementally with a
// Builder. Both validate that edge endpoints reference existing nodes and
// return ErrInvalidEdge otherwise. Once built, a Graph is never mutated.
package graphs

import (
	"fmt"
	"math"
	"strings"

	humanize "github.com/dustin/go-humanize"
	. "github.com/gomlx/exceptions"
	"github.com/pkg/errors"

	"github.com/gographml/messagepassing/internal/xslices"
)

// NoFeature marks an edge that carries no row in the edge-feature table.
//
// Notice 0 is a valid feature row, so absence is encoded explicitly instead
// of reserving a valid index.
const NoFeature = int32(-1)

// ErrInvalidEdge indicates an edge whose source or target is not a valid node
// id of the graph. Check with errors.Is.
var ErrInvalidEdge = errors.New("graphs: edge references an invalid node id")

// Edge is one directed connection given as input to FromEdges or Builder.
type Edge struct {
	// Source and Target node indices, in [0, numNodes).
	Source, Target int32

	// FeatureRow indexes into an edge-feature table, or NoFeature if this
	// edge carries no feature.
	FeatureRow int32
}

// Graph is an immutable directed graph with edges grouped by destination.
//
// All the information kept by Graph is available for reading, but avoid
// changing it directly, and instead rebuild with FromEdges.
type Graph struct {
	// Starts has one entry for each node (shifted by 1): it points to the
	// start of the list of edges arriving at this node.
	//
	// So for node `i`, the incoming edges start at `Starts[i-1]` and end at
	// `Starts[i]`, except if `i == 0` in which case the start is at 0.
	// It's normal for both to be equal when the node has no incoming edges.
	//
	// The number of nodes is given by `len(Starts)`.
	Starts []int32

	// Sources lists the source node of every edge, ordered by destination
	// node. The destination for each position is given by Starts above.
	Sources []int32

	// FeatureRows has, for each edge in the same order as Sources, the row
	// of the edge-feature table the edge carries, or NoFeature.
	FeatureRows []int32
}

// NumNodes of the graph, including nodes without any edge.
func (g *Graph) NumNodes() int { return len(g.Starts) }

// NumEdges of the graph. Parallel edges are counted once each.
func (g *Graph) NumEdges() int { return len(g.Sources) }

// InDegree returns the number of edges arriving at the given node.
func (g *Graph) InDegree(node int32) int {
	sources, _ := g.EdgesInto(node)
	return len(sources)
}

// EdgesInto returns the source nodes and feature rows of all edges arriving
// at the given node, in the order the edges were given at construction.
// Don't modify the returned slices, they are in use by the Graph -- make a
// copy if you need to modify.
func (g *Graph) EdgesInto(node int32) (sources, featureRows []int32) {
	if node < 0 || int(node) >= len(g.Starts) {
		Panicf("invalid node index %d for graph with %d nodes", node, len(g.Starts))
	}
	var start int32
	if node > 0 {
		start = g.Starts[node-1]
	}
	end := g.Starts[node]
	return g.Sources[start:end], g.FeatureRows[start:end]
}

// MaxFeatureRow returns the largest edge-feature row referenced by any edge,
// or NoFeature if no edge carries a feature.
func (g *Graph) MaxFeatureRow() int32 {
	if len(g.FeatureRows) == 0 {
		return NoFeature
	}
	return xslices.Max(g.FeatureRows)
}

// HasEdgeFeatures reports whether at least one edge carries a feature row.
func (g *Graph) HasEdgeFeatures() bool { return g.MaxFeatureRow() != NoFeature }

// FromEdges builds a Graph with numNodes nodes from the given edges.
//
// Edge endpoints must be in [0, numNodes) and feature rows must be >= 0 or
// NoFeature, otherwise it returns an error matching ErrInvalidEdge.
// The edges slice is not retained, and its order doesn't matter for the
// aggregation results -- it only sets the within-group storage order.
//
// An invalid (non-positive or too large) numNodes is a programming error and
// panics.
func FromEdges(numNodes int, edges []Edge) (*Graph, error) {
	if numNodes <= 0 {
		Panicf("FromEdges: numNodes=%d invalid, it must be > 0", numNodes)
	}
	if numNodes > math.MaxInt32 {
		Panicf("graphs uses int32 node indices, but numNodes=%d is bigger than the max possible", numNodes)
	}
	n := int32(numNodes)
	g := &Graph{
		Starts:      make([]int32, numNodes),
		Sources:     make([]int32, len(edges)),
		FeatureRows: make([]int32, len(edges)),
	}

	// Counting sort by target: indegree counts, then prefix sums.
	for _, edge := range edges {
		if edge.Source < 0 || edge.Source >= n {
			return nil, errors.Wrapf(ErrInvalidEdge,
				"edge (%d->%d) has source out of range [0, %d)", edge.Source, edge.Target, n)
		}
		if edge.Target < 0 || edge.Target >= n {
			return nil, errors.Wrapf(ErrInvalidEdge,
				"edge (%d->%d) has target out of range [0, %d)", edge.Source, edge.Target, n)
		}
		if edge.FeatureRow < 0 && edge.FeatureRow != NoFeature {
			return nil, errors.Wrapf(ErrInvalidEdge,
				"edge (%d->%d) has negative feature row %d (use NoFeature for edges without features)",
				edge.Source, edge.Target, edge.FeatureRow)
		}
		g.Starts[edge.Target]++
	}
	var total int32
	for node, count := range g.Starts {
		total += count
		g.Starts[node] = total
	}

	// Fill the edge arrays back-to-front so each destination group preserves
	// the input order of its edges.
	cursors := make([]int32, numNodes)
	copy(cursors, g.Starts)
	for ii := len(edges) - 1; ii >= 0; ii-- {
		edge := edges[ii]
		cursors[edge.Target]--
		pos := cursors[edge.Target]
		g.Sources[pos] = edge.Source
		g.FeatureRows[pos] = edge.FeatureRow
	}
	return g, nil
}

// String returns a one-line description of the graph sizes.
func (g *Graph) String() string {
	parts := []string{
		fmt.Sprintf("Graph: %s nodes, %s edges",
			humanize.Comma(int64(g.NumNodes())), humanize.Comma(int64(g.NumEdges()))),
	}
	if maxRow := g.MaxFeatureRow(); maxRow != NoFeature {
		parts = append(parts, fmt.Sprintf("edge features up to row %s", humanize.Comma(int64(maxRow))))
	}
	return strings.Join(parts, ", ")
}
