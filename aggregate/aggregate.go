// Package aggregate implements sparse neighbor aggregation, the
// message-passing kernel of GraphSAGE-style graph convolutions (see
// [GraphSAGE]).
//
// For every edge (u, v) of a graph it computes a message from the features of
// u, v and optionally the edge itself, and then reduces all messages arriving
// at each node into one output vector per node. Nodes without incoming edges
// get the reducer's empty value (a zero vector for the built-in reducers).
//
// The simplest use mirrors a mean-of-neighbors convolution step:
//
//	output, err := aggregate.Aggregate(g, nodeFeatures, nil, aggregate.CopySource, aggregate.Mean)
//
// The configurable form gives access to edge features, custom message
// dimensions and parallelism:
//
//	output, err := aggregate.New(g, nodeFeatures).
//		WithEdgeFeatures(edgeWeights).
//		WithMessage(aggregate.WeightedSource).
//		WithReduce(aggregate.Sum).
//		WithParallelism(-1).
//		Done()
//
// The computation is pure: inputs are only read, and the result is a freshly
// allocated table each call.
//
// [GraphSAGE]: https://arxiv.org/abs/1706.02216
package aggregate

import (
	"runtime"

	. "github.com/gomlx/exceptions"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
	"k8s.io/klog/v2"

	"github.com/gographml/messagepassing/features"
	"github.com/gographml/messagepassing/graphs"
)

// Config accumulates the parameters of one aggregation call.
// Create it with New, set what differs from the defaults and call Done.
type Config struct {
	graph        *graphs.Graph
	nodes        *features.Table
	edges        *features.Table
	messageFn    MessageFunc
	reduceFn     ReduceFunc
	messageDim   int
	parallelism  int
	setMsgDim    bool
}

// New creates the configuration for one aggregation over the graph g with
// the given node features.
//
// Defaults: no edge features, CopySource messages, Mean reduction, message
// dimension equal to the node feature dimension, serial execution.
//
// A nil graph or node table is a programming error and panics.
func New(g *graphs.Graph, nodes *features.Table) *Config {
	if g == nil || nodes == nil {
		Panicf("aggregate.New: graph and node features must not be nil")
	}
	return &Config{
		graph:     g,
		nodes:     nodes,
		messageFn: CopySource,
		reduceFn:  Mean,
	}
}

// WithEdgeFeatures sets the edge-feature table the graph's edge feature rows
// index into. A nil table is a no-op, so it is safe to pass an optional
// table through.
func (c *Config) WithEdgeFeatures(edges *features.Table) *Config {
	c.edges = edges
	return c
}

// WithMessage sets the message function. See MessageFunc for the contract.
func (c *Config) WithMessage(fn MessageFunc) *Config {
	if fn == nil {
		Panicf("aggregate: WithMessage(nil)")
	}
	c.messageFn = fn
	return c
}

// WithReduce sets the reduce function. See ReduceFunc for the contract.
func (c *Config) WithReduce(fn ReduceFunc) *Config {
	if fn == nil {
		Panicf("aggregate: WithReduce(nil)")
	}
	c.reduceFn = fn
	return c
}

// WithMessageDim sets the dimension of the vectors the message function
// produces, which is also the dimension of the output table. It only needs
// to be set for custom message functions that change dimensionality; the
// built-in ones preserve the node feature dimension.
func (c *Config) WithMessageDim(dim int) *Config {
	if dim < 0 {
		Panicf("aggregate: WithMessageDim(%d) must be non-negative", dim)
	}
	c.messageDim = dim
	c.setMsgDim = true
	return c
}

// WithParallelism sets how many goroutines process destination nodes:
// n <= 1 runs serially (the default), n > 1 uses n workers and -1 uses
// GOMAXPROCS. Edges are independent and each output row is written by
// exactly one worker, so results are identical at any parallelism.
func (c *Config) WithParallelism(n int) *Config {
	if n < 0 {
		n = runtime.GOMAXPROCS(0)
	}
	c.parallelism = n
	return c
}

// Aggregate is the one-shot form of New(...).Done() for the common case.
// edges may be nil when no edge of g carries a feature row.
func Aggregate(g *graphs.Graph, nodes, edges *features.Table, messageFn MessageFunc, reduceFn ReduceFunc) (*features.Table, error) {
	return New(g, nodes).
		WithEdgeFeatures(edges).
		WithMessage(messageFn).
		WithReduce(reduceFn).
		Done()
}

// Done runs the aggregation and returns the freshly allocated output table,
// with one row per node of the graph.
//
// Validation failures -- a node or edge-feature row without an entry in its
// table, or inconsistent vector dimensions -- are reported as errors
// matching features.ErrMissingFeature or features.ErrDimensionMismatch.
// No partial result is ever returned.
func (c *Config) Done() (*features.Table, error) {
	if !c.setMsgDim {
		c.messageDim = c.nodes.Dim()
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	numNodes := c.graph.NumNodes()
	output := features.Zeros(numNodes, c.messageDim)
	klog.V(1).Infof("aggregate: %s, %s, parallelism=%d", c.graph, c.nodes, c.parallelism)

	if c.parallelism <= 1 {
		err := TryCatch[error](func() {
			c.aggregateRange(output, 0, int32(numNodes))
		})
		if err != nil {
			return nil, err
		}
		return output, nil
	}

	var group errgroup.Group
	chunkSize := (numNodes + c.parallelism - 1) / c.parallelism
	for lo := 0; lo < numNodes; lo += chunkSize {
		hi := min(lo+chunkSize, numNodes)
		group.Go(func() error {
			return TryCatch[error](func() {
				c.aggregateRange(output, int32(lo), int32(hi))
			})
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}
	return output, nil
}

// validate checks table coverage and dimensions eagerly, before any message
// is computed.
func (c *Config) validate() error {
	numNodes := c.graph.NumNodes()
	if c.nodes.NumRows() < numNodes {
		return errors.Wrapf(features.ErrMissingFeature,
			"node feature table has %d rows, but the graph has %d nodes", c.nodes.NumRows(), numNodes)
	}
	maxRow := c.graph.MaxFeatureRow()
	if maxRow == graphs.NoFeature {
		return nil
	}
	if c.edges == nil {
		return errors.Wrapf(features.ErrMissingFeature,
			"graph edges reference edge-feature rows up to %d, but no edge-feature table was given", maxRow)
	}
	if int(maxRow) >= c.edges.NumRows() {
		return errors.Wrapf(features.ErrMissingFeature,
			"graph edges reference edge-feature row %d, but the edge-feature table only has %d rows",
			maxRow, c.edges.NumRows())
	}
	return nil
}

// aggregateRange computes the output rows for destination nodes in
// [from, to). Each row is written exactly once, so disjoint ranges can run
// concurrently over the shared output table.
//
// Messages of each destination group are delivered to the reducer in the
// graph's storage order; only commutative and associative reducers give
// results independent of the original edge order.
func (c *Config) aggregateRange(output *features.Table, from, to int32) {
	var messages [][]float32
	for node := from; node < to; node++ {
		sources, featureRows := c.graph.EdgesInto(node)
		messages = messages[:0]
		for ii, source := range sources {
			var edge []float32
			if featureRows[ii] != graphs.NoFeature {
				edge = c.edges.Row(featureRows[ii])
			}
			message := c.messageFn(c.nodes.Row(source), c.nodes.Row(node), edge)
			if len(message) != c.messageDim {
				panic(errors.Wrapf(features.ErrDimensionMismatch,
					"message for edge (%d->%d) has dimension %d, but the message dimension is %d"+
						" (set WithMessageDim for message functions that change dimensionality)",
					source, node, len(message), c.messageDim))
			}
			messages = append(messages, message)
		}
		c.reduceFn(output.Row(node), messages)
	}
}
