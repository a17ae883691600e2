// Package sage implements a forward-only GraphSAGE convolution layer: one
// neighbor aggregation composed with a linear projection and an activation
// (see [GraphSAGE]).
//
// The layer owns no training machinery: weights are plain gonum matrices,
// either set explicitly with SetWeights or randomly initialized with
// InitGlorot, and Forward only computes
//
//	out_v = act(h_v·W_self + agg_v·W_neigh + bias)
//
// where agg is the neighbor aggregation of package aggregate (mean of the
// incoming sources by default).
//
// [GraphSAGE]: https://arxiv.org/abs/1706.02216
package sage

import (
	"math"
	"math/rand/v2"

	. "github.com/gomlx/exceptions"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"

	"github.com/gographml/messagepassing/aggregate"
	"github.com/gographml/messagepassing/features"
	"github.com/gographml/messagepassing/graphs"
	"github.com/gographml/messagepassing/internal/xslices"
)

// Conv is one GraphSAGE convolution layer projecting node features of
// dimension InDim to dimension OutDim.
type Conv struct {
	inDim, outDim int
	wSelf, wNeigh *mat.Dense
	bias          []float64
	activation    string
	activationFn  func(float64) float64
	reduceFn      aggregate.ReduceFunc
}

// New creates a Conv with zero weights, identity activation and mean
// neighbor reduction. Configure it with the With/Set/Init methods, all of
// which return the Conv to allow chaining.
//
// Non-positive dimensions are a programming error and panic.
func New(inDim, outDim int) *Conv {
	if inDim <= 0 || outDim <= 0 {
		Panicf("sage.New(inDim=%d, outDim=%d): dimensions must be > 0", inDim, outDim)
	}
	return &Conv{
		inDim:        inDim,
		outDim:       outDim,
		wSelf:        mat.NewDense(inDim, outDim, nil),
		wNeigh:       mat.NewDense(inDim, outDim, nil),
		bias:         make([]float64, outDim),
		activation:   ActivationIdentity,
		activationFn: activationRegistry[ActivationIdentity],
		reduceFn:     aggregate.Mean,
	}
}

// InDim of the node features Forward accepts.
func (c *Conv) InDim() int { return c.inDim }

// OutDim of the table Forward produces.
func (c *Conv) OutDim() int { return c.outDim }

// WithActivation sets the activation by name, one of ActivationValues.
// An unknown name is a programming error and panics.
func (c *Conv) WithActivation(name string) *Conv {
	c.activationFn = ActivationFromName(name)
	c.activation = name
	return c
}

// WithReduce sets how incoming neighbor messages are pooled.
// See aggregate.ReduceFunc for the contract.
func (c *Conv) WithReduce(fn aggregate.ReduceFunc) *Conv {
	if fn == nil {
		Panicf("sage: WithReduce(nil)")
	}
	c.reduceFn = fn
	return c
}

// InitGlorot replaces the weights with Glorot (Xavier) uniform samples from
// the given random generator, and zeroes the bias.
func (c *Conv) InitGlorot(rng *rand.Rand) *Conv {
	limit := math.Sqrt(6 / float64(c.inDim+c.outDim))
	for _, w := range []*mat.Dense{c.wSelf, c.wNeigh} {
		for row := 0; row < c.inDim; row++ {
			for col := 0; col < c.outDim; col++ {
				w.Set(row, col, (2*rng.Float64()-1)*limit)
			}
		}
	}
	for ii := range c.bias {
		c.bias[ii] = 0
	}
	return c
}

// SetWeights replaces the projection matrices and bias.
// Both matrices must be InDim x OutDim and the bias of length OutDim,
// otherwise it returns an error matching features.ErrDimensionMismatch.
// The values are copied, not retained.
func (c *Conv) SetWeights(wSelf, wNeigh *mat.Dense, bias []float64) error {
	for name, w := range map[string]*mat.Dense{"wSelf": wSelf, "wNeigh": wNeigh} {
		rows, cols := w.Dims()
		if rows != c.inDim || cols != c.outDim {
			return errors.Wrapf(features.ErrDimensionMismatch,
				"SetWeights: %s is %dx%d, wanted %dx%d", name, rows, cols, c.inDim, c.outDim)
		}
	}
	if len(bias) != c.outDim {
		return errors.Wrapf(features.ErrDimensionMismatch,
			"SetWeights: bias has length %d, wanted %d", len(bias), c.outDim)
	}
	c.wSelf.Copy(wSelf)
	c.wNeigh.Copy(wNeigh)
	copy(c.bias, bias)
	return nil
}

// Forward applies the convolution to the node features over the graph,
// returning a fresh table with one row of dimension OutDim per node.
func (c *Conv) Forward(g *graphs.Graph, nodes *features.Table) (*features.Table, error) {
	if nodes.Dim() != c.inDim {
		return nil, errors.Wrapf(features.ErrDimensionMismatch,
			"Forward got node features of dimension %d, but the layer takes %d", nodes.Dim(), c.inDim)
	}
	aggregated, err := aggregate.New(g, nodes).WithReduce(c.reduceFn).Done()
	if err != nil {
		return nil, errors.WithMessage(err, "aggregating neighbors for sage.Conv.Forward")
	}

	numNodes := g.NumNodes()
	selfPart := new(mat.Dense)
	selfPart.Mul(toDense(nodes), c.wSelf)
	neighPart := new(mat.Dense)
	neighPart.Mul(toDense(aggregated), c.wNeigh)

	output := features.Zeros(numNodes, c.outDim)
	row64 := make([]float64, c.outDim)
	for node := 0; node < numNodes; node++ {
		for col := 0; col < c.outDim; col++ {
			row64[col] = c.activationFn(selfPart.At(node, col) + neighPart.At(node, col) + c.bias[col])
		}
		rowOut := output.Row(int32(node))
		for col, value := range row64 {
			rowOut[col] = float32(value)
		}
	}
	return output, nil
}

// toDense converts a feature table to a float64 gonum matrix.
func toDense(t *features.Table) *mat.Dense {
	dense := mat.NewDense(t.NumRows(), t.Dim(), nil)
	for row := 0; row < t.NumRows(); row++ {
		dense.SetRow(row, xslices.Map(t.Row(int32(row)), func(v float32) float64 { return float64(v) }))
	}
	return dense
}
