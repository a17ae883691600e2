package sage

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/gographml/messagepassing/aggregate"
	"github.com/gographml/messagepassing/features"
	"github.com/gographml/messagepassing/graphs"
)

func convGraph(t *testing.T) (*graphs.Graph, *features.Table) {
	g, err := graphs.FromEdges(3, []graphs.Edge{
		{Source: 1, Target: 0, FeatureRow: graphs.NoFeature},
		{Source: 2, Target: 0, FeatureRow: graphs.NoFeature},
	})
	require.NoError(t, err)
	nodes, err := features.FromSlices([][]float32{
		{1, 0},
		{2, 0},
		{4, 0},
	})
	require.NoError(t, err)
	return g, nodes
}

func TestForward(t *testing.T) {
	g, nodes := convGraph(t)
	conv := New(2, 2)
	require.NoError(t, conv.SetWeights(
		mat.NewDense(2, 2, []float64{1, 0, 0, 1}),     // identity
		mat.NewDense(2, 2, []float64{0.5, 0, 0, 0.5}), // halve the aggregate
		[]float64{1, 1},
	))

	output, err := conv.Forward(g, nodes)
	require.NoError(t, err)
	require.NoError(t, output.Check(3, 2))
	// Node 0: self [1,0] + 0.5*mean([2,0],[4,0]) = [1,0]+[1.5,0], plus bias.
	assert.Equal(t, []float32{3.5, 1}, output.Row(0))
	assert.Equal(t, []float32{3, 1}, output.Row(1))
	assert.Equal(t, []float32{5, 1}, output.Row(2))
}

func TestForwardActivationAndReduce(t *testing.T) {
	g, nodes := convGraph(t)
	conv := New(2, 2).WithActivation(ActivationRelu).WithReduce(aggregate.Max)
	require.NoError(t, conv.SetWeights(
		mat.NewDense(2, 2, []float64{-1, 0, 0, 1}),
		mat.NewDense(2, 2, []float64{1, 0, 0, 1}),
		[]float64{0, 0},
	))
	output, err := conv.Forward(g, nodes)
	require.NoError(t, err)
	// Node 0: self part [-1,0], max-aggregate [4,0] -> relu([3,0]) = [3,0].
	assert.Equal(t, []float32{3, 0}, output.Row(0))
	// Node 1: self part [-2,0], empty aggregate -> relu([-2,0]) = [0,0].
	assert.Equal(t, []float32{0, 0}, output.Row(1))
}

func TestActivations(t *testing.T) {
	assert.Equal(t, 0.5, ActivationFromName(ActivationSigmoid)(0))
	assert.Equal(t, math.Tanh(0.3), ActivationFromName(ActivationTanh)(0.3))
	assert.Equal(t, []string{"identity", "relu", "sigmoid", "tanh"}, ActivationValues())
	require.Panics(t, func() { ActivationFromName("softmax") })
}

func TestInitGlorot(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 0))
	conv := New(8, 4).InitGlorot(rng)
	limit := math.Sqrt(6.0 / (8 + 4))
	var nonZero int
	for row := 0; row < 8; row++ {
		for col := 0; col < 4; col++ {
			for _, w := range []*mat.Dense{conv.wSelf, conv.wNeigh} {
				value := w.At(row, col)
				assert.LessOrEqual(t, math.Abs(value), limit)
				if value != 0 {
					nonZero++
				}
			}
		}
	}
	assert.NotZero(t, nonZero)
}

func TestDimensionErrors(t *testing.T) {
	g, nodes := convGraph(t)
	conv := New(5, 2)
	_, err := conv.Forward(g, nodes)
	require.True(t, errors.Is(err, features.ErrDimensionMismatch))

	err = New(2, 2).SetWeights(mat.NewDense(3, 2, nil), mat.NewDense(2, 2, nil), []float64{0, 0})
	require.True(t, errors.Is(err, features.ErrDimensionMismatch))
	err = New(2, 2).SetWeights(mat.NewDense(2, 2, nil), mat.NewDense(2, 2, nil), []float64{0})
	require.True(t, errors.Is(err, features.ErrDimensionMismatch))

	require.Panics(t, func() { New(0, 2) })
	require.Panics(t, func() { New(2, 2).WithReduce(nil) })
}
