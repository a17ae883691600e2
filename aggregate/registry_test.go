package aggregate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gographml/messagepassing/features"
	"github.com/gographml/messagepassing/graphs"
)

func TestBuiltinsByName(t *testing.T) {
	for _, name := range []string{MessageCopySource, MessageWeightedSource} {
		fn, err := MessageByName(name)
		require.NoError(t, err)
		require.NotNil(t, fn)
	}
	for _, name := range []string{ReduceMean, ReduceSum, ReduceMax} {
		fn, err := ReduceByName(name)
		require.NoError(t, err)
		require.NotNil(t, fn)
	}

	_, err := MessageByName("no_such_fn")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "copy_source")
	_, err = ReduceByName("no_such_fn")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mean")
}

func TestRegisterCustom(t *testing.T) {
	RegisterMessage("test_double_source", func(source, target, edge []float32) []float32 {
		message := make([]float32, len(source))
		for ii, value := range source {
			message[ii] = 2 * value
		}
		return message
	})
	fn, err := MessageByName("test_double_source")
	require.NoError(t, err)

	g, err := graphs.FromEdges(2, []graphs.Edge{{Source: 1, Target: 0, FeatureRow: graphs.NoFeature}})
	require.NoError(t, err)
	nodes, err := features.FromSlices([][]float32{{1}, {3}})
	require.NoError(t, err)
	output, err := Aggregate(g, nodes, nil, fn, Sum)
	require.NoError(t, err)
	assert.Equal(t, []float32{6}, output.Row(0))

	// Duplicate and invalid registrations are programming errors.
	require.Panics(t, func() { RegisterMessage("test_double_source", CopySource) })
	require.Panics(t, func() { RegisterMessage("", CopySource) })
	require.Panics(t, func() { RegisterReduce(ReduceMean, Mean) })
	require.Panics(t, func() { RegisterReduce("test_nil", nil) })
}
