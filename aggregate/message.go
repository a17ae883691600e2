package aggregate

import (
	"github.com/pkg/errors"

	"github.com/gographml/messagepassing/features"
)

// MessageFunc computes the message sent along one edge (source -> target).
//
// It receives views into the feature tables: the source and target node
// vectors, and the edge's feature vector or nil when the edge carries none.
// It must not modify its inputs. The returned vector may alias the inputs
// (CopySource returns the source view directly); the caller treats it as
// read-only and never retains it beyond the reduction of one node.
//
// Message functions must be pure: the same inputs always produce the same
// message. Failures (e.g. a required edge feature that is absent) are
// reported by panicking with an error wrapping features.ErrMissingFeature or
// features.ErrDimensionMismatch -- the aggregation converts the panic into
// the returned error.
type MessageFunc func(source, target, edge []float32) []float32

// CopySource sends the source node's feature vector unchanged, the message
// function of a plain GraphSAGE mean aggregation.
func CopySource(source, target, edge []float32) []float32 {
	return source
}

// WeightedSource sends the source node's feature vector scaled by the edge
// feature: multiplied by a scalar weight when the edge feature has dimension
// 1, or elementwise when it has the same dimension as the source vector.
//
// Every edge must carry an edge feature, and any other edge dimension is a
// dimension mismatch.
func WeightedSource(source, target, edge []float32) []float32 {
	if edge == nil {
		panic(errors.Wrap(features.ErrMissingFeature,
			"WeightedSource requires an edge feature on every edge"))
	}
	message := make([]float32, len(source))
	switch len(edge) {
	case 1:
		weight := edge[0]
		for ii, value := range source {
			message[ii] = value * weight
		}
	case len(source):
		for ii, value := range source {
			message[ii] = value * edge[ii]
		}
	default:
		panic(errors.Wrapf(features.ErrDimensionMismatch,
			"WeightedSource got an edge feature of dimension %d, it must be 1 or the source dimension %d",
			len(edge), len(source)))
	}
	return message
}
