package sage

import (
	"math"

	. "github.com/gomlx/exceptions"

	"github.com/gographml/messagepassing/internal/xslices"
)

// Names of the supported activations.
const (
	ActivationIdentity = "identity"
	ActivationRelu     = "relu"
	ActivationSigmoid  = "sigmoid"
	ActivationTanh     = "tanh"
)

var activationRegistry = map[string]func(float64) float64{
	ActivationIdentity: func(x float64) float64 { return x },
	ActivationRelu:     func(x float64) float64 { return math.Max(x, 0) },
	ActivationSigmoid:  func(x float64) float64 { return 1 / (1 + math.Exp(-x)) },
	ActivationTanh:     math.Tanh,
}

// ActivationFromName converts the name of an activation to its function.
// It panics with a helpful message if name is invalid.
func ActivationFromName(name string) func(float64) float64 {
	fn, found := activationRegistry[name]
	if !found {
		Panicf("invalid activation name %q: options are %v", name, ActivationValues())
	}
	return fn
}

// ActivationValues lists the valid activation names.
func ActivationValues() []string {
	return xslices.SortedKeys(activationRegistry)
}
