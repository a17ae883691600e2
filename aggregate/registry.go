package aggregate

import (
	. "github.com/gomlx/exceptions"
	"github.com/pkg/errors"

	"github.com/gographml/messagepassing/internal/xslices"
)

// Names under which the built-in message and reduce functions are
// registered.
const (
	MessageCopySource     = "copy_source"
	MessageWeightedSource = "weighted_source"
	ReduceMean            = "mean"
	ReduceSum             = "sum"
	ReduceMax             = "max"
)

var (
	messageRegistry = map[string]MessageFunc{
		MessageCopySource:     CopySource,
		MessageWeightedSource: WeightedSource,
	}
	reduceRegistry = map[string]ReduceFunc{
		ReduceMean: Mean,
		ReduceSum:  Sum,
		ReduceMax:  Max,
	}
)

// RegisterMessage makes a message function available to MessageByName.
// Meant to be called at init time; registering an empty name, a nil
// function or a name already taken is a programming error and panics.
func RegisterMessage(name string, fn MessageFunc) {
	if name == "" || fn == nil {
		Panicf("RegisterMessage(%q) requires a non-empty name and a non-nil function", name)
	}
	if _, found := messageRegistry[name]; found {
		Panicf("RegisterMessage: message function %q already registered", name)
	}
	messageRegistry[name] = fn
}

// RegisterReduce makes a reduce function available to ReduceByName.
// Same contract as RegisterMessage.
func RegisterReduce(name string, fn ReduceFunc) {
	if name == "" || fn == nil {
		Panicf("RegisterReduce(%q) requires a non-empty name and a non-nil function", name)
	}
	if _, found := reduceRegistry[name]; found {
		Panicf("RegisterReduce: reduce function %q already registered", name)
	}
	reduceRegistry[name] = fn
}

// MessageByName returns the message function registered under name.
func MessageByName(name string) (MessageFunc, error) {
	fn, found := messageRegistry[name]
	if !found {
		return nil, errors.Errorf("unknown message function %q: registered functions are %v",
			name, xslices.SortedKeys(messageRegistry))
	}
	return fn, nil
}

// ReduceByName returns the reduce function registered under name.
func ReduceByName(name string) (ReduceFunc, error) {
	fn, found := reduceRegistry[name]
	if !found {
		return nil, errors.Errorf("unknown reduce function %q: registered functions are %v",
			name, xslices.SortedKeys(reduceRegistry))
	}
	return fn, nil
}
