package aggregate

// ReduceFunc folds the multiset of messages arriving at one node into the
// node's output vector.
//
// output comes zero-initialized with the configured message dimension, and
// every message has that same dimension. An empty messages slice must leave
// output at the reducer's empty value -- zero for all built-in reducers.
// The messages are views, treat them as read-only.
//
// Precondition (documented, not enforced): the reduction must be commutative
// and associative over the multiset of messages. Messages arrive in the
// graph's storage order, which is not canonical -- a reducer sensitive to
// order gives undefined results.
type ReduceFunc func(output []float32, messages [][]float32)

// Sum adds all messages elementwise. No messages leaves a zero vector.
func Sum(output []float32, messages [][]float32) {
	for _, message := range messages {
		for ii, value := range message {
			output[ii] += value
		}
	}
}

// Mean is the arithmetic mean of the messages, elementwise.
// No messages leaves a zero vector.
func Mean(output []float32, messages [][]float32) {
	if len(messages) == 0 {
		return
	}
	Sum(output, messages)
	scale := 1 / float32(len(messages))
	for ii := range output {
		output[ii] *= scale
	}
}

// Max takes the elementwise maximum of the messages.
// No messages leaves a zero vector, matching the masked max pooling
// convention of zeroing fully-masked positions.
func Max(output []float32, messages [][]float32) {
	if len(messages) == 0 {
		return
	}
	copy(output, messages[0])
	for _, message := range messages[1:] {
		for ii, value := range message {
			if value > output[ii] {
				output[ii] = value
			}
		}
	}
}
