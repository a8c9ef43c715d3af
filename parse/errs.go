package parse

import "errors"

// ErrInfiniteLoop reports a node parser that matched but did not consume
// any input. The engine aborts the pass rather than spin.
var ErrInfiniteLoop = errors.New("node parser did not advance the caret")

// Diagnostic codes emitted by the engine itself. Node parsers define their
// own codes in their own packages.
const (
	CodeMalformed    = "E200"
	CodeUnterminated = "E201"
)
