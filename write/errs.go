package write

import "errors"

// ErrUnregistered reports a node type with no writer in strict mode. In
// lenient mode the default writer handles the node and a diagnostic with
// CodeUnregistered is recorded instead.
var ErrUnregistered = errors.New("no writer registered for node type")

const CodeUnregistered = "E300"
