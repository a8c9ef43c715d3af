package node

import "errors"

var (
	ErrCycle     = errors.New("append would create a cycle")
	ErrReparent  = errors.New("node already has a parent")
	ErrClosed    = errors.New("node already closed")
	ErrSpan      = errors.New("bad span")
	ErrLeafChild = errors.New("character data nodes have no children")
)
