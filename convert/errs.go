package convert

import "errors"

var (
	// ErrReservedKey reports an attempt to set "doc" or "log" in the
	// conversion context. Those keys always resolve to the output document
	// and the diagnostic list.
	ErrReservedKey = errors.New("conversion key is reserved")

	// ErrAncestorMutation reports a converter that modified an ancestor of
	// its node directly instead of deferring the edit.
	ErrAncestorMutation = errors.New("converter modified an ancestor node")
)

const (
	CodeUnregistered     = "E400"
	CodeAncestorMutation = "E401"
	CodeProcess          = "E402"
)
