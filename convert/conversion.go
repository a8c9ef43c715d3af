package convert

import (
	"github.com/jmlopez-rod/lexor/diag"
	"github.com/jmlopez-rod/lexor/node"
)

// Conversion is the shared state of one convert pass, handed to every
// Process call. Converters use it to exchange values, report diagnostics,
// and queue edits on ancestor nodes.
type Conversion struct {
	doc      *node.Document
	src      *node.Document
	log      *diag.List
	vals     map[string]any
	deferred map[*node.Node][]DeferredEdit
}

// DeferredEdit runs on an output node once the subtree under it has been
// fully converted.
type DeferredEdit func(cv *Conversion, target *node.Node) error

// Doc returns the output document being built.
func (cv *Conversion) Doc() *node.Document {
	return cv.doc
}

// SrcDoc returns the input document. It must not be modified.
func (cv *Conversion) SrcDoc() *node.Document {
	return cv.src
}

// Log returns the diagnostic list of the pass.
func (cv *Conversion) Log() *diag.List {
	return cv.log
}

// Set stores a value under key for later Process calls. The keys "doc"
// and "log" are reserved.
func (cv *Conversion) Set(key string, v any) error {
	if key == "doc" || key == "log" {
		return ErrReservedKey
	}
	if cv.vals == nil {
		cv.vals = map[string]any{}
	}
	cv.vals[key] = v
	return nil
}

// Get returns the value stored under key. The reserved keys "doc" and
// "log" resolve to the output document and the diagnostic list.
func (cv *Conversion) Get(key string) (any, bool) {
	switch key {
	case "doc":
		return cv.doc, true
	case "log":
		return cv.log, true
	}
	v, ok := cv.vals[key]
	return v, ok
}

// Defer queues an edit on target, an output node above the one being
// processed. The edit runs once everything under target has been
// converted, which keeps converters from mutating ancestors mid-walk.
func (cv *Conversion) Defer(target *node.Node, fn DeferredEdit) {
	if cv.deferred == nil {
		cv.deferred = map[*node.Node][]DeferredEdit{}
	}
	cv.deferred[target] = append(cv.deferred[target], fn)
}

func (cv *Conversion) take(n *node.Node) []DeferredEdit {
	edits := cv.deferred[n]
	delete(cv.deferred, n)
	return edits
}
