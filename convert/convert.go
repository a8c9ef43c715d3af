// Package convert rewrites a document from one language into another.
// Language pairs contribute NodeConverter implementations keyed by source
// node type, plus an optional mapping table of plain type and attribute
// renames for node types that need no custom logic.
package convert

import (
	"fmt"

	"github.com/jmlopez-rod/lexor/debug"
	"github.com/jmlopez-rod/lexor/diag"
	"github.com/jmlopez-rod/lexor/node"
)

// NodeConverter rewrites one source node type. Copy reports whether the
// engine carries the node into the output tree at all; CopyChildren
// reports whether the engine converts its children afterwards. Process
// runs with the source node and the output copy, which is nil when Copy
// is false.
//
// Process must not modify ancestors of dst. Edits above dst go through
// Conversion.Defer and run once the subtree under the target is done.
type NodeConverter interface {
	Copy() bool
	CopyChildren() bool
	Process(cv *Conversion, src, dst *node.Node) error
}

// Base is a NodeConverter that carries the node and its children over
// unchanged. Embed it and override the hooks the node type needs.
type Base struct{}

func (Base) Copy() bool { return true }

func (Base) CopyChildren() bool { return true }

func (Base) Process(cv *Conversion, src, dst *node.Node) error { return nil }

// Rule is one mapping table entry: the output node type and attribute
// renames for a source node type.
type Rule struct {
	Type  string
	Attrs map[string]string
}

// Mapping holds the plain rename rules for a language pair, keyed by
// source node type. A converter for the same type takes precedence.
type Mapping map[string]Rule

// Source provides the converters and the mapping table for a language
// pair and conversion style, normally a *registry.Registry.
type Source interface {
	NodeConverters(fromLang, toLang, style string) map[string]NodeConverter
	Mapping(fromLang, toLang, style string) Mapping
}

// Convert builds a toLang document from doc. The input tree is never
// modified. Unmapped node types carry over unchanged, with an error
// diagnostic on the node in strict mode; converter failures are recorded
// the same way unless strict mode promotes them to a fatal error.
func Convert(doc *node.Document, toLang string, opts ...Option) (*node.Document, diag.List, error) {
	o := &convertOpts{style: "default"}
	for _, opt := range opts {
		opt(o)
	}
	e := &engine{o: o}
	if o.src != nil {
		e.converters = o.src.NodeConverters(doc.Lang, toLang, o.style)
		e.mapping = o.src.Mapping(doc.Lang, toLang, o.style)
	}
	debug.Convert.Logf("from=%q to=%q style=%q converters=%d rules=%d",
		doc.Lang, toLang, o.style, len(e.converters), len(e.mapping))

	out := node.NewDocument(toLang, o.style)
	out.URI = doc.URI
	e.cv = &Conversion{doc: out, src: doc, log: &e.log}
	for _, c := range doc.Root.Children {
		if err := e.node(c, out.Root); err != nil {
			return nil, e.log, err
		}
	}
	if err := e.drain(out.Root); err != nil {
		return nil, e.log, err
	}
	out.Root.CloseAt(doc.Root.Span.End)
	return out, e.log, nil
}

type engine struct {
	o          *convertOpts
	converters map[string]NodeConverter
	mapping    Mapping
	cv         *Conversion
	log        diag.List
}

func (e *engine) node(src *node.Node, dstParent *node.Node) error {
	if err := e.o.cancelled(); err != nil {
		return err
	}
	nc, ok := e.converters[src.Type]
	if !ok {
		if rule, ok := e.mapping[src.Type]; ok {
			return e.applyRule(src, dstParent, rule)
		}
		if e.o.strict && src.Type != node.TextType {
			e.log.Errorf(CodeUnregistered, src.Span,
				"no converter registered for node type: %s", src.Type)
		}
		// Unmapped node types carry over unchanged.
		nc = Base{}
	}

	var dst *node.Node
	if nc.Copy() {
		dst = src.CloneShallow()
		dstParent.Append(dst)
	}
	marks := e.markAncestors(dstParent)
	if err := nc.Process(e.cv, src, dst); err != nil {
		if e.o.strict {
			return fmt.Errorf("converting %s: %w", src.Type, err)
		}
		e.log.Errorf(CodeProcess, src.Span, "converting %s: %v", src.Type, err)
	}
	if err := e.checkAncestors(src, dstParent, marks); err != nil {
		return err
	}
	if dst == nil {
		return nil
	}
	if nc.CopyChildren() && !dst.Leaf() {
		for _, c := range src.Children {
			if err := e.node(c, dst); err != nil {
				return err
			}
		}
	}
	return e.drain(dst)
}

func (e *engine) applyRule(src *node.Node, dstParent *node.Node, rule Rule) error {
	dst := src.CloneShallow()
	dst.Type = rule.Type
	for from, to := range rule.Attrs {
		dst.RenameAttr(from, to)
	}
	dstParent.Append(dst)
	for _, c := range src.Children {
		if err := e.node(c, dst); err != nil {
			return err
		}
	}
	return e.drain(dst)
}

// drain runs the deferred edits queued on n, now that everything under it
// has been converted.
func (e *engine) drain(n *node.Node) error {
	for _, fn := range e.cv.take(n) {
		if err := fn(e.cv, n); err != nil {
			if e.o.strict {
				return fmt.Errorf("deferred edit on %s: %w", n.Type, err)
			}
			e.log.Errorf(CodeProcess, n.Span, "deferred edit on %s: %v", n.Type, err)
		}
	}
	return nil
}

// markAncestors snapshots the child counts along the output chain so
// direct ancestor edits made by a converter can be caught afterwards.
func (e *engine) markAncestors(dstParent *node.Node) []int {
	var marks []int
	for a := dstParent; a != nil; a = a.Parent {
		marks = append(marks, len(a.Children))
	}
	return marks
}

func (e *engine) checkAncestors(src *node.Node, dstParent *node.Node, marks []int) error {
	i := 0
	for a := dstParent; a != nil; a = a.Parent {
		if len(a.Children) != marks[i] {
			if e.o.strict {
				return fmt.Errorf("%w: %s changed %s", ErrAncestorMutation, src.Type, a.Type)
			}
			e.log.Errorf(CodeAncestorMutation, src.Span,
				"converter for %s modified ancestor %s, use Defer", src.Type, a.Type)
			return nil
		}
		i++
	}
	return nil
}
