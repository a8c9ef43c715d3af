// Package parse turns source text into a document tree. The engine owns
// the caret and the open-container stack; language packages contribute
// NodeParser implementations that recognize and build individual nodes.
package parse

import (
	"fmt"
	"strings"

	"github.com/jmlopez-rod/lexor/debug"
	"github.com/jmlopez-rod/lexor/diag"
	"github.com/jmlopez-rod/lexor/node"
)

// NodeParser recognizes one construct of a language. Trigger must not move
// the caret; MakeNode consumes the construct and returns its node, which may
// be open (a container whose children follow) or closed.
type NodeParser interface {
	Trigger(ct *Caret) bool
	MakeNode(ct *Caret, log *diag.List) (*node.Node, error)
}

// ContainerParser is a NodeParser whose nodes stay open and collect
// children until Terminates reports that the closing construct is under
// the caret.
type ContainerParser interface {
	NodeParser
	Terminates(ct *Caret, n *node.Node) bool
}

// Closer lets a container parser consume its closing construct. Parsers
// that do not implement it get their node closed at the caret as is.
type Closer interface {
	Close(ct *Caret, n *node.Node, log *diag.List)
}

// Source provides the node parsers for a language and style. The order of
// the returned slice is the trigger precedence.
type Source interface {
	NodeParsers(lang, style string) []NodeParser
}

type frame struct {
	n *node.Node
	p ContainerParser
}

// Parse builds a document from d. Recoverable problems are reported in the
// returned diagnostic list together with a best-effort tree; a non-nil
// error means no usable tree could be produced.
func Parse(d []byte, opts ...Option) (*node.Document, diag.List, error) {
	o := &parseOpts{style: "default"}
	for _, opt := range opts {
		opt(o)
	}
	var parsers []NodeParser
	if o.src != nil {
		parsers = o.src.NodeParsers(o.lang, o.style)
	}
	debug.Parse.Logf("lang=%q style=%q parsers=%d bytes=%d", o.lang, o.style, len(parsers), len(d))

	doc := node.NewDocument(o.lang, o.style)
	ct := newCaret(d)
	var log diag.List
	stack := []frame{{n: doc.Root}}

	var text strings.Builder
	textStart := 0
	flush := func() {
		if text.Len() == 0 {
			return
		}
		t := node.NewText(text.String()).At(textStart)
		t.Span.End = ct.Offset()
		if err := stack[len(stack)-1].n.Append(t); err != nil {
			log.Errorf(CodeMalformed, t.Span, "dropping text: %v", err)
		}
		text.Reset()
	}

	for !ct.EOF() {
		if err := o.cancelled(); err != nil {
			return nil, log, err
		}
		top := &stack[len(stack)-1]
		if top.p != nil && top.p.Terminates(ct, top.n) {
			flush()
			closeFrame(ct, top, &log)
			stack = stack[:len(stack)-1]
			continue
		}
		np := match(parsers, ct)
		if np == nil {
			if text.Len() == 0 {
				textStart = ct.Offset()
			}
			text.WriteByte(ct.Byte())
			ct.Advance(1)
			continue
		}
		flush()
		before := ct.Offset()
		n, err := np.MakeNode(ct, &log)
		if err != nil {
			log.Errorf(CodeMalformed, node.Span{Begin: before, End: ct.Offset()},
				"malformed construct: %v", err)
			if ct.Offset() == before {
				// Smallest safe skip unit.
				ct.Advance(1)
			}
			continue
		}
		if ct.Offset() <= before {
			return nil, log, fmt.Errorf("%w: %T at offset %d", ErrInfiniteLoop, np, before)
		}
		if n == nil {
			continue
		}
		if err := stack[len(stack)-1].n.Append(n); err != nil {
			// A parser handed back a node that is already attached
			// somewhere, or the open container is a leaf.
			log.Errorf(CodeMalformed, n.Span, "dropping %s: %v", n.Type, err)
			continue
		}
		if cp, ok := np.(ContainerParser); ok && !n.Closed() {
			stack = append(stack, frame{n: n, p: cp})
		}
	}
	flush()

	// CloseAt cannot fail here: stack frames hold open nodes only and the
	// caret never moves backwards.
	for len(stack) > 1 {
		top := &stack[len(stack)-1]
		log.Errorf(CodeUnterminated, top.n.Span, "unterminated %s", top.n.Type)
		top.n.CloseAt(ct.Offset())
		stack = stack[:len(stack)-1]
	}
	doc.Root.CloseAt(ct.Offset())
	return doc, log, nil
}

func match(parsers []NodeParser, ct *Caret) NodeParser {
	for _, np := range parsers {
		if np.Trigger(ct) {
			return np
		}
	}
	return nil
}

func closeFrame(ct *Caret, f *frame, log *diag.List) {
	if cl, ok := f.p.(Closer); ok {
		cl.Close(ct, f.n, log)
	}
	if !f.n.Closed() {
		f.n.CloseAt(ct.Offset())
	}
}
