// Package write renders a document tree back to text. Language packages
// contribute NodeWriter implementations keyed by node type; the engine owns
// the traversal and the output buffer.
package write

import (
	"bytes"
	"fmt"
	"io"

	"github.com/jmlopez-rod/lexor/debug"
	"github.com/jmlopez-rod/lexor/diag"
	"github.com/jmlopez-rod/lexor/node"
)

// NodeWriter renders one node type. Start runs before anything under the
// node, Data runs for leaf nodes, Child decides per child whether the
// engine descends, and End runs after the last child. Child is a
// per-child refinement of an all-or-nothing recursion gate: returning a
// constant suppresses or writes the subtree as a whole, while inspecting
// the child lets a writer skip individual subtrees.
type NodeWriter interface {
	Start(pr *Printer, n *node.Node)
	Data(pr *Printer, n *node.Node)
	Child(pr *Printer, child *node.Node) bool
	End(pr *Printer, n *node.Node)
}

// Base is a NodeWriter with the default behavior for every hook: no
// delimiters, raw data, all children written. Embed it and override the
// hooks the node type needs.
type Base struct{}

func (Base) Start(pr *Printer, n *node.Node) {}

func (Base) Data(pr *Printer, n *node.Node) {
	pr.WriteString(n.Data)
}

func (Base) Child(pr *Printer, child *node.Node) bool {
	return true
}

func (Base) End(pr *Printer, n *node.Node) {}

// Source provides the node writers for a language and style, keyed by node
// type. A writer registered under DefaultType handles every node type the
// map has no entry for.
type Source interface {
	NodeWriters(lang, style string) map[string]NodeWriter
}

// DefaultType is the writer map key for a language's catch-all writer.
const DefaultType = "*"

// Printer is the append-only output buffer handed to writer hooks. Output
// can only grow; hooks cannot inspect or rewrite what was already written.
type Printer struct {
	w   io.Writer
	err error
}

// WriteString appends s to the output.
func (p *Printer) WriteString(s string) {
	if p.err != nil {
		return
	}
	_, p.err = io.WriteString(p.w, s)
}

// Printf appends formatted output.
func (p *Printer) Printf(format string, args ...any) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format, args...)
}

type engine struct {
	pr      *Printer
	writers map[string]NodeWriter
	def     Base
	o       *writeOpts
	log     diag.List
}

// Write renders doc to a string. On error the string is empty, never a
// partial render.
func Write(doc *node.Document, opts ...Option) (string, diag.List, error) {
	var buf bytes.Buffer
	log, err := WriteTo(&buf, doc, opts...)
	if err != nil {
		return "", log, err
	}
	return buf.String(), log, nil
}

// WriteTo renders doc to w. Recoverable problems are reported in the
// returned diagnostic list; a non-nil error aborts the pass with partial
// output already written.
func WriteTo(w io.Writer, doc *node.Document, opts ...Option) (diag.List, error) {
	o := &writeOpts{lang: doc.Lang, style: doc.Style}
	if o.style == "" {
		o.style = "default"
	}
	for _, opt := range opts {
		opt(o)
	}
	e := &engine{pr: &Printer{w: w}, o: o}
	if o.src != nil {
		e.writers = o.src.NodeWriters(o.lang, o.style)
	}
	debug.Write.Logf("lang=%q style=%q writers=%d", o.lang, o.style, len(e.writers))
	for _, c := range doc.Root.Children {
		if err := e.node(c); err != nil {
			return e.log, err
		}
	}
	return e.log, e.pr.err
}

func (e *engine) node(n *node.Node) error {
	if err := e.o.cancelled(); err != nil {
		return err
	}
	nw, ok := e.writers[n.Type]
	if !ok && n.Type != node.TextType {
		nw, ok = e.writers[DefaultType]
	}
	if !ok {
		if n.Type != node.TextType {
			if e.o.strict {
				return fmt.Errorf("%w: %s", ErrUnregistered, n.Type)
			}
			e.log.Warnf(CodeUnregistered, n.Span, "no writer for %s, using default", n.Type)
		}
		nw = e.def
	}
	nw.Start(e.pr, n)
	if n.Leaf() {
		nw.Data(e.pr, n)
	} else {
		for _, c := range n.Children {
			if !nw.Child(e.pr, c) {
				continue
			}
			if err := e.node(c); err != nil {
				return err
			}
		}
	}
	nw.End(e.pr, n)
	return e.pr.err
}
