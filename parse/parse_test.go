package parse

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"testing"

	"github.com/jmlopez-rod/lexor/diag"
	"github.com/jmlopez-rod/lexor/node"
)

// parenParser recognizes (...) groups as "group" containers.
type parenParser struct{}

func (parenParser) Trigger(ct *Caret) bool {
	return ct.Byte() == '('
}

func (parenParser) MakeNode(ct *Caret, log *diag.List) (*node.Node, error) {
	begin := ct.Offset()
	ct.Advance(1)
	return node.NewElement("group").At(begin), nil
}

func (parenParser) Terminates(ct *Caret, n *node.Node) bool {
	return ct.Byte() == ')'
}

func (parenParser) Close(ct *Caret, n *node.Node, log *diag.List) {
	ct.Advance(1)
	n.CloseAt(ct.Offset())
}

// bangParser recognizes !word leaves.
type bangParser struct{}

func (bangParser) Trigger(ct *Caret) bool {
	return ct.Byte() == '!'
}

func (bangParser) MakeNode(ct *Caret, log *diag.List) (*node.Node, error) {
	begin := ct.Offset()
	ct.Advance(1)
	data := ""
	for !ct.EOF() && ct.Byte() >= 'a' && ct.Byte() <= 'z' {
		data += string(ct.Byte())
		ct.Advance(1)
	}
	if data == "" {
		return nil, fmt.Errorf("bare !")
	}
	n := node.NewData("bang", data).At(begin)
	n.Span.End = ct.Offset()
	return n, nil
}

// reattachParser hands back a node that already lives in another tree.
type reattachParser struct {
	n *node.Node
}

func (p reattachParser) Trigger(ct *Caret) bool {
	return ct.Byte() == '&'
}

func (p reattachParser) MakeNode(ct *Caret, log *diag.List) (*node.Node, error) {
	ct.Advance(1)
	return p.n, nil
}

// stuckParser triggers but never advances.
type stuckParser struct{}

func (stuckParser) Trigger(ct *Caret) bool {
	return ct.Byte() == '@'
}

func (stuckParser) MakeNode(ct *Caret, log *diag.List) (*node.Node, error) {
	return node.NewElement("stuck"), nil
}

type parserSource []NodeParser

func (s parserSource) NodeParsers(lang, style string) []NodeParser {
	return s
}

var testSource = parserSource{parenParser{}, bangParser{}}

func TestParseTree(t *testing.T) {
	doc, log, err := Parse([]byte("ab(cd!x)e"), Plugins(testSource))
	if err != nil {
		t.Fatal(err)
	}
	if log.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", log)
	}

	want := node.NewElement(node.RootType)
	want.Append(node.NewText("ab"))
	g := node.NewElement("group")
	g.Append(node.NewText("cd"))
	g.Append(node.NewData("bang", "x"))
	want.Append(g)
	want.Append(node.NewText("e"))
	if !node.Equal(doc.Root, want) {
		t.Fatalf("tree mismatch:\n got %+v", doc.Root)
	}
	if !doc.Root.Closed() {
		t.Fatal("root not closed")
	}

	group := doc.Root.Children[1]
	if group.Span.Begin != 2 || group.Span.End != 8 {
		t.Fatalf("group span = %+v, want 2..8", group.Span)
	}
}

func TestParseRawTextOnly(t *testing.T) {
	doc, log, err := Parse([]byte("hello"))
	if err != nil {
		t.Fatal(err)
	}
	if len(log) != 0 {
		t.Fatalf("unexpected diagnostics: %v", log)
	}
	if len(doc.Root.Children) != 1 {
		t.Fatalf("children = %d, want 1", len(doc.Root.Children))
	}
	txt := doc.Root.Children[0]
	if txt.Type != node.TextType || txt.Data != "hello" {
		t.Fatalf("bad text node: %+v", txt)
	}
	if txt.Span.Begin != 0 || txt.Span.End != 5 {
		t.Fatalf("span = %+v, want 0..5", txt.Span)
	}
}

func TestParseMalformed(t *testing.T) {
	doc, log, err := Parse([]byte("a!1b"), Plugins(testSource))
	if err != nil {
		t.Fatal(err)
	}
	if !log.HasErrors() {
		t.Fatal("expected malformed diagnostic")
	}
	if log[0].Code != CodeMalformed {
		t.Fatalf("code = %s, want %s", log[0].Code, CodeMalformed)
	}
	// The offending byte is skipped, the rest still parses as text.
	var got string
	for _, c := range doc.Root.Children {
		got += c.Data
	}
	if got != "a1b" {
		t.Fatalf("recovered text = %q, want a1b", got)
	}
}

func TestParseUnterminated(t *testing.T) {
	doc, log, err := Parse([]byte("(ab"), Plugins(testSource))
	if err != nil {
		t.Fatal(err)
	}
	if !log.HasErrors() {
		t.Fatal("expected unterminated diagnostic")
	}
	if log[0].Code != CodeUnterminated {
		t.Fatalf("code = %s, want %s", log[0].Code, CodeUnterminated)
	}
	g := doc.Root.Children[0]
	if g.Type != "group" || !g.Closed() || g.Span.End != 3 {
		t.Fatalf("group not closed at EOF: %+v", g)
	}
}

func TestParseAttachedNode(t *testing.T) {
	owner := node.NewElement("owner")
	shared := node.NewElement("shared")
	if err := owner.Append(shared); err != nil {
		t.Fatal(err)
	}
	doc, log, err := Parse([]byte("x&y"), Plugins(parserSource{reattachParser{shared}}))
	if err != nil {
		t.Fatal(err)
	}
	if !log.HasErrors() || log[0].Code != CodeMalformed {
		t.Fatalf("expected malformed diagnostic, got %v", log)
	}
	// The node is dropped, the surrounding text survives.
	var got string
	for _, c := range doc.Root.Children {
		got += c.Data
	}
	if got != "xy" {
		t.Fatalf("recovered text = %q, want xy", got)
	}
}

func TestParseInfiniteLoop(t *testing.T) {
	_, _, err := Parse([]byte("x@y"), Plugins(parserSource{stuckParser{}}))
	if !errors.Is(err, ErrInfiniteLoop) {
		t.Fatalf("expected ErrInfiniteLoop, got %v", err)
	}

	// Any buffer containing the trigger aborts, wherever it lands.
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 100; i++ {
		buf := make([]byte, 1+rng.Intn(64))
		for j := range buf {
			buf[j] = byte('a' + rng.Intn(26))
		}
		buf[rng.Intn(len(buf))] = '@'
		_, _, err := Parse(buf, Plugins(parserSource{stuckParser{}}))
		if !errors.Is(err, ErrInfiniteLoop) {
			t.Fatalf("buf %q: expected ErrInfiniteLoop, got %v", buf, err)
		}
	}
}

func TestParseCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, _, err := Parse([]byte("(a)"), Plugins(testSource), WithContext(ctx))
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestPosIndex(t *testing.T) {
	pi := NewPosIndex([]byte("ab\ncde\n\nf"))
	tests := []struct {
		off, line, col int
	}{
		{0, 0, 0},
		{1, 0, 1},
		{2, 0, 2},
		{3, 1, 0},
		{5, 1, 2},
		{7, 2, 0},
		{8, 3, 0},
	}
	for _, tt := range tests {
		l, c := pi.LineCol(tt.off)
		if l != tt.line || c != tt.col {
			t.Errorf("LineCol(%d) = %d,%d, want %d,%d", tt.off, l, c, tt.line, tt.col)
		}
	}
}
