package tagml

import (
	"fmt"
	"strings"

	"github.com/jmlopez-rod/lexor/diag"
	"github.com/jmlopez-rod/lexor/node"
	"github.com/jmlopez-rod/lexor/parse"
)

// CommentType and the "?" prefix of processing instructions are the node
// types tagml produces besides the tag names themselves and #text.
const (
	CommentType = "#comment"
	PIPrefix    = "?"
)

func isNameByte(b byte) bool {
	return b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z' ||
		b >= '0' && b <= '9' || b == '-' || b == '_'
}

func isNameStart(b byte) bool {
	return b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z'
}

func skipSpace(ct *parse.Caret) {
	for !ct.EOF() {
		switch ct.Byte() {
		case ' ', '\t', '\n', '\r':
			ct.Advance(1)
		default:
			return
		}
	}
}

func readName(ct *parse.Caret) string {
	var b strings.Builder
	for !ct.EOF() && isNameByte(ct.Byte()) {
		b.WriteByte(ct.Byte())
		ct.Advance(1)
	}
	return b.String()
}

// ElementParser recognizes tags. An opening tag produces an open container
// node whose type is the tag name; a self-closing tag produces the same
// node already closed.
type ElementParser struct{}

func (ElementParser) Trigger(ct *parse.Caret) bool {
	rest := ct.Rest()
	return len(rest) > 1 && rest[0] == '<' && isNameStart(rest[1])
}

func (ElementParser) MakeNode(ct *parse.Caret, log *diag.List) (*node.Node, error) {
	begin := ct.Offset()
	ct.Advance(1)
	n := node.NewElement(readName(ct)).At(begin)
	for {
		skipSpace(ct)
		if ct.EOF() {
			return nil, fmt.Errorf("unexpected end of input in <%s", n.Type)
		}
		switch {
		case ct.Byte() == '>':
			ct.Advance(1)
			return n, nil
		case ct.HasPrefix("/>"):
			ct.Advance(2)
			n.CloseAt(ct.Offset())
			return n, nil
		case isNameStart(ct.Byte()):
			if err := readAttr(ct, n); err != nil {
				return nil, err
			}
		default:
			return nil, fmt.Errorf("unexpected %q in <%s", ct.Byte(), n.Type)
		}
	}
}

func readAttr(ct *parse.Caret, n *node.Node) error {
	name := readName(ct)
	skipSpace(ct)
	if ct.EOF() || ct.Byte() != '=' {
		// Boolean attribute.
		n.SetAttr(name, "")
		return nil
	}
	ct.Advance(1)
	skipSpace(ct)
	if ct.EOF() || ct.Byte() != '"' {
		return fmt.Errorf("attribute %s: expected quoted value", name)
	}
	ct.Advance(1)
	val, ok := ct.ReadUntil(`"`)
	if !ok {
		return fmt.Errorf("attribute %s: unterminated value", name)
	}
	ct.Advance(1)
	n.SetAttr(name, val)
	return nil
}

func (ElementParser) Terminates(ct *parse.Caret, n *node.Node) bool {
	return ct.HasPrefix("</" + n.Type + ">")
}

func (ElementParser) Close(ct *parse.Caret, n *node.Node, log *diag.List) {
	ct.Advance(len(n.Type) + 3)
	n.CloseAt(ct.Offset())
}

// CommentParser recognizes <!-- --> comments as data nodes.
type CommentParser struct{}

func (CommentParser) Trigger(ct *parse.Caret) bool {
	return ct.HasPrefix("<!--")
}

func (CommentParser) MakeNode(ct *parse.Caret, log *diag.List) (*node.Node, error) {
	begin := ct.Offset()
	ct.Advance(4)
	data, ok := ct.ReadUntil("-->")
	if !ok {
		log.Errorf(CodeUnterminatedComment, node.Span{Begin: begin, End: ct.Offset()},
			"unterminated comment")
	} else {
		ct.Advance(3)
	}
	n := node.NewData(CommentType, data).At(begin)
	n.Span.End = ct.Offset()
	return n, nil
}

// PIParser recognizes <?target ...?> processing instructions. The node
// type is the target prefixed with "?" and the data is the instruction
// body.
type PIParser struct{}

func (PIParser) Trigger(ct *parse.Caret) bool {
	return ct.HasPrefix("<?")
}

func (PIParser) MakeNode(ct *parse.Caret, log *diag.List) (*node.Node, error) {
	begin := ct.Offset()
	ct.Advance(2)
	target := readName(ct)
	skipSpace(ct)
	data, ok := ct.ReadUntil("?>")
	if !ok {
		log.Errorf(CodeUnterminatedPI, node.Span{Begin: begin, End: ct.Offset()},
			"unterminated processing instruction")
	} else {
		ct.Advance(2)
	}
	n := node.NewData(PIPrefix+target, strings.TrimSpace(data)).At(begin)
	n.Span.End = ct.Offset()
	return n, nil
}
