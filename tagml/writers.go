package tagml

import (
	"strings"

	"github.com/jmlopez-rod/lexor/node"
	"github.com/jmlopez-rod/lexor/write"
)

// TagWriter is the catch-all writer of the language. It renders tags with
// their attributes and processing instructions in their <?target body?>
// form. Self-closing input renders as an open and close tag pair.
type TagWriter struct {
	write.Base
}

func (TagWriter) Start(pr *write.Printer, n *node.Node) {
	if strings.HasPrefix(n.Type, PIPrefix) {
		pr.Printf("<?%s %s?>", n.Type[1:], n.Data)
		return
	}
	pr.Printf("<%s", n.Type)
	for _, name := range n.AttrNames() {
		v, _ := n.Attr(name)
		pr.Printf(" %s=%q", name, v)
	}
	pr.WriteString(">")
}

func (TagWriter) Data(pr *write.Printer, n *node.Node) {
	if strings.HasPrefix(n.Type, PIPrefix) {
		return
	}
	pr.WriteString(n.Data)
}

func (TagWriter) End(pr *write.Printer, n *node.Node) {
	if strings.HasPrefix(n.Type, PIPrefix) {
		return
	}
	pr.Printf("</%s>", n.Type)
}

// CommentWriter renders comment nodes.
type CommentWriter struct {
	write.Base
}

func (CommentWriter) Start(pr *write.Printer, n *node.Node) {
	pr.WriteString("<!--")
}

func (CommentWriter) End(pr *write.Printer, n *node.Node) {
	pr.WriteString("-->")
}

// dropWriter writes nothing and suppresses children. The min style uses
// it to strip comments.
type dropWriter struct {
	write.Base
}

func (dropWriter) Data(pr *write.Printer, n *node.Node) {}

func (dropWriter) Child(pr *write.Printer, child *node.Node) bool {
	return false
}
