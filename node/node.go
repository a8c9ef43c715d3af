// Package node defines the document tree shared by the parse, write and
// convert engines.
package node

import "fmt"

const (
	// RootType is the node type of every document root.
	RootType = "#document"
	// TextType is the node type of character data leaves.
	TextType = "#text"
)

// Span is a half-open [Begin, End) range of byte offsets into the source
// buffer a node was parsed from. It is set at creation and close time and
// immutable afterwards.
type Span struct {
	Begin, End int
}

// Node is a unit of the document tree: either a container with ordered
// children and attributes, or a character data leaf holding Data. The parent
// link is non-owning and only used for lookups; ownership runs parent to
// child.
type Node struct {
	Type        string
	Parent      *Node
	ParentIndex int
	Span        Span

	Children []*Node
	Data     string

	attrNames []string
	attrs     map[string]string
	leaf      bool
	closed    bool
}

// NewElement returns an open container node with the given type tag.
func NewElement(typ string) *Node {
	return &Node{Type: typ}
}

// NewData returns a closed character data leaf with a custom type tag, such
// as a comment or processing instruction.
func NewData(typ, data string) *Node {
	return &Node{Type: typ, Data: data, leaf: true, closed: true}
}

// NewText returns a closed #text leaf.
func NewText(data string) *Node {
	return NewData(TextType, data)
}

// At records the start offset of the node and returns it, for chaining at
// creation sites.
func (n *Node) At(begin int) *Node {
	n.Span.Begin = begin
	n.Span.End = begin
	return n
}

// Leaf reports whether n is a character data leaf (any leaf type, not only
// #text).
func (n *Node) Leaf() bool {
	return n.leaf
}

// Closed reports whether the node span has been finalized.
func (n *Node) Closed() bool {
	return n.closed
}

// CloseAt finalizes the node span. A node is closed exactly once and never
// reopened.
func (n *Node) CloseAt(end int) error {
	if n.closed {
		return fmt.Errorf("%w: %s", ErrClosed, n.Type)
	}
	if end < n.Span.Begin {
		return fmt.Errorf("%w: end %d before begin %d", ErrSpan, end, n.Span.Begin)
	}
	n.Span.End = end
	n.closed = true
	return nil
}

// Append adds child as the last child of n. The child must not already have
// a parent and the append must keep the structure a tree.
func (n *Node) Append(child *Node) error {
	if n.leaf {
		return fmt.Errorf("%w: %s", ErrLeafChild, n.Type)
	}
	if child.Parent != nil {
		return fmt.Errorf("%w: %s", ErrReparent, child.Type)
	}
	for p := n; p != nil; p = p.Parent {
		if p == child {
			return fmt.Errorf("%w: %s", ErrCycle, child.Type)
		}
	}
	child.Parent = n
	child.ParentIndex = len(n.Children)
	n.Children = append(n.Children, child)
	return nil
}

// SetAttr sets an attribute, keeping first-set order for serialization.
func (n *Node) SetAttr(name, value string) {
	if n.attrs == nil {
		n.attrs = map[string]string{}
	}
	if _, ok := n.attrs[name]; !ok {
		n.attrNames = append(n.attrNames, name)
	}
	n.attrs[name] = value
}

// Attr returns the attribute value and whether it is set.
func (n *Node) Attr(name string) (string, bool) {
	v, ok := n.attrs[name]
	return v, ok
}

// AttrNames returns attribute names in first-set order. The returned slice
// is shared; callers must not mutate it.
func (n *Node) AttrNames() []string {
	return n.attrNames
}

// RenameAttr moves the value of old under next, preserving the attribute's
// position in the serialization order.
func (n *Node) RenameAttr(old, next string) {
	v, ok := n.attrs[old]
	if !ok || old == next {
		return
	}
	delete(n.attrs, old)
	n.attrs[next] = v
	for i, name := range n.attrNames {
		if name == old {
			n.attrNames[i] = next
			return
		}
	}
}

// Clone returns a deep copy of the subtree rooted at n. The copy has no
// parent; child parent links point inside the copy.
func (n *Node) Clone() *Node {
	dst := &Node{}
	n.cloneTo(dst)
	dst.Parent = nil
	dst.ParentIndex = 0
	return dst
}

func (n *Node) cloneTo(dst *Node) {
	dst.Type = n.Type
	dst.Data = n.Data
	dst.Span = n.Span
	dst.leaf = n.leaf
	dst.closed = n.closed
	if n.attrs != nil {
		dst.attrs = make(map[string]string, len(n.attrs))
		dst.attrNames = append([]string(nil), n.attrNames...)
		for k, v := range n.attrs {
			dst.attrs[k] = v
		}
	}
	if n.Children != nil {
		dst.Children = make([]*Node, len(n.Children))
		for i, c := range n.Children {
			cc := &Node{}
			c.cloneTo(cc)
			cc.Parent = dst
			cc.ParentIndex = i
			dst.Children[i] = cc
		}
	}
}

// CloneShallow copies the node without its children.
func (n *Node) CloneShallow() *Node {
	dst := &Node{}
	dst.Type = n.Type
	dst.Data = n.Data
	dst.Span = n.Span
	dst.leaf = n.leaf
	dst.closed = n.closed
	if n.attrs != nil {
		dst.attrs = make(map[string]string, len(n.attrs))
		dst.attrNames = append([]string(nil), n.attrNames...)
		for k, v := range n.attrs {
			dst.attrs[k] = v
		}
	}
	return dst
}

// Root walks parent links to the top of the tree.
func (n *Node) Root() *Node {
	res := n
	for res.Parent != nil {
		res = res.Parent
	}
	return res
}

// Visit runs f over the subtree in document order. f is called once before
// descending (isPost false) and once after (isPost true); returning false
// from the pre call skips the children.
func (n *Node) Visit(f func(n *Node, isPost bool) (bool, error)) error {
	dive, err := f(n, false)
	if err != nil {
		return err
	}
	if dive {
		for _, c := range n.Children {
			if err := c.Visit(f); err != nil {
				return err
			}
		}
	}
	if _, err := f(n, true); err != nil {
		return err
	}
	return nil
}

// Equal reports structural equality of two subtrees, ignoring source spans
// and parent links.
func Equal(a, b *Node) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.Type != b.Type || a.Data != b.Data {
		return false
	}
	if len(a.attrNames) != len(b.attrNames) || len(a.Children) != len(b.Children) {
		return false
	}
	for i, name := range a.attrNames {
		if b.attrNames[i] != name {
			return false
		}
		if a.attrs[name] != b.attrs[name] {
			return false
		}
	}
	for i, c := range a.Children {
		if !Equal(c, b.Children[i]) {
			return false
		}
	}
	return true
}
