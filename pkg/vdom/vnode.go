package vdom

import (
	"github.com/vango-dev/reactor/pkg/view"
)

// Kind is the node type discriminator.
type Kind uint8

const (
	KindElement  Kind = iota // <div>, <li>, etc.
	KindText                 // Plain text node
	KindComment              // Placeholder
	KindFragment             // Detached container
)

// String returns the string representation of the Kind.
func (k Kind) String() string {
	switch k {
	case KindElement:
		return "Element"
	case KindText:
		return "Text"
	case KindComment:
		return "Comment"
	case KindFragment:
		return "Fragment"
	default:
		return "Unknown"
	}
}

// Node is a node of a Document.
type Node struct {
	ID   int
	Kind Kind
	Tag  string // For KindElement
	Text string // For KindText and KindComment

	attrs map[string]string
	doc   *Document

	parent      *Node
	first, last *Node
	prev, next  *Node
}

var _ view.Node = (*Node)(nil)

// Parent returns the parent node, or nil.
func (n *Node) Parent() *Node { return n.parent }

// Next returns the next sibling, or nil.
func (n *Node) Next() *Node { return n.next }

// FirstChild returns the first child, or nil.
func (n *Node) FirstChild() *Node { return n.first }

// Children returns the children in order.
func (n *Node) Children() []*Node {
	var out []*Node
	for c := n.first; c != nil; c = c.next {
		out = append(out, c)
	}
	return out
}

// Attr returns the value of an attribute.
func (n *Node) Attr(key string) (string, bool) {
	v, ok := n.attrs[key]
	return v, ok
}

// SetAttr sets an attribute of an element.
func (n *Node) SetAttr(key, value string) {
	if old, ok := n.attrs[key]; ok && old == value {
		return
	}
	if n.attrs == nil {
		n.attrs = make(map[string]string)
	}
	n.attrs[key] = value
	n.doc.record(Patch{Op: PatchSetAttr, Node: n.ID, Key: key, Value: value})
}

// SetText replaces the content of a text or comment node.
func (n *Node) SetText(text string) {
	if n.Text == text {
		return
	}
	n.Text = text
	n.doc.record(Patch{Op: PatchSetText, Node: n.ID, Value: text})
}

// ParentNode implements view.Node.
func (n *Node) ParentNode() view.Node {
	if n.parent == nil {
		return nil
	}
	return n.parent
}

// NextSibling implements view.Node.
func (n *Node) NextSibling() view.Node {
	if n.next == nil {
		return nil
	}
	return n.next
}

// AppendChild implements view.Node.
func (n *Node) AppendChild(child view.Node) {
	n.InsertBefore(child, nil)
}

// InsertBefore implements view.Node. A nil ref appends. child is first
// removed from its current parent.
func (n *Node) InsertBefore(child, ref view.Node) {
	c := asNode(child)
	var r *Node
	if ref != nil {
		r = asNode(ref)
		if r.parent != n {
			panic("vdom: reference node is not a child of this node")
		}
	}
	if c == r {
		return
	}
	for p := n; p != nil; p = p.parent {
		if p == c {
			panic("vdom: cannot insert a node into itself")
		}
	}

	op := PatchInsertNode
	if c.parent != nil {
		op = PatchMoveNode
		c.parent.unlink(c)
	}
	n.link(c, r)

	p := Patch{Op: op, Node: c.ID, Parent: n.ID}
	if r != nil {
		p.Before = r.ID
	}
	if op == PatchInsertNode {
		p.Kind = c.Kind.String()
		p.Tag = c.Tag
		p.Value = c.Text
	}
	n.doc.record(p)
}

// RemoveChild implements view.Node.
func (n *Node) RemoveChild(child view.Node) {
	c := asNode(child)
	if c.parent != n {
		panic("vdom: node is not a child of this node")
	}
	n.unlink(c)
	n.doc.record(Patch{Op: PatchRemoveNode, Node: c.ID, Parent: n.ID})
}

func (n *Node) link(c, ref *Node) {
	c.parent = n
	c.next = ref
	if ref == nil {
		c.prev = n.last
		if n.last != nil {
			n.last.next = c
		} else {
			n.first = c
		}
		n.last = c
		return
	}
	c.prev = ref.prev
	if ref.prev != nil {
		ref.prev.next = c
	} else {
		n.first = c
	}
	ref.prev = c
}

func (n *Node) unlink(c *Node) {
	if c.prev != nil {
		c.prev.next = c.next
	} else {
		n.first = c.next
	}
	if c.next != nil {
		c.next.prev = c.prev
	} else {
		n.last = c.prev
	}
	c.parent, c.prev, c.next = nil, nil, nil
}

func asNode(v view.Node) *Node {
	n, ok := v.(*Node)
	if !ok || n == nil {
		panic("vdom: foreign node")
	}
	return n
}
