package vdom

import (
	"github.com/vango-dev/reactor/pkg/view"
)

// Document creates nodes and records the patches applied to them. A
// Document is not safe for concurrent use.
type Document struct {
	nextID  int
	root    *Node
	patches []Patch
}

var _ view.Platform = (*Document)(nil)

// NewDocument creates a document with an empty <body> root.
func NewDocument() *Document {
	d := &Document{}
	d.root = d.newNode(KindElement, "body", "")
	return d
}

func (d *Document) newNode(kind Kind, tag, text string) *Node {
	d.nextID++
	return &Node{ID: d.nextID, Kind: kind, Tag: tag, Text: text, doc: d}
}

func (d *Document) record(p Patch) {
	d.patches = append(d.patches, p)
}

// Root returns the root element.
func (d *Document) Root() *Node {
	return d.root
}

// Element creates an element with the given children appended.
func (d *Document) Element(tag string, children ...*Node) *Node {
	n := d.newNode(KindElement, tag, "")
	for _, c := range children {
		n.AppendChild(c)
	}
	return n
}

// Text creates a text node.
func (d *Document) Text(text string) *Node {
	return d.newNode(KindText, "", text)
}

// Comment creates a comment node.
func (d *Document) Comment(text string) *Node {
	return d.newNode(KindComment, "", text)
}

// Fragment creates a detached container.
func (d *Document) Fragment() *Node {
	return d.newNode(KindFragment, "", "")
}

// CreateContainer implements view.Platform.
func (d *Document) CreateContainer() view.Node {
	return d.Fragment()
}

// CreatePlaceholder implements view.Platform.
func (d *Document) CreatePlaceholder(label string) view.Node {
	return d.Comment(label)
}

// TakePatches returns the patches recorded since the last call.
func (d *Document) TakePatches() []Patch {
	p := d.patches
	d.patches = nil
	return p
}
