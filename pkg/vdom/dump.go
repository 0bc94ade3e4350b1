package vdom

import (
	"html"
	"sort"
	"strings"
)

// String renders the subtree as HTML-like text. Fragments render their
// children only.
func (n *Node) String() string {
	var sb strings.Builder
	n.write(&sb)
	return sb.String()
}

func (n *Node) write(sb *strings.Builder) {
	switch n.Kind {
	case KindText:
		sb.WriteString(html.EscapeString(n.Text))
		return
	case KindComment:
		sb.WriteString("<!--")
		sb.WriteString(n.Text)
		sb.WriteString("-->")
		return
	case KindElement:
		sb.WriteByte('<')
		sb.WriteString(n.Tag)
		keys := make([]string, 0, len(n.attrs))
		for k := range n.attrs {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			sb.WriteByte(' ')
			sb.WriteString(k)
			sb.WriteString(`="`)
			sb.WriteString(html.EscapeString(n.attrs[k]))
			sb.WriteByte('"')
		}
		sb.WriteByte('>')
	}
	for c := n.first; c != nil; c = c.next {
		c.write(sb)
	}
	if n.Kind == KindElement {
		sb.WriteString("</")
		sb.WriteString(n.Tag)
		sb.WriteByte('>')
	}
}

// TextContent returns the concatenated text of the subtree, skipping comments.
func (n *Node) TextContent() string {
	if n.Kind == KindText {
		return n.Text
	}
	var sb strings.Builder
	for c := n.first; c != nil; c = c.next {
		sb.WriteString(c.TextContent())
	}
	return sb.String()
}
