package view

import (
	rerrors "github.com/vango-dev/reactor/internal/errors"
	"github.com/vango-dev/reactor/pkg/reactive"
)

// ErrIncompleteBoundary is returned by New when the initializer leaves the
// first or last node unset.
var ErrIncompleteBoundary error = rerrors.New("E001")

// ErrBoundaryOwnerSet is returned by SetBoundaryOwner when an owner is
// already registered.
var ErrBoundaryOwnerSet error = rerrors.New("E002")

// SetBoundaryFunc updates the boundary of a view. A nil argument leaves that
// side unchanged.
type SetBoundaryFunc func(first, last Node)

// BoundaryOwner is notified with the new boundary every time it changes.
type BoundaryOwner func(first, last Node)

type ownerSlot struct {
	fn BoundaryOwner
}

// View is a handle to the sibling nodes from First to Last. All nodes of a
// view share one parent and form an unbroken chain of NextSibling links.
type View struct {
	first Node
	last  Node
	owner *ownerSlot
}

// New creates a view. init receives the function updating the boundary and
// the view itself, and must set both first and last before returning.
//
// init may keep setBoundary and call it later as the content changes.
func New(init func(setBoundary SetBoundaryFunc, self *View)) (*View, error) {
	v := &View{}
	init(v.setBoundary, v)
	if v.first == nil || v.last == nil {
		return nil, rerrors.New("E001").WithDetailf("first set: %t, last set: %t", v.first != nil, v.last != nil)
	}
	return v, nil
}

// mustNew is New for initializers that always set a boundary.
func mustNew(init func(setBoundary SetBoundaryFunc, self *View)) *View {
	v, err := New(init)
	if err != nil {
		panic(err)
	}
	return v
}

func (v *View) setBoundary(first, last Node) {
	if first != nil {
		v.first = first
	}
	if last != nil {
		v.last = last
	}
	if v.owner != nil && v.first != nil && v.last != nil {
		v.owner.fn(v.first, v.last)
	}
}

// First returns the first node.
func (v *View) First() Node { return v.first }

// Last returns the last node.
func (v *View) Last() Node { return v.last }

// Parent returns the parent of the view's nodes, or nil.
func (v *View) Parent() Node {
	return v.first.ParentNode()
}

// SetBoundaryOwner registers owner to be notified of boundary changes. The
// registration ends when the current scope is disposed. Registering while an
// owner is set returns an error matching ErrBoundaryOwnerSet.
func (v *View) SetBoundaryOwner(owner BoundaryOwner) error {
	if v.owner != nil {
		return rerrors.New("E002")
	}
	slot := &ownerSlot{fn: owner}
	v.owner = slot
	reactive.Teardown(func() {
		if v.owner == slot {
			v.owner = nil
		}
	})
	return nil
}

// each calls fn for every node from first to last. fn may move the node.
func (v *View) each(fn func(node Node)) {
	node := v.first
	for {
		next := node.NextSibling()
		fn(node)
		if node == v.last {
			return
		}
		node = next
	}
}

// AppendTo moves all nodes to the end of parent.
func (v *View) AppendTo(parent Node) {
	v.each(func(node Node) {
		parent.AppendChild(node)
	})
}

// InsertBefore moves all nodes into parent in front of ref. A nil ref
// appends.
func (v *View) InsertBefore(parent, ref Node) {
	v.each(func(node Node) {
		parent.InsertBefore(node, ref)
	})
}

// Detach removes the view from its parent and returns what now holds it:
// the node itself for a single node view, or a new container created by the
// platform in context for larger views.
func (v *View) Detach() Node {
	if v.first == v.last {
		if parent := v.first.ParentNode(); parent != nil {
			parent.RemoveChild(v.first)
		}
		return v.first
	}
	container := currentPlatform().CreateContainer()
	v.AppendTo(container)
	return container
}

// remove takes every node out of its parent.
func (v *View) remove() {
	parent := v.Parent()
	if parent == nil {
		return
	}
	v.each(func(node Node) {
		parent.RemoveChild(node)
	})
}
