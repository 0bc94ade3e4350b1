package view

import (
	rerrors "github.com/vango-dev/reactor/internal/errors"
	"github.com/vango-dev/reactor/pkg/reactive"
)

// Node is a platform node as seen by views.
//
// ParentNode and NextSibling must return an untyped nil, not a typed nil
// pointer, when there is no such node.
type Node interface {
	ParentNode() Node
	NextSibling() Node

	// InsertBefore moves child in front of ref. A nil ref appends.
	InsertBefore(child, ref Node)
	AppendChild(child Node)
	RemoveChild(child Node)
}

// Platform creates nodes.
type Platform interface {
	// CreateContainer returns a detached node able to hold children.
	CreateContainer() Node

	// CreatePlaceholder returns an empty node marking a position, such as
	// a comment.
	CreatePlaceholder(label string) Node
}

// PlatformContext holds the platform used by views created inside it.
var PlatformContext = reactive.NewContext[Platform](nil)

// ErrNoPlatform is the panic value raised when an operation needs a platform
// and PlatformContext holds none. Compare with errors.Is.
var ErrNoPlatform error = rerrors.New("E004")

// currentPlatform returns the platform in context or panics.
func currentPlatform() Platform {
	p := PlatformContext.Current()
	if p == nil {
		panic(rerrors.New("E004"))
	}
	return p
}
