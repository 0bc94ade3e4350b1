// Package view implements the view boundary protocol on top of package
// reactive.
//
// A View is a handle to a contiguous run of sibling nodes, described by its
// first and last node. Content inside a view may change; the view keeps its
// boundary up to date and reports every change to an optional boundary
// owner, so enclosing views can follow without scanning the tree.
//
// Views never touch a concrete node implementation. Nodes are reached
// through the Node interface, and new nodes are created through the
// Platform found in PlatformContext:
//
//	view.PlatformContext.Inject(doc, func() {
//	    list := view.ForEach(reactive.Cell(items), renderItem)
//	    list.AppendTo(doc.Root())
//	})
//
// # Helpers
//
// NodeView wraps a single node. Nest renders whatever component an
// expression currently yields. Show switches between two components.
// ForEach renders one view per element of a reactive slice, reusing the
// views of elements that stay and moving them in place.
package view
