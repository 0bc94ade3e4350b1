package view

import (
	"github.com/vango-dev/reactor/pkg/reactive"
)

// Component renders a view.
type Component func() *View

// NodeView returns a view of a single node.
func NodeView(node Node) *View {
	return &View{first: node, last: node}
}

// bind returns fn running with the contexts visible at the call to bind.
// Observers call it later from wherever a signal was written.
func bind[A, B, R any](fn func(A, B) R) func(A, B) R {
	var (
		a   A
		b   B
		out R
	)
	call := reactive.Wrap(func() {
		out = fn(a, b)
	})
	return func(x A, y B) R {
		a, b = x, y
		call()
		r := out
		var zero R
		out = zero
		return r
	}
}

// Nest renders the component expr yields and replaces it whenever expr
// changes. The previous component's scope is disposed first. A nil component
// or a component returning nil renders as a placeholder.
func Nest(expr reactive.Expression[Component]) *View {
	platform := currentPlatform()
	render := bind(func(c Component, _ struct{}) *View {
		var v *View
		if c != nil {
			v = c()
		}
		if v == nil {
			v = NodeView(platform.CreatePlaceholder("nest"))
		}
		return v
	})

	return mustNew(func(setBoundary SetBoundaryFunc, self *View) {
		var current *View
		reactive.Watch(expr, func(c Component) {
			prev := current
			current = render(c, struct{}{})
			if current != prev {
				if prev != nil {
					if parent := prev.Parent(); parent != nil {
						current.InsertBefore(parent, prev.First())
					}
					prev.remove()
				}
				setBoundary(current.First(), current.Last())
			}
			if err := current.SetBoundaryOwner(BoundaryOwner(setBoundary)); err != nil {
				panic(err)
			}
		})
	})
}

// Show renders content while cond is true and fallback otherwise. A nil
// component renders as a placeholder.
func Show(cond reactive.Expression[bool], content, fallback Component) *View {
	visible := reactive.Memo(cond)
	return Nest(reactive.Computed(func() Component {
		if visible() {
			return content
		}
		return fallback
	}))
}

// ForEach renders component for every element of each. Views of elements
// that stay are reused and moved in place; views of removed elements are
// taken out of the tree and their scopes disposed. index reports the
// element's current position.
//
// The first node of the view is a placeholder marking the list position.
func ForEach[I comparable](each reactive.Expression[[]I], component func(item I, index func() int) *View) *View {
	platform := currentPlatform()
	anchor := platform.CreatePlaceholder("for")
	platform.CreateContainer().AppendChild(anchor)

	render := bind(component)
	items := reactive.MapArray(each, func(item I, index func() int) *View {
		return render(item, index)
	})

	return mustNew(func(setBoundary SetBoundaryFunc, self *View) {
		setBoundary(anchor, anchor)

		var current []*View
		reactive.Watch(reactive.Computed(items), func(views []*View) {
			keep := make(map[*View]struct{}, len(views))
			for _, v := range views {
				keep[v] = struct{}{}
			}
			for _, v := range current {
				if _, ok := keep[v]; !ok {
					v.remove()
				}
			}

			parent := anchor.ParentNode()
			ref := anchor.NextSibling()
			for _, v := range views {
				if ref != nil && v.First() == ref {
					ref = v.Last().NextSibling()
					continue
				}
				v.InsertBefore(parent, ref)
			}
			current = views

			if len(views) == 0 {
				setBoundary(nil, anchor)
				return
			}
			setBoundary(nil, views[len(views)-1].Last())
			for i, v := range views {
				last := i == len(views)-1
				err := v.SetBoundaryOwner(func(_, l Node) {
					if last {
						setBoundary(nil, l)
					}
				})
				if err != nil {
					panic(err)
				}
			}
		})
	})
}
