package view_test

import (
	"fmt"
	"testing"

	"github.com/vango-dev/reactor/pkg/reactive"
	"github.com/vango-dev/reactor/pkg/vdom"
	"github.com/vango-dev/reactor/pkg/view"
)

func textComponent(doc *vdom.Document, text string) view.Component {
	return func() *view.View {
		return view.NodeView(doc.Text(text))
	}
}

func TestNestReplacesContent(t *testing.T) {
	withDocument(func(doc *vdom.Document) {
		which := reactive.NewSignal("a")
		components := map[string]view.Component{
			"a": textComponent(doc, "A"),
			"b": textComponent(doc, "B"),
		}

		v := view.Nest(reactive.Computed(func() view.Component {
			return components[which.Get()]
		}))
		v.AppendTo(doc.Root())
		doc.Root().AppendChild(doc.Text("|"))

		if got := doc.Root().String(); got != "<body>A|</body>" {
			t.Fatalf("initial = %q", got)
		}

		which.Set("b")
		if got := doc.Root().String(); got != "<body>B|</body>" {
			t.Errorf("after switch = %q", got)
		}

		which.Set("missing")
		if got := doc.Root().String(); got != "<body><!--nest-->|</body>" {
			t.Errorf("nil component = %q", got)
		}
		if v.First() != v.Last() {
			t.Error("placeholder view should be a single node")
		}
	})
}

func TestShow(t *testing.T) {
	withDocument(func(doc *vdom.Document) {
		visible := reactive.NewSignal(false)
		v := view.Show(reactive.Cell(visible), textComponent(doc, "yes"), nil)
		v.AppendTo(doc.Root())

		if got := doc.Root().String(); got != "<body><!--nest--></body>" {
			t.Fatalf("hidden = %q", got)
		}
		visible.Set(true)
		if got := doc.Root().String(); got != "<body>yes</body>" {
			t.Errorf("shown = %q", got)
		}
	})
}

func TestNestSeesCreationContext(t *testing.T) {
	label := reactive.NewContext("none")
	withDocument(func(doc *vdom.Document) {
		tick := reactive.NewSignal(0)
		var seen []string
		label.Inject("outer", func() {
			view.Nest(reactive.Computed(func() view.Component {
				tick.Get()
				return func() *view.View {
					seen = append(seen, label.Current())
					return view.NodeView(doc.Text("x"))
				}
			}))
		})

		tick.Set(1)
		if len(seen) != 2 || seen[0] != "outer" || seen[1] != "outer" {
			t.Errorf("component should see its creation context, got %v", seen)
		}
	})
}

func listDoc(t *testing.T, items *reactive.Signal[[]string]) (*vdom.Document, *view.View, map[string]int) {
	t.Helper()
	doc := vdom.NewDocument()
	renders := make(map[string]int)
	var v *view.View
	view.PlatformContext.Inject(doc, func() {
		v = view.ForEach(reactive.Cell(items), func(item string, index func() int) *view.View {
			renders[item]++
			return view.NodeView(doc.Element("li", doc.Text(item)))
		})
	})
	v.AppendTo(doc.Root())
	doc.Root().AppendChild(doc.Comment("end"))
	return doc, v, renders
}

func TestForEachOrder(t *testing.T) {
	items := reactive.NewSignal([]string{"a", "b", "c"})
	doc, v, renders := listDoc(t, items)

	want := "<body><!--for--><li>a</li><li>b</li><li>c</li><!--end--></body>"
	if got := doc.Root().String(); got != want {
		t.Fatalf("initial = %q", got)
	}

	steps := [][]string{
		{"c", "a", "b"},
		{"b", "c"},
		{"b", "d", "c", "a"},
		{},
		{"e"},
	}
	for _, step := range steps {
		items.Set(step)
		want := "<body><!--for-->"
		for _, s := range step {
			want += fmt.Sprintf("<li>%s</li>", s)
		}
		want += "<!--end--></body>"
		if got := doc.Root().String(); got != want {
			t.Errorf("after %v = %q, want %q", step, got, want)
		}
		if len(step) > 0 && v.Last().(*vdom.Node).TextContent() != step[len(step)-1] {
			t.Errorf("after %v last boundary is %s", step, v.Last())
		}
		if len(step) == 0 && v.Last() != v.First() {
			t.Errorf("empty list should end at its anchor")
		}
	}

	if renders["a"] != 2 || renders["b"] != 1 || renders["c"] != 1 {
		t.Errorf("views of kept items should be reused, renders %v", renders)
	}
}

func TestForEachMovesNodesInPlace(t *testing.T) {
	items := reactive.NewSignal([]string{"a", "b", "c"})
	doc, _, _ := listDoc(t, items)
	doc.TakePatches()

	items.Set([]string{"a", "c", "b"})
	moves := 0
	for _, p := range doc.TakePatches() {
		switch p.Op {
		case vdom.PatchMoveNode:
			moves++
		case vdom.PatchInsertNode, vdom.PatchRemoveNode:
			t.Errorf("unexpected %s patch", p.Op)
		}
	}
	if moves != 1 {
		t.Errorf("expected 1 move, got %d", moves)
	}
}

func TestForEachFollowsItemBoundary(t *testing.T) {
	withDocument(func(doc *vdom.Document) {
		show := reactive.NewSignal(false)
		items := reactive.NewSignal([]int{1, 2})
		v := view.ForEach(reactive.Cell(items), func(item int, index func() int) *view.View {
			if item == 2 {
				return view.Show(reactive.Cell(show), textComponent(doc, "two"), nil)
			}
			return view.NodeView(doc.Text(fmt.Sprint(item)))
		})
		v.AppendTo(doc.Root())

		show.Set(true)
		if got := v.Last().(*vdom.Node).TextContent(); got != "two" {
			t.Errorf("list boundary should follow its last item, got %q", got)
		}
		if got := doc.Root().String(); got != "<body><!--for-->1two</body>" {
			t.Errorf("tree = %q", got)
		}
	})
}

func TestForEachIndex(t *testing.T) {
	withDocument(func(doc *vdom.Document) {
		items := reactive.NewSignal([]string{"a", "b"})
		v := view.ForEach(reactive.Cell(items), func(item string, index func() int) *view.View {
			node := doc.Text("")
			reactive.Effect(func() {
				node.SetText(fmt.Sprintf("%d:%s", index(), item))
			})
			return view.NodeView(node)
		})
		v.AppendTo(doc.Root())

		items.Set([]string{"c", "b", "a"})
		if got := doc.Root().TextContent(); got != "0:c1:b2:a" {
			t.Errorf("TextContent() = %q", got)
		}
	})
}

func TestForEachWithoutPlatformPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic")
		}
	}()
	view.ForEach(reactive.Static([]int{1}), func(int, func() int) *view.View { return nil })
}
