package live

import (
	"fmt"
	"log/slog"
	"math/rand/v2"
	"slices"
	"sync"

	"github.com/vango-dev/reactor/pkg/reactive"
	"github.com/vango-dev/reactor/pkg/vdom"
	"github.com/vango-dev/reactor/pkg/view"
)

// DemoOptions configures a Demo.
type DemoOptions struct {
	// Items is the number of distinct items the demo edits (default: 8).
	Items int

	// Seed seeds the edits.
	Seed int64

	// Logger receives demo records. If nil, slog.Default() is used.
	Logger *slog.Logger

	// Instrumentation is installed on the demo runtime.
	Instrumentation reactive.Instrumentation
}

// Frame is the result of one demo step.
type Frame struct {
	Seq     int          `json:"seq"`
	Edit    string       `json:"edit"`
	Items   []string     `json:"items"`
	Patches []vdom.Patch `json:"patches"`
}

// Snapshot is the state of the demo document.
type Snapshot struct {
	Seq   int      `json:"seq"`
	Items []string `json:"items"`
	HTML  string   `json:"html"`
}

// Demo is a reactive list rendered into a document. All reactive work runs
// on the demo's own goroutine; the exported methods are safe for concurrent
// use.
type Demo struct {
	opts DemoOptions
	cmds chan func()
	quit chan struct{}
	done chan struct{}
	stop sync.Once

	// Owned by the loop goroutine.
	doc     *vdom.Document
	items   *reactive.Signal[[]string]
	pool    []string
	rng     *rand.Rand
	seq     int
	dispose reactive.TeardownHook
}

// NewDemo creates a demo and starts its goroutine. Call Close to stop it.
func NewDemo(opts DemoOptions) *Demo {
	if opts.Items <= 0 {
		opts.Items = 8
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	d := &Demo{
		opts: opts,
		cmds: make(chan func()),
		quit: make(chan struct{}),
		done: make(chan struct{}),
	}
	go d.loop()
	d.do(d.mount)
	return d
}

func (d *Demo) loop() {
	defer close(d.done)
	defer reactive.Release()
	rt := reactive.Current()
	cfg := rt.Config()
	cfg.Logger = d.opts.Logger
	cfg.Instrumentation = d.opts.Instrumentation
	rt.Configure(cfg)
	for {
		select {
		case fn := <-d.cmds:
			fn()
		case <-d.quit:
			if d.dispose != nil {
				d.dispose()
			}
			return
		}
	}
}

// do runs fn on the loop goroutine and waits for it. A panic in fn is
// returned to the caller's goroutine. It reports false without running fn
// once the demo is closed.
func (d *Demo) do(fn func()) bool {
	result := make(chan any, 1)
	cmd := func() {
		defer func() { result <- recover() }()
		fn()
	}
	select {
	case d.cmds <- cmd:
	case <-d.quit:
		return false
	}
	if r := <-result; r != nil {
		panic(r)
	}
	return true
}

// mount renders the initial document.
func (d *Demo) mount() {
	d.doc = vdom.NewDocument()
	d.rng = rand.New(rand.NewPCG(uint64(d.opts.Seed), 2))
	for i := 0; i < d.opts.Items; i++ {
		d.pool = append(d.pool, fmt.Sprintf("item-%d", i))
	}
	d.items = reactive.NewSignal(slices.Clone(d.pool))

	d.dispose = reactive.Capture(func() {
		view.PlatformContext.Inject(d.doc, func() {
			heading := d.doc.Text("")
			reactive.Watch(reactive.Computed(func() int {
				return len(d.items.Get())
			}), func(n int) {
				heading.SetText(fmt.Sprintf("%d items", n))
			})
			d.doc.Root().AppendChild(d.doc.Element("h1", heading))

			list := d.doc.Element("ul")
			view.ForEach(reactive.Cell(d.items), d.renderItem).AppendTo(list)
			d.doc.Root().AppendChild(list)
		})
	})
	d.doc.TakePatches()
}

func (d *Demo) renderItem(item string, index func() int) *view.View {
	li := d.doc.Element("li")
	li.SetAttr("data-key", item)
	label := d.doc.Text("")
	li.AppendChild(label)
	reactive.Watch(reactive.Computed(index), func(i int) {
		label.SetText(fmt.Sprintf("%d. %s", i+1, item))
	})
	return view.NodeView(li)
}

// Step applies one random edit and returns the patches it produced. After
// Close it returns the zero Frame.
func (d *Demo) Step() Frame {
	var frame Frame
	ok := d.do(func() {
		edit, next := d.edit(d.items.Peek())
		reactive.BatchNamed("demo.step", func() {
			d.items.Set(next)
		})
		d.seq++
		frame = Frame{
			Seq:     d.seq,
			Edit:    edit,
			Items:   slices.Clone(next),
			Patches: d.doc.TakePatches(),
		}
	})
	if !ok {
		return frame
	}
	d.opts.Logger.Debug("demo step", "seq", frame.Seq, "edit", frame.Edit, "patches", len(frame.Patches))
	return frame
}

// Set replaces the list and returns the patches it produced. After Close it
// returns the zero Frame.
func (d *Demo) Set(items []string) Frame {
	var frame Frame
	d.do(func() {
		next := slices.Clone(items)
		d.items.Set(next)
		d.seq++
		frame = Frame{
			Seq:     d.seq,
			Edit:    "set",
			Items:   slices.Clone(next),
			Patches: d.doc.TakePatches(),
		}
	})
	return frame
}

// Snapshot returns the current document, or the zero Snapshot after Close.
func (d *Demo) Snapshot() Snapshot {
	var snap Snapshot
	d.do(func() {
		snap = Snapshot{
			Seq:   d.seq,
			Items: slices.Clone(d.items.Peek()),
			HTML:  d.doc.Root().String(),
		}
	})
	return snap
}

// Close disposes the document scope and stops the goroutine.
func (d *Demo) Close() {
	d.stop.Do(func() {
		close(d.quit)
	})
	<-d.done
}

// edit picks a random edit of items.
func (d *Demo) edit(items []string) (string, []string) {
	next := slices.Clone(items)
	missing := make([]string, 0, len(d.pool))
	for _, it := range d.pool {
		if !slices.Contains(items, it) {
			missing = append(missing, it)
		}
	}

	switch op := d.rng.IntN(4); {
	case op == 0 && len(missing) > 0:
		at := d.rng.IntN(len(next) + 1)
		return "insert", slices.Insert(next, at, missing[d.rng.IntN(len(missing))])
	case op == 1 && len(next) > 1:
		at := d.rng.IntN(len(next))
		return "remove", slices.Delete(next, at, at+1)
	case op == 2 && len(next) > 1:
		slices.Reverse(next)
		return "reverse", next
	case len(next) > 1:
		i, j := d.rng.IntN(len(next)), d.rng.IntN(len(next))
		next[i], next[j] = next[j], next[i]
		return "swap", next
	default:
		return "reset", slices.Clone(d.pool)
	}
}
