package reactive

import "slices"

// mapEntry is one reconciled item. index always equals the entry's position
// in the mapper's entries.
type mapEntry[I comparable, O any] struct {
	input   I
	output  O
	index   *Signal[int]
	dispose TeardownHook
	removed bool
}

type mapper[I comparable, O any] struct {
	fn      func(input I, index func() int) O
	entries []*mapEntry[I, O]
	outputs *Signal[[]O]
}

// MapArray maps every element of inputs with fn and keeps the result in sync
// as inputs changes. The returned accessor is a tracked read of the current
// outputs.
//
// Elements are matched by ==, except that elements not equal to themselves,
// such as NaN, match when Identical. The output of an input that is still present
// is reused, never recreated, and receives its new position through the
// index accessor. Outputs of inputs that disappeared are disposed right
// away. Repeated inputs are paired left to right by occurrence.
//
// fn runs untracked in a scope of its own; teardown hooks registered inside
// it run when the output is dropped or when the current scope is disposed.
// If fn panics, the outputs reconciled so far are kept and the panic
// continues.
//
// Inputs must be comparable at run time; interface values holding slices,
// maps or functions panic like any other ==.
func MapArray[I comparable, O any](inputs Expression[[]I], fn func(input I, index func() int) O) func() []O {
	m := &mapper[I, O]{
		fn:      fn,
		outputs: NewSignal[[]O](nil),
	}
	Teardown(m.disposeAll)
	Watch(inputs, m.update)
	return m.outputs.Get
}

func (m *mapper[I, O]) create(input I, pos int) *mapEntry[I, O] {
	e := &mapEntry[I, O]{input: input, index: NewSignal(pos)}
	e.dispose = Capture(func() {
		e.output = m.fn(input, e.index.Get)
	})
	return e
}

// sameInput reports whether a and b are the same input.
func sameInput[I comparable](a, b I) bool {
	return a == b || a != a && b != b && Identical(a, b)
}

func (m *mapper[I, O]) update(next []I) {
	old := m.entries
	n, size := len(next), len(old)

	start := 0
	for start < n && start < size && sameInput(old[start].input, next[start]) {
		start++
	}
	if start == n && n == size {
		return
	}

	end, stateEnd := n, size
	for end > start && stateEnd > start && sameInput(old[stateEnd-1].input, next[end-1]) {
		end--
		stateEnd--
	}

	// slots maps an input to the leftmost unfilled slot holding it; chain
	// links each slot to the next slot with the same input, or -1. Inputs
	// not equal to themselves cannot be map keys and are kept in odd, in
	// slot order.
	width := end - start
	mid := make([]*mapEntry[I, O], width)
	slots := make(map[I]int, width)
	chain := make([]int, width)
	var odd []int
	for i := width - 1; i >= 0; i-- {
		key := next[start+i]
		if key != key {
			odd = append([]int{i}, odd...)
			continue
		}
		if j, ok := slots[key]; ok {
			chain[i] = j
		} else {
			chain[i] = -1
		}
		slots[key] = i
	}

	stats := ReconcileStats{Size: n, Reused: start + (size - stateEnd)}
	cursor := start
	committed := false
	defer func() {
		if committed {
			return
		}
		entries := make([]*mapEntry[I, O], 0, n)
		entries = append(entries, old[:start]...)
		for _, e := range mid {
			if e != nil {
				entries = append(entries, e)
			}
		}
		entries = append(entries, old[cursor:stateEnd]...)
		m.entries = append(entries, old[stateEnd:]...)
	}()

	for cursor < stateEnd {
		e := old[cursor]
		cursor++
		if e.input != e.input {
			k := slices.IndexFunc(odd, func(j int) bool {
				return Identical(next[start+j], e.input)
			})
			if k < 0 {
				e.removed = true
				stats.Disposed++
				e.dispose()
				continue
			}
			mid[odd[k]] = e
			stats.Reused++
			odd = slices.Delete(odd, k, k+1)
			continue
		}
		j, ok := slots[e.input]
		if !ok {
			e.removed = true
			stats.Disposed++
			e.dispose()
			continue
		}
		mid[j] = e
		stats.Reused++
		if chain[j] >= 0 {
			slots[e.input] = chain[j]
		} else {
			delete(slots, e.input)
		}
	}

	for j, e := range mid {
		if e == nil {
			mid[j] = m.create(next[start+j], start+j)
			stats.Created++
		}
	}

	entries := make([]*mapEntry[I, O], 0, n)
	entries = append(entries, old[:start]...)
	entries = append(entries, mid...)
	m.entries = append(entries, old[stateEnd:]...)
	committed = true

	rt := Current()
	rt.stats.Reconciliations++
	rt.cfg.Instrumentation.Reconciled(stats)
	m.publish()
}

// publish renumbers entries and sets the outputs in one batch.
func (m *mapper[I, O]) publish() {
	Batch(func() {
		outputs := make([]O, len(m.entries))
		for i, e := range m.entries {
			outputs[i] = e.output
			if e.index.Peek() != i {
				e.index.Set(i)
			}
		}
		m.outputs.Set(outputs)
	})
}

func (m *mapper[I, O]) disposeAll() {
	entries := m.entries
	m.entries = nil
	for i := len(entries) - 1; i >= 0; i-- {
		e := entries[i]
		if e.removed {
			continue
		}
		e.removed = true
		e.dispose()
	}
}
