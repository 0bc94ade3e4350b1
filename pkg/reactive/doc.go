// Package reactive provides the fine-grained reactive core for reactor.
//
// The core is a synchronous, push-based dependency graph. Reading a signal
// inside an observer subscribes the observer; writing the signal re-runs it
// before the write returns. There is no scheduler: every operation runs to
// completion on the calling goroutine.
//
// # Core Types
//
// Signal[T] is a reactive value cell:
//
//	count := NewSignal(0)
//	value := count.Get() // tracked read
//	count.Set(5)         // notifies subscribers if the value changed
//	count.Update(func(n *int) bool { *n++; return true })
//
// Watch evaluates a tracked expression and passes the result to an untracked
// callback. Effect runs a tracked body:
//
//	Watch(Cell(count), func(n int) {
//	    fmt.Println("count is", n)
//	})
//
// # Scopes
//
// Observers, triggers and list entries register teardown hooks in the
// ambient scope. Capture collects them and returns a function that disposes
// everything created inside:
//
//	dispose := Capture(func() {
//	    Effect(func() { fmt.Println(count.Get()) })
//	})
//	dispose() // the effect stops reacting
//
// # Batching
//
// Batch defers notifications until the outermost batch returns, running each
// affected observer once:
//
//	Batch(func() {
//	    first.Set("Ada")
//	    last.Set("Lovelace")
//	})
//
// # Contexts
//
// Context[T] is a dynamically scoped value. Wrap snapshots the contexts
// visible at the call site so a deferred callback observes them later.
//
// # Lists
//
// MapArray maps a reactive slice to outputs, reusing the output of every
// input that survives a change and disposing the rest.
//
// # Goroutines
//
// Each goroutine has its own runtime holding the tracking, teardown, batch
// and context stacks. Signals and observers are not synchronized; use them
// from one goroutine, or hand work to the owning goroutine.
package reactive
