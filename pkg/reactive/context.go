package reactive

// window is one level of the context stack. Only bindings of the innermost
// window are visible; Wrap pushes a fresh window holding a snapshot.
type window struct {
	id       uint64
	bindings []binding
}

type binding struct {
	key   uint64
	value any
}

func (rt *Runtime) innermost() *window {
	return rt.windows[len(rt.windows)-1]
}

func (rt *Runtime) lookup(key uint64) (any, bool) {
	w := rt.innermost()
	for i := len(w.bindings) - 1; i >= 0; i-- {
		if w.bindings[i].key == key {
			return w.bindings[i].value, true
		}
	}
	return nil, false
}

// inject binds states in the innermost window while fn runs.
func (rt *Runtime) inject(states []ContextState, fn func()) {
	w := rt.innermost()
	n := len(w.bindings)
	for _, s := range states {
		w.bindings = append(w.bindings, binding{key: s.key, value: s.value})
	}
	defer func() {
		clear(w.bindings[n:])
		w.bindings = w.bindings[:n]
	}()
	fn()
}

// snapshot returns the latest binding of every context visible right now.
func (rt *Runtime) snapshot() []binding {
	w := rt.innermost()
	seen := make(map[uint64]struct{}, len(w.bindings))
	out := make([]binding, 0, len(w.bindings))
	for i := len(w.bindings) - 1; i >= 0; i-- {
		b := w.bindings[i]
		if _, ok := seen[b.key]; ok {
			continue
		}
		seen[b.key] = struct{}{}
		out = append(out, b)
	}
	return out
}

// replay runs fn in a fresh window holding bindings.
func (rt *Runtime) replay(bindings []binding, fn func()) {
	rt.windows = append(rt.windows, &window{
		id:       nextID(),
		bindings: append([]binding(nil), bindings...),
	})
	defer func() {
		rt.windows[len(rt.windows)-1] = nil
		rt.windows = rt.windows[:len(rt.windows)-1]
	}()
	fn()
}

// Context is a dynamically scoped value. Inject binds a value for the
// duration of a call; Current returns the innermost binding, or the default
// value if there is none.
//
// Example:
//
//	var Theme = NewContext("light")
//
//	Theme.Inject("dark", func() {
//	    Theme.Current() // "dark"
//	})
//	Theme.Current() // "light"
type Context[T any] struct {
	key          uint64
	defaultValue T
}

// NewContext creates a context with the given default value.
func NewContext[T any](defaultValue T) *Context[T] {
	return &Context[T]{key: nextID(), defaultValue: defaultValue}
}

// Current returns the value bound in the innermost window.
func (c *Context[T]) Current() T {
	if v, ok := Current().lookup(c.key); ok {
		return v.(T)
	}
	return c.defaultValue
}

// Default returns the value Current returns when nothing is bound.
func (c *Context[T]) Default() T {
	return c.defaultValue
}

// Inject runs fn with value bound to c.
func (c *Context[T]) Inject(value T, fn func()) {
	Current().inject([]ContextState{c.With(value)}, fn)
}

// With returns a binding of value to c for InjectAll.
func (c *Context[T]) With(value T) ContextState {
	return ContextState{key: c.key, value: value}
}

// ContextState is a value bound to a context, created with Context.With.
type ContextState struct {
	key   uint64
	value any
}

// InjectAll runs fn with every state bound. Bindings are removed when fn
// returns or panics. Later states win over earlier ones for the same
// context.
func InjectAll(states []ContextState, fn func()) {
	Current().inject(states, fn)
}

// Wrap snapshots every context binding visible at the call site and returns
// a function that runs fn with exactly that snapshot, regardless of where it
// is called. Bindings made around the later call are not visible to fn.
func Wrap(fn func()) func() {
	snap := Current().snapshot()
	return func() {
		Current().replay(snap, fn)
	}
}

// WrapValue is Wrap for functions returning a value.
func WrapValue[R any](fn func() R) func() R {
	snap := Current().snapshot()
	return func() R {
		var out R
		Current().replay(snap, func() {
			out = fn()
		})
		return out
	}
}
