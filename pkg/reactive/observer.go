package reactive

import (
	rerrors "github.com/vango-dev/reactor/internal/errors"
)

// observerState is the lifecycle state of an observer.
type observerState uint8

const (
	observerIdle observerState = iota
	observerRunning
	observerDisposed
)

// observer re-runs a pass whenever a signal it accessed during its previous
// pass notifies. Notifications arriving while a pass runs are counted in
// pending and fold into exactly one more pass.
type observer struct {
	kind ObserverKind

	// hook is the subscription joined to every accessed signal.
	hook *notifyHook

	// joined are the hook sets joined during the last pass.
	joined []*hookSet

	state   observerState
	pending int

	// cleanup disposes what the previous callback created.
	cleanup TeardownHook

	// pass runs one evaluation. It is set by Watch or Effect.
	pass func(rt *Runtime)
}

func newObserver(kind ObserverKind) *observer {
	o := &observer{kind: kind}
	o.hook = &notifyHook{fn: o.notified}
	return o
}

// join is the collector of an observer. A disposed observer joins nothing.
func (o *observer) join(hooks *hookSet) {
	if o.state == observerDisposed {
		return
	}
	if hooks.add(o.hook) {
		o.joined = append(o.joined, hooks)
	}
}

// detach leaves every hook set joined during the last pass.
func (o *observer) detach() {
	for i, hooks := range o.joined {
		hooks.remove(o.hook)
		o.joined[i] = nil
	}
	o.joined = o.joined[:0]
}

// runCleanup disposes what the previous callback created.
func (o *observer) runCleanup() {
	if cleanup := o.cleanup; cleanup != nil {
		o.cleanup = nil
		cleanup()
	}
}

func (o *observer) notified() {
	switch o.state {
	case observerDisposed:
		return
	case observerRunning:
		o.pending++
		return
	}
	o.unfold(Current())
}

// unfold runs passes until no notification arrived during the last one.
func (o *observer) unfold(rt *Runtime) {
	defer func() {
		if o.state == observerRunning {
			o.state = observerIdle
		}
	}()

	passes := 0
	for {
		passes++
		if max := rt.cfg.MaxPasses; max > 0 && passes > max {
			rt.logger().Warn("observer rerun budget exceeded", "kind", o.kind.String(), "passes", passes-1)
			panic(rerrors.New("E006").WithDetailf("%s ran %d passes in a row", o.kind, passes-1))
		}

		o.pending = 0
		o.state = observerRunning
		rt.stats.ObserverRuns++
		rt.cfg.Instrumentation.ObserverRan(o.kind)
		o.pass(rt)

		if o.state == observerDisposed {
			return
		}
		o.state = observerIdle
		if o.pending == 0 {
			return
		}
	}
}

// keep stores the scope captured by the latest pass. If the observer was
// disposed while that pass ran, the scope is disposed right away.
func (o *observer) keep(cleanup TeardownHook) {
	if o.state == observerDisposed {
		cleanup()
		return
	}
	o.cleanup = cleanup
}

// dispose stops the observer. Notifications after disposal are ignored,
// including ones already queued in a batch.
func (o *observer) dispose() {
	if o.state == observerDisposed {
		return
	}
	o.state = observerDisposed
	o.detach()
	o.runCleanup()
}

// Watch evaluates expr with tracking enabled and passes the result to fn.
// Whenever a signal accessed by expr notifies, expr is evaluated again and
// fn is called with the new result.
//
// fn runs untracked, so reads inside it do not subscribe the watch. Teardown
// hooks registered by fn run before the next call of fn, or when the scope
// that created the watch is disposed.
func Watch[T any](expr Expression[T], fn func(value T)) {
	o := newObserver(KindWatch)
	o.pass = func(rt *Runtime) {
		o.detach()

		var value T
		rt.observe(o.join, func() {
			value = Get(expr)
		})
		if o.state == observerDisposed {
			return
		}

		o.runCleanup()
		if o.state == observerDisposed {
			return
		}
		o.keep(rt.capture(func() {
			rt.withTracking(false, func() {
				fn(value)
			})
		}))
	}

	Teardown(o.dispose)
	o.unfold(Current())
}

// WatchUpdates is like Watch, but fn is only called for updates after the
// first evaluation. It returns the first value.
func WatchUpdates[T any](expr Expression[T], fn func(value T)) T {
	var (
		first   T
		initial = true
	)
	Watch(expr, func(value T) {
		if initial {
			initial = false
			first = value
			return
		}
		fn(value)
	})
	return first
}

// Effect runs fn with tracking enabled, and again whenever a signal it
// accessed notifies. Teardown hooks registered by fn run before the next
// run, or when the scope that created the effect is disposed.
func Effect(fn func()) {
	o := newObserver(KindEffect)
	o.pass = func(rt *Runtime) {
		o.detach()
		rt.withTracking(false, o.runCleanup)
		if o.state == observerDisposed {
			return
		}
		var cleanup TeardownHook
		rt.observe(o.join, func() {
			cleanup = rt.capture(fn)
		})
		o.keep(cleanup)
	}

	Teardown(o.dispose)
	o.unfold(Current())
}
