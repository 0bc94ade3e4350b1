package reactive

// TriggerPipe records the signals accessed by the functions it runs. The
// next time any of them notifies, the pipe forgets all recorded signals and
// calls its trigger function once.
//
// A pipe used inside an observer or inside another pipe also passes the
// accesses on, so the outer observer still subscribes. Pipe hooks always join
// a signal before the outer hooks, which makes nested pipes fire innermost
// first and before the observers around them.
type TriggerPipe struct {
	fn     func()
	hook   *notifyHook
	joined []*hookSet
}

// Trigger creates a pipe calling fn untracked when a signal accessed through
// the pipe changes. The pipe is cleared when the current scope is disposed.
func Trigger(fn func()) *TriggerPipe {
	p := &TriggerPipe{fn: fn}
	Teardown(p.Clear)
	return p
}

// Run calls fn and records every signal it accesses, replacing the signals
// recorded by the previous call.
func (p *TriggerPipe) Run(fn func()) {
	rt := Current()
	p.Clear()

	hook := &notifyHook{}
	hook.fn = func() {
		if p.hook != hook {
			return
		}
		p.Clear()
		rt := Current()
		rt.stats.ObserverRuns++
		rt.cfg.Instrumentation.ObserverRan(KindTrigger)
		rt.withTracking(false, p.fn)
	}
	p.hook = hook

	parent := rt.activeCollector()
	rt.observe(func(hooks *hookSet) {
		if hooks.add(hook) {
			p.joined = append(p.joined, hooks)
		}
		if parent != nil {
			parent(hooks)
		}
	}, fn)
}

// Clear forgets every recorded signal. The trigger function is not called
// until signals are recorded again.
func (p *TriggerPipe) Clear() {
	if p.hook == nil {
		return
	}
	for i, hooks := range p.joined {
		hooks.remove(p.hook)
		p.joined[i] = nil
	}
	p.joined = p.joined[:0]
	p.hook = nil
}

// Pipe evaluates expr through p and returns its value.
func Pipe[T any](p *TriggerPipe, expr Expression[T]) T {
	var value T
	p.Run(func() {
		value = Get(expr)
	})
	return value
}
