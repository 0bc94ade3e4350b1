package reactive

import (
	rerrors "github.com/vango-dev/reactor/internal/errors"
)

// TeardownHook releases something created inside a scope.
type TeardownHook func()

// frameMode decides what happens to hooks registered in a frame.
type frameMode uint8

const (
	frameCapture frameMode = iota
	frameDiscard
	frameForbid
)

// teardownFrame collects the hooks registered while it is the innermost frame.
type teardownFrame struct {
	mode  frameMode
	hooks []TeardownHook
}

func (rt *Runtime) pushFrame(f *teardownFrame) {
	rt.frames = append(rt.frames, f)
}

func (rt *Runtime) popFrame() {
	rt.frames[len(rt.frames)-1] = nil
	rt.frames = rt.frames[:len(rt.frames)-1]
}

// teardown registers hook with the innermost frame.
func (rt *Runtime) teardown(hook TeardownHook) {
	if len(rt.frames) == 0 {
		return
	}
	f := rt.frames[len(rt.frames)-1]
	switch f.mode {
	case frameCapture:
		f.hooks = append(f.hooks, hook)
	case frameForbid:
		panic(rerrors.New("E003"))
	}
}

// capture runs fn in a new frame and returns a hook disposing everything
// registered in it. If fn panics, the hooks registered so far run in reverse
// order before the panic continues.
func (rt *Runtime) capture(fn func()) TeardownHook {
	frame := &teardownFrame{mode: frameCapture}
	rt.pushFrame(frame)
	ok := false
	defer func() {
		rt.popFrame()
		if !ok {
			runReverse(frame.hooks)
		}
	}()
	fn()
	ok = true
	return disposer(frame.hooks)
}

func (rt *Runtime) withFrame(mode frameMode, fn func()) {
	rt.pushFrame(&teardownFrame{mode: mode})
	defer rt.popFrame()
	fn()
}

// runReverse runs hooks last to first. A panicking hook stops the rest.
func runReverse(hooks []TeardownHook) {
	for i := len(hooks) - 1; i >= 0; i-- {
		hooks[i]()
	}
}

func noop() {}

// disposer returns an idempotent hook running hooks in reverse order.
func disposer(hooks []TeardownHook) TeardownHook {
	if len(hooks) == 0 {
		return noop
	}
	return func() {
		h := hooks
		hooks = nil
		runReverse(h)
	}
}

// Teardown registers a hook that runs when the current scope is disposed.
// Outside of any Capture the hook is dropped. Inside Nocapture it panics
// with ErrNoCapture.
func Teardown(hook TeardownHook) {
	Current().teardown(hook)
}

// Capture runs fn and returns a hook that runs, in reverse order, every
// teardown hook registered inside fn. Calling the returned hook more than
// once has no further effect.
//
// If fn panics, the hooks registered before the panic run first and the
// panic continues.
func Capture(fn func()) TeardownHook {
	return Current().capture(fn)
}

// CaptureSelf is like Capture, but passes the dispose hook to fn so that
// code inside fn can end its own scope. Disposing while fn is still running
// takes effect as soon as fn returns.
func CaptureSelf(fn func(dispose TeardownHook)) {
	var (
		dispose  TeardownHook
		disposed bool
	)
	self := func() {
		if disposed {
			return
		}
		disposed = true
		if dispose != nil {
			dispose()
		}
	}
	dispose = Capture(func() {
		fn(self)
	})
	if disposed {
		dispose()
	}
}

// Uncapture runs fn and drops every teardown hook registered inside it.
// Whatever fn creates lives until it is disposed by other means.
func Uncapture(fn func()) {
	Current().withFrame(frameDiscard, fn)
}

// Nocapture runs fn and panics with ErrNoCapture if fn registers a
// teardown hook.
func Nocapture(fn func()) {
	Current().withFrame(frameForbid, fn)
}
