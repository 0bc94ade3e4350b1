package reactive

// Batch defers notifications until fn returns, then runs every affected
// hook once, in the order the hooks were first queued.
//
// Batches can be nested; only the outermost batch drains. Hooks queued while
// draining, including by hooks of this batch, run before Batch returns. If
// fn or a hook panics, the remaining hooks are dropped from the batch but
// stay subscribed to their signals.
//
// Example:
//
//	Batch(func() {
//	    firstName.Set("Ada")
//	    lastName.Set("Lovelace")
//	})
//	// observers reading both names run once
func Batch(fn func()) {
	Current().runBatch("", fn)
}

// BatchNamed is Batch with a name reported to instrumentation and logged at
// debug level. Unnamed batches nested in it join it.
func BatchNamed(name string, fn func()) {
	Current().runBatch(name, fn)
}

func (rt *Runtime) runBatch(name string, fn func()) {
	if rt.batch != nil {
		fn()
		return
	}

	hooks := &hookSet{}
	rt.batch = hooks
	rt.stats.Batches++
	done := rt.cfg.Instrumentation.BatchStarted(name)
	if name != "" {
		rt.logger().Debug("batch start", "batch", name)
	}

	drained := 0
	ok := false
	defer func() {
		rt.batch = nil
		rt.stats.DrainedHooks += drained
		if !ok {
			done(drained, errBatchAborted)
			return
		}
		done(drained, nil)
		if name != "" {
			rt.logger().Debug("batch end", "batch", name, "drained", drained)
		}
	}()

	fn()
	for {
		h := hooks.shift()
		if h == nil {
			break
		}
		drained++
		h.fn()
	}
	ok = true
}

// InBatch reports whether the calling goroutine is inside a batch.
func InBatch() bool {
	return Current().batch != nil
}
