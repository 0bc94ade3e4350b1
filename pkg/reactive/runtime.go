package reactive

import (
	"log/slog"
	"runtime"
	"sync"
)

// collector receives the hook set of every signal accessed while it is the
// active collector and tracking is enabled.
type collector func(hooks *hookSet)

// Runtime holds the reactive state of one goroutine: the tracking and
// collector stacks, the teardown frames, the live batch and the context
// windows. Package functions operate on the calling goroutine's runtime.
type Runtime struct {
	id uint64

	// tracking is the "tracking enabled" stack. The bottom entry is true so
	// an active collector records accesses unless Untrack says otherwise.
	tracking []bool

	// collectors is the active collector stack. A nil entry isolates the
	// code above it from any outer observer.
	collectors []collector

	// frames are the teardown frames pushed by Capture, Uncapture and
	// Nocapture. With no frame, registered hooks are dropped.
	frames []*teardownFrame

	// batch is the shared hook set of the outermost active Batch.
	batch *hookSet

	// windows is the context window stack; the last window is innermost.
	windows []*window

	cfg   Config
	stats Stats
}

// runtimes stores per-goroutine runtimes.
var runtimes sync.Map

// getGoroutineID returns the id of the calling goroutine, parsed from the
// header of its stack trace ("goroutine <id> [...]").
func getGoroutineID() uint64 {
	var buf [64]byte
	n := runtime.Stack(buf[:], false)

	var id uint64
	for i := len("goroutine "); i < n; i++ {
		if buf[i] < '0' || buf[i] > '9' {
			break
		}
		id = id*10 + uint64(buf[i]-'0')
	}
	return id
}

// Current returns the runtime of the calling goroutine, creating it on first
// use with the process defaults set by Configure.
func Current() *Runtime {
	gid := getGoroutineID()
	if rt, ok := runtimes.Load(gid); ok {
		return rt.(*Runtime)
	}
	rt := newRuntime(defaultConfig())
	runtimes.Store(gid, rt)
	return rt
}

// Release drops the calling goroutine's runtime. Long-lived programs that
// spawn many short goroutines using reactive code should call it before the
// goroutine exits. Signals and observers created earlier stay valid.
func Release() {
	runtimes.Delete(getGoroutineID())
}

func newRuntime(cfg Config) *Runtime {
	return &Runtime{
		id:       nextID(),
		tracking: []bool{true},
		windows:  []*window{{id: nextID()}},
		cfg:      cfg.withDefaults(),
	}
}

// ID returns the unique identifier of this runtime.
func (rt *Runtime) ID() uint64 {
	return rt.id
}

// Configure replaces the configuration of this runtime only.
func (rt *Runtime) Configure(cfg Config) {
	rt.cfg = cfg.withDefaults()
}

// Config returns the effective configuration of this runtime.
func (rt *Runtime) Config() Config {
	return rt.cfg
}

// Stats returns counters accumulated by this runtime.
func (rt *Runtime) Stats() Stats {
	return rt.stats
}

func (rt *Runtime) logger() *slog.Logger {
	return rt.cfg.Logger
}

// =============================================================================
// Tracking controller
// =============================================================================

func (rt *Runtime) pushTracking(enabled bool) {
	rt.tracking = append(rt.tracking, enabled)
}

func (rt *Runtime) popTracking() {
	rt.tracking = rt.tracking[:len(rt.tracking)-1]
}

func (rt *Runtime) trackingEnabled() bool {
	return rt.tracking[len(rt.tracking)-1]
}

func (rt *Runtime) pushCollector(c collector) {
	rt.collectors = append(rt.collectors, c)
}

func (rt *Runtime) popCollector() {
	rt.collectors[len(rt.collectors)-1] = nil
	rt.collectors = rt.collectors[:len(rt.collectors)-1]
}

// activeCollector returns the collector that receives accesses right now, or
// nil if accesses are not recorded.
func (rt *Runtime) activeCollector() collector {
	if len(rt.collectors) == 0 || !rt.trackingEnabled() {
		return nil
	}
	return rt.collectors[len(rt.collectors)-1]
}

// access hands hooks to the active collector, if any.
func (rt *Runtime) access(hooks *hookSet) {
	if c := rt.activeCollector(); c != nil {
		c(hooks)
	}
}

// observe runs fn with c as the active collector and tracking forced on.
func (rt *Runtime) observe(c collector, fn func()) {
	rt.pushTracking(true)
	rt.pushCollector(c)
	defer func() {
		rt.popCollector()
		rt.popTracking()
	}()
	fn()
}

// withTracking runs fn with tracking enabled or disabled.
func (rt *Runtime) withTracking(enabled bool, fn func()) {
	rt.pushTracking(enabled)
	defer rt.popTracking()
	fn()
}

// =============================================================================
// Notification
// =============================================================================

// notify fires hooks. Outside a batch the set is snapshotted and cleared
// before any hook runs; inside a batch the hooks are merged into the batch
// set and the signal keeps them.
func (rt *Runtime) notify(hooks *hookSet) {
	if hooks.len() == 0 {
		return
	}
	rt.stats.Notifications++
	rt.cfg.Instrumentation.SignalNotified(hooks.len())

	if rt.batch != nil {
		hooks.each(func(h *notifyHook) {
			rt.batch.add(h)
		})
		return
	}

	record := hooks.snapshot()
	hooks.clear()
	for _, h := range record {
		h.fn()
	}
}

// =============================================================================
// Public tracking API
// =============================================================================

// Untrack runs fn with tracking disabled: signal reads inside fn do not
// subscribe the current observer.
func Untrack(fn func()) {
	Current().withTracking(false, fn)
}

// Track runs fn with tracking enabled, undoing an outer Untrack.
func Track(fn func()) {
	Current().withTracking(true, fn)
}

// IsTracking reports whether a signal read at this point would be recorded
// by an observer.
func IsTracking() bool {
	return Current().activeCollector() != nil
}

// Isolate runs fn outside of any observer, with capture and context windows
// left untouched. Reads inside fn are never recorded, even by a Track call.
func Isolate(fn func()) {
	rt := Current()
	rt.pushTracking(false)
	rt.pushCollector(nil)
	defer func() {
		rt.popCollector()
		rt.popTracking()
	}()
	fn()
}
