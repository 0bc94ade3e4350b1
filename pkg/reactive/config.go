package reactive

import (
	"log/slog"
	"sync"
)

// DefaultMaxPasses is the default rerun budget of a single observer.
const DefaultMaxPasses = 1000

// Config configures a runtime.
type Config struct {
	// Logger receives debug records for named batches and warnings for
	// runaway observers. If nil, slog.Default() is used.
	Logger *slog.Logger

	// Instrumentation receives reactive events. If nil, events are dropped.
	Instrumentation Instrumentation

	// MaxPasses bounds how many consecutive passes one observer may run
	// because of writes made during its own runs. Zero means
	// DefaultMaxPasses; a negative value disables the check.
	MaxPasses int
}

func (c Config) withDefaults() Config {
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
	if c.Instrumentation == nil {
		c.Instrumentation = NopInstrumentation{}
	}
	if c.MaxPasses == 0 {
		c.MaxPasses = DefaultMaxPasses
	}
	return c
}

var (
	defaultsMu sync.RWMutex
	defaults   Config
)

// Configure sets the process-wide defaults used by runtimes created after
// the call. Existing runtimes keep their configuration; use
// Current().Configure to change the calling goroutine's runtime.
func Configure(cfg Config) {
	defaultsMu.Lock()
	defer defaultsMu.Unlock()
	defaults = cfg
}

func defaultConfig() Config {
	defaultsMu.RLock()
	defer defaultsMu.RUnlock()
	return defaults
}

// Stats are counters accumulated by one runtime.
type Stats struct {
	// Notifications counts signal notifications that reached at least one hook.
	Notifications int

	// ObserverRuns counts observer passes (watch, effect and trigger fires).
	ObserverRuns int

	// Batches counts outermost batches.
	Batches int

	// DrainedHooks counts hooks invoked while draining batches.
	DrainedHooks int

	// Reconciliations counts MapArray passes that changed the list.
	Reconciliations int
}
