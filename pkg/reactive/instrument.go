package reactive

// ObserverKind identifies what kind of observer ran.
type ObserverKind uint8

const (
	KindWatch ObserverKind = iota + 1
	KindEffect
	KindTrigger
)

// String returns a human-readable name for the observer kind.
func (k ObserverKind) String() string {
	switch k {
	case KindWatch:
		return "watch"
	case KindEffect:
		return "effect"
	case KindTrigger:
		return "trigger"
	default:
		return "unknown"
	}
}

// ReconcileStats describes one MapArray pass.
type ReconcileStats struct {
	// Size is the length of the new input slice.
	Size int

	// Created, Reused and Disposed count entries by outcome. Entries in the
	// common prefix and suffix count as reused.
	Created  int
	Reused   int
	Disposed int
}

// BatchDone is returned by Instrumentation.BatchStarted and called once the
// batch has drained. err is non-nil if the batch was aborted by a panic.
type BatchDone func(drained int, err error)

// Instrumentation receives events from a runtime. Implementations are called
// synchronously from reactive code and must not call back into it.
type Instrumentation interface {
	SignalNotified(hooks int)
	ObserverRan(kind ObserverKind)
	BatchStarted(name string) BatchDone
	Reconciled(stats ReconcileStats)
}

// NopInstrumentation discards all events.
type NopInstrumentation struct{}

func (NopInstrumentation) SignalNotified(int)            {}
func (NopInstrumentation) ObserverRan(ObserverKind)      {}
func (NopInstrumentation) BatchStarted(string) BatchDone { return func(int, error) {} }
func (NopInstrumentation) Reconciled(ReconcileStats)     {}
