package reactive

import (
	"testing"
)

// mustPanic runs fn and returns the recovered panic value. It fails the test
// if fn returns normally.
func mustPanic(t *testing.T, fn func()) (value any) {
	t.Helper()
	defer func() {
		value = recover()
		if value == nil {
			t.Fatal("expected panic, got none")
		}
	}()
	fn()
	return nil
}

// recorder is an Instrumentation collecting every event.
type recorder struct {
	notified   []int
	ran        []ObserverKind
	batches    []string
	drained    []int
	aborted    int
	reconciled []ReconcileStats
}

func (r *recorder) SignalNotified(hooks int) {
	r.notified = append(r.notified, hooks)
}

func (r *recorder) ObserverRan(kind ObserverKind) {
	r.ran = append(r.ran, kind)
}

func (r *recorder) BatchStarted(name string) BatchDone {
	r.batches = append(r.batches, name)
	return func(drained int, err error) {
		r.drained = append(r.drained, drained)
		if err != nil {
			r.aborted++
		}
	}
}

func (r *recorder) Reconciled(stats ReconcileStats) {
	r.reconciled = append(r.reconciled, stats)
}

// useRecorder installs a recorder on the calling goroutine's runtime.
func useRecorder(t *testing.T) *recorder {
	t.Helper()
	rec := &recorder{}
	Current().Configure(Config{Instrumentation: rec})
	return rec
}
