package instrument

import "github.com/vango-dev/reactor/pkg/reactive"

type multi []reactive.Instrumentation

// Multi returns an instrumentation forwarding every event to each of insts,
// in order. Nil entries are skipped.
func Multi(insts ...reactive.Instrumentation) reactive.Instrumentation {
	m := make(multi, 0, len(insts))
	for _, inst := range insts {
		if inst != nil {
			m = append(m, inst)
		}
	}
	if len(m) == 1 {
		return m[0]
	}
	return m
}

func (m multi) SignalNotified(hooks int) {
	for _, inst := range m {
		inst.SignalNotified(hooks)
	}
}

func (m multi) ObserverRan(kind reactive.ObserverKind) {
	for _, inst := range m {
		inst.ObserverRan(kind)
	}
}

func (m multi) BatchStarted(name string) reactive.BatchDone {
	done := make([]reactive.BatchDone, len(m))
	for i, inst := range m {
		done[i] = inst.BatchStarted(name)
	}
	return func(drained int, err error) {
		for i := len(done) - 1; i >= 0; i-- {
			done[i](drained, err)
		}
	}
}

func (m multi) Reconciled(stats reactive.ReconcileStats) {
	for _, inst := range m {
		inst.Reconciled(stats)
	}
}
