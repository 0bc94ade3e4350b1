package reactive

import (
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestTriggerFiresOnce(t *testing.T) {
	s := NewSignal(0)
	fired := 0
	p := Trigger(func() { fired++ })
	p.Run(s.Access)

	s.Set(1)
	s.Set(2)
	if fired != 1 {
		t.Fatalf("expected 1 fire, got %d", fired)
	}

	p.Run(s.Access)
	s.Set(3)
	if fired != 2 {
		t.Errorf("expected 2 fires, got %d", fired)
	}
}

func TestTriggerRunReplacesRecording(t *testing.T) {
	a := NewSignal(0)
	b := NewSignal(0)
	fired := 0
	p := Trigger(func() { fired++ })

	p.Run(a.Access)
	p.Run(b.Access)
	a.Set(1)
	if fired != 0 {
		t.Errorf("previous recording should be dropped, got %d fires", fired)
	}
	if a.Active() {
		t.Error("a should have no subscribers")
	}
	b.Set(1)
	if fired != 1 {
		t.Errorf("expected 1 fire, got %d", fired)
	}
}

func TestTriggerFiresOnlyForSignalsRecordedInIt(t *testing.T) {
	a := NewSignal(0)
	b := NewSignal(0)
	fired := 0
	p := Trigger(func() {
		b.Get()
		fired++
	})
	p.Run(a.Access)

	a.Set(1)
	b.Set(1)
	if fired != 1 {
		t.Errorf("trigger function should run untracked, got %d fires", fired)
	}
}

func TestTriggerFiresBeforeObserver(t *testing.T) {
	s := NewSignal(0)
	var log []string
	p := Trigger(func() { log = append(log, "trigger") })
	Watch(Computed(func() int { return Pipe(p, Cell(s)) }), func(v int) {
		log = append(log, fmt.Sprintf("watch:%d", v))
	})

	s.Set(1)
	want := []string{"watch:0", "trigger", "watch:1"}
	if diff := cmp.Diff(want, log); diff != "" {
		t.Errorf("log (-want +got):\n%s", diff)
	}
}

func TestNestedTriggersFireInnermostFirst(t *testing.T) {
	s := NewSignal(0)
	var log []string
	outer := Trigger(func() { log = append(log, "outer") })
	inner := Trigger(func() { log = append(log, "inner") })

	outer.Run(func() {
		inner.Run(s.Access)
	})

	s.Set(1)
	if diff := cmp.Diff([]string{"inner", "outer"}, log); diff != "" {
		t.Errorf("log (-want +got):\n%s", diff)
	}
}

func TestTriggerInBatchFiresOnce(t *testing.T) {
	a := NewSignal(0)
	b := NewSignal(0)
	fired := 0
	p := Trigger(func() { fired++ })
	p.Run(func() {
		a.Get()
		b.Get()
	})

	Batch(func() {
		a.Set(1)
		b.Set(1)
	})
	if fired != 1 {
		t.Errorf("expected 1 fire, got %d", fired)
	}
}

func TestTriggerClear(t *testing.T) {
	s := NewSignal(0)
	fired := 0
	p := Trigger(func() { fired++ })
	p.Run(s.Access)
	p.Clear()

	s.Set(1)
	if fired != 0 {
		t.Errorf("cleared trigger should not fire, got %d", fired)
	}
}

func TestTriggerClearedByScope(t *testing.T) {
	s := NewSignal(0)
	fired := 0
	dispose := Capture(func() {
		p := Trigger(func() { fired++ })
		p.Run(s.Access)
	})

	dispose()
	if s.Active() {
		t.Error("signal should have no subscribers after dispose")
	}
	s.Set(1)
	if fired != 0 {
		t.Errorf("disposed trigger should not fire, got %d", fired)
	}
}
