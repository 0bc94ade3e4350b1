package reactive

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestBatchIsGlitchFree(t *testing.T) {
	a := NewSignal(0)
	b := NewSignal(0)
	var log []int
	Watch(Computed(func() int { return a.Get() + b.Get() }), func(sum int) {
		log = append(log, sum)
	})

	Batch(func() {
		a.Set(1)
		b.Set(2)
		if len(log) != 1 {
			t.Errorf("observer should not run inside batch, got %v", log)
		}
	})

	if diff := cmp.Diff([]int{0, 3}, log); diff != "" {
		t.Errorf("log (-want +got):\n%s", diff)
	}
}

func TestBatchCoalescesRepeatedWrites(t *testing.T) {
	s := NewSignal(0)
	runs := 0
	Effect(func() {
		s.Get()
		runs++
	})

	Batch(func() {
		for i := 1; i <= 5; i++ {
			s.Set(i)
		}
	})
	if runs != 2 {
		t.Errorf("expected 2 runs, got %d", runs)
	}
}

func TestNestedBatchJoinsOuter(t *testing.T) {
	s := NewSignal(0)
	runs := 0
	Effect(func() {
		s.Get()
		runs++
	})

	Batch(func() {
		Batch(func() {
			s.Set(1)
		})
		if runs != 1 {
			t.Errorf("nested batch should not drain, got %d runs", runs)
		}
		if !InBatch() {
			t.Error("expected to be in batch")
		}
	})
	if runs != 2 {
		t.Errorf("expected 2 runs, got %d", runs)
	}
	if InBatch() {
		t.Error("batch should be over")
	}
}

func TestBatchDrainsHooksAddedWhileDraining(t *testing.T) {
	a := NewSignal(0)
	b := NewSignal(0)
	var log []string
	Effect(func() {
		v := a.Get()
		log = append(log, "a")
		b.Set(v * 10)
	})
	Watch(Cell(b), func(v int) {
		log = append(log, "b")
	})
	log = nil

	Batch(func() {
		a.Set(1)
	})

	if diff := cmp.Diff([]string{"a", "b"}, log); diff != "" {
		t.Errorf("log (-want +got):\n%s", diff)
	}
	if b.Peek() != 10 {
		t.Errorf("expected b to be 10, got %d", b.Peek())
	}
}

func TestBatchPanicLeavesHooksSubscribed(t *testing.T) {
	s := NewSignal(0)
	var first, second []int
	Watch(Cell(s), func(v int) {
		if v == 1 {
			panic("boom")
		}
		first = append(first, v)
	})
	Watch(Cell(s), func(v int) {
		second = append(second, v)
	})

	if got := mustPanic(t, func() {
		Batch(func() { s.Set(1) })
	}); got != "boom" {
		t.Fatalf("expected boom, got %v", got)
	}
	if InBatch() {
		t.Fatal("batch should be cleared after panic")
	}
	if diff := cmp.Diff([]int{0}, second); diff != "" {
		t.Errorf("aborted drain should skip the second watch (-want +got):\n%s", diff)
	}

	s.Set(2)
	if diff := cmp.Diff([]int{0, 2}, first); diff != "" {
		t.Errorf("first (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]int{0, 2}, second); diff != "" {
		t.Errorf("second (-want +got):\n%s", diff)
	}
}

func TestBatchNamedInstrumentation(t *testing.T) {
	rec := useRecorder(t)
	s := NewSignal(0)
	Effect(func() { s.Get() })

	BatchNamed("save", func() {
		Batch(func() { s.Set(1) })
	})
	mustPanic(t, func() {
		Batch(func() { panic("boom") })
	})

	if diff := cmp.Diff([]string{"save", ""}, rec.batches); diff != "" {
		t.Errorf("batches (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]int{1, 0}, rec.drained); diff != "" {
		t.Errorf("drained (-want +got):\n%s", diff)
	}
	if rec.aborted != 1 {
		t.Errorf("expected 1 aborted batch, got %d", rec.aborted)
	}
	if diff := cmp.Diff([]ObserverKind{KindEffect, KindEffect}, rec.ran); diff != "" {
		t.Errorf("ran (-want +got):\n%s", diff)
	}
}
