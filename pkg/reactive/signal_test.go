package reactive

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestSignalBasic(t *testing.T) {
	count := NewSignal(0)

	if count.Get() != 0 {
		t.Errorf("expected initial value 0, got %d", count.Get())
	}

	count.Set(5)
	if count.Peek() != 5 {
		t.Errorf("expected value 5, got %d", count.Peek())
	}

	count.Update(func(n *int) bool {
		*n *= 2
		return true
	})
	if count.Get() != 10 {
		t.Errorf("expected value 10, got %d", count.Get())
	}

	count.Mutate(func(n *int) { *n++ })
	if count.Get() != 11 {
		t.Errorf("expected value 11, got %d", count.Get())
	}
}

func TestWatchLogsIdentityChanges(t *testing.T) {
	s := NewSignal(0)
	var log []int
	Watch(Cell(s), func(v int) {
		log = append(log, v)
	})

	if diff := cmp.Diff([]int{0}, log); diff != "" {
		t.Fatalf("after watch (-want +got):\n%s", diff)
	}

	s.Set(0)
	if diff := cmp.Diff([]int{0}, log); diff != "" {
		t.Fatalf("after identical write (-want +got):\n%s", diff)
	}

	s.Set(1)
	if diff := cmp.Diff([]int{0, 1}, log); diff != "" {
		t.Fatalf("after write (-want +got):\n%s", diff)
	}
}

func TestSignalUpdateNoop(t *testing.T) {
	s := NewSignal([]int{1, 2})
	runs := 0
	Effect(func() {
		s.Access()
		runs++
	})

	s.Update(func(v *[]int) bool { return false })
	if runs != 1 {
		t.Errorf("no-op update should not notify, got %d runs", runs)
	}

	s.Update(func(v *[]int) bool {
		(*v)[0] = 9
		return true
	})
	if runs != 2 {
		t.Errorf("expected 2 runs, got %d", runs)
	}
	if s.Peek()[0] != 9 {
		t.Errorf("expected in-place update, got %v", s.Peek())
	}
}

func TestSignalNotifyWithoutChange(t *testing.T) {
	s := NewSignal("x")
	runs := 0
	Effect(func() {
		s.Get()
		runs++
	})

	s.Notify()
	if runs != 2 {
		t.Errorf("expected Notify to rerun, got %d runs", runs)
	}
}

func TestSignalWithEquals(t *testing.T) {
	type point struct{ X, Y int }
	s := NewSignal(point{1, 2}).WithEquals(func(a, b point) bool {
		return a.X == b.X
	})
	runs := 0
	Effect(func() {
		s.Get()
		runs++
	})

	s.Set(point{1, 5})
	if runs != 1 {
		t.Errorf("equal values should not notify, got %d runs", runs)
	}
	s.Set(point{2, 5})
	if runs != 2 {
		t.Errorf("expected 2 runs, got %d", runs)
	}
}

func TestSignalActive(t *testing.T) {
	s := NewSignal(1)
	if s.Active() {
		t.Fatal("new signal should not be active")
	}

	dispose := Capture(func() {
		Watch(Cell(s), func(int) {})
	})
	if !s.Active() {
		t.Error("signal should be active while watched")
	}

	dispose()
	if s.Active() {
		t.Error("signal should not be active after dispose")
	}
}

func TestSignalHooksFireInSubscriptionOrder(t *testing.T) {
	s := NewSignal(0)
	var order []string
	for _, name := range []string{"a", "b", "c"} {
		name := name
		WatchUpdates(Cell(s), func(int) {
			order = append(order, name)
		})
	}

	s.Set(1)
	if diff := cmp.Diff([]string{"a", "b", "c"}, order); diff != "" {
		t.Errorf("order (-want +got):\n%s", diff)
	}
}

func TestTrackingControl(t *testing.T) {
	if IsTracking() {
		t.Error("should not track outside an observer")
	}

	var inside, untracked, retracked bool
	Effect(func() {
		inside = IsTracking()
		Untrack(func() {
			untracked = IsTracking()
			Track(func() {
				retracked = IsTracking()
			})
		})
	})

	if !inside {
		t.Error("effect body should track")
	}
	if untracked {
		t.Error("Untrack should disable tracking")
	}
	if !retracked {
		t.Error("Track should re-enable tracking")
	}
}

func TestUntrackedReadDoesNotSubscribe(t *testing.T) {
	a := NewSignal(0)
	b := NewSignal(0)
	runs := 0
	Effect(func() {
		a.Get()
		Untrack(func() { b.Get() })
		runs++
	})

	b.Set(1)
	if runs != 1 {
		t.Errorf("untracked read should not subscribe, got %d runs", runs)
	}
	a.Set(1)
	if runs != 2 {
		t.Errorf("expected 2 runs, got %d", runs)
	}
}

func TestIsolateHidesObserver(t *testing.T) {
	s := NewSignal(0)
	runs := 0
	Effect(func() {
		Isolate(func() {
			Track(func() { s.Get() })
		})
		runs++
	})

	s.Set(1)
	if runs != 1 {
		t.Errorf("isolated read should not subscribe, got %d runs", runs)
	}
}

func TestIdentical(t *testing.T) {
	type inner struct {
		F float64
		S []int
	}
	slice := []int{1, 2, 3}
	m := map[string]int{"a": 1}
	negZero := math.Copysign(0, -1)

	tests := []struct {
		name string
		got  bool
		want bool
	}{
		{"ints", Identical(1, 1), true},
		{"different ints", Identical(1, 2), false},
		{"strings", Identical("a", "a"), true},
		{"nan", Identical(math.NaN(), math.NaN()), true},
		{"signed zero", Identical(0.0, negZero), false},
		{"float32 nan", Identical(float32(math.NaN()), float32(math.NaN())), true},
		{"same slice", Identical(slice, slice), true},
		{"equal slices", Identical(slice, []int{1, 2, 3}), false},
		{"resliced", Identical(slice, slice[:2]), false},
		{"same map", Identical(m, m), true},
		{"equal maps", Identical(m, map[string]int{"a": 1}), false},
		{"struct with nan", Identical(inner{math.NaN(), slice}, inner{math.NaN(), slice}), true},
		{"struct with other slice", Identical(inner{1, slice}, inner{1, []int{1, 2, 3}}), false},
		{"nil interfaces", Identical[any](nil, nil), true},
		{"interface types differ", Identical[any](1, int64(1)), false},
		{"interface same", Identical[any]("x", "x"), true},
		{"arrays", Identical([2]float64{math.NaN(), 1}, [2]float64{math.NaN(), 1}), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("expected %v, got %v", tt.want, tt.got)
			}
		})
	}
}

func TestSignalSetNaNIsNoop(t *testing.T) {
	s := NewSignal(math.NaN())
	runs := 0
	Effect(func() {
		s.Get()
		runs++
	})

	s.Set(math.NaN())
	if runs != 1 {
		t.Errorf("NaN write should be a no-op, got %d runs", runs)
	}
	s.Set(math.Copysign(0, -1))
	s.Set(0)
	if runs != 3 {
		t.Errorf("signed zeros should differ, got %d runs", runs)
	}
}

func TestRuntimeStats(t *testing.T) {
	s := NewSignal(0)
	Effect(func() { s.Get() })
	before := Current().Stats()

	s.Set(1)
	Batch(func() { s.Set(2) })

	after := Current().Stats()
	if after.Notifications-before.Notifications != 2 {
		t.Errorf("expected 2 notifications, got %d", after.Notifications-before.Notifications)
	}
	if after.ObserverRuns-before.ObserverRuns != 2 {
		t.Errorf("expected 2 observer runs, got %d", after.ObserverRuns-before.ObserverRuns)
	}
	if after.Batches-before.Batches != 1 {
		t.Errorf("expected 1 batch, got %d", after.Batches-before.Batches)
	}
}

func TestRuntimesAreGoroutineLocal(t *testing.T) {
	id := Current().ID()
	if Current().ID() != id {
		t.Fatal("runtime should be stable on one goroutine")
	}

	done := make(chan uint64)
	go func() {
		defer Release()
		done <- Current().ID()
	}()
	if other := <-done; other == id {
		t.Errorf("expected a different runtime on another goroutine")
	}
}
