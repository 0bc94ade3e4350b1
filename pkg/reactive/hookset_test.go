package reactive

import "testing"

func hookNames(s *hookSet, names map[*notifyHook]string) []string {
	var out []string
	s.each(func(h *notifyHook) {
		out = append(out, names[h])
	})
	return out
}

func TestHookSetOrder(t *testing.T) {
	a, b, c := &notifyHook{}, &notifyHook{}, &notifyHook{}
	names := map[*notifyHook]string{a: "a", b: "b", c: "c"}

	var s hookSet
	if !s.add(a) || !s.add(b) || !s.add(c) {
		t.Fatal("adding new hooks should report true")
	}
	if s.add(b) {
		t.Error("adding a present hook should report false")
	}
	if got := hookNames(&s, names); len(got) != 3 || got[0] != "a" || got[1] != "b" || got[2] != "c" {
		t.Errorf("expected [a b c], got %v", got)
	}

	s.remove(a)
	s.add(a)
	if got := hookNames(&s, names); got[2] != "a" {
		t.Errorf("re-added hook should move to the end, got %v", got)
	}

	if h := s.shift(); h != b {
		t.Errorf("expected b, got %s", names[h])
	}
	if s.len() != 2 || s.has(b) {
		t.Errorf("shift should remove the hook, len %d", s.len())
	}

	snap := s.snapshot()
	s.clear()
	if len(snap) != 2 || s.len() != 0 || s.shift() != nil {
		t.Errorf("unexpected state after clear: snapshot %d, len %d", len(snap), s.len())
	}
}
