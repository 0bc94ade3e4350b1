package reactive

import (
	"testing"
)

func TestContextInject(t *testing.T) {
	theme := NewContext("light")
	if theme.Current() != "light" {
		t.Fatalf("expected default, got %q", theme.Current())
	}

	theme.Inject("dark", func() {
		if theme.Current() != "dark" {
			t.Errorf("expected dark, got %q", theme.Current())
		}
		theme.Inject("blue", func() {
			if theme.Current() != "blue" {
				t.Errorf("expected blue, got %q", theme.Current())
			}
		})
		if theme.Current() != "dark" {
			t.Errorf("expected dark after nested inject, got %q", theme.Current())
		}
	})

	if theme.Current() != "light" {
		t.Errorf("expected default after inject, got %q", theme.Current())
	}
	if theme.Default() != "light" {
		t.Errorf("expected default light, got %q", theme.Default())
	}
}

func TestInjectAll(t *testing.T) {
	name := NewContext("")
	size := NewContext(0)

	InjectAll([]ContextState{name.With("a"), size.With(1), name.With("b")}, func() {
		if name.Current() != "b" {
			t.Errorf("later state should win, got %q", name.Current())
		}
		if size.Current() != 1 {
			t.Errorf("expected 1, got %d", size.Current())
		}
	})
}

func TestInjectAllUnwindsOnPanic(t *testing.T) {
	name := NewContext("none")
	mustPanic(t, func() {
		InjectAll([]ContextState{name.With("x")}, func() {
			panic("boom")
		})
	})

	if name.Current() != "none" {
		t.Errorf("binding should be removed after panic, got %q", name.Current())
	}
}

func TestWrapRestoresSnapshot(t *testing.T) {
	ctx := NewContext("")
	var wrapped func() string
	ctx.Inject("A", func() {
		wrapped = WrapValue(ctx.Current)
	})

	ctx.Inject("B", func() {
		if got := wrapped(); got != "A" {
			t.Errorf("expected A, got %q", got)
		}
	})
	if got := wrapped(); got != "A" {
		t.Errorf("expected A outside inject, got %q", got)
	}
}

func TestWrapHidesCallSiteBindings(t *testing.T) {
	a := NewContext("a-default")
	b := NewContext("b-default")

	var fn func()
	var gotA, gotB string
	a.Inject("a", func() {
		fn = Wrap(func() {
			gotA = a.Current()
			gotB = b.Current()
		})
	})

	b.Inject("b", fn)
	if gotA != "a" {
		t.Errorf("expected a, got %q", gotA)
	}
	if gotB != "b-default" {
		t.Errorf("bindings around the call should be hidden, got %q", gotB)
	}
	if b.Current() != "b-default" {
		t.Errorf("expected b default after inject, got %q", b.Current())
	}
}

func TestInjectInsideWrapped(t *testing.T) {
	ctx := NewContext(0)
	var fn func()
	ctx.Inject(1, func() {
		fn = Wrap(func() {
			ctx.Inject(2, func() {
				if ctx.Current() != 2 {
					t.Errorf("expected 2, got %d", ctx.Current())
				}
			})
			if ctx.Current() != 1 {
				t.Errorf("expected 1, got %d", ctx.Current())
			}
		})
	})

	fn()
	if ctx.Current() != 0 {
		t.Errorf("expected default, got %d", ctx.Current())
	}
}

func TestWrapOnOtherGoroutine(t *testing.T) {
	ctx := NewContext("none")
	var fn func() string
	ctx.Inject("here", func() {
		fn = WrapValue(ctx.Current)
	})

	done := make(chan string)
	go func() {
		defer Release()
		done <- fn()
	}()
	if got := <-done; got != "here" {
		t.Errorf("expected here, got %q", got)
	}
}
