package reactive

import (
	"math"
	"reflect"
)

// Signal is a reactive value cell.
// Reading a Signal with Get inside an observer subscribes the observer;
// writing it with Set re-runs every subscribed observer.
type Signal[T any] struct {
	value T

	// hooks are the subscriptions of this signal, in subscription order.
	hooks hookSet

	// equal decides whether Set is a no-op. If nil, identity is used.
	equal func(a, b T) bool
}

// NewSignal creates a new signal with the given initial value.
func NewSignal[T any](initial T) *Signal[T] {
	return &Signal[T]{value: initial}
}

// WithEquals configures the function Set uses to detect no-op writes.
func (s *Signal[T]) WithEquals(fn func(a, b T) bool) *Signal[T] {
	s.equal = fn
	return s
}

// Get returns the current value and records the access.
func (s *Signal[T]) Get() T {
	s.Access()
	return s.value
}

// Peek returns the current value without recording the access.
func (s *Signal[T]) Peek() T {
	return s.value
}

// Access records an access to this signal without reading it. If tracking
// is enabled and an observer is collecting, the observer subscribes.
func (s *Signal[T]) Access() {
	Current().access(&s.hooks)
}

// Set replaces the value and notifies subscribers unless the new value is
// identical to the current one.
func (s *Signal[T]) Set(value T) {
	if s.equals(s.value, value) {
		return
	}
	s.value = value
	s.Notify()
}

// Update runs fn against the current value in place and notifies
// subscribers unless fn returns false.
func (s *Signal[T]) Update(fn func(value *T) bool) {
	if fn(&s.value) {
		s.Notify()
	}
}

// Mutate runs fn against the current value in place and always notifies.
func (s *Signal[T]) Mutate(fn func(value *T)) {
	fn(&s.value)
	s.Notify()
}

// Notify runs every subscriber as if the value had changed. Inside a batch
// the subscribers are deferred until the batch drains.
func (s *Signal[T]) Notify() {
	Current().notify(&s.hooks)
}

// Active reports whether any observer is currently subscribed.
func (s *Signal[T]) Active() bool {
	return s.hooks.len() > 0
}

func (s *Signal[T]) equals(a, b T) bool {
	if s.equal != nil {
		return s.equal(a, b)
	}
	return Identical(a, b)
}

// Identical reports whether a and b are the same value.
//
// Floats compare like ==, except that NaN is identical to NaN and +0 is not
// identical to -0. Slices, maps, functions and channels compare by
// reference. Other comparable values compare with ==; non-comparable values
// inside structs or arrays fall back to field-wise identity.
func Identical[T any](a, b T) bool {
	switch av := any(a).(type) {
	case int:
		bv, ok := any(b).(int)
		return ok && av == bv
	case string:
		bv, ok := any(b).(string)
		return ok && av == bv
	case bool:
		bv, ok := any(b).(bool)
		return ok && av == bv
	case float64:
		bv, ok := any(b).(float64)
		return ok && sameFloat(av, bv)
	}
	return identicalValue(reflect.ValueOf(&a).Elem(), reflect.ValueOf(&b).Elem())
}

func sameFloat(a, b float64) bool {
	if math.IsNaN(a) {
		return math.IsNaN(b)
	}
	return a == b && math.Signbit(a) == math.Signbit(b)
}

func identicalValue(a, b reflect.Value) bool {
	if a.Kind() != b.Kind() {
		return false
	}
	switch a.Kind() {
	case reflect.Float32, reflect.Float64:
		return sameFloat(a.Float(), b.Float())
	case reflect.Complex64, reflect.Complex128:
		ac, bc := a.Complex(), b.Complex()
		return sameFloat(real(ac), real(bc)) && sameFloat(imag(ac), imag(bc))
	case reflect.Slice:
		return a.Len() == b.Len() && a.Cap() == b.Cap() && a.UnsafePointer() == b.UnsafePointer()
	case reflect.Map, reflect.Func, reflect.Chan, reflect.Pointer, reflect.UnsafePointer:
		return a.UnsafePointer() == b.UnsafePointer()
	case reflect.Interface:
		if a.IsNil() || b.IsNil() {
			return a.IsNil() == b.IsNil()
		}
		ae, be := a.Elem(), b.Elem()
		return ae.Type() == be.Type() && identicalValue(ae, be)
	case reflect.Struct:
		if a.Type() != b.Type() {
			return false
		}
		for i := 0; i < a.NumField(); i++ {
			if !identicalValue(a.Field(i), b.Field(i)) {
				return false
			}
		}
		return true
	case reflect.Array:
		for i := 0; i < a.Len(); i++ {
			if !identicalValue(a.Index(i), b.Index(i)) {
				return false
			}
		}
		return true
	case reflect.Bool:
		return a.Bool() == b.Bool()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return a.Int() == b.Int()
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return a.Uint() == b.Uint()
	case reflect.String:
		return a.String() == b.String()
	case reflect.Invalid:
		return true
	}
	return false
}
