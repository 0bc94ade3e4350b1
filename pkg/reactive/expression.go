package reactive

import "fmt"

// exprKind tags the variant held by an Expression.
type exprKind uint8

const (
	exprStatic exprKind = iota
	exprComputed
	exprCell
)

// Expression is a value that may be static, computed by a function or held
// by a signal. The zero Expression is the static zero value of T.
type Expression[T any] struct {
	kind  exprKind
	value T
	fn    func() T
	cell  *Signal[T]
}

// Static returns an expression that always evaluates to value.
func Static[T any](value T) Expression[T] {
	return Expression[T]{kind: exprStatic, value: value}
}

// Computed returns an expression that evaluates fn each time.
func Computed[T any](fn func() T) Expression[T] {
	return Expression[T]{kind: exprComputed, fn: fn}
}

// Cell returns an expression that reads s.
func Cell[T any](s *Signal[T]) Expression[T] {
	return Expression[T]{kind: exprCell, cell: s}
}

// IsStatic reports whether e never changes.
func (e Expression[T]) IsStatic() bool {
	return e.kind == exprStatic
}

// String describes the variant, not the value.
func (e Expression[T]) String() string {
	switch e.kind {
	case exprComputed:
		return "Computed"
	case exprCell:
		return "Cell"
	default:
		return fmt.Sprintf("Static(%v)", e.value)
	}
}

// Get evaluates e. Reads of signals are recorded like any other access.
func Get[T any](e Expression[T]) T {
	switch e.kind {
	case exprComputed:
		return e.fn()
	case exprCell:
		return e.cell.Get()
	default:
		return e.value
	}
}

// MapExpr returns an expression evaluating fn on the result of e. A static
// e is mapped eagerly and stays static.
func MapExpr[T, R any](e Expression[T], fn func(value T) R) Expression[R] {
	if e.kind == exprStatic {
		return Static(fn(e.value))
	}
	return Computed(func() R {
		return fn(Get(e))
	})
}
