package reactive

// Memo evaluates expr once and again whenever it changes, and returns a
// tracked accessor for the latest result. Observers reading the accessor
// re-run only when the result is not identical to the previous one.
func Memo[T any](expr Expression[T]) func() T {
	if expr.IsStatic() {
		value := Get(expr)
		return func() T { return value }
	}

	var sig *Signal[T]
	Watch(expr, func(value T) {
		if sig == nil {
			sig = NewSignal(value)
			return
		}
		sig.Set(value)
	})
	return sig.Get
}
