// Package fuzz checks the keyed list reconciler against a naive reference
// and measures it.
//
// Run drives one reactive.MapArray through random list transitions and
// verifies after each one that:
//
//   - the outputs follow the new inputs in order
//   - every index accessor reports its position
//   - no output is used twice
//   - exactly the dropped outputs were disposed, each once
//   - the number of created and disposed outputs is the minimum, as
//     computed by Reconcile
//
// Which duplicate inputs get paired may differ from Reconcile, which always
// pairs leftmost occurrences. Such transitions are counted as divergent but
// are not failures.
//
// Bench times the reconciler on large lists for a set of common edits.
package fuzz
