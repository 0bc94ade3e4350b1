// Package errors provides structured, coded errors for reactor.
//
// Every contract violation and tool failure has a registered code that maps
// to a category, a short message and a longer explanation:
//
//	E001  view boundary incomplete after construction
//	E002  boundary owner registered twice in one scope
//	E003  teardown hook registered where capture is disabled
//	E004  no platform available in the current context
//	E006  observer exceeded its rerun budget
//	E101  invalid configuration
//	E102  report sink failure
//	E103  reconciler fuzz mismatch
//
// Errors created from the same code compare equal with errors.Is, so
// package-level sentinels can be matched against errors that carry extra
// detail:
//
//	err := errors.New("E003").WithDetail("hook registered inside Nocapture")
//	stderrors.Is(err, reactive.ErrNoCapture) // true
//
// Format renders an error for terminals; FormatCompact and FormatJSON are
// used by logs and reports.
package errors
