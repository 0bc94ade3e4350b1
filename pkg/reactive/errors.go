package reactive

import (
	rerrors "github.com/vango-dev/reactor/internal/errors"
)

// ErrNoCapture is the panic value raised when a teardown hook is registered
// inside Nocapture. Compare with errors.Is.
var ErrNoCapture error = rerrors.New("E003")

// ErrRunaway is the panic value raised when an observer exceeds its rerun
// budget. Compare with errors.Is.
var ErrRunaway error = rerrors.New("E006")

// errBatchAborted is reported to instrumentation when a batch ends by panic.
var errBatchAborted = rerrors.Newf(rerrors.CategoryRuntime, "batch aborted by panic")
