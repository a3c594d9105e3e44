package pipeline

import "errors"

// ErrEmptySource reports a source that yields no usable text after
// normalization. It is a client input problem, not a system fault, and the
// HTTP layer maps it accordingly.
var ErrEmptySource = errors.New("source contains no usable text")

// ReadError wraps a failure while reading the source tree.
type ReadError struct {
	Err error
}

func (e *ReadError) Error() string { return "read source: " + e.Err.Error() }
func (e *ReadError) Unwrap() error { return e.Err }

// WriteError wraps a failure while creating or appending to the output page.
// Writes are not transactional: when an append fails mid-run, a partial page
// already exists at the destination and is not rolled back.
type WriteError struct {
	Err error
}

func (e *WriteError) Error() string { return "write output: " + e.Err.Error() }
func (e *WriteError) Unwrap() error { return e.Err }
