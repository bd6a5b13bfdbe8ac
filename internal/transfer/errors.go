package transfer

import (
	"errors"
	"fmt"
)

// ErrCopyFailed is matched by every CopyError.
var ErrCopyFailed = errors.New("copy strategies exhausted")

// ErrUnconfirmed is recorded when a strategy reported success but the
// directory listing does not show the destination.
var ErrUnconfirmed = errors.New("destination not confirmed by directory listing")

// CopyError reports a transfer whose destination never appeared.
type CopyError struct {
	Source string
	Dest   string
	// Stage is the last strategy attempted.
	Stage Stage
	Err   error
}

func (e *CopyError) Error() string {
	return fmt.Sprintf("copy %s -> %s failed at stage %s: %v", e.Source, e.Dest, e.Stage, e.Err)
}

func (e *CopyError) Unwrap() []error {
	return []error{ErrCopyFailed, e.Err}
}
