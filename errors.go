package csv2yolo

import (
	"fmt"
)

// MalformedInputError reports an annotation table that is missing required columns or cannot be
// parsed. It aborts the run.
type MalformedInputError struct {
	Path string // The table file, or a descriptive name for in-memory input.
	Line int    // The 1-based line in the table, or zero if not applicable.
	Err  error
}

func (e *MalformedInputError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("malformed input %q, line %d: %v", e.Path, e.Line, e.Err)
	}
	return fmt.Sprintf("malformed input %q: %v", e.Path, e.Err)
}

// Cause returns the underlying error for errors.Cause.
func (e *MalformedInputError) Cause() error { return e.Err }

func (e *MalformedInputError) Unwrap() error { return e.Err }

// DestinationWriteError reports a failure to create a directory, copy an image or write a label
// below the output directory. It aborts the run.
type DestinationWriteError struct {
	Op   string // "mkdir", "copy" or "write".
	Path string
	Err  error
}

func (e *DestinationWriteError) Error() string {
	return fmt.Sprintf("cannot %s %q: %v", e.Op, e.Path, e.Err)
}

// Cause returns the underlying error for errors.Cause.
func (e *DestinationWriteError) Cause() error { return e.Err }

func (e *DestinationWriteError) Unwrap() error { return e.Err }
