package csv2yolo

import (
	"fmt"
	"strings"
)

// Split names a partition of the dataset. It is used as a subdirectory name below images/ and
// labels/.
type Split string

// The splits of a typical training run. Other names may be assigned by the caller.
const (
	Train Split = "train"
	Val   Split = "val"
)

// Validate checks that s can be used as a single path element.
func (s Split) Validate() error {
	switch {
	case s == "":
		return fmt.Errorf("empty split name")
	case s == "." || s == "..":
		return fmt.Errorf("invalid split name %q", string(s))
	case strings.ContainsAny(string(s), `/\`):
		return fmt.Errorf("split name %q contains a path separator", string(s))
	}
	return nil
}
