package csv2yolo

import (
	"log"
)

// DiagnosticKind classifies a Diagnostic.
type DiagnosticKind int

// The diagnostic kinds.
const (
	// TableRead reports the number of rows read from a table.
	TableRead DiagnosticKind = iota
	// MissingImageWarning reports an image that is absent from the image directory of its split.
	// The image group is skipped.
	MissingImageWarning
	// UnknownClassWarning reports a class name that is not in the class index. The box is skipped.
	UnknownClassWarning
	// LabelsMapped reports the number of rows whose class name was changed by label mappings.
	LabelsMapped
)

func (k DiagnosticKind) String() string {
	switch k {
	case TableRead:
		return "table read"
	case MissingImageWarning:
		return "missing image"
	case UnknownClassWarning:
		return "unknown class"
	case LabelsMapped:
		return "labels mapped"
	}
	return "unknown"
}

// Diagnostic is an advisory event emitted during conversion.
type Diagnostic struct {
	Kind     DiagnosticKind
	Split    Split
	Path     string // The table (TableRead) or image directory (MissingImageWarning).
	Filename string // The image file name, if any.
	Class    string // The class name (UnknownClassWarning).
	Rows     int    // The number of rows (TableRead, LabelsMapped).
}

// Observer receives diagnostics.
type Observer interface {
	Observe(d Diagnostic)
}

// ObserverFunc adapts a function to the Observer interface.
type ObserverFunc func(d Diagnostic)

// Observe calls f(d).
func (f ObserverFunc) Observe(d Diagnostic) { f(d) }

// LogObserver writes diagnostics as human readable lines to a logger.
type LogObserver struct {
	Logger *log.Logger // Uses the standard logger if nil.
}

// Observe logs d.
func (o LogObserver) Observe(d Diagnostic) {
	printf := log.Printf
	if o.Logger != nil {
		printf = o.Logger.Printf
	}

	switch d.Kind {
	case TableRead:
		printf("Processing %s: %d rows", d.Path, d.Rows)
	case MissingImageWarning:
		printf("WARNING: image not found for %s in %s, skipping", d.Filename, d.Path)
	case UnknownClassWarning:
		printf("WARNING: class %q of %s not in the class index, skipping", d.Class, d.Filename)
	case LabelsMapped:
		printf("The label mappings changed %d labels", d.Rows)
	default:
		printf("%v: %+v", d.Kind, d)
	}
}
