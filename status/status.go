// Package status defines the small closed set of failure categories
// shared by the loader, the distance kernel and the driver (spec.md
// §7). It plays the same role as the teacher's detour.Status bit
// flags, reexpressed as a Go sentinel-error type instead of a bitmask
// since the taxonomy here has no need for combinable flags.
package status

import "fmt"

// Kind classifies why an operation failed.
type Kind int

const (
	// BadFilename means the input path could not be opened.
	BadFilename Kind = iota
	// BadFF means format autodetection failed, or the format was
	// recognized but is not supported (e.g. PLY).
	BadFF
	// Corrupted means the tokenizer was exhausted unexpectedly, or
	// found non-numeric input where a number was expected.
	Corrupted
	// NotTriag means a face with more than 3 vertices was encountered.
	NotTriag
	// ModelError means a vertex index was out of range, a normal count
	// didn't match, header counts were bogus, or a mesh had no
	// triangles close enough to resolve a query.
	ModelError
	// NoMem means an allocation failed.
	NoMem
	// NumericAbort means the distance kernel encountered a NaN or
	// infinite distance and aborted the computation.
	NumericAbort
)

func (k Kind) String() string {
	switch k {
	case BadFilename:
		return "bad filename"
	case BadFF:
		return "bad file format"
	case Corrupted:
		return "corrupted input"
	case NotTriag:
		return "not a triangle"
	case ModelError:
		return "model error"
	case NoMem:
		return "out of memory"
	case NumericAbort:
		return "numeric abort"
	default:
		return "unknown error"
	}
}

// Error is a short, one-line diagnostic carrying a Kind (spec.md §7:
// "each error kind carries a short diagnostic suitable for a one-line
// log entry; line/column information is not required").
type Error struct {
	Kind Kind
	Msg  string
}

func (e *Error) Error() string {
	if e.Msg == "" {
		return e.Kind.String()
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

// Is reports whether err's Kind matches target's Kind, enabling
// errors.Is(err, &status.Error{Kind: status.ModelError}) style checks.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

// Errf builds an *Error of the given kind with a formatted message.
func Errf(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}
