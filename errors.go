package jsonforms

import (
	"errors"
	"fmt"
	"strings"
)

// SchemaError reports a malformed or incomplete schema fragment. It is fatal
// at compile time and aborts tree construction.
type SchemaError struct {
	Path    string // JSON Pointer of the offending fragment (for example: /properties/age).
	Message string
}

func (e *SchemaError) Error() string {
	if e.Path == "" || e.Path == "/" {
		return "jsonforms: schema: " + e.Message
	}
	return fmt.Sprintf("jsonforms: schema at %s: %s", e.Path, e.Message)
}

// PointerError reports a JSON Pointer that cannot be resolved against the
// compiled tree.
type PointerError struct {
	Pointer string
	Message string
}

func (e *PointerError) Error() string {
	return fmt.Sprintf("jsonforms: pointer %q: %s", e.Pointer, e.Message)
}

// NotRenderedError reports value access on a node whose editor has not been
// attached yet, or on a node that has been detached from its tree. Editors
// are required before values can be read or written.
type NotRenderedError struct {
	Path string
}

func (e *NotRenderedError) Error() string {
	return fmt.Sprintf("jsonforms: node %q is not rendered", e.Path)
}

// InvalidValueError reports a value handed to a selection editor that is not
// a member of its option set. The core never coerces an invalid selection.
type InvalidValueError struct {
	Path  string
	Value any
}

func (e *InvalidValueError) Error() string {
	return fmt.Sprintf("jsonforms: invalid value %v for %q", e.Value, e.Path)
}

// FieldError is a single externally-produced validation finding addressed by
// JSON Pointer. The core does not produce these itself; it only routes them
// onto nodes.
type FieldError struct {
	Pointer string
	Message string
}

// FieldErrors is a collection of findings that implements error.
type FieldErrors []FieldError

// Error summarizes the first few entries.
func (fe FieldErrors) Error() string {
	if len(fe) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	lim := len(fe)
	if lim > maxShown {
		lim = maxShown
	}
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		fmt.Fprintf(b, "%s at %s", fe[i].Message, fe[i].Pointer)
	}
	if len(fe) > lim {
		fmt.Fprintf(b, "; ... (total %d)", len(fe))
	}
	return b.String()
}

// AsFieldErrors extracts FieldErrors from an error chain.
func AsFieldErrors(err error) (FieldErrors, bool) {
	if err == nil {
		return nil, false
	}
	var fe FieldErrors
	if errors.As(err, &fe) {
		return fe, true
	}
	return nil, false
}

// IsNotRendered reports whether err means an editor was missing or detached.
func IsNotRendered(err error) bool {
	var nr *NotRenderedError
	return errors.As(err, &nr)
}
