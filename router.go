package jsonforms

import (
	"fmt"
	"strings"

	"github.com/goccy/go-json"
)

// ErrorFields names the pointer and message fields of raw validator output.
// The zero value selects the defaults, dataPath and message.
type ErrorFields struct {
	Pointer string
	Message string
}

func (f ErrorFields) withDefaults() ErrorFields {
	if f.Pointer == "" {
		f.Pointer = "dataPath"
	}
	if f.Message == "" {
		f.Message = "message"
	}
	return f
}

// DecodeErrors converts a raw JSON array of validator error objects into
// FieldErrors using the given field names.
func DecodeErrors(data []byte, fields ErrorFields) (FieldErrors, error) {
	fields = fields.withDefaults()
	var raw []map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("jsonforms: decode errors: %w", err)
	}
	out := make(FieldErrors, 0, len(raw))
	for _, obj := range raw {
		ptr, _ := obj[fields.Pointer].(string)
		msg, _ := obj[fields.Message].(string)
		out = append(out, FieldError{Pointer: ptr, Message: msg})
	}
	return out, nil
}

// SetErrors routes findings onto the tree. Findings are grouped by pointer
// (an empty pointer addresses the root) and a pointer with several findings
// gets one combined message, in input order. Resolution happens for every
// group before any message is attached, so an unresolvable pointer leaves the
// tree untouched and surfaces as PointerError.
func SetErrors(root Node, errs []FieldError) error {
	var order []string
	grouped := map[string][]string{}
	for _, e := range errs {
		ptr := e.Pointer
		if ptr == "" {
			ptr = "/"
		}
		if _, seen := grouped[ptr]; !seen {
			order = append(order, ptr)
		}
		grouped[ptr] = append(grouped[ptr], e.Message)
	}
	targets := make([]Node, len(order))
	for i, ptr := range order {
		n, err := Resolve(root, ptr)
		if err != nil {
			return err
		}
		targets[i] = n
	}
	for i, ptr := range order {
		targets[i].SetError(strings.Join(grouped[ptr], "; "))
	}
	return nil
}

// ClearErrors removes the attached message from every node under root.
func ClearErrors(root Node) {
	Walk(root, func(n Node) bool {
		n.ClearError()
		return true
	})
}
