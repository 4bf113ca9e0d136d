// Package jsonforms compiles a JSON Schema document into a live,
// hierarchical field tree: leaf fields, object groups, array lists and array
// items that produce a JSON value from editor state, accept a JSON value to
// populate editors, carry validation messages addressed by JSON Pointer, and
// hide or show subtrees from cross-field availableIf conditions.
//
// The package provides:
//
// - Schema-to-node compilation with a fixed editor-kind inference table
// - RFC 6901 pointer addressing with transparent array-item skipping
// - A dependency engine recomputing group availability on sibling changes
// - Value extraction/injection with null-pruning and serialize hooks
// - Ordered list mutation that preserves node identity across reorders
// - Routing of externally produced validation errors onto nodes
//
// Design policy:
// - The core never renders, validates data, or performs I/O; editors are an
//   external capability (see Editor) supplied through a Registry.
// - Reference editor implementations live under editors/, schema loading
//   under schema/, value-transform hooks under codec/, and the optional
//   validator integration under validate/.
// - All operations are synchronous and single-threaded per form instance.
//
// Typical usage:
//
//	s, err := schema.FromJSON(doc)
//	form, err := jsonforms.New(s)
//	err = form.Attach(editors.Default())
//	err = form.Apply(map[string]any{"name": "Ann"}, jsonforms.SetOpt{})
//	v, err := form.Value(jsonforms.GetOpt{})
package jsonforms
