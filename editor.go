package jsonforms

import (
	"github.com/zhibinjin/jsonforms/schema"
)

// Editor is the capability the core consumes from the presentation layer:
// get, set, change notification, and a hidden flag. The core is polymorphic
// over all editor kinds and adds no behavior beyond this contract.
type Editor interface {
	Value() any
	SetValue(v any) error
	// OnChange registers fn to be called synchronously whenever the editor's
	// value changes through user input or SetValue.
	OnChange(fn func())
	// Hidden editors bypass label/description wrapping in the presentation
	// layer. The core only carries the flag.
	Hidden() bool
}

// Built-in editor kind names. The compiler's inference table resolves leaf
// schemas without an explicit editor hint to one of these.
const (
	EditorText       = "text"
	EditorSelect     = "select"
	EditorCheckbox   = "checkbox"
	EditorDatePicker = "datepicker"
)

// CapDateInput is the capability a registry reports when the host has a
// native date input, making the datepicker fallback unnecessary.
const CapDateInput = "date-input"

// EditorConfig is handed to a factory when a leaf field is attached.
type EditorConfig struct {
	// ID is the stable widget identifier: the form instance id joined with
	// the field's path prefix.
	ID     string
	Schema *schema.Schema
}

// EditorFactory builds one editor instance for one leaf field. The field
// exclusively owns the returned editor; editor lifetime equals field
// lifetime.
type EditorFactory func(cfg EditorConfig) (Editor, error)

// Registry maps editor-kind names to factories and reports host input
// capabilities. It is passed explicitly into Attach so tests can substitute
// doubles.
type Registry struct {
	factories    map[string]EditorFactory
	capabilities map[string]bool
}

func NewRegistry() *Registry {
	return &Registry{
		factories:    map[string]EditorFactory{},
		capabilities: map[string]bool{},
	}
}

// Register binds kind to factory, replacing any previous binding.
func (r *Registry) Register(kind string, factory EditorFactory) {
	r.factories[kind] = factory
}

// SetCapability declares a host capability such as CapDateInput.
func (r *Registry) SetCapability(name string, ok bool) {
	r.capabilities[name] = ok
}

// HasCapability reports a declared host capability. Unknown names are false.
func (r *Registry) HasCapability(name string) bool {
	return r.capabilities[name]
}

// New instantiates an editor of the given kind.
func (r *Registry) New(kind string, cfg EditorConfig) (Editor, error) {
	factory, ok := r.factories[kind]
	if !ok {
		return nil, &SchemaError{Path: cfg.ID, Message: "no editor registered for kind " + kind}
	}
	return factory(cfg)
}

// InferEditorKind resolves the editor kind for a leaf schema. The check
// order is contract: explicit hint, enum, boolean, date format without a
// native date input, then plain text.
func InferEditorKind(s *schema.Schema, r *Registry) string {
	if s.Editor != "" {
		return s.Editor
	}
	if len(s.Enum) > 0 {
		return EditorSelect
	}
	if s.Type == "boolean" {
		return EditorCheckbox
	}
	if s.Format == "date" && (r == nil || !r.HasCapability(CapDateInput)) {
		return EditorDatePicker
	}
	return EditorText
}
