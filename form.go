package jsonforms

import (
	"github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/zhibinjin/jsonforms/schema"
)

// Form owns one compiled field tree: compile once, attach editors, then move
// values and errors in and out. A form is single-threaded; every operation
// runs to completion before another may observe the tree.
type Form struct {
	id   string
	root Node
	tree *treeState
}

// Option configures a form at construction.
type Option func(*treeState)

// WithActivation registers the presentation callback that receives
// availability diffs whenever a group's active-child set changes.
func WithActivation(fn ActivationFunc) Option {
	return func(t *treeState) { t.activation = fn }
}

// New compiles the schema into a field tree. The schema is normalized in
// place. Structural problems surface as SchemaError.
func New(s *schema.Schema, opts ...Option) (*Form, error) {
	s.Normalize()
	t := &treeState{id: uuid.NewString()}
	for _, o := range opts {
		o(t)
	}
	root, err := compileNode(t, s, "", "", nil, "")
	if err != nil {
		return nil, err
	}
	return &Form{id: t.id, root: root, tree: t}, nil
}

// ID is the form instance identifier; widget ids are ID-prefixed so several
// live forms never collide.
func (f *Form) ID() string { return f.id }

// Root returns the tree root.
func (f *Form) Root() Node { return f.root }

// Attach instantiates an editor for every leaf field using reg, wires change
// bubbling and runs one structural availability pass. Values cannot be read
// or written before Attach.
func (f *Form) Attach(reg *Registry) error { return Attach(f.root, reg) }

// Value extracts the form's current JSON value.
func (f *Form) Value(opt GetOpt) (any, error) { return GetValue(f.root, opt) }

// Apply injects a JSON value into the form.
func (f *Form) Apply(v any, opt SetOpt) error { return SetValue(f.root, v, opt) }

// ValueJSON is Value encoded with the module's JSON codec.
func (f *Form) ValueJSON(opt GetOpt) ([]byte, error) {
	v, err := f.Value(opt)
	if err != nil {
		return nil, err
	}
	return json.Marshal(v)
}

// ApplyJSON decodes data and applies it.
func (f *Form) ApplyJSON(data []byte, opt SetOpt) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	return f.Apply(v, opt)
}

// Resolve addresses a node by JSON Pointer.
func (f *Form) Resolve(pointer string) (Node, error) { return Resolve(f.root, pointer) }

// SetErrors routes externally-produced findings onto the tree.
func (f *Form) SetErrors(errs []FieldError) error { return SetErrors(f.root, errs) }

// ClearErrors clears every routed message.
func (f *Form) ClearErrors() { ClearErrors(f.root) }

// Attach wires editors into a tree built with Compile. Form.Attach is the
// usual entry point; this one serves callers who manage trees directly.
func Attach(root Node, reg *Registry) error {
	t := root.base().tree
	t.registry = reg
	if err := attachNode(t, root); err != nil {
		return err
	}
	t.attached = true
	reevaluateAll(root)
	return nil
}

// attachNode creates editors for every leaf in n's subtree. Also used when
// items are inserted into an already-attached tree.
func attachNode(t *treeState, n Node) error {
	var firstErr error
	Walk(n, func(m Node) bool {
		leaf, ok := m.(*LeafField)
		if !ok || leaf.editor != nil || firstErr != nil {
			return firstErr == nil
		}
		kind := InferEditorKind(leaf.schema, t.registry)
		ed, err := t.registry.New(kind, EditorConfig{
			ID:     widgetID(t, leaf),
			Schema: leaf.schema,
		})
		if err != nil {
			firstErr = err
			return false
		}
		leaf.editorKind = kind
		leaf.editor = ed
		ed.OnChange(func() { bubble(leaf) })
		return true
	})
	return firstErr
}

func widgetID(t *treeState, n Node) string {
	if t.id == "" {
		return n.Path()
	}
	return t.id + "/" + n.Path()
}

// reevaluateAll runs a structural pass over every group, top-down.
func reevaluateAll(root Node) {
	Walk(root, func(n Node) bool {
		if g, ok := n.(*ObjectGroup); ok {
			g.Reevaluate("")
		}
		return true
	})
}
