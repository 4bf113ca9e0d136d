// Package editors provides in-memory reference implementations of the
// jsonforms Editor capability: enough to run a form headless and to test the
// core against real get/set/change-notify behavior. A presentation layer
// would supply its own registry with the same kinds.
package editors

import (
	"fmt"
	"reflect"
	"time"

	jsonforms "github.com/zhibinjin/jsonforms"
)

// Default returns a registry with every editor kind of this package bound.
func Default() *jsonforms.Registry {
	r := jsonforms.NewRegistry()
	r.Register(jsonforms.EditorText, NewText)
	r.Register("textarea", NewText)
	r.Register(jsonforms.EditorCheckbox, NewCheckbox)
	r.Register(jsonforms.EditorSelect, NewSelect)
	r.Register(jsonforms.EditorDatePicker, NewDatePicker)
	r.Register("hidden", NewHidden)
	r.Register("upload", NewUploader)
	return r
}

// valueEditor holds the state every in-memory editor shares.
type valueEditor struct {
	value     any
	hidden    bool
	listeners []func()
}

func (e *valueEditor) Value() any         { return e.value }
func (e *valueEditor) Hidden() bool       { return e.hidden }
func (e *valueEditor) OnChange(fn func()) { e.listeners = append(e.listeners, fn) }

func (e *valueEditor) set(v any) {
	e.value = v
	for _, fn := range e.listeners {
		fn()
	}
}

// Text stores any scalar as-is.
type Text struct{ valueEditor }

func NewText(cfg jsonforms.EditorConfig) (jsonforms.Editor, error) {
	t := &Text{}
	t.value = cfg.Schema.Default
	return t, nil
}

func (t *Text) SetValue(v any) error {
	t.set(v)
	return nil
}

// Hidden is a text editor whose widget bypasses label wrapping.
type Hidden struct{ Text }

func NewHidden(cfg jsonforms.EditorConfig) (jsonforms.Editor, error) {
	h := &Hidden{}
	h.value = cfg.Schema.Default
	h.hidden = true
	return h, nil
}

// Checkbox accepts bool or null only.
type Checkbox struct {
	valueEditor
	id string
}

func NewCheckbox(cfg jsonforms.EditorConfig) (jsonforms.Editor, error) {
	c := &Checkbox{id: cfg.ID}
	c.value = cfg.Schema.Default
	return c, nil
}

func (c *Checkbox) SetValue(v any) error {
	switch v.(type) {
	case nil, bool:
		c.set(v)
		return nil
	default:
		return &jsonforms.InvalidValueError{Path: c.id, Value: v}
	}
}

// Select only accepts members of its option set; anything else fails with
// InvalidValueError, never a silent coercion.
type Select struct {
	valueEditor
	id      string
	options []any
	labels  []string
}

func NewSelect(cfg jsonforms.EditorConfig) (jsonforms.Editor, error) {
	s := &Select{
		id:      cfg.ID,
		options: cfg.Schema.Enum,
		labels:  cfg.Schema.OptionLabels,
	}
	s.value = cfg.Schema.Default
	return s, nil
}

func (s *Select) SetValue(v any) error {
	if v == nil {
		s.set(nil)
		return nil
	}
	for _, opt := range s.options {
		if optionEqual(opt, v) {
			s.set(opt)
			return nil
		}
	}
	return &jsonforms.InvalidValueError{Path: s.id, Value: v}
}

// Label returns the optionLabels entry for the current selection.
func (s *Select) Label() string {
	for i, opt := range s.options {
		if optionEqual(opt, s.value) && i < len(s.labels) {
			return s.labels[i]
		}
	}
	return ""
}

func optionEqual(a, b any) bool {
	if fa, ok := asFloat(a); ok {
		fb, ok2 := asFloat(b)
		return ok2 && fa == fb
	}
	return reflect.DeepEqual(a, b)
}

func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case float64:
		return n, true
	default:
		return 0, false
	}
}

// DatePicker stores dates in the wire layout 2006-01-02. time.Time values
// are formatted on the way in.
type DatePicker struct {
	valueEditor
	id string
}

const dateLayout = "2006-01-02"

func NewDatePicker(cfg jsonforms.EditorConfig) (jsonforms.Editor, error) {
	d := &DatePicker{id: cfg.ID}
	d.value = cfg.Schema.Default
	return d, nil
}

func (d *DatePicker) SetValue(v any) error {
	switch t := v.(type) {
	case nil:
		d.set(nil)
		return nil
	case string:
		if t == "" {
			d.set(nil)
			return nil
		}
		if _, err := time.Parse(dateLayout, t); err != nil {
			return fmt.Errorf("editors: bad date %q: %w", t, err)
		}
		d.set(t)
		return nil
	case time.Time:
		d.set(t.Format(dateLayout))
		return nil
	default:
		return &jsonforms.InvalidValueError{Path: d.id, Value: v}
	}
}
