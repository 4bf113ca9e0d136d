package jsonforms_test

import (
	"errors"
	"testing"

	jsonforms "github.com/zhibinjin/jsonforms"
	"github.com/zhibinjin/jsonforms/schema"
)

func TestCompile_VariantSelection(t *testing.T) {
	form := mustForm(t, `{
		"type": "object",
		"properties": {
			"name":  {"type": "string"},
			"tags":  {"type": "array", "items": {"type": "string"}},
			"home":  {"type": "object", "properties": {"city": {"type": "string"}}},
			"notes": {"type": "object", "editor": "textarea"}
		}
	}`)
	root, ok := form.Root().(*jsonforms.ObjectGroup)
	if !ok {
		t.Fatalf("root should be an object group, got %T", form.Root())
	}
	if _, ok := root.Child("name").(*jsonforms.LeafField); !ok {
		t.Fatalf("name should be a leaf, got %T", root.Child("name"))
	}
	if _, ok := root.Child("tags").(*jsonforms.ArrayList); !ok {
		t.Fatalf("tags should be a list, got %T", root.Child("tags"))
	}
	if _, ok := root.Child("home").(*jsonforms.ObjectGroup); !ok {
		t.Fatalf("home should be a group, got %T", root.Child("home"))
	}
	// An explicit editor hint wins over the object shape.
	if _, ok := root.Child("notes").(*jsonforms.LeafField); !ok {
		t.Fatalf("notes should be a leaf due to the editor hint, got %T", root.Child("notes"))
	}
}

func TestCompile_ChildrenKeepDeclarationOrder(t *testing.T) {
	form := mustForm(t, `{
		"type": "object",
		"properties": {
			"zebra": {"type": "string"},
			"alpha": {"type": "string"},
			"mike":  {"type": "string"}
		}
	}`)
	root := form.Root().(*jsonforms.ObjectGroup)
	want := []string{"zebra", "alpha", "mike"}
	children := root.Children()
	if len(children) != len(want) {
		t.Fatalf("expected %d children, got %d", len(want), len(children))
	}
	for i, n := range children {
		if n.Name() != want[i] {
			t.Fatalf("child %d: want %q, got %q", i, want[i], n.Name())
		}
	}
}

func TestCompile_MissingTypeFails(t *testing.T) {
	_, err := jsonforms.New(mustSchema(t, `{"type": "object", "properties": {"x": {"title": "no type"}}}`))
	var se *jsonforms.SchemaError
	if !errors.As(err, &se) {
		t.Fatalf("expected SchemaError, got %v", err)
	}
	if se.Path != "/properties/x" {
		t.Fatalf("unexpected error path %q", se.Path)
	}
}

func TestCompile_ArrayRequiresItems(t *testing.T) {
	_, err := jsonforms.New(mustSchema(t, `{"type": "array"}`))
	var se *jsonforms.SchemaError
	if !errors.As(err, &se) {
		t.Fatalf("expected SchemaError, got %v", err)
	}
}

func TestCompile_OptionLabelsContract(t *testing.T) {
	cases := map[string]string{
		"enum without labels": `{"type": "string", "enum": ["a", "b"]}`,
		"labels without enum": `{"type": "string", "optionLabels": ["A"]}`,
		"length mismatch":     `{"type": "string", "enum": ["a", "b"], "optionLabels": ["A"]}`,
	}
	for name, doc := range cases {
		if _, err := jsonforms.New(mustSchema(t, doc)); err == nil {
			t.Fatalf("%s: expected SchemaError", name)
		}
	}
	ok := `{"type": "string", "enum": ["a", "b"], "optionLabels": ["A", "B"]}`
	if _, err := jsonforms.New(mustSchema(t, ok)); err != nil {
		t.Fatalf("valid enum schema rejected: %v", err)
	}
}

func TestCompile_AvailableIfValidation(t *testing.T) {
	multi := `{
		"type": "object",
		"properties": {
			"a": {"type": "string"},
			"b": {"type": "string", "availableIf": {"a": "x", "c": "y"}}
		}
	}`
	if _, err := jsonforms.New(mustSchema(t, multi)); err == nil {
		t.Fatalf("multi-entry availableIf should fail compilation")
	}

	unknown := `{
		"type": "object",
		"properties": {
			"b": {"type": "string", "availableIf": {"nope": "x"}}
		}
	}`
	if _, err := jsonforms.New(mustSchema(t, unknown)); err == nil {
		t.Fatalf("availableIf referencing an unknown sibling should fail compilation")
	}

	badPattern := `{
		"type": "object",
		"properties": {
			"a": {"type": "string"},
			"b": {"type": "string", "availableIf": {"a": {"pattern": "("}}}
		}
	}`
	if _, err := jsonforms.New(mustSchema(t, badPattern)); err == nil {
		t.Fatalf("invalid availableIf pattern should fail compilation")
	}
}

func TestCompile_RequiredListNormalized(t *testing.T) {
	s := mustSchema(t, `{
		"type": "object",
		"required": ["name"],
		"properties": {
			"name": {"type": "string"},
			"age":  {"type": "integer"}
		}
	}`)
	if _, err := jsonforms.New(s); err != nil {
		t.Fatalf("compile: %v", err)
	}
	if !s.Properties["name"].IsRequired {
		t.Fatalf("name should carry the normalized required flag")
	}
	if s.Properties["age"].IsRequired {
		t.Fatalf("age should not be required")
	}
}

func TestInferEditorKind(t *testing.T) {
	native := jsonforms.NewRegistry()
	native.SetCapability(jsonforms.CapDateInput, true)

	cases := []struct {
		name string
		s    *schema.Schema
		reg  *jsonforms.Registry
		want string
	}{
		{"explicit hint wins", &schema.Schema{Type: "string", Editor: "wysiwyg", Enum: []any{"a"}}, nil, "wysiwyg"},
		{"enum", &schema.Schema{Type: "string", Enum: []any{"a"}}, nil, jsonforms.EditorSelect},
		{"boolean", &schema.Schema{Type: "boolean"}, nil, jsonforms.EditorCheckbox},
		{"date without native input", &schema.Schema{Type: "string", Format: "date"}, nil, jsonforms.EditorDatePicker},
		{"date with native input", &schema.Schema{Type: "string", Format: "date"}, native, jsonforms.EditorText},
		{"plain", &schema.Schema{Type: "string"}, nil, jsonforms.EditorText},
	}
	for _, tc := range cases {
		if got := jsonforms.InferEditorKind(tc.s, tc.reg); got != tc.want {
			t.Fatalf("%s: want %q, got %q", tc.name, tc.want, got)
		}
	}
}
