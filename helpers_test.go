package jsonforms_test

import (
	"testing"

	jsonforms "github.com/zhibinjin/jsonforms"
	"github.com/zhibinjin/jsonforms/editors"
	"github.com/zhibinjin/jsonforms/schema"
)

func mustSchema(t *testing.T, doc string) *schema.Schema {
	t.Helper()
	s, err := schema.FromJSON([]byte(doc))
	if err != nil {
		t.Fatalf("schema: %v", err)
	}
	return s
}

// mustForm compiles doc without attaching editors.
func mustForm(t *testing.T, doc string, opts ...jsonforms.Option) *jsonforms.Form {
	t.Helper()
	form, err := jsonforms.New(mustSchema(t, doc), opts...)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	return form
}

// mustAttached compiles doc and attaches the reference editors.
func mustAttached(t *testing.T, doc string, opts ...jsonforms.Option) *jsonforms.Form {
	t.Helper()
	form := mustForm(t, doc, opts...)
	if err := form.Attach(editors.Default()); err != nil {
		t.Fatalf("attach: %v", err)
	}
	return form
}

func mustApply(t *testing.T, form *jsonforms.Form, v any) {
	t.Helper()
	if err := form.Apply(v, jsonforms.SetOpt{}); err != nil {
		t.Fatalf("apply: %v", err)
	}
}

func mustValue(t *testing.T, form *jsonforms.Form) any {
	t.Helper()
	v, err := form.Value(jsonforms.GetOpt{})
	if err != nil {
		t.Fatalf("value: %v", err)
	}
	return v
}

func mustResolve(t *testing.T, form *jsonforms.Form, ptr string) jsonforms.Node {
	t.Helper()
	n, err := form.Resolve(ptr)
	if err != nil {
		t.Fatalf("resolve %q: %v", ptr, err)
	}
	return n
}
