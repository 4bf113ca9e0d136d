package jsonforms_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	jsonforms "github.com/zhibinjin/jsonforms"
)

func TestSetErrors_GroupsAndCombines(t *testing.T) {
	form := mustForm(t, nestedDoc)
	err := form.SetErrors([]jsonforms.FieldError{
		{Pointer: "/name", Message: "too short"},
		{Pointer: "/home/city", Message: "unknown city"},
		{Pointer: "/name", Message: "must not contain digits"},
	})
	if err != nil {
		t.Fatalf("set errors: %v", err)
	}
	name := mustResolve(t, form, "/name")
	if got := name.ErrorMessage(); got != "too short; must not contain digits" {
		t.Fatalf("combined message mismatch: %q", got)
	}
	city := mustResolve(t, form, "/home/city")
	if got := city.ErrorMessage(); got != "unknown city" {
		t.Fatalf("city message mismatch: %q", got)
	}
}

func TestSetErrors_EmptyPointerIsRoot(t *testing.T) {
	form := mustForm(t, nestedDoc)
	if err := form.SetErrors([]jsonforms.FieldError{{Pointer: "", Message: "broken"}}); err != nil {
		t.Fatalf("set errors: %v", err)
	}
	if got := form.Root().ErrorMessage(); got != "broken" {
		t.Fatalf("root message mismatch: %q", got)
	}
}

func TestSetErrors_UnresolvableLeavesTreeUntouched(t *testing.T) {
	form := mustForm(t, nestedDoc)
	err := form.SetErrors([]jsonforms.FieldError{
		{Pointer: "/name", Message: "bad"},
		{Pointer: "/nope", Message: "lost"},
	})
	var pe *jsonforms.PointerError
	if !errors.As(err, &pe) {
		t.Fatalf("expected PointerError, got %v", err)
	}
	if got := mustResolve(t, form, "/name").ErrorMessage(); got != "" {
		t.Fatalf("no message may be attached when routing fails, got %q", got)
	}
}

func TestClearErrors(t *testing.T) {
	form := mustForm(t, nestedDoc)
	if err := form.SetErrors([]jsonforms.FieldError{
		{Pointer: "/name", Message: "bad"},
		{Pointer: "/home/city", Message: "bad"},
	}); err != nil {
		t.Fatalf("set errors: %v", err)
	}
	form.ClearErrors()
	jsonforms.Walk(form.Root(), func(n jsonforms.Node) bool {
		if n.ErrorMessage() != "" {
			t.Fatalf("node %q still carries a message", n.Path())
		}
		return true
	})
}

func TestDecodeErrors(t *testing.T) {
	raw := []byte(`[
		{"dataPath": "/name", "message": "too short"},
		{"dataPath": "", "message": "broken"}
	]`)
	got, err := jsonforms.DecodeErrors(raw, jsonforms.ErrorFields{})
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	want := jsonforms.FieldErrors{
		{Pointer: "/name", Message: "too short"},
		{Pointer: "", Message: "broken"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("default fields (-want +got):\n%s", diff)
	}

	rawCustom := []byte(`[{"instancePath": "/x", "error": "nope"}]`)
	got, err = jsonforms.DecodeErrors(rawCustom, jsonforms.ErrorFields{Pointer: "instancePath", Message: "error"})
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	want = jsonforms.FieldErrors{{Pointer: "/x", Message: "nope"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("custom fields (-want +got):\n%s", diff)
	}
}

func TestFieldErrors_Summary(t *testing.T) {
	fe := jsonforms.FieldErrors{
		{Pointer: "/a", Message: "m1"},
		{Pointer: "/b", Message: "m2"},
		{Pointer: "/c", Message: "m3"},
		{Pointer: "/d", Message: "m4"},
	}
	if fe.Error() == "" {
		t.Fatalf("expected a non-empty summary")
	}
}
