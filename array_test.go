package jsonforms_test

import (
	"math/rand"
	"strconv"
	"testing"

	jsonforms "github.com/zhibinjin/jsonforms"
)

const listDoc = `{
	"type": "object",
	"properties": {
		"rows": {
			"type": "array",
			"items": {
				"type": "object",
				"properties": {"v": {"type": "string"}}
			}
		}
	}
}`

func listOf(t *testing.T, form *jsonforms.Form) *jsonforms.ArrayList {
	t.Helper()
	return form.Root().(*jsonforms.ObjectGroup).Child("rows").(*jsonforms.ArrayList)
}

func checkIndexInvariant(t *testing.T, list *jsonforms.ArrayList) {
	t.Helper()
	for i, it := range list.Items() {
		if it.Index() != i {
			t.Fatalf("items[%d].Index() == %d", i, it.Index())
		}
		if it.Name() != strconv.Itoa(i) {
			t.Fatalf("items[%d].Name() == %q", i, it.Name())
		}
		if got, want := it.Path(), "rows/"+strconv.Itoa(i); got != want {
			t.Fatalf("items[%d].Path() == %q, want %q", i, got, want)
		}
	}
}

func TestArray_RandomizedOpsKeepIndexInvariant(t *testing.T) {
	form := mustAttached(t, listDoc)
	list := listOf(t, form)
	rng := rand.New(rand.NewSource(42))

	for step := 0; step < 500; step++ {
		switch op := rng.Intn(4); {
		case op == 0 || list.Len() == 0:
			if _, err := list.Insert(rng.Intn(list.Len() + 1)); err != nil {
				t.Fatalf("step %d insert: %v", step, err)
			}
		case op == 1:
			items := list.Items()
			if err := list.Remove(items[rng.Intn(len(items))]); err != nil {
				t.Fatalf("step %d remove: %v", step, err)
			}
		case op == 2:
			items := list.Items()
			if err := list.MoveUp(items[rng.Intn(len(items))]); err != nil {
				t.Fatalf("step %d moveUp: %v", step, err)
			}
		default:
			items := list.Items()
			if err := list.MoveDown(items[rng.Intn(len(items))]); err != nil {
				t.Fatalf("step %d moveDown: %v", step, err)
			}
		}
		checkIndexInvariant(t, list)
	}
}

func TestArray_MoveBoundariesAreNoOps(t *testing.T) {
	form := mustAttached(t, listDoc)
	list := listOf(t, form)

	only, err := list.Append()
	if err != nil {
		t.Fatalf("append: %v", err)
	}
	if err := list.Remove(only); err != nil {
		t.Fatalf("remove: %v", err)
	}
	// A freshly re-added single item hits both boundaries; both moves are
	// silent no-ops.
	fresh, err := list.Append()
	if err != nil {
		t.Fatalf("append: %v", err)
	}
	if err := list.MoveUp(fresh); err != nil {
		t.Fatalf("moveUp on single item: %v", err)
	}
	if err := list.MoveDown(fresh); err != nil {
		t.Fatalf("moveDown on single item: %v", err)
	}
	checkIndexInvariant(t, list)

	second, err := list.Append()
	if err != nil {
		t.Fatalf("append: %v", err)
	}
	if err := list.MoveUp(list.Items()[0]); err != nil {
		t.Fatalf("moveUp on first item: %v", err)
	}
	if err := list.MoveDown(second); err != nil {
		t.Fatalf("moveDown on last item: %v", err)
	}
	if list.Items()[0] != fresh || list.Items()[1] != second {
		t.Fatalf("boundary moves must not reorder")
	}
}

func TestArray_MovePreservesIdentityAndValues(t *testing.T) {
	form := mustAttached(t, listDoc)
	mustApply(t, form, map[string]any{"rows": []any{
		map[string]any{"v": "first"},
		map[string]any{"v": "second"},
	}})
	list := listOf(t, form)
	a, b := list.Items()[0], list.Items()[1]

	if err := list.MoveDown(a); err != nil {
		t.Fatalf("moveDown: %v", err)
	}
	if list.Items()[0] != b || list.Items()[1] != a {
		t.Fatalf("move must swap the same item objects")
	}
	checkIndexInvariant(t, list)

	got := mustValue(t, form).(map[string]any)["rows"].([]any)
	if got[0].(map[string]any)["v"] != "second" || got[1].(map[string]any)["v"] != "first" {
		t.Fatalf("values should follow the moved items, got %v", got)
	}
}

func TestArray_RemoveDetachesSubtree(t *testing.T) {
	form := mustAttached(t, listDoc)
	mustApply(t, form, map[string]any{"rows": []any{map[string]any{"v": "x"}}})
	list := listOf(t, form)
	item := list.Items()[0]
	inner := item.Inner()

	if err := list.Remove(item); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if item.Parent() != nil {
		t.Fatalf("removed item must drop its parent reference")
	}
	if _, err := jsonforms.GetValue(inner, jsonforms.GetOpt{}); !jsonforms.IsNotRendered(err) {
		t.Fatalf("detached subtree access should fail, got %v", err)
	}
	if err := list.Remove(item); !jsonforms.IsNotRendered(err) {
		t.Fatalf("second remove should fail as detached, got %v", err)
	}
}

func TestArray_InsertEvaluatesAvailabilityFromDefaults(t *testing.T) {
	form := mustAttached(t, `{
		"type": "object",
		"properties": {
			"rows": {
				"type": "array",
				"items": {
					"type": "object",
					"properties": {
						"kind":  {"type": "string", "default": "x"},
						"extra": {"type": "string", "availableIf": {"kind": "x"}}
					}
				}
			}
		}
	}`)
	list := form.Root().(*jsonforms.ObjectGroup).Child("rows").(*jsonforms.ArrayList)

	item, err := list.Append()
	if err != nil {
		t.Fatalf("append: %v", err)
	}
	group := item.Inner().(*jsonforms.ObjectGroup)
	if v, err := jsonforms.GetValue(group.Child("kind"), jsonforms.GetOpt{}); err != nil || v != "x" {
		t.Fatalf("kind default not applied: %v %v", v, err)
	}
	// The editor default already satisfies the condition; the item must not
	// wait for a later change to notice.
	if !group.IsActive("extra") {
		t.Fatalf("extra should be active right after insert")
	}
}

func TestArray_StructuralNotificationBubbles(t *testing.T) {
	form := mustAttached(t, listDoc)
	list := listOf(t, form)

	var origins []jsonforms.Node
	form.Root().Subscribe(func(origin jsonforms.Node) {
		origins = append(origins, origin)
	})
	if _, err := list.Append(); err != nil {
		t.Fatalf("append: %v", err)
	}
	if len(origins) != 1 || origins[0] != jsonforms.Node(list) {
		t.Fatalf("structural change should bubble once from the list, got %v", origins)
	}
}
