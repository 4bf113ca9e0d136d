package jsonforms

import (
	"fmt"
	"reflect"
)

// Reevaluate recomputes which of the group's children are available. origin
// names the direct child a change notification bubbled through; an empty
// origin forces a structural pass (used after bulk value application).
//
// When origin is given and no child's availableIf references it, nothing
// happens: no recomputation, no activation callback. Callers may rely on the
// absence of notifications in that case. A re-evaluation already in progress
// for this group suppresses nested requests.
//
// The returned diff is in declaration order.
func (g *ObjectGroup) Reevaluate(origin string) (added, removed []Node) {
	if g.evaluating {
		return nil, nil
	}
	if origin != "" && !g.dependsOn(origin) {
		return nil, nil
	}
	g.evaluating = true
	defer func() { g.evaluating = false }()

	next := g.computeActive()
	for _, name := range g.order {
		was, now := g.active[name], next[name]
		switch {
		case now && !was:
			added = append(added, g.children[name])
		case was && !now:
			removed = append(removed, g.children[name])
		}
	}
	g.active = next
	if (len(added) > 0 || len(removed) > 0) && g.tree.activation != nil {
		g.tree.activation(g, added, removed)
	}
	return added, removed
}

// dependsOn reports whether any child's condition references name.
func (g *ObjectGroup) dependsOn(name string) bool {
	for _, cond := range g.conditions {
		if cond.key == name {
			return true
		}
	}
	return false
}

// computeActive evaluates every child's availability predicate in declaration
// order. Sibling values are fetched freshly during the pass and availability
// decided earlier in the same pass is visible to later children, so chained
// dependencies settle in one pass. A sibling declared later keeps its
// previous state until its own turn, and a currently-inactive sibling
// contributes an undefined value rather than an error.
func (g *ObjectGroup) computeActive() map[string]bool {
	active := make(map[string]bool, len(g.order))
	for name, on := range g.active {
		active[name] = on
	}
	for _, name := range g.order {
		cond := g.conditions[name]
		if cond == nil {
			active[name] = true
			continue
		}
		var value any
		defined := false
		if active[cond.key] {
			if v, err := GetValue(g.children[cond.key], GetOpt{}); err == nil {
				value, defined = v, true
			}
		}
		active[name] = cond.met(g.children[name], value, defined)
	}
	return active
}

// met decides one availability predicate. child is the node being gated;
// value is the referenced sibling's current value (undefined when !defined).
func (c *condition) met(child Node, value any, defined bool) bool {
	if c.re != nil {
		return c.re.MatchString(stringifyValue(value))
	}
	if child.Schema().Type == "array" {
		seq, ok := value.([]any)
		if !ok {
			return false
		}
		for _, el := range seq {
			if looseEqual(el, c.test) {
				return true
			}
		}
		return false
	}
	if !defined {
		return false
	}
	return looseEqual(value, c.test)
}

// stringifyValue renders a value for pattern matching; null and undefined
// become the empty string.
func stringifyValue(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	default:
		return fmt.Sprint(t)
	}
}

// looseEqual is deep equality with numeric types unified, so a schema
// constant 5 matches an editor's float64(5).
func looseEqual(a, b any) bool {
	if fa, ok := toFloat(a); ok {
		fb, ok2 := toFloat(b)
		return ok2 && fa == fb
	}
	return reflect.DeepEqual(a, b)
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	default:
		return 0, false
	}
}
