package jsonforms

import (
	"regexp"

	"github.com/zhibinjin/jsonforms/schema"
)

// Compile builds a detached field tree from a schema document. The schema is
// normalized first (object-level required lists pushed into children). Most
// callers want New, which wraps the tree in a Form; Compile exists for code
// that manages attachment and ids itself.
func Compile(s *schema.Schema) (Node, error) {
	s.Normalize()
	return compileNode(&treeState{}, s, "", "", nil, "")
}

// compileNode is the single compilation switch. Decision order is contract:
// explicit editor hint wins, then object, then array, then leaf.
func compileNode(t *treeState, s *schema.Schema, name, prefix string, parent Node, spath string) (Node, error) {
	if s == nil {
		return nil, &SchemaError{Path: spath, Message: "missing schema"}
	}
	if s.Type == "" {
		return nil, &SchemaError{Path: spath, Message: "missing type"}
	}
	if s.Editor != "" {
		return compileLeaf(t, s, name, prefix, parent, spath)
	}
	switch s.Type {
	case "object":
		return compileGroup(t, s, name, prefix, parent, spath)
	case "array":
		return compileList(t, s, name, prefix, parent, spath)
	default:
		return compileLeaf(t, s, name, prefix, parent, spath)
	}
}

func compileLeaf(t *treeState, s *schema.Schema, name, prefix string, parent Node, spath string) (*LeafField, error) {
	if err := checkOptionLabels(s, spath); err != nil {
		return nil, err
	}
	return &LeafField{baseNode: baseNode{
		name: name, pathPrefix: prefix, schema: s, parent: parent, tree: t,
	}}, nil
}

func compileGroup(t *treeState, s *schema.Schema, name, prefix string, parent Node, spath string) (*ObjectGroup, error) {
	if s.Serialize != nil || s.Deserialize != nil {
		return nil, &SchemaError{Path: spath, Message: "serialize/deserialize hooks are leaf-only"}
	}
	g := &ObjectGroup{
		baseNode: baseNode{
			name: name, pathPrefix: prefix, schema: s, parent: parent, tree: t,
		},
		children:   map[string]Node{},
		conditions: map[string]*condition{},
		active:     map[string]bool{},
	}
	g.order = s.Keys()
	own := g.Path()
	for _, childName := range g.order {
		childSchema := s.Properties[childName]
		childPath := spath + "/properties/" + childName
		child, err := compileNode(t, childSchema, childName, own, g, childPath)
		if err != nil {
			return nil, err
		}
		g.children[childName] = child
		if childSchema.AvailableIf != nil {
			cond, err := compileCondition(childSchema.AvailableIf, s.Properties, childPath+"/availableIf")
			if err != nil {
				return nil, err
			}
			g.conditions[childName] = cond
		}
	}
	// Initial active set: every child whose condition already holds with all
	// values undefined (no editors exist yet).
	g.active = g.computeActive()
	return g, nil
}

func compileList(t *treeState, s *schema.Schema, name, prefix string, parent Node, spath string) (*ArrayList, error) {
	if s.Serialize != nil || s.Deserialize != nil {
		return nil, &SchemaError{Path: spath, Message: "serialize/deserialize hooks are leaf-only"}
	}
	if s.Items == nil {
		return nil, &SchemaError{Path: spath, Message: "array schema requires an object items schema"}
	}
	// Validate the item schema eagerly so a broken items fragment fails at
	// compile time, not on first Insert.
	if _, err := compileNode(t, s.Items, "", "", nil, spath+"/items"); err != nil {
		return nil, err
	}
	return &ArrayList{
		baseNode: baseNode{
			name: name, pathPrefix: prefix, schema: s, parent: parent, tree: t,
		},
		itemSchema: s.Items,
	}, nil
}

// checkOptionLabels enforces the extension contract: optionLabels is required
// exactly when enum is present, one label per option.
func checkOptionLabels(s *schema.Schema, spath string) error {
	switch {
	case len(s.Enum) > 0 && len(s.OptionLabels) == 0:
		return &SchemaError{Path: spath, Message: "enum requires optionLabels"}
	case len(s.Enum) == 0 && len(s.OptionLabels) > 0:
		return &SchemaError{Path: spath, Message: "optionLabels requires enum"}
	case len(s.Enum) > 0 && len(s.Enum) != len(s.OptionLabels):
		return &SchemaError{Path: spath, Message: "optionLabels must match enum length"}
	}
	return nil
}

// compileCondition validates one availableIf mapping and pre-compiles its
// pattern form. A mapping with more than one entry and a reference to a name
// outside the sibling set are programmer errors caught here; everything else
// is left to evaluation time.
func compileCondition(av map[string]any, siblings map[string]*schema.Schema, spath string) (*condition, error) {
	if len(av) != 1 {
		return nil, &SchemaError{Path: spath, Message: "availableIf must have exactly one entry"}
	}
	var cond condition
	for k, v := range av {
		cond.key, cond.test = k, v
	}
	if _, ok := siblings[cond.key]; !ok {
		return nil, &SchemaError{Path: spath, Message: "availableIf references unknown sibling " + cond.key}
	}
	switch tv := cond.test.(type) {
	case *regexp.Regexp:
		cond.re = tv
	case map[string]any:
		// JSON spelling for a pattern condition: {"pattern": "..."}.
		if pat, ok := tv["pattern"].(string); ok && len(tv) == 1 {
			re, err := regexp.Compile(pat)
			if err != nil {
				return nil, &SchemaError{Path: spath, Message: "invalid availableIf pattern: " + err.Error()}
			}
			cond.re = re
		}
	}
	return &cond, nil
}
