// Package schema models the JSON Schema dialect consumed by jsonforms: the
// draft-4 object/array/primitive core plus the form extension keywords
// (editor, optionLabels, inputAttributes, showOnly, availableIf,
// templateName). Documents are loaded with FromJSON/FromYAML; property
// declaration order is preserved because it drives rendering order and
// dependency evaluation order.
package schema

import (
	"bytes"
	"fmt"
	"sort"

	"github.com/goccy/go-json"
)

// TransformFunc converts a value on its way in or out of an editor.
// Serialize runs before a value is handed to the editor; Deserialize runs on
// the value read back. Hooks are attached programmatically; they have no JSON
// spelling.
type TransformFunc func(v any) (any, error)

// Schema is one schema fragment: the document root or any nested
// properties/items entry. Fields without a json tag note are draft-4 core;
// the rest are jsonforms extensions.
type Schema struct {
	Type        string `json:"type,omitempty"`
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
	Format      string `json:"format,omitempty"`
	Default     any    `json:"default,omitempty"`

	Enum      []any    `json:"enum,omitempty"`
	Pattern   string   `json:"pattern,omitempty"`
	MinLength *int     `json:"minLength,omitempty"`
	MaxLength *int     `json:"maxLength,omitempty"`
	Minimum   *float64 `json:"minimum,omitempty"`
	Maximum   *float64 `json:"maximum,omitempty"`

	Properties map[string]*Schema `json:"properties,omitempty"`
	Required   []string           `json:"required,omitempty"`

	Items    *Schema `json:"items,omitempty"`
	MinItems *int    `json:"minItems,omitempty"`
	MaxItems *int    `json:"maxItems,omitempty"`

	// Form extensions.
	Editor          string         `json:"editor,omitempty"`
	OptionLabels    []string       `json:"optionLabels,omitempty"`
	InputAttributes map[string]any `json:"inputAttributes,omitempty"`
	ShowOnly        bool           `json:"showOnly,omitempty"`
	TemplateName    string         `json:"templateName,omitempty"`
	AvailableIf     map[string]any `json:"availableIf,omitempty"`

	// Serialize/Deserialize are leaf-only value transform hooks.
	Serialize   TransformFunc `json:"-"`
	Deserialize TransformFunc `json:"-"`

	// PropertyOrder records the declaration order of Properties keys. It is
	// captured by UnmarshalJSON and must be maintained by hand when a Schema
	// is built programmatically (Keys falls back to nothing deterministic
	// otherwise).
	PropertyOrder []string `json:"-"`

	// IsRequired is the normalized per-child form of the parent's required
	// list. Set by Normalize, never unmarshaled.
	IsRequired bool `json:"-"`
}

// Keys returns the property names in declaration order. Properties missing
// from PropertyOrder (programmatic construction) are appended after the
// ordered ones so no child is ever silently dropped.
func (s *Schema) Keys() []string {
	keys := make([]string, 0, len(s.Properties))
	seen := make(map[string]bool, len(s.Properties))
	for _, k := range s.PropertyOrder {
		if _, ok := s.Properties[k]; ok && !seen[k] {
			keys = append(keys, k)
			seen[k] = true
		}
	}
	ordered := len(keys)
	for k := range s.Properties {
		if !seen[k] {
			keys = append(keys, k)
		}
	}
	if len(keys) > ordered {
		// deterministic fallback for hand-built schemas
		sort.Strings(keys[ordered:])
	}
	return keys
}

// Normalize pushes object-level required lists down into each property's
// IsRequired flag, recursively. Call once on the document root before
// compiling.
func (s *Schema) Normalize() {
	if s == nil {
		return
	}
	for _, name := range s.Required {
		if child, ok := s.Properties[name]; ok {
			child.IsRequired = true
		}
	}
	for _, child := range s.Properties {
		child.Normalize()
	}
	s.Items.Normalize()
}

// UnmarshalJSON decodes the fragment and additionally captures the
// declaration order of the properties object, which encoding into a Go map
// would otherwise destroy.
func (s *Schema) UnmarshalJSON(data []byte) error {
	type plain Schema
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*s = Schema(p)
	order, err := propertyOrder(data)
	if err != nil {
		return err
	}
	s.PropertyOrder = order
	return nil
}

// propertyOrder scans the raw fragment for a top-level "properties" object
// and returns its keys in document order.
func propertyOrder(data []byte) ([]string, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, nil
	}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, _ := keyTok.(string)
		if key != "properties" {
			if err := skipValue(dec); err != nil {
				return nil, err
			}
			continue
		}
		open, err := dec.Token()
		if err != nil {
			return nil, err
		}
		if d, ok := open.(json.Delim); !ok || d != '{' {
			return nil, fmt.Errorf("schema: properties must be an object")
		}
		var order []string
		for dec.More() {
			nameTok, err := dec.Token()
			if err != nil {
				return nil, err
			}
			name, _ := nameTok.(string)
			order = append(order, name)
			if err := skipValue(dec); err != nil {
				return nil, err
			}
		}
		return order, nil
	}
	return nil, nil
}

// skipValue consumes one complete JSON value from the decoder.
func skipValue(dec *json.Decoder) error {
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	d, ok := tok.(json.Delim)
	if !ok {
		return nil
	}
	if d == '{' || d == '[' {
		depth := 1
		for depth > 0 {
			tok, err := dec.Token()
			if err != nil {
				return err
			}
			if d, ok := tok.(json.Delim); ok {
				switch d {
				case '{', '[':
					depth++
				case '}', ']':
					depth--
				}
			}
		}
	}
	return nil
}
