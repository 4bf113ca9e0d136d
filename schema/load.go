package schema

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// FromJSON parses a schema document.
func FromJSON(data []byte) (*Schema, error) {
	var s Schema
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("schema: %w", err)
	}
	s.Normalize()
	return &s, nil
}

// FromYAML parses a YAML schema document. The document is re-encoded as JSON
// via the yaml node tree rather than a Go map so that property declaration
// order survives the trip.
func FromYAML(data []byte) (*Schema, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("schema: %w", err)
	}
	node := &doc
	if node.Kind == yaml.DocumentNode {
		if len(node.Content) == 0 {
			return nil, fmt.Errorf("schema: empty document")
		}
		node = node.Content[0]
	}
	var buf bytes.Buffer
	if err := encodeYAMLNodeJSON(&buf, node); err != nil {
		return nil, fmt.Errorf("schema: %w", err)
	}
	return FromJSON(buf.Bytes())
}

func encodeYAMLNodeJSON(buf *bytes.Buffer, n *yaml.Node) error {
	switch n.Kind {
	case yaml.AliasNode:
		return encodeYAMLNodeJSON(buf, n.Alias)
	case yaml.MappingNode:
		buf.WriteByte('{')
		for i := 0; i+1 < len(n.Content); i += 2 {
			if i > 0 {
				buf.WriteByte(',')
			}
			key := n.Content[i].Value
			kb, err := json.Marshal(key)
			if err != nil {
				return err
			}
			buf.Write(kb)
			buf.WriteByte(':')
			if err := encodeYAMLNodeJSON(buf, n.Content[i+1]); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
		return nil
	case yaml.SequenceNode:
		buf.WriteByte('[')
		for i, c := range n.Content {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := encodeYAMLNodeJSON(buf, c); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
		return nil
	case yaml.ScalarNode:
		return encodeYAMLScalarJSON(buf, n)
	default:
		return fmt.Errorf("unsupported yaml node kind %d", n.Kind)
	}
}

func encodeYAMLScalarJSON(buf *bytes.Buffer, n *yaml.Node) error {
	switch n.Tag {
	case "!!null":
		buf.WriteString("null")
		return nil
	case "!!bool":
		b, err := strconv.ParseBool(strings.ToLower(n.Value))
		if err != nil {
			return err
		}
		buf.WriteString(strconv.FormatBool(b))
		return nil
	case "!!int", "!!float":
		// yaml integers/floats are already valid JSON number literals except
		// for underscores and special floats, which schemas do not use.
		buf.WriteString(n.Value)
		return nil
	default:
		sb, err := json.Marshal(n.Value)
		if err != nil {
			return err
		}
		buf.Write(sb)
		return nil
	}
}
