// Package yamlconv decodes and encodes value.Value trees directly against
// yaml.v3's Node representation, rather than through map[string]any, so that
// mapping key order survives a round trip (spec invariant 1). Both the
// config package (raw document loading) and the schema package (schema
// document loading) need this, so it lives here rather than in either.
package yamlconv

import (
	"fmt"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/lyzr/holoconf/value"
)

// Decode parses YAML (or JSON, which is a YAML subset) text into a Value
// tree, preserving mapping key order and rejecting duplicate keys. A
// genuinely empty document (no content at all, as opposed to an explicit
// "null") decodes to an empty mapping (spec §8 boundary: "Empty document ->
// root is an empty mapping").
func Decode(text string) (value.Value, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal([]byte(text), &doc); err != nil {
		return value.Value{}, fmt.Errorf("yaml: %w", err)
	}
	if len(doc.Content) == 0 {
		return value.MappingValue(value.NewMapping()), nil
	}
	return nodeToValue(doc.Content[0])
}

func nodeToValue(n *yaml.Node) (value.Value, error) {
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return value.Null(), nil
		}
		return nodeToValue(n.Content[0])
	case yaml.AliasNode:
		return nodeToValue(n.Alias)
	case yaml.ScalarNode:
		return scalarToValue(n)
	case yaml.SequenceNode:
		items := make([]value.Value, len(n.Content))
		for i, c := range n.Content {
			v, err := nodeToValue(c)
			if err != nil {
				return value.Value{}, err
			}
			items[i] = v
		}
		return value.Sequence(items), nil
	case yaml.MappingNode:
		m := value.NewMapping()
		for i := 0; i+1 < len(n.Content); i += 2 {
			keyNode := n.Content[i]
			valNode := n.Content[i+1]
			if keyNode.Kind != yaml.ScalarNode {
				return value.Value{}, fmt.Errorf("yaml: non-scalar mapping key at line %d", keyNode.Line)
			}
			key := keyNode.Value
			if m.Has(key) {
				return value.Value{}, fmt.Errorf("yaml: duplicate key %q at line %d", key, keyNode.Line)
			}
			v, err := nodeToValue(valNode)
			if err != nil {
				return value.Value{}, err
			}
			m.Set(key, v)
		}
		return value.MappingValue(m), nil
	default:
		return value.Value{}, fmt.Errorf("yaml: unsupported node kind %d", n.Kind)
	}
}

func scalarToValue(n *yaml.Node) (value.Value, error) {
	if n.Tag == "!!str" {
		return value.String(n.Value), nil
	}

	var decoded any
	if err := n.Decode(&decoded); err != nil {
		return value.String(n.Value), nil
	}

	switch t := decoded.(type) {
	case nil:
		return value.Null(), nil
	case bool:
		return value.Bool(t), nil
	case int:
		return value.Int(int64(t)), nil
	case int64:
		return value.Int(t), nil
	case float64:
		return value.Float(t), nil
	case string:
		return value.String(t), nil
	default:
		return value.String(n.Value), nil
	}
}

// Encode builds a yaml.v3 Node tree from v, suitable for re-marshaling with
// block style. Sensitivity redaction (spec §4.7) is applied by the caller
// before encoding, not here; Encode is a pure structural mirror.
func Encode(v value.Value) *yaml.Node {
	switch v.Kind {
	case value.KindNull:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}
	case value.KindBool:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: strconv.FormatBool(v.BoolVal())}
	case value.KindInt:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: strconv.FormatInt(v.IntVal(), 10)}
	case value.KindFloat:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!float", Value: strconv.FormatFloat(v.FloatVal(), 'g', -1, 64)}
	case value.KindString:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: v.StrVal(), Style: stringStyle(v.StrVal())}
	case value.KindSequence:
		items := v.SeqVal()
		n := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, item := range items {
			n.Content = append(n.Content, Encode(item))
		}
		return n
	case value.KindMapping:
		m := v.MapVal()
		n := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		for _, k := range m.Keys() {
			child, _ := m.Get(k)
			n.Content = append(n.Content, &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: k}, Encode(child))
		}
		return n
	default:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}
	}
}

// stringStyle forces double-quoted style for strings that would otherwise be
// misread as a different scalar type on the next parse (e.g. "true", "123").
func stringStyle(s string) yaml.Style {
	if s == "" {
		return yaml.DoubleQuotedStyle
	}
	var probe any
	if err := yaml.Unmarshal([]byte(s), &probe); err == nil {
		if _, isString := probe.(string); !isString {
			return yaml.DoubleQuotedStyle
		}
	}
	return 0
}
