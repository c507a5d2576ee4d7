// Package serialize renders a value.Value tree to YAML or JSON text (spec
// §4.7): resolve controls whether interpolation is left raw or substituted
// first, and redact (only meaningful when resolve is true) replaces every
// sensitive leaf with the literal string "***REDACTED***".
package serialize

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/tidwall/pretty"
	"gopkg.in/yaml.v3"

	"github.com/lyzr/holoconf/internal/yamlconv"
	"github.com/lyzr/holoconf/value"
)

// Redacted is the literal substituted for a sensitive leaf when redact=true.
const Redacted = "***REDACTED***"

// Redact walks v and replaces every leaf whose JSON-Pointer-style path is a
// key in sensitivePaths with the Redacted string. sensitivePaths is the map
// returned by resolveengine.Engine.ResolveRootWithSensitivity.
func Redact(v value.Value, sensitivePaths map[string]bool) value.Value {
	return redactAt(value.Path{}, v, sensitivePaths)
}

func redactAt(path value.Path, v value.Value, sensitivePaths map[string]bool) value.Value {
	switch v.Kind {
	case value.KindSequence:
		items := v.SeqVal()
		out := make([]value.Value, len(items))
		for i, item := range items {
			out[i] = redactAt(path.Child(strconv.Itoa(i)), item, sensitivePaths)
		}
		return value.Sequence(out)
	case value.KindMapping:
		m := v.MapVal()
		out := value.NewMapping()
		for _, k := range m.Keys() {
			child, _ := m.Get(k)
			out.Set(k, redactAt(path.Child(k), child, sensitivePaths))
		}
		return value.MappingValue(out)
	default:
		if sensitivePaths[path.Pointer()] {
			return value.String(Redacted)
		}
		return v
	}
}

// ToYAML renders v as block-style YAML text with a trailing newline,
// preserving mapping key order.
func ToYAML(v value.Value) (string, error) {
	node := yamlconv.Encode(v)
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(node); err != nil {
		return "", fmt.Errorf("serialize: %w", err)
	}
	if err := enc.Close(); err != nil {
		return "", fmt.Errorf("serialize: %w", err)
	}
	return buf.String(), nil
}

// ToJSON renders v as two-space-indented JSON text, preserving mapping key
// order. encoding/json's Marshal on map[string]any would sort keys
// alphabetically, which breaks insertion-order preservation, so this walks
// the Value tree directly and builds compact JSON, then re-indents with
// tidwall/pretty.
func ToJSON(v value.Value) (string, error) {
	var buf bytes.Buffer
	if err := writeJSON(&buf, v); err != nil {
		return "", fmt.Errorf("serialize: %w", err)
	}
	out := pretty.PrettyOptions(buf.Bytes(), &pretty.Options{Indent: "  ", SortKeys: false})
	return string(out), nil
}

func writeJSON(buf *bytes.Buffer, v value.Value) error {
	switch v.Kind {
	case value.KindNull:
		buf.WriteString("null")
	case value.KindBool:
		if v.BoolVal() {
			buf.WriteString("true")
		} else {
			buf.WriteString("false")
		}
	case value.KindInt:
		buf.WriteString(strconv.FormatInt(v.IntVal(), 10))
	case value.KindFloat:
		buf.WriteString(strconv.FormatFloat(v.FloatVal(), 'g', -1, 64))
	case value.KindString:
		b, err := json.Marshal(v.StrVal())
		if err != nil {
			return err
		}
		buf.Write(b)
	case value.KindSequence:
		buf.WriteByte('[')
		for i, item := range v.SeqVal() {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeJSON(buf, item); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	case value.KindMapping:
		buf.WriteByte('{')
		m := v.MapVal()
		for i, k := range m.Keys() {
			if i > 0 {
				buf.WriteByte(',')
			}
			kb, err := json.Marshal(k)
			if err != nil {
				return err
			}
			buf.Write(kb)
			buf.WriteByte(':')
			child, _ := m.Get(k)
			if err := writeJSON(buf, child); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
	default:
		buf.WriteString("null")
	}
	return nil
}

// ToMap converts v to plain Go values (map[string]any/[]any/scalars), the
// to_dict analogue for callers that want idiomatic Go rather than
// value.Value (spec §6 added note).
func ToMap(v value.Value) any {
	switch v.Kind {
	case value.KindNull:
		return nil
	case value.KindBool:
		return v.BoolVal()
	case value.KindInt:
		return v.IntVal()
	case value.KindFloat:
		return v.FloatVal()
	case value.KindString:
		return v.StrVal()
	case value.KindSequence:
		items := v.SeqVal()
		out := make([]any, len(items))
		for i, item := range items {
			out[i] = ToMap(item)
		}
		return out
	case value.KindMapping:
		m := v.MapVal()
		out := make(map[string]any, m.Len())
		for _, k := range m.Keys() {
			child, _ := m.Get(k)
			out[k] = ToMap(child)
		}
		return out
	default:
		return nil
	}
}
