// Package value implements the tagged value tree that backs every holoconf
// document: the raw tree parsed from YAML/JSON, the resolved tree produced by
// the resolution engine, and the merged tree produced by the merge engine all
// share this representation.
package value

import "fmt"

// Kind identifies which alternative of the Value union is populated.
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindInt
	KindFloat
	KindString
	KindSequence
	KindMapping
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindSequence:
		return "sequence"
	case KindMapping:
		return "mapping"
	default:
		return "unknown"
	}
}

// Value is a closed tagged union over the JSON/YAML data model plus the
// int/float distinction holoconf needs for schema coercion.
//
// Only the field matching Kind is meaningful; callers should always switch on
// Kind rather than probing fields directly.
type Value struct {
	Kind Kind

	boolVal   bool
	intVal    int64
	floatVal  float64
	strVal    string
	seqVal    []Value
	mapVal    *Mapping
}

// Null returns the Null value.
func Null() Value { return Value{Kind: KindNull} }

// Bool wraps a bool.
func Bool(b bool) Value { return Value{Kind: KindBool, boolVal: b} }

// Int wraps a 64-bit signed integer.
func Int(i int64) Value { return Value{Kind: KindInt, intVal: i} }

// Float wraps a 64-bit IEEE-754 float.
func Float(f float64) Value { return Value{Kind: KindFloat, floatVal: f} }

// String wraps a string scalar.
func String(s string) Value { return Value{Kind: KindString, strVal: s} }

// Sequence wraps an ordered list of values.
func Sequence(items []Value) Value {
	if items == nil {
		items = []Value{}
	}
	return Value{Kind: KindSequence, seqVal: items}
}

// MappingValue wraps an insertion-ordered mapping.
func MappingValue(m *Mapping) Value {
	if m == nil {
		m = NewMapping()
	}
	return Value{Kind: KindMapping, mapVal: m}
}

// IsNull reports whether v is the Null value.
func (v Value) IsNull() bool { return v.Kind == KindNull }

// BoolVal returns the bool payload; only meaningful when Kind == KindBool.
func (v Value) BoolVal() bool { return v.boolVal }

// IntVal returns the int64 payload; only meaningful when Kind == KindInt.
func (v Value) IntVal() int64 { return v.intVal }

// FloatVal returns the float64 payload; only meaningful when Kind == KindFloat.
func (v Value) FloatVal() float64 { return v.floatVal }

// StrVal returns the string payload; only meaningful when Kind == KindString.
func (v Value) StrVal() string { return v.strVal }

// SeqVal returns the sequence payload; only meaningful when Kind == KindSequence.
func (v Value) SeqVal() []Value { return v.seqVal }

// MapVal returns the mapping payload; only meaningful when Kind == KindMapping.
func (v Value) MapVal() *Mapping { return v.mapVal }

// Equal compares two values structurally. Int and Float compare by numeric
// value per spec invariant (comparisons between Int and Float use numeric
// equality).
func Equal(a, b Value) bool {
	switch {
	case a.Kind == KindInt && b.Kind == KindFloat:
		return float64(a.intVal) == b.floatVal
	case a.Kind == KindFloat && b.Kind == KindInt:
		return a.floatVal == float64(b.intVal)
	case a.Kind != b.Kind:
		return false
	}

	switch a.Kind {
	case KindNull:
		return true
	case KindBool:
		return a.boolVal == b.boolVal
	case KindInt:
		return a.intVal == b.intVal
	case KindFloat:
		return a.floatVal == b.floatVal
	case KindString:
		return a.strVal == b.strVal
	case KindSequence:
		if len(a.seqVal) != len(b.seqVal) {
			return false
		}
		for i := range a.seqVal {
			if !Equal(a.seqVal[i], b.seqVal[i]) {
				return false
			}
		}
		return true
	case KindMapping:
		if a.mapVal.Len() != b.mapVal.Len() {
			return false
		}
		for _, k := range a.mapVal.Keys() {
			av, _ := a.mapVal.Get(k)
			bv, ok := b.mapVal.Get(k)
			if !ok || !Equal(av, bv) {
				return false
			}
		}
		return true
	}
	return false
}

// Clone returns a deep copy of v. The resolution engine does not use it: it
// never mutates raw trees (invariant 2) and builds fresh values as it
// substitutes.
func Clone(v Value) Value {
	switch v.Kind {
	case KindSequence:
		out := make([]Value, len(v.seqVal))
		for i, item := range v.seqVal {
			out[i] = Clone(item)
		}
		return Sequence(out)
	case KindMapping:
		m := NewMapping()
		for _, k := range v.mapVal.Keys() {
			val, _ := v.mapVal.Get(k)
			m.Set(k, Clone(val))
		}
		return MappingValue(m)
	default:
		return v
	}
}

// String renders a debug representation; it is not the serializer.
func (v Value) String() string {
	switch v.Kind {
	case KindNull:
		return "null"
	case KindBool:
		return fmt.Sprintf("%v", v.boolVal)
	case KindInt:
		return fmt.Sprintf("%d", v.intVal)
	case KindFloat:
		return fmt.Sprintf("%g", v.floatVal)
	case KindString:
		return fmt.Sprintf("%q", v.strVal)
	case KindSequence:
		return fmt.Sprintf("%v", v.seqVal)
	case KindMapping:
		return fmt.Sprintf("mapping(%d keys)", v.mapVal.Len())
	default:
		return "<invalid value>"
	}
}
