// Package schema implements the JSON-Schema subset validator (spec §4.6):
// type, properties, required, additionalProperties, items, enum, const,
// minimum/maximum, minLength/maxLength, pattern, minItems/maxItems,
// uniqueItems, oneOf/anyOf/allOf/not.
package schema

import (
	"fmt"

	"github.com/lyzr/holoconf/interp"
	"github.com/lyzr/holoconf/value"
)

// Schema wraps the parsed schema tree (spec §3: Schema{tree}). It is
// immutable after construction.
type Schema struct {
	tree value.Value
}

// New wraps an already-parsed Value tree as a Schema.
func New(tree value.Value) *Schema {
	return &Schema{tree: tree}
}

// Tree returns the underlying schema tree.
func (s *Schema) Tree() value.Value { return s.tree }

// Failure is one validation failure: a path plus a human-readable reason.
type Failure struct {
	Path   string
	Reason string
}

func (f Failure) String() string {
	return fmt.Sprintf("%s: %s", f.Path, f.Reason)
}

// node is a decoded view over one schema (sub-)object; re-derived on each
// descent rather than cached since schema trees are small and this keeps the
// validator a pure function of (schema node, value).
type node struct {
	raw value.Value
}

func asNode(v value.Value) (node, bool) {
	if v.Kind != value.KindMapping {
		return node{}, false
	}
	return node{raw: v}, true
}

func (n node) field(name string) (value.Value, bool) {
	if n.raw.Kind != value.KindMapping {
		return value.Value{}, false
	}
	return n.raw.MapVal().Get(name)
}

func (n node) stringField(name string) (string, bool) {
	v, ok := n.field(name)
	if !ok || v.Kind != value.KindString {
		return "", false
	}
	return v.StrVal(), true
}

// validator runs one validation pass, collecting or short-circuiting on
// failures depending on collectAll. raw relaxes type checks against scalar
// strings that still carry an unresolved interpolation token (spec §4.6
// validate_raw mode: a raw document cannot be expected to match its
// post-resolution type yet).
type validator struct {
	collectAll bool
	raw        bool
	failures   []Failure
}

func (vl *validator) fail(path string, reason string) error {
	f := Failure{Path: path, Reason: reason}
	if vl.collectAll {
		vl.failures = append(vl.failures, f)
		return nil
	}
	return &stopError{f}
}

// stopError is sentinel-wrapped to unwind out of recursive validate calls on
// the first failure when collectAll is false.
type stopError struct{ f Failure }

func (e *stopError) Error() string { return e.f.String() }

// Validate runs the schema against v, stopping at the first failure and
// returning it as a one-element slice, or nil when v passes. Failure paths
// are JSON-Pointer style, rooted at "/".
func (s *Schema) Validate(v value.Value) []Failure {
	vl := &validator{collectAll: false}
	if err := vl.validateNode(s.tree, v, "/"); err != nil {
		var se *stopError
		if as(err, &se) {
			return []Failure{se.f}
		}
		return []Failure{{Path: "/", Reason: err.Error()}}
	}
	return nil
}

// ValidateCollect runs the schema against v, returning every failure rather
// than stopping at the first (spec §4.6 validate_collect).
func (s *Schema) ValidateCollect(v value.Value) []Failure {
	vl := &validator{collectAll: true}
	_ = vl.validateNode(s.tree, v, "/")
	return vl.failures
}

// ValidateRaw runs the schema against an unresolved tree (spec §4.6
// validate_raw mode): scalars that still carry an interpolation token are
// exempt from type/structural checks, since their real type is only known
// after resolution. Everything else is checked as usual, collecting every
// failure.
func (s *Schema) ValidateRaw(v value.Value) []Failure {
	vl := &validator{collectAll: true, raw: true}
	_ = vl.validateNode(s.tree, v, "/")
	return vl.failures
}

func as(err error, target **stopError) bool {
	se, ok := err.(*stopError)
	if !ok {
		return false
	}
	*target = se
	return true
}

// validateNode validates v against the schema node schemaVal at path.
func (vl *validator) validateNode(schemaVal value.Value, v value.Value, path string) error {
	sn, ok := asNode(schemaVal)
	if !ok {
		// A bare `true`/`false` schema or malformed node: treat as "anything
		// passes" to stay permissive, matching how JSON-Schema treats a
		// boolean schema (true accepts everything).
		if schemaVal.Kind == value.KindBool && !schemaVal.BoolVal() {
			return vl.fail(path, "schema forbids any value here")
		}
		return nil
	}

	if constVal, ok := sn.field("const"); ok {
		if !value.Equal(constVal, v) {
			if err := vl.fail(path, "value does not equal const"); err != nil {
				return err
			}
		}
	}

	if enumVal, ok := sn.field("enum"); ok && enumVal.Kind == value.KindSequence {
		matched := false
		for _, item := range enumVal.SeqVal() {
			if value.Equal(item, v) {
				matched = true
				break
			}
		}
		if !matched {
			if err := vl.fail(path, "value not in enum"); err != nil {
				return err
			}
		}
	}

	if typ, ok := sn.stringField("type"); ok {
		if vl.raw && v.Kind == value.KindString && interp.HasToken(v.StrVal()) {
			// Unresolved token: its eventual type is unknown, so type/
			// structural checks below would be meaningless noise.
			return nil
		}
		if !typeMatches(typ, v) {
			if err := vl.fail(path, fmt.Sprintf("expected type %s, got %s", typ, jsonTypeName(v))); err != nil {
				return err
			}
			// Type mismatch makes deeper structural checks meaningless.
			return nil
		}
	}

	if err := vl.validateNumeric(sn, v, path); err != nil {
		return err
	}
	if err := vl.validateString(sn, v, path); err != nil {
		return err
	}
	if err := vl.validateArray(sn, v, path); err != nil {
		return err
	}
	if err := vl.validateObject(sn, v, path); err != nil {
		return err
	}
	if err := vl.validateCombinators(sn, v, path); err != nil {
		return err
	}

	return nil
}

// typeMatches implements spec §4.6's numeric type rule: "integer" accepts
// Int or Float with a zero fractional part; "number" accepts both.
func typeMatches(typ string, v value.Value) bool {
	switch typ {
	case "string":
		return v.Kind == value.KindString
	case "boolean":
		return v.Kind == value.KindBool
	case "null":
		return v.Kind == value.KindNull
	case "array":
		return v.Kind == value.KindSequence
	case "object":
		return v.Kind == value.KindMapping
	case "integer":
		switch v.Kind {
		case value.KindInt:
			return true
		case value.KindFloat:
			f := v.FloatVal()
			return f == float64(int64(f))
		}
		return false
	case "number":
		return v.Kind == value.KindInt || v.Kind == value.KindFloat
	default:
		return true
	}
}

func jsonTypeName(v value.Value) string {
	switch v.Kind {
	case value.KindNull:
		return "null"
	case value.KindBool:
		return "boolean"
	case value.KindInt, value.KindFloat:
		return "number"
	case value.KindString:
		return "string"
	case value.KindSequence:
		return "array"
	case value.KindMapping:
		return "object"
	default:
		return "unknown"
	}
}
