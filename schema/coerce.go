package schema

import (
	"strconv"

	"github.com/lyzr/holoconf/resolveengine"
	"github.com/lyzr/holoconf/value"
)

// ValidateWithCoercion resolves scalar strings to the type their matching
// schema node declares before validating (spec §4.6's fourth mode): a
// resolved config is still all-string wherever a resolver returned a plain
// string, so e.g. "${env:PORT}" can satisfy a schema declaring `type:
// integer` as long as it parses as one. It returns the coerced tree
// alongside every validation failure; a path whose coercion failed is
// reported once, by its coercion failure.
func (s *Schema) ValidateWithCoercion(v value.Value) (value.Value, []Failure) {
	coerced, coerceFailures := coerceTree(s.tree, v, "/")
	vl := &validator{collectAll: true}
	_ = vl.validateNode(s.tree, coerced, "/")
	coerceFailed := make(map[string]bool, len(coerceFailures))
	for _, f := range coerceFailures {
		coerceFailed[f.Path] = true
	}
	failures := coerceFailures
	for _, f := range vl.failures {
		if !coerceFailed[f.Path] {
			failures = append(failures, f)
		}
	}
	return coerced, failures
}

// coerceTree walks schemaVal and v together, applying resolveengine.Coerce
// at every node whose schema declares a scalar "type".
func coerceTree(schemaVal value.Value, v value.Value, path string) (value.Value, []Failure) {
	sn, ok := asNode(schemaVal)
	if !ok {
		return v, nil
	}

	var failures []Failure

	if typ, ok := sn.stringField("type"); ok {
		if coerced, err := resolveengine.Coerce(pathToValuePath(path), v, typ); err == nil {
			v = coerced
		} else {
			failures = append(failures, Failure{Path: path, Reason: err.Error()})
			return v, failures
		}
	}

	switch v.Kind {
	case value.KindSequence:
		itemsSchema, hasItems := sn.field("items")
		items := v.SeqVal()
		out := make([]value.Value, len(items))
		for i, item := range items {
			childSchema := itemsSchema
			if hasItems && itemsSchema.Kind == value.KindSequence {
				tuple := itemsSchema.SeqVal()
				if i < len(tuple) {
					childSchema = tuple[i]
				} else {
					out[i] = item
					continue
				}
			}
			if !hasItems {
				out[i] = item
				continue
			}
			cv, fs := coerceTree(childSchema, item, childPath(path, strconv.Itoa(i)))
			out[i] = cv
			failures = append(failures, fs...)
		}
		return value.Sequence(out), failures

	case value.KindMapping:
		propsVal, hasProps := sn.field("properties")
		m := v.MapVal()
		out := value.NewMapping()
		for _, k := range m.Keys() {
			child, _ := m.Get(k)
			if hasProps && propsVal.Kind == value.KindMapping {
				if propSchema, declared := propsVal.MapVal().Get(k); declared {
					cv, fs := coerceTree(propSchema, child, childPath(path, k))
					out.Set(k, cv)
					failures = append(failures, fs...)
					continue
				}
			}
			out.Set(k, child)
		}
		return value.MappingValue(out), failures

	default:
		return v, failures
	}
}

func pathToValuePath(p string) value.Path {
	if p == "/" || p == "" {
		return value.Path{}
	}
	return value.ParsePath(trimLeadingSlash(p))
}

func trimLeadingSlash(p string) string {
	if len(p) > 0 && p[0] == '/' {
		p = p[1:]
	}
	for i := 0; i < len(p); i++ {
		if p[i] == '/' {
			p = p[:i] + "." + p[i+1:]
		}
	}
	return p
}
