// Package merge implements the deep-merge engine (spec §4.5): later documents
// override earlier ones; mapping-vs-mapping merges recursively; sequences and
// mixed-shape collisions are replaced wholesale by the later document.
package merge

import (
	"github.com/lyzr/holoconf/value"
	"github.com/lyzr/holoconf/xerrors"
)

// Merge combines docs in order, later overriding earlier, and returns the
// merged mapping. Every doc must have a Mapping root (spec invariant: "raw
// must be Mapping"); a non-mapping root is a ParseError, matching the
// boundary case "scalar-only root documents rejected".
func Merge(docs []value.Value) (value.Value, error) {
	if len(docs) == 0 {
		return value.MappingValue(value.NewMapping()), nil
	}

	for _, d := range docs {
		if d.Kind != value.KindMapping {
			return value.Value{}, &xerrors.ParseError{
				Msg: "document root must be a mapping, got " + d.Kind.String(),
			}
		}
	}

	result := docs[0]
	for _, next := range docs[1:] {
		result = mergeTwo(result, next)
	}
	return result, nil
}

// mergeTwo merges b over a. Both are assumed to be Mapping values.
func mergeTwo(a, b value.Value) value.Value {
	out := value.NewMapping()
	am := a.MapVal()
	bm := b.MapVal()

	for _, k := range am.Keys() {
		av, _ := am.Get(k)
		out.Set(k, av)
	}

	for _, k := range bm.Keys() {
		bv, _ := bm.Get(k)
		if av, ok := out.Get(k); ok && av.Kind == value.KindMapping && bv.Kind == value.KindMapping {
			out.Set(k, mergeTwo(av, bv))
			continue
		}
		// Sequences replace rather than concatenate; mixed-shape collisions:
		// later wins. Both are just "later wins" since we already hold a's
		// value and are overwriting with b's.
		out.Set(k, bv)
	}

	return value.MappingValue(out)
}
