package value

import (
	"strconv"
	"strings"
)

// Path is a dotted lookup path split into segments (spec invariant 4:
// "dotted path lookups split on '.'; numeric segments may index into
// sequences").
type Path []string

// ParsePath splits a dotted string into a Path. An empty string yields an
// empty Path, meaning "the document root".
func ParsePath(s string) Path {
	if s == "" {
		return Path{}
	}
	return strings.Split(s, ".")
}

// String renders the path back to dotted form.
func (p Path) String() string {
	return strings.Join(p, ".")
}

// Pointer renders the path as a JSON-Pointer-style string used in error
// messages ("/a/b/0").
func (p Path) Pointer() string {
	if len(p) == 0 {
		return "/"
	}
	return "/" + strings.Join(p, "/")
}

// Child returns a new Path with segment appended.
func (p Path) Child(segment string) Path {
	out := make(Path, len(p)+1)
	copy(out, p)
	out[len(p)] = segment
	return out
}

// Lookup resolves p against root, returning the subtree at that path. It does
// not perform any interpolation; it is a structural walk only, used both by
// GetRaw and internally by the resolution engine before substitution.
func Lookup(root Value, p Path) (Value, bool) {
	cur := root
	for _, seg := range p {
		switch cur.Kind {
		case KindMapping:
			v, ok := cur.MapVal().Get(seg)
			if !ok {
				return Value{}, false
			}
			cur = v
		case KindSequence:
			idx, err := strconv.Atoi(seg)
			if err != nil || idx < 0 || idx >= len(cur.SeqVal()) {
				return Value{}, false
			}
			cur = cur.SeqVal()[idx]
		default:
			return Value{}, false
		}
	}
	return cur, true
}
