package value

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePathEmptyIsRoot(t *testing.T) {
	assert.Equal(t, Path{}, ParsePath(""))
}

func TestParsePathSplitsOnDot(t *testing.T) {
	assert.Equal(t, Path{"a", "b", "0"}, ParsePath("a.b.0"))
}

func TestPathPointer(t *testing.T) {
	assert.Equal(t, "/", Path{}.Pointer())
	assert.Equal(t, "/a/b/0", Path{"a", "b", "0"}.Pointer())
}

func TestLookupNumericSequenceIndex(t *testing.T) {
	seq := Sequence([]Value{String("zero"), String("one")})
	m := NewMapping()
	m.Set("items", seq)
	root := MappingValue(m)

	v, ok := Lookup(root, ParsePath("items.1"))
	require.True(t, ok)
	assert.Equal(t, "one", v.StrVal())
}

func TestLookupMissingKey(t *testing.T) {
	root := MappingValue(NewMapping())
	_, ok := Lookup(root, ParsePath("missing"))
	assert.False(t, ok)
}

func TestLookupOutOfRangeIndex(t *testing.T) {
	root := Sequence([]Value{String("only")})
	_, ok := Lookup(root, ParsePath("5"))
	assert.False(t, ok)
}
