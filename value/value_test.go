package value

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEqualNumericCrossKind(t *testing.T) {
	assert.True(t, Equal(Int(3), Float(3.0)))
	assert.True(t, Equal(Float(3.0), Int(3)))
	assert.False(t, Equal(Int(3), Float(3.5)))
}

func TestEqualMappingOrderIndependent(t *testing.T) {
	a := NewMapping()
	a.Set("x", Int(1))
	a.Set("y", Int(2))

	b := NewMapping()
	b.Set("y", Int(2))
	b.Set("x", Int(1))

	assert.True(t, Equal(MappingValue(a), MappingValue(b)))
}

func TestMappingSetKeepsInsertionPositionOnOverwrite(t *testing.T) {
	m := NewMapping()
	m.Set("a", Int(1))
	m.Set("b", Int(2))
	m.Set("a", Int(99))

	require.Equal(t, []string{"a", "b"}, m.Keys())
	v, ok := m.Get("a")
	require.True(t, ok)
	assert.Equal(t, int64(99), v.IntVal())
}

func TestMappingDelete(t *testing.T) {
	m := NewMapping()
	m.Set("a", Int(1))
	m.Set("b", Int(2))
	m.Set("c", Int(3))
	m.Delete("b")

	assert.Equal(t, []string{"a", "c"}, m.Keys())
	assert.False(t, m.Has("b"))
	v, ok := m.Get("c")
	require.True(t, ok)
	assert.Equal(t, int64(3), v.IntVal())
}

func TestCloneDeepCopiesContainers(t *testing.T) {
	inner := NewMapping()
	inner.Set("k", String("v"))
	orig := Sequence([]Value{MappingValue(inner)})

	cloned := Clone(orig)
	clonedMap := cloned.SeqVal()[0].MapVal()
	clonedMap.Set("k", String("changed"))

	origVal, _ := orig.SeqVal()[0].MapVal().Get("k")
	assert.Equal(t, "v", origVal.StrVal())
}
