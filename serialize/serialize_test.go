package serialize

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lyzr/holoconf/internal/yamlconv"
	"github.com/lyzr/holoconf/value"
)

func TestToYAMLPreservesKeyOrder(t *testing.T) {
	m := value.NewMapping()
	m.Set("zebra", value.Int(1))
	m.Set("apple", value.Int(2))
	v := value.MappingValue(m)

	text, err := ToYAML(v)
	require.NoError(t, err)

	zebraIdx := strings.Index(text, "zebra")
	appleIdx := strings.Index(text, "apple")
	assert.Less(t, zebraIdx, appleIdx)
}

func TestToYAMLRoundTrip(t *testing.T) {
	m := value.NewMapping()
	m.Set("name", value.String("svc"))
	m.Set("port", value.Int(8080))
	v := value.MappingValue(m)

	text, err := ToYAML(v)
	require.NoError(t, err)

	back, err := yamlconv.Decode(text)
	require.NoError(t, err)
	assert.True(t, value.Equal(v, back))
}

func TestToJSONPreservesKeyOrder(t *testing.T) {
	m := value.NewMapping()
	m.Set("b", value.Int(1))
	m.Set("a", value.Int(2))
	v := value.MappingValue(m)

	text, err := ToJSON(v)
	require.NoError(t, err)
	assert.Less(t, strings.Index(text, `"b"`), strings.Index(text, `"a"`))
}

func TestRedactReplacesOnlySensitivePaths(t *testing.T) {
	m := value.NewMapping()
	m.Set("username", value.String("alice"))
	m.Set("password", value.String("hunter2"))
	v := value.MappingValue(m)

	out := Redact(v, map[string]bool{"/password": true})

	username, _ := out.MapVal().Get("username")
	password, _ := out.MapVal().Get("password")
	assert.Equal(t, "alice", username.StrVal())
	assert.Equal(t, Redacted, password.StrVal())
}

func TestToMapProducesPlainGoValues(t *testing.T) {
	m := value.NewMapping()
	m.Set("items", value.Sequence([]value.Value{value.Int(1), value.Int(2)}))
	v := value.MappingValue(m)

	out := ToMap(v).(map[string]any)
	items := out["items"].([]any)
	assert.Equal(t, int64(1), items[0])
}
