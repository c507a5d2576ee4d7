package resolver

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lyzr/holoconf/value"
	"github.com/lyzr/holoconf/xerrors"
)

func TestNewRegistrySeedsEnv(t *testing.T) {
	r := NewRegistry()
	_, ok := r.Lookup("env")
	assert.True(t, ok)
}

func TestRegisterRejectsDottedName(t *testing.T) {
	r := NewRegistry()
	err := r.Register("a.b", ResolverFunc(func(string, map[string]string) (value.Value, error) {
		return value.Null(), nil
	}), false)
	assert.Error(t, err)
}

func TestRegisterIdempotentUnlessForced(t *testing.T) {
	r := NewRegistry()
	first := ResolverFunc(func(string, map[string]string) (value.Value, error) { return value.String("first"), nil })
	second := ResolverFunc(func(string, map[string]string) (value.Value, error) { return value.String("second"), nil })

	require.NoError(t, r.Register("custom", first, false))
	require.NoError(t, r.Register("custom", second, false))

	res, ok := r.Lookup("custom")
	require.True(t, ok)
	v, _ := res.Resolve("", nil)
	assert.Equal(t, "first", v.StrVal())

	require.NoError(t, r.Register("custom", second, true))
	res, ok = r.Lookup("custom")
	require.True(t, ok)
	v, _ = res.Resolve("", nil)
	assert.Equal(t, "second", v.StrVal())
}

func TestResetRestoresOnlyEnv(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register("custom", ResolverFunc(func(string, map[string]string) (value.Value, error) {
		return value.Null(), nil
	}), false))

	r.Reset()

	_, ok := r.Lookup("custom")
	assert.False(t, ok)
	_, ok = r.Lookup("env")
	assert.True(t, ok)
}

func TestEnvResolverLookupAndNotFound(t *testing.T) {
	t.Setenv("HOLOCONF_TEST_VAR", "hello")

	r := EnvResolver{}
	v, err := r.Resolve("HOLOCONF_TEST_VAR", nil)
	require.NoError(t, err)
	assert.Equal(t, "hello", v.StrVal())

	os.Unsetenv("HOLOCONF_TEST_VAR_MISSING")
	_, err = r.Resolve("HOLOCONF_TEST_VAR_MISSING", nil)
	require.Error(t, err)
	assert.True(t, xerrors.IsNotFound(err))
}

func TestFileResolverReadRelativeToBase(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(dir+"/secret.txt", []byte("shh"), 0o600))

	fr := FileResolver{Base: dir}
	text, err := fr.ReadFile("secret.txt")
	require.NoError(t, err)
	assert.Equal(t, "shh", text)
}

func TestFileResolverMissingFileIsNotFound(t *testing.T) {
	fr := FileResolver{Base: t.TempDir()}
	_, err := fr.ReadFile("does-not-exist.txt")
	require.Error(t, err)
	assert.True(t, xerrors.IsNotFound(err))
}
