package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lyzr/holoconf/value"
)

func TestBareTextScalars(t *testing.T) {
	assert.Equal(t, "svc", bareText(value.String("svc")))
	assert.Equal(t, "8080", bareText(value.Int(8080)))
	assert.Equal(t, "true", bareText(value.Bool(true)))
	assert.Equal(t, "null", bareText(value.Null()))
}

func TestBareTextMappingFallsBackToJSON(t *testing.T) {
	m := value.NewMapping()
	m.Set("a", value.Int(1))
	text := bareText(value.MappingValue(m))
	assert.Contains(t, text, `"a"`)
	assert.Contains(t, text, "1")
}

func TestGetCommandPrintsBareScalar(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cfg.yaml")
	require.NoError(t, os.WriteFile(path, []byte("name: svc\n"), 0o600))

	cmd := newRootCmd()
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(out)
	cmd.SetArgs([]string{"get", path, "name"})
	require.NoError(t, cmd.Execute())

	assert.Equal(t, "svc\n", out.String())
}

func TestGetCommandDefaultOnMissingPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cfg.yaml")
	require.NoError(t, os.WriteFile(path, []byte("name: svc\n"), 0o600))

	cmd := newRootCmd()
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(out)
	cmd.SetArgs([]string{"get", path, "missing", "--default", "fallback"})
	require.NoError(t, cmd.Execute())

	assert.Equal(t, "fallback\n", out.String())
}
