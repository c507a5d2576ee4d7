package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lyzr/holoconf/resolver"
	"github.com/lyzr/holoconf/schema"
	"github.com/lyzr/holoconf/serialize"
	"github.com/lyzr/holoconf/value"
)

// Scenario 1: env + self-reference.
func TestScenarioEnvAndSelfReference(t *testing.T) {
	t.Setenv("DB_PORT", "5432")

	cfg, err := Loads(`
db:
  host: h
  port: "${env:DB_PORT}"
  url: "postgres://${db.host}:${db.port}"
`, "")
	require.NoError(t, err)

	url, err := cfg.Get("db.url")
	require.NoError(t, err)
	assert.Equal(t, "postgres://h:5432", url.StrVal())

	port, err := cfg.Get("db.port")
	require.NoError(t, err)
	assert.Equal(t, value.KindString, port.Kind)
	assert.Equal(t, "5432", port.StrVal())

	s, err := schema.FromYAML(`
type: object
properties:
  db:
    type: object
    properties:
      port: { type: integer }
`)
	require.NoError(t, err)
	assert.NoError(t, cfg.Validate(s))
}

// Scenario 2: cycle.
func TestScenarioCycle(t *testing.T) {
	cfg, err := Loads(`
a: "${b}"
b: "${a}"
`, "")
	require.NoError(t, err)

	_, err = cfg.Get("a")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "a")
	assert.Contains(t, err.Error(), "b")
}

type vaultResolver struct{}

func (vaultResolver) ResolveSensitive(arg string, _ map[string]string) (value.ResolvedValue, error) {
	return value.Resolved(value.String("s3cr3t"), true), nil
}

// Scenario 3: sensitivity + redaction.
func TestScenarioSensitivityAndRedaction(t *testing.T) {
	reg := resolver.NewRegistry()
	require.NoError(t, reg.Register("vault", vaultResolver{}, false))

	cfg, err := Loads(`password: "${vault:k}"`, "", WithRegistry(reg))
	require.NoError(t, err)

	redacted, err := cfg.ToYAML(true, true)
	require.NoError(t, err)
	assert.Contains(t, redacted, serialize.Redacted)

	plain, err := cfg.ToYAML(true, false)
	require.NoError(t, err)
	assert.Contains(t, plain, "s3cr3t")
}

// Scenario 4: merge precedence.
func TestScenarioMergePrecedence(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.yaml", "a:\n  x: 1\n  y: 2\n")
	writeFile(t, dir, "b.yaml", "a:\n  y: 20\n  z: 30\n")

	cfg, err := LoadMerged([]string{
		filepath.Join(dir, "a.yaml"),
		filepath.Join(dir, "b.yaml"),
	})
	require.NoError(t, err)

	a, err := cfg.GetRaw("a")
	require.NoError(t, err)
	x, _ := a.MapVal().Get("x")
	y, _ := a.MapVal().Get("y")
	z, _ := a.MapVal().Get("z")
	assert.Equal(t, int64(1), x.IntVal())
	assert.Equal(t, int64(20), y.IntVal())
	assert.Equal(t, int64(30), z.IntVal())
}

// Scenario 5: schema validate_collect.
func TestScenarioSchemaValidateCollect(t *testing.T) {
	cfg, err := Loads(`
port: "notnum"
name: 123
`, "")
	require.NoError(t, err)

	s, err := schema.FromYAML(`
type: object
properties:
  port: { type: integer }
  name: { type: string }
`)
	require.NoError(t, err)

	failures, err := cfg.ValidateCollect(s)
	require.NoError(t, err)
	require.Len(t, failures, 2)

	paths := []string{failures[0].Path, failures[1].Path}
	assert.Contains(t, paths, "/port")
	assert.Contains(t, paths, "/name")
}

// Scenario 6: optional file merge.
func TestScenarioOptionalFileMerge(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.yaml", "x: 1\n")
	writeFile(t, dir, "b.yaml", "y: 2\n")

	withMissing, err := LoadMergedWithSpecs([]FileSpec{
		{Path: filepath.Join(dir, "a.yaml")},
		{Path: filepath.Join(dir, "missing.yaml"), Optional: true},
		{Path: filepath.Join(dir, "b.yaml")},
	})
	require.NoError(t, err)

	withoutMissing, err := LoadMerged([]string{
		filepath.Join(dir, "a.yaml"),
		filepath.Join(dir, "b.yaml"),
	})
	require.NoError(t, err)

	wm, _ := withMissing.ToYAML(false, false)
	wom, _ := withoutMissing.ToYAML(false, false)
	assert.Equal(t, wom, wm)
}

func TestBoundaryEmptyDocumentIsEmptyMapping(t *testing.T) {
	cfg, err := Loads("", "")
	require.NoError(t, err)
	v, err := cfg.GetRaw("")
	require.NoError(t, err)
	assert.Equal(t, value.KindMapping, v.Kind)
	assert.Equal(t, 0, v.MapVal().Len())
}

func TestBoundaryScalarRootRejected(t *testing.T) {
	_, err := Loads("just a string", "")
	assert.Error(t, err)
}

func TestBoundaryGetRawStructurallyEqualsRaw(t *testing.T) {
	cfg, err := Loads(`nested: {a: 1, b: [1, 2, 3]}`, "")
	require.NoError(t, err)
	v, err := cfg.GetRaw("nested")
	require.NoError(t, err)
	a, _ := v.MapVal().Get("a")
	assert.Equal(t, int64(1), a.IntVal())
}

func TestBoundaryNoTokensGetEqualsGetRaw(t *testing.T) {
	cfg, err := Loads(`plain: {a: 1, b: "text"}`, "")
	require.NoError(t, err)

	resolved, err := cfg.Get("plain")
	require.NoError(t, err)
	raw, err := cfg.GetRaw("plain")
	require.NoError(t, err)
	assert.True(t, value.Equal(resolved, raw))
}

func TestToYAMLUnresolvedRoundTripsStructurally(t *testing.T) {
	cfg, err := Loads(`a: "${env:NEVER_SET}"`, "")
	require.NoError(t, err)

	text, err := cfg.ToYAML(false, false)
	require.NoError(t, err)

	reparsed, err := Loads(text, "")
	require.NoError(t, err)
	rawA, _ := reparsed.GetRaw("a")
	origA, _ := cfg.GetRaw("a")
	assert.True(t, value.Equal(rawA, origA))
}

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o600))
}
