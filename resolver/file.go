package resolver

import (
	"os"
	"path/filepath"

	"github.com/lyzr/holoconf/value"
	"github.com/lyzr/holoconf/xerrors"
)

// FileResolver implements "file:PATH" (spec §4.2 built-in #2), reading the
// file's UTF-8 contents relative to Base (the owning Config's base_path).
// It is constructed per-Config rather than registered once globally because
// base_path is Config-scoped state (spec §3: "base_path anchors relative
// paths used by the file resolver").
//
// FileResolver only reads text; it does not parse YAML/JSON. The
// resolveengine (which owns the "is this token the entire scalar" rule from
// spec §4.2 point 2) parses the text with its own Engine.Decode when it
// hands back structure instead of raw text.
type FileResolver struct {
	Base string
}

// ReadFile resolves path relative to Base and returns its raw text, or
// NotFound if the file does not exist. Callers decide whether to parse the
// result as YAML/JSON (only when the token is the entire scalar, per spec).
func (r FileResolver) ReadFile(path string) (string, error) {
	full := path
	if !filepath.IsAbs(path) && r.Base != "" {
		full = filepath.Join(r.Base, path)
	}

	f, err := os.Open(full)
	if err != nil {
		if os.IsNotExist(err) {
			return "", &xerrors.NotFound{Resolver: "file", Arg: path}
		}
		return "", err
	}
	defer f.Close() // file handle scoped to this single call (spec §5)

	data, err := os.ReadFile(full)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Resolve implements Resolver by returning the file's text contents
// unconditionally. The resolveengine calls ReadFile directly instead when it
// needs the "parse as structure if whole-scalar" behavior; Resolve exists so
// FileResolver still satisfies the generic Resolver contract for tests and
// for any caller that only wants text.
func (r FileResolver) Resolve(arg string, _ map[string]string) (value.Value, error) {
	text, err := r.ReadFile(arg)
	if err != nil {
		return value.Value{}, err
	}
	return value.String(text), nil
}
