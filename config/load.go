package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/lyzr/holoconf/internal/yamlconv"
	"github.com/lyzr/holoconf/merge"
	"github.com/lyzr/holoconf/value"
	"github.com/lyzr/holoconf/xerrors"
)

// FileSpec names one document to load as part of a merge, with Optional
// marking a file whose absence is not an error (spec §3: "FileSpec{path,
// optional}").
type FileSpec struct {
	Path     string
	Optional bool
}

// Loads parses text as a single document rooted at basePath (used to anchor
// the file resolver's relative paths).
func Loads(text string, basePath string, opts ...Option) (*Config, error) {
	raw, err := yamlconv.Decode(text)
	if err != nil {
		return nil, err
	}
	if raw.Kind != value.KindMapping {
		return nil, &xerrors.ParseError{Msg: "document root must be a mapping, got " + raw.Kind.String()}
	}
	return newConfig(raw, basePath, opts), nil
}

// Load reads and parses a single document from path; its directory becomes
// base_path.
func Load(path string, opts ...Option) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return Loads(string(b), filepath.Dir(path), opts...)
}

// LoadMerged loads every path in order and deep-merges them (later
// overrides earlier), anchoring base_path at the first file's directory.
func LoadMerged(paths []string, opts ...Option) (*Config, error) {
	specs := make([]FileSpec, len(paths))
	for i, p := range paths {
		specs[i] = FileSpec{Path: p}
	}
	return LoadMergedWithSpecs(specs, opts...)
}

// LoadMergedWithSpecs is LoadMerged generalized to optional files: a missing
// Optional file is skipped rather than failing the whole load (spec §4.5
// boundary: "optional missing file merge is a no-op").
func LoadMergedWithSpecs(specs []FileSpec, opts ...Option) (*Config, error) {
	if len(specs) == 0 {
		return nil, fmt.Errorf("config: LoadMergedWithSpecs requires at least one file spec")
	}

	var docs []value.Value
	for _, spec := range specs {
		b, err := os.ReadFile(spec.Path)
		if err != nil {
			if spec.Optional && os.IsNotExist(err) {
				continue
			}
			return nil, fmt.Errorf("config: %w", err)
		}
		doc, err := yamlconv.Decode(string(b))
		if err != nil {
			return nil, fmt.Errorf("config: %s: %w", spec.Path, err)
		}
		docs = append(docs, doc)
	}

	merged, err := merge.Merge(docs)
	if err != nil {
		return nil, err
	}

	return newConfig(merged, filepath.Dir(specs[0].Path), opts), nil
}
