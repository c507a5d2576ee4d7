package schema

import (
	"os"

	"github.com/lyzr/holoconf/internal/yamlconv"
)

// FromYAML parses schema document text (YAML or JSON) into a Schema.
func FromYAML(text string) (*Schema, error) {
	tree, err := yamlconv.Decode(text)
	if err != nil {
		return nil, err
	}
	return New(tree), nil
}

// Load reads and parses a schema document from path.
func Load(path string) (*Schema, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return FromYAML(string(b))
}
