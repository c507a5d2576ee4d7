// Package config implements the public Config/Schema surface (spec §3, §6):
// construction from one or more documents, deep-merge, resolved/raw
// accessors, and schema validation, all built on value, interp, resolver,
// resolveengine, merge, schema, and serialize.
package config

import (
	"context"

	"github.com/lyzr/holoconf/internal/xlog"
	"github.com/lyzr/holoconf/internal/yamlconv"
	"github.com/lyzr/holoconf/resolveengine"
	"github.com/lyzr/holoconf/resolver"
	"github.com/lyzr/holoconf/schema"
	"github.com/lyzr/holoconf/serialize"
	"github.com/lyzr/holoconf/value"
	"github.com/lyzr/holoconf/xerrors"
)

// Config holds an immutable raw document tree plus the environment needed to
// resolve it (spec §3: Config{raw, base_path, registry_ref}). All exported
// methods are safe to call concurrently; nothing here mutates raw after
// construction (spec §5).
type Config struct {
	raw      value.Value
	basePath string
	registry *resolver.Registry
	log      *xlog.Logger
}

// Option configures Config construction.
type Option func(*Config)

// WithRegistry overrides the process-wide default registry, mainly for test
// isolation (pair with resolver.NewRegistry()).
func WithRegistry(r *resolver.Registry) Option {
	return func(c *Config) { c.registry = r }
}

// WithLogger attaches a logger that receives Debug-level resolution events
// (Get and whole-document resolution); merge and validation are not logged.
// Defaults to xlog.Discard.
func WithLogger(l *xlog.Logger) Option {
	return func(c *Config) { c.log = l }
}

func newConfig(raw value.Value, basePath string, opts []Option) *Config {
	c := &Config{raw: raw, basePath: basePath, registry: resolver.Default, log: xlog.Discard}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Config) engine() *resolveengine.Engine {
	return &resolveengine.Engine{
		Raw:      c.raw,
		Registry: c.registry,
		File:     resolver.FileResolver{Base: c.basePath},
		Decode:   yamlconv.Decode,
	}
}

// RegisterResolver registers a custom resolver on this Config's registry
// (spec §4.2/§6: "RegisterResolver(name, callable, force)").
func (c *Config) RegisterResolver(name string, res resolver.Resolver, force bool) error {
	return c.registry.Register(name, res, force)
}

// Get resolves and returns the value at the dotted path (empty path means
// the whole document).
func (c *Config) Get(path string) (value.Value, error) {
	c.log.WithPath(path).Debug("resolving path")
	return c.engine().ResolvePath(context.Background(), value.ParsePath(path))
}

// GetRaw returns the unresolved value at path, with no interpolation
// performed (spec invariant: GetRaw is structurally equal to the original
// parsed tree).
func (c *Config) GetRaw(path string) (value.Value, error) {
	return c.engine().ResolveRaw(value.ParsePath(path))
}

// resolvedWithSensitivity resolves the full document and its sensitive-leaf
// set once, shared by ToYAML/ToJSON/ToMap/Validate/ValidateCollect.
func (c *Config) resolvedWithSensitivity() (value.Value, map[string]bool, error) {
	c.log.Debug("resolving full document")
	return c.engine().ResolveRootWithSensitivity(context.Background())
}

// ToYAML renders the document as YAML text. resolve controls whether
// interpolation runs first; redact (only meaningful when resolve is true)
// replaces sensitive leaves with "***REDACTED***" (spec §4.7).
func (c *Config) ToYAML(resolve, redact bool) (string, error) {
	v, err := c.render(resolve, redact)
	if err != nil {
		return "", err
	}
	return serialize.ToYAML(v)
}

// ToJSON renders the document as JSON text with the same resolve/redact
// semantics as ToYAML.
func (c *Config) ToJSON(resolve, redact bool) (string, error) {
	v, err := c.render(resolve, redact)
	if err != nil {
		return "", err
	}
	return serialize.ToJSON(v)
}

// ToMap renders the document as plain Go values (map[string]any/[]any/
// scalars), the to_dict analogue (spec §6 added note).
func (c *Config) ToMap(resolve, redact bool) (any, error) {
	v, err := c.render(resolve, redact)
	if err != nil {
		return nil, err
	}
	return serialize.ToMap(v), nil
}

func (c *Config) render(resolve, redact bool) (value.Value, error) {
	if !resolve {
		return c.raw, nil
	}
	v, sensitive, err := c.resolvedWithSensitivity()
	if err != nil {
		return value.Value{}, err
	}
	if redact {
		v = serialize.Redact(v, sensitive)
	}
	return v, nil
}

// Validate resolves the document, coerces resolved strings against s's
// declared scalar types, and checks the result against s, returning the
// first failure as an *xerrors.ValidationError (spec §4.6 mode "validate"). Coercion runs
// first because a resolver's output is always a string until matched against
// a schema type (e.g. "${env:DB_PORT}" satisfying `type: integer`).
func (c *Config) Validate(s *schema.Schema) error {
	v, _, err := c.resolvedWithSensitivity()
	if err != nil {
		return err
	}
	if _, failures := s.ValidateWithCoercion(v); len(failures) > 0 {
		return &xerrors.ValidationError{Path: failures[0].Path, Reason: failures[0].Reason}
	}
	return nil
}

// ValidateRaw checks the unresolved document against s, exempting
// token-bearing scalars from type checks (spec §4.6 mode "validate_raw").
func (c *Config) ValidateRaw(s *schema.Schema) []schema.Failure {
	return s.ValidateRaw(c.raw)
}

// ValidateCollect resolves the document, coerces resolved strings against
// s's declared scalar types, and checks the result against s, returning
// every failure rather than stopping at the first (spec §4.6 mode
// "validate_collect").
func (c *Config) ValidateCollect(s *schema.Schema) ([]schema.Failure, error) {
	v, _, err := c.resolvedWithSensitivity()
	if err != nil {
		return nil, err
	}
	_, failures := s.ValidateWithCoercion(v)
	return failures, nil
}
