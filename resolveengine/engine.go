// Package resolveengine implements the pull-based tree walk that substitutes
// interpolation tokens (spec §4.3): stack-set cycle detection, inner-first
// nested token resolution, default=/sensitive= kwarg consumption, per-leaf
// sensitivity propagation, and post-resolve type coercion against a schema.
package resolveengine

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/lyzr/holoconf/interp"
	"github.com/lyzr/holoconf/resolver"
	"github.com/lyzr/holoconf/value"
	"github.com/lyzr/holoconf/xerrors"
)

// Engine walks a single Config's raw tree. The config package constructs one
// per accessor call from the Config's raw tree, registry and base_path
// (spec §3: Config holds a registry_ref + base_path the engine needs), and
// the per-access stack set lives on the call, not the Engine, so one
// Engine may serve concurrent ResolveRoot/ResolvePath calls safely (spec §5).
type Engine struct {
	Raw      value.Value
	Registry *resolver.Registry
	File     resolver.FileResolver

	// Decode parses YAML/JSON text into a Value tree; set by the config
	// package (to internal/yamlconv.Decode, which owns the yaml.v3
	// dependency) so the file resolver can
	// implement the whole-scalar structure-substitution rule without
	// resolveengine importing a YAML library directly.
	Decode func(text string) (value.Value, error)
}

// access holds the per-call cycle-detection state (spec §5: "per access
// call, not shared") plus the set of leaf paths (JSON-Pointer style) that
// resolved to a sensitive value, used by the config/serialize packages to
// redact without re-walking the tree against a separate taint structure.
type access struct {
	ctx       context.Context
	stack     map[string]struct{}
	order     []string
	sensitive map[string]bool
}

func newAccess(ctx context.Context) *access {
	return &access{ctx: ctx, stack: make(map[string]struct{}), sensitive: make(map[string]bool)}
}

func (a *access) push(path string) error {
	if _, in := a.stack[path]; in {
		start := 0
		for i, p := range a.order {
			if p == path {
				start = i
				break
			}
		}
		cycle := append(append([]string{}, a.order[start:]...), path)
		return &xerrors.CircularReferenceError{Cycle: cycle}
	}
	a.stack[path] = struct{}{}
	a.order = append(a.order, path)
	return nil
}

func (a *access) pop(path string) {
	delete(a.stack, path)
	if len(a.order) > 0 && a.order[len(a.order)-1] == path {
		a.order = a.order[:len(a.order)-1]
	}
}

// ResolveRoot fully resolves the root mapping.
func (e *Engine) ResolveRoot(ctx context.Context) (value.Value, error) {
	return e.ResolvePath(ctx, value.Path{})
}

// ResolvePath resolves only the subtree at path (and any transitive
// references it needs).
func (e *Engine) ResolvePath(ctx context.Context, path value.Path) (value.Value, error) {
	v, _, _, err := e.resolvePathSensitive(ctx, path)
	return v, err
}

// ResolveRootWithSensitivity fully resolves the root mapping and also
// returns the set of JSON-Pointer-style leaf paths that resolved sensitive
// (spec §4.7: redaction is applied per sensitive leaf).
func (e *Engine) ResolveRootWithSensitivity(ctx context.Context) (value.Value, map[string]bool, error) {
	v, _, sens, err := e.resolvePathSensitive(ctx, value.Path{})
	return v, sens, err
}

func (e *Engine) resolvePathSensitive(ctx context.Context, path value.Path) (value.Value, bool, map[string]bool, error) {
	a := newAccess(ctx)
	v, sens, err := e.resolveAt(a, path)
	return v, sens, a.sensitive, err
}

// ResolveRaw returns the unresolved subtree at path.
func (e *Engine) ResolveRaw(path value.Path) (value.Value, error) {
	v, ok := value.Lookup(e.Raw, path)
	if !ok {
		return value.Value{}, &xerrors.PathNotFoundError{Path: path.String()}
	}
	return v, nil
}

// resolveAt resolves the node at path, pushing/popping it on the stack set
// for the duration (spec §4.3 step 1). It returns the resolved value and
// whether any leaf under it was sensitive.
func (e *Engine) resolveAt(a *access, path value.Path) (value.Value, bool, error) {
	key := path.String()
	if err := a.push(key); err != nil {
		return value.Value{}, false, err
	}
	defer a.pop(key)

	raw, ok := value.Lookup(e.Raw, path)
	if !ok {
		return value.Value{}, false, &xerrors.PathNotFoundError{Path: key}
	}
	return e.resolveValue(a, path, raw)
}

// resolveValue dispatches on the static shape of v (spec §4.3 step 3:
// sequences/mappings recurse element-wise; taint per-leaf).
func (e *Engine) resolveValue(a *access, path value.Path, v value.Value) (value.Value, bool, error) {
	switch v.Kind {
	case value.KindString:
		return e.resolveString(a, path, v.StrVal())
	case value.KindSequence:
		items := v.SeqVal()
		out := make([]value.Value, len(items))
		sensitive := false
		for i, item := range items {
			rv, sens, err := e.resolveValue(a, path.Child(strconv.Itoa(i)), item)
			if err != nil {
				return value.Value{}, false, err
			}
			out[i] = rv
			sensitive = sensitive || sens
		}
		return value.Sequence(out), sensitive, nil
	case value.KindMapping:
		m := v.MapVal()
		out := value.NewMapping()
		sensitive := false
		for _, k := range m.Keys() {
			child, _ := m.Get(k)
			rv, sens, err := e.resolveValue(a, path.Child(k), child)
			if err != nil {
				return value.Value{}, false, err
			}
			out.Set(k, rv)
			sensitive = sensitive || sens
		}
		return value.MappingValue(out), sensitive, nil
	default:
		return v, false, nil
	}
}

// resolveString parses v for tokens and substitutes them (spec §4.3 step 2).
func (e *Engine) resolveString(a *access, path value.Path, s string) (value.Value, bool, error) {
	if !interp.HasToken(s) {
		return value.String(s), false, nil
	}

	segs, err := interp.Parse(s)
	if err != nil {
		return value.Value{}, false, &xerrors.ParseError{Path: path.Pointer(), Msg: err.Error(), Err: err}
	}

	var result value.Value
	var sensitive bool

	if tok, ok := interp.SingleToken(segs); ok {
		result, sensitive, err = e.resolveToken(a, path, tok, true)
		if err != nil {
			return value.Value{}, false, err
		}
	} else {
		// Multi-token or text+token: stringify every segment and concatenate
		// (spec §4.3 step 4).
		var out string
		for _, seg := range segs {
			if seg.Token == nil {
				out += seg.Literal
				continue
			}
			rv, sens, err := e.resolveToken(a, path, seg.Token, false)
			if err != nil {
				return value.Value{}, false, err
			}
			out += stringify(rv)
			sensitive = sensitive || sens
		}
		result, sensitive = value.String(out), sensitive
	}

	if sensitive {
		a.sensitive[path.Pointer()] = true
	}
	return result, sensitive, nil
}

// resolveToken resolves one Token, handling self-reference vs. external
// resolver dispatch and the default=/sensitive= engine kwargs. wholeScalar is
// true only when tok is the single, entire token of its enclosing scalar
// (spec §4.1: this is what lets "${file:x.yaml}" return parsed structure
// while "prefix-${file:x.yaml}" stays text).
func (e *Engine) resolveToken(a *access, path value.Path, tok *interp.Token, wholeScalar bool) (value.Value, bool, error) {
	if tok.SelfRef {
		target := value.ParsePath(tok.Name)
		v, sens, err := e.resolveAt(a, target)
		if err != nil {
			var pnf *xerrors.PathNotFoundError
			if asPathNotFound(err, &pnf) {
				return value.Value{}, false, &xerrors.PathNotFoundError{Path: tok.Name}
			}
			return value.Value{}, false, err
		}
		return v, sens, nil
	}

	argStr, _, err := e.stringifySegments(a, path, tok.Arg)
	if err != nil {
		return value.Value{}, false, err
	}

	kwargs := make(map[string]string, len(tok.Kwargs))
	var defaultVal *string
	var sensitiveOverride *bool
	for _, k := range tok.KwargOrder {
		vs, _, err := e.stringifySegments(a, path, tok.Kwargs[k])
		if err != nil {
			return value.Value{}, false, err
		}
		switch k {
		case "default":
			d := vs
			defaultVal = &d
		case "sensitive":
			b := vs == "true"
			sensitiveOverride = &b
		default:
			kwargs[k] = vs
		}
	}

	if tok.Name == "file" {
		return e.resolveFileToken(path, argStr, defaultVal, sensitiveOverride, wholeScalar)
	}

	res, ok := e.Registry.Lookup(tok.Name)
	if !ok {
		return value.Value{}, false, &xerrors.ResolverError{
			Resolver: tok.Name,
			Arg:      argStr,
			Err:      fmt.Errorf("no resolver registered under this name"),
		}
	}

	if sres, ok := res.(resolver.SensitiveResolver); ok {
		rv, err := sres.ResolveSensitive(argStr, kwargs)
		if err != nil {
			return e.applyDefaultOrFail(tok.Name, argStr, err, defaultVal)
		}
		sens := rv.Sensitive
		if sensitiveOverride != nil {
			sens = *sensitiveOverride
		}
		return rv.Inner, sens, nil
	}

	v, err := res.Resolve(argStr, kwargs)
	if err != nil {
		return e.applyDefaultOrFail(tok.Name, argStr, err, defaultVal)
	}
	sens := false
	if sensitiveOverride != nil {
		sens = *sensitiveOverride
	}
	return v, sens, nil
}

func (e *Engine) applyDefaultOrFail(name, arg string, err error, defaultVal *string) (value.Value, bool, error) {
	if xerrors.IsNotFound(err) && defaultVal != nil {
		return value.String(*defaultVal), false, nil
	}
	if xerrors.IsNotFound(err) {
		return value.Value{}, false, &xerrors.ResolverError{Resolver: name, Arg: arg, Err: err}
	}
	return value.Value{}, false, &xerrors.ResolverError{Resolver: name, Arg: arg, Err: err}
}

// resolveFileToken implements the file resolver's "parse as structure only
// when the token is the entire scalar" rule (spec §4.2 built-in #2): when
// wholeScalar is true and e.Decode can parse the file's text as YAML/JSON,
// the parsed Value is substituted in place of the literal text.
func (e *Engine) resolveFileToken(path value.Path, arg string, defaultVal *string, sensitiveOverride *bool, wholeScalar bool) (value.Value, bool, error) {
	text, err := e.File.ReadFile(arg)
	if err != nil {
		if xerrors.IsNotFound(err) && defaultVal != nil {
			return value.String(*defaultVal), false, nil
		}
		return value.Value{}, false, &xerrors.ResolverError{Resolver: "file", Arg: arg, Err: err}
	}

	sens := false
	if sensitiveOverride != nil {
		sens = *sensitiveOverride
	}

	if wholeScalar && e.Decode != nil {
		if parsed, decErr := e.Decode(text); decErr == nil {
			return parsed, sens, nil
		}
	}
	return value.String(text), sens, nil
}

// stringifySegments resolves each segment and concatenates, used for token
// ARG and kwarg VAL (which the grammar allows to themselves contain nested
// tokens, resolved inner-first).
func (e *Engine) stringifySegments(a *access, path value.Path, segs []interp.Segment) (string, bool, error) {
	var out string
	sensitive := false
	for _, seg := range segs {
		if seg.Token == nil {
			out += seg.Literal
			continue
		}
		rv, sens, err := e.resolveToken(a, path, seg.Token, false)
		if err != nil {
			return "", false, err
		}
		out += stringify(rv)
		sensitive = sensitive || sens
	}
	return out, sensitive, nil
}

// stringify implements the stringification rule of spec §4.3 step 4: Null ->
// "", Bool -> "true"/"false", numbers -> lexical, sequences/mappings -> JSON
// compact form.
func stringify(v value.Value) string {
	switch v.Kind {
	case value.KindNull:
		return ""
	case value.KindBool:
		if v.BoolVal() {
			return "true"
		}
		return "false"
	case value.KindInt:
		return strconv.FormatInt(v.IntVal(), 10)
	case value.KindFloat:
		return strconv.FormatFloat(v.FloatVal(), 'g', -1, 64)
	case value.KindString:
		return v.StrVal()
	case value.KindSequence, value.KindMapping:
		b, err := json.Marshal(toJSONAny(v))
		if err != nil {
			return ""
		}
		return string(b)
	default:
		return ""
	}
}

func toJSONAny(v value.Value) any {
	switch v.Kind {
	case value.KindNull:
		return nil
	case value.KindBool:
		return v.BoolVal()
	case value.KindInt:
		return v.IntVal()
	case value.KindFloat:
		return v.FloatVal()
	case value.KindString:
		return v.StrVal()
	case value.KindSequence:
		items := v.SeqVal()
		out := make([]any, len(items))
		for i, it := range items {
			out[i] = toJSONAny(it)
		}
		return out
	case value.KindMapping:
		out := make(map[string]any, v.MapVal().Len())
		for _, k := range v.MapVal().Keys() {
			child, _ := v.MapVal().Get(k)
			out[k] = toJSONAny(child)
		}
		return out
	default:
		return nil
	}
}

func asPathNotFound(err error, target **xerrors.PathNotFoundError) bool {
	pnf, ok := err.(*xerrors.PathNotFoundError)
	if !ok {
		return false
	}
	*target = pnf
	return true
}
