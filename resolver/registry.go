// Package resolver implements the process-wide resolver registry and the
// env and file built-in resolvers (spec §4.2). Self-reference, the third
// always-present built-in, is recognized by the interp parser and resolved
// by resolveengine, not here.
package resolver

import (
	"fmt"
	"regexp"
	"sync"
	"sync/atomic"

	"github.com/lyzr/holoconf/value"
)

// Resolver is the plain resolver contract: an argument plus a forwarded
// kwarg bag, returning a bare Value. Sensitivity defaults to false unless the
// caller used sensitive= (handled by the engine, not here).
type Resolver interface {
	Resolve(arg string, kwargs map[string]string) (value.Value, error)
}

// SensitiveResolver is the contract for resolvers that need to declare
// sensitivity themselves (spec §4.4: "declare sensitivity by returning
// ResolvedValue{sensitive: true}").
type SensitiveResolver interface {
	ResolveSensitive(arg string, kwargs map[string]string) (value.ResolvedValue, error)
}

// ResolverFunc adapts a plain function to the Resolver interface.
type ResolverFunc func(arg string, kwargs map[string]string) (value.Value, error)

func (f ResolverFunc) Resolve(arg string, kwargs map[string]string) (value.Value, error) {
	return f(arg, kwargs)
}

var nameRE = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Registry is the process-wide name -> resolver map. Reads go through a
// lock-free atomic snapshot pointer (spec §5: "or are lock-free via a
// snapshot pointer swap"); writes take a mutex since registration is rare.
type Registry struct {
	mu       sync.Mutex
	snapshot atomic.Pointer[map[string]Resolver]
}

// NewRegistry returns a Registry seeded with the built-in env resolver (the
// engine dispatches file and self-reference tokens itself).
func NewRegistry() *Registry {
	r := &Registry{}
	empty := map[string]Resolver{}
	r.snapshot.Store(&empty)
	r.Register("env", EnvResolver{}, false)
	return r
}

// Default is the process-wide registry every Config shares unless
// constructed with an explicit WithRegistry option (spec §3: "RegistryHandle
// is a *Registry pointer into the process-wide singleton"). Registrations
// made after a Config is built are visible to that Config's later
// resolutions because Config holds this same pointer, not a copy.
var Default = NewRegistry()

// Register adds name -> res. Re-registering an existing name is a no-op
// unless force is set (spec §4.2 idempotency). Names containing anything
// other than [A-Za-z0-9_] starting with a letter/underscore are rejected:
// this is what makes the self-reference-vs-resolver-name collision in spec
// §9's Open Question structurally impossible, since a self-reference is
// recognized by its token shape alone (a head closed by '}' with no ':'),
// never by looking a name up in the registry.
func (r *Registry) Register(name string, res Resolver, force bool) error {
	if !nameRE.MatchString(name) {
		return fmt.Errorf("resolver: invalid name %q: must match %s", name, nameRE.String())
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	cur := *r.snapshot.Load()
	if _, exists := cur[name]; exists && !force {
		return nil
	}

	next := make(map[string]Resolver, len(cur)+1)
	for k, v := range cur {
		next[k] = v
	}
	next[name] = res
	r.snapshot.Store(&next)
	return nil
}

// Lookup returns the resolver registered under name, if any.
func (r *Registry) Lookup(name string) (Resolver, bool) {
	cur := *r.snapshot.Load()
	res, ok := cur[name]
	return res, ok
}

// Names returns all registered resolver names. Order is unspecified.
func (r *Registry) Names() []string {
	cur := *r.snapshot.Load()
	out := make([]string, 0, len(cur))
	for k := range cur {
		out = append(out, k)
	}
	return out
}

// Reset clears everything back to just the built-in env resolver. This is
// the test-isolation hook spec §9 calls for ("Expose a reset() hook for test
// isolation").
func (r *Registry) Reset() {
	r.mu.Lock()
	empty := map[string]Resolver{}
	r.snapshot.Store(&empty)
	r.mu.Unlock()

	r.Register("env", EnvResolver{}, true)
}
