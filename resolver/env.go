package resolver

import (
	"os"

	"github.com/lyzr/holoconf/value"
	"github.com/lyzr/holoconf/xerrors"
)

// EnvResolver implements "env:VAR" (spec §4.2 built-in #1): returns the
// named environment variable as a string, or NotFound if unset. It is the
// only one of the three always-present built-ins that is truly stateless
// process-global state, which is why it alone lives in Registry; the other
// two (file, self-reference) need a particular Config's base_path/raw tree
// and are resolved by the engine directly (see resolveengine) rather than
// through this registry.
type EnvResolver struct{}

func (EnvResolver) Resolve(arg string, _ map[string]string) (value.Value, error) {
	v, ok := os.LookupEnv(arg)
	if !ok {
		return value.Value{}, &xerrors.NotFound{Resolver: "env", Arg: arg}
	}
	return value.String(v), nil
}
