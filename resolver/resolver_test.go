package resolver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lyzr/holoconf/value"
	"github.com/lyzr/holoconf/xerrors"
)

// fakeSSMResolver is a fixture shaped like a real external resolver (e.g. the
// reference implementation's holoconf_aws.ssm module): it signals "not
// found" via xerrors.NotFound, declares sensitivity per parameter by
// implementing SensitiveResolver, and records the kwargs it actually
// received so a test can assert the non-engine kwargs (region, profile)
// reach it verbatim.
type fakeSSMResolver struct {
	params     map[string]string
	lastKwargs map[string]string
}

func (r *fakeSSMResolver) Resolve(arg string, kwargs map[string]string) (value.Value, error) {
	rv, err := r.ResolveSensitive(arg, kwargs)
	return rv.Inner, err
}

func (r *fakeSSMResolver) ResolveSensitive(arg string, kwargs map[string]string) (value.ResolvedValue, error) {
	r.lastKwargs = kwargs
	v, ok := r.params[arg]
	if !ok {
		return value.ResolvedValue{}, &xerrors.NotFound{Resolver: "ssm", Arg: arg}
	}
	return value.Resolved(value.String(v), true), nil
}

func TestSSMFixtureRegistersAsSensitiveResolver(t *testing.T) {
	res := &fakeSSMResolver{params: map[string]string{"/db/password": "s3cr3t"}}
	reg := NewRegistry()
	require.NoError(t, reg.Register("ssm", res, false))

	looked, ok := reg.Lookup("ssm")
	require.True(t, ok)
	sres, ok := looked.(SensitiveResolver)
	require.True(t, ok, "fixture must satisfy SensitiveResolver so the engine prefers it over plain Resolve")

	rv, err := sres.ResolveSensitive("/db/password", map[string]string{"region": "us-east-1", "profile": "prod"})
	require.NoError(t, err)
	assert.Equal(t, "s3cr3t", rv.Inner.StrVal())
	assert.True(t, rv.Sensitive)

	// Engine-consumed kwargs (default=/sensitive=) never reach the resolver;
	// everything else (region=, profile=) is forwarded verbatim (spec §4.2).
	assert.Equal(t, map[string]string{"region": "us-east-1", "profile": "prod"}, res.lastKwargs)
}

func TestSSMFixtureNotFoundIsDetectedViaXerrors(t *testing.T) {
	res := &fakeSSMResolver{params: map[string]string{}}
	reg := NewRegistry()
	require.NoError(t, reg.Register("ssm", res, false))

	looked, _ := reg.Lookup("ssm")
	sres := looked.(SensitiveResolver)

	_, err := sres.ResolveSensitive("/missing", nil)
	require.Error(t, err)
	assert.True(t, xerrors.IsNotFound(err))
}
