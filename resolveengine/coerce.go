package resolveengine

import (
	"strconv"

	"github.com/lyzr/holoconf/value"
	"github.com/lyzr/holoconf/xerrors"
)

// Coerce implements spec §4.3's post-resolve type coercion: when a schema
// declares a scalar type and the resolved value is a string, attempt a
// lossless coercion. Coercion never applies without a schema in play, so
// callers only invoke this when schema != nil (the schema package's
// resolving validator does).
func Coerce(path value.Path, v value.Value, want string) (value.Value, error) {
	if v.Kind != value.KindString {
		return v, nil
	}
	s := v.StrVal()

	switch want {
	case "boolean":
		switch s {
		case "true":
			return value.Bool(true), nil
		case "false":
			return value.Bool(false), nil
		}
		return value.Value{}, &xerrors.TypeCoercionError{Path: path.Pointer(), Want: want, Got: s}
	case "integer":
		i, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return value.Value{}, &xerrors.TypeCoercionError{Path: path.Pointer(), Want: want, Got: s}
		}
		return value.Int(i), nil
	case "number":
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return value.Value{}, &xerrors.TypeCoercionError{Path: path.Pointer(), Want: want, Got: s}
		}
		return value.Float(f), nil
	default:
		// "string"/"null"/"array"/"object" need no coercion.
		return v, nil
	}
}
