// Package xerrors implements the holoconf error taxonomy (spec §7): typed
// errors carrying enough structure (paths, cycles) for callers to branch on,
// while still composing with the standard errors.Is/As/Unwrap machinery the
// way the rest of this module's errors do.
package xerrors

import (
	"errors"
	"fmt"
)

// ParseError signals a YAML/JSON syntax error or a malformed interpolation
// token.
type ParseError struct {
	Path string // JSON-Pointer-style location, empty if document-level
	Msg  string
	Err  error
}

func (e *ParseError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("parse error at %s: %s", e.Path, e.Msg)
	}
	return fmt.Sprintf("parse error: %s", e.Msg)
}

func (e *ParseError) Unwrap() error { return e.Err }

// ValidationError signals a schema violation after resolution.
type ValidationError struct {
	Path   string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error at %s: %s", e.Path, e.Reason)
}

// ResolverError signals an external resolver failure (non-NotFound) or an
// unregistered resolver name.
type ResolverError struct {
	Resolver string
	Arg      string
	Err      error
}

func (e *ResolverError) Error() string {
	return fmt.Sprintf("resolver %q failed for %q: %v", e.Resolver, e.Arg, e.Err)
}

func (e *ResolverError) Unwrap() error { return e.Err }

// PathNotFoundError signals a missing dotted path or self-reference target.
type PathNotFoundError struct {
	Path string
}

func (e *PathNotFoundError) Error() string {
	return fmt.Sprintf("path not found: %s", e.Path)
}

// CircularReferenceError signals a self-reference cycle, carrying the cycle
// in encounter order.
type CircularReferenceError struct {
	Cycle []string
}

func (e *CircularReferenceError) Error() string {
	msg := "circular reference detected:"
	for i, p := range e.Cycle {
		if i > 0 {
			msg += " ->"
		}
		msg += " " + p
	}
	return msg
}

// TypeCoercionError signals a resolved string that cannot be coerced to the
// schema-required scalar type.
type TypeCoercionError struct {
	Path string
	Want string
	Got  string
}

func (e *TypeCoercionError) Error() string {
	return fmt.Sprintf("cannot coerce %s (value %q) to %s", e.Path, e.Got, e.Want)
}

// NotFound is the sentinel a resolver returns to signal "argument not
// present" (distinct from any other failure, spec §4.4). The engine
// translates NotFound into either a default= substitution or a ResolverError.
type NotFound struct {
	Resolver string
	Arg      string
}

func (e *NotFound) Error() string {
	return fmt.Sprintf("%s: not found: %s", e.Resolver, e.Arg)
}

// IsNotFound reports whether err is (or wraps) a *NotFound.
func IsNotFound(err error) bool {
	var nf *NotFound
	return errors.As(err, &nf)
}
