package schema

import "github.com/lyzr/holoconf/value"

// validateCombinators applies allOf/anyOf/oneOf/not (spec §4.6). allOf
// branches are validated with vl itself, so their failures are reported
// directly. Each anyOf/oneOf/not branch is evaluated with its own scratch
// validator so a failing branch never leaks into vl's reported failures;
// only the combinator's own verdict does.
func (vl *validator) validateCombinators(sn node, v value.Value, path string) error {
	if allOf, ok := sn.field("allOf"); ok && allOf.Kind == value.KindSequence {
		for _, sub := range allOf.SeqVal() {
			if err := vl.validateNode(sub, v, path); err != nil {
				return err
			}
		}
	}

	if anyOf, ok := sn.field("anyOf"); ok && anyOf.Kind == value.KindSequence {
		branches := anyOf.SeqVal()
		matched := false
		for _, sub := range branches {
			if vl.branchPasses(sub, v) {
				matched = true
				break
			}
		}
		if !matched {
			if err := vl.fail(path, "value matches none of anyOf"); err != nil {
				return err
			}
		}
	}

	if oneOf, ok := sn.field("oneOf"); ok && oneOf.Kind == value.KindSequence {
		branches := oneOf.SeqVal()
		matches := 0
		for _, sub := range branches {
			if vl.branchPasses(sub, v) {
				matches++
			}
		}
		if matches != 1 {
			if err := vl.fail(path, "value must match exactly one of oneOf"); err != nil {
				return err
			}
		}
	}

	if notSchema, ok := sn.field("not"); ok {
		if vl.branchPasses(notSchema, v) {
			if err := vl.fail(path, "value must not match not-schema"); err != nil {
				return err
			}
		}
	}

	return nil
}

// branchPasses validates v against schemaVal in isolation, reporting only
// whether it passed. It inherits vl's raw mode so a token-bearing scalar
// stays exempt from type checks inside combinator branches too.
func (vl *validator) branchPasses(schemaVal value.Value, v value.Value) bool {
	scratch := &validator{collectAll: true, raw: vl.raw}
	_ = scratch.validateNode(schemaVal, v, "/")
	return len(scratch.failures) == 0
}
