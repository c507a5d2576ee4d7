package schema

import "github.com/lyzr/holoconf/value"

// validateObject applies properties/required/additionalProperties (spec
// §4.6).
func (vl *validator) validateObject(sn node, v value.Value, path string) error {
	if v.Kind != value.KindMapping {
		return nil
	}
	m := v.MapVal()

	propsVal, hasProps := sn.field("properties")
	var props *value.Mapping
	if hasProps && propsVal.Kind == value.KindMapping {
		props = propsVal.MapVal()
	}

	if reqVal, ok := sn.field("required"); ok && reqVal.Kind == value.KindSequence {
		for _, r := range reqVal.SeqVal() {
			if r.Kind != value.KindString {
				continue
			}
			if _, present := m.Get(r.StrVal()); !present {
				if err := vl.fail(path, "missing required property "+r.StrVal()); err != nil {
					return err
				}
			}
		}
	}

	if props != nil {
		for _, k := range m.Keys() {
			propSchema, ok := props.Get(k)
			if !ok {
				continue
			}
			child, _ := m.Get(k)
			if err := vl.validateNode(propSchema, child, childPath(path, k)); err != nil {
				return err
			}
		}
	}

	addlVal, hasAddl := sn.field("additionalProperties")
	if !hasAddl {
		return nil
	}

	switch addlVal.Kind {
	case value.KindBool:
		if addlVal.BoolVal() {
			return nil
		}
		for _, k := range m.Keys() {
			if props != nil {
				if _, declared := props.Get(k); declared {
					continue
				}
			}
			if err := vl.fail(childPath(path, k), "additional property not allowed"); err != nil {
				return err
			}
		}
	case value.KindMapping:
		for _, k := range m.Keys() {
			if props != nil {
				if _, declared := props.Get(k); declared {
					continue
				}
			}
			child, _ := m.Get(k)
			if err := vl.validateNode(addlVal, child, childPath(path, k)); err != nil {
				return err
			}
		}
	}

	return nil
}
