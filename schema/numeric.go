package schema

import "github.com/lyzr/holoconf/value"

// validateNumeric applies minimum/maximum (spec §4.6). Non-numeric v is left
// to the earlier type check; this function is a no-op when v isn't Int/Float.
func (vl *validator) validateNumeric(sn node, v value.Value, path string) error {
	if v.Kind != value.KindInt && v.Kind != value.KindFloat {
		return nil
	}
	f := numericOf(v)

	if min, ok := numericField(sn, "minimum"); ok && f < min {
		if err := vl.fail(path, "value below minimum"); err != nil {
			return err
		}
	}
	if max, ok := numericField(sn, "maximum"); ok && f > max {
		if err := vl.fail(path, "value above maximum"); err != nil {
			return err
		}
	}
	return nil
}

func numericOf(v value.Value) float64 {
	if v.Kind == value.KindInt {
		return float64(v.IntVal())
	}
	return v.FloatVal()
}

func numericField(sn node, name string) (float64, bool) {
	v, ok := sn.field(name)
	if !ok {
		return 0, false
	}
	if v.Kind != value.KindInt && v.Kind != value.KindFloat {
		return 0, false
	}
	return numericOf(v), true
}
