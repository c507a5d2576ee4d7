package schema

import (
	"strconv"

	"github.com/lyzr/holoconf/value"
)

// validateArray applies items/minItems/maxItems/uniqueItems (spec §4.6).
// items may be a single schema (applied to every element) or a tuple of
// schemas (applied positionally; extra elements beyond the tuple are left
// unchecked, matching the JSON-Schema subset's "tuple validation" shape).
func (vl *validator) validateArray(sn node, v value.Value, path string) error {
	if v.Kind != value.KindSequence {
		return nil
	}
	items := v.SeqVal()

	if minN, ok := intField(sn, "minItems"); ok && len(items) < minN {
		if err := vl.fail(path, "array shorter than minItems"); err != nil {
			return err
		}
	}
	if maxN, ok := intField(sn, "maxItems"); ok && len(items) > maxN {
		if err := vl.fail(path, "array longer than maxItems"); err != nil {
			return err
		}
	}

	if uniq, ok := sn.field("uniqueItems"); ok && uniq.Kind == value.KindBool && uniq.BoolVal() {
		for i := 0; i < len(items); i++ {
			for j := i + 1; j < len(items); j++ {
				if value.Equal(items[i], items[j]) {
					if err := vl.fail(path, "array items must be unique"); err != nil {
						return err
					}
				}
			}
		}
	}

	itemsSchema, hasItems := sn.field("items")
	if !hasItems {
		return nil
	}

	if itemsSchema.Kind == value.KindSequence {
		tuple := itemsSchema.SeqVal()
		for i, item := range items {
			if i >= len(tuple) {
				break
			}
			if err := vl.validateNode(tuple[i], item, childPath(path, strconv.Itoa(i))); err != nil {
				return err
			}
		}
		return nil
	}

	for i, item := range items {
		if err := vl.validateNode(itemsSchema, item, childPath(path, strconv.Itoa(i))); err != nil {
			return err
		}
	}
	return nil
}

func childPath(parent, seg string) string {
	if parent == "/" {
		return "/" + seg
	}
	return parent + "/" + seg
}
