package schema

import (
	"regexp"
	"sync"
	"unicode/utf8"

	"github.com/lyzr/holoconf/value"
)

// patternCache avoids recompiling the same pattern schema for every leaf a
// large document validates (schemas are reused across many documents in the
// CLI's validate subcommand, so this amortizes well).
var (
	patternCacheMu sync.Mutex
	patternCache   = map[string]*regexp.Regexp{}
)

func compilePattern(pat string) (*regexp.Regexp, error) {
	patternCacheMu.Lock()
	defer patternCacheMu.Unlock()
	if re, ok := patternCache[pat]; ok {
		return re, nil
	}
	re, err := regexp.Compile(pat)
	if err != nil {
		return nil, err
	}
	patternCache[pat] = re
	return re, nil
}

// validateString applies minLength/maxLength/pattern (spec §4.6). pattern is
// matched with Go's RE2 engine, a documented deviation from PCRE/ECMA regex
// dialects some holoconf schemas may have been authored against.
func (vl *validator) validateString(sn node, v value.Value, path string) error {
	if v.Kind != value.KindString {
		return nil
	}
	s := v.StrVal()
	n := utf8.RuneCountInString(s)

	if minLen, ok := intField(sn, "minLength"); ok && n < minLen {
		if err := vl.fail(path, "string shorter than minLength"); err != nil {
			return err
		}
	}
	if maxLen, ok := intField(sn, "maxLength"); ok && n > maxLen {
		if err := vl.fail(path, "string longer than maxLength"); err != nil {
			return err
		}
	}
	if pat, ok := sn.stringField("pattern"); ok {
		re, err := compilePattern(pat)
		if err != nil {
			if ferr := vl.fail(path, "schema pattern does not compile: "+err.Error()); ferr != nil {
				return ferr
			}
		} else if !re.MatchString(s) {
			if ferr := vl.fail(path, "string does not match pattern"); ferr != nil {
				return ferr
			}
		}
	}
	return nil
}

func intField(sn node, name string) (int, bool) {
	v, ok := sn.field(name)
	if !ok {
		return 0, false
	}
	switch v.Kind {
	case value.KindInt:
		return int(v.IntVal()), true
	case value.KindFloat:
		return int(v.FloatVal()), true
	default:
		return 0, false
	}
}
