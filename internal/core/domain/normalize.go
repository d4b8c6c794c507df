package domain

import (
	"strconv"
	"strings"
)

// NormalizeCode produces the canonical lookup key for a currency identifier:
// trimmed, lowercase. Lookups and registration both go through this, so
// "EUR", "eur " and "Eur" all address the same table slot.
func NormalizeCode(identifier string) string {
	return strings.ToLower(strings.TrimSpace(identifier))
}

// NormalizeNumeric coerces an ISO numeric code given as an int, a numeric
// string ("840", "008") or a float into an integer key. It reports false for
// anything malformed instead of failing; an unparseable numeric code is the
// same as an unknown one.
func NormalizeNumeric(value any) (int, bool) {
	switch v := value.(type) {
	case int:
		return v, true
	case int32:
		return int(v), true
	case int64:
		return int(v), true
	case float64:
		n := int(v)
		if float64(n) != v {
			return 0, false
		}
		return n, true
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return 0, false
		}
		return n, true
	default:
		return 0, false
	}
}
