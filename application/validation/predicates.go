package validation

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strings"
	"time"
)

// timestampLayouts are tried in order by ParseTimestamp
var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.999999",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// IsOneOf reports whether value equals one of allowed. Numbers compare by value
// whatever their Go type, so a decoded JSON 1 matches an int 1. Objects and arrays
// compare deeply.
func IsOneOf(value any, allowed ...any) bool {
	v := normalize(value)
	for _, a := range allowed {
		if reflect.DeepEqual(v, normalize(a)) {
			return true
		}
	}
	return false
}

// IsAfter reports whether t is strictly after ref
func IsAfter(t, ref time.Time) bool {
	return t.After(ref)
}

// ParseTimestamp parses the date formats login APIs commonly return.
// Values without a zone are read as UTC.
func ParseTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised timestamp %q", s)
}

func normalize(v any) any {
	switch n := v.(type) {
	case int:
		return float64(n)
	case int8:
		return float64(n)
	case int16:
		return float64(n)
	case int32:
		return float64(n)
	case int64:
		return float64(n)
	case uint:
		return float64(n)
	case uint8:
		return float64(n)
	case uint16:
		return float64(n)
	case uint32:
		return float64(n)
	case uint64:
		return float64(n)
	case float32:
		return float64(n)
	case json.Number:
		if f, err := n.Float64(); err == nil {
			return f
		}
		return n.String()
	default:
		return v
	}
}

func isNumber(v any) bool {
	_, ok := normalize(v).(float64)
	return ok
}
