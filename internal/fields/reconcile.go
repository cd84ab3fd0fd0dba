// Package fields resolves ambiguous and legacy field names on raw decoded-JSON
// records. Historical storage versions wrote several namings for the same
// concept; the reconciler picks the canonical value with a fixed precedence so
// every normalization entry point agrees.
package fields

import (
	"strconv"
	"strings"
)

// The documented legacy pairs, canonical name first:
//
//	company/employer, position/role, website/portfolio,
//	link/github (projects), achievements/coursework (education)
//
// Pick applies the shared precedence: the current name's value wins when it is
// non-empty after trimming, the legacy name's value is the fallback, and the
// result is empty otherwise. Applying the same rule on every read and write
// keeps normalization idempotent.
func Pick(raw map[string]any, current, legacy string) string {
	if v := String(raw, current); v != "" {
		return v
	}
	return String(raw, legacy)
}

// String returns the trimmed string form of raw[key], tolerating JSON numbers
// (a GPA stored as 3.8 reads back as "3.8"). Missing keys and unsupported
// value types yield "".
func String(raw map[string]any, key string) string {
	if raw == nil {
		return ""
	}
	return Coerce(raw[key])
}

// Coerce converts a decoded-JSON scalar to its trimmed string form.
func Coerce(v any) string {
	switch val := v.(type) {
	case string:
		return strings.TrimSpace(val)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case int:
		return strconv.Itoa(val)
	default:
		return ""
	}
}

// Map returns raw[key] as an object, or nil when it is absent or another type.
func Map(raw map[string]any, key string) map[string]any {
	if raw == nil {
		return nil
	}
	m, _ := raw[key].(map[string]any)
	return m
}

// List returns raw[key] as a decoded-JSON list, or nil.
func List(raw map[string]any, key string) []any {
	if raw == nil {
		return nil
	}
	switch v := raw[key].(type) {
	case []any:
		return v
	case []string:
		out := make([]any, len(v))
		for i, s := range v {
			out[i] = s
		}
		return out
	default:
		return nil
	}
}

// StringList returns raw[key] as trimmed non-empty strings, dropping every
// element that is not a string scalar.
func StringList(raw map[string]any, key string) []string {
	items := List(raw, key)
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s := Coerce(item); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// Has reports whether key exists on the record at all, regardless of value.
func Has(raw map[string]any, key string) bool {
	if raw == nil {
		return false
	}
	_, ok := raw[key]
	return ok
}
