package importer

import (
	"encoding/json"
	"sort"
)

// Coerce extracts raw resume records from an import payload. Three shapes are
// accepted transparently: a single resume object, a backup envelope whose
// resumes field is an array or an id-keyed map, and a bare array of resume
// objects. A payload that matches none of them, or that yields zero records,
// is an error rather than a silent no-op.
func Coerce(data []byte) ([]map[string]any, error) {
	var decoded any
	if err := json.Unmarshal(data, &decoded); err != nil {
		return nil, &ParseError{Cause: err}
	}

	records := extract(decoded)
	if len(records) == 0 {
		return nil, &EmptyError{}
	}
	return records, nil
}

func extract(decoded any) []map[string]any {
	switch v := decoded.(type) {
	case map[string]any:
		resumes, ok := v["resumes"]
		if !ok {
			// A bare object without a resumes field is a single resume
			return []map[string]any{v}
		}
		switch rs := resumes.(type) {
		case []any:
			return objectsOf(rs)
		case map[string]any:
			return valuesSortedByKey(rs)
		default:
			return nil
		}
	case []any:
		return objectsOf(v)
	default:
		return nil
	}
}

func objectsOf(items []any) []map[string]any {
	out := make([]map[string]any, 0, len(items))
	for _, item := range items {
		if m, ok := item.(map[string]any); ok {
			out = append(out, m)
		}
	}
	return out
}

// valuesSortedByKey walks an id-keyed resume map in key order so repeated
// imports of the same backup behave identically.
func valuesSortedByKey(m map[string]any) []map[string]any {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]map[string]any, 0, len(keys))
	for _, k := range keys {
		if obj, ok := m[k].(map[string]any); ok {
			out = append(out, obj)
		}
	}
	return out
}
