// Package skills flattens every historical skills representation into one
// canonical deduplicated list. Storage has seen skills persisted as a flat
// list, a free string, a category map, and a list of category objects; all of
// them must load without error.
package skills

import (
	"sort"
	"strings"

	"github.com/jonathan/resume-vault/internal/fields"
)

// Shape identifies which legacy representation a raw skills value uses.
// Classification happens once, before dispatch, so each branch handles
// exactly one known shape.
type Shape int

// The known skills shapes.
const (
	ShapeUnknown Shape = iota
	ShapeFlatList
	ShapeStringBlob
	ShapeCategoryMap
	ShapeCategoryObjectList
)

// String returns the shape name for logs and test output.
func (s Shape) String() string {
	switch s {
	case ShapeFlatList:
		return "flat_list"
	case ShapeStringBlob:
		return "string_blob"
	case ShapeCategoryMap:
		return "category_map"
	case ShapeCategoryObjectList:
		return "category_object_list"
	default:
		return "unknown"
	}
}

// Classify tags a raw decoded-JSON skills value with its shape.
func Classify(raw any) Shape {
	switch v := raw.(type) {
	case string:
		return ShapeStringBlob
	case map[string]any:
		return ShapeCategoryMap
	case []string:
		return ShapeFlatList
	case []any:
		for _, item := range v {
			if _, ok := item.(map[string]any); ok {
				return ShapeCategoryObjectList
			}
		}
		return ShapeFlatList
	default:
		return ShapeUnknown
	}
}

// Normalize converts any supported skills shape into a flat list: split on
// comma/semicolon/newline, trimmed, empty entries dropped, deduplicated
// case-insensitively with first-occurrence order preserved. Unknown shapes
// yield an empty list; this function never fails.
func Normalize(raw any) []string {
	var collected []string

	switch Classify(raw) {
	case ShapeStringBlob:
		collected = Split(raw.(string))
	case ShapeCategoryMap:
		collected = fromCategoryMap(raw.(map[string]any))
	case ShapeCategoryObjectList:
		collected = fromCategoryObjects(raw.([]any))
	case ShapeFlatList:
		collected = fromFlatList(raw)
	default:
		return []string{}
	}

	return Dedupe(collected)
}

// Split breaks a free-form skills string on comma, semicolon, and newline.
func Split(blob string) []string {
	parts := strings.FieldsFunc(blob, func(r rune) bool {
		return r == ',' || r == ';' || r == '\n'
	})
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// Dedupe removes case-insensitive duplicates, keeping the first occurrence
// and its original casing.
func Dedupe(in []string) []string {
	out := make([]string, 0, len(in))
	seen := make(map[string]struct{}, len(in))
	for _, skill := range in {
		skill = strings.TrimSpace(skill)
		if skill == "" {
			continue
		}
		key := strings.ToLower(skill)
		if _, exists := seen[key]; exists {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, skill)
	}
	return out
}

// fromCategoryMap handles the legacy {category: entries} map. Go maps have no
// stable iteration order, so categories are walked alphabetically to keep the
// output deterministic.
func fromCategoryMap(m map[string]any) []string {
	categories := make([]string, 0, len(m))
	for category := range m {
		categories = append(categories, category)
	}
	sort.Strings(categories)

	var out []string
	for _, category := range categories {
		out = append(out, entriesOf(m[category])...)
	}
	return out
}

// fromCategoryObjects handles the legacy [{category, skills}] and
// [{category, items}] pair lists.
func fromCategoryObjects(items []any) []string {
	var out []string
	for _, item := range items {
		obj, ok := item.(map[string]any)
		if !ok {
			continue
		}
		value := obj["skills"]
		if value == nil {
			value = obj["items"]
		}
		out = append(out, entriesOf(value)...)
	}
	return out
}

// fromFlatList handles an already-flat list of primitives.
func fromFlatList(raw any) []string {
	switch v := raw.(type) {
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s := fields.Coerce(item); s != "" {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}

// entriesOf extracts skill entries from a category value, which may be a list
// or a splittable string.
func entriesOf(value any) []string {
	switch v := value.(type) {
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s := fields.Coerce(item); s != "" {
				out = append(out, s)
			}
		}
		return out
	case []string:
		return v
	case string:
		return Split(v)
	default:
		return nil
	}
}
