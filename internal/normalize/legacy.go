package normalize

import (
	"github.com/jonathan/resume-vault/internal/fields"
)

// IsLegacy reports whether a raw record uses any superseded field naming or
// structure. It is a pure predicate used only to decide whether to persist
// the freshly normalized record back to storage (write-through migration);
// it never blocks reading.
//
// A record is legacy when any of these hold:
//   - personalInfo carries a portfolio key (superseded by website)
//   - an experience entry uses employer/role instead of company/position
//   - a project entry uses github instead of link, or stores its description
//     as an array instead of a string
//   - skills is present but not an array
//   - an education entry uses coursework instead of achievements
func IsLegacy(raw any) bool {
	m, ok := raw.(map[string]any)
	if !ok || m == nil {
		return false
	}

	if fields.Has(fields.Map(m, "personalInfo"), "portfolio") {
		return true
	}

	for _, item := range fields.List(m, "experience") {
		e, ok := item.(map[string]any)
		if !ok {
			continue
		}
		if fields.Has(e, "employer") || fields.Has(e, "role") {
			return true
		}
	}

	for _, item := range fields.List(m, "projects") {
		p, ok := item.(map[string]any)
		if !ok {
			continue
		}
		if fields.Has(p, "github") {
			return true
		}
		if _, isArray := p["description"].([]any); isArray {
			return true
		}
	}

	if v, present := m["skills"]; present && v != nil {
		switch v.(type) {
		case []any, []string:
		default:
			return true
		}
	}

	for _, item := range fields.List(m, "education") {
		e, ok := item.(map[string]any)
		if !ok {
			continue
		}
		if fields.Has(e, "coursework") {
			return true
		}
	}

	return false
}
