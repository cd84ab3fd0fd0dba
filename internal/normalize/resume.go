// Package normalize transforms any raw resume-like object into the canonical
// Resume entity. It orchestrates the bullet parser, field reconciler, and
// skills normalizer, and is idempotent: re-normalizing canonical data changes
// nothing beyond timestamp stamping on records that never had timestamps.
package normalize

import (
	"strings"
	"time"

	"github.com/jonathan/resume-vault/internal/bullets"
	"github.com/jonathan/resume-vault/internal/fields"
	"github.com/jonathan/resume-vault/internal/skills"
	"github.com/jonathan/resume-vault/internal/types"
)

const (
	// DefaultSkill is the sentinel entry substituted when no skills resolve,
	// keeping the "skills never empty" invariant.
	DefaultSkill = "General"

	// DefaultLabel names a resume whose record carries no usable label.
	DefaultLabel = "My Resume"
)

// Resume converts a raw decoded-JSON record into the canonical form.
// Returns nil only when raw is not a non-null object. Invalid entries inside
// the record are dropped silently; normalization is best-effort and never
// fails on partial data.
func Resume(raw any) *types.Resume {
	m, ok := raw.(map[string]any)
	if !ok || m == nil {
		return nil
	}

	now := types.Timestamp(time.Now())
	info := personalInfo(fields.Map(m, "personalInfo"))

	r := &types.Resume{
		ID:             fields.String(m, "id"),
		PersonalInfo:   info,
		Education:      education(m),
		Experience:     experience(m),
		Projects:       projects(m),
		Skills:         resolveSkills(m),
		Certifications: certifications(m),
		CreatedAt:      fields.String(m, "createdAt"),
		UpdatedAt:      fields.String(m, "updatedAt"),
	}

	if r.ID == "" {
		r.ID = types.NewID()
	}
	if r.CreatedAt == "" {
		r.CreatedAt = now
	}
	if r.UpdatedAt == "" {
		r.UpdatedAt = now
	}

	// Resume label precedence: explicit label, personal name, default
	r.Name = fields.Pick(m, "name", "resumeName")
	if r.Name == "" {
		r.Name = info.Name
	}
	if r.Name == "" {
		r.Name = DefaultLabel
	}

	return r
}

// personalInfo resolves the contact block. Name and email keep blank-string
// semantics when absent; validation is the caller's job. Optional fields rely
// on omitempty for explicit absence.
func personalInfo(pi map[string]any) types.PersonalInfo {
	return types.PersonalInfo{
		Name:     fields.String(pi, "name"),
		Email:    fields.String(pi, "email"),
		Phone:    fields.String(pi, "phone"),
		Location: fields.String(pi, "location"),
		LinkedIn: fields.String(pi, "linkedin"),
		GitHub:   fields.String(pi, "github"),
		Website:  fields.Pick(pi, "website", "portfolio"),
		Summary:  fields.String(pi, "summary"),
	}
}

func education(m map[string]any) []types.Education {
	items := fields.List(m, "education")
	out := make([]types.Education, 0, len(items))
	for _, item := range items {
		e, ok := item.(map[string]any)
		if !ok {
			continue
		}
		entry := types.Education{
			Institution:  fields.String(e, "institution"),
			Degree:       fields.String(e, "degree"),
			Field:        fields.String(e, "field"),
			StartDate:    fields.String(e, "startDate"),
			EndDate:      fields.String(e, "endDate"),
			GPA:          fields.String(e, "gpa"),
			Achievements: achievements(e),
		}
		if entry.Institution == "" || entry.Degree == "" {
			continue
		}
		out = append(out, entry)
	}
	return out
}

// achievements prefers an explicit achievements array, then a legacy
// coursework array, then bullet-parses legacy coursework text.
func achievements(e map[string]any) []string {
	if list := fields.List(e, "achievements"); list != nil {
		return bullets.ParseValue(list)
	}
	if list := fields.List(e, "coursework"); list != nil {
		return bullets.ParseValue(list)
	}
	return bullets.Parse(fields.String(e, "coursework"))
}

func experience(m map[string]any) []types.Experience {
	items := fields.List(m, "experience")
	out := make([]types.Experience, 0, len(items))
	for _, item := range items {
		e, ok := item.(map[string]any)
		if !ok {
			continue
		}
		entry := types.Experience{
			Company:     fields.Pick(e, "company", "employer"),
			Position:    fields.Pick(e, "position", "role"),
			Location:    fields.String(e, "location"),
			StartDate:   fields.String(e, "startDate"),
			EndDate:     fields.String(e, "endDate"),
			Description: bullets.ParseValue(e["description"]),
		}
		if entry.Company == "" || entry.Position == "" || len(entry.Description) == 0 {
			continue
		}
		out = append(out, entry)
	}
	return out
}

func projects(m map[string]any) []types.Project {
	items := fields.List(m, "projects")
	out := make([]types.Project, 0, len(items))
	for _, item := range items {
		p, ok := item.(map[string]any)
		if !ok {
			continue
		}

		description, derived := projectNarrative(p["description"])
		highlights := derived
		if list := fields.List(p, "highlights"); list != nil {
			highlights = bullets.ParseValue(list)
		}

		entry := types.Project{
			Name:         fields.String(p, "name"),
			Description:  truncate(description, types.MaxProjectDescription),
			Technologies: skills.Normalize(p["technologies"]),
			Link:         fields.Pick(p, "link", "github"),
			Highlights:   highlights,
			StartDate:    fields.String(p, "startDate"),
			EndDate:      fields.String(p, "endDate"),
		}
		if entry.Name == "" || entry.Description == "" {
			continue
		}
		out = append(out, entry)
	}
	return out
}

// projectNarrative derives the description string and the bullet list from a
// raw project description. A string holding the canonical marker splits into
// a preface and bullet-parsed remainder; any other value is bullet-parsed
// whole, with the bullets joined by spaces as the description.
func projectNarrative(raw any) (string, []string) {
	if s, ok := raw.(string); ok && strings.Contains(s, bullets.CanonicalMarker) {
		idx := strings.Index(s, bullets.CanonicalMarker)
		preface := strings.TrimSpace(s[:idx])
		parsed := bullets.Parse(s[idx:])
		if preface == "" {
			// All bullets, no lead-in text. Keep the project by using the
			// joined bullets as the description.
			preface = strings.Join(parsed, " ")
		}
		return preface, parsed
	}

	parsed := bullets.ParseValue(raw)
	return strings.Join(parsed, " "), parsed
}

func resolveSkills(m map[string]any) []string {
	resolved := skills.Normalize(m["skills"])
	if len(resolved) == 0 {
		return []string{DefaultSkill}
	}
	return resolved
}

// certifications pass through untouched; the only contract is "array".
func certifications(m map[string]any) []any {
	if list := fields.List(m, "certifications"); list != nil {
		return list
	}
	return []any{}
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
