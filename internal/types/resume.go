// Package types provides type definitions for the canonical resume record and
// related entities shared across the resume-vault system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"time"

	"github.com/google/uuid"
)

// PersonalInfo holds the contact block of a resume. Name and Email keep
// blank-string semantics when absent; every other field is either a trimmed
// non-empty string or omitted entirely.
type PersonalInfo struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone,omitempty"`
	Location string `json:"location,omitempty"`
	LinkedIn string `json:"linkedin,omitempty"`
	GitHub   string `json:"github,omitempty"`
	Website  string `json:"website,omitempty"`
	Summary  string `json:"summary,omitempty"`
}

// Education represents a single education entry. Entries without both an
// institution and a degree are dropped during normalization.
type Education struct {
	Institution  string   `json:"institution"`
	Degree       string   `json:"degree"`
	Field        string   `json:"field,omitempty"`
	StartDate    string   `json:"startDate,omitempty"`
	EndDate      string   `json:"endDate,omitempty"`
	GPA          string   `json:"gpa,omitempty"`
	Achievements []string `json:"achievements"`
}

// Experience represents a single work entry. Entries need a company, a
// position, and at least one description bullet to survive normalization.
type Experience struct {
	Company     string   `json:"company"`
	Position    string   `json:"position"`
	Location    string   `json:"location,omitempty"`
	StartDate   string   `json:"startDate,omitempty"`
	EndDate     string   `json:"endDate,omitempty"`
	Description []string `json:"description"`
}

// Project represents a single project entry. Description is a single string
// capped at MaxProjectDescription characters; bullet-like detail lives in
// Highlights.
type Project struct {
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	Technologies []string `json:"technologies"`
	Link         string   `json:"link,omitempty"`
	Highlights   []string `json:"highlights"`
	StartDate    string   `json:"startDate,omitempty"`
	EndDate      string   `json:"endDate,omitempty"`
}

// MaxProjectDescription is the character cap applied to a project description.
const MaxProjectDescription = 1000

// Resume is the canonical record every component agrees on. Raw and legacy
// shapes become a Resume by passing through the normalizer; nothing else in
// the system touches un-normalized data.
type Resume struct {
	ID             string       `json:"id"`
	Name           string       `json:"name"`
	PersonalInfo   PersonalInfo `json:"personalInfo"`
	Education      []Education  `json:"education"`
	Experience     []Experience `json:"experience"`
	Projects       []Project    `json:"projects"`
	Skills         []string     `json:"skills"`
	Certifications []any        `json:"certifications"`
	CreatedAt      string       `json:"createdAt,omitempty"`
	UpdatedAt      string       `json:"updatedAt,omitempty"`
}

// NewID returns a fresh globally unique resume identifier.
func NewID() string {
	return uuid.NewString()
}

// Timestamp returns the given time in the stored timestamp format.
func Timestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

// Clone returns a deep copy of the resume so callers can mutate the result
// without affecting stored state.
func (r *Resume) Clone() *Resume {
	if r == nil {
		return nil
	}
	out := *r

	out.Education = make([]Education, len(r.Education))
	for i, e := range r.Education {
		e.Achievements = append([]string(nil), e.Achievements...)
		out.Education[i] = e
	}

	out.Experience = make([]Experience, len(r.Experience))
	for i, e := range r.Experience {
		e.Description = append([]string(nil), e.Description...)
		out.Experience[i] = e
	}

	out.Projects = make([]Project, len(r.Projects))
	for i, p := range r.Projects {
		p.Technologies = append([]string(nil), p.Technologies...)
		p.Highlights = append([]string(nil), p.Highlights...)
		out.Projects[i] = p
	}

	out.Skills = append([]string(nil), r.Skills...)
	out.Certifications = append([]any(nil), r.Certifications...)
	return &out
}
