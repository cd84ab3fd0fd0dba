// Package tailoring calls the hosted AI model that adapts a canonical resume
// to a job description. The model is a black box behind the Tailor interface;
// everything returned passes back through the normalizer before callers see
// it.
package tailoring

import (
	"context"

	"github.com/jonathan/resume-vault/internal/types"
)

// Result is what the tailoring collaborator returns for one resume/job pair.
type Result struct {
	TailoredResume  *types.Resume `json:"tailoredResume"`
	ATSScore        int           `json:"atsScore"`
	MatchedKeywords []string      `json:"matchedKeywords"`
	MissingKeywords []string      `json:"missingKeywords"`
}

// Tailor is the collaborator contract.
type Tailor interface {
	// Tailor adapts the resume to the job description text.
	Tailor(ctx context.Context, resume *types.Resume, jobText string) (*Result, error)
	// Close releases any resources held by the client.
	Close() error
}

// clampScore forces an ATS score into [0, 100].
func clampScore(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
