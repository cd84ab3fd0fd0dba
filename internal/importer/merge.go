package importer

import (
	"time"

	"github.com/jonathan/resume-vault/internal/normalize"
	"github.com/jonathan/resume-vault/internal/types"
)

// DedupeSuffix marks the display name of a record imported alongside an
// existing resume with the same id under the keep-both policy.
const DedupeSuffix = " (imported)"

// Result reports the outcome of a merge. Resumes is the full resulting set;
// Touched holds only the records the merge inserted or replaced, in input
// order, so callers persist exactly what changed.
type Result struct {
	Resumes map[string]*types.Resume
	Touched []*types.Resume

	Added       int
	Overwritten int
	Deduped     int
	Skipped     int
}

// Merge reconciles incoming raw records against the existing stored set.
// Per normalized record, keyed by id: unknown ids insert as-is, known ids
// replace the stored entry when overwrite is set, and otherwise insert under
// a brand-new id with a disambiguating name suffix. Records that fail
// normalization are counted as skipped. The existing map is never mutated.
func Merge(records []map[string]any, existing map[string]*types.Resume, overwrite bool) *Result {
	result := &Result{
		Resumes: make(map[string]*types.Resume, len(existing)+len(records)),
	}
	for id, r := range existing {
		result.Resumes[id] = r
	}

	now := types.Timestamp(time.Now())
	for _, record := range records {
		r := normalize.Resume(record)
		if r == nil {
			result.Skipped++
			continue
		}
		r.UpdatedAt = now

		if _, exists := result.Resumes[r.ID]; !exists {
			result.Resumes[r.ID] = r
			result.Touched = append(result.Touched, r)
			result.Added++
			continue
		}

		if overwrite {
			result.Resumes[r.ID] = r
			result.Touched = append(result.Touched, r)
			result.Overwritten++
			continue
		}

		r.ID = types.NewID()
		r.Name += DedupeSuffix
		result.Resumes[r.ID] = r
		result.Touched = append(result.Touched, r)
		result.Deduped++
	}

	return result
}
