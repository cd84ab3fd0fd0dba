// Package profile provides the session service over resume storage: save,
// load with write-through migration, delete with cascades, current-profile
// selection, drafts, and import/export. Handlers receive a *Service rather
// than touching ambient state, so everything here is unit-testable against an
// in-memory store.
package profile

import "fmt"

// InvalidResumeError indicates the submitted payload is not a resume-like
// object at all.
type InvalidResumeError struct{}

func (e *InvalidResumeError) Error() string {
	return "resume payload must be a JSON object"
}

// InvalidDraftKeyError indicates a draft key outside the supported scheme.
type InvalidDraftKeyError struct {
	Key string
}

func (e *InvalidDraftKeyError) Error() string {
	return fmt.Sprintf("invalid draft key: %q", e.Key)
}
