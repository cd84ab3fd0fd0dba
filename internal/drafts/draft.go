// Package drafts manages autosaved snapshots of in-progress resume edits:
// draft keys, schema-version staleness, the meaningful-content gate, and the
// debounced writer that coalesces rapid form input into a single persisted
// save.
package drafts

import (
	"strings"
	"time"
	"unicode"

	"github.com/jonathan/resume-vault/internal/types"
)

// SchemaVersion is the current draft snapshot format. Drafts persisted with
// any other version are ignored on read and the editor falls back to the
// canonical saved record.
const SchemaVersion = 2

// KeyNew is the draft key for a resume that has never been saved.
const KeyNew = "new"

// editKeyPrefix prefixes draft keys tied to an existing resume.
const editKeyPrefix = "edit:"

// EditKey returns the draft key for editing an existing resume.
func EditKey(resumeID string) string {
	return editKeyPrefix + resumeID
}

// ResumeID extracts the resume id from an edit key, or "" for the new-resume
// key and anything unrecognized.
func ResumeID(key string) string {
	if strings.HasPrefix(key, editKeyPrefix) {
		return strings.TrimPrefix(key, editKeyPrefix)
	}
	return ""
}

// ValidKey reports whether key is one this system ever writes.
func ValidKey(key string) bool {
	return key == KeyNew || (strings.HasPrefix(key, editKeyPrefix) && len(key) > len(editKeyPrefix))
}

// IsStale reports whether a stored draft should be ignored because it
// predates the current schema version (or does not exist at all).
func IsStale(d *types.Draft) bool {
	return d == nil || d.Version != SchemaVersion
}

// New builds a draft snapshot for the given key and form data.
func New(key string, data map[string]any) *types.Draft {
	return &types.Draft{
		Version:         SchemaVersion,
		UpdatedAt:       types.Timestamp(time.Now()),
		EditingResumeID: ResumeID(key),
		Data:            data,
	}
}

// HasContent reports whether a form snapshot holds anything worth keeping.
// A draft whose fields are all blank after stripping structural punctuation
// is never persisted, so empty drafts cannot accumulate and mask real data
// on the next editor open.
func HasContent(data map[string]any) bool {
	return valueHasContent(data)
}

func valueHasContent(v any) bool {
	switch val := v.(type) {
	case string:
		return strings.IndexFunc(val, func(r rune) bool {
			return unicode.IsLetter(r) || unicode.IsDigit(r)
		}) >= 0
	case float64, int, bool:
		return true
	case map[string]any:
		for _, item := range val {
			if valueHasContent(item) {
				return true
			}
		}
		return false
	case []any:
		for _, item := range val {
			if valueHasContent(item) {
				return true
			}
		}
		return false
	default:
		return false
	}
}
