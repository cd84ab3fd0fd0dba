// Package store provides persistence for resume documents, drafts, and the
// current-profile selection.
//
// Resumes are stored as raw JSON documents rather than typed records so that
// legacy-shaped data written by older versions survives a round trip and can
// be migrated on read. All mutations are serialized per implementation; there
// is no whole-map read-modify-write anywhere, so concurrent writers cannot
// lose each other's updates.
package store

import (
	"context"
	"encoding/json"

	"github.com/jonathan/resume-vault/internal/types"
)

// Store is the persistence contract the profile service runs against.
type Store interface {
	// ResumeDocs returns every stored resume document keyed by id.
	ResumeDocs(ctx context.Context) (map[string]json.RawMessage, error)
	// ResumeDoc returns one stored document, or a *NotFoundError.
	ResumeDoc(ctx context.Context, id string) (json.RawMessage, error)
	// PutResumeDoc inserts or replaces the document for id.
	PutResumeDoc(ctx context.Context, id string, doc json.RawMessage) error
	// PutResumeDocs inserts or replaces every given document atomically:
	// either all writes land or none do.
	PutResumeDocs(ctx context.Context, docs map[string]json.RawMessage) error
	// DeleteResume removes the document for id. Deleting a missing id is not
	// an error.
	DeleteResume(ctx context.Context, id string) error

	// CurrentProfile returns the selected resume id, or "" when none is set.
	CurrentProfile(ctx context.Context) (string, error)
	// SetCurrentProfile selects a resume id; "" clears the selection.
	SetCurrentProfile(ctx context.Context, id string) error

	// Draft returns the stored draft for key, or nil when none exists.
	Draft(ctx context.Context, key string) (*types.Draft, error)
	// PutDraft inserts or replaces the draft for key.
	PutDraft(ctx context.Context, key string, d *types.Draft) error
	// ClearDraft removes the draft for key. Clearing a missing key is not an
	// error.
	ClearDraft(ctx context.Context, key string) error

	// Close releases any resources held by the store.
	Close()
}
