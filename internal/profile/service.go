package profile

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sort"
	"time"

	"github.com/jonathan/resume-vault/internal/drafts"
	"github.com/jonathan/resume-vault/internal/fields"
	"github.com/jonathan/resume-vault/internal/importer"
	"github.com/jonathan/resume-vault/internal/normalize"
	"github.com/jonathan/resume-vault/internal/schemas"
	"github.com/jonathan/resume-vault/internal/store"
	"github.com/jonathan/resume-vault/internal/types"
)

// Service is the session object every handler and command works through.
type Service struct {
	store store.Store
}

// NewService creates a profile service over the given store.
func NewService(st store.Store) *Service {
	return &Service{store: st}
}

// Save normalizes a raw resume payload and persists the canonical record.
// updatedAt is refreshed on every save; createdAt is fixed at first creation
// by the normalizer.
func (s *Service) Save(ctx context.Context, raw any) (*types.Resume, error) {
	r := normalize.Resume(raw)
	if r == nil {
		return nil, &InvalidResumeError{}
	}
	r.UpdatedAt = types.Timestamp(time.Now())

	if err := s.put(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}

// Load reads one resume, normalizing on the way out. Legacy-shaped stored
// records are migrated write-through: the canonical form is persisted back
// immediately, and a persistence failure is logged without blocking the read.
func (s *Service) Load(ctx context.Context, id string) (*types.Resume, error) {
	doc, err := s.store.ResumeDoc(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.normalizeStored(ctx, id, doc)
}

// LoadAll reads every stored resume, normalized and migrated the same way
// Load does. Documents that cannot be decoded are skipped with a warning;
// one corrupt record must not take down the whole listing.
func (s *Service) LoadAll(ctx context.Context) (map[string]*types.Resume, error) {
	docs, err := s.store.ResumeDocs(ctx)
	if err != nil {
		return nil, err
	}

	out := make(map[string]*types.Resume, len(docs))
	for id, doc := range docs {
		r, err := s.normalizeStored(ctx, id, doc)
		if err != nil {
			log.Printf("warning: skipping unreadable resume %s: %v", id, err)
			continue
		}
		out[r.ID] = r
	}
	return out, nil
}

// Delete removes a resume and cascades: the current-profile selection is
// cleared if it pointed at the deleted id, and the associated edit draft is
// removed.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.store.DeleteResume(ctx, id); err != nil {
		return err
	}

	current, err := s.store.CurrentProfile(ctx)
	if err != nil {
		return fmt.Errorf("failed to check current profile after delete: %w", err)
	}
	if current == id {
		if err := s.store.SetCurrentProfile(ctx, ""); err != nil {
			return fmt.Errorf("failed to clear current profile after delete: %w", err)
		}
	}

	if err := s.store.ClearDraft(ctx, drafts.EditKey(id)); err != nil {
		return fmt.Errorf("failed to clear draft after delete: %w", err)
	}
	return nil
}

// Current returns the selected resume id, or "".
func (s *Service) Current(ctx context.Context) (string, error) {
	return s.store.CurrentProfile(ctx)
}

// SetCurrent selects a resume as the current profile. The id must exist;
// "" clears the selection.
func (s *Service) SetCurrent(ctx context.Context, id string) error {
	if id != "" {
		if _, err := s.store.ResumeDoc(ctx, id); err != nil {
			return err
		}
	}
	return s.store.SetCurrentProfile(ctx, id)
}

// Draft returns the stored draft for key, or nil when there is none or when
// the stored snapshot predates the current draft schema version. A stale
// draft is ignored so the editor falls back to the canonical saved record.
func (s *Service) Draft(ctx context.Context, key string) (*types.Draft, error) {
	if !drafts.ValidKey(key) {
		return nil, &InvalidDraftKeyError{Key: key}
	}

	d, err := s.store.Draft(ctx, key)
	if err != nil {
		return nil, err
	}
	if drafts.IsStale(d) {
		return nil, nil
	}
	return d, nil
}

// SaveDraft persists a form snapshot under key. Snapshots with no meaningful
// content are dropped silently so empty drafts never accumulate.
func (s *Service) SaveDraft(ctx context.Context, key string, data map[string]any) error {
	if !drafts.ValidKey(key) {
		return &InvalidDraftKeyError{Key: key}
	}
	if !drafts.HasContent(data) {
		return nil
	}
	return s.store.PutDraft(ctx, key, drafts.New(key, data))
}

// ClearDraft removes the draft for key.
func (s *Service) ClearDraft(ctx context.Context, key string) error {
	if !drafts.ValidKey(key) {
		return &InvalidDraftKeyError{Key: key}
	}
	return s.store.ClearDraft(ctx, key)
}

// DraftSaver returns a debounced autosaver bound to this service for one
// edit session.
func (s *Service) DraftSaver(key string, delay time.Duration) *drafts.Saver {
	return drafts.NewSaver(key, delay, s.SaveDraft)
}

// Import coerces an import payload (single resume, backup envelope, or raw
// array), merges it against the stored set, and persists what changed.
// Malformed payloads and payloads with zero extractable resumes are rejected
// before anything is written.
func (s *Service) Import(ctx context.Context, payload []byte, overwrite bool) (*importer.Result, error) {
	s.validateEnvelope(payload)

	records, err := importer.Coerce(payload)
	if err != nil {
		return nil, err
	}

	existing, err := s.LoadAll(ctx)
	if err != nil {
		return nil, err
	}

	result := importer.Merge(records, existing, overwrite)

	// Persist the whole touched set in one atomic batch so a failing write
	// cannot leave a partially applied import behind.
	docs := make(map[string]json.RawMessage, len(result.Touched))
	for _, r := range result.Touched {
		doc, err := json.Marshal(r)
		if err != nil {
			return nil, fmt.Errorf("failed to encode imported resume %s: %w", r.ID, err)
		}
		docs[r.ID] = doc
	}
	if err := s.store.PutResumeDocs(ctx, docs); err != nil {
		return nil, fmt.Errorf("failed to persist imported resumes: %w", err)
	}
	return result, nil
}

// Export returns the backup envelope for every stored resume, ordered by
// display name for stable output.
func (s *Service) Export(ctx context.Context) (*types.BackupEnvelope, error) {
	all, err := s.LoadAll(ctx)
	if err != nil {
		return nil, err
	}

	resumes := make([]types.Resume, 0, len(all))
	for _, r := range all {
		resumes = append(resumes, *r)
	}
	sort.Slice(resumes, func(i, j int) bool {
		if resumes[i].Name != resumes[j].Name {
			return resumes[i].Name < resumes[j].Name
		}
		return resumes[i].ID < resumes[j].ID
	})

	return &types.BackupEnvelope{
		App:           types.BackupApp,
		FormatVersion: types.BackupFormatVersion,
		ExportedAt:    types.Timestamp(time.Now()),
		Resumes:       resumes,
	}, nil
}

func (s *Service) put(ctx context.Context, r *types.Resume) error {
	doc, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("failed to encode resume %s: %w", r.ID, err)
	}
	if err := s.store.PutResumeDoc(ctx, r.ID, doc); err != nil {
		return fmt.Errorf("failed to save resume %s: %w", r.ID, err)
	}
	return nil
}

func (s *Service) normalizeStored(ctx context.Context, id string, doc json.RawMessage) (*types.Resume, error) {
	var raw map[string]any
	if err := json.Unmarshal(doc, &raw); err != nil {
		return nil, fmt.Errorf("failed to decode stored resume %s: %w", id, err)
	}
	if raw == nil {
		// A stored literal null unmarshals into a nil map without error
		return nil, fmt.Errorf("failed to decode stored resume %s: document is null", id)
	}
	if fields.String(raw, "id") == "" {
		// The storage key is authoritative for records that predate ids
		raw["id"] = id
	}

	r := normalize.Resume(raw)
	if normalize.IsLegacy(raw) {
		migrated, err := json.Marshal(r)
		if err == nil {
			err = s.store.PutResumeDoc(ctx, r.ID, migrated)
		}
		if err != nil {
			log.Printf("warning: failed to persist migrated resume %s: %v", r.ID, err)
		}
	}
	return r, nil
}

// validateEnvelope checks backup-shaped payloads against the backup schema.
// The check is advisory: coercion remains the authority on what loads, since
// legacy backups predate the schema.
func (s *Service) validateEnvelope(payload []byte) {
	var decoded map[string]any
	if err := json.Unmarshal(payload, &decoded); err != nil {
		return
	}
	if _, ok := decoded["resumes"]; !ok {
		return
	}
	if err := schemas.ValidateBytes(schemas.BackupSchema, payload); err != nil {
		log.Printf("warning: import payload does not match the backup schema: %v", err)
	}
}
