package profile

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/jonathan/resume-vault/internal/drafts"
	"github.com/jonathan/resume-vault/internal/importer"
	"github.com/jonathan/resume-vault/internal/normalize"
	"github.com/jonathan/resume-vault/internal/store"
	"github.com/jonathan/resume-vault/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService() (*Service, *store.Memory) {
	mem := store.NewMemory()
	return NewService(mem), mem
}

func validRaw(id string) map[string]any {
	return map[string]any{
		"id":           id,
		"name":         "Backend Profile",
		"personalInfo": map[string]any{"name": "Ada", "email": "ada@example.com"},
		"skills":       []any{"Go"},
	}
}

func TestSave_NormalizesAndPersists(t *testing.T) {
	ctx := context.Background()
	svc, mem := newTestService()

	r, err := svc.Save(ctx, validRaw("r1"))
	require.NoError(t, err)
	assert.Equal(t, "r1", r.ID)
	assert.NotEmpty(t, r.UpdatedAt)

	doc, err := mem.ResumeDoc(ctx, "r1")
	require.NoError(t, err)
	var stored map[string]any
	require.NoError(t, json.Unmarshal(doc, &stored))
	assert.Equal(t, "Backend Profile", stored["name"])
}

func TestSave_RejectsNonObject(t *testing.T) {
	svc, _ := newTestService()
	_, err := svc.Save(context.Background(), "not a resume")
	var invalid *InvalidResumeError
	assert.ErrorAs(t, err, &invalid)
}

func TestSave_RefreshesUpdatedAt(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService()

	raw := validRaw("r1")
	raw["createdAt"] = "2020-01-01T00:00:00Z"
	raw["updatedAt"] = "2020-01-01T00:00:00Z"

	r, err := svc.Save(ctx, raw)
	require.NoError(t, err)
	assert.Equal(t, "2020-01-01T00:00:00Z", r.CreatedAt)
	assert.NotEqual(t, "2020-01-01T00:00:00Z", r.UpdatedAt)
}

func TestLoad_MigratesLegacyRecordWriteThrough(t *testing.T) {
	ctx := context.Background()
	svc, mem := newTestService()

	legacy := []byte(`{
		"id": "r1",
		"personalInfo": {"name": "Ada", "email": "ada@example.com", "portfolio": "https://ada.dev"},
		"experience": [{"employer": "Acme", "role": "Engineer", "description": "• Did things"}],
		"skills": "Go, Rust",
		"createdAt": "2020-01-01T00:00:00Z",
		"updatedAt": "2020-01-01T00:00:00Z"
	}`)
	require.NoError(t, mem.PutResumeDoc(ctx, "r1", legacy))

	r, err := svc.Load(ctx, "r1")
	require.NoError(t, err)
	assert.Equal(t, "https://ada.dev", r.PersonalInfo.Website)
	assert.Equal(t, "Acme", r.Experience[0].Company)
	assert.Equal(t, []string{"Go", "Rust"}, r.Skills)

	// The canonical form was written back
	doc, err := mem.ResumeDoc(ctx, "r1")
	require.NoError(t, err)
	var stored map[string]any
	require.NoError(t, json.Unmarshal(doc, &stored))
	assert.False(t, normalize.IsLegacy(stored))
}

func TestLoad_AssignsStorageKeyToRecordsWithoutID(t *testing.T) {
	ctx := context.Background()
	svc, mem := newTestService()
	require.NoError(t, mem.PutResumeDoc(ctx, "key-1", []byte(`{"name":"Old Record"}`)))

	r, err := svc.Load(ctx, "key-1")
	require.NoError(t, err)
	assert.Equal(t, "key-1", r.ID)
}

func TestLoadAll_SkipsCorruptDocuments(t *testing.T) {
	ctx := context.Background()
	svc, mem := newTestService()
	require.NoError(t, mem.PutResumeDoc(ctx, "good", []byte(`{"id":"good"}`)))
	require.NoError(t, mem.PutResumeDoc(ctx, "bad", []byte(`{corrupt`)))

	all, err := svc.LoadAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
	assert.Contains(t, all, "good")
}

func TestLoad_NullDocumentIsError(t *testing.T) {
	ctx := context.Background()
	svc, mem := newTestService()
	require.NoError(t, mem.PutResumeDoc(ctx, "r1", []byte(`null`)))

	_, err := svc.Load(ctx, "r1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to decode stored resume")
}

func TestLoadAll_SkipsNullDocument(t *testing.T) {
	ctx := context.Background()
	svc, mem := newTestService()
	require.NoError(t, mem.PutResumeDoc(ctx, "good", []byte(`{"id":"good"}`)))
	require.NoError(t, mem.PutResumeDoc(ctx, "nulled", []byte(`null`)))

	all, err := svc.LoadAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
	assert.Contains(t, all, "good")
}

func TestDelete_CascadesCurrentProfileAndDraft(t *testing.T) {
	ctx := context.Background()
	svc, mem := newTestService()

	_, err := svc.Save(ctx, validRaw("r1"))
	require.NoError(t, err)
	require.NoError(t, svc.SetCurrent(ctx, "r1"))
	require.NoError(t, svc.SaveDraft(ctx, drafts.EditKey("r1"), map[string]any{"name": "edit in progress"}))

	require.NoError(t, svc.Delete(ctx, "r1"))

	current, err := svc.Current(ctx)
	require.NoError(t, err)
	assert.Equal(t, "", current)

	d, err := mem.Draft(ctx, drafts.EditKey("r1"))
	require.NoError(t, err)
	assert.Nil(t, d)
}

func TestDelete_LeavesOtherSelectionAlone(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService()

	_, err := svc.Save(ctx, validRaw("r1"))
	require.NoError(t, err)
	_, err = svc.Save(ctx, validRaw("r2"))
	require.NoError(t, err)
	require.NoError(t, svc.SetCurrent(ctx, "r2"))

	require.NoError(t, svc.Delete(ctx, "r1"))

	current, err := svc.Current(ctx)
	require.NoError(t, err)
	assert.Equal(t, "r2", current)
}

func TestSetCurrent_RequiresExistingResume(t *testing.T) {
	svc, _ := newTestService()
	err := svc.SetCurrent(context.Background(), "ghost")
	assert.True(t, store.IsNotFound(err))
}

func TestDraft_StaleVersionIgnored(t *testing.T) {
	ctx := context.Background()
	svc, mem := newTestService()

	stale := &types.Draft{Version: drafts.SchemaVersion - 1, Data: map[string]any{"name": "old"}}
	require.NoError(t, mem.PutDraft(ctx, drafts.KeyNew, stale))

	d, err := svc.Draft(ctx, drafts.KeyNew)
	require.NoError(t, err)
	assert.Nil(t, d)
}

func TestDraft_CurrentVersionReturned(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService()

	require.NoError(t, svc.SaveDraft(ctx, drafts.KeyNew, map[string]any{"name": "Ada"}))
	d, err := svc.Draft(ctx, drafts.KeyNew)
	require.NoError(t, err)
	require.NotNil(t, d)
	assert.Equal(t, drafts.SchemaVersion, d.Version)
	assert.Equal(t, "Ada", d.Data["name"])
}

func TestSaveDraft_EmptySnapshotNotPersisted(t *testing.T) {
	ctx := context.Background()
	svc, mem := newTestService()

	require.NoError(t, svc.SaveDraft(ctx, drafts.KeyNew, map[string]any{"name": "  ", "summary": "•"}))
	d, err := mem.Draft(ctx, drafts.KeyNew)
	require.NoError(t, err)
	assert.Nil(t, d)
}

func TestDraft_RejectsUnknownKeyScheme(t *testing.T) {
	svc, _ := newTestService()
	_, err := svc.Draft(context.Background(), "weird-key")
	var invalid *InvalidDraftKeyError
	assert.ErrorAs(t, err, &invalid)
}

func TestDraftSaver_PersistsThroughService(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService()

	saver := svc.DraftSaver(drafts.KeyNew, 20*time.Millisecond)
	defer saver.Close()
	saver.Update(map[string]any{"name": "Ada"})

	require.Eventually(t, func() bool {
		d, err := svc.Draft(ctx, drafts.KeyNew)
		return err == nil && d != nil
	}, time.Second, 10*time.Millisecond)
}

func TestImport_AddsAndPersists(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService()

	payload := []byte(`{"app":"resume-vault","formatVersion":2,"resumes":[` +
		`{"id":"r1","name":"One","skills":["Go"]},` +
		`{"id":"r2","name":"Two","skills":["Rust"]}]}`)

	result, err := svc.Import(ctx, payload, false)
	require.NoError(t, err)
	assert.Equal(t, 2, result.Added)

	all, err := svc.LoadAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestImport_KeepBothGeneratesNewID(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService()

	_, err := svc.Save(ctx, validRaw("r1"))
	require.NoError(t, err)

	result, err := svc.Import(ctx, []byte(`{"id":"r1","name":"Incoming"}`), false)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Deduped)

	all, err := svc.LoadAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	for id, r := range all {
		if id == "r1" {
			assert.Equal(t, "Backend Profile", r.Name)
		} else {
			assert.Equal(t, "Incoming"+importer.DedupeSuffix, r.Name)
		}
	}
}

func TestImport_OverwriteReplaces(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService()

	_, err := svc.Save(ctx, validRaw("r1"))
	require.NoError(t, err)

	result, err := svc.Import(ctx, []byte(`{"id":"r1","name":"Replacement"}`), true)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Overwritten)

	r, err := svc.Load(ctx, "r1")
	require.NoError(t, err)
	assert.Equal(t, "Replacement", r.Name)
}

func TestImport_MalformedPayloadLeavesStateUntouched(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService()

	_, err := svc.Save(ctx, validRaw("r1"))
	require.NoError(t, err)

	_, err = svc.Import(ctx, []byte(`{broken`), true)
	var parseErr *importer.ParseError
	require.ErrorAs(t, err, &parseErr)

	all, err := svc.LoadAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

// failingBatchStore refuses batch writes so partial-persist behavior
// can be observed from the outside.
type failingBatchStore struct {
	*store.Memory
}

func (f *failingBatchStore) PutResumeDocs(context.Context, map[string]json.RawMessage) error {
	return errors.New("disk full")
}

func TestImport_FailedBatchLeavesExistingUntouched(t *testing.T) {
	ctx := context.Background()
	mem := store.NewMemory()
	svc := NewService(&failingBatchStore{Memory: mem})

	_, err := svc.Save(ctx, validRaw("r1"))
	require.NoError(t, err)

	payload := []byte(`{"app":"resume-vault","formatVersion":2,"resumes":[` +
		`{"id":"r1","name":"Replacement"},` +
		`{"id":"r2","name":"Fresh"}]}`)

	_, err = svc.Import(ctx, payload, true)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to persist imported resumes")

	all, err := svc.LoadAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "Backend Profile", all["r1"].Name)
}

func TestImport_EmptyPayloadIsError(t *testing.T) {
	svc, _ := newTestService()
	_, err := svc.Import(context.Background(), []byte(`{"resumes":[]}`), false)
	var emptyErr *importer.EmptyError
	assert.ErrorAs(t, err, &emptyErr)
}

func TestExport_SortedEnvelope(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService()

	raw := validRaw("r2")
	raw["name"] = "Zeta"
	_, err := svc.Save(ctx, raw)
	require.NoError(t, err)

	raw = validRaw("r1")
	raw["name"] = "Alpha"
	_, err = svc.Save(ctx, raw)
	require.NoError(t, err)

	env, err := svc.Export(ctx)
	require.NoError(t, err)
	assert.Equal(t, types.BackupApp, env.App)
	assert.Equal(t, types.BackupFormatVersion, env.FormatVersion)
	require.Len(t, env.Resumes, 2)
	assert.Equal(t, "Alpha", env.Resumes[0].Name)
	assert.Equal(t, "Zeta", env.Resumes[1].Name)
}

func TestExport_RoundTripsThroughImport(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService()

	_, err := svc.Save(ctx, validRaw("r1"))
	require.NoError(t, err)

	env, err := svc.Export(ctx)
	require.NoError(t, err)
	payload, err := json.Marshal(env)
	require.NoError(t, err)

	other, _ := newTestService()
	result, err := other.Import(ctx, payload, false)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Added)

	r, err := other.Load(ctx, "r1")
	require.NoError(t, err)
	assert.Equal(t, "Backend Profile", r.Name)
}
