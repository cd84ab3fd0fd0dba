package drafts

import (
	"testing"

	"github.com/jonathan/resume-vault/internal/types"
	"github.com/stretchr/testify/assert"
)

func TestEditKey_RoundTrip(t *testing.T) {
	key := EditKey("resume-1")
	assert.Equal(t, "edit:resume-1", key)
	assert.Equal(t, "resume-1", ResumeID(key))
	assert.Equal(t, "", ResumeID(KeyNew))
}

func TestValidKey(t *testing.T) {
	assert.True(t, ValidKey(KeyNew))
	assert.True(t, ValidKey("edit:resume-1"))
	assert.False(t, ValidKey("edit:"))
	assert.False(t, ValidKey("something"))
	assert.False(t, ValidKey(""))
}

func TestIsStale_VersionMismatch(t *testing.T) {
	assert.True(t, IsStale(nil))
	assert.True(t, IsStale(&types.Draft{Version: SchemaVersion - 1}))
	assert.True(t, IsStale(&types.Draft{Version: SchemaVersion + 1}))
	assert.False(t, IsStale(&types.Draft{Version: SchemaVersion}))
}

func TestNew_PopulatesVersionAndEditingID(t *testing.T) {
	d := New(EditKey("resume-1"), map[string]any{"name": "Ada"})
	assert.Equal(t, SchemaVersion, d.Version)
	assert.Equal(t, "resume-1", d.EditingResumeID)
	assert.NotEmpty(t, d.UpdatedAt)

	d = New(KeyNew, nil)
	assert.Equal(t, "", d.EditingResumeID)
}

func TestHasContent_BlankFormsRejected(t *testing.T) {
	assert.False(t, HasContent(nil))
	assert.False(t, HasContent(map[string]any{}))
	assert.False(t, HasContent(map[string]any{
		"name":   "",
		"email":  "   ",
		"bullet": "• - —",
		"nested": map[string]any{"summary": "..."},
		"list":   []any{"", "•"},
	}))
}

func TestHasContent_AnyRealTextCounts(t *testing.T) {
	assert.True(t, HasContent(map[string]any{"name": "A"}))
	assert.True(t, HasContent(map[string]any{"nested": map[string]any{"city": "Paris"}}))
	assert.True(t, HasContent(map[string]any{"list": []any{"", "x"}}))
	assert.True(t, HasContent(map[string]any{"gpa": 3.8}))
}
