package schemas

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveSchemaPath_FindsRepoSchemas(t *testing.T) {
	assert.NotEmpty(t, ResolveSchemaPath(ResumeSchema))
	assert.NotEmpty(t, ResolveSchemaPath(BackupSchema))
	assert.Empty(t, ResolveSchemaPath("schemas/does_not_exist.json"))
}

func TestValidateBytes_ValidBackup(t *testing.T) {
	payload := []byte(`{"app":"resume-vault","formatVersion":2,"exportedAt":"2026-01-01T00:00:00Z","resumes":[{"id":"r1"}]}`)
	assert.NoError(t, ValidateBytes(BackupSchema, payload))
}

func TestValidateBytes_BackupWithIDMap(t *testing.T) {
	payload := []byte(`{"resumes":{"r1":{"id":"r1"}}}`)
	assert.NoError(t, ValidateBytes(BackupSchema, payload))
}

func TestValidateBytes_InvalidBackupReported(t *testing.T) {
	err := ValidateBytes(BackupSchema, []byte(`{"resumes":"nope"}`))
	require.Error(t, err)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.NotEmpty(t, verr.Errors)
	assert.Contains(t, err.Error(), "validation failed")
}

func TestValidateBytes_MissingSchemaIsLoadError(t *testing.T) {
	err := ValidateBytes("schemas/missing.schema.json", []byte(`{}`))
	var lerr *SchemaLoadError
	assert.ErrorAs(t, err, &lerr)
}

func TestValidateBytes_CanonicalResumeConforms(t *testing.T) {
	payload := []byte(`{
		"id": "r1",
		"name": "Backend",
		"personalInfo": {"name": "Ada", "email": "ada@example.com"},
		"education": [],
		"experience": [{"company": "Acme", "position": "Engineer", "description": ["Did things"]}],
		"projects": [],
		"skills": ["Go"],
		"certifications": []
	}`)
	assert.NoError(t, ValidateBytes(ResumeSchema, payload))
}
