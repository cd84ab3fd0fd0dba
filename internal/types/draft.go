package types

// Draft is an autosaved snapshot of in-progress form edits. Data is an
// unnormalized form-state object; it only becomes a Resume on submit.
type Draft struct {
	Version         int            `json:"version"`
	UpdatedAt       string         `json:"updatedAt"`
	EditingResumeID string         `json:"editingResumeId,omitempty"`
	Data            map[string]any `json:"data"`
}

// BackupEnvelope is the JSON wrapper written by export and accepted by import.
type BackupEnvelope struct {
	App           string   `json:"app"`
	FormatVersion int      `json:"formatVersion"`
	ExportedAt    string   `json:"exportedAt"`
	Resumes       []Resume `json:"resumes"`
}

// Backup envelope constants.
const (
	BackupApp           = "resume-vault"
	BackupFormatVersion = 2
)
