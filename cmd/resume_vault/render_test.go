package main

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/resume-vault/internal/rendering"
	"github.com/jonathan/resume-vault/internal/types"
)

func TestOutputName(t *testing.T) {
	tests := []struct {
		name   string
		resume *types.Resume
		format rendering.Format
		want   string
	}{
		{
			name:   "simple name",
			resume: &types.Resume{Name: "Jane Doe"},
			format: rendering.FormatPDF,
			want:   "jane-doe.pdf",
		},
		{
			name:   "special characters collapse to dashes",
			resume: &types.Resume{Name: "Jane / Doe (2024)"},
			format: rendering.FormatDOCX,
			want:   "jane---doe--2024.docx",
		},
		{
			name:   "empty name falls back to id",
			resume: &types.Resume{ID: "abc123"},
			format: rendering.FormatPDF,
			want:   "abc123.pdf",
		},
		{
			name:   "unusable name falls back to resume",
			resume: &types.Resume{Name: "///"},
			format: rendering.FormatPDF,
			want:   "resume.pdf",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, outputName(tt.resume, tt.format))
		})
	}
}
