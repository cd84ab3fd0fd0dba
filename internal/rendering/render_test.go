package rendering

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-vault/internal/types"
)

func sampleResume() *types.Resume {
	return &types.Resume{
		ID:   "r1",
		Name: "Ada Lovelace",
		PersonalInfo: types.PersonalInfo{
			Name:     "Ada Lovelace",
			Email:    "ada@example.com",
			Location: "London",
		},
		Experience: []types.Experience{
			{
				Company:     "Analytical Engines Ltd",
				Position:    "Engineer",
				StartDate:   "1842",
				EndDate:     "1843",
				Description: []string{"Wrote the first published algorithm"},
			},
		},
		Education: []types.Education{
			{Institution: "Home Tutoring", Degree: "Mathematics", Achievements: []string{}},
		},
		Skills: []string{"Mathematics", "Analysis"},
		Certifications: []any{
			"Royal Society Fellow",
			map[string]any{"name": "Notes Translator", "issuer": "Taylor", "date": "1843"},
		},
	}
}

func TestRenderHTML_IncludesResumeContent(t *testing.T) {
	html, err := RenderHTML(sampleResume())
	require.NoError(t, err)

	assert.Contains(t, html, "Ada Lovelace")
	assert.Contains(t, html, "Analytical Engines Ltd")
	assert.Contains(t, html, "Wrote the first published algorithm")
	assert.Contains(t, html, "Mathematics, Analysis")
	assert.Contains(t, html, "Royal Society Fellow")
	assert.Contains(t, html, "Notes Translator, Taylor (1843)")
	assert.Contains(t, html, "1842 – 1843")
}

func TestRenderHTML_EscapesUserText(t *testing.T) {
	resume := sampleResume()
	resume.PersonalInfo.Name = `<script>alert("x")</script>`

	html, err := RenderHTML(resume)
	require.NoError(t, err)

	assert.NotContains(t, html, "<script>alert")
}

func TestRenderHTML_OmitsEmptySections(t *testing.T) {
	resume := &types.Resume{
		ID:           "r2",
		Name:         "Minimal",
		PersonalInfo: types.PersonalInfo{Name: "Minimal"},
	}

	html, err := RenderHTML(resume)
	require.NoError(t, err)

	assert.NotContains(t, html, "<h2>Experience</h2>")
	assert.NotContains(t, html, "<h2>Projects</h2>")
	assert.NotContains(t, html, "<h2>Skills</h2>")
}

func TestDateRange(t *testing.T) {
	assert.Equal(t, "", dateRange("", ""))
	assert.Equal(t, "2024", dateRange("", "2024"))
	assert.Equal(t, "2022 – Present", dateRange("2022", ""))
	assert.Equal(t, "2022 – 2024", dateRange("2022", "2024"))
}

func TestCertLine(t *testing.T) {
	assert.Equal(t, "AWS SAA", certLine("  AWS SAA "))
	assert.Equal(t, "CKA, CNCF (2024)", certLine(map[string]any{
		"name": "CKA", "issuer": "CNCF", "date": "2024",
	}))
	assert.Equal(t, "", certLine(map[string]any{"issuer": "CNCF"}))
	assert.Equal(t, "", certLine(42))
}

func TestRender_UnsupportedFormat(t *testing.T) {
	svc := NewService("")

	_, err := svc.Render(context.Background(), sampleResume(), Format("odt"))
	require.Error(t, err)
	assert.True(t, IsUnsupportedFormat(err))
	assert.Contains(t, err.Error(), "odt")
}

func TestRender_NilResume(t *testing.T) {
	svc := NewService("")

	_, err := svc.Render(context.Background(), nil, FormatPDF)
	assert.Error(t, err)
}

func TestRender_DOCXRequiresServiceURL(t *testing.T) {
	svc := NewService("")

	_, err := svc.Render(context.Background(), sampleResume(), FormatDOCX)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "document service")
}

func TestRender_DOCXCallsDocumentService(t *testing.T) {
	var gotPath, gotContentType string
	var gotBody map[string]any

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotContentType = r.Header.Get("Content-Type")
		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, &gotBody)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("PK\x03\x04docx-bytes"))
	}))
	defer ts.Close()

	svc := NewService(ts.URL)

	out, err := svc.Render(context.Background(), sampleResume(), FormatDOCX)
	require.NoError(t, err)

	assert.Equal(t, "/render/docx", gotPath)
	assert.Equal(t, "application/json", gotContentType)
	assert.True(t, strings.HasPrefix(string(out), "PK"))

	resume, ok := gotBody["resume"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Ada Lovelace", resume["name"])
}

func TestRender_DOCXServiceError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer ts.Close()

	svc := NewService(ts.URL)

	_, err := svc.Render(context.Background(), sampleResume(), FormatDOCX)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
}
