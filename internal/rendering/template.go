package rendering

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html/template"
	"strings"

	"github.com/jonathan/resume-vault/internal/types"
)

// resumeTemplate is a single-page print layout. html/template escapes all
// interpolated fields, so raw resume text cannot inject markup.
var resumeTemplate = template.Must(template.New("resume").Funcs(template.FuncMap{
	"join":      func(items []string) string { return strings.Join(items, ", ") },
	"daterange": dateRange,
	"certline":  certLine,
}).Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<style>
  @page { margin: 0.6in; }
  body { font-family: Georgia, "Times New Roman", serif; font-size: 11pt; color: #1a1a1a; margin: 0; }
  h1 { font-size: 20pt; margin: 0 0 2pt 0; }
  h2 { font-size: 12pt; border-bottom: 1px solid #999; text-transform: uppercase; letter-spacing: 1px; margin: 14pt 0 6pt 0; padding-bottom: 2pt; }
  .contact { font-size: 9.5pt; color: #444; margin-bottom: 4pt; }
  .entry { margin-bottom: 8pt; }
  .entry-head { display: flex; justify-content: space-between; font-weight: bold; }
  .entry-sub { font-style: italic; font-size: 10pt; color: #333; }
  ul { margin: 3pt 0 0 0; padding-left: 16pt; }
  li { margin-bottom: 2pt; }
  .summary { margin: 4pt 0; }
</style>
</head>
<body>
  <h1>{{.PersonalInfo.Name}}</h1>
  <div class="contact">
    {{- with .PersonalInfo.Email}}{{.}}{{end}}
    {{- with .PersonalInfo.Phone}} &middot; {{.}}{{end}}
    {{- with .PersonalInfo.Location}} &middot; {{.}}{{end}}
    {{- with .PersonalInfo.Website}} &middot; {{.}}{{end}}
    {{- with .PersonalInfo.LinkedIn}} &middot; {{.}}{{end}}
  </div>
  {{- with .PersonalInfo.Summary}}
  <div class="summary">{{.}}</div>
  {{- end}}

  {{- if .Experience}}
  <h2>Experience</h2>
  {{- range .Experience}}
  <div class="entry">
    <div class="entry-head"><span>{{.Position}}</span><span>{{daterange .StartDate .EndDate}}</span></div>
    <div class="entry-sub">{{.Company}}{{with .Location}}, {{.}}{{end}}</div>
    {{- if .Description}}
    <ul>{{range .Description}}<li>{{.}}</li>{{end}}</ul>
    {{- end}}
  </div>
  {{- end}}
  {{- end}}

  {{- if .Projects}}
  <h2>Projects</h2>
  {{- range .Projects}}
  <div class="entry">
    <div class="entry-head"><span>{{.Name}}</span>{{with .Technologies}}<span class="entry-sub">{{join .}}</span>{{end}}</div>
    {{- with .Description}}<div>{{.}}</div>{{end}}
    {{- if .Highlights}}
    <ul>{{range .Highlights}}<li>{{.}}</li>{{end}}</ul>
    {{- end}}
  </div>
  {{- end}}
  {{- end}}

  {{- if .Education}}
  <h2>Education</h2>
  {{- range .Education}}
  <div class="entry">
    <div class="entry-head"><span>{{.Institution}}</span><span>{{daterange .StartDate .EndDate}}</span></div>
    <div class="entry-sub">{{.Degree}}{{with .Field}}, {{.}}{{end}}{{with .GPA}} &middot; GPA {{.}}{{end}}</div>
    {{- if .Achievements}}
    <ul>{{range .Achievements}}<li>{{.}}</li>{{end}}</ul>
    {{- end}}
  </div>
  {{- end}}
  {{- end}}

  {{- if .Skills}}
  <h2>Skills</h2>
  <div>{{join .Skills}}</div>
  {{- end}}

  {{- if .Certifications}}
  <h2>Certifications</h2>
  <ul>{{range .Certifications}}{{with certline .}}<li>{{.}}</li>{{end}}{{end}}</ul>
  {{- end}}
</body>
</html>
`))

// dateRange formats a start/end pair for the right-hand column of an entry.
func dateRange(start, end string) string {
	switch {
	case start == "" && end == "":
		return ""
	case start == "":
		return end
	case end == "":
		return start + " – Present"
	default:
		return start + " – " + end
	}
}

// certLine flattens a certification entry, which may be a plain string or an
// object with name/issuer/date keys, into one display line.
func certLine(cert any) string {
	switch c := cert.(type) {
	case string:
		return strings.TrimSpace(c)
	case map[string]any:
		name, _ := c["name"].(string)
		if name == "" {
			return ""
		}
		line := name
		if issuer, _ := c["issuer"].(string); issuer != "" {
			line += ", " + issuer
		}
		if date, _ := c["date"].(string); date != "" {
			line += " (" + date + ")"
		}
		return line
	default:
		return ""
	}
}

// RenderHTML produces the print-layout HTML for a resume.
func RenderHTML(resume *types.Resume) (string, error) {
	var buf bytes.Buffer
	if err := resumeTemplate.Execute(&buf, resume); err != nil {
		return "", fmt.Errorf("failed to render resume template: %w", err)
	}
	return buf.String(), nil
}

func resumeJSON(resume *types.Resume) ([]byte, error) {
	body, err := json.Marshal(map[string]any{"resume": resume})
	if err != nil {
		return nil, fmt.Errorf("failed to encode resume: %w", err)
	}
	return body, nil
}
