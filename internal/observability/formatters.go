// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/resume-vault/internal/importer"
	"github.com/jonathan/resume-vault/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintResume outputs a human-readable summary of a canonical resume.
func (p *Printer) PrintResume(r *types.Resume) {
	if r == nil {
		return
	}

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Name:   %s\n", r.Name))
	if r.PersonalInfo.Email != "" {
		sb.WriteString(fmt.Sprintf("Email:  %s\n", r.PersonalInfo.Email))
	}
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("Experience entries: %d\n", len(r.Experience)))
	sb.WriteString(fmt.Sprintf("Education entries:  %d\n", len(r.Education)))
	sb.WriteString(fmt.Sprintf("Projects:           %d\n", len(r.Projects)))

	if len(r.Skills) > 0 {
		sb.WriteString("\nSkills:\n")
		count := min(len(r.Skills), maxItemsToShow)
		for i := 0; i < count; i++ {
			sb.WriteString(fmt.Sprintf("  • %s\n", r.Skills[i]))
		}
		if len(r.Skills) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(r.Skills)-maxItemsToShow))
		}
	}

	p.printBox("RESUME", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintImportResult outputs the per-policy counts of an import merge.
func (p *Printer) PrintImportResult(result *importer.Result) {
	if result == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Added:       %d\n", result.Added))
	sb.WriteString(fmt.Sprintf("Overwritten: %d\n", result.Overwritten))
	sb.WriteString(fmt.Sprintf("Deduped:     %d\n", result.Deduped))
	sb.WriteString(fmt.Sprintf("Skipped:     %d", result.Skipped))

	p.printBox("IMPORT RESULT", sb.String())
}

// PrintLegacyReport lists which stored resumes still carry legacy-shaped
// fields and would migrate on the next read.
func (p *Printer) PrintLegacyReport(legacy map[string]bool) {
	if len(legacy) == 0 {
		return
	}

	var sb strings.Builder
	total, stale := 0, 0
	for _, isLegacy := range legacy {
		total++
		if isLegacy {
			stale++
		}
	}
	sb.WriteString(fmt.Sprintf("Checked: %d\n", total))
	sb.WriteString(fmt.Sprintf("Legacy:  %d\n", stale))

	for id, isLegacy := range legacy {
		if isLegacy {
			sb.WriteString(fmt.Sprintf("  • %s\n", id))
		}
	}

	p.printBox("LEGACY SHAPE REPORT", strings.TrimSuffix(sb.String(), "\n"))
}
