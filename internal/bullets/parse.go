// Package bullets converts free-form description text into an ordered list of
// discrete bullet strings. Parsing is pure: identical input always yields
// identical output, and re-parsing parsed output is a no-op.
package bullets

import (
	"regexp"
	"strings"
	"unicode"
)

// CanonicalMarker is the single glyph every unicode bullet variant is
// normalized to before classification.
const CanonicalMarker = "•"

// glyphVariants are the unicode bullet glyphs folded into CanonicalMarker.
var glyphVariants = []string{"●", "◦", "▪", "▫", "‣", "∙", "⁃", "○", "·"}

var (
	// markerPattern matches a bullet-initiating prefix: the canonical glyph,
	// hyphen, asterisk, en/em-dash, or a numbered/parenthesized ordinal,
	// followed by whitespace.
	markerPattern = regexp.MustCompile(`^(?:•|[-*]|[–—]|\d{1,3}[.)]|\(\d{1,3}\))\s+`)

	// spaceRun collapses internal whitespace runs to a single space.
	spaceRun = regexp.MustCompile(`\s+`)
)

// residualMarkerChars are stripped from the front of finished bullets.
const residualMarkerChars = "•–—-* \t"

// terminalPunctuation marks a bullet as a finished sentence for the purpose
// of the short-line merge heuristic.
const terminalPunctuation = ".!?;:"

// Config holds the empirically tuned merge thresholds. The values are
// heuristics, not semantics; tests exercise non-default settings.
type Config struct {
	// ShortLineMax is the exclusive length cutoff below which a
	// non-bullet-initiated line merges into an unfinished previous bullet.
	ShortLineMax int
}

// DefaultConfig returns the tuned production thresholds.
func DefaultConfig() Config {
	return Config{ShortLineMax: 20}
}

// Parse splits free-form text into bullets using the default thresholds.
func Parse(raw string) []string {
	return DefaultConfig().Parse(raw)
}

// ParseValue accepts the shapes description fields take in stored records:
// a string blob, a list of strings, or a decoded-JSON list. List elements are
// parsed independently so an already-clean bullet list passes through
// unchanged, which keeps normalization idempotent.
func ParseValue(raw any) []string {
	return DefaultConfig().ParseValue(raw)
}

// ParseValue is the Config-bound form of the package-level ParseValue.
func (c Config) ParseValue(raw any) []string {
	switch v := raw.(type) {
	case string:
		return c.Parse(v)
	case []string:
		out := make([]string, 0, len(v))
		for _, item := range v {
			out = append(out, c.Parse(item)...)
		}
		return out
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, c.Parse(s)...)
			}
		}
		return out
	default:
		return []string{}
	}
}

// Parse splits free-form text into bullets.
//
// The pipeline: normalize line endings and bullet glyphs, expand inline
// markers into separate lines, classify each line as bullet-initiated or
// continuation, merge continuations into the previous bullet when the merge
// heuristic fires, then strip residual markers and collapse whitespace.
func (c Config) Parse(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return []string{}
	}

	// 1. Normalize line endings (CRLF → LF), glyphs, and tabs
	text := strings.ReplaceAll(raw, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	for _, glyph := range glyphVariants {
		text = strings.ReplaceAll(text, glyph, CanonicalMarker)
	}
	text = strings.ReplaceAll(text, "\t", " ")

	// 2. Expand inline markers into candidate lines
	candidates := expandInline(strings.Split(text, "\n"))

	// 3. Classify and merge
	bullets := make([]string, 0, len(candidates))
	for _, line := range candidates {
		if line == "" {
			continue
		}

		if marker := markerPattern.FindString(line); marker != "" {
			item := strings.TrimSpace(line[len(marker):])
			if item != "" {
				bullets = append(bullets, item)
			}
			continue
		}

		if len(bullets) == 0 {
			bullets = append(bullets, line)
			continue
		}

		prev := bullets[len(bullets)-1]
		if c.shouldMerge(line, prev) {
			bullets[len(bullets)-1] = prev + " " + line
		} else {
			bullets = append(bullets, line)
		}
	}

	// 4. Final cleanup: residual markers, whitespace runs, empties
	cleaned := make([]string, 0, len(bullets))
	for _, b := range bullets {
		b = strings.TrimLeft(b, residualMarkerChars)
		b = spaceRun.ReplaceAllString(b, " ")
		b = strings.TrimSpace(b)
		if b != "" {
			cleaned = append(cleaned, b)
		}
	}
	return cleaned
}

// expandInline splits lines that carry the canonical marker mid-line into
// separate candidate lines. Text before the first marker, if any, becomes its
// own leading line.
func expandInline(lines []string) []string {
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if !strings.Contains(line, CanonicalMarker) {
			out = append(out, line)
			continue
		}

		parts := strings.Split(line, CanonicalMarker)
		if head := strings.TrimSpace(parts[0]); head != "" {
			out = append(out, head)
		}
		for _, seg := range parts[1:] {
			out = append(out, CanonicalMarker+" "+strings.TrimSpace(seg))
		}
	}
	return out
}

// shouldMerge reports whether a continuation line belongs to the previous
// bullet: wrapped lines start with a lowercase letter, and short fragments
// attach to a bullet that has not yet reached terminal punctuation.
func (c Config) shouldMerge(line, prev string) bool {
	runes := []rune(line)
	if len(runes) == 0 {
		return false
	}
	if unicode.IsLower(runes[0]) {
		return true
	}
	if len(runes) < c.ShortLineMax && !endsTerminal(prev) {
		return true
	}
	return false
}

// endsTerminal reports whether s ends with sentence-terminating punctuation.
func endsTerminal(s string) bool {
	runes := []rune(s)
	if len(runes) == 0 {
		return false
	}
	return strings.ContainsRune(terminalPunctuation, runes[len(runes)-1])
}
