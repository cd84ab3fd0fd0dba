package bullets

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_EmptyInput(t *testing.T) {
	assert.Empty(t, Parse(""))
	assert.Empty(t, Parse("   \n\t  "))
}

func TestParseValue_NilAndUnsupported(t *testing.T) {
	assert.Empty(t, ParseValue(nil))
	assert.Empty(t, ParseValue(42))
	assert.Empty(t, ParseValue(map[string]any{"text": "ignored"}))
}

func TestParse_MarkerVariants(t *testing.T) {
	input := "• First\n- Second\n* Third\n– Fourth\n— Fifth"
	assert.Equal(t, []string{"First", "Second", "Third", "Fourth", "Fifth"}, Parse(input))
}

func TestParse_UnicodeGlyphsNormalized(t *testing.T) {
	input := "● Shipped feature\n◦ Fixed bugs\n▪ Wrote docs"
	assert.Equal(t, []string{"Shipped feature", "Fixed bugs", "Wrote docs"}, Parse(input))
}

func TestParse_NumberedOrdinals(t *testing.T) {
	input := "1. Designed the schema\n2) Migrated the data\n(3) Verified integrity"
	assert.Equal(t, []string{"Designed the schema", "Migrated the data", "Verified integrity"}, Parse(input))
}

func TestParse_InlineMarkersExpanded(t *testing.T) {
	got := Parse("Intro text • First • Second")
	assert.Equal(t, []string{"Intro text", "First", "Second"}, got)
}

func TestParse_InlineMarkersWithoutPreface(t *testing.T) {
	got := Parse("• First • Second • Third")
	assert.Equal(t, []string{"First", "Second", "Third"}, got)
}

func TestParse_WrappedLowercaseLineMerges(t *testing.T) {
	got := Parse("Built a system\nthat scales well")
	assert.Equal(t, []string{"Built a system that scales well"}, got)
}

func TestParse_ShortLineMergesWhenPreviousUnfinished(t *testing.T) {
	// "Across regions" is short and the previous bullet has no terminal
	// punctuation, so it attaches despite the uppercase start.
	got := Parse("• Deployed the service\nAcross regions")
	assert.Equal(t, []string{"Deployed the service Across regions"}, got)
}

func TestParse_ShortLineStartsNewBulletAfterTerminalPunctuation(t *testing.T) {
	got := Parse("• Deployed the service.\nNew project")
	assert.Equal(t, []string{"Deployed the service.", "New project"}, got)
}

func TestParse_LongUppercaseLineStartsNewBullet(t *testing.T) {
	got := Parse("Led the platform migration\nManaged a team of nine engineers")
	assert.Equal(t, []string{"Led the platform migration", "Managed a team of nine engineers"}, got)
}

func TestParse_EmptyMarkersDropped(t *testing.T) {
	got := Parse("•  \n• Real bullet\n•")
	assert.Equal(t, []string{"Real bullet"}, got)
}

func TestParse_TabsAndWhitespaceCollapsed(t *testing.T) {
	got := Parse("• Built\tthe   data\t\tpipeline")
	assert.Equal(t, []string{"Built the data pipeline"}, got)
}

func TestParse_CRLFLineEndings(t *testing.T) {
	got := Parse("• First\r\n• Second\r• Third")
	assert.Equal(t, []string{"First", "Second", "Third"}, got)
}

func TestParseValue_StringSlice(t *testing.T) {
	got := ParseValue([]string{"• A", "• B"})
	assert.Equal(t, []string{"A", "B"}, got)
}

func TestParseValue_DecodedJSONSlice(t *testing.T) {
	got := ParseValue([]any{"• A", "• B", 7, nil})
	assert.Equal(t, []string{"A", "B"}, got)
}

func TestParseValue_IdempotentOnCleanBullets(t *testing.T) {
	first := ParseValue("Improved checkout flow • reduced latency by 40% • cut infra costs")
	require.NotEmpty(t, first)

	second := ParseValue(first)
	assert.Equal(t, first, second)
}

func TestParseValue_IdempotentOnShortCleanBullets(t *testing.T) {
	// Short clean bullets must not re-merge when passed back in as a list.
	first := []string{"Led team", "Grew revenue"}
	assert.Equal(t, first, ParseValue(first))
}

func TestParse_ConfigurableShortLineThreshold(t *testing.T) {
	cfg := Config{ShortLineMax: 5}
	// "Regions" is 7 runes, above the tuned-down cutoff, so no merge.
	got := cfg.Parse("• Deployed the service\nRegions")
	assert.Equal(t, []string{"Deployed the service", "Regions"}, got)
}

func TestParse_DeterministicAcrossRuns(t *testing.T) {
	input := "Intro • one • two\nwrapped line continues\n- dashed"
	first := Parse(input)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, Parse(input))
	}
}
