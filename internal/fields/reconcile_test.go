package fields

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPick_CurrentNameWins(t *testing.T) {
	raw := map[string]any{"company": "Acme2", "employer": "Acme"}
	assert.Equal(t, "Acme2", Pick(raw, "company", "employer"))
}

func TestPick_FallsBackToLegacyWhenCurrentBlank(t *testing.T) {
	raw := map[string]any{"company": "", "employer": "Acme"}
	assert.Equal(t, "Acme", Pick(raw, "company", "employer"))
}

func TestPick_WhitespaceOnlyCurrentTreatedAsBlank(t *testing.T) {
	raw := map[string]any{"position": "   ", "role": "Engineer"}
	assert.Equal(t, "Engineer", Pick(raw, "position", "role"))
}

func TestPick_BothAbsent(t *testing.T) {
	assert.Equal(t, "", Pick(map[string]any{}, "website", "portfolio"))
	assert.Equal(t, "", Pick(nil, "website", "portfolio"))
}

func TestString_CoercesNumbers(t *testing.T) {
	raw := map[string]any{"gpa": 3.8, "year": float64(2021)}
	assert.Equal(t, "3.8", String(raw, "gpa"))
	assert.Equal(t, "2021", String(raw, "year"))
}

func TestString_UnsupportedTypesYieldEmpty(t *testing.T) {
	raw := map[string]any{"flag": true, "obj": map[string]any{}, "list": []any{}}
	assert.Equal(t, "", String(raw, "flag"))
	assert.Equal(t, "", String(raw, "obj"))
	assert.Equal(t, "", String(raw, "list"))
	assert.Equal(t, "", String(raw, "missing"))
}

func TestStringList_DropsNonStringsAndBlanks(t *testing.T) {
	raw := map[string]any{"achievements": []any{" Dean's list ", "", 7, nil, "Published paper"}}
	assert.Equal(t, []string{"Dean's list", "Published paper"}, StringList(raw, "achievements"))
}

func TestList_AcceptsStringSlices(t *testing.T) {
	raw := map[string]any{"items": []string{"a", "b"}}
	assert.Equal(t, []any{"a", "b"}, List(raw, "items"))
}

func TestHas_DistinguishesAbsentFromEmpty(t *testing.T) {
	raw := map[string]any{"portfolio": ""}
	assert.True(t, Has(raw, "portfolio"))
	assert.False(t, Has(raw, "website"))
	assert.False(t, Has(nil, "website"))
}
