package tailoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanJSONBlock_FencedJSON(t *testing.T) {
	input := "```json\n{\"atsScore\": 80}\n```"
	assert.Equal(t, `{"atsScore": 80}`, cleanJSONBlock(input))
}

func TestCleanJSONBlock_GenericFence(t *testing.T) {
	input := "```\n{\"atsScore\": 80}\n```"
	assert.Equal(t, `{"atsScore": 80}`, cleanJSONBlock(input))
}

func TestCleanJSONBlock_PlainJSONUntouched(t *testing.T) {
	input := `{"atsScore": 80}`
	assert.Equal(t, input, cleanJSONBlock(input))
}

func TestClampScore(t *testing.T) {
	assert.Equal(t, 0, clampScore(-5))
	assert.Equal(t, 100, clampScore(250))
	assert.Equal(t, 73, clampScore(73))
}

func TestDecodeResult_NormalizesTailoredResume(t *testing.T) {
	payload := "```json\n" + `{
		"tailoredResume": {
			"id": "r1",
			"personalInfo": {"name": "Ada", "email": "ada@example.com"},
			"experience": [{"employer": "Acme", "role": "Engineer", "description": "• Did things"}],
			"skills": "Go, Rust"
		},
		"atsScore": 140,
		"matchedKeywords": ["Go"]
	}` + "\n```"

	result, err := decodeResult(payload)
	require.NoError(t, err)
	assert.Equal(t, 100, result.ATSScore)
	assert.Equal(t, []string{"Go"}, result.MatchedKeywords)
	assert.Equal(t, []string{}, result.MissingKeywords)

	// Legacy naming in model output was normalized away
	require.Len(t, result.TailoredResume.Experience, 1)
	assert.Equal(t, "Acme", result.TailoredResume.Experience[0].Company)
	assert.Equal(t, []string{"Go", "Rust"}, result.TailoredResume.Skills)
}

func TestDecodeResult_MissingResumeRejected(t *testing.T) {
	_, err := decodeResult(`{"atsScore": 50}`)
	assert.Error(t, err)
}

func TestDecodeResult_NonJSONRejected(t *testing.T) {
	_, err := decodeResult("I could not tailor this resume.")
	assert.Error(t, err)
}
