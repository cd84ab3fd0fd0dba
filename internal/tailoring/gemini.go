package tailoring

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"github.com/jonathan/resume-vault/internal/normalize"
	"github.com/jonathan/resume-vault/internal/types"
	"google.golang.org/api/option"
)

// DefaultModel is the Gemini model used when none is configured.
const DefaultModel = "gemini-2.0-flash"

// GeminiTailor implements Tailor against Google Gemini.
type GeminiTailor struct {
	client *genai.Client
	model  string
}

// NewGeminiTailor creates a Gemini-backed tailoring client.
func NewGeminiTailor(ctx context.Context, apiKey, model string) (*GeminiTailor, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}
	if model == "" {
		model = DefaultModel
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return &GeminiTailor{client: client, model: model}, nil
}

// Tailor sends the resume and job description to the model and decodes its
// JSON verdict. The tailored resume is re-normalized before it is returned so
// model output cannot bypass the canonical-form invariants.
func (t *GeminiTailor) Tailor(ctx context.Context, resume *types.Resume, jobText string) (*Result, error) {
	if resume == nil {
		return nil, fmt.Errorf("resume is required")
	}
	if strings.TrimSpace(jobText) == "" {
		return nil, fmt.Errorf("job description text is required")
	}

	prompt, err := buildPrompt(resume, jobText)
	if err != nil {
		return nil, err
	}

	model := t.client.GenerativeModel(t.model)
	model.SetTemperature(0.1) // Low temperature for consistent output

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return nil, fmt.Errorf("failed to generate tailored resume: %w", err)
	}

	text, err := extractText(resp)
	if err != nil {
		return nil, err
	}
	return decodeResult(text)
}

// Close releases the underlying client.
func (t *GeminiTailor) Close() error {
	if t.client != nil {
		return t.client.Close()
	}
	return nil
}

func buildPrompt(resume *types.Resume, jobText string) (string, error) {
	resumeJSON, err := json.MarshalIndent(resume, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode resume for prompt: %w", err)
	}

	var sb strings.Builder
	sb.WriteString("You are an expert resume writer and ATS analyst.\n")
	sb.WriteString("Tailor the resume below to the job description. Rules:\n")
	sb.WriteString("- Keep every factual claim; rephrase and reorder, never invent.\n")
	sb.WriteString("- Keep the JSON structure of the resume exactly as given.\n")
	sb.WriteString("- Score ATS compatibility from 0 to 100.\n")
	sb.WriteString("Respond with a single JSON object with keys tailoredResume, atsScore, matchedKeywords, missingKeywords.\n\n")
	sb.WriteString("RESUME:\n")
	sb.Write(resumeJSON)
	sb.WriteString("\n\nJOB DESCRIPTION:\n")
	sb.WriteString(jobText)
	return sb.String(), nil
}

func extractText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		return "", fmt.Errorf("empty response from model")
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			sb.WriteString(string(text))
		}
	}
	if sb.Len() == 0 {
		return "", fmt.Errorf("no text content in model response")
	}
	return sb.String(), nil
}

// decodeResult parses the model's JSON verdict, tolerating markdown fences
// and re-normalizing the tailored resume.
func decodeResult(text string) (*Result, error) {
	cleaned := cleanJSONBlock(text)

	var wire struct {
		TailoredResume  map[string]any `json:"tailoredResume"`
		ATSScore        int            `json:"atsScore"`
		MatchedKeywords []string       `json:"matchedKeywords"`
		MissingKeywords []string       `json:"missingKeywords"`
	}
	if err := json.Unmarshal([]byte(cleaned), &wire); err != nil {
		return nil, fmt.Errorf("failed to parse model response as JSON: %w", err)
	}

	tailored := normalize.Resume(wire.TailoredResume)
	if tailored == nil {
		return nil, fmt.Errorf("model response is missing tailoredResume")
	}

	result := &Result{
		TailoredResume:  tailored,
		ATSScore:        clampScore(wire.ATSScore),
		MatchedKeywords: wire.MatchedKeywords,
		MissingKeywords: wire.MissingKeywords,
	}
	if result.MatchedKeywords == nil {
		result.MatchedKeywords = []string{}
	}
	if result.MissingKeywords == nil {
		result.MissingKeywords = []string{}
	}
	return result, nil
}

// cleanJSONBlock removes markdown code block wrappers from model responses.
// Models often wrap JSON in ```json ... ``` blocks even when instructed not
// to.
func cleanJSONBlock(text string) string {
	text = strings.TrimSpace(text)

	if strings.HasPrefix(text, "```json") {
		text = strings.TrimPrefix(text, "```json")
		if idx := strings.LastIndex(text, "```"); idx >= 0 {
			text = text[:idx]
		}
		return strings.TrimSpace(text)
	}

	if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```")
		if idx := strings.Index(text, "\n"); idx >= 0 {
			firstLine := text[:idx]
			if len(firstLine) < 20 && !strings.Contains(firstLine, " ") && !strings.Contains(firstLine, "{") {
				text = text[idx+1:]
			}
		}
		if idx := strings.LastIndex(text, "```"); idx >= 0 {
			text = text[:idx]
		}
		return strings.TrimSpace(text)
	}

	return text
}
