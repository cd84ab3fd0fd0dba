package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-vault/internal/jobtext"
	"github.com/jonathan/resume-vault/internal/normalize"
	"github.com/jonathan/resume-vault/internal/profile"
	"github.com/jonathan/resume-vault/internal/tailoring"
	"github.com/jonathan/resume-vault/internal/types"
)

var (
	tailorID     string
	tailorIn     string
	tailorJob    string
	tailorJobURL string
	tailorOut    string
)

var tailorCmd = &cobra.Command{
	Use:   "tailor",
	Short: "Tailor a resume to a job description",
	Long: `Adapt a resume (by id or from a JSON file) to a job description,
given as a text file with --job or fetched from a posting URL with --job-url.
Requires GEMINI_API_KEY.`,
	RunE: runTailor,
}

func init() {
	tailorCmd.Flags().StringVar(&tailorID, "id", "", "Stored resume id to tailor")
	tailorCmd.Flags().StringVar(&tailorIn, "in", "", "Resume JSON file to tailor")
	tailorCmd.Flags().StringVar(&tailorJob, "job", "", "Job description text file")
	tailorCmd.Flags().StringVar(&tailorJobURL, "job-url", "", "Job posting URL to fetch")
	tailorCmd.Flags().StringVar(&tailorOut, "out", "", "Output file (default: stdout)")
	rootCmd.AddCommand(tailorCmd)
}

func runTailor(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cfg.GeminiAPIKey == "" {
		return fmt.Errorf("GEMINI_API_KEY is required for tailoring")
	}
	if tailorJob != "" && tailorJobURL != "" {
		return fmt.Errorf("--job and --job-url are mutually exclusive")
	}

	ctx := cmd.Context()

	// Resolve the job text
	var jobText string
	switch {
	case tailorJob != "":
		data, err := os.ReadFile(tailorJob)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", tailorJob, err)
		}
		jobText = string(data)
	case tailorJobURL != "":
		jobText, err = jobtext.Fetch(ctx, tailorJobURL)
		if err != nil {
			return err
		}
	default:
		return fmt.Errorf("--job or --job-url is required")
	}

	// Resolve the resume
	var resume *types.Resume
	switch {
	case tailorIn != "":
		data, err := os.ReadFile(tailorIn)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", tailorIn, err)
		}
		var raw map[string]any
		if err := json.Unmarshal(data, &raw); err != nil {
			return fmt.Errorf("failed to parse %s: %w", tailorIn, err)
		}
		resume = normalize.Resume(raw)
		if resume == nil {
			return fmt.Errorf("%s is not a resume object", tailorIn)
		}
	case tailorID != "":
		if cfg.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is required to tailor by id")
		}
		st, err := openStore(ctx, cfg)
		if err != nil {
			return err
		}
		defer st.Close()

		resume, err = profile.NewService(st).Load(ctx, tailorID)
		if err != nil {
			return err
		}
	default:
		return fmt.Errorf("--id or --in is required")
	}

	tailor, err := tailoring.NewGeminiTailor(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
	if err != nil {
		return fmt.Errorf("failed to create tailoring client: %w", err)
	}
	defer func() { _ = tailor.Close() }()

	result, err := tailor.Tailor(ctx, resume, jobText)
	if err != nil {
		return fmt.Errorf("tailoring failed: %w", err)
	}

	encoded, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode result: %w", err)
	}
	return writeOutput(tailorOut, append(encoded, '\n'))
}
