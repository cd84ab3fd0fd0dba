package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-vault/internal/importer"
	"github.com/jonathan/resume-vault/internal/normalize"
	"github.com/jonathan/resume-vault/internal/observability"
	"github.com/jonathan/resume-vault/internal/types"
)

var (
	normalizeIn          string
	normalizeOut         string
	normalizeCheckLegacy bool
)

var normalizeCmd = &cobra.Command{
	Use:   "normalize",
	Short: "Normalize a resume JSON file to the canonical shape",
	Long: `Read a resume (or a backup file containing several) and write the
canonical, normalized form. With --check-legacy, report which records still
carry legacy-shaped fields instead of writing output.`,
	RunE: runNormalize,
}

func init() {
	normalizeCmd.Flags().StringVar(&normalizeIn, "in", "", "Input JSON file (default: stdin)")
	normalizeCmd.Flags().StringVar(&normalizeOut, "out", "", "Output file (default: stdout)")
	normalizeCmd.Flags().BoolVar(&normalizeCheckLegacy, "check-legacy", false, "Report legacy-shaped records instead of writing output")
	rootCmd.AddCommand(normalizeCmd)
}

func runNormalize(_ *cobra.Command, _ []string) error {
	payload, err := readInput(normalizeIn)
	if err != nil {
		return err
	}

	records, err := importer.Coerce(payload)
	if err != nil {
		return fmt.Errorf("failed to read resume input: %w", err)
	}

	if normalizeCheckLegacy {
		report := make(map[string]bool, len(records))
		for i, record := range records {
			label := fmt.Sprintf("record %d", i+1)
			if r := normalize.Resume(record); r != nil && r.Name != "" {
				label = r.Name
			}
			report[label] = normalize.IsLegacy(record)
		}
		observability.NewPrinter(os.Stdout).PrintLegacyReport(report)
		return nil
	}

	normalized := make([]*types.Resume, 0, len(records))
	for i, record := range records {
		r := normalize.Resume(record)
		if r == nil {
			return fmt.Errorf("record %d is not a resume object", i+1)
		}
		normalized = append(normalized, r)
	}

	var out any = normalized
	if len(normalized) == 1 {
		out = normalized[0]
	}

	encoded, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode normalized output: %w", err)
	}

	if verbose {
		printer := observability.NewPrinter(os.Stderr)
		for _, r := range normalized {
			printer.PrintResume(r)
		}
	}

	return writeOutput(normalizeOut, append(encoded, '\n'))
}

func readInput(path string) ([]byte, error) {
	if path == "" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, fmt.Errorf("failed to read stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return data, nil
}

func writeOutput(path string, data []byte) error {
	if path == "" {
		_, err := os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
