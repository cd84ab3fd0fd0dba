package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-vault/internal/observability"
	"github.com/jonathan/resume-vault/internal/profile"
)

var (
	importOverwrite bool
)

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import resumes from a backup file",
	Long: `Merge a backup file (or a single exported resume) into the vault.
Colliding ids are re-keyed as copies unless --overwrite is set.`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func init() {
	importCmd.Flags().BoolVar(&importOverwrite, "overwrite", false, "Replace stored resumes on id collision")
	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cfg.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required for import")
	}

	payload, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", args[0], err)
	}

	ctx := cmd.Context()
	st, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	result, err := profile.NewService(st).Import(ctx, payload, importOverwrite)
	if err != nil {
		return fmt.Errorf("import failed: %w", err)
	}

	observability.NewPrinter(os.Stdout).PrintImportResult(result)
	return nil
}
