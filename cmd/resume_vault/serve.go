package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-vault/internal/rendering"
	"github.com/jonathan/resume-vault/internal/server"
	"github.com/jonathan/resume-vault/internal/tailoring"
)

var (
	servePort int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes REST endpoints for resume storage, normalization, drafts, import/export, tailoring, and rendering.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (overrides config)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if servePort != 0 {
		cfg.Port = servePort
	}

	ctx := cmd.Context()
	st, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	if cfg.DatabaseURL == "" {
		log.Println("warning: no DATABASE_URL configured, using in-memory storage")
	}

	var tailor tailoring.Tailor
	if cfg.GeminiAPIKey != "" {
		tailor, err = tailoring.NewGeminiTailor(context.Background(), cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			st.Close()
			return fmt.Errorf("failed to create tailoring client: %w", err)
		}
	}

	renderer := rendering.NewService(cfg.DocServiceURL)

	srv := server.New(server.Config{
		Port:               cfg.Port,
		PasswordHash:       cfg.APIPasswordHash,
		JWTSecret:          cfg.JWTSecret,
		JWTExpirationHours: cfg.JWTExpirationHours,
		DraftDebounce:      time.Duration(cfg.DraftDebounceMs) * time.Millisecond,
	}, st, tailor, renderer)

	return srv.Start()
}
