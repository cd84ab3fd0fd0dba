package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/resume-vault/internal/config"
	"github.com/jonathan/resume-vault/internal/normalize"
	"github.com/jonathan/resume-vault/internal/profile"
	"github.com/jonathan/resume-vault/internal/rendering"
	"github.com/jonathan/resume-vault/internal/types"
)

var (
	renderID     string
	renderIn     string
	renderAll    bool
	renderFormat string
	renderOut    string
)

// renderConcurrency bounds parallel Chrome instances for --all.
const renderConcurrency = 2

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render a resume to PDF or DOCX",
	Long: `Render one resume (by id or from a JSON file) or every stored resume
with --all. PDFs are produced with headless Chrome; DOCX requires a
configured document service.`,
	RunE: runRender,
}

func init() {
	renderCmd.Flags().StringVar(&renderID, "id", "", "Stored resume id to render")
	renderCmd.Flags().StringVar(&renderIn, "in", "", "Resume JSON file to render")
	renderCmd.Flags().BoolVar(&renderAll, "all", false, "Render every stored resume")
	renderCmd.Flags().StringVar(&renderFormat, "format", "pdf", "Output format: pdf or docx")
	renderCmd.Flags().StringVar(&renderOut, "out", "", "Output file, or directory with --all")
	rootCmd.AddCommand(renderCmd)
}

func runRender(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	renderer := rendering.NewService(cfg.DocServiceURL)
	format := rendering.Format(renderFormat)
	ctx := cmd.Context()

	switch {
	case renderAll:
		return renderEverything(ctx, cfg, renderer, format)
	case renderIn != "":
		data, err := os.ReadFile(renderIn)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", renderIn, err)
		}
		var raw map[string]any
		if err := json.Unmarshal(data, &raw); err != nil {
			return fmt.Errorf("failed to parse %s: %w", renderIn, err)
		}
		resume := normalize.Resume(raw)
		if resume == nil {
			return fmt.Errorf("%s is not a resume object", renderIn)
		}
		return renderOne(ctx, renderer, resume, format, renderOut)
	case renderID != "":
		if cfg.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is required to render by id")
		}
		st, err := openStore(ctx, cfg)
		if err != nil {
			return err
		}
		defer st.Close()

		resume, err := profile.NewService(st).Load(ctx, renderID)
		if err != nil {
			return err
		}
		return renderOne(ctx, renderer, resume, format, renderOut)
	default:
		return fmt.Errorf("one of --id, --in, or --all is required")
	}
}

func renderOne(ctx context.Context, renderer rendering.Renderer, resume *types.Resume, format rendering.Format, out string) error {
	doc, err := renderer.Render(ctx, resume, format)
	if err != nil {
		return err
	}

	if out == "" {
		out = outputName(resume, format)
	}
	if err := os.WriteFile(out, doc, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", out, err)
	}
	fmt.Printf("Wrote %s\n", out)
	return nil
}

func renderEverything(ctx context.Context, cfg config.Config, renderer rendering.Renderer, format rendering.Format) error {
	if cfg.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required for --all")
	}

	st, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	all, err := profile.NewService(st).LoadAll(ctx)
	if err != nil {
		return err
	}

	dir := renderOut
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create %s: %w", dir, err)
	}

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(renderConcurrency)
	for _, resume := range all {
		resume := resume
		g.Go(func() error {
			return renderOne(gCtx, renderer, resume, format, filepath.Join(dir, outputName(resume, format)))
		})
	}
	return g.Wait()
}

// outputName derives a filesystem-safe file name from the resume label.
func outputName(resume *types.Resume, format rendering.Format) string {
	name := strings.ToLower(strings.TrimSpace(resume.Name))
	if name == "" {
		name = resume.ID
	}
	name = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		default:
			return '-'
		}
	}, name)
	name = strings.Trim(name, "-")
	if name == "" {
		name = "resume"
	}
	return name + "." + string(format)
}
