// Package rendering turns a canonical resume into document bytes. PDF output
// goes through headless Chrome printing an HTML rendition; DOCX output is
// delegated to an external document service.
package rendering

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"github.com/jonathan/resume-vault/internal/types"
)

// Format selects the output document type.
type Format string

// Supported output formats.
const (
	FormatPDF  Format = "pdf"
	FormatDOCX Format = "docx"
)

// pdfTimeout bounds one headless-Chrome print run.
const pdfTimeout = 60 * time.Second

// Renderer is the collaborator contract for document generation.
type Renderer interface {
	Render(ctx context.Context, resume *types.Resume, format Format) ([]byte, error)
}

// Service renders resumes: PDFs locally via chromedp, DOCX through the
// configured document service.
type Service struct {
	// DocServiceURL is the endpoint of the external DOCX generator. Required
	// only for FormatDOCX.
	DocServiceURL string
	// ChromePath overrides the Chrome binary location; empty uses discovery.
	ChromePath string
	// HTTPClient is used for document-service calls; nil uses a default with
	// a sane timeout.
	HTTPClient *http.Client
}

// NewService creates a renderer with the given document-service endpoint.
func NewService(docServiceURL string) *Service {
	return &Service{
		DocServiceURL: docServiceURL,
		ChromePath:    os.Getenv("CHROME_PATH"),
	}
}

// Render produces document bytes for the resume in the requested format.
func (s *Service) Render(ctx context.Context, resume *types.Resume, format Format) ([]byte, error) {
	if resume == nil {
		return nil, fmt.Errorf("resume is required")
	}

	switch format {
	case FormatPDF:
		return s.renderPDF(ctx, resume)
	case FormatDOCX:
		return s.renderDOCX(ctx, resume)
	default:
		return nil, &UnsupportedFormatError{Format: string(format)}
	}
}

func (s *Service) renderPDF(ctx context.Context, resume *types.Resume) ([]byte, error) {
	html, err := RenderHTML(resume)
	if err != nil {
		return nil, err
	}

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-dev-shm-usage", true),
	)
	if s.ChromePath != "" {
		opts = append(opts, chromedp.ExecPath(s.ChromePath))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	defer cancelAlloc()

	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()

	runCtx, cancelRun := context.WithTimeout(browserCtx, pdfTimeout)
	defer cancelRun()

	tmpDir, err := os.MkdirTemp("", "resume-vault-")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp dir: %w", err)
	}
	defer func() { _ = os.RemoveAll(tmpDir) }()

	htmlPath := filepath.Join(tmpDir, "resume.html")
	if err := os.WriteFile(htmlPath, []byte(html), 0o644); err != nil {
		return nil, fmt.Errorf("failed to write render input: %w", err)
	}

	var pdf []byte
	err = chromedp.Run(runCtx,
		chromedp.Navigate("file://"+htmlPath),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			// Letter: 8.5in x 11in
			pdf, _, err = page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(8.5).
				WithPaperHeight(11).
				WithPreferCSSPageSize(true).
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to print PDF: %w", err)
	}
	return pdf, nil
}

func (s *Service) renderDOCX(ctx context.Context, resume *types.Resume) ([]byte, error) {
	if s.DocServiceURL == "" {
		return nil, fmt.Errorf("document service URL is not configured")
	}

	body, err := resumeJSON(resume)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.DocServiceURL+"/render/docx", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create document service request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	client := s.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: 60 * time.Second}
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("document service request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("document service returned HTTP %d", resp.StatusCode)
	}

	docBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read document service response: %w", err)
	}
	return docBytes, nil
}
