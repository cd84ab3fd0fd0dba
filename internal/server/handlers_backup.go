// Package server provides the HTTP REST API for the resume vault.
package server

import (
	"io"
	"net/http"
)

// maxImportBytes bounds an import payload.
const maxImportBytes = 32 << 20 // 32 MiB

// ImportResponse summarizes what an import changed.
type ImportResponse struct {
	Added       int `json:"added"`
	Overwritten int `json:"overwritten"`
	Deduped     int `json:"deduped"`
	Skipped     int `json:"skipped"`
}

// handleImport merges an uploaded backup (or single resume, or raw array)
// into the stored set. ?overwrite=true replaces colliding ids instead of
// re-keying them.
func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	payload, err := io.ReadAll(io.LimitReader(r.Body, maxImportBytes))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "failed to read request body")
		return
	}

	overwrite := r.URL.Query().Get("overwrite") == "true"

	result, err := s.profiles.Import(r.Context(), payload, overwrite)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, ImportResponse{
		Added:       result.Added,
		Overwritten: result.Overwritten,
		Deduped:     result.Deduped,
		Skipped:     result.Skipped,
	})
}

// handleExport streams the backup envelope for every stored resume.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	envelope, err := s.profiles.Export(r.Context())
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	w.Header().Set("Content-Disposition", `attachment; filename="resume-vault-backup.json"`)
	s.jsonResponse(w, http.StatusOK, envelope)
}
