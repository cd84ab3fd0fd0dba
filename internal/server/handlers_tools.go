// Package server provides the HTTP REST API for the resume vault.
package server

import (
	"encoding/json"
	"net/http"

	"github.com/jonathan/resume-vault/internal/jobtext"
	"github.com/jonathan/resume-vault/internal/normalize"
	"github.com/jonathan/resume-vault/internal/rendering"
	"github.com/jonathan/resume-vault/internal/types"
)

// TailorRequest is the body of POST /tailor. Exactly one of ResumeID or
// Resume selects the input, and exactly one of JobText or JobURL supplies the
// job description.
type TailorRequest struct {
	ResumeID string         `json:"resumeId,omitempty"`
	Resume   map[string]any `json:"resume,omitempty"`
	JobText  string         `json:"jobText,omitempty"`
	JobURL   string         `json:"jobUrl,omitempty"`
}

// handleTailor adapts a resume to a job description via the AI collaborator.
func (s *Server) handleTailor(w http.ResponseWriter, r *http.Request) {
	if s.tailor == nil {
		s.errorResponse(w, http.StatusServiceUnavailable, "tailoring is not configured")
		return
	}

	var req TailorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	resume, ok := s.resolveResume(w, r, req.ResumeID, req.Resume)
	if !ok {
		return
	}

	jobText := req.JobText
	if jobText == "" && req.JobURL != "" {
		fetched, err := jobtext.Fetch(r.Context(), req.JobURL)
		if err != nil {
			s.errorResponse(w, http.StatusBadGateway, err.Error())
			return
		}
		jobText = fetched
	}
	if jobText == "" {
		s.errorResponse(w, http.StatusBadRequest, "jobText or jobUrl is required")
		return
	}

	result, err := s.tailor.Tailor(r.Context(), resume, jobText)
	if err != nil {
		s.errorResponse(w, http.StatusBadGateway, err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, result)
}

// RenderRequest is the body of POST /render.
type RenderRequest struct {
	ResumeID string         `json:"resumeId,omitempty"`
	Resume   map[string]any `json:"resume,omitempty"`
	Format   string         `json:"format" validate:"required,oneof=pdf docx"`
}

// handleRender produces a PDF or DOCX document for a resume.
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	if s.renderer == nil {
		s.errorResponse(w, http.StatusServiceUnavailable, "rendering is not configured")
		return
	}

	var req RenderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := s.validator.Struct(req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}

	resume, ok := s.resolveResume(w, r, req.ResumeID, req.Resume)
	if !ok {
		return
	}

	format := rendering.Format(req.Format)
	doc, err := s.renderer.Render(r.Context(), resume, format)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	contentType := "application/pdf"
	if format == rendering.FormatDOCX {
		contentType = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", `attachment; filename="resume.`+req.Format+`"`)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(doc); err != nil {
		// Response already started, nothing else to do
		return
	}
}

// resolveResume materializes the request's resume input, either by id lookup
// or by normalizing an inline payload. On failure it writes the error
// response and returns ok=false.
func (s *Server) resolveResume(w http.ResponseWriter, r *http.Request, id string, inline map[string]any) (*types.Resume, bool) {
	switch {
	case id != "":
		resume, err := s.profiles.Load(r.Context(), id)
		if err != nil {
			s.errorResponse(w, HTTPStatus(err), err.Error())
			return nil, false
		}
		return resume, true
	case inline != nil:
		// Inline payloads are normalized but never persisted
		resume := normalize.Resume(inline)
		if resume == nil {
			s.errorResponse(w, http.StatusBadRequest, "resume payload is not an object")
			return nil, false
		}
		return resume, true
	default:
		s.errorResponse(w, http.StatusBadRequest, "resumeId or resume is required")
		return nil, false
	}
}
