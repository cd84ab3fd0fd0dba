// Package server provides the HTTP REST API for the resume vault.
package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sort"

	"github.com/go-playground/validator/v10"

	"github.com/jonathan/resume-vault/internal/types"
)

// handleListResumes returns every stored resume, ordered by display name.
func (s *Server) handleListResumes(w http.ResponseWriter, r *http.Request) {
	all, err := s.profiles.LoadAll(r.Context())
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	resumes := make([]*types.Resume, 0, len(all))
	for _, resume := range all {
		resumes = append(resumes, resume)
	}
	sort.Slice(resumes, func(i, j int) bool {
		if resumes[i].Name != resumes[j].Name {
			return resumes[i].Name < resumes[j].Name
		}
		return resumes[i].ID < resumes[j].ID
	})

	s.jsonResponse(w, http.StatusOK, map[string]any{"resumes": resumes})
}

// handleSaveResume normalizes and stores the posted resume, assigning an id
// when the payload has none.
func (s *Server) handleSaveResume(w http.ResponseWriter, r *http.Request) {
	var raw map[string]any
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	resume, err := s.profiles.Save(r.Context(), raw)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	s.jsonResponse(w, http.StatusCreated, resume)
}

// handleGetResume returns one resume by id.
func (s *Server) handleGetResume(w http.ResponseWriter, r *http.Request) {
	resume, err := s.profiles.Load(r.Context(), r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, resume)
}

// handleUpdateResume replaces one resume. The path id is authoritative over
// any id in the body.
func (s *Server) handleUpdateResume(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	if _, err := s.profiles.Load(r.Context(), id); err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	var raw map[string]any
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if raw == nil {
		// JSON null decodes into a nil map without error
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	raw["id"] = id

	resume, err := s.profiles.Save(r.Context(), raw)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, resume)
}

// handleDeleteResume removes one resume and its dependent state.
func (s *Server) handleDeleteResume(w http.ResponseWriter, r *http.Request) {
	if err := s.profiles.Delete(r.Context(), r.PathValue("id")); err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// handleGetCurrent returns the selected resume id, "" when none is selected.
func (s *Server) handleGetCurrent(w http.ResponseWriter, r *http.Request) {
	id, err := s.profiles.Current(r.Context())
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]string{"id": id})
}

// CurrentProfileRequest is the body of PUT /profile/current.
type CurrentProfileRequest struct {
	ID string `json:"id"`
}

// handleSetCurrent selects a resume as the current profile; an empty id
// clears the selection.
func (s *Server) handleSetCurrent(w http.ResponseWriter, r *http.Request) {
	var req CurrentProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := s.profiles.SetCurrent(r.Context(), req.ID); err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]string{"id": req.ID})
}

// extractValidationErrors extracts validation error messages from validator errors.
func extractValidationErrors(err error) string {
	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		if len(validationErrors) > 0 {
			// Return first validation error for simplicity
			ve := validationErrors[0]
			return fmt.Sprintf("validation error: %s - %s", ve.Field(), ve.Tag())
		}
	}
	return "validation error: invalid request"
}
