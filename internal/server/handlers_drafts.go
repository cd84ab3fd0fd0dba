// Package server provides the HTTP REST API for the resume vault.
package server

import (
	"encoding/json"
	"net/http"

	"github.com/jonathan/resume-vault/internal/drafts"
	"github.com/jonathan/resume-vault/internal/profile"
)

// handleGetDraft returns the stored draft for a key. Absent and stale drafts
// both read as not found so the editor falls back to the saved record.
func (s *Server) handleGetDraft(w http.ResponseWriter, r *http.Request) {
	draft, err := s.profiles.Draft(r.Context(), r.PathValue("key"))
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	if draft == nil {
		s.errorResponse(w, http.StatusNotFound, "draft not found")
		return
	}

	s.jsonResponse(w, http.StatusOK, draft)
}

// handlePutDraft stores a form snapshot. The body is the raw form state;
// snapshots without meaningful content are accepted but not persisted. With a
// configured debounce window, rapid writes to the same key coalesce into one
// persisted snapshot.
func (s *Server) handlePutDraft(w http.ResponseWriter, r *http.Request) {
	key := r.PathValue("key")

	var data map[string]any
	if err := json.NewDecoder(r.Body).Decode(&data); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if s.draftDebounce > 0 {
		if !drafts.ValidKey(key) {
			err := &profile.InvalidDraftKeyError{Key: key}
			s.errorResponse(w, HTTPStatus(err), err.Error())
			return
		}
		s.saverFor(key).Update(data)
		w.WriteHeader(http.StatusAccepted)
		return
	}

	if err := s.profiles.SaveDraft(r.Context(), key, data); err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// saverFor returns the debounced saver for a draft key, creating it on first
// use.
func (s *Server) saverFor(key string) *drafts.Saver {
	s.saverMu.Lock()
	defer s.saverMu.Unlock()

	saver, ok := s.savers[key]
	if !ok {
		saver = s.profiles.DraftSaver(key, s.draftDebounce)
		s.savers[key] = saver
	}
	return saver
}

// flushSavers persists any pending debounced drafts.
func (s *Server) flushSavers() {
	s.saverMu.Lock()
	defer s.saverMu.Unlock()

	for _, saver := range s.savers {
		saver.Flush()
	}
}

// handleDeleteDraft discards the draft for a key.
func (s *Server) handleDeleteDraft(w http.ResponseWriter, r *http.Request) {
	if err := s.profiles.ClearDraft(r.Context(), r.PathValue("key")); err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
