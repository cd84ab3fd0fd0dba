// Package server provides the HTTP REST API for the resume vault.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/jonathan/resume-vault/internal/drafts"
	"github.com/jonathan/resume-vault/internal/profile"
	"github.com/jonathan/resume-vault/internal/rendering"
	"github.com/jonathan/resume-vault/internal/server/middleware"
	"github.com/jonathan/resume-vault/internal/store"
	"github.com/jonathan/resume-vault/internal/tailoring"
)

// Config holds server configuration
type Config struct {
	Port               int
	PasswordHash       string // bcrypt hash of the login password; empty disables auth
	JWTSecret          string
	JWTExpirationHours int
	// DraftDebounce coalesces rapid draft writes server-side. Zero persists
	// every PUT synchronously.
	DraftDebounce time.Duration
}

// Server represents the HTTP server
type Server struct {
	httpServer   *http.Server
	store        store.Store
	profiles     *profile.Service
	tailor       tailoring.Tailor
	renderer     rendering.Renderer
	jwtService   *JWTService
	validator    *validator.Validate
	passwordHash string
	authEnabled  bool

	draftDebounce time.Duration
	saverMu       sync.Mutex
	savers        map[string]*drafts.Saver
}

// New creates a new server instance. tailor and renderer may be nil, in which
// case the corresponding endpoints report the feature as unconfigured.
func New(cfg Config, st store.Store, tailor tailoring.Tailor, renderer rendering.Renderer) *Server {
	s := &Server{
		store:         st,
		profiles:      profile.NewService(st),
		tailor:        tailor,
		renderer:      renderer,
		validator:     validator.New(),
		passwordHash:  cfg.PasswordHash,
		authEnabled:   cfg.PasswordHash != "" && cfg.JWTSecret != "",
		draftDebounce: cfg.DraftDebounce,
		savers:        make(map[string]*drafts.Saver),
	}

	if s.authEnabled {
		s.jwtService = NewJWTService(cfg.JWTSecret, cfg.JWTExpirationHours)
	} else {
		log.Println("warning: auth disabled (set API_PASSWORD_HASH and JWT_SECRET to enable)")
	}

	// Setup router
	mux := http.NewServeMux()
	mux.HandleFunc("POST /auth/login", s.handleLogin)
	mux.HandleFunc("GET /health", s.handleHealth)

	// Resume endpoints
	mux.Handle("GET /resumes", s.protect(s.handleListResumes))
	mux.Handle("POST /resumes", s.protect(s.handleSaveResume))
	mux.Handle("GET /resumes/{id}", s.protect(s.handleGetResume))
	mux.Handle("PUT /resumes/{id}", s.protect(s.handleUpdateResume))
	mux.Handle("DELETE /resumes/{id}", s.protect(s.handleDeleteResume))

	// Current profile endpoints
	mux.Handle("GET /profile/current", s.protect(s.handleGetCurrent))
	mux.Handle("PUT /profile/current", s.protect(s.handleSetCurrent))

	// Draft endpoints
	mux.Handle("GET /drafts/{key}", s.protect(s.handleGetDraft))
	mux.Handle("PUT /drafts/{key}", s.protect(s.handlePutDraft))
	mux.Handle("DELETE /drafts/{key}", s.protect(s.handleDeleteDraft))

	// Backup endpoints
	mux.Handle("POST /import", s.protect(s.handleImport))
	mux.Handle("GET /export", s.protect(s.handleExport))

	// Tooling endpoints
	mux.Handle("POST /tailor", s.protect(s.handleTailor))
	mux.Handle("POST /render", s.protect(s.handleRender))

	// Create HTTP server
	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.withLogging(s.withCORS(mux)),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second, // rendering can take a while
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// Handler returns the server's HTTP handler, for tests.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Start begins listening for requests
func (s *Server) Start() error {
	// Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("Server starting on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	<-stop
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	s.flushSavers()
	if s.tailor != nil {
		if err := s.tailor.Close(); err != nil {
			log.Printf("warning: failed to close tailor client: %v", err)
		}
	}
	s.store.Close()
	log.Println("Server stopped")
	return nil
}

// protect applies the auth middleware when auth is configured.
func (s *Server) protect(h http.HandlerFunc) http.Handler {
	if !s.authEnabled {
		return h
	}
	return middleware.AuthMiddleware(s.jwtService.AsTokenValidator())(h)
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withLogging adds request logging
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		log.Printf("[%s] %s %s", r.Method, r.URL.Path, r.RemoteAddr)
		next.ServeHTTP(w, r)
		log.Printf("[%s] %s completed in %v", r.Method, r.URL.Path, time.Since(start))
	})
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("Error encoding JSON response: %v", err)
	}
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}
