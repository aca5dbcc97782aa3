// Package server exposes the running presenter over HTTP.
package server

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/ayusman/airdeck/internal/presentation"
	"github.com/ayusman/airdeck/internal/server/api"
	"github.com/ayusman/airdeck/internal/store"
)

// Source is the live presenter the server reads from.
type Source interface {
	// Snapshot returns the state after the last completed frame, or nil
	// before the first one.
	Snapshot() *presentation.Snapshot
	// LatestFrame returns the last composed output frame as JPEG.
	LatestFrame() []byte
	Paused() bool
	SetPaused(paused bool)
}

// Config holds the server configuration.
type Config struct {
	Source Source
	Store  *store.Store
}

// Server represents the HTTP server for the presenter.
type Server struct {
	config Config
	router *mux.Router
	hub    *Hub
	start  time.Time
}

// New creates a new Server with the given configuration.
func New(config Config) *Server {
	s := &Server{
		config: config,
		router: mux.NewRouter(),
		start:  time.Now(),
	}
	s.setupRoutes()
	return s
}

// setupRoutes configures all HTTP routes for the server.
func (s *Server) setupRoutes() {
	r := s.router.PathPrefix("/api").Subrouter()
	r.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)

	if s.config.Source != nil {
		state := api.NewStateHandler(s.config.Source)
		r.HandleFunc("/state", state.Get).Methods(http.MethodGet)
		r.HandleFunc("/pause", state.GetPause).Methods(http.MethodGet)
		r.HandleFunc("/pause", state.SetPause).Methods(http.MethodPut)

		r.Handle("/stream", NewStreamHandler(s.config.Source)).Methods(http.MethodGet)

		s.hub = NewHub(s.config.Source)
		r.Handle("/ws", s.hub).Methods(http.MethodGet)
	}

	if s.config.Store != nil {
		sessions := api.NewSessionHandler(s.config.Store)
		r.HandleFunc("/sessions", sessions.List).Methods(http.MethodGet)
		r.HandleFunc("/sessions/{id}", sessions.Get).Methods(http.MethodGet)
		r.HandleFunc("/sessions/{id}/events", sessions.Events).Methods(http.MethodGet)
	}
}

// ServeHTTP implements the http.Handler interface.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// handleHealth handles GET requests to /api/health.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	response := map[string]interface{}{
		"status": "ok",
		"uptime": time.Since(s.start).String(),
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		return
	}
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 5 * time.Second,
	}

	if s.hub != nil {
		go s.hub.Run(ctx)
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
