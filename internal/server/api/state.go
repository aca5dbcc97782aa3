package api

import (
	"encoding/json"
	"net/http"

	"github.com/ayusman/airdeck/internal/presentation"
)

// StateSource is the live presenter.
type StateSource interface {
	Snapshot() *presentation.Snapshot
	Paused() bool
	SetPaused(paused bool)
}

// StateHandler serves the live presentation state.
type StateHandler struct {
	source StateSource
}

// NewStateHandler creates a StateHandler over source.
func NewStateHandler(source StateSource) *StateHandler {
	return &StateHandler{source: source}
}

type stateResponse struct {
	*presentation.Snapshot
	Paused bool `json:"paused"`
}

type pauseRequest struct {
	Paused *bool `json:"paused"`
}

type pauseResponse struct {
	Paused bool `json:"paused"`
}

// Get handles GET /api/state.
func (h *StateHandler) Get(w http.ResponseWriter, r *http.Request) {
	snap := h.source.Snapshot()
	if snap == nil {
		writeError(w, http.StatusServiceUnavailable, "presenter has not produced a frame yet")
		return
	}

	writeJSON(w, http.StatusOK, stateResponse{Snapshot: snap, Paused: h.source.Paused()})
}

// GetPause handles GET /api/pause.
func (h *StateHandler) GetPause(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, pauseResponse{Paused: h.source.Paused()})
}

// SetPause handles PUT /api/pause with {"paused": bool}.
func (h *StateHandler) SetPause(w http.ResponseWriter, r *http.Request) {
	var req pauseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if req.Paused == nil {
		writeError(w, http.StatusBadRequest, "paused is required")
		return
	}

	h.source.SetPaused(*req.Paused)
	writeJSON(w, http.StatusOK, pauseResponse{Paused: h.source.Paused()})
}
