package handlers

import (
	"net/http"

	"github.com/govu-ux/Tournament-Tracker/services"
)

type TournamentHandler struct {
	service services.TournamentService
}

func NewTournamentHandler(service services.TournamentService) *TournamentHandler {
	return &TournamentHandler{service: service}
}

// Snapshot handles GET /tournament: the whole dashboard in one response.
func (h *TournamentHandler) Snapshot(w http.ResponseWriter, r *http.Request) {
	if err := writeJSON(w, http.StatusOK, h.service.Snapshot(), nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// Standings handles GET /tournament/standings.
func (h *TournamentHandler) Standings(w http.ResponseWriter, r *http.Request) {
	if err := writeJSON(w, http.StatusOK, jsonResponse{"standings": h.service.Standings()}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// Reset handles DELETE /tournament.
func (h *TournamentHandler) Reset(w http.ResponseWriter, r *http.Request) {
	if err := h.service.ResetTournament(r.Context()); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Health handles GET /healthz. The service loads its state synchronously at
// startup, so a responding server is a loaded server.
func (h *TournamentHandler) Health(w http.ResponseWriter, r *http.Request) {
	if err := writeJSON(w, http.StatusOK, jsonResponse{"status": "ok"}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
