package handlers

import (
	"net/http"

	"github.com/govu-ux/Tournament-Tracker/services"
)

type PlayoffHandler struct {
	service services.TournamentService
}

func NewPlayoffHandler(service services.TournamentService) *PlayoffHandler {
	return &PlayoffHandler{service: service}
}

// View handles GET /tournament/playoffs.
func (h *PlayoffHandler) View(w http.ResponseWriter, r *http.Request) {
	data := jsonResponse{
		"playoffTeams":     h.service.PlayoffTeams(),
		"semiFinalMatches": h.service.SemiFinalMatches(),
		"finalMatch":       h.service.FinalMatch(),
		"champion":         h.service.Champion(),
		"phase":            h.service.Phase(),
	}
	if err := writeJSON(w, http.StatusOK, data, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// Generate handles POST /tournament/playoffs/generate.
func (h *PlayoffHandler) Generate(w http.ResponseWriter, r *http.Request) {
	created, err := h.service.GeneratePlayoffs(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"semiFinalMatches": created}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// UpdateResult handles PUT /tournament/playoffs/{matchID}/result.
func (h *PlayoffHandler) UpdateResult(w http.ResponseWriter, r *http.Request) {
	matchID, err := matchIDParam(r)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input struct {
		WinnerID int `json:"winnerId"`
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.service.UpdatePlayoffResult(r.Context(), matchID, input.WinnerID); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	h.View(w, r)
}
