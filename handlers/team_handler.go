package handlers

import (
	"net/http"

	"github.com/govu-ux/Tournament-Tracker/services"
)

type TeamHandler struct {
	service services.TournamentService
}

func NewTeamHandler(service services.TournamentService) *TeamHandler {
	return &TeamHandler{service: service}
}

// List handles GET /tournament/teams.
func (h *TeamHandler) List(w http.ResponseWriter, r *http.Request) {
	if err := writeJSON(w, http.StatusOK, jsonResponse{"teams": h.service.Teams()}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// Create handles POST /tournament/teams.
func (h *TeamHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Name string `json:"name"`
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	team, err := h.service.AddTeam(r.Context(), input.Name)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"team": team}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
