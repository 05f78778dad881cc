package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/govu-ux/Tournament-Tracker/services"
)

type MatchHandler struct {
	service services.TournamentService
}

func NewMatchHandler(service services.TournamentService) *MatchHandler {
	return &MatchHandler{service: service}
}

// List handles GET /tournament/matches.
func (h *MatchHandler) List(w http.ResponseWriter, r *http.Request) {
	if err := writeJSON(w, http.StatusOK, jsonResponse{"matches": h.service.Matches()}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// Schedule handles POST /tournament/matches.
func (h *MatchHandler) Schedule(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Team1ID int    `json:"team1Id"`
		Team2ID int    `json:"team2Id"`
		Date    string `json:"date"`
		Time    string `json:"time"`
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	date, err := parseDate(input.Date)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	match, err := h.service.ScheduleMatch(r.Context(), input.Team1ID, input.Team2ID, date, input.Time)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"match": match}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// GenerateLeague handles POST /tournament/matches/generate.
func (h *MatchHandler) GenerateLeague(w http.ResponseWriter, r *http.Request) {
	created, err := h.service.GenerateLeagueMatches(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"matches": created}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// UpdateResult handles PUT /tournament/matches/{matchID}/result.
func (h *MatchHandler) UpdateResult(w http.ResponseWriter, r *http.Request) {
	matchID, err := matchIDParam(r)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input struct {
		Team1Score int `json:"team1Score"`
		Team2Score int `json:"team2Score"`
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.service.UpdateMatchResult(r.Context(), matchID, input.Team1Score, input.Team2Score); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"matches": h.service.Matches()}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// AutoResult handles POST /tournament/matches/{matchID}/auto-result.
func (h *MatchHandler) AutoResult(w http.ResponseWriter, r *http.Request) {
	matchID, err := matchIDParam(r)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.service.AutoUpdateMatchResult(r.Context(), matchID); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"matches": h.service.Matches()}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func matchIDParam(r *http.Request) (int, error) {
	matchID, err := strconv.Atoi(chi.URLParam(r, "matchID"))
	if err != nil {
		return 0, fmt.Errorf("invalid match id %q", chi.URLParam(r, "matchID"))
	}
	return matchID, nil
}

// parseDate accepts RFC 3339 timestamps and plain calendar dates. Explicitly
// scheduled matches must carry a date; only generated fixtures get
// placeholders.
func parseDate(raw string) (time.Time, error) {
	if raw == "" {
		return time.Time{}, fmt.Errorf("date is required")
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("invalid date %q: expected RFC 3339 or YYYY-MM-DD", raw)
}
