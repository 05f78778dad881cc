package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/govu-ux/Tournament-Tracker/handlers"
	"github.com/govu-ux/Tournament-Tracker/models"
	"github.com/govu-ux/Tournament-Tracker/notify"
	"github.com/govu-ux/Tournament-Tracker/repositories"
	"github.com/govu-ux/Tournament-Tracker/routes"
	"github.com/govu-ux/Tournament-Tracker/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) (*httptest.Server, services.TournamentService) {
	t.Helper()

	repo := repositories.NewMock()
	notifier := notify.NewMock()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	svc, err := services.NewTournamentService(context.Background(), repo, notifier, logger)
	require.NoError(t, err)

	router := chi.NewRouter()
	routes.SetupRoutes(
		router,
		[]string{"*"},
		handlers.NewTournamentHandler(svc),
		handlers.NewTeamHandler(svc),
		handlers.NewMatchHandler(svc),
		handlers.NewPlayoffHandler(svc),
		handlers.NewWebSocketHandler(notify.NewHub()),
	)

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)
	return server, svc
}

func doJSON(t *testing.T, server *httptest.Server, method, path string, body any) (*http.Response, map[string]json.RawMessage) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, server.URL+path, reader)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := server.Client().Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })

	payload := map[string]json.RawMessage{}
	if resp.StatusCode != http.StatusNoContent {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
	}
	return resp, payload
}

func TestHealthEndpoint(t *testing.T) {
	server, _ := newTestServer(t)

	resp, payload := doJSON(t, server, http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `"ok"`, string(payload["status"]))
}

func TestCreateAndListTeams(t *testing.T) {
	server, _ := newTestServer(t)

	resp, payload := doJSON(t, server, http.MethodPost, "/tournament/teams", map[string]string{"name": "Arsenal"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var team models.Team
	require.NoError(t, json.Unmarshal(payload["team"], &team))
	assert.Equal(t, 1, team.ID)
	assert.Equal(t, "Arsenal", team.Name)

	resp, payload = doJSON(t, server, http.MethodGet, "/tournament/teams", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var teams []models.Team
	require.NoError(t, json.Unmarshal(payload["teams"], &teams))
	require.Len(t, teams, 1)
	assert.Equal(t, "Arsenal", teams[0].Name)
}

func TestCreateTeamValidation(t *testing.T) {
	server, _ := newTestServer(t)

	resp, _ := doJSON(t, server, http.MethodPost, "/tournament/teams", map[string]string{"name": "  "})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = doJSON(t, server, http.MethodPost, "/tournament/teams", map[string]string{"name": "Arsenal"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp, _ = doJSON(t, server, http.MethodPost, "/tournament/teams", map[string]string{"name": "arsenal"})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	// Unknown fields are rejected outright.
	req, err := http.NewRequest(http.MethodPost, server.URL+"/tournament/teams", bytes.NewReader([]byte(`{"nmae":"Typo"}`)))
	require.NoError(t, err)
	badResp, err := server.Client().Do(req)
	require.NoError(t, err)
	defer badResp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, badResp.StatusCode)
}

func TestScheduleMatchEndpoint(t *testing.T) {
	server, _ := newTestServer(t)
	doJSON(t, server, http.MethodPost, "/tournament/teams", map[string]string{"name": "Arsenal"})
	doJSON(t, server, http.MethodPost, "/tournament/teams", map[string]string{"name": "Chelsea"})

	resp, payload := doJSON(t, server, http.MethodPost, "/tournament/matches", map[string]any{
		"team1Id": 1, "team2Id": 2, "date": "2026-09-12", "time": "19:30",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var match models.Match
	require.NoError(t, json.Unmarshal(payload["match"], &match))
	assert.Equal(t, models.StageGroup, match.Stage)
	assert.Equal(t, "19:30", match.Time)

	// Self-pairing is a validation failure.
	resp, _ = doJSON(t, server, http.MethodPost, "/tournament/matches", map[string]any{
		"team1Id": 1, "team2Id": 1, "date": "2026-09-12",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// Unknown teams are a 404.
	resp, _ = doJSON(t, server, http.MethodPost, "/tournament/matches", map[string]any{
		"team1Id": 1, "team2Id": 99, "date": "2026-09-12",
	})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	// Malformed date.
	resp, _ = doJSON(t, server, http.MethodPost, "/tournament/matches", map[string]any{
		"team1Id": 1, "team2Id": 2, "date": "next tuesday",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// An explicitly scheduled match must carry a date.
	resp, _ = doJSON(t, server, http.MethodPost, "/tournament/matches", map[string]any{
		"team1Id": 1, "team2Id": 2,
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestMatchResultEndpoints(t *testing.T) {
	server, svc := newTestServer(t)
	for _, name := range []string{"Arsenal", "Chelsea", "Liverpool"} {
		doJSON(t, server, http.MethodPost, "/tournament/teams", map[string]string{"name": name})
	}

	resp, payload := doJSON(t, server, http.MethodPost, "/tournament/matches/generate", nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var created []models.Match
	require.NoError(t, json.Unmarshal(payload["matches"], &created))
	require.Len(t, created, 3)

	resp, _ = doJSON(t, server, http.MethodPut,
		fmt.Sprintf("/tournament/matches/%d/result", created[0].ID),
		map[string]int{"team1Score": 2, "team2Score": 1})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	updated := svc.Matches()[0]
	require.NotNil(t, updated.WinnerID)
	assert.Equal(t, created[0].Team1ID, *updated.WinnerID)

	resp, _ = doJSON(t, server, http.MethodPut,
		fmt.Sprintf("/tournament/matches/%d/result", created[1].ID),
		map[string]int{"team1Score": -1, "team2Score": 0})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = doJSON(t, server, http.MethodPut, "/tournament/matches/abc/result",
		map[string]int{"team1Score": 1, "team2Score": 0})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = doJSON(t, server, http.MethodPost,
		fmt.Sprintf("/tournament/matches/%d/auto-result", created[2].ID), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, svc.Matches()[2].Decided())
}

func TestStandingsEndpoint(t *testing.T) {
	server, svc := newTestServer(t)
	doJSON(t, server, http.MethodPost, "/tournament/teams", map[string]string{"name": "Arsenal"})
	doJSON(t, server, http.MethodPost, "/tournament/teams", map[string]string{"name": "Chelsea"})
	doJSON(t, server, http.MethodPost, "/tournament/matches/generate", nil)
	match := svc.Matches()[0]
	doJSON(t, server, http.MethodPut,
		fmt.Sprintf("/tournament/matches/%d/result", match.ID),
		map[string]int{"team1Score": 3, "team2Score": 0})

	resp, payload := doJSON(t, server, http.MethodGet, "/tournament/standings", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var standings []models.Standing
	require.NoError(t, json.Unmarshal(payload["standings"], &standings))
	require.Len(t, standings, 2)
	assert.Equal(t, "Arsenal", standings[0].TeamName)
	assert.Equal(t, 3, standings[0].Points)
	assert.Equal(t, 1, standings[0].Rank)
}

func TestPlayoffEndpoints(t *testing.T) {
	server, svc := newTestServer(t)
	ctx := context.Background()
	for _, name := range []string{"Arsenal", "Chelsea", "Liverpool", "Everton"} {
		doJSON(t, server, http.MethodPost, "/tournament/teams", map[string]string{"name": name})
	}

	// Group stage unfinished: generation is premature.
	doJSON(t, server, http.MethodPost, "/tournament/matches/generate", nil)
	resp, _ := doJSON(t, server, http.MethodPost, "/tournament/playoffs/generate", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	for _, m := range svc.Matches() {
		require.NoError(t, svc.AutoUpdateMatchResult(ctx, m.ID))
	}

	resp, payload := doJSON(t, server, http.MethodPost, "/tournament/playoffs/generate", nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var semis []models.Match
	require.NoError(t, json.Unmarshal(payload["semiFinalMatches"], &semis))
	require.Len(t, semis, 2)

	// Second generation conflicts.
	resp, _ = doJSON(t, server, http.MethodPost, "/tournament/playoffs/generate", nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	// The score-based endpoint does not accept knockout match ids; equal
	// scores would record a draw there.
	resp, _ = doJSON(t, server, http.MethodPut,
		fmt.Sprintf("/tournament/matches/%d/result", semis[0].ID),
		map[string]int{"team1Score": 2, "team2Score": 2})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	for _, m := range svc.SemiFinalMatches() {
		assert.False(t, m.IsDraw)
	}

	resp, payload = doJSON(t, server, http.MethodPut,
		fmt.Sprintf("/tournament/playoffs/%d/result", semis[0].ID),
		map[string]int{"winnerId": semis[0].Team1ID})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `"semis_pending"`, string(payload["phase"]))

	resp, payload = doJSON(t, server, http.MethodPut,
		fmt.Sprintf("/tournament/playoffs/%d/result", semis[1].ID),
		map[string]int{"winnerId": semis[1].Team2ID})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `"final_pending"`, string(payload["phase"]))

	var final models.Match
	require.NoError(t, json.Unmarshal(payload["finalMatch"], &final))
	assert.Equal(t, models.StageFinal, final.Stage)

	// A winner outside the fixture is rejected.
	resp, _ = doJSON(t, server, http.MethodPut,
		fmt.Sprintf("/tournament/playoffs/%d/result", final.ID),
		map[string]int{"winnerId": 999})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, payload = doJSON(t, server, http.MethodPut,
		fmt.Sprintf("/tournament/playoffs/%d/result", final.ID),
		map[string]int{"winnerId": final.Team1ID})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `"final_complete"`, string(payload["phase"]))

	var champion models.Team
	require.NoError(t, json.Unmarshal(payload["champion"], &champion))
	assert.Equal(t, final.Team1ID, champion.ID)
}

func TestSnapshotAndResetEndpoints(t *testing.T) {
	server, _ := newTestServer(t)
	doJSON(t, server, http.MethodPost, "/tournament/teams", map[string]string{"name": "Arsenal"})
	doJSON(t, server, http.MethodPost, "/tournament/teams", map[string]string{"name": "Chelsea"})
	doJSON(t, server, http.MethodPost, "/tournament/matches/generate", nil)

	resp, payload := doJSON(t, server, http.MethodGet, "/tournament", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var teams []models.Team
	require.NoError(t, json.Unmarshal(payload["teams"], &teams))
	assert.Len(t, teams, 2)
	var matches []models.Match
	require.NoError(t, json.Unmarshal(payload["matches"], &matches))
	assert.Len(t, matches, 1)
	assert.JSONEq(t, `"not_ready"`, string(payload["phase"]))

	resp, _ = doJSON(t, server, http.MethodDelete, "/tournament", nil)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, payload = doJSON(t, server, http.MethodGet, "/tournament", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, json.Unmarshal(payload["teams"], &teams))
	assert.Empty(t, teams)
	assert.JSONEq(t, `[]`, string(payload["standings"]), "views serialize as arrays, never null")
}
