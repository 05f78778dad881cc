package services_test

import (
	"testing"

	"github.com/govu-ux/Tournament-Tracker/models"
	"github.com/govu-ux/Tournament-Tracker/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

func decidedMatch(id, team1ID, team2ID, score1, score2 int) models.Match {
	m := models.Match{
		ID:         id,
		Team1ID:    team1ID,
		Team2ID:    team2ID,
		Team1Score: intPtr(score1),
		Team2Score: intPtr(score2),
		Stage:      models.StageGroup,
	}
	switch {
	case score1 > score2:
		m.WinnerID = intPtr(team1ID)
	case score2 > score1:
		m.WinnerID = intPtr(team2ID)
	default:
		m.IsDraw = true
	}
	return m
}

func TestComputeStandingsEmptyTournament(t *testing.T) {
	standings := services.ComputeStandings(nil, nil)
	assert.Empty(t, standings)
}

func TestComputeStandingsNoMatchesKeepsRegistrationOrder(t *testing.T) {
	teams := []models.Team{
		{ID: 1, Name: "Alpha"},
		{ID: 2, Name: "Bravo"},
		{ID: 3, Name: "Charlie"},
	}

	standings := services.ComputeStandings(teams, nil)
	require.Len(t, standings, 3)
	for i, row := range standings {
		assert.Equal(t, i+1, row.Rank)
		assert.Equal(t, teams[i].ID, row.TeamID)
		assert.Equal(t, teams[i].Name, row.TeamName)
		assert.Zero(t, row.Played)
		assert.Zero(t, row.Points)
	}
}

func TestComputeStandingsPointsAndDiff(t *testing.T) {
	teams := []models.Team{
		{ID: 1, Name: "Alpha"},
		{ID: 2, Name: "Bravo"},
		{ID: 3, Name: "Charlie"},
	}
	matches := []models.Match{
		decidedMatch(10, 1, 2, 3, 1), // Alpha wins
		decidedMatch(11, 2, 3, 2, 2), // draw
		decidedMatch(12, 1, 3, 0, 1), // Charlie wins
	}

	standings := services.ComputeStandings(teams, matches)
	require.Len(t, standings, 3)

	byID := make(map[int]models.Standing)
	for _, row := range standings {
		byID[row.TeamID] = row
	}

	alpha := byID[1]
	assert.Equal(t, 2, alpha.Played)
	assert.Equal(t, 1, alpha.Wins)
	assert.Equal(t, 1, alpha.Losses)
	assert.Equal(t, 0, alpha.Draws)
	assert.Equal(t, 3, alpha.Points)
	assert.Equal(t, 1, alpha.ScoreDifference)

	bravo := byID[2]
	assert.Equal(t, 2, bravo.Played)
	assert.Equal(t, 1, bravo.Draws)
	assert.Equal(t, 1, bravo.Points)
	assert.Equal(t, -2, bravo.ScoreDifference)

	charlie := byID[3]
	assert.Equal(t, 1, charlie.Wins)
	assert.Equal(t, 1, charlie.Draws)
	assert.Equal(t, 4, charlie.Points)
	assert.Equal(t, 1, charlie.ScoreDifference)

	// Charlie 4pts, Alpha 3pts, Bravo 1pt.
	assert.Equal(t, []int{3, 1, 2}, []int{standings[0].TeamID, standings[1].TeamID, standings[2].TeamID})
	assert.Equal(t, []int{1, 2, 3}, []int{standings[0].Rank, standings[1].Rank, standings[2].Rank})
}

func TestComputeStandingsScoreDifferenceBreaksPointTies(t *testing.T) {
	teams := []models.Team{
		{ID: 1, Name: "Alpha"},
		{ID: 2, Name: "Bravo"},
		{ID: 3, Name: "Charlie"},
		{ID: 4, Name: "Delta"},
	}
	// Alpha and Bravo both win once: Bravo by a wider margin.
	matches := []models.Match{
		decidedMatch(10, 1, 3, 1, 0),
		decidedMatch(11, 2, 4, 4, 0),
	}

	standings := services.ComputeStandings(teams, matches)
	assert.Equal(t, 2, standings[0].TeamID)
	assert.Equal(t, 1, standings[1].TeamID)
}

func TestComputeStandingsWinsBreakTiesAfterDifference(t *testing.T) {
	teams := []models.Team{
		{ID: 1, Name: "Alpha"},
		{ID: 2, Name: "Bravo"},
		{ID: 3, Name: "Charlie"},
		{ID: 4, Name: "Delta"},
		{ID: 5, Name: "Echo"},
	}
	// Alpha: three draws, 3 points, 0 diff, 0 wins.
	// Bravo: one win one loss by the same margin, 3 points, 0 diff, 1 win.
	matches := []models.Match{
		decidedMatch(10, 1, 3, 1, 1),
		decidedMatch(11, 1, 4, 0, 0),
		decidedMatch(12, 1, 5, 2, 2),
		decidedMatch(13, 2, 3, 2, 0),
		decidedMatch(14, 2, 4, 0, 2),
	}

	standings := services.ComputeStandings(teams, matches)
	// Delta tops the table with a win and a draw; Alpha and Bravo tie on
	// 3 points and 0 difference, Bravo's win breaking the tie.
	assert.Equal(t, 4, standings[0].TeamID)
	assert.Equal(t, 2, standings[1].TeamID, "more wins ranks first when points and diff tie")
	assert.Equal(t, 1, standings[2].TeamID)
}

func TestComputeStandingsIgnoresUndecidedAndKnockoutMatches(t *testing.T) {
	teams := []models.Team{
		{ID: 1, Name: "Alpha"},
		{ID: 2, Name: "Bravo"},
	}
	semi := decidedMatch(11, 1, 2, 3, 0)
	semi.Stage = models.StageSemiFinal
	matches := []models.Match{
		{ID: 10, Team1ID: 1, Team2ID: 2, Stage: models.StageGroup}, // pending
		semi,
	}

	standings := services.ComputeStandings(teams, matches)
	for _, row := range standings {
		assert.Zero(t, row.Played)
		assert.Zero(t, row.Points)
		assert.Zero(t, row.ScoreDifference)
	}
}

func TestComputeStandingsDeterministic(t *testing.T) {
	teams := []models.Team{
		{ID: 1, Name: "Alpha"},
		{ID: 2, Name: "Bravo"},
		{ID: 3, Name: "Charlie"},
	}
	matches := []models.Match{
		decidedMatch(10, 1, 2, 1, 1),
		decidedMatch(11, 1, 3, 1, 1),
		decidedMatch(12, 2, 3, 1, 1),
	}

	first := services.ComputeStandings(teams, matches)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, services.ComputeStandings(teams, matches))
	}
}
