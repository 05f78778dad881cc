package services

import (
	"sort"

	"github.com/govu-ux/Tournament-Tracker/models"
)

// ComputeStandings derives the group-stage table from the current team and
// match lists. Only decided group-stage matches count: a win is worth three
// points, a draw one point for each side. Score difference accumulates only
// for matches that carry scores.
//
// Sort order: points desc, score difference desc, wins desc. Teams still
// level keep their registration order (the sort is stable), so teams with no
// matches played appear last in the order they were added. Ranks are dense
// and 1-based; tied teams get distinct sequential ranks.
func ComputeStandings(teams []models.Team, matches []models.Match) []models.Standing {
	rows := make([]models.Standing, len(teams))
	index := make(map[int]int, len(teams))
	for i, t := range teams {
		rows[i] = models.Standing{TeamID: t.ID, TeamName: t.Name}
		index[t.ID] = i
	}

	for i := range matches {
		m := &matches[i]
		if m.Stage != models.StageGroup || !m.Decided() {
			continue
		}
		i1, ok1 := index[m.Team1ID]
		i2, ok2 := index[m.Team2ID]
		if !ok1 || !ok2 {
			continue
		}

		rows[i1].Played++
		rows[i2].Played++

		switch {
		case m.IsDraw:
			rows[i1].Draws++
			rows[i1].Points++
			rows[i2].Draws++
			rows[i2].Points++
		case *m.WinnerID == m.Team1ID:
			rows[i1].Wins++
			rows[i1].Points += 3
			rows[i2].Losses++
		default:
			rows[i2].Wins++
			rows[i2].Points += 3
			rows[i1].Losses++
		}

		if m.Team1Score != nil && m.Team2Score != nil {
			diff := *m.Team1Score - *m.Team2Score
			rows[i1].ScoreDifference += diff
			rows[i2].ScoreDifference -= diff
		}
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Points != rows[j].Points {
			return rows[i].Points > rows[j].Points
		}
		if rows[i].ScoreDifference != rows[j].ScoreDifference {
			return rows[i].ScoreDifference > rows[j].ScoreDifference
		}
		return rows[i].Wins > rows[j].Wins
	})

	for i := range rows {
		rows[i].Rank = i + 1
	}
	return rows
}
