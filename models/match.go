package models

import "time"

type MatchStage string

const (
	StageGroup     MatchStage = "group"
	StageSemiFinal MatchStage = "semi-final"
	StageFinal     MatchStage = "final"
)

// Match is a single fixture. Stage is fixed at creation. Scores are either
// both set or both unset; when set, WinnerID and IsDraw must agree with them.
// A match with neither a winner nor a draw is pending.
type Match struct {
	ID         int        `json:"id"`
	Team1ID    int        `json:"team1Id"`
	Team2ID    int        `json:"team2Id"`
	Team1Score *int       `json:"team1Score"`
	Team2Score *int       `json:"team2Score"`
	Date       time.Time  `json:"date"`
	Time       string     `json:"time"`
	WinnerID   *int       `json:"winnerId"`
	IsDraw     bool       `json:"isDraw"`
	Stage      MatchStage `json:"stage"`
}

// Decided reports whether the match has a recorded outcome.
func (m *Match) Decided() bool {
	return m.WinnerID != nil || m.IsDraw
}

// HasTeam reports whether the given team plays in this match.
func (m *Match) HasTeam(teamID int) bool {
	return m.Team1ID == teamID || m.Team2ID == teamID
}
