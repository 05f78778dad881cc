package models

// Standing is one row of the group-stage table. It is derived from the team
// and match lists on every read and never persisted.
type Standing struct {
	Rank            int    `json:"rank"`
	TeamID          int    `json:"teamId"`
	TeamName        string `json:"teamName"`
	Played          int    `json:"played"`
	Wins            int    `json:"wins"`
	Losses          int    `json:"losses"`
	Draws           int    `json:"draws"`
	Points          int    `json:"points"`
	ScoreDifference int    `json:"scoreDifference"`
}
