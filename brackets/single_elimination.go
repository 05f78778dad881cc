package brackets

import (
	"fmt"

	"github.com/govu-ux/Tournament-Tracker/models"
)

// SingleEliminationGenerator seeds the knockout stage from a ranked team
// list. The bracket is fixed at four teams: two semi-finals with standard
// seeding (1v4, 2v3), the final being derived later from their winners.
type SingleEliminationGenerator struct{}

func NewSingleEliminationGenerator() Generator {
	return &SingleEliminationGenerator{}
}

func (g *SingleEliminationGenerator) Name() string {
	return "SingleElimination"
}

// Generate expects teams ordered by standings rank, best first. Only the top
// four seeds are used.
func (g *SingleEliminationGenerator) Generate(teams []models.Team) ([]Pairing, error) {
	if len(teams) < 4 {
		return nil, fmt.Errorf("SingleEliminationGenerator: not enough teams (found %d, min 4 required)", len(teams))
	}

	return []Pairing{
		{Team1ID: teams[0].ID, Team2ID: teams[3].ID, Stage: models.StageSemiFinal},
		{Team1ID: teams[1].ID, Team2ID: teams[2].ID, Stage: models.StageSemiFinal},
	}, nil
}

// FinalPairing derives the final fixture from the semi-final matches. It
// returns false until both semi-finals have a winner. Winner order follows
// the semi-final match order.
func FinalPairing(semiFinals []models.Match) (Pairing, bool) {
	winners := make([]int, 0, 2)
	for _, m := range semiFinals {
		if m.Stage != models.StageSemiFinal || m.WinnerID == nil {
			continue
		}
		winners = append(winners, *m.WinnerID)
	}
	if len(winners) != 2 {
		return Pairing{}, false
	}
	return Pairing{Team1ID: winners[0], Team2ID: winners[1], Stage: models.StageFinal}, true
}
