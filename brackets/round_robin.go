package brackets

import (
	"fmt"

	"github.com/govu-ux/Tournament-Tracker/models"
)

type RoundRobinGenerator struct{}

func NewRoundRobinGenerator() Generator {
	return &RoundRobinGenerator{}
}

func (g *RoundRobinGenerator) Name() string {
	return "RoundRobin"
}

// Generate creates the league fixtures: every team plays every other team
// exactly once, n*(n-1)/2 pairings in total. Pair (i, j) with i < j is
// emitted in registration order, so regeneration is deterministic.
func (g *RoundRobinGenerator) Generate(teams []models.Team) ([]Pairing, error) {
	if len(teams) < 2 {
		return nil, fmt.Errorf("RoundRobinGenerator: not enough teams (found %d, min 2 required)", len(teams))
	}

	pairings := make([]Pairing, 0, len(teams)*(len(teams)-1)/2)
	for i := 0; i < len(teams); i++ {
		for j := i + 1; j < len(teams); j++ {
			pairings = append(pairings, Pairing{
				Team1ID: teams[i].ID,
				Team2ID: teams[j].ID,
				Stage:   models.StageGroup,
			})
		}
	}
	return pairings, nil
}
