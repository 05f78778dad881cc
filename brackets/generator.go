package brackets

import "github.com/govu-ux/Tournament-Tracker/models"

// Pairing is one generated fixture: two distinct team ids and the stage the
// fixture belongs to. Generators produce pairings only; ids, dates and
// persistence are the caller's concern.
type Pairing struct {
	Team1ID int
	Team2ID int
	Stage   models.MatchStage
}

// Generator produces the fixture list for one stage of the tournament from
// an ordered team list. The order is significant: round-robin emits pairs in
// registration order, single elimination treats the list as seeded.
type Generator interface {
	Generate(teams []models.Team) ([]Pairing, error)

	Name() string
}
