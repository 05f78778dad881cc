package services

import "errors"

// Errors shared by the tournament service and the HTTP error mapping.
var (
	// Validation and business-rule errors. All leave state unchanged.
	ErrTeamNameRequired = errors.New("team name is required")
	ErrMatchSameTeam    = errors.New("a team cannot play against itself")
	ErrNegativeScore    = errors.New("scores must be non-negative")
	ErrInvalidWinner    = errors.New("winner must be one of the match participants")
	ErrNotEnoughTeams   = errors.New("at least two teams are required to generate league matches")
	ErrNotPlayoffMatch  = errors.New("match is not a playoff match")
	ErrNotGroupMatch    = errors.New("score updates apply to group-stage matches only")

	// Conflicts
	ErrTeamNameConflict = errors.New("a team with this name already exists")

	// Playoff progression
	ErrPlayoffsNotReady         = errors.New("not enough teams or group stage is not finished")
	ErrPlayoffsAlreadyGenerated = errors.New("playoffs have already been generated")

	// Not-found errors. The result-update operations deliberately do NOT
	// return these for unknown match ids (silent no-op); they exist for
	// operations that reference teams explicitly.
	ErrTeamNotFound = errors.New("team not found")
)
