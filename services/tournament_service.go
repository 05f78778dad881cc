package services

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/govu-ux/Tournament-Tracker/brackets"
	"github.com/govu-ux/Tournament-Tracker/models"
	"github.com/govu-ux/Tournament-Tracker/notify"
	"github.com/govu-ux/Tournament-Tracker/repositories"
)

// placeholderTime marks generated fixtures that have no scheduled kick-off.
const placeholderTime = "TBD"

// maxAutoScore bounds the random scores produced by AutoUpdateMatchResult.
const maxAutoScore = 5

// PlayoffPhase is the derived progression state of the knockout stage. It is
// recomputed from the match lists on every read, never stored.
type PlayoffPhase string

const (
	PhaseNotReady      PlayoffPhase = "not_ready"
	PhaseReady         PlayoffPhase = "ready"
	PhaseSemisPending  PlayoffPhase = "semis_pending"
	PhaseSemisComplete PlayoffPhase = "semis_complete"
	PhaseFinalPending  PlayoffPhase = "final_pending"
	PhaseFinalComplete PlayoffPhase = "final_complete"
)

// Snapshot is the full dashboard view: raw state plus every derived view,
// computed from the same state under one lock acquisition.
type Snapshot struct {
	Teams            []models.Team     `json:"teams"`
	Matches          []models.Match    `json:"matches"`
	Standings        []models.Standing `json:"standings"`
	PlayoffTeams     []models.Team     `json:"playoffTeams"`
	SemiFinalMatches []models.Match    `json:"semiFinalMatches"`
	FinalMatch       *models.Match     `json:"finalMatch,omitempty"`
	Champion         *models.Team      `json:"champion,omitempty"`
	Phase            PlayoffPhase      `json:"phase"`
}

// TournamentService is the sole owner of the team and match lists. All
// mutations are serialized behind its mutex, persisted after they succeed
// and reported through the notifier. Derived views are recomputed from the
// current state on every call.
type TournamentService interface {
	AddTeam(ctx context.Context, name string) (*models.Team, error)
	ScheduleMatch(ctx context.Context, team1ID, team2ID int, date time.Time, kickoff string) (*models.Match, error)
	GenerateLeagueMatches(ctx context.Context) ([]models.Match, error)
	UpdateMatchResult(ctx context.Context, matchID, team1Score, team2Score int) error
	AutoUpdateMatchResult(ctx context.Context, matchID int) error
	GeneratePlayoffs(ctx context.Context) ([]models.Match, error)
	UpdatePlayoffResult(ctx context.Context, matchID, winnerID int) error
	ResetTournament(ctx context.Context) error

	Teams() []models.Team
	Matches() []models.Match
	Standings() []models.Standing
	PlayoffTeams() []models.Team
	SemiFinalMatches() []models.Match
	FinalMatch() *models.Match
	Champion() *models.Team
	Phase() PlayoffPhase
	Snapshot() Snapshot
}

type tournamentService struct {
	mu      sync.RWMutex
	teams   []models.Team
	matches []models.Match
	nextID  int

	repo     repositories.TournamentRepository
	notifier notify.Notifier
	logger   *slog.Logger
	rng      *rand.Rand

	league   brackets.Generator
	knockout brackets.Generator
}

// NewTournamentService restores the persisted state and returns a ready
// service. A missing or damaged store yields an empty tournament.
func NewTournamentService(
	ctx context.Context,
	repo repositories.TournamentRepository,
	notifier notify.Notifier,
	logger *slog.Logger,
) (TournamentService, error) {
	teams, matches, err := repo.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load tournament state: %w", err)
	}

	s := &tournamentService{
		teams:    teams,
		matches:  matches,
		repo:     repo,
		notifier: notifier,
		logger:   logger,
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
		league:   brackets.NewRoundRobinGenerator(),
		knockout: brackets.NewSingleEliminationGenerator(),
	}
	s.nextID = s.maxIDLocked() + 1
	return s, nil
}

func (s *tournamentService) maxIDLocked() int {
	max := 0
	for _, t := range s.teams {
		if t.ID > max {
			max = t.ID
		}
	}
	for _, m := range s.matches {
		if m.ID > max {
			max = m.ID
		}
	}
	return max
}

func (s *tournamentService) allocateIDLocked() int {
	id := s.nextID
	s.nextID++
	return id
}

// persistLocked writes the current state back. Persistence is best-effort:
// a failure is logged and reported but the in-memory mutation stands.
func (s *tournamentService) persistLocked(ctx context.Context) {
	if err := s.repo.Save(ctx, s.teams, s.matches); err != nil {
		s.logger.Error("failed to persist tournament state", slog.Any("error", err))
		s.notifier.Notify(notify.LevelError, "Storage Error", "Latest changes could not be saved.")
	}
}

func (s *tournamentService) AddTeam(ctx context.Context, name string) (*models.Team, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		s.notifier.Notify(notify.LevelError, "Error", "Team name is required.")
		return nil, ErrTeamNameRequired
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, t := range s.teams {
		if strings.EqualFold(t.Name, name) {
			s.notifier.Notify(notify.LevelError, "Error", "A team with this name already exists.")
			return nil, ErrTeamNameConflict
		}
	}

	team := models.Team{ID: s.allocateIDLocked(), Name: name}
	s.teams = append(s.teams, team)
	s.persistLocked(ctx)

	s.notifier.Notify(notify.LevelSuccess, "Success", fmt.Sprintf("Team %q has been added.", name))
	s.notifier.Event(notify.EventTeamsUpdated, copyTeams(s.teams))
	return &team, nil
}

func (s *tournamentService) ScheduleMatch(ctx context.Context, team1ID, team2ID int, date time.Time, kickoff string) (*models.Match, error) {
	if team1ID == team2ID {
		s.notifier.Notify(notify.LevelError, "Error", "A team cannot play against itself.")
		return nil, ErrMatchSameTeam
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.findTeamLocked(team1ID) == nil || s.findTeamLocked(team2ID) == nil {
		s.notifier.Notify(notify.LevelError, "Error", "Both teams must exist.")
		return nil, ErrTeamNotFound
	}

	match := models.Match{
		ID:      s.allocateIDLocked(),
		Team1ID: team1ID,
		Team2ID: team2ID,
		Date:    date,
		Time:    kickoff,
		Stage:   models.StageGroup,
	}
	s.matches = append(s.matches, match)
	s.persistLocked(ctx)

	s.notifier.Notify(notify.LevelSuccess, "Success", "Match scheduled successfully.")
	s.notifier.Event(notify.EventMatchesUpdated, copyMatches(s.matches))
	return &match, nil
}

// GenerateLeagueMatches replaces all group-stage matches with a fresh
// round-robin fixture list. Knockout matches, if any exist, are untouched.
func (s *tournamentService) GenerateLeagueMatches(ctx context.Context) ([]models.Match, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.teams) < 2 {
		s.notifier.Notify(notify.LevelError, "Error", "At least two teams are required to generate matches.")
		return nil, ErrNotEnoughTeams
	}

	pairings, err := s.league.Generate(s.teams)
	if err != nil {
		return nil, fmt.Errorf("failed to generate league fixtures: %w", err)
	}

	kept := make([]models.Match, 0, len(s.matches))
	for _, m := range s.matches {
		if m.Stage != models.StageGroup {
			kept = append(kept, m)
		}
	}

	created := make([]models.Match, 0, len(pairings))
	for _, p := range pairings {
		created = append(created, models.Match{
			ID:      s.allocateIDLocked(),
			Team1ID: p.Team1ID,
			Team2ID: p.Team2ID,
			Date:    time.Now(),
			Time:    placeholderTime,
			Stage:   p.Stage,
		})
	}
	s.matches = append(kept, created...)
	s.persistLocked(ctx)

	s.notifier.Notify(notify.LevelSuccess, "Success", fmt.Sprintf("%d league matches have been generated.", len(created)))
	s.notifier.Event(notify.EventMatchesUpdated, copyMatches(s.matches))
	return created, nil
}

// UpdateMatchResult records both scores and derives the outcome: the higher
// score wins, equal scores are a draw. Group-stage matches only; knockout
// results go through UpdatePlayoffResult, which never records a draw. An
// unknown match id is a silent no-op. Re-invocation is not rejected; the
// latest call wins.
func (s *tournamentService) UpdateMatchResult(ctx context.Context, matchID, team1Score, team2Score int) error {
	if team1Score < 0 || team2Score < 0 {
		s.notifier.Notify(notify.LevelError, "Error", "Scores must be non-negative.")
		return ErrNegativeScore
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	match := s.findMatchLocked(matchID)
	if match == nil {
		s.logger.Warn("result update for unknown match ignored", slog.Int("match_id", matchID))
		return nil
	}
	if match.Stage != models.StageGroup {
		s.notifier.Notify(notify.LevelError, "Error", "Score updates apply to group-stage matches only.")
		return ErrNotGroupMatch
	}

	s.applyScoresLocked(match, team1Score, team2Score)
	s.ensureFinalMatchLocked()
	s.persistLocked(ctx)

	s.notifier.Notify(notify.LevelSuccess, "Success", "Match result updated.")
	s.notifier.Event(notify.EventMatchesUpdated, copyMatches(s.matches))
	return nil
}

// AutoUpdateMatchResult resolves a pending match with random scores. For
// knockout matches the draw outcome is re-rolled so a winner always exists.
// Decided matches and unknown ids are silent no-ops.
func (s *tournamentService) AutoUpdateMatchResult(ctx context.Context, matchID int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	match := s.findMatchLocked(matchID)
	if match == nil {
		s.logger.Warn("auto result for unknown match ignored", slog.Int("match_id", matchID))
		return nil
	}
	if match.Decided() {
		return nil
	}

	score1 := s.rng.Intn(maxAutoScore + 1)
	score2 := s.rng.Intn(maxAutoScore + 1)
	if match.Stage != models.StageGroup {
		for score1 == score2 {
			score2 = s.rng.Intn(maxAutoScore + 1)
		}
	}

	s.applyScoresLocked(match, score1, score2)
	s.ensureFinalMatchLocked()
	s.persistLocked(ctx)

	s.notifier.Notify(notify.LevelSuccess, "Success",
		fmt.Sprintf("Match result generated automatically (%d-%d).", score1, score2))
	s.notifier.Event(notify.EventMatchesUpdated, copyMatches(s.matches))
	return nil
}

// applyScoresLocked mutates the match in place, keeping winner and scores
// consistent by construction.
func (s *tournamentService) applyScoresLocked(match *models.Match, team1Score, team2Score int) {
	score1, score2 := team1Score, team2Score
	match.Team1Score = &score1
	match.Team2Score = &score2

	switch {
	case team1Score > team2Score:
		winner := match.Team1ID
		match.WinnerID = &winner
		match.IsDraw = false
	case team2Score > team1Score:
		winner := match.Team2ID
		match.WinnerID = &winner
		match.IsDraw = false
	default:
		match.WinnerID = nil
		match.IsDraw = true
	}
}

// GeneratePlayoffs creates the two semi-final matches, seeded 1v4 and 2v3
// from the current standings. It is a reported no-op when semi-finals
// already exist and an error when the group stage is not complete.
func (s *tournamentService) GeneratePlayoffs(ctx context.Context) ([]models.Match, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	seeds := s.playoffTeamsLocked()
	if len(seeds) < 4 {
		s.notifier.Notify(notify.LevelError, "Error", "Not enough teams or group stage is not finished.")
		return nil, ErrPlayoffsNotReady
	}
	if len(s.stageMatchesLocked(models.StageSemiFinal)) > 0 {
		s.notifier.Notify(notify.LevelInfo, "Info", "Playoffs have already been generated.")
		return nil, ErrPlayoffsAlreadyGenerated
	}

	pairings, err := s.knockout.Generate(seeds)
	if err != nil {
		return nil, fmt.Errorf("failed to generate playoff fixtures: %w", err)
	}

	created := make([]models.Match, 0, len(pairings))
	for _, p := range pairings {
		created = append(created, models.Match{
			ID:      s.allocateIDLocked(),
			Team1ID: p.Team1ID,
			Team2ID: p.Team2ID,
			Date:    time.Now(),
			Time:    placeholderTime,
			Stage:   p.Stage,
		})
	}
	s.matches = append(s.matches, created...)
	s.persistLocked(ctx)

	s.notifier.Notify(notify.LevelSuccess, "Success", "Playoff matches have been generated.")
	s.notifier.Event(notify.EventPlayoffsGenerated, created)
	return created, nil
}

// UpdatePlayoffResult records a knockout winner. Draws are not a knockout
// outcome, so this is a winner-only update. Unknown match ids are silent
// no-ops; group-stage ids are a validation error.
func (s *tournamentService) UpdatePlayoffResult(ctx context.Context, matchID, winnerID int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	match := s.findMatchLocked(matchID)
	if match == nil {
		s.logger.Warn("playoff result for unknown match ignored", slog.Int("match_id", matchID))
		return nil
	}
	if match.Stage == models.StageGroup {
		s.notifier.Notify(notify.LevelError, "Error", "Match is not a playoff match.")
		return ErrNotPlayoffMatch
	}
	if !match.HasTeam(winnerID) {
		s.notifier.Notify(notify.LevelError, "Error", "Winner must be one of the match participants.")
		return ErrInvalidWinner
	}

	winner := winnerID
	match.WinnerID = &winner
	match.IsDraw = false

	s.ensureFinalMatchLocked()
	s.persistLocked(ctx)

	s.notifier.Notify(notify.LevelSuccess, "Success", "Match result updated.")
	s.notifier.Event(notify.EventMatchesUpdated, copyMatches(s.matches))
	return nil
}

// ensureFinalMatchLocked creates the final exactly once, as soon as both
// semi-final winners exist. It runs after every result mutation instead of
// inside the derived views, so repeated reads stay side-effect free and the
// existence check under the store mutex deduplicates repeated invocations.
func (s *tournamentService) ensureFinalMatchLocked() {
	if len(s.stageMatchesLocked(models.StageFinal)) > 0 {
		return
	}

	pairing, ok := brackets.FinalPairing(s.stageMatchesLocked(models.StageSemiFinal))
	if !ok {
		return
	}

	final := models.Match{
		ID:      s.allocateIDLocked(),
		Team1ID: pairing.Team1ID,
		Team2ID: pairing.Team2ID,
		Date:    time.Now(),
		Time:    placeholderTime,
		Stage:   models.StageFinal,
	}
	s.matches = append(s.matches, final)
	s.notifier.Event(notify.EventFinalCreated, final)
}

// ResetTournament clears both lists and the persisted entries. Both lists
// are cleared under one lock acquisition, so no reader observes a half
// cleared tournament.
func (s *tournamentService) ResetTournament(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.teams = nil
	s.matches = nil
	s.nextID = 1

	if err := s.repo.Reset(ctx); err != nil {
		s.logger.Error("failed to clear persisted state", slog.Any("error", err))
		s.notifier.Notify(notify.LevelError, "Storage Error", "Persisted state could not be cleared.")
	}

	s.notifier.Notify(notify.LevelSuccess, "Tournament Reset", "All teams, matches, and standings have been cleared.")
	s.notifier.Event(notify.EventTournamentReset, nil)
	return nil
}

func (s *tournamentService) findTeamLocked(teamID int) *models.Team {
	for i := range s.teams {
		if s.teams[i].ID == teamID {
			return &s.teams[i]
		}
	}
	return nil
}

func (s *tournamentService) findMatchLocked(matchID int) *models.Match {
	for i := range s.matches {
		if s.matches[i].ID == matchID {
			return &s.matches[i]
		}
	}
	return nil
}

func (s *tournamentService) stageMatchesLocked(stage models.MatchStage) []models.Match {
	out := []models.Match{}
	for _, m := range s.matches {
		if m.Stage == stage {
			out = append(out, m)
		}
	}
	return out
}

// copyTeams and copyMatches return non-nil copies so derived views always
// serialize as JSON arrays, never null.
func copyTeams(teams []models.Team) []models.Team {
	out := make([]models.Team, len(teams))
	copy(out, teams)
	return out
}

func copyMatches(matches []models.Match) []models.Match {
	out := make([]models.Match, len(matches))
	copy(out, matches)
	return out
}

// playoffTeamsLocked returns the top four teams by standings order, or nil
// until the tournament has at least four teams and every group-stage match
// is decided.
func (s *tournamentService) playoffTeamsLocked() []models.Team {
	if len(s.teams) < 4 {
		return nil
	}
	for _, m := range s.matches {
		if m.Stage == models.StageGroup && !m.Decided() {
			return nil
		}
	}

	standings := ComputeStandings(s.teams, s.matches)
	seeds := make([]models.Team, 0, 4)
	for _, row := range standings[:4] {
		if t := s.findTeamLocked(row.TeamID); t != nil {
			seeds = append(seeds, *t)
		}
	}
	return seeds
}

func (s *tournamentService) finalMatchLocked() *models.Match {
	for i := range s.matches {
		if s.matches[i].Stage == models.StageFinal {
			final := s.matches[i]
			return &final
		}
	}
	return nil
}

func (s *tournamentService) championLocked() *models.Team {
	final := s.finalMatchLocked()
	if final == nil || final.WinnerID == nil {
		return nil
	}
	if t := s.findTeamLocked(*final.WinnerID); t != nil {
		champion := *t
		return &champion
	}
	return nil
}

func (s *tournamentService) phaseLocked() PlayoffPhase {
	semis := s.stageMatchesLocked(models.StageSemiFinal)
	if len(semis) == 0 {
		if len(s.playoffTeamsLocked()) >= 4 {
			return PhaseReady
		}
		return PhaseNotReady
	}

	decided := 0
	for _, m := range semis {
		if m.WinnerID != nil {
			decided++
		}
	}
	if decided < len(semis) {
		return PhaseSemisPending
	}

	final := s.finalMatchLocked()
	if final == nil {
		return PhaseSemisComplete
	}
	if final.WinnerID == nil {
		return PhaseFinalPending
	}
	return PhaseFinalComplete
}

func (s *tournamentService) Teams() []models.Team {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copyTeams(s.teams)
}

func (s *tournamentService) Matches() []models.Match {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copyMatches(s.matches)
}

func (s *tournamentService) Standings() []models.Standing {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return ComputeStandings(s.teams, s.matches)
}

func (s *tournamentService) PlayoffTeams() []models.Team {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copyTeams(s.playoffTeamsLocked())
}

func (s *tournamentService) SemiFinalMatches() []models.Match {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.stageMatchesLocked(models.StageSemiFinal)
}

func (s *tournamentService) FinalMatch() *models.Match {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.finalMatchLocked()
}

func (s *tournamentService) Champion() *models.Team {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.championLocked()
}

func (s *tournamentService) Phase() PlayoffPhase {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.phaseLocked()
}

func (s *tournamentService) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Snapshot{
		Teams:            copyTeams(s.teams),
		Matches:          copyMatches(s.matches),
		Standings:        ComputeStandings(s.teams, s.matches),
		PlayoffTeams:     copyTeams(s.playoffTeamsLocked()),
		SemiFinalMatches: s.stageMatchesLocked(models.StageSemiFinal),
		FinalMatch:       s.finalMatchLocked(),
		Champion:         s.championLocked(),
		Phase:            s.phaseLocked(),
	}
}
