package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/govu-ux/Tournament-Tracker/models"
	"github.com/govu-ux/Tournament-Tracker/storage"
	"golang.org/x/sync/errgroup"
)

// TournamentRepository persists the team and match lists as two JSON blobs.
// Persistence is best-effort: a missing or corrupt blob loads as an empty
// list and only the error is logged, never surfaced as a crash.
type TournamentRepository interface {
	Load(ctx context.Context) ([]models.Team, []models.Match, error)
	Save(ctx context.Context, teams []models.Team, matches []models.Match) error
	Reset(ctx context.Context) error
}

type blobTournamentRepository struct {
	store  storage.BlobStore
	logger *slog.Logger
}

func NewBlobTournamentRepository(store storage.BlobStore, logger *slog.Logger) TournamentRepository {
	return &blobTournamentRepository{
		store:  store,
		logger: logger,
	}
}

// Load fetches both keys in parallel. Unreadable or unparsable entries are
// logged and replaced with empty lists so that a damaged store never
// prevents startup.
func (r *blobTournamentRepository) Load(ctx context.Context) ([]models.Team, []models.Match, error) {
	var (
		teams   []models.Team
		matches []models.Match
	)

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		teams = loadList[models.Team](gCtx, r.store, storage.TeamsKey, r.logger)
		return nil
	})
	g.Go(func() error {
		matches = loadList[models.Match](gCtx, r.store, storage.MatchesKey, r.logger)
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return teams, matches, nil
}

func loadList[T any](ctx context.Context, store storage.BlobStore, key string, logger *slog.Logger) []T {
	raw, err := store.Get(ctx, key)
	if errors.Is(err, storage.ErrKeyNotFound) {
		return []T{}
	}
	if err != nil {
		logger.Error("failed to load persisted state, starting empty",
			slog.String("key", key), slog.Any("error", err))
		return []T{}
	}

	var list []T
	if err := json.Unmarshal(raw, &list); err != nil {
		logger.Error("failed to parse persisted state, starting empty",
			slog.String("key", key), slog.Any("error", err))
		return []T{}
	}
	return list
}

// Save serializes and overwrites both lists. Nil slices are stored as empty
// arrays so a reload round-trips to the same observable state.
func (r *blobTournamentRepository) Save(ctx context.Context, teams []models.Team, matches []models.Match) error {
	if teams == nil {
		teams = []models.Team{}
	}
	if matches == nil {
		matches = []models.Match{}
	}

	teamsJSON, err := json.Marshal(teams)
	if err != nil {
		return fmt.Errorf("failed to marshal teams: %w", err)
	}
	matchesJSON, err := json.Marshal(matches)
	if err != nil {
		return fmt.Errorf("failed to marshal matches: %w", err)
	}

	if err := r.store.Put(ctx, storage.TeamsKey, teamsJSON); err != nil {
		return fmt.Errorf("failed to persist teams: %w", err)
	}
	if err := r.store.Put(ctx, storage.MatchesKey, matchesJSON); err != nil {
		return fmt.Errorf("failed to persist matches: %w", err)
	}
	return nil
}

// Reset deletes both keys entirely rather than writing empty lists.
func (r *blobTournamentRepository) Reset(ctx context.Context) error {
	if err := r.store.Delete(ctx, storage.TeamsKey); err != nil {
		return fmt.Errorf("failed to delete teams key: %w", err)
	}
	if err := r.store.Delete(ctx, storage.MatchesKey); err != nil {
		return fmt.Errorf("failed to delete matches key: %w", err)
	}
	return nil
}
