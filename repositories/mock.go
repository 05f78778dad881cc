package repositories

import (
	"context"
	"sync"

	"github.com/govu-ux/Tournament-Tracker/models"
)

// Mock is an in-memory TournamentRepository for tests. It records calls and
// keeps the last saved state so tests can assert on persistence behavior.
type Mock struct {
	mu sync.Mutex

	Teams   []models.Team
	Matches []models.Match

	SaveCalls  int
	ResetCalls int

	LoadErr  error
	SaveErr  error
	ResetErr error
}

func NewMock() *Mock {
	return &Mock{}
}

func (m *Mock) Load(ctx context.Context) ([]models.Team, []models.Match, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.LoadErr != nil {
		return nil, nil, m.LoadErr
	}
	teams := append([]models.Team(nil), m.Teams...)
	matches := append([]models.Match(nil), m.Matches...)
	return teams, matches, nil
}

func (m *Mock) Save(ctx context.Context, teams []models.Team, matches []models.Match) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SaveCalls++
	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.Teams = append([]models.Team(nil), teams...)
	m.Matches = append([]models.Match(nil), matches...)
	return nil
}

func (m *Mock) Reset(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ResetCalls++
	if m.ResetErr != nil {
		return m.ResetErr
	}
	m.Teams = nil
	m.Matches = nil
	return nil
}
