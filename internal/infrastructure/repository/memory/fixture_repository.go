package memory

import (
	"context"
	"sync"

	"github.com/aymenbt/fantasy-ligue/internal/domain/fixture"
)

type FixtureRepository struct {
	mu       sync.RWMutex
	fixtures []fixture.Fixture
}

func NewFixtureRepository(fixtures []fixture.Fixture) *FixtureRepository {
	return &FixtureRepository{fixtures: append([]fixture.Fixture(nil), fixtures...)}
}

func (r *FixtureRepository) Insert(_ context.Context, f fixture.Fixture) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.fixtures = append(r.fixtures, f)
	return nil
}

func (r *FixtureRepository) Exists(_ context.Context, homeTeamID, awayTeamID, date, eventTime string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, f := range r.fixtures {
		if f.HomeTeamID == homeTeamID && f.AwayTeamID == awayTeamID && f.Date == date && f.EventTime == eventTime {
			return true, nil
		}
	}

	return false, nil
}

func (r *FixtureRepository) ListByRound(_ context.Context, roundID string) ([]fixture.Fixture, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]fixture.Fixture, 0, len(r.fixtures))
	for _, f := range r.fixtures {
		if f.RoundID == roundID {
			out = append(out, f)
		}
	}

	return out, nil
}

func (r *FixtureRepository) FindByRoundAndTeam(_ context.Context, roundID, teamID string) (fixture.Fixture, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, f := range r.fixtures {
		if f.RoundID == roundID && f.Involves(teamID) {
			return f, true, nil
		}
	}

	return fixture.Fixture{}, false, nil
}
