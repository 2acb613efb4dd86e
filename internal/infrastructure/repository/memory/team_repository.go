package memory

import (
	"context"
	"sync"

	"github.com/aymenbt/fantasy-ligue/internal/domain/team"
)

type TeamRepository struct {
	mu           sync.RWMutex
	byID         map[string]team.Team
	byExternalID map[int64]team.Team
}

func NewTeamRepository(teams []team.Team) *TeamRepository {
	byID := make(map[string]team.Team, len(teams))
	byExternalID := make(map[int64]team.Team, len(teams))
	for _, t := range teams {
		byID[t.ID] = t
		byExternalID[t.ExternalID] = t
	}

	return &TeamRepository{byID: byID, byExternalID: byExternalID}
}

func (r *TeamRepository) GetByID(_ context.Context, teamID string) (team.Team, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.byID[teamID]
	return t, ok, nil
}

func (r *TeamRepository) GetByExternalID(_ context.Context, externalID int64) (team.Team, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.byExternalID[externalID]
	return t, ok, nil
}
