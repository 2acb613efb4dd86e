package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/aymenbt/fantasy-ligue/internal/domain/roster"
)

type RosterRepository struct {
	mu          sync.RWMutex
	teamsByUser map[string][]roster.WeeklyTeam
	slotsByTeam map[string][]roster.Slot
}

func NewRosterRepository() *RosterRepository {
	return &RosterRepository{
		teamsByUser: make(map[string][]roster.WeeklyTeam),
		slotsByTeam: make(map[string][]roster.Slot),
	}
}

func (r *RosterRepository) ListWeeklyTeamsByUser(_ context.Context, userID string) ([]roster.WeeklyTeam, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	teams := r.teamsByUser[userID]
	out := make([]roster.WeeklyTeam, 0, len(teams))
	out = append(out, teams...)
	return out, nil
}

func (r *RosterRepository) CreateWeeklyTeam(_ context.Context, team roster.WeeklyTeam) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.teamsByUser[team.UserID] = append(r.teamsByUser[team.UserID], team)
	return nil
}

func (r *RosterRepository) ListSlots(_ context.Context, weeklyTeamID string) ([]roster.Slot, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	slots := r.slotsByTeam[weeklyTeamID]
	out := make([]roster.Slot, 0, len(slots))
	out = append(out, slots...)
	return out, nil
}

func (r *RosterRepository) ReplaceSlots(_ context.Context, weeklyTeamID string, slots []roster.Slot) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.slotsByTeam[weeklyTeamID] = append([]roster.Slot(nil), slots...)
	return nil
}

func (r *RosterRepository) ListUserIDs(_ context.Context) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]string, 0, len(r.teamsByUser))
	for userID := range r.teamsByUser {
		out = append(out, userID)
	}
	sort.Strings(out)
	return out, nil
}
