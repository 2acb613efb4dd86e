package memory

import (
	"context"
	"strings"
	"sync"

	"github.com/aymenbt/fantasy-ligue/internal/domain/player"
)

type PlayerRepository struct {
	mu     sync.RWMutex
	byID   map[string]player.Player
	byTeam map[string][]player.Player
}

func NewPlayerRepository(players []player.Player) *PlayerRepository {
	byID := make(map[string]player.Player, len(players))
	byTeam := make(map[string][]player.Player)
	for _, p := range players {
		byID[p.ID] = p
		byTeam[p.TeamID] = append(byTeam[p.TeamID], p)
	}

	return &PlayerRepository{byID: byID, byTeam: byTeam}
}

func (r *PlayerRepository) GetByIDs(_ context.Context, playerIDs []string) ([]player.Player, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]player.Player, 0, len(playerIDs))
	for _, id := range playerIDs {
		p, ok := r.byID[id]
		if !ok {
			continue
		}
		out = append(out, p)
	}

	return out, nil
}

func (r *PlayerRepository) FindByNameAndTeam(_ context.Context, name, teamID string) (player.Player, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, p := range r.byTeam[teamID] {
		if strings.EqualFold(p.Name, name) {
			return p, true, nil
		}
	}

	return player.Player{}, false, nil
}
