package memory

import (
	"context"
	"sort"
	"strconv"
	"sync"

	"github.com/aymenbt/fantasy-ligue/internal/domain/playerstat"
)

type PlayerStatRepository struct {
	mu    sync.RWMutex
	stats map[string]playerstat.PlayerStat
	seq   int
}

func NewPlayerStatRepository() *PlayerStatRepository {
	return &PlayerStatRepository{stats: make(map[string]playerstat.PlayerStat)}
}

func statKey(roundID, playerID string) string {
	return roundID + "/" + playerID
}

func (r *PlayerStatRepository) Increment(_ context.Context, roundID, playerID string, delta int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := statKey(roundID, playerID)
	stat, ok := r.stats[key]
	if !ok {
		r.seq++
		stat = playerstat.PlayerStat{
			ID:       "stat-" + strconv.Itoa(r.seq),
			PlayerID: playerID,
			RoundID:  roundID,
		}
	}
	stat.Score += delta
	r.stats[key] = stat
	return nil
}

func (r *PlayerStatRepository) Get(_ context.Context, roundID, playerID string) (playerstat.PlayerStat, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stat, ok := r.stats[statKey(roundID, playerID)]
	return stat, ok, nil
}

func (r *PlayerStatRepository) ListByRound(_ context.Context, roundID string) ([]playerstat.PlayerStat, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]playerstat.PlayerStat, 0, len(r.stats))
	for _, stat := range r.stats {
		if stat.RoundID == roundID {
			out = append(out, stat)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PlayerID < out[j].PlayerID })
	return out, nil
}

func (r *PlayerStatRepository) ResetRound(_ context.Context, roundID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for key, stat := range r.stats {
		if stat.RoundID == roundID {
			delete(r.stats, key)
		}
	}
	return nil
}
