package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/aymenbt/fantasy-ligue/internal/domain/round"
)

type RoundRepository struct {
	mu     sync.RWMutex
	rounds []round.Round
}

func NewRoundRepository(rounds []round.Round) *RoundRepository {
	out := append([]round.Round(nil), rounds...)
	sort.Slice(out, func(i, j int) bool { return out[i].Number < out[j].Number })

	return &RoundRepository{rounds: out}
}

func (r *RoundRepository) Insert(_ context.Context, next round.Round) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.rounds = append(r.rounds, next)
	sort.Slice(r.rounds, func(i, j int) bool { return r.rounds[i].Number < r.rounds[j].Number })
	return nil
}

func (r *RoundRepository) GetLatest(_ context.Context) (round.Round, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if len(r.rounds) == 0 {
		return round.Round{}, false, nil
	}
	return r.rounds[len(r.rounds)-1], true, nil
}

func (r *RoundRepository) ListOrdered(_ context.Context) ([]round.Round, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]round.Round, 0, len(r.rounds))
	out = append(out, r.rounds...)
	return out, nil
}
