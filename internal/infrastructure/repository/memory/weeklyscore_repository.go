package memory

import (
	"context"
	"sync"

	"github.com/aymenbt/fantasy-ligue/internal/domain/weeklyscore"
)

type WeeklyScoreRepository struct {
	mu     sync.RWMutex
	scores map[string]weeklyscore.WeeklyScore
}

func NewWeeklyScoreRepository() *WeeklyScoreRepository {
	return &WeeklyScoreRepository{scores: make(map[string]weeklyscore.WeeklyScore)}
}

func scoreKey(userID, roundID string) string {
	return userID + "/" + roundID
}

func (r *WeeklyScoreRepository) Upsert(_ context.Context, score weeklyscore.WeeklyScore) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.scores[scoreKey(score.UserID, score.RoundID)] = score
	return nil
}

func (r *WeeklyScoreRepository) Get(_ context.Context, userID, roundID string) (weeklyscore.WeeklyScore, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	score, ok := r.scores[scoreKey(userID, roundID)]
	return score, ok, nil
}
