package weeklyscore

import "context"

// Repository describes weekly score persistence needs from use cases.
type Repository interface {
	// Upsert fully replaces the score for (user, round).
	Upsert(ctx context.Context, score WeeklyScore) error
	Get(ctx context.Context, userID, roundID string) (WeeklyScore, bool, error)
}
