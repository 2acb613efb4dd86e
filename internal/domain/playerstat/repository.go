package playerstat

import "context"

// Repository describes player stat persistence needs from use cases.
type Repository interface {
	// Increment adds delta to the (player, round) row, creating it with delta
	// as the initial score when absent. The storage layer's atomic
	// increment-upsert serializes concurrent writes to the same row. There is
	// no deduplication against re-delivered event batches; callers own the
	// exactly-once guarantee per batch.
	Increment(ctx context.Context, roundID, playerID string, delta int) error
	Get(ctx context.Context, roundID, playerID string) (PlayerStat, bool, error)
	ListByRound(ctx context.Context, roundID string) ([]PlayerStat, error)
	// ResetRound removes every stat row for the round (explicit reset flow).
	ResetRound(ctx context.Context, roundID string) error
}
