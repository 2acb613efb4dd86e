package round

import "context"

// Repository describes round persistence needs from use cases. Creation
// happens only through the scheduler trigger, never inside the scoring engine.
type Repository interface {
	Insert(ctx context.Context, r Round) error
	GetLatest(ctx context.Context) (Round, bool, error)
	ListOrdered(ctx context.Context) ([]Round, error)
}
