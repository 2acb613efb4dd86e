package team

import "context"

// Repository describes team persistence needs from use cases.
type Repository interface {
	GetByID(ctx context.Context, teamID string) (Team, bool, error)
	GetByExternalID(ctx context.Context, externalID int64) (Team, bool, error)
}
