package player

import "context"

// Repository describes player persistence needs from use cases.
type Repository interface {
	GetByIDs(ctx context.Context, playerIDs []string) ([]Player, error)
	// FindByNameAndTeam matches the stored name case-insensitively and exactly.
	// The name is always bound as a literal value, never as a pattern.
	FindByNameAndTeam(ctx context.Context, name, teamID string) (Player, bool, error)
}
