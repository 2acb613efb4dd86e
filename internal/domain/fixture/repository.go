package fixture

import "context"

// Repository exposes fixture persistence to use cases.
type Repository interface {
	Insert(ctx context.Context, f Fixture) error
	Exists(ctx context.Context, homeTeamID, awayTeamID, date, eventTime string) (bool, error)
	ListByRound(ctx context.Context, roundID string) ([]Fixture, error)
	FindByRoundAndTeam(ctx context.Context, roundID, teamID string) (Fixture, bool, error)
}
