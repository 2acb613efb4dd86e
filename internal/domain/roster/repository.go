package roster

import "context"

// Repository describes roster persistence needs from use cases.
type Repository interface {
	ListWeeklyTeamsByUser(ctx context.Context, userID string) ([]WeeklyTeam, error)
	CreateWeeklyTeam(ctx context.Context, team WeeklyTeam) error
	ListSlots(ctx context.Context, weeklyTeamID string) ([]Slot, error)
	// ReplaceSlots deletes the existing slots and inserts the given ones.
	// The replacement is not transactional across both steps; concurrent
	// re-submission for the same weekly team is an acknowledged race.
	ReplaceSlots(ctx context.Context, weeklyTeamID string, slots []Slot) error
	// ListUserIDs returns the distinct users that ever submitted a roster.
	ListUserIDs(ctx context.Context) ([]string, error)
}
