package playerstat

// PlayerStat is the accumulated raw point total for one player in one round.
// Rows grow by increments as match events post; they are never rewritten
// wholesale outside explicit reset flows.
type PlayerStat struct {
	ID       string
	PlayerID string
	RoundID  string
	Score    int
}
