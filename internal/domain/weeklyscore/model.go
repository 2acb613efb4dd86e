package weeklyscore

// WeeklyScore is the final multiplier-adjusted total for one user in one
// round. It is recomputed from scratch and fully overwritten on every upsert,
// so recalculation is idempotent. The vice-captain multiplier makes the total
// fractional.
type WeeklyScore struct {
	ID      string
	UserID  string
	RoundID string
	Score   float64
}
