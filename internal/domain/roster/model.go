package roster

import "fmt"

// WeeklyTeam is one user's roster submission bound to a round. Submissions are
// append-only across rounds; re-saving within the same round replaces the
// slots of the existing record.
type WeeklyTeam struct {
	ID            string
	UserID        string
	RoundID       string
	TransferCount int
}

// Slot is a single player's membership in a WeeklyTeam with role flags.
// Captain and vice-captain are not mutually exclusive at the storage layer;
// scoring applies captain first, so the captain flag wins when both are set.
type Slot struct {
	ID            string
	WeeklyTeamID  string
	PlayerID      string
	IsCaptain     bool
	IsViceCaptain bool
	IsBench       bool
}

func (w WeeklyTeam) Validate() error {
	if w.ID == "" {
		return fmt.Errorf("weekly team id is required")
	}
	if w.UserID == "" {
		return fmt.Errorf("weekly team user id is required")
	}
	if w.RoundID == "" {
		return fmt.Errorf("weekly team round id is required")
	}

	return nil
}

func (s Slot) Validate() error {
	if s.ID == "" {
		return fmt.Errorf("slot id is required")
	}
	if s.WeeklyTeamID == "" {
		return fmt.Errorf("slot weekly team id is required")
	}
	if s.PlayerID == "" {
		return fmt.Errorf("slot player id is required")
	}

	return nil
}
