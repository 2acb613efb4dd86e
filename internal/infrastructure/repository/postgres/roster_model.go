package postgres

import "time"

type weeklyTeamTableModel struct {
	ID            string    `db:"id"`
	UserID        string    `db:"user_id"`
	RoundID       string    `db:"round_id"`
	TransferCount int       `db:"transfer_count"`
	CreatedAt     time.Time `db:"created_at"`
	UpdatedAt     time.Time `db:"updated_at"`
}

type weeklyTeamInsertModel struct {
	ID            string `db:"id"`
	UserID        string `db:"user_id"`
	RoundID       string `db:"round_id"`
	TransferCount int    `db:"transfer_count"`
}

type slotTableModel struct {
	ID            string `db:"id"`
	WeeklyTeamID  string `db:"weekly_team_id"`
	PlayerID      string `db:"player_id"`
	IsCaptain     bool   `db:"is_captain"`
	IsViceCaptain bool   `db:"is_vice_captain"`
	IsBench       bool   `db:"is_bench"`
}
