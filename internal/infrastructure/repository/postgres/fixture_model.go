package postgres

import "time"

type fixtureTableModel struct {
	ID         string    `db:"id"`
	RoundID    string    `db:"round_id"`
	HomeTeamID string    `db:"home_team_id"`
	AwayTeamID string    `db:"away_team_id"`
	MatchDate  string    `db:"match_date"`
	EventTime  string    `db:"event_time"`
	League     string    `db:"league"`
	Status     string    `db:"status"`
	CreatedAt  time.Time `db:"created_at"`
}

type fixtureInsertModel struct {
	ID         string `db:"id"`
	RoundID    string `db:"round_id"`
	HomeTeamID string `db:"home_team_id"`
	AwayTeamID string `db:"away_team_id"`
	MatchDate  string `db:"match_date"`
	EventTime  string `db:"event_time"`
	League     string `db:"league"`
	Status     string `db:"status"`
}
