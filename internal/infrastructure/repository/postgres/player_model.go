package postgres

import "time"

type playerTableModel struct {
	ID        string    `db:"id"`
	TeamID    string    `db:"team_id"`
	Name      string    `db:"name"`
	Position  string    `db:"position"`
	ImageURL  string    `db:"image_url"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}
