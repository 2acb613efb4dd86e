package postgres

import "time"

type teamTableModel struct {
	ID         string    `db:"id"`
	ExternalID int64     `db:"external_id"`
	Name       string    `db:"name"`
	CreatedAt  time.Time `db:"created_at"`
	UpdatedAt  time.Time `db:"updated_at"`
}
