package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/aymenbt/fantasy-ligue/internal/domain/player"
	qb "github.com/aymenbt/fantasy-ligue/internal/platform/querybuilder"
)

type PlayerRepository struct {
	db *sqlx.DB
}

func NewPlayerRepository(db *sqlx.DB) *PlayerRepository {
	return &PlayerRepository{db: db}
}

var playerColumns = []string{"id", "team_id", "name", "position", "image_url", "created_at", "updated_at"}

func (r *PlayerRepository) GetByIDs(ctx context.Context, playerIDs []string) ([]player.Player, error) {
	if len(playerIDs) == 0 {
		return nil, nil
	}

	values := make([]any, 0, len(playerIDs))
	for _, id := range playerIDs {
		values = append(values, id)
	}

	query, args, err := qb.Select(playerColumns...).
		From("players").
		Where(qb.In("id", values)).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build get players query: %w", err)
	}

	var rows []playerTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("get players by ids: %w", err)
	}

	out := make([]player.Player, 0, len(rows))
	for _, row := range rows {
		out = append(out, playerFromRow(row))
	}
	return out, nil
}

// FindByNameAndTeam matches the display name case-insensitively. The name is
// always a bind parameter, so pattern metacharacters in feed names stay
// literal.
func (r *PlayerRepository) FindByNameAndTeam(ctx context.Context, name, teamID string) (player.Player, bool, error) {
	query, args, err := qb.Select(playerColumns...).
		From("players").
		Where(
			qb.Eq("team_id", teamID),
			qb.Expr("LOWER(name) = LOWER(?)", name),
		).
		Limit(1).
		ToSQL()
	if err != nil {
		return player.Player{}, false, fmt.Errorf("build find player query: %w", err)
	}

	var row playerTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return player.Player{}, false, nil
		}
		return player.Player{}, false, fmt.Errorf("find player by name and team: %w", err)
	}

	return playerFromRow(row), true, nil
}

func playerFromRow(row playerTableModel) player.Player {
	return player.Player{
		ID:       row.ID,
		TeamID:   row.TeamID,
		Name:     row.Name,
		Position: player.Position(row.Position),
		ImageURL: row.ImageURL,
	}
}
