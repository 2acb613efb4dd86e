package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/aymenbt/fantasy-ligue/internal/domain/playerstat"
	"github.com/aymenbt/fantasy-ligue/internal/platform/id"
	qb "github.com/aymenbt/fantasy-ligue/internal/platform/querybuilder"
)

type playerStatTableModel struct {
	ID        string    `db:"id"`
	RoundID   string    `db:"round_id"`
	PlayerID  string    `db:"player_id"`
	Score     int       `db:"score"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

type playerStatInsertModel struct {
	ID       string `db:"id"`
	RoundID  string `db:"round_id"`
	PlayerID string `db:"player_id"`
	Score    int    `db:"score"`
}

type PlayerStatRepository struct {
	db    *sqlx.DB
	idGen id.Generator
}

func NewPlayerStatRepository(db *sqlx.DB, idGen id.Generator) *PlayerStatRepository {
	return &PlayerStatRepository{db: db, idGen: idGen}
}

var playerStatColumns = []string{"id", "round_id", "player_id", "score", "created_at", "updated_at"}

// Increment adds delta to the player's round total in one atomic statement.
// The first increment creates the row with delta as its score.
func (r *PlayerStatRepository) Increment(ctx context.Context, roundID, playerID string, delta int) error {
	statID, err := r.idGen.NewID()
	if err != nil {
		return fmt.Errorf("generate stat id: %w", err)
	}

	model := playerStatInsertModel{
		ID:       statID,
		RoundID:  roundID,
		PlayerID: playerID,
		Score:    delta,
	}
	query, args, err := qb.InsertModel("player_round_stats", model, `ON CONFLICT (round_id, player_id)
DO UPDATE SET score = player_round_stats.score + EXCLUDED.score, updated_at = NOW()`)
	if err != nil {
		return fmt.Errorf("build increment stat query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("increment stat for player %s in round %s: %w", playerID, roundID, err)
	}
	return nil
}

func (r *PlayerStatRepository) Get(ctx context.Context, roundID, playerID string) (playerstat.PlayerStat, bool, error) {
	query, args, err := qb.Select(playerStatColumns...).
		From("player_round_stats").
		Where(qb.Eq("round_id", roundID), qb.Eq("player_id", playerID)).
		ToSQL()
	if err != nil {
		return playerstat.PlayerStat{}, false, fmt.Errorf("build get stat query: %w", err)
	}

	var row playerStatTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return playerstat.PlayerStat{}, false, nil
		}
		return playerstat.PlayerStat{}, false, fmt.Errorf("get stat for player %s in round %s: %w", playerID, roundID, err)
	}

	return statFromRow(row), true, nil
}

func (r *PlayerStatRepository) ListByRound(ctx context.Context, roundID string) ([]playerstat.PlayerStat, error) {
	query, args, err := qb.Select(playerStatColumns...).
		From("player_round_stats").
		Where(qb.Eq("round_id", roundID)).
		OrderBy("player_id ASC").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list stats query: %w", err)
	}

	var rows []playerStatTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list stats for round %s: %w", roundID, err)
	}

	out := make([]playerstat.PlayerStat, 0, len(rows))
	for _, row := range rows {
		out = append(out, statFromRow(row))
	}
	return out, nil
}

func (r *PlayerStatRepository) ResetRound(ctx context.Context, roundID string) error {
	query, args, err := qb.DeleteFrom("player_round_stats").
		Where(qb.Eq("round_id", roundID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build reset round stats query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("reset stats for round %s: %w", roundID, err)
	}
	return nil
}

func statFromRow(row playerStatTableModel) playerstat.PlayerStat {
	return playerstat.PlayerStat{
		ID:       row.ID,
		RoundID:  row.RoundID,
		PlayerID: row.PlayerID,
		Score:    row.Score,
	}
}
