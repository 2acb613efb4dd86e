package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/aymenbt/fantasy-ligue/internal/domain/round"
	qb "github.com/aymenbt/fantasy-ligue/internal/platform/querybuilder"
)

type roundTableModel struct {
	ID        string    `db:"id"`
	Number    int       `db:"number"`
	CreatedAt time.Time `db:"created_at"`
}

type roundInsertModel struct {
	ID     string `db:"id"`
	Number int    `db:"number"`
}

type RoundRepository struct {
	db *sqlx.DB
}

func NewRoundRepository(db *sqlx.DB) *RoundRepository {
	return &RoundRepository{db: db}
}

var roundColumns = []string{"id", "number", "created_at"}

func (r *RoundRepository) Insert(ctx context.Context, next round.Round) error {
	query, args, err := qb.InsertModel("rounds", roundInsertModel{ID: next.ID, Number: next.Number}, "")
	if err != nil {
		return fmt.Errorf("build insert round query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert round %d: %w", next.Number, err)
	}
	return nil
}

func (r *RoundRepository) GetLatest(ctx context.Context) (round.Round, bool, error) {
	query, args, err := qb.Select(roundColumns...).
		From("rounds").
		OrderBy("number DESC").
		Limit(1).
		ToSQL()
	if err != nil {
		return round.Round{}, false, fmt.Errorf("build get latest round query: %w", err)
	}

	var row roundTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return round.Round{}, false, nil
		}
		return round.Round{}, false, fmt.Errorf("get latest round: %w", err)
	}

	return round.Round{ID: row.ID, Number: row.Number}, true, nil
}

func (r *RoundRepository) ListOrdered(ctx context.Context) ([]round.Round, error) {
	query, args, err := qb.Select(roundColumns...).
		From("rounds").
		OrderBy("number ASC").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list rounds query: %w", err)
	}

	var rows []roundTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list rounds: %w", err)
	}

	out := make([]round.Round, 0, len(rows))
	for _, row := range rows {
		out = append(out, round.Round{ID: row.ID, Number: row.Number})
	}
	return out, nil
}
