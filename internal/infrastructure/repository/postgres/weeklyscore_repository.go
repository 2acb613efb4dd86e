package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/aymenbt/fantasy-ligue/internal/domain/weeklyscore"
	qb "github.com/aymenbt/fantasy-ligue/internal/platform/querybuilder"
)

type weeklyScoreTableModel struct {
	ID        string    `db:"id"`
	UserID    string    `db:"user_id"`
	RoundID   string    `db:"round_id"`
	Score     float64   `db:"score"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

type weeklyScoreInsertModel struct {
	ID      string  `db:"id"`
	UserID  string  `db:"user_id"`
	RoundID string  `db:"round_id"`
	Score   float64 `db:"score"`
}

type WeeklyScoreRepository struct {
	db *sqlx.DB
}

func NewWeeklyScoreRepository(db *sqlx.DB) *WeeklyScoreRepository {
	return &WeeklyScoreRepository{db: db}
}

var weeklyScoreColumns = []string{"id", "user_id", "round_id", "score", "created_at", "updated_at"}

// Upsert fully overwrites the user's round total.
func (r *WeeklyScoreRepository) Upsert(ctx context.Context, score weeklyscore.WeeklyScore) error {
	model := weeklyScoreInsertModel{
		ID:      score.ID,
		UserID:  score.UserID,
		RoundID: score.RoundID,
		Score:   score.Score,
	}
	query, args, err := qb.InsertModel("weekly_scores", model, `ON CONFLICT (user_id, round_id)
DO UPDATE SET score = EXCLUDED.score, updated_at = NOW()`)
	if err != nil {
		return fmt.Errorf("build upsert weekly score query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert weekly score for user %s: %w", score.UserID, err)
	}
	return nil
}

func (r *WeeklyScoreRepository) Get(ctx context.Context, userID, roundID string) (weeklyscore.WeeklyScore, bool, error) {
	query, args, err := qb.Select(weeklyScoreColumns...).
		From("weekly_scores").
		Where(qb.Eq("user_id", userID), qb.Eq("round_id", roundID)).
		ToSQL()
	if err != nil {
		return weeklyscore.WeeklyScore{}, false, fmt.Errorf("build get weekly score query: %w", err)
	}

	var row weeklyScoreTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return weeklyscore.WeeklyScore{}, false, nil
		}
		return weeklyscore.WeeklyScore{}, false, fmt.Errorf("get weekly score for user %s: %w", userID, err)
	}

	return weeklyscore.WeeklyScore{
		ID:      row.ID,
		UserID:  row.UserID,
		RoundID: row.RoundID,
		Score:   row.Score,
	}, true, nil
}
