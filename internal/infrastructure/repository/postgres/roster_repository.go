package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/aymenbt/fantasy-ligue/internal/domain/roster"
	qb "github.com/aymenbt/fantasy-ligue/internal/platform/querybuilder"
)

type RosterRepository struct {
	db *sqlx.DB
}

func NewRosterRepository(db *sqlx.DB) *RosterRepository {
	return &RosterRepository{db: db}
}

var weeklyTeamColumns = []string{"id", "user_id", "round_id", "transfer_count", "created_at", "updated_at"}

var slotColumns = []string{"id", "weekly_team_id", "player_id", "is_captain", "is_vice_captain", "is_bench"}

func (r *RosterRepository) ListWeeklyTeamsByUser(ctx context.Context, userID string) ([]roster.WeeklyTeam, error) {
	query, args, err := qb.Select(weeklyTeamColumns...).
		From("weekly_teams").
		Where(qb.Eq("user_id", userID)).
		OrderBy("created_at ASC").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list weekly teams query: %w", err)
	}

	var rows []weeklyTeamTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list weekly teams for user %s: %w", userID, err)
	}

	out := make([]roster.WeeklyTeam, 0, len(rows))
	for _, row := range rows {
		out = append(out, roster.WeeklyTeam{
			ID:            row.ID,
			UserID:        row.UserID,
			RoundID:       row.RoundID,
			TransferCount: row.TransferCount,
		})
	}
	return out, nil
}

func (r *RosterRepository) CreateWeeklyTeam(ctx context.Context, team roster.WeeklyTeam) error {
	model := weeklyTeamInsertModel{
		ID:            team.ID,
		UserID:        team.UserID,
		RoundID:       team.RoundID,
		TransferCount: team.TransferCount,
	}
	query, args, err := qb.InsertModel("weekly_teams", model, "")
	if err != nil {
		return fmt.Errorf("build insert weekly team query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert weekly team: %w", err)
	}
	return nil
}

func (r *RosterRepository) ListSlots(ctx context.Context, weeklyTeamID string) ([]roster.Slot, error) {
	query, args, err := qb.Select(slotColumns...).
		From("weekly_team_slots").
		Where(qb.Eq("weekly_team_id", weeklyTeamID)).
		OrderBy("id ASC").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list slots query: %w", err)
	}

	var rows []slotTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list slots for weekly team %s: %w", weeklyTeamID, err)
	}

	out := make([]roster.Slot, 0, len(rows))
	for _, row := range rows {
		out = append(out, roster.Slot{
			ID:            row.ID,
			WeeklyTeamID:  row.WeeklyTeamID,
			PlayerID:      row.PlayerID,
			IsCaptain:     row.IsCaptain,
			IsViceCaptain: row.IsViceCaptain,
			IsBench:       row.IsBench,
		})
	}
	return out, nil
}

// ReplaceSlots swaps the weekly team's slot set in one transaction.
func (r *RosterRepository) ReplaceSlots(ctx context.Context, weeklyTeamID string, slots []roster.Slot) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin replace slots tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	deleteQuery, deleteArgs, err := qb.DeleteFrom("weekly_team_slots").
		Where(qb.Eq("weekly_team_id", weeklyTeamID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build delete slots query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, deleteQuery, deleteArgs...); err != nil {
		return fmt.Errorf("delete slots for weekly team %s: %w", weeklyTeamID, err)
	}

	if len(slots) > 0 {
		builder := qb.InsertInto("weekly_team_slots").Columns(slotColumns...)
		for _, slot := range slots {
			builder.Values(slot.ID, weeklyTeamID, slot.PlayerID, slot.IsCaptain, slot.IsViceCaptain, slot.IsBench)
		}
		insertQuery, insertArgs, buildErr := builder.ToSQL()
		if buildErr != nil {
			return fmt.Errorf("build insert slots query: %w", buildErr)
		}
		if _, execErr := tx.ExecContext(ctx, insertQuery, insertArgs...); execErr != nil {
			return fmt.Errorf("insert slots for weekly team %s: %w", weeklyTeamID, execErr)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit replace slots tx: %w", err)
	}
	return nil
}

func (r *RosterRepository) ListUserIDs(ctx context.Context) ([]string, error) {
	query, args, err := qb.Select("user_id").
		From("weekly_teams").
		GroupBy("user_id").
		OrderBy("user_id ASC").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list user ids query: %w", err)
	}

	var out []string
	if err := r.db.SelectContext(ctx, &out, query, args...); err != nil {
		return nil, fmt.Errorf("list roster user ids: %w", err)
	}
	return out, nil
}
