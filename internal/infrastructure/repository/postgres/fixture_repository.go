package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/aymenbt/fantasy-ligue/internal/domain/fixture"
	qb "github.com/aymenbt/fantasy-ligue/internal/platform/querybuilder"
)

type FixtureRepository struct {
	db *sqlx.DB
}

func NewFixtureRepository(db *sqlx.DB) *FixtureRepository {
	return &FixtureRepository{db: db}
}

var fixtureColumns = []string{
	"id", "round_id", "home_team_id", "away_team_id",
	"match_date", "event_time", "league", "status", "created_at",
}

func (r *FixtureRepository) Insert(ctx context.Context, f fixture.Fixture) error {
	model := fixtureInsertModel{
		ID:         f.ID,
		RoundID:    f.RoundID,
		HomeTeamID: f.HomeTeamID,
		AwayTeamID: f.AwayTeamID,
		MatchDate:  f.Date,
		EventTime:  f.EventTime,
		League:     f.League,
		Status:     f.Status,
	}
	query, args, err := qb.InsertModel("fixtures", model, "")
	if err != nil {
		return fmt.Errorf("build insert fixture query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert fixture: %w", err)
	}
	return nil
}

func (r *FixtureRepository) Exists(ctx context.Context, homeTeamID, awayTeamID, date, eventTime string) (bool, error) {
	query, args, err := qb.Select("COUNT(1) AS total").
		From("fixtures").
		Where(
			qb.Eq("home_team_id", homeTeamID),
			qb.Eq("away_team_id", awayTeamID),
			qb.Eq("match_date", date),
			qb.Eq("event_time", eventTime),
		).
		ToSQL()
	if err != nil {
		return false, fmt.Errorf("build fixture exists query: %w", err)
	}

	var total int
	if err := r.db.GetContext(ctx, &total, query, args...); err != nil {
		return false, fmt.Errorf("check fixture existence: %w", err)
	}
	return total > 0, nil
}

func (r *FixtureRepository) ListByRound(ctx context.Context, roundID string) ([]fixture.Fixture, error) {
	query, args, err := qb.Select(fixtureColumns...).
		From("fixtures").
		Where(qb.Eq("round_id", roundID)).
		OrderBy("match_date ASC", "event_time ASC").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list fixtures query: %w", err)
	}

	var rows []fixtureTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list fixtures for round %s: %w", roundID, err)
	}

	out := make([]fixture.Fixture, 0, len(rows))
	for _, row := range rows {
		out = append(out, fixtureFromRow(row))
	}
	return out, nil
}

func (r *FixtureRepository) FindByRoundAndTeam(ctx context.Context, roundID, teamID string) (fixture.Fixture, bool, error) {
	query, args, err := qb.Select(fixtureColumns...).
		From("fixtures").
		Where(
			qb.Eq("round_id", roundID),
			qb.Expr("(home_team_id = ? OR away_team_id = ?)", teamID, teamID),
		).
		Limit(1).
		ToSQL()
	if err != nil {
		return fixture.Fixture{}, false, fmt.Errorf("build find fixture query: %w", err)
	}

	var row fixtureTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return fixture.Fixture{}, false, nil
		}
		return fixture.Fixture{}, false, fmt.Errorf("find fixture for team %s in round %s: %w", teamID, roundID, err)
	}

	return fixtureFromRow(row), true, nil
}

func fixtureFromRow(row fixtureTableModel) fixture.Fixture {
	return fixture.Fixture{
		ID:         row.ID,
		RoundID:    row.RoundID,
		HomeTeamID: row.HomeTeamID,
		AwayTeamID: row.AwayTeamID,
		Date:       row.MatchDate,
		EventTime:  row.EventTime,
		League:     row.League,
		Status:     row.Status,
	}
}
