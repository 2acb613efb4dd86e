package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/aymenbt/fantasy-ligue/internal/domain/team"
	qb "github.com/aymenbt/fantasy-ligue/internal/platform/querybuilder"
)

type TeamRepository struct {
	db *sqlx.DB
}

func NewTeamRepository(db *sqlx.DB) *TeamRepository {
	return &TeamRepository{db: db}
}

var teamColumns = []string{"id", "external_id", "name", "created_at", "updated_at"}

func (r *TeamRepository) GetByID(ctx context.Context, teamID string) (team.Team, bool, error) {
	query, args, err := qb.Select(teamColumns...).
		From("teams").
		Where(qb.Eq("id", teamID)).
		ToSQL()
	if err != nil {
		return team.Team{}, false, fmt.Errorf("build get team query: %w", err)
	}

	var row teamTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return team.Team{}, false, nil
		}
		return team.Team{}, false, fmt.Errorf("get team %s: %w", teamID, err)
	}

	return teamFromRow(row), true, nil
}

func (r *TeamRepository) GetByExternalID(ctx context.Context, externalID int64) (team.Team, bool, error) {
	query, args, err := qb.Select(teamColumns...).
		From("teams").
		Where(qb.Eq("external_id", externalID)).
		ToSQL()
	if err != nil {
		return team.Team{}, false, fmt.Errorf("build get team by external id query: %w", err)
	}

	var row teamTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return team.Team{}, false, nil
		}
		return team.Team{}, false, fmt.Errorf("get team by external id %d: %w", externalID, err)
	}

	return teamFromRow(row), true, nil
}

func teamFromRow(row teamTableModel) team.Team {
	return team.Team{
		ID:         row.ID,
		ExternalID: row.ExternalID,
		Name:       row.Name,
	}
}
