package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/aymenbt/fantasy-ligue/internal/domain/fixture"
	"github.com/aymenbt/fantasy-ligue/internal/domain/round"
	"github.com/aymenbt/fantasy-ligue/internal/domain/team"
	"github.com/aymenbt/fantasy-ligue/internal/platform/id"
	"github.com/aymenbt/fantasy-ligue/internal/platform/logging"
)

const (
	defaultFixtureLookahead = 14 * 24 * time.Hour
	feedDateLayout          = "2006-01-02"
)

// FixtureService imports upcoming fixtures from the feed into the current
// round. The feed has no round concept, so every imported fixture attaches to
// the latest round at sync time.
type FixtureService struct {
	feed        MatchFeed
	teamRepo    team.Repository
	roundRepo   round.Repository
	fixtureRepo fixture.Repository
	idGen       id.Generator
	logger      *logging.Logger
	lookahead   time.Duration
	now         func() time.Time
}

func NewFixtureService(
	feed MatchFeed,
	teamRepo team.Repository,
	roundRepo round.Repository,
	fixtureRepo fixture.Repository,
	idGen id.Generator,
	logger *logging.Logger,
) *FixtureService {
	if logger == nil {
		logger = logging.Default()
	}
	return &FixtureService{
		feed:        feed,
		teamRepo:    teamRepo,
		roundRepo:   roundRepo,
		fixtureRepo: fixtureRepo,
		idGen:       idGen,
		logger:      logger,
		lookahead:   defaultFixtureLookahead,
		now:         time.Now,
	}
}

// SyncFixtures pulls the upcoming fixture window and inserts the ones not
// seen before. A fixture is a duplicate when home, away, date and time all
// match an existing row. Fixtures involving unregistered teams are skipped.
func (s *FixtureService) SyncFixtures(ctx context.Context) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.FixtureService.SyncFixtures")
	defer span.End()

	latest, ok, err := s.roundRepo.GetLatest(ctx)
	if err != nil {
		return fmt.Errorf("get latest round: %w", err)
	}
	if !ok {
		return fmt.Errorf("%w: no round available", ErrNotFound)
	}

	now := s.now().UTC()
	from := now.Format(feedDateLayout)
	to := now.Add(s.lookahead).Format(feedDateLayout)

	docs, err := s.feed.FetchMatches(ctx, from, to)
	if err != nil {
		return fmt.Errorf("fetch fixtures from=%s to=%s: %w", from, to, err)
	}

	inserted := 0
	skipped := 0
	for _, doc := range docs {
		home, homeOK, teamErr := s.teamRepo.GetByExternalID(ctx, doc.HomeTeamKey)
		if teamErr != nil {
			return fmt.Errorf("get home team %d: %w", doc.HomeTeamKey, teamErr)
		}
		away, awayOK, teamErr := s.teamRepo.GetByExternalID(ctx, doc.AwayTeamKey)
		if teamErr != nil {
			return fmt.Errorf("get away team %d: %w", doc.AwayTeamKey, teamErr)
		}
		if !homeOK || !awayOK {
			skipped++
			s.logger.WarnContext(ctx, "fixture references unregistered team",
				"home_team_key", doc.HomeTeamKey, "away_team_key", doc.AwayTeamKey,
				"home", doc.HomeTeam, "away", doc.AwayTeam)
			continue
		}

		exists, existsErr := s.fixtureRepo.Exists(ctx, home.ID, away.ID, doc.Date, doc.Time)
		if existsErr != nil {
			return fmt.Errorf("check fixture existence: %w", existsErr)
		}
		if exists {
			skipped++
			continue
		}

		fixtureID, idErr := s.idGen.NewID()
		if idErr != nil {
			return fmt.Errorf("generate fixture id: %w", idErr)
		}
		f := fixture.Fixture{
			ID:         fixtureID,
			RoundID:    latest.ID,
			HomeTeamID: home.ID,
			AwayTeamID: away.ID,
			Date:       doc.Date,
			EventTime:  doc.Time,
			League:     doc.League,
			Status:     doc.Status,
		}
		if insertErr := s.fixtureRepo.Insert(ctx, f); insertErr != nil {
			return fmt.Errorf("insert fixture %s vs %s on %s: %w", home.ID, away.ID, doc.Date, insertErr)
		}
		inserted++
	}

	s.logger.InfoContext(ctx, "fixture sync finished",
		"round_id", latest.ID, "fetched", len(docs), "inserted", inserted, "skipped", skipped)
	return nil
}
