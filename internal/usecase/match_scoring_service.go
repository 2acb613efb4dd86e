package usecase

import (
	"context"
	"fmt"
	"sort"

	"github.com/sourcegraph/conc/pool"

	"github.com/aymenbt/fantasy-ligue/external/allsports"
	"github.com/aymenbt/fantasy-ligue/internal/domain/fixture"
	"github.com/aymenbt/fantasy-ligue/internal/domain/playerstat"
	"github.com/aymenbt/fantasy-ligue/internal/domain/round"
	"github.com/aymenbt/fantasy-ligue/internal/platform/logging"
)

// MatchFeed is the slice of the feed client match ingestion needs.
type MatchFeed interface {
	FetchMatches(ctx context.Context, from, to string) ([]allsports.MatchDocument, error)
}

const defaultMaxFeedFetchers = 4

// MatchScoringService pulls match-event documents for the current round,
// scores them, and posts per-player deltas into the round's stat rows.
type MatchScoringService struct {
	feed        MatchFeed
	scorer      *MatchScorer
	roundRepo   round.Repository
	fixtureRepo fixture.Repository
	statRepo    playerstat.Repository
	logger      *logging.Logger
	maxFetchers int
}

func NewMatchScoringService(
	feed MatchFeed,
	scorer *MatchScorer,
	roundRepo round.Repository,
	fixtureRepo fixture.Repository,
	statRepo playerstat.Repository,
	logger *logging.Logger,
) *MatchScoringService {
	if logger == nil {
		logger = logging.Default()
	}
	return &MatchScoringService{
		feed:        feed,
		scorer:      scorer,
		roundRepo:   roundRepo,
		fixtureRepo: fixtureRepo,
		statRepo:    statRepo,
		logger:      logger,
		maxFetchers: defaultMaxFeedFetchers,
	}
}

type dateFetchResult struct {
	date string
	docs []allsports.MatchDocument
	err  error
}

// IngestRound fetches the current round's match documents and applies scoring
// deltas. Documents come back per fixture date; dates are fetched concurrently
// and a failed date is logged and skipped so the round's other fixtures still
// post. Re-running without reset adds deltas on top of existing rows; pass
// reset to recompute the round from scratch.
func (s *MatchScoringService) IngestRound(ctx context.Context, reset bool) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchScoringService.IngestRound")
	defer span.End()

	current, ok, err := s.roundRepo.GetLatest(ctx)
	if err != nil {
		return fmt.Errorf("get latest round: %w", err)
	}
	if !ok {
		return fmt.Errorf("%w: no round available", ErrNotFound)
	}

	fixtures, err := s.fixtureRepo.ListByRound(ctx, current.ID)
	if err != nil {
		return fmt.Errorf("list fixtures for round %s: %w", current.ID, err)
	}
	if len(fixtures) == 0 {
		s.logger.InfoContext(ctx, "round has no fixtures, nothing to ingest", "round_id", current.ID)
		return nil
	}

	if reset {
		if err := s.statRepo.ResetRound(ctx, current.ID); err != nil {
			return fmt.Errorf("reset stats for round %s: %w", current.ID, err)
		}
	}

	dates := distinctFixtureDates(fixtures)

	fetchPool := pool.NewWithResults[dateFetchResult]().WithMaxGoroutines(s.maxFetchers)
	for _, date := range dates {
		fetchPool.Go(func() dateFetchResult {
			docs, fetchErr := s.feed.FetchMatches(ctx, date, date)
			return dateFetchResult{date: date, docs: docs, err: fetchErr}
		})
	}
	results := fetchPool.Wait()

	failedDates := 0
	applied := 0
	for _, result := range results {
		if result.err != nil {
			failedDates++
			s.logger.WarnContext(ctx, "feed fetch failed, skipping date",
				"round_id", current.ID, "date", result.date, "error", result.err)
			continue
		}

		for _, doc := range result.docs {
			score, scoreErr := s.scorer.ScoreMatch(ctx, doc)
			if scoreErr != nil {
				s.logger.WarnContext(ctx, "match scoring failed, skipping document",
					"round_id", current.ID, "event_key", doc.EventKey, "error", scoreErr)
				continue
			}

			n, applyErr := s.applyMatchScore(ctx, current.ID, score)
			if applyErr != nil {
				return applyErr
			}
			applied += n
		}
	}

	if failedDates == len(dates) {
		return fmt.Errorf("%w: all %d fixture dates failed to fetch", ErrDependencyUnavailable, len(dates))
	}

	s.logger.InfoContext(ctx, "round ingestion finished",
		"round_id", current.ID, "dates", len(dates), "failed_dates", failedDates, "players_updated", applied)
	return nil
}

// applyMatchScore persists reduced deltas for players who took part in the
// match. Zero-sum players still get a row so a scored match is recorded.
func (s *MatchScoringService) applyMatchScore(ctx context.Context, roundID string, score MatchScore) (int, error) {
	totals := Reduce(score.Events)

	playerIDs := make([]string, 0, len(totals))
	for playerID := range totals {
		if _, inMatch := score.InMatch[playerID]; !inMatch {
			continue
		}
		playerIDs = append(playerIDs, playerID)
	}
	sort.Strings(playerIDs)

	for _, playerID := range playerIDs {
		if err := s.statRepo.Increment(ctx, roundID, playerID, totals[playerID]); err != nil {
			return 0, fmt.Errorf("increment stat for player %s in round %s: %w", playerID, roundID, err)
		}
	}

	return len(playerIDs), nil
}

func distinctFixtureDates(fixtures []fixture.Fixture) []string {
	seen := make(map[string]struct{}, len(fixtures))
	dates := make([]string, 0, len(fixtures))
	for _, f := range fixtures {
		if _, dup := seen[f.Date]; dup {
			continue
		}
		seen[f.Date] = struct{}{}
		dates = append(dates, f.Date)
	}
	sort.Strings(dates)
	return dates
}
