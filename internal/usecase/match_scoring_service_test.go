package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aymenbt/fantasy-ligue/external/allsports"
	"github.com/aymenbt/fantasy-ligue/internal/domain/fixture"
	"github.com/aymenbt/fantasy-ligue/internal/domain/round"
	"github.com/aymenbt/fantasy-ligue/internal/infrastructure/repository/memory"
	"github.com/aymenbt/fantasy-ligue/internal/platform/cache"
	"github.com/aymenbt/fantasy-ligue/internal/platform/logging"
)

type failingFeed struct {
	err error
}

func (f failingFeed) FetchMatches(context.Context, string, string) ([]allsports.MatchDocument, error) {
	return nil, f.err
}

func newIngestHarness(t *testing.T, feed MatchFeed, fixtures []fixture.Fixture, rounds ...round.Round) (*MatchScoringService, *memory.PlayerStatRepository) {
	t.Helper()

	teamRepo := memory.NewTeamRepository(memory.SeedTeams())
	playerRepo := memory.NewPlayerRepository(memory.SeedPlayers())
	resolver := NewPlayerResolver(teamRepo, playerRepo, cache.NewStore(time.Minute), logging.NewNop())
	statRepo := memory.NewPlayerStatRepository()

	svc := NewMatchScoringService(
		feed,
		NewMatchScorer(resolver, logging.NewNop()),
		memory.NewRoundRepository(rounds),
		memory.NewFixtureRepository(fixtures),
		statRepo,
		logging.NewNop(),
	)
	return svc, statRepo
}

func sampleRoundFixture() fixture.Fixture {
	return fixture.Fixture{
		ID: "f1", RoundID: "r1",
		HomeTeamID: memory.TeamIDEGSGafsa, AwayTeamID: memory.TeamIDBizertin,
		Date: "2025-04-20", EventTime: "15:30",
	}
}

func TestMatchScoringService_IngestRound(t *testing.T) {
	t.Parallel()

	svc, stats := newIngestHarness(t, allsports.NewMockClient(),
		[]fixture.Fixture{sampleRoundFixture()}, round.Round{ID: "r1", Number: 1})

	if err := svc.IngestRound(t.Context(), false); err != nil {
		t.Fatalf("ingest round failed: %v", err)
	}

	wantStat := func(playerID string, want int) {
		t.Helper()
		stat, ok, err := stats.Get(t.Context(), "r1", playerID)
		if err != nil || !ok {
			t.Fatalf("missing stat for %s: ok=%t err=%v", playerID, ok, err)
		}
		if stat.Score != want {
			t.Fatalf("stat for %s: got=%d want=%d", playerID, stat.Score, want)
		}
	}

	wantStat("egs-fwd-01", 6) // starter plus forward goal
	wantStat("egs-fwd-02", 5) // substitute plus forward goal
	wantStat("egs-mid-01", 1) // starter substituted off
	wantStat("biz-mid-02", -1) // starter with a red card
	wantStat("biz-mid-03", 1) // incoming substitute

	all, err := stats.ListByRound(t.Context(), "r1")
	if err != nil {
		t.Fatalf("list stats: %v", err)
	}
	if len(all) != 16 {
		t.Fatalf("expected 16 in-match players persisted, got %d", len(all))
	}
}

func TestMatchScoringService_IngestRound_AccumulatesWithoutReset(t *testing.T) {
	t.Parallel()

	svc, stats := newIngestHarness(t, allsports.NewMockClient(),
		[]fixture.Fixture{sampleRoundFixture()}, round.Round{ID: "r1", Number: 1})

	if err := svc.IngestRound(t.Context(), false); err != nil {
		t.Fatalf("first ingest failed: %v", err)
	}
	if err := svc.IngestRound(t.Context(), false); err != nil {
		t.Fatalf("second ingest failed: %v", err)
	}

	stat, ok, err := stats.Get(t.Context(), "r1", "egs-fwd-01")
	if err != nil || !ok {
		t.Fatalf("missing stat: ok=%t err=%v", ok, err)
	}
	if stat.Score != 12 {
		t.Fatalf("expected re-ingest to double the total, got %d", stat.Score)
	}
}

func TestMatchScoringService_IngestRound_ResetRecomputes(t *testing.T) {
	t.Parallel()

	svc, stats := newIngestHarness(t, allsports.NewMockClient(),
		[]fixture.Fixture{sampleRoundFixture()}, round.Round{ID: "r1", Number: 1})

	if err := stats.Increment(t.Context(), "r1", "egs-fwd-01", 100); err != nil {
		t.Fatalf("seed stale stat: %v", err)
	}

	if err := svc.IngestRound(t.Context(), true); err != nil {
		t.Fatalf("ingest with reset failed: %v", err)
	}

	stat, ok, err := stats.Get(t.Context(), "r1", "egs-fwd-01")
	if err != nil || !ok {
		t.Fatalf("missing stat: ok=%t err=%v", ok, err)
	}
	if stat.Score != 6 {
		t.Fatalf("expected reset to discard stale total, got %d", stat.Score)
	}
}

func TestMatchScoringService_IngestRound_NoRound(t *testing.T) {
	t.Parallel()

	svc, _ := newIngestHarness(t, allsports.NewMockClient(), nil)
	err := svc.IngestRound(t.Context(), false)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestMatchScoringService_IngestRound_NoFixtures(t *testing.T) {
	t.Parallel()

	svc, stats := newIngestHarness(t, allsports.NewMockClient(), nil, round.Round{ID: "r1", Number: 1})
	if err := svc.IngestRound(t.Context(), false); err != nil {
		t.Fatalf("ingest of empty round failed: %v", err)
	}

	all, err := stats.ListByRound(t.Context(), "r1")
	if err != nil {
		t.Fatalf("list stats: %v", err)
	}
	if len(all) != 0 {
		t.Fatalf("expected no stats for empty round, got %d", len(all))
	}
}

func TestMatchScoringService_IngestRound_FeedDown(t *testing.T) {
	t.Parallel()

	feed := failingFeed{err: errors.New("provider timeout")}
	svc, _ := newIngestHarness(t, feed,
		[]fixture.Fixture{sampleRoundFixture()}, round.Round{ID: "r1", Number: 1})

	err := svc.IngestRound(t.Context(), false)
	if !errors.Is(err, ErrDependencyUnavailable) {
		t.Fatalf("expected ErrDependencyUnavailable, got %v", err)
	}
}


