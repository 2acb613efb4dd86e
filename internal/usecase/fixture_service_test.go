package usecase

import (
	"errors"
	"testing"
	"time"

	"github.com/aymenbt/fantasy-ligue/external/allsports"
	"github.com/aymenbt/fantasy-ligue/internal/domain/round"
	"github.com/aymenbt/fantasy-ligue/internal/infrastructure/repository/memory"
	"github.com/aymenbt/fantasy-ligue/internal/platform/id"
	"github.com/aymenbt/fantasy-ligue/internal/platform/logging"
)

func newFixtureService(t *testing.T, feed MatchFeed, fixtures *memory.FixtureRepository, rounds ...round.Round) *FixtureService {
	t.Helper()

	svc := NewFixtureService(
		feed,
		memory.NewTeamRepository(memory.SeedTeams()),
		memory.NewRoundRepository(rounds),
		fixtures,
		id.NewRandomGenerator(),
		logging.NewNop(),
	)
	svc.now = func() time.Time {
		return time.Date(2025, 4, 18, 9, 0, 0, 0, time.UTC)
	}
	return svc
}

func TestFixtureService_SyncFixtures(t *testing.T) {
	t.Parallel()

	fixtures := memory.NewFixtureRepository(nil)
	svc := newFixtureService(t, allsports.NewMockClient(), fixtures, round.Round{ID: "r1", Number: 1})

	if err := svc.SyncFixtures(t.Context()); err != nil {
		t.Fatalf("sync fixtures failed: %v", err)
	}

	stored, err := fixtures.ListByRound(t.Context(), "r1")
	if err != nil {
		t.Fatalf("list fixtures: %v", err)
	}
	if len(stored) != 1 {
		t.Fatalf("expected 1 imported fixture, got %d", len(stored))
	}
	f := stored[0]
	if f.HomeTeamID != memory.TeamIDEGSGafsa || f.AwayTeamID != memory.TeamIDBizertin {
		t.Fatalf("unexpected fixture teams: %+v", f)
	}
	if f.Date != "2025-04-20" || f.EventTime != "15:30" {
		t.Fatalf("unexpected fixture slot: %+v", f)
	}
}

func TestFixtureService_SyncFixtures_Dedupes(t *testing.T) {
	t.Parallel()

	fixtures := memory.NewFixtureRepository(nil)
	svc := newFixtureService(t, allsports.NewMockClient(), fixtures, round.Round{ID: "r1", Number: 1})

	if err := svc.SyncFixtures(t.Context()); err != nil {
		t.Fatalf("first sync failed: %v", err)
	}
	if err := svc.SyncFixtures(t.Context()); err != nil {
		t.Fatalf("second sync failed: %v", err)
	}

	stored, err := fixtures.ListByRound(t.Context(), "r1")
	if err != nil {
		t.Fatalf("list fixtures: %v", err)
	}
	if len(stored) != 1 {
		t.Fatalf("expected re-sync to be a no-op, got %d fixtures", len(stored))
	}
}

func TestFixtureService_SyncFixtures_SkipsUnknownTeams(t *testing.T) {
	t.Parallel()

	feed := allsports.NewMockClient([]allsports.MatchDocument{
		{
			Date: "2025-04-22", Time: "18:00",
			HomeTeam: "Unknown FC", HomeTeamKey: 111111,
			AwayTeam: "Bizertin", AwayTeamKey: 7623,
		},
	})
	fixtures := memory.NewFixtureRepository(nil)
	svc := newFixtureService(t, feed, fixtures, round.Round{ID: "r1", Number: 1})

	if err := svc.SyncFixtures(t.Context()); err != nil {
		t.Fatalf("sync fixtures failed: %v", err)
	}

	stored, err := fixtures.ListByRound(t.Context(), "r1")
	if err != nil {
		t.Fatalf("list fixtures: %v", err)
	}
	if len(stored) != 0 {
		t.Fatalf("expected fixture with unknown team skipped, got %d", len(stored))
	}
}

func TestFixtureService_SyncFixtures_NoRound(t *testing.T) {
	t.Parallel()

	svc := newFixtureService(t, allsports.NewMockClient(), memory.NewFixtureRepository(nil))
	err := svc.SyncFixtures(t.Context())
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}


