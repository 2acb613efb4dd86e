package usecase

import (
	"errors"
	"testing"

	"github.com/aymenbt/fantasy-ligue/internal/domain/round"
	"github.com/aymenbt/fantasy-ligue/internal/infrastructure/repository/memory"
	"github.com/aymenbt/fantasy-ligue/internal/platform/id"
	"github.com/aymenbt/fantasy-ligue/internal/platform/logging"
)

type scoreHarness struct {
	rosterSvc *RosterService
	svc       *ScoreService
	stats     *memory.PlayerStatRepository
	scores    *memory.WeeklyScoreRepository
}

func newScoreHarness(t *testing.T, rounds ...round.Round) *scoreHarness {
	t.Helper()

	roundRepo := memory.NewRoundRepository(rounds)
	rosterRepo := memory.NewRosterRepository()
	statRepo := memory.NewPlayerStatRepository()
	scoreRepo := memory.NewWeeklyScoreRepository()
	idGen := id.NewRandomGenerator()

	rosterSvc := NewRosterService(
		rosterRepo,
		roundRepo,
		memory.NewPlayerRepository(memory.SeedPlayers()),
		memory.NewTeamRepository(memory.SeedTeams()),
		memory.NewFixtureRepository(nil),
		statRepo,
		idGen,
		logging.NewNop(),
	)
	svc := NewScoreService(rosterSvc, rosterRepo, roundRepo, statRepo, scoreRepo, idGen, logging.NewNop())

	return &scoreHarness{rosterSvc: rosterSvc, svc: svc, stats: statRepo, scores: scoreRepo}
}

func TestScoreService_CalculateScore_Multipliers(t *testing.T) {
	t.Parallel()

	h := newScoreHarness(t, round.Round{ID: "r1", Number: 1})
	picks := []RosterPick{
		{PlayerID: "egs-gk-01"},                       // regular x1
		{PlayerID: "egs-def-01", IsCaptain: true},     // x2
		{PlayerID: "egs-fwd-01", IsViceCaptain: true}, // x1.5
		{PlayerID: "biz-mid-02", IsBench: true},       // x0
		{PlayerID: "biz-gk-01"},                       // no stat row
	}
	if err := h.rosterSvc.SaveRoster(t.Context(), "user-1", picks); err != nil {
		t.Fatalf("save roster failed: %v", err)
	}

	seedStat := func(playerID string, score int) {
		if err := h.stats.Increment(t.Context(), "r1", playerID, score); err != nil {
			t.Fatalf("increment stat: %v", err)
		}
	}
	seedStat("egs-gk-01", 2)
	seedStat("egs-def-01", 6)
	seedStat("egs-fwd-01", 5)
	seedStat("biz-mid-02", 10)

	score, err := h.svc.CalculateScore(t.Context(), "user-1")
	if err != nil {
		t.Fatalf("calculate score failed: %v", err)
	}

	// 2*1 + 6*2 + 5*1.5 + 10*0 = 21.5; the missing stat contributes nothing.
	if score.Score != 21.5 {
		t.Fatalf("unexpected total: got=%v want=21.5", score.Score)
	}
	if score.RoundID != "r1" || score.UserID != "user-1" {
		t.Fatalf("unexpected score identity: %+v", score)
	}

	stored, ok, err := h.scores.Get(t.Context(), "user-1", "r1")
	if err != nil || !ok {
		t.Fatalf("expected stored weekly score, ok=%t err=%v", ok, err)
	}
	if stored.Score != score.Score {
		t.Fatalf("stored score mismatch: %v != %v", stored.Score, score.Score)
	}
}

func TestScoreService_CalculateScore_CaptainWinsOverVice(t *testing.T) {
	t.Parallel()

	h := newScoreHarness(t, round.Round{ID: "r1", Number: 1})
	picks := []RosterPick{
		{PlayerID: "egs-fwd-01", IsCaptain: true, IsViceCaptain: true},
	}
	if err := h.rosterSvc.SaveRoster(t.Context(), "user-1", picks); err != nil {
		t.Fatalf("save roster failed: %v", err)
	}
	if err := h.stats.Increment(t.Context(), "r1", "egs-fwd-01", 4); err != nil {
		t.Fatalf("increment stat: %v", err)
	}

	score, err := h.svc.CalculateScore(t.Context(), "user-1")
	if err != nil {
		t.Fatalf("calculate score failed: %v", err)
	}
	if score.Score != 8 {
		t.Fatalf("expected captain multiplier to win: got=%v want=8", score.Score)
	}
}

func TestScoreService_CalculateScore_NoTeam(t *testing.T) {
	t.Parallel()

	h := newScoreHarness(t, round.Round{ID: "r1", Number: 1})
	_, err := h.svc.CalculateScore(t.Context(), "user-ghost")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestScoreService_CalculateScore_NoRound(t *testing.T) {
	t.Parallel()

	h := newScoreHarness(t)
	_, err := h.svc.CalculateScore(t.Context(), "user-1")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestScoreService_CalculateScore_Idempotent(t *testing.T) {
	t.Parallel()

	h := newScoreHarness(t, round.Round{ID: "r1", Number: 1})
	if err := h.rosterSvc.SaveRoster(t.Context(), "user-1", []RosterPick{{PlayerID: "egs-fwd-01"}}); err != nil {
		t.Fatalf("save roster failed: %v", err)
	}
	if err := h.stats.Increment(t.Context(), "r1", "egs-fwd-01", 6); err != nil {
		t.Fatalf("increment stat: %v", err)
	}

	first, err := h.svc.CalculateScore(t.Context(), "user-1")
	if err != nil {
		t.Fatalf("first calculation failed: %v", err)
	}
	second, err := h.svc.CalculateScore(t.Context(), "user-1")
	if err != nil {
		t.Fatalf("second calculation failed: %v", err)
	}

	if first.Score != second.Score {
		t.Fatalf("recalculation changed the total: %v != %v", first.Score, second.Score)
	}
	if first.ID != second.ID {
		t.Fatalf("recalculation replaced the row id: %s != %s", first.ID, second.ID)
	}
}

func TestScoreService_CalculateAllScores(t *testing.T) {
	t.Parallel()

	h := newScoreHarness(t, round.Round{ID: "r1", Number: 1})
	if err := h.rosterSvc.SaveRoster(t.Context(), "user-1", []RosterPick{{PlayerID: "egs-fwd-01"}}); err != nil {
		t.Fatalf("save roster for user-1: %v", err)
	}
	if err := h.rosterSvc.SaveRoster(t.Context(), "user-2", []RosterPick{{PlayerID: "biz-gk-01", IsCaptain: true}}); err != nil {
		t.Fatalf("save roster for user-2: %v", err)
	}
	if err := h.stats.Increment(t.Context(), "r1", "egs-fwd-01", 4); err != nil {
		t.Fatalf("increment stat: %v", err)
	}
	if err := h.stats.Increment(t.Context(), "r1", "biz-gk-01", 2); err != nil {
		t.Fatalf("increment stat: %v", err)
	}

	if err := h.svc.CalculateAllScores(t.Context()); err != nil {
		t.Fatalf("calculate all scores failed: %v", err)
	}

	s1, ok, err := h.scores.Get(t.Context(), "user-1", "r1")
	if err != nil || !ok || s1.Score != 4 {
		t.Fatalf("unexpected user-1 score: ok=%t err=%v score=%v", ok, err, s1.Score)
	}
	s2, ok, err := h.scores.Get(t.Context(), "user-2", "r1")
	if err != nil || !ok || s2.Score != 4 {
		t.Fatalf("unexpected user-2 score: ok=%t err=%v score=%v", ok, err, s2.Score)
	}
}


