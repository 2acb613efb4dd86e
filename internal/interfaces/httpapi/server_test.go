package httpapi

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/bytedance/sonic"

	"github.com/aymenbt/fantasy-ligue/external/allsports"
	"github.com/aymenbt/fantasy-ligue/internal/infrastructure/repository/memory"
	"github.com/aymenbt/fantasy-ligue/internal/platform/cache"
	"github.com/aymenbt/fantasy-ligue/internal/platform/id"
	"github.com/aymenbt/fantasy-ligue/internal/platform/logging"
	"github.com/aymenbt/fantasy-ligue/internal/usecase"
)

const testJobToken = "job-secret"

type serverHarness struct {
	router    http.Handler
	roundRepo *memory.RoundRepository
	scoreRepo *memory.WeeklyScoreRepository
}

func newServerHarness(t *testing.T) *serverHarness {
	t.Helper()

	logger := logging.NewNop()
	idGen := id.NewRandomGenerator()
	feed := allsports.NewMockClient()

	teamRepo := memory.NewTeamRepository(memory.SeedTeams())
	playerRepo := memory.NewPlayerRepository(memory.SeedPlayers())
	roundRepo := memory.NewRoundRepository(nil)
	fixtureRepo := memory.NewFixtureRepository(nil)
	rosterRepo := memory.NewRosterRepository()
	statRepo := memory.NewPlayerStatRepository()
	scoreRepo := memory.NewWeeklyScoreRepository()

	resolver := usecase.NewPlayerResolver(teamRepo, playerRepo, cache.NewStore(time.Minute), logger)
	scorer := usecase.NewMatchScorer(resolver, logger)

	rosterService := usecase.NewRosterService(rosterRepo, roundRepo, playerRepo, teamRepo, fixtureRepo, statRepo, idGen, logger)
	scoreService := usecase.NewScoreService(rosterService, rosterRepo, roundRepo, statRepo, scoreRepo, idGen, logger)
	roundService := usecase.NewRoundService(roundRepo, idGen, logger)
	fixtureService := usecase.NewFixtureService(feed, teamRepo, roundRepo, fixtureRepo, idGen, logger)
	matchScoringService := usecase.NewMatchScoringService(feed, scorer, roundRepo, fixtureRepo, statRepo, logger)

	handler := NewHandler(rosterService, scoreService, roundService, fixtureService, matchScoringService, logger)
	router := NewRouter(handler, logger, RouterConfig{InternalJobToken: testJobToken})

	return &serverHarness{router: router, roundRepo: roundRepo, scoreRepo: scoreRepo}
}

func (h *serverHarness) do(t *testing.T, method, path, userID, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if userID != "" {
		req.Header.Set(userIDHeader, userID)
	}
	if strings.HasPrefix(path, "/internal/") {
		req.Header.Set(internalJobTokenHeader, testJobToken)
	}
	rec := httptest.NewRecorder()
	h.router.ServeHTTP(rec, req)
	return rec
}

func decodeData[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var envelope struct {
		APIVersion string `json:"apiVersion"`
		Data       T      `json:"data"`
	}
	if err := sonic.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode response: %v\nbody: %s", err, rec.Body.String())
	}
	return envelope.Data
}

func TestRouter_Healthz(t *testing.T) {
	t.Parallel()

	h := newServerHarness(t)
	rec := h.do(t, http.MethodGet, "/healthz", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
}

func TestRouter_RosterRequiresIdentity(t *testing.T) {
	t.Parallel()

	h := newServerHarness(t)
	rec := h.do(t, http.MethodGet, "/v1/roster", "", "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}

func TestRouter_InternalJobsRequireToken(t *testing.T) {
	t.Parallel()

	h := newServerHarness(t)
	req := httptest.NewRequest(http.MethodPost, "/internal/jobs/rounds", nil)
	rec := httptest.NewRecorder()
	h.router.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}

func TestRouter_SaveRoster_RejectsEmptyPicks(t *testing.T) {
	t.Parallel()

	h := newServerHarness(t)
	rec := h.do(t, http.MethodPut, "/v1/roster", "user-1", `{"picks":[]}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400\nbody: %s", rec.Code, rec.Body.String())
	}
}

func TestRouter_Roster_NoRoundYet(t *testing.T) {
	t.Parallel()

	h := newServerHarness(t)
	rec := h.do(t, http.MethodGet, "/v1/roster", "user-1", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404\nbody: %s", rec.Code, rec.Body.String())
	}
}

// TestRouter_FullRoundFlow walks one round end to end over HTTP: open the
// round, submit a roster, ingest the finished match and calculate scores.
func TestRouter_FullRoundFlow(t *testing.T) {
	t.Parallel()

	h := newServerHarness(t)

	rec := h.do(t, http.MethodPost, "/internal/jobs/rounds", "", "")
	if rec.Code != http.StatusCreated {
		t.Fatalf("round job status = %d\nbody: %s", rec.Code, rec.Body.String())
	}

	body := `{"picks":[
		{"playerId":"egs-fwd-01","isCaptain":true},
		{"playerId":"egs-fwd-02","isViceCaptain":true},
		{"playerId":"egs-gk-01","isBench":true},
		{"playerId":"egs-def-01"},
		{"playerId":"biz-mid-02"}
	]}`
	rec = h.do(t, http.MethodPut, "/v1/roster", "user-1", body)
	if rec.Code != http.StatusOK {
		t.Fatalf("save roster status = %d\nbody: %s", rec.Code, rec.Body.String())
	}

	rec = h.do(t, http.MethodPost, "/internal/jobs/ingest", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("ingest job status = %d\nbody: %s", rec.Code, rec.Body.String())
	}

	rec = h.do(t, http.MethodPost, "/internal/jobs/scores", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("scores job status = %d\nbody: %s", rec.Code, rec.Body.String())
	}

	rec = h.do(t, http.MethodGet, "/v1/roster", "user-1", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("get roster status = %d\nbody: %s", rec.Code, rec.Body.String())
	}
	view := decodeData[rosterResponse](t, rec)
	if view.RoundNumber != 1 {
		t.Errorf("round number = %d, want 1", view.RoundNumber)
	}
	if len(view.Entries) != 5 {
		t.Fatalf("entries = %d, want 5", len(view.Entries))
	}

	// The sample fixture kicked off in the past, so scores are visible.
	wantScores := map[string]int{
		"egs-fwd-01": 6,
		"egs-fwd-02": 5,
		"egs-gk-01":  2,
		"egs-def-01": 1,
		"biz-mid-02": -1,
	}
	for _, entry := range view.Entries {
		want, ok := wantScores[entry.PlayerID]
		if !ok {
			t.Errorf("unexpected entry %q", entry.PlayerID)
			continue
		}
		if entry.Score == nil {
			t.Errorf("player %s: score hidden, want %d", entry.PlayerID, want)
			continue
		}
		if *entry.Score != want {
			t.Errorf("player %s: score = %d, want %d", entry.PlayerID, *entry.Score, want)
		}
		if entry.PlayerID == "egs-fwd-01" && entry.AdversaryTeam != "Bizertin" {
			t.Errorf("adversary = %q, want Bizertin", entry.AdversaryTeam)
		}
	}

	// Captain 6x2, vice 5x1.5, bench 0, regulars 1 and -1.
	latest, ok, err := h.roundRepo.GetLatest(t.Context())
	if err != nil || !ok {
		t.Fatalf("latest round: ok=%v err=%v", ok, err)
	}
	score, ok, err := h.scoreRepo.Get(t.Context(), "user-1", latest.ID)
	if err != nil || !ok {
		t.Fatalf("weekly score: ok=%v err=%v", ok, err)
	}
	if score.Score != 19.5 {
		t.Errorf("weekly score = %v, want 19.5", score.Score)
	}

	rec = h.do(t, http.MethodGet, "/v1/roster/history", "user-1", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("history status = %d\nbody: %s", rec.Code, rec.Body.String())
	}
	history := decodeData[[]roundHistoryResponse](t, rec)
	if len(history) != 1 || len(history[0].Entries) != 5 {
		t.Fatalf("history = %+v, want 1 round with 5 entries", history)
	}
}


