package httpapi

import (
	"net/http"
)

// RunRoundJob opens the next round and pulls its upcoming fixtures from the
// match data provider.
func (h *Handler) RunRoundJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunRoundJob")
	defer span.End()

	created, err := h.roundService.CreateRound(ctx)
	if err != nil {
		writeMappedError(w, err)
		return
	}
	if err := h.fixtureService.SyncFixtures(ctx); err != nil {
		writeMappedError(w, err)
		return
	}
	writeSuccess(w, http.StatusCreated, map[string]any{
		"roundId":     created.ID,
		"roundNumber": created.Number,
	})
}

// RunIngestJob fetches match results for the latest round and updates
// per-player round stats. Pass ?reset=1 to recompute the round from scratch.
func (h *Handler) RunIngestJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunIngestJob")
	defer span.End()

	reset := r.URL.Query().Get("reset") == "1"
	if err := h.matchScoringService.IngestRound(ctx, reset); err != nil {
		writeMappedError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, map[string]any{
		"status": "ingested",
		"reset":  reset,
	})
}

// RunScoresJob recalculates the weekly score for every user with a roster.
func (h *Handler) RunScoresJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunScoresJob")
	defer span.End()

	if err := h.scoreService.CalculateAllScores(ctx); err != nil {
		writeMappedError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, map[string]string{"status": "calculated"})
}
