package httpapi

import (
	"errors"
	"net/http"

	"github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"

	"github.com/aymenbt/fantasy-ligue/internal/usecase"
)

type rosterEntryResponse struct {
	PlayerID      string `json:"playerId"`
	PlayerName    string `json:"playerName"`
	Position      string `json:"position"`
	ImageURL      string `json:"imageUrl,omitempty"`
	IsCaptain     bool   `json:"isCaptain"`
	IsViceCaptain bool   `json:"isViceCaptain"`
	IsBench       bool   `json:"isBench"`
	AdversaryTeam string `json:"adversaryTeam,omitempty"`
	FixtureDate   string `json:"fixtureDate,omitempty"`
	FixtureTime   string `json:"fixtureTime,omitempty"`
	Score         *int   `json:"score,omitempty"`
}

type rosterResponse struct {
	RoundID     string                `json:"roundId"`
	RoundNumber int                   `json:"roundNumber"`
	Entries     []rosterEntryResponse `json:"entries"`
}

type saveRosterRequest struct {
	Picks []usecase.RosterPick `json:"picks" validate:"required,min=1,dive"`
}

type historyEntryResponse struct {
	PlayerID      string `json:"playerId"`
	PlayerName    string `json:"playerName"`
	Position      string `json:"position"`
	IsCaptain     bool   `json:"isCaptain"`
	IsViceCaptain bool   `json:"isViceCaptain"`
	IsBench       bool   `json:"isBench"`
	Score         int    `json:"score"`
}

type roundHistoryResponse struct {
	RoundID     string                 `json:"roundId"`
	RoundNumber int                    `json:"roundNumber"`
	Entries     []historyEntryResponse `json:"entries"`
}

// GetRoster returns the caller's roster for the latest round, with per-player
// scores withheld until each fixture has kicked off.
func (h *Handler) GetRoster(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetRoster")
	defer span.End()

	userID, ok := userIDFromContext(ctx)
	if !ok {
		writeMappedError(w, usecase.ErrUnauthorized)
		return
	}

	view, err := h.rosterService.GetRosterView(ctx, userID)
	if err != nil {
		writeMappedError(w, err)
		return
	}

	resp := rosterResponse{
		RoundID:     view.RoundID,
		RoundNumber: view.RoundNumber,
		Entries:     make([]rosterEntryResponse, 0, len(view.Entries)),
	}
	for _, entry := range view.Entries {
		item := rosterEntryResponse{
			PlayerID:      entry.Player.ID,
			PlayerName:    entry.Player.Name,
			Position:      string(entry.Player.Position),
			ImageURL:      entry.Player.ImageURL,
			IsCaptain:     entry.IsCaptain,
			IsViceCaptain: entry.IsViceCaptain,
			IsBench:       entry.IsBench,
			AdversaryTeam: entry.AdversaryTeam,
			FixtureDate:   entry.FixtureDate,
			FixtureTime:   entry.FixtureTime,
		}
		if entry.ScoreVisible {
			score := entry.Score
			item.Score = &score
		}
		resp.Entries = append(resp.Entries, item)
	}
	writeSuccess(w, http.StatusOK, resp)
}

// SaveRoster replaces the caller's roster for the latest round.
func (h *Handler) SaveRoster(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SaveRoster")
	defer span.End()

	userID, ok := userIDFromContext(ctx)
	if !ok {
		writeMappedError(w, usecase.ErrUnauthorized)
		return
	}

	var req saveRosterRequest
	if err := sonic.ConfigDefault.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_ARGUMENT", "invalidInput", "request body is not valid JSON")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		var verrs validator.ValidationErrors
		message := "request body failed validation"
		if errors.As(err, &verrs) && len(verrs) > 0 {
			message = "invalid field: " + verrs[0].Namespace()
		}
		writeError(w, http.StatusBadRequest, "INVALID_ARGUMENT", "invalidInput", message)
		return
	}

	if err := h.rosterService.SaveRoster(ctx, userID, req.Picks); err != nil {
		writeMappedError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, map[string]string{"status": "saved"})
}

// GetRosterHistory returns the caller's effective roster and per-player
// scores for every completed round.
func (h *Handler) GetRosterHistory(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetRosterHistory")
	defer span.End()

	userID, ok := userIDFromContext(ctx)
	if !ok {
		writeMappedError(w, usecase.ErrUnauthorized)
		return
	}

	history, err := h.rosterService.ListRoundHistory(ctx, userID)
	if err != nil {
		writeMappedError(w, err)
		return
	}

	resp := make([]roundHistoryResponse, 0, len(history))
	for _, rh := range history {
		item := roundHistoryResponse{
			RoundID:     rh.Round.ID,
			RoundNumber: rh.Round.Number,
			Entries:     make([]historyEntryResponse, 0, len(rh.Entries)),
		}
		for _, entry := range rh.Entries {
			item.Entries = append(item.Entries, historyEntryResponse{
				PlayerID:      entry.Player.ID,
				PlayerName:    entry.Player.Name,
				Position:      string(entry.Player.Position),
				IsCaptain:     entry.IsCaptain,
				IsViceCaptain: entry.IsViceCaptain,
				IsBench:       entry.IsBench,
				Score:         entry.Score,
			})
		}
		resp = append(resp, item)
	}
	writeSuccess(w, http.StatusOK, resp)
}
