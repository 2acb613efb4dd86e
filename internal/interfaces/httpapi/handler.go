package httpapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/aymenbt/fantasy-ligue/internal/platform/logging"
	"github.com/aymenbt/fantasy-ligue/internal/usecase"
)

// Handler exposes the fantasy league use cases over HTTP.
type Handler struct {
	rosterService       *usecase.RosterService
	scoreService        *usecase.ScoreService
	roundService        *usecase.RoundService
	fixtureService      *usecase.FixtureService
	matchScoringService *usecase.MatchScoringService
	logger              *logging.Logger
	validate            *validator.Validate
}

func NewHandler(
	rosterService *usecase.RosterService,
	scoreService *usecase.ScoreService,
	roundService *usecase.RoundService,
	fixtureService *usecase.FixtureService,
	matchScoringService *usecase.MatchScoringService,
	logger *logging.Logger,
) *Handler {
	return &Handler{
		rosterService:       rosterService,
		scoreService:        scoreService,
		roundService:        roundService,
		fixtureService:      fixtureService,
		matchScoringService: matchScoringService,
		logger:              logger,
		validate:            validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, _ *http.Request) {
	writeSuccess(w, http.StatusOK, map[string]string{"status": "ok"})
}
