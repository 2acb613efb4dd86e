package usecase

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/panjf2000/ants/v2"

	"github.com/aymenbt/fantasy-ligue/internal/domain/playerstat"
	"github.com/aymenbt/fantasy-ligue/internal/domain/roster"
	"github.com/aymenbt/fantasy-ligue/internal/domain/round"
	"github.com/aymenbt/fantasy-ligue/internal/domain/weeklyscore"
	"github.com/aymenbt/fantasy-ligue/internal/platform/id"
	"github.com/aymenbt/fantasy-ligue/internal/platform/logging"
)

const (
	captainMultiplier     = 2.0
	viceCaptainMultiplier = 1.5
	benchMultiplier       = 0.0

	defaultScoreWorkers = 8
)

// ScoreService turns raw per-player round stats into each user's weekly
// total. Totals are recomputed from scratch and fully overwritten, so
// recalculation after a stat correction is safe.
type ScoreService struct {
	rosterService *RosterService
	rosterRepo    roster.Repository
	roundRepo     round.Repository
	statRepo      playerstat.Repository
	scoreRepo     weeklyscore.Repository
	idGen         id.Generator
	logger        *logging.Logger
	maxWorkers    int
}

func NewScoreService(
	rosterService *RosterService,
	rosterRepo roster.Repository,
	roundRepo round.Repository,
	statRepo playerstat.Repository,
	scoreRepo weeklyscore.Repository,
	idGen id.Generator,
	logger *logging.Logger,
) *ScoreService {
	if logger == nil {
		logger = logging.Default()
	}
	return &ScoreService{
		rosterService: rosterService,
		rosterRepo:    rosterRepo,
		roundRepo:     roundRepo,
		statRepo:      statRepo,
		scoreRepo:     scoreRepo,
		idGen:         idGen,
		logger:        logger,
		maxWorkers:    defaultScoreWorkers,
	}
}

// CalculateScore computes and stores the user's total for the current round.
// Each roster player contributes their round stat times the role multiplier;
// players without a stat row contribute nothing.
func (s *ScoreService) CalculateScore(ctx context.Context, userID string) (weeklyscore.WeeklyScore, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScoreService.CalculateScore")
	defer span.End()

	latest, ok, err := s.roundRepo.GetLatest(ctx)
	if err != nil {
		return weeklyscore.WeeklyScore{}, fmt.Errorf("get latest round: %w", err)
	}
	if !ok {
		return weeklyscore.WeeklyScore{}, fmt.Errorf("%w: no round available", ErrNotFound)
	}

	entries, err := s.rosterService.ResolveRoster(ctx, userID, latest)
	if err != nil {
		return weeklyscore.WeeklyScore{}, err
	}
	if len(entries) == 0 {
		return weeklyscore.WeeklyScore{}, fmt.Errorf("%w: no fantasy team found", ErrNotFound)
	}

	stats, err := s.statRepo.ListByRound(ctx, latest.ID)
	if err != nil {
		return weeklyscore.WeeklyScore{}, fmt.Errorf("list stats for round %s: %w", latest.ID, err)
	}
	scoreByPlayer := make(map[string]int, len(stats))
	for _, stat := range stats {
		scoreByPlayer[stat.PlayerID] = stat.Score
	}

	total := 0.0
	for _, entry := range entries {
		raw, hasStat := scoreByPlayer[entry.Player.ID]
		if !hasStat {
			continue
		}
		total += float64(raw) * roleMultiplier(entry.Slot)
	}

	score := weeklyscore.WeeklyScore{
		UserID:  userID,
		RoundID: latest.ID,
		Score:   total,
	}
	if existing, found, getErr := s.scoreRepo.Get(ctx, userID, latest.ID); getErr != nil {
		return weeklyscore.WeeklyScore{}, fmt.Errorf("get weekly score: %w", getErr)
	} else if found {
		score.ID = existing.ID
	} else {
		scoreID, idErr := s.idGen.NewID()
		if idErr != nil {
			return weeklyscore.WeeklyScore{}, fmt.Errorf("generate weekly score id: %w", idErr)
		}
		score.ID = scoreID
	}

	if err := s.scoreRepo.Upsert(ctx, score); err != nil {
		return weeklyscore.WeeklyScore{}, fmt.Errorf("upsert weekly score for user %s: %w", userID, err)
	}

	return score, nil
}

// CalculateAllScores recomputes the current round's total for every user who
// ever submitted a weekly team. Per-user failures are logged and counted but
// do not stop the batch.
func (s *ScoreService) CalculateAllScores(ctx context.Context) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScoreService.CalculateAllScores")
	defer span.End()

	userIDs, err := s.rosterRepo.ListUserIDs(ctx)
	if err != nil {
		return fmt.Errorf("list roster user ids: %w", err)
	}
	if len(userIDs) == 0 {
		return nil
	}

	workers := min(s.maxWorkers, len(userIDs))
	p, err := ants.NewPool(workers)
	if err != nil {
		return fmt.Errorf("create score worker pool: %w", err)
	}
	defer p.Release()

	var wg sync.WaitGroup
	var failed atomic.Int64
	for _, userID := range userIDs {
		wg.Add(1)
		submitErr := p.Submit(func() {
			defer wg.Done()
			if _, calcErr := s.CalculateScore(ctx, userID); calcErr != nil {
				failed.Add(1)
				s.logger.WarnContext(ctx, "score calculation failed for user",
					"user_id", userID, "error", calcErr)
			}
		})
		if submitErr != nil {
			wg.Done()
			failed.Add(1)
			s.logger.WarnContext(ctx, "score task submission failed",
				"user_id", userID, "error", submitErr)
		}
	}
	wg.Wait()

	s.logger.InfoContext(ctx, "score recalculation finished",
		"users", len(userIDs), "failed", failed.Load())
	return nil
}

// roleMultiplier applies captain before vice-captain so conflicting flags
// resolve in the captain's favor.
func roleMultiplier(slot roster.Slot) float64 {
	switch {
	case slot.IsCaptain:
		return captainMultiplier
	case slot.IsViceCaptain:
		return viceCaptainMultiplier
	case slot.IsBench:
		return benchMultiplier
	default:
		return 1.0
	}
}
