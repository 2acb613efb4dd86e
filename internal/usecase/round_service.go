package usecase

import (
	"context"
	"fmt"

	"github.com/aymenbt/fantasy-ligue/internal/domain/round"
	"github.com/aymenbt/fantasy-ligue/internal/platform/id"
	"github.com/aymenbt/fantasy-ligue/internal/platform/logging"
)

// RoundService owns the round sequence. Rounds are created only by the
// scheduler or the internal job endpoint; there is no user-facing mutation.
type RoundService struct {
	roundRepo round.Repository
	idGen     id.Generator
	logger    *logging.Logger
}

func NewRoundService(roundRepo round.Repository, idGen id.Generator, logger *logging.Logger) *RoundService {
	if logger == nil {
		logger = logging.Default()
	}
	return &RoundService{
		roundRepo: roundRepo,
		idGen:     idGen,
		logger:    logger,
	}
}

// CreateRound appends the next round: highest existing number plus one, or
// round 1 when none exist yet.
func (s *RoundService) CreateRound(ctx context.Context) (round.Round, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RoundService.CreateRound")
	defer span.End()

	number := 1
	latest, ok, err := s.roundRepo.GetLatest(ctx)
	if err != nil {
		return round.Round{}, fmt.Errorf("get latest round: %w", err)
	}
	if ok {
		number = latest.Number + 1
	}

	roundID, err := s.idGen.NewID()
	if err != nil {
		return round.Round{}, fmt.Errorf("generate round id: %w", err)
	}

	next := round.Round{ID: roundID, Number: number}
	if err := s.roundRepo.Insert(ctx, next); err != nil {
		return round.Round{}, fmt.Errorf("insert round %d: %w", number, err)
	}

	s.logger.InfoContext(ctx, "round created", "round_id", next.ID, "round_number", next.Number)
	return next, nil
}

// Latest returns the highest-numbered round, or ErrNotFound when no round
// has been created yet.
func (s *RoundService) Latest(ctx context.Context) (round.Round, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RoundService.Latest")
	defer span.End()

	latest, ok, err := s.roundRepo.GetLatest(ctx)
	if err != nil {
		return round.Round{}, fmt.Errorf("get latest round: %w", err)
	}
	if !ok {
		return round.Round{}, fmt.Errorf("%w: no round available", ErrNotFound)
	}

	return latest, nil
}
