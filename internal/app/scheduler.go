package app

import (
	"context"
	"time"

	"github.com/go-co-op/gocron/v2"

	"github.com/aymenbt/fantasy-ligue/internal/config"
	"github.com/aymenbt/fantasy-ligue/internal/platform/logging"
	"github.com/aymenbt/fantasy-ligue/internal/usecase"
)

const jobTimeout = 5 * time.Minute

// scheduler runs the recurring jobs that normally arrive via the internal
// job endpoints: fixture sync, match ingestion and score calculation.
type scheduler struct {
	cron   gocron.Scheduler
	logger *logging.Logger
}

func newScheduler(
	cfg config.Config,
	fixtureService *usecase.FixtureService,
	matchScoringService *usecase.MatchScoringService,
	scoreService *usecase.ScoreService,
	logger *logging.Logger,
) (*scheduler, error) {
	cron, err := gocron.NewScheduler()
	if err != nil {
		return nil, err
	}

	s := &scheduler{cron: cron, logger: logger}

	jobs := []struct {
		name     string
		interval time.Duration
		run      func(context.Context) error
	}{
		{"fixture_sync", cfg.JobFixtureSyncInterval, fixtureService.SyncFixtures},
		{"ingest", cfg.JobIngestInterval, func(ctx context.Context) error {
			return matchScoringService.IngestRound(ctx, false)
		}},
		{"score_calc", cfg.JobScoreInterval, scoreService.CalculateAllScores},
	}

	for _, job := range jobs {
		name, run := job.name, job.run
		_, err := cron.NewJob(
			gocron.DurationJob(job.interval),
			gocron.NewTask(func() { s.runJob(name, run) }),
			gocron.WithName(name),
			gocron.WithSingletonMode(gocron.LimitModeReschedule),
		)
		if err != nil {
			return nil, err
		}
	}

	return s, nil
}

func (s *scheduler) runJob(name string, run func(context.Context) error) {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	start := time.Now()
	if err := run(ctx); err != nil {
		s.logger.WarnContext(ctx, "scheduled job failed",
			"job", name,
			"error", err,
			"duration_ms", time.Since(start).Milliseconds(),
		)
		return
	}
	s.logger.InfoContext(ctx, "scheduled job finished",
		"job", name,
		"duration_ms", time.Since(start).Milliseconds(),
	)
}

func (s *scheduler) Start() {
	s.cron.Start()
	s.logger.Info("scheduler started", "jobs", len(s.cron.Jobs()))
}

func (s *scheduler) Stop() error {
	return s.cron.Shutdown()
}
