package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/aymenbt/fantasy-ligue/external/allsports"
	"github.com/aymenbt/fantasy-ligue/internal/config"
	"github.com/aymenbt/fantasy-ligue/internal/domain/fixture"
	"github.com/aymenbt/fantasy-ligue/internal/domain/player"
	"github.com/aymenbt/fantasy-ligue/internal/domain/playerstat"
	"github.com/aymenbt/fantasy-ligue/internal/domain/roster"
	"github.com/aymenbt/fantasy-ligue/internal/domain/round"
	"github.com/aymenbt/fantasy-ligue/internal/domain/team"
	"github.com/aymenbt/fantasy-ligue/internal/domain/weeklyscore"
	"github.com/aymenbt/fantasy-ligue/internal/infrastructure/repository/memory"
	"github.com/aymenbt/fantasy-ligue/internal/infrastructure/repository/postgres"
	"github.com/aymenbt/fantasy-ligue/internal/interfaces/httpapi"
	"github.com/aymenbt/fantasy-ligue/internal/platform/cache"
	idgen "github.com/aymenbt/fantasy-ligue/internal/platform/id"
	"github.com/aymenbt/fantasy-ligue/internal/platform/logging"
	"github.com/aymenbt/fantasy-ligue/internal/platform/resilience"
	"github.com/aymenbt/fantasy-ligue/internal/usecase"
)

// App bundles the HTTP server, the background scheduler and the resources
// they share.
type App struct {
	Server    *http.Server
	scheduler *scheduler
	db        *sqlx.DB
	logger    *logging.Logger
}

type repositories struct {
	team        team.Repository
	player      player.Repository
	round       round.Repository
	fixture     fixture.Repository
	roster      roster.Repository
	playerStat  playerstat.Repository
	weeklyScore weeklyscore.Repository
}

// New wires the full service. With DB_URL empty it runs on seeded in-memory
// repositories, and with the feed disabled it serves canned match data, so a
// bare `go run ./cmd/api` gives a working dev instance.
func New(ctx context.Context, cfg config.Config, logger *logging.Logger) (*App, error) {
	if logger == nil {
		logger = logging.Default()
	}

	idGen := idgen.NewRandomGenerator()

	var (
		repos repositories
		db    *sqlx.DB
	)
	if cfg.DBURL == "" {
		logger.Info("db url empty, using in-memory repositories")
		repos = repositories{
			team:        memory.NewTeamRepository(memory.SeedTeams()),
			player:      memory.NewPlayerRepository(memory.SeedPlayers()),
			round:       memory.NewRoundRepository(nil),
			fixture:     memory.NewFixtureRepository(nil),
			roster:      memory.NewRosterRepository(),
			playerStat:  memory.NewPlayerStatRepository(),
			weeklyScore: memory.NewWeeklyScoreRepository(),
		}
	} else {
		var err error
		db, err = connectDB(ctx, cfg)
		if err != nil {
			return nil, err
		}
		repos = repositories{
			team:        postgres.NewTeamRepository(db),
			player:      postgres.NewPlayerRepository(db),
			round:       postgres.NewRoundRepository(db),
			fixture:     postgres.NewFixtureRepository(db),
			roster:      postgres.NewRosterRepository(db),
			playerStat:  postgres.NewPlayerStatRepository(db, idGen),
			weeklyScore: postgres.NewWeeklyScoreRepository(db),
		}
		logger.Info("postgres connected", "db", dbNameFromURL(cfg.DBURL))
	}

	var feed usecase.MatchFeed
	if cfg.AllSportsEnabled {
		feed = allsports.NewClient(allsports.ClientConfig{
			BaseURL:    cfg.AllSportsBaseURL,
			Token:      cfg.AllSportsToken,
			Timeout:    cfg.AllSportsTimeout,
			MaxRetries: cfg.AllSportsMaxRetries,
			Logger:     logger,
			CircuitBreaker: resilience.CircuitBreakerConfig{
				Enabled:          cfg.AllSportsCircuitEnabled,
				FailureThreshold: cfg.AllSportsCircuitFailureCount,
				OpenTimeout:      cfg.AllSportsCircuitOpenTimeout,
				HalfOpenMaxReq:   cfg.AllSportsCircuitHalfOpenMaxReq,
			},
		})
	} else {
		logger.Info("match feed disabled, using mock client")
		feed = allsports.NewMockClient()
	}

	resolver := usecase.NewPlayerResolver(repos.team, repos.player, cache.NewStore(cfg.CacheTTL), logger)
	scorer := usecase.NewMatchScorer(resolver, logger)

	rosterService := usecase.NewRosterService(repos.roster, repos.round, repos.player, repos.team, repos.fixture, repos.playerStat, idGen, logger)
	scoreService := usecase.NewScoreService(rosterService, repos.roster, repos.round, repos.playerStat, repos.weeklyScore, idGen, logger)
	roundService := usecase.NewRoundService(repos.round, idGen, logger)
	fixtureService := usecase.NewFixtureService(feed, repos.team, repos.round, repos.fixture, idGen, logger)
	matchScoringService := usecase.NewMatchScoringService(feed, scorer, repos.round, repos.fixture, repos.playerStat, logger)

	handler := httpapi.NewHandler(rosterService, scoreService, roundService, fixtureService, matchScoringService, logger)
	router := httpapi.NewRouter(handler, logger, httpapi.RouterConfig{
		InternalJobToken: cfg.InternalJobToken,
		AllowedOrigins:   cfg.CORSAllowedOrigins,
	})

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}
	if server.Addr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	var sched *scheduler
	if cfg.SchedulerEnabled {
		var err error
		sched, err = newScheduler(cfg, fixtureService, matchScoringService, scoreService, logger)
		if err != nil {
			return nil, fmt.Errorf("build scheduler: %w", err)
		}
	} else {
		logger.Info("scheduler disabled")
	}

	return &App{
		Server:    server,
		scheduler: sched,
		db:        db,
		logger:    logger,
	}, nil
}

// Start launches the HTTP listener and the scheduler. It blocks until the
// server stops; a non-nil error means the listener failed.
func (a *App) Start() error {
	if a.scheduler != nil {
		a.scheduler.Start()
	}

	a.logger.Info("http server starting", "addr", a.Server.Addr)
	if err := a.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops the scheduler, drains in-flight HTTP requests and closes
// the database pool.
func (a *App) Shutdown(ctx context.Context) error {
	var errs []error

	if a.scheduler != nil {
		if err := a.scheduler.Stop(); err != nil {
			errs = append(errs, fmt.Errorf("stop scheduler: %w", err))
		}
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := a.Server.Shutdown(shutdownCtx); err != nil {
		errs = append(errs, fmt.Errorf("shutdown http server: %w", err))
	}

	if a.db != nil {
		if err := a.db.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close db: %w", err))
		}
	}

	return errors.Join(errs...)
}
