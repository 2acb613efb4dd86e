package usecase

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/aymenbt/fantasy-ligue/internal/domain/player"
	"github.com/aymenbt/fantasy-ligue/internal/domain/team"
	"github.com/aymenbt/fantasy-ligue/internal/platform/cache"
	"github.com/aymenbt/fantasy-ligue/internal/platform/logging"
)

// PlayerResolver maps feed display names onto registered players. The feed
// only carries names and team keys, so resolution goes team-first and then
// case-insensitive exact match within that team. Duplicate names inside one
// team resolve to an arbitrary player; the feed gives nothing to break the
// tie with.
type PlayerResolver struct {
	teamRepo   team.Repository
	playerRepo player.Repository
	store      *cache.Store
	logger     *logging.Logger
}

func NewPlayerResolver(
	teamRepo team.Repository,
	playerRepo player.Repository,
	store *cache.Store,
	logger *logging.Logger,
) *PlayerResolver {
	if logger == nil {
		logger = logging.Default()
	}
	return &PlayerResolver{
		teamRepo:   teamRepo,
		playerRepo: playerRepo,
		store:      store,
		logger:     logger,
	}
}

// Resolve returns the registered player matching displayName within the team
// identified by the feed's team key. A team or player miss is not an error;
// callers skip the event and move on.
func (r *PlayerResolver) Resolve(ctx context.Context, displayName string, feedTeamID int64) (player.Player, bool, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerResolver.Resolve")
	defer span.End()

	name := strings.TrimSpace(displayName)
	if name == "" || feedTeamID == 0 {
		return player.Player{}, false, nil
	}

	t, ok, err := r.teamByExternalID(ctx, feedTeamID)
	if err != nil {
		return player.Player{}, false, err
	}
	if !ok {
		r.logger.DebugContext(ctx, "feed team not registered", "feed_team_id", feedTeamID)
		return player.Player{}, false, nil
	}

	cacheKey := "player:" + t.ID + ":" + strings.ToLower(name)
	if cached, hit := r.cacheGet(ctx, cacheKey); hit {
		if p, isPlayer := cached.(player.Player); isPlayer {
			return p, true, nil
		}
	}

	p, found, err := r.playerRepo.FindByNameAndTeam(ctx, name, t.ID)
	if err != nil {
		return player.Player{}, false, fmt.Errorf("find player %q in team %s: %w", name, t.ID, err)
	}
	if !found {
		r.logger.DebugContext(ctx, "player name not resolved", "name", name, "team_id", t.ID)
		return player.Player{}, false, nil
	}

	r.cacheSet(ctx, cacheKey, p)
	return p, true, nil
}

func (r *PlayerResolver) teamByExternalID(ctx context.Context, externalID int64) (team.Team, bool, error) {
	key := "team:external:" + strconv.FormatInt(externalID, 10)
	if cached, hit := r.cacheGet(ctx, key); hit {
		if t, isTeam := cached.(team.Team); isTeam {
			return t, true, nil
		}
	}

	t, ok, err := r.teamRepo.GetByExternalID(ctx, externalID)
	if err != nil {
		return team.Team{}, false, fmt.Errorf("get team by external id %d: %w", externalID, err)
	}
	if !ok {
		return team.Team{}, false, nil
	}

	r.cacheSet(ctx, key, t)
	return t, true, nil
}

func (r *PlayerResolver) cacheGet(ctx context.Context, key string) (any, bool) {
	if r.store == nil {
		return nil, false
	}
	return r.store.Get(ctx, key)
}

func (r *PlayerResolver) cacheSet(ctx context.Context, key string, value any) {
	if r.store == nil {
		return
	}
	r.store.Set(ctx, key, value)
}
