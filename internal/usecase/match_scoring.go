package usecase

import (
	"context"

	"github.com/aymenbt/fantasy-ligue/external/allsports"
	"github.com/aymenbt/fantasy-ligue/internal/domain/player"
	"github.com/aymenbt/fantasy-ligue/internal/platform/logging"
)

const (
	starterAppearancePoints = 2
	subAppearancePoints     = 1
	ownGoalPoints           = -2
	redCardPoints           = -3
	yellowCardPoints        = -1

	goalPointsGoalkeeper = 10
	goalPointsDefender   = 6
	goalPointsMidfielder = 5
	goalPointsForward    = 4
)

const (
	ReasonStarter    = "starter"
	ReasonSubstitute = "substitute"
	ReasonGoal       = "goal"
	ReasonOwnGoal    = "own_goal"
	ReasonRedCard    = "red_card"
	ReasonYellowCard = "yellow_card"
)

// PointEvent is one scored contribution of one player in one match.
type PointEvent struct {
	PlayerID string
	Delta    int
	Reason   string
}

// MatchScore is the full scoring outcome of one match document. Events carry
// per-player point deltas; InMatch holds every player who took part. Only
// in-match players are persisted downstream.
type MatchScore struct {
	Events  []PointEvent
	InMatch map[string]struct{}
}

// MatchScorer folds a match document into point events. It has no storage
// side effects; callers reduce and persist the result.
type MatchScorer struct {
	resolver *PlayerResolver
	logger   *logging.Logger
}

func NewMatchScorer(resolver *PlayerResolver, logger *logging.Logger) *MatchScorer {
	if logger == nil {
		logger = logging.Default()
	}
	return &MatchScorer{resolver: resolver, logger: logger}
}

// ScoreMatch walks one document's lineups, substitutions, goals and cards in
// that order. Appearance points override rather than add: a starter who is
// substituted off ends the match on the substitute value, and an incoming sub
// always lands on the substitute value. Goals and cards accumulate on top.
// Names that resolve to no registered player are skipped.
func (s *MatchScorer) ScoreMatch(ctx context.Context, doc allsports.MatchDocument) (MatchScore, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchScorer.ScoreMatch")
	defer span.End()

	fold := newMatchFold()

	for _, entry := range doc.Lineups.HomeTeam.StartingLineups {
		if err := s.foldStarter(ctx, fold, entry.Player, doc.HomeTeamKey); err != nil {
			return MatchScore{}, err
		}
	}
	for _, entry := range doc.Lineups.AwayTeam.StartingLineups {
		if err := s.foldStarter(ctx, fold, entry.Player, doc.AwayTeamKey); err != nil {
			return MatchScore{}, err
		}
	}

	for _, sub := range doc.Substitutions {
		if !sub.HomeScorer.IsZero() {
			if err := s.foldSubstitution(ctx, fold, sub.HomeScorer, doc.HomeTeamKey); err != nil {
				return MatchScore{}, err
			}
		}
		if !sub.AwayScorer.IsZero() {
			if err := s.foldSubstitution(ctx, fold, sub.AwayScorer, doc.AwayTeamKey); err != nil {
				return MatchScore{}, err
			}
		}
	}

	for _, goal := range doc.Goals {
		if goal.HomeScorer != "" {
			if err := s.foldGoal(ctx, fold, goal.HomeScorer, doc.HomeTeamKey); err != nil {
				return MatchScore{}, err
			}
		}
		if goal.AwayScorer != "" {
			if err := s.foldGoal(ctx, fold, goal.AwayScorer, doc.AwayTeamKey); err != nil {
				return MatchScore{}, err
			}
		}
	}

	for _, card := range doc.Cards {
		if card.HomeFault != "" {
			if err := s.foldCard(ctx, fold, card.HomeFault, doc.HomeTeamKey, card.Card); err != nil {
				return MatchScore{}, err
			}
		}
		if card.AwayFault != "" {
			if err := s.foldCard(ctx, fold, card.AwayFault, doc.AwayTeamKey, card.Card); err != nil {
				return MatchScore{}, err
			}
		}
	}

	return fold.finish(), nil
}

// Reduce sums event deltas per player.
func Reduce(events []PointEvent) map[string]int {
	totals := make(map[string]int, len(events))
	for _, e := range events {
		totals[e.PlayerID] += e.Delta
	}
	return totals
}

func (s *MatchScorer) foldStarter(ctx context.Context, fold *matchFold, name string, teamKey int64) error {
	p, ok, err := s.resolver.Resolve(ctx, name, teamKey)
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}

	fold.setAppearance(p.ID, starterAppearancePoints)
	fold.markInMatch(p.ID)
	return nil
}

func (s *MatchScorer) foldSubstitution(ctx context.Context, fold *matchFold, swap allsports.SubSwap, teamKey int64) error {
	if swap.Out != "" {
		p, ok, err := s.resolver.Resolve(ctx, swap.Out, teamKey)
		if err != nil {
			return err
		}
		// Only a recognized starter drops to the substitute value; a
		// sub-out with no prior appearance stays untouched.
		if ok && fold.appearanceOf(p.ID) == starterAppearancePoints {
			fold.setAppearance(p.ID, subAppearancePoints)
		}
	}

	if swap.In != "" {
		p, ok, err := s.resolver.Resolve(ctx, swap.In, teamKey)
		if err != nil {
			return err
		}
		if ok {
			fold.setAppearance(p.ID, subAppearancePoints)
			fold.markInMatch(p.ID)
		}
	}

	return nil
}

func (s *MatchScorer) foldGoal(ctx context.Context, fold *matchFold, scorer string, teamKey int64) error {
	ownGoal := allsports.IsOwnGoal(scorer)
	name := allsports.StripOwnGoalMarker(scorer)

	// Own goals resolve against the team the feed credits, same as regular
	// goals; the scorer's actual club is not recoverable from the document.
	p, ok, err := s.resolver.Resolve(ctx, name, teamKey)
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}

	if ownGoal {
		fold.addEvent(PointEvent{PlayerID: p.ID, Delta: ownGoalPoints, Reason: ReasonOwnGoal})
	} else {
		fold.addEvent(PointEvent{PlayerID: p.ID, Delta: goalPointsFor(p.Position), Reason: ReasonGoal})
	}
	fold.markInMatch(p.ID)
	return nil
}

func (s *MatchScorer) foldCard(ctx context.Context, fold *matchFold, fault string, teamKey int64, card string) error {
	var delta int
	var reason string
	switch card {
	case allsports.CardRed:
		delta, reason = redCardPoints, ReasonRedCard
	case allsports.CardYellow:
		delta, reason = yellowCardPoints, ReasonYellowCard
	default:
		s.logger.DebugContext(ctx, "unknown card type skipped", "card", card)
		return nil
	}

	p, ok, err := s.resolver.Resolve(ctx, fault, teamKey)
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}

	fold.addEvent(PointEvent{PlayerID: p.ID, Delta: delta, Reason: reason})
	fold.markInMatch(p.ID)
	return nil
}

func goalPointsFor(position player.Position) int {
	switch position {
	case player.PositionGoalkeeper:
		return goalPointsGoalkeeper
	case player.PositionDefender:
		return goalPointsDefender
	case player.PositionMidfielder:
		return goalPointsMidfielder
	default:
		return goalPointsForward
	}
}

// matchFold accumulates appearance overrides and additive events separately;
// finish flattens both into the event list.
type matchFold struct {
	appearance map[string]int
	order      []string
	extra      []PointEvent
	inMatch    map[string]struct{}
}

func newMatchFold() *matchFold {
	return &matchFold{
		appearance: make(map[string]int),
		inMatch:    make(map[string]struct{}),
	}
}

func (f *matchFold) setAppearance(playerID string, points int) {
	if _, seen := f.appearance[playerID]; !seen {
		f.order = append(f.order, playerID)
	}
	f.appearance[playerID] = points
}

func (f *matchFold) appearanceOf(playerID string) int {
	return f.appearance[playerID]
}

func (f *matchFold) addEvent(e PointEvent) {
	f.extra = append(f.extra, e)
}

func (f *matchFold) markInMatch(playerID string) {
	f.inMatch[playerID] = struct{}{}
}

func (f *matchFold) finish() MatchScore {
	events := make([]PointEvent, 0, len(f.order)+len(f.extra))
	for _, playerID := range f.order {
		reason := ReasonSubstitute
		if f.appearance[playerID] == starterAppearancePoints {
			reason = ReasonStarter
		}
		events = append(events, PointEvent{
			PlayerID: playerID,
			Delta:    f.appearance[playerID],
			Reason:   reason,
		})
	}
	events = append(events, f.extra...)

	return MatchScore{Events: events, InMatch: f.inMatch}
}
