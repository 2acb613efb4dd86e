package usecase

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/aymenbt/fantasy-ligue/internal/domain/fixture"
	"github.com/aymenbt/fantasy-ligue/internal/domain/player"
	"github.com/aymenbt/fantasy-ligue/internal/domain/playerstat"
	"github.com/aymenbt/fantasy-ligue/internal/domain/roster"
	"github.com/aymenbt/fantasy-ligue/internal/domain/round"
	"github.com/aymenbt/fantasy-ligue/internal/domain/team"
	"github.com/aymenbt/fantasy-ligue/internal/platform/id"
	"github.com/aymenbt/fantasy-ligue/internal/platform/logging"
)

const defaultTransferCount = 2

// RosterService manages weekly team submissions and their carry-forward
// resolution. A user who skips a round keeps their most recent earlier
// submission; resolution finds the weekly team with the greatest round number
// not exceeding the target.
type RosterService struct {
	rosterRepo  roster.Repository
	roundRepo   round.Repository
	playerRepo  player.Repository
	teamRepo    team.Repository
	fixtureRepo fixture.Repository
	statRepo    playerstat.Repository
	idGen       id.Generator
	logger      *logging.Logger
	now         func() time.Time
}

func NewRosterService(
	rosterRepo roster.Repository,
	roundRepo round.Repository,
	playerRepo player.Repository,
	teamRepo team.Repository,
	fixtureRepo fixture.Repository,
	statRepo playerstat.Repository,
	idGen id.Generator,
	logger *logging.Logger,
) *RosterService {
	if logger == nil {
		logger = logging.Default()
	}
	return &RosterService{
		rosterRepo:  rosterRepo,
		roundRepo:   roundRepo,
		playerRepo:  playerRepo,
		teamRepo:    teamRepo,
		fixtureRepo: fixtureRepo,
		statRepo:    statRepo,
		idGen:       idGen,
		logger:      logger,
		now:         time.Now,
	}
}

// RosterEntry is one resolved roster slot joined with its player record.
type RosterEntry struct {
	Slot   roster.Slot
	Player player.Player
}

// RosterPick is one player selection in a roster submission.
type RosterPick struct {
	PlayerID      string `json:"playerId" validate:"required"`
	IsCaptain     bool   `json:"isCaptain"`
	IsViceCaptain bool   `json:"isViceCaptain"`
	IsBench       bool   `json:"isBench"`
}

// RosterViewEntry is a display-enriched roster slot. Score is withheld until
// the player's fixture has kicked off.
type RosterViewEntry struct {
	Player        player.Player
	IsCaptain     bool
	IsViceCaptain bool
	IsBench       bool
	AdversaryTeam string
	FixtureDate   string
	FixtureTime   string
	Score         int
	ScoreVisible  bool
}

type RosterView struct {
	RoundID     string
	RoundNumber int
	Entries     []RosterViewEntry
}

// HistoryEntry is one player's outcome in one past round.
type HistoryEntry struct {
	Player        player.Player
	IsCaptain     bool
	IsViceCaptain bool
	IsBench       bool
	Score         int
}

type RoundHistory struct {
	Round   round.Round
	Entries []HistoryEntry
}

// weeklyTeamRef pairs a submission with its round number for ordering.
type weeklyTeamRef struct {
	team   roster.WeeklyTeam
	number int
}

// ResolveRoster returns the roster in effect for the target round: the user's
// submission with the greatest round number not greater than the target. An
// empty slice means the user had not submitted any team by that round.
func (s *RosterService) ResolveRoster(ctx context.Context, userID string, target round.Round) ([]RosterEntry, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RosterService.ResolveRoster")
	defer span.End()

	refs, err := s.sortedWeeklyTeams(ctx, userID)
	if err != nil {
		return nil, err
	}

	ref, ok := effectiveWeeklyTeam(refs, target.Number)
	if !ok {
		return nil, nil
	}

	return s.entriesFor(ctx, ref.team)
}

// SaveRoster records the user's picks against the latest round. A re-save
// within the same round replaces the existing slots; a first save in a new
// round creates a fresh submission carrying the default transfer allowance.
func (s *RosterService) SaveRoster(ctx context.Context, userID string, picks []RosterPick) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.RosterService.SaveRoster")
	defer span.End()

	if userID == "" {
		return fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}
	picks = collapsePicks(picks)
	if len(picks) == 0 {
		return fmt.Errorf("%w: at least one player is required", ErrInvalidInput)
	}

	playerIDs := make([]string, 0, len(picks))
	for _, pick := range picks {
		playerIDs = append(playerIDs, pick.PlayerID)
	}
	players, err := s.playerRepo.GetByIDs(ctx, playerIDs)
	if err != nil {
		return fmt.Errorf("load picked players: %w", err)
	}
	if len(players) != len(picks) {
		return fmt.Errorf("%w: one or more player ids are unknown", ErrInvalidInput)
	}

	latest, ok, err := s.roundRepo.GetLatest(ctx)
	if err != nil {
		return fmt.Errorf("get latest round: %w", err)
	}
	if !ok {
		return fmt.Errorf("%w: no round available", ErrNotFound)
	}

	teams, err := s.rosterRepo.ListWeeklyTeamsByUser(ctx, userID)
	if err != nil {
		return fmt.Errorf("list weekly teams for user %s: %w", userID, err)
	}

	var target roster.WeeklyTeam
	found := false
	for _, wt := range teams {
		if wt.RoundID == latest.ID {
			target = wt
			found = true
			break
		}
	}

	if !found {
		teamID, idErr := s.idGen.NewID()
		if idErr != nil {
			return fmt.Errorf("generate weekly team id: %w", idErr)
		}
		target = roster.WeeklyTeam{
			ID:            teamID,
			UserID:        userID,
			RoundID:       latest.ID,
			TransferCount: defaultTransferCount,
		}
		if createErr := s.rosterRepo.CreateWeeklyTeam(ctx, target); createErr != nil {
			return fmt.Errorf("create weekly team: %w", createErr)
		}
	}

	slots := make([]roster.Slot, 0, len(picks))
	for _, pick := range picks {
		slotID, idErr := s.idGen.NewID()
		if idErr != nil {
			return fmt.Errorf("generate slot id: %w", idErr)
		}
		slots = append(slots, roster.Slot{
			ID:            slotID,
			WeeklyTeamID:  target.ID,
			PlayerID:      pick.PlayerID,
			IsCaptain:     pick.IsCaptain,
			IsViceCaptain: pick.IsViceCaptain,
			IsBench:       pick.IsBench,
		})
	}

	if err := s.rosterRepo.ReplaceSlots(ctx, target.ID, slots); err != nil {
		return fmt.Errorf("replace slots for weekly team %s: %w", target.ID, err)
	}

	s.logger.InfoContext(ctx, "roster saved",
		"user_id", userID, "round_id", latest.ID, "players", len(slots), "new_submission", !found)
	return nil
}

// GetRosterView resolves the current roster and enriches each slot for
// display: the adversary in this round's fixture for the player's team, the
// kickoff slot, and the player's round score once the match has started.
func (s *RosterService) GetRosterView(ctx context.Context, userID string) (RosterView, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RosterService.GetRosterView")
	defer span.End()

	latest, ok, err := s.roundRepo.GetLatest(ctx)
	if err != nil {
		return RosterView{}, fmt.Errorf("get latest round: %w", err)
	}
	if !ok {
		return RosterView{}, fmt.Errorf("%w: no round available", ErrNotFound)
	}

	entries, err := s.ResolveRoster(ctx, userID, latest)
	if err != nil {
		return RosterView{}, err
	}
	if len(entries) == 0 {
		return RosterView{}, fmt.Errorf("%w: no fantasy team found", ErrNotFound)
	}

	stats, err := s.statRepo.ListByRound(ctx, latest.ID)
	if err != nil {
		return RosterView{}, fmt.Errorf("list stats for round %s: %w", latest.ID, err)
	}
	scoreByPlayer := make(map[string]int, len(stats))
	for _, stat := range stats {
		scoreByPlayer[stat.PlayerID] = stat.Score
	}

	now := s.now().UTC()
	view := RosterView{
		RoundID:     latest.ID,
		RoundNumber: latest.Number,
		Entries:     make([]RosterViewEntry, 0, len(entries)),
	}
	adversaryNames := make(map[string]string)

	for _, entry := range entries {
		viewEntry := RosterViewEntry{
			Player:        entry.Player,
			IsCaptain:     entry.Slot.IsCaptain,
			IsViceCaptain: entry.Slot.IsViceCaptain,
			IsBench:       entry.Slot.IsBench,
		}

		f, hasFixture, fixErr := s.fixtureRepo.FindByRoundAndTeam(ctx, latest.ID, entry.Player.TeamID)
		if fixErr != nil {
			return RosterView{}, fmt.Errorf("find fixture for team %s: %w", entry.Player.TeamID, fixErr)
		}
		if hasFixture {
			viewEntry.FixtureDate = f.Date
			viewEntry.FixtureTime = f.EventTime

			adversaryID := f.AdversaryOf(entry.Player.TeamID)
			name, nameErr := s.adversaryName(ctx, adversaryID, adversaryNames)
			if nameErr != nil {
				return RosterView{}, nameErr
			}
			viewEntry.AdversaryTeam = name

			if f.HasKickedOff(now) {
				viewEntry.Score = scoreByPlayer[entry.Player.ID]
				viewEntry.ScoreVisible = true
			}
		}

		view.Entries = append(view.Entries, viewEntry)
	}

	return view, nil
}

// ListRoundHistory walks every round up to the current one and reports the
// carried-forward roster with that round's scores. Rounds before the user's
// first submission are omitted.
func (s *RosterService) ListRoundHistory(ctx context.Context, userID string) ([]RoundHistory, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RosterService.ListRoundHistory")
	defer span.End()

	rounds, err := s.roundRepo.ListOrdered(ctx)
	if err != nil {
		return nil, fmt.Errorf("list rounds: %w", err)
	}
	if len(rounds) == 0 {
		return nil, nil
	}

	refs, err := s.sortedWeeklyTeams(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(refs) == 0 {
		return nil, nil
	}

	history := make([]RoundHistory, 0, len(rounds))
	for _, r := range rounds {
		ref, ok := effectiveWeeklyTeam(refs, r.Number)
		if !ok {
			continue
		}

		entries, entriesErr := s.entriesFor(ctx, ref.team)
		if entriesErr != nil {
			return nil, entriesErr
		}

		stats, statsErr := s.statRepo.ListByRound(ctx, r.ID)
		if statsErr != nil {
			return nil, fmt.Errorf("list stats for round %s: %w", r.ID, statsErr)
		}
		scoreByPlayer := make(map[string]int, len(stats))
		for _, stat := range stats {
			scoreByPlayer[stat.PlayerID] = stat.Score
		}

		item := RoundHistory{Round: r, Entries: make([]HistoryEntry, 0, len(entries))}
		for _, entry := range entries {
			item.Entries = append(item.Entries, HistoryEntry{
				Player:        entry.Player,
				IsCaptain:     entry.Slot.IsCaptain,
				IsViceCaptain: entry.Slot.IsViceCaptain,
				IsBench:       entry.Slot.IsBench,
				Score:         scoreByPlayer[entry.Player.ID],
			})
		}
		history = append(history, item)
	}

	return history, nil
}

// sortedWeeklyTeams joins the user's submissions with round numbers, sorted
// ascending so resolution can binary search. Submissions whose round no
// longer exists are dropped.
func (s *RosterService) sortedWeeklyTeams(ctx context.Context, userID string) ([]weeklyTeamRef, error) {
	teams, err := s.rosterRepo.ListWeeklyTeamsByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list weekly teams for user %s: %w", userID, err)
	}
	if len(teams) == 0 {
		return nil, nil
	}

	rounds, err := s.roundRepo.ListOrdered(ctx)
	if err != nil {
		return nil, fmt.Errorf("list rounds: %w", err)
	}
	numberByRoundID := make(map[string]int, len(rounds))
	for _, r := range rounds {
		numberByRoundID[r.ID] = r.Number
	}

	refs := make([]weeklyTeamRef, 0, len(teams))
	for _, wt := range teams {
		number, known := numberByRoundID[wt.RoundID]
		if !known {
			s.logger.WarnContext(ctx, "weekly team references unknown round",
				"weekly_team_id", wt.ID, "round_id", wt.RoundID)
			continue
		}
		refs = append(refs, weeklyTeamRef{team: wt, number: number})
	}
	sort.Slice(refs, func(i, j int) bool { return refs[i].number < refs[j].number })

	return refs, nil
}

// effectiveWeeklyTeam finds the submission with the greatest round number not
// exceeding the target. refs must be sorted ascending by number.
func effectiveWeeklyTeam(refs []weeklyTeamRef, targetNumber int) (weeklyTeamRef, bool) {
	idx := sort.Search(len(refs), func(i int) bool {
		return refs[i].number > targetNumber
	}) - 1
	if idx < 0 {
		return weeklyTeamRef{}, false
	}
	return refs[idx], true
}

func (s *RosterService) entriesFor(ctx context.Context, wt roster.WeeklyTeam) ([]RosterEntry, error) {
	slots, err := s.rosterRepo.ListSlots(ctx, wt.ID)
	if err != nil {
		return nil, fmt.Errorf("list slots for weekly team %s: %w", wt.ID, err)
	}
	if len(slots) == 0 {
		return nil, nil
	}

	playerIDs := make([]string, 0, len(slots))
	for _, slot := range slots {
		playerIDs = append(playerIDs, slot.PlayerID)
	}
	players, err := s.playerRepo.GetByIDs(ctx, playerIDs)
	if err != nil {
		return nil, fmt.Errorf("load roster players: %w", err)
	}
	playerByID := make(map[string]player.Player, len(players))
	for _, p := range players {
		playerByID[p.ID] = p
	}

	entries := make([]RosterEntry, 0, len(slots))
	for _, slot := range slots {
		p, known := playerByID[slot.PlayerID]
		if !known {
			s.logger.WarnContext(ctx, "roster slot references unknown player",
				"slot_id", slot.ID, "player_id", slot.PlayerID)
			continue
		}
		entries = append(entries, RosterEntry{Slot: slot, Player: p})
	}

	return entries, nil
}

func (s *RosterService) adversaryName(ctx context.Context, teamID string, memo map[string]string) (string, error) {
	if teamID == "" {
		return "", nil
	}
	if name, hit := memo[teamID]; hit {
		return name, nil
	}

	t, ok, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		return "", fmt.Errorf("get team %s: %w", teamID, err)
	}
	name := ""
	if ok {
		name = t.Name
	}
	memo[teamID] = name
	return name, nil
}

// collapsePicks removes duplicate player ids, keeping the first occurrence.
func collapsePicks(picks []RosterPick) []RosterPick {
	seen := make(map[string]struct{}, len(picks))
	out := make([]RosterPick, 0, len(picks))
	for _, pick := range picks {
		if pick.PlayerID == "" {
			continue
		}
		if _, dup := seen[pick.PlayerID]; dup {
			continue
		}
		seen[pick.PlayerID] = struct{}{}
		out = append(out, pick)
	}
	return out
}
