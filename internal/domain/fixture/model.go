package fixture

import (
	"fmt"
	"time"
)

// Fixture represents one scheduled match inside a round. Date and EventTime
// keep the provider's split representation; KickoffAt combines them.
type Fixture struct {
	ID         string
	RoundID    string
	HomeTeamID string
	AwayTeamID string
	Date       string
	EventTime  string
	League     string
	Status     string
}

const (
	dateLayout    = "2006-01-02"
	kickoffLayout = "2006-01-02T15:04"
)

func (f Fixture) Validate() error {
	if f.ID == "" {
		return fmt.Errorf("fixture id is required")
	}
	if f.RoundID == "" {
		return fmt.Errorf("fixture round id is required")
	}
	if f.HomeTeamID == "" || f.AwayTeamID == "" {
		return fmt.Errorf("fixture team ids are required")
	}
	if _, err := time.Parse(dateLayout, f.Date); err != nil {
		return fmt.Errorf("invalid fixture date %q: %w", f.Date, err)
	}

	return nil
}

// KickoffAt combines date and event time into one instant. A missing or
// malformed time yields an error so callers can treat kickoff as unknown.
func (f Fixture) KickoffAt() (time.Time, error) {
	return time.Parse(kickoffLayout, f.Date+"T"+f.EventTime)
}

// HasKickedOff reports whether the match has started relative to now.
// Unknown kickoff counts as not started, which withholds scores on display.
func (f Fixture) HasKickedOff(now time.Time) bool {
	kickoff, err := f.KickoffAt()
	if err != nil {
		return false
	}
	return kickoff.Before(now)
}

// Involves reports whether the team plays in this fixture.
func (f Fixture) Involves(teamID string) bool {
	return f.HomeTeamID == teamID || f.AwayTeamID == teamID
}

// AdversaryOf returns the opposing team id for a participant, or empty when
// the team is not part of the fixture.
func (f Fixture) AdversaryOf(teamID string) string {
	switch teamID {
	case f.HomeTeamID:
		return f.AwayTeamID
	case f.AwayTeamID:
		return f.HomeTeamID
	default:
		return ""
	}
}
