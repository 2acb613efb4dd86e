package player

import (
	"fmt"
	"strings"
)

// Position represents football position categories used in scoring rules.
type Position string

const (
	PositionGoalkeeper Position = "GK"
	PositionDefender   Position = "DEF"
	PositionMidfielder Position = "MID"
	PositionForward    Position = "FWD"
)

var AllPositions = map[Position]struct{}{
	PositionGoalkeeper: {},
	PositionDefender:   {},
	PositionMidfielder: {},
	PositionForward:    {},
}

// ParsePosition normalizes provider position labels into internal categories.
// Unknown labels map to forward, matching the scoring fallback.
func ParsePosition(value string) Position {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "gk", "goalkeeper", "goalkeepers":
		return PositionGoalkeeper
	case "def", "defender", "defenders":
		return PositionDefender
	case "mid", "midfielder", "midfielders":
		return PositionMidfielder
	default:
		return PositionForward
	}
}

// Player is reference data during scoring; created and updated out-of-band.
type Player struct {
	ID       string
	TeamID   string
	Name     string
	Position Position
	ImageURL string
}

func (p Player) Validate() error {
	if p.ID == "" {
		return fmt.Errorf("player id is required")
	}
	if p.TeamID == "" {
		return fmt.Errorf("player team id is required")
	}
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("player name is required")
	}
	if _, ok := AllPositions[p.Position]; !ok {
		return fmt.Errorf("invalid player position: %s", p.Position)
	}

	return nil
}
