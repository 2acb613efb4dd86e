package allsports

import (
	"strings"

	sonic "github.com/bytedance/sonic"
)

// OwnGoalMarker is the suffix the provider embeds in scorer names for own
// goals, e.g. "S. Mejri (o.g.)".
const OwnGoalMarker = "(o.g.)"

// fixturesEnvelope is the provider's top-level response shape.
type fixturesEnvelope struct {
	Success int             `json:"success"`
	Result  []MatchDocument `json:"result"`
}

// MatchDocument is the per-fixture event document the provider returns. The
// field set is a fixed wire contract; absent arrays decode to nil and are
// treated as empty by consumers.
type MatchDocument struct {
	EventKey    int64  `json:"event_key"`
	Date        string `json:"event_date"`
	Time        string `json:"event_time"`
	HomeTeam    string `json:"event_home_team"`
	HomeTeamKey int64  `json:"home_team_key"`
	AwayTeam    string `json:"event_away_team"`
	AwayTeamKey int64  `json:"away_team_key"`
	Status      string `json:"event_status"`
	League      string `json:"league_name"`

	Goals         []GoalEvent         `json:"goalscorers"`
	Substitutions []SubstitutionEvent `json:"substitutes"`
	Cards         []CardEvent         `json:"cards"`
	Lineups       Lineups             `json:"lineups"`
}

type GoalEvent struct {
	Time       string `json:"time"`
	HomeScorer string `json:"home_scorer"`
	AwayScorer string `json:"away_scorer"`
	Score      string `json:"score"`
	Info       string `json:"info"`
}

// IsOwnGoal reports whether the scorer string carries the own-goal marker.
func IsOwnGoal(scorer string) bool {
	return strings.Contains(scorer, OwnGoalMarker)
}

// StripOwnGoalMarker removes the marker so the name can be resolved.
func StripOwnGoalMarker(scorer string) string {
	return strings.TrimSpace(strings.ReplaceAll(scorer, OwnGoalMarker, ""))
}

type SubstitutionEvent struct {
	Time       string `json:"time"`
	HomeScorer SubSwap `json:"home_scorer"`
	AwayScorer SubSwap `json:"away_scorer"`
}

// SubSwap holds the in/out player names of one substitution. The provider
// sends an object for the acting side and an empty array for the other, so
// decoding tolerates both.
type SubSwap struct {
	In  string `json:"in"`
	Out string `json:"out"`
}

func (s *SubSwap) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "" || trimmed == "null" || strings.HasPrefix(trimmed, "[") {
		*s = SubSwap{}
		return nil
	}

	type alias SubSwap
	var out alias
	if err := sonic.Unmarshal(data, &out); err != nil {
		return err
	}
	*s = SubSwap(out)
	return nil
}

// IsZero reports whether this side took no part in the substitution.
func (s SubSwap) IsZero() bool {
	return s.In == "" && s.Out == ""
}

const (
	CardYellow = "yellow card"
	CardRed    = "red card"
)

type CardEvent struct {
	Time      string `json:"time"`
	HomeFault string `json:"home_fault"`
	AwayFault string `json:"away_fault"`
	Card      string `json:"card"`
}

type Lineups struct {
	HomeTeam TeamLineup `json:"home_team"`
	AwayTeam TeamLineup `json:"away_team"`
}

type TeamLineup struct {
	StartingLineups []LineupEntry `json:"starting_lineups"`
}

type LineupEntry struct {
	Player    string `json:"player"`
	PlayerKey int64  `json:"player_key"`
}
