package allsports

import "context"

// MockClient serves a fixed set of match documents for dev wiring and tests,
// standing in for the live provider.
type MockClient struct {
	Matches []MatchDocument
}

func NewMockClient(matches ...[]MatchDocument) *MockClient {
	if len(matches) > 0 {
		return &MockClient{Matches: matches[0]}
	}
	return &MockClient{Matches: SampleMatches()}
}

func (c *MockClient) FetchMatches(_ context.Context, _, _ string) ([]MatchDocument, error) {
	out := make([]MatchDocument, len(c.Matches))
	copy(out, c.Matches)
	return out, nil
}

// SampleMatches mirrors one finished Tunisian Ligue 1 match as the provider
// reports it: starting lineups, substitutions, goals and cards.
func SampleMatches() []MatchDocument {
	return []MatchDocument{
		{
			EventKey:    1433003,
			Date:        "2025-04-20",
			Time:        "15:30",
			HomeTeam:    "EGS Gafsa",
			HomeTeamKey: 7594,
			AwayTeam:    "Bizertin",
			AwayTeamKey: 7623,
			Status:      "Finished",
			League:      "Ligue 1",
			Lineups: Lineups{
				HomeTeam: TeamLineup{StartingLineups: []LineupEntry{
					{Player: "R. Jeridi", PlayerKey: 368767149},
					{Player: "S. Majeri", PlayerKey: 3534885823},
					{Player: "O. Jebali", PlayerKey: 4122143947},
					{Player: "A. Horchani", PlayerKey: 121769938},
					{Player: "T. Alkhaly", PlayerKey: 3312626380},
					{Player: "H. Ben Chaieb", PlayerKey: 26749511},
					{Player: "A. Jouini", PlayerKey: 3846520265},
				}},
				AwayTeam: TeamLineup{StartingLineups: []LineupEntry{
					{Player: "M. Nasraoui", PlayerKey: 1593219001},
					{Player: "R. Rehimi", PlayerKey: 2310031446},
					{Player: "S. Saidi", PlayerKey: 2310031447},
					{Player: "K. Balbouz", PlayerKey: 3523177678},
					{Player: "I. Midani", PlayerKey: 2310031444},
					{Player: "M. Seydi", PlayerKey: 913675589},
					{Player: "A. Dhaoui", PlayerKey: 913675590},
				}},
			},
			Goals: []GoalEvent{
				{Time: "3", HomeScorer: "A. Jouini", Score: "1 - 0", Info: ""},
				{Time: "60", HomeScorer: "H. Mhamedi", Score: "2 - 0", Info: "Penalty"},
			},
			Substitutions: []SubstitutionEvent{
				{Time: "46", AwayScorer: SubSwap{In: "A. Chaabene", Out: "K. Balbouz"}},
				{Time: "72", HomeScorer: SubSwap{In: "H. Mhamedi", Out: "T. Alkhaly"}},
			},
			Cards: []CardEvent{
				{Time: "34", HomeFault: "S. Majeri", Card: CardYellow},
				{Time: "59", AwayFault: "S. Saidi", Card: CardYellow},
				{Time: "81", AwayFault: "I. Midani", Card: CardRed},
			},
		},
	}
}
