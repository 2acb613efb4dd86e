package memory

import (
	"github.com/aymenbt/fantasy-ligue/internal/domain/player"
	"github.com/aymenbt/fantasy-ligue/internal/domain/team"
)

const (
	TeamIDEGSGafsa = "tun-egs-gafsa"
	TeamIDBizertin = "tun-bizertin"
)

// SeedTeams mirrors the clubs in the mock feed data, keyed by the provider's
// team keys.
func SeedTeams() []team.Team {
	return []team.Team{
		{ID: TeamIDEGSGafsa, ExternalID: 7594, Name: "EGS Gafsa"},
		{ID: TeamIDBizertin, ExternalID: 7623, Name: "Bizertin"},
	}
}

// SeedPlayers covers every name appearing in the mock feed's lineups, goals,
// substitutions and cards, so dev-mode ingestion resolves the full match.
func SeedPlayers() []player.Player {
	return []player.Player{
		{ID: "egs-gk-01", TeamID: TeamIDEGSGafsa, Name: "R. Jeridi", Position: player.PositionGoalkeeper},
		{ID: "egs-def-01", TeamID: TeamIDEGSGafsa, Name: "S. Majeri", Position: player.PositionDefender},
		{ID: "egs-def-02", TeamID: TeamIDEGSGafsa, Name: "O. Jebali", Position: player.PositionDefender},
		{ID: "egs-def-03", TeamID: TeamIDEGSGafsa, Name: "A. Horchani", Position: player.PositionDefender},
		{ID: "egs-mid-01", TeamID: TeamIDEGSGafsa, Name: "T. Alkhaly", Position: player.PositionMidfielder},
		{ID: "egs-mid-02", TeamID: TeamIDEGSGafsa, Name: "H. Ben Chaieb", Position: player.PositionMidfielder},
		{ID: "egs-fwd-01", TeamID: TeamIDEGSGafsa, Name: "A. Jouini", Position: player.PositionForward},
		{ID: "egs-fwd-02", TeamID: TeamIDEGSGafsa, Name: "H. Mhamedi", Position: player.PositionForward},

		{ID: "biz-gk-01", TeamID: TeamIDBizertin, Name: "M. Nasraoui", Position: player.PositionGoalkeeper},
		{ID: "biz-def-01", TeamID: TeamIDBizertin, Name: "R. Rehimi", Position: player.PositionDefender},
		{ID: "biz-def-02", TeamID: TeamIDBizertin, Name: "S. Saidi", Position: player.PositionDefender},
		{ID: "biz-mid-01", TeamID: TeamIDBizertin, Name: "K. Balbouz", Position: player.PositionMidfielder},
		{ID: "biz-mid-02", TeamID: TeamIDBizertin, Name: "I. Midani", Position: player.PositionMidfielder},
		{ID: "biz-mid-03", TeamID: TeamIDBizertin, Name: "A. Chaabene", Position: player.PositionMidfielder},
		{ID: "biz-fwd-01", TeamID: TeamIDBizertin, Name: "M. Seydi", Position: player.PositionForward},
		{ID: "biz-fwd-02", TeamID: TeamIDBizertin, Name: "A. Dhaoui", Position: player.PositionForward},
	}
}
