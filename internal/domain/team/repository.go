package team

import "context"

// Source describes team lookups needed by use cases.
type Source interface {
	ListTeams(ctx context.Context, leagueID string) []Team
	GetTeam(ctx context.Context, teamID string) (Team, bool)
}
