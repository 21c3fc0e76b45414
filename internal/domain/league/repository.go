package league

import "context"

// Source describes league lookups needed by use cases. Implementations
// absorb upstream failures: absence is reported as false or an empty slice.
type Source interface {
	ListLeagues(ctx context.Context) []League
	// ListLeaguesDetailed lists every league with its full detail record.
	ListLeaguesDetailed(ctx context.Context) []League
	GetLeague(ctx context.Context, leagueID string) (League, bool)
	EnrichLeagues(ctx context.Context, leagues []League) []League
}
